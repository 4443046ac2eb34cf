package service

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/habitap/habitap/internal/apperror"
	"github.com/habitap/habitap/internal/model"
)

// Hand-written in-memory mocks of the repository interfaces. The services
// only see the interfaces, so these swap in for sqlite.DB transparently.

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockUserRepo struct {
	byEmail map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{byEmail: make(map[string]*model.User)}
}

func (m *mockUserRepo) CreateUser(_ context.Context, user *model.User) error {
	if _, ok := m.byEmail[user.Email]; ok {
		return apperror.Conflict("Email already registered")
	}
	user.ID = uuid.New()
	stored := *user
	m.byEmail[user.Email] = &stored
	return nil
}

func (m *mockUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	user, ok := m.byEmail[email]
	if !ok {
		return nil, apperror.NotFound("User not found")
	}
	result := *user
	return &result, nil
}

func (m *mockUserRepo) GetUserByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	for _, user := range m.byEmail {
		if user.ID == id {
			result := *user
			return &result, nil
		}
	}
	return nil, apperror.NotFound("User not found")
}

type habitKey struct {
	owner uuid.UUID
	name  string
}

type mockHabitRepo struct {
	habits map[habitKey]*model.Habit
}

func newMockHabitRepo() *mockHabitRepo {
	return &mockHabitRepo{habits: make(map[habitKey]*model.Habit)}
}

func (m *mockHabitRepo) CreateHabit(_ context.Context, habit *model.Habit) error {
	key := habitKey{owner: habit.OwnerID, name: habit.Name}
	if _, ok := m.habits[key]; ok {
		return apperror.Conflict("Habit with that name already exists")
	}
	habit.ID = uuid.New()
	stored := *habit
	m.habits[key] = &stored
	return nil
}

func (m *mockHabitRepo) GetHabitByID(_ context.Context, id uuid.UUID) (*model.Habit, error) {
	for _, habit := range m.habits {
		if habit.ID == id {
			result := *habit
			return &result, nil
		}
	}
	return nil, apperror.NotFound("Habit not found")
}

func (m *mockHabitRepo) GetHabitByOwnerAndName(_ context.Context, ownerID uuid.UUID, name string) (*model.Habit, error) {
	habit, ok := m.habits[habitKey{owner: ownerID, name: name}]
	if !ok {
		return nil, apperror.NotFound("Habit not found")
	}
	result := *habit
	return &result, nil
}

func (m *mockHabitRepo) ListHabitsByOwner(_ context.Context, ownerID uuid.UUID) ([]model.Habit, error) {
	habits := []model.Habit{}
	for _, habit := range m.habits {
		if habit.OwnerID == ownerID {
			habits = append(habits, *habit)
		}
	}
	return habits, nil
}

type entryKey struct {
	owner uuid.UUID
	habit uuid.UUID
	date  string
}

type mockEntryRepo struct {
	entries map[entryKey]*model.Entry
}

func newMockEntryRepo() *mockEntryRepo {
	return &mockEntryRepo{entries: make(map[entryKey]*model.Entry)}
}

func (m *mockEntryRepo) CreateEntry(_ context.Context, entry *model.Entry) error {
	key := entryKey{owner: entry.OwnerID, habit: entry.HabitID, date: entry.Date.String()}
	if _, ok := m.entries[key]; ok {
		return apperror.Conflict("Entry already exists")
	}
	entry.ID = uuid.New()
	stored := *entry
	m.entries[key] = &stored
	return nil
}

func (m *mockEntryRepo) GetEntry(_ context.Context, ownerID, habitID uuid.UUID, date model.Date) (*model.Entry, error) {
	entry, ok := m.entries[entryKey{owner: ownerID, habit: habitID, date: date.String()}]
	if !ok {
		return nil, apperror.NotFound("Entry not found")
	}
	result := *entry
	return &result, nil
}

func (m *mockEntryRepo) ListEntriesByOwnerAndHabit(_ context.Context, ownerID, habitID uuid.UUID) ([]model.Entry, error) {
	entries := []model.Entry{}
	for _, entry := range m.entries {
		if entry.OwnerID == ownerID && entry.HabitID == habitID {
			entries = append(entries, *entry)
		}
	}
	return entries, nil
}
