package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/habitap/habitap/internal/apperror"
	"github.com/habitap/habitap/internal/model"
)

func createTestEntry(t *testing.T, db *DB, owner *model.User, habit *model.Habit, date model.Date, value int) *model.Entry {
	t.Helper()
	entry := &model.Entry{
		Date:    date,
		Value:   value,
		HabitID: habit.ID,
		OwnerID: owner.ID,
	}
	if err := db.CreateEntry(context.Background(), entry); err != nil {
		t.Fatalf("failed to create test entry: %v", err)
	}
	return entry
}

func TestCreateEntry(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "a@x.com")
	habit := createTestHabit(t, db, owner, "Run", true)

	entry := &model.Entry{
		Date:    model.NewDate(2024, time.January, 2),
		Value:   3,
		HabitID: habit.ID,
		OwnerID: owner.ID,
	}

	if err := db.CreateEntry(context.Background(), entry); err != nil {
		t.Fatalf("CreateEntry() error = %v", err)
	}
	if entry.ID == uuid.Nil {
		t.Error("CreateEntry() did not set entry.ID")
	}

	found, err := db.GetEntry(context.Background(), owner.ID, habit.ID, entry.Date)
	if err != nil {
		t.Fatalf("GetEntry() error = %v", err)
	}
	if found.Value != 3 {
		t.Errorf("Value = %d, want 3", found.Value)
	}
	if found.Date.String() != "2024-01-02" {
		t.Errorf("Date = %s, want 2024-01-02", found.Date)
	}
}

func TestCreateEntry_DuplicateDate(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "a@x.com")
	habit := createTestHabit(t, db, owner, "Run", true)
	date := model.NewDate(2024, time.January, 2)

	createTestEntry(t, db, owner, habit, date, 3)

	dup := &model.Entry{Date: date, Value: 5, HabitID: habit.ID, OwnerID: owner.ID}
	err := db.CreateEntry(context.Background(), dup)
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("error = %v, want ErrConflict", err)
	}
}

func TestCreateEntry_DifferentDatesOK(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "a@x.com")
	habit := createTestHabit(t, db, owner, "Run", true)

	createTestEntry(t, db, owner, habit, model.NewDate(2024, time.January, 2), 3)
	createTestEntry(t, db, owner, habit, model.NewDate(2024, time.January, 3), 4)
}

func TestGetEntry_NotFound(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "a@x.com")
	habit := createTestHabit(t, db, owner, "Run", true)

	_, err := db.GetEntry(context.Background(), owner.ID, habit.ID, model.NewDate(2024, time.June, 1))
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestListEntriesByOwnerAndHabit_DateOrder(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "a@x.com")
	habit := createTestHabit(t, db, owner, "Run", true)

	// Insert out of order; the list comes back sorted by date.
	createTestEntry(t, db, owner, habit, model.NewDate(2024, time.January, 5), 2)
	createTestEntry(t, db, owner, habit, model.NewDate(2024, time.January, 2), 3)
	createTestEntry(t, db, owner, habit, model.NewDate(2024, time.January, 9), 1)

	entries, err := db.ListEntriesByOwnerAndHabit(context.Background(), owner.ID, habit.ID)
	if err != nil {
		t.Fatalf("ListEntriesByOwnerAndHabit() error = %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("len(entries) = %d, want 3", len(entries))
	}

	want := []string{"2024-01-02", "2024-01-05", "2024-01-09"}
	for i, entry := range entries {
		if entry.Date.String() != want[i] {
			t.Errorf("entries[%d].Date = %s, want %s", i, entry.Date, want[i])
		}
	}
}

func TestListEntriesByOwnerAndHabit_ScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "alice@x.com")
	bob := createTestUser(t, db, "bob@x.com")
	habit := createTestHabit(t, db, alice, "Run", true)

	createTestEntry(t, db, alice, habit, model.NewDate(2024, time.January, 2), 3)

	entries, err := db.ListEntriesByOwnerAndHabit(context.Background(), bob.ID, habit.ID)
	if err != nil {
		t.Fatalf("ListEntriesByOwnerAndHabit() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("len(entries) = %d, want 0 — Alice's entries leaked to Bob", len(entries))
	}
}
