package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/habitap/habitap/internal/apperror"
	"github.com/habitap/habitap/internal/model"
	"github.com/habitap/habitap/internal/repository"
)

// EntryService handles daily log entries against habits.
type EntryService struct {
	entries repository.EntryRepository
	habits  repository.HabitRepository
	logger  *slog.Logger
}

func NewEntryService(
	entries repository.EntryRepository,
	habits repository.HabitRepository,
	logger *slog.Logger,
) *EntryService {
	return &EntryService{
		entries: entries,
		habits:  habits,
		logger:  logger,
	}
}

// Create runs the entry validation chain and inserts the entry.
//
// The checks run in a fixed order and stop at the first failure:
//
//  1. conflict   — an entry already exists for (owner, habit, date)
//  2. existence  — the habit ID resolves to a habit
//  3. date range — the entry date is not before the habit's start date
//  4. domain     — non-counted habits only accept 0 or 1
//
// The order is part of the API contract: a duplicate entry for a
// nonexistent habit reports the duplicate, not the missing habit. Counted
// habits accept any integer value, negatives included — the legacy API
// never constrained them and clients may rely on that.
func (s *EntryService) Create(ctx context.Context, ownerID uuid.UUID, habitID uuid.UUID, date model.Date, value int) (*model.Entry, error) {
	if date.IsZero() {
		return nil, apperror.ValidationFailed("date", "entry date is required")
	}

	if _, err := s.entries.GetEntry(ctx, ownerID, habitID, date); err == nil {
		return nil, apperror.Conflict("Entry already exists")
	}

	habit, err := s.habits.GetHabitByID(ctx, habitID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.ValidationFailed("habit_id", "Habit does not exist")
		}
		return nil, fmt.Errorf("creating entry: %w", err)
	}

	if date.Before(habit.StartDate) {
		return nil, apperror.ValidationFailed("date", "Can not make entry before habit start date")
	}

	if !habit.IsCounted && value != 0 && value != 1 {
		return nil, apperror.ValidationFailed("value", "Non-counted habits must be 1 or 0 for true or false")
	}

	entry := &model.Entry{
		Date:    date,
		Value:   value,
		HabitID: habitID,
		OwnerID: ownerID,
	}

	if err := s.entries.CreateEntry(ctx, entry); err != nil {
		s.logger.Error("failed to create entry",
			slog.String("habitID", habitID.String()),
			slog.String("date", date.String()),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating entry: %w", err)
	}

	s.logger.Info("entry created",
		slog.String("entryID", entry.ID.String()),
		slog.String("habitID", habitID.String()),
		slog.String("date", date.String()),
	)

	return entry, nil
}

// ListByHabit returns the owner's entries for a habit, oldest first.
// No entries is a not-found error, matching the API contract.
func (s *EntryService) ListByHabit(ctx context.Context, ownerID, habitID uuid.UUID) ([]model.Entry, error) {
	entries, err := s.entries.ListEntriesByOwnerAndHabit(ctx, ownerID, habitID)
	if err != nil {
		s.logger.Error("failed to list entries",
			slog.String("habitID", habitID.String()),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("listing entries: %w", err)
	}

	if len(entries) == 0 {
		return nil, apperror.NotFound(fmt.Sprintf("No entries for habit %s", habitID))
	}

	return entries, nil
}
