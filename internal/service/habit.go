package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/habitap/habitap/internal/apperror"
	"github.com/habitap/habitap/internal/model"
	"github.com/habitap/habitap/internal/repository"
)

const maxHabitNameLength = 100

// HabitService handles habit creation and lookups. Every operation is
// scoped to the owner resolved by the auth middleware.
type HabitService struct {
	habits repository.HabitRepository
	logger *slog.Logger
}

func NewHabitService(habits repository.HabitRepository, logger *slog.Logger) *HabitService {
	return &HabitService{
		habits: habits,
		logger: logger,
	}
}

// Create validates and saves a new habit for the owner.
//
// Names are unique per owner, not globally — the duplicate check queries
// by (owner, name), so two users can both track a habit called "Meditate".
func (s *HabitService) Create(ctx context.Context, ownerID uuid.UUID, name, description string, goal int, startDate model.Date, isCounted bool) (*model.Habit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.ValidationFailed("name", "habit name is required")
	}
	if len(name) > maxHabitNameLength {
		return nil, apperror.ValidationFailed("name",
			fmt.Sprintf("habit name must be %d characters or less", maxHabitNameLength))
	}
	if startDate.IsZero() {
		return nil, apperror.ValidationFailed("start_date", "start date is required")
	}

	if _, err := s.habits.GetHabitByOwnerAndName(ctx, ownerID, name); err == nil {
		return nil, apperror.Conflict("Habit with that name already exists")
	}

	habit := &model.Habit{
		Name:        name,
		Description: strings.TrimSpace(description),
		Goal:        goal,
		StartDate:   startDate,
		IsCounted:   isCounted,
		OwnerID:     ownerID,
	}

	if err := s.habits.CreateHabit(ctx, habit); err != nil {
		s.logger.Error("failed to create habit",
			slog.String("name", name),
			slog.String("ownerID", ownerID.String()),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating habit: %w", err)
	}

	s.logger.Info("habit created",
		slog.String("habitID", habit.ID.String()),
		slog.String("name", habit.Name),
		slog.String("ownerID", ownerID.String()),
	)

	return habit, nil
}

// GetByName returns the owner's habit with the given name.
func (s *HabitService) GetByName(ctx context.Context, ownerID uuid.UUID, name string) (*model.Habit, error) {
	habit, err := s.habits.GetHabitByOwnerAndName(ctx, ownerID, name)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NotFound(fmt.Sprintf("No habit with name %s", name))
		}
		return nil, fmt.Errorf("getting habit %q: %w", name, err)
	}
	return habit, nil
}

// List returns all of the owner's habits. An owner with no habits gets a
// not-found error rather than an empty list, matching the API contract.
func (s *HabitService) List(ctx context.Context, ownerID uuid.UUID) ([]model.Habit, error) {
	habits, err := s.habits.ListHabitsByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("failed to list habits",
			slog.String("ownerID", ownerID.String()),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("listing habits: %w", err)
	}

	if len(habits) == 0 {
		return nil, apperror.NotFound("No habits for this user")
	}

	return habits, nil
}
