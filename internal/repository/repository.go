// Package repository declares the storage interfaces the service layer
// programs against. The sqlite subpackage is the only implementation;
// service tests substitute in-memory mocks.
package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/habitap/habitap/internal/model"
)

// UserRepository persists user accounts.
//
// CreateUser generates the record's ID and leaves it on the passed struct.
// GetUserByEmail returns apperror.ErrNotFound (wrapped) when no user has
// the email; the same convention holds for every lookup in this package.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

// HabitRepository persists habits. All lookups except GetHabitByID are
// scoped to an owner — habit names are only unique per owner.
type HabitRepository interface {
	CreateHabit(ctx context.Context, habit *model.Habit) error
	GetHabitByID(ctx context.Context, id uuid.UUID) (*model.Habit, error)
	GetHabitByOwnerAndName(ctx context.Context, ownerID uuid.UUID, name string) (*model.Habit, error)
	ListHabitsByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Habit, error)
}

// EntryRepository persists habit entries, always scoped to an owner.
type EntryRepository interface {
	CreateEntry(ctx context.Context, entry *model.Entry) error
	GetEntry(ctx context.Context, ownerID, habitID uuid.UUID, date model.Date) (*model.Entry, error)
	ListEntriesByOwnerAndHabit(ctx context.Context, ownerID, habitID uuid.UUID) ([]model.Entry, error)
}
