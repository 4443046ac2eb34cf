package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/habitap/habitap/internal/model"
)

// newTestDB opens a fresh in-memory database for one test. Fast, isolated,
// destroyed when the connection closes.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestUser(t *testing.T, db *DB, email string) *model.User {
	t.Helper()
	user := &model.User{
		Email:          email,
		HashedPassword: "$2a$04$fakehashfortesting",
		IsActive:       true,
	}
	if err := db.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

func createTestHabit(t *testing.T, db *DB, owner *model.User, name string, isCounted bool) *model.Habit {
	t.Helper()
	habit := &model.Habit{
		Name:      name,
		Goal:      5,
		StartDate: model.NewDate(2024, time.January, 1),
		IsCounted: isCounted,
		OwnerID:   owner.ID,
	}
	if err := db.CreateHabit(context.Background(), habit); err != nil {
		t.Fatalf("failed to create test habit: %v", err)
	}
	return habit
}
