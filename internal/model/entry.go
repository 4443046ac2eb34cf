package model

import "github.com/google/uuid"

// Entry is one day's log against a habit.
//
// At most one entry exists per (owner, habit, date), and an entry's date can
// never precede the habit's start date. Both rules are enforced by the entry
// service before the insert.
type Entry struct {
	ID      uuid.UUID `json:"id"`
	Date    Date      `json:"date"`
	Value   int       `json:"value"`
	HabitID uuid.UUID `json:"habit_id"`
	OwnerID uuid.UUID `json:"owner_id"`
}
