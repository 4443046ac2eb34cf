package model

import "github.com/google/uuid"

// Habit is a recurring activity a user tracks.
//
// IsCounted controls the value domain of entries logged against the habit:
// a counted habit ("pushups") accepts any integer per entry, a non-counted
// habit ("meditated today") accepts only 0 or 1.
//
// Names are unique per owner, not globally — two users can both track "Run".
type Habit struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Goal        int       `json:"goal"`
	StartDate   Date      `json:"start_date"`
	IsCounted   bool      `json:"is_counted"`
	OwnerID     uuid.UUID `json:"owner_id"`
}
