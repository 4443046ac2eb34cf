package sqlite

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/habitap/habitap/internal/apperror"
	"github.com/habitap/habitap/internal/model"
	"github.com/habitap/habitap/internal/repository"
)

var _ repository.EntryRepository = (*DB)(nil)

// CreateEntry inserts a new entry, generating its ID in place.
// The (owner_id, habit_id, date) UNIQUE index enforces one entry per habit
// per day when concurrent requests slip past the service's duplicate check.
func (db *DB) CreateEntry(ctx context.Context, entry *model.Entry) error {
	entry.ID = uuid.New()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO entries (id, date, value, habit_id, owner_id)
		 VALUES (?, ?, ?, ?, ?)`,
		entry.ID.String(),
		entry.Date.String(),
		entry.Value,
		entry.HabitID.String(),
		entry.OwnerID.String(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("Entry already exists")
		}
		return fmt.Errorf("sqlite: inserting entry for habit %s on %s: %w",
			entry.HabitID, entry.Date, err)
	}

	return nil
}

// GetEntry retrieves the single entry for (owner, habit, date), if any.
func (db *DB) GetEntry(ctx context.Context, ownerID, habitID uuid.UUID, date model.Date) (*model.Entry, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT id, date, value, habit_id, owner_id FROM entries
		 WHERE owner_id = ? AND habit_id = ? AND date = ?`,
		ownerID.String(),
		habitID.String(),
		date.String(),
	)

	return scanEntry(row.Scan, fmt.Sprintf("getting entry for habit %s on %s", habitID, date))
}

// ListEntriesByOwnerAndHabit returns one owner's entries for a habit in date order.
func (db *DB) ListEntriesByOwnerAndHabit(ctx context.Context, ownerID, habitID uuid.UUID) ([]model.Entry, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, date, value, habit_id, owner_id FROM entries
		 WHERE owner_id = ? AND habit_id = ? ORDER BY date`,
		ownerID.String(),
		habitID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing entries for habit %s: %w", habitID, err)
	}
	defer rows.Close()

	entries := []model.Entry{}
	for rows.Next() {
		entry, err := scanEntry(rows.Scan, fmt.Sprintf("listing entries for habit %s", habitID))
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: listing entries for habit %s: %w", habitID, err)
	}

	return entries, nil
}

func scanEntry(scan func(dest ...any) error, op string) (*model.Entry, error) {
	var (
		e       model.Entry
		id      string
		date    string
		habitID string
		ownerID string
	)

	err := scan(&id, &date, &e.Value, &habitID, &ownerID)
	if err != nil {
		return nil, notFoundOr(err, apperror.NotFound("Entry not found"), op)
	}

	if e.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("sqlite: %s: parsing id %q: %w", op, id, err)
	}
	if e.HabitID, err = uuid.Parse(habitID); err != nil {
		return nil, fmt.Errorf("sqlite: %s: parsing habit id %q: %w", op, habitID, err)
	}
	if e.OwnerID, err = uuid.Parse(ownerID); err != nil {
		return nil, fmt.Errorf("sqlite: %s: parsing owner id %q: %w", op, ownerID, err)
	}
	if e.Date, err = model.ParseDate(date); err != nil {
		return nil, fmt.Errorf("sqlite: %s: %w", op, err)
	}

	return &e, nil
}
