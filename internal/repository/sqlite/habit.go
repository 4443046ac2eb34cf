package sqlite

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/habitap/habitap/internal/apperror"
	"github.com/habitap/habitap/internal/model"
	"github.com/habitap/habitap/internal/repository"
)

var _ repository.HabitRepository = (*DB)(nil)

const habitColumns = `id, name, description, goal, start_date, is_counted, owner_id`

// CreateHabit inserts a new habit, generating its ID in place.
// The (owner_id, name) UNIQUE index backs up the service's duplicate-name
// check under concurrent identical requests.
func (db *DB) CreateHabit(ctx context.Context, habit *model.Habit) error {
	habit.ID = uuid.New()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO habits (id, name, description, goal, start_date, is_counted, owner_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		habit.ID.String(),
		habit.Name,
		habit.Description,
		habit.Goal,
		habit.StartDate.String(),
		habit.IsCounted,
		habit.OwnerID.String(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("Habit with that name already exists")
		}
		return fmt.Errorf("sqlite: inserting habit %q: %w", habit.Name, err)
	}

	return nil
}

// GetHabitByID retrieves a habit by its ID, regardless of owner. The entry
// pipeline uses it to check that a referenced habit exists at all.
func (db *DB) GetHabitByID(ctx context.Context, id uuid.UUID) (*model.Habit, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT `+habitColumns+` FROM habits WHERE id = ?`,
		id.String(),
	)

	habit, err := scanHabit(row.Scan, fmt.Sprintf("getting habit %s", id))
	if err != nil {
		return nil, err
	}
	return habit, nil
}

// GetHabitByOwnerAndName retrieves one owner's habit by name.
func (db *DB) GetHabitByOwnerAndName(ctx context.Context, ownerID uuid.UUID, name string) (*model.Habit, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT `+habitColumns+` FROM habits WHERE owner_id = ? AND name = ?`,
		ownerID.String(),
		name,
	)

	habit, err := scanHabit(row.Scan, fmt.Sprintf("getting habit %q for owner %s", name, ownerID))
	if err != nil {
		return nil, err
	}
	return habit, nil
}

// ListHabitsByOwner returns all of one owner's habits, oldest first.
func (db *DB) ListHabitsByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Habit, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+habitColumns+` FROM habits WHERE owner_id = ? ORDER BY rowid`,
		ownerID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing habits for owner %s: %w", ownerID, err)
	}
	defer rows.Close()

	habits := []model.Habit{}
	for rows.Next() {
		habit, err := scanHabit(rows.Scan, fmt.Sprintf("listing habits for owner %s", ownerID))
		if err != nil {
			return nil, err
		}
		habits = append(habits, *habit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: listing habits for owner %s: %w", ownerID, err)
	}

	return habits, nil
}

// scanHabit reads one habit row via the given scan func, which lets it
// serve both QueryRow (sql.Row) and Query (sql.Rows) call sites.
func scanHabit(scan func(dest ...any) error, op string) (*model.Habit, error) {
	var (
		h         model.Habit
		id        string
		startDate string
		ownerID   string
	)

	err := scan(&id, &h.Name, &h.Description, &h.Goal, &startDate, &h.IsCounted, &ownerID)
	if err != nil {
		return nil, notFoundOr(err, apperror.NotFound("Habit not found"), op)
	}

	if h.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("sqlite: %s: parsing id %q: %w", op, id, err)
	}
	if h.OwnerID, err = uuid.Parse(ownerID); err != nil {
		return nil, fmt.Errorf("sqlite: %s: parsing owner id %q: %w", op, ownerID, err)
	}
	if h.StartDate, err = model.ParseDate(startDate); err != nil {
		return nil, fmt.Errorf("sqlite: %s: %w", op, err)
	}

	return &h, nil
}
