package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/habitap/habitap/internal/apperror"
	"github.com/habitap/habitap/internal/model"
	"github.com/habitap/habitap/internal/repository"
)

// compile-time check that *DB implements repository.UserRepository
var _ repository.UserRepository = (*DB)(nil)

// CreateUser inserts a new user, generating its ID in place.
//
// The email's UNIQUE index is the last line of defence against a duplicate
// registration racing past the service's existence check; its violation
// surfaces as the same conflict error the check raises.
func (db *DB) CreateUser(ctx context.Context, user *model.User) error {
	user.ID = uuid.New()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (id, email, hashed_password, is_active)
		 VALUES (?, ?, ?, ?)`,
		user.ID.String(),
		user.Email,
		user.HashedPassword,
		user.IsActive,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("Email already registered")
		}
		return fmt.Errorf("sqlite: inserting user %s: %w", user.Email, err)
	}

	return nil
}

// GetUserByEmail retrieves a user by email.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT id, email, hashed_password, is_active FROM users WHERE email = ?`,
		email,
	)
	return scanUser(row, fmt.Sprintf("getting user by email %s", email))
}

// GetUserByID retrieves a user by its ID.
func (db *DB) GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT id, email, hashed_password, is_active FROM users WHERE id = ?`,
		id.String(),
	)
	return scanUser(row, fmt.Sprintf("getting user %s", id))
}

func scanUser(row *sql.Row, op string) (*model.User, error) {
	var (
		u  model.User
		id string
	)

	err := row.Scan(&id, &u.Email, &u.HashedPassword, &u.IsActive)
	if err != nil {
		return nil, notFoundOr(err, apperror.NotFound("User not found"), op)
	}

	u.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("sqlite: %s: parsing id %q: %w", op, id, err)
	}

	return &u, nil
}
