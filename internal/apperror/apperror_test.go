package apperror

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorsIs(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		target    error
		wantMatch bool
	}{
		{
			name:      "NotFound wraps ErrNotFound",
			err:       NotFound("No habit with name Run"),
			target:    ErrNotFound,
			wantMatch: true,
		},
		{
			name:      "ValidationFailed wraps ErrValidation",
			err:       ValidationFailed("name", "name is required"),
			target:    ErrValidation,
			wantMatch: true,
		},
		{
			name:      "Conflict wraps ErrConflict",
			err:       Conflict("Entry already exists"),
			target:    ErrConflict,
			wantMatch: true,
		},
		{
			name:      "Unauthorized wraps ErrAuth",
			err:       Unauthorized("Incorrect username or password"),
			target:    ErrAuth,
			wantMatch: true,
		},
		{
			name:      "NotFound does NOT match ErrValidation",
			err:       NotFound("No habits for this user"),
			target:    ErrValidation,
			wantMatch: false,
		},
		{
			name:      "Unauthorized does NOT match ErrConflict",
			err:       Unauthorized("Could not validate credentials"),
			target:    ErrConflict,
			wantMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(tt.err, tt.target); got != tt.wantMatch {
				t.Errorf("errors.Is() = %v, want %v", got, tt.wantMatch)
			}
		})
	}
}

// Wrapping an AppError with fmt.Errorf %w must keep the sentinel reachable —
// the handler layer relies on this when services add context to errors.
func TestErrorsIs_ThroughWrapping(t *testing.T) {
	inner := Conflict("Email already registered")
	wrapped := fmt.Errorf("registering user: %w", inner)

	if !errors.Is(wrapped, ErrConflict) {
		t.Error("errors.Is() should find ErrConflict through fmt.Errorf wrapping")
	}

	var appErr *AppError
	if !errors.As(wrapped, &appErr) {
		t.Fatal("errors.As() should extract *AppError through fmt.Errorf wrapping")
	}
	if appErr.Message != "Email already registered" {
		t.Errorf("Message = %q, want %q", appErr.Message, "Email already registered")
	}
}

func TestErrorMessage(t *testing.T) {
	err := ValidationFailed("value", "Non-counted habits must be 1 or 0 for true or false")
	if err.Error() != "Non-counted habits must be 1 or 0 for true or false" {
		t.Errorf("Error() = %q", err.Error())
	}
	if err.Field != "value" {
		t.Errorf("Field = %q, want %q", err.Field, "value")
	}
}
