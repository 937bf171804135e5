package repository

import (
	"errors"
	"fmt"

	sqlite3 "github.com/mattn/go-sqlite3"
)

// Sentinel errors returned by the repositories. Callers match them with
// errors.Is; the HTTP layer maps them to response codes.
var (
	// ErrNotFound indicates an operation on an entity that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrReferential indicates a write referencing a missing foreign-key
	// target (unknown user email or book ISBN).
	ErrReferential = errors.New("referenced entity does not exist")

	// ErrDuplicate indicates a uniqueness violation (e.g. registering an
	// email twice, or re-adding an existing ISBN).
	ErrDuplicate = errors.New("already exists")

	// ErrInsufficientData indicates a query asked for more items than the
	// underlying data holds (e.g. random recommendations from a catalog
	// smaller than the requested count).
	ErrInsufficientData = errors.New("insufficient data")
)

// translateConstraint maps SQLite constraint violations onto the sentinel
// errors above so callers never have to inspect driver types. Other errors
// pass through untouched.
func translateConstraint(err error) error {
	if err == nil {
		return nil
	}
	var se sqlite3.Error
	if errors.As(err, &se) {
		switch se.ExtendedCode {
		case sqlite3.ErrConstraintForeignKey:
			return fmt.Errorf("%w: %v", ErrReferential, err)
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return fmt.Errorf("%w: %v", ErrDuplicate, err)
		}
	}
	return err
}
