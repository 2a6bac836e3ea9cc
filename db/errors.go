// ABOUTME: Sentinel errors shared by the repository and workflow layers
// ABOUTME: Callers match these with errors.Is
package db

import (
	"errors"

	"github.com/mattn/go-sqlite3"
)

var (
	// ErrNotInitialized is returned when a component is handed a nil
	// database handle. OpenDatabase runs InitSchema before returning, so
	// a non-nil handle implies an initialized schema.
	ErrNotInitialized = errors.New("database not initialized")

	// ErrNotFound is returned by workflows whose input entity is absent.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateUsername is returned by CreateUser on a username clash.
	ErrDuplicateUsername = errors.New("username already taken")

	// ErrInvalidCredentials is returned on signin mismatch. Unknown user
	// and wrong password are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// isUniqueViolation reports whether err is a SQLite unique-constraint error.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
