// ABOUTME: Identity service for signup, signin, and password reset
// ABOUTME: Wraps the user store with bcrypt hashing and a token cache
package auth

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v3"
	"golang.org/x/crypto/bcrypt"

	"github.com/harperreed/pipetrack/db"
	"github.com/harperreed/pipetrack/models"
)

var (
	// ErrInvalidSession is returned when a session token is unknown or
	// has expired out of the cache.
	ErrInvalidSession = errors.New("invalid or expired session")

	// ErrInvalidResetToken is returned when a reset token is unknown,
	// already used, or has expired out of the cache.
	ErrInvalidResetToken = errors.New("invalid or expired reset token")
)

// Service provides identity operations over the user store plus an
// expiring token cache for sessions and password-reset tokens.
type Service struct {
	db       *sql.DB
	tokens   *badger.DB
	sessTTL  time.Duration
	resetTTL time.Duration
}

// New creates a Service. tokenDir holds the token cache; an empty tokenDir
// keeps tokens in memory only, which is what tests and one-shot CLI runs
// want.
func New(database *sql.DB, tokenDir string, sessionTTL, resetTTL time.Duration) (*Service, error) {
	if database == nil {
		return nil, db.ErrNotInitialized
	}

	opts := badger.DefaultOptions(tokenDir).WithLogger(nil)
	if tokenDir == "" {
		opts = opts.WithInMemory(true)
	}

	tokens, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open token cache: %w", err)
	}

	return &Service{
		db:       database,
		tokens:   tokens,
		sessTTL:  sessionTTL,
		resetTTL: resetTTL,
	}, nil
}

// Close releases the token cache.
func (s *Service) Close() error {
	return s.tokens.Close()
}

// Signup creates a user with a bcrypt password hash. The raw password is
// never stored or returned. Returns db.ErrDuplicateUsername when the
// username is taken.
func (s *Service) Signup(username, password, name string) (*models.User, error) {
	hash, err := bcryptHash(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hash,
		Name:         name,
	}
	if err := db.CreateUser(s.db, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Signin verifies the password against the stored hash. Unknown user and
// wrong password both return db.ErrInvalidCredentials.
func (s *Service) Signin(username, password string) (*models.User, error) {
	user, err := db.GetUserByUsername(s.db, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, db.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, db.ErrInvalidCredentials
	}
	return user, nil
}

func bcryptHash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}
