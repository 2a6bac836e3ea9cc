// ABOUTME: Session and password-reset token cache
// ABOUTME: Stores expiring tokens in Badger with TTL entries
package auth

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/harperreed/pipetrack/db"
)

const (
	sessionPrefix = "session/"
	resetPrefix   = "reset/"
)

// NewSession issues a session token for the user. The token expires out of
// the cache after the configured session TTL.
func (s *Service) NewSession(userID int64) (string, error) {
	token := uuid.NewString()
	if err := s.putToken(sessionPrefix+token, userID, s.sessTTL); err != nil {
		return "", err
	}
	return token, nil
}

// SessionUser resolves a session token to its user id.
func (s *Service) SessionUser(token string) (int64, error) {
	userID, err := s.getToken(sessionPrefix + token)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, ErrInvalidSession
	}
	return userID, err
}

// EndSession drops a session token. Unknown tokens are a no-op.
func (s *Service) EndSession(token string) error {
	return s.tokens.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(sessionPrefix + token))
	})
}

// IssueResetToken issues a single-use password-reset token for the
// username. Returns db.ErrNotFound for an unknown username; whether the
// caller reveals that is its own concern.
func (s *Service) IssueResetToken(username string) (string, error) {
	user, err := db.GetUserByUsername(s.db, username)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", fmt.Errorf("user %q: %w", username, db.ErrNotFound)
	}

	token := newResetToken()
	if err := s.putToken(resetPrefix+token, user.ID, s.resetTTL); err != nil {
		return "", err
	}
	return token, nil
}

// ResetPassword validates the reset token, overwrites the user's password
// hash, and burns the token.
func (s *Service) ResetPassword(token, newPassword string) error {
	userID, err := s.getToken(resetPrefix + token)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrInvalidResetToken
	}
	if err != nil {
		return err
	}

	hash, err := bcryptHash(newPassword)
	if err != nil {
		return err
	}
	if err := db.UpdateUserPassword(s.db, userID, hash); err != nil {
		return err
	}

	return s.tokens.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(resetPrefix + token))
	})
}

func (s *Service) putToken(key string, userID int64, ttl time.Duration) error {
	return s.tokens.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(key), []byte(strconv.FormatInt(userID, 10)))
		if ttl > 0 {
			entry = entry.WithTTL(ttl)
		}
		return txn.SetEntry(entry)
	})
}

func (s *Service) getToken(key string) (int64, error) {
	var userID int64
	err := s.tokens.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			userID, err = strconv.ParseInt(string(val), 10, 64)
			return err
		})
	})
	return userID, err
}

// newResetToken generates a ULID reset token.
func newResetToken() string {
	entropy := ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}
