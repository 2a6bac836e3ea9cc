// ABOUTME: User identity database operations
// ABOUTME: Handles user creation, lookup, and password hash updates
package db

import (
	"database/sql"
	"errors"

	"github.com/harperreed/pipetrack/models"
)

func CreateUser(database *sql.DB, user *models.User) error {
	res, err := database.Exec(`
		INSERT INTO users (username, password_hash, name)
		VALUES (?, ?, ?)
	`, user.Username, user.PasswordHash, user.Name)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateUsername
		}
		return err
	}

	user.ID, err = res.LastInsertId()
	return err
}

func GetUserByID(database *sql.DB, id int64) (*models.User, error) {
	user := &models.User{}
	err := database.QueryRow(`
		SELECT id, username, password_hash, name
		FROM users WHERE id = ?
	`, id).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Name)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func GetUserByUsername(database *sql.DB, username string) (*models.User, error) {
	user := &models.User{}
	err := database.QueryRow(`
		SELECT id, username, password_hash, name
		FROM users WHERE username = ?
	`, username).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Name)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUserPassword unconditionally overwrites the stored hash. The
// password-reset workflow validates the reset token before calling this.
func UpdateUserPassword(database *sql.DB, userID int64, newPasswordHash string) error {
	_, err := database.Exec(`
		UPDATE users SET password_hash = ? WHERE id = ?
	`, newPasswordHash, userID)
	return err
}
