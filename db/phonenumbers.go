// ABOUTME: Phone number database operations
// ABOUTME: Handles lazy creation on first call and unique (user, number) rows
package db

import (
	"database/sql"
	"errors"
	"time"

	"github.com/harperreed/pipetrack/models"
)

func CreatePhoneNumber(database *sql.DB, pn *models.PhoneNumber) error {
	res, err := database.Exec(`
		INSERT INTO phone_numbers (user_id, number, last_called_date, is_prospect, prospect_id)
		VALUES (?, ?, ?, ?, ?)
	`, pn.UserID, pn.Number, pn.LastCalledDate, pn.IsProspect, pn.ProspectID)
	if err != nil {
		return err
	}

	pn.ID, err = res.LastInsertId()
	return err
}

func GetPhoneNumber(database *sql.DB, id int64) (*models.PhoneNumber, error) {
	return scanPhoneNumber(database.QueryRow(`
		SELECT id, user_id, number, last_called_date, is_prospect, prospect_id
		FROM phone_numbers WHERE id = ?
	`, id))
}

func GetPhoneNumberByNumber(database *sql.DB, userID int64, number string) (*models.PhoneNumber, error) {
	return scanPhoneNumber(database.QueryRow(`
		SELECT id, user_id, number, last_called_date, is_prospect, prospect_id
		FROM phone_numbers WHERE user_id = ? AND number = ?
	`, userID, number))
}

func getPhoneNumberTx(tx *sql.Tx, id int64) (*models.PhoneNumber, error) {
	return scanPhoneNumber(tx.QueryRow(`
		SELECT id, user_id, number, last_called_date, is_prospect, prospect_id
		FROM phone_numbers WHERE id = ?
	`, id))
}

func getPhoneNumberByNumberTx(tx *sql.Tx, userID int64, number string) (*models.PhoneNumber, error) {
	return scanPhoneNumber(tx.QueryRow(`
		SELECT id, user_id, number, last_called_date, is_prospect, prospect_id
		FROM phone_numbers WHERE user_id = ? AND number = ?
	`, userID, number))
}

func scanPhoneNumber(row *sql.Row) (*models.PhoneNumber, error) {
	pn := &models.PhoneNumber{}
	err := row.Scan(&pn.ID, &pn.UserID, &pn.Number, &pn.LastCalledDate, &pn.IsProspect, &pn.ProspectID)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return pn, nil
}

func ListPhoneNumbers(database *sql.DB, userID int64) ([]models.PhoneNumber, error) {
	rows, err := database.Query(`
		SELECT id, user_id, number, last_called_date, is_prospect, prospect_id
		FROM phone_numbers
		WHERE user_id = ?
		ORDER BY last_called_date DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var numbers []models.PhoneNumber
	for rows.Next() {
		var pn models.PhoneNumber
		if err := rows.Scan(&pn.ID, &pn.UserID, &pn.Number, &pn.LastCalledDate, &pn.IsProspect, &pn.ProspectID); err != nil {
			return nil, err
		}
		numbers = append(numbers, pn)
	}

	return numbers, rows.Err()
}

func UpdatePhoneNumberLastCalled(database *sql.DB, id int64, calledAt time.Time) error {
	_, err := database.Exec(`
		UPDATE phone_numbers SET last_called_date = ? WHERE id = ?
	`, calledAt, id)
	return err
}

// lookupOrCreatePhoneNumberTx returns the phone number row for (userID,
// number), creating it when absent. On a repeat call the existing row's
// last_called_date moves to calledAt instead of inserting a second row. A
// unique-constraint clash from a racing insert falls back to the update path.
func lookupOrCreatePhoneNumberTx(tx *sql.Tx, userID int64, number string, calledAt time.Time) (*models.PhoneNumber, error) {
	pn, err := getPhoneNumberByNumberTx(tx, userID, number)
	if err != nil {
		return nil, err
	}

	if pn != nil {
		if _, err := tx.Exec(`UPDATE phone_numbers SET last_called_date = ? WHERE id = ?`, calledAt, pn.ID); err != nil {
			return nil, err
		}
		pn.LastCalledDate = calledAt
		return pn, nil
	}

	res, err := tx.Exec(`
		INSERT INTO phone_numbers (user_id, number, last_called_date, is_prospect)
		VALUES (?, ?, ?, 0)
	`, userID, number, calledAt)
	if err != nil {
		if isUniqueViolation(err) {
			// Lost the race; re-read and take the update path.
			return lookupOrCreatePhoneNumberTx(tx, userID, number, calledAt)
		}
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &models.PhoneNumber{
		ID:             id,
		UserID:         userID,
		Number:         number,
		LastCalledDate: calledAt,
	}, nil
}

// markPhoneNumberPromotedTx flags a phone number as promoted to a prospect.
// Promotion is one-way.
func markPhoneNumberPromotedTx(tx *sql.Tx, id, prospectID int64) error {
	_, err := tx.Exec(`
		UPDATE phone_numbers SET is_prospect = 1, prospect_id = ? WHERE id = ?
	`, prospectID, id)
	return err
}

func DeletePhoneNumber(database *sql.DB, id int64) error {
	_, err := database.Exec(`DELETE FROM phone_numbers WHERE id = ?`, id)
	return err
}
