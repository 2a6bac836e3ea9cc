// ABOUTME: Call log database operations
// ABOUTME: Handles call history queries per phone number and per user
package db

import (
	"database/sql"
	"errors"
	"time"

	"github.com/harperreed/pipetrack/models"
)

func CreateCallLog(database *sql.DB, cl *models.CallLog) error {
	res, err := database.Exec(`
		INSERT INTO call_logs (phone_number_id, call_date, feedback, duration, short_notes, next_follow_up_date)
		VALUES (?, ?, ?, ?, ?, ?)
	`, cl.PhoneNumberID, cl.Date, cl.Feedback, cl.Duration, cl.ShortNotes, cl.NextFollowUpDate)
	if err != nil {
		return err
	}

	cl.ID, err = res.LastInsertId()
	return err
}

// createCallLogTx inserts a call log inside a workflow transaction.
func createCallLogTx(tx *sql.Tx, cl *models.CallLog) error {
	res, err := tx.Exec(`
		INSERT INTO call_logs (phone_number_id, call_date, feedback, duration, short_notes, next_follow_up_date)
		VALUES (?, ?, ?, ?, ?, ?)
	`, cl.PhoneNumberID, cl.Date, cl.Feedback, cl.Duration, cl.ShortNotes, cl.NextFollowUpDate)
	if err != nil {
		return err
	}

	cl.ID, err = res.LastInsertId()
	return err
}

func GetCallLog(database *sql.DB, id int64) (*models.CallLog, error) {
	cl := &models.CallLog{}
	err := database.QueryRow(`
		SELECT id, phone_number_id, call_date, feedback, duration, short_notes, next_follow_up_date
		FROM call_logs WHERE id = ?
	`, id).Scan(&cl.ID, &cl.PhoneNumberID, &cl.Date, &cl.Feedback, &cl.Duration, &cl.ShortNotes, &cl.NextFollowUpDate)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return cl, nil
}

func ListCallLogsByPhoneNumber(database *sql.DB, phoneNumberID int64) ([]models.CallLog, error) {
	rows, err := database.Query(`
		SELECT id, phone_number_id, call_date, feedback, duration, short_notes, next_follow_up_date
		FROM call_logs
		WHERE phone_number_id = ?
		ORDER BY call_date DESC
	`, phoneNumberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCallLogs(rows)
}

func ListCallLogsByUser(database *sql.DB, userID int64) ([]models.CallLog, error) {
	rows, err := database.Query(`
		SELECT l.id, l.phone_number_id, l.call_date, l.feedback, l.duration, l.short_notes, l.next_follow_up_date
		FROM call_logs l
		INNER JOIN phone_numbers p ON l.phone_number_id = p.id
		WHERE p.user_id = ?
		ORDER BY l.call_date DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCallLogs(rows)
}

func scanCallLogs(rows *sql.Rows) ([]models.CallLog, error) {
	var logs []models.CallLog
	for rows.Next() {
		var cl models.CallLog
		if err := rows.Scan(&cl.ID, &cl.PhoneNumberID, &cl.Date, &cl.Feedback, &cl.Duration, &cl.ShortNotes, &cl.NextFollowUpDate); err != nil {
			return nil, err
		}
		logs = append(logs, cl)
	}
	return logs, rows.Err()
}

// CallLogUpdate carries the fields to overwrite. Nil fields are left alone.
type CallLogUpdate struct {
	Date       *time.Time
	Feedback   *string
	Duration   *int
	ShortNotes *string
}

// UpdateCallLog applies a partial update. An update with no fields set is a
// no-op, and an unknown id affects zero rows; neither is an error.
func UpdateCallLog(database *sql.DB, id int64, update *CallLogUpdate) error {
	sets, args := buildSets(map[string]any{
		"call_date":   update.Date,
		"feedback":    update.Feedback,
		"duration":    update.Duration,
		"short_notes": update.ShortNotes,
	})
	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	_, err := database.Exec(`UPDATE call_logs SET `+sets+` WHERE id = ?`, args...)
	return err
}

func DeleteCallLog(database *sql.DB, id int64) error {
	_, err := database.Exec(`DELETE FROM call_logs WHERE id = ?`, id)
	return err
}
