// ABOUTME: Follow-up database operations
// ABOUTME: Handles the follow-up lifecycle and typed entity resolution
package db

import (
	"database/sql"
	"errors"
	"time"

	"github.com/harperreed/pipetrack/models"
)

func CreateFollowUp(database *sql.DB, f *models.FollowUp) error {
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now().UTC()
	}
	f.IsCompleted = false

	res, err := database.Exec(`
		INSERT INTO follow_ups (entity_id, entity_type, follow_up_date, notes, is_completed, created_at)
		VALUES (?, ?, ?, ?, 0, ?)
	`, f.Entity.ID, string(f.Entity.Type), f.Date, f.Notes, f.CreatedAt)
	if err != nil {
		return err
	}

	f.ID, err = res.LastInsertId()
	return err
}

// createFollowUpTx inserts a follow-up inside a workflow transaction.
func createFollowUpTx(tx *sql.Tx, f *models.FollowUp) error {
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now().UTC()
	}
	f.IsCompleted = false

	res, err := tx.Exec(`
		INSERT INTO follow_ups (entity_id, entity_type, follow_up_date, notes, is_completed, created_at)
		VALUES (?, ?, ?, ?, 0, ?)
	`, f.Entity.ID, string(f.Entity.Type), f.Date, f.Notes, f.CreatedAt)
	if err != nil {
		return err
	}

	f.ID, err = res.LastInsertId()
	return err
}

func GetFollowUp(database *sql.DB, id int64) (*models.FollowUp, error) {
	f := &models.FollowUp{}
	var entityType string
	err := database.QueryRow(`
		SELECT id, entity_id, entity_type, follow_up_date, notes, is_completed, created_at
		FROM follow_ups WHERE id = ?
	`, id).Scan(&f.ID, &f.Entity.ID, &entityType, &f.Date, &f.Notes, &f.IsCompleted, &f.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	f.Entity.Type = models.EntityType(entityType)
	return f, nil
}

func ListFollowUpsByEntity(database *sql.DB, ref models.EntityRef) ([]models.FollowUp, error) {
	rows, err := database.Query(`
		SELECT id, entity_id, entity_type, follow_up_date, notes, is_completed, created_at
		FROM follow_ups
		WHERE entity_id = ? AND entity_type = ?
		ORDER BY follow_up_date
	`, ref.ID, string(ref.Type))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanFollowUps(rows)
}

func scanFollowUps(rows *sql.Rows) ([]models.FollowUp, error) {
	var followUps []models.FollowUp
	for rows.Next() {
		var f models.FollowUp
		var entityType string
		if err := rows.Scan(&f.ID, &f.Entity.ID, &entityType, &f.Date, &f.Notes, &f.IsCompleted, &f.CreatedAt); err != nil {
			return nil, err
		}
		f.Entity.Type = models.EntityType(entityType)
		followUps = append(followUps, f)
	}
	return followUps, rows.Err()
}

// FollowUpUpdate carries the fields to overwrite. The entity binding is
// immutable after creation; only date and notes can change.
type FollowUpUpdate struct {
	Date  *time.Time
	Notes *string
}

// UpdateFollowUp applies a partial update. An update with no fields set is a
// no-op, and an unknown id affects zero rows; neither is an error.
func UpdateFollowUp(database *sql.DB, id int64, update *FollowUpUpdate) error {
	sets, args := buildSets(map[string]any{
		"follow_up_date": update.Date,
		"notes":          update.Notes,
	})
	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	_, err := database.Exec(`UPDATE follow_ups SET `+sets+` WHERE id = ?`, args...)
	return err
}

// CompleteFollowUp flips is_completed one way. Completing an already
// completed follow-up is a no-op, not an error.
func CompleteFollowUp(database *sql.DB, id int64) error {
	_, err := database.Exec(`UPDATE follow_ups SET is_completed = 1 WHERE id = ?`, id)
	return err
}

func DeleteFollowUp(database *sql.DB, id int64) error {
	_, err := database.Exec(`DELETE FROM follow_ups WHERE id = ?`, id)
	return err
}

// completeFollowUpsForEntityTx marks every open follow-up addressed to the
// entity as completed, inside a workflow transaction.
func completeFollowUpsForEntityTx(tx *sql.Tx, ref models.EntityRef) error {
	_, err := tx.Exec(`
		UPDATE follow_ups SET is_completed = 1
		WHERE entity_id = ? AND entity_type = ? AND is_completed = 0
	`, ref.ID, string(ref.Type))
	return err
}

// deleteFollowUpsForEntityTx removes every follow-up addressed to the
// entity, inside a workflow transaction.
func deleteFollowUpsForEntityTx(tx *sql.Tx, ref models.EntityRef) error {
	_, err := tx.Exec(`
		DELETE FROM follow_ups
		WHERE entity_id = ? AND entity_type = ?
	`, ref.ID, string(ref.Type))
	return err
}

// entityDetails is what a resolver reads about a follow-up's referent.
type entityDetails struct {
	UserID int64
	Name   string
	Phone  string
}

// rowQueryer is satisfied by *sql.DB and *sql.Tx.
type rowQueryer interface {
	QueryRow(query string, args ...any) *sql.Row
}

// followUpResolvers dispatches entity resolution on the EntityRef tag.
// Each resolver returns nil when the referent row no longer exists.
var followUpResolvers = map[models.EntityType]func(q rowQueryer, id int64) (*entityDetails, error){
	models.EntityClient: func(q rowQueryer, id int64) (*entityDetails, error) {
		d := &entityDetails{}
		err := q.QueryRow(`SELECT user_id, name, phone FROM clients WHERE id = ?`, id).
			Scan(&d.UserID, &d.Name, &d.Phone)
		return resolvedDetails(d, err)
	},
	models.EntityProspect: func(q rowQueryer, id int64) (*entityDetails, error) {
		d := &entityDetails{}
		err := q.QueryRow(`SELECT user_id, name, phone FROM prospects WHERE id = ?`, id).
			Scan(&d.UserID, &d.Name, &d.Phone)
		return resolvedDetails(d, err)
	},
	models.EntityPhoneNumber: func(q rowQueryer, id int64) (*entityDetails, error) {
		d := &entityDetails{}
		err := q.QueryRow(`SELECT user_id, number, number FROM phone_numbers WHERE id = ?`, id).
			Scan(&d.UserID, &d.Name, &d.Phone)
		return resolvedDetails(d, err)
	},
}

func resolvedDetails(d *entityDetails, err error) (*entityDetails, error) {
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

// ListPendingFollowUpsWithDetails returns the user's open follow-ups with
// their referents resolved, ordered by due date. Follow-ups whose referent
// is gone, or belongs to another user, are excluded.
func ListPendingFollowUpsWithDetails(database *sql.DB, userID int64) ([]models.FollowUpDetail, error) {
	rows, err := database.Query(`
		SELECT id, entity_id, entity_type, follow_up_date, notes, is_completed, created_at
		FROM follow_ups
		WHERE is_completed = 0
		ORDER BY follow_up_date
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return resolveFollowUpDetails(database, rows, userID)
}

// ListFollowUpsByUser returns all of the user's follow-ups, completed ones
// included, with their referents resolved, ordered by due date.
func ListFollowUpsByUser(database *sql.DB, userID int64) ([]models.FollowUpDetail, error) {
	rows, err := database.Query(`
		SELECT id, entity_id, entity_type, follow_up_date, notes, is_completed, created_at
		FROM follow_ups
		ORDER BY follow_up_date
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return resolveFollowUpDetails(database, rows, userID)
}

func resolveFollowUpDetails(database *sql.DB, rows *sql.Rows, userID int64) ([]models.FollowUpDetail, error) {
	followUps, err := scanFollowUps(rows)
	if err != nil {
		return nil, err
	}

	var details []models.FollowUpDetail
	for _, f := range followUps {
		resolver, ok := followUpResolvers[f.Entity.Type]
		if !ok {
			continue
		}
		d, err := resolver(database, f.Entity.ID)
		if err != nil {
			return nil, err
		}
		if d == nil || d.UserID != userID {
			continue
		}
		details = append(details, models.FollowUpDetail{
			FollowUp:    f,
			EntityName:  d.Name,
			EntityPhone: d.Phone,
		})
	}

	return details, nil
}
