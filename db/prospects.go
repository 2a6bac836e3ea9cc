// ABOUTME: Prospect database operations
// ABOUTME: Handles CRUD operations, status updates, and cascading deletion
package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/harperreed/pipetrack/models"
)

func CreateProspect(database *sql.DB, prospect *models.Prospect) error {
	if prospect.Status == "" {
		prospect.Status = models.StatusNew
	}

	res, err := database.Exec(`
		INSERT INTO prospects (user_id, name, phone, email, company, status, follow_up_date)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, prospect.UserID, prospect.Name, prospect.Phone, prospect.Email, prospect.Company, prospect.Status, prospect.FollowUpDate)
	if err != nil {
		return err
	}

	prospect.ID, err = res.LastInsertId()
	return err
}

func GetProspect(database *sql.DB, id int64) (*models.Prospect, error) {
	return scanProspect(database.QueryRow(`
		SELECT id, user_id, name, phone, email, company, status, follow_up_date
		FROM prospects WHERE id = ?
	`, id))
}

// getProspectTx reads a prospect inside a workflow transaction.
func getProspectTx(tx *sql.Tx, id int64) (*models.Prospect, error) {
	return scanProspect(tx.QueryRow(`
		SELECT id, user_id, name, phone, email, company, status, follow_up_date
		FROM prospects WHERE id = ?
	`, id))
}

func scanProspect(row *sql.Row) (*models.Prospect, error) {
	prospect := &models.Prospect{}
	err := row.Scan(&prospect.ID, &prospect.UserID, &prospect.Name, &prospect.Phone,
		&prospect.Email, &prospect.Company, &prospect.Status, &prospect.FollowUpDate)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return prospect, nil
}

func ListProspects(database *sql.DB, userID int64) ([]models.Prospect, error) {
	rows, err := database.Query(`
		SELECT id, user_id, name, phone, email, company, status, follow_up_date
		FROM prospects
		WHERE user_id = ?
		ORDER BY follow_up_date
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prospects []models.Prospect
	for rows.Next() {
		var p models.Prospect
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.Phone, &p.Email, &p.Company, &p.Status, &p.FollowUpDate); err != nil {
			return nil, err
		}
		prospects = append(prospects, p)
	}

	return prospects, rows.Err()
}

// ProspectUpdate carries the fields to overwrite. Nil fields are left alone.
// Status here never moves to Won; conversion is the only writer of Won.
type ProspectUpdate struct {
	Name         *string
	Phone        *string
	Email        *string
	Company      *string
	Status       *string
	FollowUpDate *time.Time
}

// UpdateProspect applies a partial update. An update with no fields set is a
// no-op, and an unknown id affects zero rows; neither is an error.
func UpdateProspect(database *sql.DB, id int64, update *ProspectUpdate) error {
	sets, args := buildSets(map[string]any{
		"name":           update.Name,
		"phone":          update.Phone,
		"email":          update.Email,
		"company":        update.Company,
		"status":         update.Status,
		"follow_up_date": update.FollowUpDate,
	})
	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	_, err := database.Exec(`UPDATE prospects SET `+sets+` WHERE id = ?`, args...)
	return err
}

// setProspectStatusTx writes a prospect status inside a workflow
// transaction. Conversion uses this to set Won.
func setProspectStatusTx(tx *sql.Tx, id int64, status string) error {
	_, err := tx.Exec(`UPDATE prospects SET status = ? WHERE id = ?`, status, id)
	return err
}

// DeleteProspect removes a prospect with any follow-ups addressed to it, in
// a single transaction.
func DeleteProspect(database *sql.DB, id int64) error {
	tx, err := database.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // Safe even after commit
	}()

	if err := deleteFollowUpsForEntityTx(tx, models.ProspectRef(id)); err != nil {
		return fmt.Errorf("failed to delete follow-ups: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM prospects WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete prospect: %w", err)
	}

	return tx.Commit()
}
