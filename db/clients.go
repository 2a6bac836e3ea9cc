// ABOUTME: Client database operations
// ABOUTME: Handles CRUD operations and cascading client deletion
package db

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/harperreed/pipetrack/models"
)

func CreateClient(database *sql.DB, client *models.Client) error {
	res, err := database.Exec(`
		INSERT INTO clients (user_id, name, phone, email, company, industry)
		VALUES (?, ?, ?, ?, ?, ?)
	`, client.UserID, client.Name, client.Phone, client.Email, client.Company, client.Industry)
	if err != nil {
		return err
	}

	client.ID, err = res.LastInsertId()
	return err
}

func GetClient(database *sql.DB, id int64) (*models.Client, error) {
	client := &models.Client{}
	err := database.QueryRow(`
		SELECT id, user_id, name, phone, email, company, industry
		FROM clients WHERE id = ?
	`, id).Scan(&client.ID, &client.UserID, &client.Name, &client.Phone, &client.Email, &client.Company, &client.Industry)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return client, nil
}

func ListClients(database *sql.DB, userID int64) ([]models.Client, error) {
	rows, err := database.Query(`
		SELECT id, user_id, name, phone, email, company, industry
		FROM clients
		WHERE user_id = ?
		ORDER BY name
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []models.Client
	for rows.Next() {
		var c models.Client
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Phone, &c.Email, &c.Company, &c.Industry); err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}

	return clients, rows.Err()
}

// ClientUpdate carries the fields to overwrite. Nil fields are left alone.
type ClientUpdate struct {
	Name     *string
	Phone    *string
	Email    *string
	Company  *string
	Industry *string
}

// UpdateClient applies a partial update. An update with no fields set is a
// no-op, and an unknown id affects zero rows; neither is an error.
func UpdateClient(database *sql.DB, id int64, update *ClientUpdate) error {
	sets, args := buildSets(map[string]any{
		"name":     update.Name,
		"phone":    update.Phone,
		"email":    update.Email,
		"company":  update.Company,
		"industry": update.Industry,
	})
	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	_, err := database.Exec(`UPDATE clients SET `+sets+` WHERE id = ?`, args...)
	return err
}

// DeleteClient removes a client with its sales and any follow-ups addressed
// to it, in a single transaction.
func DeleteClient(database *sql.DB, id int64) error {
	tx, err := database.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // Safe even after commit
	}()

	if _, err := tx.Exec(`DELETE FROM sales WHERE client_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete sales: %w", err)
	}

	if err := deleteFollowUpsForEntityTx(tx, models.ClientRef(id)); err != nil {
		return fmt.Errorf("failed to delete follow-ups: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM clients WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}

	return tx.Commit()
}
