// ABOUTME: Sale database operations
// ABOUTME: Handles sale lifecycle queries per client and per user
package db

import (
	"database/sql"
	"errors"
	"time"

	"github.com/harperreed/pipetrack/models"
)

func CreateSale(database *sql.DB, sale *models.Sale) error {
	res, err := database.Exec(`
		INSERT INTO sales (client_id, sale_date, amount, product_or_service)
		VALUES (?, ?, ?, ?)
	`, sale.ClientID, sale.Date, sale.Amount, sale.ProductOrService)
	if err != nil {
		return err
	}

	sale.ID, err = res.LastInsertId()
	return err
}

// createSaleTx inserts a sale inside a workflow transaction.
func createSaleTx(tx *sql.Tx, sale *models.Sale) error {
	res, err := tx.Exec(`
		INSERT INTO sales (client_id, sale_date, amount, product_or_service)
		VALUES (?, ?, ?, ?)
	`, sale.ClientID, sale.Date, sale.Amount, sale.ProductOrService)
	if err != nil {
		return err
	}

	sale.ID, err = res.LastInsertId()
	return err
}

func GetSale(database *sql.DB, id int64) (*models.Sale, error) {
	sale := &models.Sale{}
	err := database.QueryRow(`
		SELECT id, client_id, sale_date, amount, product_or_service
		FROM sales WHERE id = ?
	`, id).Scan(&sale.ID, &sale.ClientID, &sale.Date, &sale.Amount, &sale.ProductOrService)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return sale, nil
}

func ListSalesByClient(database *sql.DB, clientID int64) ([]models.Sale, error) {
	rows, err := database.Query(`
		SELECT id, client_id, sale_date, amount, product_or_service
		FROM sales
		WHERE client_id = ?
		ORDER BY sale_date DESC
	`, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSales(rows)
}

func ListSalesByUser(database *sql.DB, userID int64) ([]models.Sale, error) {
	rows, err := database.Query(`
		SELECT s.id, s.client_id, s.sale_date, s.amount, s.product_or_service
		FROM sales s
		INNER JOIN clients c ON s.client_id = c.id
		WHERE c.user_id = ?
		ORDER BY s.sale_date DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSales(rows)
}

func scanSales(rows *sql.Rows) ([]models.Sale, error) {
	var sales []models.Sale
	for rows.Next() {
		var s models.Sale
		if err := rows.Scan(&s.ID, &s.ClientID, &s.Date, &s.Amount, &s.ProductOrService); err != nil {
			return nil, err
		}
		sales = append(sales, s)
	}
	return sales, rows.Err()
}

// SaleUpdate carries the fields to overwrite. Nil fields are left alone.
type SaleUpdate struct {
	Date             *time.Time
	Amount           *float64
	ProductOrService *string
}

// UpdateSale applies a partial update. An update with no fields set is a
// no-op, and an unknown id affects zero rows; neither is an error.
func UpdateSale(database *sql.DB, id int64, update *SaleUpdate) error {
	sets, args := buildSets(map[string]any{
		"sale_date":          update.Date,
		"amount":             update.Amount,
		"product_or_service": update.ProductOrService,
	})
	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	_, err := database.Exec(`UPDATE sales SET `+sets+` WHERE id = ?`, args...)
	return err
}

func DeleteSale(database *sql.DB, id int64) error {
	_, err := database.Exec(`DELETE FROM sales WHERE id = ?`, id)
	return err
}
