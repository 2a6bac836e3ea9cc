// ABOUTME: Cross-entity workflows with single-transaction atomicity
// ABOUTME: Handles prospect conversion, phone number promotion, and call recording
package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/harperreed/pipetrack/models"
)

// convertTestHook, when set, runs inside the conversion transaction after
// the client insert. Test-only.
var convertTestHook func() error

// ConvertProspectToClient promotes a prospect to a client, records a sale
// against the new client, and marks the prospect Won, all in one
// transaction. Returns ErrNotFound when the prospect does not exist. On any
// failure nothing persists.
func ConvertProspectToClient(database *sql.DB, prospectID int64, sale *models.SaleInput) (*models.Client, *models.Sale, error) {
	tx, err := database.Begin()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // Safe even after commit
	}()

	prospect, err := getProspectTx(tx, prospectID)
	if err != nil {
		return nil, nil, err
	}
	if prospect == nil {
		return nil, nil, fmt.Errorf("prospect %d: %w", prospectID, ErrNotFound)
	}

	client := &models.Client{
		UserID:   prospect.UserID,
		Name:     prospect.Name,
		Phone:    prospect.Phone,
		Email:    prospect.Email,
		Company:  prospect.Company,
		Industry: models.DefaultIndustry,
	}
	res, err := tx.Exec(`
		INSERT INTO clients (user_id, name, phone, email, company, industry)
		VALUES (?, ?, ?, ?, ?, ?)
	`, client.UserID, client.Name, client.Phone, client.Email, client.Company, client.Industry)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create client: %w", err)
	}
	if client.ID, err = res.LastInsertId(); err != nil {
		return nil, nil, err
	}

	if convertTestHook != nil {
		if err := convertTestHook(); err != nil {
			return nil, nil, err
		}
	}

	newSale := &models.Sale{
		ClientID:         client.ID,
		Date:             sale.Date,
		Amount:           sale.Amount,
		ProductOrService: sale.ProductOrService,
	}
	if err := createSaleTx(tx, newSale); err != nil {
		return nil, nil, fmt.Errorf("failed to record sale: %w", err)
	}

	if err := setProspectStatusTx(tx, prospectID, models.StatusWon); err != nil {
		return nil, nil, fmt.Errorf("failed to mark prospect won: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, err
	}
	return client, newSale, nil
}

// ConvertPhoneNumberToProspect promotes a called number to a prospect,
// flags the number as promoted, and completes any open follow-ups addressed
// to it, all in one transaction. Returns ErrNotFound when the number does
// not exist.
func ConvertPhoneNumberToProspect(database *sql.DB, phoneNumberID int64) (*models.Prospect, error) {
	tx, err := database.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // Safe even after commit
	}()

	pn, err := getPhoneNumberTx(tx, phoneNumberID)
	if err != nil {
		return nil, err
	}
	if pn == nil {
		return nil, fmt.Errorf("phone number %d: %w", phoneNumberID, ErrNotFound)
	}

	prospect := &models.Prospect{
		UserID: pn.UserID,
		Name:   pn.Number,
		Phone:  pn.Number,
		Status: models.StatusNew,
	}
	res, err := tx.Exec(`
		INSERT INTO prospects (user_id, name, phone, email, company, status)
		VALUES (?, ?, ?, '', '', ?)
	`, prospect.UserID, prospect.Name, prospect.Phone, prospect.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to create prospect: %w", err)
	}
	if prospect.ID, err = res.LastInsertId(); err != nil {
		return nil, err
	}

	if err := markPhoneNumberPromotedTx(tx, pn.ID, prospect.ID); err != nil {
		return nil, fmt.Errorf("failed to mark number promoted: %w", err)
	}

	// The prospect supersedes the number, so its reminders are done.
	if err := completeFollowUpsForEntityTx(tx, models.PhoneNumberRef(pn.ID)); err != nil {
		return nil, fmt.Errorf("failed to complete follow-ups: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return prospect, nil
}

// RecordCall logs a call to a raw dialed number. The owning phone number row
// is created on first call and its last_called_date updated on repeats; a
// follow-up is scheduled when the outcome carries a next follow-up date. One
// transaction covers the whole sequence.
func RecordCall(database *sql.DB, userID int64, number string, in *models.CallInput) (*models.PhoneNumber, *models.CallLog, *models.FollowUp, error) {
	callDate := in.Date
	if callDate.IsZero() {
		callDate = time.Now().UTC()
	}

	tx, err := database.Begin()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // Safe even after commit
	}()

	pn, err := lookupOrCreatePhoneNumberTx(tx, userID, number, callDate)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to look up phone number: %w", err)
	}

	cl := &models.CallLog{
		PhoneNumberID:    pn.ID,
		Date:             callDate,
		Feedback:         in.Feedback,
		Duration:         in.Duration,
		ShortNotes:       in.ShortNotes,
		NextFollowUpDate: in.NextFollowUpDate,
	}
	if err := createCallLogTx(tx, cl); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to record call: %w", err)
	}

	var followUp *models.FollowUp
	if in.NextFollowUpDate != nil {
		followUp = &models.FollowUp{
			Entity: models.PhoneNumberRef(pn.ID),
			Date:   *in.NextFollowUpDate,
			Notes:  in.ShortNotes,
		}
		if err := createFollowUpTx(tx, followUp); err != nil {
			return nil, nil, nil, fmt.Errorf("failed to schedule follow-up: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, nil, err
	}
	return pn, cl, followUp, nil
}
