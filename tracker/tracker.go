// ABOUTME: Workflow service tying storage mutations to reminder reconciliation
// ABOUTME: Invokes the notification bridge after every follow-up-affecting commit
package tracker

import (
	"database/sql"
	"log"

	"github.com/harperreed/pipetrack/db"
	"github.com/harperreed/pipetrack/models"
	"github.com/harperreed/pipetrack/notify"
)

// Tracker owns the database handle and the notification bridge. Every
// mutation that can change the set of pending follow-ups re-reads that set
// after commit and hands it to the bridge, so device reminders never see a
// follow-up the store no longer has, and never miss one it does.
type Tracker struct {
	db     *sql.DB
	bridge notify.Bridge
}

// New creates a Tracker. A nil bridge falls back to the logging default.
func New(database *sql.DB, bridge notify.Bridge) (*Tracker, error) {
	if database == nil {
		return nil, db.ErrNotInitialized
	}
	if bridge == nil {
		bridge = notify.LogBridge{}
	}
	return &Tracker{db: database, bridge: bridge}, nil
}

// reconcile pushes the user's current pending follow-ups to the bridge.
// Bridge failures are not core failures; they are logged and dropped.
func (t *Tracker) reconcile(userID int64) {
	pending, err := db.ListPendingFollowUpsWithDetails(t.db, userID)
	if err != nil {
		log.Printf("warning: follow-up reconcile read failed: %v", err)
		return
	}
	if err := t.bridge.Reconcile(pending); err != nil {
		log.Printf("warning: notification bridge reconcile failed: %v", err)
	}
}

// AddFollowUp creates a follow-up and reconciles reminders.
func (t *Tracker) AddFollowUp(userID int64, f *models.FollowUp) error {
	if err := db.CreateFollowUp(t.db, f); err != nil {
		return err
	}
	t.reconcile(userID)
	return nil
}

// UpdateFollowUp changes a follow-up's date or notes and reconciles
// reminders. The entity binding never changes.
func (t *Tracker) UpdateFollowUp(userID, id int64, update *db.FollowUpUpdate) error {
	if err := db.UpdateFollowUp(t.db, id, update); err != nil {
		return err
	}
	t.reconcile(userID)
	return nil
}

// CompleteFollowUp marks a follow-up done (idempotent) and reconciles
// reminders.
func (t *Tracker) CompleteFollowUp(userID, id int64) error {
	if err := db.CompleteFollowUp(t.db, id); err != nil {
		return err
	}
	t.reconcile(userID)
	return nil
}

// DeleteFollowUp removes a follow-up and reconciles reminders.
func (t *Tracker) DeleteFollowUp(userID, id int64) error {
	if err := db.DeleteFollowUp(t.db, id); err != nil {
		return err
	}
	t.reconcile(userID)
	return nil
}

// RecordCall logs a call and, when the outcome schedules a follow-up,
// reconciles reminders.
func (t *Tracker) RecordCall(userID int64, number string, in *models.CallInput) (*models.PhoneNumber, *models.CallLog, *models.FollowUp, error) {
	pn, cl, followUp, err := db.RecordCall(t.db, userID, number, in)
	if err != nil {
		return nil, nil, nil, err
	}
	if followUp != nil {
		t.reconcile(userID)
	}
	return pn, cl, followUp, nil
}

// ConvertProspect promotes a prospect to a client with a recorded sale.
// Conversion does not touch follow-ups, so no reconcile happens.
func (t *Tracker) ConvertProspect(prospectID int64, sale *models.SaleInput) (*models.Client, *models.Sale, error) {
	return db.ConvertProspectToClient(t.db, prospectID, sale)
}

// ConvertPhoneNumber promotes a called number to a prospect. Open follow-ups
// addressed to the number are completed inside the conversion, so reminders
// are reconciled afterwards.
func (t *Tracker) ConvertPhoneNumber(userID, phoneNumberID int64) (*models.Prospect, error) {
	prospect, err := db.ConvertPhoneNumberToProspect(t.db, phoneNumberID)
	if err != nil {
		return nil, err
	}
	t.reconcile(userID)
	return prospect, nil
}

// DeleteClient removes a client with its sales and follow-ups, then
// reconciles reminders.
func (t *Tracker) DeleteClient(userID, clientID int64) error {
	if err := db.DeleteClient(t.db, clientID); err != nil {
		return err
	}
	t.reconcile(userID)
	return nil
}

// DeleteProspect removes a prospect with its follow-ups, then reconciles
// reminders.
func (t *Tracker) DeleteProspect(userID, prospectID int64) error {
	if err := db.DeleteProspect(t.db, prospectID); err != nil {
		return err
	}
	t.reconcile(userID)
	return nil
}

// PendingFollowUps returns the user's open follow-ups with resolved entity
// details, the same view the bridge receives.
func (t *Tracker) PendingFollowUps(userID int64) ([]models.FollowUpDetail, error) {
	return db.ListPendingFollowUpsWithDetails(t.db, userID)
}

// AllFollowUps returns the user's full follow-up history, completed ones
// included.
func (t *Tracker) AllFollowUps(userID int64) ([]models.FollowUpDetail, error) {
	return db.ListFollowUpsByUser(t.db, userID)
}
