package tracker

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/pipetrack/db"
	"github.com/harperreed/pipetrack/models"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// recordingBridge captures every reconcile call for inspection.
type recordingBridge struct {
	calls [][]models.FollowUpDetail
	err   error
}

func (b *recordingBridge) Reconcile(pending []models.FollowUpDetail) error {
	b.calls = append(b.calls, pending)
	return b.err
}

func (b *recordingBridge) last(t *testing.T) []models.FollowUpDetail {
	t.Helper()
	require.NotEmpty(t, b.calls)
	return b.calls[len(b.calls)-1]
}

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test db: %v", err)
	}
	database.SetMaxOpenConns(1)
	if err := db.InitSchema(database); err != nil {
		t.Fatalf("Failed to init schema: %v", err)
	}
	return database
}

func setupTracker(t *testing.T) (*Tracker, *sql.DB, *recordingBridge, *models.User) {
	t.Helper()
	database := setupTestDB(t)
	t.Cleanup(func() { _ = database.Close() })

	bridge := &recordingBridge{}
	tracker, err := New(database, bridge)
	require.NoError(t, err)

	user := &models.User{Username: "alice", PasswordHash: "x", Name: "Alice"}
	require.NoError(t, db.CreateUser(database, user))

	return tracker, database, bridge, user
}

func TestNewRequiresDatabase(t *testing.T) {
	_, err := New(nil, nil)
	assert.ErrorIs(t, err, db.ErrNotInitialized)
}

func TestFollowUpLifecycleReconciles(t *testing.T) {
	tracker, database, bridge, user := setupTracker(t)

	client := &models.Client{UserID: user.ID, Name: "Acme", Phone: "555-0100"}
	require.NoError(t, db.CreateClient(database, client))

	followUp := &models.FollowUp{
		Entity: models.ClientRef(client.ID),
		Date:   day(2026, 6, 1),
		Notes:  "check in",
	}
	require.NoError(t, tracker.AddFollowUp(user.ID, followUp))

	// The bridge sees the committed state, follow-up included
	require.Len(t, bridge.calls, 1)
	pending := bridge.last(t)
	require.Len(t, pending, 1)
	assert.Equal(t, followUp.ID, pending[0].ID)
	assert.Equal(t, "Acme", pending[0].EntityName)
	assert.Equal(t, "555-0100", pending[0].EntityPhone)

	newDate := day(2026, 6, 15)
	require.NoError(t, tracker.UpdateFollowUp(user.ID, followUp.ID, &db.FollowUpUpdate{Date: &newDate}))
	require.Len(t, bridge.calls, 2)
	assert.True(t, bridge.last(t)[0].Date.Equal(newDate))

	require.NoError(t, tracker.CompleteFollowUp(user.ID, followUp.ID))
	require.Len(t, bridge.calls, 3)
	// Completed follow-ups drop out of the reconciled set
	assert.Empty(t, bridge.last(t))

	require.NoError(t, tracker.DeleteFollowUp(user.ID, followUp.ID))
	require.Len(t, bridge.calls, 4)
	assert.Empty(t, bridge.last(t))
}

func TestBridgeFailureIsNotFatal(t *testing.T) {
	tracker, database, bridge, user := setupTracker(t)
	bridge.err = errors.New("notification daemon unreachable")

	client := &models.Client{UserID: user.ID, Name: "Acme"}
	require.NoError(t, db.CreateClient(database, client))

	followUp := &models.FollowUp{
		Entity: models.ClientRef(client.ID),
		Date:   day(2026, 6, 1),
	}
	require.NoError(t, tracker.AddFollowUp(user.ID, followUp))

	// The write stuck even though the bridge failed
	got, err := db.GetFollowUp(database, followUp.ID)
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestRecordCallReconcilesOnlyWithFollowUp(t *testing.T) {
	tracker, _, bridge, user := setupTracker(t)

	_, _, followUp, err := tracker.RecordCall(user.ID, "0700111222", &models.CallInput{
		Date:     day(2026, 2, 1),
		Feedback: models.FeedbackBusy,
	})
	require.NoError(t, err)
	assert.Nil(t, followUp)
	assert.Empty(t, bridge.calls)

	next := day(2026, 2, 10)
	_, _, followUp, err = tracker.RecordCall(user.ID, "0700111222", &models.CallInput{
		Date:             day(2026, 2, 2),
		Feedback:         models.FeedbackConnectedLead,
		NextFollowUpDate: &next,
	})
	require.NoError(t, err)
	require.NotNil(t, followUp)
	require.Len(t, bridge.calls, 1)
	require.Len(t, bridge.last(t), 1)
	assert.Equal(t, "0700111222", bridge.last(t)[0].EntityPhone)
}

func TestConvertPhoneNumberReconciles(t *testing.T) {
	tracker, _, bridge, user := setupTracker(t)

	next := day(2026, 2, 10)
	pn, _, _, err := tracker.RecordCall(user.ID, "0700111222", &models.CallInput{
		Date:             day(2026, 2, 1),
		Feedback:         models.FeedbackConnectedLead,
		NextFollowUpDate: &next,
	})
	require.NoError(t, err)
	require.Len(t, bridge.calls, 1)

	prospect, err := tracker.ConvertPhoneNumber(user.ID, pn.ID)
	require.NoError(t, err)
	require.NotNil(t, prospect)

	// The promotion completed the number's follow-up, so the bridge sees none
	require.Len(t, bridge.calls, 2)
	assert.Empty(t, bridge.last(t))
}

func TestDeleteClientReconciles(t *testing.T) {
	tracker, database, bridge, user := setupTracker(t)

	client := &models.Client{UserID: user.ID, Name: "Acme"}
	require.NoError(t, db.CreateClient(database, client))

	followUp := &models.FollowUp{
		Entity: models.ClientRef(client.ID),
		Date:   day(2026, 6, 1),
	}
	require.NoError(t, tracker.AddFollowUp(user.ID, followUp))
	require.Len(t, bridge.calls, 1)

	require.NoError(t, tracker.DeleteClient(user.ID, client.ID))
	require.Len(t, bridge.calls, 2)
	assert.Empty(t, bridge.last(t))
}

func TestConvertProspectDoesNotReconcile(t *testing.T) {
	tracker, database, bridge, user := setupTracker(t)

	prospect := &models.Prospect{UserID: user.ID, Name: "Lead One"}
	require.NoError(t, db.CreateProspect(database, prospect))

	client, sale, err := tracker.ConvertProspect(prospect.ID, &models.SaleInput{
		Date: day(2026, 3, 1), Amount: 1500, ProductOrService: "Consulting",
	})
	require.NoError(t, err)
	assert.NotNil(t, client)
	assert.NotNil(t, sale)
	assert.Empty(t, bridge.calls)
}

func TestPendingFollowUpsMatchesBridgeView(t *testing.T) {
	tracker, database, bridge, user := setupTracker(t)

	client := &models.Client{UserID: user.ID, Name: "Acme"}
	require.NoError(t, db.CreateClient(database, client))

	require.NoError(t, tracker.AddFollowUp(user.ID, &models.FollowUp{
		Entity: models.ClientRef(client.ID),
		Date:   day(2026, 6, 1),
	}))

	pending, err := tracker.PendingFollowUps(user.ID)
	require.NoError(t, err)
	assert.Equal(t, bridge.last(t), pending)
}
