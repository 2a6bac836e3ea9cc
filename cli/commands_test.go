package cli

import (
	"database/sql"
	"os"
	"testing"

	"github.com/harperreed/pipetrack/db"
	"github.com/harperreed/pipetrack/models"
	"github.com/harperreed/pipetrack/tracker"
)

func setupTestCLI(t *testing.T) *sql.DB {
	tmpDB, err := os.CreateTemp("", "test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	_ = tmpDB.Close()
	t.Cleanup(func() { _ = os.Remove(tmpDB.Name()) })

	database, err := db.OpenDatabase(tmpDB.Name())
	if err != nil {
		t.Fatal(err)
	}

	return database
}

func setupTestTracker(t *testing.T, database *sql.DB) *tracker.Tracker {
	tr, err := tracker.New(database, nil)
	if err != nil {
		t.Fatal(err)
	}
	return tr
}

func createCLIUser(t *testing.T, database *sql.DB) *models.User {
	user := &models.User{Username: "alice", PasswordHash: "x", Name: "Alice"}
	if err := db.CreateUser(database, user); err != nil {
		t.Fatal(err)
	}
	return user
}

func TestClientCommands(t *testing.T) {
	database := setupTestCLI(t)
	defer func() { _ = database.Close() }()
	user := createCLIUser(t, database)

	err := AddClientCommand(database, []string{"--user", "1", "--name", "Acme", "--phone", "555-0100"})
	if err != nil {
		t.Errorf("AddClientCommand failed: %v", err)
	}

	err = ListClientsCommand(database, []string{"--user", "1"})
	if err != nil {
		t.Errorf("ListClientsCommand failed: %v", err)
	}

	err = UpdateClientCommand(database, []string{"--name", "Acme Ltd", "1"})
	if err != nil {
		t.Errorf("UpdateClientCommand failed: %v", err)
	}

	client, err := db.GetClient(database, 1)
	if err != nil || client == nil {
		t.Fatalf("Expected client 1 to exist: %v", err)
	}
	if client.Name != "Acme Ltd" {
		t.Errorf("Expected updated name, got %s", client.Name)
	}
	if client.UserID != user.ID {
		t.Errorf("Expected client owned by user %d, got %d", user.ID, client.UserID)
	}
}

func TestUpdateProspectRejectsWon(t *testing.T) {
	database := setupTestCLI(t)
	defer func() { _ = database.Close() }()
	createCLIUser(t, database)

	if err := AddProspectCommand(database, []string{"--user", "1", "--name", "Lead One"}); err != nil {
		t.Fatalf("AddProspectCommand failed: %v", err)
	}

	err := UpdateProspectCommand(database, []string{"--status", "Won", "1"})
	if err == nil {
		t.Error("Expected error when setting status Won directly")
	}
}

func TestRecordCallAndListCommands(t *testing.T) {
	database := setupTestCLI(t)
	defer func() { _ = database.Close() }()
	createCLIUser(t, database)
	tr := setupTestTracker(t, database)

	err := RecordCallCommand(tr, []string{
		"--user", "1", "--number", "0700111222",
		"--feedback", "Connected-Lead", "--followup", "2026-09-05",
	})
	if err != nil {
		t.Errorf("RecordCallCommand failed: %v", err)
	}

	if err := ListCallsCommand(database, []string{"--user", "1"}); err != nil {
		t.Errorf("ListCallsCommand failed: %v", err)
	}
	if err := ListNumbersCommand(database, []string{"--user", "1"}); err != nil {
		t.Errorf("ListNumbersCommand failed: %v", err)
	}
	if err := ListFollowUpsCommand(tr, []string{"--user", "1"}); err != nil {
		t.Errorf("ListFollowUpsCommand failed: %v", err)
	}
}

func TestAddSaleRequiresExistingClient(t *testing.T) {
	database := setupTestCLI(t)
	defer func() { _ = database.Close() }()
	createCLIUser(t, database)

	err := AddSaleCommand(database, []string{"--client", "99", "--amount", "100", "--product", "Support"})
	if err == nil {
		t.Error("Expected error for unknown client")
	}
}

func TestAnalyticsCommands(t *testing.T) {
	database := setupTestCLI(t)
	defer func() { _ = database.Close() }()
	createCLIUser(t, database)

	if err := AnalyticsCommand(database, []string{"--user", "1"}); err != nil {
		t.Errorf("AnalyticsCommand failed: %v", err)
	}
	if err := DailyStatsCommand(database, []string{"--user", "1"}); err != nil {
		t.Errorf("DailyStatsCommand failed: %v", err)
	}
}
