// ABOUTME: Shared test database setup and fixture helpers
// ABOUTME: Opens an in-memory SQLite database with the schema applied
package db

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/harperreed/pipetrack/models"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test db: %v", err)
	}
	database.SetMaxOpenConns(1)
	if err := InitSchema(database); err != nil {
		t.Fatalf("Failed to init schema: %v", err)
	}
	return database
}

func createTestUser(t *testing.T, database *sql.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		PasswordHash: "x",
		Name:         username,
	}
	require.NoError(t, CreateUser(database, user))
	return user
}

func createTestClient(t *testing.T, database *sql.DB, userID int64, name string) *models.Client {
	t.Helper()
	client := &models.Client{
		UserID:   userID,
		Name:     name,
		Industry: models.DefaultIndustry,
	}
	require.NoError(t, CreateClient(database, client))
	return client
}

func createTestProspect(t *testing.T, database *sql.DB, userID int64, name string) *models.Prospect {
	t.Helper()
	prospect := &models.Prospect{
		UserID: userID,
		Name:   name,
	}
	require.NoError(t, CreateProspect(database, prospect))
	return prospect
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}
