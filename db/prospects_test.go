package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/pipetrack/models"
)

func TestCreateProspectDefaultsStatus(t *testing.T) {
	database := setupTestDB(t)
	defer func() { _ = database.Close() }()

	user := createTestUser(t, database, "alice")
	prospect := createTestProspect(t, database, user.ID, "Lead One")

	assert.Equal(t, models.StatusNew, prospect.Status)

	got, err := GetProspect(database, prospect.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.StatusNew, got.Status)
	assert.Nil(t, got.FollowUpDate)
}

func TestListProspectsOrderedByFollowUpDate(t *testing.T) {
	database := setupTestDB(t)
	defer func() { _ = database.Close() }()

	user := createTestUser(t, database, "alice")

	late := day(2026, 4, 20)
	early := day(2026, 4, 5)
	require.NoError(t, CreateProspect(database, &models.Prospect{
		UserID: user.ID, Name: "Later", FollowUpDate: &late,
	}))
	require.NoError(t, CreateProspect(database, &models.Prospect{
		UserID: user.ID, Name: "Sooner", FollowUpDate: &early,
	}))

	prospects, err := ListProspects(database, user.ID)
	require.NoError(t, err)
	require.Len(t, prospects, 2)
	assert.Equal(t, "Sooner", prospects[0].Name)
	assert.Equal(t, "Later", prospects[1].Name)
}

func TestUpdateProspectPartial(t *testing.T) {
	database := setupTestDB(t)
	defer func() { _ = database.Close() }()

	user := createTestUser(t, database, "alice")
	prospect := createTestProspect(t, database, user.ID, "Lead One")

	status := models.StatusContacted
	followUp := day(2026, 5, 1)
	require.NoError(t, UpdateProspect(database, prospect.ID, &ProspectUpdate{
		Status:       &status,
		FollowUpDate: &followUp,
	}))

	got, err := GetProspect(database, prospect.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.StatusContacted, got.Status)
	require.NotNil(t, got.FollowUpDate)
	assert.True(t, got.FollowUpDate.Equal(followUp))
	assert.Equal(t, "Lead One", got.Name)
}

func TestDeleteProspectCascadesFollowUps(t *testing.T) {
	database := setupTestDB(t)
	defer func() { _ = database.Close() }()

	user := createTestUser(t, database, "alice")
	prospect := createTestProspect(t, database, user.ID, "Lead One")

	followUp := &models.FollowUp{
		Entity: models.ProspectRef(prospect.ID),
		Date:   day(2026, 5, 1),
	}
	require.NoError(t, CreateFollowUp(database, followUp))

	require.NoError(t, DeleteProspect(database, prospect.ID))

	got, err := GetProspect(database, prospect.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	gotFollowUp, err := GetFollowUp(database, followUp.ID)
	require.NoError(t, err)
	assert.Nil(t, gotFollowUp)
}
