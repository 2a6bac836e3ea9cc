package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/pipetrack/models"
)

func TestPhoneNumberUniquePerUser(t *testing.T) {
	database := setupTestDB(t)
	defer func() { _ = database.Close() }()

	alice := createTestUser(t, database, "alice")
	bob := createTestUser(t, database, "bob")

	require.NoError(t, CreatePhoneNumber(database, &models.PhoneNumber{
		UserID: alice.ID, Number: "0700111222", LastCalledDate: day(2026, 2, 1),
	}))

	// Same number, same user: constraint clash
	err := CreatePhoneNumber(database, &models.PhoneNumber{
		UserID: alice.ID, Number: "0700111222", LastCalledDate: day(2026, 2, 2),
	})
	require.Error(t, err)
	assert.True(t, isUniqueViolation(err))

	// Same number, different user: fine
	require.NoError(t, CreatePhoneNumber(database, &models.PhoneNumber{
		UserID: bob.ID, Number: "0700111222", LastCalledDate: day(2026, 2, 2),
	}))
}

func TestGetPhoneNumberByNumber(t *testing.T) {
	database := setupTestDB(t)
	defer func() { _ = database.Close() }()

	user := createTestUser(t, database, "alice")
	pn := &models.PhoneNumber{
		UserID: user.ID, Number: "0700111222", LastCalledDate: day(2026, 2, 1),
	}
	require.NoError(t, CreatePhoneNumber(database, pn))

	got, err := GetPhoneNumberByNumber(database, user.ID, "0700111222")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, pn.ID, got.ID)

	got, err = GetPhoneNumberByNumber(database, user.ID, "0700999999")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUpdatePhoneNumberLastCalled(t *testing.T) {
	database := setupTestDB(t)
	defer func() { _ = database.Close() }()

	user := createTestUser(t, database, "alice")
	pn := &models.PhoneNumber{
		UserID: user.ID, Number: "0700111222", LastCalledDate: day(2026, 2, 1),
	}
	require.NoError(t, CreatePhoneNumber(database, pn))

	require.NoError(t, UpdatePhoneNumberLastCalled(database, pn.ID, day(2026, 2, 5)))

	got, err := GetPhoneNumber(database, pn.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.LastCalledDate.Equal(day(2026, 2, 5)))
}

func TestListPhoneNumbersMostRecentFirst(t *testing.T) {
	database := setupTestDB(t)
	defer func() { _ = database.Close() }()

	user := createTestUser(t, database, "alice")

	require.NoError(t, CreatePhoneNumber(database, &models.PhoneNumber{
		UserID: user.ID, Number: "0700111222", LastCalledDate: day(2026, 2, 1),
	}))
	require.NoError(t, CreatePhoneNumber(database, &models.PhoneNumber{
		UserID: user.ID, Number: "0700333444", LastCalledDate: day(2026, 2, 8),
	}))

	numbers, err := ListPhoneNumbers(database, user.ID)
	require.NoError(t, err)
	require.Len(t, numbers, 2)
	assert.Equal(t, "0700333444", numbers[0].Number)
	assert.Equal(t, "0700111222", numbers[1].Number)
}
