package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/pipetrack/models"
)

func TestGetAnalyticsDataEmpty(t *testing.T) {
	database := setupTestDB(t)
	defer func() { _ = database.Close() }()

	user := createTestUser(t, database, "alice")

	data, err := GetAnalyticsData(database, user.ID, nil, nil)
	require.NoError(t, err)

	// Zero sales and zero prospects divide nothing
	assert.Equal(t, 0.0, data.TotalRevenue)
	assert.Equal(t, 0, data.TotalSales)
	assert.Equal(t, 0.0, data.AverageSaleAmount)
	assert.Equal(t, 0.0, data.ConversionRate)
	assert.Empty(t, data.TopProducts)
	assert.Empty(t, data.SalesByMonth)
}

func TestGetAnalyticsData(t *testing.T) {
	database := setupTestDB(t)
	defer func() { _ = database.Close() }()

	user := createTestUser(t, database, "alice")
	client := createTestClient(t, database, user.ID, "Acme")

	for _, s := range []models.Sale{
		{ClientID: client.ID, Date: day(2026, 1, 5), Amount: 100, ProductOrService: "Support"},
		{ClientID: client.ID, Date: day(2026, 1, 20), Amount: 300, ProductOrService: "Consulting"},
		{ClientID: client.ID, Date: day(2026, 2, 2), Amount: 200, ProductOrService: "Consulting"},
	} {
		sale := s
		require.NoError(t, CreateSale(database, &sale))
	}

	won := createTestProspect(t, database, user.ID, "Winner")
	createTestProspect(t, database, user.ID, "Open Lead")
	status := models.StatusWon
	require.NoError(t, UpdateProspect(database, won.ID, &ProspectUpdate{Status: &status}))

	data, err := GetAnalyticsData(database, user.ID, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 600.0, data.TotalRevenue)
	assert.Equal(t, 3, data.TotalSales)
	assert.Equal(t, 200.0, data.AverageSaleAmount)
	assert.Equal(t, 2, data.TotalProspects)
	assert.Equal(t, 1, data.WonProspects)
	assert.Equal(t, 50.0, data.ConversionRate)

	// Products ranked by revenue
	require.Len(t, data.TopProducts, 2)
	assert.Equal(t, "Consulting", data.TopProducts[0].ProductOrService)
	assert.Equal(t, 500.0, data.TopProducts[0].Revenue)
	assert.Equal(t, 2, data.TopProducts[0].Count)
	assert.Equal(t, "Support", data.TopProducts[1].ProductOrService)

	// Months ascending
	require.Len(t, data.SalesByMonth, 2)
	assert.Equal(t, "2026-01", data.SalesByMonth[0].Month)
	assert.Equal(t, 400.0, data.SalesByMonth[0].Revenue)
	assert.Equal(t, "2026-02", data.SalesByMonth[1].Month)

	require.Len(t, data.ProspectsByStatus, 2)
}

func TestGetAnalyticsDataDateBounds(t *testing.T) {
	database := setupTestDB(t)
	defer func() { _ = database.Close() }()

	user := createTestUser(t, database, "alice")
	client := createTestClient(t, database, user.ID, "Acme")

	for _, s := range []models.Sale{
		{ClientID: client.ID, Date: day(2026, 1, 5), Amount: 100, ProductOrService: "Support"},
		{ClientID: client.ID, Date: day(2026, 2, 5), Amount: 200, ProductOrService: "Support"},
		{ClientID: client.ID, Date: day(2026, 3, 5), Amount: 400, ProductOrService: "Support"},
	} {
		sale := s
		require.NoError(t, CreateSale(database, &sale))
	}

	start := day(2026, 2, 1)
	end := day(2026, 3, 1)
	data, err := GetAnalyticsData(database, user.ID, &start, &end)
	require.NoError(t, err)

	// Inclusive start, exclusive end
	assert.Equal(t, 1, data.TotalSales)
	assert.Equal(t, 200.0, data.TotalRevenue)
}

func TestTopProductsLimit(t *testing.T) {
	var sales []models.Sale
	for i, product := range []string{"A", "B", "C", "D", "E", "F"} {
		sales = append(sales, models.Sale{
			Amount:           float64((i + 1) * 10),
			ProductOrService: product,
		})
	}

	stats := topProducts(sales, 5)
	require.Len(t, stats, 5)
	assert.Equal(t, "F", stats[0].ProductOrService)
	assert.Equal(t, "B", stats[4].ProductOrService)
}

func TestTopProductsTiesKeepFirstSeenOrder(t *testing.T) {
	sales := []models.Sale{
		{Amount: 100, ProductOrService: "First"},
		{Amount: 100, ProductOrService: "Second"},
	}

	stats := topProducts(sales, 5)
	require.Len(t, stats, 2)
	assert.Equal(t, "First", stats[0].ProductOrService)
	assert.Equal(t, "Second", stats[1].ProductOrService)
}

func TestGetDailyCallStats(t *testing.T) {
	database := setupTestDB(t)
	defer func() { _ = database.Close() }()

	user := createTestUser(t, database, "alice")

	calls := []struct {
		date     time.Time
		feedback string
	}{
		{time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), models.FeedbackBusy},
		{time.Date(2026, 2, 1, 9, 30, 0, 0, time.UTC), models.FeedbackSuccessful},
		{time.Date(2026, 2, 1, 23, 59, 59, 0, time.UTC), models.FeedbackSuccessful},
		{time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC), models.FeedbackDNC}, // next day
	}
	for _, c := range calls {
		_, _, _, err := RecordCall(database, user.ID, "0700111222", &models.CallInput{
			Date:     c.date,
			Feedback: c.feedback,
		})
		require.NoError(t, err)
	}

	stats, err := GetDailyCallStats(database, user.ID, time.Date(2026, 2, 1, 15, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalCalls)
	assert.True(t, stats.Date.Equal(day(2026, 2, 1)))

	byFeedback := make(map[string]int)
	for _, f := range stats.ByFeedback {
		byFeedback[f.Feedback] = f.Count
	}
	assert.Equal(t, 1, byFeedback[models.FeedbackBusy])
	assert.Equal(t, 2, byFeedback[models.FeedbackSuccessful])
	assert.Zero(t, byFeedback[models.FeedbackDNC])
}

func TestGetDailyCallStatsScopedToUser(t *testing.T) {
	database := setupTestDB(t)
	defer func() { _ = database.Close() }()

	alice := createTestUser(t, database, "alice")
	bob := createTestUser(t, database, "bob")

	when := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	_, _, _, err := RecordCall(database, alice.ID, "0700111222", &models.CallInput{
		Date: when, Feedback: models.FeedbackSuccessful,
	})
	require.NoError(t, err)
	_, _, _, err = RecordCall(database, bob.ID, "0700333444", &models.CallInput{
		Date: when, Feedback: models.FeedbackSuccessful,
	})
	require.NoError(t, err)

	stats, err := GetDailyCallStats(database, alice.ID, when)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalCalls)
}
