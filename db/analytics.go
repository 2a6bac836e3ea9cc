// ABOUTME: Analytics aggregation over per-user reads
// ABOUTME: Computes revenue, conversion, rollups, and daily call stats in memory
package db

import (
	"database/sql"
	"sort"
	"time"

	"github.com/harperreed/pipetrack/models"
)

// GetAnalyticsData reads the user's sales, prospects, and calls and derives
// the summary in memory. start and end, when non-nil, bound the sales by
// sale date (inclusive start, exclusive end).
func GetAnalyticsData(database *sql.DB, userID int64, start, end *time.Time) (*models.AnalyticsData, error) {
	sales, err := listSalesBounded(database, userID, start, end)
	if err != nil {
		return nil, err
	}

	prospects, err := ListProspects(database, userID)
	if err != nil {
		return nil, err
	}

	calls, err := ListCallLogsByUser(database, userID)
	if err != nil {
		return nil, err
	}

	data := &models.AnalyticsData{
		TotalSales:     len(sales),
		TotalProspects: len(prospects),
	}

	for _, s := range sales {
		data.TotalRevenue += s.Amount
	}
	if data.TotalSales > 0 {
		data.AverageSaleAmount = data.TotalRevenue / float64(data.TotalSales)
	}

	for _, p := range prospects {
		if p.Status == models.StatusWon {
			data.WonProspects++
		}
	}
	if data.TotalProspects > 0 {
		data.ConversionRate = float64(data.WonProspects) / float64(data.TotalProspects) * 100
	}

	data.TopProducts = topProducts(sales, 5)
	data.SalesByMonth = salesByMonth(sales)
	data.ProspectsByStatus = prospectsByStatus(prospects)
	data.CallsByFeedback = callsByFeedback(calls)

	return data, nil
}

func listSalesBounded(database *sql.DB, userID int64, start, end *time.Time) ([]models.Sale, error) {
	query := `
		SELECT s.id, s.client_id, s.sale_date, s.amount, s.product_or_service
		FROM sales s
		INNER JOIN clients c ON s.client_id = c.id
		WHERE c.user_id = ?`
	args := []any{userID}

	if start != nil {
		query += ` AND s.sale_date >= ?`
		args = append(args, *start)
	}
	if end != nil {
		query += ` AND s.sale_date < ?`
		args = append(args, *end)
	}
	query += ` ORDER BY s.sale_date`

	rows, err := database.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSales(rows)
}

// topProducts groups sales by product, sorted by revenue descending. Ties
// keep first-encountered order.
func topProducts(sales []models.Sale, limit int) []models.ProductStat {
	index := make(map[string]int)
	var stats []models.ProductStat

	for _, s := range sales {
		i, ok := index[s.ProductOrService]
		if !ok {
			i = len(stats)
			index[s.ProductOrService] = i
			stats = append(stats, models.ProductStat{ProductOrService: s.ProductOrService})
		}
		stats[i].Revenue += s.Amount
		stats[i].Count++
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Revenue > stats[j].Revenue
	})

	if len(stats) > limit {
		stats = stats[:limit]
	}
	return stats
}

// salesByMonth groups sales by UTC calendar month, ascending by month key.
func salesByMonth(sales []models.Sale) []models.MonthlyRevenue {
	index := make(map[string]int)
	var months []models.MonthlyRevenue

	for _, s := range sales {
		key := s.Date.UTC().Format("2006-01")
		i, ok := index[key]
		if !ok {
			i = len(months)
			index[key] = i
			months = append(months, models.MonthlyRevenue{Month: key})
		}
		months[i].Revenue += s.Amount
		months[i].Count++
	}

	sort.Slice(months, func(i, j int) bool {
		return months[i].Month < months[j].Month
	})
	return months
}

// prospectsByStatus counts prospects per status in first-occurrence order.
func prospectsByStatus(prospects []models.Prospect) []models.StatusCount {
	index := make(map[string]int)
	var counts []models.StatusCount

	for _, p := range prospects {
		i, ok := index[p.Status]
		if !ok {
			i = len(counts)
			index[p.Status] = i
			counts = append(counts, models.StatusCount{Status: p.Status})
		}
		counts[i].Count++
	}
	return counts
}

// callsByFeedback counts calls per feedback in first-occurrence order.
func callsByFeedback(calls []models.CallLog) []models.FeedbackCount {
	index := make(map[string]int)
	var counts []models.FeedbackCount

	for _, cl := range calls {
		i, ok := index[cl.Feedback]
		if !ok {
			i = len(counts)
			index[cl.Feedback] = i
			counts = append(counts, models.FeedbackCount{Feedback: cl.Feedback})
		}
		counts[i].Count++
	}
	return counts
}

// GetDailyCallStats tallies the user's calls for the UTC calendar day of
// the given date. Day boundaries are UTC: call timestamps are stored in UTC,
// so UTC days are the only boundaries stable across device timezone changes.
func GetDailyCallStats(database *sql.DB, userID int64, day time.Time) (*models.DailyCallStats, error) {
	d := day.UTC()
	dayStart := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1)

	rows, err := database.Query(`
		SELECT l.id, l.phone_number_id, l.call_date, l.feedback, l.duration, l.short_notes, l.next_follow_up_date
		FROM call_logs l
		INNER JOIN phone_numbers p ON l.phone_number_id = p.id
		WHERE p.user_id = ? AND l.call_date >= ? AND l.call_date < ?
		ORDER BY l.call_date
	`, userID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	calls, err := scanCallLogs(rows)
	if err != nil {
		return nil, err
	}

	return &models.DailyCallStats{
		Date:       dayStart,
		TotalCalls: len(calls),
		ByFeedback: callsByFeedback(calls),
	}, nil
}
