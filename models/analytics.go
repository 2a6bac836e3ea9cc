// ABOUTME: Derived analytics types computed on demand from stored entities
// ABOUTME: Defines AnalyticsData, DailyCallStats, and their group-count rows
package models

import "time"

// ProductStat is revenue and sale count for one product or service.
type ProductStat struct {
	ProductOrService string  `json:"product_or_service"`
	Revenue          float64 `json:"revenue"`
	Count            int     `json:"count"`
}

// MonthlyRevenue is revenue and sale count for one calendar month.
// Month is formatted YYYY-MM, so lexicographic order is chronological.
type MonthlyRevenue struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
	Count   int     `json:"count"`
}

// StatusCount is the number of prospects in one status.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// FeedbackCount is the number of calls with one feedback outcome.
type FeedbackCount struct {
	Feedback string `json:"feedback"`
	Count    int    `json:"count"`
}

// AnalyticsData is the on-demand summary for one user. It is never stored.
type AnalyticsData struct {
	TotalRevenue      float64          `json:"total_revenue"`
	TotalSales        int              `json:"total_sales"`
	AverageSaleAmount float64          `json:"average_sale_amount"`
	TotalProspects    int              `json:"total_prospects"`
	WonProspects      int              `json:"won_prospects"`
	ConversionRate    float64          `json:"conversion_rate"` // percent
	TopProducts       []ProductStat    `json:"top_products"`
	SalesByMonth      []MonthlyRevenue `json:"sales_by_month"`
	ProspectsByStatus []StatusCount    `json:"prospects_by_status"`
	CallsByFeedback   []FeedbackCount  `json:"calls_by_feedback"`
}

// DailyCallStats tallies one user's calls for a single UTC calendar day.
type DailyCallStats struct {
	Date       time.Time       `json:"date"`
	TotalCalls int             `json:"total_calls"`
	ByFeedback []FeedbackCount `json:"by_feedback"`
}
