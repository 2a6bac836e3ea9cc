// ABOUTME: Analytics CLI commands
// ABOUTME: Human-friendly summaries of revenue, conversion, and call stats
package cli

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/harperreed/pipetrack/db"
)

// AnalyticsCommand prints the user's pipeline summary, optionally bounded
// by sale date.
func AnalyticsCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("analytics", flag.ExitOnError)
	userID := fs.Int64("user", 0, "Owning user id (required)")
	start := fs.String("start", "", "Start date (YYYY-MM-DD, inclusive)")
	end := fs.String("end", "", "End date (YYYY-MM-DD, exclusive)")
	_ = fs.Parse(args)

	if *userID == 0 {
		return fmt.Errorf("--user is required")
	}

	startDate, err := parseDateFlag(*start)
	if err != nil {
		return err
	}
	endDate, err := parseDateFlag(*end)
	if err != nil {
		return err
	}

	data, err := db.GetAnalyticsData(database, *userID, startDate, endDate)
	if err != nil {
		return fmt.Errorf("failed to compute analytics: %w", err)
	}

	fmt.Printf("Total revenue:    %.2f (%d sales)\n", data.TotalRevenue, data.TotalSales)
	fmt.Printf("Average sale:     %.2f\n", data.AverageSaleAmount)
	fmt.Printf("Conversion rate:  %.1f%% (%d of %d prospects won)\n", data.ConversionRate, data.WonProspects, data.TotalProspects)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

	if len(data.TopProducts) > 0 {
		fmt.Fprintln(w, "\nTOP PRODUCTS\tREVENUE\tSALES")
		for _, p := range data.TopProducts {
			fmt.Fprintf(w, "%s\t%.2f\t%d\n", p.ProductOrService, p.Revenue, p.Count)
		}
	}

	if len(data.SalesByMonth) > 0 {
		fmt.Fprintln(w, "\nMONTH\tREVENUE\tSALES")
		for _, m := range data.SalesByMonth {
			fmt.Fprintf(w, "%s\t%.2f\t%d\n", m.Month, m.Revenue, m.Count)
		}
	}

	if len(data.ProspectsByStatus) > 0 {
		fmt.Fprintln(w, "\nPROSPECT STATUS\tCOUNT")
		for _, s := range data.ProspectsByStatus {
			fmt.Fprintf(w, "%s\t%d\n", s.Status, s.Count)
		}
	}

	if len(data.CallsByFeedback) > 0 {
		fmt.Fprintln(w, "\nCALL FEEDBACK\tCOUNT")
		for _, f := range data.CallsByFeedback {
			fmt.Fprintf(w, "%s\t%d\n", f.Feedback, f.Count)
		}
	}

	return w.Flush()
}

// DailyStatsCommand prints call tallies for one UTC calendar day.
func DailyStatsCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("daily-stats", flag.ExitOnError)
	userID := fs.Int64("user", 0, "Owning user id (required)")
	date := fs.String("date", "", "Day to tally (YYYY-MM-DD, default today)")
	_ = fs.Parse(args)

	if *userID == 0 {
		return fmt.Errorf("--user is required")
	}

	day, err := parseDateFlag(*date)
	if err != nil {
		return err
	}
	statsDay := todayUTC()
	if day != nil {
		statsDay = *day
	}

	stats, err := db.GetDailyCallStats(database, *userID, statsDay)
	if err != nil {
		return fmt.Errorf("failed to compute daily stats: %w", err)
	}

	fmt.Printf("Calls on %s: %d\n", stats.Date.Format(dateLayout), stats.TotalCalls)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, f := range stats.ByFeedback {
		fmt.Fprintf(w, "%s\t%d\n", f.Feedback, f.Count)
	}
	return w.Flush()
}
