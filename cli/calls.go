// ABOUTME: Phone call CLI commands
// ABOUTME: Human-friendly commands for recording calls and promoting numbers
package cli

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/harperreed/pipetrack/db"
	"github.com/harperreed/pipetrack/models"
	"github.com/harperreed/pipetrack/tracker"
)

// RecordCallCommand logs a call to a dialed number.
func RecordCallCommand(t *tracker.Tracker, args []string) error {
	fs := flag.NewFlagSet("record-call", flag.ExitOnError)
	userID := fs.Int64("user", 0, "Owning user id (required)")
	number := fs.String("number", "", "Dialed number (required)")
	feedback := fs.String("feedback", "", "Outcome: Successful, Busy, Not Answered, DNC, Connected-Lead (required)")
	duration := fs.Int("duration", 0, "Call duration in seconds")
	notes := fs.String("notes", "", "Short notes")
	followUp := fs.String("followup", "", "Next follow-up date (YYYY-MM-DD)")
	_ = fs.Parse(args)

	if *userID == 0 || *number == "" || *feedback == "" {
		return fmt.Errorf("--user, --number, and --feedback are required")
	}

	followUpDate, err := parseDateFlag(*followUp)
	if err != nil {
		return err
	}

	in := &models.CallInput{
		Feedback:         *feedback,
		Duration:         *duration,
		ShortNotes:       *notes,
		NextFollowUpDate: followUpDate,
	}

	pn, cl, fu, err := t.RecordCall(*userID, *number, in)
	if err != nil {
		return fmt.Errorf("failed to record call: %w", err)
	}

	fmt.Printf("Recorded call %d to %s (%s)\n", cl.ID, pn.Number, cl.Feedback)
	if fu != nil {
		fmt.Printf("Scheduled follow-up %d for %s\n", fu.ID, fu.Date.Format(dateLayout))
	}
	return nil
}

// ListCallsCommand lists a user's call history, newest first.
func ListCallsCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("list-calls", flag.ExitOnError)
	userID := fs.Int64("user", 0, "Owning user id (required)")
	_ = fs.Parse(args)

	if *userID == 0 {
		return fmt.Errorf("--user is required")
	}

	calls, err := db.ListCallLogsByUser(database, *userID)
	if err != nil {
		return fmt.Errorf("failed to list calls: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNUMBER-ID\tDATE\tFEEDBACK\tDURATION\tNOTES")
	for _, c := range calls {
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%ds\t%s\n", c.ID, c.PhoneNumberID, c.Date.Format(dateLayout), c.Feedback, c.Duration, c.ShortNotes)
	}
	return w.Flush()
}

// ListNumbersCommand lists a user's called numbers, most recently called
// first.
func ListNumbersCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("list-numbers", flag.ExitOnError)
	userID := fs.Int64("user", 0, "Owning user id (required)")
	_ = fs.Parse(args)

	if *userID == 0 {
		return fmt.Errorf("--user is required")
	}

	numbers, err := db.ListPhoneNumbers(database, *userID)
	if err != nil {
		return fmt.Errorf("failed to list numbers: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNUMBER\tLAST CALLED\tPROSPECT")
	for _, n := range numbers {
		prospect := "-"
		if n.IsProspect && n.ProspectID != nil {
			prospect = fmt.Sprintf("%d", *n.ProspectID)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", n.ID, n.Number, n.LastCalledDate.Format(dateLayout), prospect)
	}
	return w.Flush()
}

// ConvertNumberCommand promotes a called number to a prospect.
func ConvertNumberCommand(t *tracker.Tracker, args []string) error {
	fs := flag.NewFlagSet("convert-number", flag.ExitOnError)
	userID := fs.Int64("user", 0, "Owning user id (required)")
	_ = fs.Parse(args)

	if *userID == 0 {
		return fmt.Errorf("--user is required")
	}

	id, err := idArg(fs.Args(), "phone number")
	if err != nil {
		return err
	}

	prospect, err := t.ConvertPhoneNumber(*userID, id)
	if err != nil {
		return fmt.Errorf("failed to convert number: %w", err)
	}

	fmt.Printf("Converted number %d to prospect %d (%s)\n", id, prospect.ID, prospect.Phone)
	return nil
}
