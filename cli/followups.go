// ABOUTME: Follow-up CLI commands
// ABOUTME: Human-friendly commands for the follow-up lifecycle
package cli

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/harperreed/pipetrack/db"
	"github.com/harperreed/pipetrack/models"
	"github.com/harperreed/pipetrack/tracker"
)

// AddFollowUpCommand schedules a follow-up for a client, prospect, or
// phone number.
func AddFollowUpCommand(t *tracker.Tracker, args []string) error {
	fs := flag.NewFlagSet("add-followup", flag.ExitOnError)
	userID := fs.Int64("user", 0, "Owning user id (required)")
	entityType := fs.String("type", "", "Entity type: client, prospect, or phoneNumber (required)")
	entityID := fs.Int64("entity", 0, "Entity id (required)")
	date := fs.String("date", "", "Follow-up date (YYYY-MM-DD, required)")
	notes := fs.String("notes", "", "Notes")
	_ = fs.Parse(args)

	if *userID == 0 || *entityType == "" || *entityID == 0 || *date == "" {
		return fmt.Errorf("--user, --type, --entity, and --date are required")
	}

	var ref models.EntityRef
	switch models.EntityType(*entityType) {
	case models.EntityClient:
		ref = models.ClientRef(*entityID)
	case models.EntityProspect:
		ref = models.ProspectRef(*entityID)
	case models.EntityPhoneNumber:
		ref = models.PhoneNumberRef(*entityID)
	default:
		return fmt.Errorf("unknown entity type %q", *entityType)
	}

	followUpDate, err := parseDateFlag(*date)
	if err != nil {
		return err
	}

	f := &models.FollowUp{
		Entity: ref,
		Date:   *followUpDate,
		Notes:  *notes,
	}
	if err := t.AddFollowUp(*userID, f); err != nil {
		return fmt.Errorf("failed to create follow-up: %w", err)
	}

	fmt.Printf("Created follow-up %d for %s %d\n", f.ID, ref.Type, ref.ID)
	return nil
}

// ListFollowUpsCommand lists a user's pending follow-ups with their
// resolved entities, due first. --all includes completed ones.
func ListFollowUpsCommand(t *tracker.Tracker, args []string) error {
	fs := flag.NewFlagSet("list-followups", flag.ExitOnError)
	userID := fs.Int64("user", 0, "Owning user id (required)")
	all := fs.Bool("all", false, "Include completed follow-ups")
	_ = fs.Parse(args)

	if *userID == 0 {
		return fmt.Errorf("--user is required")
	}

	var followUps []models.FollowUpDetail
	var err error
	if *all {
		followUps, err = t.AllFollowUps(*userID)
	} else {
		followUps, err = t.PendingFollowUps(*userID)
	}
	if err != nil {
		return fmt.Errorf("failed to list follow-ups: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tTYPE\tWHO\tPHONE\tDONE\tNOTES")
	for _, f := range followUps {
		done := ""
		if f.IsCompleted {
			done = "yes"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n", f.ID, f.Date.Format(dateLayout), f.Entity.Type, f.EntityName, f.EntityPhone, done, f.Notes)
	}
	return w.Flush()
}

// UpdateFollowUpCommand changes a follow-up's date or notes. Flags must
// come before the follow-up id.
func UpdateFollowUpCommand(t *tracker.Tracker, args []string) error {
	fs := flag.NewFlagSet("update-followup", flag.ExitOnError)
	userID := fs.Int64("user", 0, "Owning user id (required)")
	date := fs.String("date", "", "Follow-up date (YYYY-MM-DD)")
	notes := fs.String("notes", "", "Notes")
	_ = fs.Parse(args)

	if *userID == 0 {
		return fmt.Errorf("--user is required")
	}

	id, err := idArg(fs.Args(), "follow-up")
	if err != nil {
		return err
	}

	followUpDate, err := parseDateFlag(*date)
	if err != nil {
		return err
	}

	set := setFlags(fs)
	update := &db.FollowUpUpdate{
		Date:  followUpDate,
		Notes: optString(set, "notes", *notes),
	}
	if err := t.UpdateFollowUp(*userID, id, update); err != nil {
		return fmt.Errorf("failed to update follow-up: %w", err)
	}

	fmt.Printf("Updated follow-up %d\n", id)
	return nil
}

// CompleteFollowUpCommand marks a follow-up done.
func CompleteFollowUpCommand(t *tracker.Tracker, args []string) error {
	fs := flag.NewFlagSet("complete-followup", flag.ExitOnError)
	userID := fs.Int64("user", 0, "Owning user id (required)")
	_ = fs.Parse(args)

	if *userID == 0 {
		return fmt.Errorf("--user is required")
	}

	id, err := idArg(fs.Args(), "follow-up")
	if err != nil {
		return err
	}

	if err := t.CompleteFollowUp(*userID, id); err != nil {
		return fmt.Errorf("failed to complete follow-up: %w", err)
	}

	fmt.Printf("Completed follow-up %d\n", id)
	return nil
}

// DeleteFollowUpCommand removes a follow-up.
func DeleteFollowUpCommand(t *tracker.Tracker, args []string) error {
	fs := flag.NewFlagSet("delete-followup", flag.ExitOnError)
	userID := fs.Int64("user", 0, "Owning user id (required)")
	_ = fs.Parse(args)

	if *userID == 0 {
		return fmt.Errorf("--user is required")
	}

	id, err := idArg(fs.Args(), "follow-up")
	if err != nil {
		return err
	}

	if err := t.DeleteFollowUp(*userID, id); err != nil {
		return fmt.Errorf("failed to delete follow-up: %w", err)
	}

	fmt.Printf("Deleted follow-up %d\n", id)
	return nil
}
