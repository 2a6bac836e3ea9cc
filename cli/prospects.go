// ABOUTME: Prospect CLI commands
// ABOUTME: Human-friendly commands for managing prospects and conversion
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

// AddProspectCommand adds a new prospect.
func AddProspectCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("add-prospect", flag.ExitOnError)
	userID := fs.Int64("user", 0, "Owning user id (required)")
	name := fs.String("name", "", "Prospect name (required)")
	phone := fs.String("phone", "", "Phone number")
	email := fs.String("email", "", "Email address")
	company := fs.String("company", "", "Company name")
	followUp := fs.String("followup", "", "Follow-up date (YYYY-MM-DD)")
	_ = fs.Parse(args)

	if *userID == 0 || *name == "" {
		return fmt.Errorf("--user and --name are required")
	}

	followUpDate, err := parseDateFlag(*followUp)
	if err != nil {
		return err
	}

	prospect := &models.Prospect{
		UserID:       *userID,
		Name:         *name,
		Phone:        *phone,
		Email:        *email,
		Company:      *company,
		Status:       models.StatusNew,
		FollowUpDate: followUpDate,
	}
	if err := db.CreateProspect(database, prospect); err != nil {
		return fmt.Errorf("failed to create prospect: %w", err)
	}

	fmt.Printf("Created prospect %d (%s)\n", prospect.ID, prospect.Name)
	return nil
}

// ListProspectsCommand lists a user's prospects sorted by follow-up date.
func ListProspectsCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("list-prospects", flag.ExitOnError)
	userID := fs.Int64("user", 0, "Owning user id (required)")
	_ = fs.Parse(args)

	if *userID == 0 {
		return fmt.Errorf("--user is required")
	}

	prospects, err := db.ListProspects(database, *userID)
	if err != nil {
		return fmt.Errorf("failed to list prospects: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPHONE\tCOMPANY\tSTATUS\tFOLLOW-UP")
	for _, p := range prospects {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Phone, p.Company, p.Status, formatDate(p.FollowUpDate))
	}
	return w.Flush()
}

// UpdateProspectCommand applies a partial update. Flags must come before the
// prospect id. Status cannot be set to Won here; conversion owns that.
func UpdateProspectCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("update-prospect", flag.ExitOnError)
	name := fs.String("name", "", "Prospect name")
	phone := fs.String("phone", "", "Phone number")
	email := fs.String("email", "", "Email address")
	company := fs.String("company", "", "Company name")
	status := fs.String("status", "", "Status (New, Contacted, Qualified)")
	followUp := fs.String("followup", "", "Follow-up date (YYYY-MM-DD)")
	_ = fs.Parse(args)

	id, err := idArg(fs.Args(), "prospect")
	if err != nil {
		return err
	}

	if *status == models.StatusWon {
		return fmt.Errorf("status Won is only set by convert-prospect")
	}

	followUpDate, err := parseDateFlag(*followUp)
	if err != nil {
		return err
	}

	set := setFlags(fs)
	update := &db.ProspectUpdate{
		Name:         optString(set, "name", *name),
		Phone:        optString(set, "phone", *phone),
		Email:        optString(set, "email", *email),
		Company:      optString(set, "company", *company),
		Status:       optString(set, "status", *status),
		FollowUpDate: followUpDate,
	}
	if err := db.UpdateProspect(database, id, update); err != nil {
		return fmt.Errorf("failed to update prospect: %w", err)
	}

	fmt.Printf("Updated prospect %d\n", id)
	return nil
}

// DeleteProspectCommand removes a prospect with its follow-ups.
func DeleteProspectCommand(t *tracker.Tracker, args []string) error {
	fs := flag.NewFlagSet("delete-prospect", flag.ExitOnError)
	userID := fs.Int64("user", 0, "Owning user id (required)")
	_ = fs.Parse(args)

	if *userID == 0 {
		return fmt.Errorf("--user is required")
	}

	id, err := idArg(fs.Args(), "prospect")
	if err != nil {
		return err
	}

	if err := t.DeleteProspect(*userID, id); err != nil {
		return fmt.Errorf("failed to delete prospect: %w", err)
	}

	fmt.Printf("Deleted prospect %d\n", id)
	return nil
}

// ConvertProspectCommand promotes a prospect to a client with a sale.
// Flags must come before the prospect id.
func ConvertProspectCommand(t *tracker.Tracker, args []string) error {
	fs := flag.NewFlagSet("convert-prospect", flag.ExitOnError)
	amount := fs.Float64("amount", 0, "Sale amount (required, positive)")
	product := fs.String("product", "", "Product or service sold (required)")
	date := fs.String("date", "", "Sale date (YYYY-MM-DD, default today)")
	_ = fs.Parse(args)

	id, err := idArg(fs.Args(), "prospect")
	if err != nil {
		return err
	}

	if *amount <= 0 || *product == "" {
		return fmt.Errorf("--amount (positive) and --product are required")
	}

	saleDate, err := parseDateFlag(*date)
	if err != nil {
		return err
	}

	sale := &models.SaleInput{
		Amount:           *amount,
		ProductOrService: *product,
	}
	if saleDate != nil {
		sale.Date = *saleDate
	} else {
		sale.Date = todayUTC()
	}

	client, newSale, err := t.ConvertProspect(id, sale)
	if err != nil {
		return fmt.Errorf("failed to convert prospect: %w", err)
	}

	fmt.Printf("Converted prospect %d to client %d with sale %d (%.2f for %s)\n",
		id, client.ID, newSale.ID, newSale.Amount, newSale.ProductOrService)
	return nil
}
