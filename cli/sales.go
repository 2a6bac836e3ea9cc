// ABOUTME: Sale CLI commands
// ABOUTME: Human-friendly commands for recording and listing sales
package cli

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/harperreed/pipetrack/db"
	"github.com/harperreed/pipetrack/models"
)

// AddSaleCommand records a standalone sale against a client.
func AddSaleCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("add-sale", flag.ExitOnError)
	clientID := fs.Int64("client", 0, "Client id (required)")
	amount := fs.Float64("amount", 0, "Sale amount (required, positive)")
	product := fs.String("product", "", "Product or service sold (required)")
	date := fs.String("date", "", "Sale date (YYYY-MM-DD, default today)")
	_ = fs.Parse(args)

	if *clientID == 0 || *amount <= 0 || *product == "" {
		return fmt.Errorf("--client, --amount (positive), and --product are required")
	}

	client, err := db.GetClient(database, *clientID)
	if err != nil {
		return fmt.Errorf("failed to look up client: %w", err)
	}
	if client == nil {
		return fmt.Errorf("client %d: %w", *clientID, db.ErrNotFound)
	}

	saleDate, err := parseDateFlag(*date)
	if err != nil {
		return err
	}

	sale := &models.Sale{
		ClientID:         *clientID,
		Amount:           *amount,
		ProductOrService: *product,
		Date:             todayUTC(),
	}
	if saleDate != nil {
		sale.Date = *saleDate
	}

	if err := db.CreateSale(database, sale); err != nil {
		return fmt.Errorf("failed to record sale: %w", err)
	}

	fmt.Printf("Recorded sale %d (%.2f for %s)\n", sale.ID, sale.Amount, sale.ProductOrService)
	return nil
}

// ListSalesCommand lists sales for a user or a single client, newest first.
func ListSalesCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("list-sales", flag.ExitOnError)
	userID := fs.Int64("user", 0, "Owning user id")
	clientID := fs.Int64("client", 0, "Client id")
	_ = fs.Parse(args)

	var sales []models.Sale
	var err error
	switch {
	case *clientID != 0:
		sales, err = db.ListSalesByClient(database, *clientID)
	case *userID != 0:
		sales, err = db.ListSalesByUser(database, *userID)
	default:
		return fmt.Errorf("--user or --client is required")
	}
	if err != nil {
		return fmt.Errorf("failed to list sales: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCLIENT\tDATE\tAMOUNT\tPRODUCT")
	for _, s := range sales {
		fmt.Fprintf(w, "%d\t%d\t%s\t%.2f\t%s\n", s.ID, s.ClientID, s.Date.Format(dateLayout), s.Amount, s.ProductOrService)
	}
	return w.Flush()
}
