// ABOUTME: Client CLI commands
// ABOUTME: Human-friendly commands for managing clients
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

// AddClientCommand adds a new client.
func AddClientCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("add-client", flag.ExitOnError)
	userID := fs.Int64("user", 0, "Owning user id (required)")
	name := fs.String("name", "", "Client name (required)")
	phone := fs.String("phone", "", "Phone number")
	email := fs.String("email", "", "Email address")
	company := fs.String("company", "", "Company name")
	industry := fs.String("industry", "", "Industry")
	_ = fs.Parse(args)

	if *userID == 0 || *name == "" {
		return fmt.Errorf("--user and --name are required")
	}

	client := &models.Client{
		UserID:   *userID,
		Name:     *name,
		Phone:    *phone,
		Email:    *email,
		Company:  *company,
		Industry: *industry,
	}
	if err := db.CreateClient(database, client); err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	fmt.Printf("Created client %d (%s)\n", client.ID, client.Name)
	return nil
}

// ListClientsCommand lists a user's clients sorted by name.
func ListClientsCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("list-clients", flag.ExitOnError)
	userID := fs.Int64("user", 0, "Owning user id (required)")
	_ = fs.Parse(args)

	if *userID == 0 {
		return fmt.Errorf("--user is required")
	}

	clients, err := db.ListClients(database, *userID)
	if err != nil {
		return fmt.Errorf("failed to list clients: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPHONE\tEMAIL\tCOMPANY\tINDUSTRY")
	for _, c := range clients {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Phone, c.Email, c.Company, c.Industry)
	}
	return w.Flush()
}

// UpdateClientCommand applies a partial update. Flags must come before the
// client id.
func UpdateClientCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("update-client", flag.ExitOnError)
	name := fs.String("name", "", "Client name")
	phone := fs.String("phone", "", "Phone number")
	email := fs.String("email", "", "Email address")
	company := fs.String("company", "", "Company name")
	industry := fs.String("industry", "", "Industry")
	_ = fs.Parse(args)

	id, err := idArg(fs.Args(), "client")
	if err != nil {
		return err
	}

	set := setFlags(fs)
	update := &db.ClientUpdate{
		Name:     optString(set, "name", *name),
		Phone:    optString(set, "phone", *phone),
		Email:    optString(set, "email", *email),
		Company:  optString(set, "company", *company),
		Industry: optString(set, "industry", *industry),
	}
	if err := db.UpdateClient(database, id, update); err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}

	fmt.Printf("Updated client %d\n", id)
	return nil
}

// DeleteClientCommand removes a client with its sales and follow-ups.
func DeleteClientCommand(t *tracker.Tracker, args []string) error {
	fs := flag.NewFlagSet("delete-client", flag.ExitOnError)
	userID := fs.Int64("user", 0, "Owning user id (required)")
	_ = fs.Parse(args)

	if *userID == 0 {
		return fmt.Errorf("--user is required")
	}

	id, err := idArg(fs.Args(), "client")
	if err != nil {
		return err
	}

	if err := t.DeleteClient(*userID, id); err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}

	fmt.Printf("Deleted client %d\n", id)
	return nil
}
