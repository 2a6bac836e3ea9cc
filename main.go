// ABOUTME: Entry point for the pipetrack CLI
// ABOUTME: Routes account, pipeline, call, and analytics commands
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/harperreed/pipetrack/auth"
	"github.com/harperreed/pipetrack/cli"
	"github.com/harperreed/pipetrack/config"
	"github.com/harperreed/pipetrack/db"
	"github.com/harperreed/pipetrack/notify"
	"github.com/harperreed/pipetrack/tracker"
)

const version = "0.1.0"

func main() {
	// Global flags
	showVersion := flag.Bool("version", false, "Show version and exit")
	dbPath := flag.String("db-path", "", "Database path (default: ~/.local/share/pipetrack/pipetrack.db)")
	initOnly := flag.Bool("init", false, "Initialize database and exit")

	_ = flag.CommandLine.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("pipetrack version %s\n", version)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}

	database, err := db.OpenDatabase(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer database.Close()

	if *initOnly {
		log.Printf("Database initialized at %s", cfg.DBPath)
		os.Exit(0)
	}

	identity, err := auth.New(database, cfg.TokenDir,
		time.Duration(cfg.SessionTTLMin)*time.Minute,
		time.Duration(cfg.ResetTokenTTLMin)*time.Minute)
	if err != nil {
		log.Fatalf("Failed to start identity service: %v", err)
	}
	defer func() { _ = identity.Close() }()

	t, err := tracker.New(database, notify.LogBridge{})
	if err != nil {
		log.Fatalf("Failed to start tracker: %v", err)
	}

	command := args[0]
	commandArgs := args[1:]

	if err := route(database, identity, t, command, commandArgs); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func route(database *sql.DB, identity *auth.Service, t *tracker.Tracker, command string, args []string) error {
	switch command {
	// Account commands
	case "signup":
		return cli.SignupCommand(identity, args)
	case "signin":
		return cli.SigninCommand(identity, args)
	case "reset-password":
		return cli.ResetPasswordCommand(identity, args)

	// Client commands
	case "add-client":
		return cli.AddClientCommand(database, args)
	case "list-clients":
		return cli.ListClientsCommand(database, args)
	case "update-client":
		return cli.UpdateClientCommand(database, args)
	case "delete-client":
		return cli.DeleteClientCommand(t, args)

	// Prospect commands
	case "add-prospect":
		return cli.AddProspectCommand(database, args)
	case "list-prospects":
		return cli.ListProspectsCommand(database, args)
	case "update-prospect":
		return cli.UpdateProspectCommand(database, args)
	case "delete-prospect":
		return cli.DeleteProspectCommand(t, args)
	case "convert-prospect":
		return cli.ConvertProspectCommand(t, args)

	// Sale commands
	case "add-sale":
		return cli.AddSaleCommand(database, args)
	case "list-sales":
		return cli.ListSalesCommand(database, args)

	// Call commands
	case "record-call":
		return cli.RecordCallCommand(t, args)
	case "list-calls":
		return cli.ListCallsCommand(database, args)
	case "list-numbers":
		return cli.ListNumbersCommand(database, args)
	case "convert-number":
		return cli.ConvertNumberCommand(t, args)

	// Follow-up commands
	case "add-followup":
		return cli.AddFollowUpCommand(t, args)
	case "list-followups":
		return cli.ListFollowUpsCommand(t, args)
	case "update-followup":
		return cli.UpdateFollowUpCommand(t, args)
	case "complete-followup":
		return cli.CompleteFollowUpCommand(t, args)
	case "delete-followup":
		return cli.DeleteFollowUpCommand(t, args)

	// Analytics commands
	case "analytics":
		return cli.AnalyticsCommand(database, args)
	case "daily-stats":
		return cli.DailyStatsCommand(database, args)

	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
		return nil
	}
}

func printUsage() {
	fmt.Printf(`pipetrack v%s - Local sales pipeline tracker

USAGE:
  pipetrack [global flags] <command> [flags]

GLOBAL FLAGS:
  --version              Show version and exit
  --db-path <path>       Database path (default: ~/.local/share/pipetrack/pipetrack.db)
  --init                 Initialize database and exit

ACCOUNT COMMANDS:
  pipetrack signup --username <u> --password <p> [--name <n>]
  pipetrack signin --username <u> --password <p>
  pipetrack reset-password --username <u>
  pipetrack reset-password --token <t> --password <p>

CLIENT COMMANDS:
  pipetrack add-client --user <id> --name <n> [--phone --email --company --industry]
  pipetrack list-clients --user <id>
  pipetrack update-client [flags] <id>
  pipetrack delete-client --user <id> <id>

PROSPECT COMMANDS:
  pipetrack add-prospect --user <id> --name <n> [--phone --email --company --followup <date>]
  pipetrack list-prospects --user <id>
  pipetrack update-prospect [flags] <id>
  pipetrack delete-prospect --user <id> <id>
  pipetrack convert-prospect --amount <a> --product <p> [--date <d>] <id>

SALE COMMANDS:
  pipetrack add-sale --client <id> --amount <a> --product <p> [--date <d>]
  pipetrack list-sales --user <id> | --client <id>

CALL COMMANDS:
  pipetrack record-call --user <id> --number <n> --feedback <f> [--duration --notes --followup <date>]
  pipetrack list-calls --user <id>
  pipetrack list-numbers --user <id>
  pipetrack convert-number --user <id> <id>

FOLLOW-UP COMMANDS:
  pipetrack add-followup --user <id> --type <t> --entity <id> --date <d> [--notes]
  pipetrack list-followups --user <id>
  pipetrack update-followup --user <id> [--date --notes] <id>
  pipetrack complete-followup --user <id> <id>
  pipetrack delete-followup --user <id> <id>

ANALYTICS COMMANDS:
  pipetrack analytics --user <id> [--start <d> --end <d>]
  pipetrack daily-stats --user <id> [--date <d>]

EXAMPLES:
  # Create an account
  pipetrack signup --username alice --password s3cret --name "Alice"

  # Log a call and schedule a follow-up
  pipetrack record-call --user 1 --number 0700111222 --feedback Connected-Lead --followup 2026-09-05

  # Promote the number to a prospect, then convert once the deal closes
  pipetrack convert-number --user 1 1
  pipetrack convert-prospect --amount 1500 --product "Consulting" 1

  # Review the pipeline
  pipetrack analytics --user 1

`, version)
}
