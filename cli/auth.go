// ABOUTME: Identity CLI commands
// ABOUTME: Human-friendly commands for signup, signin, and password reset
package cli

import (
	"flag"
	"fmt"

	"github.com/harperreed/pipetrack/auth"
)

// SignupCommand creates a new user account.
func SignupCommand(svc *auth.Service, args []string) error {
	fs := flag.NewFlagSet("signup", flag.ExitOnError)
	username := fs.String("username", "", "Username (required)")
	password := fs.String("password", "", "Password (required)")
	name := fs.String("name", "", "Display name")
	_ = fs.Parse(args)

	if *username == "" || *password == "" {
		return fmt.Errorf("--username and --password are required")
	}

	user, err := svc.Signup(*username, *password, *name)
	if err != nil {
		return err
	}

	fmt.Printf("Created user %d (%s)\n", user.ID, user.Username)
	return nil
}

// SigninCommand verifies credentials and issues a session token.
func SigninCommand(svc *auth.Service, args []string) error {
	fs := flag.NewFlagSet("signin", flag.ExitOnError)
	username := fs.String("username", "", "Username (required)")
	password := fs.String("password", "", "Password (required)")
	_ = fs.Parse(args)

	if *username == "" || *password == "" {
		return fmt.Errorf("--username and --password are required")
	}

	user, err := svc.Signin(*username, *password)
	if err != nil {
		return err
	}

	token, err := svc.NewSession(user.ID)
	if err != nil {
		return err
	}

	fmt.Printf("Signed in as %s (user %d)\nSession: %s\n", user.Username, user.ID, token)
	return nil
}

// ResetPasswordCommand issues a reset token or applies one.
func ResetPasswordCommand(svc *auth.Service, args []string) error {
	fs := flag.NewFlagSet("reset-password", flag.ExitOnError)
	username := fs.String("username", "", "Username to issue a reset token for")
	token := fs.String("token", "", "Reset token to redeem")
	password := fs.String("password", "", "New password (with --token)")
	_ = fs.Parse(args)

	switch {
	case *username != "":
		t, err := svc.IssueResetToken(*username)
		if err != nil {
			return err
		}
		fmt.Printf("Reset token: %s\n", t)
		return nil

	case *token != "" && *password != "":
		if err := svc.ResetPassword(*token, *password); err != nil {
			return err
		}
		fmt.Println("Password updated")
		return nil

	default:
		return fmt.Errorf("either --username, or --token with --password, is required")
	}
}
