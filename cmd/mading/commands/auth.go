package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/stembase/mading/cmd/mading/output"
	"github.com/stembase/mading/cmd/mading/tui"
	"github.com/stembase/mading/pkg/api"
	"github.com/stembase/mading/pkg/controller"
)

var (
	// Auth flags
	username string
	email    string
	password string
)

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and persist the session",
	Long: `Log in with a username and password. The session is written to the
session file and reused by every later command until logout.

Examples:
  mading login                                 # interactive form
  mading login --username budi                 # prompts for the password
  mading login --username budi --password ...  # non-interactive`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLogin()
	},
}

// registerCmd represents the register command
var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new reader account",
	Long: `Register a new account with the default reader role. Registration does
not log you in; run login afterwards.

Examples:
  mading register --username budi --email budi@example.com`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRegister()
	},
}

// logoutCmd represents the logout command
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the persisted session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLogout()
	},
}

// whoamiCmd represents the whoami command
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWhoami()
	},
}

func init() {
	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd)

	loginCmd.Flags().StringVarP(&username, "username", "u", "", "Username (interactive form when omitted)")
	loginCmd.Flags().StringVarP(&password, "password", "p", "", "Password (prompted when omitted)")

	registerCmd.Flags().StringVarP(&username, "username", "u", "", "Username (required)")
	registerCmd.Flags().StringVarP(&email, "email", "e", "", "Email address (required)")
	registerCmd.Flags().StringVarP(&password, "password", "p", "", "Password (prompted when omitted)")
	registerCmd.MarkFlagRequired("username")
	registerCmd.MarkFlagRequired("email")
}

// promptPassword reads the password from the terminal without echo.
func promptPassword() (string, error) {
	fmt.Fprint(os.Stderr, "Password: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}

func runLogin() error {
	app, err := buildApp()
	if err != nil {
		return err
	}

	var route controller.Route
	if username == "" {
		if route, err = tui.RunLoginUI(app); err != nil {
			return err
		}
		if route == "" {
			return nil
		}
	} else {
		if password == "" {
			if password, err = promptPassword(); err != nil {
				return err
			}
		}
		route, err = controller.SignIn(context.Background(), app.Auth, app.Session, username, password)
		if err != nil {
			output.Error("%s", api.Message(err, "Login failed. Please try again."))
			os.Exit(1)
		}
	}

	user, _ := app.Session.User()
	output.Success("Logged in as %s (%s)", user.Username, user.Role)
	if route == controller.RouteAdmin {
		output.Muted("Admin area available: mading admin --help")
	} else {
		output.Muted("Browse articles: mading browse")
	}
	return nil
}

func runRegister() error {
	app, err := buildApp()
	if err != nil {
		return err
	}
	if password == "" {
		if password, err = promptPassword(); err != nil {
			return err
		}
	}

	if err := app.Auth.Register(context.Background(), username, email, password); err != nil {
		output.Error("%s", api.Message(err, "Registration failed. Please try again."))
		os.Exit(1)
	}
	output.Success("Account created. Log in with: mading login --username %s", username)
	return nil
}

func runLogout() error {
	app, err := buildApp()
	if err != nil {
		return err
	}
	if err := controller.SignOut(app.Session); err != nil {
		return err
	}
	output.Success("Logged out")
	return nil
}

func runWhoami() error {
	app, err := buildApp()
	if err != nil {
		return err
	}
	user, ok := app.Session.User()
	if !ok {
		output.Muted("Not logged in")
		return nil
	}
	fmt.Printf("%s %s <%s>\n", output.RoleBadge(user.Role), user.Username, user.Email)
	return nil
}
