package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/stembase/mading/cmd/mading/output"
	"github.com/stembase/mading/cmd/mading/tui"
	"github.com/stembase/mading/pkg/api"
)

// adminCmd represents the admin command
var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage the wall magazine (admin only)",
	Long: `Open the admin area. Requires a session with the admin role; writers
and readers are turned away before any screen opens.

Subcommands:
  articles   - Manage articles
  categories - Manage categories
  comments   - Moderate comment threads
  users      - Manage accounts
  stats      - Show the dashboard`,
}

var adminArticlesCmd = &cobra.Command{
	Use:   "articles",
	Short: "Manage articles",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := requireAdmin()
		if err != nil {
			return err
		}
		if jsonOutput {
			articles, err := app.Articles.List(context.Background(), api.ArticleQuery{})
			if err != nil {
				return fmt.Errorf("list articles: %w", err)
			}
			printArticleTable(articles)
			return nil
		}
		return tui.RunAdminArticlesUI(app)
	},
}

var adminCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Manage categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := requireAdmin()
		if err != nil {
			return err
		}
		return tui.RunAdminCategoriesUI(app)
	},
}

var adminCommentsCmd = &cobra.Command{
	Use:   "comments",
	Short: "Moderate comment threads",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := requireAdmin()
		if err != nil {
			return err
		}
		return tui.RunAdminCommentsUI(app)
	},
}

var adminUsersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := requireAdmin()
		if err != nil {
			return err
		}
		if jsonOutput {
			users, err := app.Users.List(context.Background(), api.UserQuery{})
			if err != nil {
				return fmt.Errorf("list users: %w", err)
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tUSERNAME\tEMAIL\tROLE")
			for _, u := range users {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", u.ID, u.Username, u.Email, u.Role)
			}
			w.Flush()
			return nil
		}
		return tui.RunAdminUsersUI(app)
	},
}

var adminStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := requireAdmin()
		if err != nil {
			return err
		}
		if jsonOutput {
			stats, err := app.Stats.Get(context.Background())
			if err != nil {
				return fmt.Errorf("get stats: %w", err)
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(stats)
		}
		return tui.RunStatsUI(app)
	},
}

func init() {
	rootCmd.AddCommand(adminCmd)
	adminCmd.AddCommand(adminArticlesCmd, adminCategoriesCmd, adminCommentsCmd, adminUsersCmd, adminStatsCmd)
}

// requireAdmin builds the app and rejects non-admin sessions before any
// network call or screen.
func requireAdmin() (*tui.App, error) {
	app, err := buildApp()
	if err != nil {
		return nil, err
	}
	if app.Session.Token() == "" {
		output.Error("Not logged in. Run: mading login --username <name>")
		os.Exit(1)
	}
	if app.Session.Role() != api.RoleAdmin {
		output.Error("Admin role required")
		os.Exit(1)
	}
	return app, nil
}
