package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stembase/mading/cmd/mading/tui"
	"github.com/stembase/mading/pkg/api"
	"github.com/stembase/mading/pkg/config"
	"github.com/stembase/mading/pkg/logger"
	"github.com/stembase/mading/pkg/session"
)

var (
	// Global flags
	apiURL      string
	sessionFile string
	verbose     bool
	jsonOutput  bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "mading",
	Short: "Mading - school wall magazine client",
	Long: `Mading is a terminal client for the school wall magazine site.

Readers browse, search, and like articles and join the comment threads.
Writers and admins manage articles, categories, comments, and accounts
through the admin area.

Configuration comes from MADING_* environment variables; flags override
them. Sessions persist across invocations, so one login is enough.`,
	Version: "1.4.0",
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "API base URL (default from MADING_API_URL)")
	rootCmd.PersistentFlags().StringVar(&sessionFile, "session-file", "", "Session file path (default from MADING_SESSION_FILE)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
}

// buildApp loads configuration, opens the session store, and wires the
// API client plus services. Every command goes through it.
func buildApp() (*tui.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if apiURL != "" {
		cfg.APIBaseURL = apiURL
	}
	if sessionFile != "" {
		cfg.SessionFile = sessionFile
	}
	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	log := logger.New(os.Stderr, level)

	store, err := session.NewFileStore(cfg.SessionFile)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}

	client := api.NewClient(cfg.APIBaseURL,
		api.WithTokenSource(store),
		api.WithLogger(log),
	)
	return tui.NewApp(client, store, log, cfg.ArticlesPerPage, cfg.UsersPerPage), nil
}
