// Package cmd contains all CLI commands for snoozectl
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/snooze-project/snoozectl/internal/api"
	"github.com/snooze-project/snoozectl/internal/config"
	"github.com/snooze-project/snoozectl/internal/output"
	"github.com/snooze-project/snoozectl/internal/session"
	"github.com/snooze-project/snoozectl/internal/story"
)

var (
	cfgFile   string
	verbose   bool
	quiet     bool
	cfg       *config.Config
	logger    *slog.Logger
	apiClient *api.Client
	sessions  *session.Manager
	version   = "dev"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "snoozectl",
	Short: "Hack or Snooze command line client",
	Long: `snoozectl is a command line client for the Hack or Snooze story service.

It fetches the paginated story feed and, once logged in, lets you submit,
edit, delete and favorite stories. Sessions are cached on disk so a
single login carries across invocations.

Example usage:
  snoozectl stories                  # Show the first page of the feed
  snoozectl login -u alice -p secret # Log in and cache the session
  snoozectl submit --title "Go 2 when" --author alice --url https://example.com
  snoozectl favorite abc-123         # Favorite a story by ID
  snoozectl mine                     # Show your own stories`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initApp()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	version = v
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .snoozectl.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}

// initApp reads configuration and wires the API client and session manager.
func initApp() error {
	var err error

	// Setup logger
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	// Load configuration
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Update logger based on config
	if cfg.Logging.Level == "debug" || verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}

	logger.Debug("configuration loaded",
		"base_url", cfg.API.BaseURL,
		"timeout", cfg.API.Timeout,
		"session_file", cfg.Session.File,
	)

	apiClient = api.NewClient(cfg.API.BaseURL, cfg.API.Timeout, logger)
	sessions = session.NewManager(apiClient, session.NewStore(cfg.Session.File), logger)

	return nil
}

// newPrinter builds a printer honoring config and the --quiet flag.
func newPrinter() *output.Printer {
	colors := true
	if cfg != nil {
		colors = cfg.Output.Colors
	}
	return output.NewPrinterWithOptions(output.PrinterOptions{
		ColorMode:    output.ColorAuto,
		ConfigColors: colors,
		Quiet:        quiet,
	})
}

// requireUser restores the cached session or fails with a login hint.
func requireUser(ctx context.Context) (*session.User, error) {
	user, err := sessions.RequireUser(ctx)
	if err != nil {
		return nil, output.WrapAPIError("authentication", err)
	}
	return user, nil
}

// searchPages is how deep commands that locate a story by ID will page
// into the feed before giving up.
const searchPages = 10

// findStory locates a story by ID: first in the user's own stories and
// favorites when a user is present, then by paging through the feed.
func findStory(ctx context.Context, user *session.User, storyID string) (story.Story, *story.List, error) {
	if user != nil {
		for _, st := range user.OwnStories {
			if st.ID == storyID {
				return st, nil, nil
			}
		}
		if idx := user.FavoriteIndex(storyID); idx >= 0 {
			return user.Favorites[idx], nil, nil
		}
	}

	list, err := story.FetchPages(ctx, apiClient, 0, searchPages)
	if err != nil {
		return story.Story{}, nil, err
	}
	if st, ok := list.Find(storyID); ok {
		return st, list, nil
	}
	return story.Story{}, nil, fmt.Errorf("story %s: %w", storyID, story.ErrNotFound)
}
