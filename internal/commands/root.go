package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/latch/internal/clock"
	"github.com/balkashynov/latch/internal/config"
	"github.com/balkashynov/latch/internal/db"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "latch",
	Short: "A breastfeeding timer and log",
	Long: `latch is a command-line tool for timing breastfeeding sessions.
Time each side, tag how it went, and see daily and weekly summaries from the terminal.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// app is what every data command needs: config, the open store and the
// configured user's view of it
type app struct {
	cfg   *config.Config
	store *db.Store
	scope *db.Scope
	clock clock.Clock
}

func (a *app) now() time.Time {
	return a.clock.Now()
}

// openApp loads the configuration and opens the database
func openApp() (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	store, err := db.Open(db.Options{
		Driver: cfg.Database.Driver,
		Path:   cfg.Database.Path,
		DSN:    cfg.Database.DSN,
		Debug:  cfg.Debug(),
	})
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:   cfg,
		store: store,
		scope: store.ForOwner(cfg.User),
		clock: clock.System{Location: loc},
	}, nil
}

// withApp wraps a command function to open the store first. Errors are
// returned to Execute so the process exits non-zero.
func withApp(fn func(*cobra.Command, []string, *app) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.store.Close()
		return fn(cmd, args, a)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("latch %s (commit %s, built %s)\n", version, commit, date)
	},
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.latch/config.yaml)")

	rootCmd.AddCommand(feedCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.SetHelpCommand(helpCmd)
}
