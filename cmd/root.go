package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/abhisek/lifewheel/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lifewheel",
	Short: "Wheel of Life self-assessment",
	Long:  "Lifewheel: rate six areas of your life, see how balanced they are and track the trend over time.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, false)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LIFEWHEEL_DB env var)")
	rootCmd.PersistentFlags().String("log-file", "", "Log file path (default <data dir>/lifewheel.log)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(deliveriesCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then LIFEWHEEL_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore resolves the database path and opens it.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// fileLogger opens the --log-file (or the default one in the data
// directory) for a text slog handler. The TUI owns stdout and stderr.
func fileLogger(cmd *cobra.Command) (*slog.Logger, io.Closer, error) {
	path, _ := cmd.Flags().GetString("log-file")
	if path == "" {
		dir, err := store.DataDir()
		if err != nil {
			return nil, nil, err
		}
		path = filepath.Join(dir, "lifewheel.log")
	}
	if err := store.EnsureDir(path); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return slog.New(slog.NewTextHandler(f, nil)), f, nil
}
