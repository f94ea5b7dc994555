package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mindora-app/mindora/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "mindora",
	Short: "Workplace wellness in your terminal",
	Long: "Mindora: check your mood, take a burnout self-assessment, follow guided " +
		"breathing and meditation exercises, and keep a private journal.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logFile != nil {
			_ = logFile.Close()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides MINDORA_DB env var)")
	rootCmd.PersistentFlags().String("env-file", ".env", "Load environment variables from this file if it exists")
	rootCmd.Flags().Bool("no-splash", false, "Open the dashboard without the welcome animation")

	rootCmd.AddCommand(loginCmd, registerCmd, forgotPasswordCmd, logoutCmd, whoamiCmd)
	rootCmd.AddCommand(assessCmd, exercisesCmd, journalCmd, statsCmd)
	rootCmd.AddCommand(llmCmd, resetCmd, updateCmd, versionCmd)
}

var logFile *os.File

// setup loads the .env file and points slog at a log file next to the
// database. Variables already set in the environment win over the file.
func setup(cmd *cobra.Command) error {
	envFile, _ := cmd.Flags().GetString("env-file")
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(filepath.Dir(dbPath), "mindora.log"),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	logFile = f
	slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{
		Level: parseLevel(os.Getenv("MINDORA_LOG_LEVEL")),
	})))
	return nil
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then MINDORA_DB env var, then the default XDG path.
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
