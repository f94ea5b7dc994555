package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mindora-app/mindora/internal/app"
	"github.com/mindora-app/mindora/internal/auth"
	"github.com/mindora-app/mindora/internal/exercises"
	"github.com/mindora-app/mindora/internal/llm"
	"github.com/mindora-app/mindora/internal/screens"
	"github.com/mindora-app/mindora/internal/selfupdate"
	"github.com/mindora-app/mindora/internal/tips"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	session, err := auth.LoadSession(ctx, st.KVRepo())
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	catalog, err := loadCatalog()
	if err != nil {
		return err
	}

	eventRepo := st.EventRepo()
	var provider llm.Provider
	if cfg, ok := llm.Resolve(); ok {
		provider, err = llm.NewProvider(ctx, cfg, eventRepo)
		if err != nil {
			slog.Warn("LLM provider unavailable", "provider", cfg.Provider, "error", err)
			provider = nil
		} else {
			slog.Info("LLM provider ready", "provider", cfg.Provider, "model", provider.ModelID())
		}
	}

	skipWelcome, _ := cmd.Flags().GetBool("no-splash")
	return app.Run(ctx, app.Options{
		SkipWelcome: skipWelcome,
		Deps: &screens.Deps{
			Session:  session,
			Events:   eventRepo,
			Journal:  st.JournalRepo(),
			Calendar: st.CalendarRepo(),
			Catalog:  catalog,
			Tips:     tips.NewService(provider, st.KVRepo(), tips.DefaultConfig()),
			Version:  version,
			Updates:  selfupdate.NewChecker(selfupdate.DefaultOwner, selfupdate.DefaultRepo),
		},
	})
}

// loadCatalog returns the built-in exercises, or the file named by
// MINDORA_EXERCISES.
func loadCatalog() (*exercises.Catalog, error) {
	c, err := exercises.Load(os.Getenv("MINDORA_EXERCISES"))
	if err != nil {
		return nil, fmt.Errorf("load exercises: %w", err)
	}
	return c, nil
}
