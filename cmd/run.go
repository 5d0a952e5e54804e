package cmd

import (
	"fmt"
	"os"

	"github.com/abhisek/lifewheel/internal/account"
	"github.com/abhisek/lifewheel/internal/app"
	"github.com/abhisek/lifewheel/internal/assessment"
	"github.com/abhisek/lifewheel/internal/llm"
	"github.com/abhisek/lifewheel/internal/metrics"
	"github.com/abhisek/lifewheel/internal/narrative"
	"github.com/abhisek/lifewheel/internal/screens/env"
	"github.com/abhisek/lifewheel/internal/wheel"
	"github.com/spf13/cobra"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command, skipWelcome bool) error {
	ctx := cmd.Context()

	logger, logFile, err := fileLogger(cmd)
	if err != nil {
		return err
	}
	defer logFile.Close()

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	m := metrics.Default()
	// Without --metrics-addr the counters stay in this process.
	if addr, _ := cmd.Flags().GetString("metrics-addr"); addr != "" {
		_, stop, err := startMetricsServer(addr, logger)
		if err != nil {
			return fmt.Errorf("metrics listener: %w", err)
		}
		defer stop()
	}
	set := wheel.DefaultCategories()

	// The app works without a provider; narratives fall back to an apology.
	provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo(), logger, m)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "The written analysis will be unavailable.")
		logger.Warn("llm provider unavailable", "error", err)
		provider = nil
	}

	e := &env.Env{
		Accounts:   account.NewService(st.UserRepo(), account.AdminPolicyFromEnv(), logger),
		Users:      st.UserRepo(),
		History:    st.HistoryRepo(),
		SettingsDB: st.SettingsRepo(),
		Deliveries: st.DeliveryRepo(),
		Narratives: narrative.NewService(provider, set, narrative.ConfigFromEnv(), logger),
		Metrics:    m,
		Categories: set,
		Assessment: assessment.ConfigFromEnv(),
		Logger:     logger,
	}
	if err := e.LoadSettings(ctx); err != nil {
		logger.Warn("settings unavailable, using defaults", "error", err)
	}

	logger.Info("starting tui", "llm", provider != nil)
	return app.Run(app.Options{Env: e, SkipWelcome: skipWelcome})
}
