package cmd

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/abhisek/lifewheel/internal/account"
	"github.com/abhisek/lifewheel/internal/httpapi"
	"github.com/abhisek/lifewheel/internal/metrics"
	"github.com/abhisek/lifewheel/internal/wheel"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := httpapi.ConfigFromEnv()
		if addr, _ := cmd.Flags().GetString("host"); addr != "" {
			cfg.Host = addr
		}
		if port, _ := cmd.Flags().GetInt("port"); port > 0 {
			cfg.Port = port
		}
		if debug, _ := cmd.Flags().GetBool("debug"); debug {
			cfg.Debug = true
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := httpapi.NewServer(cfg, httpapi.Deps{
			Accounts:   account.NewService(st.UserRepo(), account.AdminPolicyFromEnv(), logger),
			Users:      st.UserRepo(),
			History:    st.HistoryRepo(),
			Settings:   st.SettingsRepo(),
			Categories: wheel.DefaultCategories(),
			Metrics:    metrics.Default(),
			Gatherer:   prometheus.DefaultGatherer,
			Logger:     logger,
		})
		return srv.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().String("host", "", "Listen host (overrides LIFEWHEEL_SERVER_HOST)")
	serveCmd.Flags().Int("port", 0, "Listen port (overrides LIFEWHEEL_SERVER_PORT)")
	serveCmd.Flags().Bool("debug", false, "Run gin in debug mode")
}
