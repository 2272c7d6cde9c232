package app

import (
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/brandalign/brandalign/internal/daemon"
)

func init() { //nolint: gochecknoinits
	startCmd.Flags().BoolVar(&devMode, "dev", false, "Enable dev mode")

	startCmd.Flags().BoolVar(
		&browseStatic,
		"browse",
		false,
		"Enable static file browsing (for development purposes only)",
	)

	startCmd.Flags().BoolVar(&fastShutdown, "fast-shutdown", false, "Skip the load balancer grace period on shutdown")

	rootCmd.AddCommand(startCmd)
}

var (
	devMode      bool
	browseStatic bool
	fastShutdown bool

	startCmd = &cobra.Command{
		Use:   "start",
		Short: "Start the BrandAlign web service",
		PreRunE: func(_ *cobra.Command, _ []string) error {
			if err := loadConfig(); err != nil {
				return err
			}

			if devMode {
				cfg.DevMode = true
			}

			if browseStatic {
				cfg.Webserver.BrowseStatic = true
			}

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			d, err := daemon.New(ctx, &cfg)
			if err != nil {
				return err
			}

			d.SetFastShutdown(fastShutdown)

			log.Info().Int("port", cfg.Webserver.Port).Str("url", cfg.Webserver.URL).Msg("starting web service")

			return d.Run(ctx)
		},
	}
)
