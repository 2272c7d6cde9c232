// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/brandalign/brandalign/internal/config"
	"github.com/brandalign/brandalign/internal/logger"
)

const (
	keyConfig = "config"
	keyAPIKey = "api_key"
)

var (
	cfg config.Config

	rootCmd = &cobra.Command{
		Use:   "brandalign",
		Short: "BrandAlign checks content against your brand guidelines",
		Long: `BrandAlign is a brand governance dashboard. It scores text and media
against the configured brand guidelines with a generative model, suggests fixes,
rewrites the copy and translates it for other markets.`,
		Args:         cobra.OnlyValidArgs,
		SilenceUsage: true,
	}
)

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().String(keyConfig, "", "directory holding main.toml (default ./etc/)")

	_ = viper.BindPFlag(keyConfig, rootCmd.PersistentFlags().Lookup(keyConfig))
	_ = viper.BindEnv(keyConfig, "BRANDALIGN_CONFIG")
	_ = viper.BindEnv(keyAPIKey, "API_KEY", "GEMINI_API_KEY")
}

// loadConfig reads the configuration and starts the logger.
// An api key from the environment overrides the one of the config file.
func loadConfig() error {
	c, err := config.ReadConfig(viper.GetString(keyConfig))
	if err != nil {
		return err
	}

	if key := viper.GetString(keyAPIKey); key != "" {
		c.Model.APIKey = key
	}

	cfg = c

	return logger.Init(cfg.Log)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
