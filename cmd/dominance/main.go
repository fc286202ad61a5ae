package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"roast-master/internal/config"
	"roast-master/internal/logger"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:           "dominance",
	Short:         "Head-to-head dominance reports for Sleeper fantasy leagues.",
	SilenceErrors: true,
	SilenceUsage:  true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default .dominance.yaml)")
	flags.String("cache-path", "", "SQLite response cache path")
	flags.String("base-url", "", "Sleeper API base URL")
	flags.Duration("timeout", 0, "overall request timeout")
	flags.Int("concurrency", 0, "concurrent week fetches")
	flags.String("log-level", "warn", "log level")

	for _, name := range []string{"config", "cache-path", "base-url", "timeout", "concurrency", "log-level"} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}

	rootCmd.AddCommand(matrixCmd, cacheCmd)
}

func initConfig() {
	if file := viper.GetString("config"); file != "" {
		viper.SetConfigFile(file)
	} else {
		viper.SetConfigName(".dominance")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}
	viper.SetEnvPrefix("DOMINANCE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
	}
}

// loadConfig starts from the service configuration (env and .env) and lets
// flags, DOMINANCE_* variables and the config file override it.
func loadConfig() (*config.Config, zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(viper.GetString("log-level"))
	if err != nil {
		return nil, zerolog.Logger{}, fmt.Errorf("invalid log level: %w", err)
	}
	log := logger.SetLevel(level)

	cfg, err := config.Load(log)
	if err != nil {
		return nil, log, err
	}
	if v := viper.GetString("cache-path"); v != "" {
		cfg.CachePath = v
	}
	if v := viper.GetString("base-url"); v != "" {
		cfg.SleeperBaseURL = v
	}
	if v := viper.GetDuration("timeout"); v > 0 {
		cfg.RequestTimeout = v
	}
	if v := viper.GetInt("concurrency"); v > 0 {
		cfg.WeekFetchConcurrency = v
	}
	return cfg, log, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
