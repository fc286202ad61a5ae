package main

import (
	"fmt"

	"roast-master/internal/database"
	"roast-master/internal/repository"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the upstream response cache.",
}

var cachePurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete cache entries older than CACHE_TTL.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		db, err := database.New(cfg, log)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		n, err := repository.NewResponseCacheRepository(db, cfg, log).Purge(cmd.Context())
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "removed %d expired entries from %s\n", n, cfg.CachePath)
		return err
	},
}

func init() {
	cacheCmd.AddCommand(cachePurgeCmd)
}
