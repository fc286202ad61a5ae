package main

import (
	"encoding/json"

	"roast-master/internal/api"
	"roast-master/internal/database"
	"roast-master/internal/render"
	"roast-master/internal/repository"
	"roast-master/internal/service"

	"github.com/spf13/cobra"
)

var matrixOpts struct {
	start    int
	end      int
	playoffs bool
	json     bool
	noCache  bool
}

var matrixCmd = &cobra.Command{
	Use:   "matrix <league-id>",
	Short: "Build the head-to-head matrix across every season of a league.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}

		var cache api.ResponseCache
		if !matrixOpts.noCache {
			db, err := database.New(cfg, log)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()
			cache = repository.NewResponseCacheRepository(db, cfg, log)
		}

		svc := service.NewDominanceService(api.NewSleeperClient(cfg, cache, log), cfg, log)
		report, err := svc.Build(cmd.Context(), service.Request{
			LeagueID:        args[0],
			StartWeek:       matrixOpts.start,
			EndWeek:         matrixOpts.end,
			IncludePlayoffs: matrixOpts.playoffs,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if matrixOpts.json {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}
		if err := render.Matrix(out, report); err != nil {
			return err
		}
		if err := render.Seasons(out, report); err != nil {
			return err
		}
		return render.Insights(out, report)
	},
}

func init() {
	f := matrixCmd.Flags()
	f.IntVar(&matrixOpts.start, "start", 0, "first week (default 1)")
	f.IntVar(&matrixOpts.end, "end", 0, "last week (default last week of the season)")
	f.BoolVar(&matrixOpts.playoffs, "playoffs", false, "include playoff weeks")
	f.BoolVar(&matrixOpts.json, "json", false, "print the raw report as JSON")
	f.BoolVar(&matrixOpts.noCache, "no-cache", false, "bypass the response cache")
}
