package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"riskwatch/internal/catalog"
	"riskwatch/internal/cli"
	"riskwatch/internal/common"
	"riskwatch/internal/model"
	"riskwatch/internal/scoring"
)

func initCmd() *cobra.Command {
	var (
		period string
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a fresh current assessment",
		Long: `Seed the data directory with a baseline assessment: every category at
score 5 with a stable trend, ready for its first interactive update.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := initStore()
			if err != nil {
				return err
			}

			if !force {
				if _, err := store.Load(); err == nil {
					return fmt.Errorf("current assessment already exists in %s (use --force to overwrite)", store.DataDir())
				} else if !errors.Is(err, common.ErrNotFound) {
					return err
				}
			}

			cat := catalog.Default()
			today := model.Today()
			a := &model.Assessment{
				AssessmentPeriod: period,
				Scores:           make(map[string]model.CategoryScore, catalog.ExpectedCategories),
			}
			for _, id := range cat.CategoryIDs() {
				a.Scores[id] = model.CategoryScore{
					Score:       5,
					Trend:       model.TrendStable,
					KeyFindings: []string{},
					LastUpdated: today,
				}
			}

			if err := scoring.Recompute(cat, a, today); err != nil {
				return err
			}
			if err := store.Persist(a); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf(
				"Initialized assessment for %q in %s.", a.AssessmentPeriod, store.DataDir())))
			return nil
		},
	}

	cmd.Flags().StringVar(&period, "period", time.Now().Format("January 2006"), "display label for the assessment period")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing assessment")

	return cmd
}
