package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"riskwatch/internal/catalog"
	"riskwatch/internal/changelog"
	"riskwatch/internal/cli"
	"riskwatch/internal/common"
	"riskwatch/internal/model"
)

func archiveCmd() *cobra.Command {
	var (
		dateFlag string
		listOnly bool
	)

	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Archive the current assessment as a dated snapshot",
		Long: `Freeze the current assessment into an immutable snapshot for the
assessment period and append a draft change record for an analyst to
annotate. Archiving the same date twice is a reported no-op.

Snapshots are conventionally dated the 20th of each month; --date overrides.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := initStore()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if listOnly {
				snaps, err := store.ListSnapshots()
				if err != nil {
					return err
				}
				if len(snaps) == 0 {
					fmt.Fprintln(out, cli.FormatInfo("No snapshots archived yet."))
					return nil
				}
				for _, snap := range snaps {
					fmt.Fprintf(out, "  %s  overall %.1f  %s\n", snap.Date, snap.OverallScore, snap.RiskLevel)
				}
				return nil
			}

			periodDate := dateFlag
			if periodDate == "" {
				periodDate = defaultPeriodDate(time.Now())
			}

			current, err := store.Load()
			if err != nil {
				return err
			}

			created, err := store.Archive(current, periodDate)
			if err != nil {
				return err
			}
			if created {
				fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Archived snapshot for %s.", periodDate)))
			} else {
				fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("Snapshot for %s already exists; skipped.", periodDate)))
			}

			// Even on a skipped archive, still draft the change record
			// against the snapshot that preceded this period.
			prior, err := store.LatestSnapshotBefore(periodDate)
			if err != nil && !errors.Is(err, common.ErrNotFound) {
				return err
			}

			rec := changelog.GenerateTemplate(catalog.Default(), current, periodDate, prior)
			appended, err := store.AppendChangeRecord(rec)
			if err != nil {
				return err
			}
			if !appended {
				fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("Change record for %s already exists; skipped.", periodDate)))
				return nil
			}

			fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf(
				"Drafted change record for %s (%d category changes) — fill in the rationale fields.",
				periodDate, len(rec.CategoryChanges))))

			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", fmt.Sprintf("snapshot date (%s), default: the 20th of the current month", model.DateFormat))
	cmd.Flags().BoolVar(&listOnly, "list", false, "list archived snapshots instead of archiving")

	return cmd
}

// defaultPeriodDate pins the archive date to the 20th of now's month.
func defaultPeriodDate(now time.Time) string {
	return time.Date(now.Year(), now.Month(), 20, 0, 0, 0, 0, now.Location()).Format(model.DateFormat)
}
