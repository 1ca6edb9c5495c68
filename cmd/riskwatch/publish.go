package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"riskwatch/internal/cli"
)

func publishMetadataCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "publish-metadata",
		Short: "Export the static category-metadata document",
		Long: `Write categories.json for the dashboard: every category's id, name,
domain, description and scoring rubric, taken from the built-in catalog.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := initStore()
			if err != nil {
				return err
			}

			path, err := store.PublishCategoryMetadata()
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Wrote category metadata to %s.", path)))
			return nil
		},
	}
}
