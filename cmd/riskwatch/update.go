package main

import (
	"github.com/spf13/cobra"

	"riskwatch/internal/catalog"
	"riskwatch/internal/cli"
)

func updateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Interactively update category scores",
		Long: `Run the guided update session: pick categories, edit their scores,
trends, key findings and sources, review the recomputed aggregates, and
confirm before anything is saved. Declining to save discards every edit.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := initStore()
			if err != nil {
				return err
			}

			session := cli.NewUpdateSession(store, catalog.Default(), cmd.InOrStdin(), cmd.OutOrStdout())
			return session.Run(cmd.Context())
		},
	}
}
