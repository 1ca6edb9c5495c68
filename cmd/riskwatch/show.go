package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"riskwatch/internal/catalog"
	"riskwatch/internal/cli"
)

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current assessment",
		Long:  `Display the current assessment: overall score, domain scores, and every category with its trend.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			store, err := initStore()
			if err != nil {
				return err
			}

			a, err := store.Load()
			if err != nil {
				return err
			}
			cat := catalog.Default()

			header := fmt.Sprintf("Period: %s    Assessed: %s\nOverall: %.1f (%s)",
				a.AssessmentPeriod, a.AssessmentDate, a.OverallScore, a.RiskLevel)
			fmt.Println(cli.RenderBox(cli.GlobeIcon+" Current Assessment", header))

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			for _, domainID := range cat.DomainIDs() {
				fmt.Fprintf(w, "%s\t%.2f\t\n", cli.TitleStyle.UnsetMargins().Render(cat.DomainName(domainID)), a.DomainScores[domainID])
				for _, id := range cat.DomainCategories(domainID) {
					c, _ := cat.Category(id)
					cs := a.Scores[id]
					fmt.Fprintf(w, "  %s\t%d\t%s\n", c.Name, cs.Score, cs.Trend)
				}
			}

			return nil
		},
	}
}
