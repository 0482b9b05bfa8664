package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/1234bibhash/venture-idea-compass/internal/ideaanalysis"
)

func newAnalyzeCmd(a *app) *cobra.Command {
	var (
		idea   ideaanalysis.IdeaSubmission
		seed   uint64
		sample bool
	)
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Score a startup idea and print the report as JSON",
		Long: `Runs the idea classifier locally and prints the analysis report.

Example:
  venturecompass analyze --title FlowBoard --industry Technology \
    --description "A project management tool for agencies"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var report ideaanalysis.AnalysisReport
			switch {
			case sample:
				report = ideaanalysis.SampleReport()
			case cmd.Flags().Changed("seed"):
				report = ideaanalysis.NewSynthesizer(ideaanalysis.WithSeed(seed)).Synthesize(idea)
			default:
				report = ideaanalysis.Synthesize(idea)
			}
			a.logger.WithField("template", report.Template).Debug("idea analysed")

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		},
	}
	cmd.Flags().StringVar(&idea.Title, "title", "", "Idea title")
	cmd.Flags().StringVar(&idea.Description, "description", "", "Idea description")
	cmd.Flags().StringVar(&idea.Industry, "industry", "", "Industry, one of the form's industries")
	cmd.Flags().StringVar(&idea.TargetMarket, "target-market", "", "Target market (optional)")
	cmd.Flags().StringVar(&idea.Revenue, "revenue", "", "Revenue model (optional)")
	cmd.Flags().StringVar(&idea.UniqueValue, "unique-value", "", "Unique value proposition (optional)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed the score generator for reproducible output")
	cmd.Flags().BoolVar(&sample, "sample", false, "Print the sample report instead")
	return cmd
}
