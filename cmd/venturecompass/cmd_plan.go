package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/1234bibhash/venture-idea-compass/internal/businessplan"
	"github.com/1234bibhash/venture-idea-compass/internal/ideaanalysis"
)

func newPlanCmd(a *app) *cobra.Command {
	var input, output, format string
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Turn an analysis report into a business plan",
		Long: `Reads a report produced by "analyze" (from --input or stdin) and writes
the business plan as text, HTML or PDF.

Example:
  venturecompass analyze --title FlowBoard ... | venturecompass plan --format html -o plan.html`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = cmd.InOrStdin()
			if input != "" && input != "-" {
				f, err := os.Open(input)
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			var report ideaanalysis.AnalysisReport
			if err := json.NewDecoder(in).Decode(&report); err != nil {
				return fmt.Errorf("decode report: %w", err)
			}

			out, err := a.renderPlan(cmd, report, format)
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(out)
				return err
			}
			if err := os.WriteFile(output, out, 0o644); err != nil {
				return err
			}
			a.logger.WithField("file", output).Info("business plan written")
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "Report JSON file (default stdin)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "txt", "Output format: txt, html or pdf")
	return cmd
}

func (a *app) renderPlan(cmd *cobra.Command, report ideaanalysis.AnalysisReport, format string) ([]byte, error) {
	plan := businessplan.Generate(report, time.Now())
	switch format {
	case "txt", "md":
		return []byte(plan), nil
	case "html":
		doc, err := businessplan.RenderHTML(plan, report.Title)
		return []byte(doc), err
	case "pdf":
		doc, err := businessplan.RenderHTML(plan, report.Title)
		if err != nil {
			return nil, err
		}
		layout, err := a.cfg.PDF.Layout()
		if err != nil {
			return nil, err
		}
		return businessplan.NewChromiumPDFRenderer(a.cfg.PDF.ChromePath, layout).Render(cmd.Context(), doc)
	default:
		return nil, fmt.Errorf("unknown format %q (want txt, html or pdf)", format)
	}
}
