package main

import (
	"encoding/json"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/1234bibhash/venture-idea-compass/internal/client"
	"github.com/1234bibhash/venture-idea-compass/internal/ideaanalysis"
)

func newSubmitCmd(a *app) *cobra.Command {
	var (
		idea      ideaanalysis.IdeaSubmission
		serverURL string
		user      string
		planOut   string
		format    string
		wait      time.Duration
	)
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Validate an idea against a running VentureCompass server",
		Long: `Posts the idea to a server started with "serve", waits for the analysis
and prints the report. With --plan the business plan is downloaded too.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c := client.NewClient(serverURL, user)
			token, err := c.Submit(ctx, idea)
			if err != nil {
				return err
			}
			log := a.logger.WithFields(logrus.Fields{"token": token, "user": user})
			log.Info("idea submitted")

			report, err := c.WaitForReport(ctx, token, wait)
			if err != nil {
				return err
			}
			if planOut != "" {
				plan, err := c.Plan(ctx, token, format)
				if err != nil {
					return err
				}
				if err := os.WriteFile(planOut, plan, 0o644); err != nil {
					return err
				}
				log.WithField("file", planOut).Info("business plan written")
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		},
	}
	cmd.Flags().StringVar(&serverURL, "server", "http://localhost:8080", "VentureCompass server URL")
	cmd.Flags().StringVar(&user, "user", "", "User id sent as X-User-ID (empty is anonymous)")
	cmd.Flags().StringVar(&idea.Title, "title", "", "Idea title")
	cmd.Flags().StringVar(&idea.Description, "description", "", "Idea description")
	cmd.Flags().StringVar(&idea.Industry, "industry", "", "Industry, one of the form's industries")
	cmd.Flags().StringVar(&planOut, "plan", "", "Also download the business plan to this file")
	cmd.Flags().StringVar(&format, "format", "txt", "Business plan format: txt, html or pdf")
	cmd.Flags().DurationVar(&wait, "poll", 250*time.Millisecond, "Status poll interval")
	return cmd
}
