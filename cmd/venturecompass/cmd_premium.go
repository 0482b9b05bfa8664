package main

import (
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/1234bibhash/venture-idea-compass/internal/subscription"
)

func newPremiumCmd(a *app) *cobra.Command {
	var off bool
	cmd := &cobra.Command{
		Use:   "premium [user-id]",
		Short: "Grant or revoke the simulated premium plan for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := openStore(a.cfg.Store)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer backend.Close()

			tracker := subscription.NewTracker(backend, a.cfg.FreeIdeaLimit)
			if err := tracker.SetPremium(cmd.Context(), args[0], !off); err != nil {
				return err
			}
			st, err := tracker.Status(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			a.logger.WithFields(logrus.Fields{"user": args[0], "premium": !off}).Info("plan changed")

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(st)
		},
	}
	cmd.Flags().BoolVar(&off, "off", false, "Revoke premium instead of granting it")
	return cmd
}
