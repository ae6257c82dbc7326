package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/30Piraten/watchful/backend/cloudwatchapi"
)

func (a *app) applyCommand() *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Put the dashboard and its alarms with the CloudWatch API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			def, err := a.definition()
			if err != nil {
				return err
			}
			if dryRun {
				a.logger.Info("dry run, nothing applied",
					zap.String("dashboard", def.DashboardName),
					zap.Int("alarms", len(def.Alarms)),
				)
				return nil
			}
			api, err := a.newAPI(cmd.Context(), a.cfg.Region)
			if err != nil {
				return fmt.Errorf("cloudwatch client: %w", err)
			}
			return cloudwatchapi.NewApplier(api, a.logger).Apply(cmd.Context(), def)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "build the definition without calling CloudWatch")
	return cmd
}
