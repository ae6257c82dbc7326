package main

import (
	"encoding/json"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/spf13/cobra"
)

type rendered struct {
	DashboardName string                            `json:"dashboardName"`
	Body          json.RawMessage                   `json:"body"`
	Alarms        []*cloudwatch.PutMetricAlarmInput `json:"alarms"`
}

func (a *app) renderCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "render",
		Short: "Print the dashboard body and alarm definitions as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			def, err := a.definition()
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(rendered{
				DashboardName: def.DashboardName,
				Body:          json.RawMessage(def.Body),
				Alarms:        def.Alarms,
			})
		},
	}
}
