package main

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/30Piraten/watchful/backend/cloudwatchapi"
	watchfulconfig "github.com/30Piraten/watchful/config"
	"github.com/30Piraten/watchful/logger"
)

type app struct {
	cfg    *watchfulconfig.Config
	logger *zap.Logger
	// newAPI returns the CloudWatch client used by apply.
	newAPI func(ctx context.Context, region string) (cloudwatchapi.API, error)
}

func newCloudWatchAPI(ctx context.Context, region string) (cloudwatchapi.API, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return cloudwatch.NewFromConfig(awsCfg), nil
}

func newRootCommand() *cobra.Command {
	a := &app{newAPI: newCloudWatchAPI}
	return a.rootCommand(watchfulconfig.Load)
}

func (a *app) rootCommand(load func() (*watchfulconfig.Config, error)) *cobra.Command {
	root := &cobra.Command{
		Use:          "watchctl",
		Short:        "Render and apply watchful CloudWatch dashboards",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			a.cfg = cfg
			if a.logger != nil {
				return nil
			}
			a.logger, err = logger.New(cfg.LogLevel)
			return err
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.logger.Sync()
		},
	}
	root.AddCommand(a.renderCommand(), a.applyCommand())
	return root
}

// definition builds the dashboard for the loaded configuration.
func (a *app) definition() (*cloudwatchapi.Definition, error) {
	var actions []string
	if arn := a.cfg.Watchful.AlarmTopicArn; arn != "" {
		actions = append(actions, arn)
	}
	dash := cloudwatchapi.New(cloudwatchapi.Options{
		DashboardName: a.cfg.Watchful.DashboardName,
		Region:        a.cfg.Region,
		AlarmActions:  actions,
	})
	alarms, err := a.cfg.Watch(dash)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("dashboard assembled",
		zap.String("dashboard", a.cfg.Watchful.DashboardName),
		zap.Int("alarms", len(alarms)),
	)
	return dash.Build()
}
