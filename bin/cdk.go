package main

import (
	"fmt"
	"os"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"go.uber.org/zap"

	"github.com/30Piraten/watchful/backend/cdk"
	"github.com/30Piraten/watchful/config"
	"github.com/30Piraten/watchful/logger"
)

func NewMonitoringStack(scope constructs.Construct, id string, props *MonitoringStackProps) awscdk.Stack {
	stack := initializeStack(scope, id, props)
	cfg := props.Config

	resources := &MonitoringResources{
		stack:      stack,
		alarmTopic: importAlarmTopic(stack, cfg.Watchful.AlarmTopicArn),
	}

	resources.watchful = cdk.NewWatchful(stack, "Watchful", &cdk.WatchfulProps{
		DashboardName:  jsii.String(cfg.Watchful.DashboardName),
		AlarmTopic:     resources.alarmTopic,
		AlarmTopicName: jsii.String(cfg.Watchful.AlarmTopicName),
		AlarmEmail:     optionalString(cfg.Watchful.AlarmEmail),
	})

	alarms, err := cfg.Watch(resources.watchful)
	if err != nil {
		// config.Load already rejected anything Watch could fail on.
		panic(err)
	}
	props.Logger.Info("watchful stack defined",
		zap.String("stack", id),
		zap.String("dashboard", cfg.Watchful.DashboardName),
		zap.Bool("alb", cfg.ALB.Enabled()),
		zap.Bool("apiGateway", cfg.APIGateway.Enabled()),
		zap.Int("alarms", len(alarms)),
	)

	createStackOutputs(resources)
	return stack
}

func main() {
	defer jsii.Close()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	app := awscdk.NewApp(nil)
	NewMonitoringStack(app, "WatchfulStack", &MonitoringStackProps{
		StackProps: awscdk.StackProps{
			Env: env(cfg),
		},
		Config: cfg,
		Logger: log,
	})

	app.Synth(nil)
}

func env(cfg *config.Config) *awscdk.Environment {
	return &awscdk.Environment{
		Account: optionalString(cfg.Account),
		Region:  jsii.String(cfg.Region),
	}
}
