package main

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"go.uber.org/zap"

	"github.com/30Piraten/watchful/config"
)

type MonitoringStackProps struct {
	awscdk.StackProps
	Config *config.Config
	Logger *zap.Logger
}

func initializeStack(scope constructs.Construct, id string, props *MonitoringStackProps) awscdk.Stack {
	sprops := props.StackProps
	if sprops.Description == nil {
		sprops.Description = jsii.String("CloudWatch dashboard and alarms for " + props.Config.Watchful.DashboardName)
	}
	stack := awscdk.NewStack(scope, &id, &sprops)
	awscdk.Tags_Of(stack).Add(jsii.String("environment"), jsii.String(props.Config.Environment), nil)
	return stack
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return jsii.String(s)
}
