package main

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awssns"

	"github.com/30Piraten/watchful/backend/cdk"
)

type MonitoringResources struct {
	stack      awscdk.Stack
	alarmTopic awssns.ITopic
	watchful   *cdk.Watchful
}
