package main

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/jsii-runtime-go"
)

func createStackOutputs(resources *MonitoringResources) {
	awscdk.NewCfnOutput(resources.stack, jsii.String("DashboardNameOutput"), &awscdk.CfnOutputProps{
		Value: resources.watchful.Dashboard().DashboardName(),
	})

	awscdk.NewCfnOutput(resources.stack, jsii.String("AlarmTopicArnOutput"), &awscdk.CfnOutputProps{
		Value: resources.watchful.AlarmTopic().TopicArn(),
	})
}
