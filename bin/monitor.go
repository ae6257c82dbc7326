package main

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awssns"
	"github.com/aws/jsii-runtime-go"
)

// importAlarmTopic references an existing topic by ARN. It returns nil when
// arn is empty, in which case the watchful construct creates its own.
func importAlarmTopic(stack awscdk.Stack, arn string) awssns.ITopic {
	if arn == "" {
		return nil
	}
	return awssns.Topic_FromTopicArn(stack, jsii.String("WatchfulAlarmTopic"), jsii.String(arn))
}
