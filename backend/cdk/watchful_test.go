package cdk

import (
	"testing"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/assertions"
	"github.com/aws/jsii-runtime-go"
	"github.com/stretchr/testify/assert"

	"github.com/30Piraten/watchful/monitoring/apigateway"
	"github.com/30Piraten/watchful/watchful"
)

func albStack(props *WatchfulProps) awscdk.Stack {
	app := awscdk.NewApp(nil)
	stack := awscdk.NewStack(app, jsii.String("TestStack"), nil)

	w := NewWatchful(stack, "Watchful", props)
	watchful.NewWatchAlb("CheckoutAlb", &watchful.WatchAlbProps{
		Title:        "Checkout ALB",
		Watchful:     w,
		LoadBalancer: watchful.LoadBalancerRef{Name: "my-lb"},
		TargetGroup: watchful.TargetGroupRef{
			FullName:             "targetgroup/my-tg/456",
			LoadBalancerFullName: "app/my-lb/123",
		},
	})
	return stack
}

func TestWatchAlbSynthesizesFiveAlarms(t *testing.T) {
	var template assertions.Template
	assert.NotPanics(t, func() {
		template = assertions.Template_FromStack(albStack(nil), nil)
	})

	template.ResourceCountIs(jsii.String("AWS::CloudWatch::Alarm"), jsii.Number(5))
	template.ResourceCountIs(jsii.String("AWS::CloudWatch::Dashboard"), jsii.Number(1))
	template.ResourceCountIs(jsii.String("AWS::SNS::Topic"), jsii.Number(1))
	template.ResourceCountIs(jsii.String("AWS::SNS::Subscription"), jsii.Number(0))
}

func TestRequestsAlarmProperties(t *testing.T) {
	template := assertions.Template_FromStack(albStack(nil), nil)

	template.HasResourceProperties(jsii.String("AWS::CloudWatch::Alarm"), map[string]interface{}{
		"AlarmDescription":   "requestsAlarm",
		"MetricName":         "RequestCount",
		"Namespace":          "AWS/ApplicationELB",
		"Statistic":          "Sum",
		"Period":             60,
		"Threshold":          0,
		"EvaluationPeriods":  3,
		"ComparisonOperator": "GreaterThanThreshold",
		"Dimensions": assertions.Match_ArrayWith(&[]interface{}{
			map[string]interface{}{"Name": "TargetGroup", "Value": "targetgroup/my-tg/456"},
		}),
		"AlarmActions": assertions.Match_AnyValue(),
	})
}

func TestErrorRateAlarmUsesMathExpression(t *testing.T) {
	template := assertions.Template_FromStack(albStack(nil), nil)

	template.HasResourceProperties(jsii.String("AWS::CloudWatch::Alarm"), map[string]interface{}{
		"AlarmDescription": "requestsErrorRateAlarm",
		"Metrics": assertions.Match_ArrayWith(&[]interface{}{
			assertions.Match_ObjectLike(&map[string]interface{}{
				"Expression": "(http4xx + http5xx) / requests",
				"ReturnData": true,
			}),
		}),
	})
}

func TestAlarmEmailSubscription(t *testing.T) {
	stack := albStack(&WatchfulProps{
		DashboardName:  jsii.String("checkout"),
		AlarmTopicName: jsii.String("watchful-alarms"),
		AlarmEmail:     jsii.String("oncall@example.com"),
	})
	template := assertions.Template_FromStack(stack, nil)

	template.HasResourceProperties(jsii.String("AWS::SNS::Subscription"), map[string]interface{}{
		"Protocol": "email",
		"Endpoint": "oncall@example.com",
	})
	template.HasResourceProperties(jsii.String("AWS::SNS::Topic"), map[string]interface{}{
		"TopicName": "watchful-alarms",
	})
	template.HasResourceProperties(jsii.String("AWS::CloudWatch::Dashboard"), map[string]interface{}{
		"DashboardName": "checkout",
	})
}

func TestWatchApiGatewayAlarmsPerOperation(t *testing.T) {
	app := awscdk.NewApp(nil)
	stack := awscdk.NewStack(app, jsii.String("ApiStack"), nil)
	w := NewWatchful(stack, "Watchful", nil)

	watchful.NewWatchApiGateway("OrdersApi", &watchful.WatchApiGatewayProps{
		Title:     "Orders API",
		Watchful:  w,
		RestApi:   watchful.RestApiRef{Name: "orders", ID: "a1b2c3"},
		StageName: "prod",
		WatchApiGatewayOptions: watchful.WatchApiGatewayOptions{
			WatchedOperations: []apigateway.Operation{{HTTPMethod: "GET", ResourcePath: "/orders"}},
		},
	})
	template := assertions.Template_FromStack(stack, nil)

	template.ResourceCountIs(jsii.String("AWS::CloudWatch::Alarm"), jsii.Number(2))
	template.HasResourceProperties(jsii.String("AWS::CloudWatch::Alarm"), map[string]interface{}{
		"MetricName":         "5XXError",
		"Namespace":          "AWS/ApiGateway",
		"ComparisonOperator": "GreaterThanOrEqualToThreshold",
		"EvaluationPeriods":  1,
		"Threshold":          1,
		"Dimensions": assertions.Match_ArrayWith(&[]interface{}{
			map[string]interface{}{"Name": "Method", "Value": "GET"},
		}),
	})
}

func TestWatchApiGatewaySimilarOperationsSynthesize(t *testing.T) {
	app := awscdk.NewApp(nil)
	stack := awscdk.NewStack(app, jsii.String("ApiStack"), nil)
	w := NewWatchful(stack, "Watchful", nil)

	watchful.NewWatchApiGateway("OrdersApi", &watchful.WatchApiGatewayProps{
		Title:     "Orders API",
		Watchful:  w,
		RestApi:   watchful.RestApiRef{Name: "orders", ID: "a1b2c3"},
		StageName: "prod",
		WatchApiGatewayOptions: watchful.WatchApiGatewayOptions{
			WatchedOperations: []apigateway.Operation{
				{HTTPMethod: "GET", ResourcePath: "/orders/{id}"},
				{HTTPMethod: "GET", ResourcePath: "/orders/id"},
			},
		},
	})

	var template assertions.Template
	assert.NotPanics(t, func() {
		template = assertions.Template_FromStack(stack, nil)
	})
	template.ResourceCountIs(jsii.String("AWS::CloudWatch::Alarm"), jsii.Number(3))
	template.HasResourceProperties(jsii.String("AWS::CloudWatch::Alarm"), map[string]interface{}{
		"Dimensions": assertions.Match_ArrayWith(&[]interface{}{
			map[string]interface{}{"Name": "Resource", "Value": "/orders/{id}"},
		}),
	})
	template.HasResourceProperties(jsii.String("AWS::CloudWatch::Alarm"), map[string]interface{}{
		"Dimensions": assertions.Match_ArrayWith(&[]interface{}{
			map[string]interface{}{"Name": "Resource", "Value": "/orders/id"},
		}),
	})
}

func TestAlarmsLeaveMissingDataUnset(t *testing.T) {
	template := assertions.Template_FromStack(albStack(nil), nil)

	alarms := template.FindResources(jsii.String("AWS::CloudWatch::Alarm"), map[string]interface{}{
		"Properties": map[string]interface{}{
			"TreatMissingData": assertions.Match_AnyValue(),
		},
	})
	assert.Empty(t, *alarms)
}
