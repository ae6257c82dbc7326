package cdk

import (
	"time"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscloudwatch"
	"github.com/aws/jsii-runtime-go"

	"github.com/30Piraten/watchful/descriptor"
)

func metrics(ms []descriptor.Metric) []awscloudwatch.IMetric {
	out := make([]awscloudwatch.IMetric, 0, len(ms))
	for _, m := range ms {
		out = append(out, metric(m))
	}
	return out
}

func metric(m descriptor.Metric) awscloudwatch.IMetric {
	switch m := m.(type) {
	case descriptor.Descriptor:
		return rawMetric(m)
	case descriptor.Expression:
		using := make(map[string]awscloudwatch.IMetric, len(m.UsingMetrics))
		for id, input := range m.UsingMetrics {
			using[id] = rawMetric(input)
		}
		return awscloudwatch.NewMathExpression(&awscloudwatch.MathExpressionProps{
			Expression:   jsii.String(m.Expression),
			UsingMetrics: &using,
			Label:        optional(m.Label),
			Color:        optional(m.Color),
			Period:       duration(m.MetricPeriod()),
		})
	}
	panic("cdk: unsupported metric type")
}

func rawMetric(d descriptor.Descriptor) awscloudwatch.Metric {
	dims := make(map[string]*string, len(d.Dimensions))
	for name, value := range d.Dimensions {
		dims[name] = jsii.String(value)
	}
	return awscloudwatch.NewMetric(&awscloudwatch.MetricProps{
		MetricName:    jsii.String(d.MetricName),
		Namespace:     jsii.String(d.Namespace),
		DimensionsMap: &dims,
		Statistic:     jsii.String(string(d.Statistic)),
		Period:        duration(d.Period),
		Label:         optional(d.Label),
		Color:         optional(d.Color),
	})
}

func duration(d time.Duration) awscdk.Duration {
	return awscdk.Duration_Seconds(jsii.Number(d.Seconds()))
}

func comparisonOperator(op descriptor.ComparisonOperator) awscloudwatch.ComparisonOperator {
	switch op {
	case descriptor.GreaterThanOrEqualToThreshold:
		return awscloudwatch.ComparisonOperator_GREATER_THAN_OR_EQUAL_TO_THRESHOLD
	case descriptor.LessThanThreshold:
		return awscloudwatch.ComparisonOperator_LESS_THAN_THRESHOLD
	case descriptor.LessThanOrEqualToThreshold:
		return awscloudwatch.ComparisonOperator_LESS_THAN_OR_EQUAL_TO_THRESHOLD
	}
	return awscloudwatch.ComparisonOperator_GREATER_THAN_THRESHOLD
}

func treatMissingData(t descriptor.TreatMissingData) awscloudwatch.TreatMissingData {
	switch t {
	case descriptor.MissingDataBreaching:
		return awscloudwatch.TreatMissingData_BREACHING
	case descriptor.MissingDataNotBreaching:
		return awscloudwatch.TreatMissingData_NOT_BREACHING
	case descriptor.MissingDataIgnore:
		return awscloudwatch.TreatMissingData_IGNORE
	case descriptor.MissingDataMissing:
		return awscloudwatch.TreatMissingData_MISSING
	}
	// unset lets CloudWatch apply its own default
	return ""
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return jsii.String(s)
}
