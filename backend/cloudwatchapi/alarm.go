package cloudwatchapi

import (
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"

	"github.com/30Piraten/watchful/descriptor"
)

func alarmInput(name string, a *descriptor.Alarm, actions []string) (*cloudwatch.PutMetricAlarmInput, error) {
	in := &cloudwatch.PutMetricAlarmInput{
		AlarmName:          aws.String(name),
		AlarmDescription:   aws.String(a.Description),
		ComparisonOperator: types.ComparisonOperator(a.ComparisonOperator),
		EvaluationPeriods:  aws.Int32(int32(a.EvaluationPeriods)),
		Threshold:          aws.Float64(a.Threshold),
		AlarmActions:       actions,
	}
	if a.TreatMissingData != "" {
		in.TreatMissingData = aws.String(string(a.TreatMissingData))
	}

	switch m := a.Metric.(type) {
	case descriptor.Descriptor:
		in.Namespace = aws.String(m.Namespace)
		in.MetricName = aws.String(m.MetricName)
		in.Dimensions = dimensions(m.Dimensions)
		in.Period = aws.Int32(seconds(m.Period))
		if m.Statistic.IsPercentile() {
			in.ExtendedStatistic = aws.String(string(m.Statistic))
		} else {
			in.Statistic = types.Statistic(m.Statistic)
		}
	case descriptor.Expression:
		in.Metrics = expressionQueries(m)
	default:
		return nil, fmt.Errorf("alarm %s: unsupported metric %T", name, a.Metric)
	}
	return in, nil
}

// expressionQueries lists the expression first, returning data, followed by
// its hidden inputs in key order.
func expressionQueries(e descriptor.Expression) []types.MetricDataQuery {
	queries := []types.MetricDataQuery{{
		Id:         aws.String("expr"),
		Expression: aws.String(e.Expression),
		Label:      aws.String(e.MetricLabel()),
		ReturnData: aws.Bool(true),
	}}
	for _, id := range sortedKeys(e.UsingMetrics) {
		m := e.UsingMetrics[id]
		queries = append(queries, types.MetricDataQuery{
			Id: aws.String(id),
			MetricStat: &types.MetricStat{
				Metric: &types.Metric{
					Namespace:  aws.String(m.Namespace),
					MetricName: aws.String(m.MetricName),
					Dimensions: dimensions(m.Dimensions),
				},
				Period: aws.Int32(seconds(m.Period)),
				Stat:   aws.String(string(m.Statistic)),
			},
			ReturnData: aws.Bool(false),
		})
	}
	return queries
}

func dimensions(dims map[string]string) []types.Dimension {
	out := make([]types.Dimension, 0, len(dims))
	for _, name := range sortedKeys(dims) {
		out = append(out, types.Dimension{
			Name:  aws.String(name),
			Value: aws.String(dims[name]),
		})
	}
	return out
}

func seconds(d time.Duration) int32 {
	return int32(d / time.Second)
}
