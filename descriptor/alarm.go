package descriptor

import (
	"fmt"
	"strconv"
	"time"
)

// ComparisonOperator mirrors the CloudWatch alarm comparison operators.
type ComparisonOperator string

const (
	GreaterThanThreshold          ComparisonOperator = "GreaterThanThreshold"
	GreaterThanOrEqualToThreshold ComparisonOperator = "GreaterThanOrEqualToThreshold"
	LessThanThreshold             ComparisonOperator = "LessThanThreshold"
	LessThanOrEqualToThreshold    ComparisonOperator = "LessThanOrEqualToThreshold"
)

func (c ComparisonOperator) symbol() string {
	switch c {
	case GreaterThanThreshold:
		return ">"
	case GreaterThanOrEqualToThreshold:
		return ">="
	case LessThanThreshold:
		return "<"
	case LessThanOrEqualToThreshold:
		return "<="
	}
	return string(c)
}

// TreatMissingData mirrors the CloudWatch missing-data policies. Empty means
// the CloudWatch default ("missing").
type TreatMissingData string

const (
	MissingDataBreaching    TreatMissingData = "breaching"
	MissingDataNotBreaching TreatMissingData = "notBreaching"
	MissingDataIgnore       TreatMissingData = "ignore"
	MissingDataMissing      TreatMissingData = "missing"
)

// Alarm evaluation defaults for threshold alarms.
const (
	DefaultEvaluationPeriods = 3
	DefaultThreshold         = 0
)

// Alarm is a threshold alarm on a single metric. Owner is the id of the
// watch that created it and ID is unique within that owner.
type Alarm struct {
	Owner              string
	ID                 string
	Description        string
	Metric             Metric
	Threshold          float64
	ComparisonOperator ComparisonOperator
	EvaluationPeriods  int
	TreatMissingData   TreatMissingData
}

// NewThresholdAlarm creates a GreaterThanThreshold alarm over three
// evaluation periods. A nil threshold means DefaultThreshold.
func NewThresholdAlarm(owner, id string, metric Metric, threshold *float64) *Alarm {
	return &Alarm{
		Owner:              owner,
		ID:                 id,
		Description:        id,
		Metric:             metric,
		Threshold:          ThresholdOrDefault(threshold, DefaultThreshold),
		ComparisonOperator: GreaterThanThreshold,
		EvaluationPeriods:  DefaultEvaluationPeriods,
	}
}

// ThresholdOrDefault dereferences t, falling back to def when t is nil.
func ThresholdOrDefault(t *float64, def float64) float64 {
	if t == nil {
		return def
	}
	return *t
}

// HorizontalAnnotation is a threshold line drawn on a graph widget.
type HorizontalAnnotation struct {
	Value float64
	Label string
	Color string
}

// Annotation returns the threshold line graph widgets draw for this alarm.
func (a *Alarm) Annotation() HorizontalAnnotation {
	window := time.Duration(a.EvaluationPeriods) * a.Metric.MetricPeriod()
	return HorizontalAnnotation{
		Value: a.Threshold,
		Label: fmt.Sprintf("%s %s %s for %d datapoints within %s",
			a.Metric.MetricLabel(),
			a.ComparisonOperator.symbol(),
			strconv.FormatFloat(a.Threshold, 'f', -1, 64),
			a.EvaluationPeriods,
			describeDuration(window)),
	}
}

func describeDuration(d time.Duration) string {
	switch {
	case d%time.Hour == 0 && d >= time.Hour:
		return plural(int(d/time.Hour), "hour")
	case d%time.Minute == 0 && d >= time.Minute:
		return plural(int(d/time.Minute), "minute")
	}
	return plural(int(d/time.Second), "second")
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
