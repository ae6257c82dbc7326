package descriptor

import (
	"fmt"
	"strings"
	"time"
)

// Statistic is a CloudWatch statistic name ("Sum", "Average", ...) or a
// percentile in the "pNN" form.
type Statistic string

const (
	Sum         Statistic = "Sum"
	Average     Statistic = "Average"
	Minimum     Statistic = "Minimum"
	Maximum     Statistic = "Maximum"
	SampleCount Statistic = "SampleCount"
)

// Percentile returns the "pNN" statistic for the given percentile.
func Percentile(p float64) Statistic {
	return Statistic(fmt.Sprintf("p%g", p))
}

// IsPercentile reports whether s is an extended (percentile) statistic.
func (s Statistic) IsPercentile() bool {
	return strings.HasPrefix(string(s), "p")
}

// Dashboard colors, same palette as the CloudWatch console.
const (
	ColorBlue   = "#1f77b4"
	ColorBrown  = "#8c564b"
	ColorGreen  = "#2ca02c"
	ColorGrey   = "#7f7f7f"
	ColorOrange = "#ff7f0e"
	ColorPink   = "#e377c2"
	ColorPurple = "#9467bd"
	ColorRed    = "#d62728"
)

// DefaultPeriod is the aggregation period used when a descriptor does not set one.
const DefaultPeriod = 5 * time.Minute

// Metric is anything a widget can plot or an alarm can watch.
type Metric interface {
	MetricPeriod() time.Duration
	MetricLabel() string
}

// Descriptor identifies a single raw CloudWatch metric and how to aggregate it.
type Descriptor struct {
	MetricName string
	Namespace  string
	Dimensions map[string]string
	Statistic  Statistic
	Period     time.Duration
	Label      string
	Color      string
}

// Props are the inputs of New.
type Props struct {
	MetricName string
	Namespace  string
	Dimensions map[string]string
	Statistic  Statistic
	Period     time.Duration
	Label      string
	Color      string
}

// New builds a Descriptor, copying the dimension map and filling in the
// Average statistic and DefaultPeriod when they are not given.
func New(props Props) Descriptor {
	d := Descriptor{
		MetricName: props.MetricName,
		Namespace:  props.Namespace,
		Dimensions: copyDimensions(props.Dimensions),
		Statistic:  props.Statistic,
		Period:     props.Period,
		Label:      props.Label,
		Color:      props.Color,
	}
	if d.Statistic == "" {
		d.Statistic = Average
	}
	if d.Period == 0 {
		d.Period = DefaultPeriod
	}
	return d
}

// Overrides are the fields With may change. Empty values keep the original.
type Overrides struct {
	Statistic Statistic
	Label     string
	Color     string
}

// With returns a copy of d with the non-empty overrides applied.
func (d Descriptor) With(o Overrides) Descriptor {
	out := d
	out.Dimensions = copyDimensions(d.Dimensions)
	if o.Statistic != "" {
		out.Statistic = o.Statistic
	}
	if o.Label != "" {
		out.Label = o.Label
	}
	if o.Color != "" {
		out.Color = o.Color
	}
	return out
}

func (d Descriptor) MetricPeriod() time.Duration { return d.Period }

func (d Descriptor) MetricLabel() string {
	if d.Label != "" {
		return d.Label
	}
	return d.MetricName
}

// StatisticSet holds the usual latency views of one raw metric.
type StatisticSet struct {
	Min Descriptor
	Avg Descriptor
	P90 Descriptor
	P95 Descriptor
	P99 Descriptor
	Max Descriptor
}

// All returns the set ordered from min to max.
func (s StatisticSet) All() []Metric {
	return []Metric{s.Min, s.Avg, s.P90, s.P95, s.P99, s.Max}
}

// Statistics derives the min/avg/p90/p95/p99/max variants of d.
func (d Descriptor) Statistics() StatisticSet {
	return StatisticSet{
		Min: d.With(Overrides{Statistic: Minimum, Label: "min"}),
		Avg: d.With(Overrides{Statistic: Average, Label: "avg"}),
		P90: d.With(Overrides{Statistic: Percentile(90), Label: "p90"}),
		P95: d.With(Overrides{Statistic: Percentile(95), Label: "p95"}),
		P99: d.With(Overrides{Statistic: Percentile(99), Label: "p99"}),
		Max: d.With(Overrides{Statistic: Maximum, Label: "max"}),
	}
}

// MergeDimensions returns a new map holding base overlaid with extra.
func MergeDimensions(base, extra map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

func copyDimensions(dims map[string]string) map[string]string {
	if dims == nil {
		return nil
	}
	return MergeDimensions(dims, nil)
}
