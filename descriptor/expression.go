package descriptor

import "time"

// Expression is a metric math expression over named input metrics.
// Keys of UsingMetrics are the identifiers referenced by Expression and must
// start with a lowercase letter.
type Expression struct {
	Expression   string
	UsingMetrics map[string]Descriptor
	Label        string
	Color        string
	Period       time.Duration
}

func (e Expression) MetricPeriod() time.Duration {
	if e.Period != 0 {
		return e.Period
	}
	return DefaultPeriod
}

func (e Expression) MetricLabel() string {
	if e.Label != "" {
		return e.Label
	}
	return e.Expression
}

// ErrorRate combines two error counters and a request counter into
// (http4xx + http5xx) / requests. A zero request count yields whatever
// CloudWatch metric math yields for a division by zero.
func ErrorRate(http4xx, http5xx, requests Descriptor, label string) Expression {
	return Expression{
		Expression: "(http4xx + http5xx) / requests",
		UsingMetrics: map[string]Descriptor{
			"http4xx":  http4xx,
			"http5xx":  http5xx,
			"requests": requests,
		},
		Label:  label,
		Period: requests.Period,
	}
}
