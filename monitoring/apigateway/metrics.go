// Package apigateway builds metric descriptors for API Gateway REST API stages
// and, optionally, single operations of a stage.
package apigateway

import (
	"time"

	"github.com/30Piraten/watchful/descriptor"
)

const Namespace = "AWS/ApiGateway"

const (
	FiveHundredError   = "5XXError"
	FourHundredError   = "4XXError"
	IntegrationLatency = "IntegrationLatency"
	Latency            = "Latency"
	Count              = "Count"
	CacheHitCount      = "CacheHitCount"
	CacheMissCount     = "CacheMissCount"
)

const (
	DimApiName  = "ApiName"
	DimStage    = "Stage"
	DimMethod   = "Method"
	DimResource = "Resource"
)

const Period = time.Minute

// Operation narrows metrics to one method on one resource path.
type Operation struct {
	HTTPMethod   string
	ResourcePath string
}

// Name is the display name of the operation, e.g. "GET /orders".
func (o Operation) Name() string {
	return o.HTTPMethod + " " + o.ResourcePath
}

type ErrorCounts struct {
	Count4XX descriptor.Descriptor
	Count5XX descriptor.Descriptor
}

type CacheCounts struct {
	Hits   descriptor.Descriptor
	Misses descriptor.Descriptor
}

// MetricFactory builds API Gateway descriptors. A nil operation means the
// whole stage.
type MetricFactory struct{}

func NewMetricFactory() MetricFactory {
	return MetricFactory{}
}

func (f MetricFactory) MetricErrors(apiName, stage string, op *Operation) ErrorCounts {
	return ErrorCounts{
		Count4XX: f.metric(FourHundredError, apiName, stage, op).With(descriptor.Overrides{
			Label:     "HTTP 4XX",
			Statistic: descriptor.Sum,
			Color:     descriptor.ColorOrange,
		}),
		Count5XX: f.metric(FiveHundredError, apiName, stage, op).With(descriptor.Overrides{
			Label:     "HTTP 5XX",
			Statistic: descriptor.Sum,
			Color:     descriptor.ColorRed,
		}),
	}
}

func (f MetricFactory) MetricCalls(apiName, stage string, op *Operation) descriptor.Descriptor {
	return f.metric(Count, apiName, stage, op).With(descriptor.Overrides{
		Label:     "Calls",
		Statistic: descriptor.Sum,
		Color:     descriptor.ColorBlue,
	})
}

func (f MetricFactory) MetricLatency(apiName, stage string, op *Operation) descriptor.StatisticSet {
	return f.metric(Latency, apiName, stage, op).Statistics()
}

func (f MetricFactory) MetricIntegrationLatency(apiName, stage string, op *Operation) descriptor.StatisticSet {
	return f.metric(IntegrationLatency, apiName, stage, op).Statistics()
}

func (f MetricFactory) MetricCache(apiName, stage string, op *Operation) CacheCounts {
	return CacheCounts{
		Hits: f.metric(CacheHitCount, apiName, stage, op).With(descriptor.Overrides{
			Label:     "Hit",
			Statistic: descriptor.Sum,
			Color:     descriptor.ColorGreen,
		}),
		Misses: f.metric(CacheMissCount, apiName, stage, op).With(descriptor.Overrides{
			Label:     "Miss",
			Statistic: descriptor.Sum,
			Color:     descriptor.ColorRed,
		}),
	}
}

func (f MetricFactory) metric(metricName, apiName, stage string, op *Operation) descriptor.Descriptor {
	dims := map[string]string{
		DimApiName: apiName,
		DimStage:   stage,
	}
	if op != nil {
		dims = descriptor.MergeDimensions(dims, map[string]string{
			DimMethod:   op.HTTPMethod,
			DimResource: op.ResourcePath,
		})
	}
	return descriptor.New(descriptor.Props{
		MetricName: metricName,
		Namespace:  Namespace,
		Period:     Period,
		Dimensions: dims,
	})
}
