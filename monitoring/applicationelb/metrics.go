// Package applicationelb builds metric descriptors for Application Load
// Balancers and their target groups.
package applicationelb

import (
	"time"

	"github.com/30Piraten/watchful/descriptor"
)

// Namespace is the CloudWatch namespace of ALB metrics.
const Namespace = "AWS/ApplicationELB"

const (
	// load balancer
	ActiveConnectionCount = "ActiveConnectionCount"
	ConsumedLCUs          = "ConsumedLCUs"
	HTTPRedirectCount     = "HTTP_Redirect_Count"

	// targets
	HealthyHostCount   = "HealthyHostCount" // reported if health checks are enabled
	UnHealthyHostCount = "UnHealthyHostCount"
	RequestCount       = "RequestCount"
	TargetResponseTime = "TargetResponseTime"
	HTTPCodeTarget2XX  = "HTTPCode_Target_2XX_Count"
	HTTPCodeTarget3XX  = "HTTPCode_Target_3XX_Count"
	HTTPCodeTarget4XX  = "HTTPCode_Target_4XX_Count"
	HTTPCodeTarget5XX  = "HTTPCode_Target_5XX_Count"
)

// Dimension names.
const (
	DimLoadBalancer = "LoadBalancer"
	DimTargetGroup  = "TargetGroup"
)

// Period is the aggregation period of every ALB metric built here.
const Period = time.Minute

// HostCounts pairs the healthy and unhealthy host count metrics.
type HostCounts struct {
	HealthyHostCount   descriptor.Descriptor
	UnHealthyHostCount descriptor.Descriptor
}

// StatusCodeCounts holds the per-class HTTP status counts of a target group.
type StatusCodeCounts struct {
	Count2XX descriptor.Descriptor
	Count3XX descriptor.Descriptor
	Count4XX descriptor.Descriptor
	Count5XX descriptor.Descriptor
}

// MetricFactory builds ALB descriptors. It has no state; the zero value is ready to use.
type MetricFactory struct{}

// NewMetricFactory returns a MetricFactory.
func NewMetricFactory() MetricFactory {
	return MetricFactory{}
}

func (f MetricFactory) MetricHostCounts(loadBalancerName string) HostCounts {
	return HostCounts{
		HealthyHostCount: f.metric(HealthyHostCount, loadBalancerName).With(descriptor.Overrides{
			Label:     "Health Host Count",
			Statistic: descriptor.Maximum,
			Color:     descriptor.ColorOrange,
		}),
		UnHealthyHostCount: f.metric(UnHealthyHostCount, loadBalancerName).With(descriptor.Overrides{
			Label:     "Unhealthy Host Count",
			Statistic: descriptor.Maximum,
			Color:     descriptor.ColorRed,
		}),
	}
}

func (f MetricFactory) MetricActiveConnectionCount(loadBalancerName string) descriptor.Descriptor {
	return f.metric(ActiveConnectionCount, loadBalancerName).With(descriptor.Overrides{
		Label:     "Active Connection Count",
		Statistic: descriptor.Sum,
		Color:     descriptor.ColorOrange,
	})
}

func (f MetricFactory) MetricConsumedLCUs(loadBalancerName string) descriptor.Descriptor {
	return f.metric(ConsumedLCUs, loadBalancerName).With(descriptor.Overrides{
		Label:     "Consumed LCUs",
		Statistic: descriptor.Sum,
		Color:     descriptor.ColorBlue,
	})
}

func (f MetricFactory) MetricHTTPRedirectCount(loadBalancerName string) descriptor.Descriptor {
	return f.metric(HTTPRedirectCount, loadBalancerName).With(descriptor.Overrides{
		Label:     "HTTP Redirect Count",
		Statistic: descriptor.Sum,
	})
}

func (f MetricFactory) MetricMinHealthyHostCount(targetGroupName, loadBalancerName string) descriptor.Descriptor {
	return f.targetMetric(HealthyHostCount, targetGroupName, loadBalancerName).With(descriptor.Overrides{
		Label:     "Healthy Hosts",
		Statistic: descriptor.Minimum,
		Color:     descriptor.ColorGreen,
	})
}

func (f MetricFactory) MetricMaxUnhealthyHostCount(targetGroupName, loadBalancerName string) descriptor.Descriptor {
	return f.targetMetric(UnHealthyHostCount, targetGroupName, loadBalancerName).With(descriptor.Overrides{
		Label:     "Unhealthy Hosts",
		Statistic: descriptor.Maximum,
		Color:     descriptor.ColorRed,
	})
}

func (f MetricFactory) MetricRequestCount(targetGroupName, loadBalancerName string) descriptor.Descriptor {
	return f.targetMetric(RequestCount, targetGroupName, loadBalancerName).With(descriptor.Overrides{
		Label:     "Requests",
		Statistic: descriptor.Sum,
	})
}

// MetricTargetResponseTime returns TargetResponseTime in seconds, per statistic.
func (f MetricFactory) MetricTargetResponseTime(targetGroupName, loadBalancerName string) descriptor.StatisticSet {
	return f.targetMetric(TargetResponseTime, targetGroupName, loadBalancerName).Statistics()
}

func (f MetricFactory) MetricHTTPStatusCodeCount(targetGroupName, loadBalancerName string) StatusCodeCounts {
	count := func(name, label, color string) descriptor.Descriptor {
		return f.targetMetric(name, targetGroupName, loadBalancerName).With(descriptor.Overrides{
			Label:     label,
			Statistic: descriptor.Sum,
			Color:     color,
		})
	}
	return StatusCodeCounts{
		Count2XX: count(HTTPCodeTarget2XX, "2XX", descriptor.ColorGreen),
		Count3XX: count(HTTPCodeTarget3XX, "3XX", descriptor.ColorBlue),
		Count4XX: count(HTTPCodeTarget4XX, "4XX", descriptor.ColorOrange),
		Count5XX: count(HTTPCodeTarget5XX, "5XX", descriptor.ColorRed),
	}
}

// MetricHTTPErrorStatusCodeRate is (4XX + 5XX) / requests for the target group.
func (f MetricFactory) MetricHTTPErrorStatusCodeRate(targetGroupName, loadBalancerName string) descriptor.Expression {
	codes := f.MetricHTTPStatusCodeCount(targetGroupName, loadBalancerName)
	requests := f.MetricRequestCount(targetGroupName, loadBalancerName)
	return descriptor.ErrorRate(codes.Count4XX, codes.Count5XX, requests, "HTTP Error Rate")
}

func (f MetricFactory) metric(metricName, loadBalancerName string) descriptor.Descriptor {
	return descriptor.New(descriptor.Props{
		MetricName: metricName,
		Namespace:  Namespace,
		Period:     Period,
		Dimensions: map[string]string{
			DimLoadBalancer: loadBalancerName,
		},
	})
}

func (f MetricFactory) targetMetric(metricName, targetGroupName, loadBalancerName string) descriptor.Descriptor {
	return descriptor.New(descriptor.Props{
		MetricName: metricName,
		Namespace:  Namespace,
		Period:     Period,
		Dimensions: map[string]string{
			DimLoadBalancer: loadBalancerName,
			DimTargetGroup:  targetGroupName,
		},
	})
}
