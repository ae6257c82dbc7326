package watchful

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"

	"github.com/30Piraten/watchful/descriptor"
	"github.com/30Piraten/watchful/monitoring/applicationelb"
)

// LoadBalancer is satisfied by awselasticloadbalancingv2.ApplicationLoadBalancer
// and by LoadBalancerRef.
type LoadBalancer interface {
	LoadBalancerName() *string
}

// TargetGroup is satisfied by awselasticloadbalancingv2.ApplicationTargetGroup
// once it is attached to a load balancer, and by TargetGroupRef.
type TargetGroup interface {
	TargetGroupFullName() *string
	FirstLoadBalancerFullName() *string
}

// LoadBalancerRef names an existing load balancer.
type LoadBalancerRef struct {
	Name string
}

func (r LoadBalancerRef) LoadBalancerName() *string { return aws.String(r.Name) }

// TargetGroupRef names an existing target group by its full name
// ("targetgroup/my-tg/456") and the full name of the load balancer in front
// of it ("app/my-lb/123").
type TargetGroupRef struct {
	FullName             string
	LoadBalancerFullName string
}

func (r TargetGroupRef) TargetGroupFullName() *string { return aws.String(r.FullName) }

func (r TargetGroupRef) FirstLoadBalancerFullName() *string {
	return aws.String(r.LoadBalancerFullName)
}

// WatchAlbOptions are the alarm thresholds. A nil threshold means 0.
type WatchAlbOptions struct {
	ActiveConnectionCountThreshold *float64
	// TODO: settle on a default with the service owners, 0.8 or 1 LCU were suggested.
	ConsumedLCUsThreshold       *float64
	TargetResponseTimeThreshold *float64
	RequestsThreshold           *float64
	RequestsErrorRateThreshold  *float64
}

type WatchAlbProps struct {
	WatchAlbOptions
	Title        string
	Watchful     Watchful
	LoadBalancer LoadBalancer
	TargetGroup  TargetGroup
	// Region is only used for console links.
	Region string
}

// WatchAlb monitors one target group behind an application load balancer.
type WatchAlb struct {
	id               string
	watchful         Watchful
	metrics          applicationelb.MetricFactory
	targetGroupName  string
	loadBalancerName string
	alarms           []*descriptor.Alarm
}

// NewWatchAlb adds an ALB section to props.Watchful: five alarms (active
// connections, consumed LCUs, target response time, requests, error rate) and
// three rows of widgets.
func NewWatchAlb(id string, props *WatchAlbProps) *WatchAlb {
	w := &WatchAlb{
		id:               id,
		watchful:         props.Watchful,
		metrics:          applicationelb.NewMetricFactory(),
		targetGroupName:  aws.ToString(props.TargetGroup.TargetGroupFullName()),
		loadBalancerName: aws.ToString(props.TargetGroup.FirstLoadBalancerFullName()),
	}

	w.watchful.AddSection(props.Title, SectionOptions{
		Links: []Link{{
			Title: "Application ELB Load Balancer",
			URL:   linkForAlbLoadBalancer(props.Region, aws.ToString(props.LoadBalancer.LoadBalancerName())),
		}},
	})

	activeConnectionCountMetric, activeConnectionCountAlarm := w.createActiveConnectionCountMonitor(props.ActiveConnectionCountThreshold)
	consumedLCUsMetric, consumedLCUsAlarm := w.createConsumedLCUsMonitor(props.ConsumedLCUsThreshold)
	targetResponseTimeMetric, targetResponseTimeAlarm := w.createTargetResponseTimeMonitor(props.TargetResponseTimeThreshold)
	healthyHostsMetric, unhealthyHostsMetric := w.createHostCountMetrics()
	requestsMetric, requestsAlarm := w.createRequestsMonitor(props.RequestsThreshold)
	codes := w.metrics.MetricHTTPStatusCodeCount(w.targetGroupName, w.loadBalancerName)
	requestsErrorRateMetric, requestsErrorRateAlarm := w.createRequestsErrorRateMonitor(props.RequestsErrorRateThreshold)

	w.watchful.AddWidgets(
		descriptor.GraphWidget{
			Title:           periodTitle("ActiveConnectionCount", activeConnectionCountMetric),
			Width:           12,
			Left:            []descriptor.Metric{activeConnectionCountMetric},
			LeftAnnotations: []*descriptor.Alarm{activeConnectionCountAlarm},
		},
		descriptor.GraphWidget{
			Title:           periodTitle("ConsumedLCUs", consumedLCUsMetric),
			Width:           12,
			Left:            []descriptor.Metric{consumedLCUsMetric},
			LeftAnnotations: []*descriptor.Alarm{consumedLCUsAlarm},
		},
	)
	w.watchful.AddWidgets(
		descriptor.SingleValueWidget{
			Title:   "Healthy Hosts",
			Height:  6,
			Width:   6,
			Metrics: []descriptor.Metric{healthyHostsMetric},
		},
		descriptor.SingleValueWidget{
			Title:   "UnHealthy Hosts",
			Height:  6,
			Width:   6,
			Metrics: []descriptor.Metric{unhealthyHostsMetric},
		},
		descriptor.GraphWidget{
			Title:           periodTitle("TargetResponseTime", targetResponseTimeMetric),
			Width:           6,
			Left:            []descriptor.Metric{targetResponseTimeMetric},
			LeftAnnotations: []*descriptor.Alarm{targetResponseTimeAlarm},
		},
		descriptor.GraphWidget{
			Title:           periodTitle("Requests", requestsMetric),
			Width:           6,
			Left:            []descriptor.Metric{requestsMetric},
			LeftAnnotations: []*descriptor.Alarm{requestsAlarm},
		},
	)
	w.watchful.AddWidgets(
		descriptor.GraphWidget{
			Title: "HTTP Requests Overview",
			Width: 12,
			Left:  []descriptor.Metric{codes.Count2XX, codes.Count3XX, codes.Count4XX, codes.Count5XX},
		},
		descriptor.GraphWidget{
			Title:           periodTitle("HTTP Requests Error rate", requestsErrorRateMetric),
			Width:           12,
			Left:            []descriptor.Metric{requestsErrorRateMetric},
			LeftAnnotations: []*descriptor.Alarm{requestsErrorRateAlarm},
		},
	)
	return w
}

// Alarms returns the alarms in the order they were registered.
func (w *WatchAlb) Alarms() []*descriptor.Alarm {
	return w.alarms
}

func (w *WatchAlb) createActiveConnectionCountMonitor(threshold *float64) (descriptor.Descriptor, *descriptor.Alarm) {
	metric := w.metrics.MetricActiveConnectionCount(w.loadBalancerName)
	return metric, w.alarm("activeConnectionCountAlarm", metric, threshold)
}

func (w *WatchAlb) createConsumedLCUsMonitor(threshold *float64) (descriptor.Descriptor, *descriptor.Alarm) {
	metric := w.metrics.MetricConsumedLCUs(w.loadBalancerName)
	return metric, w.alarm("consumedLCUsAlarm", metric, threshold)
}

func (w *WatchAlb) createTargetResponseTimeMonitor(threshold *float64) (descriptor.Descriptor, *descriptor.Alarm) {
	metric := w.metrics.MetricTargetResponseTime(w.targetGroupName, w.loadBalancerName).Avg
	return metric, w.alarm("targetResponseTimeAlarm", metric, threshold)
}

func (w *WatchAlb) createRequestsMonitor(threshold *float64) (descriptor.Descriptor, *descriptor.Alarm) {
	metric := w.metrics.MetricRequestCount(w.targetGroupName, w.loadBalancerName)
	return metric, w.alarm("requestsAlarm", metric, threshold)
}

func (w *WatchAlb) createHostCountMetrics() (healthy, unhealthy descriptor.Descriptor) {
	return w.metrics.MetricMinHealthyHostCount(w.targetGroupName, w.loadBalancerName),
		w.metrics.MetricMaxUnhealthyHostCount(w.targetGroupName, w.loadBalancerName)
}

func (w *WatchAlb) createRequestsErrorRateMonitor(threshold *float64) (descriptor.Expression, *descriptor.Alarm) {
	metric := w.metrics.MetricHTTPErrorStatusCodeRate(w.targetGroupName, w.loadBalancerName)
	return metric, w.alarm("requestsErrorRateAlarm", metric, threshold)
}

func (w *WatchAlb) alarm(id string, metric descriptor.Metric, threshold *float64) *descriptor.Alarm {
	alarm := descriptor.NewThresholdAlarm(w.id, id, metric, threshold)
	w.watchful.AddAlarm(alarm)
	w.alarms = append(w.alarms, alarm)
	return alarm
}

func periodTitle(name string, metric descriptor.Metric) string {
	return fmt.Sprintf("%s/%dmin", name, int(metric.MetricPeriod().Minutes()))
}
