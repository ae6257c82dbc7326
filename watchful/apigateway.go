package watchful

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/aws/aws-sdk-go-v2/aws"

	"github.com/30Piraten/watchful/descriptor"
	"github.com/30Piraten/watchful/monitoring/apigateway"
)

// RestApi is satisfied by awsapigateway.RestApi and by RestApiRef.
type RestApi interface {
	RestApiName() *string
	RestApiId() *string
}

type RestApiRef struct {
	Name string
	ID   string
}

func (r RestApiRef) RestApiName() *string { return aws.String(r.Name) }
func (r RestApiRef) RestApiId() *string   { return aws.String(r.ID) }

const defaultServerErrorThreshold = 1

type WatchApiGatewayOptions struct {
	// ServerErrorThreshold alarms when 5XX errors reach it within one
	// AlarmPeriod. nil means 1, 0 disables the alarms.
	ServerErrorThreshold *float64
	// AlarmPeriod defaults to one minute.
	AlarmPeriod time.Duration
	// WatchedOperations get their own row of widgets and alarm.
	WatchedOperations []apigateway.Operation
	CacheGraph        bool
}

type WatchApiGatewayProps struct {
	WatchApiGatewayOptions
	Title     string
	Watchful  Watchful
	RestApi   RestApi
	StageName string
	Region    string
}

// WatchApiGateway monitors a deployed REST API stage.
type WatchApiGateway struct {
	id       string
	watchful Watchful
	metrics  apigateway.MetricFactory
	apiName  string
	stage    string
	alarms   []*descriptor.Alarm
	alarmIDs map[string]bool
}

func NewWatchApiGateway(id string, props *WatchApiGatewayProps) *WatchApiGateway {
	w := &WatchApiGateway{
		id:       id,
		watchful: props.Watchful,
		metrics:  apigateway.NewMetricFactory(),
		apiName:  aws.ToString(props.RestApi.RestApiName()),
		stage:    props.StageName,
		alarmIDs: map[string]bool{},
	}

	threshold := descriptor.ThresholdOrDefault(props.ServerErrorThreshold, defaultServerErrorThreshold)
	period := props.AlarmPeriod
	if period == 0 {
		period = apigateway.Period
	}

	w.watchful.AddSection(props.Title, SectionOptions{
		Links: []Link{{
			Title: "Amazon API Gateway Console",
			URL:   linkForApiGateway(props.Region, aws.ToString(props.RestApi.RestApiId())),
		}},
	})

	operations := append([]*apigateway.Operation{nil}, operationRefs(props.WatchedOperations)...)
	for _, op := range operations {
		var alarm *descriptor.Alarm
		if threshold > 0 {
			alarm = w.createServerErrorAlarm(op, threshold, period)
		}
		w.addOperationWidgets(op, alarm, props.CacheGraph)
	}
	return w
}

// Alarms returns the 5XX alarms, stage first, then one per watched operation.
func (w *WatchApiGateway) Alarms() []*descriptor.Alarm {
	return w.alarms
}

func (w *WatchApiGateway) createServerErrorAlarm(op *apigateway.Operation, threshold float64, period time.Duration) *descriptor.Alarm {
	errs := w.metrics.MetricErrors(w.apiName, w.stage, op)
	metric := errs.Count5XX
	metric.Period = period

	prefix := ""
	description := "at " + w.apiName + "/" + w.stage
	if op != nil {
		prefix = alphanumeric(op.HTTPMethod + op.ResourcePath)
		description = "at " + op.Name() + " on " + w.apiName + "/" + w.stage
	}
	alarm := &descriptor.Alarm{
		Owner:              w.id,
		ID:                 w.uniqueAlarmID(prefix, "5XXErrorAlarm"),
		Description:        ">= " + formatThreshold(threshold) + " API gateway failures " + description,
		Metric:             metric,
		Threshold:          threshold,
		ComparisonOperator: descriptor.GreaterThanOrEqualToThreshold,
		EvaluationPeriods:  1,
	}
	w.watchful.AddAlarm(alarm)
	w.alarms = append(w.alarms, alarm)
	return alarm
}

// uniqueAlarmID returns prefix+suffix, numbering the prefix when operations
// like "GET /orders/{id}" and "GET /orders/id" reduce to the same letters.
func (w *WatchApiGateway) uniqueAlarmID(prefix, suffix string) string {
	id := prefix + suffix
	for n := 2; w.alarmIDs[id]; n++ {
		id = prefix + strconv.Itoa(n) + suffix
	}
	w.alarmIDs[id] = true
	return id
}

func (w *WatchApiGateway) addOperationWidgets(op *apigateway.Operation, alarm *descriptor.Alarm, cacheGraph bool) {
	name := "Overall"
	if op != nil {
		name = op.Name()
	}
	width := 8
	if cacheGraph {
		width = 6
	}

	widgets := []descriptor.Widget{
		descriptor.GraphWidget{
			Title:  name + " Calls/min",
			Width:  width,
			Height: 6,
			Left:   []descriptor.Metric{w.metrics.MetricCalls(w.apiName, w.stage, op)},
		},
	}
	if cacheGraph {
		cache := w.metrics.MetricCache(w.apiName, w.stage, op)
		widgets = append(widgets, descriptor.GraphWidget{
			Title:  name + " Cache/min",
			Width:  width,
			Height: 6,
			Left:   []descriptor.Metric{cache.Hits, cache.Misses},
		})
	}

	errs := w.metrics.MetricErrors(w.apiName, w.stage, op)
	errorsWidget := descriptor.GraphWidget{
		Title:  name + " Errors/min",
		Width:  width,
		Height: 6,
		Left:   []descriptor.Metric{errs.Count4XX, errs.Count5XX},
	}
	if alarm != nil {
		errorsWidget.LeftAnnotations = []*descriptor.Alarm{alarm}
	}
	widgets = append(widgets,
		descriptor.GraphWidget{
			Title:  name + " Latency",
			Width:  width,
			Height: 6,
			Left:   w.metrics.MetricLatency(w.apiName, w.stage, op).All(),
		},
		errorsWidget,
	)
	w.watchful.AddWidgets(widgets...)
}

func operationRefs(ops []apigateway.Operation) []*apigateway.Operation {
	refs := make([]*apigateway.Operation, len(ops))
	for i := range ops {
		refs[i] = &ops[i]
	}
	return refs
}

func alphanumeric(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}

func formatThreshold(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
