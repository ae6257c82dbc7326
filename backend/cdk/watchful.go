// Package cdk renders a watchful dashboard as CDK constructs: a CloudWatch
// dashboard, alarms, and an SNS topic that every alarm notifies.
package cdk

import (
	"github.com/aws/aws-cdk-go/awscdk/v2/awscloudwatch"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscloudwatchactions"
	"github.com/aws/aws-cdk-go/awscdk/v2/awssns"
	"github.com/aws/aws-cdk-go/awscdk/v2/awssnssubscriptions"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/30Piraten/watchful/descriptor"
	"github.com/30Piraten/watchful/watchful"
)

var _ watchful.Watchful = (*Watchful)(nil)

type WatchfulProps struct {
	DashboardName *string
	// AlarmTopic receives every alarm. A new topic is created when nil.
	AlarmTopic     awssns.ITopic
	AlarmTopicName *string
	// AlarmEmail, when set, is subscribed to the alarm topic.
	AlarmEmail *string
}

type Watchful struct {
	constructs.Construct
	dashboard awscloudwatch.Dashboard
	topic     awssns.ITopic
	owners    map[string]constructs.Construct
	alarms    map[*descriptor.Alarm]awscloudwatch.Alarm
	actioned  map[*descriptor.Alarm]bool
}

func NewWatchful(scope constructs.Construct, id string, props *WatchfulProps) *Watchful {
	if props == nil {
		props = &WatchfulProps{}
	}
	this := constructs.NewConstruct(scope, &id)

	topic := props.AlarmTopic
	if topic == nil {
		topic = awssns.NewTopic(this, jsii.String("AlarmTopic"), &awssns.TopicProps{
			TopicName:   props.AlarmTopicName,
			DisplayName: jsii.String("Watchful Alarms"),
		})
	}
	if props.AlarmEmail != nil {
		topic.AddSubscription(awssnssubscriptions.NewEmailSubscription(props.AlarmEmail, nil))
	}

	dashboard := awscloudwatch.NewDashboard(this, jsii.String("Dashboard"), &awscloudwatch.DashboardProps{
		DashboardName: props.DashboardName,
	})

	return &Watchful{
		Construct: this,
		dashboard: dashboard,
		topic:     topic,
		owners:    map[string]constructs.Construct{},
		alarms:    map[*descriptor.Alarm]awscloudwatch.Alarm{},
		actioned:  map[*descriptor.Alarm]bool{},
	}
}

func (w *Watchful) Dashboard() awscloudwatch.Dashboard { return w.dashboard }

func (w *Watchful) AlarmTopic() awssns.ITopic { return w.topic }

func (w *Watchful) AddSection(title string, opts watchful.SectionOptions) {
	w.AddWidgets(watchful.SectionWidget(title, opts))
}

// AddWidgets adds the widgets to the dashboard as one row.
func (w *Watchful) AddWidgets(widgets ...descriptor.Widget) {
	rendered := make([]awscloudwatch.IWidget, 0, len(widgets))
	for _, wd := range widgets {
		rendered = append(rendered, w.widget(wd))
	}
	w.dashboard.AddWidgets(rendered...)
}

// AddAlarm creates the alarm, if a widget has not already, and routes it to
// the alarm topic.
func (w *Watchful) AddAlarm(a *descriptor.Alarm) {
	alarm := w.alarm(a)
	if w.actioned[a] {
		return
	}
	alarm.AddAlarmAction(awscloudwatchactions.NewSnsAction(w.topic))
	w.actioned[a] = true
}

func (w *Watchful) alarm(a *descriptor.Alarm) awscloudwatch.Alarm {
	if alarm, ok := w.alarms[a]; ok {
		return alarm
	}
	alarm := awscloudwatch.NewAlarm(w.owner(a.Owner), jsii.String(a.ID), &awscloudwatch.AlarmProps{
		AlarmDescription:   optional(a.Description),
		Metric:             metric(a.Metric),
		Threshold:          jsii.Number(a.Threshold),
		ComparisonOperator: comparisonOperator(a.ComparisonOperator),
		EvaluationPeriods:  jsii.Number(a.EvaluationPeriods),
		TreatMissingData:   treatMissingData(a.TreatMissingData),
	})
	w.alarms[a] = alarm
	return alarm
}

// owner scopes alarms by the watch that created them so ids only need to be
// unique per watch.
func (w *Watchful) owner(name string) constructs.Construct {
	if scope, ok := w.owners[name]; ok {
		return scope
	}
	scope := constructs.NewConstruct(w.Construct, jsii.String(name))
	w.owners[name] = scope
	return scope
}

func (w *Watchful) widget(wd descriptor.Widget) awscloudwatch.IWidget {
	width, height := wd.Size()
	switch wd := wd.(type) {
	case descriptor.TextWidget:
		return awscloudwatch.NewTextWidget(&awscloudwatch.TextWidgetProps{
			Markdown: jsii.String(wd.Markdown),
			Width:    jsii.Number(width),
			Height:   jsii.Number(height),
		})
	case descriptor.GraphWidget:
		annotations := make([]*awscloudwatch.HorizontalAnnotation, 0, len(wd.LeftAnnotations))
		for _, a := range wd.LeftAnnotations {
			annotations = append(annotations, w.alarm(a).ToAnnotation())
		}
		left := metrics(wd.Left)
		return awscloudwatch.NewGraphWidget(&awscloudwatch.GraphWidgetProps{
			Title:           jsii.String(wd.Title),
			Width:           jsii.Number(width),
			Height:          jsii.Number(height),
			Left:            &left,
			LeftAnnotations: &annotations,
		})
	case descriptor.SingleValueWidget:
		values := metrics(wd.Metrics)
		return awscloudwatch.NewSingleValueWidget(&awscloudwatch.SingleValueWidgetProps{
			Title:   jsii.String(wd.Title),
			Width:   jsii.Number(width),
			Height:  jsii.Number(height),
			Metrics: &values,
		})
	}
	panic("cdk: unsupported widget type")
}
