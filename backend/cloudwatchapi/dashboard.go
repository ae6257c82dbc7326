// Package cloudwatchapi renders a watchful dashboard into the CloudWatch
// dashboard body format and PutMetricAlarm inputs, and applies them with the
// AWS SDK.
package cloudwatchapi

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"

	"github.com/30Piraten/watchful/descriptor"
	"github.com/30Piraten/watchful/watchful"
)

var _ watchful.Watchful = (*Dashboard)(nil)

type Options struct {
	DashboardName string
	// Region is stamped on every metric widget.
	Region string
	// AlarmActions are ARNs notified when an alarm fires, usually an SNS topic.
	AlarmActions []string
}

// Dashboard collects sections, widgets and alarms. Each AddWidgets call
// starts a new row.
type Dashboard struct {
	opts    Options
	widgets []widgetJSON
	alarms  []*descriptor.Alarm
	y       int
}

func New(opts Options) *Dashboard {
	return &Dashboard{opts: opts}
}

func (d *Dashboard) AddSection(title string, opts watchful.SectionOptions) {
	d.AddWidgets(watchful.SectionWidget(title, opts))
}

func (d *Dashboard) AddWidgets(widgets ...descriptor.Widget) {
	x, rowHeight := 0, 0
	for _, w := range widgets {
		width, height := w.Size()
		if x+width > descriptor.GridWidth {
			d.y += rowHeight
			x, rowHeight = 0, 0
		}
		d.widgets = append(d.widgets, d.render(w, x, d.y, width, height))
		x += width
		rowHeight = max(rowHeight, height)
	}
	d.y += rowHeight
}

func (d *Dashboard) AddAlarm(alarm *descriptor.Alarm) {
	d.alarms = append(d.alarms, alarm)
}

// Definition is everything Apply pushes to CloudWatch.
type Definition struct {
	DashboardName string
	Body          string
	Alarms        []*cloudwatch.PutMetricAlarmInput
}

// Build renders the dashboard body and one PutMetricAlarm input per alarm.
// Two alarms resolving to the same name are an error.
func (d *Dashboard) Build() (*Definition, error) {
	body, err := json.Marshal(bodyJSON{Widgets: d.widgets})
	if err != nil {
		return nil, fmt.Errorf("marshal dashboard %s: %w", d.opts.DashboardName, err)
	}

	seen := make(map[string]bool, len(d.alarms))
	inputs := make([]*cloudwatch.PutMetricAlarmInput, 0, len(d.alarms))
	for _, a := range d.alarms {
		name := d.alarmName(a)
		if seen[name] {
			return nil, fmt.Errorf("duplicate alarm name %q", name)
		}
		seen[name] = true

		in, err := alarmInput(name, a, d.opts.AlarmActions)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, in)
	}

	return &Definition{
		DashboardName: d.opts.DashboardName,
		Body:          string(body),
		Alarms:        inputs,
	}, nil
}

func (d *Dashboard) alarmName(a *descriptor.Alarm) string {
	return d.opts.DashboardName + "-" + a.Owner + "-" + a.ID
}

type bodyJSON struct {
	Widgets []widgetJSON `json:"widgets"`
}

type widgetJSON struct {
	Type       string `json:"type"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Properties any    `json:"properties"`
}

type textProperties struct {
	Markdown string `json:"markdown"`
}

type metricProperties struct {
	Title       string           `json:"title,omitempty"`
	View        string           `json:"view"`
	Region      string           `json:"region,omitempty"`
	Metrics     [][]any          `json:"metrics"`
	Annotations *annotationsJSON `json:"annotations,omitempty"`
}

type annotationsJSON struct {
	Horizontal []horizontalJSON `json:"horizontal"`
}

type horizontalJSON struct {
	Value float64 `json:"value"`
	Label string  `json:"label,omitempty"`
	Color string  `json:"color,omitempty"`
}

func (d *Dashboard) render(w descriptor.Widget, x, y, width, height int) widgetJSON {
	out := widgetJSON{X: x, Y: y, Width: width, Height: height}
	switch w := w.(type) {
	case descriptor.TextWidget:
		out.Type = "text"
		out.Properties = textProperties{Markdown: w.Markdown}
	case descriptor.GraphWidget:
		props := metricProperties{
			Title:   w.Title,
			View:    "timeSeries",
			Region:  d.opts.Region,
			Metrics: metricRows(w.Left),
		}
		if len(w.LeftAnnotations) > 0 {
			props.Annotations = &annotationsJSON{}
			for _, a := range w.LeftAnnotations {
				ann := a.Annotation()
				props.Annotations.Horizontal = append(props.Annotations.Horizontal, horizontalJSON{
					Value: ann.Value,
					Label: ann.Label,
					Color: ann.Color,
				})
			}
		}
		out.Type = "metric"
		out.Properties = props
	case descriptor.SingleValueWidget:
		out.Type = "metric"
		out.Properties = metricProperties{
			Title:   w.Title,
			View:    "singleValue",
			Region:  d.opts.Region,
			Metrics: metricRows(w.Metrics),
		}
	default:
		panic(fmt.Sprintf("cloudwatchapi: unsupported widget %T", w))
	}
	return out
}

// metricRows renders metrics in the dashboard array notation:
// [namespace, name, dim, value, ..., {options}].
func metricRows(metrics []descriptor.Metric) [][]any {
	var rows [][]any
	expressions := 0
	for _, m := range metrics {
		switch m := m.(type) {
		case descriptor.Descriptor:
			rows = append(rows, metricRow(m, map[string]any{}))
		case descriptor.Expression:
			expressions++
			opts := map[string]any{
				"expression": m.Expression,
				"id":         fmt.Sprintf("e%d", expressions),
				"period":     seconds(m.MetricPeriod()),
			}
			if m.Label != "" {
				opts["label"] = m.Label
			}
			if m.Color != "" {
				opts["color"] = m.Color
			}
			rows = append(rows, []any{opts})
			for _, id := range sortedKeys(m.UsingMetrics) {
				rows = append(rows, metricRow(m.UsingMetrics[id], map[string]any{
					"id":      id,
					"visible": false,
				}))
			}
		default:
			panic(fmt.Sprintf("cloudwatchapi: unsupported metric %T", m))
		}
	}
	return rows
}

func metricRow(m descriptor.Descriptor, opts map[string]any) []any {
	row := []any{m.Namespace, m.MetricName}
	for _, name := range sortedKeys(m.Dimensions) {
		row = append(row, name, m.Dimensions[name])
	}
	opts["stat"] = string(m.Statistic)
	opts["period"] = seconds(m.Period)
	if m.Label != "" {
		opts["label"] = m.Label
	}
	if m.Color != "" {
		opts["color"] = m.Color
	}
	return append(row, opts)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
