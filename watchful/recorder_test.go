package watchful

import "github.com/30Piraten/watchful/descriptor"

type section struct {
	title string
	opts  SectionOptions
}

// recorder is a Watchful that keeps everything it is given.
type recorder struct {
	sections []section
	rows     [][]descriptor.Widget
	alarms   []*descriptor.Alarm
}

func (r *recorder) AddSection(title string, opts SectionOptions) {
	r.sections = append(r.sections, section{title: title, opts: opts})
}

func (r *recorder) AddWidgets(widgets ...descriptor.Widget) {
	r.rows = append(r.rows, widgets)
}

func (r *recorder) AddAlarm(alarm *descriptor.Alarm) {
	r.alarms = append(r.alarms, alarm)
}

func (r *recorder) widgets() []descriptor.Widget {
	var all []descriptor.Widget
	for _, row := range r.rows {
		all = append(all, row...)
	}
	return all
}

func (r *recorder) alarm(id string) *descriptor.Alarm {
	for _, a := range r.alarms {
		if a.ID == id {
			return a
		}
	}
	return nil
}

func float(v float64) *float64 { return &v }
