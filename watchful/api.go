// Package watchful turns AWS resources into dashboard sections, widgets and
// alarms registered on a Watchful aggregator.
package watchful

import (
	"strings"

	"github.com/30Piraten/watchful/descriptor"
)

// Watchful collects the sections, widgets and alarms of one dashboard.
type Watchful interface {
	AddSection(title string, opts SectionOptions)
	AddWidgets(widgets ...descriptor.Widget)
	AddAlarm(alarm *descriptor.Alarm)
}

type Link struct {
	Title string
	URL   string
}

type SectionOptions struct {
	Links []Link
}

// SectionWidget renders a section header as a full width text widget.
func SectionWidget(title string, opts SectionOptions) descriptor.TextWidget {
	buttons := make([]string, 0, len(opts.Links))
	for _, link := range opts.Links {
		buttons = append(buttons, "[button:"+link.Title+"]("+link.URL+")")
	}
	return descriptor.TextWidget{
		Markdown: "# " + title + "\n" + strings.Join(buttons, " | "),
		Width:    descriptor.GridWidth,
		Height:   2,
	}
}
