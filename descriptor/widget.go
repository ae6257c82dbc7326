package descriptor

// Dashboard grid width in columns.
const GridWidth = 24

// Widget is a dashboard widget. Size returns its width and height in grid
// units with defaults applied.
type Widget interface {
	Size() (width, height int)
}

// GraphWidget plots metrics over time with optional alarm threshold lines.
type GraphWidget struct {
	Title           string
	Width           int
	Height          int
	Left            []Metric
	LeftAnnotations []*Alarm
}

func (w GraphWidget) Size() (int, int) {
	return orDefault(w.Width, 6), orDefault(w.Height, 6)
}

// SingleValueWidget shows the latest value of each metric.
type SingleValueWidget struct {
	Title   string
	Width   int
	Height  int
	Metrics []Metric
}

func (w SingleValueWidget) Size() (int, int) {
	return orDefault(w.Width, 6), orDefault(w.Height, 3)
}

// TextWidget renders markdown. It spans the full grid width by default.
type TextWidget struct {
	Markdown string
	Width    int
	Height   int
}

func (w TextWidget) Size() (int, int) {
	return orDefault(w.Width, GridWidth), orDefault(w.Height, 2)
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
