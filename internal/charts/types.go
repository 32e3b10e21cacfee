package charts

import (
	"fmt"
	"strings"
)

// ChartType is a closed set of chart families. The zero value is invalid.
type ChartType int

const (
	Bar ChartType = iota + 1
	Pie
	Pareto
	Histogram
	Density
	BoxPlot
	Contingency
	Scatter
	Density2D
	GroupedBoxPlot
	Violin
)

// AllTypes lists every chart type in declaration order.
var AllTypes = []ChartType{Bar, Pie, Pareto, Histogram, Density, BoxPlot, Contingency, Scatter, Density2D, GroupedBoxPlot, Violin}

var typeNames = map[ChartType]struct{ slug, title string }{
	Bar:            {"bar", "Bar chart"},
	Pie:            {"pie", "Pie chart"},
	Pareto:         {"pareto", "Pareto chart"},
	Histogram:      {"histogram", "Histogram"},
	Density:        {"density", "Density plot"},
	BoxPlot:        {"boxplot", "Box plot"},
	Contingency:    {"contingency", "Contingency heatmap"},
	Scatter:        {"scatter", "Scatter plot"},
	Density2D:      {"density2d", "2D density plot"},
	GroupedBoxPlot: {"grouped-boxplot", "Box plot by group"},
	Violin:         {"violin", "Violin plot"},
}

// String returns the stable slug used on the command line and in file names.
func (c ChartType) String() string {
	if n, ok := typeNames[c]; ok {
		return n.slug
	}
	return fmt.Sprintf("chart(%d)", int(c))
}

// Title is the human-readable name shown in menus.
func (c ChartType) Title() string {
	if n, ok := typeNames[c]; ok {
		return n.title
	}
	return c.String()
}

// Valid reports whether c is a known chart type.
func (c ChartType) Valid() bool {
	_, ok := typeNames[c]
	return ok
}

// ParseChartType accepts a slug (case-insensitive, '_' or ' ' for '-').
func ParseChartType(s string) (ChartType, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("_", "-", " ", "-").Replace(norm)
	switch norm {
	case "box", "box-plot":
		return BoxPlot, nil
	case "heatmap", "crosstab":
		return Contingency, nil
	case "boxplot-by-group", "grouped-box":
		return GroupedBoxPlot, nil
	case "density-2d", "kde2d":
		return Density2D, nil
	}
	for _, c := range AllTypes {
		if typeNames[c].slug == norm {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown chart type %q", s)
}

func typeList(ts []ChartType) string {
	names := make([]string, len(ts))
	for i, t := range ts {
		names[i] = t.String()
	}
	return strings.Join(names, ", ")
}
