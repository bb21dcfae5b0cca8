package internal

// ChartDescriptor is the canonical, format-agnostic chart data produced by
// the gateway. It is never mutated after creation, only reformatted for the
// rendering surface or the export pipeline.
type ChartDescriptor struct {
	Type   string    `json:"type"`
	Title  string    `json:"title,omitempty"`
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
	Colors []string  `json:"colors,omitempty"`
	Hole   float64   `json:"hole,omitempty"` // pie only
}

// ChartSuggestion is one gateway-recommended visualization for a result set
type ChartSuggestion struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	BestFor     string `json:"best_for,omitempty"`
}

// Marker holds per-point styling for a trace
type Marker struct {
	Color  []string `json:"color,omitempty"`  // cartesian traces
	Colors []string `json:"colors,omitempty"` // pie slices
	Size   int      `json:"size,omitempty"`
}

// Line holds stroke styling for line traces
type Line struct {
	Color string `json:"color,omitempty"`
	Width int    `json:"width,omitempty"`
}

// Trace is a renderer-ready data series
type Trace struct {
	Type      string    `json:"type"`
	Name      string    `json:"name,omitempty"`
	X         []string  `json:"x,omitempty"`
	Y         []float64 `json:"y,omitempty"`
	Labels    []string  `json:"labels,omitempty"`
	Values    []float64 `json:"values,omitempty"`
	Mode      string    `json:"mode,omitempty"`
	TextInfo  string    `json:"textinfo,omitempty"`
	HoverInfo string    `json:"hoverinfo,omitempty"`
	Hole      float64   `json:"hole,omitempty"`
	Marker    *Marker   `json:"marker,omitempty"`
	Line      *Line     `json:"line,omitempty"`
}

// Axis describes one chart axis
type Axis struct {
	Title     string `json:"title,omitempty"`
	ShowGrid  bool   `json:"showgrid"`
	GridColor string `json:"gridcolor,omitempty"`
}

// Legend describes legend placement
type Legend struct {
	Orientation string  `json:"orientation,omitempty"`
	XAnchor     string  `json:"xanchor,omitempty"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
}

// Margin is the plot margin in pixels
type Margin struct {
	T int `json:"t"`
	B int `json:"b"`
	L int `json:"l"`
	R int `json:"r"`
}

// Font holds layout font styling
type Font struct {
	Color string `json:"color,omitempty"`
}

// Layout is renderer-ready layout metadata
type Layout struct {
	Title        string  `json:"title"`
	ShowLegend   bool    `json:"showlegend"`
	Width        int     `json:"width,omitempty"`
	Height       int     `json:"height,omitempty"`
	XAxis        *Axis   `json:"xaxis,omitempty"`
	YAxis        *Axis   `json:"yaxis,omitempty"`
	PlotBGColor  string  `json:"plot_bgcolor"`
	PaperBGColor string  `json:"paper_bgcolor"`
	Font         Font    `json:"font"`
	Margin       Margin  `json:"margin"`
	Legend       *Legend `json:"legend,omitempty"`
}

// RenderedChart couples the original descriptor with its renderer-ready
// traces and layout. The descriptor rides along so exports always have the
// canonical data.
type RenderedChart struct {
	Descriptor ChartDescriptor `json:"descriptor"`
	Data       []Trace         `json:"data"`
	Layout     Layout          `json:"layout"`
}

const (
	defaultTraceColor = "rgb(99, 102, 241)"
	gridColor         = "rgba(99, 102, 241, 0.1)"
	transparent       = "rgba(0,0,0,0)"
	layoutFontColor   = "#e2e8f0"
)

// FormatChart builds the renderer-ready structure for a descriptor. Pie
// charts become label+value slices with percentage display; every other
// type becomes a cartesian trace with type-specific defaults.
func FormatChart(d ChartDescriptor) *RenderedChart {
	var trace Trace

	if d.Type == "pie" {
		trace = Trace{
			Type:      "pie",
			Labels:    d.Labels,
			Values:    d.Values,
			TextInfo:  "label+percent",
			HoverInfo: "label+value+percent",
			Hole:      d.Hole,
		}
		if len(d.Colors) > 0 {
			trace.Marker = &Marker{Colors: d.Colors}
		}
	} else {
		trace = Trace{
			Type: d.Type,
			Name: d.Title,
			X:    d.Labels,
			Y:    d.Values,
		}
		if trace.Type == "" {
			trace.Type = "bar"
		}
		if trace.Name == "" {
			trace.Name = "Chart"
		}
		if len(d.Colors) > 0 {
			trace.Marker = &Marker{Color: d.Colors}
		}

		switch d.Type {
		case "scatter":
			trace.Mode = "markers"
			if trace.Marker == nil {
				trace.Marker = &Marker{Color: []string{defaultTraceColor}, Size: 8}
			}
		case "line":
			trace.Line = &Line{Color: defaultTraceColor, Width: 3}
		}
	}

	return &RenderedChart{
		Descriptor: d,
		Data:       []Trace{trace},
		Layout:     layoutFor(d),
	}
}

func layoutFor(d ChartDescriptor) Layout {
	if d.Type == "pie" {
		title := d.Title
		if title == "" {
			title = "Pie Chart"
		}
		return Layout{
			Title:        title,
			ShowLegend:   true,
			Height:       400,
			Width:        500,
			Margin:       Margin{T: 50, B: 50, L: 50, R: 50},
			Font:         Font{Color: layoutFontColor},
			PlotBGColor:  transparent,
			PaperBGColor: transparent,
			Legend: &Legend{
				Orientation: "h",
				XAnchor:     "center",
				X:           0.5,
				Y:           -0.2,
			},
		}
	}

	title := d.Title
	if title == "" {
		title = "Chart"
	}
	return Layout{
		Title:        title,
		ShowLegend:   true,
		XAxis:        &Axis{Title: "Labels", ShowGrid: true, GridColor: gridColor},
		YAxis:        &Axis{Title: "Values", ShowGrid: true, GridColor: gridColor},
		PlotBGColor:  transparent,
		PaperBGColor: transparent,
		Font:         Font{Color: layoutFontColor},
		Margin:       Margin{L: 50, R: 50, T: 50, B: 50},
	}
}
