package views

// Figure is a chart description independent of any drawing library.
// Exactly one of Scatter, Bar or Radar is set.
type Figure struct {
	Mode     Mode   `json:"mode"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	XLabel   string `json:"x_label,omitempty"`
	YLabel   string `json:"y_label,omitempty"`
	NoData   bool   `json:"no_data"`

	Scatter *ScatterData `json:"scatter,omitempty"`
	Bar     *BarData     `json:"bar,omitempty"`
	Radar   *RadarData   `json:"radar,omitempty"`
}

// Point is one country on the scatter plot; Country doubles as hover text.
type Point struct {
	Country string  `json:"country"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
}

type ScatterData struct {
	Points     []Point `json:"points"`
	MarkerSize float64 `json:"marker_size"`
	Opacity    float64 `json:"opacity"`
}

type BarItem struct {
	Country string  `json:"country"`
	Value   float64 `json:"value"`
}

type BarData struct {
	Bars          []BarItem `json:"bars"`
	CategoryOrder string    `json:"category_order"`
}

// Trace is one closed polygon on the radar chart.
type Trace struct {
	Name string    `json:"name"`
	R    []float64 `json:"r"`
}

type RadarData struct {
	Country     string     `json:"country"`
	Dimensions  []string   `json:"dimensions"`
	Traces      []Trace    `json:"traces"`
	RadialRange [2]float64 `json:"radial_range"`
	Closed      bool       `json:"closed"`
	ShowLegend  bool       `json:"show_legend"`
}
