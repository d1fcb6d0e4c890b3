package models

import "time"

// Marker is one circle drawn on a frame. Radius is in metres.
type Marker struct {
	Dataset string
	Country string
	Lat     float64
	Long    float64
	Value   float64
	Radius  float64
	Color   string
	Label   string
}

// AnnotationPosition anchors a text overlay to a corner of the map.
type AnnotationPosition string

const (
	TopLeft     AnnotationPosition = "top-left"
	TopRight    AnnotationPosition = "top-right"
	BottomLeft  AnnotationPosition = "bottom-left"
	BottomRight AnnotationPosition = "bottom-right"
)

// Annotation is fixed-position text overlaid on the map.
type Annotation struct {
	Text     string
	Position AnnotationPosition
	FontSize int
}

// MapView is the initial map centre and zoom.
type MapView struct {
	Lat  float64
	Long float64
	Zoom int
}

// Frame is the rendered map for a single date.
type Frame struct {
	Date        string
	Normalized  bool
	View        MapView
	Markers     []Marker
	Annotations []Annotation
}

// AddMarker attaches m to the frame.
func (f *Frame) AddMarker(m Marker) {
	f.Markers = append(f.Markers, m)
}

// Annotate overlays text on the frame.
func (f *Frame) Annotate(a Annotation) {
	f.Annotations = append(f.Annotations, a)
}

// FrameRecord describes what the sequencer did for one date.
type FrameRecord struct {
	Date       string
	Normalized bool
	HTMLPath   string
	ImagePath  string
	Reused     bool
	Markers    int
	RenderedAt time.Time
}
