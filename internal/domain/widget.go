package domain

import "time"

// TimelineEntry is one discrete snapshot of what the widget should display.
// A nil DoodleImageData means the empty-state placeholder.
type TimelineEntry struct {
	DoodleImageData []byte
	PartnerName     string
	Date            time.Time
}

type RenderKind string

const (
	RenderDoodle RenderKind = "doodle"
	RenderEmpty  RenderKind = "empty"
)

// RenderModel is the fixed-layout view state the rendering process consumes:
// a full-bleed image with a name label, or the empty-state placeholder.
type RenderModel struct {
	Kind      RenderKind `json:"kind"`
	Label     string     `json:"label"`
	Image     []byte     `json:"image,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
}
