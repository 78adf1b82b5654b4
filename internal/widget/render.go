package widget

import "github.com/doodlemate-companion/internal/domain"

// Render maps a timeline entry to the fixed-layout view model the rendering
// process consumes: full-bleed image with a name label, or the empty-state
// placeholder.
func Render(e domain.TimelineEntry) domain.RenderModel {
	if e.DoodleImageData == nil {
		return domain.RenderModel{
			Kind:      domain.RenderEmpty,
			Label:     e.PartnerName,
			Timestamp: e.Date,
		}
	}
	return domain.RenderModel{
		Kind:      domain.RenderDoodle,
		Label:     e.PartnerName,
		Image:     e.DoodleImageData,
		Timestamp: e.Date,
	}
}
