package layouts

import (
	"time"

	"github.com/google/uuid"
)

type PaginatedLayouts struct {
	Layouts    []VenueLayout `json:"layouts"`
	TotalCount int64         `json:"total_count"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalPages int           `json:"total_pages"`
}

// LayoutSummaryResponse is a layout without its element and zone payloads.
type LayoutSummaryResponse struct {
	ID               uuid.UUID    `json:"id"`
	Name             string       `json:"name"`
	VenueName        string       `json:"venue_name"`
	Status           LayoutStatus `json:"status"`
	ElementCount     int          `json:"element_count"`
	PriceZoneCount   int          `json:"price_zone_count"`
	Capacity         Capacity     `json:"capacity"`
	IsTemplate       bool         `json:"is_template"`
	TemplateCategory string       `json:"template_category,omitempty"`
	UsageCount       int          `json:"usage_count"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

func NewLayoutSummary(l *VenueLayout) LayoutSummaryResponse {
	return LayoutSummaryResponse{
		ID:               l.ID,
		Name:             l.Name,
		VenueName:        l.VenueName,
		Status:           l.Status,
		ElementCount:     len(l.Elements),
		PriceZoneCount:   len(l.PriceZones),
		Capacity:         l.Capacity(),
		IsTemplate:       l.IsTemplate,
		TemplateCategory: l.TemplateCategory,
		UsageCount:       l.UsageCount,
		UpdatedAt:        l.UpdatedAt,
	}
}

type PaginatedLayoutSummaries struct {
	Layouts    []LayoutSummaryResponse `json:"layouts"`
	TotalCount int64                   `json:"total_count"`
	Page       int                     `json:"page"`
	Limit      int                     `json:"limit"`
	TotalPages int                     `json:"total_pages"`
}

func (p *PaginatedLayouts) Summaries() *PaginatedLayoutSummaries {
	out := &PaginatedLayoutSummaries{
		Layouts:    make([]LayoutSummaryResponse, 0, len(p.Layouts)),
		TotalCount: p.TotalCount,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: p.TotalPages,
	}
	for i := range p.Layouts {
		out.Layouts = append(out.Layouts, NewLayoutSummary(&p.Layouts[i]))
	}
	return out
}

type PatchElementsResponse struct {
	Layout  *VenueLayout `json:"layout"`
	Changed int          `json:"changed"`
}

type DisplayColorsResponse struct {
	LayoutID uuid.UUID         `json:"layout_id"`
	Colors   map[string]string `json:"colors"`
}
