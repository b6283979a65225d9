package layouts

import "venuelayout/pkg/geometry"

type CanvasRequest struct {
	Width           float64 `json:"width" binding:"required,gt=0"`
	Height          float64 `json:"height" binding:"required,gt=0"`
	BackgroundColor string  `json:"background_color" binding:"omitempty,hexcolor"`
	GridSize        float64 `json:"grid_size" binding:"gte=0"`
	SnapToGrid      bool    `json:"snap_to_grid"`
}

func (c *CanvasRequest) settings() CanvasSettings {
	if c == nil {
		return DefaultCanvas()
	}
	return CanvasSettings{
		Width:           c.Width,
		Height:          c.Height,
		BackgroundColor: c.BackgroundColor,
		GridSize:        c.GridSize,
		SnapToGrid:      c.SnapToGrid,
	}
}

type CreateLayoutRequest struct {
	Name        string         `json:"name" binding:"required,min=3,max=255"`
	Description string         `json:"description" binding:"max=1000"`
	VenueName   string         `json:"venue_name" binding:"max=255"`
	Canvas      *CanvasRequest `json:"canvas"`
}

// UpdateLayoutRequest replaces whole collections. Derived capacity fields are
// not accepted; they are recomputed from Elements.
type UpdateLayoutRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=3,max=255"`
	Description *string          `json:"description" binding:"omitempty,max=1000"`
	VenueName   *string          `json:"venue_name" binding:"omitempty,max=255"`
	Canvas      *CanvasRequest   `json:"canvas"`
	Elements    *[]LayoutElement `json:"elements"`
	PriceZones  *[]PriceZone     `json:"price_zones"`
}

type LayoutFilters struct {
	Page             int    `form:"page" binding:"omitempty,min=1"`
	Limit            int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Search           string `form:"search"`
	Status           string `form:"status" binding:"omitempty,oneof=draft active archived"`
	VenueName        string `form:"venue_name"`
	IsTemplate       *bool  `form:"is_template"`
	TemplateCategory string `form:"template_category"`
	SortBy           string `form:"sort_by" binding:"omitempty,oneof=name created_at updated_at total_capacity usage_count"`
	SortOrder        string `form:"sort_order" binding:"omitempty,oneof=asc desc"`
}

type AddSeatGridRequest struct {
	Origin      geometry.Point `json:"origin"`
	Rows        int            `json:"rows" binding:"required,min=1,max=26"`
	SeatsPerRow int            `json:"seats_per_row" binding:"required,min=1,max=200"`
	RowSpacing  float64        `json:"row_spacing" binding:"gte=0"`
	SeatSpacing float64        `json:"seat_spacing" binding:"gte=0"`
	PriceZoneID string         `json:"price_zone_id"`
	Section     string         `json:"section" binding:"max=100"`
	StartRow    string         `json:"start_row" binding:"omitempty,len=1,alpha"`
}

func (r AddSeatGridRequest) spec() GridSpec {
	return GridSpec{
		Origin:      r.Origin,
		Rows:        r.Rows,
		SeatsPerRow: r.SeatsPerRow,
		RowSpacing:  r.RowSpacing,
		SeatSpacing: r.SeatSpacing,
		PriceZoneID: r.PriceZoneID,
		Section:     r.Section,
		StartRow:    r.StartRow,
	}
}

type RemoveElementsRequest struct {
	ElementIDs []string `json:"element_ids" binding:"required,min=1"`
}

// PatchElementsRequest is a bulk update. Each non-nil field becomes one patch,
// applied only to the element kinds it concerns.
type PatchElementsRequest struct {
	ElementIDs  []string    `json:"element_ids" binding:"required,min=1"`
	PriceZoneID *string     `json:"price_zone_id"`
	Status      *SeatStatus `json:"status" binding:"omitempty,oneof=available reserved_admin broken wheelchair"`
	Accessible  *bool       `json:"accessible"`
	Section     *string     `json:"section" binding:"omitempty,max=100"`
	Locked      *bool       `json:"locked"`
	Visible     *bool       `json:"visible"`
}

func (r PatchElementsRequest) patches() []PropertyPatch {
	var patches []PropertyPatch
	if r.PriceZoneID != nil {
		patches = append(patches, ZonePatch{PriceZoneID: *r.PriceZoneID})
	}
	if r.Status != nil {
		patches = append(patches, SeatStatusPatch{Status: *r.Status})
	}
	if r.Accessible != nil {
		patches = append(patches, AccessibilityPatch{Accessible: *r.Accessible})
	}
	if r.Section != nil {
		patches = append(patches, SectionPatch{Section: *r.Section})
	}
	if r.Locked != nil || r.Visible != nil {
		patches = append(patches, FlagPatch{Locked: r.Locked, Visible: r.Visible})
	}
	return patches
}

type PriceZoneRequest struct {
	Name            string   `json:"name" binding:"required,max=100"`
	BasePrice       float64  `json:"base_price" binding:"gte=0"`
	Color           string   `json:"color" binding:"required,hexcolor"`
	Description     string   `json:"description" binding:"max=500"`
	DisplayOrder    int      `json:"display_order"`
	DynamicPricing  bool     `json:"dynamic_pricing"`
	PeakMultiplier  *float64 `json:"peak_multiplier" binding:"omitempty,gt=0"`
	OffPeakDiscount *float64 `json:"off_peak_discount" binding:"omitempty,gte=0,lte=100"`
}

func (r PriceZoneRequest) zone(id string) PriceZone {
	return PriceZone{
		ID:              id,
		Name:            r.Name,
		BasePrice:       r.BasePrice,
		Color:           r.Color,
		Description:     r.Description,
		DisplayOrder:    r.DisplayOrder,
		DynamicPricing:  r.DynamicPricing,
		PeakMultiplier:  r.PeakMultiplier,
		OffPeakDiscount: r.OffPeakDiscount,
	}
}
