package layouts

// Colours for seat states that override the zone colour.
const (
	ColorBroken        = "#9CA3AF"
	ColorReservedAdmin = "#F59E0B"
	ColorWheelchair    = "#3B82F6"
	ColorUnassigned    = "#D1D5DB"
)

var defaultColors = map[ElementKind]string{
	KindSeat:         ColorUnassigned,
	KindRow:          "#E5E7EB",
	KindSection:      "#F3F4F6",
	KindStage:        "#1F2937",
	KindStandingArea: "#FDE68A",
	KindShape:        "#E5E7EB",
	KindLabel:        "#111827",
	KindWall:         "#374151",
	KindEntrance:     "#10B981",
}

// DisplayColor returns the fill colour a renderer should use for el. Seat
// status overrides come first, then the colour of the referenced zone, then
// a per-kind default. Dangling zone references fall through to the default.
func DisplayColor(el LayoutElement, zones PriceZones) string {
	var zoneID string
	switch p := el.Properties.(type) {
	case SeatProps:
		switch p.Status {
		case SeatBroken:
			return ColorBroken
		case SeatReservedAdmin:
			return ColorReservedAdmin
		case SeatWheelchair:
			return ColorWheelchair
		}
		zoneID = p.PriceZoneID
	case StandingAreaProps:
		zoneID = p.PriceZoneID
	case RowProps:
		zoneID = p.PriceZoneID
	case SectionProps:
		if p.Color != "" {
			return p.Color
		}
		zoneID = p.PriceZoneID
	case ShapeProps:
		if p.FillColor != "" {
			return p.FillColor
		}
	case LabelProps:
		if p.Color != "" {
			return p.Color
		}
	case WallProps:
		if p.Color != "" {
			return p.Color
		}
	}

	if zone, ok := zones.Find(zoneID); ok {
		return zone.Color
	}
	return defaultColors[el.Kind()]
}

// DisplayColors maps every element id to its display colour.
func (l *VenueLayout) DisplayColors() map[string]string {
	colors := make(map[string]string, len(l.Elements))
	for _, el := range l.Elements {
		colors[el.ID] = DisplayColor(el, l.PriceZones)
	}
	return colors
}
