package layouts

// Capacity is the aggregate seating summary of a set of elements.
type Capacity struct {
	TotalSeated        int `json:"total_seated"`
	TotalStanding      int `json:"total_standing"`
	TotalCapacity      int `json:"total_capacity"`
	AccessibilityCount int `json:"accessibility_count"`
}

// RecalculateCapacity counts seats, accessible seats and standing capacity
// from scratch. It never patches a previous result.
func RecalculateCapacity(elements []LayoutElement) Capacity {
	var c Capacity
	for _, el := range elements {
		switch p := el.Properties.(type) {
		case SeatProps:
			c.TotalSeated++
			if p.Accessible {
				c.AccessibilityCount++
			}
		case StandingAreaProps:
			c.TotalStanding += p.Capacity
		}
	}
	c.TotalCapacity = c.TotalSeated + c.TotalStanding
	return c
}

// Recalculate refreshes every derived field of the layout, including the
// per-zone seat counts.
func (l *VenueLayout) Recalculate() {
	c := RecalculateCapacity(l.Elements)
	l.TotalSeated = c.TotalSeated
	l.TotalStanding = c.TotalStanding
	l.TotalCapacity = c.TotalCapacity
	l.AccessibilityCount = c.AccessibilityCount
	l.PriceZones = l.PriceZones.WithSeatCounts(l.Elements)
}

// ZoneCapacity is the seat count of one price zone, used by capacity reports.
type ZoneCapacity struct {
	ZoneID    string  `json:"zone_id"`
	Name      string  `json:"name"`
	Color     string  `json:"color"`
	BasePrice float64 `json:"base_price"`
	Seats     int     `json:"seats"`
	Standing  int     `json:"standing"`
}

// CapacityReport is a capacity breakdown by price zone. Seats whose zone is
// missing or unknown are counted as unassigned.
type CapacityReport struct {
	Capacity
	Zones              []ZoneCapacity `json:"zones"`
	UnassignedSeats    int            `json:"unassigned_seats"`
	UnassignedStanding int            `json:"unassigned_standing"`
}

func BuildCapacityReport(elements []LayoutElement, zones PriceZones) CapacityReport {
	report := CapacityReport{Capacity: RecalculateCapacity(elements)}

	ordered := zones.Ordered()
	index := make(map[string]int, len(ordered))
	report.Zones = make([]ZoneCapacity, 0, len(ordered))
	for i, z := range ordered {
		index[z.ID] = i
		report.Zones = append(report.Zones, ZoneCapacity{
			ZoneID:    z.ID,
			Name:      z.Name,
			Color:     z.Color,
			BasePrice: z.BasePrice,
		})
	}

	for _, el := range elements {
		switch p := el.Properties.(type) {
		case SeatProps:
			if i, ok := index[p.PriceZoneID]; ok {
				report.Zones[i].Seats++
			} else {
				report.UnassignedSeats++
			}
		case StandingAreaProps:
			if i, ok := index[p.PriceZoneID]; ok {
				report.Zones[i].Standing += p.Capacity
			} else {
				report.UnassignedStanding += p.Capacity
			}
		}
	}
	return report
}
