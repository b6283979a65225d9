package tiers

import "github.com/google/uuid"

type BoundariesResponse struct {
	EventID    uuid.UUID    `json:"event_id"`
	Thresholds Thresholds   `json:"thresholds"`
	Curves     *BoundarySet `json:"curves,omitempty"`
	IsDefault  bool         `json:"is_default"`
}

func newBoundariesResponse(b *EventTierBoundaries, isDefault bool) *BoundariesResponse {
	return &BoundariesResponse{
		EventID:    b.EventID,
		Thresholds: b.Thresholds(),
		Curves:     b.Curves,
		IsDefault:  isDefault,
	}
}

// ClassificationResponse is the tier of every seat of a layout for one event.
type ClassificationResponse struct {
	EventID  uuid.UUID       `json:"event_id"`
	LayoutID uuid.UUID       `json:"layout_id"`
	Seats    map[string]Tier `json:"seats"`
	Counts   map[Tier]int    `json:"counts"`
}

type PointTier struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Tier Tier    `json:"tier"`
}

type ClassifyPointsResponse struct {
	EventID uuid.UUID   `json:"event_id"`
	Points  []PointTier `json:"points"`
}
