package tiers

type PutBoundariesRequest struct {
	PremiumY float64      `json:"premium_y" binding:"gte=0"`
	GoldY    float64      `json:"gold_y" binding:"gtfield=PremiumY"`
	SilverY  float64      `json:"silver_y" binding:"gtfield=GoldY"`
	BronzeY  float64      `json:"bronze_y" binding:"gtfield=SilverY"`
	Curves   *BoundarySet `json:"curves"`
}

func (r PutBoundariesRequest) thresholds() Thresholds {
	return Thresholds{PremiumY: r.PremiumY, GoldY: r.GoldY, SilverY: r.SilverY, BronzeY: r.BronzeY}
}

// ClassifyPointsRequest previews the tier of arbitrary canvas points.
type ClassifyPointsRequest struct {
	Points []PointRequest `json:"points" binding:"required,min=1,max=1000,dive"`
}

type PointRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}
