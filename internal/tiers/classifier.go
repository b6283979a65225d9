package tiers

// Tier is a seat price tier. Lower Y (closer to the stage) means a higher tier.
type Tier string

const (
	TierPremium Tier = "premium"
	TierGold    Tier = "gold"
	TierSilver  Tier = "silver"
	TierBronze  Tier = "bronze"
	TierNormal  Tier = "normal"
)

// Rank orders tiers by seniority: premium is 0, normal is 4.
func (t Tier) Rank() int {
	switch t {
	case TierPremium:
		return 0
	case TierGold:
		return 1
	case TierSilver:
		return 2
	case TierBronze:
		return 3
	default:
		return 4
	}
}

// IsValid reports whether t is one of the known tiers.
func (t Tier) IsValid() bool {
	switch t {
	case TierPremium, TierGold, TierSilver, TierBronze, TierNormal:
		return true
	}
	return false
}

// Breakpoints are the fixed X positions shared by every boundary curve.
type Breakpoints struct {
	LeftEdge          float64 `json:"left_edge" yaml:"left_edge"`
	LeftSectionEnd    float64 `json:"left_section_end" yaml:"left_section_end"`
	RightSectionStart float64 `json:"right_section_start" yaml:"right_section_start"`
	RightEdge         float64 `json:"right_edge" yaml:"right_edge"`
}

// Curve is one boundary, given as Y values at the breakpoints. CenterStart and
// CenterEnd are the values at LeftSectionEnd and RightSectionStart for the
// centre span; LeftSectionEnd and RightSectionStart close the wing spans.
type Curve struct {
	LeftEdge          float64 `json:"left_edge" yaml:"left_edge"`
	LeftSectionEnd    float64 `json:"left_section_end" yaml:"left_section_end"`
	CenterStart       float64 `json:"center_start" yaml:"center_start"`
	CenterEnd         float64 `json:"center_end" yaml:"center_end"`
	RightSectionStart float64 `json:"right_section_start" yaml:"right_section_start"`
	RightEdge         float64 `json:"right_edge" yaml:"right_edge"`
}

// FlatCurve is the degenerate curve with the same Y everywhere.
func FlatCurve(y float64) Curve {
	return Curve{
		LeftEdge:          y,
		LeftSectionEnd:    y,
		CenterStart:       y,
		CenterEnd:         y,
		RightSectionStart: y,
		RightEdge:         y,
	}
}

// knots returns the six Y values in breakpoint order.
func (c Curve) knots() [6]float64 {
	return [6]float64{c.LeftEdge, c.LeftSectionEnd, c.CenterStart, c.CenterEnd, c.RightSectionStart, c.RightEdge}
}

// At evaluates the curve at x.
//
// The centre span runs from bp.LeftSectionEnd to bp.RightSectionStart, both
// inclusive, so a seat exactly on either breakpoint takes the centre values.
func (c Curve) At(x float64, bp Breakpoints) float64 {
	switch {
	case x <= bp.LeftEdge:
		return c.LeftEdge
	case x < bp.LeftSectionEnd:
		return lerp(x, bp.LeftEdge, bp.LeftSectionEnd, c.LeftEdge, c.LeftSectionEnd)
	case x <= bp.RightSectionStart:
		return lerp(x, bp.LeftSectionEnd, bp.RightSectionStart, c.CenterStart, c.CenterEnd)
	case x < bp.RightEdge:
		return lerp(x, bp.RightSectionStart, bp.RightEdge, c.RightSectionStart, c.RightEdge)
	default:
		return c.RightEdge
	}
}

// lerp interpolates between (x0, y0) and (x1, y1). A zero-width span yields y0.
func lerp(x, x0, x1, y0, y1 float64) float64 {
	span := x1 - x0
	if span == 0 {
		return y0
	}
	return y0 + (x-x0)/span*(y1-y0)
}

// BoundarySet holds the four tier boundaries evaluated against one set of breakpoints.
type BoundarySet struct {
	Breakpoints Breakpoints `json:"breakpoints" yaml:"breakpoints"`
	Premium     Curve       `json:"premium" yaml:"premium"`
	Gold        Curve       `json:"gold" yaml:"gold"`
	Silver      Curve       `json:"silver" yaml:"silver"`
	Bronze      Curve       `json:"bronze" yaml:"bronze"`
}

// FlatBoundaries builds a BoundarySet from four scalar Y cutoffs.
func FlatBoundaries(premium, gold, silver, bronze float64) BoundarySet {
	return BoundarySet{
		Premium: FlatCurve(premium),
		Gold:    FlatCurve(gold),
		Silver:  FlatCurve(silver),
		Bronze:  FlatCurve(bronze),
	}
}

type namedCurve struct {
	tier  Tier
	curve Curve
}

// ordered returns the curves in evaluation priority order.
func (s BoundarySet) ordered() [4]namedCurve {
	return [4]namedCurve{
		{TierPremium, s.Premium},
		{TierGold, s.Gold},
		{TierSilver, s.Silver},
		{TierBronze, s.Bronze},
	}
}

// Classify returns the tier of a seat at (x, y): the first boundary, in the
// order premium, gold, silver, bronze, whose value at x is greater than y.
// Seats beyond every boundary are TierNormal.
func Classify(x, y float64, set BoundarySet) Tier {
	for _, nc := range set.ordered() {
		if nc.curve.At(x, set.Breakpoints) > y {
			return nc.tier
		}
	}
	return TierNormal
}
