package tiers

import (
	"errors"
	"fmt"
)

var (
	ErrBoundaryOrder      = errors.New("tier boundaries must satisfy premium < gold < silver < bronze")
	ErrBreakpointOrder    = errors.New("breakpoints must be non-decreasing from left edge to right edge")
	ErrBoundariesNotFound = errors.New("tier boundaries not found")
)

// DefaultMinGap is the minimum distance between consecutive boundaries.
const DefaultMinGap = 10.0

var knotNames = [6]string{
	"left_edge", "left_section_end", "center_start", "center_end", "right_section_start", "right_edge",
}

// Validate checks the breakpoints are ordered and that, at every knot, each
// boundary lies at least minGap below the next one. A non-positive minGap
// still requires strict ordering.
func (s BoundarySet) Validate(minGap float64) error {
	bp := s.Breakpoints
	if bp.LeftEdge > bp.LeftSectionEnd || bp.LeftSectionEnd > bp.RightSectionStart || bp.RightSectionStart > bp.RightEdge {
		return ErrBreakpointOrder
	}

	curves := s.ordered()
	for i := 1; i < len(curves); i++ {
		prev, next := curves[i-1].curve.knots(), curves[i].curve.knots()
		for k := range prev {
			gap := next[k] - prev[k]
			if gap <= 0 || gap < minGap {
				return fmt.Errorf("%w: %s (%.2f) and %s (%.2f) at %s are %.2f apart, need %.2f",
					ErrBoundaryOrder, curves[i-1].tier, prev[k], curves[i].tier, next[k], knotNames[k], gap, minGap)
			}
		}
	}
	return nil
}

// Thresholds are the per-event scalar cutoffs, the flat form of a BoundarySet.
type Thresholds struct {
	PremiumY float64 `json:"premium_y" yaml:"premium_y"`
	GoldY    float64 `json:"gold_y" yaml:"gold_y"`
	SilverY  float64 `json:"silver_y" yaml:"silver_y"`
	BronzeY  float64 `json:"bronze_y" yaml:"bronze_y"`
}

// BoundarySet converts the thresholds to flat curves.
func (t Thresholds) BoundarySet() BoundarySet {
	return FlatBoundaries(t.PremiumY, t.GoldY, t.SilverY, t.BronzeY)
}

// Validate applies the ordering and gap rules to the scalar cutoffs.
func (t Thresholds) Validate(minGap float64) error {
	return t.BoundarySet().Validate(minGap)
}

// DefaultThresholds are used for events that never had boundaries configured.
func DefaultThresholds() Thresholds {
	return Thresholds{PremiumY: 200, GoldY: 300, SilverY: 400, BronzeY: 500}
}
