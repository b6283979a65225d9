package tiers

import "venuelayout/internal/layouts"

// ClassifySeats assigns a tier to every seat, keyed by element id, using the
// centre of the seat's bounding box. Non-seat elements are skipped.
func ClassifySeats(elements []layouts.LayoutElement, set BoundarySet) map[string]Tier {
	out := make(map[string]Tier)
	for _, el := range elements {
		if el.Kind() != layouts.KindSeat {
			continue
		}
		c := el.Bounds().Center()
		out[el.ID] = Classify(c.X, c.Y, set)
	}
	return out
}

// CountByTier tallies a classification. Every tier is present in the result.
func CountByTier(assigned map[string]Tier) map[Tier]int {
	counts := map[Tier]int{
		TierPremium: 0,
		TierGold:    0,
		TierSilver:  0,
		TierBronze:  0,
		TierNormal:  0,
	}
	for _, t := range assigned {
		counts[t]++
	}
	return counts
}
