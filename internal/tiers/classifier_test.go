package tiers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bowl is a boundary set where every curve dips at the wings.
func bowl() BoundarySet {
	shift := func(c Curve, dy float64) Curve {
		return Curve{
			LeftEdge:          c.LeftEdge + dy,
			LeftSectionEnd:    c.LeftSectionEnd + dy,
			CenterStart:       c.CenterStart + dy,
			CenterEnd:         c.CenterEnd + dy,
			RightSectionStart: c.RightSectionStart + dy,
			RightEdge:         c.RightEdge + dy,
		}
	}
	premium := Curve{LeftEdge: 100, LeftSectionEnd: 150, CenterStart: 200, CenterEnd: 200, RightSectionStart: 150, RightEdge: 100}
	return BoundarySet{
		Breakpoints: Breakpoints{LeftEdge: 0, LeftSectionEnd: 300, RightSectionStart: 900, RightEdge: 1200},
		Premium:     premium,
		Gold:        shift(premium, 100),
		Silver:      shift(premium, 200),
		Bronze:      shift(premium, 300),
	}
}

func TestCurveAt_Regions(t *testing.T) {
	set := bowl()
	c, bp := set.Premium, set.Breakpoints

	cases := []struct {
		name string
		x    float64
		want float64
	}{
		{"before left edge", -50, 100},
		{"at left edge", 0, 100},
		{"left wing", 150, 125},
		{"at left section end", 300, 200},
		{"centre", 600, 200},
		{"at right section start", 900, 200},
		{"right wing", 1050, 125},
		{"at right edge", 1200, 100},
		{"past right edge", 5000, 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, c.At(tc.x, bp), 1e-9)
		})
	}
}

func TestCurveAt_ZeroWidthSpans(t *testing.T) {
	bp := Breakpoints{LeftEdge: 100, LeftSectionEnd: 100, RightSectionStart: 100, RightEdge: 100}
	c := Curve{LeftEdge: 1, LeftSectionEnd: 2, CenterStart: 3, CenterEnd: 4, RightSectionStart: 5, RightEdge: 6}

	assert.Equal(t, 1.0, c.At(99, bp))
	assert.Equal(t, 1.0, c.At(100, bp))
	assert.Equal(t, 6.0, c.At(101, bp))
}

func TestClassify_BreakpointExactX(t *testing.T) {
	set := bowl()

	// just left of the section end the premium boundary is still in the wing
	assert.Equal(t, TierGold, Classify(299, 180, set))
	// exactly on it the centre values apply
	assert.Equal(t, TierPremium, Classify(300, 180, set))
	assert.Equal(t, TierPremium, Classify(900, 180, set))
	assert.Equal(t, TierGold, Classify(901, 180, set))
}

func TestClassify_Flat(t *testing.T) {
	set := FlatBoundaries(200, 300, 400, 500)

	cases := []struct {
		y    float64
		want Tier
	}{
		{0, TierPremium},
		{199.9, TierPremium},
		{200, TierGold},
		{299, TierGold},
		{300, TierSilver},
		{450, TierBronze},
		{499.9, TierBronze},
		{500, TierNormal},
		{10000, TierNormal},
	}
	for _, tc := range cases {
		for _, x := range []float64{-100, 0, 600, 1e6} {
			assert.Equal(t, tc.want, Classify(x, tc.y, set), "x=%v y=%v", x, tc.y)
		}
	}
	assert.Equal(t, set, DefaultThresholds().BoundarySet())
}

func TestClassify_DeterministicAndMonotonic(t *testing.T) {
	sets := []BoundarySet{bowl(), FlatBoundaries(200, 300, 400, 500)}

	for _, set := range sets {
		for x := -100.0; x <= 1300; x += 37 {
			prev := -1
			for y := 0.0; y <= 700; y += 3 {
				tier := Classify(x, y, set)
				assert.Equal(t, tier, Classify(x, y, set))
				assert.GreaterOrEqual(t, tier.Rank(), prev, "x=%v y=%v", x, y)
				prev = tier.Rank()
			}
		}
	}
}

func TestBoundarySet_Validate(t *testing.T) {
	require.NoError(t, bowl().Validate(DefaultMinGap))
	require.NoError(t, DefaultThresholds().Validate(DefaultMinGap))

	tight := bowl()
	tight.Gold.CenterEnd = tight.Premium.CenterEnd + 5
	err := tight.Validate(DefaultMinGap)
	assert.ErrorIs(t, err, ErrBoundaryOrder)
	assert.Contains(t, err.Error(), "center_end")
	assert.NoError(t, tight.Validate(0))

	crossed := bowl()
	crossed.Silver.LeftEdge = crossed.Gold.LeftEdge
	assert.ErrorIs(t, crossed.Validate(0), ErrBoundaryOrder)

	unordered := bowl()
	unordered.Breakpoints.RightSectionStart = 100
	assert.ErrorIs(t, unordered.Validate(DefaultMinGap), ErrBreakpointOrder)

	assert.ErrorIs(t, Thresholds{PremiumY: 300, GoldY: 200, SilverY: 400, BronzeY: 500}.Validate(0), ErrBoundaryOrder)
}

func TestTier_Rank(t *testing.T) {
	assert.Equal(t, 0, TierPremium.Rank())
	assert.Equal(t, 4, TierNormal.Rank())
	assert.True(t, TierBronze.IsValid())
	assert.False(t, Tier("vip").IsValid())
}
