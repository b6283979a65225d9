package tiers

import (
	"testing"

	"venuelayout/internal/layouts"
	"venuelayout/pkg/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifySeats_UsesSeatCentre(t *testing.T) {
	seats, err := layouts.NewSeatGrid(layouts.GridSpec{
		Origin:      geometry.NewPoint(100, 172),
		Rows:        3,
		SeatsPerRow: 2,
		RowSpacing:  72,
	})
	require.NoError(t, err)
	stage, err := layouts.NewElement(layouts.KindStage)
	require.NoError(t, err)

	elements := append(seats, stage)
	got := ClassifySeats(elements, FlatBoundaries(200, 300, 400, 500))

	require.Len(t, got, 6)
	assert.NotContains(t, got, stage.ID)
	// rows start at y=172, 272, 372 so seat centres sit at 186, 286, 386
	assert.Equal(t, TierPremium, got[seats[0].ID])
	assert.Equal(t, TierGold, got[seats[2].ID])
	assert.Equal(t, TierSilver, got[seats[5].ID])

	counts := CountByTier(got)
	assert.Equal(t, map[Tier]int{TierPremium: 2, TierGold: 2, TierSilver: 2, TierBronze: 0, TierNormal: 0}, counts)
}
