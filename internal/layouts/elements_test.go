package layouts

import (
	"testing"

	"venuelayout/pkg/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewElement_Defaults(t *testing.T) {
	for _, kind := range AllKinds {
		t.Run(string(kind), func(t *testing.T) {
			el, err := NewElement(kind)
			require.NoError(t, err)
			assert.NotEmpty(t, el.ID)
			assert.Equal(t, kind, el.Kind())
			assert.Equal(t, DefaultZIndex(kind), el.ZIndex)
			assert.True(t, el.Visible)
			assert.False(t, el.Locked)
			assert.Greater(t, el.Width, 0.0)
			assert.Greater(t, el.Height, 0.0)
		})
	}
}

func TestNewElement_Options(t *testing.T) {
	el, err := NewElement(KindStage,
		WithPosition(10, 20),
		WithSize(300, 60),
		WithRotation(-90),
		WithZIndex(7),
		WithLocked(true),
		WithProperties(StageProps{Label: "Main"}),
	)
	require.NoError(t, err)

	assert.Equal(t, 10.0, el.X)
	assert.Equal(t, 20.0, el.Y)
	assert.Equal(t, 300.0, el.Width)
	assert.Equal(t, 270.0, el.Rotation)
	assert.Equal(t, 7, el.ZIndex)
	assert.True(t, el.Locked)
	assert.Equal(t, StageProps{Label: "Main"}, el.Properties)
}

func TestNewElement_Errors(t *testing.T) {
	_, err := NewElement("balcony")
	assert.ErrorIs(t, err, ErrUnknownKind)

	_, err = NewElement(KindSeat, WithProperties(StageProps{}))
	assert.ErrorIs(t, err, ErrKindMismatch)

	_, err = NewElement(KindSeat, WithSize(0, 10))
	assert.ErrorIs(t, err, ErrInvalidElement)

	_, err = NewElement(KindStandingArea, WithProperties(StandingAreaProps{Capacity: -1}))
	assert.ErrorIs(t, err, ErrInvalidElement)
}

func TestRowLabel(t *testing.T) {
	label, err := RowLabel("", 0)
	require.NoError(t, err)
	assert.Equal(t, "A", label)

	label, err = RowLabel("c", 2)
	require.NoError(t, err)
	assert.Equal(t, "E", label)

	label, err = RowLabel("A", 25)
	require.NoError(t, err)
	assert.Equal(t, "Z", label)

	_, err = RowLabel("A", 26)
	assert.ErrorIs(t, err, ErrRowLabelOverflow)

	_, err = RowLabel("AA", 0)
	assert.ErrorIs(t, err, ErrInvalidGrid)
}

func TestNewSeatGrid_Positions(t *testing.T) {
	seats, err := NewSeatGrid(GridSpec{
		Origin:      geometry.NewPoint(200, 100),
		Rows:        3,
		SeatsPerRow: 10,
		SeatSpacing: 6,
		RowSpacing:  8,
		PriceZoneID: "zone-vip",
		Section:     "Orchestra",
	})
	require.NoError(t, err)
	require.Len(t, seats, 30)

	ids := make(map[string]struct{})
	for i, el := range seats {
		row, col := i/10, i%10
		seat, ok := el.Seat()
		require.True(t, ok)

		assert.Equal(t, 200+float64(col)*34, el.X)
		assert.Equal(t, 100+float64(row)*36, el.Y)
		assert.Equal(t, SeatSize, el.Width)
		assert.Equal(t, string(rune('A'+row)), seat.Row)
		assert.Equal(t, col+1, seat.Number)
		assert.Equal(t, "zone-vip", seat.PriceZoneID)
		assert.Equal(t, "Orchestra", seat.Section)
		assert.Equal(t, SeatAvailable, seat.Status)
		ids[el.ID] = struct{}{}
	}
	assert.Len(t, ids, 30)
}

func TestNewSeatGrid_Invalid(t *testing.T) {
	_, err := NewSeatGrid(GridSpec{Rows: 0, SeatsPerRow: 5})
	assert.ErrorIs(t, err, ErrInvalidGrid)

	_, err = NewSeatGrid(GridSpec{Rows: 2, SeatsPerRow: 5, SeatSpacing: -1})
	assert.ErrorIs(t, err, ErrInvalidGrid)

	_, err = NewSeatGrid(GridSpec{Rows: 3, SeatsPerRow: 5, StartRow: "Y"})
	assert.ErrorIs(t, err, ErrRowLabelOverflow)
}

func TestNewSeatRow(t *testing.T) {
	seats, err := NewSeatRow(geometry.NewPoint(0, 50), 4, 2, "", "Balcony", "K")
	require.NoError(t, err)
	require.Len(t, seats, 4)
	for i, el := range seats {
		seat, _ := el.Seat()
		assert.Equal(t, "K", seat.Row)
		assert.Equal(t, float64(i)*30, el.X)
		assert.Equal(t, 50.0, el.Y)
	}
}
