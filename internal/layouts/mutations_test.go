package layouts

import (
	"testing"

	"venuelayout/pkg/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func element(t *testing.T, kind ElementKind, opts ...ElementOption) LayoutElement {
	t.Helper()
	el, err := NewElement(kind, opts...)
	require.NoError(t, err)
	return el
}

func gridLayout(t *testing.T) *VenueLayout {
	t.Helper()
	layout := NewVenueLayout("Theatre", DefaultCanvas())
	_, err := layout.AddPriceZone(PriceZone{ID: "zone-vip", Name: "VIP", BasePrice: 120, Color: "#FF0000"})
	require.NoError(t, err)

	seats, err := NewSeatGrid(GridSpec{
		Origin:      geometry.NewPoint(200, 100),
		Rows:        3,
		SeatsPerRow: 10,
		SeatSpacing: 6,
		RowSpacing:  8,
		PriceZoneID: "zone-vip",
	})
	require.NoError(t, err)
	require.NoError(t, layout.AddElements(seats...))
	return layout
}

func TestAddElements_GridThenRemoveRow(t *testing.T) {
	layout := gridLayout(t)

	assert.Equal(t, 30, layout.TotalSeated)
	assert.Equal(t, 30, layout.TotalCapacity)
	zone, ok := layout.PriceZones.Find("zone-vip")
	require.True(t, ok)
	assert.Equal(t, 30, zone.SeatCount)

	rowB := layout.SeatIDsInRow("B")
	require.Len(t, rowB, 10)
	assert.Equal(t, 10, layout.RemoveElements(rowB...))

	assert.Equal(t, 20, layout.TotalSeated)
	assert.Empty(t, layout.SeatIDsInRow("B"))
	zone, _ = layout.PriceZones.Find("zone-vip")
	assert.Equal(t, 20, zone.SeatCount)
}

func TestAddElements_IsAtomic(t *testing.T) {
	layout := NewVenueLayout("Hall", DefaultCanvas())
	good := element(t, KindSeat)
	require.NoError(t, layout.AddElements(good))

	dup := element(t, KindSeat)
	dup.ID = good.ID
	err := layout.AddElements(element(t, KindSeat), dup)
	assert.ErrorIs(t, err, ErrDuplicateElementID)
	assert.Len(t, layout.Elements, 1)

	bad := element(t, KindSeat)
	bad.Height = -1
	err = layout.AddElements(element(t, KindSeat), bad)
	assert.ErrorIs(t, err, ErrInvalidElement)
	assert.Len(t, layout.Elements, 1)
	assert.Equal(t, 1, layout.TotalSeated)
}

func TestAddElements_WrapsRotation(t *testing.T) {
	layout := NewVenueLayout("Hall", DefaultCanvas())
	over := element(t, KindSeat)
	over.Rotation = 370
	under := element(t, KindStage)
	under.Rotation = -90
	require.NoError(t, layout.AddElements(over, under))

	stored, ok := layout.Element(over.ID)
	require.True(t, ok)
	assert.Equal(t, 10.0, stored.Rotation)

	stored, ok = layout.Element(under.ID)
	require.True(t, ok)
	assert.Equal(t, 270.0, stored.Rotation)

	updated := stored
	updated.Rotation = 370
	require.NoError(t, layout.UpdateElement(updated))
	stored, _ = layout.Element(under.ID)
	assert.Equal(t, 10.0, stored.Rotation)
}

func TestRemoveElements_UnknownIDsIgnored(t *testing.T) {
	layout := gridLayout(t)
	assert.Equal(t, 0, layout.RemoveElements("missing"))
	assert.Equal(t, 30, layout.TotalSeated)
}

func TestUpdateElement(t *testing.T) {
	layout := NewVenueLayout("Hall", DefaultCanvas())
	area := element(t, KindStandingArea)
	require.NoError(t, layout.AddElements(area))
	assert.Equal(t, 100, layout.TotalStanding)

	area.Properties = StandingAreaProps{Name: "Floor", Capacity: 400}
	require.NoError(t, layout.UpdateElement(area))
	assert.Equal(t, 400, layout.TotalStanding)

	area.Properties = StageProps{}
	assert.ErrorIs(t, layout.UpdateElement(area), ErrKindImmutable)

	missing := element(t, KindSeat)
	assert.ErrorIs(t, layout.UpdateElement(missing), ErrElementNotFound)
}

func TestMoveAndTranslate_RespectLock(t *testing.T) {
	layout := NewVenueLayout("Hall", DefaultCanvas())
	free := element(t, KindShape, WithPosition(0, 0))
	locked := element(t, KindWall, WithPosition(50, 50), WithLocked(true))
	require.NoError(t, layout.AddElements(free, locked))

	require.NoError(t, layout.MoveElement(free.ID, 5, 6))
	assert.ErrorIs(t, layout.MoveElement(locked.ID, 1, 1), ErrElementLocked)
	assert.ErrorIs(t, layout.MoveElement("missing", 1, 1), ErrElementNotFound)

	moved := layout.TranslateElements([]string{free.ID, locked.ID}, 10, -2)
	assert.Equal(t, 1, moved)

	got, _ := layout.Element(free.ID)
	assert.Equal(t, 15.0, got.X)
	assert.Equal(t, 4.0, got.Y)
	got, _ = layout.Element(locked.ID)
	assert.Equal(t, 50.0, got.X)
}

func TestMutations_DoNotAliasClones(t *testing.T) {
	layout := gridLayout(t)
	snapshot := layout.Clone()
	id := layout.Elements[0].ID

	layout.TranslateElements([]string{id}, 100, 100)
	_, err := layout.ApplyPatch([]string{id}, SeatStatusPatch{Status: SeatBroken})
	require.NoError(t, err)

	original, _ := snapshot.Element(id)
	assert.Equal(t, 200.0, original.X)
	seat, _ := original.Seat()
	assert.Equal(t, SeatAvailable, seat.Status)
}

func TestApplyPatch_FiltersByKind(t *testing.T) {
	layout := NewVenueLayout("Hall", DefaultCanvas())
	seat := element(t, KindSeat)
	stage := element(t, KindStage)
	entrance := element(t, KindEntrance)
	require.NoError(t, layout.AddElements(seat, stage, entrance))
	ids := []string{seat.ID, stage.ID, entrance.ID}

	n, err := layout.ApplyPatch(ids, ZonePatch{PriceZoneID: "zone-a"})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = layout.ApplyPatch(ids, AccessibilityPatch{Accessible: true})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 1, layout.AccessibilityCount)

	hidden := false
	n, err = layout.ApplyPatch(ids, FlagPatch{Visible: &hidden})
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = layout.ApplyPatch(ids, SeatStatusPatch{Status: "melted"})
	assert.ErrorIs(t, err, ErrInvalidElement)

	got, _ := layout.Element(seat.ID)
	props, _ := got.Seat()
	assert.Equal(t, "zone-a", props.PriceZoneID)
	assert.True(t, props.Accessible)
	assert.False(t, got.Visible)

	got, _ = layout.Element(stage.ID)
	assert.Equal(t, StageProps{Label: "Stage", Shape: "rectangle"}, got.Properties)
}

func TestDuplicate(t *testing.T) {
	layout := NewVenueLayout("Hall", DefaultCanvas())
	seat := element(t, KindSeat, WithPosition(10, 20))
	require.NoError(t, layout.AddElements(seat))

	copies, err := layout.Duplicate([]string{seat.ID, "missing"})
	require.NoError(t, err)
	require.Len(t, copies, 1)

	assert.NotEqual(t, seat.ID, copies[0].ID)
	assert.Equal(t, 40.0, copies[0].X)
	assert.Equal(t, 50.0, copies[0].Y)
	assert.Equal(t, seat.Properties, copies[0].Properties)
	assert.Equal(t, 2, layout.TotalSeated)

	none, err := layout.Duplicate(nil)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestHitTest_TopmostInteractive(t *testing.T) {
	layout := NewVenueLayout("Hall", DefaultCanvas())
	section := element(t, KindSection, WithPosition(0, 0), WithSize(200, 200))
	seat := element(t, KindSeat, WithPosition(50, 50))
	label := element(t, KindLabel, WithPosition(50, 50), WithVisible(false))
	require.NoError(t, layout.AddElements(section, seat, label))

	hit, ok := layout.HitTest(geometry.NewPoint(60, 60))
	require.True(t, ok)
	assert.Equal(t, seat.ID, hit.ID)

	hit, ok = layout.HitTest(geometry.NewPoint(150, 150))
	require.True(t, ok)
	assert.Equal(t, section.ID, hit.ID)

	_, ok = layout.HitTest(geometry.NewPoint(500, 500))
	assert.False(t, ok)
}

func TestElementsByZ_StableTies(t *testing.T) {
	layout := NewVenueLayout("Hall", DefaultCanvas())
	a := element(t, KindSeat)
	b := element(t, KindWall)
	c := element(t, KindSeat)
	require.NoError(t, layout.AddElements(a, b, c))

	ordered := layout.ElementsByZ()
	require.Len(t, ordered, 3)
	assert.Equal(t, []string{b.ID, a.ID, c.ID}, []string{ordered[0].ID, ordered[1].ID, ordered[2].ID})
}

func TestElementsInBox_FullContainment(t *testing.T) {
	layout := NewVenueLayout("Hall", DefaultCanvas())
	inside := element(t, KindSeat, WithPosition(10, 10))
	straddling := element(t, KindSeat, WithPosition(90, 10))
	locked := element(t, KindSeat, WithPosition(20, 20), WithLocked(true))
	require.NoError(t, layout.AddElements(inside, straddling, locked))

	found := layout.ElementsInBox(geometry.NewRect(0, 0, 100, 100))
	require.Len(t, found, 1)
	assert.Equal(t, inside.ID, found[0].ID)

	assert.ElementsMatch(t, []string{inside.ID, straddling.ID}, layout.InteractiveIDs())
}
