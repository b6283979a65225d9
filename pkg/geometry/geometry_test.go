package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScreenToCanvas_RoundTrip(t *testing.T) {
	pan := NewPoint(40, -20)
	zoom := 1.5
	margin := 16.0

	canvas := NewPoint(120, 75)
	screen := CanvasToScreen(canvas, pan, zoom, margin)
	assert.Equal(t, NewPoint(120*1.5+40+16, 75*1.5-20+16), screen)

	back := ScreenToCanvas(screen, pan, zoom, margin)
	assert.InDelta(t, canvas.X, back.X, 1e-9)
	assert.InDelta(t, canvas.Y, back.Y, 1e-9)
}

func TestScreenToCanvas_NonPositiveZoom(t *testing.T) {
	got := ScreenToCanvas(NewPoint(10, 10), Point{}, 0, 0)
	assert.Equal(t, NewPoint(10, 10), got)
}

func TestRect_ContainsInclusive(t *testing.T) {
	r := NewRect(0, 0, 10, 10)

	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"inside", NewPoint(5, 5), true},
		{"top-left corner", NewPoint(0, 0), true},
		{"bottom-right corner", NewPoint(10, 10), true},
		{"right of box", NewPoint(10.01, 5), false},
		{"above box", NewPoint(5, -0.01), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Contains(tt.p))
		})
	}
}

func TestRect_FullyInside(t *testing.T) {
	box := NewRect(0, 0, 100, 100)

	assert.True(t, NewRect(10, 10, 20, 20).FullyInside(box))
	assert.True(t, NewRect(80, 80, 20, 20).FullyInside(box), "touching edges counts as inside")
	assert.False(t, NewRect(90, 90, 20, 20).FullyInside(box), "extends to 110,110")
	assert.True(t, NewRect(90, 90, 20, 20).Intersects(box))
}

func TestRect_Intersects(t *testing.T) {
	a := NewRect(0, 0, 10, 10)

	assert.True(t, a.Intersects(NewRect(5, 5, 10, 10)))
	assert.False(t, a.Intersects(NewRect(10, 0, 5, 5)), "shared edge has no area")
	assert.False(t, a.Intersects(NewRect(20, 20, 5, 5)))
}

func TestNormalizeBox_AnyDirection(t *testing.T) {
	want := NewRect(10, 20, 30, 40)

	assert.Equal(t, want, NormalizeBox(10, 20, 40, 60))
	assert.Equal(t, want, NormalizeBox(40, 60, 10, 20))
	assert.Equal(t, want, NormalizeBox(40, 20, 10, 60))
	assert.Equal(t, want, NormalizeBox(10, 60, 40, 20))
}

func TestSnap(t *testing.T) {
	assert.Equal(t, 20.0, Snap(23, 10))
	assert.Equal(t, 30.0, Snap(25, 10))
	assert.Equal(t, -10.0, Snap(-12, 10))
	assert.Equal(t, 23.7, Snap(23.7, 0))
	assert.Equal(t, NewPoint(40, 60), SnapPoint(NewPoint(38, 61), 20))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.25, Clamp(0.1, 0.25, 2))
	assert.Equal(t, 2.0, Clamp(3, 0.25, 2))
	assert.Equal(t, 1.0, Clamp(1, 0.25, 2))
}
