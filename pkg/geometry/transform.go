package geometry

import "math"

// Viewport describes how the canvas is projected onto the screen:
// screen = canvas*Zoom + Pan + Margin.
type Viewport struct {
	Pan    Point   `json:"pan"`
	Zoom   float64 `json:"zoom"`
	Margin float64 `json:"margin"`
}

// ScreenToCanvas maps a screen point back into canvas units.
// A non-positive zoom is treated as 1.
func ScreenToCanvas(screen, pan Point, zoom, margin float64) Point {
	if zoom <= 0 {
		zoom = 1
	}
	return Point{
		X: (screen.X - pan.X - margin) / zoom,
		Y: (screen.Y - pan.Y - margin) / zoom,
	}
}

// CanvasToScreen is the forward transform of ScreenToCanvas.
func CanvasToScreen(canvas, pan Point, zoom, margin float64) Point {
	if zoom <= 0 {
		zoom = 1
	}
	return Point{
		X: canvas.X*zoom + pan.X + margin,
		Y: canvas.Y*zoom + pan.Y + margin,
	}
}

// ToCanvas applies ScreenToCanvas with the viewport's parameters.
func (v Viewport) ToCanvas(screen Point) Point {
	return ScreenToCanvas(screen, v.Pan, v.Zoom, v.Margin)
}

// ToScreen applies CanvasToScreen with the viewport's parameters.
func (v Viewport) ToScreen(canvas Point) Point {
	return CanvasToScreen(canvas, v.Pan, v.Zoom, v.Margin)
}

// Snap rounds v to the nearest multiple of grid. A non-positive grid leaves v unchanged.
func Snap(v, grid float64) float64 {
	if grid <= 0 {
		return v
	}
	return math.Round(v/grid) * grid
}

// SnapPoint snaps both coordinates of p to the grid.
func SnapPoint(p Point, grid float64) Point {
	return Point{X: Snap(p.X, grid), Y: Snap(p.Y, grid)}
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
