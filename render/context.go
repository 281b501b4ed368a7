package render

import (
	"math"
	"time"

	"github.com/lixenwraith/princess-guard/engine"
	"github.com/lixenwraith/princess-guard/vmath"
)

// StatusBarHeight is the number of rows reserved under the play area
const StatusBarHeight = 1

// RenderContext provides frame state for renderers, passed by value
type RenderContext struct {
	Snapshot engine.Snapshot
	Now      time.Time
	Muted    bool

	// Screen dimensions (terminal size)
	ScreenWidth  int
	ScreenHeight int
}

// PlayWidth returns the play area width in cells
func (c RenderContext) PlayWidth() int {
	return c.ScreenWidth
}

// PlayHeight returns the play area height in cells
func (c RenderContext) PlayHeight() int {
	h := c.ScreenHeight - StatusBarHeight
	if h < 1 {
		return 1
	}
	return h
}

// ToCell maps a point on the play plane to a cell using the snapshot's
// visible bounds. Points outside the bounds map outside the play area.
func (c RenderContext) ToCell(p vmath.Vec2) (int, int) {
	min, max := c.Snapshot.BoundsMin, c.Snapshot.BoundsMax
	spanX, spanY := max.X-min.X, max.Y-min.Y
	if spanX <= 0 || spanY <= 0 {
		return -1, -1
	}
	fx := (p.X - min.X) / spanX
	fy := (max.Y - p.Y) / spanY
	return int(math.Floor(fx * float64(c.PlayWidth()))), int(math.Floor(fy * float64(c.PlayHeight())))
}

// CellSpan returns how many cells a world length covers horizontally and
// vertically, at least one each
func (c RenderContext) CellSpan(size float64) (int, int) {
	min, max := c.Snapshot.BoundsMin, c.Snapshot.BoundsMax
	spanX, spanY := max.X-min.X, max.Y-min.Y
	if spanX <= 0 || spanY <= 0 {
		return 1, 1
	}
	w := int(math.Round(size / spanX * float64(c.PlayWidth())))
	h := int(math.Round(size / spanY * float64(c.PlayHeight())))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// PointerLandmark converts a cell under the mouse into a normalized camera
// landmark. The camera image is mirrored, so x is flipped back here and the
// input mapper flips it again.
func PointerLandmark(x, y, playWidth, playHeight int) (float64, float64) {
	if playWidth < 1 {
		playWidth = 1
	}
	if playHeight < 1 {
		playHeight = 1
	}
	fx := (float64(x) + 0.5) / float64(playWidth)
	fy := (float64(y) + 0.5) / float64(playHeight)
	return vmath.Clamp(1-fx, 0, 1), vmath.Clamp(fy, 0, 1)
}
