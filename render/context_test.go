package render

import (
	"testing"

	"github.com/lixenwraith/princess-guard/engine"
	"github.com/lixenwraith/princess-guard/vmath"
)

func TestRenderContextToCell(t *testing.T) {
	ctx := RenderContext{
		Snapshot:     engine.Snapshot{BoundsMin: vmath.V2(-8, -4), BoundsMax: vmath.V2(8, 4)},
		ScreenWidth:  80,
		ScreenHeight: 25,
	}

	tests := []struct {
		p    vmath.Vec2
		x, y int
	}{
		{vmath.V2(0, 0), 40, 12},
		{vmath.V2(-8, 4), 0, 0},
		{vmath.V2(7.99, -3.99), 79, 23},
	}
	for _, tc := range tests {
		x, y := ctx.ToCell(tc.p)
		if x != tc.x || y != tc.y {
			t.Errorf("ToCell(%+v) = (%d, %d), want (%d, %d)", tc.p, x, y, tc.x, tc.y)
		}
	}
}

func TestPointerLandmarkMirrors(t *testing.T) {
	// Left edge of the screen is the right edge of the camera image
	x, y := PointerLandmark(0, 0, 100, 50)
	if x < 0.99 || y > 0.02 {
		t.Fatalf("PointerLandmark(0,0) = (%f, %f)", x, y)
	}
	x, _ = PointerLandmark(99, 0, 100, 50)
	if x > 0.01 {
		t.Fatalf("PointerLandmark(99,0) x = %f", x)
	}
}

func TestViewportFor(t *testing.T) {
	vp := ViewportFor(160, 46)
	if vp.Width != 80 || vp.Height != 45 {
		t.Fatalf("ViewportFor = %+v", vp)
	}
}
