// Package renderers holds the individual draw layers registered with the
// render orchestrator.
package renderers

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/princess-guard/components"
	"github.com/lixenwraith/princess-guard/engine"
	"github.com/lixenwraith/princess-guard/render"
)

// Enemy sprite glyphs: stego, tha, trex
var enemyGlyphs = [...]rune{'S', 'T', 'R'}

const (
	princessGlyph = '♛'
	playerGlyph1  = '1'
	playerGlyph2  = '2'
)

// EntityRenderer draws the princess, enemies and players as filled blocks
// sized by their world size, with a glyph at the center
type EntityRenderer struct{}

func NewEntityRenderer() *EntityRenderer {
	return &EntityRenderer{}
}

// Render implements render.SystemRenderer
func (r *EntityRenderer) Render(ctx render.RenderContext, screen tcell.Screen) {
	snap := ctx.Snapshot
	// Players last, so they stay visible when overlapping an enemy
	for _, e := range snap.All() {
		r.drawEntity(ctx, screen, e)
	}
}

func (r *EntityRenderer) drawEntity(ctx render.RenderContext, screen tcell.Screen, e engine.EntityView) {
	color, glyph := appearance(e)
	cx, cy := ctx.ToCell(e.Position)
	w, h := ctx.CellSpan(e.Size)

	x0, y0 := cx-w/2, cy-h/2
	fill := tcell.StyleDefault.Background(color).Foreground(render.RgbStatusText)
	for y := y0; y < y0+h; y++ {
		if y < 0 || y >= ctx.PlayHeight() {
			continue
		}
		for x := x0; x < x0+w; x++ {
			if x < 0 || x >= ctx.PlayWidth() {
				continue
			}
			ch := ' '
			if x == cx && y == cy {
				ch = glyph
			}
			screen.SetContent(x, y, ch, nil, fill)
		}
	}
}

// appearance returns the color and glyph for an entity
func appearance(e engine.EntityView) (tcell.Color, rune) {
	switch e.Kind {
	case components.KindTarget:
		return render.RgbPrincess, princessGlyph
	case components.KindPlayer:
		if e.Slot == 1 {
			return render.PlayerColor(1), playerGlyph2
		}
		return render.PlayerColor(0), playerGlyph1
	default:
		glyph := enemyGlyphs[len(enemyGlyphs)-1]
		if e.Sprite >= 0 && e.Sprite < len(enemyGlyphs) {
			glyph = enemyGlyphs[e.Sprite]
		}
		return render.EnemyColor(e.Sprite), glyph
	}
}
