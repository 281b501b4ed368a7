package renderers

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/princess-guard/engine"
	"github.com/lixenwraith/princess-guard/render"
)

// OverlayRenderer draws the centered message box for Idle and GameOver
type OverlayRenderer struct{}

func NewOverlayRenderer() *OverlayRenderer {
	return &OverlayRenderer{}
}

// OverlayLines returns the title and body for the snapshot's phase; an empty
// title means no overlay
func OverlayLines(snap engine.Snapshot) (string, []string) {
	switch snap.Phase {
	case engine.PhaseIdle:
		if !snap.Ready {
			return "PRINCESS GUARD", []string{"Waiting for tracking...", "Move the mouse to join", "q to quit"}
		}
		return "PRINCESS GUARD", []string{"Camera ready", "Space to start", "q to quit"}
	case engine.PhaseGameOver:
		return "GAME OVER", []string{ScoreText(snap), "r to restart", "q to quit"}
	default:
		return "", nil
	}
}

// Render implements render.SystemRenderer
func (r *OverlayRenderer) Render(ctx render.RenderContext, screen tcell.Screen) {
	title, lines := OverlayLines(ctx.Snapshot)
	if title == "" {
		return
	}

	width := len([]rune(title)) + 4
	for _, l := range lines {
		if n := len([]rune(l)) + 4; n > width {
			width = n
		}
	}
	height := len(lines) + 4

	startX := (ctx.PlayWidth() - width) / 2
	startY := (ctx.PlayHeight() - height) / 2

	bg := tcell.StyleDefault.Background(render.RgbOverlayBg).Foreground(render.RgbOverlayText)
	border := bg.Foreground(render.RgbOverlayBorder)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			ch := ' '
			style := bg
			switch {
			case y == 0 && x == 0:
				ch, style = '╔', border
			case y == 0 && x == width-1:
				ch, style = '╗', border
			case y == height-1 && x == 0:
				ch, style = '╚', border
			case y == height-1 && x == width-1:
				ch, style = '╝', border
			case y == 0 || y == height-1:
				ch, style = '═', border
			case x == 0 || x == width-1:
				ch, style = '║', border
			}
			screen.SetContent(startX+x, startY+y, ch, nil, style)
		}
	}

	render.DrawText(screen, startX+(width-len([]rune(title)))/2, startY+1, title, border.Bold(true))
	for i, l := range lines {
		render.DrawText(screen, startX+(width-len([]rune(l)))/2, startY+3+i, l, bg)
	}
}
