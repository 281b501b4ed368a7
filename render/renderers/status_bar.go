package renderers

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/princess-guard/engine"
	"github.com/lixenwraith/princess-guard/render"
)

const audioStr = " ♫ "

// StatusBarRenderer draws the status bar at the bottom: audio state, phase,
// the score line and the enemy count
type StatusBarRenderer struct {
	// FPS Tracking
	frameCount    int
	lastFpsUpdate time.Time
	currentFps    int
}

// NewStatusBarRenderer creates a status bar renderer
func NewStatusBarRenderer() *StatusBarRenderer {
	return &StatusBarRenderer{}
}

// ScoreText formats the score as "label: value"
func ScoreText(snap engine.Snapshot) string {
	label := snap.ScoreLabel
	if label == "" {
		label = "Score"
	}
	return fmt.Sprintf("%s: %d", label, snap.Score)
}

// Render implements render.SystemRenderer
func (s *StatusBarRenderer) Render(ctx render.RenderContext, screen tcell.Screen) {
	s.frameCount++
	if ctx.Now.Sub(s.lastFpsUpdate) >= time.Second {
		s.currentFps = s.frameCount
		s.frameCount = 0
		s.lastFpsUpdate = ctx.Now
	}

	y := ctx.ScreenHeight - render.StatusBarHeight
	if y < 0 {
		return
	}
	defaultStyle := tcell.StyleDefault.Background(render.RgbBackground)
	for x := 0; x < ctx.ScreenWidth; x++ {
		screen.SetContent(x, y, ' ', nil, defaultStyle)
	}

	x := 0

	audioBg := render.RgbAudioUnmuted
	if ctx.Muted {
		audioBg = render.RgbAudioMuted
	}
	x = render.DrawText(screen, x, y, audioStr, defaultStyle.Foreground(tcell.ColorBlack).Background(audioBg))

	snap := ctx.Snapshot
	var phaseBg tcell.Color
	switch snap.Phase {
	case engine.PhaseRunning:
		phaseBg = render.RgbPhaseRunning
	case engine.PhaseGameOver:
		phaseBg = render.RgbPhaseOver
	default:
		phaseBg = render.RgbPhaseIdle
	}
	x = render.DrawText(screen, x, y, " "+snap.PhaseName+" ", defaultStyle.Foreground(render.RgbStatusText).Background(phaseBg))
	x++

	x = render.DrawText(screen, x, y, " "+ScoreText(snap)+" ", defaultStyle.Foreground(render.RgbStatusText).Background(render.RgbScoreBg))
	x++

	info := fmt.Sprintf("enemies %d  kills %d  bonuses %d  fps %d",
		len(snap.Enemies), snap.Kills, snap.Bonuses, s.currentFps)
	render.DrawText(screen, x, y, info, defaultStyle.Foreground(render.RgbStatusBar))
}
