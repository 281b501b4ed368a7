package render

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/princess-guard/constants"
	"github.com/lixenwraith/princess-guard/core"
	"github.com/lixenwraith/princess-guard/engine"
	"github.com/lixenwraith/princess-guard/input"
	"github.com/lixenwraith/princess-guard/perception"
)

// CellAspect is the width/height ratio of one terminal cell
const CellAspect = 0.5

// FrameInterval is the redraw period
const FrameInterval = 33 * time.Millisecond

// Controls receives decoded terminal input and supplies what to draw
type Controls interface {
	// Control applies an intent; false stops the terminal loop
	Control(in input.Intent) bool
	Pointer(hand perception.Hand)
	Resize(vp input.Viewport)
	Snapshot() engine.Snapshot
	Muted() bool
}

// Terminal owns the tcell screen: it polls input, forwards intents and
// redraws the latest snapshot on a fixed period
type Terminal struct {
	screen tcell.Screen
	orch   *RenderOrchestrator
	keys   *input.KeyTable
	log    *zap.Logger
}

// NewTerminal wraps an initialized screen
func NewTerminal(screen tcell.Screen, orch *RenderOrchestrator, log *zap.Logger) *Terminal {
	if log == nil {
		log = zap.NewNop()
	}
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()
	return &Terminal{
		screen: screen,
		orch:   orch,
		keys:   input.DefaultKeyTable(),
		log:    log,
	}
}

// ViewportFor converts a screen size in cells to the square-unit surface
// the input mapper and camera aspect use
func ViewportFor(width, height int) input.Viewport {
	playH := height - StatusBarHeight
	if playH < 1 {
		playH = 1
	}
	return input.Viewport{Width: float64(width) * CellAspect, Height: float64(playH)}
}

// Run processes input and draws until a control asks to stop or ctx ends
func (t *Terminal) Run(ctx context.Context, controls Controls) error {
	events := make(chan tcell.Event, 64)
	core.Go(func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	})

	w, h := t.screen.Size()
	controls.Resize(ViewportFor(w, h))

	ticker := time.NewTicker(FrameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			if !t.handle(ev, controls) {
				return nil
			}

		case <-ticker.C:
			t.draw(controls)
		}
	}
}

// handle decodes one event; false stops the loop
func (t *Terminal) handle(ev tcell.Event, controls Controls) bool {
	in := t.keys.Decode(ev)
	switch in.Type {
	case input.IntentNone:
		return true

	case input.IntentResize:
		t.orch.Resize()
		controls.Resize(ViewportFor(in.X, in.Y))
		t.draw(controls)
		return true

	case input.IntentPointer:
		w, h := t.screen.Size()
		playH := h - StatusBarHeight
		if in.Y >= playH {
			return true
		}
		handedness := constants.HandednessRight
		if in.Left {
			handedness = constants.HandednessLeft
		}
		x, y := PointerLandmark(in.X, in.Y, w, playH)
		controls.Pointer(perception.PointerHand(handedness, x, y))
		return true
	}

	t.log.Debug("intent", zap.Stringer("type", in.Type))
	return controls.Control(in)
}

func (t *Terminal) draw(controls Controls) {
	w, h := t.screen.Size()
	t.orch.RenderFrame(RenderContext{
		Snapshot:     controls.Snapshot(),
		Now:          time.Now(),
		Muted:        controls.Muted(),
		ScreenWidth:  w,
		ScreenHeight: h,
	})
}
