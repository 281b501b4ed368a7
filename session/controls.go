package session

import (
	"errors"

	"go.uber.org/zap"

	"github.com/lixenwraith/princess-guard/engine"
	"github.com/lixenwraith/princess-guard/input"
	"github.com/lixenwraith/princess-guard/perception"
)

const (
	keyboardSource = "keyboard"
	pointerSource  = "pointer"

	// Lip gap published for the keyboard mouth key, well above any threshold
	keyboardMouthGap = 0.2
)

// Control applies a terminal intent and reports whether the UI should keep
// running
func (s *Session) Control(in input.Intent) bool {
	var err error
	switch in.Type {
	case input.IntentQuit:
		s.Quit()
		return false
	case input.IntentStart:
		err = s.Start()
	case input.IntentRestart:
		err = s.Restart()
	case input.IntentToggleMute:
		if s.opts.Muter != nil {
			s.opts.Muter.ToggleMute()
		}
	case input.IntentMouthOpen:
		s.Publish(perception.Frame{
			Face:   perception.MouthFace(0.5, keyboardMouthGap),
			Source: keyboardSource,
		})
	}

	if err != nil {
		level := zap.DebugLevel
		if !errors.Is(err, engine.ErrInvalidTransition) && !errors.Is(err, engine.ErrNotReady) {
			level = zap.WarnLevel
		}
		s.log.Log(level, "control rejected", zap.Stringer("intent", in.Type), zap.Error(err))
	}
	return true
}

// Pointer publishes a mouse-driven hand
func (s *Session) Pointer(hand perception.Hand) {
	s.Publish(perception.Frame{Hands: []perception.Hand{hand}, Source: pointerSource})
}

// Muted reports the audio mute state; true without audio
func (s *Session) Muted() bool {
	if s.opts.Muter == nil {
		return true
	}
	return s.opts.Muter.Muted()
}
