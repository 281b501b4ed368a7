// Package audio plays short synthesized cues for game events through the
// beep speaker. Audio is optional: every call is safe before Initialize or
// after Initialize failed.
package audio

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"github.com/lixenwraith/princess-guard/config"
	"github.com/lixenwraith/princess-guard/constants"
	"github.com/lixenwraith/princess-guard/engine"
)

// SoundManager manages all game audio
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	rate        beep.SampleRate
	volume      float64
	initialized bool
	lastPlayed  [soundTypeCount]time.Time

	muted  atomic.Bool
	played atomic.Uint64
	log    *zap.Logger
}

// NewSoundManager creates a new sound manager; muted when cfg is disabled
func NewSoundManager(cfg config.AudioConfig, log *zap.Logger) *SoundManager {
	if log == nil {
		log = zap.NewNop()
	}
	sm := &SoundManager{
		mixer:  &beep.Mixer{},
		rate:   beep.SampleRate(cfg.SampleRate),
		volume: cfg.MasterVolume,
		log:    log.Named("audio"),
	}
	sm.muted.Store(!cfg.Enabled)
	return sm
}

// Initialize sets up the speaker. A failure leaves the manager inert.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sm.rate, sm.rate.N(constants.SpeakerBuffer)); err != nil {
		sm.log.Warn("speaker unavailable, audio disabled", zap.Error(err))
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	sm.log.Info("audio ready", zap.Int("sample_rate", int(sm.rate)), zap.Float64("volume", sm.volume))
	return nil
}

// Cleanup stops all sounds
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Clear()

	sm.initialized = false
}

// Play queues a cue on the mixer. Repeats of the same cue inside
// MinSoundGap are dropped so a burst of kills is one sound.
func (sm *SoundManager) Play(soundType SoundType) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return ErrNotInitialized
	}
	if sm.muted.Load() || soundType < 0 || soundType >= soundTypeCount {
		return nil
	}

	now := time.Now()
	if now.Sub(sm.lastPlayed[soundType]) < constants.MinSoundGap {
		return nil
	}
	sm.lastPlayed[soundType] = now

	streamer := GetSoundEffect(soundType, sm.rate, sm.volume)
	if streamer == nil {
		return nil
	}

	speaker.Lock()
	sm.mixer.Add(streamer)
	speaker.Unlock()

	sm.played.Add(1)
	return nil
}

// ToggleMute flips the mute state and returns the new value
func (sm *SoundManager) ToggleMute() bool {
	for {
		old := sm.muted.Load()
		if sm.muted.CompareAndSwap(old, !old) {
			sm.log.Debug("mute toggled", zap.Bool("muted", !old))
			return !old
		}
	}
}

// Muted reports whether cues are suppressed
func (sm *SoundManager) Muted() bool {
	return sm.muted.Load()
}

// Played returns the number of cues handed to the mixer
func (sm *SoundManager) Played() uint64 {
	return sm.played.Load()
}

// SoundFor maps a game event to its cue
func SoundFor(t engine.EventType) (SoundType, bool) {
	switch t {
	case engine.EventEnemyKilled:
		return SoundKill, true
	case engine.EventBonusClear:
		return SoundBonus, true
	case engine.EventGameOver:
		return SoundGameOver, true
	case engine.EventStarted:
		return SoundStart, true
	default:
		return 0, false
	}
}

// HandleEvent implements engine.Handler. It runs on the scheduler goroutine
// and only enqueues on the mixer.
func (sm *SoundManager) HandleEvent(event engine.GameEvent) {
	if s, ok := SoundFor(event.Type); ok {
		_ = sm.Play(s)
	}
}

// EventTypes implements engine.Handler
func (sm *SoundManager) EventTypes() []engine.EventType {
	return []engine.EventType{
		engine.EventStarted,
		engine.EventEnemyKilled,
		engine.EventBonusClear,
		engine.EventGameOver,
	}
}
