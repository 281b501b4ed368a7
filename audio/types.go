package audio

import "errors"

// SoundType represents the game's sound cues
type SoundType int

const (
	SoundKill     SoundType = iota // Player touched an enemy
	SoundBonus                     // Mouth-open clear
	SoundGameOver                  // Princess reached
	SoundStart                     // Game started
	soundTypeCount
)

func (s SoundType) String() string {
	switch s {
	case SoundKill:
		return "kill"
	case SoundBonus:
		return "bonus"
	case SoundGameOver:
		return "gameover"
	case SoundStart:
		return "start"
	default:
		return "unknown"
	}
}

// ErrNotInitialized is returned when playback is requested before Initialize
var ErrNotInitialized = errors.New("audio not initialized")
