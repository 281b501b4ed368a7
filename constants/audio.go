package constants

import "time"

// Audio buffer
const (
	// SpeakerBuffer is the speaker latency budget
	SpeakerBuffer = 100 * time.Millisecond

	// MinSoundGap is the minimum gap between two cues of the same kind
	MinSoundGap = 50 * time.Millisecond
)

// Kill Sound Timing (short bell)
const (
	KillSoundDuration           = 250 * time.Millisecond
	KillSoundAttack             = 5 * time.Millisecond
	KillSoundFundamentalRelease = 220 * time.Millisecond
	KillSoundOvertoneRelease    = 100 * time.Millisecond
)

// Bonus Sound Timing (whoosh then chime)
const (
	BonusWhooshDuration = 300 * time.Millisecond
	BonusWhooshAttack   = 150 * time.Millisecond
	BonusWhooshRelease  = 150 * time.Millisecond

	BonusNote1Duration = 80 * time.Millisecond
	BonusNote2Duration = 280 * time.Millisecond
	BonusNoteAttack    = 5 * time.Millisecond
	BonusNote1Release  = 40 * time.Millisecond
	BonusNote2Release  = 200 * time.Millisecond
)

// Game Over Sound Timing (three falling buzz notes)
const (
	GameOverNoteDuration = 220 * time.Millisecond
	GameOverNoteAttack   = 5 * time.Millisecond
	GameOverNoteRelease  = 80 * time.Millisecond
)

// Start Sound Timing (rising two-note)
const (
	StartNoteDuration = 120 * time.Millisecond
	StartNoteAttack   = 5 * time.Millisecond
	StartNoteRelease  = 60 * time.Millisecond
)
