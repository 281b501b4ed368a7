package engine

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"
)

// Phase is the game lifecycle state
type Phase int32

const (
	// PhaseIdle waits for perception and the start trigger
	PhaseIdle Phase = iota
	// PhaseRunning has every system active
	PhaseRunning
	// PhaseGameOver is terminal; only a full restart leaves it
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseGameOver:
		return "game_over"
	default:
		return fmt.Sprintf("phase(%d)", int32(p))
	}
}

var (
	// ErrInvalidTransition is returned for any transition outside Idle->Running->GameOver
	ErrInvalidTransition = errors.New("invalid phase transition")
	// ErrNotReady is returned when starting before perception delivered a frame
	ErrNotReady = errors.New("perception not ready")
)

// GameState holds phase and score. Writes happen on the scheduler goroutine;
// atomics let presentation read without locking.
type GameState struct {
	phase   atomic.Int32
	score   atomic.Int64
	kills   atomic.Int64
	bonuses atomic.Int64

	startedAt atomic.Int64 // UnixNano
	endedAt   atomic.Int64 // UnixNano
}

// NewGameState creates a state in PhaseIdle with zero score
func NewGameState() *GameState {
	return &GameState{}
}

// Phase returns the current phase
func (s *GameState) Phase() Phase {
	return Phase(s.phase.Load())
}

// Running reports PhaseRunning; every per-tick update is gated on it
func (s *GameState) Running() bool {
	return s.Phase() == PhaseRunning
}

// Over reports PhaseGameOver
func (s *GameState) Over() bool {
	return s.Phase() == PhaseGameOver
}

// Start moves Idle -> Running
func (s *GameState) Start(now time.Time) error {
	if !s.phase.CompareAndSwap(int32(PhaseIdle), int32(PhaseRunning)) {
		return fmt.Errorf("%w: start from %s", ErrInvalidTransition, s.Phase())
	}
	s.startedAt.Store(now.UnixNano())
	return nil
}

// End moves Running -> GameOver
func (s *GameState) End(now time.Time) error {
	if !s.phase.CompareAndSwap(int32(PhaseRunning), int32(PhaseGameOver)) {
		return fmt.Errorf("%w: end from %s", ErrInvalidTransition, s.Phase())
	}
	s.endedAt.Store(now.UnixNano())
	return nil
}

// Score returns the current score
func (s *GameState) Score() int64 {
	return s.score.Load()
}

// AddKill adds points for one killed enemy and returns the new score
func (s *GameState) AddKill(points int) int64 {
	s.kills.Add(1)
	return s.addScore(points)
}

// AddBonus adds points for one bonus clear and returns the new score
func (s *GameState) AddBonus(points int) int64 {
	s.bonuses.Add(1)
	return s.addScore(points)
}

// addScore keeps the score monotonic: non-positive amounts are ignored
func (s *GameState) addScore(points int) int64 {
	if points <= 0 {
		return s.score.Load()
	}
	return s.score.Add(int64(points))
}

// Kills returns the number of enemies killed by players
func (s *GameState) Kills() int64 {
	return s.kills.Load()
}

// Bonuses returns the number of bonus clears
func (s *GameState) Bonuses() int64 {
	return s.bonuses.Load()
}

// Elapsed returns time spent running, up to GameOver if reached
func (s *GameState) Elapsed(now time.Time) time.Duration {
	start := s.startedAt.Load()
	if start == 0 {
		return 0
	}
	end := s.endedAt.Load()
	if end == 0 {
		end = now.UnixNano()
	}
	return time.Duration(end - start)
}
