package engine

import (
	"github.com/lixenwraith/princess-guard/components"
	"github.com/lixenwraith/princess-guard/config"
	"github.com/lixenwraith/princess-guard/vmath"
)

// EntityView is a read-only copy of one entity for presentation
type EntityView struct {
	Kind     components.Kind `json:"kind"`
	Position vmath.Vec2      `json:"position"`
	Size     float64         `json:"size"`
	Slot     int             `json:"slot,omitempty"`   // players
	Sprite   int             `json:"sprite,omitempty"` // enemies
}

// Snapshot is an immutable copy of the world after a tick. Presentation and
// the HTTP API read snapshots, never the World.
type Snapshot struct {
	Session    string         `json:"session"`
	Variant    config.Variant `json:"variant"`
	Tick       uint64         `json:"tick"`
	Phase      Phase          `json:"-"`
	PhaseName  string         `json:"phase"`
	Score      int64          `json:"score"`
	Kills      int64          `json:"kills"`
	Bonuses    int64          `json:"bonuses"`
	ScoreLabel string         `json:"score_label"`
	Ready      bool           `json:"ready"`
	BoundsMin  vmath.Vec2     `json:"bounds_min"`
	BoundsMax  vmath.Vec2     `json:"bounds_max"`
	Players    []EntityView   `json:"players"`
	Target     EntityView     `json:"target"`
	Enemies    []EntityView   `json:"enemies"`
}

// All returns every entity, target first, then enemies, then players on top
func (s *Snapshot) All() []EntityView {
	out := make([]EntityView, 0, 1+len(s.Enemies)+len(s.Players))
	out = append(out, s.Target)
	out = append(out, s.Enemies...)
	out = append(out, s.Players...)
	return out
}
