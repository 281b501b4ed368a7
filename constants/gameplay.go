package constants

import "time"

// Scoring
const (
	// KillScore is awarded when a player touches an enemy
	KillScore = 50

	// BonusScore is awarded for a mouth-open clear, regardless of enemy count
	BonusScore = 100
)

// Solo variant (one player, fixed princess)
const (
	SoloPlayerSize    = 1.5
	SoloTargetSize    = 2.0
	SoloEnemySize     = 1.5
	SoloEnemySpeed    = 0.04 // world units per tick
	SoloSpawnInterval = 1500 * time.Millisecond
)

// Duo variant (two players, wandering princess, mouth bonus)
const (
	DuoPlayerSize     = 1.0
	DuoTargetSize     = 1.2
	DuoEnemySize      = 1.0
	DuoEnemySpeed     = 0.03
	DuoSpawnInterval  = 500 * time.Millisecond
	DuoTargetSpeed    = 0.02
	DuoWanderInterval = 3000 * time.Millisecond

	// WaypointArriveDistance is how close the princess must get before a new waypoint is chosen
	WaypointArriveDistance = 0.05
)

// EnemySpriteCount is the number of enemy looks (stego, tha, trex)
const EnemySpriteCount = 3

// TickInterval is the default fixed simulation step, one logical frame
const TickInterval = 16 * time.Millisecond
