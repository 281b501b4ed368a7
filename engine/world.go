package engine

import (
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/mlange-42/ark/ecs"
	"go.uber.org/zap"

	"github.com/lixenwraith/princess-guard/components"
	"github.com/lixenwraith/princess-guard/config"
	"github.com/lixenwraith/princess-guard/vmath"
)

type (
	position = components.PositionComponent
	body     = components.BodyComponent
)

// System is an interface that all systems must implement
type System interface {
	Update(world *World, dt time.Duration)
	Priority() int // Lower values run first
}

// WorldOptions injects collaborators; zero values get production defaults
type WorldOptions struct {
	Time    TimeProvider
	Rand    *rand.Rand
	Log     *zap.Logger
	Session uuid.UUID
}

// World is the game aggregate: configuration, camera, phase and score,
// event router, and the entity store. It is owned by one scheduler
// goroutine and handed to every system on each tick.
type World struct {
	Config  *config.Config
	Camera  *Camera
	State   *GameState
	Events  *Router
	Time    TimeProvider
	Rand    *rand.Rand
	Log     *zap.Logger
	Session uuid.UUID

	ecs     ecs.World
	players *ecs.Map3[position, body, components.PlayerComponent]
	targets *ecs.Map3[position, body, components.TargetComponent]
	enemies *ecs.Map3[position, body, components.EnemyComponent]

	enemyFilter *ecs.Filter3[position, body, components.EnemyComponent]

	playerEntities []ecs.Entity // indexed by slot
	target         ecs.Entity
	enemyCount     int

	systems []System
	tick    uint64
}

// NewWorld creates a world with its players and princess at the origin, in
// PhaseIdle. Enemies appear only through the spawner.
func NewWorld(cfg *config.Config, opts WorldOptions) *World {
	if opts.Time == nil {
		opts.Time = NewMonotonicTimeProvider()
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.Session == uuid.Nil {
		opts.Session = uuid.New()
	}

	w := &World{
		Config:  cfg,
		Camera:  NewCamera(cfg.Camera.FOV, cfg.Camera.Z, cfg.Camera.Aspect),
		State:   NewGameState(),
		Events:  NewRouter(),
		Time:    opts.Time,
		Rand:    opts.Rand,
		Log:     opts.Log.With(zap.String("session", opts.Session.String())),
		Session: opts.Session,
		ecs:     ecs.NewWorld(),
	}

	w.players = ecs.NewMap3[position, body, components.PlayerComponent](&w.ecs)
	w.targets = ecs.NewMap3[position, body, components.TargetComponent](&w.ecs)
	w.enemies = ecs.NewMap3[position, body, components.EnemyComponent](&w.ecs)
	w.enemyFilter = ecs.NewFilter3[position, body, components.EnemyComponent](&w.ecs)

	for slot := 0; slot < cfg.Gameplay.Players; slot++ {
		e := w.players.NewEntity(
			&position{},
			&body{Size: cfg.Gameplay.PlayerSize},
			&components.PlayerComponent{Slot: slot},
		)
		w.playerEntities = append(w.playerEntities, e)
	}

	w.target = w.targets.NewEntity(
		&position{},
		&body{Size: cfg.Gameplay.TargetSize},
		&components.TargetComponent{},
	)

	return w
}

// AddSystem adds a system and keeps systems ordered by priority
func (w *World) AddSystem(system System) {
	w.systems = append(w.systems, system)
	sort.SliceStable(w.systems, func(i, j int) bool {
		return w.systems[i].Priority() < w.systems[j].Priority()
	})
}

// Update runs all systems once and advances the tick counter
func (w *World) Update(dt time.Duration) {
	w.tick++
	for _, system := range w.systems {
		system.Update(w, dt)
	}
}

// Tick returns the number of completed updates
func (w *World) Tick() uint64 {
	return w.tick
}

// Emit stamps and queues an event
func (w *World) Emit(event GameEvent) {
	event.Tick = w.tick
	if event.Time.IsZero() {
		event.Time = w.Time.Now()
	}
	if event.Score == 0 {
		event.Score = w.State.Score()
	}
	w.Events.Emit(event)
}

// Start moves Idle -> Running and announces it
func (w *World) Start() error {
	if err := w.State.Start(w.Time.Now()); err != nil {
		return err
	}
	w.Log.Info("game started", zap.String("variant", string(w.Config.Variant)))
	w.Emit(GameEvent{Type: EventStarted})
	return nil
}

// PlayerCount returns the number of player entities
func (w *World) PlayerCount() int {
	return len(w.playerEntities)
}

// Player returns the position and body of the player in slot
func (w *World) Player(slot int) (*position, *body, bool) {
	if slot < 0 || slot >= len(w.playerEntities) {
		return nil, nil, false
	}
	pos, b, _ := w.players.Get(w.playerEntities[slot])
	return pos, b, true
}

// EachPlayer calls fn for each player in slot order
func (w *World) EachPlayer(fn func(slot int, pos *position, b *body)) {
	for slot, e := range w.playerEntities {
		pos, b, _ := w.players.Get(e)
		fn(slot, pos, b)
	}
}

// Target returns the princess
func (w *World) Target() (*position, *body, *components.TargetComponent) {
	return w.targets.Get(w.target)
}

// SpawnEnemy creates an enemy at pos and returns its entity
func (w *World) SpawnEnemy(pos vmath.Vec2, sprite int) ecs.Entity {
	e := w.enemies.NewEntity(
		&position{Vec2: pos},
		&body{Size: w.Config.Gameplay.EnemySize},
		&components.EnemyComponent{Sprite: sprite, Spawned: w.Time.Now()},
	)
	w.enemyCount++
	return e
}

// EnemyCount returns the number of live enemies
func (w *World) EnemyCount() int {
	return w.enemyCount
}

// EachEnemy iterates live enemies in unspecified order until fn returns
// false. fn must not create or remove entities; collect and apply after.
func (w *World) EachEnemy(fn func(e ecs.Entity, pos *position, b *body) bool) {
	query := w.enemyFilter.Query()
	for query.Next() {
		pos, b, _ := query.Get()
		if !fn(query.Entity(), pos, b) {
			query.Close()
			return
		}
	}
}

// RemoveEnemy removes a live enemy; removing a dead one is a no-op returning false
func (w *World) RemoveEnemy(e ecs.Entity) bool {
	if !w.ecs.Alive(e) || !w.isEnemy(e) {
		return false
	}
	w.ecs.RemoveEntity(e)
	w.enemyCount--
	return true
}

// isEnemy reports whether e is neither the princess nor a player
func (w *World) isEnemy(e ecs.Entity) bool {
	if e == w.target {
		return false
	}
	for _, p := range w.playerEntities {
		if e == p {
			return false
		}
	}
	return true
}

// ClearEnemies removes every enemy and returns how many were removed
func (w *World) ClearEnemies() int {
	var doomed []ecs.Entity
	w.EachEnemy(func(e ecs.Entity, _ *position, _ *body) bool {
		doomed = append(doomed, e)
		return true
	})
	n := 0
	for _, e := range doomed {
		if w.RemoveEnemy(e) {
			n++
		}
	}
	return n
}

// Snapshot copies the world state for presentation
func (w *World) Snapshot(ready bool) Snapshot {
	min, max := w.Camera.Bounds()
	snap := Snapshot{
		Session:    w.Session.String(),
		Variant:    w.Config.Variant,
		Tick:       w.tick,
		Phase:      w.State.Phase(),
		PhaseName:  w.State.Phase().String(),
		Score:      w.State.Score(),
		Kills:      w.State.Kills(),
		Bonuses:    w.State.Bonuses(),
		ScoreLabel: w.Config.Gameplay.ScoreLabel,
		Ready:      ready,
		BoundsMin:  min,
		BoundsMax:  max,
		Players:    make([]EntityView, 0, len(w.playerEntities)),
		Enemies:    make([]EntityView, 0, w.enemyCount),
	}

	w.EachPlayer(func(slot int, pos *position, b *body) {
		snap.Players = append(snap.Players, EntityView{
			Kind: components.KindPlayer, Position: pos.Vec2, Size: b.Size, Slot: slot,
		})
	})

	tpos, tbody, _ := w.Target()
	snap.Target = EntityView{Kind: components.KindTarget, Position: tpos.Vec2, Size: tbody.Size}

	query := w.enemyFilter.Query()
	for query.Next() {
		pos, b, enemy := query.Get()
		snap.Enemies = append(snap.Enemies, EntityView{
			Kind: components.KindEnemy, Position: pos.Vec2, Size: b.Size, Sprite: enemy.Sprite,
		})
	}

	return snap
}
