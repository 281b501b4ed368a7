// Package config holds runtime tunables: variant rules, camera, gameplay
// numbers, audio, HTTP ingest and logging. Values come from built-in
// defaults, an optional YAML file and PRINCESS_GUARD_* environment variables,
// in that order.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/lixenwraith/princess-guard/constants"
)

// Variant selects the rule set
type Variant string

const (
	// VariantSolo is one player defending a fixed princess
	VariantSolo Variant = "solo"
	// VariantDuo is two players, a wandering princess and the mouth bonus
	VariantDuo Variant = "duo"
)

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid config")

// Config is the full runtime configuration
type Config struct {
	Variant      Variant        `yaml:"variant"`
	TickInterval time.Duration  `yaml:"tick_interval"`
	FeedBuffer   int            `yaml:"feed_buffer"`
	Camera       CameraConfig   `yaml:"camera"`
	Gameplay     GameplayConfig `yaml:"gameplay"`
	Audio        AudioConfig    `yaml:"audio"`
	Server       ServerConfig   `yaml:"server"`
	Log          LogConfig      `yaml:"log"`
}

// CameraConfig describes the perspective camera the renderer projects with
type CameraConfig struct {
	FOV    float64 `yaml:"fov"` // vertical, degrees
	Z      float64 `yaml:"z"`
	Aspect float64 `yaml:"aspect"` // width/height of the viewport in world proportions
}

// GameplayConfig carries the per-variant rules
type GameplayConfig struct {
	Players        int           `yaml:"players"`
	AutoStart      bool          `yaml:"auto_start"`
	RequireReady   bool          `yaml:"require_ready"`
	WanderTarget   bool          `yaml:"wander_target"`
	MouthBonus     bool          `yaml:"mouth_bonus"`
	PlayerSize     float64       `yaml:"player_size"`
	TargetSize     float64       `yaml:"target_size"`
	EnemySize      float64       `yaml:"enemy_size"`
	EnemySpeed     float64       `yaml:"enemy_speed"`
	TargetSpeed    float64       `yaml:"target_speed"`
	SpawnInterval  time.Duration `yaml:"spawn_interval"`
	WanderInterval time.Duration `yaml:"wander_interval"`
	WaypointArrive float64       `yaml:"waypoint_arrive"`
	MouthThreshold float64       `yaml:"mouth_threshold"`
	// BonusCooldown of zero lets a held-open mouth fire on every frame
	BonusCooldown time.Duration `yaml:"bonus_cooldown"`
	// MaxEnemies of zero means no cap
	MaxEnemies int    `yaml:"max_enemies"`
	ScoreLabel string `yaml:"score_label"`
}

// AudioConfig controls sound cues
type AudioConfig struct {
	Enabled      bool    `yaml:"enabled"`
	MasterVolume float64 `yaml:"master_volume"` // 0.0-1.0
	SampleRate   int     `yaml:"sample_rate"`
}

// ServerConfig controls the HTTP landmark ingest and status page
type ServerConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"`
}

// LogConfig controls the zap logger
type LogConfig struct {
	Level       string `yaml:"level"`
	Format      string `yaml:"format"` // json or console
	Path        string `yaml:"path"`
	Development bool   `yaml:"development"`
}

// DefaultConfig returns the built-in configuration for a variant; unknown
// variants fall back to solo
func DefaultConfig(variant Variant) *Config {
	cfg := &Config{
		Variant:      VariantSolo,
		TickInterval: constants.TickInterval,
		FeedBuffer:   constants.FeedBufferLen,
		Camera: CameraConfig{
			FOV:    constants.CameraFOV,
			Z:      constants.CameraZ,
			Aspect: constants.CameraAspect,
		},
		Gameplay: GameplayConfig{
			Players:        1,
			AutoStart:      true,
			PlayerSize:     constants.SoloPlayerSize,
			TargetSize:     constants.SoloTargetSize,
			EnemySize:      constants.SoloEnemySize,
			EnemySpeed:     constants.SoloEnemySpeed,
			SpawnInterval:  constants.SoloSpawnInterval,
			WaypointArrive: constants.WaypointArriveDistance,
			MouthThreshold: constants.MouthOpenThreshold,
			ScoreLabel:     "Score",
		},
		Audio: AudioConfig{
			Enabled:      true,
			MasterVolume: 0.5,
			SampleRate:   48000,
		},
		Server: ServerConfig{
			Enabled: true,
			Listen:  "127.0.0.1:8787",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
			Path:   "princess-guard.log",
		},
	}

	if variant == VariantDuo {
		cfg.Variant = VariantDuo
		cfg.Gameplay.Players = 2
		cfg.Gameplay.AutoStart = false
		cfg.Gameplay.RequireReady = true
		cfg.Gameplay.WanderTarget = true
		cfg.Gameplay.MouthBonus = true
		cfg.Gameplay.PlayerSize = constants.DuoPlayerSize
		cfg.Gameplay.TargetSize = constants.DuoTargetSize
		cfg.Gameplay.EnemySize = constants.DuoEnemySize
		cfg.Gameplay.EnemySpeed = constants.DuoEnemySpeed
		cfg.Gameplay.TargetSpeed = constants.DuoTargetSpeed
		cfg.Gameplay.SpawnInterval = constants.DuoSpawnInterval
		cfg.Gameplay.WanderInterval = constants.DuoWanderInterval
	}

	return cfg
}

// Validate checks ranges; all failures wrap ErrInvalid
func (c *Config) Validate() error {
	switch c.Variant {
	case VariantSolo, VariantDuo:
	default:
		return fmt.Errorf("%w: unknown variant %q", ErrInvalid, c.Variant)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("%w: tick_interval must be positive", ErrInvalid)
	}
	if c.FeedBuffer < 1 {
		return fmt.Errorf("%w: feed_buffer must be at least 1", ErrInvalid)
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		return fmt.Errorf("%w: camera fov %.1f out of (0, 180)", ErrInvalid, c.Camera.FOV)
	}
	if c.Camera.Z <= 0 || c.Camera.Aspect <= 0 {
		return fmt.Errorf("%w: camera z and aspect must be positive", ErrInvalid)
	}

	g := c.Gameplay
	if g.Players < 1 || g.Players > 2 {
		return fmt.Errorf("%w: players must be 1 or 2, got %d", ErrInvalid, g.Players)
	}
	if g.PlayerSize <= 0 || g.TargetSize <= 0 || g.EnemySize <= 0 {
		return fmt.Errorf("%w: entity sizes must be positive", ErrInvalid)
	}
	if g.EnemySpeed <= 0 {
		return fmt.Errorf("%w: enemy_speed must be positive", ErrInvalid)
	}
	if g.SpawnInterval <= 0 {
		return fmt.Errorf("%w: spawn_interval must be positive", ErrInvalid)
	}
	if g.WanderTarget && (g.TargetSpeed <= 0 || g.WanderInterval <= 0) {
		return fmt.Errorf("%w: wandering target needs target_speed and wander_interval", ErrInvalid)
	}
	if g.MouthThreshold <= 0 {
		return fmt.Errorf("%w: mouth_threshold must be positive", ErrInvalid)
	}
	if g.BonusCooldown < 0 || g.MaxEnemies < 0 {
		return fmt.Errorf("%w: bonus_cooldown and max_enemies cannot be negative", ErrInvalid)
	}

	if c.Audio.MasterVolume < 0 || c.Audio.MasterVolume > 1 {
		return fmt.Errorf("%w: master_volume %.2f out of [0, 1]", ErrInvalid, c.Audio.MasterVolume)
	}
	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("%w: sample_rate must be positive", ErrInvalid)
	}
	if c.Server.Enabled && c.Server.Listen == "" {
		return fmt.Errorf("%w: server.listen is empty", ErrInvalid)
	}

	return nil
}
