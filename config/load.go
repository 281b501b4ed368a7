package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variable names
const (
	EnvVariant       = "PRINCESS_GUARD_VARIANT"
	EnvAudioEnabled  = "PRINCESS_GUARD_AUDIO_ENABLED"
	EnvMasterVolume  = "PRINCESS_GUARD_MASTER_VOLUME" // 0-100
	EnvListen        = "PRINCESS_GUARD_LISTEN"
	EnvLogLevel      = "PRINCESS_GUARD_LOG_LEVEL"
	EnvMaxEnemies    = "PRINCESS_GUARD_MAX_ENEMIES"
	EnvBonusCooldown = "PRINCESS_GUARD_BONUS_COOLDOWN"
)

// Load builds a configuration for variant, overlays the YAML file at path
// (skipped when path is empty), applies environment overrides and validates.
// A variant named in the file or environment replaces the argument and
// selects that variant's defaults before the overlay.
func Load(path string, variant Variant) (*Config, error) {
	var data []byte
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}

		var head struct {
			Variant Variant `yaml:"variant"`
		}
		if err := yaml.Unmarshal(data, &head); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
		if head.Variant != "" {
			variant = head.Variant
		}
	}
	if v := os.Getenv(EnvVariant); v != "" {
		variant = Variant(v)
	}

	cfg := DefaultConfig(variant)
	cfg.Variant = variant

	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
		cfg.Variant = variant
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overlays PRINCESS_GUARD_* variables; unparsable values are ignored
func applyEnv(cfg *Config) {
	if enabled := os.Getenv(EnvAudioEnabled); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Audio.Enabled = val
		}
	}

	if volume := os.Getenv(EnvMasterVolume); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.Audio.MasterVolume = float64(val) / 100.0
			if cfg.Audio.MasterVolume < 0 {
				cfg.Audio.MasterVolume = 0
			}
			if cfg.Audio.MasterVolume > 1 {
				cfg.Audio.MasterVolume = 1
			}
		}
	}

	if listen := os.Getenv(EnvListen); listen != "" {
		cfg.Server.Listen = listen
	}

	if level := os.Getenv(EnvLogLevel); level != "" {
		cfg.Log.Level = level
	}

	if maxEnemies := os.Getenv(EnvMaxEnemies); maxEnemies != "" {
		if val, err := strconv.Atoi(maxEnemies); err == nil && val >= 0 {
			cfg.Gameplay.MaxEnemies = val
		}
	}

	if cooldown := os.Getenv(EnvBonusCooldown); cooldown != "" {
		if val, err := time.ParseDuration(cooldown); err == nil && val >= 0 {
			cfg.Gameplay.BonusCooldown = val
		}
	}
}
