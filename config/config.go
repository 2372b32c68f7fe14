package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the gameplay tuning constants. Values are author-time
// constants loaded once at startup and optionally hot-reloaded while the
// game runs (see Watcher).
type Config struct {
	// MoveSpeed is the horizontal run speed in pixels per second.
	MoveSpeed float64 `yaml:"move_speed"`
	// JumpForce is the upward launch speed in pixels per second.
	JumpForce float64 `yaml:"jump_force"`
	// JumpTimeMax is how long holding jump keeps re-asserting JumpForce, in seconds.
	JumpTimeMax float64 `yaml:"jump_time_max"`
	// JumpMultiplier scales remaining upward velocity when jump is released early.
	JumpMultiplier float64 `yaml:"jump_multiplier"`

	GroundCheckRadius float64 `yaml:"ground_check_radius"`
	SideCheckRadius   float64 `yaml:"side_check_radius"`

	// MeltSpeed is how much melt ratio is lost per second while melting.
	MeltSpeed float64 `yaml:"melt_speed"`
	// MinMeltScale is the melt ratio floor; reaching it kills the player.
	MinMeltScale float64 `yaml:"min_melt_scale"`

	// LevelSpacing is the world-space distance between segment offsets.
	LevelSpacing float64 `yaml:"level_spacing"`
	// CameraTransitionSpeed is the camera lerp rate per second.
	CameraTransitionSpeed float64 `yaml:"camera_transition_speed"`
	// RespawnY is the world y below which the player dies and respawns.
	RespawnY float64 `yaml:"respawn_y"`
}

// Default returns the built-in tuning used when no config file is present.
func Default() Config {
	return Config{
		MoveSpeed:             260,
		JumpForce:             600,
		JumpTimeMax:           0.3,
		JumpMultiplier:        0.5,
		GroundCheckRadius:     4,
		SideCheckRadius:       4,
		MeltSpeed:             0.25,
		MinMeltScale:          0.5,
		LevelSpacing:          1280,
		CameraTransitionSpeed: 6,
		RespawnY:              900,
	}
}

// Load reads a YAML tuning file over the defaults. Fields missing from the
// file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	return cfg, nil
}
