// Package config provides YAML-based gameplay configuration loading and
// difficulty presets for the invaders platform.
package config

import "fmt"

// InvadersConfig contains all gameplay tuning for the invaders simulation.
// Positions and sizes are world units: float64, origin at the viewport
// center, +y up. Durations are seconds.
type InvadersConfig struct {
	World     WorldConfig     `yaml:"world"`
	Player    PlayerConfig    `yaml:"player"`
	Shots     ShotConfig      `yaml:"shots"`
	Formation FormationConfig `yaml:"formation"`
	Rules     RulesConfig     `yaml:"rules"`
}

// WorldConfig defines the fixed viewport the simulation plays in.
type WorldConfig struct {
	Width      float64 `yaml:"width"`       // Full world width; half-width is Width/2
	Height     float64 `yaml:"height"`      // Full world height
	EdgeMargin float64 `yaml:"edge_margin"` // Formation patrol margin from each side edge
	FloorY     float64 `yaml:"floor_y"`     // Enemies reaching this y lose the game
}

// PlayerConfig defines player movement, firing, and respawn parameters.
type PlayerConfig struct {
	HalfWidth    float64 `yaml:"half_width"`
	HalfHeight   float64 `yaml:"half_height"`
	Speed        float64 `yaml:"speed"`         // Horizontal speed, units/second
	HomeX        float64 `yaml:"home_x"`        // Spawn/respawn position
	HomeY        float64 `yaml:"home_y"`
	FireCooldown float64 `yaml:"fire_cooldown"` // Seconds between shots; 0 disables firing
	RespawnDelay float64 `yaml:"respawn_delay"` // Seconds the player is absent after a hit
}

// ShotConfig defines projectile parameters, shared by both shot kinds.
type ShotConfig struct {
	HalfWidth   float64 `yaml:"half_width"`
	HalfHeight  float64 `yaml:"half_height"`
	Speed       float64 `yaml:"speed"`        // Vertical speed, units/second
	SpawnOffset float64 `yaml:"spawn_offset"` // Vertical offset from the shooter's center
	TopCullY    float64 `yaml:"top_cull_y"`   // Player shots despawn above this y
	BottomCullY float64 `yaml:"bottom_cull_y"` // Enemy shots despawn below this y
}

// FormationConfig defines the enemy wave grid and sweep behavior.
type FormationConfig struct {
	Rows          int     `yaml:"rows"`
	Cols          int     `yaml:"cols"`
	SpacingX      float64 `yaml:"spacing_x"`
	SpacingY      float64 `yaml:"spacing_y"`
	StartY        float64 `yaml:"start_y"` // Y of the bottom formation row at spawn
	EnemyHalfW    float64 `yaml:"enemy_half_width"`
	EnemyHalfH    float64 `yaml:"enemy_half_height"`
	BaseSpeed     float64 `yaml:"base_speed"`      // Sweep speed at level 1, units/second
	StepDown      float64 `yaml:"step_down"`       // Vertical drop on each direction reversal
	SpeedPerLevel float64 `yaml:"speed_per_level"` // Sweep speed increment per level
	FireCooldown  float64 `yaml:"fire_cooldown"`   // Seconds between enemy shots; 0 disables enemy fire
}

// RulesConfig defines scoring and win/loss bookkeeping.
type RulesConfig struct {
	Lives      int `yaml:"lives"`       // Starting lives
	KillPoints int `yaml:"kill_points"` // Score per destroyed enemy
	WinScore   int `yaml:"win_score"`   // Legacy score-threshold win; 0 disables
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy    DifficultyPreset = "easy"
	DifficultyNormal  DifficultyPreset = "normal"
	DifficultyHard    DifficultyPreset = "hard"
	DifficultyClassic DifficultyPreset = "classic"
)

// Validate checks the configuration for values the simulation cannot run with.
func (c *InvadersConfig) Validate() error {
	if c.World.Width <= 0 || c.World.Height <= 0 {
		return fmt.Errorf("config: world extents must be positive, got %gx%g", c.World.Width, c.World.Height)
	}
	if c.World.EdgeMargin < 0 || c.World.EdgeMargin*2 >= c.World.Width {
		return fmt.Errorf("config: edge margin %g does not fit world width %g", c.World.EdgeMargin, c.World.Width)
	}
	if c.Player.HalfWidth <= 0 || c.Player.HalfHeight <= 0 {
		return fmt.Errorf("config: player half-extents must be positive")
	}
	if c.Player.Speed <= 0 {
		return fmt.Errorf("config: player speed must be positive, got %g", c.Player.Speed)
	}
	if c.Player.FireCooldown < 0 || c.Player.RespawnDelay < 0 {
		return fmt.Errorf("config: player cooldowns must not be negative")
	}
	if c.Shots.HalfWidth <= 0 || c.Shots.HalfHeight <= 0 {
		return fmt.Errorf("config: shot half-extents must be positive")
	}
	if c.Shots.Speed <= 0 {
		return fmt.Errorf("config: shot speed must be positive, got %g", c.Shots.Speed)
	}
	if c.Formation.Rows < 1 || c.Formation.Cols < 1 {
		return fmt.Errorf("config: formation needs at least 1x1 enemies, got %dx%d", c.Formation.Rows, c.Formation.Cols)
	}
	if c.Formation.SpacingX <= 0 || c.Formation.SpacingY <= 0 {
		return fmt.Errorf("config: formation spacing must be positive")
	}
	if c.Formation.EnemyHalfW <= 0 || c.Formation.EnemyHalfH <= 0 {
		return fmt.Errorf("config: enemy half-extents must be positive")
	}
	if c.Formation.BaseSpeed <= 0 {
		return fmt.Errorf("config: formation base speed must be positive, got %g", c.Formation.BaseSpeed)
	}
	if c.Formation.StepDown < 0 || c.Formation.SpeedPerLevel < 0 || c.Formation.FireCooldown < 0 {
		return fmt.Errorf("config: formation step/increment/cooldown must not be negative")
	}
	// The full grid has to fit inside the patrol band or the sweep would
	// reverse every frame.
	gridW := float64(c.Formation.Cols-1)*c.Formation.SpacingX + 2*c.Formation.EnemyHalfW
	patrolW := c.World.Width - 2*c.World.EdgeMargin
	if gridW >= patrolW {
		return fmt.Errorf("config: formation width %g does not fit patrol band %g", gridW, patrolW)
	}
	if c.Rules.Lives < 1 {
		return fmt.Errorf("config: lives must be at least 1, got %d", c.Rules.Lives)
	}
	if c.Rules.KillPoints <= 0 {
		return fmt.Errorf("config: kill points must be positive, got %d", c.Rules.KillPoints)
	}
	if c.Rules.WinScore < 0 {
		return fmt.Errorf("config: win score must not be negative, got %d", c.Rules.WinScore)
	}
	return nil
}
