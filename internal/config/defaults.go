package config

import (
	_ "embed"
)

//go:embed defaults/invaders.yaml
var defaultInvadersYAML []byte

// DefaultInvadersConfig returns the default invaders configuration.
// The tuning reproduces the classic ruleset: a 5x8 wave on a 1280x720
// viewport, 100 points per kill, three lives.
func DefaultInvadersConfig() InvadersConfig {
	return InvadersConfig{
		World: WorldConfig{
			Width:      1280,
			Height:     720,
			EdgeMargin: 20,
			FloorY:     -250,
		},
		Player: PlayerConfig{
			HalfWidth:    25,
			HalfHeight:   10,
			Speed:        300,
			HomeX:        0,
			HomeY:        -200,
			FireCooldown: 0.3,
			RespawnDelay: 1.0,
		},
		Shots: ShotConfig{
			HalfWidth:   2.5,
			HalfHeight:  7.5,
			Speed:       500,
			SpawnOffset: 20,
			TopCullY:    300,
			BottomCullY: -300,
		},
		Formation: FormationConfig{
			Rows:          5,
			Cols:          8,
			SpacingX:      60,
			SpacingY:      40,
			StartY:        100,
			EnemyHalfW:    20,
			EnemyHalfH:    10,
			BaseSpeed:     40,
			StepDown:      20,
			SpeedPerLevel: 15,
			FireCooldown:  1.0,
		},
		Rules: RulesConfig{
			Lives:      3,
			KillPoints: 100,
			WinScore:   0,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "invaders":
		return defaultInvadersYAML
	default:
		return nil
	}
}
