package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultInvadersConfigValid(t *testing.T) {
	cfg := DefaultInvadersConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate, got: %v", err)
	}
}

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	t.Setenv("HOME", t.TempDir()) // keep a real ~/.invaders/invaders.yaml out of the test

	cfg, err := LoadInvaders("")
	if err != nil {
		t.Fatalf("LoadInvaders() failed: %v", err)
	}

	def := DefaultInvadersConfig()
	if cfg.Formation.Rows != def.Formation.Rows || cfg.Formation.Cols != def.Formation.Cols {
		t.Errorf("embedded grid = %dx%d, hardcoded = %dx%d",
			cfg.Formation.Rows, cfg.Formation.Cols, def.Formation.Rows, def.Formation.Cols)
	}
	if cfg.Rules.KillPoints != def.Rules.KillPoints {
		t.Errorf("embedded kill points = %d, hardcoded = %d", cfg.Rules.KillPoints, def.Rules.KillPoints)
	}
	if cfg.World.Width != def.World.Width {
		t.Errorf("embedded world width = %g, hardcoded = %g", cfg.World.Width, def.World.Width)
	}
	if cfg.Player.FireCooldown != def.Player.FireCooldown {
		t.Errorf("embedded fire cooldown = %g, hardcoded = %g", cfg.Player.FireCooldown, def.Player.FireCooldown)
	}
}

func TestValidateRejectsBadConfigs(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*InvadersConfig)
	}{
		{"zero world width", func(c *InvadersConfig) { c.World.Width = 0 }},
		{"margin wider than world", func(c *InvadersConfig) { c.World.EdgeMargin = c.World.Width }},
		{"zero player speed", func(c *InvadersConfig) { c.Player.Speed = 0 }},
		{"negative respawn delay", func(c *InvadersConfig) { c.Player.RespawnDelay = -1 }},
		{"zero shot speed", func(c *InvadersConfig) { c.Shots.Speed = 0 }},
		{"empty formation", func(c *InvadersConfig) { c.Formation.Cols = 0 }},
		{"zero formation speed", func(c *InvadersConfig) { c.Formation.BaseSpeed = 0 }},
		{"formation wider than patrol band", func(c *InvadersConfig) { c.Formation.SpacingX = 200 }},
		{"zero lives", func(c *InvadersConfig) { c.Rules.Lives = 0 }},
		{"zero kill points", func(c *InvadersConfig) { c.Rules.KillPoints = 0 }},
		{"negative win score", func(c *InvadersConfig) { c.Rules.WinScore = -1 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultInvadersConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("Validate() should reject %s", tc.name)
			}
		})
	}
}

func TestApplyInvadersPreset(t *testing.T) {
	easy := DefaultInvadersConfig()
	ApplyInvadersPreset(&easy, DifficultyEasy)
	if easy.Rules.Lives != 5 {
		t.Errorf("easy lives = %d, expected 5", easy.Rules.Lives)
	}
	if easy.Formation.BaseSpeed >= DefaultInvadersConfig().Formation.BaseSpeed {
		t.Error("easy should slow the formation down")
	}

	hard := DefaultInvadersConfig()
	ApplyInvadersPreset(&hard, DifficultyHard)
	if hard.Rules.Lives != 2 {
		t.Errorf("hard lives = %d, expected 2", hard.Rules.Lives)
	}
	if hard.Formation.BaseSpeed <= DefaultInvadersConfig().Formation.BaseSpeed {
		t.Error("hard should speed the formation up")
	}

	classic := DefaultInvadersConfig()
	ApplyInvadersPreset(&classic, DifficultyClassic)
	if classic.Formation.FireCooldown != 0 {
		t.Errorf("classic should disable enemy fire, got cooldown %g", classic.Formation.FireCooldown)
	}
	if classic.Rules.WinScore != 4000 {
		t.Errorf("classic win score = %d, expected 4000 (5x8 grid at 100 points)", classic.Rules.WinScore)
	}

	unknown := DefaultInvadersConfig()
	ApplyInvadersPreset(&unknown, DifficultyPreset("bogus"))
	if unknown != DefaultInvadersConfig() {
		t.Error("unknown preset should leave the config unchanged")
	}

	// Presets must never produce an invalid config.
	for _, p := range []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyClassic} {
		cfg := DefaultInvadersConfig()
		ApplyInvadersPreset(&cfg, p)
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %q produced invalid config: %v", p, err)
		}
	}
}

func TestLoadInvadersCustomPath(t *testing.T) {
	tmpDir := t.TempDir()

	// A valid custom file overrides specific fields.
	path := filepath.Join(tmpDir, "custom.yaml")
	body := "world:\n  width: 640\n  height: 360\n  edge_margin: 10\n  floor_y: -120\n" +
		"player:\n  half_width: 12\n  half_height: 5\n  speed: 150\n  home_y: -100\n  fire_cooldown: 0.2\n  respawn_delay: 0.5\n" +
		"shots:\n  half_width: 1\n  half_height: 4\n  speed: 250\n  spawn_offset: 10\n  top_cull_y: 150\n  bottom_cull_y: -150\n" +
		"formation:\n  rows: 2\n  cols: 3\n  spacing_x: 30\n  spacing_y: 20\n  start_y: 50\n  enemy_half_width: 10\n  enemy_half_height: 5\n  base_speed: 20\n  step_down: 10\n  speed_per_level: 5\n  fire_cooldown: 1\n" +
		"rules:\n  lives: 2\n  kill_points: 50\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := LoadInvaders(path)
	if err != nil {
		t.Fatalf("LoadInvaders(custom) failed: %v", err)
	}
	if cfg.World.Width != 640 {
		t.Errorf("custom world width = %g, expected 640", cfg.World.Width)
	}
	if cfg.Formation.Rows != 2 || cfg.Formation.Cols != 3 {
		t.Errorf("custom grid = %dx%d, expected 2x3", cfg.Formation.Rows, cfg.Formation.Cols)
	}
	if cfg.Rules.Lives != 2 {
		t.Errorf("custom lives = %d, expected 2", cfg.Rules.Lives)
	}

	// A missing explicit path is an error, not a silent fallback.
	if _, err := LoadInvaders(filepath.Join(tmpDir, "missing.yaml")); err == nil {
		t.Error("LoadInvaders should fail for a missing explicit path")
	}

	// A malformed explicit file is an error.
	badPath := filepath.Join(tmpDir, "bad.yaml")
	if err := os.WriteFile(badPath, []byte("world: [not a mapping"), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	if _, err := LoadInvaders(badPath); err == nil {
		t.Error("LoadInvaders should fail for a malformed explicit file")
	}

	// An explicit file that parses but fails validation is an error.
	invalidPath := filepath.Join(tmpDir, "invalid.yaml")
	if err := os.WriteFile(invalidPath, []byte("world:\n  width: -1\n"), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	if _, err := LoadInvaders(invalidPath); err == nil {
		t.Error("LoadInvaders should fail for an invalid explicit config")
	}
}
