package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadInvaders loads the invaders configuration.
// Search order: customPath -> ~/.invaders/invaders.yaml -> ./configs/invaders.yaml -> embedded default
func LoadInvaders(customPath string) (InvadersConfig, error) {
	var cfg InvadersConfig

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("invaders.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil && cfg.Validate() == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/invaders.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultInvadersYAML, &cfg); err != nil || cfg.Validate() != nil {
		return DefaultInvadersConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".invaders", filename)
}

// ApplyInvadersPreset modifies the config based on a difficulty preset.
// Unknown presets leave the config unchanged (normal difficulty).
func ApplyInvadersPreset(cfg *InvadersConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Rules.Lives = 5
		cfg.Formation.BaseSpeed = 30
		cfg.Formation.SpeedPerLevel = 10
		cfg.Formation.FireCooldown = 1.6
	case DifficultyHard:
		cfg.Rules.Lives = 2
		cfg.Formation.BaseSpeed = 55
		cfg.Formation.SpeedPerLevel = 20
		cfg.Formation.FireCooldown = 0.65
	case DifficultyClassic:
		// The original ruleset: no enemy fire, win on reaching the score
		// a full wave is worth.
		cfg.Formation.FireCooldown = 0
		cfg.Rules.WinScore = cfg.Formation.Rows * cfg.Formation.Cols * cfg.Rules.KillPoints
	}
}
