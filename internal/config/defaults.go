package config

import (
	_ "embed"
)

//go:embed defaults/dinodao.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Session: SessionConfig{
			Width: 600,
		},
		Rules:   DefaultRules(),
		Display: DisplayConfig{
			TickRate:    60,
			TrackLength: 60,
		},
	}
}

// DefaultRules returns the standard timing and scoring rules.
func DefaultRules() RulesConfig {
	return RulesConfig{
		MinWidth:        MinWidth,
		SessionIDLength: SessionIDLength,
		InitialSpeed:    InitialSpeed,
		MinSpeed:        1.0,
		SpeedStep:       0.5,
		SpeedUpEvery:    50,
		ScoreStep:       ScoreStep,
		JumpFactor:      1.0,
		PunishStart:     57.5,
		PunishEnd:       62.5,
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultYAML
}
