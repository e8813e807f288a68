// Package config loads closer's settings from defaults, an optional
// closer.yaml, .env files and CLOSER_* environment variables, in
// increasing order of precedence.
package config

import (
	"github.com/abhisek/closer/internal/balance"
	"github.com/abhisek/closer/internal/llm"
	"github.com/abhisek/closer/internal/questiongen"
)

// Config holds all application configuration.
type Config struct {
	Database DatabaseConfig     `mapstructure:"database"`
	Learner  LearnerConfig      `mapstructure:"learner"`
	Log      LogConfig          `mapstructure:"log"`
	LLM      llm.Config         `mapstructure:"llm"`
	Pipeline questiongen.Config `mapstructure:"pipeline"`
	Balance  balance.Config     `mapstructure:"balance"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=sqlite postgres"`

	// DSN is a file path for sqlite or a connection URL for postgres.
	// Empty means the default data path (sqlite only).
	DSN string `mapstructure:"dsn" validate:"required_if=Driver postgres"`
}

// LearnerConfig identifies whose progress is read and written.
type LearnerConfig struct {
	ID string `mapstructure:"id" validate:"required,max=64"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=text json"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Database: DatabaseConfig{Driver: "sqlite"},
		Learner:  LearnerConfig{ID: "local"},
		Log:      LogConfig{Level: "warn", Format: "text"},
		LLM:      llm.DefaultConfig(),
		Pipeline: questiongen.DefaultConfig(),
		Balance:  balance.DefaultConfig(),
	}
}
