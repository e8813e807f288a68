package questiongen

// Config controls a pipeline run.
type Config struct {
	// Target is the number of questions a run tries to store.
	Target int `mapstructure:"target" validate:"min=1"`

	// MinScore is the lowest reviewer score that passes.
	MinScore int `mapstructure:"min_score" validate:"min=0,max=100"`

	// MaxAttempts bounds the generate/review rounds per run.
	MaxAttempts int `mapstructure:"max_attempts" validate:"min=1"`

	// Overshoot is how many extra questions each round asks for on top of
	// the shortfall, to absorb rejections.
	Overshoot int `mapstructure:"overshoot" validate:"min=0"`

	// BatchSize caps the questions requested per LLM call.
	BatchSize int `mapstructure:"batch_size" validate:"min=1"`

	// Workers is the number of concurrent reviews.
	Workers int `mapstructure:"workers" validate:"min=1"`

	MaxTokens         int     `mapstructure:"max_tokens" validate:"min=256"`
	Temperature       float64 `mapstructure:"temperature" validate:"min=0,max=2"`
	ReviewTemperature float64 `mapstructure:"review_temperature" validate:"min=0,max=2"`

	// Schedule is the cron expression used by `closer schedule`.
	Schedule string `mapstructure:"schedule" validate:"required"`
}

// DefaultConfig returns the weekly 50-question setup.
func DefaultConfig() Config {
	return Config{
		Target:            50,
		MinScore:          85,
		MaxAttempts:       3,
		Overshoot:         10,
		BatchSize:         10,
		Workers:           4,
		MaxTokens:         8192,
		Temperature:       0.7,
		ReviewTemperature: 0,
		Schedule:          "0 3 * * 1",
	}
}
