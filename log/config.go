package log

// Config for log
type Config struct {
	// Environment selects the encoder: "production" emits JSON lines,
	// "development" a colored console format with stack traces from warn up.
	Environment LogEnvironment `mapstructure:"Environment" jsonschema:"enum=production,enum=development"`
	// Level is the minimum level written (debug, info, warn, error, dpanic, panic, fatal)
	Level string `mapstructure:"Level" jsonschema:"enum=debug,enum=info,enum=warn,enum=error,enum=dpanic,enum=panic,enum=fatal"` //nolint:lll
	// Outputs are the zap sink URLs or file paths, e.g. "stderr" or "/var/log/sequencer.log"
	Outputs []string `mapstructure:"Outputs"`
}

// DefaultConfig is used by tests and tools that run without a config file.
func DefaultConfig() Config {
	return Config{
		Environment: EnvironmentDevelopment,
		Level:       "info",
		Outputs:     []string{"stderr"},
	}
}
