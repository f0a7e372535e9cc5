// Package config handles tool configuration loading and management.
package config

// Config holds all objtool settings.
type Config struct {
	Export   ExportConfig   `yaml:"export"`
	Simplify SimplifyConfig `yaml:"simplify"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ExportConfig holds texture export settings.
type ExportConfig struct {
	MaxTextureSize int    `yaml:"max_texture_size"` // longest edge in pixels, 0 keeps the original size
	OutputDir      string `yaml:"output_dir"`
}

// SimplifyConfig holds mesh simplification settings.
type SimplifyConfig struct {
	Factor float64 `yaml:"factor"` // target triangle fraction, 0 < factor <= 1
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Export: ExportConfig{
			MaxTextureSize: 0,
			OutputDir:      ".",
		},
		Simplify: SimplifyConfig{
			Factor: 0.5,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
