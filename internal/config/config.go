// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Display  DisplayConfig  `yaml:"display"`
	Render   RenderConfig   `yaml:"render"`
	Observer ObserverConfig `yaml:"observer"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// DisplayConfig holds framebuffer and pacing settings.
type DisplayConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// RenderConfig holds pipeline settings.
type RenderConfig struct {
	// Mode selects the visibility strategy: "sort" or "bsp".
	Mode string `yaml:"mode"`
	// Scale is the perspective projection numerator.
	Scale float64 `yaml:"scale"`
	// Outline draws face outlines on top of fills.
	Outline bool `yaml:"outline"`
}

// ObserverConfig holds the starting camera parameters.
type ObserverConfig struct {
	AngleH   int     `yaml:"angle_h"`
	AngleV   int     `yaml:"angle_v"`
	AngleW   int     `yaml:"angle_w"`
	Distance float64 `yaml:"distance"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the original renderer's defaults.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			Width:     320,
			Height:    200,
			TargetFPS: 30,
		},
		Render: RenderConfig{
			Mode:    "sort",
			Scale:   100,
			Outline: true,
		},
		Observer: ObserverConfig{
			AngleH:   30,
			AngleV:   20,
			AngleW:   0,
			Distance: 30,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
