package main

import "fmt"

// Config is decoded by viper from flags, ASTAR_* environment variables and
// the optional config file.
type Config struct {
	LogLevel string       `mapstructure:"log-level"`
	Output   string       `mapstructure:"output"`
	Bytes    BytesConfig  `mapstructure:"bytes"`
	Keypad   KeypadConfig `mapstructure:"keypad"`
	Serve    ServeConfig  `mapstructure:"serve"`
}

type BytesConfig struct {
	// Size is the side of the square memory field.
	Size int `mapstructure:"size"`
	// Take is how many bytes have fallen before escaping.
	Take int `mapstructure:"take"`
}

type KeypadConfig struct {
	// Robots is the number of directional robots between the human and the door.
	Robots int `mapstructure:"robots"`
}

// ServeConfig holds the listen address and the defaults for generated boards.
type ServeConfig struct {
	Addr     string  `mapstructure:"addr"`
	Width    int     `mapstructure:"width"`
	Height   int     `mapstructure:"height"`
	Clusters int     `mapstructure:"clusters"`
	Steps    int     `mapstructure:"steps"`
	Density  float64 `mapstructure:"density"`
}

// validate rejects boards the server could not generate: a board needs two
// distinct cells for its start and goal.
func (c ServeConfig) validate() error {
	switch {
	case c.Width < 1 || c.Height < 1 || c.Width*c.Height < 2:
		return fmt.Errorf("serve: board %dx%d has fewer than two cells", c.Width, c.Height)
	case c.Clusters < 0 || c.Steps < 0:
		return fmt.Errorf("serve: clusters and steps must not be negative, got %d and %d", c.Clusters, c.Steps)
	case c.Density < 0 || c.Density > 1:
		return fmt.Errorf("serve: density %v is outside [0, 1]", c.Density)
	}
	return nil
}
