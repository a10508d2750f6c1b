// Package config loads the YAML scenario description consumed by the
// slipswitch command and constructs the logger it reports through.
package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Config is the root of a scenario file.
type Config struct {
	Switch  SwitchConfig  `yaml:"switch"`
	Traffic TrafficConfig `yaml:"traffic"`
	Run     RunConfig     `yaml:"run"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// SwitchConfig shapes the switch under simulation.
type SwitchConfig struct {
	// Ports is the number of input and output ports.
	Ports int `yaml:"ports"`

	// Rounds is the iSLIP round count; 0 means ceil(log2(ports)).
	Rounds int `yaml:"rounds"`

	// AddrProfile selects the address descriptor: "fixed" reads the packet
	// header, "ethernet" decodes the payload as an Ethernet frame.
	AddrProfile string `yaml:"addr_profile"`
}

// TrafficConfig shapes the offered load.
type TrafficConfig struct {
	// Pattern is "uniform" or "constant".
	Pattern string `yaml:"pattern"`

	// Rate is the per-port offer probability per slot, in [0, 1].
	Rate float64 `yaml:"rate"`

	// Seed feeds the traffic generators' random source.
	Seed int64 `yaml:"seed"`
}

// RunConfig shapes the run itself.
type RunConfig struct {
	// Slots is the number of time slots to simulate.
	Slots uint64 `yaml:"slots"`

	// Driver is "cycle" or "event".
	Driver string `yaml:"driver"`
}

// LogConfig shapes the logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"`
}

// Default returns a runnable configuration: an 8-port switch under uniform
// load at rate 0.9 for 10000 slots.
func Default() Config {
	return Config{
		Switch: SwitchConfig{
			Ports:       8,
			AddrProfile: "fixed",
		},
		Traffic: TrafficConfig{
			Pattern: "uniform",
			Rate:    0.9,
			Seed:    1,
		},
		Run: RunConfig{
			Slots:  10000,
			Driver: "cycle",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Listen: ":9091",
		},
	}
}

// Load reads path over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Validate rejects configurations no simulation can be built from.
func (c Config) Validate() error {
	if c.Switch.Ports <= 0 {
		return fmt.Errorf("switch.ports must be positive, got %d", c.Switch.Ports)
	}
	if c.Switch.Rounds < 0 {
		return fmt.Errorf("switch.rounds must not be negative, got %d", c.Switch.Rounds)
	}

	switch c.Switch.AddrProfile {
	case "fixed", "ethernet":
	default:
		return fmt.Errorf("unknown switch.addr_profile %q", c.Switch.AddrProfile)
	}

	switch c.Traffic.Pattern {
	case "uniform", "constant":
	default:
		return fmt.Errorf("unknown traffic.pattern %q", c.Traffic.Pattern)
	}

	if c.Traffic.Rate < 0 || c.Traffic.Rate > 1 {
		return fmt.Errorf("traffic.rate must lie in [0, 1], got %v", c.Traffic.Rate)
	}

	switch c.Run.Driver {
	case "cycle", "event":
	default:
		return fmt.Errorf("unknown run.driver %q", c.Run.Driver)
	}

	if c.Run.Slots == 0 {
		return fmt.Errorf("run.slots must be positive")
	}

	return nil
}

// NewLogger builds the configured zerolog logger writing to w.
func (c LogConfig) NewLogger(w io.Writer) zerolog.Logger {
	var out io.Writer = w
	if c.Format == "text" {
		out = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
		}
	}

	level, err := zerolog.ParseLevel(c.Level)
	if err != nil || c.Level == "" {
		level = zerolog.InfoLevel
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
