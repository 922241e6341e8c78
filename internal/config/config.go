// Package config loads simulation settings from YAML or TOML files.
// Angles are written in degrees and converted when handed to the core.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/zeusync/shoalsync/internal/core/idle"
	"github.com/zeusync/shoalsync/internal/core/models"
	"github.com/zeusync/shoalsync/internal/core/observability/log"
	"github.com/zeusync/shoalsync/internal/core/schooling"
	"github.com/zeusync/shoalsync/internal/core/systems/physics"
)

type Config struct {
	Simulation SimulationConfig `json:"simulation" yaml:"simulation" toml:"simulation"`
	Schooling  SchoolingConfig  `json:"schooling" yaml:"schooling" toml:"schooling"`
	Idle       IdleConfig       `json:"idle" yaml:"idle" toml:"idle"`
	Logging    LoggingConfig    `json:"logging" yaml:"logging" toml:"logging"`
	Server     ServerConfig     `json:"server" yaml:"server" toml:"server"`
}

type SimulationConfig struct {
	Agents int    `json:"agents" yaml:"agents" toml:"agents"`
	Seed   uint64 `json:"seed" yaml:"seed" toml:"seed"`

	// Dt is the duration of one tick in simulation seconds.
	Dt float64 `json:"dt" yaml:"dt" toml:"dt"`

	// Ticks bounds a headless run.
	Ticks   uint64  `json:"ticks" yaml:"ticks" toml:"ticks"`
	Width   float64 `json:"width" yaml:"width" toml:"width"`
	Height  float64 `json:"height" yaml:"height" toml:"height"`
	Workers int     `json:"workers" yaml:"workers" toml:"workers"`

	// StatsEvery logs a summary every that many ticks, zero disables it.
	StatsEvery uint64  `json:"stats_every" yaml:"stats_every" toml:"stats_every"`
	OriginX    float64 `json:"origin_x" yaml:"origin_x" toml:"origin_x"`
	OriginY    float64 `json:"origin_y" yaml:"origin_y" toml:"origin_y"`
}

type SchoolingConfig struct {
	AvoidanceRadius  float64 `json:"avoidance_radius" yaml:"avoidance_radius" toml:"avoidance_radius"`
	AlignmentRadius  float64 `json:"alignment_radius" yaml:"alignment_radius" toml:"alignment_radius"`
	AttractionRadius float64 `json:"attraction_radius" yaml:"attraction_radius" toml:"attraction_radius"`

	// VisualField is the full field of view, in degrees.
	VisualField     float64 `json:"visual_field" yaml:"visual_field" toml:"visual_field"`
	ReferenceFactor float64 `json:"reference_factor" yaml:"reference_factor" toml:"reference_factor"`
	GammaK          float64 `json:"gamma_k" yaml:"gamma_k" toml:"gamma_k"`
	GammaA          float64 `json:"gamma_a" yaml:"gamma_a" toml:"gamma_a"`

	// Standard deviations in degrees.
	AvoidanceAttractionStd float64 `json:"avoidance_attraction_std" yaml:"avoidance_attraction_std" toml:"avoidance_attraction_std"`
	AlignmentStd           float64 `json:"alignment_std" yaml:"alignment_std" toml:"alignment_std"`
}

type IdleConfig struct {
	DirectionChance float64 `json:"direction_chance" yaml:"direction_chance" toml:"direction_chance"`
	SpeedChance     float64 `json:"speed_chance" yaml:"speed_chance" toml:"speed_chance"`
	StressChance    float64 `json:"stress_chance" yaml:"stress_chance" toml:"stress_chance"`
	InitialStress   float64 `json:"initial_stress" yaml:"initial_stress" toml:"initial_stress"`
}

type LoggingConfig struct {
	// Level is one of debug, info, warn, error, none.
	Level string `json:"level" yaml:"level" toml:"level"`

	// Encoding is json or console.
	Encoding string `json:"encoding" yaml:"encoding" toml:"encoding"`
}

type ServerConfig struct {
	Addr string `json:"addr" yaml:"addr" toml:"addr"`

	// TickRate is the number of ticks per wall-clock second while serving.
	TickRate   int `json:"tick_rate" yaml:"tick_rate" toml:"tick_rate"`
	MaxClients int `json:"max_clients" yaml:"max_clients" toml:"max_clients"`

	// Glyphs adds the render draw list to streamed frames.
	Glyphs bool `json:"glyphs" yaml:"glyphs" toml:"glyphs"`

	// SendBuffer is frames queued per viewer before frames are dropped.
	SendBuffer int `json:"send_buffer" yaml:"send_buffer" toml:"send_buffer"`
}

// Default returns the reference configuration.
func Default() *Config {
	p := schooling.DefaultParameters()
	c := idle.DefaultChances()
	return &Config{
		Simulation: SimulationConfig{
			Agents:     200,
			Seed:       1,
			Dt:         1.0 / 60,
			Ticks:      600,
			Width:      1280,
			Height:     720,
			StatsEvery: 60,
		},
		Schooling: SchoolingConfig{
			AvoidanceRadius:        p.AvoidanceRadius.Value(),
			AlignmentRadius:        p.AlignmentRadius.Value(),
			AttractionRadius:       p.AttractionRadius.Value(),
			VisualField:            p.VisualField.ToDegrees(),
			ReferenceFactor:        p.ReferenceFactor,
			GammaK:                 p.GammaK,
			GammaA:                 p.GammaA,
			AvoidanceAttractionStd: p.AvoidanceAttractionStd.ToDegrees(),
			AlignmentStd:           p.AlignmentStd.ToDegrees(),
		},
		Idle: IdleConfig{
			DirectionChance: c.Direction,
			SpeedChance:     c.Speed,
			StressChance:    c.Stress,
			InitialStress:   float64(idle.DefaultStress),
		},
		Logging: LoggingConfig{
			Level:    "info",
			Encoding: "console",
		},
		Server: ServerConfig{
			Addr:       "127.0.0.1:8080",
			TickRate:   30,
			MaxClients: 64,
			Glyphs:     true,
			SendBuffer: 8,
		},
	}
}

// Format is a config file syntax.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ParseFormat accepts yaml, yml and toml.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// Load reads path over the defaults. The format follows the file extension.
// Keys that match no setting are rejected.
func Load(path string) (*Config, error) {
	format, err := ParseFormat(filepath.Ext(path))
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	defer f.Close()

	cfg, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads a config in the given format over the defaults.
func Decode(r io.Reader, format Format) (*Config, error) {
	cfg := Default()
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(cfg)
		if err != nil {
			return nil, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, fmt.Errorf("%w: %s", ErrUnknownKeys, strings.Join(keys, ", "))
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return cfg, nil
}

// Encode writes c in the given format.
func (c *Config) Encode(w io.Writer, format Format) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return err
		}
		return enc.Close()
	case FormatTOML:
		return toml.NewEncoder(w).Encode(c)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Validate checks the preconditions the simulation core relies on and
// reports every violation at once.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
		}
	}

	s := c.Simulation
	check(s.Agents > 0, "simulation.agents must be positive, got %d", s.Agents)
	check(s.Dt > 0, "simulation.dt must be positive, got %v", s.Dt)
	check(s.Width >= 0 && s.Height >= 0, "simulation area must not be negative, got %vx%v", s.Width, s.Height)
	check(s.Workers >= 0, "simulation.workers must not be negative, got %d", s.Workers)

	sc := c.Schooling
	check(sc.AvoidanceRadius >= 0, "schooling.avoidance_radius must not be negative, got %v", sc.AvoidanceRadius)
	check(sc.AlignmentRadius >= 0, "schooling.alignment_radius must not be negative, got %v", sc.AlignmentRadius)
	check(sc.AttractionRadius >= 0, "schooling.attraction_radius must not be negative, got %v", sc.AttractionRadius)
	check(sc.VisualField > 0 && sc.VisualField <= 360, "schooling.visual_field must be in (0, 360], got %v", sc.VisualField)
	check(sc.ReferenceFactor > 0 && sc.ReferenceFactor <= 1, "schooling.reference_factor must be in (0, 1], got %v", sc.ReferenceFactor)
	check(sc.GammaK > 0, "schooling.gamma_k must be positive, got %v", sc.GammaK)
	check(sc.GammaA > 0, "schooling.gamma_a must be positive, got %v", sc.GammaA)
	check(sc.AvoidanceAttractionStd >= 0, "schooling.avoidance_attraction_std must not be negative, got %v", sc.AvoidanceAttractionStd)
	check(sc.AlignmentStd >= 0, "schooling.alignment_std must not be negative, got %v", sc.AlignmentStd)

	ic := c.Idle
	check(probability(ic.DirectionChance), "idle.direction_chance must be in [0, 1], got %v", ic.DirectionChance)
	check(probability(ic.SpeedChance), "idle.speed_chance must be in [0, 1], got %v", ic.SpeedChance)
	check(probability(ic.StressChance), "idle.stress_chance must be in [0, 1], got %v", ic.StressChance)
	check(ic.InitialStress >= 0, "idle.initial_stress must not be negative, got %v", ic.InitialStress)

	_, err := log.ParseLevel(c.Logging.Level)
	check(err == nil, "logging.level %q is not a level", c.Logging.Level)
	check(c.Logging.Encoding == "" || c.Logging.Encoding == "json" || c.Logging.Encoding == "console",
		"logging.encoding must be json or console, got %q", c.Logging.Encoding)

	check(c.Server.TickRate > 0 && c.Server.TickRate <= maxTickRate,
		"server.tick_rate must be in [1, %d], got %d", maxTickRate, c.Server.TickRate)
	check(c.Server.MaxClients >= 0, "server.max_clients must not be negative, got %d", c.Server.MaxClients)
	check(c.Server.SendBuffer > 0, "server.send_buffer must be positive, got %d", c.Server.SendBuffer)

	return errors.Join(errs...)
}

// maxTickRate keeps the serving interval at one millisecond or more.
const maxTickRate = 1000

func probability(p float64) bool { return p >= 0 && p <= 1 }

// Parameters converts the schooling section for the core.
func (c *Config) Parameters() schooling.Parameters {
	sc := c.Schooling
	return schooling.Parameters{
		AvoidanceRadius:        physics.Radius(sc.AvoidanceRadius),
		AlignmentRadius:        physics.Radius(sc.AlignmentRadius),
		AttractionRadius:       physics.Radius(sc.AttractionRadius),
		VisualField:            physics.Degrees(sc.VisualField),
		ReferenceFactor:        sc.ReferenceFactor,
		GammaK:                 sc.GammaK,
		GammaA:                 sc.GammaA,
		AvoidanceAttractionStd: physics.Degrees(sc.AvoidanceAttractionStd),
		AlignmentStd:           physics.Degrees(sc.AlignmentStd),
	}
}

// Chances converts the idle section for the core.
func (c *Config) Chances() idle.Chances {
	return idle.Chances{
		Direction: c.Idle.DirectionChance,
		Speed:     c.Idle.SpeedChance,
		Stress:    c.Idle.StressChance,
	}
}

func (c *Config) Area() models.Area {
	return models.NewArea(c.Simulation.Width, c.Simulation.Height)
}

func (c *Config) Origin() physics.Vec2 {
	return physics.V(c.Simulation.OriginX, c.Simulation.OriginY)
}

// LogLevel returns the parsed logging level, info when it does not parse.
func (c *Config) LogLevel() log.Level {
	level, _ := log.ParseLevel(c.Logging.Level)
	return level
}
