package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/hlog-framework/hlog/core"
	"github.com/hlog-framework/hlog/formatter"
	"github.com/hlog-framework/hlog/handler"
	"github.com/hlog-framework/hlog/logger"
)

// Config describes a registry's handlers and per-logger settings in a
// form that can be loaded from YAML.
type Config struct {
	Handlers []HandlerConfig `yaml:"handlers"`
	Loggers  []LoggerConfig  `yaml:"loggers"`
}

// HandlerConfig describes one named handler
type HandlerConfig struct {
	// Name identifies the handler for logger references (required)
	Name string `yaml:"name"`
	// Output is "stdout", "stderr", or a file path (default: stdout)
	Output string `yaml:"output"`
	// Append opens a file output in append mode instead of truncating
	Append bool `yaml:"append"`
	// Format is "text", "csv" or "json" (default: text)
	Format string `yaml:"format"`
	// Level is the default enabled threshold (default: trace)
	Level string `yaml:"level"`
	// Block lists levels disabled regardless of the threshold
	Block []string `yaml:"block"`
}

// LoggerConfig describes settings applied to one logger subtree
type LoggerConfig struct {
	// Name is the ":"-separated logger path; empty targets the root
	Name string `yaml:"name"`
	// Handlers lists handler names attached to this logger
	Handlers []string `yaml:"handlers"`
	// Levels maps handler name to a threshold override
	Levels map[string]string `yaml:"levels"`
	// StopLevel makes calls at or above it fatal for this subtree
	StopLevel string `yaml:"stop_level"`
}

// Load parses a YAML document into a Config
func Load(data []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, errors.Wrap(err, "parse logging config")
	}
	return &c, nil
}

// LoadFile reads and parses a YAML config file
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read logging config")
	}
	return Load(data)
}

// Apply builds the configured handlers and wires them into the
// registry. The first configured logger entry with handlers attached
// to the root replaces the registry's defaults.
func (c *Config) Apply(r *logger.Registry) error {
	byName := make(map[string]*handler.Handler, len(c.Handlers))

	for _, hc := range c.Handlers {
		if hc.Name == "" {
			return errors.New("handler without a name")
		}
		if _, dup := byName[hc.Name]; dup {
			return errors.Errorf("duplicate handler name %q", hc.Name)
		}
		h, err := buildHandler(hc)
		if err != nil {
			return errors.Wrapf(err, "handler %q", hc.Name)
		}
		byName[hc.Name] = h
	}

	for _, lc := range c.Loggers {
		l := r.GetLogger(lc.Name)

		if len(lc.Handlers) > 0 {
			hs := make([]*handler.Handler, 0, len(lc.Handlers))
			for _, name := range lc.Handlers {
				h, ok := byName[name]
				if !ok {
					return errors.Errorf("logger %q references unknown handler %q", lc.Name, name)
				}
				hs = append(hs, h)
			}
			l.SetHandlers(hs...)
		}

		for name, lvl := range lc.Levels {
			h, ok := byName[name]
			if !ok {
				return errors.Errorf("logger %q references unknown handler %q", lc.Name, name)
			}
			level, err := core.ParseLevel(lvl)
			if err != nil {
				return errors.Wrapf(err, "logger %q", lc.Name)
			}
			l.SetLogLevel(h, level)
		}

		if lc.StopLevel != "" {
			level, err := core.ParseLevel(lc.StopLevel)
			if err != nil {
				return errors.Wrapf(err, "logger %q stop level", lc.Name)
			}
			l.SetStopLevel(level)
		}
	}

	return nil
}

func buildHandler(hc HandlerConfig) (*handler.Handler, error) {
	fcfg := formatter.Config{IncludeLocation: true}
	var f formatter.Formatter
	switch hc.Format {
	case "", "text":
		f = formatter.NewTextFormatter(fcfg)
	case "csv":
		f = formatter.NewCSVFormatter(fcfg)
	case "json":
		f = formatter.NewJSONFormatter(fcfg)
	default:
		return nil, errors.Errorf("unknown format %q", hc.Format)
	}

	var sink handler.Sink
	switch hc.Output {
	case "", "stdout":
		sink = handler.NewConsoleSink(handler.ConsoleConfig{Writer: os.Stdout})
	case "stderr":
		sink = handler.NewConsoleSink(handler.ConsoleConfig{Writer: os.Stderr})
	default:
		fs, err := handler.NewFileSink(handler.FileConfig{Filename: hc.Output, Append: hc.Append})
		if err != nil {
			return nil, err
		}
		sink = fs
	}

	level := core.TraceLevel
	if hc.Level != "" {
		var err error
		level, err = core.ParseLevel(hc.Level)
		if err != nil {
			return nil, err
		}
	}

	var block core.LevelSet
	for _, b := range hc.Block {
		lvl, err := core.ParseLevel(b)
		if err != nil {
			return nil, errors.Wrap(err, "block filter")
		}
		block = block.With(lvl)
	}

	return handler.New(handler.Config{
		Name:      hc.Name,
		Sink:      sink,
		Formatter: f,
		Level:     level,
		Block:     block,
	}), nil
}
