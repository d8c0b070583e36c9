package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultFile is looked up in the working directory when --config is not set.
const DefaultFile = "fanc.toml"

type Config struct {
	Version int     `toml:"version"`
	Source  Source  `toml:"source"`
	Output  Output  `toml:"output"`
	Watch   Watch   `toml:"watch"`
	Log     Log     `toml:"log"`
	Metrics Metrics `toml:"metrics"`
	Tracing Tracing `toml:"tracing"`
}

type Source struct {
	Extension string   `toml:"extension"`
	Include   []string `toml:"include"` // globs matched against file names when walking directories
}

type Output struct {
	Dir        string `toml:"dir"`
	WriteTrace bool   `toml:"write_trace"`
	Color      *bool  `toml:"color"`
}

type Watch struct {
	Debounce     time.Duration `toml:"debounce"`
	MinInterval  time.Duration `toml:"min_interval"`
	ExcludeDirs  []string      `toml:"exclude_dirs"`
	ExcludeFiles []string      `toml:"exclude_files"`
}

type Log struct {
	Level string `toml:"level"`
}

type Metrics struct {
	Address string `toml:"address"`
}

type Tracing struct {
	Endpoint string `toml:"endpoint"`
	Insecure bool   `toml:"insecure"`
}

// Template is written by `fanc init`. Loading it yields DefaultConfig.
const Template = `version = 1

[source]
extension = ".fanc"
include = ["*.fanc"]

[output]
dir = "out"
write_trace = false
color = true

[watch]
debounce = "300ms"
min_interval = "200ms"
exclude_dirs = [".git", "out"]
exclude_files = []

[log]
level = "info"

[metrics]
address = ""

[tracing]
endpoint = ""
insecure = false
`

func DefaultConfig() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(string(data))
}

// Parse decodes TOML text, fills in defaults and validates the result.
func Parse(data string) (*Config, error) {
	var cfg Config
	if _, err := toml.Decode(data, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	if err := validateVersion(&cfg); err != nil {
		return nil, err
	}
	if err := validateSource(&cfg); err != nil {
		return nil, err
	}
	if err := validateWatch(&cfg); err != nil {
		return nil, err
	}
	if err := validateLog(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Version == 0 {
		cfg.Version = 1
	}

	if strings.TrimSpace(cfg.Source.Extension) == "" {
		cfg.Source.Extension = ".fanc"
	}
	if len(cfg.Source.Include) == 0 {
		cfg.Source.Include = []string{"*" + cfg.Source.Extension}
	}

	if strings.TrimSpace(cfg.Output.Dir) == "" {
		cfg.Output.Dir = "out"
	}
	if cfg.Output.Color == nil {
		color := true
		cfg.Output.Color = &color
	}

	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = 300 * time.Millisecond
	}
	if cfg.Watch.MinInterval == 0 {
		cfg.Watch.MinInterval = 200 * time.Millisecond
	}
	if cfg.Watch.ExcludeDirs == nil {
		cfg.Watch.ExcludeDirs = []string{".git", cfg.Output.Dir}
	}
	if cfg.Watch.ExcludeFiles == nil {
		cfg.Watch.ExcludeFiles = []string{}
	}

	if strings.TrimSpace(cfg.Log.Level) == "" {
		cfg.Log.Level = "info"
	}
}

func (c *Config) ColorEnabled() bool {
	return c.Output.Color == nil || *c.Output.Color
}

// SlogLevel maps log.level to a slog level. Validation has already rejected
// unknown names.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.Log.Level)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
