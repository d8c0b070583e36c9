package config

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

func validateVersion(cfg *Config) error {
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported config version %d; supported version is 1", cfg.Version)
	}
	return nil
}

func validateSource(cfg *Config) error {
	ext := strings.TrimSpace(cfg.Source.Extension)
	if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
		return fmt.Errorf("source.extension must start with '.', got %q", cfg.Source.Extension)
	}
	for i, pattern := range cfg.Source.Include {
		if err := validateGlob(pattern); err != nil {
			return fmt.Errorf("source.include[%d]: %w", i, err)
		}
	}
	return nil
}

func validateWatch(cfg *Config) error {
	if cfg.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative, got %s", cfg.Watch.Debounce)
	}
	if cfg.Watch.MinInterval < 0 {
		return fmt.Errorf("watch.min_interval must not be negative, got %s", cfg.Watch.MinInterval)
	}
	for i, pattern := range cfg.Watch.ExcludeDirs {
		if err := validateGlob(pattern); err != nil {
			return fmt.Errorf("watch.exclude_dirs[%d]: %w", i, err)
		}
	}
	for i, pattern := range cfg.Watch.ExcludeFiles {
		if err := validateGlob(pattern); err != nil {
			return fmt.Errorf("watch.exclude_files[%d]: %w", i, err)
		}
	}
	return nil
}

func validateLog(cfg *Config) error {
	switch strings.ToLower(strings.TrimSpace(cfg.Log.Level)) {
	case "debug", "info", "warn", "error":
		return nil
	}
	return fmt.Errorf("log.level must be one of: debug, info, warn, error")
}

func validateGlob(pattern string) error {
	if strings.TrimSpace(pattern) == "" {
		return fmt.Errorf("pattern must not be empty")
	}
	if _, err := glob.Compile(pattern); err != nil {
		return fmt.Errorf("invalid glob %q: %w", pattern, err)
	}
	return nil
}
