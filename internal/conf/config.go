package conf

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/salesforce/envariability"
)

func init() {
	sources := &ConfigSource{
		Path:      "/etc/envariability/config.toml",
		DropInDir: "/etc/envariability/config.toml.d/",
	}
	config, err := sources.Read()
	if err != nil {
		slog.Warn("falling back to embedded defaults", "error", err)
		config = Config{}
		dto, parseErr := parseConfigDTO(defaultConfig)
		if parseErr != nil {
			panic(fmt.Sprintf("failed to parse embedded defaults: %v", parseErr))
		}
		config.Update(dto)
	}
	Configuration = config
}

// defaultConfig is the base layer applied before the main configuration
// file and the drop-in files.
//
//go:embed default.toml
var defaultConfig string

// Configuration holds the tool defaults loaded at start up.
var Configuration Config

// Config holds the defaults the command line tool resolves and documents
// schemas with.
type Config struct {
	Prefix         string
	WordSeparator  string
	ArraySeparator string
	Mutable        bool
	LogLevel       slog.Level
}

// Update applies non-nil values from a configDTO.
func (c *Config) Update(dto configDTO) {
	if dto.Prefix != nil {
		c.Prefix = *dto.Prefix
	}
	if dto.WordSeparator != nil {
		c.WordSeparator = *dto.WordSeparator
	}
	if dto.ArraySeparator != nil {
		c.ArraySeparator = *dto.ArraySeparator
	}
	if dto.Mutable != nil {
		c.Mutable = *dto.Mutable
	}
	if dto.LogLevel != nil {
		switch strings.ToUpper(*dto.LogLevel) {
		case "DEBUG":
			c.LogLevel = slog.LevelDebug
		case "INFO":
			c.LogLevel = slog.LevelInfo
		case "WARN":
			c.LogLevel = slog.LevelWarn
		case "ERROR":
			c.LogLevel = slog.LevelError
		}
	}
}

// Options converts the defaults into resolution options.
func (c Config) Options() []envariability.Option {
	opts := []envariability.Option{
		envariability.WithPrefix(c.Prefix),
		envariability.WithImmutable(!c.Mutable),
	}
	// Empty separators keep the library defaults.
	if c.WordSeparator != "" {
		opts = append(opts, envariability.WithWordSeparator(c.WordSeparator))
	}
	if c.ArraySeparator != "" {
		opts = append(opts, envariability.WithArraySeparator(c.ArraySeparator))
	}
	return opts
}

// ConfigSource orchestrates loading configuration from multiple sources.
// See the Read method.
type ConfigSource struct {
	Path      string
	DropInDir string
}

// Read loads and returns the complete Config by merging all layers:
// 1. Embedded defaults
// 2. Main configuration file
// 3. Drop-in files
func (cs *ConfigSource) Read() (Config, error) {
	resolved := Config{}

	dto, err := parseConfigDTO(defaultConfig)
	if err != nil {
		slog.Error("failed to parse embedded defaults", "error", err)
		return resolved, fmt.Errorf("failed to parse embedded defaults: %w", err)
	}
	resolved.Update(dto)

	data, err := os.ReadFile(cs.Path)
	if err != nil {
		if !os.IsNotExist(err) {
			// An unreadable file is an error, not a missing layer.
			return resolved, fmt.Errorf("failed to load %s: %w", cs.Path, err)
		}
	} else {
		mainDTO, err := parseConfigDTO(string(data))
		if err != nil {
			return resolved, fmt.Errorf("failed to parse %s: %w", cs.Path, err)
		}
		resolved.Update(mainDTO)
	}

	dropInDTOs, err := cs.parseDropInFiles()
	if err != nil {
		slog.Error("failed to load drop-in files", "error", err, "dir", cs.DropInDir)
		return resolved, err
	}
	for _, dropInDTO := range dropInDTOs {
		resolved.Update(dropInDTO)
	}

	return resolved, nil
}

type configDTO struct {
	Prefix         *string `toml:"prefix"`
	WordSeparator  *string `toml:"word-separator"`
	ArraySeparator *string `toml:"array-separator"`
	Mutable        *bool   `toml:"mutable"`
	LogLevel       *string `toml:"log-level"`
}

// parseConfigDTO parses a TOML string into a configDTO.
func parseConfigDTO(data string) (configDTO, error) {
	var dto configDTO

	if err := toml.Unmarshal([]byte(data), &dto); err != nil {
		return dto, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return dto, nil
}

// findDropInFiles returns the sorted paths of *.toml files in the drop-in
// directory, or nil when the directory doesn't exist.
func (cs *ConfigSource) findDropInFiles() ([]string, error) {
	if _, err := os.Stat(cs.DropInDir); os.IsNotExist(err) {
		return nil, nil
	}

	entries, err := os.ReadDir(cs.DropInDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read drop-in directory %s: %w", cs.DropInDir, err)
	}

	var filenames []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".toml") {
			continue
		}
		filenames = append(filenames, filepath.Join(cs.DropInDir, entry.Name()))
	}
	sort.Strings(filenames)

	return filenames, nil
}

func (cs *ConfigSource) parseDropInFiles() ([]configDTO, error) {
	paths, err := cs.findDropInFiles()
	if err != nil {
		return nil, err
	}

	var dtos []configDTO
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}

		dto, err := parseConfigDTO(string(data))
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}

		dtos = append(dtos, dto)
	}

	return dtos, nil
}
