// Package config loads the tool configuration from an optional YAML file
// overlaid with CTORGEN_* environment variables.
package config

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/toyz/ctorgen/internal/annotations"
	"github.com/toyz/ctorgen/internal/errors"
	"github.com/toyz/ctorgen/internal/generator"
	"github.com/toyz/ctorgen/internal/utils"
)

// DefaultFileName is the configuration file looked up in the working directory
const DefaultFileName = ".ctorgen.yaml"

// Config is the effective configuration of the tool
type Config struct {
	Markers    MarkersConfig `yaml:"markers"`
	Layout     LayoutConfig  `yaml:"layout"`
	Scan       ScanConfig    `yaml:"scan"`
	Server     ServerConfig  `yaml:"server"`
	Log        LogConfig     `yaml:"log"`
	MinVersion string        `yaml:"minVersion,omitempty" env:"CTORGEN_MIN_VERSION" validate:"omitempty,semver_version"`
}

// MarkersConfig lists extra attribute names accepted for each marker
type MarkersConfig struct {
	Injected   []string `yaml:"injected,omitempty" env:"CTORGEN_MARKERS_INJECTED" env-separator:"," validate:"dive,required"`
	Excluded   []string `yaml:"excluded,omitempty" env:"CTORGEN_MARKERS_EXCLUDED" env-separator:"," validate:"dive,required"`
	Designated []string `yaml:"designated,omitempty" env:"CTORGEN_MARKERS_DESIGNATED" env-separator:"," validate:"dive,required"`
}

// LayoutConfig controls generated code formatting
type LayoutConfig struct {
	// Indent is a number of spaces or "tab"
	Indent  string `yaml:"indent" env:"CTORGEN_LAYOUT_INDENT" env-default:"4" validate:"indent"`
	Newline string `yaml:"newline" env:"CTORGEN_LAYOUT_NEWLINE" env-default:"auto" validate:"oneof=auto lf crlf"`
}

// ScanConfig controls which files the CLI visits
type ScanConfig struct {
	Extensions []string `yaml:"extensions" env:"CTORGEN_SCAN_EXTENSIONS" env-separator:"," env-default:".cs" validate:"min=1,dive,startswith=."`
	SkipDirs   []string `yaml:"skipDirs" env:"CTORGEN_SCAN_SKIP_DIRS" env-separator:"," env-default:"bin,obj,.git,.vs,node_modules"`
}

// ServerConfig configures the HTTP host
type ServerConfig struct {
	Addr             string        `yaml:"addr" env:"CTORGEN_SERVER_ADDR" env-default:":8080" validate:"required"`
	ReadTimeout      time.Duration `yaml:"readTimeout" env:"CTORGEN_SERVER_READ_TIMEOUT" env-default:"10s" validate:"gt=0"`
	WriteTimeout     time.Duration `yaml:"writeTimeout" env:"CTORGEN_SERVER_WRITE_TIMEOUT" env-default:"10s" validate:"gt=0"`
	ShutdownTimeout  time.Duration `yaml:"shutdownTimeout" env:"CTORGEN_SERVER_SHUTDOWN_TIMEOUT" env-default:"5s" validate:"gt=0"`
	MaxDocumentBytes int64         `yaml:"maxDocumentBytes" env:"CTORGEN_SERVER_MAX_DOCUMENT_BYTES" env-default:"1048576" validate:"min=1"`
}

// LogConfig configures structured logging of the HTTP host
type LogConfig struct {
	Level       string `yaml:"level" env:"CTORGEN_LOG_LEVEL" env-default:"info" validate:"oneof=debug info warn error"`
	Development bool   `yaml:"development" env:"CTORGEN_LOG_DEVELOPMENT"`
	File        string `yaml:"file,omitempty" env:"CTORGEN_LOG_FILE"`
	MaxSizeMB   int    `yaml:"maxSizeMB" env:"CTORGEN_LOG_MAX_SIZE_MB" env-default:"10" validate:"min=1"`
	MaxBackups  int    `yaml:"maxBackups" env:"CTORGEN_LOG_MAX_BACKUPS" env-default:"3" validate:"min=0"`
	MaxAgeDays  int    `yaml:"maxAgeDays" env:"CTORGEN_LOG_MAX_AGE_DAYS" env-default:"28" validate:"min=0"`
}

func init() {
	utils.MustRegisterValidation("semver_version", func(value string) bool {
		return semver.IsValid(canonicalVersion(value))
	})
	utils.MustRegisterValidation("indent", func(value string) bool {
		_, ok := indentUnit(value)
		return ok
	})
}

// Load reads the configuration. An empty path looks for DefaultFileName in the
// working directory and falls back to environment variables and defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		if _, err := os.Stat(DefaultFileName); err == nil {
			path = DefaultFileName
		}
	}

	var cfg Config
	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, errors.WrapConfigurationError(filepath.Base(path), "read", err).
				WithContext("path", path)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, errors.WrapConfigurationError("environment", "read", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration built from defaults and the environment only
func Default() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, errors.WrapConfigurationError("environment", "read", err)
	}
	return &cfg, nil
}

// Validate checks field constraints
func (c *Config) Validate() error {
	if err := utils.ValidateStruct(c); err != nil {
		return errors.WrapConfigurationError("config", "validate", err).
			WithHint("run with -print-config to see the effective configuration")
	}
	return nil
}

// CheckVersion fails when the configuration requires a newer tool
func (c *Config) CheckVersion(toolVersion string) error {
	if c.MinVersion == "" {
		return nil
	}
	tool := canonicalVersion(toolVersion)
	if !semver.IsValid(tool) {
		// development builds are not versioned
		return nil
	}
	if semver.Compare(tool, canonicalVersion(c.MinVersion)) < 0 {
		return errors.Newf(errors.ConfigurationErrorCode, "configuration requires ctorgen %s or newer, this is %s", c.MinVersion, toolVersion).
			WithContext("minVersion", c.MinVersion).
			WithHint("upgrade ctorgen or lower minVersion")
	}
	return nil
}

// LayoutOptions converts the layout section for the generator
func (c *Config) LayoutOptions() generator.LayoutOptions {
	unit, _ := indentUnit(c.Layout.Indent)
	opts := generator.LayoutOptions{IndentUnit: unit}
	switch c.Layout.Newline {
	case "lf":
		opts.Newline = "\n"
	case "crlf":
		opts.Newline = "\r\n"
	}
	return opts
}

// Resolver builds a marker resolver that also accepts the configured aliases
func (c *Config) Resolver() (*annotations.Resolver, error) {
	registry := annotations.NewBuiltinRegistry()
	aliases := map[annotations.Marker][]string{
		annotations.InjectedMarker:   c.Markers.Injected,
		annotations.ExcludedMarker:   c.Markers.Excluded,
		annotations.DesignatedMarker: c.Markers.Designated,
	}
	for _, marker := range []annotations.Marker{annotations.InjectedMarker, annotations.ExcludedMarker, annotations.DesignatedMarker} {
		for _, name := range aliases[marker] {
			if err := registry.AddAlias(marker, strings.TrimSpace(name)); err != nil {
				return nil, errors.WrapConfigurationError("markers", "register alias", err).
					WithContext("marker", marker.String()).
					WithContext("alias", name)
			}
		}
	}
	return annotations.NewResolver(registry), nil
}

// Dump writes the configuration as YAML
func (c *Config) Dump(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return errors.WrapConfigurationError("config", "encode", err)
	}
	return enc.Close()
}

func canonicalVersion(v string) string {
	v = strings.TrimSpace(v)
	if v != "" && !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}

func indentUnit(value string) (string, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return generator.DefaultIndentUnit, true
	}
	if strings.EqualFold(value, "tab") {
		return "\t", true
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 || n > 16 {
		return "", false
	}
	return strings.Repeat(" ", n), true
}
