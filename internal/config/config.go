package config

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/passgate/internal/session"
)

// Defaults applied when neither the file, the environment nor a flag sets a value.
const (
	DefaultBcryptCost = bcrypt.DefaultCost
	DefaultLogLevel   = "info"
)

//go:embed schema.json
var schemaJSON []byte

// Config holds the runtime settings of passgate.
type Config struct {
	// DBPath is the SQLite file. Empty means store.DefaultDBPath.
	DBPath string `yaml:"db_path"`

	// LogPath is the log file. Empty means logging.DefaultPath.
	LogPath string `yaml:"log_path"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	BcryptCost int `yaml:"bcrypt_cost"`

	// SessionLifetime is the idle time after which a login expires.
	SessionLifetime time.Duration `yaml:"session_lifetime"`

	// MeterColors turns on the colored strength bar under the meter label.
	MeterColors bool `yaml:"meter_colors"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		LogLevel:        DefaultLogLevel,
		BcryptCost:      DefaultBcryptCost,
		SessionLifetime: session.DefaultLifetime,
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/passgate/config.yaml, falling back
// to ~/.config/passgate/config.yaml.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("get home dir: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "passgate", "config.yaml"), nil
}

// Load builds the effective configuration: defaults, then the file at path,
// then PASSGATE_* environment variables. An empty path means DefaultPath,
// which may be absent; an explicit path must exist.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Config{}, err
		}
		path = p
	}

	cfg, err := LoadFile(path)
	if err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return Config{}, err
		}
		cfg = DefaultConfig()
	}

	if err := cfg.ApplyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile reads the YAML file at path, checks it against the config
// schema and overlays it on DefaultConfig.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read file: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (Config, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Config{}, fmt.Errorf("config: parse yaml: %w", err)
	}
	if doc == nil {
		return DefaultConfig(), nil
	}
	if err := validateDocument(doc); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	return cfg, nil
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// validateDocument checks a decoded YAML document against schema.json.
// The document takes a JSON round trip so that the validator sees plain
// JSON values.
func validateDocument(doc any) error {
	compileOnce.Do(func() {
		var def any
		if err := json.Unmarshal(schemaJSON, &def); err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://config.json", def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile("schema://config.json")
	})
	if compileErr != nil {
		return compileErr
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("parse document: %w", err)
	}
	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// ApplyEnv overrides fields from PASSGATE_* environment variables.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("PASSGATE_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("PASSGATE_LOG"); v != "" {
		c.LogPath = v
	}
	if v := os.Getenv("PASSGATE_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("PASSGATE_BCRYPT_COST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PASSGATE_BCRYPT_COST: %w", err)
		}
		c.BcryptCost = n
	}
	if v := os.Getenv("PASSGATE_SESSION_LIFETIME"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("PASSGATE_SESSION_LIFETIME: %w", err)
		}
		c.SessionLifetime = d
	}
	if v := os.Getenv("PASSGATE_METER_COLORS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("PASSGATE_METER_COLORS: %w", err)
		}
		c.MeterColors = b
	}
	return nil
}

// Validate checks value ranges after all sources are merged.
func (c Config) Validate() error {
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("bcrypt cost %d must be in [%d, %d]", c.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	if c.SessionLifetime <= 0 {
		return fmt.Errorf("session lifetime must be positive, got %s", c.SessionLifetime)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level returns LogLevel as a slog level.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	return l, nil
}
