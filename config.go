package meshboundary

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Mode selects which surviving faces and edges the filter emits.
type Mode string

const (
	// ModeBoundary emits the external boundary plus every face shared by
	// cells with different subset values.
	ModeBoundary Mode = "boundary"
	// ModeSubset emits only faces shared by cells with different subset
	// values. A mesh with a single subset value falls back to ModeBoundary.
	ModeSubset Mode = "subset"
)

type Config struct {
	SubsetArray   string `yaml:"subsetArray"`
	Mode          Mode   `yaml:"mode"`
	PoolBlockSize int    `yaml:"poolBlockSize"`
	// MaxFreeRecords caps each pool's free list. 0 disables recycling.
	MaxFreeRecords   int    `yaml:"maxFreeRecords"`
	PassSurfaceCells bool   `yaml:"passSurfaceCells"`
	LogLevel         string `yaml:"logLevel"`

	Logger *logrus.Logger `yaml:"-"`
}

func DefaultConfig() Config {
	return Config{
		SubsetArray:    DefaultSubsetArray,
		Mode:           ModeBoundary,
		PoolBlockSize:  DefaultPoolBlockSize,
		MaxFreeRecords: DefaultMaxFreeRecords,
		LogLevel:       "info",
	}
}

// LoadConfig reads a YAML config file. Missing fields take their defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("could not read config %s: %w", path, err)
	}
	cfg, err := ParseConfig(bytes.NewReader(data))
	if err != nil {
		return Config{}, fmt.Errorf("error parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes YAML over DefaultConfig, so fields the document leaves
// out keep their defaults and fields it sets, zeros included, are kept.
func ParseConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, fmt.Errorf("error decoding config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.SubsetArray == "" {
		c.SubsetArray = DefaultSubsetArray
	}
	if c.Mode == "" {
		c.Mode = ModeBoundary
	}
	if c.PoolBlockSize == 0 {
		c.PoolBlockSize = DefaultPoolBlockSize
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

func (c Config) Validate() error {
	switch c.Mode {
	case ModeBoundary, ModeSubset:
	default:
		return fmt.Errorf("unknown mode %q", c.Mode)
	}
	if c.PoolBlockSize < 1 {
		return fmt.Errorf("poolBlockSize must be positive, got %d", c.PoolBlockSize)
	}
	if c.MaxFreeRecords < 0 {
		return fmt.Errorf("maxFreeRecords must not be negative, got %d", c.MaxFreeRecords)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid logLevel: %w", err)
	}
	return nil
}

func (c Config) poolOptions() PoolOptions {
	return PoolOptions{BlockSize: c.PoolBlockSize, MaxFree: c.MaxFreeRecords}
}

// logger returns the configured logger, creating one at LogLevel if none was set.
func (c Config) logger() *logrus.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	log := logrus.New()
	if level, err := logrus.ParseLevel(c.LogLevel); err == nil {
		log.SetLevel(level)
	}
	return log
}
