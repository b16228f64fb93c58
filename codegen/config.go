package codegen

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/embedflate/format"
)

// Config selects which algorithms the generator may use.
//
// The zero Default means "pick one": deflate when enabled, else zstd, else none. None is always
// selectable and does not need to be listed in Algorithms.
type Config struct {
	// Algorithms is the enabled algorithm set.
	Algorithms []format.CompressionType `yaml:"algorithms"`

	// Default is used for resources that do not name an algorithm.
	Default format.CompressionType `yaml:"default,omitempty"`

	// NoCompressionWarnings suppresses the warning emitted when compression does not shrink a
	// resource.
	NoCompressionWarnings bool `yaml:"no_compression_warnings"`
}

// DefaultConfig returns a configuration with deflate and zstd enabled.
func DefaultConfig() Config {
	return Config{
		Algorithms: []format.CompressionType{format.CompressionDeflate, format.CompressionZstd},
	}
}

// LoadConfig reads a YAML configuration file. Keys missing from the file keep their
// DefaultConfig values and unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	return ParseConfig(data)
}

// ParseConfig decodes YAML configuration on top of DefaultConfig.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks that every listed algorithm is known and that the default is enabled.
func (c Config) Validate() error {
	for _, algorithm := range c.Algorithms {
		if !algorithm.IsValid() {
			return fmt.Errorf("%w: unknown algorithm %d", ErrInvalidConfig, uint8(algorithm))
		}
	}

	if c.Default == 0 {
		return nil
	}
	if !c.Default.IsValid() {
		return fmt.Errorf("%w: unknown default algorithm %d", ErrInvalidConfig, uint8(c.Default))
	}
	if !c.Enabled(c.Default) {
		return fmt.Errorf("%w: default %s: %w", ErrInvalidConfig, c.Default.Name(), ErrAlgorithmDisabled)
	}

	return nil
}

// Enabled reports whether algorithm may be selected.
func (c Config) Enabled(algorithm format.CompressionType) bool {
	if algorithm == format.CompressionNone {
		return true
	}

	return slices.Contains(c.Algorithms, algorithm)
}

// DefaultAlgorithm returns the algorithm used for resources that do not name one.
func (c Config) DefaultAlgorithm() format.CompressionType {
	switch {
	case c.Default != 0:
		return c.Default
	case c.Enabled(format.CompressionDeflate):
		return format.CompressionDeflate
	case c.Enabled(format.CompressionZstd):
		return format.CompressionZstd
	default:
		return format.CompressionNone
	}
}
