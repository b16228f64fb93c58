package codegen

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/arloliu/embedflate/internal/options"
)

// Option configures a Generator.
type Option = options.Option[*Generator]

// WithConfig sets the algorithm configuration. The configuration is validated.
func WithConfig(cfg Config) Option {
	return options.New(func(g *Generator) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		g.config = cfg

		return nil
	})
}

// WithBaseDir sets the directory resource paths are resolved against.
// Default is the current working directory.
func WithBaseDir(dir string) Option {
	return options.New(func(g *Generator) error {
		if dir == "" {
			return errors.New("base directory cannot be empty")
		}
		g.baseDir = dir

		return nil
	})
}

// WithLogger sets the logger used for diagnostics. By default nothing is logged.
func WithLogger(logger logrus.FieldLogger) Option {
	return options.NoError(func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	})
}

// WithRuntimeImport sets the import path of the runtime package referenced by generated code.
// Default is DefaultRuntimeImport.
func WithRuntimeImport(path string) Option {
	return options.New(func(g *Generator) error {
		if path == "" {
			return fmt.Errorf("%w: empty runtime import path", ErrInvalidConfig)
		}
		g.runtimeImport = path

		return nil
	})
}
