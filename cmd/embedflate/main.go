// embedflate compresses files into a Go source file that inflates them lazily at run time.
//
// It is meant to run from a go:generate directive:
//
//	//go:generate go run github.com/arloliu/embedflate/cmd/embedflate Index:str=static/index.html Logo=static/logo.svg@zstd
//
// Each argument is a resource spec of the form Name[:bytes|:str]=path[@algorithm][?condition].
// Paths are relative to --dir, which defaults to the directory go generate runs in.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/arloliu/embedflate/codegen"
	"github.com/arloliu/embedflate/format"
)

var version = "dev"

func main() {
	if err := run(os.Args[1:], os.Getenv, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "embedflate: %v\n", err)

		var usage *usageError
		if errors.As(err, &usage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// usageError marks errors caused by the command line rather than by generation.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func usagef(msg string, args ...any) error {
	return &usageError{err: fmt.Errorf(msg, args...)}
}

type flags struct {
	output                string
	pkg                   string
	dir                   string
	config                string
	algorithms            []string
	defaultAlgorithm      string
	noCompressionWarnings bool
	runtimeImport         string
	check                 bool
	verbose               bool
	quiet                 bool
	version               bool
	help                  bool
}

func run(args []string, getenv func(string) string, stdout, stderr io.Writer) error {
	var f flags
	flagSet := newFlagSet(&f)

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(stdout, flagSet)
			return nil
		}
		return &usageError{err: err}
	}

	switch {
	case f.help:
		printHelp(stdout, flagSet)
		return nil
	case f.version:
		fmt.Fprintf(stdout, "embedflate %s\n", buildVersion())
		return nil
	}

	logger, err := newLogger(stderr, f.verbose, f.quiet)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(flagSet, &f)
	if err != nil {
		return err
	}

	resources, err := parseResources(flagSet.Args())
	if err != nil {
		return err
	}

	pkg := f.pkg
	if pkg == "" {
		pkg = getenv("GOPACKAGE")
	}
	if pkg == "" {
		return usagef("--package is required outside go generate")
	}

	output := f.output
	if output == "" {
		output = defaultOutput(getenv("GOFILE"))
	}
	if output == "" {
		return usagef("--output is required outside go generate")
	}

	gen, err := codegen.NewGenerator(
		codegen.WithConfig(cfg),
		codegen.WithBaseDir(f.dir),
		codegen.WithLogger(logger),
		codegen.WithRuntimeImport(f.runtimeImport),
	)
	if err != nil {
		return usagef("%w", err)
	}

	src, err := gen.Generate(pkg, resources)
	if err != nil {
		return err
	}

	if f.check {
		if err := codegen.CheckFile(output, src); err != nil {
			return err
		}
		logger.WithField("output", output).Debug("generated file is up to date")

		return nil
	}

	if err := codegen.WriteFile(output, src); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	logger.WithFields(logrus.Fields{
		"output":    output,
		"resources": len(resources),
	}).Info("generated embedded resources")

	return nil
}

func newFlagSet(f *flags) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet("embedflate", pflag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.StringVarP(&f.output, "output", "o", "", "output file (default: $GOFILE with a _flate.go suffix)")
	flagSet.StringVar(&f.pkg, "package", "", "package name of the generated file (default: $GOPACKAGE)")
	flagSet.StringVar(&f.dir, "dir", ".", "directory resource paths are relative to")
	flagSet.StringVar(&f.config, "config", "", "YAML configuration file")
	flagSet.StringSliceVar(&f.algorithms, "algorithms", nil, "enabled algorithms, comma separated (default: deflate,zstd)")
	flagSet.StringVar(&f.defaultAlgorithm, "default", "", "algorithm for resources that do not name one")
	flagSet.BoolVar(&f.noCompressionWarnings, "no-compression-warnings", false, "do not warn when compression increases size")
	flagSet.StringVar(&f.runtimeImport, "import", codegen.DefaultRuntimeImport, "import path of the runtime package")
	flagSet.BoolVar(&f.check, "check", false, "fail if the output file is out of date instead of writing it")
	flagSet.BoolVarP(&f.verbose, "verbose", "v", false, "verbose logging (debug level)")
	flagSet.BoolVarP(&f.quiet, "quiet", "q", false, "quiet logging (errors only)")
	flagSet.BoolVar(&f.version, "version", false, "print version and exit")
	flagSet.BoolVarP(&f.help, "help", "h", false, "show help")

	return flagSet
}

func newLogger(out io.Writer, verbose, quiet bool) (*logrus.Logger, error) {
	if verbose && quiet {
		return nil, usagef("-v and -q cannot be used together")
	}

	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logger.SetLevel(logrus.WarnLevel)

	switch {
	case verbose:
		logger.SetLevel(logrus.DebugLevel)
	case quiet:
		logger.SetLevel(logrus.ErrorLevel)
	}

	return logger, nil
}

// loadConfig layers the configuration file and then explicitly set flags over the defaults.
func loadConfig(flagSet *pflag.FlagSet, f *flags) (codegen.Config, error) {
	cfg := codegen.DefaultConfig()
	if f.config != "" {
		loaded, err := codegen.LoadConfig(f.config)
		if err != nil {
			return codegen.Config{}, usagef("%w", err)
		}
		cfg = loaded
	}

	if flagSet.Changed("algorithms") {
		cfg.Algorithms = make([]format.CompressionType, 0, len(f.algorithms))
		for _, name := range f.algorithms {
			if strings.TrimSpace(name) == "" {
				continue
			}
			algorithm, err := format.ParseCompressionType(name)
			if err != nil {
				return codegen.Config{}, usagef("--algorithms: %w", err)
			}
			if algorithm != format.CompressionNone && !slices.Contains(cfg.Algorithms, algorithm) {
				cfg.Algorithms = append(cfg.Algorithms, algorithm)
			}
		}
	}

	if flagSet.Changed("default") {
		algorithm, err := format.ParseCompressionType(f.defaultAlgorithm)
		if err != nil {
			return codegen.Config{}, usagef("--default: %w", err)
		}
		cfg.Default = algorithm
	}

	if flagSet.Changed("no-compression-warnings") {
		cfg.NoCompressionWarnings = f.noCompressionWarnings
	}

	if err := cfg.Validate(); err != nil {
		return codegen.Config{}, usagef("%w", err)
	}

	return cfg, nil
}

func parseResources(specs []string) ([]codegen.Resource, error) {
	if len(specs) == 0 {
		return nil, usagef("%w: pass at least one Name=path resource", codegen.ErrNoResources)
	}

	resources := make([]codegen.Resource, 0, len(specs))
	for _, spec := range specs {
		res, err := codegen.ParseResource(spec)
		if err != nil {
			return nil, usagef("%w", err)
		}
		resources = append(resources, res)
	}

	return resources, nil
}

// defaultOutput derives the output file from the go:generate source file, e.g. assets.go
// becomes assets_flate.go.
func defaultOutput(gofile string) string {
	if gofile == "" {
		return ""
	}

	return strings.TrimSuffix(gofile, filepath.Ext(gofile)) + "_flate.go"
}

func buildVersion() string {
	if version != "dev" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	return version
}

func printHelp(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, `embedflate compresses files into Go source that inflates them on first use.

Usage:
  embedflate [flags] RESOURCE...

Resources:
  Name[:bytes|:str]=path[@algorithm][?condition]

  algorithm  none, deflate or zstd (default: configured default)
  condition  always, less_than_original or ratio>N (default: always)

Example:
  //go:generate go run github.com/arloliu/embedflate/cmd/embedflate Index:str=static/index.html Logo=logo.png@none

Flags:
%s`, flagSet.FlagUsages())
}
