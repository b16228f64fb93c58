package codegen

import "errors"

var (
	// ErrAbsolutePath is returned for resources whose path is absolute.
	ErrAbsolutePath = errors.New("absolute paths are not supported")

	// ErrAlgorithmDisabled is returned when a resource selects an algorithm that is not enabled.
	ErrAlgorithmDisabled = errors.New("compression algorithm is not enabled")

	// ErrInvalidUTF8 is returned when a text resource is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("file is not valid UTF-8")

	// ErrInvalidResource is returned for malformed resource specs.
	ErrInvalidResource = errors.New("invalid resource")

	// ErrDuplicateName is returned when two resources would declare the same identifier.
	ErrDuplicateName = errors.New("duplicate resource name")

	// ErrNoResources is returned when there is nothing to generate.
	ErrNoResources = errors.New("no resources to embed")

	// ErrInvalidPackage is returned when the target package name is not a Go identifier.
	ErrInvalidPackage = errors.New("invalid package name")

	// ErrInvalidConfig is returned for configuration that fails validation.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrStale is returned by CheckFile when the file on disk differs from the generated source.
	ErrStale = errors.New("generated file is out of date")
)
