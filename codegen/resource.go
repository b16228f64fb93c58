package codegen

import (
	"fmt"
	"go/token"
	"strings"

	"github.com/arloliu/embedflate/format"
)

// Resource describes one file to embed.
type Resource struct {
	// Name is the Go identifier of the generated variable.
	Name string

	// Type selects the accessor: []byte or string. The zero value means bytes.
	Type format.ValueType

	// Path is relative to the generator's base directory, using forward slashes.
	Path string

	// Algorithm overrides the configured default when non-zero.
	Algorithm format.CompressionType

	// Condition decides whether the compressed form is kept.
	Condition Condition
}

// ParseResource parses a resource spec of the form
//
//	Name[:bytes|:str]=path[@algorithm][?condition]
//
// for example "Index:str=static/index.html@zstd?less_than_original".
func ParseResource(spec string) (Resource, error) {
	declaration, source, ok := strings.Cut(spec, "=")
	if !ok {
		return Resource{}, fmt.Errorf("%w %q: expected Name=path", ErrInvalidResource, spec)
	}

	res := Resource{Type: format.TypeBytes}

	name, typeName, typed := strings.Cut(declaration, ":")
	res.Name = strings.TrimSpace(name)
	if typed {
		valueType, err := format.ParseValueType(typeName)
		if err != nil {
			return Resource{}, fmt.Errorf("%w %q: %w", ErrInvalidResource, spec, err)
		}
		res.Type = valueType
	}

	if idx := strings.LastIndexByte(source, '?'); idx >= 0 {
		condition, err := ParseCondition(source[idx+1:])
		if err != nil {
			return Resource{}, fmt.Errorf("resource %q: %w", spec, err)
		}
		res.Condition = condition
		source = source[:idx]
	}

	if idx := strings.LastIndexByte(source, '@'); idx >= 0 {
		algorithm, err := format.ParseCompressionType(source[idx+1:])
		if err != nil {
			return Resource{}, fmt.Errorf("%w %q: %w", ErrInvalidResource, spec, err)
		}
		res.Algorithm = algorithm
		source = source[:idx]
	}

	res.Path = strings.TrimSpace(source)

	if err := res.Validate(); err != nil {
		return Resource{}, err
	}

	return res, nil
}

// Validate checks the name, type and path of the resource. It does not touch the file system.
func (r Resource) Validate() error {
	if !token.IsIdentifier(r.Name) || r.Name == "_" {
		return fmt.Errorf("%w: name %q is not a Go identifier", ErrInvalidResource, r.Name)
	}
	if r.Type != 0 && r.Type != format.TypeBytes && r.Type != format.TypeText {
		return fmt.Errorf("%w: %s has unknown value type %d", ErrInvalidResource, r.Name, uint8(r.Type))
	}
	if r.Algorithm != 0 && !r.Algorithm.IsValid() {
		return fmt.Errorf("%w: %s has unknown algorithm %d", ErrInvalidResource, r.Name, uint8(r.Algorithm))
	}
	if r.Path == "" {
		return fmt.Errorf("%w: %s has an empty path", ErrInvalidResource, r.Name)
	}

	return nil
}

// IsText reports whether the resource is exposed as a string.
func (r Resource) IsText() bool {
	return r.Type == format.TypeText
}

// String renders the resource back into spec form.
func (r Resource) String() string {
	var sb strings.Builder
	sb.WriteString(r.Name)
	if r.IsText() {
		sb.WriteString(":str")
	}
	sb.WriteByte('=')
	sb.WriteString(r.Path)
	if r.Algorithm != 0 {
		sb.WriteByte('@')
		sb.WriteString(r.Algorithm.Name())
	}
	if r.Condition.Kind != ConditionAlways {
		sb.WriteByte('?')
		sb.WriteString(r.Condition.String())
	}

	return sb.String()
}
