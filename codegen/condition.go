package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arloliu/embedflate/compress"
)

// ConditionKind identifies a rule for keeping compressed output.
type ConditionKind uint8

const (
	// ConditionAlways keeps the compressed form unconditionally.
	ConditionAlways ConditionKind = iota
	// ConditionLessThanOriginal keeps it only when it is smaller than the raw input.
	ConditionLessThanOriginal
	// ConditionRatioMoreThan keeps it only when space savings exceed a percentage.
	ConditionRatioMoreThan
)

// Condition decides whether a resource is stored compressed or raw.
// The zero value is Always.
type Condition struct {
	Kind ConditionKind

	// Percent is the savings threshold of ConditionRatioMoreThan, in percent.
	Percent float64
}

// Always returns the condition that always keeps the compressed form.
func Always() Condition {
	return Condition{Kind: ConditionAlways}
}

// LessThanOriginal returns the condition that keeps compressed output only when it shrinks.
func LessThanOriginal() Condition {
	return Condition{Kind: ConditionLessThanOriginal}
}

// RatioMoreThan returns the condition that keeps compressed output only when it saves more
// than percent of the raw size.
func RatioMoreThan(percent float64) Condition {
	return Condition{Kind: ConditionRatioMoreThan, Percent: percent}
}

// ParseCondition parses "always", "less_than_original" or "ratio>N" (N may carry a trailing %).
func ParseCondition(s string) (Condition, error) {
	s = strings.TrimSpace(s)

	switch s {
	case "", "always":
		return Always(), nil
	case "less_than_original":
		return LessThanOriginal(), nil
	}

	threshold, ok := strings.CutPrefix(s, "ratio>")
	if !ok {
		return Condition{}, fmt.Errorf("%w: unknown condition %q", ErrInvalidResource, s)
	}

	percent, err := strconv.ParseFloat(strings.TrimSuffix(threshold, "%"), 64)
	if err != nil || percent < 0 || percent >= 100 {
		return Condition{}, fmt.Errorf("%w: ratio threshold %q must be a percentage in [0, 100)", ErrInvalidResource, threshold)
	}

	return RatioMoreThan(percent), nil
}

// Holds reports whether the compressed form described by stats should be kept.
func (c Condition) Holds(stats compress.CompressionStats) bool {
	switch c.Kind {
	case ConditionLessThanOriginal:
		return stats.CompressedSize < stats.OriginalSize
	case ConditionRatioMoreThan:
		return stats.OriginalSize > 0 && stats.SpaceSavings() > c.Percent
	default:
		return true
	}
}

func (c Condition) String() string {
	switch c.Kind {
	case ConditionLessThanOriginal:
		return "less_than_original"
	case ConditionRatioMoreThan:
		return "ratio>" + strconv.FormatFloat(c.Percent, 'f', -1, 64)
	default:
		return "always"
	}
}
