package valuetype

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// Tag identifies a value type. It is comparable and used as a map key.
type Tag string

const (
	TagInteger Tag = "INTEGER"
	TagNumber  Tag = "NUMBER"
	TagString  Tag = "STRING"
	TagBoolean Tag = "BOOLEAN"
)

// Descriptor is the non-generic view of a value type.
type Descriptor interface {
	// Tag is the registry key and the name used in rule files.
	Tag() Tag
	// Name is the human-readable name used in diagnostics, e.g. "Integer".
	Name() string
	// Type is the cty type formulas of this format must convert to.
	Type() cty.Type
}

// Format is a Descriptor that can move values between cty and Go.
type Format[T any] interface {
	Descriptor
	// Zero is the value a variable of this format starts from.
	Zero() T
	// FromValue converts a formula result into a Go value.
	FromValue(v cty.Value) (T, error)
	// ToValue converts a Go value back into a cty value for evaluation.
	ToValue(v T) cty.Value
}

// ConversionError reports a formula result that does not fit a format.
type ConversionError struct {
	Format string
	Value  string
	Err    error
}

func (e *ConversionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot convert %s to %s: %v", e.Value, e.Format, e.Err)
	}
	return fmt.Sprintf("cannot convert %s to %s", e.Value, e.Format)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

var builtins = map[Tag]Descriptor{
	TagInteger: Integer,
	TagNumber:  Number,
	TagString:  String,
	TagBoolean: Boolean,
}

// Lookup finds a built-in format by its tag. Matching is case-insensitive so
// rule files may write "number" or "NUMBER".
func Lookup(name string) (Descriptor, bool) {
	d, ok := builtins[Tag(strings.ToUpper(strings.TrimSpace(name)))]
	return d, ok
}

// Tags returns the tags of all built-in formats in sorted order.
func Tags() []Tag {
	tags := make([]Tag, 0, len(builtins))
	for t := range builtins {
		tags = append(tags, t)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}

func describe(v cty.Value) string {
	switch {
	case v.IsNull():
		return "null"
	case !v.IsKnown():
		return "unknown value"
	default:
		return v.Type().FriendlyName()
	}
}
