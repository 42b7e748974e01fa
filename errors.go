package convertly

import (
	"fmt"

	"github.com/viant/convertly/descriptor"
)

// NoConverterError reports that no explicit, structural or fallback
// rule applies to the requested (source, target) pair. The outcome is
// negatively cached until the registry is next mutated.
type NoConverterError struct {
	Source *descriptor.Type
	Target *descriptor.Type
}

// Error implements error.
func (e *NoConverterError) Error() string {
	return fmt.Sprintf("no converter found capable of converting from %s to %s", e.Source, e.Target)
}

// ConversionError reports that a matched converter could not produce a
// result for a specific value. It carries the attempted pair and wraps
// the original cause.
type ConversionError struct {
	Value  interface{}
	Source *descriptor.Type
	Target *descriptor.Type
	Err    error
}

// Error implements error.
func (e *ConversionError) Error() string {
	return fmt.Sprintf("failed to convert value %v from %s to %s: %v", e.Value, e.Source, e.Target, e.Err)
}

// Unwrap returns the original cause.
func (e *ConversionError) Unwrap() error {
	return e.Err
}
