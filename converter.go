package convertly

import (
	"reflect"

	"github.com/viant/convertly/descriptor"
)

// Converter transforms a value of one concrete shape into another.
// A converter is a pure function of its input and must be safe for
// concurrent use.
type Converter interface {
	Convert(source interface{}) (interface{}, error)
}

// ConverterFunc adapts a plain function to the Converter interface.
type ConverterFunc func(source interface{}) (interface{}, error)

// Convert implements Converter.
func (f ConverterFunc) Convert(source interface{}) (interface{}, error) {
	return f(source)
}

// ConverterFactory produces a converter parameterized by the concrete
// requested target shape, covering a whole family of target types with
// a single registration.
type ConverterFactory interface {
	ConverterFor(target *descriptor.Type) Converter
}

// ConverterFactoryFunc adapts a plain function to ConverterFactory.
type ConverterFactoryFunc func(target *descriptor.Type) Converter

// ConverterFor implements ConverterFactory.
func (f ConverterFactoryFunc) ConverterFor(target *descriptor.Type) Converter {
	return f(target)
}

// ConditionalConverter narrows the applicability of a converter,
// factory or generic converter with a runtime predicate. Matches is
// consulted on every resolution and must be cheap and side-effect free.
type ConditionalConverter interface {
	Matches(source, target *descriptor.Type) bool
}

// ConvertiblePair declares one (source, target) capability of a
// registration. Either side may be descriptor.AnyType, a wildcard
// accepting any type.
type ConvertiblePair struct {
	Source reflect.Type
	Target reflect.Type
}

// GenericConverter declares applicability over a set of convertible
// pairs rather than one exact pair and receives the live source and
// target descriptors on invocation.
type GenericConverter interface {
	Pairs() []ConvertiblePair
	ConvertValue(value interface{}, source, target *descriptor.Type) (interface{}, error)
}

// conversion is a resolved converter handle bound at invocation time
// to the pair it was resolved for.
type conversion func(value interface{}, source, target *descriptor.Type) (interface{}, error)

// builtinConverter is the contract of the structural and fallback
// tiers: shape-predicated rules consulted in fixed order when no
// explicit registration applies.
type builtinConverter interface {
	Matches(source, target *descriptor.Type) bool
	ConvertValue(value interface{}, source, target *descriptor.Type) (interface{}, error)
}
