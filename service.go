package convertly

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/jellydator/ttlcache/v3"
	"github.com/viant/convertly/descriptor"
)

// Service is the conversion facade: it owns the converter registry and
// the resolution cache, classifies values into type descriptors and
// applies the single best-matching conversion rule. A Service is safe
// for unbounded concurrent callers; registration is expected to happen
// predominantly at startup but remains safe at any time.
type Service struct {
	options    options
	registry   *registry
	cache      *ttlcache.Cache[pairKey, cacheEntry]
	structural []builtinConverter
	fallback   []builtinConverter
}

// New creates a Service with the structural and fallback tiers only.
// Use NewDefault for a service preloaded with scalar converters.
func New(opts ...Option) *Service {
	s := &Service{options: defaultOptions()}
	for _, opt := range opts {
		opt(&s.options)
	}
	s.cache = ttlcache.New[pairKey, cacheEntry]()
	s.registry = newRegistry(s.cache.DeleteAll)
	s.structural = []builtinConverter{
		&collectionConverter{service: s},
		&mapConverter{service: s},
		&structToMapConverter{service: s},
		&textConverter{service: s},
		&seqConverter{service: s},
		&autoboxConverter{service: s},
	}
	// Pointer handling precedes the text fallback so a pointer source
	// unwraps rather than formatting as a pointer.
	s.fallback = []builtinConverter{
		&objectConverter{service: s},
		&pointerConverter{service: s},
		&stringerConverter{},
	}
	return s
}

// NewDefault creates a Service preloaded with converters appropriate
// for most environments: number to number, string to number, bool,
// time, duration, UUID and byte-slice conversions.
func NewDefault(opts ...Option) *Service {
	s := New(opts...)
	s.registerDefaults()
	return s
}

// AddConverter registers a direct converter for an exact
// (source, target) pair. Registering another converter for the same
// pair supersedes the earlier one.
func (s *Service) AddConverter(source, target reflect.Type, converter Converter) error {
	return s.registry.addConverter(source, target, converter)
}

// AddConverterFactory registers a converter factory producing
// converters for any target within the targetBase family.
func (s *Service) AddConverterFactory(source, targetBase reflect.Type, factory ConverterFactory) error {
	return s.registry.addConverterFactory(source, targetBase, factory)
}

// AddGenericConverter registers a converter declaring a set of
// (source, target) pairs.
func (s *Service) AddGenericConverter(generic GenericConverter) error {
	return s.registry.addGenericConverter(generic)
}

// RemoveConvertible removes every registration whose declared match
// covers the exact (source, target) pair and invalidates the
// resolution cache.
func (s *Service) RemoveConvertible(source, target reflect.Type) error {
	return s.registry.removeConvertible(source, target)
}

// RegisterConverter registers fn as a direct converter from S to T.
func RegisterConverter[S, T any](s *Service, fn func(S) (T, error)) error {
	sourceType := reflect.TypeOf((*S)(nil)).Elem()
	targetType := reflect.TypeOf((*T)(nil)).Elem()
	return s.AddConverter(sourceType, targetType, ConverterFunc(func(source interface{}) (interface{}, error) {
		typed, ok := source.(S)
		if !ok {
			return nil, fmt.Errorf("expected %s, got %T", sourceType, source)
		}
		return fn(typed)
	}))
}

// CanConvert reports whether a value of the source shape can be
// converted to the target shape. It performs resolution only and has
// no side effects beyond cache population.
func (s *Service) CanConvert(source, target *descriptor.Type) bool {
	if source == nil || target == nil {
		return false
	}
	if source.Equal(target) {
		return true
	}
	return s.resolve(source, target) != nil
}

// Convert converts value to the target shape. A nil value converts to
// the target's zero value without consulting any converter.
func (s *Service) Convert(value interface{}, target *descriptor.Type) (interface{}, error) {
	if target == nil {
		return nil, errors.New("target type was nil")
	}
	if value == nil {
		return target.Zero(), nil
	}
	return s.convert(value, descriptor.TypeOf(value), target)
}

// ConvertTo converts value into the value pointed to by dest.
func (s *Service) ConvertTo(value, dest interface{}) error {
	if dest == nil {
		return errors.New("destination was nil")
	}
	destValue := reflect.ValueOf(dest)
	if destValue.Kind() != reflect.Ptr || destValue.IsNil() {
		return errors.New("destination must be a non-nil pointer")
	}
	result, err := s.Convert(value, descriptor.ForType(destValue.Elem().Type()))
	if err != nil {
		return err
	}
	if result == nil {
		destValue.Elem().Set(reflect.Zero(destValue.Elem().Type()))
		return nil
	}
	destValue.Elem().Set(reflect.ValueOf(result))
	return nil
}

func (s *Service) convert(value interface{}, source, target *descriptor.Type) (interface{}, error) {
	// Identity fast path: containers are excluded so a fresh container
	// is always produced for them.
	if source.Equal(target) && !source.IsContainer() {
		return value, nil
	}
	fn := s.resolve(source, target)
	if fn == nil {
		return nil, &NoConverterError{Source: source, Target: target}
	}
	result, err := fn(value, source, target)
	if err != nil {
		var conversionErr *ConversionError
		if errors.As(err, &conversionErr) {
			return nil, err
		}
		return nil, &ConversionError{Value: value, Source: source, Target: target, Err: err}
	}
	if result != nil && !target.IsUntyped() {
		resultType := reflect.TypeOf(result)
		switch {
		case resultType.AssignableTo(target.ReflectType()):
		case nativeConvertible(resultType, target.ReflectType()):
			// A rule resolved through hierarchy matching may produce the
			// base type of a named target.
			result = reflect.ValueOf(result).Convert(target.ReflectType()).Interface()
		default:
			err := fmt.Errorf("converter returned %s, expected %s", resultType, target)
			return nil, &ConversionError{Value: value, Source: source, Target: target, Err: err}
		}
	}
	return result, nil
}

// convertElement converts one container element to the declared target
// element shape, returning the value ready to populate the container.
func (s *Service) convertElement(element interface{}, target *descriptor.Type) (reflect.Value, error) {
	if element == nil {
		return reflect.Zero(target.ReflectType()), nil
	}
	converted, err := s.convert(element, descriptor.TypeOf(element), target)
	if err != nil {
		return reflect.Value{}, err
	}
	if converted == nil {
		return reflect.Zero(target.ReflectType()), nil
	}
	return reflect.ValueOf(converted), nil
}
