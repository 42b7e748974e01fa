package convertly

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/viant/convertly/descriptor"
)

// registration is one contributed conversion rule. Immutable once
// created; newer registrations outrank older ones on specificity ties.
type registration struct {
	pairs     []ConvertiblePair
	converter Converter
	factory   ConverterFactory
	generic   GenericConverter
	condition ConditionalConverter
}

// match returns the best (source distance, target distance) among the
// registration's declared pairs for the given concrete descriptors,
// source-major, and whether any pair applies.
func (r *registration) match(source, target *descriptor.Type) (int, int, bool) {
	bestSrc, bestTgt := -1, -1
	matched := false
	for _, pair := range r.pairs {
		srcDist, ok := source.Distance(pair.Source)
		if !ok {
			continue
		}
		tgtDist, ok := target.Distance(pair.Target)
		if !ok {
			continue
		}
		if !matched || srcDist < bestSrc || (srcDist == bestSrc && tgtDist < bestTgt) {
			bestSrc, bestTgt = srcDist, tgtDist
			matched = true
		}
	}
	return bestSrc, bestTgt, matched
}

// conversion binds the registration's implementation to a resolved pair.
func (r *registration) conversion() conversion {
	switch {
	case r.converter != nil:
		return func(value interface{}, source, target *descriptor.Type) (interface{}, error) {
			return r.converter.Convert(value)
		}
	case r.factory != nil:
		return func(value interface{}, source, target *descriptor.Type) (interface{}, error) {
			converter := r.factory.ConverterFor(target)
			if converter == nil {
				return nil, fmt.Errorf("converter factory produced no converter for %s", target)
			}
			return converter.Convert(value)
		}
	default:
		return r.generic.ConvertValue
	}
}

// snapshot is an immutable view of the registry published atomically on
// every mutation. The generation ties resolution cache entries to the
// registry state they were computed against.
type snapshot struct {
	registrations []*registration
	generation    uint64
}

// registry stores conversion capabilities. Mutations are serialized by
// a mutex and publish a fresh copy-on-write snapshot; readers are
// lock-free on the current snapshot.
type registry struct {
	mux      sync.Mutex
	current  atomic.Pointer[snapshot]
	onMutate func()
}

func newRegistry(onMutate func()) *registry {
	r := &registry{onMutate: onMutate}
	r.current.Store(&snapshot{})
	return r
}

func (r *registry) load() *snapshot {
	return r.current.Load()
}

func (r *registry) publish(registrations []*registration) {
	prev := r.current.Load()
	r.current.Store(&snapshot{registrations: registrations, generation: prev.generation + 1})
	if r.onMutate != nil {
		r.onMutate()
	}
}

func (r *registry) add(reg *registration) {
	r.mux.Lock()
	defer r.mux.Unlock()
	prev := r.load().registrations
	next := make([]*registration, len(prev), len(prev)+1)
	copy(next, prev)
	r.publish(append(next, reg))
}

// addConverter registers a direct converter for an exact (source, target) pair.
func (r *registry) addConverter(source, target reflect.Type, converter Converter) error {
	if source == nil || target == nil {
		return errors.New("source and target types were nil")
	}
	if converter == nil {
		return errors.New("converter was nil")
	}
	reg := &registration{
		pairs:     []ConvertiblePair{{Source: source, Target: target}},
		converter: converter,
	}
	if condition, ok := converter.(ConditionalConverter); ok {
		reg.condition = condition
	}
	r.add(reg)
	return nil
}

// addConverterFactory registers a factory producing converters for any
// target within the targetBase family, parameterized at resolution time
// by the concrete requested target.
func (r *registry) addConverterFactory(source, targetBase reflect.Type, factory ConverterFactory) error {
	if source == nil || targetBase == nil {
		return errors.New("source and target types were nil")
	}
	if factory == nil {
		return errors.New("converter factory was nil")
	}
	reg := &registration{
		pairs:   []ConvertiblePair{{Source: source, Target: targetBase}},
		factory: factory,
	}
	if condition, ok := factory.(ConditionalConverter); ok {
		reg.condition = condition
	}
	r.add(reg)
	return nil
}

// addGenericConverter registers a converter declaring a set of
// (source, target) pairs.
func (r *registry) addGenericConverter(generic GenericConverter) error {
	if generic == nil {
		return errors.New("generic converter was nil")
	}
	pairs := generic.Pairs()
	if len(pairs) == 0 {
		return errors.New("generic converter declared no convertible pairs")
	}
	reg := &registration{pairs: pairs, generic: generic}
	if condition, ok := generic.(ConditionalConverter); ok {
		reg.condition = condition
	}
	r.add(reg)
	return nil
}

// removeConvertible removes every registration whose declared match
// covers the exact (source, target) pair.
func (r *registry) removeConvertible(source, target reflect.Type) error {
	if source == nil || target == nil {
		return errors.New("source and target types were nil")
	}
	sourceDesc := descriptor.ForType(source)
	targetDesc := descriptor.ForType(target)
	r.mux.Lock()
	defer r.mux.Unlock()
	prev := r.load().registrations
	next := make([]*registration, 0, len(prev))
	for _, reg := range prev {
		if _, _, ok := reg.match(sourceDesc, targetDesc); ok {
			continue
		}
		next = append(next, reg)
	}
	r.publish(next)
	return nil
}
