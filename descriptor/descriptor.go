// Package descriptor reifies the shape of a runtime value: its kind
// (scalar, array, slice, set, map, pointer, object), nested element,
// key and value shapes for containers, and the nominal type identity
// used for hierarchy matching. Descriptors are immutable value objects
// and may be freely shared between goroutines.
package descriptor

import (
	"reflect"
)

// Kind classifies the top-level shape of a value.
type Kind int

const (
	// Scalar covers booleans, numbers, strings and other leaf values.
	Scalar Kind = iota
	// Array is a fixed-length ordered sequence.
	Array
	// Slice is a variable-length ordered sequence.
	Slice
	// Set is a map[T]struct{} used as an unordered collection.
	Set
	// Map is a key/value mapping.
	Map
	// Pointer wraps another shape, modelling optional presence.
	Pointer
	// Interface is a dynamically typed slot.
	Interface
	// Func is a function value, including iter.Seq style sequences.
	Func
	// Object is a struct or any other composite not covered above.
	Object
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Scalar:
		return "scalar"
	case Array:
		return "array"
	case Slice:
		return "slice"
	case Set:
		return "set"
	case Map:
		return "map"
	case Pointer:
		return "pointer"
	case Interface:
		return "interface"
	case Func:
		return "func"
	}
	return "object"
}

// Type describes a requested or actual value shape.
type Type struct {
	rType reflect.Type
	kind  Kind
	elem  *Type
	key   *Type
	value *Type
}

var (
	// AnyType is the empty interface type, used as a wildcard match.
	AnyType = reflect.TypeOf((*interface{})(nil)).Elem()

	emptyStructType = reflect.TypeOf(struct{}{})
	boolType        = reflect.TypeOf(true)
)

var types = newSyncMap[reflect.Type, *Type]()

// TypeOf returns the descriptor of value's dynamic type, or nil for a nil value.
func TypeOf(value interface{}) *Type {
	if value == nil {
		return nil
	}
	return ForType(reflect.TypeOf(value))
}

// Of returns the descriptor for T. Unlike TypeOf it preserves interface types.
func Of[T any]() *Type {
	return ForType(reflect.TypeOf((*T)(nil)).Elem())
}

// ForType returns the canonical descriptor for rType.
func ForType(rType reflect.Type) *Type {
	if rType == nil {
		return nil
	}
	if t, ok := types.Get(rType); ok {
		return t
	}
	return buildType(rType, map[reflect.Type]*Type{})
}

// buildType constructs descriptors recursively; building breaks cycles
// for self-referential types before the result is published.
func buildType(rType reflect.Type, building map[reflect.Type]*Type) *Type {
	if t, ok := types.Get(rType); ok {
		return t
	}
	if t, ok := building[rType]; ok {
		return t
	}
	t := &Type{rType: rType, kind: classify(rType)}
	building[rType] = t
	switch t.kind {
	case Array, Slice, Pointer:
		t.elem = buildType(rType.Elem(), building)
	case Set:
		t.elem = buildType(rType.Key(), building)
	case Map:
		t.key = buildType(rType.Key(), building)
		t.value = buildType(rType.Elem(), building)
	}
	return types.PutIfAbsent(rType, t)
}

func classify(rType reflect.Type) Kind {
	switch rType.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128,
		reflect.String:
		return Scalar
	case reflect.Array:
		return Array
	case reflect.Slice:
		return Slice
	case reflect.Map:
		if rType.Elem() == emptyStructType {
			return Set
		}
		return Map
	case reflect.Ptr:
		return Pointer
	case reflect.Interface:
		return Interface
	case reflect.Func:
		return Func
	}
	return Object
}

// SliceOf returns the descriptor of []elem.
func SliceOf(elem *Type) *Type {
	return ForType(reflect.SliceOf(elem.rType))
}

// ArrayOf returns the descriptor of [length]elem.
func ArrayOf(length int, elem *Type) *Type {
	return ForType(reflect.ArrayOf(length, elem.rType))
}

// SetOf returns the descriptor of map[elem]struct{}.
func SetOf(elem *Type) *Type {
	return ForType(reflect.MapOf(elem.rType, emptyStructType))
}

// MapOf returns the descriptor of map[key]value.
func MapOf(key, value *Type) *Type {
	return ForType(reflect.MapOf(key.rType, value.rType))
}

// PointerTo returns the descriptor of *elem.
func PointerTo(elem *Type) *Type {
	return ForType(reflect.PtrTo(elem.rType))
}

// SeqOf returns the descriptor of func(yield func(elem) bool), the
// shape of an iter.Seq[elem].
func SeqOf(elem *Type) *Type {
	yield := reflect.FuncOf([]reflect.Type{elem.rType}, []reflect.Type{boolType}, false)
	return ForType(reflect.FuncOf([]reflect.Type{yield}, nil, false))
}

// Kind returns the top-level shape classification.
func (t *Type) Kind() Kind {
	return t.kind
}

// ReflectType returns the nominal type identity.
func (t *Type) ReflectType() reflect.Type {
	return t.rType
}

// Elem returns the element descriptor of an array, slice, set or
// pointer shape, nil otherwise.
func (t *Type) Elem() *Type {
	return t.elem
}

// Key returns the key descriptor of a map shape, nil otherwise.
func (t *Type) Key() *Type {
	return t.key
}

// Value returns the value descriptor of a map shape, nil otherwise.
func (t *Type) Value() *Type {
	return t.value
}

// Equal reports structural equality: kinds, nominal identity and all
// nested descriptors. Nominal identity subsumes the nested shapes, so
// comparing the underlying reflect.Type is sufficient.
func (t *Type) Equal(other *Type) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.rType == other.rType
}

// IsContainer reports whether converting into this shape requires a
// freshly constructed container.
func (t *Type) IsContainer() bool {
	switch t.kind {
	case Array, Slice, Set, Map:
		return true
	}
	return false
}

// IsTextual reports whether the shape is string-kinded.
func (t *Type) IsTextual() bool {
	return t.rType.Kind() == reflect.String
}

// IsUntyped reports whether the shape is the empty interface.
func (t *Type) IsUntyped() bool {
	return t.rType == AnyType
}

// IsSeq reports whether the descriptor describes a push sequence,
// a func(yield func(T) bool) as produced by iter.Seq[T].
func (t *Type) IsSeq() bool {
	if t.kind != Func {
		return false
	}
	rType := t.rType
	if rType.NumIn() != 1 || rType.NumOut() != 0 || rType.IsVariadic() {
		return false
	}
	yield := rType.In(0)
	return yield.Kind() == reflect.Func &&
		yield.NumIn() == 1 && yield.NumOut() == 1 &&
		yield.Out(0) == boolType
}

// SeqElem returns the element descriptor of a push sequence, nil if
// the shape is not one.
func (t *Type) SeqElem() *Type {
	if !t.IsSeq() {
		return nil
	}
	return ForType(t.rType.In(0).In(0))
}

// Zero returns the zero value of the described type.
func (t *Type) Zero() interface{} {
	return reflect.Zero(t.rType).Interface()
}

// String returns a short human-readable form of the descriptor.
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	if t.kind == Set {
		return "set[" + t.elem.rType.String() + "]"
	}
	return t.rType.String()
}
