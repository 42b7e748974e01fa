package descriptor

import "reflect"

// WildcardDistance is the hierarchy distance assigned to a wildcard
// (empty interface) match. It is larger than any distance a concrete
// or interface match can produce, so explicit matches always win.
const WildcardDistance = 1 << 20

var hierarchies = newSyncMap[reflect.Type, []reflect.Type]()

// Hierarchy returns the linearized supertype list of the descriptor's
// nominal type: the type itself first, then embedded (anonymous)
// types in breadth-first order, pointer embeds dereferenced. A pointer
// type has no supertypes; wrapping and unwrapping is a conversion, not
// a hierarchy relation. The list is computed once per distinct nominal
// type and cached.
func (t *Type) Hierarchy() []reflect.Type {
	if cached, ok := hierarchies.Get(t.rType); ok {
		return cached
	}
	built := buildHierarchy(t.rType)
	return hierarchies.PutIfAbsent(t.rType, built)
}

func buildHierarchy(rType reflect.Type) []reflect.Type {
	var result []reflect.Type
	visited := map[reflect.Type]bool{}
	queue := []reflect.Type{rType}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if visited[next] {
			continue
		}
		visited[next] = true
		result = append(result, next)
		if next.Kind() == reflect.Struct {
			for i := 0; i < next.NumField(); i++ {
				field := next.Field(i)
				if !field.Anonymous {
					continue
				}
				fieldType := field.Type
				if fieldType.Kind() == reflect.Ptr {
					fieldType = fieldType.Elem()
				}
				queue = append(queue, fieldType)
			}
		}
	}
	// A named scalar type also matches registrations for its base kind.
	if base := baseScalarType(rType.Kind()); base != nil && base != rType && !visited[base] {
		result = append(result, base)
	}
	return result
}

var baseScalarTypes = map[reflect.Kind]reflect.Type{
	reflect.Bool:    reflect.TypeOf(false),
	reflect.Int:     reflect.TypeOf(int(0)),
	reflect.Int8:    reflect.TypeOf(int8(0)),
	reflect.Int16:   reflect.TypeOf(int16(0)),
	reflect.Int32:   reflect.TypeOf(int32(0)),
	reflect.Int64:   reflect.TypeOf(int64(0)),
	reflect.Uint:    reflect.TypeOf(uint(0)),
	reflect.Uint8:   reflect.TypeOf(uint8(0)),
	reflect.Uint16:  reflect.TypeOf(uint16(0)),
	reflect.Uint32:  reflect.TypeOf(uint32(0)),
	reflect.Uint64:  reflect.TypeOf(uint64(0)),
	reflect.Float32: reflect.TypeOf(float32(0)),
	reflect.Float64: reflect.TypeOf(float64(0)),
	reflect.String:  reflect.TypeOf(""),
}

func baseScalarType(kind reflect.Kind) reflect.Type {
	return baseScalarTypes[kind]
}

// Distance reports how far match sits from the descriptor's type in
// its hierarchy: 0 for the exact type, even values for embedded types
// by depth, odd values for interface satisfaction at the same depth
// (an embedded type outranks an interface at equal depth). A wildcard
// match yields WildcardDistance. The second result reports whether
// match applies at all.
func (t *Type) Distance(match reflect.Type) (int, bool) {
	if match == AnyType {
		return WildcardDistance, true
	}
	levels := t.Hierarchy()
	for i, level := range levels {
		if level == match {
			return 2 * i, true
		}
	}
	if match.Kind() != reflect.Interface {
		return 0, false
	}
	for i, level := range levels {
		if level.Implements(match) {
			return 2*i + 1, true
		}
		if level.Kind() != reflect.Ptr && reflect.PtrTo(level).Implements(match) {
			return 2*i + 1, true
		}
	}
	return 0, false
}
