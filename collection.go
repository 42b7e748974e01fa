package convertly

import (
	"fmt"
	"reflect"

	"github.com/viant/convertly/descriptor"
)

func isCollection(t *descriptor.Type) bool {
	switch t.Kind() {
	case descriptor.Array, descriptor.Slice, descriptor.Set:
		return true
	}
	return false
}

// collectionElements extracts the elements of an array, slice or set
// value in source iteration order.
func collectionElements(value interface{}, source *descriptor.Type) []interface{} {
	srcVal := reflect.ValueOf(value)
	switch source.Kind() {
	case descriptor.Array, descriptor.Slice:
		elements := make([]interface{}, srcVal.Len())
		for i := 0; i < srcVal.Len(); i++ {
			elements[i] = srcVal.Index(i).Interface()
		}
		return elements
	case descriptor.Set:
		keys := srcVal.MapKeys()
		elements := make([]interface{}, 0, len(keys))
		for _, key := range keys {
			elements = append(elements, key.Interface())
		}
		return elements
	}
	return nil
}

// populateCollection constructs a fresh target container and fills it
// with elements converted to the declared element shape. The whole
// operation fails if any element conversion fails; no partial
// container is ever returned.
func (s *Service) populateCollection(elements []interface{}, target *descriptor.Type) (interface{}, error) {
	elemDesc := target.Elem()
	rType := target.ReflectType()
	switch target.Kind() {
	case descriptor.Slice:
		out := reflect.MakeSlice(rType, 0, len(elements))
		for i, element := range elements {
			converted, err := s.convertElement(element, elemDesc)
			if err != nil {
				return nil, fmt.Errorf("cannot convert element %d: %w", i, err)
			}
			out = reflect.Append(out, converted)
		}
		return out.Interface(), nil
	case descriptor.Array:
		if rType.Len() != len(elements) {
			return nil, fmt.Errorf("cannot convert %d elements into %s", len(elements), rType)
		}
		out := reflect.New(rType).Elem()
		for i, element := range elements {
			converted, err := s.convertElement(element, elemDesc)
			if err != nil {
				return nil, fmt.Errorf("cannot convert element %d: %w", i, err)
			}
			out.Index(i).Set(converted)
		}
		return out.Interface(), nil
	case descriptor.Set:
		out := reflect.MakeMapWithSize(rType, len(elements))
		present := reflect.ValueOf(struct{}{})
		for i, element := range elements {
			converted, err := s.convertElement(element, elemDesc)
			if err != nil {
				return nil, fmt.Errorf("cannot convert element %d: %w", i, err)
			}
			out.SetMapIndex(converted, present)
		}
		return out.Interface(), nil
	}
	return nil, fmt.Errorf("unsupported collection shape %s", target)
}

// collectionConverter converts between arrays, slices and sets by
// converting elements recursively through the service. Order is
// preserved for arrays and slices; sets carry no order.
type collectionConverter struct {
	service *Service
}

func (c *collectionConverter) Matches(source, target *descriptor.Type) bool {
	return isCollection(source) && isCollection(target)
}

func (c *collectionConverter) ConvertValue(value interface{}, source, target *descriptor.Type) (interface{}, error) {
	return c.service.populateCollection(collectionElements(value, source), target)
}
