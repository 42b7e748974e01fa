package convertly

import (
	"fmt"

	"github.com/viant/convertly/descriptor"
)

// autoboxConverter converts a single value to a size-1 collection and,
// when unboxing is enabled, a size-1 collection back to its single
// element. A collection of any other size never converts to a scalar.
type autoboxConverter struct {
	service *Service
}

func (c *autoboxConverter) Matches(source, target *descriptor.Type) bool {
	if isCollection(target) && !isCollection(source) &&
		!source.IsTextual() && !source.IsSeq() &&
		source.Kind() != descriptor.Pointer && source.Kind() != descriptor.Map {
		return true
	}
	if isCollection(source) && !isCollection(target) &&
		!target.IsTextual() && !target.IsSeq() &&
		target.Kind() != descriptor.Pointer && target.Kind() != descriptor.Map {
		return c.service.options.unboxing
	}
	return false
}

func (c *autoboxConverter) ConvertValue(value interface{}, source, target *descriptor.Type) (interface{}, error) {
	if isCollection(target) {
		return c.service.populateCollection([]interface{}{value}, target)
	}
	elements := collectionElements(value, source)
	if len(elements) != 1 {
		return nil, fmt.Errorf("cannot convert collection of size %d to a single %s", len(elements), target)
	}
	converted, err := c.service.convertElement(elements[0], target)
	if err != nil {
		return nil, err
	}
	return converted.Interface(), nil
}
