package convertly

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/viant/convertly/descriptor"
)

// textConverter splits text into collection elements on the configured
// delimiter, and joins collection elements into text in the opposite
// direction. Empty text parses to an empty container.
type textConverter struct {
	service *Service
}

func (c *textConverter) Matches(source, target *descriptor.Type) bool {
	if source.IsTextual() && isCollection(target) {
		return true
	}
	return isCollection(source) && target.IsTextual()
}

func (c *textConverter) ConvertValue(value interface{}, source, target *descriptor.Type) (interface{}, error) {
	if source.IsTextual() {
		text := reflect.ValueOf(value).String()
		if strings.TrimSpace(text) == "" {
			return c.service.populateCollection(nil, target)
		}
		parts := strings.Split(text, c.service.options.delimiter)
		elements := make([]interface{}, len(parts))
		for i, part := range parts {
			elements[i] = strings.TrimSpace(part)
		}
		return c.service.populateCollection(elements, target)
	}
	elements := collectionElements(value, source)
	stringDesc := descriptor.Of[string]()
	parts := make([]string, len(elements))
	for i, element := range elements {
		converted, err := c.service.convertElement(element, stringDesc)
		if err != nil {
			return nil, fmt.Errorf("cannot convert element %d: %w", i, err)
		}
		parts[i] = converted.String()
	}
	joined := strings.Join(parts, c.service.options.delimiter)
	if target.ReflectType() == stringType {
		return joined, nil
	}
	return reflect.ValueOf(joined).Convert(target.ReflectType()).Interface(), nil
}
