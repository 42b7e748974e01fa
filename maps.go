package convertly

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/viant/convertly/descriptor"
	"github.com/viant/xunsafe"
)

// mapConverter converts a map to another map shape, converting keys
// and values independently, or to a set of its keys. Two source keys
// converting to equal target keys resolve last-write-wins in source
// iteration order.
type mapConverter struct {
	service *Service
}

func (c *mapConverter) Matches(source, target *descriptor.Type) bool {
	if source.Kind() != descriptor.Map {
		return false
	}
	return target.Kind() == descriptor.Map || target.Kind() == descriptor.Set
}

func (c *mapConverter) ConvertValue(value interface{}, source, target *descriptor.Type) (interface{}, error) {
	srcVal := reflect.ValueOf(value)
	if target.Kind() == descriptor.Set {
		keys := srcVal.MapKeys()
		elements := make([]interface{}, 0, len(keys))
		for _, key := range keys {
			elements = append(elements, key.Interface())
		}
		return c.service.populateCollection(elements, target)
	}
	out := reflect.MakeMapWithSize(target.ReflectType(), srcVal.Len())
	iter := srcVal.MapRange()
	for iter.Next() {
		key, err := c.service.convertElement(iter.Key().Interface(), target.Key())
		if err != nil {
			return nil, fmt.Errorf("cannot convert map key %v: %w", iter.Key().Interface(), err)
		}
		val, err := c.service.convertElement(iter.Value().Interface(), target.Value())
		if err != nil {
			return nil, fmt.Errorf("cannot convert map value under key %v: %w", iter.Key().Interface(), err)
		}
		out.SetMapIndex(key, val)
	}
	return out.Interface(), nil
}

var xStructs sync.Map // map[reflect.Type]*xunsafe.Struct

func xStructFor(rType reflect.Type) *xunsafe.Struct {
	if cached, ok := xStructs.Load(rType); ok {
		return cached.(*xunsafe.Struct)
	}
	xStruct := xunsafe.NewStruct(rType)
	xStructs.Store(rType, xStruct)
	return xStruct
}

// structToMapConverter converts a struct to a map, field names becoming
// keys and field values becoming values, each converted to the declared
// target shapes.
type structToMapConverter struct {
	service *Service
}

func (c *structToMapConverter) Matches(source, target *descriptor.Type) bool {
	return source.Kind() == descriptor.Object &&
		source.ReflectType().Kind() == reflect.Struct &&
		target.Kind() == descriptor.Map
}

func (c *structToMapConverter) ConvertValue(value interface{}, source, target *descriptor.Type) (interface{}, error) {
	rType := source.ReflectType()
	xStruct := xStructFor(rType)
	holder := reflect.New(rType)
	holder.Elem().Set(reflect.ValueOf(value))
	ptr := xunsafe.AsPointer(holder.Interface())
	out := reflect.MakeMapWithSize(target.ReflectType(), len(xStruct.Fields))
	for i := range xStruct.Fields {
		xField := &xStruct.Fields[i]
		key, err := c.service.convertElement(xField.Name, target.Key())
		if err != nil {
			return nil, fmt.Errorf("cannot convert field name %s: %w", xField.Name, err)
		}
		val, err := c.service.convertElement(xField.Value(ptr), target.Value())
		if err != nil {
			return nil, fmt.Errorf("cannot convert field %s: %w", xField.Name, err)
		}
		out.SetMapIndex(key, val)
	}
	return out.Interface(), nil
}
