package convertly

import (
	"encoding"
	"fmt"
	"reflect"

	"github.com/viant/convertly/descriptor"
)

// ConvertibleFrom is the opt-in contract for last-resort object to
// object conversion: a type implements it on its pointer receiver and
// populates itself from an arbitrary source value. It replaces
// reflective constructor discovery with explicit capability
// declaration while keeping the same last-resort priority.
type ConvertibleFrom interface {
	ConvertFrom(source interface{}) error
}

var (
	convertibleFromType = reflect.TypeOf((*ConvertibleFrom)(nil)).Elem()
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

// nativeConvertible reports Go-native assignability or convertibility
// between nominal types, excluding the numeric to string rune
// conversion, which is never what a caller asking for text means.
func nativeConvertible(source, target reflect.Type) bool {
	if source.AssignableTo(target) {
		return true
	}
	if !source.ConvertibleTo(target) {
		return false
	}
	if target.Kind() == reflect.String {
		switch source.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return false
		}
	}
	return true
}

// objectConverter is the structural object-to-object fallback. It
// attempts, in order: the ConvertibleFrom capability on the target,
// Go-native assignability or convertibility, and text unmarshaling
// when the source is textual.
type objectConverter struct {
	service *Service
}

func (c *objectConverter) Matches(source, target *descriptor.Type) bool {
	targetType := target.ReflectType()
	if reflect.PtrTo(targetType).Implements(convertibleFromType) {
		return true
	}
	if nativeConvertible(source.ReflectType(), targetType) {
		return true
	}
	return source.IsTextual() && reflect.PtrTo(targetType).Implements(textUnmarshalerType)
}

func (c *objectConverter) ConvertValue(value interface{}, source, target *descriptor.Type) (interface{}, error) {
	targetType := target.ReflectType()
	if reflect.PtrTo(targetType).Implements(convertibleFromType) {
		instance := reflect.New(targetType)
		if err := instance.Interface().(ConvertibleFrom).ConvertFrom(value); err != nil {
			return nil, err
		}
		return instance.Elem().Interface(), nil
	}
	srcVal := reflect.ValueOf(value)
	if nativeConvertible(srcVal.Type(), targetType) {
		if srcVal.Type().AssignableTo(targetType) {
			return value, nil
		}
		return srcVal.Convert(targetType).Interface(), nil
	}
	if source.IsTextual() && reflect.PtrTo(targetType).Implements(textUnmarshalerType) {
		instance := reflect.New(targetType)
		text := reflect.ValueOf(value).String()
		if err := instance.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(text)); err != nil {
			return nil, err
		}
		return instance.Elem().Interface(), nil
	}
	return nil, fmt.Errorf("no object conversion applies from %s to %s", source, target)
}

// stringerConverter converts any value to text via its canonical text
// representation when no better rule applies.
type stringerConverter struct{}

func (c *stringerConverter) Matches(source, target *descriptor.Type) bool {
	return target.IsTextual()
}

func (c *stringerConverter) ConvertValue(value interface{}, source, target *descriptor.Type) (interface{}, error) {
	var text string
	switch actual := value.(type) {
	case encoding.TextMarshaler:
		data, err := actual.MarshalText()
		if err != nil {
			return nil, err
		}
		text = string(data)
	case fmt.Stringer:
		text = actual.String()
	default:
		text = fmt.Sprintf("%v", value)
	}
	if target.ReflectType() == stringType {
		return text, nil
	}
	return reflect.ValueOf(text).Convert(target.ReflectType()).Interface(), nil
}

// pointerConverter wraps a value into a pointer-shaped target and
// unwraps in the inverse direction. A nil source pointer unwraps to
// the target's zero value; absence semantics stay with the caller.
type pointerConverter struct {
	service *Service
}

func (c *pointerConverter) Matches(source, target *descriptor.Type) bool {
	if target.Kind() == descriptor.Pointer {
		inner := source
		if source.Kind() == descriptor.Pointer {
			inner = source.Elem()
		}
		return c.service.CanConvert(inner, target.Elem())
	}
	if source.Kind() == descriptor.Pointer {
		return c.service.CanConvert(source.Elem(), target)
	}
	return false
}

func (c *pointerConverter) ConvertValue(value interface{}, source, target *descriptor.Type) (interface{}, error) {
	if source.Kind() == descriptor.Pointer {
		srcVal := reflect.ValueOf(value)
		if srcVal.IsNil() {
			return target.Zero(), nil
		}
		value = srcVal.Elem().Interface()
		if target.Kind() != descriptor.Pointer {
			return c.service.Convert(value, target)
		}
	}
	converted, err := c.service.Convert(value, target.Elem())
	if err != nil {
		return nil, err
	}
	out := reflect.New(target.Elem().ReflectType())
	if converted != nil {
		out.Elem().Set(reflect.ValueOf(converted))
	}
	return out.Interface(), nil
}
