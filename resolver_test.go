package convertly

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/convertly/descriptor"
)

type animal interface {
	Sound() string
}

type dog struct{}

func (dog) Sound() string { return "woof" }

type vehicle struct {
	Wheels int
}

type car struct {
	vehicle
	Doors int
}

func TestSpecificityExactOverInterface(t *testing.T) {
	service := New()
	animalType := reflect.TypeOf((*animal)(nil)).Elem()
	stringTgt := reflect.TypeOf("")

	require.NoError(t, service.AddConverter(animalType, stringTgt, ConverterFunc(func(source interface{}) (interface{}, error) {
		return "animal", nil
	})))
	require.NoError(t, service.AddConverter(reflect.TypeOf(dog{}), stringTgt, ConverterFunc(func(source interface{}) (interface{}, error) {
		return "dog", nil
	})))

	result, err := service.Convert(dog{}, descriptor.Of[string]())
	require.NoError(t, err)
	assert.Equal(t, "dog", result, "the exact registration outranks the interface one")
}

func TestSpecificityInterfaceFallback(t *testing.T) {
	service := New()
	animalType := reflect.TypeOf((*animal)(nil)).Elem()

	require.NoError(t, service.AddConverter(animalType, reflect.TypeOf(""), ConverterFunc(func(source interface{}) (interface{}, error) {
		return source.(animal).Sound(), nil
	})))

	result, err := service.Convert(dog{}, descriptor.Of[string]())
	require.NoError(t, err)
	assert.Equal(t, "woof", result)
}

func TestSpecificityEmbeddedDepth(t *testing.T) {
	service := New()
	stringTgt := reflect.TypeOf("")

	require.NoError(t, service.AddConverter(reflect.TypeOf(vehicle{}), stringTgt, ConverterFunc(func(source interface{}) (interface{}, error) {
		return "vehicle", nil
	})))
	require.NoError(t, service.AddConverter(reflect.TypeOf(car{}), stringTgt, ConverterFunc(func(source interface{}) (interface{}, error) {
		return "car", nil
	})))

	result, err := service.Convert(car{}, descriptor.Of[string]())
	require.NoError(t, err)
	assert.Equal(t, "car", result, "the shallower registration wins regardless of order")

	result, err = service.Convert(vehicle{}, descriptor.Of[string]())
	require.NoError(t, err)
	assert.Equal(t, "vehicle", result)
}

func TestEmbeddedInheritsConverter(t *testing.T) {
	service := New()
	require.NoError(t, service.AddConverter(reflect.TypeOf(vehicle{}), reflect.TypeOf(""), ConverterFunc(func(source interface{}) (interface{}, error) {
		return fmt.Sprintf("%v", source), nil
	})))

	_, err := service.Convert(car{vehicle{4}, 5}, descriptor.Of[string]())
	require.NoError(t, err, "an embedded type's registration applies to the embedding type")
}

func TestConditionalConverter(t *testing.T) {
	service := New()
	require.NoError(t, service.AddGenericConverter(&sliceTargetConverter{}))

	result, err := service.Convert(7, descriptor.Of[[]int]())
	require.NoError(t, err)
	assert.Equal(t, []int{7}, result)

	var notFound *NoConverterError
	_, err = service.Convert(7, descriptor.Of[map[string]int]())
	assert.True(t, errors.As(err, &notFound), "a failed predicate excludes the registration")
}

// sliceTargetConverter claims any target but only matches slices of its source.
type sliceTargetConverter struct{}

func (s *sliceTargetConverter) Pairs() []ConvertiblePair {
	return []ConvertiblePair{{Source: reflect.TypeOf(0), Target: descriptor.AnyType}}
}

func (s *sliceTargetConverter) Matches(source, target *descriptor.Type) bool {
	return target.Kind() == descriptor.Slice && target.Elem().Equal(source)
}

func (s *sliceTargetConverter) ConvertValue(value interface{}, source, target *descriptor.Type) (interface{}, error) {
	out := reflect.MakeSlice(target.ReflectType(), 0, 1)
	out = reflect.Append(out, reflect.ValueOf(value))
	return out.Interface(), nil
}

func TestConverterFactoryResolution(t *testing.T) {
	service := New()
	require.NoError(t, service.AddConverterFactory(reflect.TypeOf(""), descriptor.AnyType, lengthFactory{}))

	result, err := service.Convert("hello", descriptor.Of[int]())
	require.NoError(t, err)
	assert.Equal(t, 5, result)

	result, err = service.Convert("hello", descriptor.Of[int64]())
	require.NoError(t, err)
	assert.Equal(t, int64(5), result)
}

// lengthFactory produces converters reporting text length in any numeric type.
type lengthFactory struct{}

func (lengthFactory) Matches(source, target *descriptor.Type) bool {
	return isNumeric(target.ReflectType())
}

func (lengthFactory) ConverterFor(target *descriptor.Type) Converter {
	targetType := target.ReflectType()
	return ConverterFunc(func(source interface{}) (interface{}, error) {
		return convertNumber(reflect.ValueOf(len(source.(string))), targetType)
	})
}

func TestResolutionCached(t *testing.T) {
	service := New()
	calls := 0
	require.NoError(t, RegisterConverter(service, func(v string) (int, error) {
		calls++
		return calls, nil
	}))

	intDesc := descriptor.Of[int]()
	for i := 0; i < 3; i++ {
		_, err := service.Convert("x", intDesc)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, calls)
	assert.True(t, service.CanConvert(descriptor.Of[string](), intDesc))
}
