package descriptor

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

type base struct{}

type middle struct {
	base
}

type derived struct {
	middle
}

type speaker interface {
	Speak() string
}

type dog struct{}

func (dog) Speak() string { return "woof" }

func TestHierarchy(t *testing.T) {
	levels := Of[derived]().Hierarchy()
	assert.Equal(t, []reflect.Type{
		reflect.TypeOf(derived{}),
		reflect.TypeOf(middle{}),
		reflect.TypeOf(base{}),
	}, levels)
}

func TestDistance(t *testing.T) {
	derivedDesc := Of[derived]()

	dist, ok := derivedDesc.Distance(reflect.TypeOf(derived{}))
	assert.True(t, ok)
	assert.Equal(t, 0, dist)

	dist, ok = derivedDesc.Distance(reflect.TypeOf(middle{}))
	assert.True(t, ok)
	assert.Equal(t, 2, dist)

	dist, ok = derivedDesc.Distance(reflect.TypeOf(base{}))
	assert.True(t, ok)
	assert.Equal(t, 4, dist)

	_, ok = derivedDesc.Distance(reflect.TypeOf(dog{}))
	assert.False(t, ok)
}

func TestDistanceInterface(t *testing.T) {
	speakerType := reflect.TypeOf((*speaker)(nil)).Elem()

	dist, ok := Of[dog]().Distance(speakerType)
	assert.True(t, ok)
	assert.Equal(t, 1, dist, "interface satisfied at level 0 ranks behind an exact match")

	_, ok = Of[int]().Distance(speakerType)
	assert.False(t, ok)
}

func TestPointerHasNoHierarchy(t *testing.T) {
	desc := Of[*derived]()
	assert.Equal(t, []reflect.Type{reflect.TypeOf((*derived)(nil))}, desc.Hierarchy())

	_, ok := desc.Distance(reflect.TypeOf(derived{}))
	assert.False(t, ok, "pointer wrapping is a conversion, not a hierarchy relation")

	_, ok = Of[*string]().Distance(reflect.TypeOf(""))
	assert.False(t, ok)
}

func TestDistanceWildcard(t *testing.T) {
	dist, ok := Of[int]().Distance(AnyType)
	assert.True(t, ok)
	assert.Equal(t, WildcardDistance, dist)
}

func TestNamedScalarBase(t *testing.T) {
	type code string
	dist, ok := Of[code]().Distance(reflect.TypeOf(""))
	assert.True(t, ok)
	assert.Equal(t, 2, dist, "the base kind ranks behind the named type itself")
}
