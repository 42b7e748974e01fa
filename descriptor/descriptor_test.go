package descriptor

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestForTypeKinds(t *testing.T) {
	testCases := []struct {
		name     string
		value    interface{}
		expected Kind
	}{
		{"string", "hello", Scalar},
		{"int", 123, Scalar},
		{"float", 1.5, Scalar},
		{"bool", true, Scalar},
		{"slice", []int{1}, Slice},
		{"array", [2]string{}, Array},
		{"map", map[string]int{}, Map},
		{"set", map[string]struct{}{}, Set},
		{"pointer", new(int), Pointer},
		{"struct", time.Time{}, Object},
		{"func", func() {}, Func},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, TypeOf(tc.value).Kind())
		})
	}
}

func TestNestedDescriptors(t *testing.T) {
	sliceOfInt := TypeOf([]int{})
	assert.Equal(t, Scalar, sliceOfInt.Elem().Kind())
	assert.Equal(t, reflect.TypeOf(0), sliceOfInt.Elem().ReflectType())

	mapped := TypeOf(map[string][]int{})
	assert.Equal(t, Scalar, mapped.Key().Kind())
	assert.Equal(t, Slice, mapped.Value().Kind())

	set := TypeOf(map[int]struct{}{})
	assert.Equal(t, Set, set.Kind())
	assert.Equal(t, reflect.TypeOf(0), set.Elem().ReflectType())
}

func TestConstructors(t *testing.T) {
	intDesc := Of[int]()
	assert.True(t, SliceOf(intDesc).Equal(TypeOf([]int{})))
	assert.True(t, ArrayOf(3, intDesc).Equal(TypeOf([3]int{})))
	assert.True(t, SetOf(intDesc).Equal(TypeOf(map[int]struct{}{})))
	assert.True(t, MapOf(Of[string](), intDesc).Equal(TypeOf(map[string]int{})))
	assert.True(t, PointerTo(intDesc).Equal(TypeOf(new(int))))
}

func TestEqual(t *testing.T) {
	assert.True(t, TypeOf([]int{}).Equal(TypeOf([]int{1, 2})))
	assert.False(t, TypeOf([]int{}).Equal(TypeOf([]int64{})))
	assert.False(t, TypeOf(map[string]int{}).Equal(TypeOf(map[string]int64{})))

	type code string
	assert.False(t, Of[code]().Equal(Of[string]()))
}

func TestSelfReferentialType(t *testing.T) {
	type node struct {
		Next *node
	}
	desc := Of[*node]()
	assert.Equal(t, Pointer, desc.Kind())
	assert.Equal(t, Object, desc.Elem().Kind())

	type recursive []interface{}
	assert.Equal(t, Slice, Of[recursive]().Kind())
}

func TestIsSeq(t *testing.T) {
	seq := Of[func(yield func(int) bool)]()
	assert.True(t, seq.IsSeq())
	assert.Equal(t, reflect.TypeOf(0), seq.SeqElem().ReflectType())

	assert.False(t, Of[func(int) bool]().IsSeq())
	assert.False(t, Of[func()]().IsSeq())
	assert.False(t, Of[int]().IsSeq())

	built := SeqOf(Of[string]())
	assert.True(t, built.IsSeq())
	assert.Equal(t, reflect.TypeOf(""), built.SeqElem().ReflectType())
}

func TestUntyped(t *testing.T) {
	anySlice := TypeOf([]interface{}{})
	assert.True(t, anySlice.Elem().IsUntyped())
	assert.False(t, TypeOf([]string{}).Elem().IsUntyped())
}
