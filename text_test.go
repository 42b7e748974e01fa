package convertly

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/convertly/descriptor"
)

func TestTextToCollection(t *testing.T) {
	service := NewDefault()
	testCases := []struct {
		name     string
		text     string
		target   *descriptor.Type
		expected interface{}
	}{
		{"strings", "a,b,c", descriptor.Of[[]string](), []string{"a", "b", "c"}},
		{"numbers", "1,2,3", descriptor.Of[[]int](), []int{1, 2, 3}},
		{"padded", " 1 , 2 ,3 ", descriptor.Of[[]int](), []int{1, 2, 3}},
		{"single", "42", descriptor.Of[[]int](), []int{42}},
		{"set", "1,2,2", descriptor.Of[map[int]struct{}](), map[int]struct{}{1: {}, 2: {}}},
		{"empty", "", descriptor.Of[[]int](), []int{}},
		{"blank", "   ", descriptor.Of[[]string](), []string{}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := service.Convert(tc.text, tc.target)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, result)
		})
	}
}

func TestCollectionToText(t *testing.T) {
	service := NewDefault()

	result, err := service.Convert([]int{1, 2, 3}, descriptor.Of[string]())
	require.NoError(t, err)
	assert.Equal(t, "1,2,3", result)

	result, err = service.Convert([]string{"a", "b"}, descriptor.Of[string]())
	require.NoError(t, err)
	assert.Equal(t, "a,b", result)

	result, err = service.Convert([]int{}, descriptor.Of[string]())
	require.NoError(t, err)
	assert.Equal(t, "", result)
}

func TestDelimiterOption(t *testing.T) {
	service := NewDefault(WithDelimiter(";"))

	result, err := service.Convert("1;2;3", descriptor.Of[[]int]())
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, result)

	result, err = service.Convert([]int{1, 2}, descriptor.Of[string]())
	require.NoError(t, err)
	assert.Equal(t, "1;2", result)
}

func TestTextConversionNamedTypes(t *testing.T) {
	type csv string
	service := NewDefault()

	result, err := service.Convert([]int{1, 2}, descriptor.Of[csv]())
	require.NoError(t, err)
	assert.Equal(t, csv("1,2"), result)

	result, err = service.Convert(csv("3,4"), descriptor.Of[[]int]())
	require.NoError(t, err)
	assert.Equal(t, []int{3, 4}, result)
}

func TestTextElementFailure(t *testing.T) {
	service := NewDefault()
	result, err := service.Convert("1,x,3", descriptor.Of[[]int]())
	require.Error(t, err)
	assert.Nil(t, result)
}
