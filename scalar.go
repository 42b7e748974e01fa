package convertly

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/viant/convertly/descriptor"
)

func isNumeric(rType reflect.Type) bool {
	switch rType.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// numberConverterFactory converts any numeric value to any other
// numeric type, with range and sign checks.
type numberConverterFactory struct{}

func (numberConverterFactory) Matches(source, target *descriptor.Type) bool {
	return isNumeric(source.ReflectType()) && isNumeric(target.ReflectType()) && !source.Equal(target)
}

func (numberConverterFactory) ConverterFor(target *descriptor.Type) Converter {
	targetType := target.ReflectType()
	return ConverterFunc(func(source interface{}) (interface{}, error) {
		return convertNumber(reflect.ValueOf(source), targetType)
	})
}

// stringToNumberConverterFactory parses text into any numeric type.
type stringToNumberConverterFactory struct{}

func (stringToNumberConverterFactory) Matches(source, target *descriptor.Type) bool {
	return isNumeric(target.ReflectType())
}

func (stringToNumberConverterFactory) ConverterFor(target *descriptor.Type) Converter {
	targetType := target.ReflectType()
	return ConverterFunc(func(source interface{}) (interface{}, error) {
		return parseNumber(reflect.ValueOf(source).String(), targetType)
	})
}

// numberToStringConverter formats any numeric value as text.
type numberToStringConverter struct{}

func (numberToStringConverter) Pairs() []ConvertiblePair {
	return []ConvertiblePair{{Source: descriptor.AnyType, Target: stringType}}
}

func (numberToStringConverter) Matches(source, target *descriptor.Type) bool {
	return isNumeric(source.ReflectType())
}

func (numberToStringConverter) ConvertValue(value interface{}, source, target *descriptor.Type) (interface{}, error) {
	srcVal := reflect.ValueOf(value)
	switch srcVal.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(srcVal.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(srcVal.Uint(), 10), nil
	case reflect.Float32:
		return strconv.FormatFloat(srcVal.Float(), 'f', -1, 32), nil
	case reflect.Float64:
		return strconv.FormatFloat(srcVal.Float(), 'f', -1, 64), nil
	}
	return nil, fmt.Errorf("cannot format %s as string", srcVal.Type())
}

func convertNumber(srcVal reflect.Value, targetType reflect.Type) (interface{}, error) {
	out := reflect.New(targetType).Elem()
	switch targetType.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := asInt64(srcVal)
		if err != nil {
			return nil, err
		}
		if out.OverflowInt(i) {
			return nil, fmt.Errorf("value %v overflows %s", srcVal.Interface(), targetType)
		}
		out.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := asUint64(srcVal)
		if err != nil {
			return nil, err
		}
		if out.OverflowUint(u) {
			return nil, fmt.Errorf("value %v overflows %s", srcVal.Interface(), targetType)
		}
		out.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f, err := asFloat64(srcVal)
		if err != nil {
			return nil, err
		}
		if out.OverflowFloat(f) {
			return nil, fmt.Errorf("value %v overflows %s", srcVal.Interface(), targetType)
		}
		out.SetFloat(f)
	default:
		return nil, fmt.Errorf("unsupported numeric type %s", targetType)
	}
	return out.Interface(), nil
}

func asInt64(v reflect.Value) (int64, error) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := v.Uint()
		if u > math.MaxInt64 {
			return 0, fmt.Errorf("value %d overflows int64", u)
		}
		return int64(u), nil
	case reflect.Float32, reflect.Float64:
		return floatToInt64(v.Float())
	}
	return 0, fmt.Errorf("cannot convert %s to int", v.Type())
}

// floatToInt64 range-checks before converting: out-of-range and NaN
// inputs convert with undefined results otherwise. math.MaxInt64
// rounds to 2^63 in float64, itself out of range, hence >=.
func floatToInt64(f float64) (int64, error) {
	if math.IsNaN(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, fmt.Errorf("value %v overflows int64", f)
	}
	return int64(f), nil
}

func floatToUint64(f float64) (uint64, error) {
	if math.IsNaN(f) || f >= math.MaxUint64 {
		return 0, fmt.Errorf("value %v overflows uint64", f)
	}
	return uint64(f), nil
}

func asUint64(v reflect.Value) (uint64, error) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i := v.Int()
		if i < 0 {
			return 0, fmt.Errorf("cannot convert negative value %d to unsigned int", i)
		}
		return uint64(i), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint(), nil
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		if f < 0 {
			return 0, fmt.Errorf("cannot convert negative value %f to unsigned int", f)
		}
		return floatToUint64(f)
	}
	return 0, fmt.Errorf("cannot convert %s to uint", v.Type())
}

func asFloat64(v reflect.Value) (float64, error) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return v.Float(), nil
	}
	return 0, fmt.Errorf("cannot convert %s to float", v.Type())
}

func parseNumber(text string, targetType reflect.Type) (interface{}, error) {
	out := reflect.New(targetType).Elem()
	switch targetType.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		var i int64
		if strings.Contains(text, ".") {
			f, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return nil, err
			}
			i, err = floatToInt64(f)
			if err != nil {
				return nil, err
			}
		} else {
			parsed, err := strconv.ParseInt(text, 0, 64)
			if err != nil {
				return nil, err
			}
			i = parsed
		}
		if out.OverflowInt(i) {
			return nil, fmt.Errorf("value %s overflows %s", text, targetType)
		}
		out.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(text, 0, 64)
		if err != nil {
			return nil, err
		}
		if out.OverflowUint(u) {
			return nil, fmt.Errorf("value %s overflows %s", text, targetType)
		}
		out.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, err
		}
		if out.OverflowFloat(f) {
			return nil, fmt.Errorf("value %s overflows %s", text, targetType)
		}
		out.SetFloat(f)
	default:
		return nil, fmt.Errorf("unsupported numeric type %s", targetType)
	}
	return out.Interface(), nil
}

func stringToBool(source interface{}) (interface{}, error) {
	text := reflect.ValueOf(source).String()
	parsed, err := strconv.ParseBool(text)
	if err != nil {
		// Numeric text still counts as a truth value.
		if f, ferr := strconv.ParseFloat(text, 64); ferr == nil {
			return f != 0, nil
		}
		return nil, err
	}
	return parsed, nil
}

func boolToString(source interface{}) (interface{}, error) {
	return strconv.FormatBool(reflect.ValueOf(source).Bool()), nil
}

// timeParser parses text into time.Time using the configured layout,
// falling back to a list of common layouts.
type timeParser struct {
	layout string
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func (p *timeParser) Convert(source interface{}) (interface{}, error) {
	text := reflect.ValueOf(source).String()
	layout := p.layout
	if layout == "" {
		layout = DefaultTimeLayout
	}
	if parsed, err := time.Parse(layout, text); err == nil {
		return parsed, nil
	}
	for _, candidate := range timeLayouts {
		if parsed, err := time.Parse(candidate, text); err == nil {
			return parsed, nil
		}
	}
	return nil, fmt.Errorf("cannot parse time %q", text)
}

// timeFormatter formats time.Time as text using the configured layout.
type timeFormatter struct {
	layout string
}

func (f *timeFormatter) Convert(source interface{}) (interface{}, error) {
	layout := f.layout
	if layout == "" {
		layout = DefaultTimeLayout
	}
	return source.(time.Time).Format(layout), nil
}

func stringToDuration(source interface{}) (interface{}, error) {
	return time.ParseDuration(reflect.ValueOf(source).String())
}

func durationToString(source interface{}) (interface{}, error) {
	return source.(time.Duration).String(), nil
}
