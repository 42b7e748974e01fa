package convertly

import (
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/viant/convertly/descriptor"
)

var (
	stringType   = reflect.TypeOf("")
	boolGoType   = reflect.TypeOf(true)
	timeType     = reflect.TypeOf(time.Time{})
	durationType = reflect.TypeOf(time.Duration(0))
	uuidType     = reflect.TypeOf(uuid.UUID{})
	bytesType    = reflect.TypeOf([]byte(nil))
)

// registerDefaults installs the scalar converters appropriate for most
// environments. Registration errors are impossible here: every
// argument is non-nil by construction.
func (s *Service) registerDefaults() {
	_ = s.AddConverterFactory(descriptor.AnyType, descriptor.AnyType, numberConverterFactory{})
	_ = s.AddConverterFactory(stringType, descriptor.AnyType, stringToNumberConverterFactory{})
	_ = s.AddGenericConverter(numberToStringConverter{})

	_ = s.AddConverter(stringType, boolGoType, ConverterFunc(stringToBool))
	_ = s.AddConverter(boolGoType, stringType, ConverterFunc(boolToString))

	_ = s.AddConverter(stringType, timeType, &timeParser{layout: s.options.timeLayout})
	_ = s.AddConverter(timeType, stringType, &timeFormatter{layout: s.options.timeLayout})
	_ = s.AddConverter(stringType, durationType, ConverterFunc(stringToDuration))
	_ = s.AddConverter(durationType, stringType, ConverterFunc(durationToString))

	_ = s.AddConverter(stringType, uuidType, ConverterFunc(func(source interface{}) (interface{}, error) {
		return uuid.Parse(reflect.ValueOf(source).String())
	}))
	_ = s.AddConverter(uuidType, stringType, ConverterFunc(func(source interface{}) (interface{}, error) {
		return source.(uuid.UUID).String(), nil
	}))

	_ = s.AddConverter(stringType, bytesType, ConverterFunc(func(source interface{}) (interface{}, error) {
		return []byte(reflect.ValueOf(source).String()), nil
	}))
	_ = s.AddConverter(bytesType, stringType, ConverterFunc(func(source interface{}) (interface{}, error) {
		return string(source.([]byte)), nil
	}))
}
