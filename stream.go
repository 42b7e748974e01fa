package convertly

import (
	"fmt"
	"reflect"

	"github.com/viant/convertly/descriptor"
)

// seqConverter adapts push sequences (func(yield func(T) bool), the
// shape of iter.Seq[T]) to and from materialized collections. Draining
// a sequence follows the one-shot or restartable contract of the
// sequence itself; a sequence produced from a collection iterates a
// converted snapshot and is restartable.
type seqConverter struct {
	service *Service
}

func (c *seqConverter) Matches(source, target *descriptor.Type) bool {
	if source.IsSeq() && isCollection(target) {
		return true
	}
	return isCollection(source) && target.IsSeq()
}

func (c *seqConverter) ConvertValue(value interface{}, source, target *descriptor.Type) (interface{}, error) {
	if source.IsSeq() {
		return c.service.populateCollection(drainSeq(value), target)
	}
	elemDesc := target.SeqElem()
	elements := collectionElements(value, source)
	converted := make([]reflect.Value, len(elements))
	for i, element := range elements {
		item, err := c.service.convertElement(element, elemDesc)
		if err != nil {
			return nil, fmt.Errorf("cannot convert element %d: %w", i, err)
		}
		converted[i] = item
	}
	seq := reflect.MakeFunc(target.ReflectType(), func(args []reflect.Value) []reflect.Value {
		yield := args[0]
		for _, item := range converted {
			if !yield.Call([]reflect.Value{item})[0].Bool() {
				break
			}
		}
		return nil
	})
	return seq.Interface(), nil
}

// drainSeq materializes a push sequence by invoking it with a
// collecting yield.
func drainSeq(value interface{}) []interface{} {
	seqVal := reflect.ValueOf(value)
	yieldType := seqVal.Type().In(0)
	var elements []interface{}
	yield := reflect.MakeFunc(yieldType, func(args []reflect.Value) []reflect.Value {
		elements = append(elements, args[0].Interface())
		return []reflect.Value{reflect.ValueOf(true)}
	})
	seqVal.Call([]reflect.Value{yield})
	return elements
}
