package configmap

import (
	"encoding"
	"reflect"
)

// textValue is a pflag.Value for types convertible from/to a text, for example datasize.ByteSize.
type textValue struct {
	ptr reflect.Value
}

// newTextValue returns nil if the value is not convertible from/to a text.
func newTextValue(value reflect.Value) *textValue {
	ptr := reflect.New(value.Type())
	ptr.Elem().Set(value)
	if _, ok := ptr.Interface().(encoding.TextUnmarshaler); !ok {
		return nil
	}
	if _, ok := ptr.Interface().(encoding.TextMarshaler); !ok {
		return nil
	}
	return &textValue{ptr: ptr}
}

func (v *textValue) String() string {
	text, err := v.ptr.Interface().(encoding.TextMarshaler).MarshalText()
	if err != nil {
		return ""
	}
	return string(text)
}

func (v *textValue) Set(s string) error {
	return v.ptr.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(s))
}

func (v *textValue) Type() string {
	return "string"
}
