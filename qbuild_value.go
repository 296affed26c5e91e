package qbuild

import (
	"database/sql/driver"
	"encoding"
	"fmt"
	"math"
	r "reflect"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

/*
Returns the inline SQL literal of the given value. Pure and total. Nil input is
encoded as `NULL`.
*/
func Encode(val Value) string {
	if val == nil {
		return `NULL`
	}
	return bytesToMutableString(val.Append(nil))
}

/*
SQL NULL. Always inline, also in binding mode.
*/
type Null struct{}

// Implement the `Appender` interface.
func (Null) Append(text []byte) []byte { return append(text, `NULL`...) }

// Implement the `Value` interface.
func (self Null) AppendBind(bui *Bui) { bui.Literal(self) }

// Implement `fmt.Stringer` for debug purposes.
func (self Null) String() string { return Encode(self) }

// Boolean literal: `true` or `false`.
type Bool bool

// Implement the `Appender` interface.
func (self Bool) Append(text []byte) []byte { return strconv.AppendBool(text, bool(self)) }

// Implement the `Value` interface.
func (self Bool) AppendBind(bui *Bui) { bui.Arg(bool(self)) }

// Implement `fmt.Stringer` for debug purposes.
func (self Bool) String() string { return Encode(self) }

/*
String literal, wrapped in single quotes. The content is NOT escaped: inner
quotes are emitted as-is, for example `O'Brien` becomes `'O'Brien'`. Use binding
mode (`Composer.Bind`) for untrusted input.
*/
type Str string

// Implement the `Appender` interface.
func (self Str) Append(text []byte) []byte {
	text = append(text, quoteSingle)
	text = append(text, self...)
	text = append(text, quoteSingle)
	return text
}

// Implement the `Value` interface.
func (self Str) AppendBind(bui *Bui) { bui.Arg(string(self)) }

// Implement `fmt.Stringer` for debug purposes.
func (self Str) String() string { return Encode(self) }

/*
String literal wrapped in double quotes, with JSON escaping. Meant for elements
of JSON documents, see `JsonArray` and `JsonObject`.
*/
type JsonStr string

// Implement the `Appender` interface.
func (self JsonStr) Append(text []byte) []byte { return appendJsonString(text, string(self)) }

// Implement the `Value` interface.
func (self JsonStr) AppendBind(bui *Bui) { bui.Arg(string(self)) }

// Implement `fmt.Stringer` for debug purposes.
func (self JsonStr) String() string { return Encode(self) }

/*
SQL time functions that `Datetime` emits unquoted. Matching is
case-insensitive; the output always uses the spelling listed here.
*/
var DatetimeKeywords = []string{
	`CURRENT_TIMESTAMP`,
	`CURRENT_DATE`,
	`CURRENT_TIME`,
	`NOW()`,
	`CURDATE()`,
	`CURTIME()`,
	`UTC_TIMESTAMP()`,
}

/*
Date/time literal. If the payload is one of `DatetimeKeywords`, it's emitted as
a bare function call, otherwise single-quoted like `Str`.
*/
type Datetime string

// Returns the recognized keyword and true, or an empty string and false.
func (self Datetime) Keyword() (string, bool) {
	for _, val := range DatetimeKeywords {
		if strings.EqualFold(string(self), val) {
			return val, true
		}
	}
	return ``, false
}

// Implement the `Appender` interface.
func (self Datetime) Append(text []byte) []byte {
	key, ok := self.Keyword()
	if ok {
		return append(text, key...)
	}
	return Str(self).Append(text)
}

// Implement the `Value` interface.
func (self Datetime) AppendBind(bui *Bui) {
	key, ok := self.Keyword()
	if ok {
		bui.Str(key)
		return
	}
	bui.Arg(string(self))
}

// Implement `fmt.Stringer` for debug purposes.
func (self Datetime) String() string { return Encode(self) }

// Unix timestamp in seconds, always wrapped in `FROM_UNIXTIME(...)`.
type Epoch int64

// Implement the `Appender` interface.
func (self Epoch) Append(text []byte) []byte {
	text = append(text, `FROM_UNIXTIME(`...)
	text = strconv.AppendInt(text, int64(self), 10)
	text = append(text, `)`...)
	return text
}

// Implement the `Value` interface.
func (self Epoch) AppendBind(bui *Bui) {
	bui.Str(`FROM_UNIXTIME(`)
	bui.Arg(int64(self))
	bui.Str(`)`)
}

// Implement `fmt.Stringer` for debug purposes.
func (self Epoch) String() string { return Encode(self) }

type (
	Int    int
	Int8   int8
	Int16  int16
	Int32  int32
	Int64  int64
	Uint   uint
	Uint8  uint8
	Uint16 uint16
	Uint32 uint32
	Uint64 uint64
)

// Implement the `Appender` interface.
func (self Int) Append(text []byte) []byte { return strconv.AppendInt(text, int64(self), 10) }

// Implement the `Value` interface.
func (self Int) AppendBind(bui *Bui) { bui.Arg(int(self)) }

// Implement `fmt.Stringer` for debug purposes.
func (self Int) String() string { return Encode(self) }

// Implement the `Appender` interface.
func (self Int8) Append(text []byte) []byte { return strconv.AppendInt(text, int64(self), 10) }

// Implement the `Value` interface.
func (self Int8) AppendBind(bui *Bui) { bui.Arg(int8(self)) }

// Implement `fmt.Stringer` for debug purposes.
func (self Int8) String() string { return Encode(self) }

// Implement the `Appender` interface.
func (self Int16) Append(text []byte) []byte { return strconv.AppendInt(text, int64(self), 10) }

// Implement the `Value` interface.
func (self Int16) AppendBind(bui *Bui) { bui.Arg(int16(self)) }

// Implement `fmt.Stringer` for debug purposes.
func (self Int16) String() string { return Encode(self) }

// Implement the `Appender` interface.
func (self Int32) Append(text []byte) []byte { return strconv.AppendInt(text, int64(self), 10) }

// Implement the `Value` interface.
func (self Int32) AppendBind(bui *Bui) { bui.Arg(int32(self)) }

// Implement `fmt.Stringer` for debug purposes.
func (self Int32) String() string { return Encode(self) }

// Implement the `Appender` interface.
func (self Int64) Append(text []byte) []byte { return strconv.AppendInt(text, int64(self), 10) }

// Implement the `Value` interface.
func (self Int64) AppendBind(bui *Bui) { bui.Arg(int64(self)) }

// Implement `fmt.Stringer` for debug purposes.
func (self Int64) String() string { return Encode(self) }

// Implement the `Appender` interface.
func (self Uint) Append(text []byte) []byte { return strconv.AppendUint(text, uint64(self), 10) }

// Implement the `Value` interface.
func (self Uint) AppendBind(bui *Bui) { bui.Arg(uint(self)) }

// Implement `fmt.Stringer` for debug purposes.
func (self Uint) String() string { return Encode(self) }

// Implement the `Appender` interface.
func (self Uint8) Append(text []byte) []byte { return strconv.AppendUint(text, uint64(self), 10) }

// Implement the `Value` interface.
func (self Uint8) AppendBind(bui *Bui) { bui.Arg(uint8(self)) }

// Implement `fmt.Stringer` for debug purposes.
func (self Uint8) String() string { return Encode(self) }

// Implement the `Appender` interface.
func (self Uint16) Append(text []byte) []byte { return strconv.AppendUint(text, uint64(self), 10) }

// Implement the `Value` interface.
func (self Uint16) AppendBind(bui *Bui) { bui.Arg(uint16(self)) }

// Implement `fmt.Stringer` for debug purposes.
func (self Uint16) String() string { return Encode(self) }

// Implement the `Appender` interface.
func (self Uint32) Append(text []byte) []byte { return strconv.AppendUint(text, uint64(self), 10) }

// Implement the `Value` interface.
func (self Uint32) AppendBind(bui *Bui) { bui.Arg(uint32(self)) }

// Implement `fmt.Stringer` for debug purposes.
func (self Uint32) String() string { return Encode(self) }

// Implement the `Appender` interface.
func (self Uint64) Append(text []byte) []byte { return strconv.AppendUint(text, uint64(self), 10) }

// Implement the `Value` interface.
func (self Uint64) AppendBind(bui *Bui) { bui.Arg(uint64(self)) }

// Implement `fmt.Stringer` for debug purposes.
func (self Uint64) String() string { return Encode(self) }

// Encoded in the shortest decimal form that round-trips, without the
// scientific notation. NaN and infinities have no SQL literal and are encoded
// as NULL. `ValueOf` and composer operations reject them instead.
type Float32 float32

// Implement the `Appender` interface.
func (self Float32) Append(text []byte) []byte { return appendFloat(text, float64(self), 32) }

// Implement the `Value` interface.
func (self Float32) AppendBind(bui *Bui) {
	if isFinite(float64(self)) {
		bui.Arg(float32(self))
	} else {
		bui.Literal(Null{})
	}
}

// Implement `fmt.Stringer` for debug purposes.
func (self Float32) String() string { return Encode(self) }

// Encoded in the shortest decimal form that round-trips, without the
// scientific notation. NaN and infinities have no SQL literal and are encoded
// as NULL. `ValueOf` and composer operations reject them instead.
type Float64 float64

// Implement the `Appender` interface.
func (self Float64) Append(text []byte) []byte { return appendFloat(text, float64(self), 64) }

// Implement the `Value` interface.
func (self Float64) AppendBind(bui *Bui) {
	if isFinite(float64(self)) {
		bui.Arg(float64(self))
	} else {
		bui.Literal(Null{})
	}
}

// Implement `fmt.Stringer` for debug purposes.
func (self Float64) String() string { return Encode(self) }

func appendFloat(text []byte, val float64, bits int) []byte {
	if !isFinite(val) {
		return Null{}.Append(text)
	}
	return strconv.AppendFloat(text, val, 'f', -1, bits)
}

func isFinite(val float64) bool { return !math.IsNaN(val) && !math.IsInf(val, 0) }

// Fails with `ErrCodeInvalidInput` for NaN and infinities.
func validateFinite(while string, val Value) error {
	switch val := val.(type) {
	case Float32:
		if !isFinite(float64(val)) {
			return ErrInvalidInput.while(while).becausef(`non-finite float %v has no SQL literal`, float32(val))
		}
	case Float64:
		if !isFinite(float64(val)) {
			return ErrInvalidInput.while(while).becausef(`non-finite float %v has no SQL literal`, float64(val))
		}
	}
	return nil
}

// Variant of `ValueOf` that panics on error.
func TryValueOf(src any) Value { return try1(ValueOf(src)) }

/*
Converts an arbitrary Go value to a `Value`. Supports, in this order of
priority:

	* Nil and nil pointers: `Null`.
	* `Value` implementations: returned as-is.
	* Built-in primitives and types derived from them.
	* `time.Time`: `Datetime` formatted with `DatetimeLayout`.
	* `driver.Valuer`: converts the output of `.Value`.
	* `encoding.TextMarshaler` and `fmt.Stringer`: `Str`.
	* Maps, slices, arrays and structs: `Str` containing JSON.

Other types cause an error.
*/
func ValueOf(src any) (Value, error) {
	if src == nil {
		return Null{}, nil
	}

	rval := r.ValueOf(src)
	if isNilRval(rval) {
		return Null{}, nil
	}
	if rval.Kind() == r.Pointer {
		return ValueOf(rval.Elem().Interface())
	}

	switch src := src.(type) {
	case Value:
		return src, nil
	case bool:
		return Bool(src), nil
	case string:
		return Str(src), nil
	case []byte:
		return Str(src), nil
	case int:
		return Int(src), nil
	case int8:
		return Int8(src), nil
	case int16:
		return Int16(src), nil
	case int32:
		return Int32(src), nil
	case int64:
		return Int64(src), nil
	case uint:
		return Uint(src), nil
	case uint8:
		return Uint8(src), nil
	case uint16:
		return Uint16(src), nil
	case uint32:
		return Uint32(src), nil
	case uint64:
		return Uint64(src), nil
	case float32:
		return finiteValue(Float32(src))
	case float64:
		return finiteValue(Float64(src))
	case time.Time:
		return Datetime(src.Format(DatetimeLayout)), nil
	case driver.Valuer:
		val, err := src.Value()
		if err != nil {
			return nil, ErrInvalidInput.while(`converting driver.Valuer`).because(err)
		}
		if _, ok := val.(driver.Valuer); ok {
			return nil, ErrUnsupportedType.while(`converting driver.Valuer`).becausef(`%T returned another driver.Valuer`, src)
		}
		return ValueOf(val)
	case encoding.TextMarshaler:
		chunk, err := src.MarshalText()
		if err != nil {
			return nil, ErrInvalidInput.while(`converting encoding.TextMarshaler`).because(err)
		}
		return Str(chunk), nil
	case fmt.Stringer:
		return Str(src.String()), nil
	}

	switch rval.Kind() {
	case r.Bool:
		return Bool(rval.Bool()), nil
	case r.String:
		return Str(rval.String()), nil
	case r.Int, r.Int8, r.Int16, r.Int32, r.Int64:
		return Int64(rval.Int()), nil
	case r.Uint, r.Uint8, r.Uint16, r.Uint32, r.Uint64, r.Uintptr:
		return Uint64(rval.Uint()), nil
	case r.Float32:
		return finiteValue(Float32(rval.Float()))
	case r.Float64:
		return finiteValue(Float64(rval.Float()))
	case r.Map, r.Slice, r.Array, r.Struct:
		chunk, err := marshalJson(src)
		if err != nil {
			return nil, ErrInvalidInput.while(`encoding value as JSON`).because(err)
		}
		return Str(chunk), nil
	default:
		return nil, ErrUnsupportedType.while(`converting value`).becausef(`unsupported type %T`, src)
	}
}

func finiteValue(val Value) (Value, error) {
	err := validateFinite(`converting value`, val)
	if err != nil {
		return nil, err
	}
	return val, nil
}

// Variant of `ValueOf` for multiple inputs.
func ValuesOf(src ...any) ([]Value, error) {
	out := make([]Value, 0, len(src))
	for _, val := range src {
		conv, err := ValueOf(val)
		if err != nil {
			return nil, err
		}
		out = append(out, conv)
	}
	return out, nil
}

/*
Text that the sanitizer inspects for the given value: the raw payload for
textual values, nothing for values that can't carry text, and the encoded
literal for everything else.
*/
func valueCandidate(val Value) string {
	switch val := val.(type) {
	case nil, Null, Bool:
		return ``
	case Str:
		return string(val)
	case JsonStr:
		return string(val)
	case Datetime:
		return string(val)
	default:
		return Encode(val)
	}
}

func appendJsonString(text []byte, val string) []byte {
	return append(text, try1(marshalJson(val))...)
}

// Same as `json.Marshal` but leaves "<", ">" and "&" unescaped.
func marshalJson(src any) ([]byte, error) {
	return json.MarshalWithOption(src, json.DisableHTMLEscape())
}
