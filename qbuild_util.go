package qbuild

import (
	r "reflect"
	"strconv"
	"strings"
	"unsafe"

	"github.com/mitranim/refut"
)

const (
	commentLinePrefix  = `--`
	commentBlockPrefix = `/*`
	commentBlockSuffix = `*/`
	quoteSingle        = '\''
	quoteDouble        = '"'
	quoteGrave         = '`'

	// Used by `ValueOf` for `time.Time`.
	DatetimeLayout = `2006-01-02 15:04:05`

	TagNameDb   = `db`
	TagNameJson = `json`
)

var (
	charsetSpace      = new(charset).addStr(" \t\v")
	charsetNewline    = new(charset).addStr("\r\n")
	charsetWhitespace = new(charset).addSet(charsetSpace).addSet(charsetNewline)
	charsetDelimStart = new(charset).addSet(charsetWhitespace).addStr(`([{.`)
	charsetDelimEnd   = new(charset).addSet(charsetWhitespace).addStr(`,}])`)
)

type charset [256]bool

func (self *charset) has(val byte) bool { return self[val] }

func (self *charset) addStr(vals string) *charset {
	for _, val := range vals {
		self[val] = true
	}
	return self
}

func (self *charset) addSet(vals *charset) *charset {
	for ind, val := range vals {
		if val {
			self[ind] = true
		}
	}
	return self
}

func maybeAppendSpace(val []byte) []byte {
	if hasDelimSuffix(bytesToMutableString(val)) {
		return val
	}
	return append(val, ` `...)
}

func appendMaybeSpaced(text []byte, suffix string) []byte {
	if !hasDelimSuffix(bytesToMutableString(text)) && !hasDelimPrefix(suffix) {
		text = append(text, ` `...)
	}
	text = append(text, suffix...)
	return text
}

func hasDelimPrefix(text string) bool {
	return len(text) == 0 || charsetDelimEnd.has(text[0])
}

func hasDelimSuffix(text string) bool {
	return len(text) == 0 || charsetDelimStart.has(text[len(text)-1])
}

func try(err error) {
	if err != nil {
		panic(err)
	}
}

func try1[A any](val A, err error) A {
	try(err)
	return val
}

// Must be deferred.
func rec(ptr *error) {
	val := recover()
	if val == nil {
		return
	}

	err, _ := val.(error)
	if err != nil {
		*ptr = err
		return
	}

	panic(val)
}

/*
Allocation-free conversion. Reinterprets a byte slice as a string. Borrowed from
the standard library. Reasonably safe. Should not be used when the underlying
byte array is volatile, for example when it's part of a scratch buffer.
*/
func bytesToMutableString(bytes []byte) string {
	return *(*string)(unsafe.Pointer(&bytes))
}

func itoa(val int64) string { return strconv.FormatInt(val, 10) }

func growBytes(prev []byte, size int) []byte {
	len, cap := len(prev), cap(prev)
	if cap-len >= size {
		return prev
	}

	next := make([]byte, len, 2*cap+size)
	copy(next, prev)
	return next
}

func growInterfaces(prev []any, size int) []any {
	len, cap := len(prev), cap(prev)
	if cap-len >= size {
		return prev
	}

	next := make([]any, len, 2*cap+size)
	copy(next, prev)
	return next
}

func copySlice[A any](src []A) []A {
	if src == nil {
		return nil
	}
	out := make([]A, len(src))
	copy(out, src)
	return out
}

func hasClause(vals []Clause, fun func(Clause) bool) bool {
	for _, val := range vals {
		if fun(val) {
			return true
		}
	}
	return false
}

func normJsonPath(val string) string {
	if strings.HasPrefix(val, `$`) {
		return val
	}
	return `$.` + val
}

// Returns the field's DB column name from the "db" tag, following the JSON
// convention of eliding anything after a comma and treating "-" as a
// non-name.
func FieldDbName(field r.StructField) string {
	return refut.TagIdent(field.Tag.Get(TagNameDb))
}

// Same as `FieldDbName` but for the "json" tag.
func FieldJsonName(field r.StructField) string {
	return refut.TagIdent(field.Tag.Get(TagNameJson))
}

func isNilRval(val r.Value) bool {
	if !val.IsValid() {
		return true
	}
	switch val.Kind() {
	case r.Chan, r.Func, r.Interface, r.Map, r.Pointer, r.Slice, r.UnsafePointer:
		return val.IsNil()
	default:
		return false
	}
}
