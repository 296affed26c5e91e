package qbuild

import "strings"

const (
	DirNone Dir = 0
	DirAsc  Dir = 1
	DirDesc Dir = 2
)

// Short for "direction". Enum for ordering direction: none, "ASC", "DESC".
type Dir byte

// Implement the `Appender` interface, sometimes allowing more efficient text
// encoding.
func (self Dir) Append(text []byte) []byte {
	return appendMaybeSpaced(text, self.String())
}

// Implement `fmt.Stringer`. Returns the SQL keyword.
func (self Dir) String() string {
	switch self {
	default:
		return ``
	case DirAsc:
		return `ASC`
	case DirDesc:
		return `DESC`
	}
}

/*
Parses from a string, which must be empty or "asc"/"desc" in any letter case.
Anything else is an error with `ErrCodeInvalidDirection`.
*/
func (self *Dir) Parse(src string) error {
	switch {
	case src == ``:
		*self = DirNone
	case strings.EqualFold(src, `asc`):
		*self = DirAsc
	case strings.EqualFold(src, `desc`):
		*self = DirDesc
	default:
		return ErrInvalidDirection.while(`parsing order direction`).becausef(`unrecognized direction %q`, src)
	}
	return nil
}

// Implement `encoding.TextMarshaler`.
func (self Dir) MarshalText() ([]byte, error) {
	return []byte(self.String()), nil
}

// Implement `encoding.TextUnmarshaler`.
func (self *Dir) UnmarshalText(src []byte) error {
	return self.Parse(string(src))
}

// Implement `fmt.GoStringer` for debug purposes. Returns valid Go code
// representing this value.
func (self Dir) GoString() string {
	switch self {
	default:
		return `qbuild.DirNone`
	case DirAsc:
		return `qbuild.DirAsc`
	case DirDesc:
		return `qbuild.DirDesc`
	}
}

func parseDir(src string) Dir {
	var out Dir
	try(out.Parse(src))
	return out
}

/*
Short for "orderings". The ORDER BY clause: "ORDER BY" followed by
comma-separated items. Consecutive ordering operations on a `Composer` extend
the same list.
*/
type orderList struct{ items []Expr }

// Implement the `Expr` interface.
func (self *orderList) AppendExpr(bui *Bui) {
	bui.Str(`ORDER BY`)
	bui.List(self.items...)
}

func (self *orderList) cloneSegment() segment {
	return &orderList{copySlice(self.items)}
}

// Single ORDER BY item: an expression with an optional direction.
type orderItem struct {
	Expr Expr
	Dir  Dir
}

// Implement the `Expr` interface.
func (self orderItem) AppendExpr(bui *Bui) {
	bui.Expr(self.Expr)
	if self.Dir != DirNone {
		bui.Str(self.Dir.String())
	}
}

// MySQL custom ordering: `FIELD(col, v1, v2) DIR`.
type fieldOrder struct {
	Col  string
	Vals []Value
	Dir  Dir
}

// Implement the `Expr` interface.
func (self fieldOrder) AppendExpr(bui *Bui) {
	bui.Str(`FIELD(`)
	bui.Str(self.Col)
	for _, val := range self.Vals {
		bui.Raw(`,`)
		bui.Value(val)
	}
	bui.Str(`)`)
	if self.Dir != DirNone {
		bui.Str(self.Dir.String())
	}
}

type orderRandom struct{}

// Implement the `Expr` interface.
func (orderRandom) AppendExpr(bui *Bui) { bui.Str(`RAND()`) }
