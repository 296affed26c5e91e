package qbuild

import (
	r "reflect"
	"strings"

	"github.com/goccy/go-json"
	"github.com/mitranim/refut"
)

// Single parsed ordering: a DB column and an optional direction.
type Ord struct {
	Col string
	Dir Dir
}

// Implement the `Expr` interface.
func (self Ord) AppendExpr(bui *Bui) {
	orderItem{Expr: ident(self.Col), Dir: self.Dir}.AppendExpr(bui)
}

/*
Converts orderings supplied by a client, for example via URL query or JSON,
into `Ord` values. Each input has the form:

	<field> <asc|desc>?

The field must be the JSON name of a field in `.Type`, and that field must
also have a DB column name. The output uses DB column names, so clients never
name columns directly.
*/
type OrdParser struct {
	// Must be a struct type. See `MakeOrdParser`.
	Type r.Type

	// When true, unknown fields are skipped instead of causing an error.
	Lax bool
}

/*
Makes a parser for the struct type of the given value, which is used only as a
type carrier. Pointers are dereferenced.
*/
func MakeOrdParser(typ any) OrdParser {
	if typ == nil {
		return OrdParser{}
	}
	return OrdParser{Type: refut.RtypeDeref(r.TypeOf(typ))}
}

/*
Parses the given orderings. Empty and whitespace-only strings are ignored.
Fails with `ErrUnknownField` for fields that are not allowed, unless `.Lax` is
set.
*/
func (self OrdParser) Parse(src ...string) (out []Ord, err error) {
	defer rec(&err)
	cols := self.columns()

	for _, val := range src {
		if strings.TrimSpace(val) == `` {
			continue
		}
		ord, ok := self.parseOrd(cols, val)
		if ok {
			out = append(out, ord)
		}
	}
	return
}

// Same as `.Parse` for a JSON array of strings.
func (self OrdParser) ParseJson(src []byte) ([]Ord, error) {
	var vals []string
	err := json.Unmarshal(src, &vals)
	if err != nil {
		return nil, ErrInvalidInput.while(`decoding orderings`).because(err)
	}
	return self.Parse(vals...)
}

func (self OrdParser) parseOrd(cols map[string]string, src string) (Ord, bool) {
	const while = `parsing ordering`

	words := strings.Fields(src)
	if len(words) > 2 {
		panic(ErrInvalidInput.while(while).becausef(`expected "<field> [asc|desc]", got %q`, src))
	}

	col, ok := cols[words[0]]
	if !ok {
		if self.Lax {
			return Ord{}, false
		}
		panic(ErrUnknownField.while(while).becausef(`no field %q with a DB column in type %q`, words[0], self.Type))
	}

	var out Ord
	out.Col = col
	if len(words) > 1 {
		try(out.Dir.Parse(words[1]))
	}
	return out, true
}

// JSON field names to DB column names.
func (self OrdParser) columns() map[string]string {
	if self.Type == nil || self.Type.Kind() != r.Struct {
		panic(ErrInvalidInput.while(`parsing ordering`).becausef(`expected struct type, got %v`, self.Type))
	}

	out := map[string]string{}
	err := refut.TraverseStructRtype(self.Type, func(sfield r.StructField, _ []int) error {
		if !sfield.IsExported() {
			return nil
		}
		key, col := FieldJsonName(sfield), FieldDbName(sfield)
		if key != `` && col != `` {
			out[key] = col
		}
		return nil
	})
	try(err)
	return out
}

/*
Appends the parsed orderings like a series of `.OrderBy` calls, recorded as a
single `ClauseOrderBy`. Empty input is a nop.
*/
func (self *Composer) OrderByOrds(vals ...Ord) (out *Composer) {
	defer self.rec(ClauseOrderBy, &out)
	if self.err != nil || len(vals) == 0 {
		return self
	}

	sp := self.next(ClauseOrderBy)
	for _, val := range vals {
		self.idents(`appending ORDER BY`, val.Col)
	}

	for _, val := range vals {
		self.appendOrder(sp, orderItem{Expr: ident(val.Col), Dir: val.Dir})
		sp = spliceContinue
	}
	self.push(ClauseOrderBy)
	return self
}
