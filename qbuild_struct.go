package qbuild

import (
	r "reflect"

	"github.com/mitranim/refut"
)

/*
Same as `.Select`, but the columns are the `db`-tagged fields of a struct type.
The input is used only as a type carrier and may also be a struct pointer, a
struct slice, or a pointer to either. Nil pointers and slices are fine as long
as they carry a struct type.

	qbuild.SelectStruct((*Blog)(nil)).Table(`blogs`)
	// SELECT id, title FROM blogs
*/
func (self Builder) SelectStruct(typ any) (out *Composer) {
	out = newComposer(self.Options, KindSelect, &selectHead{})
	defer out.rec(ClauseSelect, &out)

	const while = `composing SELECT from struct`
	cols := structTypeColumns(while, structTypeOf(while, typ))
	out.idents(while, cols...)

	items := make([]selectItem, 0, len(cols))
	for _, val := range cols {
		items = append(items, selectItem{Expr: ident(val)})
	}
	out.head = &selectHead{items}
	return out
}

/*
Same as `.Insert`, but columns and values are taken from the fields of a struct
(or a non-nil struct pointer) tagged with `db`. Fields without the tag, with
`db:"-"`, and unexported fields are skipped. Embedded structs are treated as
part of the enclosing struct. Field values are converted via `ValueOf`.

	type Blog struct {
		Id    int64  `db:"id"`
		Title string `db:"title"`
	}
	qbuild.InsertStruct(Blog{10, `Hello`}).Table(`blogs`)
	// INSERT INTO blogs (id, title) VALUES (10, 'Hello')
*/
func (self Builder) InsertStruct(src any) (out *Composer) {
	out = newComposer(self.Options, KindInsert, &insertHead{})
	defer out.rec(ClauseInsert, &out)

	const while = `composing INSERT from struct`
	cols, vals := structColumns(while, src)
	out.idents(while, cols...)
	out.checkValues(vals...)

	out.head = &insertHead{cols: cols, rows: [][]Value{vals}}
	return out
}

/*
Appends the `db`-tagged fields of a struct to the SET list, like calling `.Set`
for each field. Recorded as a single `ClauseSet` in the history.
*/
func (self *Composer) SetStruct(src any) (out *Composer) {
	defer self.rec(ClauseSet, &out)
	if self.err != nil {
		return self
	}

	const while = `appending SET from struct`
	sp := self.next(ClauseSet)
	cols, vals := structColumns(while, src)
	self.idents(while, cols...)
	self.checkValues(vals...)

	items := make([]Expr, 0, len(cols))
	for ind, col := range cols {
		items = append(items, assign{Col: col, Val: valueExpr{vals[ind]}})
	}

	self.appendSet(sp, items...)
	self.push(ClauseSet)
	return self
}

func structTypeOf(while string, src any) r.Type {
	if src == nil {
		panic(ErrInvalidInput.while(while).becausef(`expected struct type, got nil`))
	}

	rtype := refut.RtypeDeref(r.TypeOf(src))
	if rtype.Kind() == r.Slice {
		rtype = refut.RtypeDeref(rtype.Elem())
	}
	if rtype.Kind() != r.Struct {
		panic(ErrInvalidInput.while(while).becausef(`expected struct type, got %q`, rtype))
	}
	return rtype
}

func structTypeColumns(while string, rtype r.Type) (out []string) {
	err := refut.TraverseStructRtype(rtype, func(sfield r.StructField, _ []int) error {
		if !sfield.IsExported() {
			return nil
		}
		col := FieldDbName(sfield)
		if col != `` {
			out = append(out, col)
		}
		return nil
	})
	try(err)

	if len(out) == 0 {
		panic(ErrInvalidInput.while(while).becausef(`struct %q has no fields tagged with %q`, rtype, TagNameDb))
	}
	return
}

func structColumns(while string, src any) (cols []string, vals []Value) {
	rval := r.ValueOf(src)
	if isNilRval(rval) {
		panic(ErrInvalidInput.while(while).becausef(`expected struct, got nil`))
	}

	rtype := refut.RtypeDeref(rval.Type())
	if rtype.Kind() != r.Struct {
		panic(ErrInvalidInput.while(while).becausef(`expected struct, got %q`, rtype))
	}

	err := refut.TraverseStructRval(rval, func(rval r.Value, sfield r.StructField, _ []int) error {
		if !sfield.IsExported() {
			return nil
		}
		col := FieldDbName(sfield)
		if col == `` {
			return nil
		}

		val, err := ValueOf(rval.Interface())
		if err != nil {
			return err
		}
		cols = append(cols, col)
		vals = append(vals, val)
		return nil
	})
	try(err)

	if len(cols) == 0 {
		panic(ErrInvalidInput.while(while).becausef(`struct %q has no fields tagged with %q`, rtype, TagNameDb))
	}
	return
}
