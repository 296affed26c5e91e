package qbuild

import (
	"github.com/rs/zerolog"
)

// Settings shared by every `Composer` made by a `Builder`.
type Options struct {
	// Denylist applied to identifiers and literals. Nil means
	// `DefaultSanitizer`. Use `&Sanitizer{}` to accept everything.
	Sanitizer *Sanitizer

	// Placeholder style of `Composer.Bind`. `PlaceholderInline` means
	// `PlaceholderQuestion`.
	Placeholder Placeholder

	// Receives a warning for the first failed operation of each composer.
	// Nil means no logging.
	Logger *zerolog.Logger
}

/*
Factory of `Composer` values sharing the same `Options`. The zero value is
ready to use. Package-level constructors such as `Select` use `Std`.
*/
type Builder struct{ Options }

// Used by the package-level constructors.
var Std Builder

// Shortcut for `Std.Select`.
func Select(cols ...string) *Composer { return Std.Select(cols...) }

// Shortcut for `Std.SelectStruct`.
func SelectStruct(typ any) *Composer { return Std.SelectStruct(typ) }

// Shortcut for `Std.Count`.
func Count(col string) *Composer { return Std.Count(col) }

// Shortcut for `Std.Insert`.
func Insert(cols []string, vals []Value) *Composer { return Std.Insert(cols, vals) }

// Shortcut for `Std.InsertStruct`.
func InsertStruct(val any) *Composer { return Std.InsertStruct(val) }

// Shortcut for `Std.Update`.
func Update() *Composer { return Std.Update() }

// Shortcut for `Std.Delete`.
func Delete() *Composer { return Std.Delete() }

// Starts "SELECT a, b FROM". Requires at least one column; use "*" for all.
func (self Builder) Select(cols ...string) (out *Composer) {
	out = newComposer(self.Options, KindSelect, &selectHead{})
	defer out.rec(ClauseSelect, &out)

	requireNonEmpty(`composing SELECT`, len(cols))
	out.idents(`composing SELECT`, cols...)

	items := make([]selectItem, 0, len(cols))
	for _, val := range cols {
		items = append(items, selectItem{Expr: ident(val)})
	}
	out.head = &selectHead{items}
	return out
}

// Starts "SELECT COUNT(col) FROM". The column may be "*".
func (self Builder) Count(col string) (out *Composer) {
	out = newComposer(self.Options, KindCount, &countHead{})
	defer out.rec(ClauseCount, &out)

	out.idents(`composing COUNT`, col)
	out.head = &countHead{selectItem{Expr: ident(col)}}
	return out
}

/*
Starts "INSERT INTO (a, b) VALUES (1, 2)". The table is bound later via
`Composer.Table` and is placed right after "INTO". More rows can be added via
`Composer.Values`. The column and value counts must match.
*/
func (self Builder) Insert(cols []string, vals []Value) (out *Composer) {
	out = newComposer(self.Options, KindInsert, &insertHead{})
	defer out.rec(ClauseInsert, &out)

	const while = `composing INSERT`
	requireNonEmpty(while, len(cols))
	out.idents(while, cols...)
	validateRow(while, len(cols), vals)
	out.checkValues(vals...)

	out.head = &insertHead{
		cols: copySlice(cols),
		rows: [][]Value{copySlice(vals)},
	}
	return out
}

// Starts "UPDATE". Usually followed by `.Table` and `.Set`.
func (self Builder) Update() *Composer {
	return newComposer(self.Options, KindUpdate, ident(`UPDATE`))
}

// Starts "DELETE FROM". Usually followed by `.Table` and `.Where`.
func (self Builder) Delete() *Composer {
	return newComposer(self.Options, KindDelete, ident(`DELETE FROM`))
}

func validateRow(while string, count int, vals []Value) {
	if len(vals) != count {
		panic(ErrInvalidInput.while(while).becausef(`expected %d values to match the columns, got %d`, count, len(vals)))
	}
}

/*
Binds the table. For INSERT, the name goes right after "INTO"; for other
statements, it's appended at the current position, which is normally right
after the statement head. Can be called only once.
*/
func (self *Composer) Table(name string) (out *Composer) {
	defer self.rec(ClauseTable, &out)
	if self.err != nil {
		return self
	}

	self.next(ClauseTable)
	self.idents(`binding table`, name)

	head, ok := self.head.(*insertHead)
	if ok {
		head.table = name
	} else {
		self.appendSeg(ident(name))
	}
	self.table = name
	self.push(ClauseTable)
	return self
}

// Adds another row to an INSERT. The value count must match the columns.
func (self *Composer) Values(vals ...Value) (out *Composer) {
	defer self.rec(ClauseValues, &out)
	if self.err != nil {
		return self
	}

	self.next(ClauseValues)
	head := self.head.(*insertHead)
	validateRow(`adding VALUES row`, len(head.cols), vals)
	self.checkValues(vals...)

	head.rows = append(head.rows, copySlice(vals))
	self.push(ClauseValues)
	return self
}
