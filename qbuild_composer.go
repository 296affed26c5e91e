package qbuild

import (
	"slices"

	"github.com/rs/zerolog"
)

/*
Fluent SQL statement composer. Obtained from the constructors `Select`,
`Count`, `Insert`, `InsertStruct`, `Update`, `Delete` or the equivalent
`Builder` methods. Every method appends to the statement and returns the same
composer for chaining:

	text, err := qbuild.Select(`id`, `title`).
		Table(`blogs`).
		Where(`id`, `=`, qbuild.Int(10)).
		Finish()

Internally, the statement is a list of nodes (select list, predicates, SET and
ORDER BY lists, joins, unions) which are rendered only by `.Finish`, `.Bind` or
`.String`. Every operation consults the history of previously applied clauses
to decide where its output goes, see `transition`.

Errors are sticky. The first failing operation stores its error and leaves the
statement exactly as it was before the call; every later operation is a nop.
The error is available from `.Err`, and is returned by `.Finish` and `.Bind`.

Not safe for concurrent mutation. Use `.Clone` to hand a copy to another
goroutine.
*/
type Composer struct {
	opts    Options
	kind    Kind
	table   string
	head    segment
	prefix  []string
	segs    []segment
	wraps   []int
	hist    []Clause
	groups  []Group
	extract Clause
	err     error
}

func newComposer(opts Options, kind Kind, head segment) *Composer {
	return &Composer{
		opts: opts,
		kind: kind,
		head: head,
		hist: []Clause{kind.Clause()},
	}
}

// First error encountered by any operation, or nil.
func (self *Composer) Err() error { return self.err }

// Statement kind, fixed at construction.
func (self *Composer) Kind() Kind { return self.kind }

// Table bound via `.Table`, if any.
func (self *Composer) TableName() string { return self.table }

// Copy of the clause history. The first element always matches `.Kind`.
func (self *Composer) History() []Clause { return copySlice(self.hist) }

// Most recently applied clause.
func (self *Composer) Last() Clause { return self.hist[len(self.hist)-1] }

// Number of currently open groups. Must be zero when finishing.
func (self *Composer) Depth() int { return len(self.groups) }

/*
Returns a deep copy which can be modified or rendered independently of the
original, including from another goroutine.
*/
func (self *Composer) Clone() *Composer {
	out := *self
	out.head = self.head.cloneSegment()
	out.prefix = copySlice(self.prefix)
	out.wraps = copySlice(self.wraps)
	out.hist = copySlice(self.hist)
	out.groups = copySlice(self.groups)
	out.segs = make([]segment, len(self.segs))
	for ind, val := range self.segs {
		out.segs[ind] = val.cloneSegment()
	}
	return &out
}

/*
Renders the statement with every value inlined as a literal and appends the
terminating ";". Records a `ClauseFinish` tag. Fails if any previous operation
failed, or if a group is still open.
*/
func (self *Composer) Finish() (string, error) {
	bui, err := self.render(PlaceholderInline)
	if err != nil {
		return ``, err
	}
	self.push(ClauseFinish)
	return bui.String(), nil
}

/*
Same as `.Finish`, but in binding mode: values are replaced with placeholders
(`Options.Placeholder`, "?" by default) and returned as arguments. Identifiers,
operators, LIMIT and OFFSET, datetime keywords and time zone statements stay
inline. The output is suitable for `database/sql`:

	text, args, err := composer.Bind()
	rows, err := db.QueryContext(ctx, text, args...)
*/
func (self *Composer) Bind() (string, []any, error) {
	style := self.opts.Placeholder
	if style == PlaceholderInline {
		style = PlaceholderQuestion
	}

	bui, err := self.render(style)
	if err != nil {
		return ``, nil, err
	}
	self.push(ClauseFinish)
	text, args := bui.Reify()
	return text, args, nil
}

/*
Implement `fmt.Stringer` for debug purposes. Renders the statement built so
far with inlined values and without the terminating ";", ignoring errors and
open groups.
*/
func (self *Composer) String() string {
	var bui Bui
	self.AppendExpr(&bui)
	return bui.String()
}

/*
Implement the `Expr` interface: appends the statement without the terminating
";". This allows to embed one composer into another rendering.
*/
func (self *Composer) AppendExpr(bui *Bui) {
	for _, val := range self.prefix {
		bui.Str(val)
	}
	self.appendBody(bui)
}

func (self *Composer) appendBody(bui *Bui) {
	for range self.wraps {
		bui.Str(`(`)
	}
	bui.Expr(self.head)
	for ind, val := range self.segs {
		self.closeWraps(bui, ind)
		bui.Expr(val)
	}
	self.closeWraps(bui, len(self.segs))
}

func (self *Composer) closeWraps(bui *Bui, ind int) {
	for _, val := range self.wraps {
		if val == ind {
			bui.Str(`)`)
		}
	}
}

func (self *Composer) render(style Placeholder) (bui Bui, err error) {
	if self.err != nil {
		return bui, self.err
	}
	if len(self.groups) > 0 {
		return bui, ErrUnbalancedGroup.while(`finishing statement`).becausef(`%d group(s) still open`, len(self.groups))
	}

	defer rec(&err)
	bui = MakeBui(256, 8, style)
	self.AppendExpr(&bui)
	bui.Raw(`;`)
	return
}

func (self *Composer) push(op Clause) { self.hist = append(self.hist, op) }

// Inserts the tag right after the statement kind instead of at the end.
func (self *Composer) pushFront(op Clause) { self.hist = slices.Insert(self.hist, 1, op) }

// Panics with the reason why the operation can't be applied.
func (self *Composer) next(op Clause) splice { return try1(transition(self.hist, op)) }

func (self *Composer) logger() *zerolog.Logger {
	if self.opts.Logger != nil {
		return self.opts.Logger
	}
	return &nopLogger
}

var nopLogger = zerolog.Nop()

func (self *Composer) sanitizer() *Sanitizer {
	if self.opts.Sanitizer != nil {
		return self.opts.Sanitizer
	}
	return defaultSanitizer
}

var defaultSanitizer = DefaultSanitizer()

/*
Must be deferred by every operation, with a pointer to its named result.
Converts a panic with an error, raised while validating the operation's inputs,
into the sticky error, and makes the operation return the receiver either way.
*/
func (self *Composer) rec(op Clause, out **Composer) {
	*out = self
	val := recover()
	if val == nil {
		return
	}

	err, _ := val.(error)
	if err == nil {
		panic(val)
	}
	self.fail(op, err)
}

func (self *Composer) fail(op Clause, err error) {
	if self.err != nil {
		return
	}
	self.err = err
	self.logger().Warn().
		Str(`op`, op.String()).
		Str(`last`, self.Last().String()).
		Str(`code`, string(errCode(err))).
		Err(err).
		Msg(`statement composition failed`)
}

// Validates and sanitizes identifiers: columns, tables, aliases.
func (self *Composer) idents(while string, vals ...string) {
	for _, val := range vals {
		if val == `` {
			panic(ErrInvalidInput.while(while).becausef(`empty identifier`))
		}
	}
	try(self.sanitizer().CheckAll(vals...))
}

// Sanitizes optional text such as aliases and JSON paths.
func (self *Composer) check(vals ...string) {
	try(self.sanitizer().CheckAll(vals...))
}

func (self *Composer) checkValues(vals ...Value) {
	san := self.sanitizer()
	for _, val := range vals {
		try(validateFinite(`checking value`, val))
		try(san.CheckValue(val))
	}
}

func (self *Composer) checkJson(while string, val JsonLiteral) {
	if val == nil {
		panic(ErrInvalidInput.while(while).becausef(`missing JSON value`))
	}
	try(self.sanitizer().CheckJson(val))
}

func requireNonEmpty(while string, count int) {
	if count == 0 {
		panic(ErrInvalidInput.while(while).becausef(`expected at least one element`))
	}
}

/*
Comparison operators accepted by `Where`, `And`, `Or` and `Having`. Anything
else fails with `ErrCodeInvalidOperator`.
*/
var Operators = []string{`=`, `<`, `>`, `<=`, `>=`, `!=`, `<>`}

func validateOperator(while, val string) {
	if !slices.Contains(Operators, val) {
		panic(ErrInvalidOperator.while(while).becausef(`unrecognized comparison operator %q`, val))
	}
}

// Returns the last node if it has the expected type, or panics.
func lastSeg[A segment](self *Composer) A {
	if len(self.segs) > 0 {
		out, ok := self.segs[len(self.segs)-1].(A)
		if ok {
			return out
		}
	}
	var zero A
	panic(ErrInternal.while(`splicing`).becausef(`expected the last node to be %T`, zero))
}

func (self *Composer) appendSeg(val segment) { self.segs = append(self.segs, val) }
