package qbuild

/*
Node stored by `Composer`. Nodes that are modified by later operations are
pointers and must be deep-copied by `cloneSegment`; immutable nodes may return
themselves.
*/
type segment interface {
	Expr
	cloneSegment() segment
}

// Identifier or keyword appended verbatim: a column, a table, "UPDATE".
type ident string

// Implement the `Expr` interface.
func (self ident) AppendExpr(bui *Bui) { bui.Str(string(self)) }

func (self ident) cloneSegment() segment { return self }

func identName(val Expr) (string, bool) {
	out, ok := val.(ident)
	return string(out), ok
}

// Adapter that allows to use a `Value` where an `Expr` is expected.
type valueExpr struct{ Value Value }

// Implement the `Expr` interface.
func (self valueExpr) AppendExpr(bui *Bui) { bui.Value(self.Value) }

// Item of a select list, with an optional alias.
type selectItem struct {
	Expr  Expr
	Alias string
}

// Implement the `Expr` interface.
func (self selectItem) AppendExpr(bui *Bui) {
	bui.Expr(self.Expr)
	if self.Alias != `` {
		bui.Str(`AS`)
		bui.Str(self.Alias)
	}
}

// "SELECT a, b FROM".
type selectHead struct{ items []selectItem }

// Implement the `Expr` interface.
func (self *selectHead) AppendExpr(bui *Bui) {
	bui.Str(`SELECT`)
	for ind, val := range self.items {
		if ind > 0 {
			bui.Raw(`,`)
		}
		bui.Expr(val)
	}
	bui.Str(`FROM`)
}

func (self *selectHead) cloneSegment() segment {
	return &selectHead{copySlice(self.items)}
}

// "SELECT COUNT(col) FROM".
type countHead struct{ item selectItem }

// Implement the `Expr` interface.
func (self *countHead) AppendExpr(bui *Bui) {
	bui.Str(`SELECT`)
	bui.Str(`COUNT(`)
	bui.Expr(self.item.Expr)
	bui.Str(`)`)
	if self.item.Alias != `` {
		bui.Str(`AS`)
		bui.Str(self.item.Alias)
	}
	bui.Str(`FROM`)
}

func (self *countHead) cloneSegment() segment {
	out := *self
	return &out
}

/*
"INSERT INTO table (a, b) VALUES (1, 2), (3, 4)". The table is bound later by
`Composer.Table`; without it, the output has no table name.
*/
type insertHead struct {
	table string
	cols  []string
	rows  [][]Value
}

// Implement the `Expr` interface.
func (self *insertHead) AppendExpr(bui *Bui) {
	bui.Str(`INSERT INTO`)
	if self.table != `` {
		bui.Str(self.table)
	}

	bui.Str(`(`)
	for ind, val := range self.cols {
		if ind > 0 {
			bui.Raw(`,`)
		}
		bui.Str(val)
	}
	bui.Str(`)`)

	bui.Str(`VALUES`)
	for ind, row := range self.rows {
		if ind > 0 {
			bui.Raw(`,`)
		}
		bui.Str(`(`)
		for ind, val := range row {
			if ind > 0 {
				bui.Raw(`,`)
			}
			bui.Value(val)
		}
		bui.Str(`)`)
	}
}

func (self *insertHead) cloneSegment() segment {
	return &insertHead{
		table: self.table,
		cols:  copySlice(self.cols),
		rows:  copySlice(self.rows),
	}
}

/*
Predicate preceded by its connector: "WHERE", "AND", "OR", or nothing for the
first predicate inside a group.
*/
type cond struct {
	conn string
	expr Expr
}

// Implement the `Expr` interface.
func (self *cond) AppendExpr(bui *Bui) {
	if self.conn != `` {
		bui.Str(self.conn)
	}
	bui.Expr(self.expr)
}

func (self *cond) cloneSegment() segment {
	out := *self
	return &out
}

// "col op val".
type compare struct {
	Col Expr
	Op  string
	Val Value
}

// Implement the `Expr` interface.
func (self compare) AppendExpr(bui *Bui) {
	bui.Expr(self.Col)
	bui.Str(self.Op)
	bui.Value(self.Val)
}

// "col IN (a, b)" or "col NOT IN (a, b)".
type inList struct {
	Col  Expr
	Not  bool
	Vals []Value
}

// Implement the `Expr` interface.
func (self inList) AppendExpr(bui *Bui) {
	bui.Expr(self.Col)
	if self.Not {
		bui.Str(`NOT`)
	}
	bui.Str(`IN`)
	bui.Str(`(`)
	for ind, val := range self.Vals {
		if ind > 0 {
			bui.Raw(`,`)
		}
		bui.Value(val)
	}
	bui.Str(`)`)
}

/*
"a LIKE '%x%' OR b LIKE '%x%'". When `Paren` is set and there are multiple
columns, the alternatives are wrapped in parens.
*/
type likeExpr struct {
	Cols    []Expr
	Pattern string
	Paren   bool
}

// Implement the `Expr` interface.
func (self likeExpr) AppendExpr(bui *Bui) {
	paren := self.Paren && len(self.Cols) > 1
	if paren {
		bui.Str(`(`)
	}
	for ind, col := range self.Cols {
		if ind > 0 {
			bui.Str(`OR`)
		}
		bui.Expr(col)
		bui.Str(`LIKE`)
		bui.Value(Str(`%` + self.Pattern + `%`))
	}
	if paren {
		bui.Str(`)`)
	}
}

// "JSON_EXTRACT(col, '$.path')".
type jsonExtract struct {
	Col  string
	Path string
}

// Implement the `Expr` interface.
func (self jsonExtract) AppendExpr(bui *Bui) {
	bui.Str(`JSON_EXTRACT(`)
	bui.Str(self.Col)
	bui.Raw(`,`)
	bui.Literal(Str(self.Path))
	bui.Str(`)`)
}

// "JSON_CONTAINS(col, candidate[, '$.path'])", optionally negated.
type jsonContains struct {
	Not  bool
	Col  Expr
	Val  JsonLiteral
	Path string
}

// Implement the `Expr` interface.
func (self jsonContains) AppendExpr(bui *Bui) {
	if self.Not {
		bui.Str(`NOT`)
	}
	bui.Str(`JSON_CONTAINS(`)
	bui.Expr(self.Col)
	bui.Raw(`,`)
	appendJsonCandidate(bui, self.Val)
	if self.Path != `` {
		bui.Raw(`,`)
		bui.Literal(Str(self.Path))
	}
	bui.Str(`)`)
}

// "WHERE (", "AND (", "OR (", or a bare "(" inside another group.
type openGroup struct{ kw string }

// Implement the `Expr` interface.
func (self openGroup) AppendExpr(bui *Bui) {
	if self.kw != `` {
		bui.Str(self.kw)
	}
	bui.Str(`(`)
}

func (self openGroup) cloneSegment() segment { return self }

type closeGroup struct{}

// Implement the `Expr` interface.
func (closeGroup) AppendExpr(bui *Bui) { bui.Str(`)`) }

func (self closeGroup) cloneSegment() segment { return self }

// The SET clause. Consecutive SET-family operations extend the same list.
type setList struct{ items []Expr }

// Implement the `Expr` interface.
func (self *setList) AppendExpr(bui *Bui) {
	bui.Str(`SET`)
	bui.List(self.items...)
}

func (self *setList) cloneSegment() segment {
	return &setList{copySlice(self.items)}
}

// "col = val".
type assign struct {
	Col string
	Val Expr
}

// Implement the `Expr` interface.
func (self assign) AppendExpr(bui *Bui) {
	bui.Str(self.Col)
	bui.Str(`=`)
	bui.Expr(self.Val)
}

/*
"JSON_SET(col, '$.a', v)" and friends. `Val` is nil for JSON_REMOVE, which
takes only paths.
*/
type jsonMutation struct {
	Func  string
	Col   string
	Paths []string
	Val   JsonLiteral
}

// Implement the `Expr` interface.
func (self jsonMutation) AppendExpr(bui *Bui) {
	bui.Str(self.Func + `(`)
	bui.Str(self.Col)
	for _, path := range self.Paths {
		bui.Raw(`,`)
		bui.Literal(Str(path))
	}
	if self.Val != nil {
		bui.Raw(`,`)
		appendJsonValue(bui, self.Val)
	}
	bui.Str(`)`)
}

// "GROUP BY a, b".
type groupList struct{ cols []string }

// Implement the `Expr` interface.
func (self *groupList) AppendExpr(bui *Bui) {
	bui.Str(`GROUP BY`)
	for ind, val := range self.cols {
		if ind > 0 {
			bui.Raw(`,`)
		}
		bui.Str(val)
	}
}

func (self *groupList) cloneSegment() segment {
	return &groupList{copySlice(self.cols)}
}

// "HAVING a > 1 AND b < 2".
type havingList struct{ items []Expr }

// Implement the `Expr` interface.
func (self *havingList) AppendExpr(bui *Bui) {
	bui.Str(`HAVING`)
	for ind, val := range self.items {
		if ind > 0 {
			bui.Str(`AND`)
		}
		bui.Expr(val)
	}
}

func (self *havingList) cloneSegment() segment {
	return &havingList{copySlice(self.items)}
}

// "LIMIT n" or "OFFSET n". Always inline.
type limitExpr struct {
	kw  string
	val int64
}

// Implement the `Expr` interface.
func (self limitExpr) AppendExpr(bui *Bui) {
	bui.Str(self.kw)
	bui.Str(itoa(self.val))
}

func (self limitExpr) cloneSegment() segment { return self }

// "INNER JOIN table ON left = right".
type joinExpr struct {
	kind  string
	table string
	left  string
	right string
}

// Implement the `Expr` interface.
func (self joinExpr) AppendExpr(bui *Bui) {
	bui.Str(self.kind)
	bui.Str(self.table)
	bui.Str(`ON`)
	bui.Str(self.left)
	bui.Str(`=`)
	bui.Str(self.right)
}

func (self joinExpr) cloneSegment() segment { return self }

/*
"UNION (other)" or "UNION ALL (other)". The operand is a private clone and is
never modified afterwards.
*/
type unionExpr struct {
	all   bool
	other *Composer
}

// Implement the `Expr` interface.
func (self unionExpr) AppendExpr(bui *Bui) {
	bui.Str(`UNION`)
	if self.all {
		bui.Str(`ALL`)
	}
	bui.Str(`(`)
	self.other.appendBody(bui)
	bui.Str(`)`)
}

func (self unionExpr) cloneSegment() segment { return self }
