package qbuild

/*
Appends " WHERE col mark val". Right after an open group, the predicate is
appended bare: "(col mark val". The mark must be one of `Operators`.
*/
func (self *Composer) Where(col, mark string, val Value) *Composer {
	return self.compare(ClauseWhere, col, mark, val)
}

/*
Appends " AND col mark val". Doesn't verify that a WHERE already exists, so an
AND before any WHERE produces exactly the text asked for.
*/
func (self *Composer) And(col, mark string, val Value) *Composer {
	return self.compare(ClauseAnd, col, mark, val)
}

// Appends " OR col mark val". See `.And`.
func (self *Composer) Or(col, mark string, val Value) *Composer {
	return self.compare(ClauseOr, col, mark, val)
}

// Appends " WHERE col IN (v1, v2)". Requires at least one value.
func (self *Composer) WhereIn(col string, vals ...Value) *Composer {
	return self.in(ClauseWhereIn, col, false, vals)
}

// Appends " WHERE col NOT IN (v1, v2)". Requires at least one value.
func (self *Composer) WhereNotIn(col string, vals ...Value) *Composer {
	return self.in(ClauseWhereNotIn, col, true, vals)
}

// Appends " AND col IN (v1, v2)". Requires at least one value.
func (self *Composer) AndIn(col string, vals ...Value) *Composer {
	return self.in(ClauseAndIn, col, false, vals)
}

// Appends " AND col NOT IN (v1, v2)". Requires at least one value.
func (self *Composer) AndNotIn(col string, vals ...Value) *Composer {
	return self.in(ClauseAndNotIn, col, true, vals)
}

/*
Appends a LIKE search for "%pattern%" over the given columns. Placement depends
on what came before:

	* As the first predicate: " WHERE a LIKE '%x%' OR b LIKE '%x%'".
	* After another predicate: " AND (a LIKE '%x%' OR b LIKE '%x%')", or
	  " AND a LIKE '%x%'" for a single column.
	* Right after an open group: "(a LIKE '%x%' OR b LIKE '%x%'".
*/
func (self *Composer) Like(cols []string, pattern string) (out *Composer) {
	defer self.rec(ClauseLike, &out)
	if self.err != nil {
		return self
	}

	const while = `appending LIKE`
	sp := self.next(ClauseLike)
	requireNonEmpty(while, len(cols))
	self.idents(while, cols...)
	self.check(pattern)

	exprs := make([]Expr, 0, len(cols))
	for _, val := range cols {
		exprs = append(exprs, ident(val))
	}

	self.appendCond(sp, ClauseLike, likeExpr{
		Cols:    exprs,
		Pattern: pattern,
		Paren:   sp == spliceContinue,
	})
	self.push(ClauseLike)
	return self
}

/*
Opens a parenthesized group: " WHERE (", " AND (" or " OR (". Right after
another open group, only `GroupWhere` is accepted and appends a bare "(". Every
group must be closed via `.CloseGroup` before finishing.
*/
func (self *Composer) OpenGroup(kind Group) (out *Composer) {
	op := kind.clause()
	defer self.rec(op, &out)
	if self.err != nil {
		return self
	}

	if op == ClauseNone {
		panic(ErrInvalidInput.while(`opening group`).becausef(`unknown group kind %d`, kind))
	}

	sp := self.next(op)
	seg := openGroup{kw: kind.String()}
	if sp == spliceBare {
		seg.kw = ``
	}

	self.appendSeg(seg)
	self.groups = append(self.groups, kind)
	self.push(op)
	return self
}

// Shortcut for `.OpenGroup(GroupWhere)`.
func (self *Composer) WhereGroup() *Composer { return self.OpenGroup(GroupWhere) }

// Shortcut for `.OpenGroup(GroupAnd)`.
func (self *Composer) AndGroup() *Composer { return self.OpenGroup(GroupAnd) }

// Shortcut for `.OpenGroup(GroupOr)`.
func (self *Composer) OrGroup() *Composer { return self.OpenGroup(GroupOr) }

// Closes the most recently opened group. Fails if no group is open.
func (self *Composer) CloseGroup() (out *Composer) {
	defer self.rec(ClauseCloseGroup, &out)
	if self.err != nil {
		return self
	}

	self.next(ClauseCloseGroup)
	if len(self.groups) == 0 {
		panic(ErrUnbalancedGroup.while(`closing group`).becausef(`no open group`))
	}

	self.groups = self.groups[:len(self.groups)-1]
	self.appendSeg(closeGroup{})
	self.push(ClauseCloseGroup)
	return self
}

func (self *Composer) compare(op Clause, col, mark string, val Value) (out *Composer) {
	defer self.rec(op, &out)
	if self.err != nil {
		return self
	}

	while := `appending ` + op.String()
	sp := self.next(op)
	self.idents(while, col)
	validateOperator(while, mark)
	self.checkValues(val)

	self.appendCond(sp, op, compare{Col: ident(col), Op: mark, Val: val})
	self.push(op)
	return self
}

func (self *Composer) in(op Clause, col string, not bool, vals []Value) (out *Composer) {
	defer self.rec(op, &out)
	if self.err != nil {
		return self
	}

	while := `appending ` + op.String()
	sp := self.next(op)
	self.idents(while, col)
	requireNonEmpty(while, len(vals))
	self.checkValues(vals...)

	self.appendCond(sp, op, inList{Col: ident(col), Not: not, Vals: copySlice(vals)})
	self.push(op)
	return self
}

func (self *Composer) appendCond(sp splice, op Clause, expr Expr) {
	self.appendSeg(&cond{conn: connective(sp, op), expr: expr})
}

/*
Keyword preceding a predicate. Operations with a fixed keyword always use it;
LIKE and JSON_CONTAINS pick WHERE or AND depending on the splice.
*/
func connective(sp splice, op Clause) string {
	if sp == spliceBare {
		return ``
	}

	switch op {
	case ClauseWhere, ClauseWhereIn, ClauseWhereNotIn:
		return `WHERE`
	case ClauseAnd, ClauseAndIn, ClauseAndNotIn:
		return `AND`
	case ClauseOr:
		return `OR`
	}

	if sp == spliceContinue {
		return `AND`
	}
	return `WHERE`
}

// Column of a simple predicate, used to match JSON rewrites.
func predicateCol(val Expr) (string, bool) {
	switch val := val.(type) {
	case compare:
		return identName(val.Col)
	case inList:
		return identName(val.Col)
	default:
		return ``, false
	}
}
