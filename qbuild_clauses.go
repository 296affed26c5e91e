package qbuild

/*
Appends " SET col = val". Consecutive calls, as well as the JSON mutation
methods, extend the same list: " SET a = 1, b = 2".
*/
func (self *Composer) Set(col string, val Value) (out *Composer) {
	defer self.rec(ClauseSet, &out)
	if self.err != nil {
		return self
	}

	sp := self.next(ClauseSet)
	self.idents(`appending SET`, col)
	self.checkValues(val)

	self.appendSet(sp, assign{Col: col, Val: valueExpr{val}})
	self.push(ClauseSet)
	return self
}

func (self *Composer) appendSet(sp splice, items ...Expr) {
	if sp == spliceContinue {
		list := lastSeg[*setList](self)
		list.items = append(list.items, items...)
		return
	}
	self.appendSeg(&setList{items})
}

/*
Appends " ORDER BY col DIR". The direction is "asc" or "desc" in any letter
case, or empty. Right after another ordering, extends the same list:
" ORDER BY a ASC, b DESC". Fails if an ORDER BY exists but isn't the most
recent clause.
*/
func (self *Composer) OrderBy(col, dir string) (out *Composer) {
	defer self.rec(ClauseOrderBy, &out)
	if self.err != nil {
		return self
	}

	sp := self.next(ClauseOrderBy)
	self.idents(`appending ORDER BY`, col)
	item := orderItem{Expr: ident(col), Dir: parseDir(dir)}

	self.appendOrder(sp, item)
	self.push(ClauseOrderBy)
	return self
}

/*
Appends MySQL custom ordering "FIELD(col, v1, v2) DIR". Right after
`.OrderBy`, the FIELD item is inserted at the front of the existing list; right
after another FIELD ordering, it's appended; otherwise it starts a new ORDER BY.
*/
func (self *Composer) OrderByField(col string, vals []Value, dir string) (out *Composer) {
	defer self.rec(ClauseFieldOrdering, &out)
	if self.err != nil {
		return self
	}

	const while = `appending FIELD ordering`
	sp := self.next(ClauseFieldOrdering)
	self.idents(while, col)
	requireNonEmpty(while, len(vals))
	self.checkValues(vals...)
	item := fieldOrder{Col: col, Vals: copySlice(vals), Dir: parseDir(dir)}

	if sp == spliceRewrite {
		list := lastSeg[*orderList](self)
		list.items = append([]Expr{item}, list.items...)
	} else {
		self.appendOrder(sp, item)
	}
	self.push(ClauseFieldOrdering)
	return self
}

// Appends " ORDER BY RAND()". Fails if any ordering already exists.
func (self *Composer) OrderRandom() (out *Composer) {
	defer self.rec(ClauseOrderRandom, &out)
	if self.err != nil {
		return self
	}

	sp := self.next(ClauseOrderRandom)
	self.appendOrder(sp, orderRandom{})
	self.push(ClauseOrderRandom)
	return self
}

func (self *Composer) appendOrder(sp splice, item Expr) {
	if sp == spliceContinue {
		list := lastSeg[*orderList](self)
		list.items = append(list.items, item)
		return
	}
	self.appendSeg(&orderList{[]Expr{item}})
}

// Appends " GROUP BY a, b". Consecutive calls extend the same list.
func (self *Composer) GroupBy(cols ...string) (out *Composer) {
	defer self.rec(ClauseGroupBy, &out)
	if self.err != nil {
		return self
	}

	const while = `appending GROUP BY`
	sp := self.next(ClauseGroupBy)
	requireNonEmpty(while, len(cols))
	self.idents(while, cols...)

	if sp == spliceContinue {
		list := lastSeg[*groupList](self)
		list.cols = append(list.cols, cols...)
	} else {
		self.appendSeg(&groupList{copySlice(cols)})
	}
	self.push(ClauseGroupBy)
	return self
}

/*
Appends " HAVING col mark val". Consecutive calls are joined with AND. The mark
must be one of `Operators`.
*/
func (self *Composer) Having(col, mark string, val Value) (out *Composer) {
	defer self.rec(ClauseHaving, &out)
	if self.err != nil {
		return self
	}

	const while = `appending HAVING`
	sp := self.next(ClauseHaving)
	self.idents(while, col)
	validateOperator(while, mark)
	self.checkValues(val)
	item := compare{Col: ident(col), Op: mark, Val: val}

	if sp == spliceContinue {
		list := lastSeg[*havingList](self)
		list.items = append(list.items, item)
	} else {
		self.appendSeg(&havingList{[]Expr{item}})
	}
	self.push(ClauseHaving)
	return self
}

// Appends " LIMIT n". Always inline. Negative input is an error.
func (self *Composer) Limit(val int64) *Composer {
	return self.limit(ClauseLimit, `LIMIT`, val)
}

// Appends " OFFSET n". Always inline. Negative input is an error.
func (self *Composer) Offset(val int64) *Composer {
	return self.limit(ClauseOffset, `OFFSET`, val)
}

func (self *Composer) limit(op Clause, kw string, val int64) (out *Composer) {
	defer self.rec(op, &out)
	if self.err != nil {
		return self
	}

	self.next(op)
	if val < 0 {
		panic(ErrInvalidInput.while(`appending ` + kw).becausef(`expected non-negative number, got %d`, val))
	}

	self.appendSeg(limitExpr{kw: kw, val: val})
	self.push(op)
	return self
}

// Appends " INNER JOIN table ON left = right".
func (self *Composer) InnerJoin(table, left, right string) *Composer {
	return self.join(ClauseInnerJoin, `INNER JOIN`, table, left, right)
}

// Appends " LEFT JOIN table ON left = right".
func (self *Composer) LeftJoin(table, left, right string) *Composer {
	return self.join(ClauseLeftJoin, `LEFT JOIN`, table, left, right)
}

// Appends " RIGHT JOIN table ON left = right".
func (self *Composer) RightJoin(table, left, right string) *Composer {
	return self.join(ClauseRightJoin, `RIGHT JOIN`, table, left, right)
}

func (self *Composer) join(op Clause, kind, table, left, right string) (out *Composer) {
	defer self.rec(op, &out)
	if self.err != nil {
		return self
	}

	self.next(op)
	self.idents(`appending `+kind, table, left, right)

	self.appendSeg(joinExpr{kind: kind, table: table, left: left, right: right})
	self.push(op)
	return self
}

/*
Appends " UNION (other)" for each operand. The first union wraps everything
built so far in parens: "(SELECT ...) UNION (SELECT ...)". Right after another
union, the wrapping is skipped and operands are simply appended. Operands are
cloned; an operand's error becomes this composer's error.
*/
func (self *Composer) Union(others ...*Composer) *Composer {
	return self.union(ClauseUnion, others)
}

// Same as `.Union` but appends " UNION ALL (other)".
func (self *Composer) UnionAll(others ...*Composer) *Composer {
	return self.union(ClauseUnionAll, others)
}

func (self *Composer) union(op Clause, others []*Composer) (out *Composer) {
	defer self.rec(op, &out)
	if self.err != nil {
		return self
	}

	while := `appending ` + op.String()
	sp := self.next(op)
	requireNonEmpty(while, len(others))

	segs := make([]segment, 0, len(others))
	for _, other := range others {
		if other == nil {
			panic(ErrInvalidInput.while(while).becausef(`nil operand`))
		}
		try(other.err)
		if len(other.groups) > 0 {
			panic(ErrUnbalancedGroup.while(while).becausef(`operand has %d open group(s)`, len(other.groups)))
		}
		if len(other.prefix) > 0 {
			panic(ErrInvalidInput.while(while).becausef(`operand has a time zone prefix`))
		}
		segs = append(segs, unionExpr{all: op == ClauseUnionAll, other: other.Clone()})
	}

	if sp == spliceOpen {
		self.wraps = append(self.wraps, len(self.segs))
	}
	self.segs = append(self.segs, segs...)
	self.push(op)
	return self
}

/*
Prepends the statement "SET time_zone = 'tz';" before everything built so far.
Unlike other operations, the tag is recorded right after the statement kind
rather than at the end of the history. Multiple calls prepend in reverse order:
the latest statement comes first.
*/
func (self *Composer) TimeZone(tz string) *Composer {
	return self.timeZone(`SET time_zone =`, tz)
}

// Same as `.TimeZone` but prepends "SET GLOBAL time_zone = 'tz';".
func (self *Composer) GlobalTimeZone(tz string) *Composer {
	return self.timeZone(`SET GLOBAL time_zone =`, tz)
}

func (self *Composer) timeZone(prefix, tz string) (out *Composer) {
	defer self.rec(ClauseTimezone, &out)
	if self.err != nil {
		return self
	}

	self.next(ClauseTimezone)
	self.idents(`prepending time zone`, tz)

	stmt := prefix + ` ` + Encode(Str(tz)) + `;`
	self.prefix = append([]string{stmt}, self.prefix...)
	self.pushFront(ClauseTimezone)
	return self
}
