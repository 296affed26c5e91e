package qbuild

/*
Attaches "JSON_EXTRACT(col, '$.path')" to the node emitted by the previous
operation. The path gets a "$." prefix unless it already starts with "$".

	* After `Select` or `Table`: replaces the matching column in the select
	  list, or appends a new item, with an optional " AS alias".
	* After `Count`: wraps the counted column.
	* After `Where`, `And`, `Or`: replaces the column of that predicate.
	* After `OrderBy`: replaces the column of the last ordering item.
	* After another `JsonExtract`: applies to the same place, but requires an
	  alias, since otherwise the target would be ambiguous.

Anything else is an error.
*/
func (self *Composer) JsonExtract(col, path, alias string) (out *Composer) {
	defer self.rec(ClauseJsonExtract, &out)
	if self.err != nil {
		return self
	}

	const while = `attaching JSON_EXTRACT`
	sp := self.next(ClauseJsonExtract)
	self.idents(while, col, path)
	self.check(alias)

	target := self.Last()
	if sp == spliceContinue {
		if alias == `` {
			panic(ErrAmbiguousExtract.while(while).becausef(`chained JSON_EXTRACT on %q requires an alias`, col))
		}
		target = self.extract
	}

	expr := jsonExtract{Col: col, Path: normJsonPath(path)}

	switch target {
	case ClauseSelect, ClauseCount, ClauseTable:
		self.extractHead(while, col, expr, alias)
		self.extract = ClauseSelect
	case ClauseWhere, ClauseAnd, ClauseOr:
		self.extractPredicate(while, col, expr)
		self.extract = ClauseWhere
	case ClauseOrderBy:
		self.extractOrder(while, col, expr)
		self.extract = ClauseOrderBy
	default:
		panic(ErrInternal.while(while).becausef(`unexpected extract target %v`, target))
	}

	self.push(ClauseJsonExtract)
	return self
}

func (self *Composer) extractHead(while, col string, expr jsonExtract, alias string) {
	switch head := self.head.(type) {
	case *selectHead:
		item := selectItem{Expr: expr, Alias: alias}
		for ind, val := range head.items {
			name, ok := identName(val.Expr)
			if ok && name == col {
				head.items[ind] = item
				return
			}
		}
		head.items = append(head.items, item)

	case *countHead:
		name, ok := identName(head.item.Expr)
		if !ok || name != col {
			panic(ErrInvalidInput.while(while).becausef(`column %q is not the counted column`, col))
		}
		head.item = selectItem{Expr: expr, Alias: alias}

	default:
		panic(ErrInvalidState.while(while).becausef(`%v statement has no select list`, self.kind))
	}
}

func (self *Composer) extractPredicate(while, col string, expr jsonExtract) {
	node := lastSeg[*cond](self)
	out, ok := replaceCol(node.expr, col, expr)
	if !ok {
		panic(ErrInvalidInput.while(while).becausef(`column %q not found in the last predicate`, col))
	}
	node.expr = out
}

func (self *Composer) extractOrder(while, col string, expr jsonExtract) {
	list := lastSeg[*orderList](self)
	last := len(list.items) - 1

	item, ok := list.items[last].(orderItem)
	if ok {
		name, ok := identName(item.Expr)
		if ok && name == col {
			item.Expr = expr
			list.items[last] = item
			return
		}
	}
	panic(ErrInvalidInput.while(while).becausef(`column %q is not the last ordering`, col))
}

// Returns a copy of the predicate with every reference to the column replaced.
func replaceCol(src Expr, col string, repl Expr) (Expr, bool) {
	matches := func(val Expr) bool {
		name, ok := identName(val)
		return ok && name == col
	}

	switch val := src.(type) {
	case compare:
		if matches(val.Col) {
			val.Col = repl
			return val, true
		}

	case inList:
		if matches(val.Col) {
			val.Col = repl
			return val, true
		}

	case likeExpr:
		var found bool
		cols := copySlice(val.Cols)
		for ind, item := range cols {
			if matches(item) {
				cols[ind] = repl
				found = true
			}
		}
		if found {
			val.Cols = cols
			return val, true
		}

	case jsonContains:
		if matches(val.Col) {
			val.Col = repl
			return val, true
		}
	}
	return src, false
}

/*
Appends "JSON_CONTAINS(col, candidate[, '$.path'])". Right after `Where`, `And`
or `Or` on the same column, replaces that predicate and keeps its connector:

	Where(`tags`, `=`, Str(`x`)).JsonContains(`tags`, JsonArray{JsonStr(`x`)}, ``)
	// WHERE JSON_CONTAINS(tags, '["x"]')

Otherwise it's a new predicate, placed like `Like`: " WHERE ..." first,
" AND ..." after another predicate, bare right after an open group.

The candidate is a JSON document in single quotes; a `JsonScalar` holding a
`Str` is encoded as a JSON string. A `JsonFunc` is passed as a JSON_OBJECT call.
*/
func (self *Composer) JsonContains(col string, val JsonLiteral, path string) *Composer {
	return self.jsonContains(ClauseJsonContains, col, val, path)
}

// Same as `.JsonContains`, negated: "NOT JSON_CONTAINS(...)".
func (self *Composer) NotJsonContains(col string, val JsonLiteral, path string) *Composer {
	return self.jsonContains(ClauseNotJsonContains, col, val, path)
}

func (self *Composer) jsonContains(op Clause, col string, val JsonLiteral, path string) (out *Composer) {
	defer self.rec(op, &out)
	if self.err != nil {
		return self
	}

	while := `appending ` + op.String()
	sp := self.next(op)
	self.idents(while, col)
	self.checkJson(while, val)
	self.check(path)

	if path != `` {
		path = normJsonPath(path)
	}
	expr := jsonContains{Not: op == ClauseNotJsonContains, Col: ident(col), Val: val, Path: path}

	if sp == spliceRewrite {
		node := lastSeg[*cond](self)
		name, ok := predicateCol(node.expr)
		if ok && name == col {
			node.expr = expr
			self.push(op)
			return self
		}
		sp = spliceContinue
	}

	self.appendCond(sp, op, expr)
	self.push(op)
	return self
}

/*
Appends "col = JSON_SET(col, '$.path', val)" to the SET list. Arrays and objects
are passed as "CAST('...' AS JSON)", scalars as plain values.
*/
func (self *Composer) JsonSet(col, path string, val JsonLiteral) *Composer {
	return self.jsonMutation(ClauseJsonSet, `JSON_SET`, col, []string{path}, val)
}

// Same as `.JsonSet` but uses JSON_REPLACE.
func (self *Composer) JsonReplace(col, path string, val JsonLiteral) *Composer {
	return self.jsonMutation(ClauseJsonReplace, `JSON_REPLACE`, col, []string{path}, val)
}

// Same as `.JsonSet` but uses JSON_ARRAY_APPEND.
func (self *Composer) JsonArrayAppend(col, path string, val JsonLiteral) *Composer {
	return self.jsonMutation(ClauseJsonArrayAppend, `JSON_ARRAY_APPEND`, col, []string{path}, val)
}

// Appends "col = JSON_REMOVE(col, '$.a', '$.b')" to the SET list.
func (self *Composer) JsonRemove(col string, paths ...string) *Composer {
	return self.jsonMutation(ClauseJsonRemove, `JSON_REMOVE`, col, paths, nil)
}

func (self *Composer) jsonMutation(op Clause, fun, col string, paths []string, val JsonLiteral) (out *Composer) {
	defer self.rec(op, &out)
	if self.err != nil {
		return self
	}

	while := `appending ` + fun
	sp := self.next(op)
	requireNonEmpty(while, len(paths))
	self.idents(while, col)
	self.idents(while, paths...)
	if op != ClauseJsonRemove {
		self.checkJson(while, val)
	}

	norm := make([]string, 0, len(paths))
	for _, path := range paths {
		norm = append(norm, normJsonPath(path))
	}

	self.appendSet(sp, assign{Col: col, Val: jsonMutation{Func: fun, Col: col, Paths: norm, Val: val}})
	self.push(op)
	return self
}
