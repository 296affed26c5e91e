package qbuild

/*
How an operation is spliced into the statement, as decided by `transition`.
*/
type splice byte

const (
	// Start a new clause with its own keyword: " WHERE a = 1", " SET a = 1".
	spliceOpen splice = iota

	// Extend the clause started by the previous operation: ", b = 2".
	spliceContinue

	// First predicate right after an open group: "(a = 1".
	spliceBare

	// Modify a node emitted by the previous operation.
	spliceRewrite
)

// Implement `fmt.Stringer` for debug purposes.
func (self splice) String() string {
	switch self {
	case spliceOpen:
		return `open`
	case spliceContinue:
		return `continue`
	case spliceBare:
		return `bare`
	case spliceRewrite:
		return `rewrite`
	default:
		return ``
	}
}

/*
Transition function of the composer. Given the history of applied clauses and
the next operation, decides how the operation is spliced, or why it can't be
applied. Every operation must be listed explicitly, together with its legal
predecessors; an operation missing from the switch is an internal error.

Deliberately permissive in one case: AND and OR are accepted before any WHERE,
producing whatever text the caller asked for.
*/
func transition(hist []Clause, op Clause) (splice, error) {
	if len(hist) == 0 {
		return 0, ErrInternal.while(`choosing splice for ` + op.String()).becausef(`empty clause history`)
	}
	last := hist[len(hist)-1]

	switch op {
	case ClauseSelect, ClauseCount, ClauseInsert, ClauseUpdate, ClauseDelete:
		return 0, errTransition(op, last, `statement kind is fixed at construction`)

	case ClauseTable:
		if hasClause(hist, isClause(ClauseTable)) {
			return 0, errTransition(op, last, `table is already bound`)
		}
		return spliceOpen, nil

	case ClauseValues:
		if hist[0] != ClauseInsert {
			return 0, errTransition(op, last, `VALUES requires an INSERT statement`)
		}
		return spliceContinue, nil

	case ClauseWhere, ClauseAnd, ClauseOr,
		ClauseWhereIn, ClauseWhereNotIn, ClauseAndIn, ClauseAndNotIn,
		ClauseOpenGroupWhere:
		if last.IsOpenGroup() {
			return spliceBare, nil
		}
		return spliceOpen, nil

	// A nested group starts the enclosing group's contents, so it has no left
	// operand to join. Only `GroupWhere` may nest directly.
	case ClauseOpenGroupAnd, ClauseOpenGroupOr:
		if last.IsOpenGroup() {
			return 0, errTransition(op, last, `AND/OR group requires a preceding predicate; use a WHERE group to nest`)
		}
		return spliceOpen, nil

	case ClauseLike:
		if last.IsOpenGroup() {
			return spliceBare, nil
		}
		if last.IsPredicate() {
			return spliceContinue, nil
		}
		return spliceOpen, nil

	case ClauseJsonContains, ClauseNotJsonContains:
		switch {
		case last == ClauseWhere || last == ClauseAnd || last == ClauseOr:
			return spliceRewrite, nil
		case last.IsOpenGroup():
			return spliceBare, nil
		case last.IsPredicate():
			return spliceContinue, nil
		default:
			return spliceOpen, nil
		}

	case ClauseSet, ClauseJsonArrayAppend, ClauseJsonSet, ClauseJsonReplace, ClauseJsonRemove:
		if last.IsSet() {
			return spliceContinue, nil
		}
		return spliceOpen, nil

	case ClauseOrderBy:
		if last.IsOrdering() {
			return spliceContinue, nil
		}
		if hasClause(hist, Clause.IsOrdering) {
			return 0, errDuplicateOrdering(op, last)
		}
		return spliceOpen, nil

	case ClauseFieldOrdering:
		switch {
		case last == ClauseOrderBy:
			return spliceRewrite, nil
		case last.IsOrdering():
			return spliceContinue, nil
		case hasClause(hist, Clause.IsOrdering):
			return 0, errDuplicateOrdering(op, last)
		default:
			return spliceOpen, nil
		}

	case ClauseOrderRandom:
		if hasClause(hist, Clause.IsOrdering) {
			return 0, errDuplicateOrdering(op, last)
		}
		return spliceOpen, nil

	case ClauseGroupBy, ClauseHaving:
		if last == op {
			return spliceContinue, nil
		}
		return spliceOpen, nil

	case ClauseLimit, ClauseOffset:
		if hasClause(hist, isClause(op)) {
			return 0, errTransition(op, last, op.String()+` is already set`)
		}
		return spliceOpen, nil

	case ClauseInnerJoin, ClauseLeftJoin, ClauseRightJoin:
		return spliceOpen, nil

	case ClauseUnion, ClauseUnionAll:
		if last == ClauseUnion || last == ClauseUnionAll {
			return spliceContinue, nil
		}
		return spliceOpen, nil

	case ClauseJsonExtract:
		switch last {
		case ClauseSelect, ClauseCount:
			return spliceRewrite, nil
		case ClauseTable:
			if hist[0] == ClauseSelect || hist[0] == ClauseCount {
				return spliceRewrite, nil
			}
			return 0, errTransition(op, last, `JSON_EXTRACT after a table requires a SELECT or COUNT statement`)
		case ClauseWhere, ClauseAnd, ClauseOr, ClauseOrderBy:
			return spliceRewrite, nil
		case ClauseJsonExtract:
			return spliceContinue, nil
		default:
			return 0, errTransition(op, last, `nothing to extract into`)
		}

	case ClauseCloseGroup, ClauseTimezone, ClauseFinish:
		return spliceOpen, nil

	default:
		return 0, ErrInternal.while(`choosing splice for ` + op.String()).becausef(`undeclared transition`)
	}
}

func isClause(val Clause) func(Clause) bool {
	return func(other Clause) bool { return other == val }
}

func errTransition(op, last Clause, msg string) error {
	return ErrInvalidState.
		while(`applying ` + op.String() + ` after ` + last.String()).
		becausef(`%s`, msg)
}

func errDuplicateOrdering(op, last Clause) error {
	return ErrDuplicateOrdering.
		while(`applying ` + op.String() + ` after ` + last.String()).
		becausef(`ORDER BY is already present and can only be extended immediately after another ordering`)
}
