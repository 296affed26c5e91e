package qbuild

/*
Short for "expression". A node of a statement under composition. The method
appends SQL text to the given `Bui`, and, when the `Bui` is in binding mode,
arguments corresponding to the placeholders it appends. Nodes are turned into
text only when a statement is finished, see `Composer.Finish` and
`Composer.Bind`.
*/
type Expr interface {
	AppendExpr(*Bui)
}

/*
Appends a text repesentation. Implemented by all `Value` types and by JSON
literals. For values, this is always the inline SQL literal, regardless of any
placeholder style.
*/
type Appender interface {
	Append([]byte) []byte
}

/*
Typed SQL literal: a tagged union of `Null`, `Bool`, `Str`, `JsonStr`,
`Datetime`, `Epoch`, and the various integer and float types. `Append` must
produce the inline literal, which is a pure function of the type and payload.
`AppendBind` is used in binding mode and decides which part of the literal
becomes an argument. Most types bind their entire payload; `Null` and datetime
keywords such as `NOW()` stay inline.
*/
type Value interface {
	Appender
	AppendBind(*Bui)
}

// Placeholder style used for arguments in binding mode.
type Placeholder byte

const (
	// Literals are encoded into the text. Used by `Composer.Finish`.
	PlaceholderInline Placeholder = iota

	// MySQL and SQLite style: "?".
	PlaceholderQuestion

	// Postgres style: "$1", "$2" and so on.
	PlaceholderDollar
)

// Implement `fmt.Stringer` for debug purposes.
func (self Placeholder) String() string {
	switch self {
	case PlaceholderQuestion:
		return `question`
	case PlaceholderDollar:
		return `dollar`
	default:
		return `inline`
	}
}

// Parses from a string, which must be empty, "inline", "question" or
// "dollar".
func (self *Placeholder) Parse(src string) error {
	switch src {
	case ``, `inline`:
		*self = PlaceholderInline
	case `question`, `?`:
		*self = PlaceholderQuestion
	case `dollar`, `$`:
		*self = PlaceholderDollar
	default:
		return ErrInvalidInput.while(`parsing placeholder style`).becausef(`unrecognized placeholder style %q`, src)
	}
	return nil
}

// Implement `encoding.TextUnmarshaler`.
func (self *Placeholder) UnmarshalText(src []byte) error {
	return self.Parse(string(src))
}

// Kind of statement, fixed when a `Composer` is constructed.
type Kind byte

const (
	KindSelect Kind = iota + 1
	KindCount
	KindInsert
	KindUpdate
	KindDelete
)

// Implement `fmt.Stringer` for debug purposes.
func (self Kind) String() string {
	switch self {
	case KindSelect:
		return `select`
	case KindCount:
		return `count`
	case KindInsert:
		return `insert`
	case KindUpdate:
		return `update`
	case KindDelete:
		return `delete`
	default:
		return ``
	}
}

// The clause tag that starts every statement of this kind.
func (self Kind) Clause() Clause {
	switch self {
	case KindSelect:
		return ClauseSelect
	case KindCount:
		return ClauseCount
	case KindInsert:
		return ClauseInsert
	case KindUpdate:
		return ClauseUpdate
	case KindDelete:
		return ClauseDelete
	default:
		return ClauseNone
	}
}

/*
Record of an applied operation. Every successful operation on a `Composer`
pushes exactly one tag into its history. The most recent tag decides how the
next operation is spliced into the statement, see `transition`.
*/
type Clause byte

const (
	ClauseNone Clause = iota
	ClauseSelect
	ClauseCount
	ClauseInsert
	ClauseUpdate
	ClauseDelete
	ClauseTable
	ClauseValues
	ClauseWhere
	ClauseAnd
	ClauseOr
	ClauseWhereIn
	ClauseWhereNotIn
	ClauseAndIn
	ClauseAndNotIn
	ClauseLike
	ClauseSet
	ClauseOrderBy
	ClauseOrderRandom
	ClauseFieldOrdering
	ClauseGroupBy
	ClauseHaving
	ClauseLimit
	ClauseOffset
	ClauseInnerJoin
	ClauseLeftJoin
	ClauseRightJoin
	ClauseUnion
	ClauseUnionAll
	ClauseJsonExtract
	ClauseJsonContains
	ClauseNotJsonContains
	ClauseJsonArrayAppend
	ClauseJsonSet
	ClauseJsonReplace
	ClauseJsonRemove
	ClauseOpenGroupWhere
	ClauseOpenGroupAnd
	ClauseOpenGroupOr
	ClauseCloseGroup
	ClauseTimezone
	ClauseFinish
)

var clauseNames = [...]string{
	ClauseNone:            ``,
	ClauseSelect:          `Select`,
	ClauseCount:           `Count`,
	ClauseInsert:          `Insert`,
	ClauseUpdate:          `Update`,
	ClauseDelete:          `Delete`,
	ClauseTable:           `Table`,
	ClauseValues:          `Values`,
	ClauseWhere:           `Where`,
	ClauseAnd:             `And`,
	ClauseOr:              `Or`,
	ClauseWhereIn:         `WhereIn`,
	ClauseWhereNotIn:      `WhereNotIn`,
	ClauseAndIn:           `AndIn`,
	ClauseAndNotIn:        `AndNotIn`,
	ClauseLike:            `Like`,
	ClauseSet:             `Set`,
	ClauseOrderBy:         `OrderBy`,
	ClauseOrderRandom:     `OrderRandom`,
	ClauseFieldOrdering:   `FieldOrdering`,
	ClauseGroupBy:         `GroupBy`,
	ClauseHaving:          `Having`,
	ClauseLimit:           `Limit`,
	ClauseOffset:          `Offset`,
	ClauseInnerJoin:       `InnerJoin`,
	ClauseLeftJoin:        `LeftJoin`,
	ClauseRightJoin:       `RightJoin`,
	ClauseUnion:           `Union`,
	ClauseUnionAll:        `UnionAll`,
	ClauseJsonExtract:     `JsonExtract`,
	ClauseJsonContains:    `JsonContains`,
	ClauseNotJsonContains: `NotJsonContains`,
	ClauseJsonArrayAppend: `JsonArrayAppend`,
	ClauseJsonSet:         `JsonSet`,
	ClauseJsonReplace:     `JsonReplace`,
	ClauseJsonRemove:      `JsonRemove`,
	ClauseOpenGroupWhere:  `OpenGroupWhere`,
	ClauseOpenGroupAnd:    `OpenGroupAnd`,
	ClauseOpenGroupOr:     `OpenGroupOr`,
	ClauseCloseGroup:      `CloseGroup`,
	ClauseTimezone:        `Timezone`,
	ClauseFinish:          `Finish`,
}

// Implement `fmt.Stringer` for debug purposes.
func (self Clause) String() string {
	if int(self) < len(clauseNames) {
		return clauseNames[self]
	}
	return `Clause(` + itoa(int64(self)) + `)`
}

// True for tags that open a parenthesized group.
func (self Clause) IsOpenGroup() bool {
	return self == ClauseOpenGroupWhere || self == ClauseOpenGroupAnd || self == ClauseOpenGroupOr
}

/*
True for tags after which a LIKE or JSON_CONTAINS continues the current
predicate chain with AND instead of starting a WHERE clause.
*/
func (self Clause) IsPredicate() bool {
	switch self {
	case ClauseWhere, ClauseAnd, ClauseOr,
		ClauseWhereIn, ClauseWhereNotIn, ClauseAndIn, ClauseAndNotIn,
		ClauseLike, ClauseJsonContains, ClauseNotJsonContains,
		ClauseCloseGroup:
		return true
	default:
		return false
	}
}

// True for tags whose output lives in the SET list.
func (self Clause) IsSet() bool {
	switch self {
	case ClauseSet, ClauseJsonArrayAppend, ClauseJsonSet, ClauseJsonReplace, ClauseJsonRemove:
		return true
	default:
		return false
	}
}

// True for tags whose output lives in the ORDER BY list.
func (self Clause) IsOrdering() bool {
	return self == ClauseOrderBy || self == ClauseOrderRandom || self == ClauseFieldOrdering
}

// Kind of a parenthesized predicate group.
type Group byte

const (
	GroupWhere Group = iota + 1
	GroupAnd
	GroupOr
)

// Implement `fmt.Stringer` for debug purposes.
func (self Group) String() string {
	switch self {
	case GroupWhere:
		return `WHERE`
	case GroupAnd:
		return `AND`
	case GroupOr:
		return `OR`
	default:
		return ``
	}
}

func (self Group) clause() Clause {
	switch self {
	case GroupWhere:
		return ClauseOpenGroupWhere
	case GroupAnd:
		return ClauseOpenGroupAnd
	case GroupOr:
		return ClauseOpenGroupOr
	default:
		return ClauseNone
	}
}
