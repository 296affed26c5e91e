package qbuild

import (
	"fmt"
	"io"
	"strings"

	"github.com/mitranim/sqlp"
)

/*
Appends " WHERE <fragment>", where the fragment is arbitrary SQL with optional
ordinal parameters "$1", "$2" referencing the arguments, which are converted
via `ValueOf`:

	Select(`id`).Table(`users`).WhereRaw(`age > $1 AND role = $2`, 18, `admin`)
	// SELECT id FROM users WHERE age > 18 AND role = 'admin'

In binding mode, parameters become placeholders of the builder's style and the
arguments are returned by `Composer.Bind`. Every argument must be referenced at
least once; named parameters such as ":name" are rejected. The fragment must
have balanced parens and terminated quotes, and passes through the sanitizer,
like everything else.

A literal "?" in the fragment is left as-is and is indistinguishable from the
generated placeholders in question style. Use "$N" instead.

Tagged as `ClauseWhere` in the history, so it participates in grouping and
JSON_CONTAINS placement like `.Where`.
*/
func (self *Composer) WhereRaw(src string, args ...any) *Composer {
	return self.raw(ClauseWhere, src, args)
}

// Appends " AND <fragment>". See `.WhereRaw`.
func (self *Composer) AndRaw(src string, args ...any) *Composer {
	return self.raw(ClauseAnd, src, args)
}

// Appends " OR <fragment>". See `.WhereRaw`.
func (self *Composer) OrRaw(src string, args ...any) *Composer {
	return self.raw(ClauseOr, src, args)
}

func (self *Composer) raw(op Clause, src string, args []any) (out *Composer) {
	defer self.rec(op, &out)
	if self.err != nil {
		return self
	}

	while := `appending raw ` + op.String()
	sp := self.next(op)

	src = strings.TrimSpace(src)
	if src == `` {
		panic(ErrInvalidInput.while(while).becausef(`empty fragment`))
	}
	self.check(src)
	try(checkBalance(src))

	vals := try1(ValuesOf(args...))
	self.checkValues(vals...)
	validateRaw(while, src, len(vals))

	self.appendCond(sp, op, rawExpr{Src: src, Args: vals})
	self.push(op)
	return self
}

/*
Verifies that parens, brackets and braces outside quotes and comments are
balanced, and that the last quote or block comment is terminated. The
tokenizer reads an unterminated one until the end of input, so only the last
node can be affected.
*/
func checkBalance(src string) error {
	const while = `checking raw fragment`

	var last sqlp.Node
	tok := sqlp.Tokenizer{Source: src}
	for node := tok.Next(); node != nil; node = tok.Next() {
		last = node
	}

	switch last.(type) {
	case sqlp.NodeQuoteSingle, sqlp.NodeQuoteDouble, sqlp.NodeQuoteGrave, sqlp.NodeCommentBlock:
		if !strings.HasSuffix(src, last.String()) {
			return ErrUnexpectedEOF.while(while).
				because(fmt.Errorf(`unterminated %q, got unexpected %w`, last, io.EOF))
		}
	}

	_, err := sqlp.Parse(src)
	if err != nil {
		return ErrUnbalancedGroup.while(while).because(err)
	}
	return nil
}

/*
Verifies that every ordinal parameter refers to an existing argument, that
every argument is used, and that there are no named parameters.
*/
func validateRaw(while, src string, count int) {
	tok := sqlp.Tokenizer{Source: src}
	used := make([]bool, count)

	for {
		node := tok.Next()
		if node == nil {
			break
		}

		switch node := node.(type) {
		case sqlp.NodeOrdinalParam:
			ind := node.Index()
			if ind < 0 || ind >= count {
				panic(ErrOrdinalOutOfBounds.while(while).becausef(`ordinal parameter %v exceeds argument count %v`, node, count))
			}
			used[ind] = true

		case sqlp.NodeNamedParam:
			panic(ErrUnexpectedParameter.while(while).becausef(`expected only ordinal params, got named param %q`, node))
		}
	}

	for ind, val := range used {
		if !val {
			panic(ErrUnusedArgument.while(while).becausef(`unused argument at index %v`, ind))
		}
	}
}

// Raw SQL fragment with ordinal parameters, validated by `validateRaw`.
type rawExpr struct {
	Src  string
	Args []Value
}

// Implement the `Expr` interface.
func (self rawExpr) AppendExpr(bui *Bui) {
	bui.Grow(len(self.Src)+1, len(self.Args))
	bui.Space()
	tok := sqlp.Tokenizer{Source: self.Src}

	for {
		node := tok.Next()
		if node == nil {
			break
		}

		switch node := node.(type) {
		case sqlp.NodeOrdinalParam:
			arg := self.Args[node.Index()]
			bui.glued(func(bui *Bui) { bui.Value(arg) })
		default:
			node.Append(&bui.Text)
		}
	}
}
