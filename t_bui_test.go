package qbuild

import "testing"

func TestBui_Str(t *testing.T) {
	var bui Bui
	bui.Str(`select`)
	bui.Str(`a`)
	bui.Raw(`,`)
	bui.Str(`b`)
	bui.Str(`from`)
	bui.Str(`(`)
	bui.Str(`c`)
	bui.Str(`)`)
	eq(t, `select a, b from (c)`, bui.String())

	bui = Bui{}
	bui.Space()
	eq(t, ``, bui.String())
	bui.Raw(`a`)
	bui.Space()
	bui.Space()
	eq(t, `a `, bui.String())
}

func TestBui_Expr(t *testing.T) {
	var bui Bui
	bui.Expr(nil)
	bui.Expr(ident(`a`))
	bui.Expr(nil)
	bui.Expr(ident(`b`))
	bui.List(ident(`c`), ident(`d`))
	eq(t, `a b c, d`, bui.String())
}

func TestBui_Grow(t *testing.T) {
	var bui Bui
	bui.Grow(16, 4)
	eq(t, 0, len(bui.Text))
	eq(t, 0, len(bui.Args))
	eq(t, true, cap(bui.Text) >= 16)
	eq(t, true, cap(bui.Args) >= 4)

	bui = MakeBui(32, 8, PlaceholderDollar)
	eq(t, true, cap(bui.Text) >= 32)
	eq(t, true, cap(bui.Args) >= 8)
	eq(t, PlaceholderDollar, bui.Style)
	eq(t, false, bui.IsInline())
}

func TestBui_Arg(t *testing.T) {
	test := func(style Placeholder, exp string, args []any) {
		t.Helper()
		bui := MakeBui(0, 0, style)
		bui.Str(`a =`)
		bui.Arg(10)
		bui.Str(`and b =`)
		bui.Arg(`x`)

		text, act := bui.Reify()
		eq(t, exp, text)
		eq(t, args, act)
	}

	test(PlaceholderInline, `a = 10 and b = 'x'`, []any{})
	test(PlaceholderQuestion, `a = ? and b = ?`, []any{10, `x`})
	test(PlaceholderDollar, `a = $1 and b = $2`, []any{10, `x`})

	var bui Bui
	panics(t, `unsupported type chan int`, func() { bui.Arg(make(chan int)) })
}

func TestBui_Value(t *testing.T) {
	var bui Bui
	bui.Value(nil)
	bui.Literal(nil)
	bui.Value(Str(`a`))
	eq(t, `NULL NULL 'a'`, bui.String())

	bui = MakeBui(0, 0, PlaceholderQuestion)
	bui.Value(Null{})
	bui.Value(Int(1))
	bui.Literal(Int(2))
	text, args := bui.Reify()
	eq(t, `NULL ? 2`, text)
	eq(t, []any{1}, args)
}

func TestBui_glued(t *testing.T) {
	bui := MakeBui(0, 0, PlaceholderDollar)
	bui.Str(`a =`)
	bui.Arg(1)
	bui.glued(func(bui *Bui) { bui.Arg(2) })
	bui.glued(func(bui *Bui) {})
	bui.Str(`b`)

	text, args := bui.Reify()
	eq(t, `a = $1$2 b`, text)
	eq(t, []any{1, 2}, args)
}
