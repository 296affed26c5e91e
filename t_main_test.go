package qbuild

import (
	"errors"
	"fmt"
	r "reflect"
	"runtime"
	"strings"
	"testing"
)

type Blog struct {
	Id     int64  `db:"id"     json:"id"`
	Title  string `db:"title"  json:"title"`
	Author string `db:"author" json:"author"`
}

// nolint:govet
type Embed struct {
	Id        string `db:"embed_id"`
	Name      string `db:"embed_name"`
	private   string `db:"embed_private"`
	Untagged0 string ``
	Untagged1 string `db:"-"`
	_         string `db:"blank"`
}

type Outer struct {
	Embed
	Id       string `db:"outer_id"`
	Name     string `db:"outer_name"`
	OnlyJson string `json:"onlyJson"`
}

var testOuter = Outer{
	Id:   `outer id`,
	Name: `outer name`,
	Embed: Embed{
		Id:        `embed id`,
		Name:      `embed name`,
		private:   `private`,
		Untagged0: `untagged 0`,
		Untagged1: `untagged 1`,
	},
	OnlyJson: `only json`,
}

func eq(t testing.TB, exp, act any) {
	t.Helper()
	if !r.DeepEqual(exp, act) {
		t.Fatalf(`
expected (detailed):
	%#[1]v
actual (detailed):
	%#[2]v
expected (simple):
	%[1]v
actual (simple):
	%[2]v
`, exp, act)
	}
}

func notEq(t testing.TB, exp, act any) {
	t.Helper()
	if r.DeepEqual(exp, act) {
		t.Fatalf(`
unexpected equality (detailed):
	%#[1]v
unexpected equality (simple):
	%[1]v
`, exp)
	}
}

func panics(t testing.TB, msg string, fun func()) {
	t.Helper()
	val := catchAny(fun)

	if val == nil {
		t.Fatalf(`expected %v to panic, found no panic`, funcName(fun))
	}

	str := fmt.Sprint(val)
	if !strings.Contains(str, msg) {
		t.Fatalf(
			`expected %v to panic with a message containing %q, found %q`,
			funcName(fun), msg, str,
		)
	}
}

func funcName(val any) string {
	return runtime.FuncForPC(r.ValueOf(val).Pointer()).Name()
}

func catchAny(fun func()) (val any) {
	defer recAny(&val)
	fun()
	return
}

func recAny(ptr *any) { *ptr = recover() }

// Finishes the statement, failing the test on error.
func finish(t testing.TB, val *Composer) string {
	t.Helper()
	text, err := val.Finish()
	if err != nil {
		t.Fatalf(`unexpected error: %+v`, err)
	}
	return text
}

// Finishes the statement in binding mode, failing the test on error.
func bind(t testing.TB, val *Composer) (string, []any) {
	t.Helper()
	text, args, err := val.Bind()
	if err != nil {
		t.Fatalf(`unexpected error: %+v`, err)
	}
	return text, args
}

// Verifies that the composer failed with the given code, and that finishing
// returns the same error.
func fails(t testing.TB, code ErrCode, val *Composer) {
	t.Helper()
	if val == nil {
		t.Fatalf(`expected the failed operation to return its composer, got nil`)
	}
	failsWith(t, code, val.Err())

	_, err := val.Finish()
	if !errors.Is(err, val.Err()) {
		t.Fatalf(`expected Finish to return the sticky error %v, got %v`, val.Err(), err)
	}
}

func failsWith(t testing.TB, code ErrCode, err error) {
	t.Helper()
	if err == nil {
		t.Fatalf(`expected error with code %q, got nil`, code)
	}
	if errCode(err) != code {
		t.Fatalf(`expected error with code %q, got %+v`, code, err)
	}
}

func hist(vals ...Clause) []Clause { return vals }

// Sanitizer that accepts everything.
var testLax = Builder{Options{Sanitizer: &Sanitizer{}}}
