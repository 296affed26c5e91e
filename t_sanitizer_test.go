package qbuild

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestSanitizer_Check_accept(t *testing.T) {
	san := DefaultSanitizer()

	test := func(src string) {
		t.Helper()
		eq(t, nil, san.Check(src))
	}

	test(``)
	test(`id`)
	test(`blogs.title`)
	test(`O'Brien`)
	test(`Robert Tables`)
	test(`dropdown`)
	test(`select`)
	test(`union`)
	test(`2024-01-02 03:04:05`)
	test(`this is a long free-text value; it has a semicolon in it`)
}

func TestSanitizer_Check_reject(t *testing.T) {
	san := DefaultSanitizer()

	test := func(pattern, src string) {
		t.Helper()
		err := san.Check(src)
		failsWith(t, ErrCodeRejected, err)
		eq(t, true, errors.Is(err, ErrRejected))

		var rej *Rejection
		eq(t, true, errors.As(err, &rej))
		eq(t, src, rej.Candidate)
		eq(t, pattern, rej.Pattern)
	}

	for _, pat := range DefaultPatterns {
		test(pat, `prefix `+pat+` suffix`)
		test(pat, strings.ToUpper(pat))
	}

	test(`; drop`, `1; DROP TABLE users`)
	test(`union select`, `x UNION SELECT password`)
	test(`' or '`, `' OR '1'='1`)
	test(`--`, `admin'--`)
	test(`sleep(`, `SLEEP(10)`)
	test(`;`, `a;b`)
	test(`;`, `id;`)
}

func TestSanitizer_Check_threshold(t *testing.T) {
	short := strings.Repeat(`a`, DefaultSemicolonThreshold-2) + `;`
	long := strings.Repeat(`a`, DefaultSemicolonThreshold-1) + `;`

	failsWith(t, ErrCodeRejected, DefaultSanitizer().Check(short))
	eq(t, nil, DefaultSanitizer().Check(long))

	eq(t, nil, NewSanitizer(0).Check(`a;b`))
	failsWith(t, ErrCodeRejected, NewSanitizer(100).Check(long))
}

func TestSanitizer_zero(t *testing.T) {
	var nilSan *Sanitizer
	eq(t, nil, nilSan.Check(`; drop table`))
	eq(t, nil, nilSan.CheckAll(`; drop table`, `--`))
	eq(t, nil, (&Sanitizer{}).Check(`; drop table`))
}

func TestNewSanitizer(t *testing.T) {
	san := NewSanitizer(10, `Secret`, ``, `HIDDEN`)
	eq(t, []string{`secret`, `hidden`}, san.Patterns)
	eq(t, 10, san.SemicolonThreshold)

	failsWith(t, ErrCodeRejected, san.Check(`my_SECRET_col`))
	failsWith(t, ErrCodeRejected, san.Check(`hidden`))
	eq(t, nil, san.Check(`drop table`))

	eq(t, len(DefaultPatterns), len(DefaultSanitizer().Patterns))
}

func TestSanitizer_CheckAll(t *testing.T) {
	san := DefaultSanitizer()
	eq(t, nil, san.CheckAll())
	eq(t, nil, san.CheckAll(`a`, `b`, ``))

	err := san.CheckAll(`a`, `b--`, `c;`)
	var rej *Rejection
	eq(t, true, errors.As(err, &rej))
	eq(t, `b--`, rej.Candidate)
}

func TestSanitizer_CheckValue(t *testing.T) {
	san := DefaultSanitizer()
	eq(t, nil, san.CheckValue(nil))
	eq(t, nil, san.CheckValue(Int(10)))
	eq(t, nil, san.CheckValue(Str(`O'Brien`)))
	failsWith(t, ErrCodeRejected, san.CheckValue(Str(`x' or '1`)))
	failsWith(t, ErrCodeRejected, san.CheckValue(JsonStr(`1; drop`)))
	failsWith(t, ErrCodeRejected, san.CheckValue(Datetime(`sleep(5)`)))
}

func TestSanitizer_CheckJson(t *testing.T) {
	san := DefaultSanitizer()
	eq(t, nil, san.CheckJson(nil))
	eq(t, nil, san.CheckJson(JsonArray{JsonStr(`a`), Int(1)}))
	eq(t, nil, san.CheckJson(JsonObjects{{{`k`, JsonStr(`v`)}}}))

	failsWith(t, ErrCodeRejected, san.CheckJson(JsonArray{JsonStr(`a`), JsonStr(`--`)}))
	failsWith(t, ErrCodeRejected, san.CheckJson(JsonObject{{`information_schema`, Int(1)}}))
	failsWith(t, ErrCodeRejected, san.CheckJson(JsonObjects{{}, {{`k`, Str(`/*`)}}}))
	failsWith(t, ErrCodeRejected, san.CheckJson(JsonFunc{{`k`, Str(`xp_cmdshell`)}}))
	failsWith(t, ErrCodeRejected, san.CheckJson(JsonScalar{Str(`union select`)}))
}

func TestSanitizer_Logger(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	san := DefaultSanitizer()
	san.Logger = &log

	eq(t, nil, san.Check(`fine`))
	eq(t, ``, buf.String())

	failsWith(t, ErrCodeRejected, san.Check(`1 OR 1=1`))
	eq(
		t,
		`{"level":"warn","candidate":"1 OR 1=1","pattern":"or 1=1","message":"sanitizer rejected candidate"}`+"\n",
		buf.String(),
	)
}
