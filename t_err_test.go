package qbuild

import (
	"errors"
	"fmt"
	"testing"
)

func TestErr_formatting(t *testing.T) {
	test := func(src Err, exp string) {
		t.Helper()
		eq(t, exp, src.Error())
		eq(t, exp, fmt.Sprintf(`%v`, src))
		eq(t, exp, fmt.Sprint(error(src)))
	}

	test(Err{}, ``)

	test(
		Err{While: `doing some operation`},
		`[qbuild] while doing some operation`,
	)

	test(
		Err{Code: ErrCodeInvalidInput, While: `doing some operation`},
		`[qbuild] InvalidInput while doing some operation`,
	)

	test(
		Err{Cause: errors.New(`some cause`)},
		`[qbuild]: some cause`,
	)

	test(
		ErrRejected.while(`sanitizing`).because(&Rejection{`a--`, `--`}),
		`[qbuild] Rejected while sanitizing: candidate "a--" matches denylist pattern "--"`,
	)

	test(
		ErrInvalidDirection.while(`parsing`).becausef(`bad %q`, `up`),
		`[qbuild] InvalidDirection while parsing: bad "up"`,
	)
}

func TestErr_Is(t *testing.T) {
	err := ErrInvalidOperator.while(`appending Where`).becausef(`unrecognized operator`)

	eq(t, true, errors.Is(err, ErrInvalidOperator))
	eq(t, true, errors.Is(err, Err{Code: ErrCodeInvalidOperator}))
	eq(t, false, errors.Is(err, ErrInvalidInput))
	eq(t, false, errors.Is(err, errors.New(`unrecognized operator`)))

	wrapped := fmt.Errorf(`outer: %w`, err)
	eq(t, true, errors.Is(wrapped, ErrInvalidOperator))
	eq(t, ErrCodeInvalidOperator, errCode(wrapped))

	eq(t, true, errors.Is(ErrInvalidInput, ErrInvalidInput))
}

func TestErr_Unwrap(t *testing.T) {
	cause := errors.New(`cause`)
	err := ErrInternal.because(cause)
	eq(t, cause, errors.Unwrap(err))
	eq(t, true, errors.Is(err, cause))
	eq(t, nil, errors.Unwrap(Err{}))
}

func TestRejection(t *testing.T) {
	err := DefaultSanitizer().Check(`x UNION SELECT y`)

	var rej *Rejection
	eq(t, true, errors.As(err, &rej))
	eq(t, Rejection{`x UNION SELECT y`, `union select`}, *rej)
	eq(t, `candidate "x UNION SELECT y" matches denylist pattern "union select"`, rej.Error())
}

func Test_errCode(t *testing.T) {
	eq(t, ErrCodeUnknown, errCode(nil))
	eq(t, ErrCodeUnknown, errCode(errors.New(`other`)))
	eq(t, ErrCodeRejected, errCode(ErrRejected))
	eq(t, ErrCodeUnbalancedGroup, errCode(checkBalance(`(`)))
}
