package qbuild

import (
	"errors"
	"fmt"
)

/*
Error codes. You probably shouldn't use this directly; instead, use the `Err`
variables with `errors.Is`.
*/
type ErrCode string

const (
	ErrCodeUnknown             ErrCode = ""
	ErrCodeInvalidInput        ErrCode = "InvalidInput"
	ErrCodeInvalidOperator     ErrCode = "InvalidOperator"
	ErrCodeInvalidDirection    ErrCode = "InvalidDirection"
	ErrCodeRejected            ErrCode = "Rejected"
	ErrCodeDuplicateOrdering   ErrCode = "DuplicateOrdering"
	ErrCodeInvalidState        ErrCode = "InvalidState"
	ErrCodeUnbalancedGroup     ErrCode = "UnbalancedGroup"
	ErrCodeAmbiguousExtract    ErrCode = "AmbiguousExtract"
	ErrCodeUnsupportedType     ErrCode = "UnsupportedType"
	ErrCodeUnknownField        ErrCode = "UnknownField"
	ErrCodeOrdinalOutOfBounds  ErrCode = "OrdinalOutOfBounds"
	ErrCodeUnexpectedParameter ErrCode = "UnexpectedParameter"
	ErrCodeUnusedArgument      ErrCode = "UnusedArgument"
	ErrCodeUnexpectedEOF       ErrCode = "UnexpectedEOF"
	ErrCodeInternal            ErrCode = "Internal"
)

/*
Use blank error variables to detect error types:

	if errors.Is(err, qbuild.ErrRejected) {
		// Handle specific error.
	}

Note that errors returned by this package can't be compared via `==` because
they may include additional details about the circumstances. When compared by
`errors.Is`, they compare `.Cause` and fall back on `.Code`.
*/
var (
	ErrInvalidInput        Err = Err{Code: ErrCodeInvalidInput, Cause: errors.New(`invalid input`)}
	ErrInvalidOperator     Err = Err{Code: ErrCodeInvalidOperator, Cause: errors.New(`invalid comparison operator`)}
	ErrInvalidDirection    Err = Err{Code: ErrCodeInvalidDirection, Cause: errors.New(`invalid order direction`)}
	ErrRejected            Err = Err{Code: ErrCodeRejected, Cause: errors.New(`rejected by sanitizer`)}
	ErrDuplicateOrdering   Err = Err{Code: ErrCodeDuplicateOrdering, Cause: errors.New(`duplicate ordering`)}
	ErrInvalidState        Err = Err{Code: ErrCodeInvalidState, Cause: errors.New(`invalid state`)}
	ErrUnbalancedGroup     Err = Err{Code: ErrCodeUnbalancedGroup, Cause: errors.New(`unbalanced group`)}
	ErrAmbiguousExtract    Err = Err{Code: ErrCodeAmbiguousExtract, Cause: errors.New(`ambiguous json extract`)}
	ErrUnsupportedType     Err = Err{Code: ErrCodeUnsupportedType, Cause: errors.New(`unsupported type`)}
	ErrUnknownField        Err = Err{Code: ErrCodeUnknownField, Cause: errors.New(`unknown field`)}
	ErrOrdinalOutOfBounds  Err = Err{Code: ErrCodeOrdinalOutOfBounds, Cause: errors.New(`ordinal parameter exceeds arguments`)}
	ErrUnexpectedParameter Err = Err{Code: ErrCodeUnexpectedParameter, Cause: errors.New(`unexpected parameter`)}
	ErrUnusedArgument      Err = Err{Code: ErrCodeUnusedArgument, Cause: errors.New(`unused argument`)}
	ErrUnexpectedEOF       Err = Err{Code: ErrCodeUnexpectedEOF, Cause: errors.New(`unexpected EOF`)}
	ErrInternal            Err = Err{Code: ErrCodeInternal, Cause: errors.New(`internal error`)}
)

// Type of errors returned by this package.
type Err struct {
	Code  ErrCode
	While string
	Cause error
}

// Implement `error`.
func (self Err) Error() string {
	if self == (Err{}) {
		return ``
	}
	msg := `[qbuild]`
	if self.Code != ErrCodeUnknown {
		msg += fmt.Sprintf(` %s`, self.Code)
	}
	if self.While != `` {
		msg += fmt.Sprintf(` while %v`, self.While)
	}
	if self.Cause != nil {
		msg += `: ` + self.Cause.Error()
	}
	return msg
}

// Implement a hidden interface in "errors".
func (self Err) Is(other error) bool {
	if self.Cause != nil && errors.Is(self.Cause, other) {
		return true
	}
	err, ok := other.(Err)
	return ok && err.Code == self.Code
}

// Implement a hidden interface in "errors".
func (self Err) Unwrap() error {
	return self.Cause
}

func (self Err) while(while string) Err {
	self.While = while
	return self
}

func (self Err) because(cause error) Err {
	self.Cause = cause
	return self
}

func (self Err) becausef(pattern string, args ...any) Err {
	return self.because(fmt.Errorf(pattern, args...))
}

/*
Cause of every `ErrRejected` returned by `Sanitizer.Check`. Use `errors.As` to
find out which denylist pattern matched:

	var rej *qbuild.Rejection
	if errors.As(err, &rej) {
		log.Println(rej.Pattern)
	}
*/
type Rejection struct {
	Candidate string
	Pattern   string
}

// Implement `error`.
func (self *Rejection) Error() string {
	return fmt.Sprintf(`candidate %q matches denylist pattern %q`, self.Candidate, self.Pattern)
}

func errCode(err error) ErrCode {
	var tar Err
	if errors.As(err, &tar) {
		return tar.Code
	}
	return ErrCodeUnknown
}
