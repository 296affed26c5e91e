package qbuild

import (
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
)

// Candidates shorter than this are rejected if they contain a semicolon.
const DefaultSemicolonThreshold = 40

/*
Default denylist of `Sanitizer`. Lowercase, matched by substring against the
case-folded candidate.
*/
var DefaultPatterns = []string{
	`; drop`,
	`; delete`,
	`; update`,
	`; insert`,
	`; alter`,
	`; truncate`,
	`; create`,
	`; shutdown`,
	`drop table`,
	`drop database`,
	`drop schema`,
	`union select`,
	`union all select`,
	`or 1 = 1`,
	`or 1=1`,
	`' or '`,
	`" or "`,
	`--`,
	`/*`,
	`*/`,
	`information_schema`,
	`xp_cmdshell`,
	`sleep(`,
	`benchmark(`,
	`load_file(`,
	`into outfile`,
}

/*
Denylist scanner. Rejects identifiers and literals containing known injection
substrings. This is best-effort only: anything that doesn't match a pattern is
accepted and spliced into the statement verbatim. For untrusted input, prefer
binding mode, see `Composer.Bind`.

The zero value accepts everything. Use `DefaultSanitizer` or `NewSanitizer`.
Safe for concurrent use as long as the fields are not modified.
*/
type Sanitizer struct {
	// Lowercase substrings. See `NewSanitizer`.
	Patterns []string

	// Candidates shorter than this are rejected if they contain ";". Zero
	// disables the check.
	SemicolonThreshold int

	// Receives a warning for every rejection. Nil means no logging.
	Logger *zerolog.Logger
}

// Sanitizer with `DefaultPatterns` and `DefaultSemicolonThreshold`.
func DefaultSanitizer() *Sanitizer {
	return NewSanitizer(DefaultSemicolonThreshold, DefaultPatterns...)
}

/*
Makes a sanitizer with the given semicolon threshold and patterns. Patterns are
case-folded, and empty patterns are skipped.
*/
func NewSanitizer(threshold int, patterns ...string) *Sanitizer {
	out := Sanitizer{
		Patterns:           make([]string, 0, len(patterns)),
		SemicolonThreshold: threshold,
	}
	caser := cases.Fold()
	for _, val := range patterns {
		if val != `` {
			out.Patterns = append(out.Patterns, caser.String(val))
		}
	}
	return &out
}

/*
Returns nil if the candidate is accepted, or an error with `ErrCodeRejected`
whose cause is `*Rejection`. The empty string is always accepted. A nil
sanitizer accepts everything.
*/
func (self *Sanitizer) Check(src string) error {
	if self == nil || src == `` {
		return nil
	}

	folded := cases.Fold().String(src)
	for _, pat := range self.Patterns {
		if strings.Contains(folded, pat) {
			return self.reject(src, pat)
		}
	}

	if len(src) < self.SemicolonThreshold && strings.Contains(src, `;`) {
		return self.reject(src, `;`)
	}
	return nil
}

// Checks every candidate, stopping at the first rejection.
func (self *Sanitizer) CheckAll(src ...string) error {
	for _, val := range src {
		err := self.Check(val)
		if err != nil {
			return err
		}
	}
	return nil
}

// Same as `.Check`, for a typed value. Only the payload is inspected.
func (self *Sanitizer) CheckValue(val Value) error {
	return self.Check(valueCandidate(val))
}

// Same as `.Check`, for every key and value of a JSON fragment.
func (self *Sanitizer) CheckJson(val JsonLiteral) (err error) {
	if val == nil {
		return nil
	}
	val.eachCandidate(func(src string) {
		if err == nil {
			err = self.Check(src)
		}
	})
	return
}

func (self *Sanitizer) reject(src, pat string) error {
	if self.Logger != nil {
		self.Logger.Warn().
			Str(`candidate`, src).
			Str(`pattern`, pat).
			Msg(`sanitizer rejected candidate`)
	}
	return ErrRejected.while(`sanitizing`).because(&Rejection{Candidate: src, Pattern: pat})
}
