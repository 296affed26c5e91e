package qbuild

/*
Prealloc tool. Makes a `Bui` with the specified capacity of the text and args
buffers and the given placeholder style.
*/
func MakeBui(textCap, argsCap int, style Placeholder) Bui {
	return Bui{
		Text:  make([]byte, 0, textCap),
		Args:  make([]any, 0, argsCap),
		Style: style,
	}
}

/*
Short for "builder". Tiny shortcut for rendering SQL nodes. Used internally by
every `Expr` implementation in this package. Text appended via `.Str` is
delimited from the preceding text by a space unless either side already ends or
starts with a delimiter, which lets nodes be written without worrying about
whitespace.

With `PlaceholderInline` (the zero value), values are encoded as literals and
`.Args` stays empty. With other styles, values are appended to `.Args` and the
text receives the corresponding placeholders.
*/
type Bui struct {
	Text  []byte
	Args  []any
	Style Placeholder
}

// Shortcut for `self.String(), self.Args`. Go database drivers tend to require
// `string, []any` as inputs for queries and statements.
func (self Bui) Reify() (string, []any) {
	return self.String(), self.Args
}

// Returns inner text as a string, performing a free cast.
func (self Bui) String() string {
	return bytesToMutableString(self.Text)
}

// True if values are encoded into the text rather than bound.
func (self Bui) IsInline() bool { return self.Style == PlaceholderInline }

// Increases the capacity (not length) of the text and args buffers by the
// specified amounts. If there's already enough capacity, avoids allocation.
func (self *Bui) Grow(textLen, argsLen int) {
	self.Text = growBytes(self.Text, textLen)
	self.Args = growInterfaces(self.Args, argsLen)
}

// Adds a space if the preceding text doesn't already end with a terminator.
func (self *Bui) Space() {
	self.Text = maybeAppendSpace(self.Text)
}

// Appends the provided string, delimiting it from the previous text with a
// space if necessary.
func (self *Bui) Str(val string) {
	self.Text = appendMaybeSpaced(self.Text, val)
}

// Appends the provided string as-is.
func (self *Bui) Raw(val string) {
	self.Text = append(self.Text, val...)
}

// Appends an expression. Nil input is a nop: nothing will be appended.
func (self *Bui) Expr(val Expr) {
	if val != nil {
		val.AppendExpr(self)
	}
}

/*
Appends exprs separated by commas. Used for select lists, SET lists, ORDER BY
lists and so on.
*/
func (self *Bui) List(vals ...Expr) {
	for ind, val := range vals {
		if ind > 0 {
			self.Raw(`,`)
		}
		self.Expr(val)
	}
}

/*
Appends an argument to `.Args` and the corresponding placeholder to `.Text`,
space-separated from previous text if necessary. In inline mode, this falls back
on `ValueOf`, encoding the argument as a literal, and panics if the type is not
supported.
*/
func (self *Bui) Arg(val any) {
	switch self.Style {
	case PlaceholderQuestion:
		self.Args = append(self.Args, val)
		self.Str(`?`)
	case PlaceholderDollar:
		self.Args = append(self.Args, val)
		self.Str(`$` + itoa(int64(len(self.Args))))
	default:
		self.Literal(try1(ValueOf(val)))
	}
}

// Appends the inline literal of the given value, ignoring the style. Nil input
// is encoded as `NULL`.
func (self *Bui) Literal(val Appender) {
	self.Space()
	if val == nil {
		self.Text = append(self.Text, `NULL`...)
		return
	}
	self.Text = val.Append(self.Text)
}

/*
Appends a value: an inline literal in inline mode, otherwise whatever the value
decides to bind via `Value.AppendBind`. Nil input is encoded as `NULL`.
*/
func (self *Bui) Value(val Value) {
	if val == nil || self.IsInline() {
		self.Literal(val)
		return
	}
	val.AppendBind(self)
}

/*
Appends the output of the given function without a leading space: the first
thing the function appends is glued to the preceding text. Used for ordinal
parameters of raw fragments, which must replace the parameter in place.
*/
func (self *Bui) glued(fun func(*Bui)) {
	sub := Bui{Args: self.Args, Style: self.Style}
	fun(&sub)
	self.Text = append(self.Text, sub.Text...)
	self.Args = sub.Args
}
