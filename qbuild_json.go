package qbuild

/*
JSON fragment used by the JSON operations of `Composer`: `JsonArray`,
`JsonObject`, `JsonObjects`, `JsonFunc` or `JsonScalar`. `Append` produces the
inline text, see `EncodeJson`. The set of implementations is closed.
*/
type JsonLiteral interface {
	Appender
	eachCandidate(func(string))
}

/*
Encodes a JSON fragment:

	JsonArray   -> [v1, v2]
	JsonObject  -> {"k1": v1, "k2": v2}
	JsonObjects -> [{"k1": v1}, {"k2": v2}]
	JsonFunc    -> JSON_OBJECT('k1', v1, 'k2', v2)
	JsonScalar  -> same as `Encode`

Elements are encoded with `Encode`, so string elements meant for a JSON
document should use `JsonStr` rather than `Str`. Empty inputs still produce the
enclosing brackets. Nil input produces an empty string.
*/
func EncodeJson(val JsonLiteral) string {
	if val == nil {
		return ``
	}
	return bytesToMutableString(val.Append(nil))
}

// JSON array of values.
type JsonArray []Value

// Implement the `Appender` interface.
func (self JsonArray) Append(text []byte) []byte {
	text = append(text, `[`...)
	for ind, val := range self {
		if ind > 0 {
			text = append(text, `, `...)
		}
		text = appendEncoded(text, val)
	}
	text = append(text, `]`...)
	return text
}

// Implement `fmt.Stringer` for debug purposes.
func (self JsonArray) String() string { return EncodeJson(self) }

func (self JsonArray) eachCandidate(fun func(string)) {
	for _, val := range self {
		fun(valueCandidate(val))
	}
}

// Key-value pair of `JsonObject` and `JsonFunc`.
type JsonField struct {
	Key   string
	Value Value
}

// JSON object with ordered fields. Keys are always double-quoted and escaped.
type JsonObject []JsonField

// Implement the `Appender` interface.
func (self JsonObject) Append(text []byte) []byte {
	text = append(text, `{`...)
	for ind, field := range self {
		if ind > 0 {
			text = append(text, `, `...)
		}
		text = appendJsonString(text, field.Key)
		text = append(text, `: `...)
		text = appendEncoded(text, field.Value)
	}
	text = append(text, `}`...)
	return text
}

// Implement `fmt.Stringer` for debug purposes.
func (self JsonObject) String() string { return EncodeJson(self) }

func (self JsonObject) eachCandidate(fun func(string)) {
	for _, field := range self {
		fun(field.Key)
		fun(valueCandidate(field.Value))
	}
}

// JSON array of objects.
type JsonObjects []JsonObject

// Implement the `Appender` interface.
func (self JsonObjects) Append(text []byte) []byte {
	text = append(text, `[`...)
	for ind, val := range self {
		if ind > 0 {
			text = append(text, `, `...)
		}
		text = val.Append(text)
	}
	text = append(text, `]`...)
	return text
}

// Implement `fmt.Stringer` for debug purposes.
func (self JsonObjects) String() string { return EncodeJson(self) }

func (self JsonObjects) eachCandidate(fun func(string)) {
	for _, val := range self {
		val.eachCandidate(fun)
	}
}

/*
MySQL `JSON_OBJECT(...)` call. Unlike `JsonObject`, keys are single-quoted,
since this is an SQL function call rather than a JSON document. Also unlike
the other JSON fragments, this is an SQL expression, and its values become
arguments in binding mode.
*/
type JsonFunc []JsonField

// Implement the `Appender` interface.
func (self JsonFunc) Append(text []byte) []byte {
	text = append(text, `JSON_OBJECT(`...)
	for ind, field := range self {
		if ind > 0 {
			text = append(text, `, `...)
		}
		text = Str(field.Key).Append(text)
		text = append(text, `, `...)
		text = appendEncoded(text, field.Value)
	}
	text = append(text, `)`...)
	return text
}

// Implement the `Expr` interface.
func (self JsonFunc) AppendExpr(bui *Bui) {
	bui.Str(`JSON_OBJECT(`)
	for ind, field := range self {
		if ind > 0 {
			bui.Raw(`,`)
		}
		bui.Literal(Str(field.Key))
		bui.Raw(`,`)
		bui.Value(field.Value)
	}
	bui.Str(`)`)
}

// Implement `fmt.Stringer` for debug purposes.
func (self JsonFunc) String() string { return EncodeJson(self) }

func (self JsonFunc) eachCandidate(fun func(string)) {
	JsonObject(self).eachCandidate(fun)
}

// Single value used where a JSON fragment is expected.
type JsonScalar struct{ Value Value }

// Implement the `Appender` interface.
func (self JsonScalar) Append(text []byte) []byte { return appendEncoded(text, self.Value) }

// Implement `fmt.Stringer` for debug purposes.
func (self JsonScalar) String() string { return EncodeJson(self) }

func (self JsonScalar) eachCandidate(fun func(string)) { fun(valueCandidate(self.Value)) }

func appendEncoded(text []byte, val Value) []byte {
	if val == nil {
		return Null{}.Append(text)
	}
	return val.Append(text)
}

/*
Text of a JSON document for use as a JSON_CONTAINS candidate or a CAST(... AS
JSON) operand. Textual scalars become JSON strings and NULL becomes JSON null,
since the bare SQL literal would not be valid JSON.
*/
func jsonDoc(val JsonLiteral) string {
	scalar, ok := val.(JsonScalar)
	if !ok {
		return EncodeJson(val)
	}

	switch inner := scalar.Value.(type) {
	case nil, Null:
		return `null`
	case Str:
		return Encode(JsonStr(inner))
	case Datetime:
		return Encode(JsonStr(inner))
	default:
		return Encode(inner)
	}
}

// JSON_CONTAINS candidate: a quoted document, or an SQL call for `JsonFunc`.
func appendJsonCandidate(bui *Bui, val JsonLiteral) {
	fun, ok := val.(JsonFunc)
	if ok {
		bui.Expr(fun)
		return
	}
	appendJsonDocArg(bui, jsonDoc(val))
}

// Value of a JSON mutation such as JSON_SET.
func appendJsonValue(bui *Bui, val JsonLiteral) {
	switch val := val.(type) {
	case JsonFunc:
		bui.Expr(val)
	case JsonScalar:
		bui.Value(val.Value)
	default:
		bui.Str(`CAST(`)
		appendJsonDocArg(bui, jsonDoc(val))
		bui.Str(`AS JSON)`)
	}
}

func appendJsonDocArg(bui *Bui, doc string) {
	if bui.IsInline() {
		bui.Literal(Str(doc))
	} else {
		bui.Arg(doc)
	}
}
