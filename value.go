package vicar

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	KindInt Kind = iota
	KindDecimal
	KindString
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "integer"
	case KindDecimal:
		return "decimal"
	case KindString:
		return "string"
	case KindList:
		return "list"
	}
	return "unknown"
}

// A Value is one label value: an integer, a decimal number, a string, or
// a flat list of those. Decimal values remember the exact text they were
// parsed from, so an untouched value is re-serialized with its original
// digits.
type Value struct {
	kind Kind
	num  int64
	real float64
	text string
	list []Value
}

// Int returns an integer Value.
func Int(v int64) Value { return Value{kind: KindInt, num: v} }

// String returns a string Value. The text is emitted between single
// quotes and must not itself contain one; there is no escape syntax.
func String(s string) Value { return Value{kind: KindString, text: s} }

// Float returns a decimal Value for v.
func Float(v float64) Value {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return Value{kind: KindDecimal, real: v, text: s}
}

// Decimal returns a decimal Value that serializes as text exactly. The
// text must be a plain decimal numeral, optionally with an exponent.
func Decimal(text string) (Value, error) {
	v, err := parseNumber(text)
	if err != nil {
		return Value{}, fmt.Errorf("vicar: invalid decimal %q", text)
	}
	if v.kind == KindInt {
		return Value{kind: KindDecimal, real: float64(v.num), text: text}, nil
	}
	return v, nil
}

// List returns a list Value over scalar items. Lists do not nest; a list
// item panics.
func List(items ...Value) Value {
	for _, item := range items {
		if item.kind == KindList {
			panic("vicar: nested list value")
		}
	}
	return Value{kind: KindList, list: append([]Value(nil), items...)}
}

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// AsInt returns the integer value of v.
func (v Value) AsInt() (int64, bool) {
	if v.kind != KindInt {
		return 0, false
	}
	return v.num, true
}

// AsFloat returns the numeric value of an integer or decimal.
func (v Value) AsFloat() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.num), true
	case KindDecimal:
		return v.real, true
	}
	return 0, false
}

// AsString returns the text of a string value.
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.text, true
}

// AsList returns a copy of the list items.
func (v Value) AsList() ([]Value, bool) {
	if v.kind != KindList {
		return nil, false
	}
	return append([]Value(nil), v.list...), true
}

// String renders v in label syntax.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.num, 10)
	case KindDecimal:
		return v.text
	case KindString:
		return "'" + v.text + "'"
	case KindList:
		parts := make([]string, len(v.list))
		for i, item := range v.list {
			parts[i] = item.String()
		}
		return "(" + strings.Join(parts, ",") + ")"
	}
	return ""
}
