package vicar

import (
	"fmt"
	"strconv"
)

// labelMagic opens every container and every extension region.
const labelMagic = "LBLSIZE="

func printable(c byte) bool { return c >= 0x20 && c < 0x7f }

// nameChar reports whether c may appear in a keyword name. Names open
// with a letter; digits and underscores may follow.
func nameChar(c byte, interior bool) bool {
	switch {
	case c >= 'A' && c <= 'Z':
		return true
	case interior && (c >= '0' && c <= '9' || c == '_'):
		return true
	}
	return false
}

type labelScanner struct {
	data []byte
	pos  int
}

func (s *labelScanner) skipSpaces() {
	for s.pos < len(s.data) && s.data[s.pos] == ' ' {
		s.pos++
	}
}

// done reports whether the scan has reached the end of the region or a
// byte outside the printable range, either of which ends the label text.
func (s *labelScanner) done() bool {
	return s.pos >= len(s.data) || !printable(s.data[s.pos])
}

func (s *labelScanner) scanName() (string, error) {
	start := s.pos
	for s.pos < len(s.data) && nameChar(s.data[s.pos], s.pos > start) {
		s.pos++
	}
	if s.pos == start {
		return "", fmt.Errorf("%w: keyword expected at byte %d", ErrMalformed, start)
	}
	return string(s.data[start:s.pos]), nil
}

func (s *labelScanner) scanValue() (Value, error) {
	if s.done() {
		return Value{}, fmt.Errorf("%w: value expected at byte %d", ErrMalformed, s.pos)
	}
	switch s.data[s.pos] {
	case '\'':
		return s.scanString()
	case '(':
		return s.scanList()
	}
	return s.scanNumber()
}

// scanString reads a quoted string. There is no escape syntax, so the
// text runs to the next quote.
func (s *labelScanner) scanString() (Value, error) {
	open := s.pos
	s.pos++
	start := s.pos
	for s.pos < len(s.data) && s.data[s.pos] != '\'' {
		if !printable(s.data[s.pos]) {
			return Value{}, fmt.Errorf("%w: unterminated string at byte %d", ErrMalformed, open)
		}
		s.pos++
	}
	if s.pos >= len(s.data) {
		return Value{}, fmt.Errorf("%w: unterminated string at byte %d", ErrMalformed, open)
	}
	v := String(string(s.data[start:s.pos]))
	s.pos++
	return v, nil
}

func (s *labelScanner) scanNumber() (Value, error) {
	start := s.pos
	if s.pos < len(s.data) && (s.data[s.pos] == '+' || s.data[s.pos] == '-') {
		s.pos++
	}
	digits := 0
	for s.pos < len(s.data) && s.data[s.pos] >= '0' && s.data[s.pos] <= '9' {
		s.pos++
		digits++
	}
	decimal := false
	if s.pos < len(s.data) && s.data[s.pos] == '.' {
		decimal = true
		s.pos++
		for s.pos < len(s.data) && s.data[s.pos] >= '0' && s.data[s.pos] <= '9' {
			s.pos++
			digits++
		}
	}
	if digits == 0 {
		return Value{}, fmt.Errorf("%w: malformed value at byte %d", ErrMalformed, start)
	}
	if s.pos < len(s.data) && (s.data[s.pos] == 'e' || s.data[s.pos] == 'E') {
		decimal = true
		s.pos++
		if s.pos < len(s.data) && (s.data[s.pos] == '+' || s.data[s.pos] == '-') {
			s.pos++
		}
		edigits := 0
		for s.pos < len(s.data) && s.data[s.pos] >= '0' && s.data[s.pos] <= '9' {
			s.pos++
			edigits++
		}
		if edigits == 0 {
			return Value{}, fmt.Errorf("%w: malformed exponent at byte %d", ErrMalformed, start)
		}
	}
	text := string(s.data[start:s.pos])
	if !decimal {
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("%w: integer %s out of range", ErrMalformed, text)
		}
		return Int(n), nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Value{}, fmt.Errorf("%w: malformed number %s", ErrMalformed, text)
	}
	return Value{kind: KindDecimal, real: f, text: text}, nil
}

// scanList reads a parenthesized list of scalars. Lists do not nest.
func (s *labelScanner) scanList() (Value, error) {
	open := s.pos
	s.pos++
	var items []Value
	s.skipSpaces()
	if !s.done() && s.data[s.pos] == ')' {
		s.pos++
		return Value{kind: KindList, list: items}, nil
	}
	for {
		s.skipSpaces()
		if s.done() {
			return Value{}, fmt.Errorf("%w: unterminated list at byte %d", ErrMalformed, open)
		}
		var item Value
		var err error
		if s.data[s.pos] == '\'' {
			item, err = s.scanString()
		} else {
			item, err = s.scanNumber()
		}
		if err != nil {
			return Value{}, err
		}
		items = append(items, item)
		s.skipSpaces()
		if s.done() {
			return Value{}, fmt.Errorf("%w: unterminated list at byte %d", ErrMalformed, open)
		}
		switch s.data[s.pos] {
		case ',':
			s.pos++
		case ')':
			s.pos++
			return Value{kind: KindList, list: items}, nil
		default:
			return Value{}, fmt.Errorf("%w: malformed list at byte %d", ErrMalformed, s.pos)
		}
	}
}

// parseStatements scans NAME=VALUE statements until the end of the
// region or the first byte outside the printable range.
func parseStatements(data []byte) ([]Entry, error) {
	s := &labelScanner{data: data}
	var entries []Entry
	for {
		s.skipSpaces()
		if s.done() {
			return entries, nil
		}
		name, err := s.scanName()
		if err != nil {
			return nil, err
		}
		if s.pos >= len(s.data) || s.data[s.pos] != '=' {
			return nil, fmt.Errorf("%w: %s has no value", ErrMalformed, name)
		}
		s.pos++
		v, err := s.scanValue()
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{Name: name, Value: v})
	}
}

// parseNumber parses text as a single label numeral of either kind.
func parseNumber(text string) (Value, error) {
	s := &labelScanner{data: []byte(text)}
	v, err := s.scanNumber()
	if err != nil {
		return Value{}, err
	}
	if s.pos != len(text) {
		return Value{}, fmt.Errorf("%w: malformed number %q", ErrMalformed, text)
	}
	return v, nil
}

// scanLabelSize reads the LBLSIZE value that must open a label region.
func scanLabelSize(data []byte) (int, error) {
	if len(data) < len(labelMagic) || string(data[:len(labelMagic)]) != labelMagic {
		return 0, fmt.Errorf("%w: missing LBLSIZE", ErrMalformed)
	}
	s := &labelScanner{data: data, pos: len(labelMagic)}
	s.skipSpaces()
	start := s.pos
	for s.pos < len(s.data) && s.data[s.pos] >= '0' && s.data[s.pos] <= '9' {
		s.pos++
	}
	if s.pos == start {
		return 0, fmt.Errorf("%w: malformed LBLSIZE", ErrMalformed)
	}
	n, err := strconv.Atoi(string(s.data[start:s.pos]))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: malformed LBLSIZE", ErrMalformed)
	}
	return n, nil
}
