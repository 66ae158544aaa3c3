package vicar

import (
	"fmt"
	"strings"
)

// Entry is one keyword in a Label.
type Entry struct {
	Name  string
	Value Value
}

// A Label is the ordered keyword table of a container. Keywords may
// repeat; lookups address repeats through an occurrence number. The
// first entry is always LBLSIZE, and the required keywords appear
// exactly once each. Use NewLabel to build one from scratch; the zero
// Label accepts no entries.
type Label struct {
	entries []Entry
}

// NewLabel returns a label holding the required keywords with their
// default values.
func NewLabel() *Label {
	l := &Label{entries: make([]Entry, 0, len(requiredNames))}
	for _, name := range requiredNames {
		l.entries = append(l.entries, Entry{Name: name, Value: defaultValue(name)})
	}
	return l
}

func defaultValue(name string) Value {
	switch name {
	case "FORMAT":
		return String("BYTE")
	case "TYPE":
		return String("IMAGE")
	case "BUFSIZ":
		return Int(defaultBufsiz)
	case "DIM":
		return Int(3)
	case "ORG":
		return String("BSQ")
	case "HOST", "BHOST":
		return String(defaultHost)
	case "INTFMT", "BINTFMT":
		return String("LOW")
	case "REALFMT", "BREALFMT":
		return String("IEEE")
	case "BLTYPE":
		return String("")
	}
	return Int(0)
}

// parsedDefault is the value assumed for a required keyword a file does
// not carry. Files predating the encoding keywords hold little-endian
// integers and VAX reals.
func parsedDefault(name string) Value {
	switch name {
	case "REALFMT", "BREALFMT":
		return String("VAX")
	}
	return defaultValue(name)
}

// Len returns the number of entries.
func (l *Label) Len() int { return len(l.entries) }

// EntryAt returns the entry at index i.
func (l *Label) EntryAt(i int) Entry { return l.entries[i] }

// IndexFrom returns the index of the occurrence-th entry named name at
// or after start, or -1 when there is no such entry. An empty name
// matches any entry. A negative occurrence counts back from the last
// match, -1 being the final one.
func (l *Label) IndexFrom(name string, occurrence, start int) int {
	name = strings.ToUpper(name)
	if start < 0 {
		start = 0
	}
	if occurrence < 0 {
		n := 0
		for i := start; i < len(l.entries); i++ {
			if name == "" || l.entries[i].Name == name {
				n++
			}
		}
		occurrence += n
		if occurrence < 0 {
			return -1
		}
	}
	for i := start; i < len(l.entries); i++ {
		if name == "" || l.entries[i].Name == name {
			if occurrence == 0 {
				return i
			}
			occurrence--
		}
	}
	return -1
}

// Index returns the index of the first entry named name, or -1.
func (l *Label) Index(name string) int { return l.IndexFrom(name, 0, 0) }

// IndexN returns the index of the occurrence-th entry named name, or -1.
func (l *Label) IndexN(name string, occurrence int) int {
	return l.IndexFrom(name, occurrence, 0)
}

// Get returns the value of the first entry named name.
func (l *Label) Get(name string) (Value, error) { return l.GetN(name, 0) }

// GetN returns the value of the occurrence-th entry named name.
func (l *Label) GetN(name string, occurrence int) (Value, error) {
	i := l.IndexN(name, occurrence)
	if i < 0 {
		return Value{}, fmt.Errorf("%w: %s", ErrKeywordNotFound, strings.ToUpper(name))
	}
	return l.entries[i].Value, nil
}

// GetInt returns the first value of name as an integer.
func (l *Label) GetInt(name string) (int64, error) {
	v, err := l.Get(name)
	if err != nil {
		return 0, err
	}
	n, ok := v.AsInt()
	if !ok {
		return 0, fmt.Errorf("vicar: keyword %s holds a %s, not an integer", strings.ToUpper(name), v.Kind())
	}
	return n, nil
}

// GetFloat returns the first value of name as a float.
func (l *Label) GetFloat(name string) (float64, error) {
	v, err := l.Get(name)
	if err != nil {
		return 0, err
	}
	f, ok := v.AsFloat()
	if !ok {
		return 0, fmt.Errorf("vicar: keyword %s holds a %s, not a number", strings.ToUpper(name), v.Kind())
	}
	return f, nil
}

// GetString returns the first value of name as a string.
func (l *Label) GetString(name string) (string, error) {
	v, err := l.Get(name)
	if err != nil {
		return "", err
	}
	s, ok := v.AsString()
	if !ok {
		return "", fmt.Errorf("vicar: keyword %s holds a %s, not a string", strings.ToUpper(name), v.Kind())
	}
	return s, nil
}

// IntOr returns the first integer value of name, or def when the
// keyword is absent or holds another kind.
func (l *Label) IntOr(name string, def int64) int64 {
	if v, err := l.Get(name); err == nil {
		if n, ok := v.AsInt(); ok {
			return n
		}
	}
	return def
}

// FloatOr returns the first numeric value of name, or def.
func (l *Label) FloatOr(name string, def float64) float64 {
	if v, err := l.Get(name); err == nil {
		if f, ok := v.AsFloat(); ok {
			return f
		}
	}
	return def
}

// StringOr returns the first string value of name, or def.
func (l *Label) StringOr(name, def string) string {
	if v, err := l.Get(name); err == nil {
		if s, ok := v.AsString(); ok {
			return s
		}
	}
	return def
}

// Set replaces the value of the first entry named name, appending the
// keyword when it is absent. Immutable keywords are refused.
func (l *Label) Set(name string, v Value) error { return l.set(name, v, false) }

// ForceSet replaces or appends like Set, overriding protection.
func (l *Label) ForceSet(name string, v Value) error { return l.set(name, v, true) }

func (l *Label) set(name string, v Value, override bool) error {
	name = strings.ToUpper(name)
	if i := l.Index(name); i >= 0 {
		return l.setAt(i, v, override)
	}
	return l.insert(len(l.entries), name, v)
}

// SetAt replaces the value at index i. Immutable keywords are refused.
func (l *Label) SetAt(i int, v Value) error { return l.setAt(i, v, false) }

// ForceSetAt replaces the value at index i, overriding protection.
func (l *Label) ForceSetAt(i int, v Value) error { return l.setAt(i, v, true) }

func (l *Label) setAt(i int, v Value, override bool) error {
	if i < 0 || i >= len(l.entries) {
		return fmt.Errorf("vicar: label index %d out of range", i)
	}
	if !override && isImmutable(l.entries[i].Name) {
		return fmt.Errorf("%w: %s", ErrProtectedKeyword, l.entries[i].Name)
	}
	l.entries[i].Value = v
	return nil
}

// Insert adds name=v at index i, pushing later entries down. Inserting
// before LBLSIZE or a second occurrence of a required keyword is
// refused.
func (l *Label) Insert(i int, name string, v Value) error { return l.insert(i, name, v) }

// Append adds name=v after the last entry.
func (l *Label) Append(name string, v Value) error {
	return l.insert(len(l.entries), name, v)
}

func (l *Label) insert(i int, name string, v Value) error {
	name = strings.ToUpper(name)
	if err := validateName(name); err != nil {
		return err
	}
	if i == 0 {
		return fmt.Errorf("vicar: cannot insert before LBLSIZE")
	}
	if i < 0 || i > len(l.entries) {
		return fmt.Errorf("vicar: label index %d out of range", i)
	}
	if isRequired(name) && l.Index(name) >= 0 {
		return fmt.Errorf("vicar: required keyword %s is already present", name)
	}
	l.entries = append(l.entries, Entry{})
	copy(l.entries[i+1:], l.entries[i:])
	l.entries[i] = Entry{Name: name, Value: v}
	return nil
}

// Delete removes the first entry named name. Required keywords are
// refused.
func (l *Label) Delete(name string) error {
	name = strings.ToUpper(name)
	i := l.Index(name)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrKeywordNotFound, name)
	}
	return l.deleteAt(i, 1, false)
}

// ForceDelete removes the first entry named name, passing over required
// keywords and absent names without error.
func (l *Label) ForceDelete(name string) error {
	name = strings.ToUpper(name)
	if isRequired(name) {
		return nil
	}
	if i := l.Index(name); i >= 0 {
		l.entries = append(l.entries[:i], l.entries[i+1:]...)
	}
	return nil
}

// DeleteAt removes count entries starting at index start. The range is
// checked first, so a required keyword anywhere inside it fails the
// whole call with nothing removed.
func (l *Label) DeleteAt(start, count int) error { return l.deleteAt(start, count, false) }

// ForceDeleteAt removes like DeleteAt but passes over required keywords
// instead of failing.
func (l *Label) ForceDeleteAt(start, count int) error { return l.deleteAt(start, count, true) }

func (l *Label) deleteAt(start, count int, ignore bool) error {
	if start < 0 || count < 0 || start+count > len(l.entries) {
		return fmt.Errorf("vicar: label range [%d,%d) out of range", start, start+count)
	}
	if !ignore {
		for i := start; i < start+count; i++ {
			if isRequired(l.entries[i].Name) {
				return fmt.Errorf("%w: %s", ErrProtectedKeyword, l.entries[i].Name)
			}
		}
	}
	// Walk backwards so the indices still to visit stay valid.
	for i := start + count - 1; i >= start; i-- {
		if isRequired(l.entries[i].Name) {
			continue
		}
		l.entries = append(l.entries[:i], l.entries[i+1:]...)
	}
	return nil
}

// Names returns every keyword name in table order.
func (l *Label) Names() []string {
	names := make([]string, len(l.entries))
	for i, e := range l.entries {
		names[i] = e.Name
	}
	return names
}

// String renders the label text without padding, entries separated by
// two spaces.
func (l *Label) String() string {
	var b strings.Builder
	for i, e := range l.entries {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(e.Name)
		b.WriteByte('=')
		b.WriteString(e.Value.String())
	}
	return b.String()
}

func (l *Label) clone() *Label {
	return &Label{entries: append([]Entry(nil), l.entries...)}
}

// mergeEntry folds one parsed statement into the table: required
// keywords overwrite their single occurrence in place, everything else
// appends.
func (l *Label) mergeEntry(name string, v Value) {
	if isRequired(name) {
		if i := l.Index(name); i >= 0 {
			l.entries[i].Value = v
			return
		}
	}
	l.entries = append(l.entries, Entry{Name: name, Value: v})
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("vicar: empty keyword name")
	}
	for i := 0; i < len(name); i++ {
		if !nameChar(name[i], i > 0) {
			return fmt.Errorf("vicar: invalid keyword name %q", name)
		}
	}
	return nil
}
