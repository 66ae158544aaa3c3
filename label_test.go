package vicar_test

import (
	"strings"
	"testing"

	"github.com/SETI/go-vicar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLabelDefaults(t *testing.T) {
	l := vicar.NewLabel()

	assert.Equal(t, 24, l.Len())
	assert.Equal(t, "LBLSIZE", l.EntryAt(0).Name)

	for _, name := range l.Names() {
		assert.True(t, vicar.Required(name), "keyword %s", name)
	}

	format, err := l.GetString("FORMAT")
	require.NoError(t, err)
	assert.Equal(t, "BYTE", format)

	org, err := l.GetString("ORG")
	require.NoError(t, err)
	assert.Equal(t, "BSQ", org)

	dim, err := l.GetInt("DIM")
	require.NoError(t, err)
	assert.Equal(t, int64(3), dim)
}

func TestLabelOccurrences(t *testing.T) {
	l := vicar.NewLabel()
	require.NoError(t, l.Append("TASK", vicar.String("A")))
	require.NoError(t, l.Append("DAT_TIM", vicar.String("X")))
	require.NoError(t, l.Append("TASK", vicar.String("B")))
	require.NoError(t, l.Append("TASK", vicar.String("C")))

	first, err := l.GetString("TASK")
	require.NoError(t, err)
	assert.Equal(t, "A", first)

	v, err := l.GetN("TASK", 1)
	require.NoError(t, err)
	assert.Equal(t, "'B'", v.String())

	// Negative occurrences count back from the last match.
	last := l.IndexN("TASK", -1)
	assert.Equal(t, "'C'", l.EntryAt(last).Value.String())

	assert.Equal(t, -1, l.IndexN("TASK", 3))
	assert.Equal(t, -1, l.IndexN("TASK", -4))

	// An empty pattern matches any entry.
	assert.Equal(t, 0, l.IndexFrom("", 0, 0))
	assert.Equal(t, 24, l.IndexFrom("", 0, 24))

	// Lookups are case-insensitive on the name.
	assert.Equal(t, l.Index("TASK"), l.Index("task"))

	// A start index narrows the search window.
	second := l.IndexFrom("TASK", 0, l.Index("TASK")+1)
	assert.Equal(t, "'B'", l.EntryAt(second).Value.String())

	_, err = l.GetN("TASK", 5)
	assert.ErrorIs(t, err, vicar.ErrKeywordNotFound)
}

func TestLabelSetProtection(t *testing.T) {
	l := vicar.NewLabel()

	err := l.Set("FORMAT", vicar.String("HALF"))
	assert.ErrorIs(t, err, vicar.ErrProtectedKeyword)

	require.NoError(t, l.ForceSet("FORMAT", vicar.String("HALF")))
	format, err := l.GetString("FORMAT")
	require.NoError(t, err)
	assert.Equal(t, "HALF", format)

	// HOST records provenance, not geometry, so it stays writable.
	require.NoError(t, l.Set("HOST", vicar.String("X86-LINUX")))

	// Setting an absent keyword appends it.
	require.NoError(t, l.Set("MISSION", vicar.String("VOYAGER")))
	assert.Equal(t, "MISSION", l.EntryAt(l.Len()-1).Name)

	err = l.SetAt(l.Index("RECSIZE"), vicar.Int(100))
	assert.ErrorIs(t, err, vicar.ErrProtectedKeyword)
	require.NoError(t, l.ForceSetAt(l.Index("RECSIZE"), vicar.Int(100)))
}

func TestLabelInsert(t *testing.T) {
	l := vicar.NewLabel()

	err := l.Insert(0, "TASK", vicar.String("A"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LBLSIZE")

	err = l.Insert(-1, "TASK", vicar.String("A"))
	assert.Error(t, err)
	err = l.Insert(l.Len()+1, "TASK", vicar.String("A"))
	assert.Error(t, err)

	err = l.Insert(1, "FORMAT", vicar.String("HALF"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already present")

	err = l.Insert(1, "2BAD", vicar.Int(0))
	assert.Error(t, err)
	err = l.Insert(1, "", vicar.Int(0))
	assert.Error(t, err)

	require.NoError(t, l.Insert(1, "TASK", vicar.String("A")))
	assert.Equal(t, "TASK", l.EntryAt(1).Name)
	assert.Equal(t, "FORMAT", l.EntryAt(2).Name)

	// Names normalize to upper case on the way in.
	require.NoError(t, l.Append("lower_9", vicar.Int(1)))
	assert.Equal(t, "LOWER_9", l.EntryAt(l.Len()-1).Name)
}

func TestLabelDelete(t *testing.T) {
	l := vicar.NewLabel()
	require.NoError(t, l.Append("TASK", vicar.String("A")))
	require.NoError(t, l.Append("TASK", vicar.String("B")))

	assert.ErrorIs(t, l.Delete("FORMAT"), vicar.ErrProtectedKeyword)
	assert.ErrorIs(t, l.Delete("NOPE"), vicar.ErrKeywordNotFound)

	require.NoError(t, l.Delete("TASK"))
	v, err := l.Get("TASK")
	require.NoError(t, err)
	assert.Equal(t, "'B'", v.String())

	// The forced form passes over required keywords and absent names.
	require.NoError(t, l.ForceDelete("FORMAT"))
	assert.True(t, l.Index("FORMAT") >= 0)
	require.NoError(t, l.ForceDelete("NOPE"))
	require.NoError(t, l.ForceDelete("TASK"))
	assert.Equal(t, -1, l.Index("TASK"))
}

func TestLabelDeleteRange(t *testing.T) {
	l := vicar.NewLabel()
	require.NoError(t, l.Append("TASK", vicar.String("A")))
	require.NoError(t, l.Append("TASK", vicar.String("B")))
	require.NoError(t, l.Append("TASK", vicar.String("C")))
	start := l.Len() - 3

	assert.Error(t, l.DeleteAt(-1, 2))
	assert.Error(t, l.DeleteAt(0, l.Len()+1))

	// A required keyword anywhere in the range fails the whole call
	// with nothing removed.
	err := l.DeleteAt(start-1, 3)
	assert.ErrorIs(t, err, vicar.ErrProtectedKeyword)
	assert.Equal(t, 27, l.Len())

	require.NoError(t, l.DeleteAt(start, 3))
	assert.Equal(t, 24, l.Len())
	assert.Equal(t, -1, l.Index("TASK"))
}

func TestLabelForceDeleteRange(t *testing.T) {
	l := vicar.NewLabel()
	require.NoError(t, l.Insert(1, "TASK", vicar.String("A")))
	require.NoError(t, l.Insert(3, "TASK", vicar.String("B")))
	require.NoError(t, l.Insert(5, "TASK", vicar.String("C")))

	// The forced form removes what it can and leaves the required
	// keywords standing.
	require.NoError(t, l.ForceDeleteAt(0, l.Len()))
	assert.Equal(t, 24, l.Len())
	assert.Equal(t, -1, l.Index("TASK"))
	assert.Equal(t, "LBLSIZE", l.EntryAt(0).Name)
}

func TestLabelTypedGets(t *testing.T) {
	l := vicar.NewLabel()

	_, err := l.GetInt("FORMAT")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not an integer")

	_, err = l.GetString("RECSIZE")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a string")

	_, err = l.GetFloat("FORMAT")
	assert.Error(t, err)

	require.NoError(t, l.Append("GAIN", vicar.Float(2.5)))
	f, err := l.GetFloat("GAIN")
	require.NoError(t, err)
	assert.Equal(t, 2.5, f)

	assert.Equal(t, int64(0), l.IntOr("NL", 0))
	assert.Equal(t, int64(9), l.IntOr("NOPE", 9))
	assert.Equal(t, "BSQ", l.StringOr("ORG", "?"))
	assert.Equal(t, "?", l.StringOr("NOPE", "?"))
	assert.Equal(t, 2.5, l.FloatOr("GAIN", 0))
	assert.Equal(t, 1.5, l.FloatOr("NOPE", 1.5))
}

func TestLabelString(t *testing.T) {
	l := vicar.NewLabel()
	text := l.String()

	assert.True(t, strings.HasPrefix(text, "LBLSIZE=0  FORMAT='BYTE'"))
	assert.Contains(t, text, "  ORG='BSQ'  ")
	assert.NotContains(t, text, "   ")
}
