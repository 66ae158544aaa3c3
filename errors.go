package vicar

import "errors"

var (
	// ErrMalformed reports a file that is not a usable container: a bad
	// opening sequence, unparseable label text, or a non-image type.
	ErrMalformed = errors.New("vicar: malformed container")

	// ErrUnsupportedFormat reports a FORMAT, ORG, INTFMT or REALFMT value
	// outside the supported set.
	ErrUnsupportedFormat = errors.New("vicar: unsupported format")

	// ErrLayout reports label geometry inconsistent with itself or with
	// the size of the file.
	ErrLayout = errors.New("vicar: bad layout")

	// ErrProtectedKeyword reports an attempt to change an immutable
	// keyword or delete a required one without the Force accessors.
	ErrProtectedKeyword = errors.New("vicar: protected keyword")

	// ErrKeywordNotFound reports a lookup for a keyword or occurrence a
	// label does not contain.
	ErrKeywordNotFound = errors.New("vicar: keyword not found")
)
