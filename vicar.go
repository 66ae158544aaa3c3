/*
Package vicar reads and writes images in the VICAR container format
(Video Image Communication And Retrieval) used throughout the planetary
science archives.

A file begins with an ASCII label of NAME=VALUE pairs whose byte length
is given by its own LBLSIZE keyword and is always a whole number of
records. The label describes a payload of up to three axes in one of
three band organizations (BSQ, BIL, BIP), optionally preceded by binary
header records, optionally carrying prefix bytes on every record, and
optionally followed by a second label when the EOL keyword is nonzero.
Element encodings cover unsigned bytes, two integer widths, two IEEE
floating widths, complex pairs, and the legacy VAX single-precision
format, which is transcoded to IEEE eagerly on load.

Decoding canonicalizes the payload to a band-first array regardless of
the on-disk organization. Saving always writes band-sequential files
with no prefix bytes, no binary header and native floating encodings,
so loading and re-saving a file that used those features is lossy.
*/
package vicar

import "strings"

// The keywords present in every label, in canonical order. HOST, BUFSIZ,
// BLTYPE and the B* keywords describe provenance rather than payload
// geometry and may be rewritten freely; the rest change only through the
// Force accessors or a whole-array replacement.
var requiredNames = []string{
	"LBLSIZE", "FORMAT", "TYPE", "BUFSIZ", "DIM", "EOL",
	"RECSIZE", "ORG", "NL", "NS", "NB",
	"N1", "N2", "N3", "N4", "NBB", "NLB",
	"HOST", "INTFMT", "REALFMT",
	"BHOST", "BINTFMT", "BREALFMT", "BLTYPE",
}

var required = make(map[string]bool, len(requiredNames))

var mutable = map[string]bool{
	"HOST":     true,
	"BUFSIZ":   true,
	"BLTYPE":   true,
	"BHOST":    true,
	"BINTFMT":  true,
	"BREALFMT": true,
}

func init() {
	for _, name := range requiredNames {
		required[name] = true
	}
}

func isRequired(name string) bool  { return required[name] }
func isImmutable(name string) bool { return required[name] && !mutable[name] }

// Required reports whether name is one of the keywords every container
// carries exactly once.
func Required(name string) bool { return isRequired(strings.ToUpper(name)) }

// Immutable reports whether name is required and changes only through
// the Force accessors or a whole-array replacement.
func Immutable(name string) bool { return isImmutable(strings.ToUpper(name)) }

const defaultBufsiz = 20480

// defaultHost matches the value written by the JPL VICAR I/O libraries.
const defaultHost = "JAVA"
