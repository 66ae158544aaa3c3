package vicar

import (
	"encoding/binary"
	"fmt"
)

// DType identifies the element type of the pixel array, matching the
// FORMAT keyword.
type DType uint8

const (
	Byte DType = iota // unsigned 8-bit integer
	Half              // signed 16-bit integer
	Full              // signed 32-bit integer
	Real              // 32-bit float
	Doub              // 64-bit float
	Comp              // pair of 32-bit floats
)

// Size returns the element width in bytes.
func (d DType) Size() int {
	switch d {
	case Byte:
		return 1
	case Half:
		return 2
	case Full, Real:
		return 4
	case Doub, Comp:
		return 8
	}
	return 0
}

// String returns the FORMAT keyword value for d.
func (d DType) String() string {
	switch d {
	case Byte:
		return "BYTE"
	case Half:
		return "HALF"
	case Full:
		return "FULL"
	case Real:
		return "REAL"
	case Doub:
		return "DOUB"
	case Comp:
		return "COMP"
	}
	return fmt.Sprintf("DType(%d)", uint8(d))
}

func (d DType) integer() bool { return d <= Full }

// parseFormat maps a FORMAT value to its element type. WORD, LONG and
// COMPLEX are older spellings still found in flight archives.
func parseFormat(s string) (DType, error) {
	switch s {
	case "BYTE":
		return Byte, nil
	case "HALF", "WORD":
		return Half, nil
	case "FULL", "LONG":
		return Full, nil
	case "REAL":
		return Real, nil
	case "DOUB":
		return Doub, nil
	case "COMP", "COMPLEX":
		return Comp, nil
	}
	return 0, fmt.Errorf("%w: FORMAT %s", ErrUnsupportedFormat, s)
}

// resolveOrder maps the encoding keywords for d to a byte order. The
// second result marks VAX floating point, which the reader decodes to
// little-endian IEEE up front.
func resolveOrder(d DType, intfmt, realfmt string) (binary.ByteOrder, bool, error) {
	if d.integer() {
		switch intfmt {
		case "LOW":
			return binary.LittleEndian, false, nil
		case "HIGH":
			return binary.BigEndian, false, nil
		}
		return nil, false, fmt.Errorf("%w: INTFMT %s", ErrUnsupportedFormat, intfmt)
	}
	switch realfmt {
	case "IEEE":
		return binary.BigEndian, false, nil
	case "RIEEE":
		return binary.LittleEndian, false, nil
	case "VAX":
		if d == Doub {
			return nil, false, fmt.Errorf("%w: REALFMT VAX with FORMAT DOUB", ErrUnsupportedFormat)
		}
		return binary.LittleEndian, true, nil
	}
	return nil, false, fmt.Errorf("%w: REALFMT %s", ErrUnsupportedFormat, realfmt)
}
