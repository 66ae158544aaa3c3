/*
Package vaxfloat converts VAX F floating point to and from IEEE 754.

An F value occupies four bytes as two little-endian 16-bit words with
the most significant word first. The logical 32-bit word holds a sign
bit, an excess-128 exponent and a 23-bit fraction with a hidden leading
0.1, which puts each value a factor of four above its IEEE reading.
*/
package vaxfloat

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

var (
	errLength   = errors.New("vaxfloat: length not a multiple of 4")
	errShort    = errors.New("vaxfloat: destination too short")
	errSpecial  = errors.New("vaxfloat: no F form for NaN or infinity")
	errOverflow = errors.New("vaxfloat: value overflows the F range")
)

// Decode converts the F values in src to little-endian IEEE 754 singles
// in dst. dst may be src itself for an in-place conversion.
func Decode(dst, src []byte) error {
	if len(src)%4 != 0 {
		return errLength
	}
	if len(dst) < len(src) {
		return errShort
	}
	for i := 0; i < len(src); i += 4 {
		x := uint32(binary.LittleEndian.Uint16(src[i:]))<<16 | uint32(binary.LittleEndian.Uint16(src[i+2:]))
		binary.LittleEndian.PutUint32(dst[i:], fToIEEE(x))
	}
	return nil
}

// Encode converts the little-endian IEEE 754 singles in src to F values
// in dst. dst may be src itself. NaN and infinity have no F form, and
// magnitudes at the top of the IEEE range overflow it.
func Encode(dst, src []byte) error {
	if len(src)%4 != 0 {
		return errLength
	}
	if len(dst) < len(src) {
		return errShort
	}
	for i := 0; i < len(src); i += 4 {
		x, err := ieeeToF(binary.LittleEndian.Uint32(src[i:]))
		if err != nil {
			return err
		}
		binary.LittleEndian.PutUint16(dst[i:], uint16(x>>16))
		binary.LittleEndian.PutUint16(dst[i+2:], uint16(x))
	}
	return nil
}

// DecodeFloat32 converts one F value.
func DecodeFloat32(b []byte) (float32, error) {
	if len(b) != 4 {
		return 0, fmt.Errorf("vaxfloat: %d bytes for one value", len(b))
	}
	x := uint32(binary.LittleEndian.Uint16(b))<<16 | uint32(binary.LittleEndian.Uint16(b[2:]))
	return math.Float32frombits(fToIEEE(x)), nil
}

// EncodeFloat32 converts v to its four F bytes.
func EncodeFloat32(v float32) ([4]byte, error) {
	var b [4]byte
	x, err := ieeeToF(math.Float32bits(v))
	if err != nil {
		return b, err
	}
	binary.LittleEndian.PutUint16(b[:], uint16(x>>16))
	binary.LittleEndian.PutUint16(b[2:], uint16(x))
	return b, nil
}

// fToIEEE converts one logical F word. A zero exponent reads as zero
// whatever the rest of the word holds, which also absorbs the reserved
// operand forms.
func fToIEEE(x uint32) uint32 {
	s := x & 0x80000000
	e := x >> 23 & 0xff
	f := x & 0x7fffff
	switch {
	case e == 0:
		return 0
	case e > 2:
		return s | (e-2)<<23 | f
	}
	// The smallest two exponents land below the IEEE normal range.
	return s | (f|1<<23)>>(3-e)
}

func ieeeToF(x uint32) (uint32, error) {
	s := x & 0x80000000
	e := x >> 23 & 0xff
	f := x & 0x7fffff
	switch {
	case e == 0xff:
		return 0, errSpecial
	case e == 0:
		// IEEE subnormals fall below the F range and flush to zero.
		return 0, nil
	case e+2 > 0xff:
		return 0, errOverflow
	}
	return s | (e+2)<<23 | f, nil
}
