package vicar

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Array is a typed view over raw element bytes. Views made from the
// same image share storage, so axis permutations and record slicing
// never copy. Indices follow the shape order, with the last axis
// varying fastest in a packed array.
type Array struct {
	dtype  DType
	order  binary.ByteOrder
	data   []byte
	off    int
	shape  []int
	stride []int // byte strides
}

// NewArray returns a packed, zero-filled array. A nil order means
// little-endian.
func NewArray(dtype DType, order binary.ByteOrder, shape ...int) *Array {
	if order == nil {
		order = binary.LittleEndian
	}
	n := 1
	for _, s := range shape {
		if s < 0 {
			panic(fmt.Sprintf("vicar: negative dimension %d", s))
		}
		n *= s
	}
	stride := make([]int, len(shape))
	acc := dtype.Size()
	for i := len(shape) - 1; i >= 0; i-- {
		stride[i] = acc
		acc *= shape[i]
	}
	return &Array{
		dtype:  dtype,
		order:  order,
		data:   make([]byte, n*dtype.Size()),
		shape:  append([]int(nil), shape...),
		stride: stride,
	}
}

func newView(dtype DType, order binary.ByteOrder, data []byte, off int, shape, stride []int) *Array {
	return &Array{dtype: dtype, order: order, data: data, off: off, shape: shape, stride: stride}
}

// DType returns the element type.
func (a *Array) DType() DType { return a.dtype }

// ByteOrder returns the element byte order.
func (a *Array) ByteOrder() binary.ByteOrder { return a.order }

// Rank returns the number of axes.
func (a *Array) Rank() int { return len(a.shape) }

// Shape returns a copy of the axis sizes.
func (a *Array) Shape() []int { return append([]int(nil), a.shape...) }

// Size returns the number of elements.
func (a *Array) Size() int {
	n := 1
	for _, s := range a.shape {
		n *= s
	}
	return n
}

func (a *Array) offset(idx []int) int {
	if len(idx) != len(a.shape) {
		panic(fmt.Sprintf("vicar: %d indices for a rank %d array", len(idx), len(a.shape)))
	}
	off := a.off
	for i, j := range idx {
		if j < 0 || j >= a.shape[i] {
			panic(fmt.Sprintf("vicar: index %d out of range on axis %d", j, i))
		}
		off += j * a.stride[i]
	}
	return off
}

// IntAt returns the integer element at idx.
func (a *Array) IntAt(idx ...int) int64 {
	off := a.offset(idx)
	switch a.dtype {
	case Byte:
		return int64(a.data[off])
	case Half:
		return int64(int16(a.order.Uint16(a.data[off:])))
	case Full:
		return int64(int32(a.order.Uint32(a.data[off:])))
	}
	panic(fmt.Sprintf("vicar: IntAt on %s elements", a.dtype))
}

// SetInt stores v at idx, truncated to the element width.
func (a *Array) SetInt(v int64, idx ...int) {
	off := a.offset(idx)
	switch a.dtype {
	case Byte:
		a.data[off] = byte(v)
	case Half:
		a.order.PutUint16(a.data[off:], uint16(v))
	case Full:
		a.order.PutUint32(a.data[off:], uint32(v))
	default:
		panic(fmt.Sprintf("vicar: SetInt on %s elements", a.dtype))
	}
}

// Float64At returns the element at idx widened to float64. Integer
// elements convert exactly.
func (a *Array) Float64At(idx ...int) float64 {
	off := a.offset(idx)
	switch a.dtype {
	case Byte:
		return float64(a.data[off])
	case Half:
		return float64(int16(a.order.Uint16(a.data[off:])))
	case Full:
		return float64(int32(a.order.Uint32(a.data[off:])))
	case Real:
		return float64(math.Float32frombits(a.order.Uint32(a.data[off:])))
	case Doub:
		return math.Float64frombits(a.order.Uint64(a.data[off:]))
	}
	panic(fmt.Sprintf("vicar: Float64At on %s elements", a.dtype))
}

// SetFloat64 stores v at idx of a floating array.
func (a *Array) SetFloat64(v float64, idx ...int) {
	off := a.offset(idx)
	switch a.dtype {
	case Real:
		a.order.PutUint32(a.data[off:], math.Float32bits(float32(v)))
	case Doub:
		a.order.PutUint64(a.data[off:], math.Float64bits(v))
	default:
		panic(fmt.Sprintf("vicar: SetFloat64 on %s elements", a.dtype))
	}
}

// Complex64At returns the complex element at idx.
func (a *Array) Complex64At(idx ...int) complex64 {
	off := a.offset(idx)
	if a.dtype != Comp {
		panic(fmt.Sprintf("vicar: Complex64At on %s elements", a.dtype))
	}
	re := math.Float32frombits(a.order.Uint32(a.data[off:]))
	im := math.Float32frombits(a.order.Uint32(a.data[off+4:]))
	return complex(re, im)
}

// SetComplex64 stores v at idx of a complex array.
func (a *Array) SetComplex64(v complex64, idx ...int) {
	off := a.offset(idx)
	if a.dtype != Comp {
		panic(fmt.Sprintf("vicar: SetComplex64 on %s elements", a.dtype))
	}
	a.order.PutUint32(a.data[off:], math.Float32bits(real(v)))
	a.order.PutUint32(a.data[off+4:], math.Float32bits(imag(v)))
}

// contiguous reports whether the view walks its bytes in one packed run.
func (a *Array) contiguous() bool {
	if a.Size() == 0 {
		return true
	}
	acc := a.dtype.Size()
	for i := len(a.shape) - 1; i >= 0; i-- {
		if a.shape[i] <= 1 {
			continue
		}
		if a.stride[i] != acc {
			return false
		}
		acc *= a.shape[i]
	}
	return true
}

// Contiguous returns a packed copy of the view, or the view itself when
// it is already packed.
func (a *Array) Contiguous() *Array {
	if a.contiguous() {
		return a
	}
	b := NewArray(a.dtype, a.order, a.shape...)
	b.data = a.appendBytes(b.data[:0])
	return b
}

// Bytes returns the elements packed in index order. A packed view
// aliases the backing store; any other view is copied out.
func (a *Array) Bytes() []byte {
	n := a.Size() * a.dtype.Size()
	if a.contiguous() {
		return a.data[a.off : a.off+n]
	}
	return a.appendBytes(make([]byte, 0, n))
}

func (a *Array) appendBytes(dst []byte) []byte {
	if a.Size() == 0 {
		return dst
	}
	if len(a.shape) == 0 {
		return append(dst, a.data[a.off:a.off+a.dtype.Size()]...)
	}
	return a.appendAxis(dst, a.off, 0)
}

func (a *Array) appendAxis(dst []byte, off, axis int) []byte {
	esize := a.dtype.Size()
	if axis == len(a.shape)-1 {
		if a.stride[axis] == esize {
			return append(dst, a.data[off:off+a.shape[axis]*esize]...)
		}
		for i := 0; i < a.shape[axis]; i++ {
			dst = append(dst, a.data[off:off+esize]...)
			off += a.stride[axis]
		}
		return dst
	}
	for i := 0; i < a.shape[axis]; i++ {
		dst = a.appendAxis(dst, off, axis+1)
		off += a.stride[axis]
	}
	return dst
}
