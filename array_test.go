package vicar_test

import (
	"encoding/binary"
	"testing"

	"github.com/SETI/go-vicar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewArray(t *testing.T) {
	a := vicar.NewArray(vicar.Half, nil, 2, 3)
	assert.Equal(t, vicar.Half, a.DType())
	assert.Equal(t, binary.ByteOrder(binary.LittleEndian), a.ByteOrder())
	assert.Equal(t, 2, a.Rank())
	assert.Equal(t, []int{2, 3}, a.Shape())
	assert.Equal(t, 6, a.Size())
	for l := 0; l < 2; l++ {
		for s := 0; s < 3; s++ {
			assert.Equal(t, int64(0), a.IntAt(l, s))
		}
	}

	// Shape is a copy; the caller cannot reach the real axis sizes.
	a.Shape()[0] = 99
	assert.Equal(t, []int{2, 3}, a.Shape())

	empty := vicar.NewArray(vicar.Byte, nil, 0, 3)
	assert.Equal(t, 0, empty.Size())
	assert.Len(t, empty.Bytes(), 0)
}

func TestArrayIntegerElements(t *testing.T) {
	a := vicar.NewArray(vicar.Byte, nil, 2)
	a.SetInt(255, 0)
	a.SetInt(7, 1)
	assert.Equal(t, int64(255), a.IntAt(0))
	assert.Equal(t, 255.0, a.Float64At(0))

	h := vicar.NewArray(vicar.Half, binary.BigEndian, 2)
	h.SetInt(-2, 0)
	h.SetInt(32767, 1)
	assert.Equal(t, int64(-2), h.IntAt(0))
	assert.Equal(t, int64(32767), h.IntAt(1))
	assert.Equal(t, -2.0, h.Float64At(0))

	f := vicar.NewArray(vicar.Full, nil, 1)
	f.SetInt(-100000, 0)
	assert.Equal(t, int64(-100000), f.IntAt(0))
	assert.Equal(t, -100000.0, f.Float64At(0))
}

func TestArrayFloatElements(t *testing.T) {
	r := vicar.NewArray(vicar.Real, nil, 2)
	r.SetFloat64(1.5, 0)
	r.SetFloat64(1.0/3.0, 1)
	assert.Equal(t, 1.5, r.Float64At(0))
	assert.Equal(t, float64(float32(1.0/3.0)), r.Float64At(1))

	d := vicar.NewArray(vicar.Doub, binary.BigEndian, 1)
	d.SetFloat64(1.0/3.0, 0)
	assert.Equal(t, 1.0/3.0, d.Float64At(0))
}

func TestArrayComplexElements(t *testing.T) {
	c := vicar.NewArray(vicar.Comp, nil, 2)
	c.SetComplex64(complex(1.5, -2.5), 0)
	c.SetComplex64(complex(0, 3), 1)
	assert.Equal(t, complex64(complex(1.5, -2.5)), c.Complex64At(0))
	assert.Equal(t, complex64(complex(0, 3)), c.Complex64At(1))
}

func TestArrayBytesAliasing(t *testing.T) {
	a := vicar.NewArray(vicar.Byte, nil, 1, 1, 4)
	b := a.Bytes()
	require.Len(t, b, 4)
	b[2] = 77
	assert.Equal(t, int64(77), a.IntAt(0, 0, 2))

	// A packed array is its own contiguous form.
	assert.Same(t, a, a.Contiguous())
}

func TestArrayPermutedView(t *testing.T) {
	// A band-interleaved decode leaves the cube view permuted over the
	// record bytes.
	rest := "RECSIZE=4 ORG='BIL' N1=4 N2=2 N3=3"
	im, err := vicar.DecodeBytes(buildFile(t, 4, rest, cubeBytes("BIL")), nil)
	require.NoError(t, err)

	data := im.Data3D()
	assert.Equal(t, cubeBytes("BSQ"), data.Bytes())

	packed := data.Contiguous()
	assert.NotSame(t, data, packed)
	assert.Equal(t, data.Shape(), packed.Shape())
	assert.Equal(t, cubeBytes("BSQ"), packed.Bytes())
	assert.Equal(t, data.IntAt(1, 2, 3), packed.IntAt(1, 2, 3))
}

func TestArrayPanics(t *testing.T) {
	a := vicar.NewArray(vicar.Byte, nil, 1, 1, 4)

	assert.PanicsWithValue(t, "vicar: 2 indices for a rank 3 array", func() {
		a.IntAt(0, 0)
	})
	assert.PanicsWithValue(t, "vicar: index 4 out of range on axis 2", func() {
		a.IntAt(0, 0, 4)
	})
	assert.Panics(t, func() { a.IntAt(0, 0, -1) })
	assert.Panics(t, func() { a.SetFloat64(1.0, 0, 0, 0) })
	assert.Panics(t, func() { a.Complex64At(0, 0, 0) })

	r := vicar.NewArray(vicar.Real, nil, 1)
	assert.Panics(t, func() { r.IntAt(0) })
	assert.Panics(t, func() { r.SetInt(1, 0) })

	assert.Panics(t, func() { vicar.NewArray(vicar.Byte, nil, -1) })
}
