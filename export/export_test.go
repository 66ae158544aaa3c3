package export_test

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"testing"

	"golang.org/x/image/tiff"

	"github.com/SETI/go-vicar"
	"github.com/SETI/go-vicar/export"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// grayImage builds a single-band image over the given byte rows.
func grayImage(t *testing.T, rows [][]int64) *vicar.Image {
	t.Helper()
	nl, ns := len(rows), len(rows[0])
	a := vicar.NewArray(vicar.Byte, nil, 1, nl, ns)
	for l, row := range rows {
		for s, v := range row {
			a.SetInt(v, 0, l, s)
		}
	}
	im, err := vicar.FromArray(a)
	require.NoError(t, err)
	return im
}

func grayAt(m image.Image, x, y int) uint8 {
	return color.GrayModel.Convert(m.At(x, y)).(color.Gray).Y
}

func TestPNG(t *testing.T) {
	im := grayImage(t, [][]int64{{0, 85}, {170, 255}})

	var buf bytes.Buffer
	require.NoError(t, export.PNG(&buf, im, &export.Options{Min: 0, Max: 255}))

	m, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 2, 2), m.Bounds())
	assert.Equal(t, uint8(0), grayAt(m, 0, 0))
	assert.Equal(t, uint8(85), grayAt(m, 1, 0))
	assert.Equal(t, uint8(170), grayAt(m, 0, 1))
	assert.Equal(t, uint8(255), grayAt(m, 1, 1))
}

func TestPNGDepth16(t *testing.T) {
	im := grayImage(t, [][]int64{{0, 255}})

	var buf bytes.Buffer
	require.NoError(t, export.PNG(&buf, im, &export.Options{Min: 0, Max: 255, Depth16: true}))

	m, err := png.Decode(&buf)
	require.NoError(t, err)
	g, ok := m.(*image.Gray16)
	require.True(t, ok)
	assert.Equal(t, uint16(0), g.Gray16At(0, 0).Y)
	assert.Equal(t, uint16(65535), g.Gray16At(1, 0).Y)
}

func TestGIF(t *testing.T) {
	im := grayImage(t, [][]int64{{0, 85}, {170, 255}})

	var buf bytes.Buffer
	require.NoError(t, export.GIF(&buf, im, &export.Options{Min: 0, Max: 255}))

	m, err := gif.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 2, 2), m.Bounds())
	assert.Equal(t, uint8(0), grayAt(m, 0, 0))
	assert.Equal(t, uint8(255), grayAt(m, 1, 1))
}

func TestTIFF(t *testing.T) {
	im := grayImage(t, [][]int64{{1, 2, 3}})

	var buf bytes.Buffer
	require.NoError(t, export.TIFF(&buf, im, &export.Options{Min: 0, Max: 255}))

	m, err := tiff.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 3, 1), m.Bounds())
	for s := 0; s < 3; s++ {
		assert.Equal(t, uint8(s+1), grayAt(m, s, 0))
	}
}

func TestRasterizeRGB(t *testing.T) {
	a := vicar.NewArray(vicar.Byte, nil, 3, 1, 2)
	a.SetInt(255, 0, 0, 0) // red
	a.SetInt(255, 1, 0, 1) // green
	a.SetInt(85, 2, 0, 0)  // some blue
	im, err := vicar.FromArray(a)
	require.NoError(t, err)

	m, err := export.Rasterize(im, &export.Options{Band: export.RGB, Min: 0, Max: 255})
	require.NoError(t, err)

	rgba, ok := m.(*image.RGBA)
	require.True(t, ok)
	assert.Equal(t, color.RGBA{R: 255, G: 0, B: 85, A: 255}, rgba.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{R: 0, G: 255, B: 0, A: 255}, rgba.RGBAAt(1, 0))
}

func TestRasterizeMeasuredStretch(t *testing.T) {
	a := vicar.NewArray(vicar.Half, nil, 1, 1, 3)
	a.SetInt(10, 0, 0, 0)
	a.SetInt(15, 0, 0, 1)
	a.SetInt(20, 0, 0, 2)
	im, err := vicar.FromArray(a)
	require.NoError(t, err)

	m, err := export.Rasterize(im, nil)
	require.NoError(t, err)
	assert.Equal(t, uint8(0), grayAt(m, 0, 0))
	assert.Equal(t, uint8(128), grayAt(m, 1, 0))
	assert.Equal(t, uint8(255), grayAt(m, 2, 0))
}

func TestRasterizeFlatImage(t *testing.T) {
	im := grayImage(t, [][]int64{{7, 7}})
	m, err := export.Rasterize(im, nil)
	require.NoError(t, err)
	assert.Equal(t, uint8(0), grayAt(m, 0, 0))
	assert.Equal(t, uint8(0), grayAt(m, 1, 0))
}

func TestRasterizeErrors(t *testing.T) {
	im := grayImage(t, [][]int64{{1, 2}})

	_, err := export.Rasterize(im, &export.Options{Band: 1})
	assert.EqualError(t, err, "export: band 1 of an image with 1")

	_, err = export.Rasterize(im, &export.Options{Band: export.RGB})
	assert.EqualError(t, err, "export: band 1 of an image with 1")

	comp, err := vicar.FromArray(vicar.NewArray(vicar.Comp, nil, 1, 1, 1))
	require.NoError(t, err)
	_, err = export.Rasterize(comp, nil)
	assert.EqualError(t, err, "export: no raster rendering for COMP pixels")
}
