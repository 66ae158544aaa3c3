/*
Package export renders decoded containers to common raster formats and
to FITS.

Raster renderings stretch one band, or three bands as RGB, linearly
onto the output range. The FITS path carries the whole pixel cube and
as much of the keyword label as FITS headers can hold.
*/
package export

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"io"
	"math"

	"github.com/ericpauley/go-quantize/quantize"
	"golang.org/x/image/tiff"

	"github.com/SETI/go-vicar"
)

// RGB selects a three-band color rendering.
const RGB = -1

// Options adjust the rendered raster. The zero value renders band zero,
// stretched over its own measured range, to an eight-bit image.
type Options struct {
	// Band selects the band to render. RGB reads the first three bands
	// as red, green and blue.
	Band int
	// Min and Max bound the stretch. Leaving them equal measures the
	// bounds from the selected pixels instead.
	Min, Max float64
	// Depth16 renders 16-bit grayscale. It has no effect on RGB.
	Depth16 bool
}

func (o *Options) norm() *Options {
	n := new(Options)
	if o != nil {
		*n = *o
	}
	return n
}

// PNG renders im and writes it as a PNG.
func PNG(w io.Writer, im *vicar.Image, o *Options) error {
	m, err := Rasterize(im, o)
	if err != nil {
		return err
	}
	return png.Encode(w, m)
}

// GIF quantizes the rendering to 256 colors and writes it as a GIF.
func GIF(w io.Writer, im *vicar.Image, o *Options) error {
	m, err := Rasterize(im, o)
	if err != nil {
		return err
	}
	return gif.Encode(w, m, &gif.Options{
		NumColors: 256,
		Quantizer: quantize.MedianCutQuantizer{},
	})
}

// TIFF renders im and writes it as an uncompressed TIFF.
func TIFF(w io.Writer, im *vicar.Image, o *Options) error {
	m, err := Rasterize(im, o)
	if err != nil {
		return err
	}
	return tiff.Encode(w, m, nil)
}

// Rasterize renders the selected band or bands of im with a linear
// stretch. A nil o means defaults.
func Rasterize(im *vicar.Image, o *Options) (image.Image, error) {
	o = o.norm()
	data := im.Data3D()
	if data == nil {
		return nil, fmt.Errorf("export: image has no pixels")
	}
	if im.DType() == vicar.Comp {
		return nil, fmt.Errorf("export: no raster rendering for COMP pixels")
	}
	shape := data.Shape()
	nb, nl, ns := shape[0], shape[1], shape[2]
	bands := []int{o.Band}
	if o.Band == RGB {
		bands = []int{0, 1, 2}
	}
	for _, b := range bands {
		if b < 0 || b >= nb {
			return nil, fmt.Errorf("export: band %d of an image with %d", b, nb)
		}
	}
	lo, hi := o.Min, o.Max
	if lo == hi {
		lo, hi = measureRange(data, bands, nl, ns)
	}
	span := hi - lo
	if span <= 0 {
		span = 1
	}
	r := image.Rect(0, 0, ns, nl)
	switch {
	case o.Band == RGB:
		m := image.NewRGBA(r)
		for l := 0; l < nl; l++ {
			for s := 0; s < ns; s++ {
				m.SetRGBA(s, l, color.RGBA{
					R: byte8(data.Float64At(0, l, s), lo, span),
					G: byte8(data.Float64At(1, l, s), lo, span),
					B: byte8(data.Float64At(2, l, s), lo, span),
					A: 0xff,
				})
			}
		}
		return m, nil
	case o.Depth16:
		m := image.NewGray16(r)
		for l := 0; l < nl; l++ {
			for s := 0; s < ns; s++ {
				f := stretch(data.Float64At(o.Band, l, s), lo, span)
				m.SetGray16(s, l, color.Gray16{Y: uint16(f*65535 + 0.5)})
			}
		}
		return m, nil
	}
	m := image.NewGray(r)
	for l := 0; l < nl; l++ {
		for s := 0; s < ns; s++ {
			m.SetGray(s, l, color.Gray{Y: byte8(data.Float64At(o.Band, l, s), lo, span)})
		}
	}
	return m, nil
}

func measureRange(data *vicar.Array, bands []int, nl, ns int) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, b := range bands {
		for l := 0; l < nl; l++ {
			for s := 0; s < ns; s++ {
				v := data.Float64At(b, l, s)
				if v < lo {
					lo = v
				}
				if v > hi {
					hi = v
				}
			}
		}
	}
	if lo > hi {
		return 0, 0
	}
	return lo, hi
}

// stretch maps v onto [0,1]. NaN lands at zero.
func stretch(v, lo, span float64) float64 {
	f := (v - lo) / span
	if !(f > 0) {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func byte8(v, lo, span float64) uint8 {
	return uint8(stretch(v, lo, span)*255 + 0.5)
}
