package export

import (
	"fmt"
	"io"

	"github.com/astrogo/fitsio"

	"github.com/SETI/go-vicar"
)

// reservedCards are FITS structural keywords the writer owns.
var reservedCards = map[string]bool{
	"SIMPLE": true, "BITPIX": true, "EXTEND": true, "XTENSION": true,
	"NAXIS": true, "NAXIS1": true, "NAXIS2": true, "NAXIS3": true,
	"PCOUNT": true, "GCOUNT": true, "END": true,
}

// FITS writes the whole pixel cube of im as a primary FITS HDU. Label
// keywords outside the container geometry ride along as header cards
// where FITS accepts their names.
func FITS(w io.Writer, im *vicar.Image) error {
	data := im.Data3D()
	if data == nil {
		return fmt.Errorf("export: image has no pixels")
	}
	var bitpix int
	switch im.DType() {
	case vicar.Byte:
		bitpix = 8
	case vicar.Half:
		bitpix = 16
	case vicar.Full:
		bitpix = 32
	case vicar.Real:
		bitpix = -32
	case vicar.Doub:
		bitpix = -64
	default:
		return fmt.Errorf("export: no FITS form for %s pixels", im.DType())
	}
	shape := data.Shape()
	nb, nl, ns := shape[0], shape[1], shape[2]
	axes := []int{ns, nl}
	if nb > 1 {
		axes = append(axes, nb)
	}
	f, err := fitsio.Create(w)
	if err != nil {
		return err
	}
	defer f.Close()
	img := fitsio.NewImage(bitpix, axes)
	defer img.Close()
	if err := copyCards(img.Header(), im.Label()); err != nil {
		return err
	}
	if err := writeCube(img, data, nb, nl, ns); err != nil {
		return err
	}
	return f.Write(img)
}

// copyCards carries label keywords into the FITS header. The geometry
// keywords stay behind, since BITPIX and NAXIS already express them, as
// do names FITS cannot hold and repeats of names already written.
func copyCards(hdr *fitsio.Header, l *vicar.Label) error {
	seen := make(map[string]bool, l.Len())
	for i := 0; i < l.Len(); i++ {
		e := l.EntryAt(i)
		if vicar.Required(e.Name) || reservedCards[e.Name] || seen[e.Name] || len(e.Name) > 8 {
			continue
		}
		var value interface{}
		switch e.Value.Kind() {
		case vicar.KindInt:
			n, _ := e.Value.AsInt()
			value = int(n)
		case vicar.KindDecimal:
			f, _ := e.Value.AsFloat()
			value = f
		case vicar.KindString:
			s, _ := e.Value.AsString()
			value = s
		default:
			value = e.Value.String()
		}
		if err := hdr.Append(fitsio.Card{Name: e.Name, Value: value}); err != nil {
			return err
		}
		seen[e.Name] = true
	}
	return nil
}

func writeCube(img fitsio.Image, data *vicar.Array, nb, nl, ns int) error {
	n := nb * nl * ns
	switch data.DType() {
	case vicar.Byte:
		raw := make([]int8, 0, n)
		for b := 0; b < nb; b++ {
			for l := 0; l < nl; l++ {
				for s := 0; s < ns; s++ {
					raw = append(raw, int8(data.IntAt(b, l, s)))
				}
			}
		}
		return img.Write(&raw)
	case vicar.Half:
		raw := make([]int16, 0, n)
		for b := 0; b < nb; b++ {
			for l := 0; l < nl; l++ {
				for s := 0; s < ns; s++ {
					raw = append(raw, int16(data.IntAt(b, l, s)))
				}
			}
		}
		return img.Write(&raw)
	case vicar.Full:
		raw := make([]int32, 0, n)
		for b := 0; b < nb; b++ {
			for l := 0; l < nl; l++ {
				for s := 0; s < ns; s++ {
					raw = append(raw, int32(data.IntAt(b, l, s)))
				}
			}
		}
		return img.Write(&raw)
	case vicar.Real:
		raw := make([]float32, 0, n)
		for b := 0; b < nb; b++ {
			for l := 0; l < nl; l++ {
				for s := 0; s < ns; s++ {
					raw = append(raw, float32(data.Float64At(b, l, s)))
				}
			}
		}
		return img.Write(&raw)
	default:
		raw := make([]float64, 0, n)
		for b := 0; b < nb; b++ {
			for l := 0; l < nl; l++ {
				for s := 0; s < ns; s++ {
					raw = append(raw, data.Float64At(b, l, s))
				}
			}
		}
		return img.Write(&raw)
	}
}
