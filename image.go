package vicar

import (
	"encoding/binary"
	"fmt"
)

// Image is a decoded container: the keyword label plus typed views over
// the element payload. The views share one backing buffer, so writes
// through any of them are visible through the others.
type Image struct {
	label   *Label
	dtype   DType
	order   binary.ByteOrder
	fromVAX bool
	raw     []byte
	rawExt  []byte
	elems   []byte
	data3   *Array
	data2   *Array
	pre3    *Array
	pre2    *Array
	bin     *Array
}

// Label returns the keyword table. Edits show up in the next Encode.
func (im *Image) Label() *Label { return im.label }

// DType returns the element type.
func (im *Image) DType() DType { return im.dtype }

// ByteOrder returns the element byte order.
func (im *Image) ByteOrder() binary.ByteOrder { return im.order }

// FromVAX reports whether the elements arrived in VAX floating point.
// The in-memory reals are IEEE either way, so re-encoding such a file
// does not reproduce the original bytes.
func (im *Image) FromVAX() bool { return im.fromVAX }

// RawHeader returns the label region exactly as read, or nil for an
// image built in memory.
func (im *Image) RawHeader() []byte { return im.raw }

// RawExtension returns the extension label region as read, or nil.
func (im *Image) RawExtension() []byte { return im.rawExt }

// Data3D returns the pixel cube indexed band, line, sample.
func (im *Image) Data3D() *Array { return im.data3 }

// Data2D returns the pixel records as a (records, samples) plane in
// stored order.
func (im *Image) Data2D() *Array { return im.data2 }

// Prefix3D returns the record prefix elements under the same axis
// permutation as Data3D, or nil when the records carry no prefixes.
func (im *Image) Prefix3D() *Array { return im.pre3 }

// Prefix2D returns the record prefixes as a (records, columns) plane,
// or nil when the records carry no prefixes.
func (im *Image) Prefix2D() *Array { return im.pre2 }

// BinHeader returns the binary header records as a (records, elements)
// plane, or nil when the file has none.
func (im *Image) BinHeader() *Array { return im.bin }

// FromArray builds an image around a, with a fresh default label.
func FromArray(a *Array) (*Image, error) {
	im := &Image{label: NewLabel()}
	if err := im.SetArray(a); err != nil {
		return nil, err
	}
	return im, nil
}

// SetArray replaces the pixels with a, reading rank 2 as a single band.
// The geometry keywords are rewritten to match; prefixes, binary
// headers and any extension label are dropped. A packed array is
// adopted without copying, so later writes to it show through.
func (im *Image) SetArray(a *Array) error {
	c := a.Contiguous()
	var nb, nl, ns int
	switch c.Rank() {
	case 2:
		nl, ns = c.shape[0], c.shape[1]
		nb = 1
		c = newView(c.dtype, c.order, c.data, c.off,
			[]int{1, nl, ns},
			[]int{nl * c.stride[0], c.stride[0], c.stride[1]})
	case 3:
		nb, nl, ns = c.shape[0], c.shape[1], c.shape[2]
	default:
		return fmt.Errorf("vicar: rank %d array cannot be an image", a.Rank())
	}
	syncGeometry(im.label, c.dtype, c.order, nb, nl, ns)
	lay, err := resolveLayout(im.label, c.dtype.Size())
	if err != nil {
		return err
	}
	im.dtype = c.dtype
	im.order = c.order
	im.fromVAX = false
	im.raw = nil
	im.rawExt = nil
	im.elems = c.data[c.off : c.off+c.Size()*c.dtype.Size()]
	im.buildViews(lay)
	return nil
}

// buildViews carves the typed views out of the element buffer. The
// buffer starts at the first record after the label region. Views over
// features the file does not carry stay nil.
func (im *Image) buildViews(lay layout) {
	e := lay.esize
	rec := lay.recsize
	im.bin = nil
	if lay.binRows > 0 {
		im.bin = newView(im.dtype, im.order, im.elems, 0,
			[]int{lay.binRows, lay.recWidth}, []int{rec, e})
	}
	base := lay.binRows * rec
	im.data2 = newView(im.dtype, im.order, im.elems, base+lay.preWidth*e,
		[]int{lay.dataRows, lay.n1}, []int{rec, e})
	p := lay.org.perm()
	stride := [3]int{lay.n2 * rec, rec, e}
	shape := [3]int{lay.n3, lay.n2, lay.n1}
	im.data3 = newView(im.dtype, im.order, im.elems, base+lay.preWidth*e,
		[]int{shape[p[0]], shape[p[1]], shape[p[2]]},
		[]int{stride[p[0]], stride[p[1]], stride[p[2]]})
	im.pre2, im.pre3 = nil, nil
	if lay.preWidth > 0 {
		im.pre2 = newView(im.dtype, im.order, im.elems, base,
			[]int{lay.dataRows, lay.preWidth}, []int{rec, e})
		pshape := [3]int{lay.n3, lay.n2, lay.preWidth}
		im.pre3 = newView(im.dtype, im.order, im.elems, base,
			[]int{pshape[p[0]], pshape[p[1]], pshape[p[2]]},
			[]int{stride[p[0]], stride[p[1]], stride[p[2]]})
	}
}

// syncGeometry rewrites the geometry keywords of l for a packed
// band-sequential cube of the given element type and byte order.
func syncGeometry(l *Label, dtype DType, order binary.ByteOrder, nb, nl, ns int) {
	intfmt, realfmt := "HIGH", "IEEE"
	if order == binary.LittleEndian {
		intfmt, realfmt = "LOW", "RIEEE"
	}
	l.mergeEntry("LBLSIZE", Int(0))
	l.mergeEntry("FORMAT", String(dtype.String()))
	l.mergeEntry("TYPE", String("IMAGE"))
	l.mergeEntry("DIM", Int(3))
	l.mergeEntry("EOL", Int(0))
	l.mergeEntry("RECSIZE", Int(int64(ns*dtype.Size())))
	l.mergeEntry("ORG", String("BSQ"))
	l.mergeEntry("NL", Int(int64(nl)))
	l.mergeEntry("NS", Int(int64(ns)))
	l.mergeEntry("NB", Int(int64(nb)))
	l.mergeEntry("N1", Int(int64(ns)))
	l.mergeEntry("N2", Int(int64(nl)))
	l.mergeEntry("N3", Int(int64(nb)))
	l.mergeEntry("N4", Int(0))
	l.mergeEntry("NBB", Int(0))
	l.mergeEntry("NLB", Int(0))
	l.mergeEntry("INTFMT", String(intfmt))
	l.mergeEntry("REALFMT", String(realfmt))
}
