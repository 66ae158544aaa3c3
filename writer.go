package vicar

import (
	"fmt"
	"io"
	"os"
)

// Encode writes im to w as a band-sequential container. The geometry
// keywords are rewritten from the pixel cube, so interleave order,
// record prefixes, binary headers and extension labels from the source
// file are not carried over. im itself is left untouched.
func Encode(w io.Writer, im *Image) error {
	header, err := renderHeader(im)
	if err != nil {
		return err
	}
	if _, err := w.Write(header); err != nil {
		return err
	}
	_, err = w.Write(im.data3.Bytes())
	return err
}

// WriteFile encodes im into the file at path.
func WriteFile(path string, im *Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, im); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// renderHeader lays out the label region. LBLSIZE counts its own bytes,
// so the text is rendered with a wide placeholder first and the value
// then walked to its fixed point.
func renderHeader(im *Image) ([]byte, error) {
	if im.data3 == nil {
		return nil, fmt.Errorf("%w: image has no pixels", ErrLayout)
	}
	shape := im.data3.Shape()
	nb, nl, ns := shape[0], shape[1], shape[2]
	rec := ns * im.dtype.Size()
	if rec <= 0 {
		return nil, fmt.Errorf("%w: cannot write an image with no samples", ErrLayout)
	}
	l := im.label.clone()
	syncGeometry(l, im.dtype, im.order, nb, nl, ns)
	l.mergeEntry("LBLSIZE", Int(99999999))
	size := roundUp(len(l.String()), rec)
	for {
		l.mergeEntry("LBLSIZE", Int(int64(size)))
		n := roundUp(len(l.String()), rec)
		if n == size {
			break
		}
		size = n
	}
	text := l.String()
	header := make([]byte, size)
	copy(header, text)
	for i := len(text); i < size; i++ {
		header[i] = ' '
	}
	return header, nil
}

func roundUp(n, m int) int { return (n + m - 1) / m * m }
