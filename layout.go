package vicar

import "fmt"

// org identifies the interleave order of the stored records.
type org uint8

const (
	orgBSQ org = iota // band sequential
	orgBIL            // band interleaved by line
	orgBIP            // band interleaved by pixel
)

func parseOrg(s string) (org, error) {
	switch s {
	case "BSQ":
		return orgBSQ, nil
	case "BIL":
		return orgBIL, nil
	case "BIP":
		return orgBIP, nil
	}
	return 0, fmt.Errorf("%w: ORG %s", ErrUnsupportedFormat, s)
}

// perm maps the canonical band, line, sample axes to the stored axis
// numbers of the natural (N3, N2, N1) cube.
func (o org) perm() [3]int {
	switch o {
	case orgBIL:
		return [3]int{1, 0, 2}
	case orgBIP:
		return [3]int{2, 0, 1}
	}
	return [3]int{0, 1, 2}
}

// geometryPairs lists each record axis keyword with the size keyword it
// mirrors under o.
func geometryPairs(o org) [3][2]string {
	switch o {
	case orgBIL:
		return [3][2]string{{"N1", "NS"}, {"N2", "NB"}, {"N3", "NL"}}
	case orgBIP:
		return [3][2]string{{"N1", "NB"}, {"N2", "NS"}, {"N3", "NL"}}
	}
	return [3][2]string{{"N1", "NS"}, {"N2", "NL"}, {"N3", "NB"}}
}

// layout is the record geometry solved from a label. Widths count
// elements, rows count records.
type layout struct {
	esize     int
	recsize   int
	recWidth  int
	preWidth  int
	labelRows int
	binRows   int
	dataRows  int
	n1        int
	n2        int
	n3        int
	org       org
	eol       int
	extOffset int
}

// labelInts reads integer keywords off a label, holding the first
// failure.
type labelInts struct {
	l   *Label
	err error
}

func (r *labelInts) get(name string) int {
	if r.err != nil {
		return 0
	}
	v, err := r.l.Get(name)
	if err != nil {
		r.err = err
		return 0
	}
	n, ok := v.AsInt()
	if !ok {
		r.err = fmt.Errorf("%w: %s is not an integer", ErrMalformed, name)
		return 0
	}
	return int(n)
}

func labelStr(l *Label, name string) (string, error) {
	v, err := l.Get(name)
	if err != nil {
		return "", err
	}
	s, ok := v.AsString()
	if !ok {
		return "", fmt.Errorf("%w: %s is not a string", ErrMalformed, name)
	}
	return s, nil
}

// resolveLayout solves the record geometry for an element of esize
// bytes. It reads only the label; nothing here touches the payload.
func resolveLayout(l *Label, esize int) (layout, error) {
	r := &labelInts{l: l}
	lblsize := r.get("LBLSIZE")
	recsize := r.get("RECSIZE")
	eol := r.get("EOL")
	nbb := r.get("NBB")
	nlb := r.get("NLB")
	n1 := r.get("N1")
	n2 := r.get("N2")
	n3 := r.get("N3")
	if r.err != nil {
		return layout{}, r.err
	}
	orgName, err := labelStr(l, "ORG")
	if err != nil {
		return layout{}, err
	}
	o, err := parseOrg(orgName)
	if err != nil {
		return layout{}, err
	}
	switch {
	case recsize <= 0:
		return layout{}, fmt.Errorf("%w: RECSIZE %d", ErrLayout, recsize)
	case recsize%esize != 0:
		return layout{}, fmt.Errorf("%w: RECSIZE %d is not a multiple of the %d-byte element", ErrLayout, recsize, esize)
	case nbb < 0 || nbb > recsize:
		return layout{}, fmt.Errorf("%w: NBB %d", ErrLayout, nbb)
	case nbb%esize != 0:
		return layout{}, fmt.Errorf("%w: NBB %d is not a multiple of the %d-byte element", ErrLayout, nbb, esize)
	case lblsize%recsize != 0:
		return layout{}, fmt.Errorf("%w: LBLSIZE %d is not a multiple of RECSIZE %d", ErrLayout, lblsize, recsize)
	case n1 < 0 || n2 < 0 || n3 < 0 || nlb < 0:
		return layout{}, fmt.Errorf("%w: negative dimension", ErrLayout)
	}
	recWidth := recsize / esize
	preWidth := nbb / esize
	if recWidth != preWidth+n1 {
		return layout{}, fmt.Errorf("%w: RECSIZE %d does not cover NBB %d plus %d samples", ErrLayout, recsize, nbb, n1)
	}
	return layout{
		esize:     esize,
		recsize:   recsize,
		recWidth:  recWidth,
		preWidth:  preWidth,
		labelRows: lblsize / recsize,
		binRows:   nlb,
		dataRows:  n2 * n3,
		n1:        n1,
		n2:        n2,
		n3:        n3,
		org:       o,
		eol:       eol,
		extOffset: lblsize + recsize*(nlb+n2*n3),
	}, nil
}
