package vicar

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/SETI/go-vicar/vaxfloat"
)

// Extraneous selects what Decode does with trailing bytes that do not
// fill a whole record.
type Extraneous int

const (
	// ExtraneousFail refuses the container.
	ExtraneousFail Extraneous = iota
	// ExtraneousWarn logs through the decode logger and truncates.
	ExtraneousWarn
	// ExtraneousPrint reports on standard output and truncates.
	ExtraneousPrint
	// ExtraneousIgnore silently truncates.
	ExtraneousIgnore
)

// DecodeOptions adjust Decode. The zero value refuses extraneous bytes
// and logs nowhere.
type DecodeOptions struct {
	Extraneous Extraneous
	Logger     *log.Logger
}

func (o *DecodeOptions) norm() *DecodeOptions {
	n := new(DecodeOptions)
	if o != nil {
		*n = *o
	}
	if n.Logger == nil {
		n.Logger = log.New(io.Discard, "", 0)
	}
	return n
}

// Decode reads a container from r. A nil o means defaults.
func Decode(r io.Reader, o *DecodeOptions) (*Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return decodeBytes(data, o, false)
}

// DecodeBytes reads a container from b. The image copies what it needs,
// so the caller keeps b.
func DecodeBytes(b []byte, o *DecodeOptions) (*Image, error) {
	return decodeBytes(append([]byte(nil), b...), o, false)
}

// Open reads the container file at path.
func Open(path string, o *DecodeOptions) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return decodeBytes(data, o, false)
}

// ReadLabel reads only the label of the container on r, extension
// included. The returned image carries no pixel views.
func ReadLabel(r io.Reader) (*Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return decodeBytes(data, nil, true)
}

// OpenLabel reads only the label of the container file at path.
func OpenLabel(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return decodeBytes(data, nil, true)
}

// DecodeLabelBytes reads only the label of the container in b.
func DecodeLabelBytes(b []byte) (*Image, error) {
	return decodeBytes(append([]byte(nil), b...), nil, true)
}

func decodeBytes(data []byte, o *DecodeOptions, labelOnly bool) (*Image, error) {
	d := decoder{data: data, o: o.norm()}
	if err := d.decode(labelOnly); err != nil {
		return nil, err
	}
	return d.im, nil
}

type decoder struct {
	data []byte
	o    *DecodeOptions
	im   *Image
	lay  layout
}

func (d *decoder) decode(labelOnly bool) error {
	lblsize, err := scanLabelSize(d.data)
	if err != nil {
		return err
	}
	if lblsize > len(d.data) {
		return fmt.Errorf("%w: LBLSIZE %d beyond end of file", ErrMalformed, lblsize)
	}
	entries, err := parseStatements(d.data[:lblsize])
	if err != nil {
		return err
	}
	l := &Label{}
	for _, e := range entries {
		l.mergeEntry(e.Name, e.Value)
	}
	if err := fillParsedDefaults(l); err != nil {
		return err
	}
	typ, err := labelStr(l, "TYPE")
	if err != nil {
		return err
	}
	if typ != "IMAGE" {
		return fmt.Errorf("%w: TYPE %s", ErrMalformed, typ)
	}
	format, err := labelStr(l, "FORMAT")
	if err != nil {
		return err
	}
	dtype, err := parseFormat(format)
	if err != nil {
		return err
	}
	intfmt, err := labelStr(l, "INTFMT")
	if err != nil {
		return err
	}
	realfmt, err := labelStr(l, "REALFMT")
	if err != nil {
		return err
	}
	order, vax, err := resolveOrder(dtype, intfmt, realfmt)
	if err != nil {
		return err
	}
	// Old writers left RECSIZE at zero; the record width follows from
	// the prefix and sample counts.
	if l.IntOr("RECSIZE", 0) == 0 {
		rec := l.IntOr("NBB", 0) + l.IntOr("N1", 0)*int64(dtype.Size())
		l.mergeEntry("RECSIZE", Int(rec))
	}
	lay, err := resolveLayout(l, dtype.Size())
	if err != nil {
		return err
	}
	d.lay = lay
	d.im = &Image{
		label: l,
		dtype: dtype,
		order: order,
		raw:   d.data[:lblsize],
	}
	if lay.eol != 0 {
		if err := d.mergeExtension(); err != nil {
			return err
		}
	}
	if labelOnly {
		return nil
	}
	return d.project(vax)
}

// fillParsedDefaults derives the geometry keywords a file may omit and
// appends any required keyword still missing with the value assumed for
// files that predate it.
func fillParsedDefaults(l *Label) error {
	o, err := parseOrg(l.StringOr("ORG", "BSQ"))
	if err != nil {
		return err
	}
	for _, pair := range geometryPairs(o) {
		axis, size := pair[0], pair[1]
		ai, si := l.Index(axis), l.Index(size)
		switch {
		case ai < 0 && si >= 0:
			l.mergeEntry(axis, l.entries[si].Value)
		case si < 0 && ai >= 0:
			l.mergeEntry(size, l.entries[ai].Value)
		}
	}
	for _, name := range requiredNames {
		if l.Index(name) < 0 {
			l.mergeEntry(name, parsedDefault(name))
		}
	}
	return nil
}

// mergeExtension folds the extension label into the keyword table. A
// missing or unrecognizable region means the extension is absent, which
// is not an error; a region that opens like a label but fails to parse
// is one.
func (d *decoder) mergeExtension() error {
	off := d.lay.extOffset
	if off >= len(d.data) {
		return nil
	}
	region := d.data[off:]
	size, err := scanLabelSize(region)
	if err != nil {
		return nil
	}
	if size > len(region) {
		size = len(region)
	}
	region = region[:size]
	entries, err := parseStatements(region)
	if err != nil {
		return err
	}
	for _, e := range entries {
		d.im.label.mergeEntry(e.Name, e.Value)
	}
	d.im.rawExt = region
	return nil
}

// project carves the record payload out of the file and builds the
// pixel views over it.
func (d *decoder) project(vax bool) error {
	im, lay := d.im, d.lay
	start := lay.labelRows * lay.recsize
	if start > len(d.data) {
		return fmt.Errorf("%w: label region beyond end of file", ErrMalformed)
	}
	end := len(d.data)
	if lay.eol != 0 && lay.extOffset <= end {
		end = lay.extOffset
	}
	buf := d.data[start:end]
	if extra := len(buf) % lay.recsize; extra != 0 {
		switch d.o.Extraneous {
		case ExtraneousFail:
			return fmt.Errorf("%w: %d extraneous bytes beyond the last record", ErrLayout, extra)
		case ExtraneousWarn:
			d.o.Logger.Printf("vicar: dropping %d extraneous bytes beyond the last record", extra)
		case ExtraneousPrint:
			fmt.Printf("vicar: dropping %d extraneous bytes beyond the last record\n", extra)
		}
		buf = buf[:len(buf)-extra]
	}
	need := lay.binRows + lay.dataRows
	if len(buf)/lay.recsize < need {
		return fmt.Errorf("%w: %d records present, %d needed", ErrLayout, len(buf)/lay.recsize, need)
	}
	buf = buf[:need*lay.recsize]
	if vax {
		if err := vaxfloat.Decode(buf, buf); err != nil {
			return err
		}
		im.fromVAX = true
	}
	im.elems = buf
	im.buildViews(lay)
	return nil
}
