// Package serializer implements the length-prefixed binary-row serializer:
// each row's contiguous byte window is compressed with one of the
// compress package's codecs and framed with a length-prefixed header,
// built on compress/codec.go's Codec abstraction. Two framing modes are
// supported: schemaless (each entry carries its own arity) and schema'd
// (arity is fixed for the whole stream).
package serializer

import (
	"github.com/lakerow/rowbinary/compress"
	"github.com/lakerow/rowbinary/endian"
	"github.com/lakerow/rowbinary/errs"
	"github.com/lakerow/rowbinary/format"
	"github.com/lakerow/rowbinary/iostream"
	"github.com/lakerow/rowbinary/row"
	"github.com/lakerow/rowbinary/segment"
)

// schemalessArity marks a Writer/Reader as schemaless: each entry carries its
// own arity field ahead of its payload lengths.
const schemalessArity = -1

// Writer serializes a sequence of binary rows into one length-prefixed,
// compressed stream. It is single-owner and non-reentrant.
type Writer struct {
	out   *iostream.Writer
	codec compress.Codec
	arity int
}

// NewSchemaWriter returns a Writer for a fixed-arity row stream: every row
// written must have exactly arity fields. The per-row arity field is omitted
// from the wire format, since the schema already fixes it.
func NewSchemaWriter(compressionType format.CompressionType, arity int) (*Writer, error) {
	return newWriter(compressionType, arity)
}

// NewSchemalessWriter returns a Writer whose rows may vary in arity; each
// entry records its own arity on the wire.
func NewSchemalessWriter(compressionType format.CompressionType) (*Writer, error) {
	return newWriter(compressionType, schemalessArity)
}

func newWriter(compressionType format.CompressionType, arity int) (*Writer, error) {
	codec, err := compress.GetCodec(compressionType)
	if err != nil {
		return nil, err
	}

	return &Writer{
		out:   iostream.NewWriter(endian.WireDefaultEngine()),
		codec: codec,
		arity: arity,
	}, nil
}

// WriteRow appends one row's entry to the stream: [arity (schemaless only) |
// compressed length | uncompressed length | compressed payload].
func (w *Writer) WriteRow(r row.Row) error {
	if w.arity != schemalessArity && r.Arity() != w.arity {
		return errs.ErrInvalid
	}

	segs, offset, size := r.Segments()
	raw := make([]byte, size)
	if err := segment.CopyToBytes(segs, offset, raw); err != nil {
		return err
	}

	compressed, err := w.codec.Compress(raw)
	if err != nil {
		return err
	}

	if w.arity == schemalessArity {
		w.out.WriteInt32(int32(r.Arity())) //nolint: gosec
	}
	w.out.WriteInt32(int32(len(compressed))) //nolint: gosec
	w.out.WriteInt32(int32(len(raw)))        //nolint: gosec
	w.out.WriteBytes(compressed)

	return nil
}

// Bytes returns the accumulated serialized stream. The returned slice
// aliases the Writer's internal buffer.
func (w *Writer) Bytes() []byte { return w.out.Bytes() }

// Len returns the number of bytes written so far.
func (w *Writer) Len() int { return w.out.Len() }

// Reader deserializes a stream produced by a matching Writer.
type Reader struct {
	in    *iostream.Reader
	codec compress.Codec
	arity int
}

// NewSchemaReader returns a Reader for a fixed-arity stream produced by
// NewSchemaWriter with the same arity.
func NewSchemaReader(buf []byte, compressionType format.CompressionType, arity int) (*Reader, error) {
	return newReader(buf, compressionType, arity)
}

// NewSchemalessReader returns a Reader for a stream produced by
// NewSchemalessWriter.
func NewSchemalessReader(buf []byte, compressionType format.CompressionType) (*Reader, error) {
	return newReader(buf, compressionType, schemalessArity)
}

func newReader(buf []byte, compressionType format.CompressionType, arity int) (*Reader, error) {
	codec, err := compress.GetCodec(compressionType)
	if err != nil {
		return nil, err
	}

	return &Reader{
		in:    iostream.NewReader(buf, endian.WireDefaultEngine()),
		codec: codec,
		arity: arity,
	}, nil
}

// ReadRow reads the next row entry, decompressing its payload into a freshly
// allocated, single-segment row.Row. Returns errs.ErrEndOfStream once the
// underlying stream is exhausted.
func (r *Reader) ReadRow() (row.Row, error) {
	arity := r.arity
	if arity == schemalessArity {
		a, err := r.in.ReadInt32()
		if err != nil {
			return row.Row{}, err
		}
		arity = int(a)
	}

	compLen, err := r.in.ReadInt32()
	if err != nil {
		return row.Row{}, err
	}
	uncompLen, err := r.in.ReadInt32()
	if err != nil {
		return row.Row{}, err
	}

	compressed, err := r.in.ReadBytes(int(compLen))
	if err != nil {
		return row.Row{}, err
	}

	raw, err := r.codec.Decompress(compressed)
	if err != nil {
		return row.Row{}, err
	}
	if len(raw) != int(uncompLen) {
		return row.Row{}, errs.ErrInvalid
	}

	return row.New(segment.Single(segment.Wrap(raw)), 0, len(raw), arity), nil
}

// Remaining reports whether at least one more row entry may be present.
func (r *Reader) Remaining() bool { return r.in.Remaining() > 0 }
