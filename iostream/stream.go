// Package iostream implements the data-input/output stream layer: endian-aware
// typed read/write over byte slices and io.Reader/io.Writer, length-prefixed
// strings and blobs, and explicit EndOfStream signaling instead of relying
// on a short-read sentinel length.
//
// Streams default to big-endian (cross-language interoperability); a per-stream
// toggle selects little-endian for self-to-self traffic.
package iostream

import (
	"io"

	"github.com/lakerow/rowbinary/endian"
	"github.com/lakerow/rowbinary/errs"
)

// Writer is a growable, byte-order-aware output stream backed by an in-memory
// buffer. It is single-owner and non-reentrant.
type Writer struct {
	buf    []byte
	engine endian.EndianEngine
}

// NewWriter creates a Writer using engine for multi-byte values. Pass
// endian.WireDefaultEngine() for cross-language output.
func NewWriter(engine endian.EndianEngine) *Writer {
	return &Writer{engine: engine}
}

// SetByteOrder swaps the engine used for subsequent writes.
func (w *Writer) SetByteOrder(engine endian.EndianEngine) { w.engine = engine }

// Bytes returns the accumulated output. The returned slice aliases the
// writer's internal buffer and must not be retained across further writes.
func (w *Writer) Bytes() []byte { return w.buf }

// Len returns the number of bytes written so far.
func (w *Writer) Len() int { return len(w.buf) }

// Reset clears the writer for reuse, retaining the backing array.
func (w *Writer) Reset() { w.buf = w.buf[:0] }

// WriteBool writes a single bool byte (0x00/0x01).
func (w *Writer) WriteBool(v bool) {
	if v {
		w.buf = append(w.buf, 1)
	} else {
		w.buf = append(w.buf, 0)
	}
}

// WriteInt8 writes a signed byte.
func (w *Writer) WriteInt8(v int8) { w.buf = append(w.buf, byte(v)) }

// WriteInt16 writes a 2-byte signed integer using the writer's byte order.
func (w *Writer) WriteInt16(v int16) { w.buf = w.engine.AppendUint16(w.buf, uint16(v)) }

// WriteUint16 writes a 2-byte unsigned integer using the writer's byte order.
func (w *Writer) WriteUint16(v uint16) { w.buf = w.engine.AppendUint16(w.buf, v) }

// WriteInt32 writes a 4-byte signed integer using the writer's byte order.
func (w *Writer) WriteInt32(v int32) { w.buf = w.engine.AppendUint32(w.buf, uint32(v)) }

// WriteInt64 writes an 8-byte signed integer using the writer's byte order.
func (w *Writer) WriteInt64(v int64) { w.buf = w.engine.AppendUint64(w.buf, uint64(v)) }

// WriteBytes appends a raw, unprefixed byte chunk.
func (w *Writer) WriteBytes(b []byte) { w.buf = append(w.buf, b...) }

// WriteString writes a length-prefixed string: a uint16 byte-length followed
// by the UTF-8 bytes.
func (w *Writer) WriteString(s string) {
	w.WriteUint16(uint16(len(s))) //nolint: gosec
	w.buf = append(w.buf, s...)
}

// WriteTo flushes the accumulated buffer to dst.
func (w *Writer) WriteTo(dst io.Writer) (int64, error) {
	n, err := dst.Write(w.buf)

	return int64(n), err
}

// Reader is a byte-order-aware, position-tracking input stream over a fixed
// byte slice, supporting seeking and bounded reads.
type Reader struct {
	buf    []byte
	pos    int
	engine endian.EndianEngine
}

// NewReader wraps buf for reading with the given byte order.
func NewReader(buf []byte, engine endian.EndianEngine) *Reader {
	return &Reader{buf: buf, engine: engine}
}

// SetByteOrder swaps the engine used for subsequent reads.
func (r *Reader) SetByteOrder(engine endian.EndianEngine) { r.engine = engine }

// Pos returns the current read position.
func (r *Reader) Pos() int { return r.pos }

// Len returns the total stream length.
func (r *Reader) Len() int { return len(r.buf) }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.buf) - r.pos }

// SeekSet sets the absolute read position.
func (r *Reader) SeekSet(pos int) error {
	if pos < 0 || pos > len(r.buf) {
		return errs.ErrEndOfStream
	}
	r.pos = pos

	return nil
}

// SeekCur advances the read position by delta bytes (may be negative).
func (r *Reader) SeekCur(delta int) error { return r.SeekSet(r.pos + delta) }

// SeekEnd sets the read position to the stream length plus delta, so a
// negative delta lands before the end of stream.
func (r *Reader) SeekEnd(delta int) error { return r.SeekSet(len(r.buf) + delta) }

func (r *Reader) need(n int) error {
	if r.Remaining() < n {
		return errs.ErrEndOfStream
	}

	return nil
}

// ReadBool reads a single bool byte.
func (r *Reader) ReadBool() (bool, error) {
	if err := r.need(1); err != nil {
		return false, err
	}
	v := r.buf[r.pos] != 0
	r.pos++

	return v, nil
}

// ReadInt8 reads a signed byte.
func (r *Reader) ReadInt8() (int8, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	v := int8(r.buf[r.pos]) //nolint: gosec
	r.pos++

	return v, nil
}

// ReadInt16 reads a 2-byte signed integer.
func (r *Reader) ReadInt16() (int16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := int16(r.engine.Uint16(r.buf[r.pos : r.pos+2])) //nolint: gosec
	r.pos += 2

	return v, nil
}

// ReadUint16 reads a 2-byte unsigned integer.
func (r *Reader) ReadUint16() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := r.engine.Uint16(r.buf[r.pos : r.pos+2])
	r.pos += 2

	return v, nil
}

// ReadInt32 reads a 4-byte signed integer.
func (r *Reader) ReadInt32() (int32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := int32(r.engine.Uint32(r.buf[r.pos : r.pos+4])) //nolint: gosec
	r.pos += 4

	return v, nil
}

// ReadInt64 reads an 8-byte signed integer.
func (r *Reader) ReadInt64() (int64, error) {
	if err := r.need(8); err != nil {
		return 0, err
	}
	v := int64(r.engine.Uint64(r.buf[r.pos : r.pos+8]))
	r.pos += 8

	return v, nil
}

// ReadBytes reads exactly n raw bytes, returning ErrEndOfStream on a short read
// rather than a partial slice.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	v := r.buf[r.pos : r.pos+n]
	r.pos += n

	return v, nil
}

// ReadString reads a length-prefixed string: a uint16 byte-length followed by
// that many UTF-8 bytes.
func (r *Reader) ReadString() (string, error) {
	n, err := r.ReadUint16()
	if err != nil {
		return "", err
	}

	b, err := r.ReadBytes(int(n))
	if err != nil {
		return "", err
	}

	return string(b), nil
}
