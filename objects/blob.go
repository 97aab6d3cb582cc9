package objects

import (
	"fmt"
	"io"
	"strconv"

	"github.com/javanhut/muninn/codec"
)

// Blob is an opaque byte payload, a file's content. No line ending or
// encoding normalization is applied in either direction.
type Blob struct {
	Data []byte
}

// NewBlob wraps raw content as a blob. The slice is taken as-is.
func NewBlob(data []byte) *Blob { return &Blob{Data: data} }

// Kind implements Object.
func (b *Blob) Kind() Kind { return KindBlob }

// DecodeBlob reads a framed blob ("blob <len>\0" then len raw bytes) from
// the front of buf.
func DecodeBlob(buf []byte) (*Blob, []byte, error) {
	buf, err := codec.Tag(buf, "blob ")
	if err != nil {
		return nil, nil, err
	}
	size, buf, err := codec.Digits(buf)
	if err != nil {
		return nil, nil, fmt.Errorf("blob size: %w", err)
	}
	buf, err = codec.Byte(buf, 0)
	if err != nil {
		return nil, nil, fmt.Errorf("blob header: %w", err)
	}
	data, rest, err := codec.Take(buf, int(size))
	if err != nil {
		return nil, nil, fmt.Errorf("blob payload: %w", err)
	}
	out := make([]byte, len(data))
	copy(out, data)
	return NewBlob(out), rest, nil
}

// Decode implements codec.Decoder.
func (b *Blob) Decode(buf []byte) ([]byte, error) {
	v, rest, err := DecodeBlob(buf)
	if err != nil {
		return nil, err
	}
	*b = *v
	return rest, nil
}

// Encode implements codec.Encoder.
func (b *Blob) Encode(w io.Writer) (int, error) {
	n, err := fmt.Fprintf(w, "blob %d\x00", len(b.Data))
	if err != nil {
		return n, err
	}
	m, err := w.Write(b.Data)
	return n + m, err
}

// EncodedSize implements codec.Encoder.
func (b *Blob) EncodedSize() int {
	return 5 + len(strconv.Itoa(len(b.Data))) + 1 + len(b.Data)
}
