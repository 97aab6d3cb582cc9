package objects

import (
	"fmt"
	"io"
	"strconv"

	"github.com/javanhut/muninn/codec"
)

// Date is a commit timestamp: seconds since the epoch plus the author's
// UTC offset in seconds (east positive). Wire form: "<seconds> <±HHMM>".
type Date struct {
	Seconds int64
	Offset  int
}

// NewDate builds a Date from epoch seconds and an offset in seconds.
func NewDate(seconds int64, offset int) Date {
	return Date{Seconds: seconds, Offset: offset}
}

// DecodeDate reads a date from the front of b.
func DecodeDate(b []byte) (Date, []byte, error) {
	secs, b, err := codec.SignedDigits(b)
	if err != nil {
		return Date{}, nil, fmt.Errorf("date seconds: %w", err)
	}
	b, err = codec.Byte(b, ' ')
	if err != nil {
		return Date{}, nil, fmt.Errorf("date separator: %w", err)
	}
	sign := 1
	if len(b) > 0 && (b[0] == '+' || b[0] == '-') {
		if b[0] == '-' {
			sign = -1
		}
		b = b[1:]
	}
	tz, b, err := codec.Digits(b)
	if err != nil {
		return Date{}, nil, fmt.Errorf("date timezone: %w", err)
	}
	h := int(tz / 100)
	m := int(tz % 100)
	return Date{Seconds: secs, Offset: sign * (h*3600 + m*60)}, b, nil
}

// Decode implements codec.Decoder.
func (d *Date) Decode(b []byte) ([]byte, error) {
	v, rest, err := DecodeDate(b)
	if err != nil {
		return nil, err
	}
	*d = v
	return rest, nil
}

// String renders the wire form.
func (d Date) String() string {
	sign := '+'
	off := d.Offset
	if off < 0 {
		sign = '-'
		off = -off
	}
	return fmt.Sprintf("%d %c%02d%02d", d.Seconds, sign, off/3600, off%3600/60)
}

// Encode implements codec.Encoder.
func (d Date) Encode(w io.Writer) (int, error) {
	return io.WriteString(w, d.String())
}

// EncodedSize implements codec.Encoder.
func (d Date) EncodedSize() int {
	return len(strconv.FormatInt(d.Seconds, 10)) + 6 // " ±HHMM"
}
