package decode

import (
	"errors"
	"fmt"
	"strconv"
)

const (
	FieldSep  = ','
	RecordSep = '\n'

	carriageReturn = '\r'
	decimalPoint   = '.'

	// Prices are stored as hundredths.
	fractionDigits = 2
	// Keeps a single price in hundredths inside int64. Sums are checked
	// where they are accumulated.
	maxIntegralDigits = 15
)

var ErrMalformedRecord = errors.New("malformed record")

// RecordError reports where in the input a record stopped making sense.
type RecordError struct {
	Offset int
	Reason string
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("malformed record at byte %d: %s", e.Offset, e.Reason)
}

func (e *RecordError) Is(target error) bool {
	return target == ErrMalformedRecord
}

// Cursor is a sequential reader over a mapped region. Every read is bounded
// by the end of the region, not by the end of the caller's chunk.
type Cursor struct {
	data []byte
	pos  int
}

func NewCursor(data []byte, pos int) *Cursor {
	return &Cursor{data: data, pos: min(max(pos, 0), len(data))}
}

func (c *Cursor) Pos() int {
	return c.pos
}

func (c *Cursor) Done() bool {
	return c.pos >= len(c.data)
}

// ReadToken refills dst with the bytes up to the next field separator,
// record separator or end of input, and consumes the delimiter. The
// returned byte is the delimiter that ended the token, or 0 at end of input.
func (c *Cursor) ReadToken(dst []byte) ([]byte, byte) {
	dst = dst[:0]
	for c.pos < len(c.data) {
		b := c.data[c.pos]
		c.pos++
		if b == FieldSep || b == RecordSep {
			return dst, b
		}
		dst = append(dst, b)
	}
	return dst, 0
}

// ReadField reads a token that must be followed by a field separator.
func (c *Cursor) ReadField(dst []byte) ([]byte, error) {
	start := c.pos
	tok, delim := c.ReadToken(dst)
	if delim != FieldSep {
		return tok, c.fail(start, "missing field separator")
	}
	return tok, nil
}

// ReadPrice parses digits[.digits] into hundredths and consumes the record
// terminator that follows it.
func (c *Cursor) ReadPrice() (int64, error) {
	start := c.pos

	var price int64
	var digits int
	for c.pos < len(c.data) && isDigit(c.data[c.pos]) {
		if digits == maxIntegralDigits {
			return 0, c.fail(start, "price out of range")
		}
		price = price*10 + int64(c.data[c.pos]-'0')
		c.pos++
		digits++
	}
	if digits == 0 {
		return 0, c.fail(start, "missing price")
	}

	var frac int
	if c.pos < len(c.data) && c.data[c.pos] == decimalPoint {
		c.pos++
		for c.pos < len(c.data) && isDigit(c.data[c.pos]) {
			if frac == fractionDigits {
				return 0, c.fail(start, "more than two fractional digits")
			}
			price = price*10 + int64(c.data[c.pos]-'0')
			c.pos++
			frac++
		}
		if frac == 0 {
			return 0, c.fail(start, "missing fractional digits")
		}
	}
	for ; frac < fractionDigits; frac++ {
		price *= 10
	}

	if err := c.skipTerminator(); err != nil {
		return 0, err
	}
	return price, nil
}

// skipTerminator accepts \n, \r, \r\n, or the end of the region.
func (c *Cursor) skipTerminator() error {
	if c.pos == len(c.data) {
		return nil
	}
	switch c.data[c.pos] {
	case RecordSep:
		c.pos++
		return nil
	case carriageReturn:
		c.pos++
		if c.pos < len(c.data) && c.data[c.pos] == RecordSep {
			c.pos++
		}
		return nil
	}
	return c.fail(c.pos, fmt.Sprintf("unexpected byte %q after price", c.data[c.pos]))
}

func (c *Cursor) fail(offset int, reason string) error {
	return &RecordError{Offset: offset, Reason: reason}
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// AppendPrice appends hundredths as a decimal with two fraction digits.
func AppendPrice(dst []byte, hundredths int64) []byte {
	if hundredths < 0 {
		dst = append(dst, '-')
		hundredths = -hundredths
	}
	dst = strconv.AppendInt(dst, hundredths/100, 10)
	frac := hundredths % 100
	return append(dst, decimalPoint, byte('0'+frac/10), byte('0'+frac%10))
}

func FormatPrice(hundredths int64) string {
	return string(AppendPrice(make([]byte, 0, 24), hundredths))
}
