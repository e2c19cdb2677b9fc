package mdtex

import (
	"bytes"
	"fmt"
	"strconv"
	"unicode/utf8"
)

// A ByteRenderer accumulates rendered output in an in-memory byte buffer.
// The zero value is ready to use. It satisfies io.StringWriter so it can be
// used directly as the output sink of a rendering Context.
type ByteRenderer struct {
	buf []byte
}

// Render writes its arguments to the buffer in sequence.
// Accepted types: string, []byte, byte, rune and int.
func (r *ByteRenderer) Render(inputs ...any) {
	for _, in := range inputs {
		switch v := in.(type) {
		case string:
			r.buf = append(r.buf, v...)
		case []byte:
			r.buf = append(r.buf, v...)
		case byte:
			r.buf = append(r.buf, v)
		case rune:
			r.buf = utf8.AppendRune(r.buf, v)
		case int:
			r.buf = strconv.AppendInt(r.buf, int64(v), 10)
		default:
			panic(fmt.Sprintf("ByteRenderer: unsupported type %T", in))
		}
	}
}

// Renderln writes its arguments followed by a newline.
func (r *ByteRenderer) Renderln(inputs ...any) {
	r.Render(inputs...)
	r.buf = append(r.buf, '\n')
}

// WriteString implements io.StringWriter. It never fails.
func (r *ByteRenderer) WriteString(s string) (int, error) {
	r.buf = append(r.buf, s...)
	return len(s), nil
}

// Bytes returns the accumulated output. The slice aliases the internal buffer.
func (r *ByteRenderer) Bytes() []byte {
	return r.buf
}

// CloneBytes returns a copy of the accumulated output.
func (r *ByteRenderer) CloneBytes() []byte {
	return bytes.Clone(r.buf)
}

// String returns the accumulated output as a string.
func (r *ByteRenderer) String() string {
	return string(r.buf)
}
