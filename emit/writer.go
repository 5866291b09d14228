package emit

import (
	"fmt"
	"io"

	"github.com/dscutil/pstops/pserr"
)

// Writer is a byte-counting wrapper over an output stream. Its
// BytesWritten counter is the authoritative total the caller can compare
// against the actual bytes reaching the underlying writer.
type Writer struct {
	w            io.Writer
	bytesWritten int64
	outputPage   int
}

// NewWriter wraps w for counted output.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteString writes s verbatim.
func (wr *Writer) WriteString(s string) error {
	n, err := io.WriteString(wr.w, s)
	wr.bytesWritten += int64(n)
	if err != nil {
		return pserr.Wrap(pserr.KindIO, err, "writing output")
	}
	return nil
}

// Writef formats and writes, mirroring the source's writestringf helper.
func (wr *Writer) Writef(format string, args ...any) error {
	return wr.WriteString(fmt.Sprintf(format, args...))
}

// BytesWritten returns the running total of bytes written so far.
func (wr *Writer) BytesWritten() int64 {
	return wr.bytesWritten
}

// OutputPage returns the current value of the global output-page counter.
func (wr *Writer) OutputPage() int {
	return wr.outputPage
}

// WritePageHeader writes a "%%Page: <label> <n>" comment, incrementing and
// using the writer's own output-page counter for n.
func (wr *Writer) WritePageHeader(label string) error {
	wr.outputPage++
	return wr.Writef("%%%%Page: %s %d\n", label, wr.outputPage)
}
