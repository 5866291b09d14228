package emit

import (
	"bytes"
	"io"

	"github.com/dscutil/pstops/pserr"
)

// Reader is a cursor over the whole input document, as produced by
// seekio.Open. It backs C6's copy_range algorithm: copy a byte range to a
// Writer while dropping whole lines named in an ignore list.
type Reader struct {
	data []byte
	pos  int64
}

// NewReader wraps data for ranged, line-aware copying.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Pos returns the current read cursor.
func (r *Reader) Pos() int64 {
	return r.pos
}

// Seek repositions the read cursor to an absolute offset.
func (r *Reader) Seek(offset int64) {
	r.pos = offset
}

// ReadLine reads one line (through and including its trailing '\n', or to
// EOF) starting at the current cursor, advancing past it.
func (r *Reader) ReadLine() (string, error) {
	if r.pos >= int64(len(r.data)) {
		return "", pserr.Wrap(pserr.KindIO, io.EOF, "reading line")
	}
	line, next := r.lineAt(r.pos)
	r.pos = next
	return string(line), nil
}

func (r *Reader) lineAt(offset int64) ([]byte, int64) {
	rest := r.data[offset:]
	if i := bytes.IndexByte(rest, '\n'); i >= 0 {
		return rest[:i+1], offset + int64(i) + 1
	}
	return rest, int64(len(r.data))
}

// CopyRange copies bytes from the current cursor up to (but not
// including) upto, except that whenever the cursor reaches an offset
// named in ignoreList, one whole line starting there is read and
// discarded instead of copied. ignoreList need not be sorted relative to
// prior calls, but must be ascending within itself.
func (r *Reader) CopyRange(w *Writer, upto int64, ignoreList []int64) error {
	if r.pos > upto {
		return pserr.New(pserr.KindIO, "copy_range: cursor %d past target %d", r.pos, upto)
	}

	idx := 0
	for idx < len(ignoreList) && ignoreList[idx] < r.pos {
		idx++
	}
	for idx < len(ignoreList) && ignoreList[idx] < upto {
		if err := r.copyTo(w, ignoreList[idx]); err != nil {
			return err
		}
		if _, err := r.ReadLine(); err != nil {
			return pserr.Wrap(pserr.KindIO, err, "skipping ignored line")
		}
		idx++
		for idx < len(ignoreList) && ignoreList[idx] < r.pos {
			idx++
		}
	}
	return r.copyTo(w, upto)
}

func (r *Reader) copyTo(w *Writer, upto int64) error {
	if upto < r.pos {
		return pserr.New(pserr.KindIO, "copy_range: target %d precedes cursor %d", upto, r.pos)
	}
	if upto > int64(len(r.data)) {
		return pserr.New(pserr.KindIO, "copy_range: target %d past end of input", upto)
	}
	if err := w.WriteString(string(r.data[r.pos:upto])); err != nil {
		return err
	}
	r.pos = upto
	return nil
}
