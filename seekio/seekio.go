// Package seekio makes arbitrary input addressable by byte offset. Most of
// pstops works against a single []byte view of the whole input — the DSC
// scanner walks it line by line, the copier slices ranges out of it — so
// rather than exposing io.Seeker, Open hands back the whole mapped region.
//
// If the input is already a regular, seekable file, it is mapped in place.
// Otherwise it is fully drained into a temp file and that temp file is
// mapped, which is the "seekable-input adapter" spec.md §4.3 describes.
package seekio

import (
	"io"
	"os"

	"github.com/dscutil/pstops/mmap"
	"github.com/dscutil/pstops/pserr"
)

// File is a byte-addressable view over the whole of some input stream.
type File struct {
	mm       *mmap.Map
	data     []byte
	path     string
	ownsTemp bool
}

// Open returns a File giving random access to the entirety of r. r is
// consumed in full. The returned File must be Closed to release the
// mapping (and, if one was spooled, the backing temp file).
func Open(r io.Reader) (*File, error) {
	if f, ok := r.(*os.File); ok {
		if fi, err := f.Stat(); err == nil && fi.Mode().IsRegular() {
			return mapRegularFile(f, fi.Size())
		}
	}
	return spool(r)
}

func mapRegularFile(f *os.File, size int64) (*File, error) {
	if size == 0 {
		return &File{data: []byte{}}, nil
	}
	m, err := mmap.New(int(f.Fd()), 0, int(size), false)
	if err != nil {
		return nil, pserr.Wrap(pserr.KindIO, err, "mapping input file")
	}
	_ = m.AdviseSequential()
	return &File{mm: m, data: m.Data()}, nil
}

// spool fully drains r into a temp file, then maps that file. This is the
// fallback path for pipes, sockets, and anything else that cannot be
// seeked or mapped directly.
func spool(r io.Reader) (*File, error) {
	tmp, err := os.CreateTemp("", "pstops-spool-*")
	if err != nil {
		return nil, pserr.Wrap(pserr.KindIO, err, "creating spool file")
	}
	path := tmp.Name()

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(path)
		return nil, pserr.Wrap(pserr.KindIO, err, "spooling unseekable input")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(path)
		return nil, pserr.Wrap(pserr.KindIO, err, "closing spool file")
	}

	fi, err := os.Stat(path)
	if err != nil {
		os.Remove(path)
		return nil, pserr.Wrap(pserr.KindIO, err, "statting spool file")
	}
	if fi.Size() == 0 {
		os.Remove(path)
		return &File{data: []byte{}}, nil
	}

	m, err := mmap.MapFile(path, false)
	if err != nil {
		os.Remove(path)
		return nil, pserr.Wrap(pserr.KindIO, err, "mapping spool file")
	}
	_ = m.AdviseSequential()
	return &File{mm: m, data: m.Data(), path: path, ownsTemp: true}, nil
}

// Bytes returns the whole input as a byte slice. The slice is only valid
// until Close.
func (f *File) Bytes() []byte {
	return f.data
}

// Size returns the total length of the input in bytes.
func (f *File) Size() int64 {
	return int64(len(f.data))
}

// Close releases the mapping and removes any spooled temp file.
func (f *File) Close() error {
	var err error
	if f.mm != nil {
		err = f.mm.Close()
	}
	if f.ownsTemp {
		if rmErr := os.Remove(f.path); rmErr != nil && err == nil {
			err = rmErr
		}
	}
	return err
}
