// Package dscan scans a DSC-conformant PostScript stream in one forward
// pass, recording the byte offsets later components need: page boundaries,
// the end of the header/prolog/setup sections, and any pre-existing PStoPS
// procset. It never rewrites or validates PS semantics, only `%%` comment
// structure.
package dscan

import "bytes"

// maxSizeHeaders bounds how many header-size comments (BoundingBox and
// friends) are tracked; psutils capped this array at 20 including its
// sentinel, so 19 real entries here.
const maxSizeHeaders = 19

// InputIndex is the immutable byte-offset map produced by Scan. All offsets
// are relative to the start of the scanned input.
type InputIndex struct {
	// PageOffsets has length Pages()+1: entry i is the start of the line
	// carrying page i's "%%Page:" comment; the final entry is the start
	// of the trailer.
	PageOffsets []int64

	// HeaderEnd is the offset of the first byte after the initial header
	// comments.
	HeaderEnd int64

	// PagesCommentOffset is the offset of the "%%Pages:" header line, or
	// 0 if the input has none.
	PagesCommentOffset int64

	// SetupEnd is the offset of the start of the "%%EndSetup" line, clamped to
	// PageOffsets[0] when absent or past the first page.
	SetupEnd int64

	// ProcsetBegin/ProcsetEnd bound a pre-existing
	// "%%BeginProcSet: PStoPS ... %%EndProcSet" block, or are both 0.
	ProcsetBegin int64
	ProcsetEnd   int64

	// SizeHeaderOffsets lists header comments that may need rewriting:
	// BoundingBox, HiResBoundingBox, DocumentPaperSizes, DocumentMedia.
	SizeHeaderOffsets []int64
}

// Pages returns the number of input pages found.
func (idx *InputIndex) Pages() int {
	return len(idx.PageOffsets) - 1
}

// Scan walks data once, line by line, and builds an InputIndex.
func Scan(data []byte) *InputIndex {
	idx := &InputIndex{}
	nesting := 0
	n := int64(len(data))
	var offset int64

	for offset < n {
		record := offset
		line, next := nextLine(data, offset)
		if len(line) == 0 {
			break
		}

		switch {
		case line[0] != '%':
			if idx.HeaderEnd == 0 {
				idx.HeaderEnd = record
			}

		case len(line) > 1 && line[1] == '%':
			comment := line[2:]
			switch {
			case nesting == 0 && hasPrefix(comment, "Page:"):
				idx.PageOffsets = append(idx.PageOffsets, record)
			case idx.HeaderEnd == 0 && hasPrefix(comment, "BoundingBox:"):
				idx.appendSizeHeader(record)
			case idx.HeaderEnd == 0 && hasPrefix(comment, "HiResBoundingBox:"):
				idx.appendSizeHeader(record)
			case idx.HeaderEnd == 0 && hasPrefix(comment, "DocumentPaperSizes:"):
				idx.appendSizeHeader(record)
			case idx.HeaderEnd == 0 && hasPrefix(comment, "DocumentMedia:"):
				idx.appendSizeHeader(record)
			case idx.HeaderEnd == 0 && hasPrefix(comment, "Pages:"):
				idx.PagesCommentOffset = record
			case idx.HeaderEnd == 0 && hasPrefix(comment, "EndComments"):
				idx.HeaderEnd = next
			case hasPrefix(comment, "BeginDocument") || hasPrefix(comment, "BeginBinary") || hasPrefix(comment, "BeginFile"):
				nesting++
			case hasPrefix(comment, "EndDocument") || hasPrefix(comment, "EndBinary") || hasPrefix(comment, "EndFile"):
				nesting--
			case nesting == 0 && hasPrefix(comment, "EndSetup"):
				idx.SetupEnd = record
			case nesting == 0 && hasPrefix(comment, "BeginProlog"):
				idx.HeaderEnd = next
			case nesting == 0 && hasPrefix(comment, "BeginProcSet: PStoPS"):
				idx.ProcsetBegin = record
			case idx.ProcsetBegin != 0 && idx.ProcsetEnd == 0 && hasPrefix(comment, "EndProcSet"):
				idx.ProcsetEnd = next
			case nesting == 0 && (hasPrefix(comment, "Trailer") || hasPrefix(comment, "EOF")):
				offset = record
				goto doneScanning
			}

		default:
			var second byte
			if len(line) > 1 {
				second = line[1]
			}
			if idx.HeaderEnd == 0 && second != '!' {
				idx.HeaderEnd = record
			}
		}

		offset = next
	}

doneScanning:
	idx.PageOffsets = append(idx.PageOffsets, offset)
	if idx.SetupEnd == 0 || idx.SetupEnd > idx.PageOffsets[0] {
		idx.SetupEnd = idx.PageOffsets[0]
	}
	return idx
}

func (idx *InputIndex) appendSizeHeader(offset int64) {
	if len(idx.SizeHeaderOffsets) < maxSizeHeaders {
		idx.SizeHeaderOffsets = append(idx.SizeHeaderOffsets, offset)
	}
}

// nextLine returns the line starting at offset (including its trailing
// newline, if any) and the offset of the following line.
func nextLine(data []byte, offset int64) ([]byte, int64) {
	rest := data[offset:]
	if i := bytes.IndexByte(rest, '\n'); i >= 0 {
		return rest[:i+1], offset + int64(i) + 1
	}
	return rest, int64(len(data))
}

func hasPrefix(comment []byte, kw string) bool {
	return bytes.HasPrefix(comment, []byte(kw))
}
