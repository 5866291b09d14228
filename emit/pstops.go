// Package emit drives the DSC scan and placement specs to stream an
// imposed PostScript document: rewritten header, injected PStoPS procset,
// then one output page per group of N specs, each a save/restore wrapped
// seek-and-copy of the original page body.
package emit

import (
	"strconv"
	"strings"

	"github.com/dscutil/pstops"
	"github.com/dscutil/pstops/dscan"
	"github.com/dscutil/pstops/pserr"
)

// ProgressLogger receives one notification per emitted page plus a final
// summary; either may be nil to suppress logging entirely (-q).
type ProgressLogger interface {
	Page(label string)
	Summary(outputPages int, bytesWritten int64)
}

// Options configures one Impose call. Modulo is pages-per-sheet (nup);
// PagesPerSheet ("pps" in the source) multiplies the %%Pages: total for
// chained impositions and is 1 for a single pstops/psnup pass. Nobind
// requests the procset define its operators with {}def instead of
// bind def, for debugging under interpreters that don't support bind.
// ClipWidth/ClipHeight are the output page dimensions every cell clips
// against; they come from layout.Layout (which swaps width/height when
// Config.Flip is set) and default to cfg.Width/cfg.Height when left zero.
type Options struct {
	Modulo        int
	PagesPerSheet int
	Nobind        bool
	Draw          float64
	ClipWidth     float64
	ClipHeight    float64
}

// Impose streams an N-up imposed document: input scanned into idx, raw
// bytes in input, written via w, following the grid described by the
// specs chain (as built by layout.BuildSpecs) and opts' clipping dimensions.
func Impose(cfg *pstops.Config, idx *dscan.InputIndex, input []byte, w *Writer, specs *pstops.PlacementSpec, opts Options, logger ProgressLogger) error {
	pages := idx.Pages()
	modulo := opts.Modulo
	if modulo <= 0 {
		modulo = 1
	}
	pps := opts.PagesPerSheet
	if pps <= 0 {
		pps = 1
	}
	maxpage := ((pages + modulo - 1) / modulo) * modulo

	clipWidth, clipHeight := opts.ClipWidth, opts.ClipHeight
	if clipWidth <= 0 {
		clipWidth = cfg.Width
	}
	if clipHeight <= 0 {
		clipHeight = cfg.Height
	}

	r := NewReader(input)

	if err := writeHeaderMedia(r, w, idx, (maxpage/modulo)*pps, clipWidth, clipHeight); err != nil {
		return err
	}

	if err := writeProcset(w, opts.Nobind); err != nil {
		return err
	}

	hadProcset, err := writePartProlog(r, w, idx)
	if err != nil {
		return err
	}
	if hadProcset {
		if err := w.WriteString("userdict/PStoPSxform PStoPSmatrix matrix currentmatrix matrix invertmatrix matrix concatmatrix matrix invertmatrix put\n"); err != nil {
			return err
		}
	}

	if err := r.CopyRange(w, idx.PageOffsets[0], nil); err != nil {
		return pserr.Wrap(pserr.KindIO, err, "writing setup")
	}

	for thispg := 0; thispg < maxpage; thispg += modulo {
		addLast := false
		for ps := specs; ps != nil; ps = ps.Next {
			var actualpg int
			if ps.Flags&pstops.FlagReversed != 0 {
				actualpg = maxpage - thispg - modulo + ps.Pageno
			} else {
				actualpg = thispg + ps.Pageno
			}

			if actualpg < pages {
				if _, err := seekPage(r, idx, actualpg); err != nil {
					return err
				}
			}

			if !addLast {
				compositeLabel := buildCompositeLabel(ps, thispg, modulo, maxpage)
				if logger != nil {
					logger.Page(compositeLabel)
				}
				if err := w.WritePageHeader(compositeLabel); err != nil {
					return err
				}
			}

			if err := w.WriteString("userdict/PStoPSsaved save put\n"); err != nil {
				return err
			}
			if ps.Flags&pstops.FlagGSave != 0 {
				if err := writeCellTransform(w, ps, clipWidth, clipHeight, opts.Draw); err != nil {
					return err
				}
			}

			if ps.Flags&pstops.FlagAddNext != 0 {
				if err := w.WriteString("/PStoPSenablepage false def\n"); err != nil {
					return err
				}
				addLast = true
			} else {
				addLast = false
			}

			if actualpg < pages {
				if idx.ProcsetBegin != 0 {
					if err := writePageSetupPassthrough(r, w); err != nil {
						return err
					}
				}
				if err := w.WriteString("PStoPSxform concat\n"); err != nil {
					return err
				}
				if err := r.CopyRange(w, idx.PageOffsets[actualpg+1], nil); err != nil {
					return pserr.Wrap(pserr.KindIO, err, "writing page body")
				}
			} else {
				if err := w.WriteString("PStoPSxform concat\nshowpage\n"); err != nil {
					return err
				}
			}

			if err := w.WriteString("PStoPSsaved restore\n"); err != nil {
				return err
			}
		}
	}

	r.Seek(idx.PageOffsets[pages])
	for r.Pos() < int64(len(input)) {
		line, err := r.ReadLine()
		if err != nil {
			return pserr.Wrap(pserr.KindIO, err, "writing trailer")
		}
		if err := w.WriteString(line); err != nil {
			return err
		}
	}

	if logger != nil {
		logger.Summary(w.OutputPage(), w.BytesWritten())
	}
	return nil
}

// writeHeaderMedia copies the input header up to the %%Pages: line (if
// any), rewrites it with the new total, optionally injects
// %%DocumentMedia/%%BoundingBox when output dimensions are known, then
// copies the rest of the header comments.
func writeHeaderMedia(r *Reader, w *Writer, idx *dscan.InputIndex, totalPages int, width, height float64) error {
	r.Seek(0)
	ignore := idx.SizeHeaderOffsets
	if idx.PagesCommentOffset != 0 {
		if err := r.CopyRange(w, idx.PagesCommentOffset, ignore); err != nil {
			return pserr.Wrap(pserr.KindIO, err, "writing header")
		}
		if _, err := r.ReadLine(); err != nil {
			return pserr.Wrap(pserr.KindIO, err, "writing header")
		}
		if width > -1 && height > -1 {
			if err := w.Writef("%%%%DocumentMedia: plain %d %d 0 () ()\n", int(width), int(height)); err != nil {
				return err
			}
			if err := w.Writef("%%%%BoundingBox: 0 0 %d %d\n", int(width), int(height)); err != nil {
				return err
			}
		}
		if err := w.Writef("%%%%Pages: %d 0\n", totalPages); err != nil {
			return err
		}
	}
	if err := r.CopyRange(w, idx.HeaderEnd, ignore); err != nil {
		return pserr.Wrap(pserr.KindIO, err, "writing header")
	}
	return nil
}

func writeProcset(w *Writer, nobind bool) error {
	if err := w.WriteString("%%BeginProcSet: PStoPS"); err != nil {
		return err
	}
	if nobind {
		if err := w.WriteString("-nobind"); err != nil {
			return err
		}
	}
	if err := w.WriteString(" 1 15\n"); err != nil {
		return err
	}
	if err := w.WriteString(pstopsPrologue); err != nil {
		return err
	}
	if nobind {
		if err := w.WriteString("/bind{}def\n"); err != nil {
			return err
		}
	}
	return w.WriteString("%%EndProcSet\n")
}

// writePartProlog copies the prolog up to the end of the setup section,
// skipping over any pre-existing PStoPS procset. It returns true if the
// input had such a procset (meaning the caller must emit a
// PStoPSxform-composing line to preserve the earlier pass's transform).
func writePartProlog(r *Reader, w *Writer, idx *dscan.InputIndex) (bool, error) {
	if idx.ProcsetBegin != 0 {
		if err := r.CopyRange(w, idx.ProcsetBegin, nil); err != nil {
			return false, pserr.Wrap(pserr.KindIO, err, "writing prologue")
		}
		r.Seek(idx.ProcsetEnd)
	}
	if err := r.CopyRange(w, idx.SetupEnd, nil); err != nil {
		return false, pserr.Wrap(pserr.KindIO, err, "writing prologue")
	}
	return idx.ProcsetBegin != 0, nil
}

// seekPage positions r at page p's %%Page: comment, consumes it, and
// returns its label. The cursor is left immediately after that line.
func seekPage(r *Reader, idx *dscan.InputIndex, p int) (string, error) {
	r.Seek(idx.PageOffsets[p])
	line, err := r.ReadLine()
	if err != nil {
		return "", pserr.Wrap(pserr.KindIO, err, "seeking page")
	}
	label, _, err := dscan.ParsePageLabel(line)
	if err != nil {
		return "", err
	}
	return label, nil
}

// buildCompositeLabel walks ps's ADD_NEXT chain (the rest of the specs in
// this output sheet) and composes "(p1,p2,...)" from each member's
// computed actualpg — the input page index it will place, not the input
// page's own DSC label, which the source discards here.
func buildCompositeLabel(ps *pstops.PlacementSpec, thispg, modulo, maxpage int) string {
	var b strings.Builder
	b.WriteByte('(')
	np := ps
	first := true
	for {
		n := thispg + np.Pageno
		if np.Flags&pstops.FlagReversed != 0 {
			n = maxpage - thispg - modulo + np.Pageno
		}
		if !first {
			b.WriteByte(',')
		}
		first = false
		b.WriteString(strconv.Itoa(n))
		if np.Flags&pstops.FlagAddNext == 0 || np.Next == nil {
			break
		}
		np = np.Next
	}
	b.WriteByte(')')
	return b.String()
}

// writePageSetupPassthrough copies input lines verbatim until it consumes
// (without echoing) a line starting with "PStoPSxform" — the transform
// line a previous pstops pass emitted for this page.
func writePageSetupPassthrough(r *Reader, w *Writer) error {
	for {
		line, err := r.ReadLine()
		if err != nil {
			return pserr.Wrap(pserr.KindIO, err, "reading page setup")
		}
		if hasPStoPSxformPrefix(line) {
			return nil
		}
		if err := w.WriteString(line); err != nil {
			return err
		}
	}
}

func hasPStoPSxformPrefix(line string) bool {
	const prefix = "PStoPSxform"
	return len(line) >= len(prefix) && line[:len(prefix)] == prefix
}

// writeCellTransform emits the matrix operations for one placement spec,
// in the load-bearing order: setmatrix, translate, rotate, hflip, vflip,
// scale, save — followed by the cell's clip path and optional border.
// width/height are the output page's clipping dimensions (Config.Flip
// already swapped into them by the caller).
func writeCellTransform(w *Writer, ps *pstops.PlacementSpec, width, height, draw float64) error {
	if err := w.WriteString("PStoPSmatrix setmatrix\n"); err != nil {
		return err
	}
	if ps.Flags&pstops.FlagOffset != 0 {
		if err := w.Writef("%f %f translate\n", ps.XOff, ps.YOff); err != nil {
			return err
		}
	}
	if ps.Flags&pstops.FlagRotate != 0 {
		if err := w.Writef("%d rotate\n", ps.Rotate); err != nil {
			return err
		}
	}
	if ps.Flags&pstops.FlagHFlip != 0 {
		if err := w.Writef("[ -1 0 0 1 %f 0 ] concat\n", width*ps.Scale); err != nil {
			return err
		}
	}
	if ps.Flags&pstops.FlagVFlip != 0 {
		if err := w.Writef("[ 1 0 0 -1 0 %f ] concat\n", height*ps.Scale); err != nil {
			return err
		}
	}
	if ps.Flags&pstops.FlagScale != 0 {
		if err := w.Writef("%f dup scale\n", ps.Scale); err != nil {
			return err
		}
	}
	if err := w.WriteString("userdict/PStoPSmatrix matrix currentmatrix put\n"); err != nil {
		return err
	}
	if width > 0 && height > 0 {
		if err := w.Writef("userdict/PStoPSclip{0 0 moveto %f 0 rlineto 0 %f rlineto -%f 0 rlineto closepath}put initclip\n",
			width, height, width); err != nil {
			return err
		}
		if draw > 0 {
			if err := w.Writef("gsave clippath 0 setgray %f setlinewidth stroke grestore\n", draw); err != nil {
				return err
			}
		}
	}
	return nil
}
