// Package layout picks the rows x cols grid and optional rotation that
// minimizes wasted sheet area for a given N-up request, then turns the
// winning grid into an ordered chain of PlacementSpecs, one per cell.
package layout

import (
	"math"

	"github.com/dscutil/pstops"
	"github.com/dscutil/pstops/pserr"
)

// Layout is the winning grid: its geometry (Horiz x Vert cells, optionally
// rotated 90 degrees) plus the scale and centring shifts every cell in the
// grid shares.
type Layout struct {
	Horiz, Vert int
	Rotate      bool
	Scale       float64
	HShift      float64
	VShift      float64

	// ClipWidth/ClipHeight are the output page dimensions to clip each
	// cell against, swapped from Config.Width/Height when Config.Flip
	// is set.
	ClipWidth, ClipHeight float64

	// PPWid/PPHgt are the usable sheet area (output dims minus margins)
	// BuildSpecs divides across cells.
	PPWid, PPHgt float64

	// Column, LeftRight, TopBottom are the traversal-order flags, with
	// Config's originals transformed when Rotate is set.
	Column, LeftRight, TopBottom bool
}

// Optimize enumerates every (hor, ver) factor pair of cfg.NUp in both
// normal and rotated orientation, keeping whichever combination wastes the
// least sheet area, and fails if nothing beats cfg.Tolerance.
func Optimize(cfg *pstops.Config, iw, ih float64) (*Layout, error) {
	ppwid := cfg.Width - 2*cfg.Margin
	pphgt := cfg.Height - 2*cfg.Margin
	if ppwid <= 0 || pphgt <= 0 {
		return nil, pserr.New(pserr.KindConfig, "paper margins are too large")
	}

	best := cfg.Tolerance
	found := false
	var horiz, vert int
	var rotate bool
	var scale, hshift, vshift float64

	for hor := 1; hor != 0; hor = nextDivisor(hor, cfg.NUp) {
		ver := cfg.NUp / hor
		fhor, fver := float64(hor), float64(ver)

		// normal orientation: hor columns x ver rows of the page as-is.
		scl := math.Min(pphgt/(ih*fver), ppwid/(iw*fhor))
		optim := sq(ppwid-scl*iw*fhor) + sq(pphgt-scl*ih*fver)
		if optim < best {
			best = optim
			found = true
			scale = math.Min((pphgt-2*cfg.Border*fver)/(ih*fver), (ppwid-2*cfg.Border*fhor)/(iw*fhor))
			hshift = (ppwid/fhor - iw*scale) / 2
			vshift = (pphgt/fver - ih*scale) / 2
			horiz, vert = hor, ver
			rotate = cfg.Flip
		}

		// rotated orientation: the page turned 90 degrees within its cell.
		scl = math.Min(pphgt/(iw*fhor), ppwid/(ih*fver))
		optim = sq(pphgt-scl*iw*fhor) + sq(ppwid-scl*ih*fver)
		if optim < best {
			best = optim
			found = true
			scale = math.Min((pphgt-2*cfg.Border*fhor)/(iw*fhor), (ppwid-2*cfg.Border*fver)/(ih*fver))
			hshift = (ppwid/fver - ih*scale) / 2
			vshift = (pphgt/fhor - iw*scale) / 2
			horiz, vert = ver, hor
			rotate = !cfg.Flip
		}
	}

	if !found {
		return nil, pserr.New(pserr.KindLayout, "can't find acceptable layout for %d-up", cfg.NUp)
	}

	clipWidth, clipHeight := cfg.Width, cfg.Height
	if cfg.Flip {
		clipWidth, clipHeight = clipHeight, clipWidth
	}

	leftRight, topBottom, column := cfg.LeftRight, cfg.TopBottom, cfg.Column
	if rotate {
		oldTopBottom := topBottom
		topBottom = !leftRight
		leftRight = oldTopBottom
		column = !column
	}

	return &Layout{
		Horiz: horiz, Vert: vert,
		Rotate: rotate,
		Scale:  scale,
		HShift: hshift, VShift: vshift,
		ClipWidth: clipWidth, ClipHeight: clipHeight,
		PPWid: ppwid, PPHgt: pphgt,
		Column: column, LeftRight: leftRight, TopBottom: topBottom,
	}, nil
}

// nextDivisor returns the smallest exact divisor of m that is strictly
// greater than n, or 0 if n is m or no such divisor exists (i.e. n == m).
func nextDivisor(n, m int) int {
	for n++; n <= m; n++ {
		if m%n == 0 {
			return n
		}
	}
	return 0
}

func sq(x float64) float64 { return x * x }

// BuildSpecs turns the winning Layout into an ordered chain of
// cfg.NUp PlacementSpecs, one per grid cell, in page-index order.
func BuildSpecs(cfg *pstops.Config, lay *Layout) *pstops.PlacementSpec {
	var head, tail *pstops.PlacementSpec

	for page := 0; page < cfg.NUp; page++ {
		across, up := cellIndex(page, lay)

		ps := &pstops.PlacementSpec{Pageno: page}
		ps.Scale = lay.Scale
		if cfg.UserScale > 0 {
			ps.Scale = cfg.UserScale
		}
		ps.Flags |= pstops.FlagScale | pstops.FlagOffset | pstops.FlagGSave
		ps.YOff = cfg.Margin + float64(up)*lay.PPHgt/float64(lay.Vert) + lay.VShift

		if lay.Rotate {
			ps.XOff = cfg.Margin + float64(across+1)*lay.PPWid/float64(lay.Horiz) - lay.HShift
			ps.Rotate = 90
			ps.Flags |= pstops.FlagRotate
		} else {
			ps.XOff = cfg.Margin + float64(across)*lay.PPWid/float64(lay.Horiz) + lay.HShift
		}

		if head == nil {
			head = ps
		} else {
			tail.Flags |= pstops.FlagAddNext
			tail.Next = ps
		}
		tail = ps
	}

	return head
}

func cellIndex(page int, lay *Layout) (across, up int) {
	if lay.Column {
		if lay.LeftRight {
			across = page / lay.Vert
		} else {
			across = lay.Horiz - 1 - page/lay.Vert
		}
		if lay.TopBottom {
			up = lay.Vert - 1 - page%lay.Vert
		} else {
			up = page % lay.Vert
		}
		return across, up
	}

	if lay.LeftRight {
		across = page % lay.Horiz
	} else {
		across = lay.Horiz - 1 - page%lay.Horiz
	}
	if lay.TopBottom {
		up = lay.Vert - 1 - page/lay.Horiz
	} else {
		up = page / lay.Horiz
	}
	return across, up
}
