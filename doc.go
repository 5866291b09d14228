// Package pstops imposes N logical pages of a DSC-conformant PostScript
// document onto each physical output sheet ("N-up imposition"): each output
// page executes a grid of input pages, scaled, translated, optionally
// rotated, and optionally bordered.
//
// The package ports psutils' pstops/psnup to Go: a single forward scan
// indexes page boundaries (package dscan), a layout optimizer chooses the
// grid and rotation that wastes the least sheet area (package layout), and
// an emitter streams a rewritten DSC document that wraps each original page
// body in a save/restore with the right matrix transform (package emit).
//
// Basic usage:
//
//	cfg := pstops.NewConfig()
//	cfg.NUp, cfg.Width, cfg.Height = 2, 595.28, 841.89
//
//	sf, err := seekio.Open(in)
//	idx := dscan.Scan(sf.Bytes())
//	lay, err := layout.Optimize(&cfg, cfg.Width, cfg.Height)
//	specs := layout.BuildSpecs(&cfg, lay)
//	err = emit.Impose(&cfg, idx, sf.Bytes(), emit.NewWriter(out), specs, emit.Options{Modulo: cfg.NUp}, nil)
package pstops
