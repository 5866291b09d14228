package layout

import (
	"math"
	"testing"

	"github.com/dscutil/pstops"
)

func a4Config(nup int) *pstops.Config {
	cfg := pstops.NewConfig()
	cfg.NUp = nup
	cfg.Width, cfg.Height = 595.28, 841.89
	return &cfg
}

func TestOptimizeOneUpIsPassThrough(t *testing.T) {
	cfg := a4Config(1)
	lay, err := Optimize(cfg, cfg.Width, cfg.Height)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if lay.Horiz != 1 || lay.Vert != 1 {
		t.Fatalf("1-up grid = %dx%d, want 1x1", lay.Horiz, lay.Vert)
	}
	if lay.Rotate {
		t.Error("1-up with no -f should not rotate")
	}
	if math.Abs(lay.Scale-1) > 1e-9 {
		t.Errorf("1-up scale = %v, want 1", lay.Scale)
	}
	if math.Abs(lay.HShift) > 1e-9 || math.Abs(lay.VShift) > 1e-9 {
		t.Errorf("1-up shifts should be 0, got h=%v v=%v", lay.HShift, lay.VShift)
	}
}

func TestOptimizeTwoUpRotates(t *testing.T) {
	cfg := a4Config(2)
	lay, err := Optimize(cfg, cfg.Width, cfg.Height)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if lay.Horiz*lay.Vert != 2 {
		t.Fatalf("grid %dx%d does not have 2 cells", lay.Horiz, lay.Vert)
	}
	if !lay.Rotate {
		t.Error("expected 2-up on a portrait A4 sheet to rotate for best fit")
	}
	if math.Abs(lay.Scale-0.70710678) > 1e-4 {
		t.Errorf("scale = %v, want ~0.7071", lay.Scale)
	}
}

func TestOptimizeFourUpGrid(t *testing.T) {
	cfg := a4Config(4)
	lay, err := Optimize(cfg, cfg.Width, cfg.Height)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if lay.Horiz*lay.Vert != 4 {
		t.Fatalf("grid %dx%d does not have 4 cells", lay.Horiz, lay.Vert)
	}
}

func TestOptimizeRejectsOversizedMargins(t *testing.T) {
	cfg := a4Config(1)
	cfg.Margin = 1000
	if _, err := Optimize(cfg, cfg.Width, cfg.Height); err == nil {
		t.Error("expected error when margins exceed sheet size")
	}
}

func TestOptimizeFailsWhenNothingMeetsTolerance(t *testing.T) {
	cfg := a4Config(3)
	cfg.Tolerance = 1e-12
	if _, err := Optimize(cfg, cfg.Width, cfg.Height); err == nil {
		t.Error("expected layout error with a near-zero tolerance")
	}
}

func TestNextDivisor(t *testing.T) {
	cases := []struct{ n, m, want int }{
		{1, 9, 3}, {3, 9, 9}, {9, 9, 0},
		{1, 6, 2}, {2, 6, 3}, {3, 6, 6}, {6, 6, 0},
	}
	for _, c := range cases {
		if got := nextDivisor(c.n, c.m); got != c.want {
			t.Errorf("nextDivisor(%d,%d) = %d, want %d", c.n, c.m, got, c.want)
		}
	}
}

func TestBuildSpecsCoversEveryCellExactlyOnce(t *testing.T) {
	cfg := a4Config(6)
	lay, err := Optimize(cfg, cfg.Width, cfg.Height)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	head := BuildSpecs(cfg, lay)

	seen := make(map[[2]int]bool)
	count := 0
	for ps := head; ps != nil; ps = ps.Next {
		count++
		if ps.Flags&pstops.FlagScale == 0 || ps.Flags&pstops.FlagOffset == 0 || ps.Flags&pstops.FlagGSave == 0 {
			t.Errorf("spec %d missing required flags: %v", ps.Pageno, ps.Flags)
		}
		across, up := cellIndex(ps.Pageno, lay)
		key := [2]int{across, up}
		if seen[key] {
			t.Errorf("cell %v covered more than once", key)
		}
		seen[key] = true
		if across < 0 || across >= lay.Horiz || up < 0 || up >= lay.Vert {
			t.Errorf("cell (%d,%d) out of grid %dx%d", across, up, lay.Horiz, lay.Vert)
		}
	}
	if count != cfg.NUp {
		t.Errorf("spec count = %d, want %d", count, cfg.NUp)
	}
	if len(seen) != cfg.NUp {
		t.Errorf("distinct cells covered = %d, want %d", len(seen), cfg.NUp)
	}
}

func TestBuildSpecsAddNextChainsAllButLast(t *testing.T) {
	cfg := a4Config(4)
	lay, err := Optimize(cfg, cfg.Width, cfg.Height)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	head := BuildSpecs(cfg, lay)

	n := 0
	var last *pstops.PlacementSpec
	for ps := head; ps != nil; ps = ps.Next {
		n++
		last = ps
		if ps.Next != nil && ps.Flags&pstops.FlagAddNext == 0 {
			t.Errorf("spec %d has a Next but no FlagAddNext", ps.Pageno)
		}
	}
	if last.Flags&pstops.FlagAddNext != 0 {
		t.Error("last spec in chain should not have FlagAddNext")
	}
	if n != cfg.NUp {
		t.Fatalf("chain length = %d, want %d", n, cfg.NUp)
	}
}

func TestBuildSpecsRotatedSetsRotateFlag(t *testing.T) {
	cfg := a4Config(2)
	lay, err := Optimize(cfg, cfg.Width, cfg.Height)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	head := BuildSpecs(cfg, lay)
	for ps := head; ps != nil; ps = ps.Next {
		if lay.Rotate && (ps.Flags&pstops.FlagRotate == 0 || ps.Rotate != 90) {
			t.Errorf("spec %d: expected ROTATE flag and 90 degrees, got flags=%v rotate=%d", ps.Pageno, ps.Flags, ps.Rotate)
		}
	}
}
