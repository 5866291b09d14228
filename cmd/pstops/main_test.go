package main

import (
	"testing"

	"github.com/dscutil/pstops"
)

func TestParseArgsNUpDigit(t *testing.T) {
	cfg := pstops.NewConfig()
	_, err := parseArgs([]string{"-4", "in.ps", "out.ps"}, &cfg)
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if cfg.NUp != 4 {
		t.Errorf("NUp = %d, want 4", cfg.NUp)
	}
}

func TestParseArgsNUpAttached(t *testing.T) {
	cfg := pstops.NewConfig()
	// "-12" is opt='1' with attached optarg "2", forming 12, not nup=1.
	_, err := parseArgs([]string{"-12"}, &cfg)
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if cfg.NUp != 12 {
		t.Errorf("NUp = %d, want 12", cfg.NUp)
	}
}

func TestParseArgsNFlagSeparateValue(t *testing.T) {
	cfg := pstops.NewConfig()
	_, err := parseArgs([]string{"-n", "6"}, &cfg)
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if cfg.NUp != 6 {
		t.Errorf("NUp = %d, want 6", cfg.NUp)
	}
}

func TestParseArgsNFlagAttachedValue(t *testing.T) {
	cfg := pstops.NewConfig()
	_, err := parseArgs([]string{"-n6"}, &cfg)
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if cfg.NUp != 6 {
		t.Errorf("NUp = %d, want 6", cfg.NUp)
	}
}

func TestParseArgsRejectsNonPositiveNUp(t *testing.T) {
	cfg := pstops.NewConfig()
	if _, err := parseArgs([]string{"-n0"}, &cfg); err == nil {
		t.Error("expected error for -n0")
	}
}

func TestParseArgsPaperSize(t *testing.T) {
	cfg := pstops.NewConfig()
	p, err := parseArgs([]string{"-pa4"}, &cfg)
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if !p.paperSet {
		t.Error("expected paperSet")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		t.Errorf("a4 dims not resolved: %v x %v", cfg.Width, cfg.Height)
	}
}

func TestParseArgsUnknownPaperSize(t *testing.T) {
	cfg := pstops.NewConfig()
	if _, err := parseArgs([]string{"-pnonexistent"}, &cfg); err == nil {
		t.Error("expected error for unrecognised paper size")
	}
}

func TestParseArgsDimensionFlags(t *testing.T) {
	cfg := pstops.NewConfig()
	_, err := parseArgs([]string{"-w", "10in", "-h5in", "-m36pt"}, &cfg)
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if cfg.Width != 720 {
		t.Errorf("Width = %v, want 720", cfg.Width)
	}
	if cfg.Height != 360 {
		t.Errorf("Height = %v, want 360", cfg.Height)
	}
	if cfg.Margin != 36 {
		t.Errorf("Margin = %v, want 36", cfg.Margin)
	}
}

func TestParseArgsDrawOptionalArgument(t *testing.T) {
	cfg := pstops.NewConfig()
	p, err := parseArgs([]string{"-d"}, &cfg)
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if p.draw != 1 {
		t.Errorf("draw = %v, want 1 (bare -d)", p.draw)
	}

	cfg = pstops.NewConfig()
	p, err = parseArgs([]string{"-d2pt"}, &cfg)
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if p.draw != 2 {
		t.Errorf("draw = %v, want 2 (attached -d2pt)", p.draw)
	}
}

func TestParseArgsScaleAndToleranceArePlainFloats(t *testing.T) {
	cfg := pstops.NewConfig()
	_, err := parseArgs([]string{"-s1.5", "-t", "5000"}, &cfg)
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if cfg.UserScale != 1.5 {
		t.Errorf("UserScale = %v, want 1.5", cfg.UserScale)
	}
	if cfg.Tolerance != 5000 {
		t.Errorf("Tolerance = %v, want 5000", cfg.Tolerance)
	}
}

func TestParseArgsMissingValueErrors(t *testing.T) {
	cfg := pstops.NewConfig()
	if _, err := parseArgs([]string{"-w"}, &cfg); err == nil {
		t.Error("expected error for -w with no argument")
	}
}

func TestParseArgsTooManyPositionals(t *testing.T) {
	cfg := pstops.NewConfig()
	if _, err := parseArgs([]string{"a", "b", "c"}, &cfg); err == nil {
		t.Error("expected error for more than two positional arguments")
	}
}

func TestParseArgsUnknownOption(t *testing.T) {
	cfg := pstops.NewConfig()
	if _, err := parseArgs([]string{"-z"}, &cfg); err == nil {
		t.Error("expected error for unknown option")
	}
}

func TestResolveDimensionsFallsBackToInputWidth(t *testing.T) {
	cfg := pstops.NewConfig()
	cfg.InputWidth = 400
	cfg.InputHeight = 300
	if err := resolveDimensions(&cfg, parsedArgs{}); err != nil {
		t.Fatalf("resolveDimensions: %v", err)
	}
	if cfg.Width != 400 || cfg.Height != 300 {
		t.Errorf("Width/Height = %v/%v, want 400/300", cfg.Width, cfg.Height)
	}
}

func TestResolveDimensionsFallsBackToSystemDefault(t *testing.T) {
	t.Setenv("PSTOPS_PAPERSIZE", "a4")
	t.Setenv("PAPERSIZE", "")
	cfg := pstops.NewConfig()
	if err := resolveDimensions(&cfg, parsedArgs{}); err != nil {
		t.Fatalf("resolveDimensions: %v", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		t.Errorf("expected system default paper dims to be filled in, got %v x %v", cfg.Width, cfg.Height)
	}
}

func TestResolveDimensionsLeavesExplicitWidthAlone(t *testing.T) {
	cfg := pstops.NewConfig()
	cfg.Width, cfg.Height = 500, 600
	cfg.InputWidth, cfg.InputHeight = 100, 100
	if err := resolveDimensions(&cfg, parsedArgs{}); err != nil {
		t.Fatalf("resolveDimensions: %v", err)
	}
	if cfg.Width != 500 || cfg.Height != 600 {
		t.Errorf("explicit Width/Height overwritten: %v/%v", cfg.Width, cfg.Height)
	}
}
