package pstops

// Config is the frozen configuration for one pstops/psnup invocation: CLI
// flags plus any paper-size lookups, resolved before the scanner or layout
// optimizer runs. Once constructed it is passed by pointer and never mutated,
// matching the "configuration is frozen after CLI parse" lifecycle rule.
type Config struct {
	// Output sheet dimensions, in PS points. Width/Height of -1 means
	// "not yet known"; -w/-h, -p/-P, -W/-H or the system default paper
	// resolve both before layout runs.
	Width, Height float64

	// Input page dimensions, in PS points. Defaults to Width/Height unless
	// overridden with -W/-H.
	InputWidth, InputHeight float64

	// NUp is the number of input pages placed on each output sheet.
	NUp int

	// Margin is the outer margin subtracted from the usable sheet area on
	// every side. Border is the per-cell inner border.
	Margin, Border float64

	// Tolerance bounds the layout optimizer's waste metric; a search that
	// finds nothing under Tolerance is a KindLayout error.
	Tolerance float64

	// UserScale overrides the optimizer's computed scale when > 0.
	UserScale float64

	// Column selects column-major placement order over the default
	// row-major order.
	Column bool

	// LeftRight and TopBottom select the traversal direction across each
	// axis of the grid.
	LeftRight, TopBottom bool

	// Flip swaps the clipping width/height of the chosen layout.
	Flip bool

	// Draw is the stroke width for per-cell borders; 0 disables drawing.
	Draw float64

	// Quiet suppresses progress logging.
	Quiet bool
}

// DefaultTolerance is the layout optimizer's default waste tolerance,
// carried over from psnup's "double tolerance = 100000".
const DefaultTolerance = 100000.0

// NewConfig returns a Config with the non-zero psnup defaults applied.
func NewConfig() Config {
	return Config{
		NUp:        1,
		Tolerance:  DefaultTolerance,
		LeftRight:  true,
		TopBottom:  true,
		Width:      -1, Height: -1,
		InputWidth: -1, InputHeight: -1,
	}
}
