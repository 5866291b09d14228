package pstops

import "fmt"

// Version constants.
const (
	Major = 0
	Minor = 1
	Patch = 0
)

// Version returns the version string of pstops.
func Version() string {
	return fmt.Sprintf("pstops %d.%d.%d (N-up PostScript imposition)", Major, Minor, Patch)
}
