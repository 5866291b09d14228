// Package paper resolves a paper name to (width, height) in PS points. It
// stands in for the external paper database spec.md §4.2 calls out as a
// collaborator consulted by name (psutils itself binds to the system
// libpaper; no such binding exists anywhere in this module's dependency
// pack, so this is a small static table plus an environment-variable
// override instead).
package paper

import (
	"strings"

	envpkg "github.com/xyproto/env/v2"
)

// sizes holds common ISO 216 and US paper sizes in PS points (72 per inch),
// width before height regardless of the paper's own portrait/landscape
// convention — callers needing landscape swap the pair themselves.
var sizes = map[string][2]float64{
	"a3":              {841.89, 1190.55},
	"a4":              {595.28, 841.89},
	"a4small":         {595.28, 841.89},
	"a5":              {420.94, 595.28},
	"a6":              {297.64, 420.94},
	"b5":              {498.90, 708.66},
	"letter":          {612, 792},
	"lettersmall":     {612, 792},
	"legal":           {612, 1008},
	"executive":       {522, 756},
	"executivepage":   {522, 756},
	"tabloid":         {792, 1224},
	"folio":           {612, 936},
	"quarto":          {610, 780},
	"note":            {540, 720},
	"com10envelope":   {297, 684},
	"c5envelope":      {459, 649},
	"dlenvelope":      {312, 624},
	"monarchenvelope": {279, 540},
}

// Lookup resolves a paper name (case-insensitive) to (width, height) points.
// ok is false if the name is not recognized.
func Lookup(name string) (width, height float64, ok bool) {
	dims, ok := sizes[strings.ToLower(name)]
	if !ok {
		return 0, 0, false
	}
	return dims[0], dims[1], true
}

// systemDefaultEnvVars are consulted, in order, for a default paper name
// when neither -p nor -P was given on the command line.
var systemDefaultEnvVars = []string{"PSTOPS_PAPERSIZE", "PAPERSIZE"}

// SystemDefault returns the system's default paper name, read from the
// environment via github.com/xyproto/env/v2, falling back to "letter".
func SystemDefault() string {
	for _, v := range systemDefaultEnvVars {
		if s := envpkg.Str(v, ""); s != "" {
			return s
		}
	}
	return "letter"
}
