// Command pstops places N logical PostScript pages on each physical
// output sheet. It is a port of psutils' pstops/psnup front end: the same
// short-option surface, dimension syntax, and N-up grid/waste-metric
// optimizer, rebuilt around this module's scanner, layout, and emitter
// packages.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dscutil/pstops"
	"github.com/dscutil/pstops/dimen"
	"github.com/dscutil/pstops/dscan"
	"github.com/dscutil/pstops/emit"
	"github.com/dscutil/pstops/internal/logging"
	"github.com/dscutil/pstops/layout"
	"github.com/dscutil/pstops/paper"
	"github.com/dscutil/pstops/pserr"
	"github.com/dscutil/pstops/seekio"
)

const usage = `usage: pstops [-q] [-wWIDTH|-pPAPER] [-hHEIGHT] [-WWIDTH -HHEIGHT|-PPAPER]
       [-l] [-r] [-c] [-f] [-mMARGIN] [-bBORDER] [-d[LWIDTH]] [-sSCALE]
       [-tTOL] [-NUP | -nNUP] [IN [OUT]]
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg := pstops.NewConfig()

	logger, err := logging.New(cfg.Quiet)
	if err != nil {
		return err
	}

	parsed, err := parseArgs(args, &cfg)
	if err != nil {
		logger.Fatal(err)
		return err
	}
	cfg.Draw = parsed.draw
	if parsed.quiet {
		// Rebuild with the now-known -q setting; logging.New(false) was
		// only ever used to report an argument error before we knew.
		if logger, err = logging.New(true); err != nil {
			return err
		}
	}
	defer logger.Sync()

	if err := resolveDimensions(&cfg, parsed); err != nil {
		logger.Fatal(err)
		return err
	}

	in, closeIn, err := openInput(parsed.positional)
	if err != nil {
		logger.Fatal(err)
		return err
	}
	defer closeIn()

	out, closeOut, err := openOutput(parsed.positional)
	if err != nil {
		logger.Fatal(err)
		return err
	}
	defer closeOut()

	sf, err := seekio.Open(in)
	if err != nil {
		logger.Fatal(err)
		return err
	}
	defer sf.Close()

	idx := dscan.Scan(sf.Bytes())

	effIW, effIH := cfg.Width, cfg.Height
	if cfg.InputWidth > 0 {
		effIW = cfg.InputWidth
	}
	if cfg.InputHeight > 0 {
		effIH = cfg.InputHeight
	}

	lay, err := layout.Optimize(&cfg, effIW, effIH)
	if err != nil {
		logger.Fatal(err)
		return err
	}
	specs := layout.BuildSpecs(&cfg, lay)

	w := emit.NewWriter(out)
	opts := emit.Options{
		Modulo:        cfg.NUp,
		PagesPerSheet: 1,
		Draw:          parsed.draw,
		ClipWidth:     lay.ClipWidth,
		ClipHeight:    lay.ClipHeight,
	}
	if err := emit.Impose(&cfg, idx, sf.Bytes(), w, specs, opts, logger); err != nil {
		logger.Fatal(err)
		return err
	}
	return nil
}

// parsedArgs holds the raw results of flag parsing before paper/size
// resolution, which needs the whole flag set in hand first.
type parsedArgs struct {
	quiet      bool
	draw       float64
	paperSet   bool
	positional []string
}

func parseArgs(args []string, cfg *pstops.Config) (parsedArgs, error) {
	var p parsedArgs

	i := 0
	for i < len(args) {
		arg := args[i]
		if len(arg) < 2 || arg[0] != '-' {
			p.positional = append(p.positional, arg)
			i++
			continue
		}

		opt := arg[1]
		attached := arg[2:]
		value := func() (string, error) {
			if attached != "" {
				return attached, nil
			}
			i++
			if i >= len(args) {
				return "", pserr.New(pserr.KindArgument, "option -%c requires an argument", opt)
			}
			return args[i], nil
		}
		dimenValue := func() (float64, error) {
			s, err := value()
			if err != nil {
				return 0, err
			}
			return dimen.Parse(s, cfg.Width, cfg.Height)
		}

		switch opt {
		case 'q':
			cfg.Quiet = true
			p.quiet = true
		case 'd':
			if attached != "" {
				v, err := dimen.Parse(attached, cfg.Width, cfg.Height)
				if err != nil {
					return p, err
				}
				p.draw = v
			} else {
				p.draw = 1
			}
		case 'l':
			cfg.Column = !cfg.Column
			cfg.TopBottom = !cfg.TopBottom
		case 'r':
			cfg.Column = !cfg.Column
			cfg.LeftRight = !cfg.LeftRight
		case 'f':
			cfg.Flip = true
		case 'c':
			cfg.Column = !cfg.Column
		case 'w':
			v, err := dimenValue()
			if err != nil {
				return p, err
			}
			cfg.Width = v
		case 'W':
			v, err := dimenValue()
			if err != nil {
				return p, err
			}
			cfg.InputWidth = v
		case 'h':
			v, err := dimenValue()
			if err != nil {
				return p, err
			}
			cfg.Height = v
		case 'H':
			v, err := dimenValue()
			if err != nil {
				return p, err
			}
			cfg.InputHeight = v
		case 'm':
			v, err := dimenValue()
			if err != nil {
				return p, err
			}
			cfg.Margin = v
		case 'b':
			v, err := dimenValue()
			if err != nil {
				return p, err
			}
			cfg.Border = v
		case 't':
			s, err := value()
			if err != nil {
				return p, err
			}
			v, err := parseFloat(s)
			if err != nil {
				return p, err
			}
			cfg.Tolerance = v
		case 's':
			s, err := value()
			if err != nil {
				return p, err
			}
			v, err := parseFloat(s)
			if err != nil {
				return p, err
			}
			cfg.UserScale = v
		case 'p', 'P':
			s, err := value()
			if err != nil {
				return p, err
			}
			w, h, ok := paper.Lookup(s)
			if !ok {
				return p, pserr.New(pserr.KindArgument, "paper size %q not recognised", s)
			}
			cfg.Width, cfg.Height = w, h
			p.paperSet = true
		case 'n':
			s, err := value()
			if err != nil {
				return p, err
			}
			n, err := dimen.ParseInt(s)
			if err != nil {
				return p, err
			}
			if n <= 0 {
				return p, pserr.New(pserr.KindArgument, "number of pages per sheet must be positive")
			}
			cfg.NUp = n
		case '1', '2', '3', '4', '5', '6', '7', '8', '9':
			n, err := dimen.ParseInt(string(opt) + attached)
			if err != nil {
				return p, err
			}
			if n <= 0 {
				return p, pserr.New(pserr.KindArgument, "number of pages per sheet must be positive")
			}
			cfg.NUp = n
		default:
			return p, pserr.New(pserr.KindArgument, "unknown option -%c\n%s", opt, usage)
		}
		i++
	}

	if len(p.positional) > 2 {
		return p, pserr.New(pserr.KindArgument, "too many arguments\n%s", usage)
	}
	return p, nil
}

func parseFloat(s string) (float64, error) {
	n, err := dimen.Parse(s, -1, -1)
	if err != nil {
		return 0, pserr.New(pserr.KindArgument, "bad number %q", s)
	}
	return n, nil
}

// resolveDimensions fills in output width/height when neither -w/-h nor
// -p/-P set them: -W/-H stand in first (matching the source's "width =
// iwidth only when width == -1" default), and only then does the system
// paper name apply.
func resolveDimensions(cfg *pstops.Config, p parsedArgs) error {
	if cfg.Width == -1 && cfg.InputWidth > 0 {
		cfg.Width = cfg.InputWidth
	}
	if cfg.Height == -1 && cfg.InputHeight > 0 {
		cfg.Height = cfg.InputHeight
	}
	if cfg.Width == -1 || cfg.Height == -1 {
		name := paper.SystemDefault()
		w, h, ok := paper.Lookup(name)
		if !ok {
			return pserr.New(pserr.KindConfig, "system default paper size %q not recognised", name)
		}
		if cfg.Width == -1 {
			cfg.Width = w
		}
		if cfg.Height == -1 {
			cfg.Height = h
		}
	}
	return nil
}

func openInput(positional []string) (io.Reader, func(), error) {
	if len(positional) >= 1 && positional[0] != "-" {
		f, err := os.Open(positional[0])
		if err != nil {
			return nil, func() {}, pserr.Wrap(pserr.KindIO, err, "opening input")
		}
		return f, func() { f.Close() }, nil
	}
	return os.Stdin, func() {}, nil
}

func openOutput(positional []string) (io.Writer, func(), error) {
	if len(positional) >= 2 && positional[1] != "-" {
		f, err := os.Create(positional[1])
		if err != nil {
			return nil, func() {}, pserr.Wrap(pserr.KindIO, err, "opening output")
		}
		return f, func() { f.Close() }, nil
	}
	return os.Stdout, func() {}, nil
}
