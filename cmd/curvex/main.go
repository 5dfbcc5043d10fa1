package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/alexozer/curvex"
	"github.com/alexozer/curvex/intersect"

	"github.com/cockroachdb/errors"
	"github.com/golang/geo/s1"
	"github.com/tdewolff/argp"
	"github.com/ungerik/go3d/float64/vec3"
)

type Main struct{}

type Intersect struct {
	Tol     float64 `desc:"Linear tolerance, derived from the curves if 0"`
	Angle   float64 `desc:"Angular tolerance in radians"`
	Box     string  `desc:"Search box as x0,y0,z0,x1,y1,z1"`
	Verbose bool    `short:"v" desc:"Log a summary of the search"`
	Input   string  `index:"0" desc:"JSON file with two curves"`
}

type Length struct {
	Input string `index:"0" desc:"JSON file with curves"`
}

func main() {
	root := argp.NewCmd(&Main{}, "Curve/curve intersection")
	root.AddCmd(&Intersect{}, "intersect", "Intersect two curves")
	root.AddCmd(&Length{}, "length", "Print the arc length of each curve")
	root.Parse()
	root.PrintHelp()
}

func (cmd *Main) Run() error {
	return argp.ShowUsage
}

func (cmd *Intersect) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}

	crvs, err := readCurves(cmd.Input)
	if err != nil {
		return err
	}
	if len(crvs) != 2 {
		return errors.Newf("%s: need two curves, got %d", cmd.Input, len(crvs))
	}

	opts, err := cmd.options()
	if err != nil {
		return err
	}

	writeIntersections(os.Stdout, intersect.Curves(crvs[0], crvs[1], opts))
	if cmd.Verbose {
		opts.Logger.Debug("stats", slog.String("counters", opts.Stats.String()))
	}
	return nil
}

func (cmd *Intersect) options() (*intersect.Options, error) {
	opts := &intersect.Options{Stats: new(intersect.Stats)}

	if cmd.Tol != 0 || cmd.Angle != 0 {
		if cmd.Tol < 0 || cmd.Angle < 0 {
			return nil, errors.New("tolerances must not be negative")
		}
		tol := intersect.Tolerance{Linear: cmd.Tol, Angular: s1.Angle(cmd.Angle) * s1.Radian}
		if tol.Linear == 0 {
			tol.Linear = intersect.DefaultTolerance
		}
		opts.Tolerance = &tol
	}

	if cmd.Box != "" {
		box, err := parseBox(cmd.Box)
		if err != nil {
			return nil, err
		}
		opts.SearchBox = box
	}

	if cmd.Verbose {
		opts.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	return opts, nil
}

func (cmd *Length) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}

	crvs, err := readCurves(cmd.Input)
	if err != nil {
		return err
	}

	for i, c := range crvs {
		fmt.Printf("%d\t%.12g\n", i, curveLength(c))
	}
	return nil
}

// curveLength of a whole curve, by the curve's own method where it has one
func curveLength(c curvex.Curve) float64 {
	if l, ok := c.(interface{ Length() float64 }); ok {
		return l.Length()
	}

	min, max := c.Domain()
	return curvex.ArcLength(c, min, max)
}

func readCurves(filename string) ([]curvex.Curve, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", filename)
	}

	crvs, err := parseInput(data)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", filename)
	}
	return crvs, nil
}

func parseBox(s string) (*intersect.BoundingBox, error) {
	fields := strings.Split(s, ",")
	if len(fields) != 6 {
		return nil, errors.Newf("box %q: want 6 comma separated numbers", s)
	}

	var v [6]float64
	for i, f := range fields {
		x, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "box %q", s)
		}
		v[i] = x
	}

	return intersect.NewBoundingBox(vec3.T{v[0], v[1], v[2]}, vec3.T{v[3], v[4], v[5]}), nil
}

func writeIntersections(w io.Writer, res *intersect.Intersection) {
	for it := range res.All() {
		fmt.Fprintf(w, "%s\t%s\t%.12g\t%.12g\t%.9g %.9g %.9g\t%.3g\n",
			it.Relation, it.Bound, it.U0, it.U1, it.Point[0], it.Point[1], it.Point[2], it.Residual)
	}
}
