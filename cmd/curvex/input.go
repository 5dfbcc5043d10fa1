package main

import (
	"encoding/json"
	"math"

	"github.com/alexozer/curvex"
	mk "github.com/alexozer/curvex/make"

	"github.com/cockroachdb/errors"
	"github.com/golang/geo/s1"
	"github.com/ungerik/go3d/float64/vec3"
)

// input is the JSON document read by the commands.
//
//	{"curves": [
//		{"type": "nurbs", "degree": 2, "points": [[0,0,0], [1,2,0], [2,0,0]], "knots": [0,0,0,1,1,1]},
//		{"type": "line", "from": [0,1,0], "to": [2,1,0]}
//	]}
type input struct {
	Curves []curveInput `json:"curves"`
}

type curveInput struct {
	// nurbs, periodic, line, polyline, circle, ellipse
	Type string `json:"type"`

	Degree   int          `json:"degree"`
	Points   [][3]float64 `json:"points"`
	Weights  []float64    `json:"weights"`
	Knots    []float64    `json:"knots"`
	Periodic bool         `json:"periodic"`

	From [3]float64 `json:"from"`
	To   [3]float64 `json:"to"`

	Center     [3]float64 `json:"center"`
	XAxis      [3]float64 `json:"xAxis"`
	YAxis      [3]float64 `json:"yAxis"`
	Radius     float64    `json:"radius"`
	StartAngle float64    `json:"startAngle"`
	EndAngle   float64    `json:"endAngle"`

	// optional parameter range the curve is trimmed to
	Trim *[2]float64 `json:"trim"`

	FitTolerance float64 `json:"fitTolerance"`
}

func parseInput(data []byte) ([]curvex.Curve, error) {
	var in input
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, errors.Wrap(err, "decode input")
	}

	crvs := make([]curvex.Curve, 0, len(in.Curves))
	for i := range in.Curves {
		c, err := in.Curves[i].build()
		if err != nil {
			return nil, errors.Wrapf(err, "curve %d", i)
		}
		crvs = append(crvs, c)
	}
	return crvs, nil
}

func (this *curveInput) build() (curvex.Curve, error) {
	c, err := this.base()
	if err != nil {
		return nil, err
	}

	if this.Trim != nil {
		return curvex.NewTrimmed(c, this.Trim[0], this.Trim[1])
	}
	return c, nil
}

func (this *curveInput) base() (curvex.Curve, error) {
	pts := make([]vec3.T, len(this.Points))
	for i, p := range this.Points {
		pts[i] = vec3.T(p)
	}

	switch this.Type {
	case "nurbs":
		weights := this.Weights
		if weights == nil {
			weights = make([]float64, len(pts))
			for i := range weights {
				weights[i] = 1
			}
		}

		var crv *curvex.NurbsCurve
		var err error
		if this.Periodic {
			crv, err = curvex.NewPeriodicNurbsCurve(this.Degree, pts, weights, this.Knots)
		} else {
			crv, err = curvex.NewNurbsCurve(this.Degree, pts, weights, this.Knots)
		}
		if err != nil {
			return nil, err
		}
		return crv.WithFitTolerance(this.FitTolerance), nil

	case "periodic":
		crv, err := mk.PeriodicCurve(this.Degree, pts, this.Weights)
		if err != nil {
			return nil, err
		}
		return crv.WithFitTolerance(this.FitTolerance), nil

	case "polyline":
		if len(pts) < 2 {
			return nil, errors.Newf("polyline needs at least 2 points, got %d", len(pts))
		}
		return mk.Polyline(pts), nil

	case "line":
		if this.From == this.To {
			return nil, errors.New("line end points coincide")
		}
		return curvex.NewLine(vec3.T(this.From), vec3.T(this.To)), nil

	case "circle":
		center, x, y := vec3.T(this.Center), vec3.T(this.XAxis), vec3.T(this.YAxis)
		if !(this.Radius > 0) {
			return nil, errors.Newf("circle radius %v must be positive", this.Radius)
		}
		end := this.EndAngle
		if end == 0 && this.StartAngle == 0 {
			end = 2 * math.Pi
		}
		return mk.Arc(&center, &x, &y, this.Radius, this.StartAngle, end), nil

	case "ellipse":
		end := this.EndAngle
		if end == 0 && this.StartAngle == 0 {
			end = 2 * math.Pi
		}
		return curvex.NewEllipseArc(vec3.T(this.Center), vec3.T(this.XAxis), vec3.T(this.YAxis),
			s1.Angle(this.StartAngle)*s1.Radian, s1.Angle(end)*s1.Radian)
	}

	return nil, errors.Newf("unknown curve type %q", this.Type)
}
