package make

import (
	"math"

	"github.com/alexozer/curvex"

	"github.com/ungerik/go3d/float64/vec3"
)

// Generate the control points, weights, and knots of an arbitrary arc
// (Corresponds to Algorithm A7.1 from Piegl & Tiller)
//
// **params**
// + the center of the arc
// + the xaxis of the arc
// + orthogonal yaxis of the arc
// + radius of the arc
// + start angle of the arc
// + end angle of the arc, greater than the start angle
//
// **returns**
// + a rational quadratic NurbsCurve over [0, 1]
func Arc(center *vec3.T, xaxis, yaxis *vec3.T, radius float64, startAngle, endAngle float64) *curvex.NurbsCurve {
	xaxisN, yaxisN := xaxis.Normalized(), yaxis.Normalized()
	xaxisScaled, yaxisScaled := xaxisN.Scaled(radius), yaxisN.Scaled(radius)
	return EllipseArc(center, &xaxisScaled, &yaxisScaled, startAngle, endAngle)
}

// Create a full circle, starting and ending on the xaxis
func Circle(center *vec3.T, xaxis, yaxis *vec3.T, radius float64) *curvex.NurbsCurve {
	return Arc(center, xaxis, yaxis, radius, 0, 2*math.Pi)
}

func Ellipse(center *vec3.T, xaxis, yaxis *vec3.T) *curvex.NurbsCurve {
	return EllipseArc(center, xaxis, yaxis, 0, 2*math.Pi)
}

// Generate the control points, weights, and knots of an elliptical arc. The arc is
// split into at most four pieces of equal sweep, each a rational quadratic whose middle
// control point is where the end tangents meet.
//
// **params**
// + the center
// + the scaled x axis
// + the scaled y axis
// + start angle of the ellipse arc, where 0 points at the xaxis
// + end angle of the arc; an end angle below the start angle gives the full ellipse
//
// **returns**
// + a rational quadratic NurbsCurve over [0, 1]
func EllipseArc(center *vec3.T, xaxis, yaxis *vec3.T, startAngle, endAngle float64) *curvex.NurbsCurve {
	if endAngle < startAngle {
		endAngle = 2.0*math.Pi + startAngle
	}
	theta := endAngle - startAngle

	var numArcs int
	switch {
	case theta <= math.Pi/2:
		numArcs = 1
	case theta <= math.Pi:
		numArcs = 2
	case theta <= 3*math.Pi/2:
		numArcs = 3
	default:
		numArcs = 4
	}

	dtheta := theta / float64(numArcs)
	w1 := math.Cos(dtheta / 2)

	// point on the ellipse at angle, pushed out by scale from the center
	at := func(angle, scale float64) vec3.T {
		x, y := xaxis.Scaled(scale*math.Cos(angle)), yaxis.Scaled(scale*math.Sin(angle))
		p := vec3.Add(&x, &y)
		return vec3.Add(center, &p)
	}

	controlPoints := make([]vec3.T, 2*numArcs+1)
	weights := make([]float64, 2*numArcs+1)

	controlPoints[0], weights[0] = at(startAngle, 1), 1
	for i := 1; i <= numArcs; i++ {
		angle := startAngle + float64(i)*dtheta

		controlPoints[2*i-1], weights[2*i-1] = at(angle-dtheta/2, 1/w1), w1
		controlPoints[2*i], weights[2*i] = at(angle, 1), 1
	}

	knots := make([]float64, 2*numArcs+4)
	for i := 0; i < 3; i++ {
		knots[len(knots)-1-i] = 1
	}
	for i := 1; i < numArcs; i++ {
		knots[1+2*i] = float64(i) / float64(numArcs)
		knots[2+2*i] = float64(i) / float64(numArcs)
	}

	return curvex.NewNurbsCurveUnchecked(2, controlPoints, weights, knots)
}

// generate the control points, weights, and knots for a bezier curve of any degree
//
// **params**
// + the control points, one more than the degree
//
// **returns**
// + a polynomial NurbsCurve over [0, 1]
func BezierCurve(controlPoints []vec3.T) *curvex.NurbsCurve {
	degree := len(controlPoints) - 1

	knots := make([]float64, 2*degree+2)
	for i := degree + 1; i < len(knots); i++ {
		knots[i] = 1
	}

	return curvex.NewNurbsCurveUnchecked(degree, controlPoints, ones(len(controlPoints)), knots)
}
