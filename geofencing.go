package pyswarming

import (
	"math"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/spatial/r3"
)

// A Field is a scalar function over space describing a region of interest.
// The region is where the field is negative.
type Field func(r Vec3) float64

// A GradientProvider computes the gradient of a field at a point.
// The field is treated as a black box.
type GradientProvider interface {
	Gradient(f Field, r Vec3) Vec3
}

// FiniteDifference computes gradients numerically.
// A nil Settings uses the central difference formula with its default step.
type FiniteDifference struct {
	Settings *fd.Settings
}

// DefaultGradient is the gradient provider used by Geofencing.
var DefaultGradient GradientProvider = FiniteDifference{}

// Gradient implements GradientProvider.
func (d FiniteDifference) Gradient(f Field, r Vec3) Vec3 {
	settings := d.Settings
	if settings == nil {
		settings = &fd.Settings{Formula: fd.Central}
	}
	g := fd.Gradient(nil, func(x []float64) float64 {
		return f(Vec3{X: x[0], Y: x[1], Z: x[2]})
	}, []float64{r.X, r.Y, r.Z}, settings)
	return Vec3{X: g[0], Y: g[1], Z: g[2]}
}

// Geofencing returns -sigmoid(A(ri)) times the unit gradient of A at ri,
// steering the agent down the field toward the region of interest.
func Geofencing(ri Vec3, A Field) (Vec3, error) {
	return GeofencingWith(DefaultGradient, ri, A)
}

// GeofencingWith is Geofencing with an explicit gradient provider.
func GeofencingWith(gp GradientProvider, ri Vec3, A Field) (Vec3, error) {
	g := guard{name: "geofencing"}
	grad := g.normalize(gp.Gradient(A, ri))
	return r3.Scale(-sigmoid(A(ri)), grad), g.err()
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// Sphere returns the field |r-c|² - radius², negative inside the sphere.
func Sphere(c Vec3, radius float64) Field {
	return func(r Vec3) float64 {
		return r3.Norm2(r3.Sub(r, c)) - radius*radius
	}
}

// Plane returns the signed distance to the plane through p with normal n.
// The region of interest is the half-space opposite to n.
func Plane(p, n Vec3) Field {
	n = r3.Unit(n)
	return func(r Vec3) float64 {
		return r3.Dot(r3.Sub(r, p), n)
	}
}
