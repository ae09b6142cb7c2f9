package pyswarming

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	// ErrSwarmSize is returned when constructing a swarm of less than two agents.
	ErrSwarmSize = errors.New("pyswarming: the number of agents must be greater than 1")

	// ErrDegenerateGeometry signals the normalization of a zero-length vector:
	// coincident agents, a flat geofencing field or contributions cancelling out.
	ErrDegenerateGeometry = errors.New("pyswarming: normalization of a zero-length vector")

	// ErrUnknownBehavior is returned when a behavior name is not registered.
	ErrUnknownBehavior = errors.New("pyswarming: unknown behavior")

	// ErrPoseShape is returned when a pose table does not match the swarm size.
	ErrPoseShape = errors.New("pyswarming: pose table does not match swarm size")

	// ErrDistribution is returned when parsing an unknown distribution name.
	ErrDistribution = errors.New("pyswarming: unknown distribution")

	// ErrParamLength is returned when a per-neighbor parameter has too few values.
	ErrParamLength = errors.New("pyswarming: not enough per-neighbor parameter values")
)

// guard tracks zero-length normalizations while a behavior is evaluated.
// The arithmetic is never altered: a zero length still yields Inf or NaN.
type guard struct {
	name string
	bad  bool
}

// unit returns the unit vector pointing from a to b and the distance between them.
func (g *guard) unit(a, b Vec3) (Vec3, float64) {
	d := r3.Sub(b, a)
	n := r3.Norm(d)
	if n == 0 {
		g.bad = true
	}
	return r3.Scale(1/n, d), n
}

// normalize returns v divided by its norm.
func (g *guard) normalize(v Vec3) Vec3 {
	n := r3.Norm(v)
	if n == 0 {
		g.bad = true
	}
	return r3.Scale(1/n, v)
}

// mean divides v by n, the number of terms of a sum.
func (g *guard) mean(v Vec3, n int) Vec3 {
	if n == 0 {
		g.bad = true
	}
	return r3.Scale(1/float64(n), v)
}

func (g *guard) err() error {
	if !g.bad {
		return nil
	}
	return errors.Wrap(ErrDegenerateGeometry, g.name)
}

// firstErr returns the first non-nil error.
func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
