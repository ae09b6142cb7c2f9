package pyswarming

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// A Distribution is the sampling rule used to deploy agents.
type Distribution int

// Deployment distributions.
const (
	// Fixed places every agent at the lower limits.
	Fixed Distribution = iota

	// Uniform draws every coordinate between the lower and upper limits.
	Uniform

	// Gaussian draws every coordinate from a normal distribution
	// whose mean is the lower limit and standard deviation the upper limit.
	Gaussian
)

var distributionNames = [...]string{
	Fixed:    "none",
	Uniform:  "uniform",
	Gaussian: "gaussian",
}

func (d Distribution) String() string {
	if d < 0 || int(d) >= len(distributionNames) {
		return fmt.Sprintf("Distribution(%d)", int(d))
	}
	return distributionNames[d]
}

// ParseDistribution returns the distribution called s (none, uniform or gaussian).
func ParseDistribution(s string) (Distribution, error) {
	for i, name := range distributionNames {
		if strings.EqualFold(s, name) {
			return Distribution(i), nil
		}
	}
	return 0, errors.Wrapf(ErrDistribution, "%q", s)
}

// Limits are the lower and upper bounds of a deployment, per axis.
type Limits [2]Vec3

// A Deployment describes how agents are initially placed.
type Deployment struct {
	Position     Limits
	Orientation  Limits
	Distribution Distribution
}

// sample draws n poses. All positions are drawn before all orientations,
// each agent axis by axis. The pose is then restricted to the plane.
func (d Deployment) sample(n int, src rand.Source) []State {
	pose := make([]State, n)
	pos := d.sampler(d.Position, src)
	for i := range pose {
		pose[i].Pos = Vec3{X: pos[0](), Y: pos[1](), Z: pos[2]()}
	}
	rot := d.sampler(d.Orientation, src)
	for i := range pose {
		pose[i].Rot = Vec3{X: rot[0](), Y: rot[1](), Z: rot[2]()}
	}
	for i := range pose {
		pose[i].Pos.Z = 0
		pose[i].Rot.X = 0
		pose[i].Rot.Y = 0
	}
	return pose
}

// sampler returns one sampling function per axis.
func (d Deployment) sampler(l Limits, src rand.Source) [3]func() float64 {
	lo := [3]float64{l[0].X, l[0].Y, l[0].Z}
	hi := [3]float64{l[1].X, l[1].Y, l[1].Z}
	var f [3]func() float64
	for k := range f {
		switch d.Distribution {
		case Uniform:
			f[k] = distuv.Uniform{Min: lo[k], Max: hi[k], Src: src}.Rand
		case Gaussian:
			f[k] = distuv.Normal{Mu: lo[k], Sigma: hi[k], Src: src}.Rand
		default:
			v := lo[k]
			f[k] = func() float64 { return v }
		}
	}
	return f
}
