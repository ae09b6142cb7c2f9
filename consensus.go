package pyswarming

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r3"
)

// LeaderlessHeadingConsensus returns the mean orientation of the agent and its neighbors.
func LeaderlessHeadingConsensus(thetai Vec3, thetaj []Vec3) Vec3 {
	sum := thetai
	for _, j := range thetaj {
		sum = r3.Add(sum, j)
	}
	return r3.Scale(1/float64(len(thetaj)+1), sum)
}

// HeadingConsensus returns the mean orientation over the group made of the
// agent and its neighbors. It is equivalent to LeaderlessHeadingConsensus.
func HeadingConsensus(thetai Vec3, thetaj []Vec3) Vec3 {
	group := make([]Vec3, 0, len(thetaj)+1)
	group = append(group, thetai)
	group = append(group, thetaj...)
	var sum Vec3
	for _, t := range group {
		sum = r3.Add(sum, t)
	}
	return r3.Scale(1/float64(len(group)), sum)
}

// LeaderFollowing returns the mean orientation of the agent and its neighbors,
// plus the leader orientation theta0 when the agent is informed (bi = 1).
func LeaderFollowing(thetai Vec3, thetaj []Vec3, theta0 Vec3, bi int) Vec3 {
	sum := thetai
	for _, j := range thetaj {
		sum = r3.Add(sum, j)
	}
	sum = r3.Add(sum, r3.Scale(float64(bi), theta0))
	return r3.Scale(1/float64(len(thetaj)+1+bi), sum)
}

// AttractionAlignment returns the unit vector of the sum of the unit vectors
// pointing to each neighbor and of the unit orientation of each neighbor.
func AttractionAlignment(ri Vec3, rj, thetaj []Vec3) (Vec3, error) {
	if len(thetaj) < len(rj) {
		return Vec3{}, errors.Wrapf(ErrParamLength, "attraction_alignment: %d orientations for %d neighbors", len(thetaj), len(rj))
	}
	g := guard{name: "attraction_alignment"}
	var sum Vec3
	for k, j := range rj {
		u, _ := g.unit(ri, j)
		sum = r3.Add(sum, r3.Add(u, g.normalize(thetaj[k])))
	}
	return g.normalize(sum), g.err()
}

// ModifiedAttractionAlignment is AttractionAlignment with the terms of the
// k-th neighbor weighted by its social importance hj[k].
func ModifiedAttractionAlignment(ri Vec3, rj, thetaj []Vec3, hj []float64) (Vec3, error) {
	if len(thetaj) < len(rj) || len(hj) < len(rj) {
		return Vec3{}, errors.Wrapf(ErrParamLength, "modified_attraction_alignment: %d orientations and %d weights for %d neighbors", len(thetaj), len(hj), len(rj))
	}
	g := guard{name: "modified_attraction_alignment"}
	var sum Vec3
	for k, j := range rj {
		u, _ := g.unit(ri, j)
		sum = r3.Add(sum, r3.Scale(hj[k], r3.Add(u, g.normalize(thetaj[k]))))
	}
	return g.normalize(sum), g.err()
}

// PreferredDirection returns the unit vector of thetai + w·ki,
// biasing the orientation toward the preferred direction ki.
func PreferredDirection(thetai, ki Vec3, w float64) (Vec3, error) {
	g := guard{name: "preferred_direction"}
	v := g.normalize(r3.Add(thetai, r3.Scale(w, ki)))
	return v, g.err()
}

// EnvironmentExploration combines goal seeking and neighbor spacing.
// With hi = 1 the agent heads to target t and aligns with the neighbors
// closer than r0; with hi = 0 it is only driven by its neighbors, which
// repel it below r0 and attract it beyond.
func EnvironmentExploration(ri Vec3, rj, thetaj []Vec3, hi int, t Vec3, r0 float64) (Vec3, error) {
	if len(thetaj) < len(rj) {
		return Vec3{}, errors.Wrapf(ErrParamLength, "environment_exploration: %d orientations for %d neighbors", len(thetaj), len(rj))
	}
	g := guard{name: "environment_exploration"}
	h := float64(hi)
	beta, _ := g.unit(ri, t)

	var gamma, heading Vec3
	for k, j := range rj {
		u, dist := g.unit(ri, j)
		gamma = r3.Add(gamma, r3.Scale((1-h)-(r0*r0)/(dist*dist), u))
		if dist <= r0 {
			sin, cos := math.Sincos(thetaj[k].Z)
			heading = r3.Add(heading, Vec3{X: cos, Y: sin})
		}
	}
	gamma = g.mean(gamma, len(rj))
	heading = g.mean(heading, len(rj))

	v := r3.Add(r3.Add(r3.Scale(h, beta), gamma), r3.Scale(h, heading))
	return v, g.err()
}
