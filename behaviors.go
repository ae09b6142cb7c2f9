package pyswarming

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r3"
)

// Position-based behaviors take the position ri of the focal agent and the
// positions rj of its neighbors. Each returned vector is the IEEE result of
// the formula; the error wraps ErrDegenerateGeometry whenever a neighbor
// coincides with ri (the vector then contains Inf or NaN).

// Aggregation returns the mean of the unit vectors pointing to the neighbors.
func Aggregation(ri Vec3, rj []Vec3) (Vec3, error) {
	g := guard{name: "aggregation"}
	var sum Vec3
	for _, j := range rj {
		u, _ := g.unit(ri, j)
		sum = r3.Add(sum, u)
	}
	return g.mean(sum, len(rj)), g.err()
}

// Alignment is Aggregation applied to velocities: it returns the mean of the
// unit vectors pointing from vi to each neighbor velocity vj.
func Alignment(vi Vec3, vj []Vec3) (Vec3, error) {
	g := guard{name: "alignment"}
	var sum Vec3
	for _, j := range vj {
		u, _ := g.unit(vi, j)
		sum = r3.Add(sum, u)
	}
	return g.mean(sum, len(vj)), g.err()
}

// Repulsion returns the sum of -(α/dist)^d times the unit vector pointing
// to each neighbor. α sets the strength and d is the multipole order.
func Repulsion(ri Vec3, rj []Vec3, alpha, d float64) (Vec3, error) {
	g := guard{name: "repulsion"}
	var sum Vec3
	for _, j := range rj {
		u, dist := g.unit(ri, j)
		sum = r3.Sub(sum, r3.Scale(math.Pow(alpha, d)/math.Pow(dist, d), u))
	}
	return sum, g.err()
}

// Target returns the unit vector pointing from ri to the target t.
func Target(ri, t Vec3) (Vec3, error) {
	g := guard{name: "target"}
	u, _ := g.unit(ri, t)
	return u, g.err()
}

// CollisionAvoidance returns the sum of the unit vectors pointing away from each neighbor.
func CollisionAvoidance(ri Vec3, rj []Vec3) (Vec3, error) {
	g := guard{name: "collision_avoidance"}
	var sum Vec3
	for _, j := range rj {
		u, _ := g.unit(ri, j)
		sum = r3.Sub(sum, u)
	}
	return sum, g.err()
}

// PerimeterDefense returns the sum of (rj-ri)/dist² over the neighbors.
func PerimeterDefense(ri Vec3, rj []Vec3) (Vec3, error) {
	g := guard{name: "perimeter_defense"}
	var sum Vec3
	for _, j := range rj {
		d := r3.Sub(j, ri)
		n2 := r3.Norm2(d)
		if n2 == 0 {
			g.bad = true
		}
		sum = r3.Add(sum, r3.Scale(1/n2, d))
	}
	return sum, g.err()
}

// Spring returns the sum of the linear spring forces k(dist-l) of rest length l.
func Spring(ri Vec3, rj []Vec3, k, l float64) (Vec3, error) {
	g := guard{name: "spring"}
	var sum Vec3
	for _, j := range rj {
		u, dist := g.unit(ri, j)
		sum = r3.Add(sum, r3.Scale(k*(dist-l), u))
	}
	return sum, g.err()
}

// InversePower returns the sum of inverse power laws Σ c[w]/dist^σ[w] applied
// along the unit vector to each neighbor. The magnitude accumulates across
// neighbors: the k-th neighbor is weighted by the laws of neighbors 0 to k.
func InversePower(ri Vec3, rj []Vec3, c, sigma []float64) (Vec3, error) {
	if len(sigma) < len(c) {
		return Vec3{}, errors.Wrapf(ErrParamLength, "inverse_power: %d exponents for %d laws", len(sigma), len(c))
	}
	g := guard{name: "inverse_power"}
	var sum Vec3
	var acc float64
	for _, j := range rj {
		u, dist := g.unit(ri, j)
		for w := range c {
			acc += c[w] / math.Pow(dist, sigma[w])
		}
		sum = r3.Add(sum, r3.Scale(acc, u))
	}
	return sum, g.err()
}

// ForceLaw returns the sum of G·mi·mj[k]/dist^p over the neighbors.
// The law has no direction: the scalar sum is returned on all three axes.
func ForceLaw(ri Vec3, rj []Vec3, G, mi float64, mj []float64, p float64) (Vec3, error) {
	if len(mj) < len(rj) {
		return Vec3{}, errors.Wrapf(ErrParamLength, "force_law: %d masses for %d neighbors", len(mj), len(rj))
	}
	g := guard{name: "force_law"}
	var sum float64
	for k, j := range rj {
		dist := r3.Norm(r3.Sub(j, ri))
		if dist == 0 {
			g.bad = true
		}
		sum += G * mi * mj[k] / math.Pow(dist, p)
	}
	return Splat(sum), g.err()
}

// RepulsiveForce returns the sum of A·exp((R+Rj[k]+dist)/B) along the unit
// vector to each neighbor, where R and Rj are the agent radii.
func RepulsiveForce(ri Vec3, rj []Vec3, A, B, R float64, Rj []float64) (Vec3, error) {
	if len(Rj) < len(rj) {
		return Vec3{}, errors.Wrapf(ErrParamLength, "repulsive_force: %d radii for %d neighbors", len(Rj), len(rj))
	}
	g := guard{name: "repulsive_force"}
	var sum Vec3
	for k, j := range rj {
		u, dist := g.unit(ri, j)
		sum = r3.Add(sum, r3.Scale(A*math.Exp((R+Rj[k]+dist)/B), u))
	}
	return sum, g.err()
}

// BodyForce returns the sum of λ·h along the unit vector to each neighbor,
// where h is R+Rj[k]+dist when the bodies overlap and 0 otherwise.
func BodyForce(ri Vec3, rj []Vec3, lambda, R float64, Rj []float64) (Vec3, error) {
	if len(Rj) < len(rj) {
		return Vec3{}, errors.Wrapf(ErrParamLength, "body_force: %d radii for %d neighbors", len(Rj), len(rj))
	}
	g := guard{name: "body_force"}
	var sum Vec3
	for k, j := range rj {
		u, dist := g.unit(ri, j)
		var h float64
		if dist <= R+Rj[k] {
			h = R + Rj[k] + dist
		}
		sum = r3.Add(sum, r3.Scale(lambda*h, u))
	}
	return sum, g.err()
}

// InterRobotSpacing returns the sum of α(1/dist - d0/dist²) along the unit
// vector to each neighbor. Agents settle at distance d0 from each other.
func InterRobotSpacing(ri Vec3, rj []Vec3, alpha, d0 float64) (Vec3, error) {
	g := guard{name: "inter_robot_spacing"}
	var sum Vec3
	for _, j := range rj {
		u, dist := g.unit(ri, j)
		sum = r3.Add(sum, r3.Scale(alpha*(1/dist-d0/(dist*dist)), u))
	}
	return sum, g.err()
}

// LennardJones returns the mean Lennard-Jones force
// 12ε/dist·((σ/dist)^12 - (σ/dist)^6) along the unit vector to each neighbor.
func LennardJones(ri Vec3, rj []Vec3, epsilon, sigma float64) (Vec3, error) {
	g := guard{name: "lennard_jones"}
	var sum Vec3
	for _, j := range rj {
		u, dist := g.unit(ri, j)
		s := sigma / dist
		sum = r3.Add(sum, r3.Scale(12*epsilon/dist*(math.Pow(s, 12)-math.Pow(s, 6)), u))
	}
	return g.mean(sum, len(rj)), g.err()
}

// Dissipative returns -a(vi-vd), driving velocity vi to the desired velocity vd.
// Use Splat for a scalar desired velocity.
func Dissipative(vi, vd Vec3, a float64) Vec3 {
	return r3.Scale(-a, r3.Sub(vi, vd))
}

// VirtualViscosity returns -ξ·vi. When xiDot is set, ξ is first replaced by
// xiConv·exp(-ξ/2) while ξ < xiStab, and by 0 once it has stabilized.
func VirtualViscosity(vi Vec3, xi float64, xiDot bool, xiConv, xiStab float64) Vec3 {
	if xiDot {
		if xi < xiStab {
			xi = xiConv * math.Exp(-xi/2)
		} else {
			xi = 0
		}
	}
	return r3.Scale(-xi, vi)
}
