package pyswarming

import "gonum.org/v1/gonum/spatial/r3"

// AreaCoverage spreads agents over the region of field A:
// Geofencing plus Repulsion.
func AreaCoverage(ri Vec3, rj []Vec3, A Field, alpha, d float64) (Vec3, error) {
	return areaCoverage(DefaultGradient, ri, rj, A, alpha, d)
}

func areaCoverage(gp GradientProvider, ri Vec3, rj []Vec3, A Field, alpha, d float64) (Vec3, error) {
	g, gerr := GeofencingWith(gp, ri, A)
	r, rerr := Repulsion(ri, rj, alpha, d)
	return r3.Add(g, r), firstErr(gerr, rerr)
}

// CollectiveNavigation drives agents to target t while keeping them apart:
// Target plus Repulsion.
func CollectiveNavigation(ri Vec3, rj []Vec3, t Vec3, alpha, d float64) (Vec3, error) {
	tg, terr := Target(ri, t)
	r, rerr := Repulsion(ri, rj, alpha, d)
	return r3.Add(tg, r), firstErr(terr, rerr)
}

// Flocking is Aggregation plus Repulsion plus Alignment.
func Flocking(ri Vec3, rj []Vec3, vi Vec3, vj []Vec3, alpha, d float64) (Vec3, error) {
	a, aerr := Aggregation(ri, rj)
	r, rerr := Repulsion(ri, rj, alpha, d)
	al, alerr := Alignment(vi, vj)
	return r3.Add(r3.Add(a, r), al), firstErr(aerr, rerr, alerr)
}
