package pyswarming

// RepulsionParams are the parameters of Repulsion.
type RepulsionParams struct {
	Alpha float64 // strength
	D     float64 // multipole order
}

// TargetParams are the parameters of Target.
type TargetParams struct {
	T Vec3 // target position
}

// GeofencingParams are the parameters of Geofencing.
type GeofencingParams struct {
	A Field // region of interest
}

// SpringParams are the parameters of Spring.
type SpringParams struct {
	K float64 // stiffness
	L float64 // rest length
}

// InversePowerParams are the parameters of InversePower.
type InversePowerParams struct {
	C     []float64 // coefficient of each law
	Sigma []float64 // exponent of each law
}

// ForceLawParams are the parameters of ForceLaw.
type ForceLawParams struct {
	G      float64
	P      float64   // distance exponent
	Masses []float64 // mass of each agent by index, 1 if missing
}

// RepulsiveForceParams are the parameters of RepulsiveForce.
type RepulsiveForceParams struct {
	A, B   float64
	Radius float64   // radius of agents missing from Radii
	Radii  []float64 // radius of each agent by index
}

// BodyForceParams are the parameters of BodyForce.
type BodyForceParams struct {
	Lambda float64
	Radius float64   // radius of agents missing from Radii
	Radii  []float64 // radius of each agent by index
}

// InterRobotSpacingParams are the parameters of InterRobotSpacing.
type InterRobotSpacingParams struct {
	Alpha float64
	D0    float64 // desired spacing
}

// LennardJonesParams are the parameters of LennardJones.
type LennardJonesParams struct {
	Epsilon float64
	Sigma   float64
}

// DissipativeParams are the parameters of Dissipative.
type DissipativeParams struct {
	Vd Vec3 // desired velocity
	A  float64
}

// VirtualViscosityParams are the parameters of VirtualViscosity.
type VirtualViscosityParams struct {
	Xi     float64
	XiDot  bool
	XiConv float64
	XiStab float64
}

// AreaCoverageParams are the parameters of AreaCoverage.
type AreaCoverageParams struct {
	A     Field
	Alpha float64
	D     float64
}

// CollectiveNavigationParams are the parameters of CollectiveNavigation.
type CollectiveNavigationParams struct {
	T     Vec3
	Alpha float64
	D     float64
}

// FlockingParams are the parameters of Flocking.
type FlockingParams struct {
	Alpha float64
	D     float64
}

// LeaderFollowingParams are the parameters of LeaderFollowing.
type LeaderFollowingParams struct {
	Theta0   Vec3   // leader orientation
	Informed []bool // agents that see the leader, by index
}

// ModifiedAttractionAlignmentParams are the parameters of ModifiedAttractionAlignment.
type ModifiedAttractionAlignmentParams struct {
	Importance []float64 // social importance of each agent by index, 1 if missing
}

// PreferredDirectionParams are the parameters of PreferredDirection.
type PreferredDirectionParams struct {
	K Vec3 // preferred direction
	W float64
}

// EnvironmentExplorationParams are the parameters of EnvironmentExploration.
type EnvironmentExplorationParams struct {
	Seeking []bool // agents heading to the target, by index
	T       Vec3
	R0      float64
}

// Params holds the tunable parameters of every registered behavior.
// A swarm reads them at the start of each step so they can be changed
// between steps.
type Params struct {
	Repulsion                   RepulsionParams
	Target                      TargetParams
	Geofencing                  GeofencingParams
	Spring                      SpringParams
	InversePower                InversePowerParams
	ForceLaw                    ForceLawParams
	RepulsiveForce              RepulsiveForceParams
	BodyForce                   BodyForceParams
	InterRobotSpacing           InterRobotSpacingParams
	LennardJones                LennardJonesParams
	Dissipative                 DissipativeParams
	VirtualViscosity            VirtualViscosityParams
	AreaCoverage                AreaCoverageParams
	CollectiveNavigation        CollectiveNavigationParams
	Flocking                    FlockingParams
	LeaderFollowing             LeaderFollowingParams
	ModifiedAttractionAlignment ModifiedAttractionAlignmentParams
	PreferredDirection          PreferredDirectionParams
	EnvironmentExploration      EnvironmentExplorationParams
}

// DefaultParams returns the default parameters of a new swarm.
func DefaultParams() *Params {
	region := Sphere(Vec3{}, 10)
	return &Params{
		Repulsion:            RepulsionParams{Alpha: 10, D: 2},
		Target:               TargetParams{T: Vec3{X: 30, Y: 30, Z: 30}},
		Geofencing:           GeofencingParams{A: region},
		Spring:               SpringParams{K: 10, L: 5},
		InversePower:         InversePowerParams{C: []float64{1, -1}, Sigma: []float64{1, 2}},
		ForceLaw:             ForceLawParams{G: 10, P: 2},
		RepulsiveForce:       RepulsiveForceParams{A: 10, B: 100, Radius: 5},
		BodyForce:            BodyForceParams{Lambda: 0.1, Radius: 20},
		InterRobotSpacing:    InterRobotSpacingParams{Alpha: 1, D0: 5},
		LennardJones:         LennardJonesParams{Epsilon: 1, Sigma: 1.2},
		Dissipative:          DissipativeParams{Vd: Splat(4), A: 1},
		VirtualViscosity:     VirtualViscosityParams{Xi: 0.2, XiConv: 0.5, XiStab: 0.7},
		AreaCoverage:         AreaCoverageParams{A: region, Alpha: 10, D: 2},
		CollectiveNavigation: CollectiveNavigationParams{T: Vec3{X: 30, Y: 30, Z: 30}, Alpha: 10, D: 2},
		Flocking:             FlockingParams{Alpha: 10, D: 2},
		LeaderFollowing:      LeaderFollowingParams{Theta0: Vec3{Z: 0.78}},
		PreferredDirection:   PreferredDirectionParams{K: Vec3{X: 1}, W: 1},
		EnvironmentExploration: EnvironmentExplorationParams{
			T:  Vec3{},
			R0: 2,
		},
	}
}
