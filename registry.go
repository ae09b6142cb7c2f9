package pyswarming

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// A BehaviorName references a behavior of the registry.
type BehaviorName string

// Registered behaviors.
const (
	BehaviorAggregation                 BehaviorName = "aggregation"
	BehaviorAlignment                   BehaviorName = "alignment"
	BehaviorRepulsion                   BehaviorName = "repulsion"
	BehaviorTarget                      BehaviorName = "target"
	BehaviorGeofencing                  BehaviorName = "geofencing"
	BehaviorCollisionAvoidance          BehaviorName = "collision_avoidance"
	BehaviorPerimeterDefense            BehaviorName = "perimeter_defense"
	BehaviorSpring                      BehaviorName = "spring"
	BehaviorInversePower                BehaviorName = "inverse_power"
	BehaviorForceLaw                    BehaviorName = "force_law"
	BehaviorRepulsiveForce              BehaviorName = "repulsive_force"
	BehaviorBodyForce                   BehaviorName = "body_force"
	BehaviorInterRobotSpacing           BehaviorName = "inter_robot_spacing"
	BehaviorLennardJones                BehaviorName = "lennard_jones"
	BehaviorDissipative                 BehaviorName = "dissipative"
	BehaviorVirtualViscosity            BehaviorName = "virtual_viscosity"
	BehaviorAreaCoverage                BehaviorName = "area_coverage"
	BehaviorCollectiveNavigation        BehaviorName = "collective_navigation"
	BehaviorFlocking                    BehaviorName = "flocking"
	BehaviorLeaderlessHeadingConsensus  BehaviorName = "leaderless_heading_consensus"
	BehaviorHeadingConsensus            BehaviorName = "heading_consensus"
	BehaviorLeaderFollowing             BehaviorName = "leader_following"
	BehaviorAttractionAlignment         BehaviorName = "attraction_alignment"
	BehaviorModifiedAttractionAlignment BehaviorName = "modified_attraction_alignment"
	BehaviorPreferredDirection          BehaviorName = "preferred_direction"
	BehaviorEnvironmentExploration      BehaviorName = "environment_exploration"
)

// An Output tells what a behavior contribution represents.
// Both kinds are summed together by the swarm.
type Output int

// Kinds of behavior outputs.
const (
	Position Output = iota
	Orientation
)

func (o Output) String() string {
	if o == Orientation {
		return "orientation"
	}
	return "position"
}

// A Neighborhood is the view an agent has of the swarm during a step.
// Neighbor slices exclude the agent itself and keep the swarm order.
type Neighborhood struct {
	Index int   // index of the focal agent
	Self  State // focal agent
	Vel   Vec3  // velocity of the focal agent

	Pos []Vec3 // neighbor positions
	Rot []Vec3 // neighbor orientations
	Vj  []Vec3 // neighbor velocities

	gradient GradientProvider
}

// scalars returns the per-agent values v without the focal agent,
// using def for agents without a value.
func (nb *Neighborhood) scalars(v []float64, def float64) []float64 {
	out := make([]float64, 0, len(nb.Pos))
	for k := 0; k <= len(nb.Pos); k++ {
		if k == nb.Index {
			continue
		}
		out = append(out, valueAt(v, k, def))
	}
	return out
}

func valueAt(v []float64, i int, def float64) float64 {
	if i < len(v) {
		return v[i]
	}
	return def
}

func flagAt(v []bool, i int) int {
	if i < len(v) && v[i] {
		return 1
	}
	return 0
}

// An Entry is a registered behavior.
type Entry struct {
	Name   BehaviorName
	Output Output
	Eval   func(nb *Neighborhood, p *Params) (Vec3, error)
}

var registry = map[BehaviorName]Entry{}

func register(name BehaviorName, out Output, eval func(nb *Neighborhood, p *Params) (Vec3, error)) {
	registry[name] = Entry{Name: name, Output: out, Eval: eval}
}

// Lookup returns the registered behavior called name.
func Lookup(name BehaviorName) (Entry, bool) {
	e, ok := registry[name]
	return e, ok
}

// Names returns the registered behavior names in lexical order.
func Names() []BehaviorName {
	names := maps.Keys(registry)
	slices.Sort(names)
	return names
}

// Check returns an error wrapping ErrUnknownBehavior for the first name
// that is not registered.
func Check(names ...BehaviorName) error {
	for _, name := range names {
		if _, ok := registry[name]; !ok {
			return errors.Wrapf(ErrUnknownBehavior, "%q", name)
		}
	}
	return nil
}

// noErr adapts behaviors that cannot fail.
func noErr(v Vec3) (Vec3, error) {
	return v, nil
}

func init() {
	register(BehaviorAggregation, Position, func(nb *Neighborhood, p *Params) (Vec3, error) {
		return Aggregation(nb.Self.Pos, nb.Pos)
	})
	register(BehaviorAlignment, Position, func(nb *Neighborhood, p *Params) (Vec3, error) {
		return Alignment(nb.Vel, nb.Vj)
	})
	register(BehaviorRepulsion, Position, func(nb *Neighborhood, p *Params) (Vec3, error) {
		return Repulsion(nb.Self.Pos, nb.Pos, p.Repulsion.Alpha, p.Repulsion.D)
	})
	register(BehaviorTarget, Position, func(nb *Neighborhood, p *Params) (Vec3, error) {
		return Target(nb.Self.Pos, p.Target.T)
	})
	register(BehaviorGeofencing, Position, func(nb *Neighborhood, p *Params) (Vec3, error) {
		return GeofencingWith(nb.gradient, nb.Self.Pos, p.Geofencing.A)
	})
	register(BehaviorCollisionAvoidance, Position, func(nb *Neighborhood, p *Params) (Vec3, error) {
		return CollisionAvoidance(nb.Self.Pos, nb.Pos)
	})
	register(BehaviorPerimeterDefense, Position, func(nb *Neighborhood, p *Params) (Vec3, error) {
		return PerimeterDefense(nb.Self.Pos, nb.Pos)
	})
	register(BehaviorSpring, Position, func(nb *Neighborhood, p *Params) (Vec3, error) {
		return Spring(nb.Self.Pos, nb.Pos, p.Spring.K, p.Spring.L)
	})
	register(BehaviorInversePower, Position, func(nb *Neighborhood, p *Params) (Vec3, error) {
		return InversePower(nb.Self.Pos, nb.Pos, p.InversePower.C, p.InversePower.Sigma)
	})
	register(BehaviorForceLaw, Position, func(nb *Neighborhood, p *Params) (Vec3, error) {
		q := p.ForceLaw
		mi := valueAt(q.Masses, nb.Index, 1)
		return ForceLaw(nb.Self.Pos, nb.Pos, q.G, mi, nb.scalars(q.Masses, 1), q.P)
	})
	register(BehaviorRepulsiveForce, Position, func(nb *Neighborhood, p *Params) (Vec3, error) {
		q := p.RepulsiveForce
		Ri := valueAt(q.Radii, nb.Index, q.Radius)
		return RepulsiveForce(nb.Self.Pos, nb.Pos, q.A, q.B, Ri, nb.scalars(q.Radii, q.Radius))
	})
	register(BehaviorBodyForce, Position, func(nb *Neighborhood, p *Params) (Vec3, error) {
		q := p.BodyForce
		Ri := valueAt(q.Radii, nb.Index, q.Radius)
		return BodyForce(nb.Self.Pos, nb.Pos, q.Lambda, Ri, nb.scalars(q.Radii, q.Radius))
	})
	register(BehaviorInterRobotSpacing, Position, func(nb *Neighborhood, p *Params) (Vec3, error) {
		return InterRobotSpacing(nb.Self.Pos, nb.Pos, p.InterRobotSpacing.Alpha, p.InterRobotSpacing.D0)
	})
	register(BehaviorLennardJones, Position, func(nb *Neighborhood, p *Params) (Vec3, error) {
		return LennardJones(nb.Self.Pos, nb.Pos, p.LennardJones.Epsilon, p.LennardJones.Sigma)
	})
	register(BehaviorDissipative, Position, func(nb *Neighborhood, p *Params) (Vec3, error) {
		return noErr(Dissipative(nb.Vel, p.Dissipative.Vd, p.Dissipative.A))
	})
	register(BehaviorVirtualViscosity, Position, func(nb *Neighborhood, p *Params) (Vec3, error) {
		q := p.VirtualViscosity
		return noErr(VirtualViscosity(nb.Vel, q.Xi, q.XiDot, q.XiConv, q.XiStab))
	})
	register(BehaviorAreaCoverage, Position, func(nb *Neighborhood, p *Params) (Vec3, error) {
		q := p.AreaCoverage
		return areaCoverage(nb.gradient, nb.Self.Pos, nb.Pos, q.A, q.Alpha, q.D)
	})
	register(BehaviorCollectiveNavigation, Position, func(nb *Neighborhood, p *Params) (Vec3, error) {
		q := p.CollectiveNavigation
		return CollectiveNavigation(nb.Self.Pos, nb.Pos, q.T, q.Alpha, q.D)
	})
	register(BehaviorFlocking, Position, func(nb *Neighborhood, p *Params) (Vec3, error) {
		return Flocking(nb.Self.Pos, nb.Pos, nb.Vel, nb.Vj, p.Flocking.Alpha, p.Flocking.D)
	})

	register(BehaviorLeaderlessHeadingConsensus, Orientation, func(nb *Neighborhood, p *Params) (Vec3, error) {
		return noErr(LeaderlessHeadingConsensus(nb.Self.Rot, nb.Rot))
	})
	register(BehaviorHeadingConsensus, Orientation, func(nb *Neighborhood, p *Params) (Vec3, error) {
		return noErr(HeadingConsensus(nb.Self.Rot, nb.Rot))
	})
	register(BehaviorLeaderFollowing, Orientation, func(nb *Neighborhood, p *Params) (Vec3, error) {
		q := p.LeaderFollowing
		return noErr(LeaderFollowing(nb.Self.Rot, nb.Rot, q.Theta0, flagAt(q.Informed, nb.Index)))
	})
	register(BehaviorAttractionAlignment, Orientation, func(nb *Neighborhood, p *Params) (Vec3, error) {
		return AttractionAlignment(nb.Self.Pos, nb.Pos, nb.Rot)
	})
	register(BehaviorModifiedAttractionAlignment, Orientation, func(nb *Neighborhood, p *Params) (Vec3, error) {
		hj := nb.scalars(p.ModifiedAttractionAlignment.Importance, 1)
		return ModifiedAttractionAlignment(nb.Self.Pos, nb.Pos, nb.Rot, hj)
	})
	register(BehaviorPreferredDirection, Orientation, func(nb *Neighborhood, p *Params) (Vec3, error) {
		return PreferredDirection(nb.Self.Rot, p.PreferredDirection.K, p.PreferredDirection.W)
	})
	register(BehaviorEnvironmentExploration, Position, func(nb *Neighborhood, p *Params) (Vec3, error) {
		q := p.EnvironmentExploration
		return EnvironmentExploration(nb.Self.Pos, nb.Pos, nb.Rot, flagAt(q.Seeking, nb.Index), q.T, q.R0)
	})
}
