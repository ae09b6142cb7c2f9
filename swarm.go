package pyswarming

import (
	"math"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/spatial/r3"
)

// Config holds the construction parameters of a swarm.
type Config struct {
	N           int     // number of agents, must be greater than 1
	LinearSpeed float64 // speed of every agent
	Dt          float64 // duration of a step
	Deployment  Deployment
	Behaviors   []BehaviorName // selected behaviors, in order
}

// An Option configures a swarm.
type Option func(*Swarm)

// WithLogger sets the logger of the swarm.
func WithLogger(log *zap.Logger) Option {
	return func(s *Swarm) { s.log = log }
}

// WithSeed seeds the random source used for deployment.
// Without it the source is seeded from the clock.
func WithSeed(seed uint64) Option {
	return func(s *Swarm) { s.src = rand.NewSource(seed) }
}

// WithSource sets the random source used for deployment.
func WithSource(src rand.Source) Option {
	return func(s *Swarm) { s.src = src }
}

// WithStrict makes degenerate geometry an error. A faulty agent keeps its
// pose for the step while other agents move on. Without it, NaN and Inf
// values propagate to the pose table.
func WithStrict(strict bool) Option {
	return func(s *Swarm) { s.strict = strict }
}

// WithGradient sets the gradient provider of geofencing behaviors.
func WithGradient(gp GradientProvider) Option {
	return func(s *Swarm) { s.gradient = gp }
}

// A Swarm is a population of agents moving under a selection of behaviors.
type Swarm struct {
	N           int
	LinearSpeed float64
	Dt          float64
	Dimensions  int
	Deployment  Deployment

	// Behaviors and Params may be changed between steps.
	Behaviors []BehaviorName
	Params    *Params

	pose []State
	vel  []Vec3
	tick int

	strict   bool
	log      *zap.Logger
	gradient GradientProvider
	src      rand.Source
}

// New deploys a swarm.
func New(conf Config, opts ...Option) (*Swarm, error) {
	if conf.N <= 1 {
		return nil, errors.Wrapf(ErrSwarmSize, "got %d", conf.N)
	}
	s := &Swarm{
		N:           conf.N,
		LinearSpeed: conf.LinearSpeed,
		Dt:          conf.Dt,
		Dimensions:  2,
		Deployment:  conf.Deployment,
		Behaviors:   append([]BehaviorName(nil), conf.Behaviors...),
		Params:      DefaultParams(),
		log:         zap.NewNop(),
		gradient:    DefaultGradient,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.src == nil {
		s.src = rand.NewSource(uint64(time.Now().UnixNano()))
	}
	s.pose = s.Deployment.sample(s.N, s.src)
	s.vel = s.headings(s.pose)
	s.log.Debug("swarm deployed",
		zap.Int("n", s.N),
		zap.Stringer("distribution", s.Deployment.Distribution),
		zap.Any("behaviors", s.Behaviors))
	return s, nil
}

// headings returns velocities of norm LinearSpeed along the yaw of each agent.
func (s *Swarm) headings(pose []State) []Vec3 {
	vel := make([]Vec3, len(pose))
	for i, p := range pose {
		sin, cos := math.Sincos(p.Rot.Z)
		vel[i] = Vec3{X: s.LinearSpeed * cos, Y: s.LinearSpeed * sin}
	}
	return vel
}

// Tick returns the number of steps run so far.
func (s *Swarm) Tick() int {
	return s.tick
}

// States returns a copy of the agent poses.
func (s *Swarm) States() []State {
	return append([]State(nil), s.pose...)
}

// Velocities returns a copy of the agent velocities.
func (s *Swarm) Velocities() []Vec3 {
	return append([]Vec3(nil), s.vel...)
}

// Pose returns the pose table: one row of x, y, z, roll, pitch, yaw per agent.
func (s *Swarm) Pose() [][6]float64 {
	t := make([][6]float64, len(s.pose))
	for i, p := range s.pose {
		t[i] = p.Row()
	}
	return t
}

// SetPose replaces the pose table. Velocities are reset along the new yaws.
func (s *Swarm) SetPose(t [][6]float64) error {
	if len(t) != s.N {
		return errors.Wrapf(ErrPoseShape, "got %d rows for %d agents", len(t), s.N)
	}
	pose := make([]State, len(t))
	for i, r := range t {
		pose[i] = StateFromRow(r)
	}
	s.pose = pose
	s.vel = s.headings(pose)
	return nil
}

// resolve looks up the selected behaviors. Unknown names are logged and skipped.
func (s *Swarm) resolve() []Entry {
	entries := make([]Entry, 0, len(s.Behaviors))
	for _, name := range s.Behaviors {
		e, ok := Lookup(name)
		if !ok {
			s.log.Warn("behavior not found", zap.String("behavior", string(name)), zap.Int("tick", s.tick))
			continue
		}
		entries = append(entries, e)
	}
	return entries
}

// neighborhood returns the view of agent i on the snapshot.
func (s *Swarm) neighborhood(i int, pose []State, vel []Vec3, pos, rot []Vec3) *Neighborhood {
	return &Neighborhood{
		Index:    i,
		Self:     pose[i],
		Vel:      vel[i],
		Pos:      others(pos, i),
		Rot:      others(rot, i),
		Vj:       others(vel, i),
		gradient: s.gradient,
	}
}

// Step runs a single simulation step.
//
// Every agent is updated from the poses at the start of the step. The
// contributions of its selected behaviors are summed and normalized into a
// heading, and the agent moves by LinearSpeed·Dt along it. Its yaw is then
// set to the bearing of its new position seen from the origin. In two
// dimensions z stays at 0. An agent without any contribution does not move.
func (s *Swarm) Step() {
	snap := s.pose
	vel := s.vel
	params := *s.Params
	entries := s.resolve()

	pos := make([]Vec3, len(snap))
	rot := make([]Vec3, len(snap))
	for i, p := range snap {
		pos[i], rot[i] = p.Pos, p.Rot
	}

	next := append([]State(nil), snap...)
	nextVel := append([]Vec3(nil), vel...)
	if len(entries) > 0 {
		for i := range snap {
			nb := s.neighborhood(i, snap, vel, pos, rot)
			move, ok, err := s.contribution(nb, entries, &params)
			if !ok {
				continue
			}
			if err != nil && s.strict {
				s.log.Debug("agent skipped", zap.Int("agent", i), zap.Int("tick", s.tick), zap.Error(err))
				continue
			}
			next[i].Pos = r3.Add(snap[i].Pos, move)
			if s.Dimensions == 2 {
				next[i].Pos.Z = 0
			}
			next[i].Rot.Z = math.Atan2(next[i].Pos.Y, next[i].Pos.X)
			if s.Dt != 0 {
				nextVel[i] = r3.Scale(1/s.Dt, r3.Sub(next[i].Pos, snap[i].Pos))
			}
		}
	}

	s.pose = next
	s.vel = nextVel
	s.tick++
}

// contribution returns the displacement of an agent for the current step.
// Behaviors failing for another reason than degenerate geometry are logged
// and left out. ok is false when no behavior contributed.
func (s *Swarm) contribution(nb *Neighborhood, entries []Entry, p *Params) (Vec3, bool, error) {
	var sum Vec3
	var errs error
	var ok bool
	for _, e := range entries {
		v, err := e.Eval(nb, p)
		if err != nil && !errors.Is(err, ErrDegenerateGeometry) {
			s.log.Warn("behavior left out",
				zap.String("behavior", string(e.Name)),
				zap.Int("agent", nb.Index),
				zap.Int("tick", s.tick),
				zap.Error(err))
			continue
		}
		if err != nil && errs == nil {
			errs = errors.WithMessage(err, string(e.Name))
		}
		sum = r3.Add(sum, v)
		ok = true
	}
	if !ok {
		return Vec3{}, false, nil
	}
	g := guard{name: "combined contribution"}
	u := g.normalize(sum)
	return r3.Scale(s.Dt, r3.Scale(s.LinearSpeed, u)), true, firstErr(errs, g.err())
}
