package pyswarming

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newSwarm(t *testing.T, n int, behaviors []BehaviorName, opts ...Option) *Swarm {
	t.Helper()
	s, err := New(Config{
		N:           n,
		LinearSpeed: 1,
		Dt:          1,
		Behaviors:   behaviors,
	}, append([]Option{WithLogger(zap.NewNop())}, opts...)...)
	require.NoError(t, err)
	return s
}

func squarePose() [][6]float64 {
	var rows [][6]float64
	for _, p := range square() {
		rows = append(rows, State{Pos: p}.Row())
	}
	return rows
}

func assertRows(t *testing.T, want, got [][6]float64) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		for k := range want[i] {
			assert.InDeltaf(t, want[i][k], got[i][k], 1e-6, "agent %d column %d", i, k)
		}
	}
}

func TestNewSwarmSize(t *testing.T) {
	for _, n := range []int{-1, 0, 1} {
		_, err := New(Config{N: n})
		assert.ErrorIs(t, err, ErrSwarmSize, "n = %d", n)
	}
	s, err := New(Config{N: 2})
	require.NoError(t, err)
	assert.Len(t, s.Pose(), 2)
	assert.Equal(t, 2, s.Dimensions)
}

func TestNewFixedDeployment(t *testing.T) {
	s, err := New(Config{
		N: 4,
		Deployment: Deployment{
			Position:    Limits{{X: 3, Y: -2, Z: 9}, Splat(100)},
			Orientation: Limits{{X: 1, Y: 1, Z: 0.5}, Splat(100)},
		},
	})
	require.NoError(t, err)
	for _, row := range s.Pose() {
		assert.Equal(t, [6]float64{3, -2, 0, 0, 0, 0.5}, row)
	}
}

func TestNewSeeded(t *testing.T) {
	conf := Config{
		N: 6,
		Deployment: Deployment{
			Position:     Limits{Splat(-10), Splat(10)},
			Orientation:  Limits{Splat(-math.Pi), Splat(math.Pi)},
			Distribution: Uniform,
		},
	}
	a, err := New(conf, WithSeed(11))
	require.NoError(t, err)
	b, err := New(conf, WithSeed(11))
	require.NoError(t, err)
	assert.Equal(t, a.Pose(), b.Pose())
}

func TestInitialVelocities(t *testing.T) {
	s, err := New(Config{
		N:           2,
		LinearSpeed: 2,
		Deployment:  Deployment{Orientation: Limits{{Z: math.Pi / 2}, {}}},
	})
	require.NoError(t, err)
	for _, v := range s.Velocities() {
		assert.InDelta(t, 0, v.X, 1e-12)
		assert.InDelta(t, 2, v.Y, 1e-12)
	}
}

func TestRunZeroFrames(t *testing.T) {
	s := newSwarm(t, 4, []BehaviorName{BehaviorAggregation})
	require.NoError(t, s.SetPose(squarePose()))
	assert.Equal(t, squarePose(), s.Run(0))
	assert.Zero(t, s.Tick())
}

func TestStepAggregation(t *testing.T) {
	s := newSwarm(t, 4, []BehaviorName{BehaviorAggregation})
	require.NoError(t, s.SetPose(squarePose()))
	s.Step()

	assertRows(t, [][6]float64{
		{7.2978281198, 7.3002146842, 0, 0, 0, 0.7855616486},
		{-7.2923780630, 7.2947754686, 0, 0, 0, 2.3560301397},
		{7.2923780630, -7.2947754686, 0, 0, 0, -0.7855625139},
		{-7.2978281198, -7.3002146842, 0, 0, 0, -2.3560310050},
	}, s.Pose())
	assert.Equal(t, 1, s.Tick())

	// velocities follow the displacement in the plane
	before := square()
	for i, v := range s.Velocities() {
		p := s.States()[i].Pos
		assert.InDeltaf(t, p.X-before[i].X, v.X, 1e-9, "agent %d", i)
		assert.InDeltaf(t, p.Y-before[i].Y, v.Y, 1e-9, "agent %d", i)
		assert.InDeltaf(t, -before[i].Z, v.Z, 1e-9, "agent %d", i)
	}
}

func TestStepStaysInPlane(t *testing.T) {
	s := newSwarm(t, 2, []BehaviorName{BehaviorTarget})
	s.Params.Target.T = Vec3{X: 30, Y: 30, Z: 30}
	require.NoError(t, s.SetPose([][6]float64{{}, {5, 0}}))
	for k := 0; k < 5; k++ {
		s.Step()
		for _, st := range s.States() {
			assert.Zero(t, st.Pos.Z)
		}
	}
}

func TestStepMisconfiguredBehavior(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	s := newSwarm(t, 4, []BehaviorName{BehaviorInversePower}, WithLogger(zap.New(core)))
	s.Params.InversePower.C = []float64{1, -1, 2}
	require.NoError(t, s.SetPose(squarePose()))

	s.Step()
	for i, row := range s.Pose() {
		for k, x := range row {
			assert.Falsef(t, math.IsNaN(x) || math.IsInf(x, 0), "agent %d column %d: %v", i, k, x)
		}
	}
	assert.Equal(t, squarePose(), s.Pose())

	entries := logs.FilterMessage("behavior left out").All()
	require.Len(t, entries, 4)
	assert.Equal(t, "inverse_power", entries[0].ContextMap()["behavior"])

	// the other behaviors still apply
	s.Behaviors = append(s.Behaviors, BehaviorAggregation)
	s.Step()
	assert.NotEqual(t, squarePose(), s.Pose())
	for _, row := range s.Pose() {
		assert.False(t, math.IsNaN(row[0]))
	}
}

func TestNewUnseeded(t *testing.T) {
	conf := Config{
		N: 6,
		Deployment: Deployment{
			Position:     Limits{Splat(-10), Splat(10)},
			Distribution: Uniform,
		},
	}
	a, err := New(conf)
	require.NoError(t, err)
	time.Sleep(time.Millisecond)
	b, err := New(conf)
	require.NoError(t, err)
	assert.NotEqual(t, a.Pose(), b.Pose())
}

func TestRunSeededDeterministic(t *testing.T) {
	run := func() [][6]float64 {
		s, err := New(Config{
			N:           8,
			LinearSpeed: 0.5,
			Dt:          0.1,
			Deployment: Deployment{
				Position:     Limits{Splat(-10), Splat(10)},
				Orientation:  Limits{Splat(-math.Pi), Splat(math.Pi)},
				Distribution: Gaussian,
			},
			Behaviors: []BehaviorName{BehaviorAggregation, BehaviorRepulsion, BehaviorLeaderlessHeadingConsensus},
		}, WithSeed(2024))
		require.NoError(t, err)
		return s.Run(25)
	}
	first, second := run(), run()
	assert.Equal(t, first, second)
}

func TestStepIsFrameSynchronous(t *testing.T) {
	pose := squarePose()
	a := newSwarm(t, 4, []BehaviorName{BehaviorAggregation, BehaviorRepulsion})
	require.NoError(t, a.SetPose(pose))

	reversed := make([][6]float64, len(pose))
	for i := range pose {
		reversed[len(pose)-1-i] = pose[i]
	}
	b := newSwarm(t, 4, []BehaviorName{BehaviorAggregation, BehaviorRepulsion})
	require.NoError(t, b.SetPose(reversed))

	a.Step()
	b.Step()
	got, back := a.Pose(), b.Pose()
	for i := range got {
		for k := range got[i] {
			assert.InDelta(t, got[i][k], back[len(got)-1-i][k], 1e-9)
		}
	}
}

func TestStepUnknownBehavior(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	s := newSwarm(t, 4, []BehaviorName{"spiral"}, WithLogger(zap.New(core)))
	require.NoError(t, s.SetPose(squarePose()))

	s.Step()
	assert.Equal(t, squarePose(), s.Pose())
	assert.Equal(t, 1, s.Tick())

	entries := logs.FilterMessage("behavior not found").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "spiral", entries[0].ContextMap()["behavior"])
}

func TestStepMixedUnknownBehavior(t *testing.T) {
	s := newSwarm(t, 2, []BehaviorName{"spiral", BehaviorTarget})
	s.Params.Target.T = Vec3{X: 10}
	require.NoError(t, s.SetPose([][6]float64{{}, {0, 5}}))
	s.Step()
	assertRows(t, [][6]float64{{1, 0, 0, 0, 0, 0}}, s.Pose()[:1])
}

func TestStepStrict(t *testing.T) {
	pose := [][6]float64{{}, {}, {5, 0, 0, 0, 0, 1}}
	core, logs := observer.New(zapcore.DebugLevel)

	strict := newSwarm(t, 3, []BehaviorName{BehaviorAggregation}, WithStrict(true), WithLogger(zap.New(core)))
	require.NoError(t, strict.SetPose(pose))
	strict.Step()
	got := strict.Pose()
	assert.Equal(t, pose[0], got[0])
	assert.Equal(t, pose[1], got[1])
	assertRows(t, [][6]float64{{4, 0, 0, 0, 0, 0}}, got[2:])
	assert.Len(t, logs.FilterMessage("agent skipped").All(), 2)

	permissive := newSwarm(t, 3, []BehaviorName{BehaviorAggregation})
	require.NoError(t, permissive.SetPose(pose))
	permissive.Step()
	got = permissive.Pose()
	assert.True(t, math.IsNaN(got[0][0]))
	assert.True(t, math.IsNaN(got[1][0]))
	assertRows(t, [][6]float64{{4, 0, 0, 0, 0, 0}}, got[2:])
}

func TestStepLiveParams(t *testing.T) {
	s := newSwarm(t, 2, []BehaviorName{BehaviorTarget})
	s.Params.Target.T = Vec3{X: 10}
	require.NoError(t, s.SetPose([][6]float64{{}, {0, -5}}))

	d := s.Driver()
	pose := d.Next()
	assert.InDelta(t, 1, pose[0][0], 1e-12)
	assert.InDelta(t, 0, pose[0][1], 1e-12)

	s.Params.Target.T = Vec3{X: 1, Y: 10}
	pose = d.Next()
	assert.InDelta(t, 1, pose[0][0], 1e-12)
	assert.InDelta(t, 1, pose[0][1], 1e-12)
	assert.InDelta(t, math.Pi/4, pose[0][5], 1e-12)
	assert.Equal(t, 2, d.Frame())
}

func TestStepLiveBehaviors(t *testing.T) {
	s := newSwarm(t, 4, nil)
	require.NoError(t, s.SetPose(squarePose()))
	s.Step()
	assert.Equal(t, squarePose(), s.Pose())

	s.Behaviors = append(s.Behaviors, BehaviorAggregation)
	s.Step()
	assert.NotEqual(t, squarePose(), s.Pose())
}

func TestStepVelocity(t *testing.T) {
	s, err := New(Config{N: 2, LinearSpeed: 3, Dt: 0.5, Behaviors: []BehaviorName{BehaviorTarget}})
	require.NoError(t, err)
	s.Params.Target.T = Vec3{Y: 10}
	require.NoError(t, s.SetPose([][6]float64{{}, {1, 0}}))
	s.Step()

	v := s.Velocities()[0]
	assert.InDelta(t, 0, v.X, 1e-12)
	assert.InDelta(t, 3, v.Y, 1e-12)
	assert.InDelta(t, 1.5, s.Pose()[0][1], 1e-12)
}

func TestSetPoseShape(t *testing.T) {
	s := newSwarm(t, 3, nil)
	err := s.SetPose(squarePose())
	assert.ErrorIs(t, err, ErrPoseShape)
}

func TestAnimate(t *testing.T) {
	s := newSwarm(t, 4, []BehaviorName{BehaviorAggregation})
	require.NoError(t, s.SetPose(squarePose()))
	require.NoError(t, s.Animate(fixedFrames(3)))
	assert.Equal(t, 3, s.Tick())
}

// fixedFrames is a renderer stepping a fixed number of times.
type fixedFrames int

func (f fixedFrames) Run(s *Swarm, step func()) error {
	for k := 0; k < int(f); k++ {
		step()
	}
	return nil
}

func TestRegistry(t *testing.T) {
	names := []BehaviorName{
		BehaviorAggregation, BehaviorAlignment, BehaviorRepulsion, BehaviorTarget,
		BehaviorGeofencing, BehaviorCollisionAvoidance, BehaviorPerimeterDefense,
		BehaviorSpring, BehaviorInversePower, BehaviorForceLaw, BehaviorRepulsiveForce,
		BehaviorBodyForce, BehaviorInterRobotSpacing, BehaviorLennardJones,
		BehaviorDissipative, BehaviorVirtualViscosity, BehaviorAreaCoverage,
		BehaviorCollectiveNavigation, BehaviorFlocking,
		BehaviorLeaderlessHeadingConsensus, BehaviorHeadingConsensus,
		BehaviorLeaderFollowing, BehaviorAttractionAlignment,
		BehaviorModifiedAttractionAlignment, BehaviorPreferredDirection,
		BehaviorEnvironmentExploration,
	}
	for _, name := range names {
		t.Run(string(name), func(t *testing.T) {
			e, ok := Lookup(name)
			require.True(t, ok)
			assert.Equal(t, name, e.Name)

			// every behavior runs on a well-spread swarm
			s := newSwarm(t, 4, []BehaviorName{name})
			require.NoError(t, s.SetPose(squarePose()))
			s.Step()
			assert.Equal(t, 1, s.Tick())
		})
	}
	_, ok := Lookup("spiral")
	assert.False(t, ok)
	assert.Equal(t, "orientation", Orientation.String())
	assert.Equal(t, "position", Position.String())
}

func TestNeighborhoodScalars(t *testing.T) {
	nb := &Neighborhood{Index: 1, Pos: make([]Vec3, 3)}
	assert.Equal(t, []float64{10, 30, 7}, nb.scalars([]float64{10, 20, 30}, 7))
}

func TestCheck(t *testing.T) {
	assert.NoError(t, Check(BehaviorTarget, BehaviorFlocking))
	err := Check(BehaviorTarget, "spiral")
	assert.ErrorIs(t, err, ErrUnknownBehavior)
	assert.Contains(t, err.Error(), "spiral")

	names := Names()
	assert.Len(t, names, 26)
	assert.Equal(t, BehaviorAggregation, names[0])
}
