package hdf5

import (
	"path/filepath"
	"testing"

	"github.com/mrsonandrade/pyswarming"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newSwarm(t *testing.T) *pyswarming.Swarm {
	s, err := pyswarming.New(pyswarming.Config{
		N:           5,
		LinearSpeed: 1,
		Dt:          0.1,
		Deployment: pyswarming.Deployment{
			Position:     pyswarming.Limits{pyswarming.Splat(-5), pyswarming.Splat(5)},
			Distribution: pyswarming.Uniform,
		},
		Behaviors: []pyswarming.BehaviorName{pyswarming.BehaviorAggregation, pyswarming.BehaviorRepulsion},
	}, pyswarming.WithSeed(1), pyswarming.WithLogger(zap.NewNop()))
	require.NoError(t, err)
	return s
}

func TestRecordAndLoad(t *testing.T) {
	const steps = 4
	output := filepath.Join(t.TempDir(), "out", "swarm.h5")

	// expected frames from an identical swarm
	ref := newSwarm(t)
	var want [][][6]float64
	for k := 0; k < steps; k++ {
		want = append(want, ref.Pose())
		ref.Step()
	}

	s := newSwarm(t)
	err := Run(s, &Config{
		Output:   output,
		Steps:    steps,
		Step:     s.Step,
		Datasets: []*Dataset{PoseDataset(s.N), VelocityDataset(s.N)},
	})
	require.NoError(t, err)
	assert.Equal(t, steps, s.Tick())

	l, err := NewLoader(output, "pose")
	require.NoError(t, err)
	defer l.Close()
	assert.Equal(t, steps, l.Frames())

	var pose [][6]float64
	for k := 0; k < steps+1; k++ {
		require.NoError(t, l.Load(&pose))
		assert.Equal(t, want[k%steps], pose, "frame %d", k)
	}
}

func TestLoaderBadDataset(t *testing.T) {
	output := filepath.Join(t.TempDir(), "swarm.h5")
	s := newSwarm(t)
	require.NoError(t, Run(s, &Config{
		Output:   output,
		Steps:    1,
		Step:     s.Step,
		Datasets: []*Dataset{VelocityDataset(s.N)},
	}))

	_, err := NewLoader(output, "velocity")
	assert.Error(t, err)
	_, err = NewLoader(output, "missing")
	assert.Error(t, err)
}
