package pyswarming

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestParseDistribution(t *testing.T) {
	tests := []struct {
		in   string
		want Distribution
	}{
		{"none", Fixed},
		{"uniform", Uniform},
		{"Gaussian", Gaussian},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := ParseDistribution(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, d)
			assert.Equal(t, tt.want.String(), distributionNames[tt.want])
		})
	}

	_, err := ParseDistribution("poisson")
	assert.ErrorIs(t, err, ErrDistribution)
	assert.Contains(t, err.Error(), "poisson")
	assert.Equal(t, "Distribution(7)", Distribution(7).String())
}

func TestSampleFixed(t *testing.T) {
	d := Deployment{
		Position:    Limits{{X: 1, Y: 2, Z: 3}, {X: 10, Y: 20, Z: 30}},
		Orientation: Limits{{X: 0.1, Y: 0.2, Z: 0.3}, {X: 1, Y: 2, Z: 3}},
	}
	for _, p := range d.sample(5, rand.NewSource(1)) {
		assert.Equal(t, State{Pos: Vec3{X: 1, Y: 2}, Rot: Vec3{Z: 0.3}}, p)
	}
}

func TestSampleUniform(t *testing.T) {
	d := Deployment{
		Position:     Limits{{X: -1, Y: 2, Z: 5}, {X: 1, Y: 3, Z: 6}},
		Orientation:  Limits{{Z: -3}, {Z: 3}},
		Distribution: Uniform,
	}
	pose := d.sample(200, rand.NewSource(42))
	require.Len(t, pose, 200)
	for _, p := range pose {
		assert.True(t, p.Pos.X >= -1 && p.Pos.X <= 1, "x out of bounds: %v", p.Pos.X)
		assert.True(t, p.Pos.Y >= 2 && p.Pos.Y <= 3, "y out of bounds: %v", p.Pos.Y)
		assert.True(t, p.Rot.Z >= -3 && p.Rot.Z <= 3, "yaw out of bounds: %v", p.Rot.Z)
		assert.Zero(t, p.Pos.Z)
		assert.Zero(t, p.Rot.X)
		assert.Zero(t, p.Rot.Y)
	}
}

func TestSampleGaussian(t *testing.T) {
	// a zero standard deviation collapses on the mean
	d := Deployment{
		Position:     Limits{{X: 4, Y: -4, Z: 1}, {}},
		Orientation:  Limits{{Z: 1.5}, {}},
		Distribution: Gaussian,
	}
	for _, p := range d.sample(3, rand.NewSource(7)) {
		assert.Equal(t, State{Pos: Vec3{X: 4, Y: -4}, Rot: Vec3{Z: 1.5}}, p)
	}
}

func TestSampleDeterministic(t *testing.T) {
	d := Deployment{
		Position:     Limits{Splat(-5), Splat(5)},
		Orientation:  Limits{Splat(-1), Splat(1)},
		Distribution: Gaussian,
	}
	assert.Equal(t, d.sample(10, rand.NewSource(3)), d.sample(10, rand.NewSource(3)))
	assert.NotEqual(t, d.sample(10, rand.NewSource(3)), d.sample(10, rand.NewSource(4)))
}
