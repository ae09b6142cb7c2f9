// Command swarm runs pyswarming simulations.
//
// Usage
//
// The swarm command takes one optional argument:
//  swarm [config_file]
// It is the path to a TOML config file, or a YAML one if it ends in .yaml or .yml.
// If no config file is specified, an interactive simulation
// with default parameters will run in an OpenGL window.
//
// Config file
//
// The config file is written in TOML. If you are not familiar with TOML, fear not!
// It's basically a modern version of INI. Very very simple.
// See https://github.com/toml-lang/toml for the full language spec.
//
// Output modes
//
// With an output path, the pose of every agent is recorded at each step
// in an HDF5 file. With headless set, the final pose table is printed.
// Otherwise the swarm is displayed in an OpenGL window.
//
// Interactive mode
//
// In interactive mode, the simulation can be paused/resumed with space.
// While in pause, pressing right arrow will perform a single step.
// Tab and shift tab highlight agents in turn.
// Pressing Esc or closing the window will quit.
package main

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/mrsonandrade/pyswarming"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const usage = `Usage: swarm [config_file]

The first argument is optional and is the path to a TOML or YAML config file.
If no config file is specified, an interactive simulation
with default parameters will run in an OpenGL window.
`

func init() {
	// Most OpenGL functions have to run from the main thread.
	// This is needed to arrange that main() runs on main thread.
	// See https://github.com/golang/go/wiki/LockOSThread for more info.
	runtime.LockOSThread()
}

func main() {
	var conf *Config
	var err error
	switch len(os.Args) {
	case 1:
		conf = DefaultConf
	case 2:
		conf, err = ParseConfig(os.Args[1])
	default:
		err = fmt.Errorf("%d arguments provided (0 required, 1 optional)\n\n%s", len(os.Args)-1, usage)
	}
	if err != nil {
		Fatal(err)
	}

	log, err := newLogger(conf.Verbose)
	if err != nil {
		Fatal(err)
	}
	defer log.Sync()

	// setup simulation
	s, err := setup(conf, log)
	if err != nil {
		Fatal(err)
	}

	// run interactively or not depending on config
	switch {
	case conf.Output != "":
		err = RunHDF5(conf, s, log)
	case conf.Headless:
		err = printPose(os.Stdout, s.Run(conf.Steps))
	default:
		err = RunOpenGL(conf, s)
	}
	if err != nil {
		Fatal(err)
	}
}

// Fatal prints an error on the standard output and exits with a non-zero status.
func Fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	os.Exit(1)
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// setup deploys the swarm and sets the behavior parameters.
func setup(conf *Config, log *zap.Logger) (*pyswarming.Swarm, error) {
	behaviors := make([]pyswarming.BehaviorName, len(conf.Behaviors))
	for i, b := range conf.Behaviors {
		behaviors[i] = pyswarming.BehaviorName(b)
	}
	if err := pyswarming.Check(behaviors...); err != nil {
		// unknown behaviors are skipped at each step
		log.Warn("configuration", zap.Error(err))
	}

	var pose [][6]float64
	dist := pyswarming.Fixed
	size := conf.SwarmSize
	if conf.Distribution == "data" {
		var err error
		pose, err = loadPose(conf.DataPath)
		if err != nil {
			return nil, errors.Wrapf(err, "loading %s", conf.DataPath)
		}
		size = len(pose)
	} else {
		var err error
		dist, err = pyswarming.ParseDistribution(conf.Distribution)
		if err != nil {
			return nil, err
		}
	}

	opts := []pyswarming.Option{
		pyswarming.WithLogger(log),
		pyswarming.WithStrict(conf.Strict),
	}
	if conf.Seed != 0 {
		opts = append(opts, pyswarming.WithSeed(conf.Seed))
	}

	s, err := pyswarming.New(pyswarming.Config{
		N:           size,
		LinearSpeed: conf.Speed,
		Dt:          conf.Dt,
		Deployment: pyswarming.Deployment{
			Position:     limits(conf.PositionLimits),
			Orientation:  limits(conf.OrientationLimits),
			Distribution: dist,
		},
		Behaviors: behaviors,
	}, opts...)
	if err != nil {
		return nil, err
	}
	if pose != nil {
		if err := s.SetPose(pose); err != nil {
			return nil, err
		}
	}

	t := pyswarming.Vec3{X: conf.Target[0], Y: conf.Target[1], Z: conf.Target[2]}
	region := pyswarming.Sphere(pyswarming.Vec3{}, conf.GeofenceRadius)
	s.Params.Target.T = t
	s.Params.CollectiveNavigation.T = t
	s.Params.EnvironmentExploration.T = t
	s.Params.Repulsion.Alpha, s.Params.Repulsion.D = conf.RepulsionAlpha, conf.RepulsionD
	s.Params.CollectiveNavigation.Alpha, s.Params.CollectiveNavigation.D = conf.RepulsionAlpha, conf.RepulsionD
	s.Params.AreaCoverage.Alpha, s.Params.AreaCoverage.D = conf.RepulsionAlpha, conf.RepulsionD
	s.Params.Flocking.Alpha, s.Params.Flocking.D = conf.RepulsionAlpha, conf.RepulsionD
	s.Params.Geofencing.A = region
	s.Params.AreaCoverage.A = region

	log.Info("swarm ready",
		zap.Int("n", s.N),
		zap.String("distribution", conf.Distribution),
		zap.Strings("behaviors", conf.Behaviors),
		zap.Bool("strict", conf.Strict))
	return s, nil
}

func limits(l [2][3]float64) pyswarming.Limits {
	return pyswarming.Limits{
		{X: l[0][0], Y: l[0][1], Z: l[0][2]},
		{X: l[1][0], Y: l[1][1], Z: l[1][2]},
	}
}

// printPose writes the pose table, one agent per line.
func printPose(w io.Writer, pose [][6]float64) error {
	for _, r := range pose {
		if _, err := fmt.Fprintf(w, "%g %g %g %g %g %g\n", r[0], r[1], r[2], r[3], r[4], r[5]); err != nil {
			return err
		}
	}
	return nil
}
