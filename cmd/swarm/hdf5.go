package main

import (
	"github.com/mrsonandrade/pyswarming"
	"github.com/mrsonandrade/pyswarming/hdf5"
	"go.uber.org/zap"
)

// RunHDF5 runs a simulation and saves data to an HDF5 file.
func RunHDF5(conf *Config, s *pyswarming.Swarm, log *zap.Logger) error {
	return hdf5.Run(s, &hdf5.Config{
		Output:   conf.Output,
		Steps:    conf.Steps,
		Step:     s.Step,
		Datasets: []*hdf5.Dataset{hdf5.PoseDataset(s.N), hdf5.VelocityDataset(s.N)},
		Log:      log,
	})
}

// loadPose reads the first pose table of a recording.
func loadPose(path string) (pose [][6]float64, err error) {
	l, err := hdf5.NewLoader(path, "pose")
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := l.Close(); err == nil {
			err = cerr
		}
	}()
	err = l.Load(&pose)
	return pose, err
}
