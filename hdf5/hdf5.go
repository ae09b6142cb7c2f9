// Package hdf5 records swarm runs to HDF5 files and reads them back.
package hdf5

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mrsonandrade/pyswarming"
	"go.uber.org/zap"
	"gonum.org/v1/hdf5"
)

// A Dataset stipulates how to generate data and where to store them in the HDF5 file.
type Dataset struct {
	// Name the name of the dataset in the HDF5 file.
	Name string

	// Val is a value of the same concrete type as the underlying type of the data.
	Val interface{}

	// Dims are the dimensions of the data for a single step.
	Dims []int

	// Data is a function that produces the data
	// as a slice of row-major concrete values.
	Data func(s *pyswarming.Swarm) interface{}

	dset   *hdf5.Dataset
	fspace *hdf5.Dataspace
	mspace *hdf5.Dataspace
}

// PoseDataset records the pose table of a swarm of n agents at each step.
func PoseDataset(n int) *Dataset {
	return &Dataset{
		Name: "pose",
		Val:  0.0,
		Dims: []int{n, 6},
		Data: func(s *pyswarming.Swarm) interface{} {
			pose := s.Pose()
			return &pose
		},
	}
}

// VelocityDataset records the velocity of each agent of a swarm of n agents.
func VelocityDataset(n int) *Dataset {
	return &Dataset{
		Name: "velocity",
		Val:  0.0,
		Dims: []int{n, 3},
		Data: func(s *pyswarming.Swarm) interface{} {
			vel := s.Velocities()
			rows := make([][3]float64, len(vel))
			for i, v := range vel {
				rows[i] = [3]float64{v.X, v.Y, v.Z}
			}
			return &rows
		},
	}
}

// Config holds the parameters of the HDF5 driver.
type Config struct {
	Output   string      // path of output file
	Steps    int         // total number of steps
	Step     func()      // go to next step
	Datasets []*Dataset  // list of datasets
	Log      *zap.Logger // optional
}

// Run runs a swarm and saves data to an HDF5 file.
// Data are recorded before each step.
func Run(s *pyswarming.Swarm, conf *Config) (err error) {
	log := conf.Log
	if log == nil {
		log = zap.NewNop()
	}

	if err := os.MkdirAll(filepath.Dir(conf.Output), 0755); err != nil {
		return err
	}

	file, err := hdf5.CreateFile(conf.Output, hdf5.F_ACC_TRUNC)
	if err != nil {
		return err
	}
	defer checkClose(&err, file)

	if err := saveConfig(file, s); err != nil {
		return err
	}

	for _, d := range conf.Datasets {
		if err := d.init(file, conf); err != nil {
			return err
		}
		defer checkClose(&err, d)
	}

	for k := uint(0); k < uint(conf.Steps); k++ {
		// show progress as percentage
		fmt.Printf("\r% 3d%%", 100*k/uint(conf.Steps))

		for _, d := range conf.Datasets {
			start := make([]uint, len(d.Dims)+1)
			start[0] = k
			if err := d.fspace.SetOffset(start); err != nil {
				return err
			}
			if err := d.dset.WriteSubset(d.Data(s), d.mspace, d.fspace); err != nil {
				return err
			}
		}

		conf.Step()
	}
	fmt.Printf("\r100%%\n")
	log.Info("run recorded", zap.String("output", conf.Output), zap.Int("steps", conf.Steps))
	return nil
}

// saveConfig creates a "config" dataset with a null dataspace whose attributes
// describe the swarm plus some other appropriate metadata.
func saveConfig(file *hdf5.File, s *pyswarming.Swarm) (err error) {
	null, err := hdf5.CreateDataspace(hdf5.S_NULL)
	if err != nil {
		return err
	}
	defer checkClose(&err, null)

	anytype, err := hdf5.NewDatatypeFromValue(0)
	if err != nil {
		return err
	}
	defer checkClose(&err, anytype)

	dset, err := file.CreateDataset("config", anytype, null)
	if err != nil {
		return err
	}
	defer checkClose(&err, dset)

	names := make([]string, len(s.Behaviors))
	for i, b := range s.Behaviors {
		names[i] = string(b)
	}

	attrs := []struct {
		name string
		val  interface{}
	}{
		{"Time", time.Now().String()},
		{"SwarmSize", s.N},
		{"LinearSpeed", s.LinearSpeed},
		{"Dt", s.Dt},
		{"Dimensions", s.Dimensions},
		{"Distribution", s.Deployment.Distribution.String()},
		{"Behaviors", strings.Join(names, ",")},
	}
	for _, a := range attrs {
		if err := writeAttr(dset, a.name, a.val); err != nil {
			return err
		}
	}
	return nil
}

// writeAttr attaches a scalar attribute to a dataset.
func writeAttr(dset *hdf5.Dataset, name string, val interface{}) (err error) {
	dtype, err := hdf5.NewDatatypeFromValue(val)
	if err != nil {
		return err
	}
	defer checkClose(&err, dtype)

	scalar, err := hdf5.CreateDataspace(hdf5.S_SCALAR)
	if err != nil {
		return err
	}
	defer checkClose(&err, scalar)

	attr, err := dset.CreateAttribute(name, dtype, scalar)
	if err != nil {
		return err
	}
	defer checkClose(&err, attr)

	switch v := val.(type) {
	case string:
		return attr.Write(&v, dtype)
	case int:
		return attr.Write(&v, dtype)
	case float64:
		return attr.Write(&v, dtype)
	}
	return fmt.Errorf("hdf5: unsupported attribute type %T", val)
}

// init creates the dataset in file and selects the slab of the first step.
func (d *Dataset) init(file *hdf5.File, conf *Config) (err error) {
	dtype, err := hdf5.NewDatatypeFromValue(d.Val)
	if err != nil {
		return err
	}
	defer checkClose(&err, dtype)

	udims := make([]uint, len(d.Dims)+1)
	udims[0] = uint(conf.Steps)
	for i, n := range d.Dims {
		udims[i+1] = uint(n)
	}

	d.fspace, err = hdf5.CreateSimpleDataspace(udims, nil)
	if err != nil {
		return err
	}

	start := make([]uint, len(udims))
	count := make([]uint, len(udims))
	copy(count, udims)
	count[0] = 1

	if err := d.fspace.SelectHyperslab(start, nil, count, nil); err != nil {
		checkClose(&err, d.fspace)
		return err
	}

	if len(d.Dims) == 0 {
		d.mspace, err = hdf5.CreateDataspace(hdf5.S_SCALAR)
	} else {
		d.mspace, err = hdf5.CreateSimpleDataspace(udims[1:], nil)
	}
	if err != nil {
		checkClose(&err, d.fspace)
		return err
	}

	d.dset, err = file.CreateDataset(d.Name, dtype, d.fspace)
	if err != nil {
		checkClose(&err, d.fspace)
		checkClose(&err, d.mspace)
	}

	return err
}

// Close closes the HDF5 dataset and dataspaces.
func (d *Dataset) Close() error {
	if err := d.dset.Close(); err != nil {
		return err
	}
	if err := d.mspace.Close(); err != nil {
		return err
	}
	return d.fspace.Close()
}

// checkClose checks for errors in deferred calls.
func checkClose(err *error, c io.Closer) {
	if cerr := c.Close(); *err == nil {
		*err = cerr
	}
}
