package hdf5

import (
	"fmt"

	"gonum.org/v1/hdf5"
)

// A Loader sequentially loads pose tables from an HDF5 dataset.
// The dataset holds either a single [n, 6] table or [frames, n, 6] tables
// as recorded by PoseDataset.
type Loader struct {
	i    uint // index of current frame
	n    uint // total number of frames
	rank int  // 3 when the dataset holds several frames

	data [][6]float64 // data buffer

	file   *hdf5.File
	dset   *hdf5.Dataset
	fspace *hdf5.Dataspace
	mspace *hdf5.Dataspace
}

// NewLoader opens a dataset in an HDF5 file and returns an initialized loader.
func NewLoader(filepath, dataset string) (*Loader, error) {
	l := new(Loader)
	var err error
	l.file, err = hdf5.OpenFile(filepath, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, err
	}
	l.dset, err = l.file.OpenDataset(dataset)
	if err != nil {
		checkClose(&err, l.file)
		return nil, err
	}
	l.fspace = l.dset.Space()
	dims, _, err := l.fspace.SimpleExtentDims()
	if err != nil {
		l.closeAll(&err)
		return nil, err
	}
	if len(dims) < 2 || len(dims) > 3 || dims[len(dims)-1] != 6 || dims[0] == 0 {
		err = fmt.Errorf("loader: expected [frames,] n, 6 dimensions, got %v", dims)
		l.closeAll(&err)
		return nil, err
	}

	rows := dims[len(dims)-2]
	l.rank = len(dims)
	l.n = 1
	if len(dims) == 3 {
		l.n = dims[0]
	}

	l.mspace, err = hdf5.CreateSimpleDataspace([]uint{rows, 6}, nil)
	if err != nil {
		l.closeAll(&err)
		return nil, err
	}

	start := make([]uint, len(dims))
	count := append([]uint(nil), dims...)
	if len(dims) == 3 {
		count[0] = 1
	}
	if err := l.fspace.SelectHyperslab(start, nil, count, nil); err != nil {
		l.closeAll(&err)
		return nil, err
	}

	l.data = make([][6]float64, rows)

	return l, nil
}

// Frames returns the number of pose tables in the dataset.
func (l *Loader) Frames() int {
	return int(l.n)
}

// Rows returns the number of agents of each pose table.
func (l *Loader) Rows() int {
	return len(l.data)
}

// Load loads the next pose table into pose
// and cycles when everything has already been loaded.
func (l *Loader) Load(pose *[][6]float64) error {
	start := make([]uint, l.rank)
	if l.rank == 3 {
		start[0] = l.i
	}
	if err := l.fspace.SetOffset(start); err != nil {
		return err
	}
	l.i = (l.i + 1) % l.n

	if err := l.dset.ReadSubset(&l.data, l.mspace, l.fspace); err != nil {
		return err
	}

	*pose = append((*pose)[:0], l.data...)
	return nil
}

// Close releases the HDF5 resources of the loader.
func (l *Loader) Close() (err error) {
	l.closeAll(&err)
	return err
}

func (l *Loader) closeAll(err *error) {
	if l.mspace != nil {
		checkClose(err, l.mspace)
	}
	if l.fspace != nil {
		checkClose(err, l.fspace)
	}
	if l.dset != nil {
		checkClose(err, l.dset)
	}
	if l.file != nil {
		checkClose(err, l.file)
	}
}
