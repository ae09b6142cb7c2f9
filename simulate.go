package pyswarming

// A Renderer displays a swarm in its own loop and calls step
// whenever the swarm must advance.
type Renderer interface {
	Run(s *Swarm, step func()) error
}

// Animate hands the swarm over to a render loop.
func (s *Swarm) Animate(r Renderer) error {
	return r.Run(s, s.Step)
}

// A Driver advances a swarm on demand, without display.
type Driver struct {
	s *Swarm
}

// Driver returns a driver of the swarm.
func (s *Swarm) Driver() *Driver {
	return &Driver{s: s}
}

// Next runs one step and returns the new pose table.
func (d *Driver) Next() [][6]float64 {
	d.s.Step()
	return d.s.Pose()
}

// Frame returns the number of steps run so far.
func (d *Driver) Frame() int {
	return d.s.Tick()
}

// Pose returns the current pose table.
func (d *Driver) Pose() [][6]float64 {
	return d.s.Pose()
}

// Run runs frames steps and returns the final pose table.
func (s *Swarm) Run(frames int) [][6]float64 {
	for k := 0; k < frames; k++ {
		s.Step()
	}
	return s.Pose()
}
