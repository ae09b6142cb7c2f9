// Package pyswarming computes swarm robotics behaviors and runs simple swarms.
//
// A behavior maps the state of an agent and the states of its neighbors
// to a 3D contribution. A Swarm deploys agents, evaluates a selection of
// behaviors for every agent at each step, combines the contributions into
// a unit heading and moves agents at constant linear speed.
// Swarms are currently restricted to the plane: z, roll and pitch stay at 0.
package pyswarming

import "gonum.org/v1/gonum/spatial/r3"

// A Vec3 is a cartesian position, a velocity or a (roll, pitch, yaw) triple.
type Vec3 = r3.Vec

// Splat returns the vector whose three components are x.
func Splat(x float64) Vec3 {
	return Vec3{X: x, Y: x, Z: x}
}

// State contains the pose of an agent.
type State struct {
	Pos Vec3 // position
	Rot Vec3 // orientation as roll, pitch and yaw in radians
}

// Row returns the pose as a row of the pose table:
// x, y, z, roll, pitch, yaw.
func (s State) Row() [6]float64 {
	return [6]float64{s.Pos.X, s.Pos.Y, s.Pos.Z, s.Rot.X, s.Rot.Y, s.Rot.Z}
}

// StateFromRow is the inverse of State.Row.
func StateFromRow(r [6]float64) State {
	return State{
		Pos: Vec3{X: r[0], Y: r[1], Z: r[2]},
		Rot: Vec3{X: r[3], Y: r[4], Z: r[5]},
	}
}

// others returns a copy of v without its i-th element.
// Elements are excluded by index, never by value.
func others(v []Vec3, i int) []Vec3 {
	out := make([]Vec3, 0, len(v)-1)
	out = append(out, v[:i]...)
	return append(out, v[i+1:]...)
}
