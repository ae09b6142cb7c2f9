// Package opengl displays swarms in an interactive OpenGL window.
//
// Space pauses and resumes the simulation. While paused, the right arrow
// runs a single step. Tab and shift tab cycle through the highlighted agent.
// Scrolling zooms around the cursor and R resets the viewport.
// Pressing Esc or closing the window quits.
package opengl

import "github.com/mrsonandrade/pyswarming"

// Config holds the parameters of the OpenGL driver.
type Config struct {
	MaxSwarmSize  int     // maximum swarm size
	Step          func()  // go to next step
	ForcePause    bool    // step manually only?
	HeadingLength float64 // length of the segment showing the yaw of agents

	// bounds of default viewport
	Xmin float64
	Ymin float64
	Xmax float64
	Ymax float64
}

// A Viewer animates swarms with the settings of its Config.
type Viewer struct {
	Config
}

// Run implements pyswarming.Renderer.
func (v *Viewer) Run(s *pyswarming.Swarm, step func()) error {
	conf := v.Config
	conf.Step = step
	return Run(s, &conf)
}
