package main

import (
	"github.com/mrsonandrade/pyswarming"
	"github.com/mrsonandrade/pyswarming/opengl"
)

// RunOpenGL runs an interactive simulation in an OpenGL window.
func RunOpenGL(conf *Config, s *pyswarming.Swarm) error {
	return s.Animate(&opengl.Viewer{Config: opengl.Config{
		MaxSwarmSize:  s.N,
		HeadingLength: conf.HeadingLength,
		Xmin:          conf.PlotLimits[0],
		Ymin:          conf.PlotLimits[1],
		Xmax:          conf.PlotLimits[2],
		Ymax:          conf.PlotLimits[3],
	}})
}
