//go:build nogl
// +build nogl

package opengl

import (
	"fmt"
	"os"

	"github.com/mrsonandrade/pyswarming"
)

// Run returns an error explaining that OpenGL support is disabled.
func Run(s *pyswarming.Swarm, conf *Config) error {
	return fmt.Errorf("%s was built without OpenGL support\n"+
		"You must specify an output file ('output' key in the config file) or run headless.", os.Args[0])
}
