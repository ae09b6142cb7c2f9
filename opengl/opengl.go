//go:build !nogl
// +build !nogl

package opengl

import (
	"fmt"
	"math"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/mrsonandrade/pyswarming"
)

// Run runs an interactive simulation in an OpenGL window.
func Run(s *pyswarming.Swarm, conf *Config) error {
	// init GLFW and OpenGL
	if err := glfw.Init(); err != nil {
		return err
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Samples, 4)
	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	// create OpenGL window
	const (
		title  = "PySwarming"
		width  = 800
		height = 800
	)
	w, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return err
	}
	w.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return err
	}

	// set background color and enable alpha blending
	gl.Enable(gl.BLEND)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.ClearColor(1, 1, 1, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	w.SwapBuffers()

	// initialize OpenGL objects
	d, err := newDisplay(conf.maxSwarmSize(s))
	if err != nil {
		return err
	}

	// handle scrolling zoom
	vp := conf.viewport()
	focal := -1 // index of the highlighted agent
	w.SetScrollCallback(func(w *glfw.Window, xo, yo float64) {
		xc, yc := w.GetCursorPos()
		xs, ys := w.GetSize()
		x, y := float32(xc)/float32(xs), (float32(ys)-float32(yc))/float32(ys)
		dx, dy := vp[1].X-vp[0].X, vp[1].Y-vp[0].Y
		z := 0.05 * float32(yo)
		vp[0].X += z * -(x * dx)
		vp[0].Y += z * -(y * dy)
		vp[1].X += z * (1 - x) * dx
		vp[1].Y += z * (1 - y) * dy
		d.draw(s, focal, vp, conf.HeadingLength)
		w.SwapBuffers()
	})

	var quit, step bool
	pause := conf.ForcePause
	w.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, mod glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			quit = true
		}
		if key == glfw.KeySpace && action == glfw.Press && !conf.ForcePause {
			pause = !pause
		}
		if key == glfw.KeyRight && (action == glfw.Press || action == glfw.Repeat) {
			if pause {
				pause = false
				step = true
			}
		}
		if key == glfw.KeyTab && action == glfw.Press {
			// cycle through agents, then disable (focal = -1)
			if mod == glfw.ModShift {
				focal--
			} else {
				focal++
			}
			focal = (s.N+focal+2)%(s.N+1) - 1
		}
		if key == glfw.KeyR && action == glfw.Press {
			vp = conf.viewport()
			d.draw(s, focal, vp, conf.HeadingLength)
			w.SwapBuffers()
		}
	})

	for !(quit || w.ShouldClose()) {
		if step {
			pause = true
			step = false
			conf.Step()
		}
		if !pause {
			conf.Step()
		}
		d.draw(s, focal, vp, conf.HeadingLength)
		w.SwapBuffers()
		glfw.PollEvents()
	}
	return nil
}

// A viewport is a rectangle delimiting the area of simulation space shown on screen.
// The first point is the bottom left corner, the second point is the top right corner.
type viewport [2]struct{ X, Y float32 }

func (conf *Config) viewport() viewport {
	return viewport{{float32(conf.Xmin), float32(conf.Ymin)}, {float32(conf.Xmax), float32(conf.Ymax)}}
}

func (conf *Config) maxSwarmSize(s *pyswarming.Swarm) int {
	if conf.MaxSwarmSize < s.N {
		return s.N
	}
	return conf.MaxSwarmSize
}

// display contains all the OpenGL objects required to display the swarm.
type display struct {
	vao  uint32 // vertex array object
	prog uint32
	attr struct {
		pos uint32
	}
	buf struct {
		agent uint32 // one point then one heading segment per agent
	}
	uni struct {
		vp    int32 // viewport
		color int32
	}
	max  int
	data []float32
}

var (
	agentColor   = [4]float32{0.12, 0.47, 0.71, 1}
	headingColor = [4]float32{0.5, 0.5, 0.5, 1}
	focalColor   = [4]float32{0.84, 0.15, 0.16, 1}
)

// draw updates the OpenGL buffer and draws the agents on screen.
func (d *display) draw(s *pyswarming.Swarm, focal int, vp viewport, heading float64) {
	gl.UseProgram(d.prog)
	gl.Uniform2fv(d.uni.vp, 2, &vp[0].X)
	n := d.updateAgents(s.States(), heading)

	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.Uniform4fv(d.uni.color, 1, &headingColor[0])
	gl.DrawArrays(gl.LINES, int32(n), int32(2*n))

	gl.Uniform4fv(d.uni.color, 1, &agentColor[0])
	gl.DrawArrays(gl.POINTS, 0, int32(n))

	if focal >= 0 && focal < n {
		gl.Uniform4fv(d.uni.color, 1, &focalColor[0])
		gl.DrawArrays(gl.POINTS, int32(focal), 1)
	}
}

// updateAgents fills the vertex buffer and returns the number of agents drawn.
// Agents with non-finite positions are drawn at the origin.
func (d *display) updateAgents(states []pyswarming.State, heading float64) int {
	n := len(states)
	if n > d.max {
		n = d.max
	}
	pts := d.data[:2*n]
	segs := d.data[2*n : 6*n]
	for i, st := range states[:n] {
		x, y := finite(st.Pos.X), finite(st.Pos.Y)
		sin, cos := math.Sincos(st.Rot.Z)
		pts[2*i], pts[2*i+1] = float32(x), float32(y)
		segs[4*i], segs[4*i+1] = float32(x), float32(y)
		segs[4*i+2], segs[4*i+3] = float32(x+heading*cos), float32(y+heading*sin)
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, d.buf.agent)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, 6*n*4, gl.Ptr(d.data))
	return n
}

func finite(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return x
}

// newDisplay compiles shaders and initializes a display.
func newDisplay(maxSwarmSize int) (*display, error) {
	d := &display{max: maxSwarmSize, data: make([]float32, 6*maxSwarmSize)}

	// compile and link shaders
	var err error
	d.prog, err = makeProg([]shader{
		{"Vertex", vertexShader, gl.CreateShader(gl.VERTEX_SHADER)},
		{"Fragment", fragmentShader, gl.CreateShader(gl.FRAGMENT_SHADER)},
	})
	if err != nil {
		return nil, err
	}

	// uniform location cannot be specified in the shaders in OpenGL 3.3 core
	d.uni.vp = gl.GetUniformLocation(d.prog, gl.Str("vp\x00"))
	d.uni.color = gl.GetUniformLocation(d.prog, gl.Str("color\x00"))

	// attribute locations are specified in the shaders with layout(location=n)
	d.attr.pos = 0

	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)

	gl.GenBuffers(1, &d.buf.agent)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.buf.agent)
	gl.BufferData(gl.ARRAY_BUFFER, len(d.data)*4, nil, gl.STREAM_DRAW)

	gl.EnableVertexAttribArray(d.attr.pos)
	gl.VertexAttribPointer(d.attr.pos, 2, gl.FLOAT, false, 0, nil)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	return d, nil
}

// A shader wraps an OpenGL shader.
type shader struct {
	name   string
	src    string
	shader uint32
}

// makeProg builds OpenGL programs.
func makeProg(shaders []shader) (uint32, error) {
	var fail bool
	for _, s := range shaders {
		str, free := gl.Strs(s.src + "\x00")
		gl.ShaderSource(s.shader, 1, str, nil)
		free()
		gl.CompileShader(s.shader)
		var status int32
		gl.GetShaderiv(s.shader, gl.COMPILE_STATUS, &status)
		if status != gl.TRUE {
			var n int32
			gl.GetShaderiv(s.shader, gl.INFO_LOG_LENGTH, &n)
			log := make([]uint8, n+1)
			gl.GetShaderInfoLog(s.shader, n, &n, &log[0])
			fmt.Printf("### %s shader compilation error ###\n\n%s\n\n", s.name, gl.GoStr(&log[0]))
			fail = true
			gl.DeleteShader(s.shader)
		}
	}
	if fail {
		return 0, fmt.Errorf("pyswarming: GLSL errors")
	}
	prog := gl.CreateProgram()
	for _, s := range shaders {
		gl.AttachShader(prog, s.shader)
	}
	gl.LinkProgram(prog)

	return prog, nil
}

const vertexShader = `
#version 330 core

layout(location = 0) in vec2 pos;

uniform vec2 vp[2];

void main() {
	gl_Position = vec4(2 * (pos - vp[0]) / (vp[1] - vp[0]) - 1, 0, 1);
	gl_PointSize = 8;
}
`

const fragmentShader = `
#version 330 core

uniform vec4 color;

out vec4 frag;

void main() {
	frag = color;
}
`
