// Package renderer draws the sandbox: colored lines in world space.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/locomotion/internal/engine/debug"
	"github.com/Faultbox/locomotion/internal/engine/shader"
	"github.com/Faultbox/locomotion/internal/logger"
	"github.com/Faultbox/locomotion/pkg/math"
)

const vertexShaderSource = `
	#version 410 core

	layout (location = 0) in vec3 aPos;
	layout (location = 1) in vec3 aColor;

	uniform mat4 uViewProj;

	out vec3 vertexColor;

	void main() {
		gl_Position = uViewProj * vec4(aPos, 1.0);
		vertexColor = aColor;
	}
`

const fragmentShaderSource = `
	#version 410 core

	in vec3 vertexColor;
	out vec4 FragColor;

	void main() {
		FragColor = vec4(vertexColor, 1.0);
	}
`

// vertexSize is the byte size of one debug.Vertex.
const vertexSize = int32(unsafe.Sizeof(debug.Vertex{}))

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config
	log    *zap.Logger

	lines    *shader.Program
	vao, vbo uint32
	capacity int
	viewProj math.Mat4
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config:   cfg,
		log:      logger.Named("renderer"),
		viewProj: math.Identity(),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(0.1, 0.1, 0.15, 1.0) // Dark blue-gray background
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	var err error
	r.lines, err = shader.New(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		return nil, fmt.Errorf("failed to create line shader: %w", err)
	}

	r.createBuffers()
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.lines != nil {
		r.lines.Delete()
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Begin starts a new frame with the given view-projection matrix.
func (r *Renderer) Begin(viewProj math.Mat4) {
	r.viewProj = viewProj
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.BindVertexArray(0)
}

// DrawLines draws a line list.
func (r *Renderer) DrawLines(lines debug.Lines) {
	if len(lines) == 0 {
		return
	}
	r.upload(lines)

	r.lines.Use()
	r.lines.SetMat4("uViewProj", r.viewProj)
	gl.BindVertexArray(r.vao)
	gl.DrawArrays(gl.LINES, 0, int32(len(lines)))
}

// ReadPixels reads the current frame as RGBA, bottom row first.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&pixels[0]))
	return pixels, w, h
}

// upload streams vertices into the shared buffer, growing it as needed.
func (r *Renderer) upload(v []debug.Vertex) {
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	size := len(v) * int(vertexSize)
	if len(v) > r.capacity {
		r.capacity = len(v) * 2
		gl.BufferData(gl.ARRAY_BUFFER, r.capacity*int(vertexSize), nil, gl.DYNAMIC_DRAW)
		r.log.Debug("line buffer grown", zap.Int("vertices", r.capacity))
	}
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, unsafe.Pointer(&v[0]))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// createBuffers creates the line VAO/VBO.
func (r *Renderer) createBuffers() {
	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)

	// Position attribute (location = 0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, vertexSize, nil)
	gl.EnableVertexAttribArray(0)

	// Color attribute (location = 1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, vertexSize, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	r.log.Debug("line buffers created",
		zap.Uint32("vao", r.vao),
		zap.Uint32("vbo", r.vbo),
	)
}
