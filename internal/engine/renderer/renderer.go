// Package renderer provides OpenGL rendering functionality.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/splitview/internal/engine/debug"
	"github.com/Faultbox/splitview/internal/engine/lighting"
	"github.com/Faultbox/splitview/internal/engine/scene"
	"github.com/Faultbox/splitview/internal/engine/shader"
	"github.com/Faultbox/splitview/internal/engine/texture"
	"github.com/Faultbox/splitview/internal/game"
	"github.com/Faultbox/splitview/internal/logger"
)

// Config holds renderer configuration.
type Config struct {
	Ambient   [3]float32
	Shininess float32
}

// DefaultConfig returns the shading defaults of a Phong material under
// white directional lights.
func DefaultConfig() Config {
	return Config{
		Ambient:   [3]float32{0.05, 0.05, 0.05},
		Shininess: 30,
	}
}

type gpuMesh struct {
	vao, vbo, ebo uint32
	indexCount    int32
}

type gpuTexture struct {
	id      uint32
	settled bool // loaded or failed; no more polling
}

// Renderer draws scenes into the current scissor/viewport with OpenGL.
// It implements game.Target.
type Renderer struct {
	config Config

	phong *shader.Program
	lines *shader.Program

	meshes   map[*scene.Mesh]*gpuMesh
	textures map[*texture.Handle]*gpuTexture
	fallback uint32

	lineVAO, lineVBO uint32
	lineCap          int

	lights *lighting.DirectionalBuffer

	width, height int
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config:   cfg,
		meshes:   make(map[*scene.Mesh]*gpuMesh),
		textures: make(map[*texture.Handle]*gpuTexture),
		lights:   lighting.NewDirectionalBuffer(),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	var err error
	r.phong, err = shader.Compile(shader.PhongVertex, shader.PhongFragment)
	if err != nil {
		return nil, fmt.Errorf("phong program: %w", err)
	}
	r.lines, err = shader.Compile(shader.LineVertex, shader.LineFragment)
	if err != nil {
		r.phong.Delete()
		return nil, fmt.Errorf("line program: %w", err)
	}

	r.fallback = uploadRGBA([]byte{255, 255, 255, 255}, 1, 1)
	r.createLineBuffer()

	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	for _, m := range r.meshes {
		gl.DeleteVertexArrays(1, &m.vao)
		gl.DeleteBuffers(1, &m.vbo)
		gl.DeleteBuffers(1, &m.ebo)
	}
	for _, t := range r.textures {
		if t.id != 0 && t.id != r.fallback {
			gl.DeleteTextures(1, &t.id)
		}
	}
	if r.fallback != 0 {
		gl.DeleteTextures(1, &r.fallback)
	}
	if r.lineVAO != 0 {
		gl.DeleteVertexArrays(1, &r.lineVAO)
		gl.DeleteBuffers(1, &r.lineVBO)
	}
	r.phong.Delete()
	r.lines.Delete()
}

// SetSize records the backing size of the default framebuffer.
func (r *Renderer) SetSize(width, height int) {
	r.width, r.height = width, height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Size returns the backing size set by the last SetSize.
func (r *Renderer) Size() (int, int) {
	return r.width, r.height
}

// SetScissorTest enables or disables clipping to the scissor rectangle.
func (r *Renderer) SetScissorTest(enabled bool) {
	if enabled {
		gl.Enable(gl.SCISSOR_TEST)
	} else {
		gl.Disable(gl.SCISSOR_TEST)
	}
}

// SetScissor sets the clip rectangle in device pixels.
func (r *Renderer) SetScissor(x, y, width, height int32) {
	gl.Scissor(x, y, width, height)
}

// SetViewport sets the draw rectangle in device pixels.
func (r *Renderer) SetViewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

// Render clears the current scissor rectangle to the view's background and
// draws the scene from the view's camera.
func (r *Renderer) Render(s *scene.Scene, p game.RenderParams) error {
	gl.ClearColor(p.Background[0], p.Background[1], p.Background[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	view := p.Camera.ViewMatrix()
	proj := p.Camera.ProjectionMatrix()
	eye := p.Camera.Position

	r.phong.Use()
	gl.UniformMatrix4fv(r.phong.Uniform("uView"), 1, false, &view[0])
	gl.UniformMatrix4fv(r.phong.Uniform("uProjection"), 1, false, &proj[0])
	gl.Uniform3f(r.phong.Uniform("uEye"), eye.X, eye.Y, eye.Z)
	gl.Uniform3f(r.phong.Uniform("uAmbient"), r.config.Ambient[0], r.config.Ambient[1], r.config.Ambient[2])
	gl.Uniform1f(r.phong.Uniform("uShininess"), r.config.Shininess)

	r.lights.SetLights(s.Lights)
	dirs := r.lights.GetDirections()
	colors := r.lights.GetColors()
	gl.Uniform1i(r.phong.Uniform("uLightCount"), int32(r.lights.Count))
	gl.Uniform3fv(r.phong.Uniform("uLightDirs"), lighting.MaxDirectionalLights, &dirs[0])
	gl.Uniform3fv(r.phong.Uniform("uLightColors"), lighting.MaxDirectionalLights, &colors[0])

	gl.ActiveTexture(gl.TEXTURE0)
	gl.Uniform1i(r.phong.Uniform("uTexture"), 0)

	for _, obj := range s.Objects {
		r.drawObject(obj)
	}
	gl.BindVertexArray(0)

	if p.HelperVisible && p.Helper != nil {
		vp := p.Camera.ViewProjection()
		r.drawLines(p.Helper.Vertices(), &vp[0])
	}

	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("gl error 0x%x", code)
	}
	return nil
}

func (r *Renderer) drawObject(obj *scene.Object) {
	mesh := r.mesh(obj.Mesh)
	if mesh == nil {
		return
	}

	mat := obj.Material
	model := obj.ModelMatrix()
	repeat := mat.Repeat
	if repeat == ([2]float32{}) {
		repeat = [2]float32{1, 1}
	}

	gl.UniformMatrix4fv(r.phong.Uniform("uModel"), 1, false, &model[0])
	gl.Uniform3f(r.phong.Uniform("uColor"), mat.Color[0], mat.Color[1], mat.Color[2])
	gl.Uniform2f(r.phong.Uniform("uRepeat"), repeat[0], repeat[1])
	gl.BindTexture(gl.TEXTURE_2D, r.texture(mat.Texture))

	if mat.DoubleSided {
		gl.Disable(gl.CULL_FACE)
	} else {
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
	}

	gl.BindVertexArray(mesh.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, mesh.indexCount, gl.UNSIGNED_INT, 0)
}

func (r *Renderer) mesh(m *scene.Mesh) *gpuMesh {
	if m == nil || len(m.Vertices) == 0 || len(m.Indices) == 0 {
		return nil
	}
	if gm, ok := r.meshes[m]; ok {
		return gm
	}

	gm := &gpuMesh{indexCount: int32(len(m.Indices))}
	gl.GenVertexArrays(1, &gm.vao)
	gl.BindVertexArray(gm.vao)

	gl.GenBuffers(1, &gm.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, gm.vbo)
	vertexSize := int(unsafe.Sizeof(scene.Vertex{}))
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*vertexSize, unsafe.Pointer(&m.Vertices[0]), gl.STATIC_DRAW)

	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(vertexSize), 0)
	gl.EnableVertexAttribArray(0)
	// Normal
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, int32(vertexSize), 3*4)
	gl.EnableVertexAttribArray(1)
	// TexCoord
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, int32(vertexSize), 6*4)
	gl.EnableVertexAttribArray(2)

	gl.GenBuffers(1, &gm.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gm.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, unsafe.Pointer(&m.Indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	r.meshes[m] = gm
	return gm
}

// texture returns the GL texture for h, uploading it once its load is done.
// Until then, or if it failed, the white fallback is used.
func (r *Renderer) texture(h *texture.Handle) uint32 {
	if h == nil {
		return r.fallback
	}
	t, ok := r.textures[h]
	if !ok {
		t = &gpuTexture{id: r.fallback}
		r.textures[h] = t
	}
	if t.settled {
		return t.id
	}

	img, done, err := h.Result()
	if !done {
		return t.id
	}
	t.settled = true
	if err != nil {
		logger.Warn("texture unavailable, using fallback", zap.String("source", h.Source()), zap.Error(err))
		return t.id
	}

	b := img.Bounds()
	t.id = uploadRGBA(img.Pix, b.Dx(), b.Dy())
	logger.Debug("texture uploaded",
		zap.String("source", h.Source()),
		zap.Uint32("id", t.id),
	)
	return t.id
}

func uploadRGBA(pix []byte, width, height int) uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pix[0]))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	return id
}

func (r *Renderer) createLineBuffer() {
	gl.GenVertexArrays(1, &r.lineVAO)
	gl.BindVertexArray(r.lineVAO)

	gl.GenBuffers(1, &r.lineVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)

	stride := int32(unsafe.Sizeof(debug.LineVertex{}))
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
}

func (r *Renderer) drawLines(vertices []debug.LineVertex, viewProj *float32) {
	if len(vertices) == 0 {
		return
	}

	gl.BindVertexArray(r.lineVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)
	size := len(vertices) * int(unsafe.Sizeof(debug.LineVertex{}))
	if len(vertices) > r.lineCap {
		gl.BufferData(gl.ARRAY_BUFFER, size, unsafe.Pointer(&vertices[0]), gl.DYNAMIC_DRAW)
		r.lineCap = len(vertices)
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, unsafe.Pointer(&vertices[0]))
	}

	r.lines.Use()
	gl.UniformMatrix4fv(r.lines.Uniform("uViewProj"), 1, false, viewProj)
	gl.DrawArrays(gl.LINES, 0, int32(len(vertices)))
	gl.BindVertexArray(0)
}

// ReadPixels reads the whole default framebuffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.width, r.height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, w, h
}
