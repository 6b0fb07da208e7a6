package preview

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/combine-mr/internal/logger"
	"github.com/Faultbox/combine-mr/internal/preview/shaders"
)

// quadVertices covers clip space. UVs are flipped vertically because image
// row 0 is the top row while GL textures start at the bottom.
var quadVertices = []float32{
	// Position  // UV
	-1, -1, 0, 1,
	1, -1, 1, 1,
	-1, 1, 0, 0,
	1, 1, 1, 0,
}

// renderer draws one texture on a letterboxed quad.
type renderer struct {
	program uint32
	vao     uint32
	vbo     uint32
	texture uint32

	locView int32

	imgW, imgH int
}

// newRenderer initialises OpenGL and uploads img. Must be called after the context exists.
func newRenderer(img *image.RGBA, filter string) (*renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	logger.Debug("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	r := &renderer{
		imgW: img.Bounds().Dx(),
		imgH: img.Bounds().Dy(),
	}

	var err error
	r.program, err = compileProgram(shaders.PreviewVertexShader, shaders.PreviewFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("preview shader: %w", err)
	}
	if r.locView, err = uniform(r.program, "uView"); err != nil {
		r.release()
		return nil, err
	}
	locTexture, err := uniform(r.program, "uTexture")
	if err != nil {
		r.release()
		return nil, err
	}
	gl.UseProgram(r.program)
	gl.Uniform1i(locTexture, 0)

	r.createQuad()
	r.texture = uploadTexture(img, filter)

	gl.ClearColor(0.12, 0.12, 0.14, 1.0)
	return r, nil
}

func (r *renderer) createQuad() {
	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)

	// Position attribute (location = 0)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 4*4, 0)
	gl.EnableVertexAttribArray(0)
	// UV attribute (location = 1)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, 4*4, 2*4)
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

// uploadTexture copies img into a new GL texture without mipmaps.
func uploadTexture(img *image.RGBA, filter string) uint32 {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()

	// GL expects tightly packed rows.
	pix := img.Pix
	if img.Stride != w*4 || img.Rect.Min != (image.Point{}) {
		tight := image.NewRGBA(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			copy(tight.Pix[y*tight.Stride:], img.Pix[img.PixOffset(img.Rect.Min.X, img.Rect.Min.Y+y):][:w*4])
		}
		pix = tight.Pix
	}

	glFilter := int32(gl.NEAREST)
	if filter == "linear" {
		glFilter = gl.LINEAR
	}

	var texID uint32
	gl.GenTextures(1, &texID)
	gl.BindTexture(gl.TEXTURE_2D, texID)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, glFilter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, glFilter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	return texID
}

// draw clears the surface and draws the texture fitted into it.
func (r *renderer) draw(surfaceW, surfaceH int, view View) {
	gl.Viewport(0, 0, int32(surfaceW), int32(surfaceH))
	gl.Clear(gl.COLOR_BUFFER_BIT)

	x, y, w, h := Fit(r.imgW, r.imgH, surfaceW, surfaceH)
	if w == 0 || h == 0 {
		return
	}
	gl.Viewport(int32(x), int32(y), int32(w), int32(h))

	gl.UseProgram(r.program)
	gl.Uniform1i(r.locView, int32(view))
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.texture)
	gl.BindVertexArray(r.vao)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	gl.BindVertexArray(0)
}

// release deletes every GL object the renderer created.
func (r *renderer) release() {
	if r.texture != 0 {
		gl.DeleteTextures(1, &r.texture)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}
