// Package texture loads greyscale PBR maps and packs them into glTF
// metallic-roughness textures.
package texture

import (
	"image"

	"github.com/pkg/errors"
)

// OcclusionPlaceholder is written to the red channel of every packed pixel.
const OcclusionPlaceholder = 255

// Packed is a combined metallic-roughness texture.
type Packed struct {
	Image         *image.RGBA
	Width         int
	Height        int
	MetallicPath  string
	RoughnessPath string
}

// Pack combines two equally sized maps into one RGBA image laid out as
// R = 255, G = roughness red, B = metallic red, A = 255.
// Maps of different sizes are rejected with a *DimensionError; no resampling is done.
func Pack(metallic, roughness image.Image) (*image.RGBA, error) {
	mb, rb := metallic.Bounds(), roughness.Bounds()
	if mb.Dx() != rb.Dx() || mb.Dy() != rb.Dy() {
		return nil, errors.WithStack(&DimensionError{
			MetallicW: mb.Dx(), MetallicH: mb.Dy(),
			RoughnessW: rb.Dx(), RoughnessH: rb.Dy(),
		})
	}

	w, h := mb.Dx(), mb.Dy()
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		row := out.Pix[y*out.Stride:]
		for x := 0; x < w; x++ {
			i := x * 4
			row[i+0] = OcclusionPlaceholder
			row[i+1] = ChannelValue(roughness, rb.Min.X+x, rb.Min.Y+y, Red)
			row[i+2] = ChannelValue(metallic, mb.Min.X+x, mb.Min.Y+y, Red)
			row[i+3] = 255
		}
	}
	return out, nil
}

// PackFiles loads the metallic and roughness maps from disk and packs them.
// Nothing is written to disk.
func PackFiles(metallicPath, roughnessPath string) (*Packed, error) {
	// Both paths are checked before anything is decoded.
	if err := CheckPath(metallicPath); err != nil {
		return nil, errors.Wrap(err, "metallic map")
	}
	if err := CheckPath(roughnessPath); err != nil {
		return nil, errors.Wrap(err, "roughness map")
	}

	metallic, err := Load(metallicPath)
	if err != nil {
		return nil, errors.Wrap(err, "loading metallic map")
	}
	roughness, err := Load(roughnessPath)
	if err != nil {
		return nil, errors.Wrap(err, "loading roughness map")
	}

	img, err := Pack(metallic, roughness)
	if err != nil {
		return nil, err
	}

	return &Packed{
		Image:         img,
		Width:         img.Bounds().Dx(),
		Height:        img.Bounds().Dy(),
		MetallicPath:  metallicPath,
		RoughnessPath: roughnessPath,
	}, nil
}
