package texture

import (
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Format is an output encoding.
type Format string

// Supported output formats.
const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
)

// DefaultJPEGQuality is used when SaveOptions.JPEGQuality is zero.
const DefaultJPEGQuality = 95

// SaveOptions tunes encoding.
type SaveOptions struct {
	JPEGQuality int
}

// FormatFromPath picks the output format from the file extension.
// A path without an extension is written as PNG.
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case "", ".png":
		return FormatPNG, nil
	case ".jpg", ".jpeg":
		return FormatJPEG, nil
	case ".bmp":
		return FormatBMP, nil
	case ".tif", ".tiff":
		return FormatTIFF, nil
	default:
		return "", errors.Wrapf(ErrUnsupportedFormat, "extension %q", ext)
	}
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, format Format, opts SaveOptions) error {
	switch format {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatJPEG:
		q := opts.JPEGQuality
		if q <= 0 {
			q = DefaultJPEGQuality
		}
		return jpeg.Encode(w, img, &jpeg.Options{Quality: q})
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return errors.Wrapf(ErrUnsupportedFormat, "format %q", format)
	}
}

// Save encodes img to path, choosing the format from the extension.
func Save(path string, img image.Image) error {
	return SaveWithOptions(path, img, SaveOptions{})
}

// SaveWithOptions is Save with explicit encoder options.
// The image is encoded to a temporary file in the target directory and
// renamed into place, so a failed save leaves no partial file behind.
func SaveWithOptions(path string, img image.Image, opts SaveOptions) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "creating output dir")
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrap(err, "creating file")
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if err := Encode(tmp, img, format, opts); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "encoding %s", format)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "closing file")
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return errors.Wrap(err, "setting file mode")
	}
	return errors.Wrap(os.Rename(tmpName, path), "renaming output")
}

// DefaultOutputPath returns the packed texture path next to the metallic map.
// "rock_metallic.png" becomes "rock_mr.png".
func DefaultOutputPath(metallicPath string) string {
	dir := filepath.Dir(metallicPath)
	base := strings.TrimSuffix(filepath.Base(metallicPath), filepath.Ext(metallicPath))

	lower := strings.ToLower(base)
	for _, suffix := range []string{"_metallic", "_metalness", "-metallic", "-metalness"} {
		if strings.HasSuffix(lower, suffix) {
			base = base[:len(base)-len(suffix)]
			break
		}
	}
	if base == "" {
		base = "packed"
	}
	return filepath.Join(dir, base+"_mr.png")
}
