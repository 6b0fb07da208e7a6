package texture

import (
	"image"
	// Stdlib decoders
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"  // BMP decoder registration
	_ "golang.org/x/image/tiff" // TIFF decoder registration
	_ "golang.org/x/image/webp" // WebP decoder registration
)

// Load reads and decodes the image at path.
// It fails with ErrInvalidPath when path is missing, unreadable or not a
// regular file, and with ErrDecode when the contents are not a supported image.
func Load(path string) (image.Image, error) {
	if err := CheckPath(path); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, invalidPath(path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, decodeFailed(path, err)
	}
	return img, nil
}

// CheckPath reports ErrInvalidPath unless path names an existing regular file.
func CheckPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return invalidPath(path, err)
	}
	if !info.Mode().IsRegular() {
		return invalidPath(path, errors.New("not a regular file"))
	}
	return nil
}

// LoadConfig returns the dimensions of the image at path without decoding pixel data.
func LoadConfig(path string) (image.Config, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return image.Config{}, "", invalidPath(path, err)
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return image.Config{}, "", decodeFailed(path, err)
	}
	return cfg, format, nil
}
