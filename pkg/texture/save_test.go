package texture

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func packedFixture(t *testing.T) *image.RGBA {
	t.Helper()
	out, err := Pack(gradient(8, 4, 11), gradient(8, 4, 90))
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}
	return out
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"out.png", FormatPNG},
		{"OUT.PNG", FormatPNG},
		{"noext", FormatPNG},
		{"a.jpg", FormatJPEG},
		{"a.jpeg", FormatJPEG},
		{"a.bmp", FormatBMP},
		{"a.tif", FormatTIFF},
		{"a.tiff", FormatTIFF},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if err != nil {
			t.Errorf("FormatFromPath(%q) error: %v", tt.path, err)
			continue
		}
		if got != tt.want {
			t.Errorf("FormatFromPath(%q) = %s, want %s", tt.path, got, tt.want)
		}
	}

	if _, err := FormatFromPath("a.exr"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat for .exr, got %v", err)
	}
}

func TestSave_LosslessRoundTrip(t *testing.T) {
	img := packedFixture(t)
	dir := t.TempDir()

	for _, name := range []string{"packed.png", "packed.bmp", "packed.tiff"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, "nested", name)
			if err := Save(path, img); err != nil {
				t.Fatalf("Save failed: %v", err)
			}

			loaded, err := Load(path)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if loaded.Bounds() != img.Bounds() {
				t.Fatalf("bounds %v, want %v", loaded.Bounds(), img.Bounds())
			}
			for y := 0; y < 4; y++ {
				for x := 0; x < 8; x++ {
					want := img.RGBAAt(x, y)
					got := color.RGBAModel.Convert(loaded.At(x, y)).(color.RGBA)
					if got != want {
						t.Fatalf("(%d,%d) = %v, want %v", x, y, got, want)
					}
				}
			}
		})
	}
}

func TestSave_JPEG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "packed.jpg")
	if err := SaveWithOptions(path, packedFixture(t), SaveOptions{JPEGQuality: 80}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	cfg, format, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if format != "jpeg" || cfg.Width != 8 || cfg.Height != 4 {
		t.Errorf("got %s %dx%d, want jpeg 8x4", format, cfg.Width, cfg.Height)
	}
}

func TestSave_UnsupportedLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	err := Save(filepath.Join(dir, "packed.exr"), packedFixture(t))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("expected empty dir after failed save, found %d entries", len(entries))
	}
}

func TestSave_NoTempFilesLeft(t *testing.T) {
	dir := t.TempDir()
	if err := Save(filepath.Join(dir, "packed.png"), packedFixture(t)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 || entries[0].Name() != "packed.png" {
		t.Errorf("expected only packed.png, got %v", entries)
	}
}

func TestDefaultOutputPath(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{filepath.Join("tex", "rock_metallic.png"), filepath.Join("tex", "rock_mr.png")},
		{filepath.Join("tex", "Rock_Metalness.tga"), filepath.Join("tex", "Rock_mr.png")},
		{"steel-metallic.jpg", "steel_mr.png"},
		{"metal.png", "metal_mr.png"},
		{"_metallic.png", "packed_mr.png"},
	}
	for _, tt := range tests {
		if got := DefaultOutputPath(tt.in); got != tt.want {
			t.Errorf("DefaultOutputPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
