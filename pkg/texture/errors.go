package texture

import (
	"fmt"

	"github.com/pkg/errors"
)

// Errors returned by loading and packing.
var (
	ErrInvalidPath       = errors.New("invalid texture path")
	ErrDimensionMismatch = errors.New("texture dimensions differ")
	ErrDecode            = errors.New("cannot decode texture")
	ErrUnsupportedFormat = errors.New("unsupported output format")
)

// DimensionError reports the sizes of two textures that cannot be packed together.
type DimensionError struct {
	MetallicW, MetallicH   int
	RoughnessW, RoughnessH int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("%v: metallic is %dx%d, roughness is %dx%d",
		ErrDimensionMismatch, e.MetallicW, e.MetallicH, e.RoughnessW, e.RoughnessH)
}

// Is makes errors.Is(err, ErrDimensionMismatch) match.
func (e *DimensionError) Is(target error) bool {
	return target == ErrDimensionMismatch
}

// pathError ties a sentinel to the offending path while keeping the cause.
type pathError struct {
	kind  error
	path  string
	cause error
}

func (e *pathError) Error() string {
	if e.cause == nil {
		return fmt.Sprintf("%v: %s", e.kind, e.path)
	}
	return fmt.Sprintf("%v: %s: %v", e.kind, e.path, e.cause)
}

func (e *pathError) Is(target error) bool { return target == e.kind }

func (e *pathError) Unwrap() error { return e.cause }

func invalidPath(path string, cause error) error {
	return errors.WithStack(&pathError{kind: ErrInvalidPath, path: path, cause: cause})
}

func decodeFailed(path string, cause error) error {
	return errors.WithStack(&pathError{kind: ErrDecode, path: path, cause: cause})
}
