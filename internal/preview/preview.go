// Package preview shows a packed texture in an SDL2/OpenGL window.
package preview

import (
	"errors"
	"fmt"
	"image"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/combine-mr/internal/logger"
)

// Options configures the preview window.
type Options struct {
	Title  string
	Width  int
	Height int
	VSync  bool
	Filter string // "nearest" or "linear"
}

// DefaultOptions returns a 512x512 window with nearest-neighbour sampling.
func DefaultOptions() Options {
	return Options{
		Title:  "combinemr",
		Width:  512,
		Height: 512,
		VSync:  true,
		Filter: "nearest",
	}
}

// Show opens a window displaying img and blocks until the user closes it
// or presses Escape. All display resources are released before it returns.
func Show(img *image.RGBA, opts Options) error {
	if img == nil || img.Bounds().Empty() {
		return errors.New("preview: empty image")
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return fmt.Errorf("preview: invalid window size %dx%d", opts.Width, opts.Height)
	}

	win, err := openWindow(opts)
	if err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	defer win.close()

	r, err := newRenderer(img, opts.Filter)
	if err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	defer r.release()

	view := ViewAll
	win.setTitle(title(opts.Title, r.imgW, r.imgH, view))
	logger.Info("preview open, press Esc to close, 0-3 to switch channels",
		zap.Int("width", r.imgW),
		zap.Int("height", r.imgH),
	)

	for {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			action := ActionFor(event)
			switch action {
			case ActionQuit:
				logger.Debug("preview closed")
				return nil
			case ActionResize:
				w, h := win.drawableSize()
				logger.Debug("preview resized", zap.Int("width", w), zap.Int("height", h))
			}
			if v, ok := viewFor(action); ok && v != view {
				view = v
				win.setTitle(title(opts.Title, r.imgW, r.imgH, view))
			}
		}

		w, h := win.drawableSize()
		r.draw(w, h, view)
		win.swap()

		if !opts.VSync {
			// Nothing animates, so there is no reason to spin.
			sdl.Delay(16)
		}
	}
}

func title(base string, w, h int, view View) string {
	return fmt.Sprintf("%s - %dx%d - %s", base, w, h, view)
}
