package preview

import "github.com/veandco/go-sdl2/sdl"

// Action is what the preview loop should do in response to an event.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionResize
	ActionViewAll
	ActionViewRed
	ActionViewGreen
	ActionViewBlue
)

// ActionFor maps an SDL event to a preview action.
// Closing the window, Escape and Q quit; 0-3 switch the channel view.
func ActionFor(event sdl.Event) Action {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return ActionQuit

	case *sdl.WindowEvent:
		switch e.Event {
		case sdl.WINDOWEVENT_CLOSE:
			return ActionQuit
		case sdl.WINDOWEVENT_RESIZED, sdl.WINDOWEVENT_SIZE_CHANGED:
			return ActionResize
		}

	case *sdl.KeyboardEvent:
		if e.Type != sdl.KEYDOWN || e.Repeat != 0 {
			return ActionNone
		}
		switch e.Keysym.Scancode {
		case sdl.SCANCODE_ESCAPE, sdl.SCANCODE_Q:
			return ActionQuit
		case sdl.SCANCODE_0, sdl.SCANCODE_KP_0:
			return ActionViewAll
		case sdl.SCANCODE_1, sdl.SCANCODE_KP_1:
			return ActionViewRed
		case sdl.SCANCODE_2, sdl.SCANCODE_KP_2:
			return ActionViewGreen
		case sdl.SCANCODE_3, sdl.SCANCODE_KP_3:
			return ActionViewBlue
		}
	}
	return ActionNone
}

// View selects which channels the preview shows.
type View int32

// Values match the uView uniform in preview.frag.
const (
	ViewAll View = iota
	ViewRed
	ViewGreen
	ViewBlue
)

// String names the view for the window title.
func (v View) String() string {
	switch v {
	case ViewRed:
		return "R (occlusion)"
	case ViewGreen:
		return "G (roughness)"
	case ViewBlue:
		return "B (metallic)"
	default:
		return "RGB"
	}
}

// viewFor returns the view an action selects, if any.
func viewFor(a Action) (View, bool) {
	switch a {
	case ActionViewAll:
		return ViewAll, true
	case ActionViewRed:
		return ViewRed, true
	case ActionViewGreen:
		return ViewGreen, true
	case ActionViewBlue:
		return ViewBlue, true
	}
	return ViewAll, false
}
