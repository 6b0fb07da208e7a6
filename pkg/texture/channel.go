package texture

import (
	"image"
	"image/color"
)

// Channel selects one component of a pixel.
type Channel int

const (
	Red Channel = iota
	Green
	Blue
	Alpha
)

// String returns the channel name.
func (c Channel) String() string {
	switch c {
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	case Alpha:
		return "alpha"
	default:
		return "unknown"
	}
}

// ChannelValue returns the 8-bit, non-premultiplied value of channel ch at (x, y).
// Greyscale images report their luminance for every colour channel.
// 16-bit sources keep the high byte.
func ChannelValue(img image.Image, x, y int, ch Channel) uint8 {
	switch src := img.(type) {
	case *image.Gray:
		if ch == Alpha {
			return 255
		}
		return src.Pix[src.PixOffset(x, y)]
	case *image.NRGBA:
		return src.Pix[src.PixOffset(x, y)+int(ch)]
	case *image.RGBA:
		// Opaque pixels are the common case and need no un-premultiplying.
		i := src.PixOffset(x, y)
		if src.Pix[i+3] == 255 {
			return src.Pix[i+int(ch)]
		}
	}

	c := color.NRGBA64Model.Convert(img.At(x, y)).(color.NRGBA64)
	switch ch {
	case Red:
		return uint8(c.R >> 8)
	case Green:
		return uint8(c.G >> 8)
	case Blue:
		return uint8(c.B >> 8)
	default:
		return uint8(c.A >> 8)
	}
}
