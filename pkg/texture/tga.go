package texture

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"
)

// TGA image type constants.
const (
	TGATypeTrueColor    = 2  // Uncompressed true-color
	TGATypeGray         = 3  // Uncompressed greyscale
	TGATypeTrueColorRLE = 10 // RLE compressed true-color
	TGATypeGrayRLE      = 11 // RLE compressed greyscale
)

const tgaHeaderSize = 18

func init() {
	// TGA has no magic number. The header starts with an ID length and a
	// colour-map type of 0, followed by one of the image types we decode.
	for _, magic := range []string{"?\x00\x02", "?\x00\x03", "?\x00\x0a", "?\x00\x0b"} {
		image.RegisterFormat("tga", magic, DecodeTGA, DecodeTGAConfig)
	}
}

// maxTGADimension bounds each side of a decoded TGA.
const maxTGADimension = 16384

type tgaHeader struct {
	idLength    int
	imageType   byte
	width       int
	height      int
	bpp         int
	topToBottom bool
	rightToLeft bool
}

func readTGAHeader(r io.Reader) (tgaHeader, error) {
	var raw [tgaHeaderSize]byte
	if _, err := io.ReadFull(r, raw[:]); err != nil {
		return tgaHeader{}, fmt.Errorf("TGA header: %w", err)
	}

	h := tgaHeader{
		idLength:  int(raw[0]),
		imageType: raw[2],
		width:     int(raw[12]) | int(raw[13])<<8,
		height:    int(raw[14]) | int(raw[15])<<8,
		bpp:       int(raw[16]),
		// Descriptor bits 4 and 5 give the pixel origin.
		rightToLeft: raw[17]&0x10 != 0,
		topToBottom: raw[17]&0x20 != 0,
	}

	if raw[1] != 0 {
		return h, fmt.Errorf("color-mapped TGA not supported")
	}
	switch h.imageType {
	case TGATypeTrueColor, TGATypeTrueColorRLE:
		if h.bpp != 24 && h.bpp != 32 {
			return h, fmt.Errorf("unsupported TGA bit depth %d for true-color (only 24/32 supported)", h.bpp)
		}
	case TGATypeGray, TGATypeGrayRLE:
		if h.bpp != 8 {
			return h, fmt.Errorf("unsupported TGA bit depth %d for greyscale (only 8 supported)", h.bpp)
		}
	default:
		return h, fmt.Errorf("unsupported TGA type %d", h.imageType)
	}
	if h.width == 0 || h.height == 0 {
		return h, fmt.Errorf("TGA has zero size %dx%d", h.width, h.height)
	}
	if h.width > maxTGADimension || h.height > maxTGADimension {
		return h, fmt.Errorf("TGA size %dx%d exceeds %d", h.width, h.height, maxTGADimension)
	}
	return h, nil
}

func (h tgaHeader) gray() bool {
	return h.imageType == TGATypeGray || h.imageType == TGATypeGrayRLE
}

func (h tgaHeader) rle() bool {
	return h.imageType == TGATypeTrueColorRLE || h.imageType == TGATypeGrayRLE
}

// DecodeTGAConfig returns the dimensions and colour model of a TGA stream.
func DecodeTGAConfig(r io.Reader) (image.Config, error) {
	h, err := readTGAHeader(r)
	if err != nil {
		return image.Config{}, err
	}
	model := color.NRGBAModel
	if h.gray() {
		model = color.GrayModel
	}
	return image.Config{ColorModel: model, Width: h.width, Height: h.height}, nil
}

// DecodeTGA decodes a TGA image.
// Greyscale files decode to *image.Gray, true-color files to *image.NRGBA.
func DecodeTGA(r io.Reader) (image.Image, error) {
	br := bufio.NewReader(r)
	h, err := readTGAHeader(br)
	if err != nil {
		return nil, err
	}
	if _, err := br.Discard(h.idLength); err != nil {
		return nil, fmt.Errorf("TGA data truncated")
	}

	// Pixel data is read before the image is allocated, so a header that
	// claims more pixels than the stream holds costs no more than the stream.
	bytesPerPixel := h.bpp / 8
	var pixels []byte
	if h.rle() {
		pixels, err = readTGARLE(br, h.width*h.height*bytesPerPixel, bytesPerPixel)
	} else {
		pixels, err = readTGARows(br, h.height, h.width*bytesPerPixel)
	}
	if err != nil {
		return nil, fmt.Errorf("TGA pixel data truncated")
	}

	rowBytes := h.width * bytesPerPixel
	rect := image.Rect(0, 0, h.width, h.height)

	if h.gray() {
		img := image.NewGray(rect)
		for y := 0; y < h.height; y++ {
			src := pixels[y*rowBytes : (y+1)*rowBytes]
			dst := img.Pix[h.destRow(y)*img.Stride:]
			if !h.rightToLeft {
				copy(dst, src)
				continue
			}
			for x := 0; x < h.width; x++ {
				dst[h.destCol(x)] = src[x]
			}
		}
		return img, nil
	}

	img := image.NewNRGBA(rect)
	for y := 0; y < h.height; y++ {
		src := pixels[y*rowBytes : (y+1)*rowBytes]
		dst := img.Pix[h.destRow(y)*img.Stride:]
		for x := 0; x < h.width; x++ {
			i := x * bytesPerPixel
			o := h.destCol(x) * 4
			// Stored as BGR(A)
			dst[o+0] = src[i+2]
			dst[o+1] = src[i+1]
			dst[o+2] = src[i]
			dst[o+3] = 255
			if bytesPerPixel == 4 {
				dst[o+3] = src[i+3]
			}
		}
	}
	return img, nil
}

func (h tgaHeader) destRow(y int) int {
	if h.topToBottom {
		return y
	}
	return h.height - 1 - y
}

func (h tgaHeader) destCol(x int) int {
	if h.rightToLeft {
		return h.width - 1 - x
	}
	return x
}

// readTGARows reads rows of uncompressed pixel data one at a time.
func readTGARows(r io.Reader, rows, rowBytes int) ([]byte, error) {
	var pixels []byte
	for y := 0; y < rows; y++ {
		pixels = append(pixels, make([]byte, rowBytes)...)
		if _, err := io.ReadFull(r, pixels[y*rowBytes:]); err != nil {
			return nil, err
		}
	}
	return pixels, nil
}

// readTGARLE expands RLE packets until total bytes of pixel data are produced.
func readTGARLE(r *bufio.Reader, total, bytesPerPixel int) ([]byte, error) {
	var pixels []byte
	pixel := make([]byte, bytesPerPixel)
	for len(pixels) < total {
		packet, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		count := int(packet&0x7F) + 1
		if rest := (total - len(pixels)) / bytesPerPixel; count > rest {
			count = rest
		}

		if packet&0x80 != 0 {
			// Run: one pixel repeated
			if _, err := io.ReadFull(r, pixel); err != nil {
				return nil, err
			}
			for i := 0; i < count; i++ {
				pixels = append(pixels, pixel...)
			}
			continue
		}

		off := len(pixels)
		pixels = append(pixels, make([]byte, count*bytesPerPixel)...)
		if _, err := io.ReadFull(r, pixels[off:]); err != nil {
			return nil, err
		}
	}
	return pixels, nil
}
