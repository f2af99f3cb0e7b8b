package bmp

import (
	"fmt"
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

// Pixel is one 24-bit colour, fields in on-disk order.
type Pixel struct {
	B, G, R byte
}

// PixelBuffer holds the pixels of a 24-bit image in memory.
//
// Samples are stored as B, G, R triples, row by row starting at the
// top-left pixel, without any row padding. The zero value is an empty
// buffer. A PixelBuffer must not be used by several goroutines at once.
type PixelBuffer struct {
	width   int
	height  int
	samples []byte
}

// NewPixelBuffer allocates a width x height buffer.
func NewPixelBuffer(width, height int) (*PixelBuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w (got %dx%d)", ErrInvalidDimensions, width, height)
	}
	p := &PixelBuffer{}
	p.Resize(width, height)
	return p, nil
}

// Resize discards the current pixels and allocates room for width x height
// new ones. The new contents are unspecified. A zero or negative dimension
// leaves the buffer empty.
func (p *PixelBuffer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		p.width, p.height, p.samples = 0, 0, nil
		return
	}
	p.width = width
	p.height = height
	p.samples = make([]byte, width*height*bytesPerPixel)
}

func (p *PixelBuffer) Width() int  { return p.width }
func (p *PixelBuffer) Height() int { return p.height }

// ByteSize returns the number of bytes of pixel data held in memory.
func (p *PixelBuffer) ByteSize() int {
	return p.width * p.height * bytesPerPixel
}

// Samples returns the raw BGR bytes. The slice aliases the buffer.
func (p *PixelBuffer) Samples() []byte {
	return p.samples
}

func (p *PixelBuffer) inRange(x, y int) bool {
	return x >= 0 && x < p.width && y >= 0 && y < p.height
}

func (p *PixelBuffer) offset(x, y int) int {
	return (y*p.width + x) * bytesPerPixel
}

// PixelAt returns the pixel at (x, y).
func (p *PixelBuffer) PixelAt(x, y int) (Pixel, error) {
	if !p.inRange(x, y) {
		return Pixel{}, fmt.Errorf("%w: (%d, %d) outside %dx%d", ErrOutOfRange, x, y, p.width, p.height)
	}
	i := p.offset(x, y)
	s := p.samples[i : i+bytesPerPixel : i+bytesPerPixel]
	return Pixel{B: s[0], G: s[1], R: s[2]}, nil
}

// SetPixel stores the colour (r, g, b) at (x, y).
// Coordinates outside the buffer are ignored.
func (p *PixelBuffer) SetPixel(x, y int, r, g, b uint8) {
	if !p.inRange(x, y) {
		return
	}
	i := p.offset(x, y)
	p.samples[i+0] = b
	p.samples[i+1] = g
	p.samples[i+2] = r
}

// Fill sets every pixel to (r, g, b).
func (p *PixelBuffer) Fill(r, g, b uint8) {
	for i := 0; i < len(p.samples); i += bytesPerPixel {
		p.samples[i+0] = b
		p.samples[i+1] = g
		p.samples[i+2] = r
	}
}

// AddPixelColor adds (dr, dg, db) to the pixel at (x, y), clamping each
// channel at 255. Coordinates outside the buffer are ignored.
func (p *PixelBuffer) AddPixelColor(x, y int, dr, dg, db uint8) {
	if !p.inRange(x, y) {
		return
	}
	i := p.offset(x, y)
	p.samples[i+0] = addSaturate(p.samples[i+0], db)
	p.samples[i+1] = addSaturate(p.samples[i+1], dg)
	p.samples[i+2] = addSaturate(p.samples[i+2], dr)
}

func addSaturate(a, b uint8) uint8 {
	sum := uint16(a) + uint16(b)
	if sum > 0xff {
		return 0xff
	}
	return uint8(sum)
}

// ColorModel implements image.Image.
func (p *PixelBuffer) ColorModel() color.Model { return color.RGBAModel }

// Bounds implements image.Image.
func (p *PixelBuffer) Bounds() image.Rectangle { return image.Rect(0, 0, p.width, p.height) }

// At implements image.Image.
func (p *PixelBuffer) At(x, y int) color.Color {
	if !p.inRange(x, y) {
		return color.RGBA{}
	}
	i := p.offset(x, y)
	return color.RGBA{R: p.samples[i+2], G: p.samples[i+1], B: p.samples[i+0], A: 0xff}
}

// Set implements draw.Image. Alpha is dropped.
func (p *PixelBuffer) Set(x, y int, c color.Color) {
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	p.SetPixel(x, y, rgba.R, rgba.G, rgba.B)
}

// FromImage copies m into a new buffer whose top-left pixel is m.Bounds().Min.
func FromImage(m image.Image) (*PixelBuffer, error) {
	r := m.Bounds()
	p, err := NewPixelBuffer(r.Dx(), r.Dy())
	if err != nil {
		return nil, err
	}
	xdraw.Copy(p, image.Point{}, m, r, xdraw.Src, nil)
	return p, nil
}
