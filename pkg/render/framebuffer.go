// Package render implements the relic software pipeline: fused
// transform+projection, painter's-algorithm depth sorting, scanline polygon
// rasterization, and presentation of the 4-bit framebuffer.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
)

// Default framebuffer resolution, the original 320x200 raster.
const (
	DefaultWidth  = 320
	DefaultHeight = 200
)

// Palette maps the 16 pixel values to display colors.
type Palette [16]color.RGBA

// DefaultPalette is the classic 16-color set the original renderer assumed.
var DefaultPalette = Palette{
	{0x00, 0x00, 0x00, 0xFF}, // 0 black
	{0xDD, 0x00, 0x33, 0xFF}, // 1 deep red
	{0x00, 0x00, 0x99, 0xFF}, // 2 dark blue
	{0xDD, 0x22, 0xDD, 0xFF}, // 3 purple
	{0x00, 0x77, 0x22, 0xFF}, // 4 dark green
	{0x55, 0x55, 0x55, 0xFF}, // 5 dark gray
	{0x22, 0x22, 0xFF, 0xFF}, // 6 medium blue
	{0x66, 0xAA, 0xFF, 0xFF}, // 7 light blue
	{0x88, 0x55, 0x00, 0xFF}, // 8 brown
	{0xFF, 0x66, 0x00, 0xFF}, // 9 orange
	{0xAA, 0xAA, 0xAA, 0xFF}, // 10 light gray
	{0xFF, 0x99, 0x88, 0xFF}, // 11 pink
	{0x00, 0xEE, 0x00, 0xFF}, // 12 green
	{0xFF, 0xFF, 0x00, 0xFF}, // 13 yellow
	{0x44, 0xDD, 0x99, 0xFF}, // 14 aquamarine
	{0xFF, 0xFF, 0xFF, 0xFF}, // 15 white
}

// Framebuffer is a nibble-packed 4-bit-per-pixel raster: each byte holds two
// horizontally adjacent pixels, the even x in the high nibble. A row is
// width/2 bytes, so width must be even.
type Framebuffer struct {
	width  int
	height int
	stride int // bytes per row
	pix    []byte
	pal    Palette
}

// NewFramebuffer allocates a framebuffer. Width must be positive and even;
// height must be positive.
func NewFramebuffer(width, height int) (*Framebuffer, error) {
	if width <= 0 || height <= 0 || width%2 != 0 {
		return nil, fmt.Errorf("render: bad framebuffer size %dx%d (width must be even)", width, height)
	}
	stride := width / 2
	return &Framebuffer{
		width:  width,
		height: height,
		stride: stride,
		pix:    make([]byte, stride*height),
		pal:    DefaultPalette,
	}, nil
}

// Width returns the raster width in pixels.
func (fb *Framebuffer) Width() int { return fb.width }

// Height returns the raster height in pixels.
func (fb *Framebuffer) Height() int { return fb.height }

// SetPalette replaces the display palette. Pixel values are unaffected.
func (fb *Framebuffer) SetPalette(p Palette) { fb.pal = p }

// Palette returns the current display palette.
func (fb *Framebuffer) Palette() Palette { return fb.pal }

// Clear fills every pixel with the given color index.
func (fb *Framebuffer) Clear(c uint8) {
	c &= 0x0F
	packed := c<<4 | c
	for i := range fb.pix {
		fb.pix[i] = packed
	}
}

// SetPixel writes one pixel. The write is a read-modify-write of the shared
// byte so the adjacent pixel survives. Out-of-bounds writes are dropped.
func (fb *Framebuffer) SetPixel(x, y int, c uint8) {
	if x < 0 || x >= fb.width || y < 0 || y >= fb.height {
		return
	}
	i := y*fb.stride + x/2
	if x%2 == 0 {
		fb.pix[i] = fb.pix[i]&0x0F | c<<4
	} else {
		fb.pix[i] = fb.pix[i]&0xF0 | c&0x0F
	}
}

// GetPixel returns the color index at (x, y), or 0 when out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) uint8 {
	if x < 0 || x >= fb.width || y < 0 || y >= fb.height {
		return 0
	}
	b := fb.pix[y*fb.stride+x/2]
	if x%2 == 0 {
		return b >> 4
	}
	return b & 0x0F
}

// ToImage expands the packed raster into a standard RGBA image through the
// palette.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
	for y := 0; y < fb.height; y++ {
		for x := 0; x < fb.width; x++ {
			img.SetRGBA(x, y, fb.pal[fb.GetPixel(x, y)])
		}
	}
	return img
}

// SavePNG writes the framebuffer as a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, fb.ToImage())
}
