package renderer

import "image"

// Framebuffer is a row-major buffer of packed 0xRRGGBB pixels. Pixel (0,0)
// is the top-left of the image.
type Framebuffer struct {
	Width  int
	Height int
	Pix    []uint32
}

// NewFramebuffer allocates a black framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint32, width*height),
	}
}

// At returns the packed pixel at column i, row j
func (fb *Framebuffer) At(i, j int) uint32 {
	return fb.Pix[j*fb.Width+i]
}

// Set stores the packed pixel at column i, row j
func (fb *Framebuffer) Set(i, j int, packed uint32) {
	fb.Pix[j*fb.Width+i] = packed
}

// ToImage converts the framebuffer to an opaque RGBA image
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	fb.CopyRGBA(img.Pix)
	return img
}

// CopyRGBA writes the pixels as interleaved RGBA bytes into dst, which must
// hold at least Width*Height*4 bytes
func (fb *Framebuffer) CopyRGBA(dst []byte) {
	for idx, packed := range fb.Pix {
		r, g, b := UnpackColor(packed)
		o := idx * 4
		dst[o] = r
		dst[o+1] = g
		dst[o+2] = b
		dst[o+3] = 0xFF
	}
}

