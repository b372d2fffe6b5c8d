package output

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/df07/go-minirt/pkg/renderer"
	"github.com/ftrvxmtrx/tga"
	"github.com/nfnt/resize"
	"golang.org/x/image/bmp"
)

// ErrUnsupportedFormat is returned for output paths or names with no encoder
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Format identifies an image encoding
type Format int

const (
	FormatBMP Format = iota
	FormatPNG
	FormatWebP
	FormatTGA
)

var formatNames = map[Format]string{
	FormatBMP:  "bmp",
	FormatPNG:  "png",
	FormatWebP: "webp",
	FormatTGA:  "tga",
}

var contentTypes = map[Format]string{
	FormatBMP:  "image/bmp",
	FormatPNG:  "image/png",
	FormatWebP: "image/webp",
	FormatTGA:  "image/x-tga",
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("format(%d)", int(f))
}

// Extension returns the file extension for the format, including the dot
func (f Format) Extension() string {
	return "." + f.String()
}

// ContentType returns the MIME type served or uploaded for the format
func (f Format) ContentType() string {
	if ct, ok := contentTypes[f]; ok {
		return ct
	}
	return "application/octet-stream"
}

// ParseFormat looks up a format by name, case-insensitively
func ParseFormat(name string) (Format, error) {
	name = strings.ToLower(strings.TrimPrefix(name, "."))
	for f, n := range formatNames {
		if n == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

// FormatFromPath picks the format from the file extension
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return 0, fmt.Errorf("%w: %s has no extension", ErrUnsupportedFormat, path)
	}
	return ParseFormat(ext)
}

// Encode writes the framebuffer to w in the given format
func Encode(w io.Writer, fb *renderer.Framebuffer, f Format) error {
	return EncodeImage(w, fb.ToImage(), f)
}

// EncodeImage writes any image to w in the given format. Opaque images are
// written as 24-bit BMP.
func EncodeImage(w io.Writer, img image.Image, f Format) error {
	var err error
	switch f {
	case FormatBMP:
		err = bmp.Encode(w, img)
	case FormatPNG:
		err = png.Encode(w, img)
	case FormatWebP:
		err = nativewebp.Encode(w, img, nil)
	case FormatTGA:
		err = tga.Encode(w, img)
	default:
		return fmt.Errorf("%w: %v", ErrUnsupportedFormat, f)
	}
	if err != nil {
		return fmt.Errorf("%s encode: %w", f, err)
	}
	return nil
}

// Save writes the framebuffer to path, creating parent directories. The
// format is taken from the extension.
func Save(path string, fb *renderer.Framebuffer) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("output: create %s: %w", dir, err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("output: create %s: %w", path, err)
	}

	if err := Encode(file, fb, f); err != nil {
		file.Close()
		return fmt.Errorf("output: %s: %w", path, err)
	}
	return file.Close()
}

// Thumbnail scales the frame down to fit in a maxSize x maxSize box,
// preserving aspect ratio. Frames already small enough are returned as is.
func Thumbnail(fb *renderer.Framebuffer, maxSize int) image.Image {
	img := fb.ToImage()
	if maxSize <= 0 || (fb.Width <= maxSize && fb.Height <= maxSize) {
		return img
	}
	return resize.Thumbnail(uint(maxSize), uint(maxSize), img, resize.Bilinear)
}
