package renderer

import (
	"testing"

	"github.com/df07/go-minirt/pkg/core"
)

func TestVec3ToColor(t *testing.T) {
	tests := []struct {
		name     string
		color    core.Vec3
		expected uint32
	}{
		{"black", core.NewVec3(0, 0, 0), 0x000000},
		{"white", core.NewVec3(1, 1, 1), 0xFFFFFF},
		{"red", core.NewVec3(1, 0, 0), 0xFF0000},
		{"green", core.NewVec3(0, 1, 0), 0x00FF00},
		{"blue", core.NewVec3(0, 0, 1), 0x0000FF},
		{"truncates", core.NewVec3(0.5, 0.5, 0.5), 0x7F7F7F},
		{"out of range", core.NewVec3(2, -1, 1.5), 0xFF00FF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Vec3ToColor(tt.color); got != tt.expected {
				t.Errorf("Expected %06x, got %06x", tt.expected, got)
			}
		})
	}
}

func TestVec3ToColor_ChannelsInRange(t *testing.T) {
	inputs := []core.Vec3{
		core.NewVec3(-5, 0.3, 7),
		core.NewVec3(1.0000001, -0.0000001, 0.999),
		core.NewVec3(0.1, 0.2, 0.3),
	}
	for _, in := range inputs {
		packed := Vec3ToColor(ClampColor(in))
		if packed > 0xFFFFFF {
			t.Errorf("Packed value %x exceeds 24 bits", packed)
		}
		if packed != Vec3ToColor(in) {
			t.Errorf("Clamping %v before packing changed the result", in)
		}
	}

	r, g, b := UnpackColor(0xA1B2C3)
	if r != 0xA1 || g != 0xB2 || b != 0xC3 {
		t.Errorf("Unexpected channels %x %x %x", r, g, b)
	}
}

func TestFramebuffer_Layout(t *testing.T) {
	fb := NewFramebuffer(4, 3)
	fb.Set(1, 2, 0x102030)

	if fb.Pix[2*4+1] != 0x102030 {
		t.Errorf("Expected row-major index j*width+i to hold the pixel")
	}
	if fb.At(1, 2) != 0x102030 {
		t.Errorf("Expected At to return the stored pixel, got %06x", fb.At(1, 2))
	}

	img := fb.ToImage()
	c := img.RGBAAt(1, 2)
	if c.R != 0x10 || c.G != 0x20 || c.B != 0x30 || c.A != 0xFF {
		t.Errorf("Unexpected image pixel: %+v", c)
	}
	if !img.Opaque() {
		t.Error("Expected an opaque image")
	}
}
