package renderer

import "github.com/df07/go-minirt/pkg/core"

// Background is the packed color written for rays that hit nothing
const Background uint32 = 0x000000

// Vec3ToColor packs a [0,1] color as 0xRRGGBB. Channels are truncated, not
// rounded, and clamped to [0,255].
func Vec3ToColor(color core.Vec3) uint32 {
	r := channelByte(color.X)
	g := channelByte(color.Y)
	b := channelByte(color.Z)
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

func channelByte(c float64) uint8 {
	v := int(c * 255)
	return uint8(max(0, min(255, v)))
}

// UnpackColor splits a packed 0xRRGGBB value into its channels
func UnpackColor(packed uint32) (r, g, b uint8) {
	return uint8(packed >> 16), uint8(packed >> 8), uint8(packed)
}
