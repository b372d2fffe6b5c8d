package renderer

import (
	"math"

	"github.com/df07/go-minirt/pkg/core"
	"github.com/df07/go-minirt/pkg/scene"
)

// Camera generates primary rays for a fixed image resolution
type Camera struct {
	origin  core.Vec3
	forward core.Vec3
	right   core.Vec3
	up      core.Vec3

	halfFovTan float64
	aspect     float64
	width      int
	height     int
}

// NewCamera precomputes the orthonormal basis and projection for a scene camera
func NewCamera(cam scene.Camera, width, height int) *Camera {
	fovRad := float64(cam.FOV) * math.Pi / 180.0
	right, up, forward := cameraBasis(cam.Orientation)

	return &Camera{
		origin:     cam.Position,
		forward:    forward,
		right:      right,
		up:         up,
		halfFovTan: math.Tan(fovRad / 2),
		aspect:     float64(width) / float64(height),
		width:      width,
		height:     height,
	}
}

// cameraBasis builds right/up/forward from a view direction. World up is +Y
// unless the camera looks almost straight up or down, where +X is used to
// keep the cross product well defined.
func cameraBasis(orientation core.Vec3) (right, up, forward core.Vec3) {
	forward = orientation.Normalize()

	worldUp := core.NewVec3(0, 1, 0)
	if math.Abs(forward.Y) > 0.999 {
		worldUp = core.NewVec3(1, 0, 0)
	}

	right = worldUp.Cross(forward).Normalize()
	up = forward.Cross(right).Normalize()
	return right, up, forward
}

// GetRay returns the ray through the center of pixel (i, j). Row 0 is the
// top of the image.
func (c *Camera) GetRay(i, j int) core.Ray {
	xCam := (2*(float64(i)+0.5)/float64(c.width) - 1) * c.halfFovTan
	xCam *= c.aspect
	yCam := (1 - 2*(float64(j)+0.5)/float64(c.height)) * c.halfFovTan

	direction := c.right.Multiply(xCam).
		Add(c.up.Multiply(yCam)).
		Add(c.forward).
		Normalize()

	return core.NewRay(c.origin, direction)
}

// GetRay is a convenience wrapper that builds a camera for a single ray
func GetRay(cam scene.Camera, i, j, width, height int) core.Ray {
	return NewCamera(cam, width, height).GetRay(i, j)
}
