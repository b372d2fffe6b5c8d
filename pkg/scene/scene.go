package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-minirt/pkg/core"
	"github.com/df07/go-minirt/pkg/geometry"
)

var (
	// ErrNoCamera is returned when a scene was built without a camera
	ErrNoCamera = errors.New("scene has no camera")
	// ErrInvalidFOV is returned for a field of view outside (0, 180) degrees
	ErrInvalidFOV = errors.New("camera field of view out of range")
)

// Camera is a pinhole camera. Orientation is the view direction and is
// normalized on use; FOV is the horizontal field of view in degrees.
type Camera struct {
	Position    core.Vec3
	Orientation core.Vec3
	FOV         int
}

// Light is a point light
type Light struct {
	Position core.Vec3
	Ratio    float64 // Intensity, meaningful in [0,1]
	Color    core.Vec3
}

// Ambient is the uniform ambient lighting term
type Ambient struct {
	Ratio float64
	Color core.Vec3
}

// Scene contains all the elements needed for rendering. It is built once and
// only read while a frame is rendered.
type Scene struct {
	Camera  Camera
	Ambient *Ambient // nil means no ambient contribution
	Lights  []Light
	Objects []geometry.Object

	hasCamera bool
}

// New creates an empty scene with the given camera
func New(camera Camera) *Scene {
	s := &Scene{}
	s.SetCamera(camera)
	return s
}

// SetCamera sets the scene camera
func (s *Scene) SetCamera(camera Camera) {
	s.Camera = camera
	s.hasCamera = true
}

// HasCamera reports whether a camera was set
func (s *Scene) HasCamera() bool {
	return s.hasCamera
}

// SetAmbient sets the ambient term, replacing any previous one
func (s *Scene) SetAmbient(ratio float64, color core.Vec3) {
	s.Ambient = &Ambient{Ratio: ratio, Color: color}
}

// AddLight appends a point light
func (s *Scene) AddLight(light Light) {
	s.Lights = append(s.Lights, light)
}

// AddObject appends a primitive with its color
func (s *Scene) AddObject(p geometry.Primitive, color core.Vec3) {
	s.Objects = append(s.Objects, geometry.NewObject(p, color))
}

// Validate checks the invariants the renderer relies on
func (s *Scene) Validate() error {
	if !s.hasCamera {
		return ErrNoCamera
	}
	if s.Camera.FOV <= 0 || s.Camera.FOV >= 180 {
		return fmt.Errorf("%w: %d", ErrInvalidFOV, s.Camera.FOV)
	}
	return nil
}

// GetPrimitiveCount returns the number of objects by kind
func (s *Scene) GetPrimitiveCount() map[geometry.Kind]int {
	counts := make(map[geometry.Kind]int)
	for _, obj := range s.Objects {
		counts[obj.Kind()]++
	}
	return counts
}
