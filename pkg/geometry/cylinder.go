package geometry

import (
	"github.com/df07/go-minirt/pkg/core"
)

// Cylinder represents a finite capped cylinder. Ray intersection is not
// implemented: Intersect always reports NoHit, so cylinders are parsed and
// carried in the scene but never rendered.
type Cylinder struct {
	Center   core.Vec3
	Axis     core.Vec3
	Diameter float64
	Height   float64
}

// NewCylinder creates a new cylinder
func NewCylinder(center, axis core.Vec3, diameter, height float64) *Cylinder {
	return &Cylinder{
		Center:   center,
		Axis:     axis,
		Diameter: diameter,
		Height:   height,
	}
}

func (c *Cylinder) Kind() Kind { return KindCylinder }

func (c *Cylinder) primitive() {}

// Intersect always misses.
// TODO: solve the side quadratic and the two cap discs, keeping the no-hit
// contract until the renderer is ready to shade cylinders.
func (c *Cylinder) Intersect(_ core.Ray) float64 {
	return NoHit
}

// NormalAt returns the radial direction from the cylinder axis. Traversal
// never produces a cylinder hit, so this is only reachable directly.
func (c *Cylinder) NormalAt(point core.Vec3) core.Vec3 {
	axis := c.Axis.Normalize()
	rel := point.Subtract(c.Center)
	return rel.Subtract(axis.Multiply(rel.Dot(axis))).Normalize()
}
