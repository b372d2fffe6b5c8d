package geometry

import (
	"math"

	"github.com/df07/go-minirt/pkg/core"
)

// PlaneEpsilon bounds both the parallel-ray test and the minimum accepted t
const PlaneEpsilon = 1e-6

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	Point  core.Vec3 // A point on the plane
	Normal core.Vec3 // Normal vector as given, not necessarily unit length
}

// NewPlane creates a new plane
func NewPlane(point, normal core.Vec3) *Plane {
	return &Plane{
		Point:  point,
		Normal: normal,
	}
}

func (p *Plane) Kind() Kind { return KindPlane }

func (p *Plane) primitive() {}

// Intersect tests if a ray intersects with the plane
func (p *Plane) Intersect(ray core.Ray) float64 {
	denominator := ray.Direction.Dot(p.Normal)

	// Ray parallel to the plane (or degenerate normal)
	if math.Abs(denominator) <= PlaneEpsilon {
		return NoHit
	}

	// t = (point_on_plane - ray_origin) · normal / (ray_direction · normal)
	t := p.Point.Subtract(ray.Origin).Dot(p.Normal) / denominator
	if t > PlaneEpsilon {
		return t
	}
	return NoHit
}

// NormalAt returns the plane normal, which is constant across the plane
func (p *Plane) NormalAt(_ core.Vec3) core.Vec3 {
	return p.Normal.Normalize()
}
