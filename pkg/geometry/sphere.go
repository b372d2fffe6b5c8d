package geometry

import (
	"math"

	"github.com/df07/go-minirt/pkg/core"
)

// SphereEpsilon is the smallest root accepted as a sphere hit. Roots at or
// below it are treated as the ray origin itself sitting on the surface.
const SphereEpsilon = 1e-6

// Sphere represents a sphere shape
type Sphere struct {
	Center core.Vec3
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64) *Sphere {
	return &Sphere{
		Center: center,
		Radius: radius,
	}
}

// NewSphereFromDiameter creates a sphere from its diameter, as scene files describe it
func NewSphereFromDiameter(center core.Vec3, diameter float64) *Sphere {
	return NewSphere(center, diameter/2.0)
}

func (s *Sphere) Kind() Kind { return KindSphere }

func (s *Sphere) primitive() {}

// Intersect tests if a ray intersects with the sphere
func (s *Sphere) Intersect(ray core.Ray) float64 {
	if s.Radius <= 0 {
		return NoHit
	}

	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	b := 2.0 * oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	if a == 0 {
		return NoHit
	}

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return NoHit
	}

	sqrtD := math.Sqrt(discriminant)
	t1 := (-b - sqrtD) / (2.0 * a)
	t2 := (-b + sqrtD) / (2.0 * a)

	// t1 <= t2 always holds since a > 0; prefer the near root
	if t1 > SphereEpsilon {
		return t1
	}
	// Origin inside the sphere: only the exit point is ahead
	if t2 > SphereEpsilon {
		return t2
	}
	return NoHit
}

// NormalAt returns the outward normal (from center to point)
func (s *Sphere) NormalAt(point core.Vec3) core.Vec3 {
	return point.Subtract(s.Center).Normalize()
}
