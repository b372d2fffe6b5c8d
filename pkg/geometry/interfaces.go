package geometry

import (
	"fmt"

	"github.com/df07/go-minirt/pkg/core"
)

// NoHit is the ray parameter reported when a ray misses a primitive
const NoHit = -1.0

// Kind tags the primitive variant of a scene object
type Kind int

const (
	KindSphere Kind = iota + 1
	KindPlane
	KindCylinder
)

func (k Kind) String() string {
	switch k {
	case KindSphere:
		return "sphere"
	case KindPlane:
		return "plane"
	case KindCylinder:
		return "cylinder"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Primitive is the closed set of analytic shapes the tracer understands:
// *Sphere, *Plane and *Cylinder.
type Primitive interface {
	Kind() Kind
	// Intersect returns the smallest positive ray parameter at which the ray
	// meets the primitive, or NoHit.
	Intersect(ray core.Ray) float64
	// NormalAt returns the outward unit normal at a point on the surface.
	NormalAt(point core.Vec3) core.Vec3

	primitive()
}

// Object pairs a primitive with its surface color
type Object struct {
	Primitive Primitive
	Color     core.Vec3
}

// NewObject creates a scene object
func NewObject(p Primitive, color core.Vec3) Object {
	return Object{Primitive: p, Color: color}
}

// Kind returns the kind of the wrapped primitive
func (o Object) Kind() Kind {
	return o.Primitive.Kind()
}
