package scene

import (
	"github.com/df07/go-minirt/pkg/core"
	"github.com/df07/go-minirt/pkg/geometry"
)

// Hit is the result of a closest-hit search. Traversal fills T and Object;
// Point and Normal are filled by the caller once a hit is confirmed.
type Hit struct {
	T      float64
	Point  core.Vec3
	Normal core.Vec3
	Object *geometry.Object
}

// Ok reports whether the search found an object
func (h Hit) Ok() bool {
	return h.Object != nil
}

// Resolve fills Point and Normal for a confirmed hit along ray
func (h *Hit) Resolve(ray core.Ray) {
	h.Point = ray.At(h.T)
	h.Normal = h.Object.Primitive.NormalAt(h.Point)
}

// ClosestHit scans every object and returns the nearest positive hit.
// When two objects report the same t, which one wins is unspecified.
func (s *Scene) ClosestHit(ray core.Ray) Hit {
	closest := Hit{T: geometry.NoHit}

	for i := range s.Objects {
		obj := &s.Objects[i]
		t := obj.Primitive.Intersect(ray)
		if t > 0 && (closest.Object == nil || t < closest.T) {
			closest.T = t
			closest.Object = obj
		}
	}

	return closest
}
