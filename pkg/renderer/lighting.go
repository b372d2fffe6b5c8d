package renderer

import (
	"github.com/df07/go-minirt/pkg/core"
	"github.com/df07/go-minirt/pkg/scene"
)

// ShadowBias is the fraction of the point-to-light vector the shadow ray
// origin is pushed toward the light, to avoid self-shadowing
const ShadowBias = 0.001

// CalculateLighting shades a resolved hit: ambient plus Lambertian diffuse
// from every unoccluded light, clamped to [0,1]. There is no specular term.
func CalculateLighting(s *scene.Scene, hit scene.Hit) core.Vec3 {
	objColor := hit.Object.Color

	color := ambientLight(s, objColor)
	for _, light := range s.Lights {
		color = color.Add(diffuseLight(s, hit, light, objColor))
	}

	return ClampColor(color)
}

// ambientLight returns object color ⊙ ambient color × ratio, or black
func ambientLight(s *scene.Scene, objColor core.Vec3) core.Vec3 {
	if s.Ambient == nil {
		return core.Vec3{}
	}
	return objColor.MultiplyVec(s.Ambient.Color).Multiply(s.Ambient.Ratio)
}

// diffuseLight returns the contribution of a single light, zero when the
// light is occluded or behind the surface
func diffuseLight(s *scene.Scene, hit scene.Hit, light scene.Light, objColor core.Vec3) core.Vec3 {
	if IsInShadow(s, hit.Point, light) {
		return core.Vec3{}
	}

	lightDir := light.Position.Subtract(hit.Point).Normalize()
	diff := max(0, hit.Normal.Dot(lightDir))

	return objColor.MultiplyVec(light.Color).Multiply(light.Ratio * diff)
}

// IsInShadow casts a shadow ray from point toward light and reports whether
// any object lies strictly before the light
func IsInShadow(s *scene.Scene, point core.Vec3, light scene.Light) bool {
	toLight := light.Position.Subtract(point)
	distance := toLight.Length()

	shadowRay := core.NewRay(
		point.Add(toLight.Multiply(ShadowBias)),
		toLight.Normalize(),
	)

	hit := s.ClosestHit(shadowRay)
	return hit.Ok() && hit.T < distance
}

// ClampColor clamps every channel to [0,1]
func ClampColor(color core.Vec3) core.Vec3 {
	return color.Clamp(0.0, 1.0)
}
