package scene

import (
	"fmt"
	"sort"

	"github.com/df07/go-minirt/pkg/core"
	"github.com/df07/go-minirt/pkg/geometry"
)

// rgb converts 0-255 channel values to a [0,1] color
func rgb(r, g, b float64) core.Vec3 {
	return core.NewVec3(r/255.0, g/255.0, b/255.0)
}

// NewDefaultScene creates three spheres resting on a ground plane, lit by one
// white light with a soft ambient fill
func NewDefaultScene() *Scene {
	s := New(Camera{
		Position:    core.NewVec3(0, 1, -8),
		Orientation: core.NewVec3(0, -0.1, 1),
		FOV:         70,
	})
	s.SetAmbient(0.2, rgb(255, 255, 255))
	s.AddLight(Light{Position: core.NewVec3(-5, 8, -6), Ratio: 0.7, Color: rgb(255, 255, 255)})

	s.AddObject(geometry.NewPlane(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0)), rgb(200, 200, 200))
	s.AddObject(geometry.NewSphereFromDiameter(core.NewVec3(0, 0, 0), 2), rgb(255, 64, 64))
	s.AddObject(geometry.NewSphereFromDiameter(core.NewVec3(-2.5, 0, 1.5), 2), rgb(64, 255, 64))
	s.AddObject(geometry.NewSphereFromDiameter(core.NewVec3(2.5, 0, 1.5), 2), rgb(64, 64, 255))
	return s
}

// NewShadowScene creates a small sphere hovering between a light and a
// ground plane, so its shadow falls directly below it
func NewShadowScene() *Scene {
	s := New(Camera{
		Position:    core.NewVec3(0, 4, -10),
		Orientation: core.NewVec3(0, -0.4, 1),
		FOV:         60,
	})
	s.SetAmbient(0.1, rgb(255, 255, 255))
	s.AddLight(Light{Position: core.NewVec3(0, 10, 0), Ratio: 1.0, Color: rgb(255, 255, 255)})

	s.AddObject(geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)), rgb(255, 255, 255))
	s.AddObject(geometry.NewSphereFromDiameter(core.NewVec3(0, 2, 0), 2), rgb(255, 200, 0))
	return s
}

// NewMixedScene contains every primitive kind, including a cylinder which is
// carried in the scene but never hit
func NewMixedScene() *Scene {
	s := New(Camera{
		Position:    core.NewVec3(-50, 0, 20),
		Orientation: core.NewVec3(0, 0, 1),
		FOV:         70,
	})
	s.SetAmbient(0.2, rgb(255, 255, 255))
	s.AddLight(Light{Position: core.NewVec3(-40, 0, 30), Ratio: 0.7, Color: rgb(255, 255, 255)})

	s.AddObject(geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1.0, 0)), rgb(255, 0, 225))
	s.AddObject(geometry.NewSphereFromDiameter(core.NewVec3(0, 0, 20), 20), rgb(255, 0, 0))
	s.AddObject(geometry.NewCylinder(core.NewVec3(50, 0, 20.6), core.NewVec3(0, 0, 1.0), 14.2, 21.42), rgb(10, 0, 255))
	return s
}

// NewEmptyScene creates a scene with a camera and nothing to see
func NewEmptyScene() *Scene {
	return New(Camera{
		Position:    core.NewVec3(0, 0, -5),
		Orientation: core.NewVec3(0, 0, 1),
		FOV:         90,
	})
}

var builtinScenes = map[string]func() *Scene{
	"default": NewDefaultScene,
	"shadow":  NewShadowScene,
	"mixed":   NewMixedScene,
	"empty":   NewEmptyScene,
}

// BuiltinSceneNames returns the names accepted by NewBuiltinScene, sorted
func BuiltinSceneNames() []string {
	names := make([]string, 0, len(builtinScenes))
	for name := range builtinScenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewBuiltinScene creates a built-in scene by name
func NewBuiltinScene(name string) (*Scene, error) {
	build, ok := builtinScenes[name]
	if !ok {
		return nil, fmt.Errorf("unknown built-in scene %q", name)
	}
	return build(), nil
}
