package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-minirt/pkg/core"
	"github.com/df07/go-minirt/pkg/geometry"
	"github.com/df07/go-minirt/pkg/renderer"
	"github.com/df07/go-minirt/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Color        string                 `json:"color,omitempty"`  // Object color
	Shaded       string                 `json:"shaded,omitempty"` // Final pixel color
	InShadow     []bool                 `json:"inShadow,omitempty"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(packed uint32) string {
	return fmt.Sprintf("#%06x", packed)
}

// inspectPixel casts the primary ray through the pixel and describes the
// first object hit
func inspectPixel(sceneObj *scene.Scene, width, height, pixelX, pixelY int) InspectResponse {
	ray := renderer.NewCamera(sceneObj.Camera, width, height).GetRay(pixelX, pixelY)

	hit := sceneObj.ClosestHit(ray)
	if !hit.Ok() {
		return InspectResponse{Hit: false}
	}
	hit.Resolve(ray)

	inShadow := make([]bool, len(sceneObj.Lights))
	for i, light := range sceneObj.Lights {
		inShadow[i] = renderer.IsInShadow(sceneObj, hit.Point, light)
	}

	geometryType, props := extractGeometryInfo(hit.Object.Primitive)
	return InspectResponse{
		Hit:          true,
		GeometryType: geometryType,
		Point:        vecArray(hit.Point),
		Normal:       vecArray(hit.Normal),
		Distance:     hit.T,
		Color:        hexColor(renderer.Vec3ToColor(hit.Object.Color)),
		Shaded:       hexColor(renderer.Vec3ToColor(renderer.CalculateLighting(sceneObj, hit))),
		InShadow:     inShadow,
		Properties:   props,
	}
}

// extractGeometryInfo extracts detailed geometry information
func extractGeometryInfo(p geometry.Primitive) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := p.(type) {
	case *geometry.Sphere:
		properties["center"] = vecArray(geom.Center)
		properties["radius"] = geom.Radius
	case *geometry.Plane:
		properties["point"] = vecArray(geom.Point)
		properties["normal"] = vecArray(geom.Normal)
	case *geometry.Cylinder:
		properties["center"] = vecArray(geom.Center)
		properties["axis"] = vecArray(geom.Axis)
		properties["diameter"] = geom.Diameter
		properties["height"] = geom.Height
	}
	return p.Kind().String(), properties
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	query := r.URL.Query()
	width, err := parseIntParam(query, "width", s.cfg.Width, minDimension, maxDimension)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	height, err := parseIntParam(query, "height", s.cfg.Height, minDimension, maxDimension)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	pixelX, err := strconv.Atoi(query.Get("x"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(query.Get("y"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}
	if pixelX < 0 || pixelX >= width || pixelY < 0 || pixelY >= height {
		writeError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	name := query.Get("scene")
	if name == "" {
		writeError(w, http.StatusBadRequest, "missing scene")
		return
	}
	sceneObj, err := s.createScene(name)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, inspectPixel(sceneObj, width, height, pixelX, pixelY))
}
