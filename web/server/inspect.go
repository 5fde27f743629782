package server

import (
	"net/http"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	GeometryType string                 `json:"geometryType,omitempty"`
	ObjectID     string                 `json:"objectId,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Inside       bool                   `json:"inside"`
	N1           float64                `json:"n1,omitempty"`
	N2           float64                `json:"n2,omitempty"`
	Color        [3]float64             `json:"color"` // Shaded pixel color
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// materialProperties lists a material's coefficients for display
func materialProperties(m material.Material) map[string]interface{} {
	properties := map[string]interface{}{
		"color":           [3]float64{m.Color.R, m.Color.G, m.Color.B},
		"ambient":         m.Ambient,
		"diffuse":         m.Diffuse,
		"specular":        m.Specular,
		"shininess":       m.Shininess,
		"reflective":      m.Reflective,
		"transparency":    m.Transparency,
		"refractiveIndex": m.RefractiveIndex,
	}
	if m.Pattern != nil {
		properties["pattern"] = string(m.Pattern.Kind)
	}
	return properties
}

// inspectPixel casts the ray through the center of a pixel and describes the first object hit
func inspectPixel(sc *scene.Scene, camera *renderer.Camera, depth, px, py int) InspectResponse {
	ray := camera.RayForPixel(px, py)
	color := integrator.NewWhitted(depth).RayColor(ray, sc.World)

	response := InspectResponse{Color: [3]float64{color.R, color.G, color.B}}

	xs := sc.World.Intersect(ray)
	hit, ok := xs.Hit()
	if !ok {
		return response
	}

	comps := geometry.PrepareComputations(hit, ray, xs)
	response.Hit = true
	response.GeometryType = hit.Object.Shape().Kind()
	response.ObjectID = hit.Object.ID().String()
	response.Point = tupleArray(comps.Point)
	response.Normal = tupleArray(comps.Normal)
	response.Distance = comps.T
	response.Inside = comps.Inside
	response.N1, response.N2 = comps.N1, comps.N2
	response.Properties = materialProperties(hit.Object.Material())
	return response
}

func tupleArray(t core.Tuple) [3]float64 {
	return [3]float64{t.X, t.Y, t.Z}
}

// handleInspect reports what the camera ray through pixel (x, y) hits
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	query := r.URL.Query()
	sc, err := s.resolveScene(r)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	if err := s.applySize(sc, query); err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	px, err := parseIntParam(query, "x", sc.Camera.Width/2, 0, sc.Camera.Width-1)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	py, err := parseIntParam(query, "y", sc.Camera.Height/2, 0, sc.Camera.Height-1)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	depth, err := parseIntParam(query, "depth", integrator.DefaultMaxDepth, 0, s.config.MaxDepth)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	camera, err := renderer.NewCameraFromConfig(sc.Camera)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, inspectPixel(sc, camera, depth, px, py))
}
