package server

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// handleRender renders a scene and responds with the image. The scene comes
// from a posted YAML body or the scene query parameter; width, height and
// depth may be overridden within the configured limits. format=ppm selects
// a plain PPM response instead of PNG.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	renderID := uuid.NewString()
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

	depth, err := parseIntParam(query, "depth", integrator.DefaultMaxDepth, 0, s.config.MaxDepth)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	format := query.Get("format")
	if format == "" {
		format = "png"
	}
	if format != "png" && format != "ppm" {
		writeError(w, http.StatusBadRequest, "format must be png or ppm")
		return
	}

	camera, err := renderer.NewCameraFromConfig(sc.Camera)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	config := renderer.Config{MaxDepth: depth, NumWorkers: s.config.NumWorkers}
	rend, err := renderer.NewRenderer(camera, sc.World, nil, config, NewRenderLogger(renderID, logger))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Use request context to stop rendering when the client disconnects
	img, stats, err := rend.Render(r.Context())
	if err != nil {
		if errors.Is(err, renderer.ErrInterrupted) {
			logger.Infof("render %s cancelled by client", renderID)
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	var buf bytes.Buffer
	contentType := "image/png"
	if format == "ppm" {
		contentType = "image/x-portable-pixmap"
		err = img.WritePPM(&buf)
	} else {
		err = img.WritePNG(&buf)
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to encode image")
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Id", renderID)
	w.Header().Set("X-Render-Time-Ms", strconv.FormatInt(stats.Duration.Milliseconds(), 10))
	w.Header().Set("X-Render-Pixels", strconv.Itoa(stats.TotalPixels))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		logger.Warningf("render %s: writing response: %v", renderID, err)
	}
}
