package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/log"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// maxSceneBytes bounds the size of a posted YAML scene
const maxSceneBytes = 1 << 20

// ErrBadRequest marks errors caused by the client's request
var ErrBadRequest = errors.New("server: bad request")

var logger = log.New("server")

// Config contains web server configuration
type Config struct {
	Port       int    // TCP port to listen on
	MaxWidth   int    // Largest image width a request may ask for
	MaxHeight  int    // Largest image height a request may ask for
	MaxDepth   int    // Largest recursion depth a request may ask for
	NumWorkers int    // Render workers per request, 0 = runtime.NumCPU()
	ScenesDir  string // Directory holding YAML scene files
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Port:      8080,
		MaxWidth:  2000,
		MaxHeight: 2000,
		MaxDepth:  10,
		ScenesDir: "scenes",
	}
}

// Server handles web requests for the raytracer
type Server struct {
	config Config
	mux    *http.ServeMux
}

// NewServer creates a new web server. Non-positive limits fall back to the defaults.
func NewServer(config Config) *Server {
	defaults := DefaultConfig()
	if config.Port <= 0 {
		config.Port = defaults.Port
	}
	if config.MaxWidth <= 0 {
		config.MaxWidth = defaults.MaxWidth
	}
	if config.MaxHeight <= 0 {
		config.MaxHeight = defaults.MaxHeight
	}
	if config.MaxDepth <= 0 {
		config.MaxDepth = defaults.MaxDepth
	}

	s := &Server{config: config, mux: http.NewServeMux()}

	// API endpoints
	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.HandleFunc("/api/scenes", s.handleScenes)
	s.mux.HandleFunc("/api/render", s.handleRender)
	s.mux.HandleFunc("/api/inspect", s.handleInspect)

	return s
}

// Handler returns the server's request router
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the web server and blocks until it fails
func (s *Server) Start() error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.config.Port),
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Noticef("Starting web server on http://localhost%s", srv.Addr)
	return srv.ListenAndServe()
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists built-in scenes and the scene files in the scenes directory
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	scenes, err := scene.ListAllScenes(s.config.ScenesDir)
	if err != nil {
		logger.Errorf("listing scenes: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list scenes")
		return
	}
	writeJSON(w, http.StatusOK, scenes)
}

// resolveScene builds the scene a request refers to: a posted YAML body, a
// "file:<name>" scene from the scenes directory, or a built-in scene by name.
func (s *Server) resolveScene(r *http.Request) (*scene.Scene, error) {
	if r.Method == http.MethodPost && r.Body != nil {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxSceneBytes+1))
		if err != nil {
			return nil, fmt.Errorf("%w: reading body: %v", ErrBadRequest, err)
		}
		if len(body) > maxSceneBytes {
			return nil, fmt.Errorf("%w: scene larger than %d bytes", ErrBadRequest, maxSceneBytes)
		}
		if len(strings.TrimSpace(string(body))) > 0 {
			sc, err := loaders.LoadScene(strings.NewReader(string(body)))
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
			}
			return sc, nil
		}
	}

	name := r.URL.Query().Get("scene")
	if name == "" {
		name = "default"
	}

	if strings.HasPrefix(name, "file:") {
		files, err := scene.ListSceneFiles(s.config.ScenesDir)
		if err != nil {
			return nil, err
		}
		for _, info := range files {
			if info.ID == name {
				return loaders.LoadSceneFile(info.FilePath)
			}
		}
		return nil, fmt.Errorf("%w: unknown scene file %q", ErrBadRequest, name)
	}

	sc, err := scene.Builtin(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	return sc, nil
}

// applySize overrides the scene's image size from the width and height query parameters
func (s *Server) applySize(sc *scene.Scene, query url.Values) error {
	width, err := parseIntParam(query, "width", sc.Camera.Width, 1, s.config.MaxWidth)
	if err != nil {
		return err
	}
	height, err := parseIntParam(query, "height", sc.Camera.Height, 1, s.config.MaxHeight)
	if err != nil {
		return err
	}
	if width > s.config.MaxWidth || height > s.config.MaxHeight {
		return fmt.Errorf("%w: scene size %dx%d exceeds limit %dx%d",
			ErrBadRequest, width, height, s.config.MaxWidth, s.config.MaxHeight)
	}
	sc.Camera = sc.Camera.WithSize(width, height)
	return nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("%w: invalid %s: %s", ErrBadRequest, key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%w: %s must be between %d and %d, got: %d", ErrBadRequest, key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// statusFor maps an error to the HTTP status reported to the client
func statusFor(err error) int {
	if errors.Is(err, ErrBadRequest) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warningf("writing response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
