package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/df07/go-minirt/pkg/config"
	"github.com/df07/go-minirt/pkg/core"
	"github.com/df07/go-minirt/pkg/loaders"
	"github.com/df07/go-minirt/pkg/renderer"
	"github.com/df07/go-minirt/pkg/scene"
	"github.com/df07/go-minirt/pkg/storage"
)

// DefaultRenderTimeout bounds a single render request
const DefaultRenderTimeout = 20 * time.Second

// maxSceneBytes caps the size of a posted .rt scene
const maxSceneBytes = 1 << 20

// Resolution limits for render and inspect requests
const (
	minDimension = 1
	maxDimension = 4000
)

// Server handles web requests for the raytracer
type Server struct {
	cfg           config.Config
	uploader      storage.Uploader
	logger        core.Logger
	scenesDir     string
	renderTimeout time.Duration
	logs          *renderLogs
}

// NewServer creates a new web server. Unset config fields take their
// defaults. uploader may be nil, in which case upload requests are rejected.
func NewServer(cfg config.Config, uploader storage.Uploader, logger core.Logger) *Server {
	if logger == nil {
		logger = renderer.NewDefaultLogger()
	}
	cfg.Resolve(config.Flags{})
	return &Server{
		cfg:           cfg,
		uploader:      uploader,
		logger:        logger,
		scenesDir:     "scenes",
		renderTimeout: DefaultRenderTimeout,
		logs:          newRenderLogs(),
	}
}

// SetScenesDir changes the directory searched for .rt scenes
func (s *Server) SetScenesDir(dir string) {
	s.scenesDir = dir
}

// Handler returns the API routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/render/logs", s.handleRenderLogs)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	s.logger.Printf("Starting web server on %s\n", s.cfg.Addr)
	return http.ListenAndServe(s.cfg.Addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists built-in scenes and .rt files in the scenes directory
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	scenes, err := scene.ListScenes(s.scenesDir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"scenes": scenes})
}

// createScene resolves a scene by built-in name or by the name of a .rt file
// in the scenes directory
func (s *Server) createScene(name string) (*scene.Scene, error) {
	if sc, err := scene.NewBuiltinScene(name); err == nil {
		return sc, nil
	}

	name = strings.TrimSuffix(name, ".rt")
	if name == "" || filepath.Base(name) != name || strings.Contains(name, "..") {
		return nil, fmt.Errorf("unknown scene: %q", name)
	}

	sc, err := loaders.LoadRT(filepath.Join(s.scenesDir, name+".rt"))
	if err != nil {
		return nil, fmt.Errorf("unknown scene %q: %w", name, err)
	}
	return sc, nil
}

// sceneFromRequest takes the scene named by ?scene= or, when absent, parses
// the request body as .rt text
func (s *Server) sceneFromRequest(w http.ResponseWriter, r *http.Request) (*scene.Scene, error) {
	if name := r.URL.Query().Get("scene"); name != "" {
		return s.createScene(name)
	}
	if r.Body == nil {
		return nil, errors.New("missing scene: send .rt text or ?scene=<name>")
	}

	sc, err := loaders.ParseRT(http.MaxBytesReader(w, r.Body, maxSceneBytes))
	if err != nil {
		return nil, err
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
