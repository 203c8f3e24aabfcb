package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/df07/go-sphere-raytracer/pkg/config"
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/output"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
)

// Request limits for /api/render
const (
	MaxImageSize  = 1920
	MaxSamples    = 1000
	MaxDepthLimit = 200
	// MaxSampleBudget caps width*height*samples for a single request
	MaxSampleBudget = 800 * 600 * 100
)

// Server handles web requests for the raytracer
type Server struct {
	port int
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	return &Server{port: port}
}

// RenderRequest represents a render request from the client.
// Zero size and sampling fields fall back to the scene's defaults.
type RenderRequest struct {
	Scene   string
	Width   int
	Height  int
	Samples int
	Depth   int
	Seed    int64
}

// Handler returns the API routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the builtin scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scene.List())
}

// handleRender renders a single pass and responds with a PNG
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req, err := s.parseRenderRequest(r)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid request: %v", err), http.StatusBadRequest)
		return
	}

	sceneObj, err := scene.Lookup(req.Scene)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, scene.ErrUnknownScene) {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return
	}
	applyOverrides(sceneObj, req)

	raytracer := renderer.NewRaytracer(sceneObj, sceneObj.Width, sceneObj.Height)
	raytracer.SetSamplingConfig(sceneObj.SamplingConfig)
	raytracer.SetSampler(core.NewSeededSampler(req.Seed))
	raytracer.SetLogger(renderer.NewNopLogger())

	start := time.Now()
	img, stats, err := raytracer.RenderPass(r.Context())
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			log.Printf("Render %s cancelled after %v: %v", sceneObj.Name, time.Since(start), err)
			http.Error(w, "render cancelled", http.StatusServiceUnavailable)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	data, err := output.EncodePNG(img)
	if err != nil {
		log.Printf("Failed to encode render: %v", err)
		http.Error(w, "encoding failed", http.StatusInternalServerError)
		return
	}
	log.Printf("Render %s %dx%d finished in %v (%d samples)",
		sceneObj.Name, sceneObj.Width, sceneObj.Height, time.Since(start), stats.TotalSamples)

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// applyOverrides copies non-zero request fields onto the scene
func applyOverrides(s *scene.Scene, req *RenderRequest) {
	if req.Width > 0 || req.Height > 0 {
		width, height := s.Width, s.Height
		if req.Width > 0 {
			width = req.Width
		}
		if req.Height > 0 {
			height = req.Height
		}
		s.Resize(width, height)
	}
	if req.Samples > 0 {
		s.SamplingConfig.SamplesPerPixel = req.Samples
	}
	if req.Depth > 0 {
		s.SamplingConfig.MaxDepth = req.Depth
	}
}

// parseRenderRequest parses and validates render parameters from the URL
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{
		Scene: query.Get("scene"),
	}
	if req.Scene == "" {
		req.Scene = config.DefaultScene
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 0, 1, MaxImageSize); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 0, 1, MaxImageSize); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(query, "samples", 0, 1, MaxSamples); err != nil {
		return nil, err
	}
	if req.Depth, err = parseIntParam(query, "depth", 0, 1, MaxDepthLimit); err != nil {
		return nil, err
	}

	if err := checkSampleBudget(req); err != nil {
		return nil, err
	}

	req.Seed = config.DefaultSeed
	if value := query.Get("seed"); value != "" {
		if req.Seed, err = strconv.ParseInt(value, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid seed: %s", value)
		}
	}

	return req, nil
}

// checkSampleBudget rejects requests whose total sample count is too large.
// Fields left at zero are resolved against the requested scene.
func checkSampleBudget(req *RenderRequest) error {
	width, height, samples := req.Width, req.Height, req.Samples
	if width == 0 || height == 0 || samples == 0 {
		s, err := scene.Lookup(req.Scene)
		if err != nil {
			// Unknown scenes are reported by the handler
			return nil
		}
		if width == 0 {
			width = s.Width
		}
		if height == 0 {
			height = s.Height
		}
		if samples == 0 {
			samples = s.SamplingConfig.SamplesPerPixel
		}
	}
	if total := width * height * samples; total > MaxSampleBudget {
		return fmt.Errorf("width*height*samples must be at most %d, got: %d", MaxSampleBudget, total)
	}
	return nil
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

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}
