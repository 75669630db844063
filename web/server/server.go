// Package server exposes the tracer over HTTP: built-in scene listings,
// scene document tracing, and SVG rendering of traced benches.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/kelseyhightower/envconfig"

	"github.com/QPG-MIT/optiverse-sub000/log"
	"github.com/QPG-MIT/optiverse-sub000/pkg/renderer"
	"github.com/QPG-MIT/optiverse-sub000/pkg/scene"
)

var logger = log.New("server")

// Config holds the server settings, read from the environment
type Config struct {
	Port    int `envconfig:"PORT" default:"8080"`
	Workers int `envconfig:"TRACE_WORKERS" default:"0"`
}

// LoadConfig reads the server configuration from the environment
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("optiverse", &cfg); err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}
	return &cfg, nil
}

// Server handles web requests for the optics tracer
type Server struct {
	cfg    *Config
	router *mux.Router
}

// New creates a server and wires its routes
func New(cfg *Config) *Server {
	s := &Server{
		cfg:    cfg,
		router: mux.NewRouter(),
	}

	s.router.Use(requestLogger)

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", s.handleHealth).Methods("GET")
	api.HandleFunc("/scenes", s.handleScenes).Methods("GET")
	api.HandleFunc("/scenes/{name}", s.handleScene).Methods("GET")
	api.HandleFunc("/trace", s.handleTrace).Methods("POST")
	api.HandleFunc("/trace.svg", s.handleTraceSVG).Methods("POST")

	return s
}

// Router exposes the handler for embedding and tests
func (s *Server) Router() http.Handler {
	return s.router
}

// Start runs the server until it fails
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	logger.Infof("Listening on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"scenes": scene.Names()})
}

func (s *Server) handleScene(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	built := scene.ByName(name)
	if built == nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown scene %q", name))
		return
	}
	writeJSON(w, http.StatusOK, sceneSummary(built))
}

func (s *Server) handleTrace(w http.ResponseWriter, r *http.Request) {
	result, status, err := s.trace(r)
	if err != nil {
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, TraceResponse{
		Scene:     result.scene.Name,
		PathCount: len(result.paths),
		Paths:     result.paths,
	})
}

func (s *Server) handleTraceSVG(w http.ResponseWriter, r *http.Request) {
	result, status, err := s.trace(r)
	if err != nil {
		writeError(w, status, err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	if err := renderer.WriteSVG(w, result.scene.Elements, result.paths, renderer.DefaultSVGOptions()); err != nil {
		logger.Errorf("Writing SVG response: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Errorf("Encoding JSON response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
