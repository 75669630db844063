package server

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/QPG-MIT/optiverse-sub000/pkg/loaders"
	"github.com/QPG-MIT/optiverse-sub000/pkg/renderer"
	"github.com/QPG-MIT/optiverse-sub000/pkg/scene"
	"github.com/QPG-MIT/optiverse-sub000/pkg/tracer"
)

// TraceResponse is the JSON body returned by the trace endpoint
type TraceResponse struct {
	Scene     string           `json:"scene,omitempty"`
	PathCount int              `json:"pathCount"`
	Paths     []tracer.RayPath `json:"paths"`
}

// SceneSummary describes a built-in scene to the client
type SceneSummary struct {
	Name         string `json:"name"`
	ElementCount int    `json:"elementCount"`
	SourceCount  int    `json:"sourceCount"`
	MaxEvents    int    `json:"maxEvents"`
}

func sceneSummary(s *scene.Scene) SceneSummary {
	return SceneSummary{
		Name:         s.Name,
		ElementCount: len(s.Elements),
		SourceCount:  len(s.Sources),
		MaxEvents:    s.MaxEvents,
	}
}

type traceResult struct {
	scene *scene.Scene
	paths []tracer.RayPath
}

// trace resolves the scene for a trace request and runs it. The scene comes
// from the "scene" query parameter (a built-in name) or from a scene
// document in the request body.
func (s *Server) trace(r *http.Request) (traceResult, int, error) {
	var sc *scene.Scene
	if name := r.URL.Query().Get("scene"); name != "" {
		sc = scene.ByName(name)
		if sc == nil {
			return traceResult{}, http.StatusNotFound, fmt.Errorf("unknown scene %q", name)
		}
	} else {
		parsed, err := loaders.Parse(r.Body)
		if err != nil {
			return traceResult{}, http.StatusBadRequest, err
		}
		sc = parsed
	}

	config := renderer.DefaultConfig()
	config.MaxEvents = sc.MaxEvents
	config.NumWorkers = s.cfg.Workers
	if raw := r.URL.Query().Get("maxEvents"); raw != "" {
		maxEvents, err := strconv.Atoi(raw)
		if err != nil {
			return traceResult{}, http.StatusBadRequest, fmt.Errorf("invalid maxEvents %q", raw)
		}
		config.MaxEvents = maxEvents
	}

	paths, err := renderer.TraceParallel(sc.Elements, sc.Sources, config)
	if err != nil {
		return traceResult{}, http.StatusBadRequest, err
	}
	return traceResult{scene: sc, paths: paths}, http.StatusOK, nil
}

// requestLogger tags each request with an ID and logs its timing
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.New().String()[:8]
		w.Header().Set("X-Request-ID", requestID)

		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Debugf("[%s] %s %s (%v)", requestID, r.Method, r.URL.Path, time.Since(start))
	})
}
