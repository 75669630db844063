// Package renderer runs traces across sources in parallel and turns the
// resulting ray paths into drawable output.
package renderer

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/QPG-MIT/optiverse-sub000/log"
	"github.com/QPG-MIT/optiverse-sub000/pkg/element"
	"github.com/QPG-MIT/optiverse-sub000/pkg/tracer"
)

var logger = log.New("renderer")

// Config controls a parallel trace run
type Config struct {
	MaxEvents  int // per-source event budget
	NumWorkers int // <= 0 auto-detects
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		MaxEvents:  tracer.DefaultMaxEvents,
		NumWorkers: 0,
	}
}

// sourceTask is one unit of work for the pool: a single source to trace
type sourceTask struct {
	index  int
	source tracer.Source
}

// sourceResult carries one source's paths back to the collector
type sourceResult struct {
	index int
	paths []tracer.RayPath
}

// TraceParallel traces every source on a worker pool and returns the paths
// grouped by ascending source index, so output order matches the sequential
// tracer. Sources share nothing but the read-only element list, which makes
// the fan-out safe.
func TraceParallel(elements []element.Element, sources []tracer.Source, config Config) ([]tracer.RayPath, error) {
	if config.MaxEvents <= 0 {
		return nil, fmt.Errorf("renderer: event budget must be positive, got %d", config.MaxEvents)
	}
	if len(sources) == 0 {
		return nil, nil
	}

	numWorkers := config.NumWorkers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if numWorkers > len(sources) {
		numWorkers = len(sources)
	}

	tasks := make(chan sourceTask, len(sources))
	results := make(chan sourceResult, len(sources))

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range tasks {
				results <- sourceResult{
					index: task.index,
					paths: tracer.TraceSource(elements, task.source, task.index, config.MaxEvents),
				}
			}
		}()
	}

	for i, src := range sources {
		tasks <- sourceTask{index: i, source: src}
	}
	close(tasks)
	wg.Wait()
	close(results)

	perSource := make([][]tracer.RayPath, len(sources))
	for result := range results {
		perSource[result.index] = result.paths
	}

	var paths []tracer.RayPath
	for _, group := range perSource {
		paths = append(paths, group...)
	}

	logger.Debugf("traced %d sources on %d workers: %d paths", len(sources), numWorkers, len(paths))
	return paths, nil
}
