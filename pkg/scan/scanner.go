// Package scan fans repository processing out across a bounded worker
// pool and collects results as they complete.
//
// Each unit of work is independent: one repository's clone or resolution
// failure degrades that repository to an empty result and never aborts
// the others. Results arrive in completion order; callers that need a
// stable order sort after the run finishes.
package scan

import (
	"context"
	"runtime"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/depradar/pkg/deptree"
)

// Result is the outcome of processing one repository. It is created once
// per repository and not mutated afterwards.
type Result struct {
	Name         string       `json:"name"`
	Dependencies deptree.Tree `json:"dependencies"`
}

// Processor handles a single repository end to end: clone, detect
// manifest, resolve dependencies, clean up.
type Processor interface {
	Process(ctx context.Context, repo string) Result
}

// ProcessorFunc adapts a function to the Processor interface.
type ProcessorFunc func(ctx context.Context, repo string) Result

// Process implements [Processor].
func (f ProcessorFunc) Process(ctx context.Context, repo string) Result { return f(ctx, repo) }

// Scanner distributes repositories across a fixed-size worker pool.
type Scanner struct {
	proc    Processor
	workers int
	logger  *log.Logger
}

// New creates a Scanner. A workers value of zero or less selects
// runtime.NumCPU().
func New(proc Processor, workers int, logger *log.Logger) *Scanner {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Scanner{proc: proc, workers: workers, logger: logger}
}

// Workers returns the size of the worker pool.
func (s *Scanner) Workers() int { return s.workers }

// Run processes every repository and returns one result per name, in
// completion order. Results are appended by the single collector
// goroutine; workers share nothing else.
func (s *Scanner) Run(ctx context.Context, repos []string) []Result {
	jobs := make(chan string)
	results := make(chan Result)

	var wg sync.WaitGroup
	for range s.workers {
		wg.Add(1)
		go s.worker(ctx, jobs, results, &wg)
	}

	go func() {
		defer close(jobs)
		for _, repo := range repos {
			select {
			case jobs <- repo:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	all := make([]Result, 0, len(repos))
	for r := range results {
		all = append(all, r)
	}

	s.logger.Debug("scan complete", "repos", len(repos), "results", len(all), "workers", s.workers)
	return all
}

func (s *Scanner) worker(ctx context.Context, jobs <-chan string, results chan<- Result, wg *sync.WaitGroup) {
	defer wg.Done()
	for repo := range jobs {
		if ctx.Err() != nil {
			results <- Result{Name: repo, Dependencies: deptree.Tree{}}
			continue
		}
		results <- s.proc.Process(ctx, repo)
	}
}
