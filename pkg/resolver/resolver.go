// Package resolver turns a cloned repository checkout into a normalized
// npm dependency tree.
//
// Resolution is an ordered fallback chain. The installed tree
// (npm install followed by npm ls --json) is authoritative when it can be
// materialized and parsed; otherwise the declared dependencies in
// package.json are used; and when those can't be read either, the
// repository resolves to an empty tree. No tier failure is fatal: every
// command or file error is logged and degrades to the next tier.
package resolver

import (
	"context"
	"encoding/json"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/depradar/pkg/deptree"
)

// outcome tags the result of one fallback tier. Each tier's decision is a
// function of the previous tier's outcome, not of error control flow.
type outcome int

const (
	outcomeData    outcome = iota // tier produced a usable tree
	outcomeEmpty                  // tier succeeded but yielded nothing
	outcomeFailure                // tier could not produce data
)

// Resolver resolves dependency trees for repository checkouts.
type Resolver struct {
	run    Runner
	logger *log.Logger
}

// New creates a Resolver. A nil runner executes real npm commands; a nil
// logger falls back to log.Default().
func New(run Runner, logger *log.Logger) *Resolver {
	if run == nil {
		run = ExecRunner{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Resolver{run: run, logger: logger}
}

// Resolve returns the normalized dependency tree for the checkout at dir.
// A repository without a package.json yields an empty tree immediately.
func (r *Resolver) Resolve(ctx context.Context, dir string) deptree.Tree {
	if !HasManifest(dir) {
		r.logger.Debug("no package.json found", "dir", dir)
		return deptree.Tree{}
	}
	if HasLockfile(dir) {
		r.logger.Debug("found package-lock.json", "dir", dir)
	}

	if err := r.install(ctx, dir); err != nil {
		r.logger.Warn("npm install failed", "dir", dir, "err", err)
		return r.fromManifest(dir)
	}

	tree, out := r.installedTree(ctx, dir)
	if out != outcomeData {
		// An empty installed tree falls back to the declared manifest,
		// the same as unparsable npm ls output.
		return r.fromManifest(dir)
	}
	return tree
}

func (r *Resolver) install(ctx context.Context, dir string) error {
	_, err := r.run.Run(ctx, dir, "npm", "install")
	return err
}

// installedTree queries the materialized tree. npm ls exits non-zero for
// extraneous or missing packages while still printing valid JSON, so the
// exit code is ignored and only the output decides the outcome.
func (r *Resolver) installedTree(ctx context.Context, dir string) (deptree.Tree, outcome) {
	out, _ := r.run.Run(ctx, dir, "npm", "ls", "--json")

	var listing struct {
		Dependencies map[string]deptree.Entry `json:"dependencies"`
	}
	if err := json.Unmarshal(out, &listing); err != nil {
		r.logger.Warn("unparsable npm ls output", "dir", dir, "err", err)
		return nil, outcomeFailure
	}
	if len(listing.Dependencies) == 0 {
		return deptree.Tree{}, outcomeEmpty
	}
	return deptree.Normalize(listing.Dependencies), outcomeData
}

func (r *Resolver) fromManifest(dir string) deptree.Tree {
	declared, err := readManifest(dir)
	if err != nil {
		r.logger.Warn("error reading package.json", "dir", dir, "err", err)
		return deptree.Tree{}
	}
	return deptree.FromManifest(declared)
}
