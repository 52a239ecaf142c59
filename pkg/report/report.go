// Package report aggregates scan results into summary counts and renders
// the self-contained HTML report.
//
// The aggregate is computed once, after every worker has finished; no
// ordering among results is assumed. The serialized dependency data is
// embedded verbatim in the rendered document, where the client-side graph
// and table read it.
package report

import (
	"sort"

	"github.com/matzehuels/depradar/pkg/deptree"
	"github.com/matzehuels/depradar/pkg/scan"
)

// Summary holds the derived totals for a scan.
type Summary struct {
	Org            string
	TotalRepos     int
	ReposWithDeps  int
	DirectDeps     int
	TransitiveDeps int
}

// Report is the aggregated output of a scan: summary counts plus the
// repositories with at least one dependency, sorted descending by direct
// dependency count. Equal counts keep their original relative order.
type Report struct {
	Summary Summary
	Repos   []scan.Result
}

// Aggregate filters, sorts, and counts scan results.
func Aggregate(org string, results []scan.Result) Report {
	repos := make([]scan.Result, 0, len(results))
	for _, r := range results {
		if len(r.Dependencies) > 0 {
			repos = append(repos, r)
		}
	}
	sort.SliceStable(repos, func(i, j int) bool {
		return len(repos[i].Dependencies) > len(repos[j].Dependencies)
	})

	s := Summary{
		Org:           org,
		TotalRepos:    len(results),
		ReposWithDeps: len(repos),
	}
	for _, r := range repos {
		direct, transitive := deptree.Count(r.Dependencies)
		s.DirectDeps += direct
		s.TransitiveDeps += transitive
	}

	return Report{Summary: s, Repos: repos}
}
