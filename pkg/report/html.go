package report

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/report.html.tmpl
var reportTemplate string

// repoOption is one entry in the repository selector.
type repoOption struct {
	Name   string
	Direct int
}

type pageData struct {
	Org     string
	Summary Summary
	Repos   []repoOption
	// Data is the name-to-tree mapping serialized once and embedded
	// verbatim for the client-side graph and table.
	Data  template.JS
	Token string
}

// Render writes the HTML report for rep to w. The GitHub token is
// embedded for the report's live repository-status lookups.
func Render(w io.Writer, rep Report, token string) error {
	byName := make(map[string]any, len(rep.Repos))
	opts := make([]repoOption, 0, len(rep.Repos))
	for _, r := range rep.Repos {
		byName[r.Name] = r.Dependencies
		opts = append(opts, repoOption{Name: r.Name, Direct: len(r.Dependencies)})
	}

	// encoding/json escapes <, >, and & so the blob is safe inside a
	// script element.
	blob, err := json.Marshal(byName)
	if err != nil {
		return fmt.Errorf("serialize dependency data: %w", err)
	}

	tmpl, err := template.New("report").Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("parse report template: %w", err)
	}

	return tmpl.Execute(w, pageData{
		Org:     rep.Summary.Org,
		Summary: rep.Summary,
		Repos:   opts,
		Data:    template.JS(blob),
		Token:   token,
	})
}
