// Package deptree defines the normalized npm dependency tree shared by the
// resolver, scanner, and report layers.
//
// Both source formats collapse into the same shape: entries from
// `npm ls --json` (objects with a version and nested dependencies) and
// declarations from package.json (bare version strings) become [Node]
// values with a level and parent assigned during the recursive walk.
package deptree

import "encoding/json"

// Node is a single package in a repository's dependency tree.
type Node struct {
	Version      string `json:"version"`
	Level        int    `json:"level"`
	Parent       string `json:"parent,omitempty"`
	Dependencies Tree   `json:"dependencies"`
}

// Tree maps package names to their nodes. The top-level mapping contains
// only direct (level 0) dependencies; a child's level is always its
// parent's level plus one.
type Tree map[string]*Node

// Entry is one dependency as reported by a source format before
// normalization. npm ls emits objects; package.json declares bare version
// strings. UnmarshalJSON accepts both.
type Entry struct {
	Version      string
	Dependencies map[string]Entry
}

// UnmarshalJSON decodes either a plain version string or an object with
// optional nested dependencies.
func (e *Entry) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &e.Version)
	}
	var obj struct {
		Version      string           `json:"version"`
		Dependencies map[string]Entry `json:"dependencies"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	e.Version = obj.Version
	e.Dependencies = obj.Dependencies
	return nil
}

// Normalize converts source entries into the uniform node shape. The
// returned tree is never nil, so it serializes as an object rather than
// null when embedded in the report.
func Normalize(entries map[string]Entry) Tree {
	return normalize(entries, 0, "")
}

func normalize(entries map[string]Entry, level int, parent string) Tree {
	t := make(Tree, len(entries))
	for name, e := range entries {
		t[name] = &Node{
			Version:      e.Version,
			Level:        level,
			Parent:       parent,
			Dependencies: normalize(e.Dependencies, level+1, name),
		}
	}
	return t
}

// FromManifest normalizes declared dependencies (name to version range).
// Every resulting node sits at level 0 with no children and a version
// equal to the declared string.
func FromManifest(declared map[string]string) Tree {
	entries := make(map[string]Entry, len(declared))
	for name, version := range declared {
		entries[name] = Entry{Version: version}
	}
	return Normalize(entries)
}

// Count returns the direct and transitive dependency counts for t.
// Direct is the size of the top-level mapping; transitive is the
// recursive sum of the direct counts of every descendant node. An empty
// tree contributes zero to both.
func Count(t Tree) (direct, transitive int) {
	direct = len(t)
	for _, n := range t {
		d, tr := Count(n.Dependencies)
		transitive += d + tr
	}
	return direct, transitive
}
