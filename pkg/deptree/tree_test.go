package deptree

import (
	"encoding/json"
	"testing"
)

func TestNormalize_LevelsAndParents(t *testing.T) {
	entries := map[string]Entry{
		"express": {
			Version: "4.18.2",
			Dependencies: map[string]Entry{
				"accepts": {
					Version: "1.3.8",
					Dependencies: map[string]Entry{
						"mime-types": {Version: "2.1.35"},
					},
				},
			},
		},
		"lodash": {Version: "4.17.21"},
	}

	tree := Normalize(entries)

	if got := len(tree); got != 2 {
		t.Fatalf("top-level size = %d, want 2", got)
	}
	for name, n := range tree {
		if n.Level != 0 {
			t.Errorf("%s.Level = %d, want 0", name, n.Level)
		}
		if n.Parent != "" {
			t.Errorf("%s.Parent = %q, want empty", name, n.Parent)
		}
	}

	accepts := tree["express"].Dependencies["accepts"]
	if accepts == nil {
		t.Fatal("missing express > accepts")
	}
	if accepts.Level != 1 || accepts.Parent != "express" {
		t.Errorf("accepts = level %d parent %q, want level 1 parent express", accepts.Level, accepts.Parent)
	}

	mime := accepts.Dependencies["mime-types"]
	if mime == nil {
		t.Fatal("missing accepts > mime-types")
	}
	if mime.Level != accepts.Level+1 || mime.Parent != "accepts" {
		t.Errorf("mime-types = level %d parent %q, want level 2 parent accepts", mime.Level, mime.Parent)
	}
	if mime.Dependencies == nil || len(mime.Dependencies) != 0 {
		t.Errorf("leaf dependencies = %v, want empty non-nil map", mime.Dependencies)
	}
}

func TestFromManifest_RoundTrip(t *testing.T) {
	declared := map[string]string{
		"react":   "^18.2.0",
		"webpack": "~5.88.0",
	}

	tree := FromManifest(declared)

	if len(tree) != len(declared) {
		t.Fatalf("tree size = %d, want %d", len(tree), len(declared))
	}
	for name, version := range declared {
		n := tree[name]
		if n == nil {
			t.Fatalf("missing node %s", name)
		}
		if n.Version != version {
			t.Errorf("%s.Version = %q, want %q", name, n.Version, version)
		}
		if n.Level != 0 {
			t.Errorf("%s.Level = %d, want 0", name, n.Level)
		}
		if len(n.Dependencies) != 0 {
			t.Errorf("%s has %d children, want 0", name, len(n.Dependencies))
		}
	}
}

func TestCount(t *testing.T) {
	tests := []struct {
		name           string
		tree           Tree
		direct, transl int
	}{
		{"empty", Tree{}, 0, 0},
		{"nil", nil, 0, 0},
		{
			"flat",
			FromManifest(map[string]string{"a": "1", "b": "2", "c": "3"}),
			3, 0,
		},
		{
			"nested",
			Normalize(map[string]Entry{
				"a": {Dependencies: map[string]Entry{
					"b": {Dependencies: map[string]Entry{
						"c": {},
						"d": {},
					}},
				}},
				"e": {},
			}),
			2, 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			direct, transitive := Count(tt.tree)
			if direct != tt.direct || transitive != tt.transl {
				t.Errorf("Count() = (%d, %d), want (%d, %d)", direct, transitive, tt.direct, tt.transl)
			}
		})
	}
}

func TestCount_TransitiveMatchesRecursiveDirectSum(t *testing.T) {
	tree := Normalize(map[string]Entry{
		"a": {Dependencies: map[string]Entry{
			"b": {Dependencies: map[string]Entry{"c": {}}},
			"d": {},
		}},
	})

	var sum func(t Tree) int
	sum = func(t Tree) int {
		total := 0
		for _, n := range t {
			d, _ := Count(n.Dependencies)
			total += d + sum(n.Dependencies)
		}
		return total
	}

	_, transitive := Count(tree)
	if want := sum(tree); transitive != want {
		t.Errorf("transitive = %d, want recursive direct sum %d", transitive, want)
	}
}

func TestEntry_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		version string
		deps    int
	}{
		{"version string", `"^1.2.3"`, "^1.2.3", 0},
		{"object", `{"version":"1.0.0"}`, "1.0.0", 0},
		{
			"object with nested deps",
			`{"version":"2.0.0","dependencies":{"x":{"version":"0.1.0"},"y":"^3.0.0"}}`,
			"2.0.0", 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e Entry
			if err := json.Unmarshal([]byte(tt.input), &e); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			if e.Version != tt.version {
				t.Errorf("Version = %q, want %q", e.Version, tt.version)
			}
			if len(e.Dependencies) != tt.deps {
				t.Errorf("len(Dependencies) = %d, want %d", len(e.Dependencies), tt.deps)
			}
		})
	}
}

func TestEntry_UnmarshalJSON_NestedStringForm(t *testing.T) {
	var e Entry
	if err := json.Unmarshal([]byte(`{"dependencies":{"z":"1.0.0"}}`), &e); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if e.Dependencies["z"].Version != "1.0.0" {
		t.Errorf("nested string entry version = %q, want 1.0.0", e.Dependencies["z"].Version)
	}
}
