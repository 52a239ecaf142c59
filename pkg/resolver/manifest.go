package resolver

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const (
	// ManifestName is the declarative dependency file checked at the
	// repository root.
	ManifestName = "package.json"
	// LockName marks a repository with a previously materialized install.
	LockName = "package-lock.json"
)

// HasManifest reports whether dir contains a package.json.
func HasManifest(dir string) bool {
	return fileExists(filepath.Join(dir, ManifestName))
}

// HasLockfile reports whether dir contains a package-lock.json.
func HasLockfile(dir string) bool {
	return fileExists(filepath.Join(dir, LockName))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

type manifestFile struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// readManifest returns dependencies and devDependencies merged into one
// mapping. devDependencies win on duplicate names.
func readManifest(dir string) (map[string]string, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestName))
	if err != nil {
		return nil, err
	}

	var m manifestFile
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}

	merged := make(map[string]string, len(m.Dependencies)+len(m.DevDependencies))
	for name, version := range m.Dependencies {
		merged[name] = version
	}
	for name, version := range m.DevDependencies {
		merged[name] = version
	}
	return merged, nil
}
