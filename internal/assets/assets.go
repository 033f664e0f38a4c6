// Package assets resolves stylesheet and script URLs, preferring the
// content-hashed names recorded in the build manifest.
package assets

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const (
	DashboardCSS = "css/dashboard.css"
	DashboardJS  = "js/dashboard.js"

	urlPrefix = "/static/"
)

// Manifest maps asset paths relative to the static directory to their hashed
// names, e.g. "css/dashboard.css" to "dist/css/dashboard.3f2a.css".
type Manifest struct {
	mu        sync.RWMutex
	assets    map[string]string
	staticDir string
}

func NewManifest(staticDir string) *Manifest {
	return &Manifest{
		assets:    make(map[string]string),
		staticDir: staticDir,
	}
}

// Load reads dist/manifest.json. A missing manifest is not an error: assets
// are then served under their source names.
func (m *Manifest) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	manifestPath := filepath.Join(m.staticDir, "dist", "manifest.json")

	// #nosec G304 -- manifestPath is built from configured STATIC_DIR, not user input
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		if os.IsNotExist(err) {
			m.assets = make(map[string]string)
			return nil
		}
		return fmt.Errorf("reading asset manifest: %w", err)
	}

	assets := make(map[string]string)
	if err := json.Unmarshal(data, &assets); err != nil {
		return fmt.Errorf("parsing asset manifest: %w", err)
	}
	m.assets = assets
	return nil
}

// Get returns the URL for an asset.
func (m *Manifest) Get(path string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if hashed, ok := m.assets[path]; ok {
		return urlPrefix + hashed
	}
	return urlPrefix + path
}

func (m *Manifest) GetCSS() string {
	return m.Get(DashboardCSS)
}

func (m *Manifest) GetJS() string {
	return m.Get(DashboardJS)
}
