//go:build e2e && unix

package main

import (
	"os"
	"path/filepath"
)

const productsJSON = `[
  {"id": 1, "title": "Shard Engine", "description": "Realtime sync core", "categories": ["engine", "sync"], "features": ["offline"], "ctaText": "Try it", "ctaLink": "https://example.com/engine", "tag": "New"},
  {"id": 2, "title": "Shard Studio", "description": "Visual editor", "categories": ["tools"], "features": ["themes"], "ctaText": "Open", "ctaLink": "https://example.com/studio"},
  {"id": "3", "title": "Shard Cloud", "description": "Hosted shards", "categories": "cloud", "ctaText": "Sign up", "ctaLink": "https://example.com/cloud"}
]`

const projectsJSON = `[
  {"id": "p1", "title": "Alpha", "description": "First experiment", "technologies": ["go"], "date": "2021", "deprecated": true},
  {"id": "p2", "title": "Beta", "description": "Rust port", "technologies": ["rust"], "date": "2023"},
  {"id": "p3", "title": "Gamma", "description": "Terminal client", "technologies": ["go", "tui"], "date": "2024", "deprecated": "false"}
]`

// CreateTestWorkspace creates a temporary directory with data/products.json
// and data/projects.json
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	tmpDir := tf.t.TempDir()
	tf.workspace = tmpDir
	if err := tf.WriteSource("products.json", productsJSON); err != nil {
		return "", err
	}
	if err := tf.WriteSource("projects.json", projectsJSON); err != nil {
		return "", err
	}
	return tmpDir, nil
}

// WriteSource writes a file under the workspace data directory
func (tf *TUITestFramework) WriteSource(name, content string) error {
	dir := filepath.Join(tf.workspace, "data")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644)
}
