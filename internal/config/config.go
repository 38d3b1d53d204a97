// Package config handles project layout discovery and layered
// configuration resolution for deployments.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Layout holds the stevedore project layout.
type Layout struct {
	// Root is the project root directory (contains deploy/).
	Root string

	// DeployDir is the path to the deploy directory.
	DeployDir string
}

// FindRoot searches upward from the current directory to find the project
// root, identified by the presence of a deploy/ directory with a config/
// subdirectory.
func FindRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for dir != "/" {
		deployDir := filepath.Join(dir, "deploy")
		if info, err := os.Stat(deployDir); err == nil && info.IsDir() {
			configDir := filepath.Join(deployDir, "config")
			if info, err := os.Stat(configDir); err == nil && info.IsDir() {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("project root not found (no deploy/config/ directory)")
}

// Load finds the project root and returns a Layout.
func Load() (*Layout, error) {
	root, err := FindRoot()
	if err != nil {
		return nil, err
	}
	return NewLayout(root), nil
}

// NewLayout returns a Layout rooted at the given directory.
func NewLayout(root string) *Layout {
	return &Layout{
		Root:      root,
		DeployDir: filepath.Join(root, "deploy"),
	}
}

// ConfigDir returns the path to the configuration documents directory.
func (l *Layout) ConfigDir() string {
	return filepath.Join(l.DeployDir, "config")
}

// TemplatesDir returns the path to the manifest templates directory.
func (l *Layout) TemplatesDir() string {
	return filepath.Join(l.DeployDir, "templates")
}

// HistoryDir returns the path to the release history directory.
func (l *Layout) HistoryDir() string {
	return filepath.Join(l.DeployDir, ".stevedore", "releases")
}

// BasePath returns the path to the base configuration document.
func (l *Layout) BasePath() string {
	return filepath.Join(l.ConfigDir(), "base.yaml")
}

// EnvironmentPath returns the path to the named environment's override
// document.
func (l *Layout) EnvironmentPath(env string) string {
	return filepath.Join(l.ConfigDir(), env+".yaml")
}

// SecretsPath returns the path to the named environment's encrypted
// secrets overlay, which may not exist.
func (l *Layout) SecretsPath(env string) string {
	return filepath.Join(l.ConfigDir(), env+".sops.yaml")
}

// ServiceTemplatePath returns the path to the service manifest template.
func (l *Layout) ServiceTemplatePath() string {
	return filepath.Join(l.TemplatesDir(), "service.yaml.tmpl")
}

// JobTemplatePath returns the path to the pre-deploy job manifest template.
func (l *Layout) JobTemplatePath() string {
	return filepath.Join(l.TemplatesDir(), "job.yaml.tmpl")
}
