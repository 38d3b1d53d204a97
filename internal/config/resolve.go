package config

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Layering order is fixed: runtime overrides > environment override > base.
// The resolved result is computed fresh per deployment invocation and never
// cached across environments or runs.

var (
	// ErrMissingEnvironmentConfig indicates the named environment's override
	// document does not exist. This is a fatal pre-flight error: a missing
	// file silently falling back to base-only configuration would deploy
	// wrong resource sizing.
	ErrMissingEnvironmentConfig = errors.New("environment configuration not found")

	// ErrInvalidInput indicates malformed configuration input.
	ErrInvalidInput = errors.New("invalid configuration input")
)

// Resolved is the single flattened configuration for one deployment.
type Resolved map[string]any

// ResolveEnvironment loads the base document, requires the environment
// override document to exist, decrypts an optional secrets overlay, and
// applies the fixed layering: base, environment (with secrets merged on
// top), then runtime overrides.
func ResolveEnvironment(ctx context.Context, layout *Layout, env string, runtimeOverrides map[string]any) (Resolved, error) {
	if env == "" {
		return nil, fmt.Errorf("%w: environment name is empty", ErrInvalidInput)
	}

	// Absent base is an empty document; an absent environment document is
	// fatal before any external side effect is attempted.
	base, err := loadDocument(layout.BasePath())
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load base configuration: %w", err)
	}

	envPath := layout.EnvironmentPath(env)
	if _, statErr := os.Stat(envPath); statErr != nil {
		return nil, fmt.Errorf("%w: %s (expected %s)", ErrMissingEnvironmentConfig, env, envPath)
	}

	envDoc, err := loadDocument(envPath)
	if err != nil {
		return nil, fmt.Errorf("load environment configuration %s: %w", env, err)
	}

	// Optional encrypted overlay merges onto the environment document, so
	// the three-layer contract (runtime > environment > base) holds.
	secretsPath := layout.SecretsPath(env)
	if _, statErr := os.Stat(secretsPath); statErr == nil {
		secrets, err := NewSecretsOps().DecryptToMap(ctx, secretsPath)
		if err != nil {
			return nil, fmt.Errorf("decrypt secrets overlay %s: %w", secretsPath, err)
		}
		envDoc = DeepMerge(envDoc, secrets)
	}

	resolved := DeepMerge(base, envDoc)
	resolved = DeepMerge(resolved, runtimeOverrides)

	return Resolved(resolved), nil
}

// EnvironmentExists reports whether the named environment's override
// document is present.
func (l *Layout) EnvironmentExists(env string) bool {
	info, err := os.Stat(l.EnvironmentPath(env))
	return err == nil && !info.IsDir()
}

// Environments lists the environment names that have override documents.
func (l *Layout) Environments() ([]string, error) {
	entries, err := os.ReadDir(l.ConfigDir())
	if err != nil {
		return nil, fmt.Errorf("read config directory: %w", err)
	}

	var envs []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == "base.yaml" {
			continue
		}
		if ext := ".yaml"; len(name) > len(ext) && name[len(name)-len(ext):] == ext {
			stem := name[:len(name)-len(ext)]
			if len(stem) > 5 && stem[len(stem)-5:] == ".sops" {
				continue
			}
			envs = append(envs, stem)
		}
	}
	return envs, nil
}

// loadDocument reads and parses a single YAML configuration document.
// A nil map is returned for an empty file.
func loadDocument(path string) (map[string]any, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc map[string]any
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}
