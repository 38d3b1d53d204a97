package config

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
)

// SecretsOps decrypts SOPS-encrypted configuration overlays.
type SecretsOps struct{}

// NewSecretsOps creates a new SecretsOps instance.
func NewSecretsOps() *SecretsOps {
	return &SecretsOps{}
}

// Decrypt decrypts a SOPS-encrypted file and returns the plaintext bytes.
func (s *SecretsOps) Decrypt(ctx context.Context, file string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "sops", "--input-type", "yaml", "--output-type", "json", "-d", file)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("sops decrypt failed for %s: %w: %s", file, err, stderr.String())
	}
	return stdout.Bytes(), nil
}

// DecryptToMap decrypts a SOPS-encrypted file and returns the data as a map.
func (s *SecretsOps) DecryptToMap(ctx context.Context, file string) (map[string]any, error) {
	data, err := s.Decrypt(ctx, file)
	if err != nil {
		return nil, err
	}

	var result map[string]any
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse decrypted JSON from %s: %w", file, err)
	}
	return result, nil
}
