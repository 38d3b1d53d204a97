package build

import (
	"archive/tar"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/image"

	"github.com/cameronsjo/stevedore/internal/artifact"
	"github.com/cameronsjo/stevedore/internal/ui"
)

// RegistryAuthEnv holds the base64-encoded registry auth config used for
// pushes. The CI trigger injects it; an empty value means anonymous push.
const RegistryAuthEnv = "STEVEDORE_REGISTRY_AUTH"

// ErrBuild indicates the image build or push failed.
var ErrBuild = errors.New("image build failed")

// streamMessage is one line of the daemon's JSON progress stream.
type streamMessage struct {
	Stream      string `json:"stream"`
	Status      string `json:"status"`
	Error       string `json:"error"`
	ErrorDetail struct {
		Message string `json:"message"`
	} `json:"errorDetail"`
}

// Builder builds and pushes the container artifact for one invocation.
type Builder struct {
	client     *Client
	contextDir string
	dockerfile string
}

// NewBuilder creates a Builder over contextDir. dockerfile is relative to
// the context directory; empty means "Dockerfile".
func NewBuilder(client *Client, contextDir, dockerfile string) *Builder {
	if dockerfile == "" {
		dockerfile = "Dockerfile"
	}

	return &Builder{
		client:     client,
		contextDir: contextDir,
		dockerfile: dockerfile,
	}
}

// Build tars the context directory and builds it, tagging the result with
// the resolved artifact reference.
func (b *Builder) Build(ctx context.Context, ref artifact.Reference) error {
	ui.Info("Building %s...", ref.String())

	buildContext, err := tarContext(b.contextDir)
	if err != nil {
		return fmt.Errorf("tar build context: %w", err)
	}

	resp, err := b.client.api.ImageBuild(ctx, buildContext, types.ImageBuildOptions{
		Tags:       []string{ref.String()},
		Dockerfile: b.dockerfile,
		Remove:     true,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuild, err)
	}
	defer resp.Body.Close()

	if err := drainStream(resp.Body); err != nil {
		return fmt.Errorf("%w: %v", ErrBuild, err)
	}

	ui.Success("Built %s", ref.String())
	return nil
}

// Push pushes the tagged image to its registry. Auth comes from the
// environment; a partially pushed image is the daemon's problem to resume.
func (b *Builder) Push(ctx context.Context, ref artifact.Reference) error {
	ui.Info("Pushing %s...", ref.String())

	reader, err := b.client.api.ImagePush(ctx, ref.String(), image.PushOptions{
		RegistryAuth: registryAuth(),
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuild, err)
	}
	defer reader.Close()

	if err := drainStream(reader); err != nil {
		return fmt.Errorf("%w: %v", ErrBuild, err)
	}

	ui.Success("Pushed %s", ref.String())
	return nil
}

// drainStream consumes the daemon's JSON progress stream and surfaces the
// first embedded error. The daemon reports failures mid-stream with a 200
// response, so the HTTP status alone proves nothing.
func drainStream(r io.Reader) error {
	decoder := json.NewDecoder(r)

	for {
		var msg streamMessage
		if err := decoder.Decode(&msg); err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("decode progress stream: %w", err)
		}

		if msg.Error != "" {
			if msg.ErrorDetail.Message != "" {
				return errors.New(msg.ErrorDetail.Message)
			}
			return errors.New(msg.Error)
		}

		if line := strings.TrimSpace(msg.Stream); line != "" {
			ui.Info("  %s", line)
		}
	}
}

// registryAuth returns the base64 auth config for pushes, if configured.
func registryAuth() string {
	return strings.TrimSpace(os.Getenv(RegistryAuthEnv))
}

// tarContext packs dir into an in-memory tar archive for the daemon.
// Build contexts here are source trees, small enough to buffer.
func tarContext(dir string) (io.Reader, error) {
	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		// The daemon has no use for VCS metadata.
		if info.IsDir() && info.Name() == ".git" {
			return filepath.SkipDir
		}
		// Sockets, devices, and symlinks have no place in a build context.
		if !info.IsDir() && !info.Mode().IsRegular() {
			return nil
		}

		header, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		header.Name = filepath.ToSlash(rel)

		if err := tw.WriteHeader(header); err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		_, err = io.Copy(tw, f)
		return err
	})
	if err != nil {
		return nil, err
	}

	if err := tw.Close(); err != nil {
		return nil, err
	}

	return &buf, nil
}
