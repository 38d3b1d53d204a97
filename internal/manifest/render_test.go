package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const serviceTemplate = `apiVersion: serving.example.dev/v1
kind: Service
metadata:
  name: {{ .service_name }}
spec:
  image: {{ .image_url }}
  memory: {{ .memory }}
  env:
    COMMIT_SHA: {{ .commit_sha }}
`

func TestRenderString(t *testing.T) {
	r := NewRenderer()

	data := map[string]any{
		"service_name": "api",
		"image_url":    "reg.example.com/p1/repo/acme/app:v1",
		"memory":       "1Gi",
		"commit_sha":   "abc123",
	}

	out, err := r.RenderString("service", serviceTemplate, data)
	require.NoError(t, err)

	assert.Contains(t, out, "name: api")
	assert.Contains(t, out, "image: reg.example.com/p1/repo/acme/app:v1")
	assert.Contains(t, out, "memory: 1Gi")
	assert.Contains(t, out, "COMMIT_SHA: abc123")
}

func TestRenderString_MissingKeyFails(t *testing.T) {
	r := NewRenderer()

	_, err := r.RenderString("service", serviceTemplate, map[string]any{
		"service_name": "api",
		// image_url, memory, commit_sha absent
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRender)
}

func TestRenderString_SprigFunctions(t *testing.T) {
	r := NewRenderer()

	out, err := r.RenderString("t", `name: {{ .name | upper }}-{{ .env | trunc 4 }}`, map[string]any{
		"name": "api",
		"env":  "production",
	})
	require.NoError(t, err)
	assert.Equal(t, "name: API-prod", out)
}

func TestRenderString_ParseError(t *testing.T) {
	r := NewRenderer()

	_, err := r.RenderString("t", `{{ .unclosed `, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRender)
}

func TestRender_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "service.yaml.tmpl")
	require.NoError(t, os.WriteFile(path, []byte(serviceTemplate), 0644))

	r := NewRenderer()
	out, err := r.Render(path, map[string]any{
		"service_name": "api",
		"image_url":    "img",
		"memory":       "512Mi",
		"commit_sha":   "abc",
	})
	require.NoError(t, err)
	assert.Contains(t, out, "name: api")
}

func TestRender_MissingTemplateFile(t *testing.T) {
	r := NewRenderer()

	_, err := r.Render("/nonexistent/service.yaml.tmpl", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRender)
}

func TestData_RuntimeValuesWin(t *testing.T) {
	resolved := map[string]any{"memory": "512Mi", "image_url": "stale"}
	runtime := map[string]any{"image_url": "fresh", "commit_sha": "abc"}

	data := Data(resolved, runtime)

	assert.Equal(t, "fresh", data["image_url"])
	assert.Equal(t, "abc", data["commit_sha"])
	assert.Equal(t, "512Mi", data["memory"])
}

func TestParse(t *testing.T) {
	doc, err := Parse("apiVersion: v1\nkind: Service\nmetadata:\n  name: api\n")
	require.NoError(t, err)

	assert.Equal(t, "api", doc.Name())
	assert.Equal(t, "Service", doc.Kind())
}

func TestParse_Empty(t *testing.T) {
	_, err := Parse("")
	assert.Error(t, err)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse("{broken: [yaml\n")
	assert.Error(t, err)
}

func TestDocument_NameMissing(t *testing.T) {
	doc, err := Parse("kind: Job\nspec: {}\n")
	require.NoError(t, err)
	assert.Equal(t, "", doc.Name())
}

func TestDocument_YAMLRoundTrip(t *testing.T) {
	doc, err := Parse("kind: Job\nmetadata:\n  name: migrate\n")
	require.NoError(t, err)

	data, err := doc.YAML()
	require.NoError(t, err)

	again, err := Parse(string(data))
	require.NoError(t, err)
	assert.Equal(t, doc, again)
}
