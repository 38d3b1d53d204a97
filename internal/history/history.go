// Package history persists release records under the project's deploy
// directory so operators can answer "what is running where" without
// querying the target.
package history

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/cameronsjo/stevedore/internal/config"
	"github.com/cameronsjo/stevedore/internal/release"
)

// Record is one persisted release.
type Record struct {
	ID              string    `yaml:"id"`
	RecordedAt      time.Time `yaml:"recorded_at"`
	Environment     string    `yaml:"environment"`
	ImageURL        string    `yaml:"image_url"`
	CommitSHA       string    `yaml:"commit_sha"`
	ServiceEndpoint string    `yaml:"service_endpoint,omitempty"`
}

// Store reads and writes release records as YAML files, one per release.
// File names sort chronologically, so listing needs no index.
type Store struct {
	dir string
}

// NewStore creates a Store over the layout's history directory.
func NewStore(layout *config.Layout) *Store {
	return &Store{dir: layout.HistoryDir()}
}

// Record persists the outcome and returns the record file's name.
func (s *Store) Record(outcome release.Outcome) (string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("create history dir: %w", err)
	}

	now := time.Now().UTC()
	rec := Record{
		ID:              uuid.NewString(),
		RecordedAt:      now,
		Environment:     outcome.Environment,
		ImageURL:        outcome.ImageURL,
		CommitSHA:       outcome.CommitSHA,
		ServiceEndpoint: outcome.ServiceEndpoint,
	}

	data, err := yaml.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("marshal record: %w", err)
	}

	name := fmt.Sprintf("%s-%s.yaml", now.Format("20060102T150405Z"), rec.ID[:8])
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0644); err != nil {
		return "", fmt.Errorf("write record: %w", err)
	}

	return name, nil
}

// List returns all records, newest first. A missing history directory is
// an empty history, not an error.
func (s *Store) List() ([]Record, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read history dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))

	records := make([]Record, 0, len(names))
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(s.dir, name))
		if err != nil {
			return nil, fmt.Errorf("read record %s: %w", name, err)
		}

		var rec Record
		if err := yaml.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("parse record %s: %w", name, err)
		}
		records = append(records, rec)
	}

	return records, nil
}

// Prune removes all but the newest keep records.
func (s *Store) Prune(keep int) (int, error) {
	if keep < 0 {
		keep = 0
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("read history dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))

	if len(names) <= keep {
		return 0, nil
	}

	removed := 0
	for _, name := range names[keep:] {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
			return removed, fmt.Errorf("remove record %s: %w", name, err)
		}
		removed++
	}

	return removed, nil
}

// Verify the store satisfies the pipeline's recorder contract.
var _ release.OutcomeRecorder = (*Store)(nil)
