// Package artifact resolves canonical container artifact references.
//
// A reference is pure string composition over a registry location and
// repository identity: no network calls are made here. The selector is
// either an explicit tag or a commit-sha fallback; never both.
package artifact

import (
	"errors"
	"fmt"
	"strings"
)

// SelectorKind identifies how an artifact is selected within its repository.
type SelectorKind string

const (
	// SelectorTag selects by an explicit image tag.
	SelectorTag SelectorKind = "tag"

	// SelectorCommitFallback selects by the commit sha when no tag is given.
	SelectorCommitFallback SelectorKind = "commit-fallback"
)

// ErrInvalidInput indicates a structurally invalid reference input
// (an empty required field).
var ErrInvalidInput = errors.New("invalid artifact input")

// Selector is the tag-or-commit discriminator of a Reference.
// Exactly one kind is populated per reference.
type Selector struct {
	Kind  SelectorKind
	Value string
}

// Reference is a fully qualified, registry-resolvable artifact identity.
// Immutable once constructed; created once per build invocation.
type Reference struct {
	RegistryHost string
	ProjectID    string
	Repository   string
	Owner        string
	Image        string
	Selector     Selector
}

// String renders the canonical registry path for the reference.
// Tag selectors render as path:tag; commit fallbacks as path/sha:commit.
func (r Reference) String() string {
	base := strings.Join([]string{r.RegistryHost, r.ProjectID, r.Repository, r.Owner, r.Image}, "/")
	if r.Selector.Kind == SelectorTag {
		return base + ":" + r.Selector.Value
	}
	return base + "/sha:" + r.Selector.Value
}

// Tagged reports whether the reference carries an explicit tag.
func (r Reference) Tagged() bool {
	return r.Selector.Kind == SelectorTag
}

// Resolve derives a Reference from a repository identity and registry
// location. If explicitTag is non-empty the reference selects by tag,
// otherwise it falls back to the commit sha. commitSHA is always supplied
// by the invoking context, so the fallback is a defined path, not an error.
func Resolve(registryHost, projectID, repository, owner, image, explicitTag, commitSHA string) (Reference, error) {
	required := map[string]string{
		"registry host": registryHost,
		"project id":    projectID,
		"repository":    repository,
		"owner":         owner,
		"image":         image,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			return Reference{}, fmt.Errorf("%w: %s is empty", ErrInvalidInput, field)
		}
	}

	ref := Reference{
		RegistryHost: registryHost,
		ProjectID:    projectID,
		Repository:   repository,
		Owner:        owner,
		Image:        image,
	}

	if explicitTag != "" {
		ref.Selector = Selector{Kind: SelectorTag, Value: explicitTag}
		return ref, nil
	}

	if strings.TrimSpace(commitSHA) == "" {
		return Reference{}, fmt.Errorf("%w: commit sha is empty and no tag given", ErrInvalidInput)
	}

	ref.Selector = Selector{Kind: SelectorCommitFallback, Value: commitSHA}
	return ref, nil
}
