package artifact

import (
	"fmt"

	git "github.com/go-git/go-git/v5"
)

// HeadCommit returns the full sha of HEAD for the repository containing dir.
// Used as the commit fallback when the invoker did not supply one (CI
// contexts always do; local invocations resolve from the working tree).
func HeadCommit(dir string) (string, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("open repository at %s: %w", dir, err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolve HEAD: %w", err)
	}

	return head.Hash().String(), nil
}
