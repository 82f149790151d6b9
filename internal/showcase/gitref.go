package showcase

import (
	"github.com/go-git/go-git/v5"
)

// GitRef returns the HEAD commit hash of the repository containing root, or
// "" when root is not inside a repository or HEAD is unborn.
func GitRef(root string) string {
	repo, err := git.PlainOpenWithOptions(root, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return ""
	}
	head, err := repo.Head()
	if err != nil {
		return ""
	}
	return head.Hash().String()
}
