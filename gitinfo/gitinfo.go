// Package gitinfo provides the git context shown in the status bar.
package gitinfo

import (
	git "github.com/go-git/go-git/v5"
)

// Branch returns the branch name (or short detached-HEAD hash) for the
// repository containing dir, or "" when dir is not inside a repository.
func Branch(dir string) string {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return ""
	}
	head, err := repo.Head()
	if err != nil {
		return ""
	}
	if head.Name().IsBranch() {
		return head.Name().Short()
	}
	return head.Hash().String()[:7]
}
