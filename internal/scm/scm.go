// Package scm resolves the version-control inputs of var source links: the
// HEAD commit of the repository holding the documented sources, and the
// expansion of the project's source-uri template for one var.
package scm

import (
	"fmt"
	"path"
	"strconv"
	"strings"

	git "github.com/go-git/go-git/v5"

	"git.home.luguber.info/inful/refdoc/internal/project"
)

// HeadCommit returns the full HEAD hash of the repository containing root.
// Dot-git detection walks upward, so root may be any directory inside the
// checkout.
func HeadCommit(root string) (string, error) {
	repo, err := git.PlainOpenWithOptions(root, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("open repository at %s: %w", root, err)
	}
	ref, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolve HEAD of %s: %w", root, err)
	}
	return ref.Hash().String(), nil
}

// UsesCommit reports whether a source-uri template needs a resolved commit.
func UsesCommit(uri string) bool {
	return strings.Contains(uri, "{git-commit}")
}

// ExpandSourceURI fills the source-uri template for one var. Recognized keys
// are {filepath}, {file}, {basename}, {line}, {version} and {git-commit};
// anything else stays literal.
func ExpandSourceURI(uri string, p *project.Project, v *project.Var, commit string) string {
	file := v.File
	if file == "" {
		file = v.Path
	}
	r := strings.NewReplacer(
		"{filepath}", v.Path,
		"{file}", file,
		"{basename}", path.Base(file),
		"{line}", strconv.Itoa(v.Line),
		"{version}", p.Version,
		"{git-commit}", commit,
	)
	return r.Replace(uri)
}
