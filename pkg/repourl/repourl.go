// Package repourl builds links from documented declarations to their source
// lines on a repository hosting service.
package repourl

import (
	"fmt"
	"strings"
)

// Type identifies the repository hosting service
type Type string

const (
	GitHub    Type = "github"
	GitLab    Type = "gitlab"
	Bitbucket Type = "bitbucket"
	None      Type = "none"
)

// ParseType parses a repository type name. An empty name means GitHub.
func ParseType(name string) (Type, error) {
	switch t := Type(strings.ToLower(strings.TrimSpace(name))); t {
	case "":
		return GitHub, nil
	case GitHub, GitLab, Bitbucket, None:
		return t, nil
	default:
		return "", fmt.Errorf("invalid repository type: %s (must be github, gitlab, bitbucket, or none)", name)
	}
}

// Build returns the URL of line (0-based) of filePath in the repository,
// or an empty string when no repository is configured.
func Build(repoURL string, t Type, branch, repoDir, filePath string, line int) string {
	base := strings.Trim(repoURL, "/")
	if base == "" {
		return ""
	}

	var parts []string
	switch t {
	case GitHub, "":
		parts = []string{base, "blob"}
	case GitLab:
		parts = []string{base, "-", "blob"}
	case Bitbucket:
		parts = []string{base, "src"}
	default:
		return ""
	}

	for _, p := range []string{branch, repoDir, filePath} {
		if p = strings.Trim(p, "/"); p != "" {
			parts = append(parts, p)
		}
	}
	path := strings.Join(parts, "/")

	switch t {
	case GitLab:
		return fmt.Sprintf("%s#L%d", path, line)
	case Bitbucket:
		return fmt.Sprintf("%s#lines-%d", path, line+1)
	default:
		return fmt.Sprintf("%s#L%d", path, line+1)
	}
}
