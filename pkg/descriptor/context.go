package descriptor

import (
	"strings"

	"github.com/platinummonkey/sabledocs/pkg/config"
	"github.com/platinummonkey/sabledocs/pkg/model"
)

// ParseContext is a cursor into one descriptor file. Every derivation returns
// a new value, so sibling declarations never share a path.
type ParseContext struct {
	cfg        *config.Config
	pkg        *model.Package
	sourceFile string
	path       Path
	locations  Locations
}

// NewParseContext creates a cursor at the root of a file
func NewParseContext(cfg *config.Config, pkg *model.Package, sourceFile string, locations Locations) ParseContext {
	return ParseContext{
		cfg:        cfg,
		pkg:        pkg,
		sourceFile: sourceFile,
		locations:  locations,
	}
}

// Package returns the package accumulating declarations of this file
func (c ParseContext) Package() *model.Package { return c.pkg }

// SourceFile returns the descriptor file name
func (c ParseContext) SourceFile() string { return c.sourceFile }

// Path returns the current structural path
func (c ParseContext) Path() Path { return c.path }

// WithPath returns a cursor at an absolute path
func (c ParseContext) WithPath(segments ...int) ParseContext {
	c.path = Path("").Append(segments...)
	return c
}

// ExtendPath returns a cursor with segments appended to the current path
func (c ParseContext) ExtendPath(segments ...int) ParseContext {
	c.path = c.path.Append(segments...)
	return c
}

// Comments returns the filtered comment at the current path
func (c ParseContext) Comments() string {
	return c.CommentsAt(c.path)
}

// CommentsAt returns the filtered comment at path, or "" when none was recorded
func (c ParseContext) CommentsAt(path Path) string {
	loc, ok := c.locations[path]
	if !ok || loc.Comments == "" {
		return ""
	}
	return filterComment(loc.Comments, c.cfg.IgnoreCommentsAfter, c.cfg.IgnoreCommentLinesContaining)
}

// LineNumber returns the 0-based line of the current path
func (c ParseContext) LineNumber() int {
	return c.LineNumberAt(c.path)
}

// LineNumberAt returns the 0-based line of path, or 0 when unknown
func (c ParseContext) LineNumberAt(path Path) int {
	return c.locations[path].LineNumber
}

// filterComment truncates the comment at the earliest ignore-after marker and
// removes lines containing any ignored substring.
func filterComment(comment string, ignoreAfter, ignoreLines []string) string {
	cut := len(comment)
	for _, marker := range ignoreAfter {
		if marker == "" {
			continue
		}
		if i := strings.Index(comment, marker); i >= 0 && i < cut {
			cut = i
		}
	}
	comment = comment[:cut]

	if len(ignoreLines) > 0 {
		lines := strings.Split(comment, "\n")
		kept := lines[:0]
		for _, line := range lines {
			if !containsAny(line, ignoreLines) {
				kept = append(kept, line)
			}
		}
		comment = strings.Join(kept, "\n")
	}

	return strings.TrimSpace(comment)
}

func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if sub != "" && strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
