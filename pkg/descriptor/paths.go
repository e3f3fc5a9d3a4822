package descriptor

import (
	"strconv"
	"strings"
)

// Field numbers used in SourceCodeInfo location paths
const (
	filePackageTag = 2
	fileMessageTag = 4
	fileEnumTag    = 5
	fileServiceTag = 6

	messageFieldTag  = 2
	messageNestedTag = 3
	messageEnumTag   = 4

	enumValueTag = 2

	serviceMethodTag = 2
)

// Path is a structural position in a descriptor file, rendered as dot-joined
// integers (for example "4.0.2.1" is field 1 of message 0).
type Path string

// NewPath builds a path from its segments
func NewPath(segments ...int32) Path {
	parts := make([]string, len(segments))
	for i, s := range segments {
		parts[i] = strconv.Itoa(int(s))
	}
	return Path(strings.Join(parts, "."))
}

// Append returns a new path with segments added to the end
func (p Path) Append(segments ...int) Path {
	if len(segments) == 0 {
		return p
	}

	var sb strings.Builder
	sb.WriteString(string(p))
	for _, s := range segments {
		if sb.Len() > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(strconv.Itoa(s))
	}
	return Path(sb.String())
}
