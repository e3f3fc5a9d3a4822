package descriptor

import (
	"strings"

	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/platinummonkey/sabledocs/pkg/model"
)

// Locations maps structural paths of one descriptor file to their comments
// and line numbers.
type Locations map[Path]model.LocationInfo

// BuildLocations indexes the source locations of a file. A nil info yields
// an empty index.
func BuildLocations(info *descriptorpb.SourceCodeInfo) Locations {
	locations := make(Locations, len(info.GetLocation()))
	for _, loc := range info.GetLocation() {
		line := 0
		if span := loc.GetSpan(); len(span) > 0 {
			line = int(span[0])
		}
		locations[NewPath(loc.GetPath()...)] = model.LocationInfo{
			LineNumber: line,
			Comments:   buildComment(loc),
		}
	}
	return locations
}

func buildComment(loc *descriptorpb.SourceCodeInfo_Location) string {
	var sb strings.Builder
	if leading := loc.GetLeadingComments(); leading != "" {
		sb.WriteString(scrub(leading))
		sb.WriteString("\n\n")
	}
	sb.WriteString(scrub(loc.GetTrailingComments()))
	return strings.TrimSpace(sb.String())
}

// scrub trims the comment and drops the space protoc leaves before each
// newline of a "// " style comment.
func scrub(comment string) string {
	return strings.ReplaceAll(strings.TrimSpace(comment), " \n", "\n")
}
