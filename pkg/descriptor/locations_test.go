package descriptor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"
)

func TestPath(t *testing.T) {
	assert.Equal(t, Path(""), NewPath())
	assert.Equal(t, Path("4"), NewPath(4))
	assert.Equal(t, Path("4.0.2.1"), NewPath(4, 0, 2, 1))
	assert.Equal(t, Path("4.0.2.1"), NewPath(4, 0).Append(2, 1))
	assert.Equal(t, Path("5"), Path("").Append(5))
	assert.Equal(t, Path("4.0"), NewPath(4, 0).Append())
}

func TestScrub(t *testing.T) {
	assert.Equal(t, "hello\nworld", scrub(" hello \nworld\n"))
	assert.Equal(t, "", scrub("  \n "))
	assert.Equal(t, "one line", scrub(" one line\n"))
}

func TestBuildLocations(t *testing.T) {
	info := &descriptorpb.SourceCodeInfo{
		Location: []*descriptorpb.SourceCodeInfo_Location{
			{
				Path:            []int32{4, 0},
				Span:            []int32{7, 0, 12, 1},
				LeadingComments: proto.String(" A pizza. \n With cheese.\n"),
			},
			{
				Path:             []int32{4, 0, 2, 0},
				Span:             []int32{8, 2, 20},
				LeadingComments:  proto.String(" Size in inches.\n"),
				TrailingComments: proto.String(" required\n"),
			},
			{
				Path:             []int32{4, 0, 2, 1},
				Span:             []int32{9, 2, 20},
				TrailingComments: proto.String(" trailing only\n"),
			},
			{
				Path: []int32{4, 0, 2, 2},
				Span: []int32{10, 2, 20},
			},
		},
	}

	locations := BuildLocations(info)

	assert.Equal(t, "A pizza.\n With cheese.", locations["4.0"].Comments)
	assert.Equal(t, 7, locations["4.0"].LineNumber)
	assert.Equal(t, "Size in inches.\n\nrequired", locations["4.0.2.0"].Comments)
	assert.Equal(t, "trailing only", locations["4.0.2.1"].Comments)
	assert.Equal(t, "", locations["4.0.2.2"].Comments)
	assert.Equal(t, 10, locations["4.0.2.2"].LineNumber)

	_, ok := locations["6.0"]
	assert.False(t, ok)
}

func TestBuildLocations_Nil(t *testing.T) {
	assert.Empty(t, BuildLocations(nil))
}
