package protosrc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sources = map[string]string{
	"pizza/v1/topping.proto": `syntax = "proto3";
package pizza.v1;

// A pizza topping.
message Topping {
  string name = 1;
}
`,
	"pizza/v1/pizza.proto": `syntax = "proto3";
package pizza.v1;

import "pizza/v1/topping.proto";
import "google/protobuf/timestamp.proto";

message Pizza {
  repeated Topping toppings = 1;
  google.protobuf.Timestamp baked_at = 2;
}
`,
}

func TestCompile(t *testing.T) {
	set, err := Compile(context.Background(), Options{
		Files:             []string{"pizza/v1/pizza.proto"},
		Sources:           sources,
		IncludeSourceInfo: true,
	})
	require.NoError(t, err)

	require.Len(t, set.File, 1)
	assert.Equal(t, "pizza/v1/pizza.proto", set.File[0].GetName())
	assert.Equal(t, "pizza.v1", set.File[0].GetPackage())
	assert.NotNil(t, set.File[0].GetSourceCodeInfo())
}

func TestCompile_IncludeImports(t *testing.T) {
	set, err := Compile(context.Background(), Options{
		Files:          []string{"pizza/v1/pizza.proto"},
		Sources:        sources,
		IncludeImports: true,
	})
	require.NoError(t, err)

	var names []string
	for _, f := range set.File {
		names = append(names, f.GetName())
		assert.Nil(t, f.GetSourceCodeInfo())
	}
	assert.Equal(t, []string{
		"pizza/v1/topping.proto",
		"google/protobuf/timestamp.proto",
		"pizza/v1/pizza.proto",
	}, names)
}

func TestCompile_SourceComments(t *testing.T) {
	set, err := Compile(context.Background(), Options{
		Files:             []string{"pizza/v1/topping.proto"},
		Sources:           sources,
		IncludeSourceInfo: true,
	})
	require.NoError(t, err)

	var found bool
	for _, loc := range set.File[0].GetSourceCodeInfo().GetLocation() {
		if loc.GetLeadingComments() == " A pizza topping.\n" {
			found = true
			assert.Equal(t, []int32{4, 0}, loc.GetPath())
		}
	}
	assert.True(t, found)
}

func TestCompile_Errors(t *testing.T) {
	_, err := Compile(context.Background(), Options{})
	assert.Error(t, err)

	_, err = Compile(context.Background(), Options{
		Files:   []string{"broken.proto"},
		Sources: map[string]string{"broken.proto": `syntax = "proto3"; message {`},
	})
	assert.Error(t, err)
}
