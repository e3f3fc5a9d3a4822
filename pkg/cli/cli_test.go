package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"

	"github.com/platinummonkey/sabledocs/pkg/protosrc"
)

const pizzaProto = `syntax = "proto3";

package pizza.v1;

// Orders pizzas.
service PizzaService {
  // Places an order.
  rpc Order(OrderRequest) returns (OrderReply);
}

// Request to order a pizza.
message OrderRequest {
  // Size in inches.
  int32 size = 1;
  Crust crust = 2;
}

message OrderReply {
  string id = 1;
}

enum Crust {
  CRUST_UNSPECIFIED = 0;
  CRUST_THIN = 1;
}
`

// fixture is a project directory with a descriptor set and a configuration file
type fixture struct {
	dir        string
	descriptor string
	output     string
	config     string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	f := &fixture{
		dir:        dir,
		descriptor: filepath.Join(dir, "descriptor.pb"),
		output:     filepath.Join(dir, "site"),
		config:     filepath.Join(dir, "sabledocs.toml"),
	}

	f.writeDescriptor(t, pizzaProto)

	cfg := fmt.Sprintf(`module-title = "Pizza API"
input-descriptor-file = %q
output-dir = %q
enable-lunr-search = true
log-level = "error"
`, f.descriptor, f.output)
	require.NoError(t, os.WriteFile(f.config, []byte(cfg), 0644))

	t.Setenv("SABLEDOCS_INPUT", "")
	t.Setenv("SABLEDOCS_OUTPUT_DIR", "")
	t.Setenv("SABLEDOCS_S3_BUCKET", "")
	t.Setenv("SABLEDOCS_OTLP_ENDPOINT", "")

	return f
}

func (f *fixture) writeDescriptor(t *testing.T, source string) {
	t.Helper()
	require.NoError(t, os.WriteFile(f.descriptor, compileDescriptor(t, source), 0644))
}

func compileDescriptor(t *testing.T, source string) []byte {
	t.Helper()
	set, err := protosrc.Compile(context.Background(), protosrc.Options{
		Files:             []string{"pizza.proto"},
		Sources:           map[string]string{"pizza.proto": source},
		IncludeSourceInfo: true,
	})
	require.NoError(t, err)

	data, err := proto.Marshal(set)
	require.NoError(t, err)
	return data
}

// run executes the root command with args and returns its output
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := newRootCommand(&out).ExecuteArgs(context.Background(), args)
	return out.String(), err
}
