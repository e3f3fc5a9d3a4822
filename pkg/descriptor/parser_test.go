package descriptor

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/platinummonkey/sabledocs/pkg/comments"
	"github.com/platinummonkey/sabledocs/pkg/config"
	"github.com/platinummonkey/sabledocs/pkg/model"
	"github.com/platinummonkey/sabledocs/pkg/observability"
	"github.com/platinummonkey/sabledocs/pkg/protosrc"
	"github.com/platinummonkey/sabledocs/pkg/repourl"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func compile(t *testing.T, sources map[string]string, files ...string) *descriptorpb.FileDescriptorSet {
	t.Helper()
	set, err := protosrc.Compile(context.Background(), protosrc.Options{
		Files:             files,
		Sources:           sources,
		IncludeSourceInfo: true,
	})
	require.NoError(t, err)
	return set
}

func parse(t *testing.T, cfg *config.Config, set *descriptorpb.FileDescriptorSet, opts ...Option) *model.Result {
	t.Helper()
	p, err := New(cfg, append([]Option{WithLogger(quietLogger())}, opts...)...)
	require.NoError(t, err)
	result, err := p.ParseSet(context.Background(), set)
	require.NoError(t, err)
	return result
}

func fieldNamed(t *testing.T, m *model.Message, name string) *model.MessageField {
	t.Helper()
	for _, f := range m.Fields {
		if f.Name == name {
			return f
		}
	}
	t.Fatalf("field %s not found in %s", name, m.FullName)
	return nil
}

func names[T any](items []T, name func(T) string) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = name(item)
	}
	return out
}

func messageName(m *model.Message) string { return m.Name }
func fieldName(f *model.MessageField) string { return f.Name }
func packageName(p *model.Package) string  { return p.Name }
func enumName(e *model.Enum) string        { return e.Name }

func TestParse_MapField(t *testing.T) {
	set := compile(t, map[string]string{
		"a/b/m.proto": `syntax = "proto3";
package a.b;

message M {
  int32 id = 1;
  map<string, string> meta = 2;
}
`,
	}, "a/b/m.proto")

	result := parse(t, config.Default(), set)

	require.Len(t, result.Packages, 1)
	assert.Equal(t, "a.b", result.Packages[0].Name)

	m := result.FindMessage("a.b.M")
	require.NotNil(t, m)
	require.Len(t, m.Fields, 2)

	id := m.Fields[0]
	assert.Equal(t, "id", id.Name)
	assert.Equal(t, "int32", id.Type)
	assert.Equal(t, "int32", id.FullType)
	assert.Equal(t, model.TypeKindUnknown, id.TypeKind)

	meta := m.Fields[1]
	assert.Equal(t, "meta", meta.Name)
	assert.Equal(t, "map<string, string>", meta.Type)
	assert.Equal(t, "map<string, string>", meta.FullType)
	assert.Equal(t, "", meta.Label)
	assert.True(t, meta.IsMap())
	assert.Nil(t, meta.Package)

	entry := result.FindMessage("a.b.M.MetaEntry")
	require.NotNil(t, entry)
	assert.True(t, entry.IsMapEntry)
	assert.Same(t, m, entry.ParentMessage)
	require.Len(t, entry.Fields, 2)
	assert.Equal(t, 1, entry.Fields[0].Number)
	assert.Equal(t, 2, entry.Fields[1].Number)
}

func TestParse_MapOfMessages(t *testing.T) {
	set := compile(t, map[string]string{
		"pizza.proto": `syntax = "proto3";
package pizza;

message Topping {
  string name = 1;
}

message Menu {
  map<int64, Topping> toppings_by_id = 1;
}
`,
	}, "pizza.proto")

	m := parse(t, config.Default(), set).FindMessage("pizza.Menu")
	require.NotNil(t, m)
	assert.Equal(t, "map<int64, Topping>", m.Fields[0].Type)
}

func TestParse_MapEntryProperties(t *testing.T) {
	set := compile(t, map[string]string{
		"maps.proto": `syntax = "proto3";
package maps;

message Outer {
  map<string, int32> counts = 1;
  message Inner {
    map<bool, bytes> flags = 1;
  }
  Inner inner = 2;
}
`,
	}, "maps.proto")

	result := parse(t, config.Default(), set)

	entries := map[string]*model.Message{}
	for _, m := range result.AllMessages {
		if m.IsMapEntry {
			require.Len(t, m.Fields, 2, m.FullName)
			assert.Equal(t, 1, m.Fields[0].Number)
			assert.Equal(t, 2, m.Fields[1].Number)
			entries[m.FullName] = m
		}
	}
	assert.Len(t, entries, 2)
	assert.Contains(t, entries, "maps.Outer.Inner.FlagsEntry")

	inner := result.FindMessage("maps.Outer.Inner")
	require.NotNil(t, inner)
	assert.Equal(t, "map<bool, bytes>", inner.Fields[0].Type)

	outer := result.FindMessage("maps.Outer")
	assert.Equal(t, "Inner", fieldNamed(t, outer, "inner").Type)
	assert.Equal(t, "maps.Outer.Inner", fieldNamed(t, outer, "inner").FullType)
	assert.Equal(t, model.TypeKindMessage, fieldNamed(t, outer, "inner").TypeKind)
}

func TestParse_EntrySuffixThatIsNotAMap(t *testing.T) {
	set := compile(t, map[string]string{
		"log.proto": `syntax = "proto3";
package log;

message LogEntry {
  string line = 1;
  string level = 2;
}

message Batch {
  repeated LogEntry entries = 1;
}
`,
	}, "log.proto")

	metrics := observability.NewMetrics(prometheus.NewRegistry())
	result := parse(t, config.Default(), set, WithMetrics(metrics))

	entries := fieldNamed(t, result.FindMessage("log.Batch"), "entries")
	assert.Equal(t, "LogEntry", entries.Type)
	assert.Equal(t, "log.LogEntry", entries.FullType)
	assert.Equal(t, "repeated", entries.Label)
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.MapEntryMissesTotal))
}

func TestParse_Oneofs(t *testing.T) {
	set := compile(t, map[string]string{
		"order.proto": `syntax = "proto3";
package order;

message Order {
  oneof payment {
    string card = 1;
    string cash = 2;
  }
  optional string note = 3;
  string id = 4;
}
`,
	}, "order.proto")

	m := parse(t, config.Default(), set).FindMessage("order.Order")
	require.NotNil(t, m)

	require.Len(t, m.OneOfFieldGroups, 1)
	group := m.OneOfFieldGroups[0]
	assert.Equal(t, "payment", group.Name)
	assert.Equal(t, []string{"card", "cash"}, names(group.Fields, fieldName))

	card := fieldNamed(t, m, "card")
	require.NotNil(t, card.OneofName)
	assert.Equal(t, "payment", *card.OneofName)

	note := fieldNamed(t, m, "note")
	assert.Nil(t, note.OneofName)
	assert.Equal(t, "optional", note.Label)

	assert.Nil(t, fieldNamed(t, m, "id").OneofName)
}

func TestParse_ScalarTypesAndLabels(t *testing.T) {
	set := compile(t, map[string]string{
		"scalars.proto": `syntax = "proto2";
package scalars;

enum Color {
  RED = 0;
}

message Everything {
  required double d = 1;
  optional float f = 2 [default = 1.5];
  repeated sint64 s = 3;
  optional fixed32 x = 4;
  optional Color color = 5;
  optional bytes b = 6;
}
`,
	}, "scalars.proto")

	m := parse(t, config.Default(), set).FindMessage("scalars.Everything")
	require.NotNil(t, m)

	d := fieldNamed(t, m, "d")
	assert.Equal(t, "double", d.Type)
	assert.Equal(t, "required", d.Label)

	f := fieldNamed(t, m, "f")
	assert.Equal(t, "float", f.Type)
	assert.Equal(t, "optional", f.Label)
	assert.Equal(t, "1.5", f.DefaultValue)

	s := fieldNamed(t, m, "s")
	assert.Equal(t, "sint64", s.Type)
	assert.Equal(t, "repeated", s.Label)

	assert.Equal(t, "fixed32", fieldNamed(t, m, "x").Type)
	assert.Equal(t, "bytes", fieldNamed(t, m, "b").Type)

	color := fieldNamed(t, m, "color")
	assert.Equal(t, "Color", color.Type)
	assert.Equal(t, "scalars.Color", color.FullType)
	assert.Equal(t, model.TypeKindEnum, color.TypeKind)
	require.NotNil(t, color.Package)
	assert.Equal(t, "scalars", color.Package.Name)
}

func TestScalarTypeName(t *testing.T) {
	assert.Equal(t, "sfixed64", scalarTypeName(descriptorpb.FieldDescriptorProto_TYPE_SFIXED64))
	assert.Equal(t, "group", scalarTypeName(descriptorpb.FieldDescriptorProto_TYPE_GROUP))
	assert.Equal(t, "unknown", scalarTypeName(descriptorpb.FieldDescriptorProto_Type(99)))
	assert.Equal(t, "", labelName(&descriptorpb.FieldDescriptorProto{}))
}

func TestParse_LongestPrefixPackages(t *testing.T) {
	set := compile(t, map[string]string{
		"foo/bar/b.proto": `syntax = "proto3";
package foo.bar;

message B {
  string id = 1;
}
`,
		"foo/a.proto": `syntax = "proto3";
package foo;

import "foo/bar/b.proto";

message A {
  .foo.bar.B b = 1;
  Local local = 2;
}

message Local {}

service Lookup {
  rpc Get(A) returns (.foo.bar.B);
}
`,
	}, "foo/bar/b.proto", "foo/a.proto")

	result := parse(t, config.Default(), set)
	assert.Equal(t, []string{"foo", "foo.bar"}, names(result.Packages, packageName))

	a := result.FindMessage("foo.A")
	require.NotNil(t, a)
	require.NotNil(t, fieldNamed(t, a, "b").Package)
	assert.Equal(t, "foo.bar", fieldNamed(t, a, "b").Package.Name)
	assert.Equal(t, "foo", fieldNamed(t, a, "local").Package.Name)
	assert.Equal(t, "foo", a.Package.Name)
	assert.Equal(t, "foo.bar", result.FindMessage("foo.bar.B").Package.Name)

	svc := result.Package("foo").Services[0]
	assert.Equal(t, "foo.Lookup", svc.FullName)
	method := svc.Methods[0]
	assert.Equal(t, "foo", method.Request.Package.Name)
	assert.Equal(t, "foo.bar", method.Response.Package.Name)
	assert.Equal(t, "B", method.Response.Type)
	assert.Equal(t, "foo.bar.B", method.Response.FullType)
	assert.Equal(t, model.TypeKindMessage, method.Response.TypeKind)
}

const serviceSource = `syntax = "proto3";

// The pizza service.
package pizza.v1;

import "google/protobuf/empty.proto";

// Places orders.
service PizzaService {
  // Orders a pizza.
  rpc Order(OrderRequest) returns (OrderResponse);
  rpc Track(OrderRequest) returns (stream OrderResponse);
  rpc Upload(stream OrderRequest) returns (google.protobuf.Empty);
}

message OrderRequest {
  // Size in inches.
  int32 size = 1;
}

message OrderResponse {}

// Crust styles.
enum Crust {
  // Unknown crust.
  CRUST_UNSPECIFIED = 0;
  CRUST_THIN = 1;
}
`

func TestParse_ServicesAndComments(t *testing.T) {
	set := compile(t, map[string]string{"pizza/v1/pizza.proto": serviceSource}, "pizza/v1/pizza.proto")

	cfg := config.Default()
	cfg.RepositoryURL = "https://github.com/example/pizza"
	cfg.RepositoryBranch = "main"
	cfg.RepositoryType = repourl.GitHub

	metrics := observability.NewMetrics(prometheus.NewRegistry())
	result := parse(t, cfg, set, WithMetrics(metrics))

	pkg := result.Package("pizza.v1")
	require.NotNil(t, pkg)
	assert.Equal(t, "The pizza service.", pkg.Description)
	assert.Equal(t, "<p>The pizza service.</p>", pkg.DescriptionHTML)
	assert.Equal(t, "pizza/v1/pizza.proto", pkg.SourceFilePath)

	require.Len(t, pkg.Services, 1)
	svc := pkg.Services[0]
	assert.Equal(t, "Places orders.", svc.Description)
	assert.Equal(t, 8, svc.LineNumber)
	assert.Equal(t, "https://github.com/example/pizza/blob/main/pizza/v1/pizza.proto#L9", svc.RepositoryURL)

	require.Len(t, svc.Methods, 3)
	order, track, upload := svc.Methods[0], svc.Methods[1], svc.Methods[2]
	assert.Equal(t, "Orders a pizza.", order.Description)
	assert.Equal(t, 10, order.LineNumber)
	assert.False(t, order.ClientStreaming)
	assert.False(t, order.ServerStreaming)
	assert.True(t, track.ServerStreaming)
	assert.True(t, upload.ClientStreaming)

	assert.Equal(t, "OrderRequest", order.Request.Type)
	assert.Equal(t, "pizza.v1.OrderRequest", order.Request.FullType)
	assert.Same(t, pkg, order.Request.Package)

	// google.protobuf is not part of the set
	assert.Equal(t, "google.protobuf.Empty", upload.Response.FullType)
	assert.Nil(t, upload.Response.Package)
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.UnresolvedReferencesTotal.WithLabelValues("method")))

	size := fieldNamed(t, result.FindMessage("pizza.v1.OrderRequest"), "size")
	assert.Equal(t, "Size in inches.", size.Description)
	assert.Equal(t, "pizza/v1/pizza.proto", size.SourceFilePath)

	crust := result.FindEnum("pizza.v1.Crust")
	require.NotNil(t, crust)
	assert.Equal(t, "Crust styles.", crust.Description)
	assert.Equal(t, model.TypeKindEnum, crust.TypeKind)
	assert.Same(t, pkg, crust.Package)
	require.Len(t, crust.Values, 2)
	assert.Equal(t, "Unknown crust.", crust.Values[0].Description)
	assert.Equal(t, 1, crust.Values[1].Number)

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.DescriptorFilesTotal))
	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.DeclarationsTotal.WithLabelValues("message")))
	assert.Equal(t, float64(3), testutil.ToFloat64(metrics.DeclarationsTotal.WithLabelValues("method")))
}

func TestParse_HiddenPackages(t *testing.T) {
	set, err := protosrc.Compile(context.Background(), protosrc.Options{
		Files: []string{"event.proto"},
		Sources: map[string]string{"event.proto": `syntax = "proto3";
package event;

import "google/protobuf/timestamp.proto";

message Event {
  google.protobuf.Timestamp at = 1;
  Event parent = 2;
}
`},
		IncludeImports: true,
	})
	require.NoError(t, err)

	cfg := config.Default()
	cfg.HiddenPackages = []string{"google.*"}

	result := parse(t, cfg, set)
	event := result.FindMessage("event.Event")
	require.NotNil(t, event)

	at := fieldNamed(t, event, "at")
	require.NotNil(t, at.Package)
	assert.Equal(t, "google.protobuf", at.Package.Name)
	assert.True(t, at.IsPackageHidden)
	assert.False(t, fieldNamed(t, event, "parent").IsPackageHidden)
}

func TestParse_NestedNames(t *testing.T) {
	set := compile(t, map[string]string{
		"nest.proto": `syntax = "proto3";
package nest;

message Outer {
  message Middle {
    // The innermost message.
    message Inner {
      Kind kind = 1;
    }
    enum Kind {
      KIND_UNSPECIFIED = 0;
    }
  }
}
`,
	}, "nest.proto")

	result := parse(t, config.Default(), set)

	inner := result.FindMessage("nest.Outer.Middle.Inner")
	require.NotNil(t, inner)
	assert.Equal(t, "The innermost message.", inner.Description)
	assert.Equal(t, "nest.Outer.Middle", inner.ParentMessage.FullName)
	assert.Equal(t, "nest.Outer", inner.ParentMessage.ParentMessage.FullName)
	assert.Nil(t, inner.ParentMessage.ParentMessage.ParentMessage)

	kind := result.FindEnum("nest.Outer.Middle.Kind")
	require.NotNil(t, kind)
	assert.Equal(t, "nest.Outer.Middle", kind.ParentMessage.FullName)
	assert.Equal(t, "nest.Outer.Middle.Kind", fieldNamed(t, inner, "kind").FullType)

	for _, m := range result.AllMessages {
		assert.Equal(t, "nest."+fullChain(m), m.FullName)
	}
}

func fullChain(m *model.Message) string {
	if m.ParentMessage == nil {
		return m.Name
	}
	return fullChain(m.ParentMessage) + "." + m.Name
}

const orderingSource = `syntax = "proto3";
package zeta;

enum Zone {
  ZONE_UNSPECIFIED = 0;
}

enum Area {
  AREA_UNSPECIFIED = 0;
}

message Zebra {
  string c = 3;
  string a = 1;
  string b = 2;
}

message Apple {}

service Zoo {}
service Aviary {}
`

const alphaSource = `syntax = "proto3";
package alpha;

message Only {}
`

func TestParse_Alphabetical(t *testing.T) {
	set := compile(t, map[string]string{
		"zeta.proto":  orderingSource,
		"alpha.proto": alphaSource,
	}, "zeta.proto", "alpha.proto")

	result := parse(t, config.Default(), set)

	assert.Equal(t, []string{"alpha", "zeta"}, names(result.Packages, packageName))
	zeta := result.Package("zeta")
	assert.Equal(t, []string{"Apple", "Zebra"}, names(zeta.Messages, messageName))
	assert.Equal(t, []string{"Area", "Zone"}, names(zeta.Enums, enumName))
	assert.Equal(t, "Aviary", zeta.Services[0].Name)
	assert.Equal(t, []string{"a", "b", "c"}, names(result.FindMessage("zeta.Zebra").Fields, fieldName))

	// flattened views follow encounter order of packages
	assert.Equal(t, []string{"Apple", "Zebra", "Only"}, names(result.AllMessages, messageName))
}

func TestParse_PreserveOriginal(t *testing.T) {
	set := compile(t, map[string]string{
		"zeta.proto":  orderingSource,
		"alpha.proto": alphaSource,
	}, "zeta.proto", "alpha.proto")

	cfg := config.Default()
	cfg.MemberOrdering = config.PreserveOriginal

	result := parse(t, cfg, set)

	assert.Equal(t, []string{"zeta", "alpha"}, names(result.Packages, packageName))
	zeta := result.Package("zeta")
	assert.Equal(t, []string{"Zebra", "Apple"}, names(zeta.Messages, messageName))
	assert.Equal(t, []string{"Zone", "Area"}, names(zeta.Enums, enumName))
	assert.Equal(t, "Zoo", zeta.Services[0].Name)
	assert.Equal(t, []string{"c", "a", "b"}, names(result.FindMessage("zeta.Zebra").Fields, fieldName))
}

func TestParse_MultiFilePackage(t *testing.T) {
	set := compile(t, map[string]string{
		"shop/one.proto": `syntax = "proto3";

// First part.
package shop;

message Cart {}
`,
		"shop/two.proto": `syntax = "proto3";

// Second part.
package shop;

message Checkout {}
enum State {
  STATE_UNSPECIFIED = 0;
}
`,
	}, "shop/one.proto", "shop/two.proto")

	result := parse(t, config.Default(), set)

	require.Len(t, result.Packages, 1)
	shop := result.Packages[0]
	assert.Equal(t, "First part.\n\nSecond part.", shop.Description)
	assert.Equal(t, "shop/one.proto", shop.SourceFilePath)
	assert.Equal(t, []string{"Cart", "Checkout"}, names(shop.Messages, messageName))
	assert.Len(t, shop.Enums, 1)
	assert.Equal(t, "shop/two.proto", result.FindMessage("shop.Checkout").SourceFilePath)
	assert.Len(t, result.AllMessages, 2)
}

func TestParse_Idempotent(t *testing.T) {
	set := compile(t, map[string]string{
		"zeta.proto":           orderingSource,
		"alpha.proto":          alphaSource,
		"pizza/v1/pizza.proto": serviceSource,
	}, "zeta.proto", "alpha.proto", "pizza/v1/pizza.proto")

	data, err := proto.Marshal(set)
	require.NoError(t, err)

	for _, ordering := range []config.MemberOrdering{config.Alphabetical, config.PreserveOriginal} {
		cfg := config.Default()
		cfg.MemberOrdering = ordering

		p, err := New(cfg, WithLogger(quietLogger()))
		require.NoError(t, err)

		first, err := p.Parse(context.Background(), data)
		require.NoError(t, err)
		second, err := p.Parse(context.Background(), data)
		require.NoError(t, err)

		assert.Equal(t, names(first.Packages, packageName), names(second.Packages, packageName))
		for i := range first.Packages {
			a, b := first.Packages[i], second.Packages[i]
			assert.Equal(t, names(a.Messages, messageName), names(b.Messages, messageName))
			assert.Equal(t, names(a.Enums, enumName), names(b.Enums, enumName))
			assert.Equal(t, len(a.Services), len(b.Services))
			for j := range a.Messages {
				assert.Equal(t, len(a.Messages[j].Fields), len(b.Messages[j].Fields))
			}
		}
		assert.Equal(t, first.Summary(), second.Summary())
	}
}

func TestParse_CommentFiltersAndParser(t *testing.T) {
	set := compile(t, map[string]string{
		"filters.proto": `syntax = "proto3";
package filters;

// {"desc": "A <p>JSON described message."}
message Described {}

// Public text.
// buf:lint:ignore
// @exclude secret
message Filtered {}
`,
	}, "filters.proto")

	cfg := config.Default()
	cfg.CommentsParser = "json-desc"
	cfg.IgnoreCommentsAfter = []string{"@exclude"}
	cfg.IgnoreCommentLinesContaining = []string{"buf:lint"}

	result := parse(t, cfg, set)

	assert.Equal(t, "A \n\nJSON described message.", result.FindMessage("filters.Described").Description)

	filtered := result.FindMessage("filters.Filtered").Description
	assert.Equal(t, "Public text.", filtered)
}

func TestParse_InjectedCommentsParser(t *testing.T) {
	set := compile(t, map[string]string{"pizza/v1/pizza.proto": serviceSource}, "pizza/v1/pizza.proto")

	upper := comments.Func(func(c string) string {
		if c == "" {
			return c
		}
		return "[" + c + "]"
	})
	result := parse(t, config.Default(), set, WithCommentsParser(upper))

	assert.Equal(t, "[The pizza service.]", result.Package("pizza.v1").Description)
	assert.Equal(t, "[Places orders.]", result.Package("pizza.v1").Services[0].Description)
	assert.Equal(t, "", result.FindMessage("pizza.v1.OrderResponse").Description)
}

func TestParseFile(t *testing.T) {
	set := compile(t, map[string]string{"alpha.proto": alphaSource}, "alpha.proto")
	data, err := proto.Marshal(set)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "descriptor.pb")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	p, err := New(config.Default(), WithLogger(quietLogger()))
	require.NoError(t, err)

	result, err := p.ParseFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Packages: 1, Messages: 1, Enums: 0, Services: 0", result.Summary())
}

func TestParse_Errors(t *testing.T) {
	p, err := New(config.Default(), WithLogger(quietLogger()))
	require.NoError(t, err)

	_, err = p.ParseFile(context.Background(), filepath.Join(t.TempDir(), "missing.pb"))
	assert.ErrorIs(t, err, ErrReadDescriptor)

	_, err = p.Parse(context.Background(), []byte{0x0a, 0x05})
	assert.ErrorIs(t, err, ErrDecodeDescriptor)

	cfg := config.Default()
	cfg.CommentsParser = "nope"
	_, err = New(cfg)
	assert.ErrorIs(t, err, comments.ErrUnknownParser)
}

func TestParse_DefaultPackage(t *testing.T) {
	set := &descriptorpb.FileDescriptorSet{
		File: []*descriptorpb.FileDescriptorProto{{
			Name: proto.String("nopkg.proto"),
			MessageType: []*descriptorpb.DescriptorProto{{
				Name: proto.String("Loose"),
				Field: []*descriptorpb.FieldDescriptorProto{{
					Name:     proto.String("self"),
					Number:   proto.Int32(1),
					Label:    descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
					Type:     descriptorpb.FieldDescriptorProto_TYPE_MESSAGE.Enum(),
					TypeName: proto.String(".Loose"),
				}},
			}},
		}},
	}

	result := parse(t, config.Default(), set)
	require.Len(t, result.Packages, 1)
	assert.Equal(t, "", result.Packages[0].Name)
	assert.Equal(t, "__default", result.Packages[0].PageName())

	loose := result.FindMessage("Loose")
	require.NotNil(t, loose)
	self := loose.Fields[0]
	assert.Equal(t, "Loose", self.Type)
	assert.Equal(t, "Loose", self.FullType)
	assert.Same(t, result.Packages[0], self.Package)
}
