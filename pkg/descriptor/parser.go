package descriptor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/platinummonkey/sabledocs/pkg/comments"
	"github.com/platinummonkey/sabledocs/pkg/config"
	"github.com/platinummonkey/sabledocs/pkg/markdown"
	"github.com/platinummonkey/sabledocs/pkg/model"
	"github.com/platinummonkey/sabledocs/pkg/observability"
	"github.com/platinummonkey/sabledocs/pkg/repourl"
)

var (
	// ErrReadDescriptor is returned when the descriptor set file cannot be read
	ErrReadDescriptor = errors.New("failed to read descriptor set")
	// ErrDecodeDescriptor is returned when the bytes are not a FileDescriptorSet
	ErrDecodeDescriptor = errors.New("failed to decode descriptor set")
)

// Parser turns a FileDescriptorSet into a resolved documentation model
type Parser struct {
	cfg      *config.Config
	comments comments.Parser
	markdown markdown.Converter
	log      *logrus.Logger
	metrics  *observability.Metrics
	tracer   trace.Tracer

	resolverCacheSize int
}

// Option configures a Parser
type Option func(*Parser)

// WithLogger sets the logger
func WithLogger(log *logrus.Logger) Option {
	return func(p *Parser) { p.log = log }
}

// WithMetrics records parse metrics
func WithMetrics(m *observability.Metrics) Option {
	return func(p *Parser) { p.metrics = m }
}

// WithCommentsParser overrides the comments parser named in the configuration
func WithCommentsParser(c comments.Parser) Option {
	return func(p *Parser) { p.comments = c }
}

// WithMarkdown sets the converter producing DescriptionHTML
func WithMarkdown(c markdown.Converter) Option {
	return func(p *Parser) { p.markdown = c }
}

// WithResolverCacheSize sets the size of the type resolution cache
func WithResolverCacheSize(size int) Option {
	return func(p *Parser) { p.resolverCacheSize = size }
}

// New creates a parser. The comments parser is looked up by the name in cfg
// unless one is supplied with WithCommentsParser.
func New(cfg *config.Config, opts ...Option) (*Parser, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	p := &Parser{
		cfg:    cfg,
		tracer: otel.Tracer("sabledocs/descriptor"),
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.log == nil {
		p.log = logrus.New()
	}
	if p.markdown == nil {
		p.markdown = markdown.NewHTMLConverter()
	}
	if p.comments == nil {
		c, err := comments.Lookup(cfg.CommentsParser)
		if err != nil {
			return nil, err
		}
		p.comments = c
	}

	return p, nil
}

// ParseFile reads and parses a serialized FileDescriptorSet
func (p *Parser) ParseFile(ctx context.Context, path string) (*model.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrReadDescriptor, path, err)
	}
	return p.Parse(ctx, data)
}

// Parse decodes a serialized FileDescriptorSet and parses it
func (p *Parser) Parse(ctx context.Context, data []byte) (*model.Result, error) {
	var set descriptorpb.FileDescriptorSet
	if err := proto.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeDescriptor, err)
	}
	return p.ParseSet(ctx, &set)
}

// ParseSet builds the model for every file of set. Files sharing a package
// name contribute to the same Package. Unresolvable type references are not
// errors; they leave the package link nil.
func (p *Parser) ParseSet(ctx context.Context, set *descriptorpb.FileDescriptorSet) (*model.Result, error) {
	_, span := p.tracer.Start(ctx, "descriptor.ParseSet",
		trace.WithAttributes(attribute.Int("files", len(set.GetFile()))),
	)
	defer span.End()

	start := time.Now()
	defer func() { p.metrics.ObserveParse(time.Since(start)) }()

	packages := newPackageSet()
	for _, fd := range set.GetFile() {
		p.parseFile(fd, packages)
	}

	result := &model.Result{Packages: packages.ordered}
	for _, pkg := range packages.ordered {
		result.AllMessages = append(result.AllMessages, pkg.Messages...)
		result.AllEnums = append(result.AllEnums, pkg.Enums...)
		result.AllServices = append(result.AllServices, pkg.Services...)
	}

	resolver, err := NewResolver(result.Packages, p.resolverCacheSize)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "resolver setup failed")
		return nil, fmt.Errorf("failed to create type resolver: %w", err)
	}
	p.link(result, resolver)

	if p.cfg.IsAlphabetical() {
		result.Packages = append([]*model.Package(nil), result.Packages...)
		sort.SliceStable(result.Packages, func(i, j int) bool {
			return result.Packages[i].Name < result.Packages[j].Name
		})
	}

	span.SetAttributes(
		attribute.Int("packages", len(result.Packages)),
		attribute.Int("messages", len(result.AllMessages)),
		attribute.Int("enums", len(result.AllEnums)),
		attribute.Int("services", len(result.AllServices)),
	)
	p.log.Info(result.Summary())

	return result, nil
}

func (p *Parser) parseFile(fd *descriptorpb.FileDescriptorProto, packages *packageSet) {
	p.log.WithField("file", fd.GetName()).Info("Processing descriptor file")
	p.metrics.RecordDescriptorFile()

	pkg, created := packages.get(fd.GetPackage())
	ctx := NewParseContext(p.cfg, pkg, fd.GetName(), BuildLocations(fd.GetSourceCodeInfo()))

	pkgPath := NewPath(filePackageTag)
	if created {
		line := ctx.LineNumberAt(pkgPath)
		pkg.SourceFilePath = fd.GetName()
		pkg.LineNumber = line
		pkg.RepositoryURL = p.repositoryURL(fd.GetName(), line)
	}
	if desc := p.comments.ParsePackage(ctx.CommentsAt(pkgPath)); desc != "" {
		if pkg.Description != "" {
			pkg.Description += "\n\n"
		}
		pkg.Description += desc
		pkg.DescriptionHTML = p.markdown.ToHTML(pkg.Description)
	}

	p.parseEnums(fd.GetEnumType(), ctx.WithPath(fileEnumTag), nil, "")
	p.parseMessages(fd.GetMessageType(), ctx.WithPath(fileMessageTag), nil, "")
	p.parseServices(fd.GetService(), ctx.WithPath(fileServiceTag))
}

func (p *Parser) codeItem(ctx ParseContext, name, description string) model.CodeItem {
	line := ctx.LineNumber()
	return model.CodeItem{
		Name:            name,
		Description:     description,
		DescriptionHTML: p.markdown.ToHTML(description),
		SourceFilePath:  ctx.SourceFile(),
		LineNumber:      line,
		RepositoryURL:   p.repositoryURL(ctx.SourceFile(), line),
	}
}

func (p *Parser) repositoryURL(file string, line int) string {
	return repourl.Build(p.cfg.RepositoryURL, p.cfg.RepositoryType, p.cfg.RepositoryBranch, p.cfg.RepositoryDir, file, line)
}

// packageSet accumulates packages by name in encounter order
type packageSet struct {
	byName  map[string]*model.Package
	ordered []*model.Package
}

func newPackageSet() *packageSet {
	return &packageSet{byName: make(map[string]*model.Package)}
}

func (s *packageSet) get(name string) (*model.Package, bool) {
	if pkg, ok := s.byName[name]; ok {
		return pkg, false
	}
	pkg := &model.Package{CodeItem: model.CodeItem{Name: name}}
	s.byName[name] = pkg
	s.ordered = append(s.ordered, pkg)
	return pkg, true
}
