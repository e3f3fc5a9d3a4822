package docs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/platinummonkey/sabledocs/pkg/config"
	"github.com/platinummonkey/sabledocs/pkg/markdown"
	"github.com/platinummonkey/sabledocs/pkg/model"
	"github.com/platinummonkey/sabledocs/pkg/observability"
	"github.com/platinummonkey/sabledocs/pkg/search"
	"github.com/platinummonkey/sabledocs/pkg/storage"
)

// Output file names
const (
	IndexFile       = "index.html"
	SearchFile      = "search.html"
	SearchIndexFile = "search-index.json"
	StaticDir       = "static"
)

// Renderer turns a documentation model into a static site
type Renderer struct {
	cfg            *config.Config
	theme          fs.FS
	templates      *template.Template
	markdown       markdown.Converter
	markdownExport bool
	log            *logrus.Logger
	metrics        *observability.Metrics
	tracer         trace.Tracer
	concurrency    int
}

// Option configures a Renderer
type Option func(*Renderer)

// WithLogger sets the logger
func WithLogger(log *logrus.Logger) Option {
	return func(r *Renderer) { r.log = log }
}

// WithMetrics records render metrics
func WithMetrics(m *observability.Metrics) Option {
	return func(r *Renderer) { r.metrics = m }
}

// WithTheme replaces the theme named in the configuration
func WithTheme(theme fs.FS) Option {
	return func(r *Renderer) { r.theme = theme }
}

// WithMarkdown sets the converter for the main page content file
func WithMarkdown(c markdown.Converter) Option {
	return func(r *Renderer) { r.markdown = c }
}

// WithMarkdownExport also writes a <package>.md file per package
func WithMarkdownExport(enabled bool) Option {
	return func(r *Renderer) { r.markdownExport = enabled }
}

// WithConcurrency limits how many pages are rendered at once
func WithConcurrency(n int) Option {
	return func(r *Renderer) { r.concurrency = n }
}

// NewRenderer creates a renderer and parses its theme
func NewRenderer(cfg *config.Config, opts ...Option) (*Renderer, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	r := &Renderer{
		cfg:    cfg,
		tracer: otel.Tracer("sabledocs/docs"),
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.log == nil {
		r.log = logrus.New()
	}
	if r.markdown == nil {
		r.markdown = markdown.NewHTMLConverter()
	}
	if r.concurrency <= 0 {
		r.concurrency = runtime.GOMAXPROCS(0)
	}
	if r.theme == nil {
		theme, err := LoadTheme(cfg.Template)
		if err != nil {
			return nil, err
		}
		r.theme = theme
	}

	tmpl, err := parseTheme(r.theme, r.templateFuncs())
	if err != nil {
		return nil, err
	}
	if cfg.EnableLunrSearch && tmpl.Lookup(SearchTemplate) == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingTemplate, SearchTemplate)
	}
	r.templates = tmpl

	return r, nil
}

// page is one output file
type page struct {
	name   string
	kind   string
	render func() ([]byte, error)
	data   []byte
}

// Render writes the site for result to sink. Pages are rendered concurrently
// and written in a fixed order: index, package pages, search files, Markdown
// files, then static assets.
func (r *Renderer) Render(ctx context.Context, result *model.Result, sink storage.Storage) error {
	ctx, span := r.tracer.Start(ctx, "docs.Render",
		trace.WithAttributes(attribute.String("sink", sink.Location())),
	)
	defer span.End()

	start := time.Now()
	defer func() { r.metrics.ObserveRender(time.Since(start)) }()

	pages, err := r.plan(ctx, result)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to plan pages")
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i := range pages {
		p := pages[i]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := p.render()
			if err != nil {
				return fmt.Errorf("failed to render %s: %w", p.name, err)
			}
			p.data = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "render failed")
		return err
	}

	for _, p := range pages {
		if err := sink.WriteFile(ctx, p.name, p.data); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "write failed")
			return fmt.Errorf("failed to write %s: %w", p.name, err)
		}
		r.metrics.RecordPage(p.kind)
	}

	assets, err := r.copyStatic(ctx, sink)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "static copy failed")
		return err
	}

	span.SetAttributes(
		attribute.Int("pages", len(pages)),
		attribute.Int("assets", assets),
	)
	r.log.WithFields(logrus.Fields{
		"location": sink.Location(),
		"pages":    len(pages),
		"assets":   assets,
	}).Info("Documentation written")

	return nil
}

// plan lists the pages to render for result
func (r *Renderer) plan(ctx context.Context, result *model.Result) ([]*page, error) {
	packages := r.visiblePackages(result)

	mainContent, err := r.mainPageContent()
	if err != nil {
		return nil, err
	}

	base := pageData{
		ModuleTitle:   r.cfg.ModuleTitle,
		Footer:        template.HTML(r.cfg.FooterContent),
		SearchEnabled: r.cfg.EnableLunrSearch,
		Packages:      packages,
		AllMessages:   result.AllMessages,
		AllEnums:      result.AllEnums,
	}

	index := base
	index.Title = "Index"
	index.MainPageContent = mainContent
	pages := []*page{{
		name:   IndexFile,
		kind:   "index",
		render: r.execute(IndexTemplate, index),
	}}

	for _, pkg := range packages {
		data := base
		data.Title = packageTitle(pkg)
		data.Package = pkg
		pages = append(pages, &page{
			name:   search.PageFile(pkg),
			kind:   "package",
			render: r.execute(PackageTemplate, data),
		})
	}

	if r.cfg.EnableLunrSearch {
		data := base
		data.Title = "Search"
		pages = append(pages,
			&page{
				name:   SearchFile,
				kind:   "search",
				render: r.execute(SearchTemplate, data),
			},
			&page{
				name: SearchIndexFile,
				kind: "search_index",
				render: func() ([]byte, error) {
					idx := search.NewIndexer(r.cfg.IsPackageHidden).Build(ctx, result)
					return json.Marshal(idx)
				},
			},
		)
	}

	if r.markdownExport {
		exporter := NewMarkdownExporter(r.cfg.IsPackageHidden)
		for _, pkg := range packages {
			pages = append(pages, &page{
				name: pkg.PageName() + ".md",
				kind: "markdown",
				render: func() ([]byte, error) {
					return []byte(exporter.Export(pkg)), nil
				},
			})
		}
	}

	return pages, nil
}

func (r *Renderer) execute(name string, data pageData) func() ([]byte, error) {
	return func() ([]byte, error) {
		var buf bytes.Buffer
		if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
			return nil, fmt.Errorf("failed to execute template: %w", err)
		}
		return buf.Bytes(), nil
	}
}

func (r *Renderer) visiblePackages(result *model.Result) []*model.Package {
	packages := make([]*model.Package, 0, len(result.Packages))
	for _, pkg := range result.Packages {
		if r.cfg.IsPackageHidden(pkg.Name) {
			continue
		}
		packages = append(packages, pkg)
	}
	return packages
}

// mainPageContent converts the configured Markdown file. A missing file is
// not an error.
func (r *Renderer) mainPageContent() (template.HTML, error) {
	path := r.cfg.MainPageContentFile
	if path == "" {
		return "", nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		r.log.WithField("file", path).Warn("Main page content file not found")
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read main page content: %w", err)
	}

	return template.HTML(r.markdown.ToHTML(string(data))), nil
}

// copyStatic copies the theme's static directory to the sink
func (r *Renderer) copyStatic(ctx context.Context, sink storage.Storage) (int, error) {
	if _, err := fs.Stat(r.theme, StaticDir); errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}

	count := 0
	err := fs.WalkDir(r.theme, StaticDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		data, err := fs.ReadFile(r.theme, path)
		if err != nil {
			return err
		}
		if err := sink.WriteFile(ctx, path, data); err != nil {
			return err
		}
		count++
		return nil
	})
	if err != nil {
		return count, fmt.Errorf("failed to copy static assets: %w", err)
	}
	return count, nil
}
