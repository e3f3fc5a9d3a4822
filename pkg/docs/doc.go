// Package docs renders a documentation model into a static HTML site.
//
// # Output
//
// Renderer.Render writes to a storage.Storage:
//
//   - index.html: package overview plus the rendered main page content file
//   - <package>.html: one page per visible package, __default.html for the unnamed package
//   - search.html and search-index.json when search is enabled
//   - <package>.md when Markdown export is enabled
//   - static/: the theme's assets
//
// Hidden packages get no page, and types they own are shown without links.
// Every message, field, enum, enum value, service and method has an element
// id equal to its fully qualified name, so search.URL links resolve.
//
// # Themes
//
// The "_default" theme is embedded. Any other theme name is loaded from the
// templates/<name> directory, which must provide index.html and package.html
// (and search.html when search is enabled) plus an optional static/ directory.
//
// # Usage Example
//
//	renderer, err := docs.NewRenderer(cfg, docs.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	sink, err := storage.NewFileSystemStorage(cfg.OutputDir)
//	if err != nil {
//		return err
//	}
//	err = renderer.Render(ctx, result, sink)
//
// Pages are rendered concurrently with errgroup and written in a fixed order,
// so two renders of the same model produce identical output.
package docs
