package docs

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/platinummonkey/sabledocs/pkg/model"
	"github.com/platinummonkey/sabledocs/pkg/search"
)

// DefaultThemeName selects the embedded theme
const DefaultThemeName = "_default"

// Template names a theme provides
const (
	IndexTemplate   = "index.html"
	PackageTemplate = "package.html"
	SearchTemplate  = "search.html"
)

// ErrMissingTemplate is returned when a theme lacks a required template
var ErrMissingTemplate = errors.New("theme is missing a template")

//go:embed all:theme
var embeddedThemes embed.FS

// DefaultTheme returns the embedded theme
func DefaultTheme() fs.FS {
	theme, err := fs.Sub(embeddedThemes, "theme/"+DefaultThemeName)
	if err != nil {
		panic(err)
	}
	return theme
}

// LoadTheme returns the embedded theme for "_default" and the
// templates/<name> directory otherwise
func LoadTheme(name string) (fs.FS, error) {
	if name == "" || name == DefaultThemeName {
		return DefaultTheme(), nil
	}

	dir := filepath.Join("templates", name)
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open theme %s: %w", name, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("theme %s is not a directory", dir)
	}
	return os.DirFS(dir), nil
}

// parseTheme parses every top-level template of the theme
func parseTheme(theme fs.FS, funcs template.FuncMap) (*template.Template, error) {
	tmpl, err := template.New("sabledocs").Funcs(funcs).ParseFS(theme, "*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse theme templates: %w", err)
	}

	for _, name := range []string{IndexTemplate, PackageTemplate} {
		if tmpl.Lookup(name) == nil {
			return nil, fmt.Errorf("%w: %s", ErrMissingTemplate, name)
		}
	}
	return tmpl, nil
}

// pageData is passed to every theme template
type pageData struct {
	Title           string
	ModuleTitle     string
	Footer          template.HTML
	SearchEnabled   bool
	Packages        []*model.Package
	Package         *model.Package
	MainPageContent template.HTML
	AllMessages     []*model.Message
	AllEnums        []*model.Enum
}

// templateFuncs returns the functions available to theme templates
func (r *Renderer) templateFuncs() template.FuncMap {
	return template.FuncMap{
		"pageFile":     search.PageFile,
		"packageTitle": packageTitle,
		"messages":     documentedMessages,
		"hasContent":   hasContent,
		"safeHTML":     safeHTML,
		"streaming":    streamingLabel,
		"oneofName":    oneofName,
		"fieldType":    r.fieldType,
		"argType":      r.argType,
	}
}

// fieldType renders a field type, linked to its declaration when the owning
// package is known and documented
func (r *Renderer) fieldType(f *model.MessageField) template.HTML {
	if f.IsPackageHidden || f.IsMap() {
		return typeHTML(nil, f.Type, "")
	}
	return typeHTML(f.Package, f.Type, f.FullType)
}

// argType renders a request or response type
func (r *Renderer) argType(a *model.ServiceMethodArgument) template.HTML {
	if a == nil {
		return ""
	}
	if a.Package != nil && r.cfg.IsPackageHidden(a.Package.Name) {
		return typeHTML(nil, a.Type, "")
	}
	return typeHTML(a.Package, a.Type, a.FullType)
}

func typeHTML(pkg *model.Package, typ, fullType string) template.HTML {
	text := template.HTMLEscapeString(typ)
	if pkg == nil || fullType == "" {
		return template.HTML(`<code>` + text + `</code>`)
	}
	href := template.HTMLEscapeString(search.URL(pkg, fullType))
	return template.HTML(`<a href="` + href + `"><code>` + text + `</code></a>`)
}

// packageTitle is the display name of a package
func packageTitle(pkg *model.Package) string {
	if pkg.Name == "" {
		return "(default)"
	}
	return pkg.Name
}

// documentedMessages returns the messages of pkg that get their own section.
// Map entries are shown through the map<K, V> fields instead.
func documentedMessages(pkg *model.Package) []*model.Message {
	messages := make([]*model.Message, 0, len(pkg.Messages))
	for _, m := range pkg.Messages {
		if !m.IsMapEntry {
			messages = append(messages, m)
		}
	}
	return messages
}

// hasContent checks if a string has content
func hasContent(s string) bool {
	return strings.TrimSpace(s) != ""
}

// safeHTML marks description HTML produced by the markdown converter as trusted
func safeHTML(s string) template.HTML {
	return template.HTML(s)
}

func streamingLabel(method *model.ServiceMethod) string {
	return strings.Trim(streamingSuffix(method), " ()")
}

func oneofName(f *model.MessageField) string {
	if f.OneofName == nil {
		return ""
	}
	return *f.OneofName
}
