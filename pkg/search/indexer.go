package search

import (
	"context"
	"sort"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/platinummonkey/sabledocs/pkg/model"
)

var indexerTracer = otel.Tracer("sabledocs/search/indexer")

// PageFile returns the HTML file documenting a package
func PageFile(pkg *model.Package) string {
	return pkg.PageName() + ".html"
}

// URL returns the link to an anchor on a package page
func URL(pkg *model.Package, anchor string) string {
	return PageFile(pkg) + "#" + anchor
}

// Indexer builds a search index from a documentation model
type Indexer struct {
	hidden func(pkg string) bool
}

// NewIndexer creates an indexer. Packages for which hidden returns true are
// left out of the index. A nil hidden indexes everything.
func NewIndexer(hidden func(pkg string) bool) *Indexer {
	if hidden == nil {
		hidden = func(string) bool { return false }
	}
	return &Indexer{hidden: hidden}
}

// Build indexes every message, field, enum, enum value, service and method of
// the visible packages. Map entry messages are skipped.
func (ix *Indexer) Build(ctx context.Context, result *model.Result) *Index {
	_, span := indexerTracer.Start(ctx, "Indexer.Build")
	defer span.End()

	b := &builder{
		index: &Index{
			Documents: make([]Document, 0),
			Postings:  make(map[string][]Posting),
		},
		counts: make(map[string]map[int]int),
	}

	for _, pkg := range result.Packages {
		if ix.hidden(pkg.Name) {
			continue
		}

		for _, m := range pkg.Messages {
			if m.IsMapEntry {
				continue
			}
			b.add(KindMessage, m.Name, m.FullName, pkg, m.FullName, m.Description)
			for _, f := range m.Fields {
				fullName := m.FullName + "." + f.Name
				b.add(KindField, f.Name, fullName, pkg, fullName, f.Description)
			}
		}

		for _, e := range pkg.Enums {
			b.add(KindEnum, e.Name, e.FullName, pkg, e.FullName, e.Description)
			for _, v := range e.Values {
				fullName := e.FullName + "." + v.Name
				b.add(KindEnumValue, v.Name, fullName, pkg, fullName, v.Description)
			}
		}

		for _, s := range pkg.Services {
			b.add(KindService, s.Name, s.FullName, pkg, s.FullName, s.Description)
			for _, method := range s.Methods {
				fullName := s.FullName + "." + method.Name
				b.add(KindMethod, method.Name, fullName, pkg, fullName, method.Description)
			}
		}
	}

	b.finish()

	span.SetAttributes(
		attribute.Int("documents", len(b.index.Documents)),
		attribute.Int("tokens", len(b.index.Postings)),
	)

	return b.index
}

type builder struct {
	index  *Index
	counts map[string]map[int]int
}

func (b *builder) add(kind, name, fullName string, pkg *model.Package, anchor, description string) {
	doc := Document{
		ID:          len(b.index.Documents),
		Kind:        kind,
		Name:        name,
		FullName:    fullName,
		Package:     pkg.Name,
		URL:         URL(pkg, anchor),
		Description: description,
	}
	b.index.Documents = append(b.index.Documents, doc)

	// name tokens are weighted double
	tokens := Tokenize(name)
	tokens = append(tokens, Tokenize(name)...)
	tokens = append(tokens, Tokenize(fullName)...)
	tokens = append(tokens, Tokenize(description)...)

	for _, token := range tokens {
		docs, ok := b.counts[token]
		if !ok {
			docs = make(map[int]int)
			b.counts[token] = docs
		}
		docs[doc.ID]++
	}
}

func (b *builder) finish() {
	for token, docs := range b.counts {
		postings := make([]Posting, 0, len(docs))
		for doc, hits := range docs {
			postings = append(postings, Posting{Doc: doc, Hits: hits})
		}
		sort.Slice(postings, func(i, j int) bool { return postings[i].Doc < postings[j].Doc })
		b.index.Postings[token] = postings
	}
}
