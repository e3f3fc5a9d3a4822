// Package search builds a full-text index over the documentation model.
//
// The index is an inverted map from lowercase tokens to the documents that
// contain them. It is written next to the generated pages as
// search-index.json for the static search page and served by the preview
// server at /api/search.
//
// # Query Syntax
//
// Every term must match. A term matches any token it is a prefix of:
//
//	order req
//
// Filters narrow the result set:
//
//	size kind:field
//	pizza package:pizza.v1
//
// # Usage
//
//	index := search.NewIndexer(cfg.IsPackageHidden).Build(ctx, result)
//	results, err := index.Search("OrderRequest", 20)
package search
