package search

import (
	"fmt"
	"regexp"
	"strings"
)

// ParsedQuery represents a parsed search query with filters
type ParsedQuery struct {
	// Free-text search terms
	Terms []string

	// Kind filters: message, field, enum, enum_value, service, method
	Kinds []string

	// Package name filter, matched as a prefix
	Package string

	// Original query string
	Raw string
}

// QueryParser parses search query syntax
type QueryParser struct {
	filterPattern *regexp.Regexp
}

// NewQueryParser creates a new query parser
func NewQueryParser() *QueryParser {
	// key:value or key:"quoted value"
	return &QueryParser{
		filterPattern: regexp.MustCompile(`([\w-]+):("([^"]+)"|(\S+))`),
	}
}

// Parse parses a search query string into a ParsedQuery
func (p *QueryParser) Parse(queryStr string) (*ParsedQuery, error) {
	query := &ParsedQuery{
		Terms: make([]string, 0),
		Kinds: make([]string, 0),
		Raw:   queryStr,
	}

	for _, match := range p.filterPattern.FindAllStringSubmatch(queryStr, -1) {
		key := match[1]
		value := match[3]
		if value == "" {
			value = match[4]
		}
		if err := p.parseFilter(query, key, value); err != nil {
			return nil, err
		}
	}

	cleanQuery := strings.TrimSpace(p.filterPattern.ReplaceAllString(queryStr, ""))
	query.Terms = append(query.Terms, strings.Fields(cleanQuery)...)

	return query, nil
}

// parseFilter parses a single filter key-value pair
func (p *QueryParser) parseFilter(query *ParsedQuery, key, value string) error {
	switch strings.ToLower(key) {
	case "kind", "entity":
		switch value {
		case KindMessage, KindField, KindEnum, KindEnumValue, KindService, KindMethod:
			query.Kinds = append(query.Kinds, value)
		default:
			return fmt.Errorf("invalid kind: %s (must be one of: message, field, enum, enum_value, service, method)", value)
		}

	case "package", "pkg":
		query.Package = value

	default:
		// unknown filters are searched as text
		query.Terms = append(query.Terms, fmt.Sprintf("%s:%s", key, value))
	}

	return nil
}

// Matches reports whether a document passes the query filters
func (q *ParsedQuery) Matches(d Document) bool {
	if q.Package != "" && !strings.HasPrefix(d.Package, q.Package) {
		return false
	}
	if len(q.Kinds) == 0 {
		return true
	}
	for _, kind := range q.Kinds {
		if d.Kind == kind {
			return true
		}
	}
	return false
}
