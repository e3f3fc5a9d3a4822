package search

import (
	"sort"
	"strings"
	"sync"
)

// Kinds of indexed declarations
const (
	KindMessage   = "message"
	KindField     = "field"
	KindEnum      = "enum"
	KindEnumValue = "enum_value"
	KindService   = "service"
	KindMethod    = "method"
)

// Document is one searchable declaration
type Document struct {
	ID          int    `json:"id"`
	Kind        string `json:"kind"`
	Name        string `json:"name"`
	FullName    string `json:"full_name"`
	Package     string `json:"package"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

// Posting records how often a token occurs in a document
type Posting struct {
	Doc  int `json:"d"`
	Hits int `json:"h"`
}

// Index is an inverted index over documents. It serializes to the
// search-index.json file used by the static search page.
type Index struct {
	Documents []Document           `json:"documents"`
	Postings  map[string][]Posting `json:"postings"`

	tokensOnce sync.Once
	tokens     []string
}

// Result is a ranked search hit
type Result struct {
	Document
	Score int `json:"score"`
}

// Results contains search results and metadata
type Results struct {
	Results    []Result `json:"results"`
	TotalCount int      `json:"total_count"`
	Query      string   `json:"query"`
}

// Search returns the documents matching every term of query. A term matches
// any indexed token it is a prefix of. Filters such as kind:message narrow the
// results. Hits are ranked by number of token occurrences, then by name.
func (idx *Index) Search(query string, limit int) (*Results, error) {
	parsed, err := NewQueryParser().Parse(query)
	if err != nil {
		return nil, err
	}

	results := &Results{Results: make([]Result, 0), Query: query}

	var queryTokens []string
	for _, term := range parsed.Terms {
		queryTokens = append(queryTokens, Tokenize(term)...)
	}
	if len(queryTokens) == 0 {
		return results, nil
	}

	var scores map[int]int
	for _, qt := range queryTokens {
		matched := make(map[int]int)
		for _, token := range idx.tokensWithPrefix(qt) {
			for _, p := range idx.Postings[token] {
				matched[p.Doc] += p.Hits
			}
		}

		if scores == nil {
			scores = matched
			continue
		}
		for doc, score := range scores {
			if hits, ok := matched[doc]; ok {
				scores[doc] = score + hits
			} else {
				delete(scores, doc)
			}
		}
	}

	for doc, score := range scores {
		d := idx.Documents[doc]
		if !parsed.Matches(d) {
			continue
		}
		results.Results = append(results.Results, Result{Document: d, Score: score})
	}

	sort.Slice(results.Results, func(i, j int) bool {
		a, b := results.Results[i], results.Results[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})

	results.TotalCount = len(results.Results)
	if limit > 0 && len(results.Results) > limit {
		results.Results = results.Results[:limit]
	}

	return results, nil
}

func (idx *Index) tokensWithPrefix(prefix string) []string {
	idx.tokensOnce.Do(func() {
		idx.tokens = make([]string, 0, len(idx.Postings))
		for token := range idx.Postings {
			idx.tokens = append(idx.tokens, token)
		}
		sort.Strings(idx.tokens)
	})

	start := sort.SearchStrings(idx.tokens, prefix)
	end := start
	for end < len(idx.tokens) && strings.HasPrefix(idx.tokens[end], prefix) {
		end++
	}
	return idx.tokens[start:end]
}

// Tokenize splits text into lowercase alphanumeric tokens. Mixed case words
// also yield their camelCase parts, so "OrderRequest" gives "orderrequest",
// "order" and "request".
func Tokenize(text string) []string {
	var tokens []string
	for _, word := range strings.FieldsFunc(text, func(r rune) bool {
		return !isAlnum(r)
	}) {
		tokens = append(tokens, strings.ToLower(word))
		if parts := splitCamel(word); len(parts) > 1 {
			for _, part := range parts {
				tokens = append(tokens, strings.ToLower(part))
			}
		}
	}
	return tokens
}

func isAlnum(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9'
}

func isUpper(b byte) bool { return b >= 'A' && b <= 'Z' }
func isLower(b byte) bool { return b >= 'a' && b <= 'z' }

// splitCamel splits "HTTPServerV2" into "HTTP", "Server", "V2"
func splitCamel(word string) []string {
	var parts []string
	start := 0
	for i := 1; i < len(word); i++ {
		prev, cur := word[i-1], word[i]
		boundary := isLower(prev) && isUpper(cur)
		if isUpper(prev) && isUpper(cur) && i+1 < len(word) && isLower(word[i+1]) {
			boundary = true
		}
		if boundary {
			parts = append(parts, word[start:i])
			start = i
		}
	}
	return append(parts, word[start:])
}
