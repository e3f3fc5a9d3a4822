package comments

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownParser is returned by Lookup for an unregistered strategy name
var ErrUnknownParser = errors.New("unknown comments parser")

// Parser post-processes comment text before it is stored on a declaration.
// Each declaration kind has its own entry point.
type Parser interface {
	ParsePackage(comment string) string
	ParseMessage(comment string) string
	ParseField(comment string) string
	ParseEnum(comment string) string
	ParseEnumValue(comment string) string
	ParseService(comment string) string
	ParseServiceMethod(comment string) string
}

// Func adapts a single function to every declaration kind
type Func func(comment string) string

func (f Func) ParsePackage(comment string) string       { return f(comment) }
func (f Func) ParseMessage(comment string) string       { return f(comment) }
func (f Func) ParseField(comment string) string         { return f(comment) }
func (f Func) ParseEnum(comment string) string          { return f(comment) }
func (f Func) ParseEnumValue(comment string) string     { return f(comment) }
func (f Func) ParseService(comment string) string       { return f(comment) }
func (f Func) ParseServiceMethod(comment string) string { return f(comment) }

var _ Parser = Func(nil)

// Passthrough returns comments unchanged
var Passthrough Parser = Func(func(comment string) string { return comment })

// JSONDescription extracts the "desc" key when a comment is a JSON object.
// Paragraph markers (<p>) in the description become blank lines.
var JSONDescription Parser = Func(parseJSONDescription)

func parseJSONDescription(comment string) string {
	simple := strings.Join(strings.Fields(comment), " ")
	if !strings.HasPrefix(simple, "{") {
		return comment
	}

	var values map[string]interface{}
	if err := json.Unmarshal([]byte(simple), &values); err != nil {
		return comment
	}

	desc, ok := values["desc"].(string)
	if !ok {
		return comment
	}
	return strings.ReplaceAll(desc, "<p>", "\n\n")
}

var registry = map[string]Parser{
	"":          Passthrough,
	"default":   Passthrough,
	"json-desc": JSONDescription,
}

// Register makes a parser available under name
func Register(name string, parser Parser) {
	registry[name] = parser
}

// Lookup returns the parser registered under name
func Lookup(name string) (Parser, error) {
	parser, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownParser, name, strings.Join(Names(), ", "))
	}
	return parser, nil
}

// Names lists the registered strategy names
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		if name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
