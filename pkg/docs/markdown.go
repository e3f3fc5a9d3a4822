package docs

import (
	"fmt"
	"strings"

	"github.com/platinummonkey/sabledocs/pkg/model"
)

// MarkdownExporter exports a package page to Markdown
type MarkdownExporter struct {
	hidden func(pkg string) bool
}

// NewMarkdownExporter creates a new Markdown exporter. Types owned by packages
// for which hidden returns true are not linked.
func NewMarkdownExporter(hidden func(pkg string) bool) *MarkdownExporter {
	if hidden == nil {
		hidden = func(string) bool { return false }
	}
	return &MarkdownExporter{hidden: hidden}
}

// Export exports a package to Markdown
func (e *MarkdownExporter) Export(pkg *model.Package) string {
	var b strings.Builder

	// Title
	fmt.Fprintf(&b, "# %s\n\n", packageTitle(pkg))

	if pkg.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", pkg.Description)
	}

	messages := documentedMessages(pkg)

	// Table of contents
	b.WriteString("## Table of Contents\n\n")
	if len(pkg.Services) > 0 {
		b.WriteString("- [Services](#services)\n")
	}
	if len(messages) > 0 {
		b.WriteString("- [Messages](#messages)\n")
	}
	if len(pkg.Enums) > 0 {
		b.WriteString("- [Enums](#enums)\n")
	}
	b.WriteString("\n")

	if len(pkg.Services) > 0 {
		b.WriteString("## Services\n\n")
		for _, svc := range pkg.Services {
			e.writeService(&b, svc)
		}
	}

	if len(messages) > 0 {
		b.WriteString("## Messages\n\n")
		for _, msg := range messages {
			e.writeMessage(&b, msg)
		}
	}

	if len(pkg.Enums) > 0 {
		b.WriteString("## Enums\n\n")
		for _, enum := range pkg.Enums {
			e.writeEnum(&b, enum)
		}
	}

	return b.String()
}

func (e *MarkdownExporter) writeService(b *strings.Builder, svc *model.Service) {
	fmt.Fprintf(b, "### %s\n\n", svc.Name)

	if svc.Description != "" {
		fmt.Fprintf(b, "%s\n\n", svc.Description)
	}

	if len(svc.Methods) > 0 {
		b.WriteString("#### Methods\n\n")
		for _, method := range svc.Methods {
			e.writeMethod(b, method)
		}
	}
}

func (e *MarkdownExporter) writeMethod(b *strings.Builder, method *model.ServiceMethod) {
	fmt.Fprintf(b, "##### `%s`%s\n\n", method.Name, streamingSuffix(method))

	if method.Description != "" {
		fmt.Fprintf(b, "%s\n\n", method.Description)
	}

	request, response := method.Request.Type, method.Response.Type
	if method.ClientStreaming {
		request = "stream " + request
	}
	if method.ServerStreaming {
		response = "stream " + response
	}

	b.WriteString("```protobuf\n")
	fmt.Fprintf(b, "rpc %s (%s) returns (%s)\n", method.Name, request, response)
	b.WriteString("```\n\n")

	fmt.Fprintf(b, "**Request:** %s\n\n", e.typeLink(method.Request.Package, method.Request.Type, method.Request.FullType))
	fmt.Fprintf(b, "**Response:** %s\n\n", e.typeLink(method.Response.Package, method.Response.Type, method.Response.FullType))
}

func (e *MarkdownExporter) writeMessage(b *strings.Builder, msg *model.Message) {
	fmt.Fprintf(b, "### %s\n\n", msg.Name)

	if msg.ParentMessage != nil {
		fmt.Fprintf(b, "Nested in `%s`.\n\n", msg.ParentMessage.FullName)
	}

	if msg.Description != "" {
		fmt.Fprintf(b, "%s\n\n", msg.Description)
	}

	if len(msg.Fields) > 0 {
		b.WriteString("| Field | Number | Type | Label | Description |\n")
		b.WriteString("|-------|--------|------|-------|-------------|\n")

		for _, field := range msg.Fields {
			desc := tableCell(field.Description)
			if field.OneofName != nil {
				desc = strings.TrimSpace(fmt.Sprintf("(oneof %s) %s", *field.OneofName, desc))
			}

			label := field.Label
			if label == "" {
				label = "-"
			}

			typ := e.typeLink(field.Package, field.Type, field.FullType)
			if field.IsPackageHidden || field.IsMap() {
				typ = "`" + field.Type + "`"
			}

			fmt.Fprintf(b, "| %s | %d | %s | %s | %s |\n",
				field.Name, field.Number, typ, label, desc)
		}
		b.WriteString("\n")
	}
}

func (e *MarkdownExporter) writeEnum(b *strings.Builder, enum *model.Enum) {
	fmt.Fprintf(b, "### %s\n\n", enum.Name)

	if enum.Description != "" {
		fmt.Fprintf(b, "%s\n\n", enum.Description)
	}

	if len(enum.Values) > 0 {
		b.WriteString("| Name | Number | Description |\n")
		b.WriteString("|------|--------|-------------|\n")

		for _, value := range enum.Values {
			fmt.Fprintf(b, "| %s | %d | %s |\n",
				value.Name, value.Number, tableCell(value.Description))
		}
		b.WriteString("\n")
	}
}

// typeLink links a type to the Markdown page of its package
func (e *MarkdownExporter) typeLink(pkg *model.Package, typ, fullType string) string {
	if pkg == nil || fullType == "" || e.hidden(pkg.Name) {
		return "`" + typ + "`"
	}
	return fmt.Sprintf("[`%s`](%s.md#%s)", typ, pkg.PageName(), markdownAnchor(fullType))
}

// markdownAnchor mirrors the heading ids Markdown renderers generate
func markdownAnchor(fullType string) string {
	return strings.ToLower(fullType[strings.LastIndex(fullType, ".")+1:])
}

// tableCell keeps a description on a single table row
func tableCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.Join(strings.Fields(s), " ")
}

func streamingSuffix(method *model.ServiceMethod) string {
	switch {
	case method.ClientStreaming && method.ServerStreaming:
		return " (bidirectional streaming)"
	case method.ClientStreaming:
		return " (client streaming)"
	case method.ServerStreaming:
		return " (server streaming)"
	default:
		return ""
	}
}
