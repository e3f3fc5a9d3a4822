package descriptor

import (
	"sort"

	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/platinummonkey/sabledocs/pkg/model"
)

func (p *Parser) parseMessages(messages []*descriptorpb.DescriptorProto, ctx ParseContext, parent *model.Message, chain string) {
	for i, md := range messages {
		p.parseMessage(md, ctx.ExtendPath(i), parent, chain)
	}

	if p.cfg.IsAlphabetical() {
		pkg := ctx.Package()
		sort.SliceStable(pkg.Messages, func(i, j int) bool {
			return pkg.Messages[i].Name < pkg.Messages[j].Name
		})
	}
}

// parseMessage adds the message and everything nested in it to the package.
// Nested declarations are parsed before the fields so that map entry messages
// are in the package when the fields referencing them are resolved.
func (p *Parser) parseMessage(md *descriptorpb.DescriptorProto, ctx ParseContext, parent *model.Message, chain string) *model.Message {
	pkg := ctx.Package()
	m := &model.Message{
		CodeItem:      p.codeItem(ctx, md.GetName(), p.comments.ParseMessage(ctx.Comments())),
		FullName:      qualify(pkg.Name, chain, md.GetName()),
		IsMapEntry:    md.GetOptions().GetMapEntry(),
		TypeKind:      model.TypeKindMessage,
		ParentMessage: parent,
	}
	pkg.Messages = append(pkg.Messages, m)
	p.metrics.RecordDeclaration("message")

	nestedChain := chain + md.GetName() + "."
	p.parseMessages(md.GetNestedType(), ctx.ExtendPath(messageNestedTag), m, nestedChain)
	p.parseEnums(md.GetEnumType(), ctx.ExtendPath(messageEnumTag), m, nestedChain)

	declared := make([]*model.MessageField, 0, len(md.GetField()))
	for i, fd := range md.GetField() {
		declared = append(declared, p.parseField(fd, md, ctx.ExtendPath(messageFieldTag, i)))
	}

	m.Fields = append([]*model.MessageField(nil), declared...)
	if p.cfg.IsAlphabetical() {
		sort.SliceStable(m.Fields, func(i, j int) bool {
			return m.Fields[i].Number < m.Fields[j].Number
		})
	}

	m.OneOfFieldGroups = groupOneofs(declared)

	return m
}

// groupOneofs groups fields by oneof name in declaration order.
// Synthetic proto3 optional oneofs never carry a name and are skipped.
func groupOneofs(fields []*model.MessageField) []*model.OneOfFieldGroup {
	var groups []*model.OneOfFieldGroup
	byName := make(map[string]*model.OneOfFieldGroup)

	for _, f := range fields {
		if f.OneofName == nil {
			continue
		}
		g, ok := byName[*f.OneofName]
		if !ok {
			g = &model.OneOfFieldGroup{Name: *f.OneofName}
			byName[g.Name] = g
			groups = append(groups, g)
		}
		g.Fields = append(g.Fields, f)
	}

	return groups
}
