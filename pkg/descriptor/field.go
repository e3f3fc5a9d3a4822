package descriptor

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/platinummonkey/sabledocs/pkg/model"
)

const mapEntrySuffix = "Entry"

func (p *Parser) parseField(fd *descriptorpb.FieldDescriptorProto, md *descriptorpb.DescriptorProto, ctx ParseContext) *model.MessageField {
	f := &model.MessageField{
		CodeItem:     p.codeItem(ctx, fd.GetName(), p.comments.ParseField(ctx.Comments())),
		Number:       int(fd.GetNumber()),
		Label:        labelName(fd),
		DefaultValue: fd.GetDefaultValue(),
		TypeKind:     typeKind(fd.GetType()),
	}
	p.metrics.RecordDeclaration("field")

	if typeName := fd.GetTypeName(); typeName != "" {
		f.FullType = strings.TrimPrefix(typeName, ".")
		f.Type = shortName(f.FullType)
	} else {
		f.Type = scalarTypeName(fd.GetType())
		f.FullType = f.Type
	}

	if fd.OneofIndex != nil && !fd.GetProto3Optional() {
		if idx := int(fd.GetOneofIndex()); idx >= 0 && idx < len(md.GetOneofDecl()) {
			name := md.GetOneofDecl()[idx].GetName()
			f.OneofName = &name
		}
	}

	if strings.HasSuffix(f.Type, mapEntrySuffix) {
		p.rewriteMapField(ctx.Package(), f)
	}

	return f
}

// rewriteMapField turns a reference to a map entry message into map<K, V>.
// Fields whose type only looks like a map entry are left alone.
func (p *Parser) rewriteMapField(pkg *model.Package, f *model.MessageField) {
	var entry *model.Message
	for _, m := range pkg.Messages {
		if m.FullName == f.FullType {
			entry = m
			break
		}
	}

	if entry == nil || !entry.IsMapEntry || len(entry.Fields) < 2 {
		p.metrics.RecordMapEntryMiss()
		p.log.WithFields(logrus.Fields{
			"field": f.Name,
			"type":  f.FullType,
		}).Debug("Field type is not a map entry")
		return
	}

	mapType := fmt.Sprintf("map<%s, %s>", entry.Fields[0].Type, entry.Fields[1].Type)
	f.Type = mapType
	f.FullType = mapType
	f.Label = ""
}
