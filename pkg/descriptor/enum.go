package descriptor

import (
	"sort"

	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/platinummonkey/sabledocs/pkg/model"
)

func (p *Parser) parseEnums(enums []*descriptorpb.EnumDescriptorProto, ctx ParseContext, parent *model.Message, chain string) {
	pkg := ctx.Package()
	for i, ed := range enums {
		pkg.Enums = append(pkg.Enums, p.parseEnum(ed, ctx.ExtendPath(i), parent, chain))
	}

	if p.cfg.IsAlphabetical() {
		sort.SliceStable(pkg.Enums, func(i, j int) bool {
			return pkg.Enums[i].Name < pkg.Enums[j].Name
		})
	}
}

func (p *Parser) parseEnum(ed *descriptorpb.EnumDescriptorProto, ctx ParseContext, parent *model.Message, chain string) *model.Enum {
	e := &model.Enum{
		CodeItem:      p.codeItem(ctx, ed.GetName(), p.comments.ParseEnum(ctx.Comments())),
		FullName:      qualify(ctx.Package().Name, chain, ed.GetName()),
		TypeKind:      model.TypeKindEnum,
		ParentMessage: parent,
	}
	p.metrics.RecordDeclaration("enum")

	for i, vd := range ed.GetValue() {
		vctx := ctx.ExtendPath(enumValueTag, i)
		e.Values = append(e.Values, &model.EnumValue{
			CodeItem: p.codeItem(vctx, vd.GetName(), p.comments.ParseEnumValue(vctx.Comments())),
			Number:   int(vd.GetNumber()),
		})
	}

	return e
}
