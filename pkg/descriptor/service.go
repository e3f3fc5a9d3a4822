package descriptor

import (
	"sort"
	"strings"

	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/platinummonkey/sabledocs/pkg/model"
)

func (p *Parser) parseServices(services []*descriptorpb.ServiceDescriptorProto, ctx ParseContext) {
	pkg := ctx.Package()
	for i, sd := range services {
		pkg.Services = append(pkg.Services, p.parseService(sd, ctx.ExtendPath(i)))
	}

	if p.cfg.IsAlphabetical() {
		sort.SliceStable(pkg.Services, func(i, j int) bool {
			return pkg.Services[i].Name < pkg.Services[j].Name
		})
	}
}

func (p *Parser) parseService(sd *descriptorpb.ServiceDescriptorProto, ctx ParseContext) *model.Service {
	s := &model.Service{
		CodeItem: p.codeItem(ctx, sd.GetName(), p.comments.ParseService(ctx.Comments())),
		FullName: qualify(ctx.Package().Name, "", sd.GetName()),
	}
	p.metrics.RecordDeclaration("service")

	for i, md := range sd.GetMethod() {
		mctx := ctx.ExtendPath(serviceMethodTag, i)
		s.Methods = append(s.Methods, &model.ServiceMethod{
			CodeItem:        p.codeItem(mctx, md.GetName(), p.comments.ParseServiceMethod(mctx.Comments())),
			Request:         newMethodArgument(md.GetInputType()),
			Response:        newMethodArgument(md.GetOutputType()),
			ClientStreaming: md.GetClientStreaming(),
			ServerStreaming: md.GetServerStreaming(),
		})
		p.metrics.RecordDeclaration("method")
	}

	return s
}

// newMethodArgument describes an RPC payload. Payloads are always messages.
func newMethodArgument(typeName string) *model.ServiceMethodArgument {
	fullType := strings.TrimPrefix(typeName, ".")
	return &model.ServiceMethodArgument{
		Type:     shortName(fullType),
		FullType: fullType,
		TypeKind: model.TypeKindMessage,
	}
}
