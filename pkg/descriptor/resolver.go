package descriptor

import (
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/platinummonkey/sabledocs/pkg/model"
)

const defaultResolverCacheSize = 4096

// Resolver finds the package that owns a fully qualified type name
type Resolver struct {
	// longest names first; equal lengths keep encounter order
	packages []*model.Package
	cache    *lru.Cache[string, *model.Package]
}

// NewResolver indexes packages for longest-prefix lookups
func NewResolver(packages []*model.Package, cacheSize int) (*Resolver, error) {
	if cacheSize <= 0 {
		cacheSize = defaultResolverCacheSize
	}
	cache, err := lru.New[string, *model.Package](cacheSize)
	if err != nil {
		return nil, err
	}

	sorted := append([]*model.Package(nil), packages...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i].Name) > len(sorted[j].Name)
	})

	return &Resolver{packages: sorted, cache: cache}, nil
}

// Resolve returns the package with the longest name that is a prefix of
// fullType, or nil when none matches.
func (r *Resolver) Resolve(fullType string) *model.Package {
	if pkg, ok := r.cache.Get(fullType); ok {
		return pkg
	}

	var found *model.Package
	for _, pkg := range r.packages {
		if strings.HasPrefix(fullType, pkg.Name) {
			found = pkg
			break
		}
	}

	r.cache.Add(fullType, found)
	return found
}

// link assigns the package references of every declaration in result
func (p *Parser) link(result *model.Result, resolver *Resolver) {
	for _, pkg := range result.Packages {
		for _, m := range pkg.Messages {
			m.Package = pkg
			for _, f := range m.Fields {
				if f.FullType == "" || f.IsMap() || f.TypeKind == model.TypeKindUnknown {
					continue
				}
				f.Package = resolver.Resolve(f.FullType)
				if f.Package == nil {
					p.recordUnresolved("field", f.FullType)
					continue
				}
				f.IsPackageHidden = p.cfg.IsPackageHidden(f.Package.Name)
			}
		}

		for _, e := range pkg.Enums {
			e.Package = pkg
		}

		for _, s := range pkg.Services {
			for _, method := range s.Methods {
				for _, arg := range []*model.ServiceMethodArgument{method.Request, method.Response} {
					if arg.FullType == "" {
						continue
					}
					if arg.Package = resolver.Resolve(arg.FullType); arg.Package == nil {
						p.recordUnresolved("method", arg.FullType)
					}
				}
			}
		}
	}
}

func (p *Parser) recordUnresolved(kind, fullType string) {
	p.metrics.RecordUnresolved(kind)
	p.log.WithField("type", fullType).Debugf("Unresolved %s type reference", kind)
}
