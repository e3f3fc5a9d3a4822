// Package protosrc compiles .proto sources into a FileDescriptorSet, the input
// format of the documentation generator.
package protosrc

import (
	"context"
	"fmt"

	"github.com/bufbuild/protocompile"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/descriptorpb"
)

// Options controls a compilation
type Options struct {
	// ImportPaths are searched for Files and their imports
	ImportPaths []string
	// Files are the proto files to compile, relative to an import path
	Files []string
	// Sources, when set, provides file contents by path instead of the file system
	Sources map[string]string
	// IncludeImports adds every transitive import to the result
	IncludeImports bool
	// IncludeSourceInfo keeps comments and source positions
	IncludeSourceInfo bool
}

// Compile compiles the requested files. Files appear in dependency order,
// each after the files it imports.
func Compile(ctx context.Context, opts Options) (*descriptorpb.FileDescriptorSet, error) {
	if len(opts.Files) == 0 {
		return nil, fmt.Errorf("no proto files to compile")
	}

	resolver := &protocompile.SourceResolver{ImportPaths: opts.ImportPaths}
	if opts.Sources != nil {
		resolver.Accessor = protocompile.SourceAccessorFromMap(opts.Sources)
	}

	compiler := protocompile.Compiler{
		Resolver: protocompile.WithStandardImports(resolver),
	}
	if opts.IncludeSourceInfo {
		compiler.SourceInfoMode = protocompile.SourceInfoStandard
	}

	files, err := compiler.Compile(ctx, opts.Files...)
	if err != nil {
		return nil, fmt.Errorf("protocompile failed: %w", err)
	}

	set := &descriptorpb.FileDescriptorSet{}
	seen := make(map[string]bool)

	var add func(fd protoreflect.FileDescriptor, requested bool)
	add = func(fd protoreflect.FileDescriptor, requested bool) {
		path := fd.Path()
		if seen[path] {
			return
		}
		seen[path] = true

		if opts.IncludeImports {
			imports := fd.Imports()
			for i := 0; i < imports.Len(); i++ {
				add(imports.Get(i).FileDescriptor, false)
			}
		}

		if requested || opts.IncludeImports {
			fdp := protodesc.ToFileDescriptorProto(fd)
			if !opts.IncludeSourceInfo {
				fdp.SourceCodeInfo = nil
			}
			set.File = append(set.File, fdp)
		}
	}

	for _, f := range files {
		add(f, true)
	}

	return set, nil
}
