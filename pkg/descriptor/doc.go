// Package descriptor builds the documentation model from a compiled protobuf
// FileDescriptorSet.
//
// Each file is walked once. Declarations pick up their comments and line
// numbers from the file's SourceCodeInfo through a ParseContext, which tracks
// the structural path of the declaration being parsed:
//
//	4.0        first top-level message
//	4.0.2.1    its second field
//	4.0.3.0    its first nested message
//	6.0.2.3    fourth method of the first service
//
// Files sharing a package name are merged into one model.Package. Once every
// file is parsed, type references on fields and RPC payloads are linked to the
// package with the longest name that prefixes the referenced type.
//
// Usage:
//
//	p, err := descriptor.New(cfg, descriptor.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	result, err := p.ParseFile(ctx, cfg.InputDescriptorFile)
package descriptor
