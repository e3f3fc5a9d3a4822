package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"google.golang.org/protobuf/proto"

	"github.com/platinummonkey/sabledocs/pkg/protosrc"
)

func newCompileCommand(out io.Writer) *Command {
	cmd := &Command{
		Name:        "compile",
		Description: "Compile proto files into a descriptor set with source info",
		Flags:       newFlagSet("compile"),
		out:         out,
	}

	output := cmd.Flags.String("out", "descriptor.pb", "Descriptor set file to write")
	includeImports := cmd.Flags.Bool("include-imports", false, "Include all transitive imports in the descriptor set")
	var importPaths stringList
	cmd.Flags.Var(&importPaths, "I", "Import path (repeatable)")

	cmd.Run = func(ctx context.Context, args []string) error {
		if err := cmd.Flags.Parse(args); err != nil {
			return err
		}

		files := cmd.Flags.Args()
		if len(files) == 0 {
			return fmt.Errorf("no proto files given")
		}

		paths := []string(importPaths)
		if len(paths) == 0 {
			paths = []string{"."}
		}

		set, err := protosrc.Compile(ctx, protosrc.Options{
			ImportPaths:       paths,
			Files:             files,
			IncludeImports:    *includeImports,
			IncludeSourceInfo: true,
		})
		if err != nil {
			return err
		}

		data, err := proto.Marshal(set)
		if err != nil {
			return fmt.Errorf("failed to marshal descriptor set: %w", err)
		}

		if dir := filepath.Dir(*output); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}
		if err := os.WriteFile(*output, data, 0644); err != nil {
			return fmt.Errorf("failed to write descriptor set: %w", err)
		}

		fmt.Fprintf(cmd.out, "Wrote %d files to %s\n", len(set.GetFile()), *output)
		return nil
	}

	return cmd
}
