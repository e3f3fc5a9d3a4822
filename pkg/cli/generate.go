package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/platinummonkey/sabledocs/pkg/config"
	"github.com/platinummonkey/sabledocs/pkg/docs"
	"github.com/platinummonkey/sabledocs/pkg/storage"
)

func newGenerateCommand(out io.Writer) *Command {
	cmd := &Command{
		Name:        "generate",
		Description: "Generate HTML documentation from a descriptor set",
		Flags:       newFlagSet("generate"),
		out:         out,
	}

	configPath := cmd.Flags.String("config", config.DefaultFile, "Configuration file")
	metricsFile := cmd.Flags.String("metrics-file", "", "Write Prometheus metrics to this file when done")
	markdownExport := cmd.Flags.Bool("markdown", false, "Also write a Markdown file per package")

	cmd.Run = func(ctx context.Context, args []string) error {
		if err := cmd.Flags.Parse(args); err != nil {
			return err
		}

		env, err := newEnvironment(ctx, *configPath)
		if err != nil {
			return err
		}
		defer env.close(ctx)

		sink, err := storage.NewFileSystemStorage(env.cfg.OutputDir)
		if err != nil {
			return err
		}

		result, err := env.generate(ctx, sink, *markdownExport)
		if err != nil {
			return err
		}

		if *metricsFile != "" {
			if err := env.metrics.WriteTextfile(*metricsFile); err != nil {
				return fmt.Errorf("failed to write metrics file: %w", err)
			}
		}

		index, err := filepath.Abs(filepath.Join(sink.Root(), docs.IndexFile))
		if err != nil {
			index = filepath.Join(sink.Root(), docs.IndexFile)
		}
		fmt.Fprintln(cmd.out, result.Summary())
		fmt.Fprintf(cmd.out, "Building documentation done. It can be opened with %s\n", index)
		return nil
	}

	return cmd
}
