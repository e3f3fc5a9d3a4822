package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/platinummonkey/sabledocs/pkg/config"
	"github.com/platinummonkey/sabledocs/pkg/storage"
)

func newPublishCommand(out io.Writer) *Command {
	cmd := &Command{
		Name:        "publish",
		Description: "Generate documentation straight into the configured S3 bucket",
		Flags:       newFlagSet("publish"),
		out:         out,
	}

	configPath := cmd.Flags.String("config", config.DefaultFile, "Configuration file")
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

		if env.cfg.S3.Bucket == "" {
			return fmt.Errorf("no S3 bucket configured: set [s3] bucket or SABLEDOCS_S3_BUCKET")
		}

		sink, err := storage.Open(ctx, s3StorageConfig(env.cfg))
		if err != nil {
			return err
		}

		result, err := env.generate(ctx, sink, *markdownExport)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.out, result.Summary())
		fmt.Fprintf(cmd.out, "Published documentation to %s\n", sink.Location())
		return nil
	}

	return cmd
}

// s3StorageConfig maps the [s3] settings to a storage config. Credentials
// come from the default AWS chain.
func s3StorageConfig(cfg *config.Config) storage.Config {
	return storage.Config{
		Type:           "s3",
		S3Bucket:       cfg.S3.Bucket,
		S3Region:       cfg.S3.Region,
		S3Endpoint:     cfg.S3.Endpoint,
		S3Prefix:       cfg.S3.Prefix,
		S3UsePathStyle: cfg.S3.UsePathStyle,
	}
}
