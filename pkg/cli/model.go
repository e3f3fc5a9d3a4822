package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/platinummonkey/sabledocs/pkg/config"
)

func newModelCommand(out io.Writer) *Command {
	cmd := &Command{
		Name:        "model",
		Description: "Print the parsed documentation model",
		Flags:       newFlagSet("model"),
		out:         out,
	}

	configPath := cmd.Flags.String("config", config.DefaultFile, "Configuration file")
	format := cmd.Flags.String("format", "yaml", "Output format (json or yaml)")

	cmd.Run = func(ctx context.Context, args []string) error {
		if err := cmd.Flags.Parse(args); err != nil {
			return err
		}
		if *format != "json" && *format != "yaml" {
			return fmt.Errorf("unsupported format: %s", *format)
		}

		env, err := newEnvironment(ctx, *configPath)
		if err != nil {
			return err
		}
		defer env.close(ctx)

		result, err := env.parse(ctx)
		if err != nil {
			return err
		}

		switch *format {
		case "json":
			enc := json.NewEncoder(cmd.out)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		default:
			enc := yaml.NewEncoder(cmd.out)
			enc.SetIndent(2)
			if err := enc.Encode(result); err != nil {
				return fmt.Errorf("failed to encode model: %w", err)
			}
			return enc.Close()
		}
	}

	return cmd
}
