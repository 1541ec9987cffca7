package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/terrapower/armicontrib-dif3d"
	"github.com/terrapower/armicontrib-dif3d/internal/binfile"
)

func (a *app) convertCmd() *cobra.Command {
	var (
		from, to      layoutFlags
		allowTruncate bool
	)
	cmd := &cobra.Command{
		Use:   "convert <format> <in> <out>",
		Short: "Read an interface file and write it back, optionally in another layout",
		Long: `Read an interface file with one record layout and write it with another.
With matching layouts the output is a byte-for-byte copy of the input.
An input holding records the format does not read is refused, since the
output would drop them; pass --allow-truncate to write it anyway.

Formats: ` + fmt.Sprint(dif3d.Formats()),
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := dif3d.SchemaFor(args[0])
			if err != nil {
				return err
			}
			in, err := from.layout()
			if err != nil {
				return fmt.Errorf("--from: %w", err)
			}
			out, err := to.layout()
			if err != nil {
				return fmt.Errorf("--to: %w", err)
			}

			reader := binfile.NewCodec(nil, binfile.WithLayout(in), binfile.WithLogger(a.logger))
			c, err := reader.ReadBinary(schema, args[1])
			if err != nil {
				return err
			}
			if c.Trailing > 0 && !allowTruncate {
				return fmt.Errorf("%s %s has %d bytes of records after the last one read; "+
					"the output would drop them (use --allow-truncate to write it anyway)",
					schema.Name, args[1], c.Trailing)
			}
			writer := binfile.NewCodec(nil, binfile.WithLayout(out), binfile.WithLogger(a.logger))
			if err := writer.WriteBinary(c, args[2]); err != nil {
				return err
			}
			a.logger.Info("Converted interface file",
				zap.String("format", schema.Name),
				zap.String("in", args[1]),
				zap.String("out", args[2]),
				zap.String("to_order", to.order),
				zap.Int64("dropped_bytes", c.Trailing),
			)
			return nil
		},
	}
	from.register(cmd, "from-", "input")
	to.register(cmd, "to-", "output")
	cmd.Flags().BoolVar(&allowTruncate, "allow-truncate", false, "write the output even if trailing records are dropped")
	return cmd
}
