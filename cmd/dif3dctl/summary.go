package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/terrapower/armicontrib-dif3d/internal/binfile"
	"github.com/terrapower/armicontrib-dif3d/internal/formats/dif3d"
	"github.com/terrapower/armicontrib-dif3d/internal/record"
)

// layoutFlags selects the record layout of one file.
type layoutFlags struct {
	order  string
	marker int
}

func (f *layoutFlags) register(cmd *cobra.Command, prefix, what string) {
	cmd.Flags().StringVar(&f.order, prefix+"order", "little", "byte order of the "+what+" file (little|big)")
	cmd.Flags().IntVar(&f.marker, prefix+"marker-size", record.DefaultMarkerSize, "record marker size of the "+what+" file (4|8)")
}

func (f *layoutFlags) layout() (record.Layout, error) {
	order, err := record.ParseByteOrder(f.order)
	if err != nil {
		return record.Layout{}, err
	}
	l := record.Layout{Order: order, MarkerSize: f.marker}
	return l, l.Validate()
}

func (a *app) summaryCmd() *cobra.Command {
	var lf layoutFlags
	cmd := &cobra.Command{
		Use:   "summary <DIF3D file>",
		Short: "Print keff, convergence and controls of a DIF3D file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			layout, err := lf.layout()
			if err != nil {
				return err
			}
			codec := binfile.NewCodec(nil, binfile.WithLayout(layout), binfile.WithLogger(a.logger))
			f, err := dif3d.Read(codec, args[0])
			if err != nil {
				return err
			}
			lines, err := f.Summary()
			if err != nil {
				return err
			}
			for _, l := range lines {
				fmt.Fprintln(cmd.OutOrStdout(), l)
			}
			return nil
		},
	}
	lf.register(cmd, "", "DIF3D")
	return cmd
}
