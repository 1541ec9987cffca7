package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/terrapower/armicontrib-dif3d/internal/diskmanager"
	"github.com/terrapower/armicontrib-dif3d/internal/stdout"
)

func (a *app) peakFluxCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "peak-flux <output file>",
		Short: "Print the region peak fluxes of the REGION TOTALS edit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			peaks, err := stdout.Read(diskmanager.NewDiskManager(), args[0])
			if err != nil {
				return err
			}
			for _, label := range peaks.Labels() {
				v, _ := peaks.Peak(label)
				fmt.Fprintf(cmd.OutOrStdout(), "%-8s %.5E\n", label, v)
			}
			return nil
		},
	}
}
