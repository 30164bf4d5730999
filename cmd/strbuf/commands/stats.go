package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Run an audited lifecycle workload and print allocator statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			iterations, _ := cmd.Flags().GetInt("iterations")

			stats, err := c.app.RunWorkload(cmd.Context(), iterations)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "allocations:   %d\n", stats.Allocs)
			fmt.Fprintf(out, "frees:         %d\n", stats.Frees)
			fmt.Fprintf(out, "live buffers:  %d\n", stats.LiveBuffers)
			fmt.Fprintf(out, "live bytes:    %d\n", stats.LiveBytes)
			fmt.Fprintf(out, "double frees:  %d\n", stats.DoubleFrees)
			fmt.Fprintf(out, "foreign frees: %d\n", stats.ForeignFrees)
			return nil
		},
	}
	cmd.Flags().IntP("iterations", "n", 1000, "Iterations per workload scenario")
	return cmd
}
