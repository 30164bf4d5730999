package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.trai.ch/zerr"
)

func (c *CLI) newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [content]",
		Short: "Show how content is represented under the active policy",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")

			var content []byte
			switch {
			case file != "":
				data, err := os.ReadFile(file) //nolint:gosec // path is provided by user
				if err != nil {
					return zerr.Wrap(err, "failed to read input file")
				}
				content = data
			case len(args) == 1:
				content = []byte(args[0])
			default:
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}

			report := c.app.Inspect(content)
			policy := c.app.Policy()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "size:       %d bytes\n", report.Size)
			fmt.Fprintf(out, "category:   %s (thresholds: small <= %d, medium <= %d)\n",
				report.Category, policy.SmallMax, policy.MediumMax)
			switch {
			case report.Inline:
				fmt.Fprintln(out, "storage:    inline, no heap buffer; clones copy in place")
			case report.CloneShares:
				fmt.Fprintf(out, "storage:    shared refcounted buffer; refs with one clone alive: %d\n",
					report.RefsAfterClone)
			default:
				fmt.Fprintln(out, "storage:    exclusive buffer; clones deep-copy")
			}
			return nil
		},
	}
	cmd.Flags().StringP("file", "F", "", "Read content from a file instead of the argument")
	return cmd
}
