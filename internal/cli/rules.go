package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/webpaste/pkg/transform"
)

// rulesCommand creates the rules command.
func (c *CLI) rulesCommand() *cobra.Command {
	var namesOnly bool

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the rewrite rules in pipeline order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			rules := transform.Rules()
			if namesOnly {
				for _, r := range rules {
					fmt.Fprintln(out, r.Name)
				}
				return nil
			}

			width := 0
			for _, r := range rules {
				width = max(width, len(r.Name))
			}
			fmt.Fprintln(out, StyleTitle.Render("Rules"))
			for i, r := range rules {
				fmt.Fprint(out, StyleNumber.Render(fmt.Sprintf("%2d ", i+1)))
				printKeyValue(out, width+1, r.Name, r.Description)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&namesOnly, "names", false, "print rule names only")

	return cmd
}
