package cmd

import (
	"github.com/spf13/cobra"

	"schrodinger/config"
	"schrodinger/scenario"
)

func newSlitCommand(opts *rootOptions) *cobra.Command {
	var (
		steps  int
		screen float64
		asYAML bool
	)
	cmd := &cobra.Command{
		Use:   "slit",
		Short: "Run the double slit and print the accumulated pattern on the screen",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := opts.params
			if cmd.Flags().Changed("steps") {
				p.Run2D.Steps = steps
			}
			if cmd.Flags().Changed("screen") {
				p.Slit.ScreenX = screen
			}
			if err := config.Validate(p); err != nil {
				return err
			}

			res, err := scenario.Interfere(cmd.Context(), p)
			if err != nil {
				return err
			}
			if asYAML {
				return scenario.WriteYAML(cmd.OutOrStdout(), res)
			}
			return scenario.WriteInterferenceTable(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().IntVar(&steps, "steps", 0, "number of steps (overrides config)")
	cmd.Flags().Float64Var(&screen, "screen", 0, "x of the screen column (overrides config)")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print YAML instead of a table")
	return cmd
}
