package cmd

import (
	"github.com/spf13/cobra"

	"schrodinger/config"
	"schrodinger/scenario"
)

func newTunnelCommand(opts *rootOptions) *cobra.Command {
	var (
		emin, emax     float64
		count, workers int
		asYAML         bool
	)
	cmd := &cobra.Command{
		Use:   "tunnel",
		Short: "Sweep the incident energy and print the transmission through the barrier",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := opts.params
			flags := cmd.Flags()
			if flags.Changed("emin") {
				p.Sweep.EnergyMin = emin
			}
			if flags.Changed("emax") {
				p.Sweep.EnergyMax = emax
			}
			if flags.Changed("count") {
				p.Sweep.Count = count
			}
			if flags.Changed("workers") {
				p.Sweep.Workers = workers
			}
			if err := config.Validate(p); err != nil {
				return err
			}

			points, err := scenario.Sweep(cmd.Context(), p)
			if err != nil {
				return err
			}
			if asYAML {
				return scenario.WriteYAML(cmd.OutOrStdout(), points)
			}
			return scenario.WriteTransmissionTable(cmd.OutOrStdout(), points)
		},
	}
	cmd.Flags().Float64Var(&emin, "emin", 0, "lowest energy (overrides config)")
	cmd.Flags().Float64Var(&emax, "emax", 0, "highest energy (overrides config)")
	cmd.Flags().IntVar(&count, "count", 0, "number of energies (overrides config)")
	cmd.Flags().IntVar(&workers, "workers", 0, "concurrent runs (overrides config)")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print YAML instead of a table")
	return cmd
}
