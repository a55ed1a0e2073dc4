package scenario

import (
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// WriteYAML encodes any result of this package as YAML.
func WriteYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func WriteTransmissionTable(w io.Writer, points []TransmissionPoint) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "E\tk\t<k>\tT\tsteps\t")
	for _, p := range points {
		mark := ""
		if !p.Armed {
			mark = " *"
		}
		fmt.Fprintf(tw, "%.4f\t%.4f\t%.4f\t%.6f\t%d%s\t\n", p.Energy, p.Wavenumber, p.Momentum, p.Transmission, p.Steps, mark)
	}
	return tw.Flush()
}

func WriteInterferenceTable(w io.Writer, res Interference) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "# x=%.4f column=%d steps=%d\n", res.ScreenX, res.Column, res.Steps)
	fmt.Fprintln(tw, "y\tintensity\t")
	for i, y := range res.Y {
		fmt.Fprintf(tw, "%.4f\t%.6e\t\n", y, res.Pattern[i])
	}
	return tw.Flush()
}
