package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"Flexure/internal/calc/deflection"
)

func newCalcCmd() *cobra.Command {
	var b beamFlags
	var format string
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Print the sampled deflection curve",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := b.calculate()
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), format, res)
		},
	}
	b.register(cmd.Flags())
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table, csv or json")
	return cmd
}

func render(w io.Writer, format string, res deflection.Result) error {
	switch format {
	case "table":
		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"x (m)", "y (m)"})
		for _, s := range res.Samples {
			table.Append([]string{deflection.FormatX(s.X), deflection.FormatExp(s.Y)})
		}
		table.Render()
		return summary(w, res)
	case "csv":
		cw := csv.NewWriter(w)
		cw.Write([]string{"x_m", "y_m"})
		for _, s := range res.Samples {
			cw.Write([]string{
				strconv.FormatFloat(s.X, 'g', -1, 64),
				strconv.FormatFloat(s.Y, 'g', -1, 64),
			})
		}
		cw.Flush()
		return cw.Error()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	return errors.Errorf("unknown format %q", format)
}

func summary(w io.Writer, res deflection.Result) error {
	st := res.Stats
	_, err := fmt.Fprintf(w, "Maximum Deflection: %s m at x = %s m\nMinimum y: %s m\nAt midspan (x = %g m): %s m\nClosed form 5wL^4/384EI: %s m\nLimit L/%g: %s m (%s)\n",
		deflection.FormatExp(st.Peak.Y), deflection.FormatX(st.Peak.X),
		deflection.FormatExp(st.MinY),
		res.Params.L/2, deflection.FormatExp(st.Midspan),
		deflection.FormatExp(res.Check.ClosedFormM),
		res.Check.LimitRatio, deflection.FormatExp(res.Check.LimitM), verdict(res.Check.OK))
	return err
}

func verdict(ok bool) string {
	if ok {
		return "OK"
	}
	return "EXCEEDED"
}
