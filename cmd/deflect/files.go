package main

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"Flexure/internal/calc/deflection"
	"Flexure/internal/calc/export"
	"Flexure/internal/calc/importer"
	"Flexure/internal/calc/report"
)

func newExportCmd() *cobra.Command {
	var b beamFlags
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the curve and a chart to an xlsx workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := b.calculate()
			if err != nil {
				return err
			}
			return writeFile(out, func(f *os.File) error { return export.WriteXLSX(f, res) })
		},
	}
	b.register(cmd.Flags())
	cmd.Flags().StringVarP(&out, "out", "o", "deflection.xlsx", "Output file")
	return cmd
}

func newReportCmd() *cobra.Command {
	var b beamFlags
	var meta report.Meta
	var out string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write a PDF report with the plotted curve",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := b.calculate()
			if err != nil {
				return err
			}
			return writeFile(out, func(f *os.File) error { return report.Write(f, meta, res) })
		},
	}
	b.register(cmd.Flags())
	cmd.Flags().StringVarP(&out, "out", "o", "report.pdf", "Output file")
	cmd.Flags().StringVar(&meta.Project, "project", "", "Project name")
	cmd.Flags().StringVar(&meta.Author, "author", "", "Author")
	cmd.Flags().StringVar(&meta.Title, "title", "", "Report title")
	cmd.Flags().StringVar(&meta.Notes, "notes", "", "Free text appended below the chart")
	return cmd
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE.xlsx",
		Short: "Evaluate every beam listed in a workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			rows, err := importer.ReadWorkbook(f)
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetAutoWrapText(false)
			table.SetHeader([]string{"Row", "L (m)", "Peak y (m)", "Midspan y (m)", "Error"})
			for _, r := range rows {
				line := fmt.Sprint(r.Line)
				if r.Result == nil {
					table.Append([]string{line, "", "", "", r.Error})
					continue
				}
				table.Append([]string{
					line,
					fmt.Sprintf("%g", r.Result.Params.L),
					deflection.FormatExp(r.Result.Stats.Peak.Y),
					deflection.FormatExp(r.Result.Stats.Midspan),
					"",
				})
			}
			table.Render()
			return nil
		},
	}
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create output")
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "close %s", path)
	}
	logrus.WithField("file", path).Info("written")
	return nil
}
