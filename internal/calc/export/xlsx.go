package export

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"Flexure/internal/calc/deflection"
)

const Sheet = "Deflection"

// WriteXLSX writes the series as two columns next to a parameter block and
// a line chart of the curve.
func WriteXLSX(w io.Writer, res deflection.Result) error {
	if len(res.Samples) == 0 {
		return deflection.ErrEmptySeries
	}
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", Sheet); err != nil {
		return errors.Wrap(err, "rename sheet")
	}
	if err := f.SetSheetRow(Sheet, "A1", &[]interface{}{"x (m)", "y (m)"}); err != nil {
		return errors.Wrap(err, "write header")
	}
	for i, s := range res.Samples {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(Sheet, cell, &[]interface{}{s.X, s.Y}); err != nil {
			return errors.Wrapf(err, "write sample %d", i)
		}
	}

	params := [][]interface{}{
		{"E (Pa)", res.Params.E},
		{"I (m^4)", res.Params.I},
		{"w (N/m)", res.Params.W},
		{"L (m)", res.Params.L},
		{"Points", res.NumPoints},
		{"Policy", string(res.Policy)},
		{"Min y (m)", res.Stats.MinY},
		{"Peak y (m)", res.Stats.Peak.Y},
		{"Midspan y (m)", res.Stats.Midspan},
	}
	for i, row := range params {
		if err := f.SetSheetRow(Sheet, fmt.Sprintf("D%d", i+1), &row); err != nil {
			return errors.Wrap(err, "write parameters")
		}
	}

	last := len(res.Samples) + 1
	chart := &excelize.Chart{
		Type: excelize.Line,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("%s!$B$1", Sheet),
			Categories: fmt.Sprintf("%s!$A$2:$A$%d", Sheet, last),
			Values:     fmt.Sprintf("%s!$B$2:$B$%d", Sheet, last),
		}},
		Title: []excelize.RichTextRun{{Text: "Beam Deflection Graph"}},
		XAxis: excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: "Position along beam (m)"}}},
		YAxis: excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: "Deflection (m)"}}},
	}
	if err := f.AddChart(Sheet, "G2", chart); err != nil {
		return errors.Wrap(err, "add chart")
	}
	return errors.Wrap(f.Write(w), "write workbook")
}
