package importer

import (
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"Flexure/internal/calc/deflection"
)

// Row is one parsed sheet line. Line is the 1-based sheet row.
type Row struct {
	Line   int                `json:"line"`
	Result *deflection.Result `json:"result,omitempty"`
	Error  string             `json:"error,omitempty"`
}

var ErrEmptySheet = errors.New("empty sheet")

func ReadWorkbook(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "open workbook")
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrapf(err, "read sheet %q", sheet)
	}
	if len(rows) < 2 {
		return nil, ErrEmptySheet
	}
	return ParseRows(rows), nil
}

// ParseRows skips the header and blank lines.
// expected: e_pa, i_m4, udl_n_m, span_m, num_points(optional), policy(optional)
func ParseRows(rows [][]string) []Row {
	out := []Row{}
	for i := 1; i < len(rows); i++ {
		if blank(rows[i]) {
			continue
		}
		row := Row{Line: i + 1}
		input, err := parseRow(rows[i])
		if err == nil {
			var res deflection.Result
			res, err = deflection.Calculate(input)
			if err == nil {
				row.Result = &res
			}
		}
		if err != nil {
			row.Error = err.Error()
		}
		out = append(out, row)
	}
	return out
}

func parseRow(row []string) (deflection.Input, error) {
	if len(row) < 4 {
		return deflection.Input{}, errors.New("bad row: need e_pa, i_m4, udl_n_m, span_m")
	}
	names := [4]string{"e_pa", "i_m4", "udl_n_m", "span_m"}
	var vals [4]float64
	for i := range vals {
		v, err := toFloat(row[i])
		if err != nil {
			return deflection.Input{}, errors.Wrapf(err, "column %s", names[i])
		}
		vals[i] = v
	}
	in := deflection.Input{
		Params: deflection.Params{E: vals[0], I: vals[1], W: vals[2], L: vals[3]},
	}
	if len(row) > 4 && strings.TrimSpace(row[4]) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(row[4]))
		if err != nil {
			return deflection.Input{}, errors.Wrap(err, "column num_points")
		}
		in.NumPoints = n
	}
	if len(row) > 5 {
		in.Policy = deflection.Policy(strings.ToLower(strings.TrimSpace(row[5])))
	}
	return in, nil
}

func toFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
