package report

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/phpdave11/gofpdf"
	"github.com/pkg/errors"

	"Flexure/internal/calc/deflection"
)

type Meta struct {
	Project string `json:"project"`
	Author  string `json:"author"`
	Title   string `json:"title"`
	Notes   string `json:"notes"`
}

// plot frame on A4 portrait, mm
const (
	plotX = 25.0
	plotY = 130.0
	plotW = 160.0
	plotH = 90.0
)

var now = time.Now

func Write(w io.Writer, meta Meta, res deflection.Result) error {
	if len(res.Samples) == 0 {
		return deflection.ErrEmptySeries
	}
	if meta.Title == "" {
		meta.Title = "Beam Deflection Report"
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, meta.Title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Project: %s", meta.Project))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Author: %s", meta.Author))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", now().Format("2006-01-02")))
	pdf.Ln(10)

	p := res.Params
	lines := []string{
		fmt.Sprintf("Modulus of Elasticity (E): %s Pa", deflection.FormatExp(p.E)),
		fmt.Sprintf("Moment of Inertia (I): %s m^4", deflection.FormatExp(p.I)),
		fmt.Sprintf("Load (w): %s N/m", deflection.FormatExp(p.W)),
		fmt.Sprintf("Beam Length (L): %g m", p.L),
		fmt.Sprintf("Samples: %d (%s stepping)", len(res.Samples), res.Policy),
		"",
		fmt.Sprintf("Maximum Deflection: %s m at x = %s m", deflection.FormatExp(res.Stats.Peak.Y), deflection.FormatX(res.Stats.Peak.X)),
		fmt.Sprintf("Minimum y: %s m", deflection.FormatExp(res.Stats.MinY)),
		fmt.Sprintf("At midspan (x = %g m): %s m", p.L/2, deflection.FormatExp(res.Stats.Midspan)),
		fmt.Sprintf("Closed form 5wL^4/384EI: %s m", deflection.FormatExp(res.Check.ClosedFormM)),
		fmt.Sprintf("Limit L/%g: %s m, ok: %t", res.Check.LimitRatio, deflection.FormatExp(res.Check.LimitM), res.Check.OK),
	}
	for _, l := range lines {
		pdf.Cell(0, 6, l)
		pdf.Ln(6)
	}

	plot(pdf, res.Samples)

	if meta.Notes != "" {
		pdf.SetXY(plotX, plotY+plotH+12)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, meta.Notes, "", "L", false)
	}
	return errors.Wrap(pdf.Output(w), "write pdf")
}

func plot(pdf *gofpdf.Fpdf, s deflection.Series) {
	minX, maxX := s[0].X, s[0].X
	minY, maxY := s[0].Y, s[0].Y
	for _, smp := range s[1:] {
		minX, maxX = math.Min(minX, smp.X), math.Max(maxX, smp.X)
		minY, maxY = math.Min(minY, smp.Y), math.Max(maxY, smp.Y)
	}
	// keep the zero line in view and avoid a flat range
	minY, maxY = math.Min(minY, 0), math.Max(maxY, 0)
	if maxY-minY == 0 || math.IsNaN(maxY-minY) || math.IsInf(maxY-minY, 0) {
		minY, maxY = -1, 1
	}
	if maxX-minX == 0 {
		maxX = minX + 1
	}
	px := func(x float64) float64 { return plotX + (x-minX)/(maxX-minX)*plotW }
	py := func(y float64) float64 { return plotY + plotH - (y-minY)/(maxY-minY)*plotH }

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(plotX, plotY-10)
	pdf.Cell(plotW, 6, "Beam Deflection Graph")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.2)
	pdf.Rect(plotX, plotY, plotW, plotH, "D")
	pdf.SetDrawColor(180, 180, 180)
	pdf.Line(plotX, py(0), plotX+plotW, py(0))

	pdf.SetDrawColor(75, 192, 192)
	pdf.SetLineWidth(0.5)
	for i := 1; i < len(s); i++ {
		a, b := s[i-1], s[i]
		if math.IsNaN(a.Y) || math.IsNaN(b.Y) || math.IsInf(a.Y, 0) || math.IsInf(b.Y, 0) {
			continue
		}
		pdf.Line(px(a.X), py(a.Y), px(b.X), py(b.Y))
	}

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetXY(plotX, plotY+plotH+1)
	pdf.Cell(20, 4, deflection.FormatX(minX))
	pdf.SetXY(plotX+plotW-20, plotY+plotH+1)
	pdf.CellFormat(20, 4, deflection.FormatX(maxX), "", 0, "R", false, 0, "")
	pdf.SetXY(plotX, plotY+plotH+5)
	pdf.CellFormat(plotW, 4, "Position along beam (m)", "", 0, "C", false, 0, "")
	pdf.SetXY(plotX-22, plotY)
	pdf.CellFormat(21, 4, deflection.FormatExp(maxY), "", 0, "R", false, 0, "")
	pdf.SetXY(plotX-22, plotY+plotH-4)
	pdf.CellFormat(21, 4, deflection.FormatExp(minY), "", 0, "R", false, 0, "")
	pdf.TransformBegin()
	pdf.TransformRotate(90, plotX-12, plotY+plotH/2)
	pdf.SetXY(plotX-32, plotY+plotH/2-2)
	pdf.CellFormat(40, 4, "Deflection (m)", "", 0, "C", false, 0, "")
	pdf.TransformEnd()
}
