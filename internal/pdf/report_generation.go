package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// Generator renders the dashboard summary report.
type Generator interface {
	GenerateSummary(data SummaryData) ([]byte, error)
}

type SummaryData struct {
	GeneratedAt       time.Time
	TotalStudents     int
	AverageGPA        float64
	AverageAttendance float64
	AtRiskCount       int
	RiskDistribution  map[string]int
	TrendRows         []TrendRow
	TopPerformers     []PerformerRow
}

type TrendRow struct {
	Month             string
	AverageGPA        float64
	AverageAttendance float64
}

type PerformerRow struct {
	Name  string
	Grade string
	GPA   float64
}

type ReportGenerator struct {
	fontName string
}

func NewReportGenerator() *ReportGenerator {
	// Helvetica is a core font, no TTF file needed
	return &ReportGenerator{fontName: "Helvetica"}
}

func (g *ReportGenerator) GenerateSummary(data SummaryData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Grade Vision: Summary Report", false)
	pdf.SetAuthor("Grade Vision", false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 18)
	pdf.CellFormat(0, 10, "GRADE VISION SUMMARY REPORT", "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 12)
	sub := fmt.Sprintf("Generated on %s", data.GeneratedAt.Format("02.01.2006 15:04"))
	pdf.CellFormat(0, 7, sub, "", 1, "C", false, 0, "")
	g.hr(pdf)
	pdf.Ln(3)

	g.sectionTitle(pdf, "Cohort overview")
	g.kvLine(pdf, "Total students", fmt.Sprintf("%d", data.TotalStudents))
	g.kvLine(pdf, "Average GPA", fmt.Sprintf("%.2f", data.AverageGPA))
	g.kvLine(pdf, "Average attendance", fmt.Sprintf("%.1f%%", data.AverageAttendance))
	g.kvLine(pdf, "At-risk students", fmt.Sprintf("%d", data.AtRiskCount))
	pdf.Ln(2)
	g.hr(pdf)

	g.sectionTitle(pdf, "Risk distribution")
	for _, level := range []string{"low", "medium", "high"} {
		g.kvLine(pdf, level, fmt.Sprintf("%d", data.RiskDistribution[level]))
	}
	pdf.Ln(2)
	g.hr(pdf)

	if len(data.TrendRows) > 0 {
		g.sectionTitle(pdf, "Monthly trend")
		g.tableHeader(pdf, []string{"Month", "Avg GPA", "Avg attendance"}, []float64{55, 55, 55})
		pdf.SetFont(g.fontName, "", 11)
		for _, row := range data.TrendRows {
			pdf.CellFormat(55, 6, row.Month, "B", 0, "L", false, 0, "")
			pdf.CellFormat(55, 6, fmt.Sprintf("%.2f", row.AverageGPA), "B", 0, "L", false, 0, "")
			pdf.CellFormat(55, 6, fmt.Sprintf("%.1f%%", row.AverageAttendance), "B", 1, "L", false, 0, "")
		}
		pdf.Ln(2)
		g.hr(pdf)
	}

	if len(data.TopPerformers) > 0 {
		g.sectionTitle(pdf, "Top performers")
		g.tableHeader(pdf, []string{"Name", "Grade", "GPA"}, []float64{85, 40, 40})
		pdf.SetFont(g.fontName, "", 11)
		for _, row := range data.TopPerformers {
			pdf.CellFormat(85, 6, row.Name, "B", 0, "L", false, 0, "")
			pdf.CellFormat(40, 6, row.Grade, "B", 0, "L", false, 0, "")
			pdf.CellFormat(40, 6, fmt.Sprintf("%.2f", row.GPA), "B", 1, "L", false, 0, "")
		}
	}

	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(g.fontName, "", 10)
		pdf.CellFormat(0, 10,
			fmt.Sprintf("Page %d/{nb}", pdf.PageNo()),
			"", 0, "C", false, 0, "",
		)
	})

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *ReportGenerator) sectionTitle(pdf *gofpdf.Fpdf, s string) {
	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 7, s, "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
}

func (g *ReportGenerator) kvLine(pdf *gofpdf.Fpdf, key, val string) {
	pdf.SetFont(g.fontName, "B", 11)
	pdf.CellFormat(45, 6, key+":", "", 0, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, val, "", 1, "L", false, 0, "")
}

func (g *ReportGenerator) tableHeader(pdf *gofpdf.Fpdf, cols []string, widths []float64) {
	pdf.SetFont(g.fontName, "B", 11)
	for i, col := range cols {
		br := 0
		if i == len(cols)-1 {
			br = 1
		}
		pdf.CellFormat(widths[i], 6, col, "B", br, "L", false, 0, "")
	}
}

func (g *ReportGenerator) hr(pdf *gofpdf.Fpdf) {
	y := pdf.GetY() + 1.5
	pdf.SetLineWidth(0.2)
	pdf.Line(20, y, 190, y)
	pdf.SetY(y + 2)
}
