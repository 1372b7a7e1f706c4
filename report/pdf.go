package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/Cincinnati-Associates/tomi-app-sub000/domain"
)

const (
	pdfMargin       = 15.0
	pdfContentWidth = 210 - 2*pdfMargin
)

// projectionWidths lays out buyer, share, proceeds, profit, ROI, annualized and
// taxable gain across the content width.
var projectionWidths = []float64{34, 16, 28, 28, 18, 22, 34}

type pdfReport struct {
	pdf   *fpdf.Fpdf
	names map[string]string
	// tr converts UTF-8 to the code page of the core fonts.
	tr func(string) string
}

func newPDFReport(state domain.CalculatorState) *pdfReport {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetTitle("Co-ownership report", true)
	return &pdfReport{
		pdf:   pdf,
		names: buyerNames(state),
		tr:    pdf.UnicodeTranslatorFromDescriptor(""),
	}
}

// RenderPDF renders the report, followed by a year-by-year view of the
// amortization schedule.
func RenderPDF(r domain.Report, schedule []domain.AmortizationRow, generated time.Time) ([]byte, error) {
	doc := newPDFReport(r.State)

	doc.addSummary(r, generated)
	doc.addOwnership(r)
	for _, proj := range r.Projections {
		doc.addProjection(proj)
	}
	doc.addSchedule(schedule)

	var buf bytes.Buffer
	if err := doc.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (d *pdfReport) heading(text string) {
	d.pdf.Ln(4)
	d.pdf.SetFont("Arial", "B", 13)
	d.pdf.SetFillColor(245, 247, 250)
	d.pdf.CellFormat(pdfContentWidth, 8, d.tr(text), "1", 1, "L", true, 0, "")
	d.pdf.SetFont("Arial", "", 10)
}

func (d *pdfReport) row(label, value string) {
	d.pdf.CellFormat(pdfContentWidth*0.5, 6, d.tr(label), "", 0, "L", false, 0, "")
	d.pdf.CellFormat(pdfContentWidth*0.5, 6, d.tr(value), "", 1, "R", false, 0, "")
}

func (d *pdfReport) tableRow(widths []float64, cells []string, bold bool) {
	style := ""
	if bold {
		style = "B"
	}
	d.pdf.SetFont("Arial", style, 9)
	for i, c := range cells {
		align := "R"
		if i == 0 {
			align = "L"
		}
		d.pdf.CellFormat(widths[i], 6, d.tr(c), "B", 0, align, false, 0, "")
	}
	d.pdf.Ln(-1)
}

func (d *pdfReport) addSummary(r domain.Report, generated time.Time) {
	p := newPrinter()
	m := r.State.Mortgage

	d.pdf.AddPage()
	d.pdf.SetFont("Arial", "B", 20)
	d.pdf.CellFormat(pdfContentWidth, 12, "Co-ownership Report", "", 1, "C", false, 0, "")
	d.pdf.SetFont("Arial", "I", 10)
	d.pdf.CellFormat(pdfContentWidth, 6, fmt.Sprintf("Generated: %s", generated.Format("2 January 2006")), "", 1, "C", false, 0, "")

	d.heading("Mortgage")
	d.row("Mode", string(r.State.Mode))
	d.row("Home value", Money(p, m.HomeValue))
	d.row("Down payment", Money(p, m.DownPayment))
	d.row("Loan amount", Money(p, m.LoanAmount))
	d.row("Interest rate", fmt.Sprintf("%.3f%%", m.AnnualInterestRatePercent))
	d.row("Term", fmt.Sprintf("%d years", m.TermYears))
	d.row("Monthly payment", Money(p, r.MonthlyPayment))
	d.row("Total interest", Money(p, r.TotalInterest))
}

func (d *pdfReport) addOwnership(r domain.Report) {
	p := newPrinter()
	d.heading("Ownership")
	widths := []float64{60, 40, 40, 40}
	d.tableRow(widths, []string{"Buyer", "Capital (full term)", "Now", "Full term"}, true)
	for _, b := range r.State.Buyers {
		full := r.FullTermOwnership.Share(b.ID)
		d.tableRow(widths, []string{
			d.names[b.ID],
			Money(p, full.CapitalContributed),
			fmt.Sprintf("%.2f%%", r.CurrentOwnership.Share(b.ID).Percentage),
			fmt.Sprintf("%.2f%%", full.Percentage),
		}, false)
	}
}

func (d *pdfReport) addProjection(proj domain.ScenarioProjection) {
	p := newPrinter()
	sc := proj.Scenario
	d.heading(fmt.Sprintf("Exit at %d months (%.2f%% a year)", sc.MonthsFromClose, sc.AnnualAppreciationPercent))
	d.row("Projected value", Money(p, sc.ProjectedHomeValue))
	d.row("Remaining balance", Money(p, proj.RemainingBalance))
	d.row("Total equity", Money(p, proj.TotalEquity))
	d.row("Selling costs", Money(p, proj.SellingCosts))
	d.row("Net proceeds", Money(p, proj.NetProceeds))

	widths := projectionWidths
	d.tableRow(widths, []string{"Buyer", "Share", "Proceeds", "Profit", "ROI", "Annual", "Tax"}, true)
	for _, o := range proj.Outcomes {
		d.tableRow(widths, []string{
			d.names[o.BuyerID],
			fmt.Sprintf("%.2f%%", o.Percentage),
			Money(p, o.NetProceedsShare),
			Money(p, o.ProfitOrLoss),
			fmt.Sprintf("%.1f%%", o.SimpleROIPercent),
			fmt.Sprintf("%.1f%%", o.AnnualizedROIPercent),
			Money(p, o.TaxableGain),
		}, false)
	}
}

func (d *pdfReport) addSchedule(schedule []domain.AmortizationRow) {
	if len(schedule) == 0 {
		return
	}
	p := newPrinter()
	d.pdf.AddPage()
	d.heading("Amortization by year")
	widths := []float64{30, 50, 50, 50}
	d.tableRow(widths, []string{"Year", "Interest", "Principal", "Balance"}, true)

	var interest, principal float64
	for _, row := range schedule {
		interest += row.Interest
		principal += row.Principal
		if row.Month%12 != 0 && row.Month != len(schedule) {
			continue
		}
		d.tableRow(widths, []string{
			fmt.Sprintf("%d", (row.Month+11)/12),
			Money(p, interest),
			Money(p, principal),
			Money(p, row.Balance),
		}, false)
		interest, principal = 0, 0
	}
}
