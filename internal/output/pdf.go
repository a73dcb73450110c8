package output

import (
	"bytes"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/rgehrsitz/bandcalc/internal/domain"
)

// PDFFormatter renders an A4 report using the core PDF fonts.
type PDFFormatter struct{}

func (p PDFFormatter) Name() string { return "pdf" }

const (
	pdfMargin       = 15.0
	pdfContentWidth = 210.0 - 2*pdfMargin
	pdfAmountWidth  = 45.0
)

// pdfText converts UTF-8 to the Latin-1 bytes the core fonts expect.
func pdfText(s string) string {
	return strings.NewReplacer("£", "\xa3", "·", "\xb7").Replace(s)
}

func (p PDFFormatter) Format(results *domain.BatchResults) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.AddPage()

	title := results.Description
	if title == "" {
		title = "Calculation report"
	}
	pdf.SetFont("Arial", "B", 18)
	pdf.SetTextColor(125, 86, 244)
	pdf.CellFormat(pdfContentWidth, 10, pdfText(title), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	for _, named := range results.Levy {
		r := named.Result
		p.heading(pdf, named.Name)
		p.note(pdf, r.Request.Region.TaxName()+" on "+FormatCurrency(r.Request.Amount)+" · "+string(r.Request.BuyerType)+" · "+r.ScheduleName)
		for _, line := range r.Breakdown {
			p.row(pdf, line.Label, FormatCurrency(line.Amount), false)
		}
		p.row(pdf, "Total", FormatCurrency(r.Total), true)
		p.row(pdf, "Effective rate", FormatPercentage(r.EffectiveRate), false)
		pdf.Ln(6)
	}

	for _, named := range results.Maintenance {
		r := named.Result
		p.heading(pdf, named.Name)
		p.note(pdf, r.RegimeLabel)
		pdf.SetFont("Arial", "", 10)
		for _, line := range r.Breakdown {
			pdf.CellFormat(pdfContentWidth, 6, pdfText(line), "", 1, "L", false, 0, "")
		}
		p.row(pdf, "Weekly", FormatCurrency(r.WeeklyAmount), true)
		p.row(pdf, "Monthly", FormatCurrency(r.MonthlyAmount), false)
		p.row(pdf, "Yearly", FormatCurrency(r.YearlyAmount), false)
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (p PDFFormatter) heading(pdf *fpdf.Fpdf, text string) {
	pdf.SetFont("Arial", "B", 13)
	pdf.SetTextColor(242, 93, 148)
	pdf.CellFormat(pdfContentWidth, 8, pdfText(text), "", 1, "L", false, 0, "")
	pdf.SetTextColor(50, 50, 50)
}

func (p PDFFormatter) note(pdf *fpdf.Fpdf, text string) {
	pdf.SetFont("Arial", "I", 10)
	pdf.SetTextColor(98, 98, 98)
	pdf.CellFormat(pdfContentWidth, 6, pdfText(text), "", 1, "L", false, 0, "")
	pdf.SetTextColor(50, 50, 50)
}

func (p PDFFormatter) row(pdf *fpdf.Fpdf, label, amount string, bold bool) {
	style, border := "", ""
	if bold {
		style, border = "B", "T"
	}
	pdf.SetFont("Arial", style, 10)
	pdf.CellFormat(pdfContentWidth-pdfAmountWidth, 6, pdfText(label), border, 0, "L", false, 0, "")
	pdf.CellFormat(pdfAmountWidth, 6, pdfText(amount), border, 1, "R", false, 0, "")
}
