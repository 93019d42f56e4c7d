package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/wcharczuk/go-chart/v2/roboto"
)

const (
	pdfFont    = "Roboto"
	pdfMargin  = 72.0
	pdfRowH    = 16.0
	pdfImageW  = 400.0
	pdfImageH  = 300.0
	pdfParamW  = 140.0
	pdfColumnW = 120.0
)

// PDFReport lays the report out on A4 pages
func PDFReport(r *Report) (*File, error) {
	if r == nil {
		return nil, ErrReportUnavailable
	}

	pdf := fpdf.New("P", "pt", "A4", "")
	// Roboto carries the Greek letters the labels need
	pdf.AddUTF8FontFromBytes(pdfFont, "", roboto.Roboto)
	pdf.AddUTF8FontFromBytes(pdfFont, "B", roboto.Roboto)
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.SetTitle(ReportTitle, true)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()

	pdf.SetFont(pdfFont, "B", 20)
	pdf.CellFormat(0, 26, ReportTitle, "", 1, "C", false, 0, "")
	pdf.Ln(12)

	pdfHeading(pdf, "Input Parameters")
	pdf.SetFont(pdfFont, "", 10)
	pdf.SetFillColor(128, 128, 128)
	pdf.SetTextColor(245, 245, 245)
	pdf.CellFormat(pdfParamW, pdfRowH, "Parameter", "1", 0, "C", true, 0, "")
	pdf.CellFormat(pdfParamW, pdfRowH, "Value", "1", 1, "C", true, 0, "")
	pdf.SetTextColor(0, 0, 0)
	for _, row := range r.ParameterRows() {
		pdf.CellFormat(pdfParamW, pdfRowH, row[0], "1", 0, "C", false, 0, "")
		pdf.CellFormat(pdfParamW, pdfRowH, row[1], "1", 1, "C", false, 0, "")
	}
	pdf.Ln(12)

	pdfHeading(pdf, "Formula")
	pdf.SetFont(pdfFont, "", 10)
	pdf.MultiCell(0, 14, r.Formula(), "", "L", false)
	pdf.Ln(12)

	pdfHeading(pdf, "Trend Chart")
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("chart", opts, bytes.NewReader(r.Chart))
	pdf.ImageOptions("chart", (pageW-pdfImageW)/2, -1, pdfImageW, pdfImageH, true, opts, 0, "")
	pdf.Ln(12)

	pdfHeading(pdf, fmt.Sprintf("Data Table (first %d rows)", PDFTableRows))
	pdf.SetFont(pdfFont, "", 9)
	cols := r.Dataset.Columns()
	for i, c := range cols {
		pdf.CellFormat(pdfColumnW, pdfRowH, c, "1", lineBreak(i, len(cols)), "C", false, 0, "")
	}
	for _, row := range r.Dataset.Head(PDFTableRows) {
		for i, v := range row {
			pdf.CellFormat(pdfColumnW, pdfRowH, formatValue(v), "1", lineBreak(i, len(row)), "C", false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode PDF report: %w", err)
	}

	return &File{Name: PDFReportName, ContentType: MIMEPDF, Data: buf.Bytes()}, nil
}

func pdfHeading(pdf *fpdf.Fpdf, text string) {
	pdf.SetFont(pdfFont, "B", 14)
	pdf.CellFormat(0, 20, text, "", 1, "L", false, 0, "")
	pdf.Ln(4)
}

// lineBreak moves to the next row after the last cell
func lineBreak(i, n int) int {
	if i == n-1 {
		return 1
	}
	return 0
}
