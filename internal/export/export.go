package export

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/RMahshie/reynolds/internal/processing"
	"github.com/RMahshie/reynolds/pkg/models"
)

// MIME types of the downloadable artifacts
const (
	MIMEPNG  = "image/png"
	MIMEXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MIMEDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMEPDF  = "application/pdf"
)

// Fixed names
const (
	WordReportName = "Reynolds_Report.docx"
	PDFReportName  = "Reynolds_Report.pdf"
	SheetName      = "Re_Data"

	ReportTitle = "Reynolds Number Calculation Report"

	WordTableRows = 5
	PDFTableRows  = 10
)

var ErrReportUnavailable = errors.New("report needs a valid calculation")

// File is an encoded artifact ready to be downloaded or published
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// ContentDisposition returns the attachment header value for the file
func (f *File) ContentDisposition() string {
	return fmt.Sprintf("attachment; filename=%q", f.Name)
}

// ChartFileName returns the PNG name for a plot mode
func ChartFileName(mode models.PlotMode) string {
	return "Reynolds_" + string(mode) + ".png"
}

// TableFileName returns the spreadsheet name for a plot mode
func TableFileName(mode models.PlotMode) string {
	return "Reynolds_" + string(mode) + ".xlsx"
}

// Exporter encodes charts, tables and reports
type Exporter interface {
	Chart(png []byte, mode models.PlotMode) *File
	Table(ds *models.SweepDataset, mode models.PlotMode) (*File, error)
	WordReport(r *Report) (*File, error)
	PDFReport(r *Report) (*File, error)
}

type exporter struct{}

func NewExporter() Exporter {
	return &exporter{}
}

func (e *exporter) Chart(png []byte, mode models.PlotMode) *File {
	return &File{Name: ChartFileName(mode), ContentType: MIMEPNG, Data: png}
}

func (e *exporter) Table(ds *models.SweepDataset, mode models.PlotMode) (*File, error) {
	return Table(ds, mode)
}

func (e *exporter) WordReport(r *Report) (*File, error) {
	return WordReport(r)
}

func (e *exporter) PDFReport(r *Report) (*File, error) {
	return PDFReport(r)
}

// Report is everything a document export shows
type Report struct {
	Parameters models.InputParameters
	Re         float64
	Mode       models.PlotMode
	Chart      []byte
	Dataset    *models.SweepDataset
}

// NewReport builds a report from a valid render pass and its chart
func NewReport(pass *models.RenderPass, chart []byte) (*Report, error) {
	if pass == nil || !pass.Valid || pass.Re == nil || pass.Dataset == nil {
		return nil, ErrReportUnavailable
	}
	if len(chart) == 0 {
		return nil, fmt.Errorf("%w: missing chart image", ErrReportUnavailable)
	}
	return &Report{
		Parameters: pass.Parameters,
		Re:         *pass.Re,
		Mode:       pass.Mode,
		Chart:      chart,
		Dataset:    pass.Dataset,
	}, nil
}

// ParameterRows returns the six labelled values, formatted to six decimals
func (r *Report) ParameterRows() [][2]string {
	p := r.Parameters
	rows := []struct {
		label string
		value float64
	}{
		{"v (cm/s)", p.Velocity},
		{"K (μm²)", p.Permeability},
		{"ρ (g/cm³)", p.Density},
		{"μ (mPa·s)", p.Viscosity},
		{"φ", p.Porosity},
		{"Re", r.Re},
	}
	out := make([][2]string, len(rows))
	for i, row := range rows {
		out[i] = [2]string{row.label, formatValue(row.value)}
	}
	return out
}

// Formula returns the plain-text formula shown in reports
func (r *Report) Formula() string {
	return processing.Formula
}

func formatValue(v float64) string {
	return fmt.Sprintf("%.6f", v)
}

// headText renders the first n table rows as an indexed, right-aligned text block
func headText(ds *models.SweepDataset, n int) string {
	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', tabwriter.AlignRight)

	fmt.Fprint(tw, "\t")
	for _, c := range ds.Columns() {
		fmt.Fprintf(tw, "%s\t", c)
	}
	fmt.Fprintln(tw)
	for i, row := range ds.Head(n) {
		fmt.Fprintf(tw, "%d\t", i)
		for _, v := range row {
			fmt.Fprintf(tw, "%s\t", formatValue(v))
		}
		fmt.Fprintln(tw)
	}
	tw.Flush()
	return strings.TrimRight(sb.String(), "\n")
}
