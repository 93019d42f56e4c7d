package export

import (
	"archive/zip"
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/RMahshie/reynolds/internal/processing"
	"github.com/RMahshie/reynolds/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 64, 48))
	for x := 0; x < 64; x++ {
		img.Set(x, 24, color.RGBA{R: 31, G: 119, B: 180, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func testReport(t *testing.T, mode models.PlotMode) *Report {
	t.Helper()
	pass, err := processing.NewProcessingService().RenderPass(context.Background(), models.DefaultInputParameters(), mode)
	require.NoError(t, err)
	r, err := NewReport(pass, testPNG(t))
	require.NoError(t, err)
	return r
}

func TestFileNames(t *testing.T) {
	assert.Equal(t, "Reynolds_velocity.png", ChartFileName(models.PlotVelocity))
	assert.Equal(t, "Reynolds_contour.xlsx", TableFileName(models.PlotContour))

	f := NewExporter().Chart([]byte{1}, models.PlotHeatmap)
	assert.Equal(t, "Reynolds_heatmap.png", f.Name)
	assert.Equal(t, MIMEPNG, f.ContentType)
	assert.Equal(t, `attachment; filename="Reynolds_heatmap.png"`, f.ContentDisposition())
}

func TestTable(t *testing.T) {
	tests := []struct {
		mode     models.PlotMode
		wantHead []string
		wantRows int
	}{
		{models.PlotVelocity, []string{"v (cm/s)", "Re"}, 100},
		{models.PlotPorosity, []string{"φ", "Re"}, 100},
		{models.PlotHeatmap, []string{"v (cm/s)", "φ", "Re"}, 2500},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			r := testReport(t, tt.mode)

			file, err := Table(r.Dataset, tt.mode)
			require.NoError(t, err)
			assert.Equal(t, TableFileName(tt.mode), file.Name)
			assert.Equal(t, MIMEXLSX, file.ContentType)

			wb, err := excelize.OpenReader(bytes.NewReader(file.Data))
			require.NoError(t, err)
			defer wb.Close()

			assert.Equal(t, []string{"Re_Data"}, wb.GetSheetList())
			rows, err := wb.GetRows("Re_Data")
			require.NoError(t, err)
			require.Len(t, rows, tt.wantRows+1)
			assert.Equal(t, tt.wantHead, rows[0])
			assert.Len(t, rows[1], len(tt.wantHead))
		})
	}
}

func TestTable_NilDataset(t *testing.T) {
	_, err := Table(nil, models.PlotVelocity)
	assert.ErrorIs(t, err, ErrReportUnavailable)
}

func TestNewReport_RequiresValidPass(t *testing.T) {
	_, err := NewReport(nil, []byte{1})
	assert.ErrorIs(t, err, ErrReportUnavailable)

	_, err = NewReport(&models.RenderPass{Mode: models.PlotVelocity, Warning: "bad"}, []byte{1})
	assert.ErrorIs(t, err, ErrReportUnavailable)

	pass, err := processing.NewProcessingService().RenderPass(context.Background(), models.DefaultInputParameters(), models.PlotVelocity)
	require.NoError(t, err)
	_, err = NewReport(pass, nil)
	assert.ErrorIs(t, err, ErrReportUnavailable)
}

func TestParameterRows(t *testing.T) {
	r := testReport(t, models.PlotVelocity)

	assert.Equal(t, [][2]string{
		{"v (cm/s)", "0.100000"},
		{"K (μm²)", "100.000000"},
		{"ρ (g/cm³)", "1.000000"},
		{"μ (mPa·s)", "1.000000"},
		{"φ", "0.250000"},
		{"Re", "0.457143"},
	}, r.ParameterRows())
}

func TestHeadText(t *testing.T) {
	r := testReport(t, models.PlotPorosity)

	lines := strings.Split(headText(r.Dataset, 5), "\n")
	require.Len(t, lines, 6)
	assert.Contains(t, lines[0], "φ")
	assert.Contains(t, lines[0], "Re")
	assert.Contains(t, lines[1], "0.010000")
	assert.True(t, strings.HasPrefix(strings.TrimSpace(lines[5]), "4"))
}

func TestWordReport(t *testing.T) {
	r := testReport(t, models.PlotVelocity)

	file, err := WordReport(r)
	require.NoError(t, err)
	assert.Equal(t, "Reynolds_Report.docx", file.Name)
	assert.Equal(t, MIMEDOCX, file.ContentType)

	zr, err := zip.NewReader(bytes.NewReader(file.Data), int64(len(file.Data)))
	require.NoError(t, err)

	parts := map[string][]byte{}
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		parts[f.Name] = data
	}

	require.Contains(t, parts, "[Content_Types].xml")
	require.Contains(t, parts, "word/document.xml")
	assert.Equal(t, r.Chart, parts["word/media/image1.png"])

	doc := string(parts["word/document.xml"])
	assert.Contains(t, doc, ReportTitle)
	for _, row := range r.ParameterRows() {
		assert.Contains(t, doc, row[1])
	}
	assert.Contains(t, doc, "Re = vρ√K / (17.50 μ φ^(3/2))")
	assert.Contains(t, doc, `w:val="TableGrid"`)
	assert.Equal(t, len(r.ParameterRows()), strings.Count(doc, "<w:tr>")+strings.Count(doc, "<w:tr "))
	assert.Contains(t, doc, "r:embed=")
	// 5 in wide, 64x48 keeps the 4:3 aspect
	assert.Contains(t, doc, `cx="4572000" cy="3429000"`)
	// header + 5 rows
	assert.Equal(t, WordTableRows, strings.Count(doc, "<w:br "))
	assert.Contains(t, doc, "Courier New")
}

func TestWordReport_BadChart(t *testing.T) {
	r := testReport(t, models.PlotVelocity)
	r.Chart = []byte("not a png")

	_, err := WordReport(r)
	assert.Error(t, err)
}

func TestPDFReport(t *testing.T) {
	for _, mode := range []models.PlotMode{models.PlotPorosity, models.PlotContour} {
		t.Run(string(mode), func(t *testing.T) {
			file, err := PDFReport(testReport(t, mode))
			require.NoError(t, err)
			assert.Equal(t, "Reynolds_Report.pdf", file.Name)
			assert.Equal(t, MIMEPDF, file.ContentType)
			assert.True(t, bytes.HasPrefix(file.Data, []byte("%PDF-")))
		})
	}

	_, err := PDFReport(nil)
	assert.ErrorIs(t, err, ErrReportUnavailable)
}
