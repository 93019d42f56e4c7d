package export

import (
	"bytes"
	"fmt"
	"image/png"
	"os"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/common/units"
	"github.com/gomutex/godocx/wml/stypes"
)

// Chart width in the Word report
const wordImageWidth units.Inch = 5

// WordReport writes the report as a .docx document
func WordReport(r *Report) (*File, error) {
	if r == nil {
		return nil, ErrReportUnavailable
	}

	img, err := png.DecodeConfig(bytes.NewReader(r.Chart))
	if err != nil {
		return nil, fmt.Errorf("failed to read chart image: %w", err)
	}
	if img.Width == 0 {
		return nil, fmt.Errorf("chart image has zero width")
	}

	doc, err := godocx.NewDocument()
	if err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}

	if _, err := doc.AddHeading(ReportTitle, 0); err != nil {
		return nil, fmt.Errorf("failed to add title: %w", err)
	}

	if _, err := doc.AddHeading("Input Parameters", 1); err != nil {
		return nil, fmt.Errorf("failed to add heading: %w", err)
	}
	table := doc.AddTable()
	table.Style("TableGrid")
	for _, row := range r.ParameterRows() {
		tr := table.AddRow()
		tr.AddCell().AddParagraph(row[0])
		tr.AddCell().AddParagraph(row[1])
	}

	if _, err := doc.AddHeading("Formula", 1); err != nil {
		return nil, fmt.Errorf("failed to add heading: %w", err)
	}
	doc.AddParagraph(r.Formula())

	if _, err := doc.AddHeading("Trend Chart", 1); err != nil {
		return nil, fmt.Errorf("failed to add heading: %w", err)
	}
	// godocx embeds pictures from disk
	chartPath, err := writeTempPNG(r.Chart)
	if err != nil {
		return nil, err
	}
	defer os.Remove(chartPath)

	height := wordImageWidth * units.Inch(img.Height) / units.Inch(img.Width)
	if _, err := doc.AddPicture(chartPath, wordImageWidth, height); err != nil {
		return nil, fmt.Errorf("failed to embed chart: %w", err)
	}

	if _, err := doc.AddHeading("Data Table", 1); err != nil {
		return nil, fmt.Errorf("failed to add heading: %w", err)
	}
	p := doc.AddEmptyParagraph()
	lineBreak := stypes.BreakTypeTextWrapping
	for i, line := range strings.Split(headText(r.Dataset, WordTableRows), "\n") {
		run := p.AddText(line).Font("Courier New")
		if i < WordTableRows {
			run.AddBreak(&lineBreak)
		}
	}

	var buf bytes.Buffer
	if err := doc.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode Word report: %w", err)
	}

	return &File{Name: WordReportName, ContentType: MIMEDOCX, Data: buf.Bytes()}, nil
}

func writeTempPNG(data []byte) (string, error) {
	f, err := os.CreateTemp("", "reynolds-chart-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to stage chart image: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to stage chart image: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to stage chart image: %w", err)
	}
	return f.Name(), nil
}
