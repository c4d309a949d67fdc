// Package export renders attendance reports as CSV or PDF.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// Row is one student line of an attendance report.
type Row struct {
	Student  string
	Course   string
	Group    string
	Present  int
	Absent   int
	LastMark string
}

// Report is a titled set of attendance rows.
type Report struct {
	Title string
	Rows  []Row
}

var headers = []string{"Student", "Course", "Group", "Present", "Absent", "Last Mark"}

func (r Row) cells() []string {
	return []string{
		r.Student,
		r.Course,
		r.Group,
		strconv.Itoa(r.Present),
		strconv.Itoa(r.Absent),
		r.LastMark,
	}
}

// RenderCSV produces CSV encoded bytes for the report.
func RenderCSV(report Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("write csv headers: %w", err)
	}
	for _, row := range report.Rows {
		if err := writer.Write(row.cells()); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderPDF produces a tabular PDF for the report.
func RenderPDF(report Report) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	if report.Title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, strings.ToUpper(report.Title), "", 1, "C", false, 0, "")
		pdf.Ln(5)
	}

	colWidth := 190.0 / float64(len(headers))
	pdf.SetFont("Arial", "B", 10)
	for _, header := range headers {
		pdf.CellFormat(colWidth, 8, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range report.Rows {
		for _, cell := range row.cells() {
			pdf.CellFormat(colWidth, 7, cell, "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
