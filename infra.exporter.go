package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"
)

// ReportTitle is the first line of the text and pdf reports.
const ReportTitle = "Library Books Report"

type ExporterProvider interface {
	ExportCSV(ctx context.Context, books []Book) (string, error)
	ExportReport(ctx context.Context, books []Book) (string, error)
	ExportPDF(ctx context.Context, books []Book) (string, error)
}

// Exporter writes the catalog content into fixed named files
// under the configured export folder.
type Exporter struct {
	logger *zap.Logger
	config *ExportConfig
	clock  Clocker
}

// NewExporter provides an instance of Exporter.
func NewExporter(logger *zap.Logger, config *ExportConfig, clock Clocker) *Exporter {
	return &Exporter{logger: logger, config: config, clock: clock}
}

// ExportCSV writes the books list as csv. Nothing is written for an empty list.
func (e *Exporter) ExportCSV(_ context.Context, books []Book) (string, error) {
	if len(books) == 0 {
		return "", ErrEmptyCollection
	}
	path, err := e.target(e.config.CSVFile)
	if err != nil {
		return "", err
	}
	err = WriteFileAtomic(path, func(w io.Writer) error {
		return WriteBooksCSV(w, books)
	})
	if err != nil {
		return "", fmt.Errorf("failed to export csv: %w", err)
	}
	e.logger.Info("exporter: csv file generated", zap.String("export.path", path), zap.Int("books.count", len(books)))
	return path, nil
}

// ExportReport writes the paginated plain text report.
func (e *Exporter) ExportReport(_ context.Context, books []Book) (string, error) {
	if len(books) == 0 {
		return "", ErrEmptyCollection
	}
	path, err := e.target(e.config.ReportFile)
	if err != nil {
		return "", err
	}
	err = WriteFileAtomic(path, func(w io.Writer) error {
		return WriteTextReport(w, books, e.config.LinesPerPage)
	})
	if err != nil {
		return "", fmt.Errorf("failed to export report: %w", err)
	}
	e.logger.Info("exporter: text report generated", zap.String("export.path", path), zap.Int("books.count", len(books)))
	return path, nil
}

// ExportPDF renders the report as an A4 pdf document.
func (e *Exporter) ExportPDF(_ context.Context, books []Book) (string, error) {
	if len(books) == 0 {
		return "", ErrEmptyCollection
	}
	path, err := e.target(e.config.PDFFile)
	if err != nil {
		return "", err
	}
	err = WriteFileAtomic(path, func(w io.Writer) error {
		return WritePDFReport(w, books, e.clock)
	})
	if err != nil {
		return "", fmt.Errorf("failed to export pdf: %w", err)
	}
	e.logger.Info("exporter: pdf report generated", zap.String("export.path", path), zap.Int("books.count", len(books)))
	return path, nil
}

func (e *Exporter) target(name string) (string, error) {
	if e.config.Folder == "" {
		return name, nil
	}
	if err := os.MkdirAll(e.config.Folder, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export folder: %w", err)
	}
	return filepath.Join(e.config.Folder, name), nil
}

// WriteTextReport writes the title line, a blank line then one line per
// book. Every linesPerPage books a form feed line starts a new page.
func WriteTextReport(w io.Writer, books []Book, linesPerPage int) error {
	if linesPerPage <= 0 {
		linesPerPage = DefaultLinesPerPage
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s\n\n", ReportTitle)
	for i, book := range books {
		if i > 0 && i%linesPerPage == 0 {
			bw.WriteString("\f\n")
		}
		bw.WriteString(book.String())
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// WritePDFReport lays out the report with a bold centered title followed
// by one line per book. Pages break automatically.
func WritePDFReport(w io.Writer, books []Book, clock Clocker) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(ReportTitle, true)
	pdf.SetCreator("demo-library", false)
	pdf.SetCreationDate(clock.Now())
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, ReportTitle, "", 1, "C", false, 0, "")
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 12)
	for _, book := range books {
		pdf.CellFormat(0, 10, tr(book.String()), "", 1, "", false, 0, "")
	}
	return pdf.Output(w)
}
