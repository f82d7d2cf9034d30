package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestExporter(t *testing.T) *Exporter {
	t.Helper()
	return NewExporter(zap.NewNop(), &ExportConfig{
		Folder:       filepath.Join(t.TempDir(), "exports"),
		CSVFile:      DefaultCSVExport,
		ReportFile:   DefaultReportExport,
		PDFFile:      DefaultPDFExport,
		LinesPerPage: 2,
	}, NewMockClocker())
}

func TestExporter_EmptyCollection(t *testing.T) {
	e := newTestExporter(t)
	exports := map[string]func(context.Context, []Book) (string, error){
		"csv":    e.ExportCSV,
		"report": e.ExportReport,
		"pdf":    e.ExportPDF,
	}
	for name, export := range exports {
		t.Run(name, func(t *testing.T) {
			path, err := export(context.Background(), []Book{})
			assert.ErrorIs(t, err, ErrEmptyCollection)
			assert.Empty(t, path)
		})
	}
	_, err := os.Stat(e.config.Folder)
	assert.True(t, os.IsNotExist(err), "no folder must be created for an empty catalog")
}

func TestExporter_ExportCSV(t *testing.T) {
	e := newTestExporter(t)
	books := []Book{
		{Title: "Sapiens, A Brief History", Author: "Yuval Noah Harari", Year: "2011", ISBN: "9780062316097"},
		{Title: "1984", Author: "George Orwell", Year: "1949", ISBN: "9780451524935"},
	}
	path, err := e.ExportCSV(context.Background(), books)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(e.config.Folder, DefaultCSVExport), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	expected := "Title,Author,Year,ISBN\n" +
		"\"Sapiens, A Brief History\",Yuval Noah Harari,2011,9780062316097\n" +
		"1984,George Orwell,1949,9780451524935\n"
	assert.Equal(t, expected, string(data))

	got, err := ReadBooksCSV(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, books, got)
}

func TestExporter_ExportReport(t *testing.T) {
	e := newTestExporter(t)
	path, err := e.ExportReport(context.Background(), testBooks())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(e.config.Folder, DefaultReportExport), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	expected := "Library Books Report\n\n" +
		"Title: 1984 | Author: George Orwell | Year: 1949 | ISBN: 9780451524935\n" +
		"Title: Brave New World | Author: Aldous Huxley | Year: 1932 | ISBN: 9780060850524\n" +
		"\f\n" +
		"Title: Fahrenheit 451 | Author: Ray Bradbury | Year: 1953 | ISBN: 9781451673319\n"
	assert.Equal(t, expected, string(data))
}

func TestWriteTextReport_Pagination(t *testing.T) {
	books := make([]Book, 0, 60)
	for i := 0; i < 60; i++ {
		books = append(books, Book{Title: fmt.Sprintf("Book %d", i), Author: "A", Year: "2000", ISBN: "1"})
	}

	testCases := []struct {
		name         string
		linesPerPage int
		formFeeds    int
	}{
		{"default page size", 0, 2},
		{"page size of 25", 25, 2},
		{"page size of 20", 20, 2},
		{"page size of 7", 7, 8},
		{"page size larger than list", 100, 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteTextReport(&buf, books, tc.linesPerPage))
			assert.Equal(t, tc.formFeeds, strings.Count(buf.String(), "\f"))
			assert.True(t, strings.HasPrefix(buf.String(), ReportTitle+"\n\n"))
			assert.Equal(t, 60+2+tc.formFeeds, strings.Count(buf.String(), "\n"))
		})
	}
}

func TestExporter_ExportPDF(t *testing.T) {
	e := newTestExporter(t)
	books := append(testBooks(), Book{Title: "Les Misérables", Author: "Victor Hugo", Year: "1862", ISBN: "9780451419439"})
	path, err := e.ExportPDF(context.Background(), books)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(e.config.Folder, DefaultPDFExport), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	assert.True(t, bytes.Contains(data, []byte("%%EOF")))
}

func TestExporter_OverwritesPreviousExport(t *testing.T) {
	e := newTestExporter(t)
	_, err := e.ExportCSV(context.Background(), testBooks())
	require.NoError(t, err)
	path, err := e.ExportCSV(context.Background(), testBooks()[:1])
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Title,Author,Year,ISBN\n1984,George Orwell,1949,9780451524935\n", string(data))
}
