package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// ErrMalformedRow is returned when a data row does not hold exactly four fields.
var ErrMalformedRow = errors.New("malformed book row")

// WriteBooksCSV writes the header row followed by one row per book.
// Fields holding commas, quotes or line breaks get quoted.
func WriteBooksCSV(w io.Writer, books []Book) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(BookHeader); err != nil {
		return err
	}
	for _, book := range books {
		if err := cw.Write(book.Fields()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadBooksCSV reads books from r. The first line is a header and is
// skipped without being checked. Blank lines are ignored and a quote
// inside an unquoted field is kept as a literal character.
func ReadBooksCSV(r io.Reader) ([]Book, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	books := []Book{}
	if _, err := cr.Read(); err != nil {
		if err == io.EOF {
			return books, nil
		}
		return nil, err
	}

	for {
		row, err := cr.Read()
		if err == io.EOF {
			return books, nil
		}
		if err != nil {
			return nil, err
		}
		if len(row) != len(BookHeader) {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("%w: line %d has %d fields", ErrMalformedRow, line, len(row))
		}
		books = append(books, Book{Title: row[0], Author: row[1], Year: row[2], ISBN: row[3]})
	}
}
