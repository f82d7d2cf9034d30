package main

import (
	"context"
	"fmt"
)

// BookHeader is the header row of the backing file and of the csv export.
var BookHeader = []string{"Title", "Author", "Year", "ISBN"}

// Book represents a catalogued book entry. All fields are free text.
type Book struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Year   string `json:"year"`
	ISBN   string `json:"isbn"`
}

// Fields returns the book values in header order.
func (b Book) Fields() []string {
	return []string{b.Title, b.Author, b.Year, b.ISBN}
}

// String renders the book the way it appears in reports.
func (b Book) String() string {
	return fmt.Sprintf("Title: %s | Author: %s | Year: %s | ISBN: %s", b.Title, b.Author, b.Year, b.ISBN)
}

// Validate ensures all four fields are provided. The first missing
// field (in header order) is reported.
func (b Book) Validate() error {
	if len(b.Title) == 0 {
		return missingFieldError("title")
	}

	if len(b.Author) == 0 {
		return missingFieldError("author")
	}

	if len(b.Year) == 0 {
		return missingFieldError("year")
	}

	if len(b.ISBN) == 0 {
		return missingFieldError("isbn")
	}

	return nil
}

// BookStorage persists the whole ordered collection of books.
type BookStorage interface {
	Load(ctx context.Context) ([]Book, error)
	Persist(ctx context.Context, books []Book) error
	Close() error
}
