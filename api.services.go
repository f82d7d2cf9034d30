package main

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// NoSelection is the index value meaning no book is selected.
const NoSelection = -1

type CatalogProvider interface {
	Add(ctx context.Context, book Book) error
	Delete(ctx context.Context, index int) (Book, error)
	Get(index int) (Book, error)
	List() []Book
	Select(index int) error
	Selected() (int, bool)
	ClearSelection()
	Search(query string) (int, error)
}

// Catalog is the in-memory ordered list of books. Every mutation is written
// through to the storage before returning. All calls are serialized.
type Catalog struct {
	logger   *zap.Logger
	storage  BookStorage
	mu       sync.Mutex
	books    []Book
	selected int
}

// NewCatalog loads the books from storage and provides a ready to use catalog.
func NewCatalog(ctx context.Context, logger *zap.Logger, storage BookStorage) (*Catalog, error) {
	books, err := storage.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load books: %w", err)
	}
	logger.Info("catalog: books loaded", zap.Int("books.count", len(books)))
	return &Catalog{
		logger:   logger,
		storage:  storage,
		books:    books,
		selected: NoSelection,
	}, nil
}

// Add appends a complete book then persists the collection. On
// persistence failure the append is undone.
func (c *Catalog) Add(ctx context.Context, book Book) error {
	if err := book.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.books = append(c.books, book)
	if err := c.storage.Persist(ctx, c.books); err != nil {
		c.books = c.books[:len(c.books)-1]
		c.logger.Error("catalog: failed to persist after add", zap.Any("book", book), zap.Error(err))
		return fmt.Errorf("failed to save books: %w", err)
	}
	return nil
}

// Delete removes the book at index then persists the collection. Passing
// NoSelection deletes the currently selected book. The removed book is returned.
func (c *Catalog) Delete(ctx context.Context, index int) (Book, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if index == NoSelection {
		index = c.selected
	}
	if index < 0 || index >= len(c.books) {
		return Book{}, ErrNoSelection
	}

	removed := c.books[index]
	previous := c.books
	books := make([]Book, 0, len(c.books)-1)
	books = append(books, c.books[:index]...)
	books = append(books, c.books[index+1:]...)
	c.books = books

	if err := c.storage.Persist(ctx, c.books); err != nil {
		c.books = previous
		c.logger.Error("catalog: failed to persist after delete", zap.Int("book.index", index), zap.Error(err))
		return Book{}, fmt.Errorf("failed to save books: %w", err)
	}
	c.selected = NoSelection
	return removed, nil
}

// Get returns the book at index.
func (c *Catalog) Get(index int) (Book, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 0 || index >= len(c.books) {
		return Book{}, ErrNoSelection
	}
	return c.books[index], nil
}

// List returns a copy of all books in display order.
func (c *Catalog) List() []Book {
	c.mu.Lock()
	defer c.mu.Unlock()
	books := make([]Book, len(c.books))
	copy(books, c.books)
	return books
}

// Select marks the book at index as the current selection.
func (c *Catalog) Select(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 0 || index >= len(c.books) {
		return ErrNoSelection
	}
	c.selected = index
	return nil
}

// Selected reports the current selection if any.
func (c *Catalog) Selected() (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected, c.selected != NoSelection
}

// ClearSelection drops the current selection.
func (c *Catalog) ClearSelection() {
	c.mu.Lock()
	c.selected = NoSelection
	c.mu.Unlock()
}

// Search selects and returns the first book matching query on a whole
// field. The selection is left untouched when nothing matches.
func (c *Catalog) Search(query string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	index, ok := SearchBooks(c.books, query)
	if !ok {
		return NoSelection, ErrNoSelection
	}
	c.selected = index
	return index, nil
}
