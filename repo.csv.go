package main

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"

	"go.uber.org/zap"
)

type csvBookStorage struct {
	logger *zap.Logger
	path   string
}

// NewCSVBookStorage provides an instance of flat file book storage.
func NewCSVBookStorage(logger *zap.Logger, path string) BookStorage {
	return &csvBookStorage{
		logger: logger,
		path:   path,
	}
}

// Load reads all books from the backing file. A missing file means an empty catalog.
func (cs *csvBookStorage) Load(_ context.Context) ([]Book, error) {
	f, err := os.Open(cs.path)
	if errors.Is(err, fs.ErrNotExist) {
		cs.logger.Info("csv storage: backing file not found, starting empty", zap.String("storage.path", cs.path))
		return []Book{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadBooksCSV(f)
}

// Persist overwrites the backing file with the full list of books.
func (cs *csvBookStorage) Persist(_ context.Context, books []Book) error {
	return WriteFileAtomic(cs.path, func(w io.Writer) error {
		return WriteBooksCSV(w, books)
	})
}

// Close is a no-op since the file is only opened during Load and Persist.
func (cs *csvBookStorage) Close() error {
	return nil
}
