package main

import (
	"context"
	"time"
)

// This file contains mocks definitions needed to perform unit tests.

type MockBookStorage struct {
	LoadFunc    func(ctx context.Context) ([]Book, error)
	PersistFunc func(ctx context.Context, books []Book) error
	CloseFunc   func() error
}

// Load mocks the behavior of reading all books from the storage.
func (m *MockBookStorage) Load(ctx context.Context) ([]Book, error) {
	if m.LoadFunc == nil {
		return []Book{}, nil
	}
	return m.LoadFunc(ctx)
}

// Persist mocks the behavior of saving all books into the storage.
func (m *MockBookStorage) Persist(ctx context.Context, books []Book) error {
	if m.PersistFunc == nil {
		return nil
	}
	return m.PersistFunc(ctx, books)
}

// Close mocks the behavior of closing the storage.
func (m *MockBookStorage) Close() error {
	if m.CloseFunc == nil {
		return nil
	}
	return m.CloseFunc()
}

// MockClocker implements a fake Clocker.
type MockClocker struct {
	MockNow time.Time
}

// NewMockClocker returns a mocked instance with fixed time.
func NewMockClocker() *MockClocker {
	return &MockClocker{time.Date(2023, 0o7, 0o2, 0o0, 0o0, 0o0, 0o00000000, time.UTC)}
}

// Now returns an already defined time to be used as mock. This
// equals to `Sun, 02 Jul 2023 00:00:00 UTC` in time.RFC1123 format.
func (mck *MockClocker) Now() time.Time {
	return mck.MockNow
}

// MockUIDHandler implements a fake UIDHandler.
type MockUIDHandler struct {
	MockedUID string
}

// NewMockUIDHandler returns a mocked instance with predictable id.
func NewMockUIDHandler(id string) *MockUIDHandler {
	return &MockUIDHandler{MockedUID: id}
}

// Generate constructs a predictable id to be used as mock.
func (muid *MockUIDHandler) Generate(prefix string) string {
	return prefix + ":" + muid.MockedUID
}
