package main

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

// SelectedBook is the payload describing a highlighted book and its position.
type SelectedBook struct {
	Index int  `json:"index"`
	Book  Book `json:"book"`
}

// ExportResult is the payload sent back once an export file is generated.
type ExportResult struct {
	Path  string `json:"path"`
	Books int    `json:"books"`
}

// send replies with the json envelope tagged with the request id.
func (api *APIHandler) send(w http.ResponseWriter, r *http.Request, status int, message string, data interface{}) {
	api.reply(w, r, NewAPIResponse(GetValueFromContext(r.Context(), RequestIDContextKey), status, message, data))
}

func (api *APIHandler) reply(w http.ResponseWriter, r *http.Request, resp *APIResponse) {
	if err := resp.Write(w); err != nil {
		api.GetLoggerFromContext(r.Context()).Error("failed to send response", zap.Int("response.code", resp.Status), zap.Error(err))
	}
}

// CreateBook appends the book from the request body and persists the catalog.
func (api *APIHandler) CreateBook(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	logger := api.GetLoggerFromContext(r.Context())
	book := Book{}
	err := DecodeCreateBookRequestBody(r, &book)
	if err != nil {
		logger.Error("failed to create book", zap.Error(err))
		api.send(w, r, http.StatusBadRequest, "failed to create the book", EmptyData)
		return
	}

	err = api.catalog.Add(r.Context(), book)
	if errors.Is(err, ErrValidation) {
		logger.Error("failed to create book", zap.Error(err))
		api.send(w, r, http.StatusBadRequest, "All fields are required!", err.Error())
		return
	}
	if err != nil {
		logger.Error("failed to create book", zap.Error(err))
		api.send(w, r, http.StatusInternalServerError, "failed to create the book", book)
		return
	}
	logger.Info("success to create book", zap.String("book.title", book.Title))
	api.send(w, r, http.StatusCreated, "Book created successfully.", book)
}

// GetAllBooks returns every book in display order with their total.
func (api *APIHandler) GetAllBooks(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	books := api.catalog.List()
	api.GetLoggerFromContext(r.Context()).Info("success to get all books")
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	api.reply(w, r, NewAPIResponse(requestID, http.StatusOK, "All books fetched successfully.", books).WithTotal(len(books)))
}

// GetOneBook returns the book at the position given in the path.
func (api *APIHandler) GetOneBook(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	logger := api.GetLoggerFromContext(r.Context())
	index, ok := api.parseIndex(w, r, ps)
	if !ok {
		return
	}
	book, err := api.catalog.Get(index)
	if err != nil {
		logger.Error("book does not exist", zap.Int("book.index", index))
		api.send(w, r, http.StatusNotFound, "book does not exist", EmptyData)
		return
	}
	api.send(w, r, http.StatusOK, "Book fetched successfully.", SelectedBook{Index: index, Book: book})
}

// DeleteOneBook removes the book at the position given in the path.
func (api *APIHandler) DeleteOneBook(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	index, ok := api.parseIndex(w, r, ps)
	if !ok {
		return
	}
	api.deleteBook(w, r, index)
}

// DeleteSelectedBook removes the currently selected book.
func (api *APIHandler) DeleteSelectedBook(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	api.deleteBook(w, r, NoSelection)
}

func (api *APIHandler) deleteBook(w http.ResponseWriter, r *http.Request, index int) {
	logger := api.GetLoggerFromContext(r.Context())
	book, err := api.catalog.Delete(r.Context(), index)
	if errors.Is(err, ErrNoSelection) {
		logger.Error("no book selected for deletion", zap.Int("book.index", index))
		api.send(w, r, http.StatusNotFound, "Please select a book to delete!", EmptyData)
		return
	}
	if err != nil {
		logger.Error("failed to delete book", zap.Int("book.index", index), zap.Error(err))
		api.send(w, r, http.StatusInternalServerError, "failed to delete the book", EmptyData)
		return
	}
	logger.Info("success to delete book", zap.Int("book.index", index), zap.String("book.title", book.Title))
	api.send(w, r, http.StatusOK, "Book deleted successfully.", book)
}

// SelectBook highlights the book at the position given in the path.
func (api *APIHandler) SelectBook(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	index, ok := api.parseIndex(w, r, ps)
	if !ok {
		return
	}
	if err := api.catalog.Select(index); err != nil {
		api.GetLoggerFromContext(r.Context()).Error("book does not exist", zap.Int("book.index", index))
		api.send(w, r, http.StatusNotFound, "book does not exist", EmptyData)
		return
	}
	api.sendSelection(w, r, "Book selected successfully.")
}

// GetSelection returns the currently highlighted book.
func (api *APIHandler) GetSelection(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	api.sendSelection(w, r, "Selected book fetched successfully.")
}

// ClearSelection drops the current highlight.
func (api *APIHandler) ClearSelection(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	api.catalog.ClearSelection()
	api.send(w, r, http.StatusOK, "Selection cleared successfully.", EmptyData)
}

func (api *APIHandler) sendSelection(w http.ResponseWriter, r *http.Request, message string) {
	index, ok := api.catalog.Selected()
	if !ok {
		api.send(w, r, http.StatusNotFound, "no book selected", EmptyData)
		return
	}
	book, err := api.catalog.Get(index)
	if err != nil {
		api.send(w, r, http.StatusNotFound, "no book selected", EmptyData)
		return
	}
	api.send(w, r, http.StatusOK, message, SelectedBook{Index: index, Book: book})
}

// SearchBooks looks for the first book having one field equal to the `q`
// query parameter, ignoring case, and selects it.
func (api *APIHandler) SearchBooks(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	logger := api.GetLoggerFromContext(r.Context())
	query := r.URL.Query().Get("q")
	index, err := api.catalog.Search(query)
	if err != nil {
		logger.Info("no matching book found", zap.String("search.query", query))
		api.send(w, r, http.StatusNotFound, "No matching book found.", EmptyData)
		return
	}
	book, err := api.catalog.Get(index)
	if err != nil {
		api.send(w, r, http.StatusNotFound, "No matching book found.", EmptyData)
		return
	}
	logger.Info("success to search book", zap.String("search.query", query), zap.Int("book.index", index))
	api.send(w, r, http.StatusOK, "Book found.", SelectedBook{Index: index, Book: book})
}

// ExportCSV writes the catalog into the csv export file.
func (api *APIHandler) ExportCSV(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	api.export(w, r, "csv", "Books exported to CSV successfully!", api.exporter.ExportCSV)
}

// ExportReport writes the paginated plain text report.
func (api *APIHandler) ExportReport(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	api.export(w, r, "report", "Report generated successfully!", api.exporter.ExportReport)
}

// ExportPDF writes the pdf report.
func (api *APIHandler) ExportPDF(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	api.export(w, r, "pdf", "PDF report generated successfully!", api.exporter.ExportPDF)
}

func (api *APIHandler) export(
	w http.ResponseWriter,
	r *http.Request,
	kind, message string,
	run func(context.Context, []Book) (string, error),
) {
	logger := api.GetLoggerFromContext(r.Context()).With(zap.String("export.kind", kind))
	books := api.catalog.List()
	path, err := run(r.Context(), books)
	if errors.Is(err, ErrEmptyCollection) {
		logger.Info("nothing to export")
		api.send(w, r, http.StatusConflict, "No books to export!", EmptyData)
		return
	}
	if err != nil {
		logger.Error("failed to export books", zap.Error(err))
		api.send(w, r, http.StatusInternalServerError, "failed to export the books", EmptyData)
		return
	}
	api.send(w, r, http.StatusCreated, message, ExportResult{Path: path, Books: len(books)})
}

func (api *APIHandler) parseIndex(w http.ResponseWriter, r *http.Request, ps httprouter.Params) (int, bool) {
	raw := ps.ByName("index")
	index, err := strconv.Atoi(raw)
	if err != nil || index < 0 {
		api.GetLoggerFromContext(r.Context()).Error("book index provided is not valid", zap.String("book.index", raw))
		api.send(w, r, http.StatusBadRequest, "book index provided is not valid", EmptyData)
		return 0, false
	}
	return index, true
}
