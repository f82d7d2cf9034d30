package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newTestAPIHandler provides an api handler wired to a catalog over the given books.
func newTestAPIHandler(t *testing.T, config *Config, books []Book) *APIHandler {
	t.Helper()
	if config == nil {
		config = &Config{}
	}
	if config.Export.LinesPerPage == 0 {
		config.Export = ExportConfig{
			Folder:       t.TempDir(),
			CSVFile:      DefaultCSVExport,
			ReportFile:   DefaultReportExport,
			PDFFile:      DefaultPDFExport,
			LinesPerPage: DefaultLinesPerPage,
		}
	}
	catalog, _ := newTestCatalog(t, books)
	clock := NewMockClocker()
	exporter := NewExporter(zap.NewNop(), &config.Export, clock)
	return NewAPIHandler(
		zap.NewNop(),
		config,
		&Statistics{started: clock.Now()},
		clock,
		NewMockUIDHandler("abc"),
		catalog,
		exporter,
	)
}

// TestMiddlewaresStacks ensures we get both public and ops middlewares
// stacks with exact number of elements in those stacks.
func TestMiddlewaresStacks(t *testing.T) {
	api := newTestAPIHandler(t, nil, nil)
	pub, ops := api.MiddlewaresStacks()
	assert.Equal(t, 5, len(*pub))
	assert.Equal(t, 4, len(*ops))
}

// TestChain ensures each middleware in the stack is called as well the handler.
func TestChain(t *testing.T) {
	var ca, cb, cc, ch bool
	queue := make(chan int, 4)

	middlewareA := func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			queue <- 1
			ca = true
			next(w, r, ps)
		}
	}
	middlewareB := func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			queue <- 2
			cb = true
			next(w, r, ps)
		}
	}
	middlewareC := func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			queue <- 3
			cc = true
			next(w, r, ps)
		}
	}
	middlewares := Middlewares{
		middlewareA,
		middlewareB,
		middlewareC,
	}

	handler := func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		queue <- 4
		ch = true
	}

	chained := (&middlewares).Chain(handler)
	req := httptest.NewRequest("GET", "/v1/books", nil)
	w := httptest.NewRecorder()
	chained(w, req, nil)

	t.Run("check calling", func(t *testing.T) {
		assert.Equal(t, true, ca)
		assert.Equal(t, true, cb)
		assert.Equal(t, true, cc)
		assert.Equal(t, true, ch)
	})

	t.Run("check ordering", func(t *testing.T) {
		assert.Equal(t, 1, <-queue)
		assert.Equal(t, 2, <-queue)
		assert.Equal(t, 3, <-queue)
		assert.Equal(t, 4, <-queue)
	})
}

// TestRequestsCounterMiddleware ensures the request counter increment.
func TestRequestsCounterMiddleware(t *testing.T) {
	api := newTestAPIHandler(t, nil, nil)
	req := httptest.NewRequest("GET", "/v1/books", nil)
	w := httptest.NewRecorder()
	var num uint64
	handler := func(w http.ResponseWriter, req *http.Request, ps httprouter.Params) {
		num = GetRequestNumberFromContext(req.Context())
	}
	wrapped := api.RequestsCounterMiddleware(handler)
	wrapped(w, req, nil)
	wrapped(w, req, nil)
	assert.Equal(t, uint64(2), num)
	assert.Equal(t, uint64(2), api.stats.called)
}

// TestRequestIDMiddleware ensures the request id is set in both the context and the response header.
func TestRequestIDMiddleware(t *testing.T) {
	api := newTestAPIHandler(t, nil, nil)
	req := httptest.NewRequest("GET", "/v1/books", nil)
	w := httptest.NewRecorder()
	var id string
	handler := func(w http.ResponseWriter, req *http.Request, ps httprouter.Params) {
		id = GetValueFromContext(req.Context(), RequestIDContextKey)
	}
	api.RequestIDMiddleware(handler)(w, req, nil)
	assert.Equal(t, "r:abc", id)
	assert.Equal(t, "r:abc", w.Header().Get("X-Request-ID"))
}

// TestCORSMiddleware ensures cors headers are applied.
func TestCORSMiddleware(t *testing.T) {
	req := httptest.NewRequest("OPTIONS", "/v1/books", nil)
	w := httptest.NewRecorder()
	CORSMiddleware(func(w http.ResponseWriter, req *http.Request, ps httprouter.Params) {})(w, req, nil)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "DELETE")
}

// TestCoreMiddleware ensures the status code stats are recorded and a
// request scoped logger is available to the handler.
func TestCoreMiddleware(t *testing.T) {
	api := newTestAPIHandler(t, nil, nil)
	var logger *zap.Logger
	handler := func(w http.ResponseWriter, req *http.Request, ps httprouter.Params) {
		logger, _ = req.Context().Value(LoggerContextKey).(*zap.Logger)
		w.WriteHeader(http.StatusTeapot)
	}
	req := httptest.NewRequest("GET", "/v1/books", nil)
	req = req.WithContext(context.WithValue(req.Context(), RequestIDContextKey, "r:abc"))
	w := httptest.NewRecorder()
	api.CoreMiddleware(handler)(w, req, nil)

	require.NotNil(t, logger)
	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Equal(t, uint64(1), api.stats.status[http.StatusTeapot])
}

// TestPanicRecoveryMiddleware ensures a panicking handler results in a 500 json response.
func TestPanicRecoveryMiddleware(t *testing.T) {
	api := newTestAPIHandler(t, nil, nil)
	handler := func(w http.ResponseWriter, req *http.Request, ps httprouter.Params) {
		panic("boom")
	}
	req := httptest.NewRequest("GET", "/v1/books", nil)
	w := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		api.PanicRecoveryMiddleware(handler)(w, req, nil)
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "failed to process the request.")
}
