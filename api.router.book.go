package main

import (
	"github.com/julienschmidt/httprouter"
)

// SetupBookRoutes injects catalog related api endpoints.
func (api *APIHandler) SetupBookRoutes(router *httprouter.Router, m *MiddlewareMap) *httprouter.Router {
	router.GET("/", m.public(api.Index))
	router.GET("/status", m.public(api.Status))

	router.POST("/v1/books", m.public(api.CreateBook))
	router.GET("/v1/books", m.public(api.GetAllBooks))
	router.GET("/v1/books/:index", m.public(api.GetOneBook))
	router.DELETE("/v1/books/:index", m.public(api.DeleteOneBook))

	router.GET("/v1/selection", m.public(api.GetSelection))
	router.PUT("/v1/selection/:index", m.public(api.SelectBook))
	router.DELETE("/v1/selection", m.public(api.ClearSelection))
	router.DELETE("/v1/selection/book", m.public(api.DeleteSelectedBook))

	router.GET("/v1/search", m.public(api.SearchBooks))

	router.POST("/v1/exports/csv", m.public(api.ExportCSV))
	router.POST("/v1/exports/report", m.public(api.ExportReport))
	router.POST("/v1/exports/pdf", m.public(api.ExportPDF))
	return router
}
