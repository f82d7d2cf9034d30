package main

import (
	"github.com/gofrs/uuid"
)

var _ UIDHandler = (*IDsHandler)(nil)

// UIDHandler is an interface for getting a prefixed uid.
type UIDHandler interface {
	Generate(prefix string) string
}

// IDsHandler builds request ids from time ordered uuids so that
// ids sort like the log lines they are attached to.
type IDsHandler struct {
	gen uuid.Generator
}

// NewIDsHandler returns an IDsHandler backed by the package default generator.
func NewIDsHandler() *IDsHandler {
	return &IDsHandler{gen: uuid.DefaultGenerator}
}

// Generate returns `<prefix>:<uuid>`. It falls back to a random v4
// when the v7 generator fails.
func (idh *IDsHandler) Generate(prefix string) string {
	id, err := idh.gen.NewV7()
	if err != nil {
		id, _ = idh.gen.NewV4()
	}
	return prefix + ":" + id.String()
}
