// Package storage persists mod documents. The mod id is the identity
// key: saving under an existing id replaces the stored document.
//
// Three backends are provided: a JSON file tree for local use, MongoDB
// for server deployments, and an in-memory store for tests.
package storage

import (
	"context"

	"github.com/Phlair/civ7-modding-tools-sub000/pkg/document"
	"github.com/Phlair/civ7-modding-tools-sub000/pkg/errors"
)

// Store persists mod documents keyed by mod id.
// Implementations are safe for concurrent use.
type Store interface {
	// Load retrieves the document saved under id. Returns an error with
	// code DOCUMENT_NOT_FOUND when nothing is stored under id.
	Load(ctx context.Context, id string) (*document.Store, error)

	// Save stores the document under id, replacing any previous version.
	// Synthetic element keys are stripped from the persisted form.
	Save(ctx context.Context, id string, doc *document.Store) error

	// Delete removes the document saved under id. Deleting a missing id
	// is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the ids of all stored documents.
	List(ctx context.Context) ([]string, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}

func checkID(id string) error {
	if err := errors.ValidateModID(id); err != nil {
		return err
	}
	return nil
}
