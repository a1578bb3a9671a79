package deckio

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/abhisek/memoriz/internal/deck"
)

// ErrInvalidDocument is returned for any deck document that fails the
// structural schema or the semantic invariant checks. The document is
// rejected whole; no partial deck is ever produced.
var ErrInvalidDocument = errors.New("deckio: invalid deck document")

var (
	schemaOnce     sync.Once
	schemaCompiled *jsonschema.Schema
	schemaErr      error
)

// Marshal serializes a deck as an indented document, the format written
// by export and accepted by import.
func Marshal(d *deck.Deck) ([]byte, error) {
	b, err := json.MarshalIndent(Encode(d), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal deck document: %w", err)
	}
	return b, nil
}

// Unmarshal parses and fully validates a deck document: JSON shape
// against the schema first, then every engine invariant via
// deck.Validate. Any failure reports ErrInvalidDocument.
func Unmarshal(data []byte) (*deck.Deck, error) {
	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	schema, err := compiledSchema()
	if err != nil {
		return nil, fmt.Errorf("compile deck document schema: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return doc.Decode()
}

// compiledSchema compiles documentSchema once and caches it. The
// jsonschema compiler wants a parsed JSON value, so the definition is
// marshaled and re-parsed before being added as a resource.
func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		b, err := json.Marshal(documentSchema)
		if err != nil {
			schemaErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var parsed any
		if err := json.Unmarshal(b, &parsed); err != nil {
			schemaErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://deck-document.json", parsed); err != nil {
			schemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		schemaCompiled, schemaErr = c.Compile("schema://deck-document.json")
	})
	return schemaCompiled, schemaErr
}
