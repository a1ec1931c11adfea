package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/amterp/swatch/internal/config"
	swerr "github.com/amterp/swatch/internal/errors"
	"github.com/amterp/swatch/internal/model"
	"github.com/amterp/swatch/internal/version"
)

// FileDocumentStore implements DocumentStore using the filesystem.
// Relative paths resolve against the project root.
type FileDocumentStore struct {
	paths *config.Paths
}

// NewDocumentStore creates a new document store.
func NewDocumentStore(paths *config.Paths) *FileDocumentStore {
	return &FileDocumentStore{paths: paths}
}

// SavePalette writes doc to path in the format its extension names.
func (s *FileDocumentStore) SavePalette(path string, doc *model.Document) error {
	codec, err := CodecFor(path)
	if err != nil {
		return err
	}
	full := s.paths.Resolve(path)

	// Stamp current schema version
	doc.Schema = version.CurrentPaletteSchema()

	data, err := codec.Encode(doc)
	if err != nil {
		return fmt.Errorf("failed to encode palette as %s: %w", codec.Name(), err)
	}
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(full, data, 0644); err != nil {
		return fmt.Errorf("failed to write palette file: %w", err)
	}
	return nil
}

// LoadPalette reads and decodes the document at path. Structural checks are
// left to palette.FromDocument.
func (s *FileDocumentStore) LoadPalette(path string) (*model.Document, error) {
	codec, err := CodecFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.paths.Resolve(path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, swerr.FileNotFound(path)
		}
		return nil, fmt.Errorf("failed to read palette file: %w", err)
	}
	doc, err := codec.Decode(data)
	if err != nil {
		return nil, &swerr.SerializationError{Path: path, Message: "invalid " + codec.Name(), Err: err}
	}
	return doc, nil
}
