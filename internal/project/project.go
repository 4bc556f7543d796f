// Package project loads and saves unstruct project documents.
package project

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"

	"gitlab.com/tozd/go/errors"

	"unstruct/internal/layout"
)

// ErrBadPointerWidth rejects pointer widths other than 4 and 8.
var ErrBadPointerWidth = errors.New("project: pointer width must be 4 or 8")

// Document is one saved reversing project: a flat node list plus the
// metadata needed to regenerate its headers.
type Document struct {
	Name         string        `json:"name,omitempty"`
	PointerWidth int           `json:"pointer_width,omitempty"`
	Nodes        []layout.Node `json:"nodes"`
}

// Load reads and parses a project document from path.
func Load(ctx context.Context, path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading project: %w", err)
	}

	doc := &Document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, errors.Errorf("parsing project: %w", err)
	}
	if err := checkPointerWidth(doc.PointerWidth); err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "loaded project",
		"path", path, "name", doc.Name, "nodes", len(doc.Nodes))
	return doc, nil
}

// Save writes the document to path as indented JSON.
func (d *Document) Save(path string) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return errors.Errorf("marshalling project: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Errorf("writing project: %w", err)
	}
	return nil
}

// Tree validates the document's nodes and indexes them.
func (d *Document) Tree() (*layout.Tree, error) {
	t, err := layout.NewTree(d.Nodes)
	if err != nil {
		return nil, errors.Errorf("building node tree: %w", err)
	}
	return t, nil
}

func checkPointerWidth(w int) error {
	if w != 0 && w != 4 && w != 8 {
		return errors.Errorf("%w: %d", ErrBadPointerWidth, w)
	}
	return nil
}
