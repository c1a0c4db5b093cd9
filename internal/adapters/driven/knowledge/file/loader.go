// Package file loads the fixed knowledge base from a JSON document file.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/custodia-labs/samchat/internal/core/domain"
	"github.com/custodia-labs/samchat/internal/core/ports/driven"
)

// Ensure Loader implements the interface.
var _ driven.KnowledgeSource = (*Loader)(nil)

// Loader reads knowledge-base documents from a JSON file containing an
// array of objects with a "content" field. File order is preserved; the
// ranker breaks ties by it.
type Loader struct {
	path string
}

// NewLoader creates a loader for the given file path.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load reads and parses the document file. Entries with empty content
// are rejected rather than silently skipped: the knowledge base is a
// hand-maintained fixture and a blank entry is a mistake.
func (l *Loader) Load(_ context.Context) ([]domain.Document, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("reading knowledge base: %w", err)
	}

	var entries []struct {
		Content string `json:"content"`
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing knowledge base: %w", err)
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("knowledge base %s is empty", l.path)
	}

	docs := make([]domain.Document, len(entries))
	for i, entry := range entries {
		if strings.TrimSpace(entry.Content) == "" {
			return nil, fmt.Errorf("knowledge base %s: entry %d has empty content", l.path, i)
		}
		docs[i] = domain.Document{Content: entry.Content}
	}

	return docs, nil
}
