package mcpserver

import (
	"fmt"

	"github.com/staxtools/stax/compose"
	"github.com/staxtools/stax/document"
)

// sourceInput represents the two ways YAML input can be provided to a tool.
// Exactly one of File or Content must be set.
type sourceInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a YAML file on disk"`
	Content string `json:"content,omitempty" jsonschema:"Inline YAML content (may hold multiple documents)"`
}

// check verifies that exactly one input form is set and that inline content
// stays under the configured size limit.
func (s sourceInput) check() error {
	count := 0
	if s.File != "" {
		count++
	}
	if s.Content != "" {
		count++
	}
	if count != 1 {
		return fmt.Errorf("exactly one of file or content must be provided (got %d)", count)
	}
	if s.Content != "" && int64(len(s.Content)) > cfg.MaxInlineSize {
		return fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set STAX_MAX_INLINE_SIZE to increase",
			len(s.Content), cfg.MaxInlineSize)
	}
	return nil
}

// resolveDocs parses the input as a document set.
func (s sourceInput) resolveDocs() ([]*document.Document, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	if s.File != "" {
		return document.ParseFile(s.File)
	}
	return document.ParseAll([]byte(s.Content))
}

// resolveDoc parses the input as a single document, rejecting multi-document
// streams.
func (s sourceInput) resolveDoc() (*document.Document, error) {
	docs, err := s.resolveDocs()
	if err != nil {
		return nil, err
	}
	if len(docs) != 1 {
		return nil, fmt.Errorf("input must contain exactly one document (got %d)", len(docs))
	}
	return docs[0], nil
}

// resolveLayer parses the input as a layer. File input supports patchFiles
// references; inline content does not, since there is no directory to
// resolve them against.
func (s sourceInput) resolveLayer() (*compose.Layer, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	if s.File != "" {
		return compose.ParseLayerFile(s.File)
	}
	return compose.ParseLayer([]byte(s.Content))
}
