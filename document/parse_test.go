package document

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staxtools/stax/staxerrors"
)

func TestParse(t *testing.T) {
	t.Run("simple mapping", func(t *testing.T) {
		doc, err := Parse([]byte("kind: ConfigMap\nmetadata:\n  name: app-config\ndata:\n  PORT: \"8080\"\n"))
		require.NoError(t, err)

		assert.Equal(t, "ConfigMap", doc.Kind())
		assert.Equal(t, "app-config", doc.Name())
		assert.Equal(t, "8080", doc.Root().GetPath("data", "PORT").StringValue())
	})

	t.Run("field order is preserved", func(t *testing.T) {
		doc, err := Parse([]byte("zebra: 1\napple: 2\nmango: 3\nkind: X\n"))
		require.NoError(t, err)
		assert.Equal(t, []string{"zebra", "apple", "mango", "kind"}, doc.Root().Keys())
	})

	t.Run("scalar tags are resolved", func(t *testing.T) {
		doc, err := Parse([]byte("s: hello\ni: 42\nf: 1.5\nb: true\nn: null\nqs: \"42\"\n"))
		require.NoError(t, err)

		root := doc.Root()
		assert.Equal(t, TagString, root.Get("s").Tag)
		assert.Equal(t, TagInt, root.Get("i").Tag)
		assert.Equal(t, TagFloat, root.Get("f").Tag)
		assert.Equal(t, TagBool, root.Get("b").Tag)
		assert.Equal(t, TagNull, root.Get("n").Tag)
		assert.Equal(t, TagString, root.Get("qs").Tag, "quoted numbers stay strings")
		assert.Equal(t, "42", root.Get("qs").Value)
	})

	t.Run("source positions are recorded", func(t *testing.T) {
		doc, err := Parse([]byte("kind: ConfigMap\nmetadata:\n  name: cfg\n"))
		require.NoError(t, err)

		name := doc.Root().GetPath("metadata", "name")
		assert.Equal(t, 3, name.Line)
		assert.Greater(t, name.Column, 0)
	})

	t.Run("malformed YAML", func(t *testing.T) {
		_, err := Parse([]byte("kind: [unclosed\n"))
		require.Error(t, err)
		assert.ErrorIs(t, err, staxerrors.ErrFormat)
	})

	t.Run("non-mapping root", func(t *testing.T) {
		tests := []struct {
			name  string
			input string
		}{
			{"scalar root", "just a string\n"},
			{"sequence root", "- a\n- b\n"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := Parse([]byte(tt.input))
				require.Error(t, err)
				assert.ErrorIs(t, err, staxerrors.ErrFormat)

				var fmtErr *staxerrors.FormatError
				require.ErrorAs(t, err, &fmtErr)
				assert.Contains(t, fmtErr.Message, "document root must be a mapping")
			})
		}
	})

	t.Run("duplicate top-level key", func(t *testing.T) {
		_, err := Parse([]byte("kind: A\nname: x\nkind: B\n"))
		require.Error(t, err)
		assert.ErrorIs(t, err, staxerrors.ErrFormat)

		var fmtErr *staxerrors.FormatError
		require.ErrorAs(t, err, &fmtErr)
		assert.Contains(t, fmtErr.Message, `duplicate mapping key "kind"`)
		assert.Equal(t, 3, fmtErr.Line)
	})

	t.Run("duplicate nested key", func(t *testing.T) {
		_, err := Parse([]byte("kind: A\nmetadata:\n  name: x\n  name: y\n"))
		require.Error(t, err)

		var fmtErr *staxerrors.FormatError
		require.ErrorAs(t, err, &fmtErr)
		assert.Contains(t, fmtErr.Message, `duplicate mapping key "name"`)
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := Parse([]byte(""))
		require.Error(t, err)

		var fmtErr *staxerrors.FormatError
		require.ErrorAs(t, err, &fmtErr)
		assert.Contains(t, fmtErr.Message, "no documents found")
	})

	t.Run("multiple documents rejected", func(t *testing.T) {
		_, err := Parse([]byte("kind: A\n---\nkind: B\n"))
		require.Error(t, err)

		var fmtErr *staxerrors.FormatError
		require.ErrorAs(t, err, &fmtErr)
		assert.Contains(t, fmtErr.Message, "expected a single document, found 2")
	})

	t.Run("alias expansion", func(t *testing.T) {
		doc, err := Parse([]byte("defaults: &d\n  replicas: 2\nkind: X\nspec: *d\n"))
		require.NoError(t, err)

		spec := doc.Root().Get("spec")
		require.True(t, spec.IsMapping())
		assert.Equal(t, "2", spec.Get("replicas").StringValue())

		// The expansion is a copy, not a shared subtree.
		spec.Set("replicas", IntNode(9))
		assert.Equal(t, "2", doc.Root().GetPath("defaults", "replicas").StringValue())
	})
}

func TestParseAll(t *testing.T) {
	t.Run("multi-document stream", func(t *testing.T) {
		docs, err := ParseAll([]byte("kind: A\nmetadata: {name: one}\n---\nkind: B\nmetadata: {name: two}\n"))
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, "A", docs[0].Kind())
		assert.Equal(t, "B", docs[1].Kind())
	})

	t.Run("empty documents skipped", func(t *testing.T) {
		docs, err := ParseAll([]byte("---\nkind: A\nmetadata: {name: one}\n---\n---\nkind: B\nmetadata: {name: two}\n---\n"))
		require.NoError(t, err)
		assert.Len(t, docs, 2)
	})

	t.Run("empty stream", func(t *testing.T) {
		docs, err := ParseAll([]byte(""))
		require.NoError(t, err)
		assert.Empty(t, docs)
	})

	t.Run("error in later document aborts", func(t *testing.T) {
		_, err := ParseAll([]byte("kind: A\nmetadata: {name: one}\n---\n- not\n- a\n- mapping\n"))
		require.Error(t, err)
		assert.ErrorIs(t, err, staxerrors.ErrFormat)
	})
}

func TestDecoderDepthLimit(t *testing.T) {
	t.Run("nesting beyond the limit", func(t *testing.T) {
		var b strings.Builder
		b.WriteString("kind: X\n")
		for i := 0; i < 10; i++ {
			b.WriteString(strings.Repeat("  ", i))
			b.WriteString("a:\n")
		}
		b.WriteString(strings.Repeat("  ", 10))
		b.WriteString("leaf: 1\n")

		d := NewDecoder()
		d.MaxDepth = 5
		_, err := d.DecodeAll([]byte(b.String()))
		require.Error(t, err)
		assert.ErrorIs(t, err, staxerrors.ErrDepthLimit)

		var depthErr *staxerrors.DepthLimitError
		require.ErrorAs(t, err, &depthErr)
		assert.Equal(t, 5, depthErr.Limit)
	})

	t.Run("nesting within the limit", func(t *testing.T) {
		d := NewDecoder()
		d.MaxDepth = 5
		_, err := d.DecodeAll([]byte("kind: X\na:\n  b:\n    c: 1\n"))
		assert.NoError(t, err)
	})

	t.Run("default limit accepts realistic documents", func(t *testing.T) {
		_, err := Parse([]byte("kind: Deployment\nmetadata:\n  name: web\nspec:\n  template:\n    metadata:\n      labels:\n        app: web\n"))
		assert.NoError(t, err)
	})
}

func TestParseFile(t *testing.T) {
	t.Run("reads and labels documents", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "base.yaml")
		require.NoError(t, os.WriteFile(path, []byte("kind: A\nmetadata: {name: one}\n---\nkind: B\nmetadata: {name: two}\n"), 0o600))

		docs, err := ParseFile(path)
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, path, docs[0].Source)
		assert.Equal(t, path, docs[1].Source)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ParseFile(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read file")
	})

	t.Run("parse errors carry the file as source", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("kind: A\nkind: B\nmetadata: {name: x}\n"), 0o600))

		_, err := ParseFile(path)
		require.Error(t, err)

		var fmtErr *staxerrors.FormatError
		require.ErrorAs(t, err, &fmtErr)
		assert.Equal(t, path, fmtErr.Source)
	})
}
