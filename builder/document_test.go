package builder

import (
	"errors"
	"testing"

	"github.com/staxtools/stax/document"
	"github.com/staxtools/stax/staxerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDocument(t *testing.T) {
	doc, err := NewDocument("Deployment", "web").Build()
	require.NoError(t, err)

	assert.Equal(t, "Deployment", doc.Kind())
	assert.Equal(t, "web", doc.Name())
	assert.Equal(t, []string{"kind", "metadata"}, doc.Root().Keys())
}

func TestDocumentBuilder_APIVersion(t *testing.T) {
	t.Run("sets the field", func(t *testing.T) {
		doc, err := NewDocument("Deployment", "web").
			APIVersion("apps/v1").
			Build()
		require.NoError(t, err)

		assert.Equal(t, "apps/v1", doc.APIVersion())
	})

	t.Run("empty version is an error", func(t *testing.T) {
		_, err := NewDocument("Deployment", "web").
			APIVersion("").
			Build()
		require.Error(t, err)
		assert.ErrorIs(t, err, staxerrors.ErrConfig)
		assert.Contains(t, err.Error(), "apiVersion")
	})
}

func TestDocumentBuilder_LabelAnnotation(t *testing.T) {
	t.Run("labels and annotations", func(t *testing.T) {
		doc, err := NewDocument("Deployment", "web").
			Label("app", "web").
			Label("stage", "prod").
			Annotation("team", "platform").
			Build()
		require.NoError(t, err)

		labels := doc.Root().GetPath("metadata", "labels")
		require.NotNil(t, labels)
		assert.Equal(t, []string{"app", "stage"}, labels.Keys())
		assert.Equal(t, "web", labels.Get("app").StringValue())
		assert.Equal(t, "platform",
			doc.Root().GetPath("metadata", "annotations", "team").StringValue())
	})

	t.Run("repeated key overwrites", func(t *testing.T) {
		doc, err := NewDocument("Deployment", "web").
			Label("stage", "dev").
			Label("stage", "prod").
			Build()
		require.NoError(t, err)

		labels := doc.Root().GetPath("metadata", "labels")
		assert.Equal(t, []string{"stage"}, labels.Keys())
		assert.Equal(t, "prod", labels.Get("stage").StringValue())
	})

	t.Run("empty key is an error", func(t *testing.T) {
		_, err := NewDocument("Deployment", "web").
			Label("", "web").
			Build()
		require.Error(t, err)
		assert.ErrorIs(t, err, staxerrors.ErrConfig)
		assert.Contains(t, err.Error(), "metadata.labels")
	})

	t.Run("non-mapping labels field is an error", func(t *testing.T) {
		_, err := NewDocument("Deployment", "web").
			Field("metadata.labels", "oops").
			Label("app", "web").
			Build()
		require.Error(t, err)
		assert.ErrorIs(t, err, staxerrors.ErrConfig)
		assert.Contains(t, err.Error(), "not a mapping")
	})
}

func TestDocumentBuilder_Field(t *testing.T) {
	t.Run("creates intermediate mappings", func(t *testing.T) {
		doc, err := NewDocument("Deployment", "web").
			Field("spec.replicas", 3).
			Field("spec.strategy.type", "RollingUpdate").
			Build()
		require.NoError(t, err)

		replicas := doc.Root().GetPath("spec", "replicas")
		require.NotNil(t, replicas)
		assert.Equal(t, "3", replicas.Value)
		assert.Equal(t, "RollingUpdate",
			doc.Root().GetPath("spec", "strategy", "type").StringValue())
	})

	t.Run("scalar types", func(t *testing.T) {
		doc, err := NewDocument("ConfigMap", "cfg").
			Field("data.enabled", true).
			Field("data.ratio", 0.5).
			Field("data.max", int64(9000)).
			Field("data.note", nil).
			Build()
		require.NoError(t, err)

		data := doc.Root().Get("data")
		assert.Equal(t, "true", data.Get("enabled").Value)
		assert.Equal(t, "0.5", data.Get("ratio").Value)
		assert.Equal(t, "9000", data.Get("max").Value)
		assert.True(t, data.Get("note").IsNull())
	})

	t.Run("unsupported value type is an error", func(t *testing.T) {
		_, err := NewDocument("ConfigMap", "cfg").
			Field("data.bad", []string{"a"}).
			Build()
		require.Error(t, err)
		assert.ErrorIs(t, err, staxerrors.ErrConfig)
		assert.Contains(t, err.Error(), "unsupported field value")
	})

	t.Run("invalid path is an error", func(t *testing.T) {
		_, err := NewDocument("ConfigMap", "cfg").
			Field("data..bad", "x").
			Build()
		require.Error(t, err)
		assert.ErrorIs(t, err, staxerrors.ErrConfig)
		assert.Contains(t, err.Error(), "invalid field path")
	})

	t.Run("path through a scalar is an error", func(t *testing.T) {
		_, err := NewDocument("ConfigMap", "cfg").
			Field("data.level", "high").
			Field("data.level.sub", "x").
			Build()
		require.Error(t, err)
		assert.ErrorIs(t, err, staxerrors.ErrConfig)
		assert.Contains(t, err.Error(), "cannot create field path")
	})
}

func TestDocumentBuilder_FieldNode(t *testing.T) {
	t.Run("sets a sequence", func(t *testing.T) {
		ports := document.SequenceNode(document.IntNode(80), document.IntNode(443))
		doc, err := NewDocument("Service", "web").
			FieldNode("spec.ports", ports).
			Build()
		require.NoError(t, err)

		got := doc.Root().GetPath("spec", "ports")
		require.NotNil(t, got)
		require.True(t, got.IsSequence())
		require.Len(t, got.Items, 2)
		assert.Equal(t, "80", got.Items[0].Value)
	})

	t.Run("nil node is an error", func(t *testing.T) {
		_, err := NewDocument("Service", "web").
			FieldNode("spec.ports", nil).
			Build()
		require.Error(t, err)
		assert.ErrorIs(t, err, staxerrors.ErrConfig)
	})
}

func TestDocumentBuilder_Build(t *testing.T) {
	t.Run("accumulated errors surface together", func(t *testing.T) {
		_, err := NewDocument("", "").Build()
		require.Error(t, err)

		var buildErrs BuildErrors
		require.True(t, errors.As(err, &buildErrs))
		require.Len(t, buildErrs, 2)
		assert.Contains(t, err.Error(), "builder: 2 error(s):")
		assert.Contains(t, err.Error(), "kind cannot be empty")
		assert.Contains(t, err.Error(), "name cannot be empty")
	})

	t.Run("identity must still resolve at build time", func(t *testing.T) {
		_, err := NewDocument("ConfigMap", "cfg").
			Field("kind", nil).
			Build()
		require.Error(t, err)
		assert.ErrorIs(t, err, staxerrors.ErrIdentity)
	})

	t.Run("builder stays usable after Build", func(t *testing.T) {
		b := NewDocument("Deployment", "web")

		first, err := b.Build()
		require.NoError(t, err)

		second, err := b.Label("stage", "prod").Build()
		require.NoError(t, err)

		assert.Nil(t, first.Root().GetPath("metadata", "labels"),
			"earlier build should not see later mutation")
		assert.Equal(t, "prod",
			second.Root().GetPath("metadata", "labels", "stage").StringValue())
	})

	t.Run("built document is independent of the builder", func(t *testing.T) {
		b := NewDocument("Deployment", "web")
		doc, err := b.Build()
		require.NoError(t, err)

		b.Field("spec.replicas", 9)
		assert.Nil(t, doc.Root().GetPath("spec", "replicas"))
	})
}
