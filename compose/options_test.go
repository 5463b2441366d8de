package compose

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staxtools/stax/staxerrors"
	"github.com/staxtools/stax/transform"
)

func TestApplyOptions(t *testing.T) {
	tests := []struct {
		name    string
		opts    []Option
		wantErr string
	}{
		{
			name:    "no base source",
			opts:    []Option{WithLayerParsed(&Layer{})},
			wantErr: "must specify a base source",
		},
		{
			name: "two base sources",
			opts: []Option{
				WithBaseFile("base.yaml"),
				WithBaseParsed(nil),
				WithLayerParsed(&Layer{}),
			},
			wantErr: "exactly one base source",
		},
		{
			name:    "no layer source",
			opts:    []Option{WithBaseParsed(nil)},
			wantErr: "must specify a layer source",
		},
		{
			name: "two layer sources",
			opts: []Option{
				WithBaseParsed(nil),
				WithLayerFile("layer.yaml"),
				WithLayerParsed(&Layer{}),
			},
			wantErr: "exactly one layer source",
		},
		{
			name:    "empty base path",
			opts:    []Option{WithBaseFile("")},
			wantErr: "path cannot be empty",
		},
		{
			name:    "empty layer path",
			opts:    []Option{WithLayerFile("")},
			wantErr: "path cannot be empty",
		},
		{
			name:    "nil parsed layer",
			opts:    []Option{WithLayerParsed(nil)},
			wantErr: "layer cannot be nil",
		},
		{
			name:    "nil logger",
			opts:    []Option{WithLogger(nil)},
			wantErr: "logger cannot be nil",
		},
		{
			name:    "non-positive depth",
			opts:    []Option{WithMaxDepth(0)},
			wantErr: "depth must be positive",
		},
		{
			name:    "empty sequence merge key",
			opts:    []Option{WithSequenceMergeKey("")},
			wantErr: "key cannot be empty",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := applyOptions(tt.opts...)
			require.ErrorIs(t, err, staxerrors.ErrConfig)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	t.Run("valid combination", func(t *testing.T) {
		cfg, err := applyOptions(
			WithBaseParsed(nil),
			WithLayerParsed(&Layer{}),
			WithMaxDepth(50),
			WithSequenceMergeKey("id"),
			WithLogger(NopLogger{}),
		)
		require.NoError(t, err)
		assert.Equal(t, 50, cfg.maxDepth)
		assert.Equal(t, "id", cfg.sequenceMergeKey)
		assert.NotNil(t, cfg.logger)
	})
}

func TestComposeWithOptions(t *testing.T) {
	writeFile := func(t *testing.T, path, content string) {
		t.Helper()
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	t.Run("file inputs", func(t *testing.T) {
		dir := t.TempDir()
		basePath := filepath.Join(dir, "base.yaml")
		layerPath := filepath.Join(dir, "layer.yaml")
		writeFile(t, basePath, baseConfigMap+"---\n"+baseDeployment)
		writeFile(t, layerPath, `layer: production
transforms:
  - kind: AddCommonLabel
    key: stage
    value: prod
patchFiles:
  - patches/web.yaml
`)
		writeFile(t, filepath.Join(dir, "patches", "web.yaml"), `kind: Deployment
metadata:
  name: web
spec:
  replicas: 5
`)

		res, err := ComposeWithOptions(
			WithBaseFile(basePath),
			WithLayerFile(layerPath),
		)
		require.NoError(t, err)
		require.Len(t, res.Documents, 2)

		assert.Equal(t, "5", res.Documents[1].Root().GetPath("spec", "replicas").Value)
		stage := res.Documents[1].Root().GetPath("metadata", "labels", "stage")
		require.NotNil(t, stage)
		assert.Equal(t, "prod", stage.StringValue())
		assert.Equal(t, Stats{BaseCount: 2, PatchedCount: 1, TransformCount: 1}, res.Stats)
	})

	t.Run("base files accumulate in order", func(t *testing.T) {
		dir := t.TempDir()
		cmPath := filepath.Join(dir, "cm.yaml")
		deployPath := filepath.Join(dir, "deploy.yaml")
		writeFile(t, cmPath, baseConfigMap)
		writeFile(t, deployPath, baseDeployment)

		res, err := ComposeWithOptions(
			WithBaseFile(cmPath),
			WithBaseFile(deployPath),
			WithLayerParsed(&Layer{}),
		)
		require.NoError(t, err)
		require.Len(t, res.Documents, 2)
		assert.Equal(t, "cfg", res.Documents[0].Name())
		assert.Equal(t, "web", res.Documents[1].Name())
	})

	t.Run("parsed inputs", func(t *testing.T) {
		base := mustParseAll(t, baseConfigMap)
		layer := &Layer{Transforms: []transform.Spec{
			{Kind: transform.SetNameSuffix, Value: "-v2"},
		}}

		res, err := ComposeWithOptions(
			WithBaseParsed(base),
			WithLayerParsed(layer),
		)
		require.NoError(t, err)
		assert.Equal(t, "cfg-v2", res.Documents[0].Name())
	})

	t.Run("max depth reaches the merge engine", func(t *testing.T) {
		deep := `kind: ConfigMap
metadata:
  name: cfg
data:
  a:
    b:
      c:
        d: deep
`
		_, err := ComposeWithOptions(
			WithBaseParsed(mustParseAll(t, deep)),
			WithLayerParsed(&Layer{Patches: patches(mustDoc(t, deep))}),
			WithMaxDepth(3),
		)
		assert.ErrorIs(t, err, staxerrors.ErrDepthLimit)
	})

	t.Run("logger reaches the composer", func(t *testing.T) {
		var buf bytes.Buffer
		handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})

		_, err := ComposeWithOptions(
			WithBaseParsed(mustParseAll(t, baseConfigMap)),
			WithLayerParsed(&Layer{Name: "staging"}),
			WithLogger(NewSlogAdapter(slog.New(handler))),
		)
		require.NoError(t, err)
		assert.True(t, strings.Contains(buf.String(), "layer=staging"), "log output: %s", buf.String())
	})

	t.Run("invalid options abort before any work", func(t *testing.T) {
		res, err := ComposeWithOptions(WithLayerParsed(&Layer{}))
		assert.Nil(t, res)
		assert.ErrorIs(t, err, staxerrors.ErrConfig)
	})

	t.Run("unreadable base file", func(t *testing.T) {
		_, err := ComposeWithOptions(
			WithBaseFile(filepath.Join(t.TempDir(), "absent.yaml")),
			WithLayerParsed(&Layer{}),
		)
		require.Error(t, err)
	})
}

func TestDryRunWithOptions(t *testing.T) {
	t.Run("previews parsed inputs", func(t *testing.T) {
		base := mustParseAll(t, baseConfigMap)
		layer := &Layer{Patches: patches(
			mustDoc(t, "kind: ConfigMap\nmetadata:\n  name: cfg\ndata:\n  retries: \"5\"\n"),
			mustDoc(t, "kind: Secret\nmetadata:\n  name: tls\n"),
		)}

		preview, err := DryRunWithOptions(
			WithBaseParsed(base),
			WithLayerParsed(layer),
		)
		require.NoError(t, err)
		assert.Equal(t, 1, preview.WouldMerge)
		assert.Equal(t, 1, preview.WouldAdd)
	})

	t.Run("invalid options rejected", func(t *testing.T) {
		preview, err := DryRunWithOptions(WithBaseParsed(nil))
		assert.Nil(t, preview)
		assert.ErrorIs(t, err, staxerrors.ErrConfig)
	})
}
