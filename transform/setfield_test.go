package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staxtools/stax/document"
)

func TestSetField(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		spec      Spec
		wantPath  []string
		wantTag   string
		wantValue string
		wantWarn  string
	}{
		{
			name: "overwrite existing scalar",
			yaml: "kind: Deployment\nmetadata:\n  name: web\nspec:\n  replicas: 2",
			spec: Spec{Kind: SetField, Path: "spec.replicas", Value: 10},

			wantPath:  []string{"spec", "replicas"},
			wantTag:   document.TagInt,
			wantValue: "10",
		},
		{
			name: "create missing final segment",
			yaml: "kind: Deployment\nmetadata:\n  name: web\nspec:\n  replicas: 2",
			spec: Spec{Kind: SetField, Path: "spec.strategy", Value: "Recreate"},

			wantPath:  []string{"spec", "strategy"},
			wantTag:   document.TagString,
			wantValue: "Recreate",
		},
		{
			name: "bracket quoted key",
			yaml: "kind: ConfigMap\nmetadata:\n  name: cfg\ndata:\n  app.properties: old",
			spec: Spec{Kind: SetField, Path: "data['app.properties']", Value: "new"},

			wantPath:  []string{"data", "app.properties"},
			wantTag:   document.TagString,
			wantValue: "new",
		},
		{
			name: "boolean value",
			yaml: "kind: Deployment\nmetadata:\n  name: web\nspec:\n  paused: false",
			spec: Spec{Kind: SetField, Path: "spec.paused", Value: true},

			wantPath:  []string{"spec", "paused"},
			wantTag:   document.TagBool,
			wantValue: "true",
		},
		{
			name: "null value",
			yaml: "kind: Deployment\nmetadata:\n  name: web\nspec:\n  replicas: 2",
			spec: Spec{Kind: SetField, Path: "spec.replicas", Value: nil},

			wantPath:  []string{"spec", "replicas"},
			wantTag:   document.TagNull,
			wantValue: "null",
		},
		{
			name: "missing intermediate mapping skips the document",
			yaml: "kind: ConfigMap\nmetadata:\n  name: cfg\ndata:\n  LOG_LEVEL: info",
			spec: Spec{Kind: SetField, Path: "spec.replicas", Value: 10},

			wantWarn: "spec",
		},
		{
			name: "scalar intermediate skips the document",
			yaml: "kind: Broken\nmetadata:\n  name: b\nspec: just-a-string",
			spec: Spec{Kind: SetField, Path: "spec.replicas", Value: 10},

			wantWarn: "spec",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustDoc(t, tt.yaml)

			_, warnings, err := Apply(docs(doc), []Spec{tt.spec})
			require.NoError(t, err)

			if tt.wantWarn != "" {
				require.Len(t, warnings, 1)
				assert.Equal(t, WarnPathNotFound, warnings[0].Category)
				assert.Contains(t, warnings[0].Message, tt.wantWarn)
				assert.True(t, doc.Equal(mustDoc(t, tt.yaml)), "skipped document must not change")
				return
			}

			require.Empty(t, warnings)
			node := doc.Root().GetPath(tt.wantPath...)
			require.True(t, node.IsScalar())
			assert.Equal(t, tt.wantTag, node.Tag)
			assert.Equal(t, tt.wantValue, node.Value)
		})
	}
}

func TestSetFieldScope(t *testing.T) {
	api := mustDoc(t, "kind: Deployment\nmetadata:\n  name: api\nspec:\n  replicas: 1")
	web := mustDoc(t, "kind: Deployment\nmetadata:\n  name: web\nspec:\n  replicas: 1")
	specs := []Spec{{
		Kind:  SetField,
		Path:  "spec.replicas",
		Value: 5,
		Scope: &Scope{Names: []string{"web"}},
	}}

	_, warnings, err := Apply(docs(api, web), specs)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Equal(t, "1", api.Root().GetPath("spec", "replicas").Value)
	assert.Equal(t, "5", web.Root().GetPath("spec", "replicas").Value)
}

func TestSetFieldWarningUsesCanonicalPath(t *testing.T) {
	doc := mustDoc(t, configMapYAML)
	specs := []Spec{{Kind: SetField, Path: "spec['replicas']", Value: 3}}

	_, warnings, err := Apply(docs(doc), specs)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Equal(t, "spec.replicas", warnings[0].Path)
}
