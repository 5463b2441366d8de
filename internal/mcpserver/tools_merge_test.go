package mcpserver

import (
	"context"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mergeBase = `kind: Deployment
metadata:
  name: web
spec:
  replicas: 3
  containers:
    - name: app
      image: app:v1
    - name: sidecar
      image: sidecar:v1
`

const mergePatch = `kind: Deployment
metadata:
  name: web
spec:
  replicas: 5
`

func TestMergeTool_Basic(t *testing.T) {
	input := mergeInput{
		Base:  sourceInput{Content: mergeBase},
		Patch: sourceInput{Content: mergePatch},
	}
	_, output, err := handleMerge(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)

	assert.Empty(t, output.Warnings)
	assert.Contains(t, output.Document, "replicas: 5")
	assert.Contains(t, output.Document, "app:v1", "untouched fields should survive")
	assert.Equal(t, "Merged 1 document.", output.Summary)
}

func TestMergeTool_SequenceReplacedByDefault(t *testing.T) {
	input := mergeInput{
		Base: sourceInput{Content: mergeBase},
		Patch: sourceInput{Content: `kind: Deployment
metadata:
  name: web
spec:
  containers:
    - name: app
      image: app:v2
`},
	}
	_, output, err := handleMerge(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)

	assert.Contains(t, output.Document, "app:v2")
	assert.NotContains(t, output.Document, "sidecar", "default strategy replaces the whole sequence")
}

func TestMergeTool_SequenceMergePaths(t *testing.T) {
	input := mergeInput{
		Base: sourceInput{Content: mergeBase},
		Patch: sourceInput{Content: `kind: Deployment
metadata:
  name: web
spec:
  containers:
    - name: app
      image: app:v2
`},
		SequenceMergePaths: map[string]string{"spec.containers": ""},
	}
	_, output, err := handleMerge(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)

	assert.Contains(t, output.Document, "app:v2")
	assert.Contains(t, output.Document, "sidecar:v1", "unmatched elements should survive an identity merge")
}

func TestMergeTool_SequenceMergePaths_CustomKey(t *testing.T) {
	input := mergeInput{
		Base: sourceInput{Content: `kind: ConfigMap
metadata:
  name: cfg
rules:
  - id: allow-http
    action: allow
  - id: deny-all
    action: deny
`},
		Patch: sourceInput{Content: `kind: ConfigMap
metadata:
  name: cfg
rules:
  - id: allow-http
    action: log
`},
		SequenceMergePaths: map[string]string{"rules": "id"},
	}
	_, output, err := handleMerge(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)

	assert.Contains(t, output.Document, "action: log")
	assert.Contains(t, output.Document, "deny-all")
}

func TestMergeTool_TypeConflictWarning(t *testing.T) {
	input := mergeInput{
		Base: sourceInput{Content: `kind: ConfigMap
metadata:
  name: cfg
data:
  LOG_LEVEL: info
`},
		Patch: sourceInput{Content: `kind: ConfigMap
metadata:
  name: cfg
data: plain-string
`},
	}
	_, output, err := handleMerge(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)

	require.Len(t, output.Warnings, 1)
	assert.Contains(t, output.Warnings[0], "data")
	assert.Contains(t, output.Document, "data: plain-string", "patch value wins a type conflict")
	assert.Equal(t, "Merged 1 document with 1 warning.", output.Summary)
}

func TestMergeTool_JSONFormat(t *testing.T) {
	input := mergeInput{
		Base:   sourceInput{Content: mergeBase},
		Patch:  sourceInput{Content: mergePatch},
		Format: "json",
	}
	_, output, err := handleMerge(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)

	trimmed := strings.TrimSpace(output.Document)
	assert.True(t, strings.HasPrefix(trimmed, "{"), "json output should be an object, got: %.40s", trimmed)
	assert.Contains(t, output.Document, `"replicas": 5`)
}

func TestMergeTool_MultiDocBase(t *testing.T) {
	input := mergeInput{
		Base:  sourceInput{Content: mergeBase + "---\nkind: ConfigMap\nmetadata:\n  name: cfg\n"},
		Patch: sourceInput{Content: mergePatch},
	}
	result, output, err := handleMerge(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
	assert.Empty(t, output.Document)
}

func TestMergeTool_NoPatchInput(t *testing.T) {
	input := mergeInput{
		Base: sourceInput{Content: mergeBase},
	}
	result, _, err := handleMerge(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}
