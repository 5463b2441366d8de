package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/staxtools/stax/document"
)

const composeTestBase = `kind: Deployment
metadata:
  name: web
spec:
  replicas: 2
  selector:
    matchLabels:
      app: web
  template:
    metadata:
      labels:
        app: web
---
kind: ConfigMap
metadata:
  name: app-config
data:
  LOG_LEVEL: info
`

const composeTestLayer = `layer: production
transforms:
  - kind: AddCommonLabel
    key: stage
    value: prod
patches:
  - kind: Deployment
    metadata:
      name: web
    spec:
      replicas: 5
  - kind: Secret
    metadata:
      name: web-tls
`

func writeComposeFixtures(t *testing.T) (string, string, string) {
	t.Helper()
	tmpDir := t.TempDir()
	basePath := filepath.Join(tmpDir, "base.yaml")
	layerPath := filepath.Join(tmpDir, "layer.yaml")
	outPath := filepath.Join(tmpDir, "out.yaml")
	if err := os.WriteFile(basePath, []byte(composeTestBase), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(layerPath, []byte(composeTestLayer), 0600); err != nil {
		t.Fatal(err)
	}
	return basePath, layerPath, outPath
}

func TestSetupComposeFlags(t *testing.T) {
	fs, flags := SetupComposeFlags()

	t.Run("default values", func(t *testing.T) {
		if len(flags.Base) != 0 {
			t.Errorf("expected Base to be empty by default, got %v", flags.Base)
		}
		if len(flags.Layer) != 0 {
			t.Errorf("expected Layer to be empty by default, got %v", flags.Layer)
		}
		if flags.Output != "" {
			t.Errorf("expected Output to be empty by default, got '%s'", flags.Output)
		}
		if flags.Format != FormatYAML {
			t.Errorf("expected Format 'yaml' by default, got '%s'", flags.Format)
		}
		if flags.Quiet {
			t.Error("expected Quiet to be false by default")
		}
		if flags.DryRun {
			t.Error("expected DryRun to be false by default")
		}
		if flags.MaxDepth != 0 {
			t.Errorf("expected MaxDepth 0 by default, got %d", flags.MaxDepth)
		}
	})

	t.Run("parse flags", func(t *testing.T) {
		args := []string{"-b", "a.yaml", "-base", "b.yaml", "-l", "common.yaml", "-layer", "prod.yaml", "-o", "out.yaml", "-q", "-n"}
		if err := fs.Parse(args); err != nil {
			t.Fatalf("unexpected parse error: %v", err)
		}

		if len(flags.Base) != 2 || flags.Base[0] != "a.yaml" || flags.Base[1] != "b.yaml" {
			t.Errorf("expected Base [a.yaml b.yaml], got %v", flags.Base)
		}
		if len(flags.Layer) != 2 || flags.Layer[0] != "common.yaml" || flags.Layer[1] != "prod.yaml" {
			t.Errorf("expected Layer [common.yaml prod.yaml], got %v", flags.Layer)
		}
		if flags.Output != "out.yaml" {
			t.Errorf("expected Output 'out.yaml', got '%s'", flags.Output)
		}
		if !flags.Quiet {
			t.Error("expected Quiet to be true")
		}
		if !flags.DryRun {
			t.Error("expected DryRun to be true")
		}
	})

	t.Run("long flags", func(t *testing.T) {
		fs2, flags2 := SetupComposeFlags()
		args := []string{"--base", "a.yaml", "--layer", "l.yaml", "--output", "out.json", "--format", "json", "--max-depth", "50", "--merge-key", "id"}
		if err := fs2.Parse(args); err != nil {
			t.Fatalf("unexpected parse error: %v", err)
		}

		if flags2.Format != FormatJSON {
			t.Errorf("expected Format 'json', got '%s'", flags2.Format)
		}
		if flags2.MaxDepth != 50 {
			t.Errorf("expected MaxDepth 50, got %d", flags2.MaxDepth)
		}
		if flags2.MergeKey != "id" {
			t.Errorf("expected MergeKey 'id', got '%s'", flags2.MergeKey)
		}
	})
}

func TestHandleCompose(t *testing.T) {
	basePath, layerPath, outPath := writeComposeFixtures(t)

	err := HandleCompose([]string{"-base", basePath, "-layer", layerPath, "-o", outPath, "-q"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	docs, err := document.ParseFile(outPath)
	if err != nil {
		t.Fatalf("parsing output: %v", err)
	}
	if len(docs) != 3 {
		t.Fatalf("expected 3 documents, got %d", len(docs))
	}

	// Base documents first in input order, added patches after.
	if got := docs[0].Kind(); got != "Deployment" {
		t.Errorf("expected first document Deployment, got %s", got)
	}
	if got := docs[1].Kind(); got != "ConfigMap" {
		t.Errorf("expected second document ConfigMap, got %s", got)
	}
	if got := docs[2].Kind(); got != "Secret" {
		t.Errorf("expected third document Secret, got %s", got)
	}

	// Patch merged into the Deployment.
	if got := docs[0].Root().GetPath("spec", "replicas").StringValue(); got != "5" {
		t.Errorf("expected replicas 5, got %q", got)
	}
	// Base-only fields survive the merge.
	if got := docs[0].Root().GetPath("spec", "selector", "matchLabels", "app").StringValue(); got != "web" {
		t.Errorf("expected selector app=web to survive, got %q", got)
	}

	// Label transform ran on every document, including the added patch.
	for i, doc := range docs {
		if got := doc.Root().GetPath("metadata", "labels", "stage").StringValue(); got != "prod" {
			t.Errorf("doc[%d]: expected label stage=prod, got %q", i, got)
		}
	}
	// Dual-write into the selector and pod template of the workload.
	if got := docs[0].Root().GetPath("spec", "selector", "matchLabels", "stage").StringValue(); got != "prod" {
		t.Errorf("expected selector stage=prod, got %q", got)
	}
	if got := docs[0].Root().GetPath("spec", "template", "metadata", "labels", "stage").StringValue(); got != "prod" {
		t.Errorf("expected template stage=prod, got %q", got)
	}
}

func TestHandleCompose_ChainedLayers(t *testing.T) {
	basePath, layerPath, outPath := writeComposeFixtures(t)
	tmpDir := filepath.Dir(basePath)

	secondLayer := `layer: region
transforms:
  - kind: AddCommonLabel
    key: region
    value: eu-west-1
patches:
  - kind: Deployment
    metadata:
      name: web
    spec:
      replicas: 7
`
	secondPath := filepath.Join(tmpDir, "region.yaml")
	if err := os.WriteFile(secondPath, []byte(secondLayer), 0600); err != nil {
		t.Fatal(err)
	}

	err := HandleCompose([]string{"-base", basePath, "-layer", layerPath, "-layer", secondPath, "-o", outPath, "-q"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	docs, err := document.ParseFile(outPath)
	if err != nil {
		t.Fatalf("parsing output: %v", err)
	}
	if len(docs) != 3 {
		t.Fatalf("expected 3 documents, got %d", len(docs))
	}

	// The second layer patches the result of the first.
	if got := docs[0].Root().GetPath("spec", "replicas").StringValue(); got != "7" {
		t.Errorf("expected replicas 7 after second layer, got %q", got)
	}
	// Both layers' labels land on the Secret added by the first layer.
	secret := docs[2]
	if got := secret.Root().GetPath("metadata", "labels", "stage").StringValue(); got != "prod" {
		t.Errorf("expected stage=prod on added document, got %q", got)
	}
	if got := secret.Root().GetPath("metadata", "labels", "region").StringValue(); got != "eu-west-1" {
		t.Errorf("expected region=eu-west-1 on added document, got %q", got)
	}
}

func TestHandleCompose_DryRun(t *testing.T) {
	basePath, layerPath, outPath := writeComposeFixtures(t)

	err := HandleCompose([]string{"-base", basePath, "-layer", layerPath, "-o", outPath, "-q", "-n"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(outPath); !os.IsNotExist(err) {
		t.Errorf("expected no output file in dry run, stat err = %v", err)
	}
}

func TestHandleCompose_JSONOutput(t *testing.T) {
	basePath, layerPath, _ := writeComposeFixtures(t)
	outPath := filepath.Join(filepath.Dir(basePath), "out.json")

	err := HandleCompose([]string{"-base", basePath, "-layer", layerPath, "-o", outPath, "-format", "json", "-q"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) == 0 || data[0] != '[' {
		t.Errorf("expected JSON array output, got %q", string(data[:min(len(data), 20)]))
	}
}

func TestHandleCompose_Help(t *testing.T) {
	if err := HandleCompose([]string{"--help"}); err != nil {
		t.Errorf("unexpected error for help: %v", err)
	}
}

func TestHandleCompose_Validation(t *testing.T) {
	basePath, layerPath, _ := writeComposeFixtures(t)

	tests := []struct {
		name string
		args []string
	}{
		{"no base", []string{"-layer", layerPath}},
		{"no layer", []string{"-base", basePath}},
		{"positional argument", []string{"-base", basePath, "-layer", layerPath, "stray.yaml"}},
		{"invalid format", []string{"-base", basePath, "-layer", layerPath, "-format", "xml"}},
		{"text format rejected", []string{"-base", basePath, "-layer", layerPath, "-format", "text"}},
		{"output overwrites input", []string{"-base", basePath, "-layer", layerPath, "-o", basePath}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := HandleCompose(tt.args); err == nil {
				t.Error("expected error")
			}
		})
	}
}
