package compose

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/staxtools/stax/document"
	"github.com/staxtools/stax/staxerrors"
	"github.com/staxtools/stax/transform"
)

// Layer bundles the patches and transforms applied in one composition pass.
type Layer struct {
	// Name labels the layer in logs.
	Name string

	// Patches are the patch documents, in application order.
	Patches []*document.Document

	// Transforms are the transform declarations, in application order.
	Transforms []transform.Spec

	// Source records where the layer was loaded from, when it was loaded.
	Source string
}

// layerFile is the YAML form of a layer:
//
//	layer: production
//	transforms:
//	  - kind: AddCommonLabel
//	    key: stage
//	    value: prod
//	patches:
//	  - kind: Deployment
//	    metadata:
//	      name: web
//	patchFiles:
//	  - patches/web.yaml
type layerFile struct {
	Layer      string           `yaml:"layer"`
	Transforms []transform.Spec `yaml:"transforms"`
	Patches    []yaml.Node      `yaml:"patches"`
	PatchFiles []string         `yaml:"patchFiles"`
}

// ParseLayer parses a layer from YAML bytes.
//
// Patch documents must be inline under "patches"; input using "patchFiles"
// is rejected because file references can only be resolved relative to a
// layer file. Use ParseLayerFile for those.
func ParseLayer(data []byte) (*Layer, error) {
	layer, lf, err := parseLayer(data, "")
	if err != nil {
		return nil, err
	}
	if len(lf.PatchFiles) > 0 {
		return nil, &staxerrors.ConfigError{
			Option:  "patchFiles",
			Message: "patch files require a layer file to resolve against; use ParseLayerFile",
		}
	}
	return layer, nil
}

// ParseLayerFile reads and parses a layer file.
//
// Entries under "patchFiles" are resolved relative to the layer file's
// directory and may not escape it. Each referenced file may hold multiple
// documents; all of them become patches, after the inline ones.
func ParseLayerFile(path string) (*Layer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &staxerrors.FormatError{
			Source:  path,
			Message: "reading layer file",
			Cause:   err,
		}
	}

	layer, lf, err := parseLayer(data, path)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	for i, pf := range lf.PatchFiles {
		resolved, err := resolvePatchFile(dir, pf)
		if err != nil {
			return nil, &staxerrors.ConfigError{
				Option:  fmt.Sprintf("patchFiles[%d]", i),
				Value:   pf,
				Message: "invalid patch file path",
				Cause:   err,
			}
		}
		docs, err := document.ParseFile(resolved)
		if err != nil {
			return nil, err
		}
		layer.Patches = append(layer.Patches, docs...)
	}
	return layer, nil
}

// ValidateLayer checks layer YAML for problems without stopping at the
// first one: malformed YAML, invalid transforms, patches that do not decode,
// patches without a resolvable identity, and patch file references (which
// ParseLayer rejects outright). An empty slice means ParseLayer would accept
// the input and every patch would survive composition.
func ValidateLayer(data []byte) []error {
	errs, lf := validateLayerData(data, "")
	if lf != nil && len(lf.PatchFiles) > 0 {
		errs = append(errs, &staxerrors.ConfigError{
			Option:  "patchFiles",
			Message: "patch files require a layer file to resolve against; use ParseLayerFile",
		})
	}
	return errs
}

// ValidateLayerFile reads a layer file and checks it like ValidateLayer,
// additionally resolving each patch file reference and checking that the
// referenced documents parse and carry identities.
func ValidateLayerFile(path string) []error {
	data, err := os.ReadFile(path)
	if err != nil {
		return []error{&staxerrors.FormatError{
			Source:  path,
			Message: "reading layer file",
			Cause:   err,
		}}
	}

	errs, lf := validateLayerData(data, path)
	if lf == nil {
		return errs
	}

	dir := filepath.Dir(path)
	for i, pf := range lf.PatchFiles {
		resolved, err := resolvePatchFile(dir, pf)
		if err != nil {
			errs = append(errs, &staxerrors.ConfigError{
				Option:  fmt.Sprintf("patchFiles[%d]", i),
				Value:   pf,
				Message: "invalid patch file path",
				Cause:   err,
			})
			continue
		}
		docs, err := document.ParseFile(resolved)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		for _, doc := range docs {
			if _, err := document.IdentityOf(doc); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errs
}

// validateLayerData collects every structural problem in layer YAML.
func validateLayerData(data []byte, source string) ([]error, *layerFile) {
	var lf layerFile
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return []error{&staxerrors.FormatError{
			Source:  source,
			Message: "malformed layer",
			Cause:   err,
		}}, nil
	}

	errs := transform.Validate(lf.Transforms)

	for i := range lf.Patches {
		dec := document.NewDecoder()
		dec.Source = fmt.Sprintf("patches[%d]", i)
		if source != "" {
			dec.Source = fmt.Sprintf("%s:patches[%d]", source, i)
		}
		doc, err := dec.DecodeNode(&lf.Patches[i])
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if _, err := document.IdentityOf(doc); err != nil {
			errs = append(errs, err)
		}
	}

	return errs, &lf
}

// parseLayer decodes the YAML form shared by ParseLayer and ParseLayerFile.
// The returned layerFile lets callers handle patchFiles themselves.
func parseLayer(data []byte, source string) (*Layer, *layerFile, error) {
	var lf layerFile
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return nil, nil, &staxerrors.FormatError{
			Source:  source,
			Message: "malformed layer",
			Cause:   err,
		}
	}

	if errs := transform.Validate(lf.Transforms); len(errs) > 0 {
		return nil, nil, errs[0]
	}

	layer := &Layer{
		Name:       lf.Layer,
		Transforms: lf.Transforms,
		Source:     source,
	}
	for i := range lf.Patches {
		dec := document.NewDecoder()
		dec.Source = fmt.Sprintf("patches[%d]", i)
		if source != "" {
			dec.Source = fmt.Sprintf("%s:patches[%d]", source, i)
		}
		doc, err := dec.DecodeNode(&lf.Patches[i])
		if err != nil {
			return nil, nil, err
		}
		layer.Patches = append(layer.Patches, doc)
	}
	return layer, &lf, nil
}

// resolvePatchFile joins a patch file reference onto the layer directory and
// rejects references that point outside it.
func resolvePatchFile(dir, ref string) (string, error) {
	if ref == "" {
		return "", errors.New("path is empty")
	}
	if filepath.IsAbs(ref) {
		return "", errors.New("path must be relative to the layer file")
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	absRef, err := filepath.Abs(filepath.Join(dir, ref))
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absDir, absRef)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", errors.New("path escapes the layer directory")
	}
	return absRef, nil
}

// IsLayerDocument reports whether the bytes look like a layer document
// rather than a plain configuration document.
//
// This is a heuristic check for layer-specific top-level fields; use it to
// route mixed input, not to validate.
func IsLayerDocument(data []byte) bool {
	for _, field := range []string{"layer:", "transforms:", "patchFiles:", "patches:"} {
		if bytes.Contains(data, []byte(field)) ||
			bytes.Contains(data, []byte(`"`+strings.TrimSuffix(field, ":")+`":`)) {
			return true
		}
	}
	return false
}
