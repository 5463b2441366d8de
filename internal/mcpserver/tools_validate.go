package mcpserver

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/staxtools/stax/compose"
	"github.com/staxtools/stax/staxerrors"
)

type validateLayerInput struct {
	Layer sourceInput `json:"layer" jsonschema:"The layer document to validate"`
}

type layerIssue struct {
	Option  string `json:"option,omitempty"`
	Source  string `json:"source,omitempty"`
	Message string `json:"message"`
}

type validateLayerOutput struct {
	Valid          bool         `json:"valid"`
	Name           string       `json:"name,omitempty"`
	PatchCount     int          `json:"patch_count"`
	TransformCount int          `json:"transform_count"`
	ErrorCount     int          `json:"error_count"`
	Errors         []layerIssue `json:"errors,omitempty"`
	Summary        string       `json:"summary"`
}

func handleValidateLayer(_ context.Context, _ *mcp.CallToolRequest, input validateLayerInput) (*mcp.CallToolResult, validateLayerOutput, error) {
	if err := input.Layer.check(); err != nil {
		return errResult(err), validateLayerOutput{}, nil
	}

	var errs []error
	if input.Layer.File != "" {
		errs = compose.ValidateLayerFile(input.Layer.File)
	} else {
		errs = compose.ValidateLayer([]byte(input.Layer.Content))
	}

	output := validateLayerOutput{
		Valid:      len(errs) == 0,
		ErrorCount: len(errs),
	}

	output.Errors = makeSlice[layerIssue](len(errs))
	for _, err := range errs {
		output.Errors = append(output.Errors, layerIssueOf(err))
	}

	if output.Valid {
		layer, err := input.Layer.resolveLayer()
		if err != nil {
			return errResult(err), validateLayerOutput{}, nil
		}
		output.Name = layer.Name
		output.PatchCount = len(layer.Patches)
		output.TransformCount = len(layer.Transforms)
		output.Summary = "Layer is valid: " + formatCount(output.PatchCount, "patch") +
			", " + formatCount(output.TransformCount, "transform") + "."
	} else {
		output.Summary = "Layer has " + formatCount(output.ErrorCount, "problem") + "."
	}

	return nil, output, nil
}

// layerIssueOf extracts the structured location fields a validation error
// carries. Configuration errors name the layer option, format and identity
// errors name the source.
func layerIssueOf(err error) layerIssue {
	issue := layerIssue{Message: sanitizeError(err)}

	var ce *staxerrors.ConfigError
	if errors.As(err, &ce) {
		issue.Option = ce.Option
		return issue
	}
	var fe *staxerrors.FormatError
	if errors.As(err, &fe) {
		issue.Source = pathPattern.ReplaceAllString(fe.Source, "<path>")
		return issue
	}
	var ie *staxerrors.IdentityError
	if errors.As(err, &ie) {
		issue.Source = pathPattern.ReplaceAllString(ie.Source, "<path>")
		return issue
	}
	return issue
}
