// Package commands implements the stax CLI subcommands. Each command is a
// SetupXFlags/HandleX pair so tests can drive flag parsing and handlers
// without going through main.
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/staxtools/stax/document"
)

// Output format names accepted by the -format flag.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// StdinFilePath is the conventional path that selects stdin as input.
const StdinFilePath = "-"

// ValidateOutputFormat checks that format names a supported report format.
func ValidateOutputFormat(format string) error {
	switch format {
	case FormatText, FormatJSON, FormatYAML:
		return nil
	default:
		return fmt.Errorf("invalid format %q (must be text, json, or yaml)", format)
	}
}

// ValidateDocumentFormat checks that format names a supported document
// serialization. Document output is structural, so text is not an option.
func ValidateDocumentFormat(format string) error {
	switch format {
	case FormatJSON, FormatYAML:
		return nil
	default:
		return fmt.Errorf("invalid format %q (must be yaml or json)", format)
	}
}

// StringList is a repeatable flag value. Each occurrence of the flag appends
// one element, so `-base a.yaml -base b.yaml` collects both paths in order.
type StringList []string

func (s *StringList) String() string {
	return strings.Join(*s, ",")
}

func (s *StringList) Set(value string) error {
	*s = append(*s, value)
	return nil
}

// Writef writes formatted output, ignoring write errors. Used for status
// output to stderr where a failed write has no meaningful recovery.
func Writef(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}

// FormatDocPath renders a document path for display, naming stdin explicitly.
func FormatDocPath(path string) string {
	if path == StdinFilePath {
		return "<stdin>"
	}
	return path
}

// ValidateOutputPath rejects output paths that would overwrite one of the
// input files.
func ValidateOutputPath(outputPath string, inputPaths ...string) error {
	if outputPath == "" {
		return nil
	}
	cleanOut := filepath.Clean(outputPath)
	for _, in := range inputPaths {
		if in == StdinFilePath {
			continue
		}
		if filepath.Clean(in) == cleanOut {
			return fmt.Errorf("output path %q would overwrite input file", outputPath)
		}
	}
	return nil
}

// RejectSymlinkOutput refuses to write through an existing symlink, which
// could redirect output to an unexpected location.
func RejectSymlinkOutput(outputPath string) error {
	info, err := os.Lstat(outputPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("checking output path: %w", err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("output path %q is a symlink; refusing to write through it", outputPath)
	}
	return nil
}

// ReadDocuments loads every document from path, reading stdin when path
// is "-".
func ReadDocuments(path string) ([]*document.Document, error) {
	if path == StdinFilePath {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		d := document.NewDecoder()
		d.Source = "<stdin>"
		return d.DecodeAll(data)
	}
	return document.ParseFile(path)
}

// MarshalDocuments serializes a document set as a YAML stream or a JSON
// array, depending on format.
func MarshalDocuments(docs []*document.Document, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		var buf strings.Builder
		buf.WriteString("[")
		for i, doc := range docs {
			if i > 0 {
				buf.WriteString(",")
			}
			buf.WriteString("\n")
			data, err := document.MarshalJSONIndent(doc, "  ", "  ")
			if err != nil {
				return nil, err
			}
			buf.WriteString("  ")
			buf.Write(data)
		}
		buf.WriteString("\n]\n")
		return []byte(buf.String()), nil
	default:
		return document.MarshalYAML(docs...)
	}
}

// WriteDocOutput writes serialized documents to outputPath, or to stdout
// when outputPath is empty. File output is created with 0600 permissions.
func WriteDocOutput(data []byte, outputPath string) error {
	if outputPath == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := RejectSymlinkOutput(outputPath); err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, data, 0600); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	return nil
}

// OutputStructured marshals v as JSON or YAML and writes it to stdout.
// Structured reports go to stdout so they can be piped, while human status
// lines stay on stderr.
func OutputStructured(v any, format string) error {
	var data []byte
	var err error
	switch format {
	case FormatJSON:
		data, err = json.MarshalIndent(v, "", "  ")
		if err == nil {
			data = append(data, '\n')
		}
	case FormatYAML:
		data, err = yaml.Marshal(v)
	default:
		return fmt.Errorf("unsupported structured format %q", format)
	}
	if err != nil {
		return fmt.Errorf("marshaling %s output: %w", format, err)
	}
	_, err = os.Stdout.Write(data)
	return err
}
