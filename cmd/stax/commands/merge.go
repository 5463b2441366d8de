package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/staxtools/stax/document"
	"github.com/staxtools/stax/merge"
)

// MergeFlags holds parsed flags for the merge command.
type MergeFlags struct {
	Output     string
	Format     string
	Quiet      bool
	MergePaths StringList
	MergeKey   string
	MaxDepth   int
}

// SetupMergeFlags creates the flag set for the merge command.
func SetupMergeFlags() (*flag.FlagSet, *MergeFlags) {
	fs := flag.NewFlagSet("merge", flag.ContinueOnError)
	flags := &MergeFlags{}

	fs.StringVar(&flags.Output, "output", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Output, "o", "", "output file path (shorthand)")
	fs.StringVar(&flags.Format, "format", FormatYAML, "output format: yaml or json")
	fs.BoolVar(&flags.Quiet, "quiet", false, "suppress status output")
	fs.BoolVar(&flags.Quiet, "q", false, "suppress status output (shorthand)")
	fs.Var(&flags.MergePaths, "merge-path", "sequence path to merge by identity instead of replacing, repeatable")
	fs.StringVar(&flags.MergeKey, "merge-key", "", "key pairing sequence elements at -merge-path paths (default name)")
	fs.IntVar(&flags.MaxDepth, "max-depth", 0, fmt.Sprintf("maximum document nesting depth (default %d)", document.DefaultMaxDepth))

	fs.Usage = func() {
		Writef(os.Stderr, "Usage: stax merge [options] <base-file> <patch-file>\n\n")
		Writef(os.Stderr, "Merge a patch document into a base document.\n")
		Writef(os.Stderr, "Mappings merge key by key, scalars take the patch value, and sequences\n")
		Writef(os.Stderr, "replace unless their path is listed with -merge-path.\n\n")
		Writef(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		Writef(os.Stderr, "\nExamples:\n")
		Writef(os.Stderr, "  stax merge base.yaml patch.yaml\n")
		Writef(os.Stderr, "  stax merge -merge-path spec.containers base.yaml patch.yaml\n")
		Writef(os.Stderr, "  cat patch.yaml | stax merge -o merged.yaml base.yaml -\n")
	}
	return fs, flags
}

// HandleMerge executes the merge command.
func HandleMerge(args []string) error {
	fs, flags := SetupMergeFlags()
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return fmt.Errorf("expected exactly 2 arguments (base and patch), got %d", fs.NArg())
	}
	basePath, patchPath := fs.Arg(0), fs.Arg(1)
	if basePath == StdinFilePath && patchPath == StdinFilePath {
		return errors.New("stdin ('-') may be used for the base or the patch, not both")
	}
	if err := ValidateDocumentFormat(flags.Format); err != nil {
		return err
	}
	if err := ValidateOutputPath(flags.Output, basePath, patchPath); err != nil {
		return err
	}

	base, err := readSingleDocument(basePath)
	if err != nil {
		return err
	}
	patch, err := readSingleDocument(patchPath)
	if err != nil {
		return err
	}

	config := merge.DefaultConfig()
	config.MaxDepth = flags.MaxDepth
	if flags.MergeKey != "" {
		config.MergeKey = flags.MergeKey
	}
	if len(flags.MergePaths) > 0 {
		config.StrategyPaths = make(map[string]merge.SequenceStrategy, len(flags.MergePaths))
		for _, path := range flags.MergePaths {
			config.StrategyPaths[path] = merge.SequenceMergeByIdentity
		}
	}

	merger, err := merge.New(config)
	if err != nil {
		return err
	}
	result, err := merger.Merge(base, patch)
	if err != nil {
		return err
	}

	if !flags.Quiet {
		Writef(os.Stderr, "Merging %s into %s\n", FormatDocPath(patchPath), FormatDocPath(basePath))
		for _, w := range result.Warnings {
			Writef(os.Stderr, "  warning: %s\n", w)
		}
		Writef(os.Stderr, "✓ Merge completed with %d warning(s)\n", len(result.Warnings))
	}

	var data []byte
	switch flags.Format {
	case FormatJSON:
		data, err = document.MarshalJSONIndent(result.Document, "", "  ")
		if err == nil {
			data = append(data, '\n')
		}
	default:
		data, err = document.MarshalYAML(result.Document)
	}
	if err != nil {
		return err
	}
	if err := WriteDocOutput(data, flags.Output); err != nil {
		return err
	}
	if !flags.Quiet && flags.Output != "" {
		Writef(os.Stderr, "Output written to: %s\n", flags.Output)
	}
	return nil
}

// readSingleDocument loads path and requires it to hold exactly one document.
func readSingleDocument(path string) (*document.Document, error) {
	docs, err := ReadDocuments(path)
	if err != nil {
		return nil, err
	}
	if len(docs) != 1 {
		return nil, fmt.Errorf("%s: expected exactly one document, found %d", FormatDocPath(path), len(docs))
	}
	return docs[0], nil
}
