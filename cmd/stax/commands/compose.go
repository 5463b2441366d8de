package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/staxtools/stax"
	"github.com/staxtools/stax/compose"
	"github.com/staxtools/stax/document"
)

// ComposeFlags holds parsed flags for the compose command.
type ComposeFlags struct {
	Base     StringList
	Layer    StringList
	Output   string
	Format   string
	Quiet    bool
	DryRun   bool
	MaxDepth int
	MergeKey string
}

// SetupComposeFlags creates the flag set for the compose command.
func SetupComposeFlags() (*flag.FlagSet, *ComposeFlags) {
	fs := flag.NewFlagSet("compose", flag.ContinueOnError)
	flags := &ComposeFlags{}

	fs.Var(&flags.Base, "base", "base document file, repeatable; '-' reads stdin")
	fs.Var(&flags.Base, "b", "base document file (shorthand)")
	fs.Var(&flags.Layer, "layer", "layer file to apply, repeatable, in order")
	fs.Var(&flags.Layer, "l", "layer file to apply (shorthand)")
	fs.StringVar(&flags.Output, "output", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Output, "o", "", "output file path (shorthand)")
	fs.StringVar(&flags.Format, "format", FormatYAML, "output format: yaml or json")
	fs.BoolVar(&flags.Quiet, "quiet", false, "suppress status output")
	fs.BoolVar(&flags.Quiet, "q", false, "suppress status output (shorthand)")
	fs.BoolVar(&flags.DryRun, "dry-run", false, "report what each layer would do without writing documents")
	fs.BoolVar(&flags.DryRun, "n", false, "dry run (shorthand)")
	fs.IntVar(&flags.MaxDepth, "max-depth", 0, fmt.Sprintf("maximum document nesting depth (default %d)", document.DefaultMaxDepth))
	fs.StringVar(&flags.MergeKey, "merge-key", "", "key pairing sequence elements merged by identity (default name)")

	fs.Usage = func() {
		Writef(os.Stderr, "Usage: stax compose -base <file> -layer <file> [options]\n\n")
		Writef(os.Stderr, "Apply one or more configuration layers to a base document set.\n")
		Writef(os.Stderr, "Layers apply in flag order; each layer sees the output of the one before it.\n\n")
		Writef(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		Writef(os.Stderr, "\nExamples:\n")
		Writef(os.Stderr, "  stax compose -base base.yaml -layer production.yaml\n")
		Writef(os.Stderr, "  stax compose -base base.yaml -layer common.yaml -layer production.yaml -o out.yaml\n")
		Writef(os.Stderr, "  cat base.yaml | stax compose -base - -layer production.yaml -format json\n")
	}
	return fs, flags
}

// HandleCompose executes the compose command.
func HandleCompose(args []string) error {
	fs, flags := SetupComposeFlags()
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return fmt.Errorf("unexpected argument %q (inputs are given with -base and -layer)", fs.Arg(0))
	}
	if len(flags.Base) == 0 {
		fs.Usage()
		return errors.New("at least one -base file is required")
	}
	if len(flags.Layer) == 0 {
		fs.Usage()
		return errors.New("at least one -layer file is required")
	}
	if err := ValidateDocumentFormat(flags.Format); err != nil {
		return err
	}
	inputs := make([]string, 0, len(flags.Base)+len(flags.Layer))
	inputs = append(inputs, flags.Base...)
	inputs = append(inputs, flags.Layer...)
	if err := ValidateOutputPath(flags.Output, inputs...); err != nil {
		return err
	}
	if countStdin(flags.Base) > 1 {
		return errors.New("stdin ('-') may appear at most once in -base")
	}

	start := time.Now()

	var docs []*document.Document
	for _, path := range flags.Base {
		parsed, err := ReadDocuments(path)
		if err != nil {
			return err
		}
		docs = append(docs, parsed...)
	}
	baseCount := len(docs)

	if !flags.Quiet {
		Writef(os.Stderr, "Configuration Layer Composition\n")
		Writef(os.Stderr, "===============================\n")
		Writef(os.Stderr, "stax version: %s\n", stax.Version())
		for _, path := range flags.Base {
			Writef(os.Stderr, "Base:  %s\n", FormatDocPath(path))
		}
		Writef(os.Stderr, "\n")
	}

	composer := compose.New(compose.Config{
		MaxDepth:         flags.MaxDepth,
		SequenceMergeKey: flags.MergeKey,
	})

	var diagnostics compose.Diagnostics
	var totals compose.Stats
	for _, layerPath := range flags.Layer {
		layer, err := compose.ParseLayerFile(layerPath)
		if err != nil {
			return err
		}

		if flags.DryRun {
			preview, err := composer.DryRun(docs, layer)
			if err != nil {
				return fmt.Errorf("layer %s: %w", layerPath, err)
			}
			printPreview(layer, preview)
		}

		result, err := composer.Compose(docs, layer)
		if err != nil {
			return fmt.Errorf("layer %s: %w", layerPath, err)
		}
		docs = result.Documents
		diagnostics = append(diagnostics, result.Diagnostics...)
		totals.PatchedCount += result.Stats.PatchedCount
		totals.AddedCount += result.Stats.AddedCount
		totals.TransformCount += result.Stats.TransformCount
		totals.WarningCount += result.Stats.WarningCount

		if !flags.Quiet {
			Writef(os.Stderr, "✓ Applied %s: %d patched, %d added, %d transforms\n",
				layerDisplayName(layer, layerPath),
				result.Stats.PatchedCount, result.Stats.AddedCount, result.Stats.TransformCount)
		}
	}

	if !flags.Quiet {
		if len(diagnostics) > 0 {
			Writef(os.Stderr, "\nDiagnostics:\n")
			for _, d := range diagnostics {
				Writef(os.Stderr, "  - %s\n", d)
			}
		}
		Writef(os.Stderr, "\nComposed %d documents (%d base, %d added) through %d layer(s) in %v\n",
			len(docs), baseCount, totals.AddedCount, len(flags.Layer), time.Since(start).Round(time.Microsecond))
	}

	if flags.DryRun {
		return nil
	}

	data, err := MarshalDocuments(docs, flags.Format)
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

// printPreview renders a dry-run preview for one layer to stdout.
func printPreview(layer *compose.Layer, preview *compose.Preview) {
	Writef(os.Stdout, "Layer %s (dry run):\n", layerDisplayName(layer, layer.Source))
	for _, p := range preview.Patches {
		Writef(os.Stdout, "  patch[%d] %s: would %s\n", p.PatchIndex, p.Identity, p.Operation)
	}
	for _, tr := range preview.Transforms {
		Writef(os.Stdout, "  transform[%d] %s: would match %d document(s)\n", tr.TransformIndex, tr.Kind, tr.MatchCount)
	}
	Writef(os.Stdout, "  would merge %d patch(es), add %d patch(es)\n", preview.WouldMerge, preview.WouldAdd)
	for _, d := range preview.Diagnostics {
		Writef(os.Stdout, "  ! %s\n", d)
	}
}

func layerDisplayName(layer *compose.Layer, fallback string) string {
	if layer.Name != "" {
		return layer.Name
	}
	return fallback
}

func countStdin(paths []string) int {
	n := 0
	for _, p := range paths {
		if p == StdinFilePath {
			n++
		}
	}
	return n
}
