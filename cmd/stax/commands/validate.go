package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/staxtools/stax/compose"
)

// ValidateFlags holds parsed flags for the validate command.
type ValidateFlags struct {
	Format string
	Quiet  bool
}

// validateReport is the structured form of a validation outcome.
type validateReport struct {
	Source   string   `json:"source" yaml:"source"`
	Valid    bool     `json:"valid" yaml:"valid"`
	Problems []string `json:"problems" yaml:"problems"`
}

// SetupValidateFlags creates the flag set for the validate command.
func SetupValidateFlags() (*flag.FlagSet, *ValidateFlags) {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	flags := &ValidateFlags{}

	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.BoolVar(&flags.Quiet, "quiet", false, "suppress all output; rely on the exit code")
	fs.BoolVar(&flags.Quiet, "q", false, "suppress all output (shorthand)")

	fs.Usage = func() {
		Writef(os.Stderr, "Usage: stax validate [options] <layer-file>\n\n")
		Writef(os.Stderr, "Validate a layer file: YAML well-formedness, known transform kinds,\n")
		Writef(os.Stderr, "required transform fields, and patch document identities.\n\n")
		Writef(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		Writef(os.Stderr, "\nExamples:\n")
		Writef(os.Stderr, "  stax validate layers/production.yaml\n")
		Writef(os.Stderr, "  stax validate -format json layers/production.yaml\n")
		Writef(os.Stderr, "  cat layer.yaml | stax validate -\n")
	}
	return fs, flags
}

// HandleValidate executes the validate command.
func HandleValidate(args []string) error {
	fs, flags := SetupValidateFlags()
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("expected exactly 1 argument (layer file), got %d", fs.NArg())
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	path := fs.Arg(0)
	var problems []error
	if path == StdinFilePath {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		problems = compose.ValidateLayer(data)
	} else {
		// Unreadable files are command errors; only layer content problems
		// belong in the validation report.
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("reading layer file: %w", err)
		}
		problems = compose.ValidateLayerFile(path)
	}

	report := validateReport{
		Source:   FormatDocPath(path),
		Valid:    len(problems) == 0,
		Problems: make([]string, 0, len(problems)),
	}
	for _, p := range problems {
		report.Problems = append(report.Problems, p.Error())
	}

	if flags.Format != FormatText {
		if err := OutputStructured(report, flags.Format); err != nil {
			return err
		}
		if !report.Valid {
			os.Exit(1)
		}
		return nil
	}

	if !flags.Quiet {
		Writef(os.Stderr, "Validating layer: %s\n\n", report.Source)
		for _, p := range report.Problems {
			Writef(os.Stderr, "  ✗ %s\n", p)
		}
		if report.Valid {
			Writef(os.Stderr, "✓ Layer is valid\n")
		} else {
			Writef(os.Stderr, "\n✗ Validation failed: %d problem(s)\n", len(report.Problems))
		}
	}
	if !report.Valid {
		os.Exit(1)
	}
	return nil
}
