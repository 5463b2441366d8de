package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/staxtools/stax/document"
)

// IdentifyFlags holds parsed flags for the identify command.
type IdentifyFlags struct {
	Format string
	Quiet  bool
}

// identifyEntry is one resolved document identity.
type identifyEntry struct {
	Kind   string `json:"kind" yaml:"kind"`
	Name   string `json:"name" yaml:"name"`
	Source string `json:"source" yaml:"source"`
}

// identifyReport is the structured form of an identify run.
type identifyReport struct {
	Count      int             `json:"count" yaml:"count"`
	Identities []identifyEntry `json:"identities" yaml:"identities"`
	Duplicates []string        `json:"duplicates,omitempty" yaml:"duplicates,omitempty"`
	Invalid    []string        `json:"invalid,omitempty" yaml:"invalid,omitempty"`
}

// SetupIdentifyFlags creates the flag set for the identify command.
func SetupIdentifyFlags() (*flag.FlagSet, *IdentifyFlags) {
	fs := flag.NewFlagSet("identify", flag.ContinueOnError)
	flags := &IdentifyFlags{}

	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.BoolVar(&flags.Quiet, "quiet", false, "only list identities, no summary")
	fs.BoolVar(&flags.Quiet, "q", false, "only list identities, no summary (shorthand)")

	fs.Usage = func() {
		Writef(os.Stderr, "Usage: stax identify [options] <file>...\n\n")
		Writef(os.Stderr, "List the kind/name identity of every document in the given files,\n")
		Writef(os.Stderr, "flagging duplicates and documents with no resolvable identity.\n\n")
		Writef(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		Writef(os.Stderr, "\nExamples:\n")
		Writef(os.Stderr, "  stax identify base.yaml\n")
		Writef(os.Stderr, "  stax identify -format json base.yaml extra.yaml\n")
	}
	return fs, flags
}

// HandleIdentify executes the identify command.
func HandleIdentify(args []string) error {
	fs, flags := SetupIdentifyFlags()
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return errors.New("expected at least 1 file argument")
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	if countStdin(fs.Args()) > 1 {
		return errors.New("stdin ('-') may appear at most once")
	}

	report := identifyReport{Identities: []identifyEntry{}}
	firstSeen := make(map[document.Identity]string)
	for _, path := range fs.Args() {
		docs, err := ReadDocuments(path)
		if err != nil {
			return err
		}
		for _, doc := range docs {
			id, err := document.IdentityOf(doc)
			if err != nil {
				report.Invalid = append(report.Invalid, err.Error())
				continue
			}
			report.Identities = append(report.Identities, identifyEntry{
				Kind:   id.Kind,
				Name:   id.Name,
				Source: doc.Source,
			})
			if first, ok := firstSeen[id]; ok {
				report.Duplicates = append(report.Duplicates,
					fmt.Sprintf("%s (%s and %s)", id, first, doc.Source))
			} else {
				firstSeen[id] = doc.Source
			}
		}
	}
	report.Count = len(report.Identities)

	if flags.Format != FormatText {
		return OutputStructured(report, flags.Format)
	}

	for _, entry := range report.Identities {
		Writef(os.Stdout, "%s/%s\t%s\n", entry.Kind, entry.Name, entry.Source)
	}
	if !flags.Quiet {
		for _, dup := range report.Duplicates {
			Writef(os.Stderr, "  ✗ duplicate identity: %s\n", dup)
		}
		for _, inv := range report.Invalid {
			Writef(os.Stderr, "  ✗ no identity: %s\n", inv)
		}
		Writef(os.Stderr, "%d document(s), %d duplicate(s), %d without identity\n",
			report.Count, len(report.Duplicates), len(report.Invalid))
	}
	return nil
}
