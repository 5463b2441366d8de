package compose

import (
	"github.com/staxtools/stax/document"
	"github.com/staxtools/stax/staxerrors"
)

// Option configures a composition operation.
type Option func(*composeConfig) error

// composeConfig holds configuration for one composition operation.
type composeConfig struct {
	// Input source for the base set (exactly one kind must be set)
	baseFiles     []string
	baseParsed    []*document.Document
	baseParsedSet bool

	// Input source for the layer (exactly one must be set)
	layerFile   *string
	layerParsed *Layer

	// Composer configuration
	maxDepth         int
	sequenceMergeKey string
	logger           Logger
}

// WithBaseFile adds a file to the base document set. The option may be
// repeated; files contribute their documents in the order given, and each
// file may hold multiple documents.
func WithBaseFile(path string) Option {
	return func(cfg *composeConfig) error {
		if path == "" {
			return &staxerrors.ConfigError{
				Option:  "WithBaseFile",
				Message: "path cannot be empty",
			}
		}
		cfg.baseFiles = append(cfg.baseFiles, path)
		return nil
	}
}

// WithBaseParsed specifies already-parsed documents as the base set.
func WithBaseParsed(docs []*document.Document) Option {
	return func(cfg *composeConfig) error {
		cfg.baseParsed = docs
		cfg.baseParsedSet = true
		return nil
	}
}

// WithLayerFile specifies a layer file as the layer input source.
func WithLayerFile(path string) Option {
	return func(cfg *composeConfig) error {
		if path == "" {
			return &staxerrors.ConfigError{
				Option:  "WithLayerFile",
				Message: "path cannot be empty",
			}
		}
		cfg.layerFile = &path
		return nil
	}
}

// WithLayerParsed specifies an already-parsed layer as the input source.
func WithLayerParsed(layer *Layer) Option {
	return func(cfg *composeConfig) error {
		if layer == nil {
			return &staxerrors.ConfigError{
				Option:  "WithLayerParsed",
				Message: "layer cannot be nil",
			}
		}
		cfg.layerParsed = layer
		return nil
	}
}

// WithMaxDepth bounds recursion depth when merging patches.
func WithMaxDepth(depth int) Option {
	return func(cfg *composeConfig) error {
		if depth <= 0 {
			return &staxerrors.ConfigError{
				Option:  "WithMaxDepth",
				Value:   depth,
				Message: "depth must be positive",
			}
		}
		cfg.maxDepth = depth
		return nil
	}
}

// WithSequenceMergeKey sets the field that pairs sequence elements for
// sequences opted into merge-by-identity.
func WithSequenceMergeKey(key string) Option {
	return func(cfg *composeConfig) error {
		if key == "" {
			return &staxerrors.ConfigError{
				Option:  "WithSequenceMergeKey",
				Message: "key cannot be empty",
			}
		}
		cfg.sequenceMergeKey = key
		return nil
	}
}

// WithLogger sets the logger that receives composition progress.
func WithLogger(logger Logger) Option {
	return func(cfg *composeConfig) error {
		if logger == nil {
			return &staxerrors.ConfigError{
				Option:  "WithLogger",
				Message: "logger cannot be nil",
			}
		}
		cfg.logger = logger
		return nil
	}
}

// applyOptions applies all options and returns the configuration.
func applyOptions(opts ...Option) (*composeConfig, error) {
	cfg := &composeConfig{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	// Validate exactly one base source
	baseSourceCount := 0
	if len(cfg.baseFiles) > 0 {
		baseSourceCount++
	}
	if cfg.baseParsedSet {
		baseSourceCount++
	}
	if baseSourceCount == 0 {
		return nil, &staxerrors.ConfigError{
			Option:  "base",
			Message: "must specify a base source (use WithBaseFile or WithBaseParsed)",
		}
	}
	if baseSourceCount > 1 {
		return nil, &staxerrors.ConfigError{
			Option:  "base",
			Message: "must specify exactly one base source",
		}
	}

	// Validate exactly one layer source
	layerSourceCount := 0
	if cfg.layerFile != nil {
		layerSourceCount++
	}
	if cfg.layerParsed != nil {
		layerSourceCount++
	}
	if layerSourceCount == 0 {
		return nil, &staxerrors.ConfigError{
			Option:  "layer",
			Message: "must specify a layer source (use WithLayerFile or WithLayerParsed)",
		}
	}
	if layerSourceCount > 1 {
		return nil, &staxerrors.ConfigError{
			Option:  "layer",
			Message: "must specify exactly one layer source",
		}
	}

	return cfg, nil
}

// loadInputs parses the base documents and the layer from the configuration.
func loadInputs(cfg *composeConfig) ([]*document.Document, *Layer, error) {
	var base []*document.Document
	if len(cfg.baseFiles) > 0 {
		for _, path := range cfg.baseFiles {
			docs, err := document.ParseFile(path)
			if err != nil {
				return nil, nil, err
			}
			base = append(base, docs...)
		}
	} else {
		base = cfg.baseParsed
	}

	var layer *Layer
	if cfg.layerFile != nil {
		var err error
		layer, err = ParseLayerFile(*cfg.layerFile)
		if err != nil {
			return nil, nil, err
		}
	} else {
		layer = cfg.layerParsed
	}

	return base, layer, nil
}

// composerConfig builds the Composer configuration from the options.
func (cfg *composeConfig) composerConfig() Config {
	return Config{
		MaxDepth:         cfg.maxDepth,
		SequenceMergeKey: cfg.sequenceMergeKey,
		Logger:           cfg.logger,
	}
}

// ComposeWithOptions composes a layer over a base set using functional
// options.
//
// This is the recommended API for file-based use. It provides a fluent
// interface for configuring one composition.
//
// Example:
//
//	result, err := compose.ComposeWithOptions(
//	    compose.WithBaseFile("base/app.yaml"),
//	    compose.WithLayerFile("layers/production.yaml"),
//	)
func ComposeWithOptions(opts ...Option) (*Result, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}

	base, layer, err := loadInputs(cfg)
	if err != nil {
		return nil, err
	}

	return New(cfg.composerConfig()).Compose(base, layer)
}

// DryRunWithOptions previews a composition using functional options. It
// accepts the same options as ComposeWithOptions.
func DryRunWithOptions(opts ...Option) (*Preview, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}

	base, layer, err := loadInputs(cfg)
	if err != nil {
		return nil, err
	}

	return New(cfg.composerConfig()).DryRun(base, layer)
}
