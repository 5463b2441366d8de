package mcpserver

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/staxtools/stax/document"
	"github.com/staxtools/stax/merge"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Compose and merge settings.
	MaxDepth         int
	SequenceMergeKey string

	// Output settings.
	OutputFormat string

	// Input limits.
	MaxInlineSize int64
}

const (
	formatYAML = "yaml"
	formatJSON = "json"
)

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from STAX_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		MaxDepth:         envInt("STAX_MAX_DEPTH", document.DefaultMaxDepth),
		SequenceMergeKey: envString("STAX_SEQUENCE_MERGE_KEY", merge.DefaultMergeKey),
		OutputFormat:     envFormat("STAX_OUTPUT_FORMAT", formatYAML),
		MaxInlineSize:    envInt64("STAX_MAX_INLINE_SIZE", 4<<20),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

func envInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

func envFormat(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if v != formatYAML && v != formatJSON {
		slog.Warn("invalid format env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return v
}
