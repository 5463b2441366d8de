// Package fieldpath provides dotted field path parsing and resolution for
// document trees.
//
// A field path addresses a node inside a document by naming the mapping keys
// on the way down from the root. Paths are the addressing syntax used by
// field transforms and by per-path sequence merge strategies.
//
// Supported syntax:
//   - field or field.sub (child access)
//   - ['key'] or ["key"] (bracket-quoted child access, for keys containing
//     characters outside [A-Za-z0-9_-])
//
// Not supported:
//   - sequence indices ([0]) - paths address mapping fields only
//   - wildcards and filters
//   - recursive descent
package fieldpath

import (
	"fmt"
	"strings"

	"github.com/staxtools/stax/document"
)

// Path represents a parsed field path expression.
type Path struct {
	raw      string
	segments []string
}

// Parse parses a field path expression into a Path.
//
// Examples:
//
//	Parse("spec.replicas")
//	Parse("metadata.labels['app.kubernetes.io/name']")
//	Parse("spec.template.spec.containers")
func Parse(expr string) (*Path, error) {
	if expr == "" {
		return nil, fmt.Errorf("fieldpath: empty expression")
	}

	p := &parser{
		input: expr,
		pos:   0,
	}

	segments, err := p.parse()
	if err != nil {
		return nil, err
	}

	return &Path{
		raw:      expr,
		segments: segments,
	}, nil
}

// String returns the canonical rendering of the path. Plain identifier keys
// render in dotted form; all other keys render bracket quoted, so two paths
// addressing the same node always render identically.
func (p *Path) String() string {
	out := ""
	for _, seg := range p.segments {
		out = Child(out, seg)
	}
	return out
}

// Segments returns a copy of the path's mapping keys in order.
func (p *Path) Segments() []string {
	out := make([]string, len(p.segments))
	copy(out, p.segments)
	return out
}

// Len returns the number of segments in the path.
func (p *Path) Len() int {
	return len(p.segments)
}

// Last returns the final mapping key of the path.
func (p *Path) Last() string {
	if len(p.segments) == 0 {
		return ""
	}
	return p.segments[len(p.segments)-1]
}

// Resolve walks the path through nested mappings starting at root and
// returns the addressed node. It returns false if any segment is missing
// or an intermediate node is not a mapping.
func (p *Path) Resolve(root *document.Node) (*document.Node, bool) {
	current := root
	for _, seg := range p.segments {
		if !current.IsMapping() {
			return nil, false
		}
		current = current.Get(seg)
		if current == nil {
			return nil, false
		}
	}
	return current, true
}

// ResolveParent walks all but the last segment and returns the mapping that
// holds (or would hold) the final key. When the walk fails it returns the
// first segment that was missing or did not resolve to a mapping.
//
// The final key itself is not required to exist; callers decide whether to
// read, create, or overwrite it.
func (p *Path) ResolveParent(root *document.Node) (parent *document.Node, missing string, ok bool) {
	if len(p.segments) == 0 {
		return nil, "", false
	}
	current := root
	for _, seg := range p.segments[:len(p.segments)-1] {
		if !current.IsMapping() {
			return nil, seg, false
		}
		next := current.Get(seg)
		if next == nil || !next.IsMapping() {
			return nil, seg, false
		}
		current = next
	}
	if !current.IsMapping() {
		return nil, p.Last(), false
	}
	return current, "", true
}

// EnsureParent walks all but the last segment, creating missing
// intermediate mappings along the way, and returns the mapping that holds
// (or would hold) the final key. It fails when an existing intermediate node
// is not a mapping, naming the offending segment.
func (p *Path) EnsureParent(root *document.Node) (*document.Node, error) {
	if len(p.segments) == 0 {
		return nil, fmt.Errorf("fieldpath: empty path")
	}
	if !root.IsMapping() {
		return nil, fmt.Errorf("fieldpath: root is not a mapping")
	}
	current := root
	for _, seg := range p.segments[:len(p.segments)-1] {
		next := current.EnsureMapping(seg)
		if next == nil {
			return nil, fmt.Errorf("fieldpath: segment %q is not a mapping", seg)
		}
		current = next
	}
	return current, nil
}

// Child appends a mapping key to a dotted path, bracket quoting keys that
// are not plain identifiers. An empty prefix yields the key alone.
func Child(prefix, key string) string {
	if isBareKey(key) {
		if prefix == "" {
			return key
		}
		return prefix + "." + key
	}
	escaped := strings.ReplaceAll(key, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, "'", `\'`)
	return prefix + "['" + escaped + "']"
}

// Index appends a sequence index to a dotted path. Indexed paths are for
// display in diagnostics; Parse does not accept them.
func Index(prefix string, index int) string {
	return fmt.Sprintf("%s[%d]", prefix, index)
}

// parser is the internal field path parser.
type parser struct {
	input string
	pos   int
}

func (p *parser) parse() ([]string, error) {
	var segments []string

	// The first segment has no leading dot.
	seg, err := p.parseSegment(len(segments) == 0)
	if err != nil {
		return nil, err
	}
	segments = append(segments, seg)

	for p.pos < len(p.input) {
		ch := p.peek()

		switch ch {
		case '.':
			p.advance()
			seg, err := p.parseSegment(false)
			if err != nil {
				return nil, err
			}
			segments = append(segments, seg)

		case '[':
			seg, err := p.parseBracketSegment()
			if err != nil {
				return nil, err
			}
			segments = append(segments, seg)

		default:
			return nil, fmt.Errorf("fieldpath: unexpected character %q at position %d", ch, p.pos)
		}
	}

	return segments, nil
}

func (p *parser) parseSegment(first bool) (string, error) {
	if p.pos >= len(p.input) {
		return "", fmt.Errorf("fieldpath: unexpected end of expression")
	}

	if p.peek() == '[' {
		if !first {
			return "", fmt.Errorf("fieldpath: unexpected '[' after '.' at position %d", p.pos)
		}
		return p.parseBracketSegment()
	}

	key := p.parseIdentifier()
	if key == "" {
		return "", fmt.Errorf("fieldpath: expected identifier at position %d", p.pos)
	}
	return key, nil
}

func (p *parser) parseBracketSegment() (string, error) {
	// Caller has seen '['.
	p.advance()
	if p.pos >= len(p.input) {
		return "", fmt.Errorf("fieldpath: unexpected end after '['")
	}

	ch := p.peek()
	if ch != '\'' && ch != '"' {
		return "", fmt.Errorf("fieldpath: expected quoted key in brackets at position %d (indices are not supported)", p.pos)
	}

	quote := ch
	p.advance()
	key, err := p.parseQuotedString(quote)
	if err != nil {
		return "", err
	}
	if !p.consume(']') {
		return "", fmt.Errorf("fieldpath: expected ']' after quoted key")
	}
	return key, nil
}

func (p *parser) parseIdentifier() string {
	start := p.pos
	for p.pos < len(p.input) {
		if isIdentChar(p.input[p.pos]) {
			p.pos++
		} else {
			break
		}
	}
	return p.input[start:p.pos]
}

func (p *parser) parseQuotedString(quote byte) (string, error) {
	var result strings.Builder
	for p.pos < len(p.input) {
		ch := p.input[p.pos]
		if ch == quote {
			p.pos++
			return result.String(), nil
		}
		if ch == '\\' && p.pos+1 < len(p.input) {
			p.pos++
			escaped := p.input[p.pos]
			switch escaped {
			case 'n':
				result.WriteByte('\n')
			case 't':
				result.WriteByte('\t')
			case '\\':
				result.WriteByte('\\')
			case '\'':
				result.WriteByte('\'')
			case '"':
				result.WriteByte('"')
			default:
				result.WriteByte(escaped)
			}
			p.pos++
			continue
		}
		result.WriteByte(ch)
		p.pos++
	}
	return "", fmt.Errorf("fieldpath: unterminated string at position %d", p.pos)
}

func (p *parser) peek() byte {
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *parser) advance() {
	if p.pos < len(p.input) {
		p.pos++
	}
}

func (p *parser) consume(ch byte) bool {
	if p.peek() == ch {
		p.advance()
		return true
	}
	return false
}

func isIdentChar(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') ||
		(ch >= 'A' && ch <= 'Z') ||
		(ch >= '0' && ch <= '9') ||
		ch == '_' || ch == '-'
}

func isBareKey(key string) bool {
	if key == "" {
		return false
	}
	for i := 0; i < len(key); i++ {
		if !isIdentChar(key[i]) {
			return false
		}
	}
	return true
}
