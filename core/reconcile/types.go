package reconcile

import (
	"errors"
	"fmt"
	"regexp"
)

// Document is the full text of a seed document.
// It is treated as an immutable value: every operation in this package returns
// a new Document instead of modifying the input.
type Document string

// String returns the document text.
func (d Document) String() string {
	return string(d)
}

// Markers delimit a block inside a Document.
type Markers struct {
	// Label names the block in reports and warnings (e.g., "contents").
	Label string

	// Start matches the block-start label comment.
	Start *regexp.Regexp

	// End matches the statement terminator closing the block.
	End *regexp.Regexp
}

// NewMarkers compiles start and end patterns into Markers.
func NewMarkers(label, start, end string) (Markers, error) {
	startRe, err := regexp.Compile(start)
	if err != nil {
		return Markers{}, fmt.Errorf("invalid start marker for %s: %w", label, err)
	}
	endRe, err := regexp.Compile(end)
	if err != nil {
		return Markers{}, fmt.Errorf("invalid end marker for %s: %w", label, err)
	}
	return Markers{Label: label, Start: startRe, End: endRe}, nil
}

// MustMarkers is like NewMarkers but panics on an invalid pattern.
// It is intended for package-level defaults.
func MustMarkers(label, start, end string) Markers {
	m, err := NewMarkers(label, start, end)
	if err != nil {
		panic(err)
	}
	return m
}

// Block is a located span of a Document.
type Block struct {
	// Label is copied from the Markers used to locate the block.
	Label string

	// Start is the byte offset of the first character of the start marker.
	Start int

	// End is the byte offset just past the end marker.
	End int

	// Text is the raw block text, doc[Start:End].
	Text string
}

// Tuple holds the fields of one record tuple.
// Quoted fields are unquoted; other fields are kept verbatim (trimmed).
type Tuple []string

// BlockSpec describes a block and the column holding the identifier of interest.
type BlockSpec struct {
	Markers

	// KeyColumn is the zero-based field index of the identifier in each tuple.
	// For the parent block this is the primary key, for the child block the foreign key.
	KeyColumn int
}

// BlockReplacement replaces a whole block with pre-built text.
type BlockReplacement struct {
	// Target locates the block to replace.
	Target Markers

	// Text is the complete replacement, including its own markers.
	Text string
}

// Spec defines the configuration for a reconciliation operation.
type Spec struct {
	// Parent is the block whose identifiers are canonical.
	Parent BlockSpec

	// Child is the block whose foreign keys must resolve into Parent.
	Child BlockSpec

	// Placeholders are identifiers known to appear in the child block, in
	// the order they should be mapped onto the canonical parent sequence.
	Placeholders []string

	// Table is a fixed list of known-bad to known-good identifier pairs.
	Table []Pair

	// Replacements are canonical blocks used when block replacement is enabled.
	Replacements []BlockReplacement
}

// ActionType identifies the strategy that produced an action.
type ActionType string

const (
	// ActionReplaceBlock replaces a whole block with canonical text.
	ActionReplaceBlock ActionType = "replace_block"
	// ActionRemap substitutes placeholders positionally with canonical identifiers.
	ActionRemap ActionType = "remap"
	// ActionTable substitutes identifiers from the literal replacement table.
	ActionTable ActionType = "table"
)

// Pair is a single old to new identifier substitution.
type Pair struct {
	Old    string     `json:"old"`
	New    string     `json:"new"`
	Source ActionType `json:"source"`
}

// Mapping is an ordered list of substitutions.
type Mapping []Pair

// Olds returns the old identifiers in mapping order.
func (m Mapping) Olds() []string {
	out := make([]string, 0, len(m))
	for _, p := range m {
		out = append(out, p.Old)
	}
	return out
}

// Options controls which strategies run.
type Options struct {
	// Remap enables the positional placeholder remap.
	Remap bool

	// Table enables the literal replacement table.
	Table bool

	// ReplaceBlocks enables whole-block replacement with canonical text.
	ReplaceBlocks bool

	// Strict turns planning failures into errors instead of warnings.
	Strict bool
}

// DefaultOptions enables both mapping strategies and leaves block replacement off.
func DefaultOptions() Options {
	return Options{Remap: true, Table: true}
}

// WarningKind classifies a non-fatal problem.
type WarningKind string

const (
	// WarnMissingBlock reports that a marker pair was not found.
	WarnMissingBlock WarningKind = "missing_block"
	// WarnPlanning reports a strategy skipped because its mapping was invalid.
	WarnPlanning WarningKind = "planning"
	// WarnMalformedID reports an identifier that is not a canonical UUID.
	WarnMalformedID WarningKind = "malformed_id"
)

// Warning is a non-fatal condition reported alongside a result.
type Warning struct {
	Kind    WarningKind `json:"kind"`
	Message string      `json:"message"`
}

// String formats the warning for logs.
func (w Warning) String() string {
	return string(w.Kind) + ": " + w.Message
}

var (
	// ErrBlockNotFound is returned when a start or end marker is absent.
	ErrBlockNotFound = errors.New("block not found")

	// ErrAmbiguousOrder is returned when the canonical sequence contains duplicates,
	// so a positional remap cannot be trusted.
	ErrAmbiguousOrder = errors.New("canonical identifiers are not unique")

	// ErrConflictingMapping is returned when one identifier maps to two targets.
	ErrConflictingMapping = errors.New("conflicting mapping")

	// ErrChainedMapping is returned when a target identifier is also a source.
	ErrChainedMapping = errors.New("chained mapping")
)

// MissingBlockError reports which marker of which block was not found.
type MissingBlockError struct {
	Label  string
	Marker string // "start" or "end"
}

func (e *MissingBlockError) Error() string {
	return fmt.Sprintf("%s: %s marker for block %q", ErrBlockNotFound, e.Marker, e.Label)
}

func (e *MissingBlockError) Unwrap() error {
	return ErrBlockNotFound
}
