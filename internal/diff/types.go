package diff

// OpKind discriminates the three edit script operations
type OpKind int

const (
	OpKeep OpKind = iota
	OpDelete
	OpInsert
)

// EditOp is a single operation of a line-level edit script.
// OpKeep carries both indices, OpDelete only OldIndex, OpInsert only
// NewIndex; the unused index is -1. Indices are 0-based positions in the
// line slices handed to the differ.
type EditOp struct {
	Kind     OpKind
	OldIndex int
	NewIndex int
}

// CharSegment is a contiguous run of characters from one side of a paired
// line. Concatenating all segments of a side reproduces that side's full
// line text exactly.
type CharSegment struct {
	Text    string
	Changed bool
}

// RecordKind indicates the kind of diff record for rendering
type RecordKind int

const (
	RecordUnchanged RecordKind = iota
	RecordAdded
	RecordDeleted
	RecordReplaced
)

// DiffRecord is one rendered row of a comparison. Line numbers are 1-based
// and independent per side; 0 means the record has no content on that side
// and the number column renders blank.
//
// RecordUnchanged, RecordAdded and RecordDeleted carry their line content
// in Text. RecordReplaced carries both sides as segment runs instead; use
// OldText/NewText to recover the full lines.
type DiffRecord struct {
	Kind        RecordKind
	OldLine     int
	NewLine     int
	Text        string
	OldSegments []CharSegment
	NewSegments []CharSegment
}

// OldText returns the record's full old-side line, or "" when the record
// has no old side.
func (r *DiffRecord) OldText() string {
	if r.Kind == RecordReplaced {
		return joinSegments(r.OldSegments)
	}
	if r.Kind == RecordAdded {
		return ""
	}
	return r.Text
}

// NewText returns the record's full new-side line, or "" when the record
// has no new side.
func (r *DiffRecord) NewText() string {
	if r.Kind == RecordReplaced {
		return joinSegments(r.NewSegments)
	}
	if r.Kind == RecordDeleted {
		return ""
	}
	return r.Text
}

// HasOldSide reports whether the record carries old-side content
func (r *DiffRecord) HasOldSide() bool {
	return r.Kind == RecordUnchanged || r.Kind == RecordDeleted || r.Kind == RecordReplaced
}

// HasNewSide reports whether the record carries new-side content
func (r *DiffRecord) HasNewSide() bool {
	return r.Kind == RecordUnchanged || r.Kind == RecordAdded || r.Kind == RecordReplaced
}

func joinSegments(segments []CharSegment) string {
	if len(segments) == 1 {
		return segments[0].Text
	}
	var text string
	for _, seg := range segments {
		text += seg.Text
	}
	return text
}

// KindName returns the lowercase kind word used in filters, exports and
// status output
func (k RecordKind) KindName() string {
	switch k {
	case RecordUnchanged:
		return "same"
	case RecordAdded:
		return "added"
	case RecordDeleted:
		return "removed"
	case RecordReplaced:
		return "changed"
	}
	return "unknown"
}

// Stats counts records by kind for one comparison
type Stats struct {
	Unchanged int
	Added     int
	Removed   int
	Changed   int
}

// Total returns the number of records counted
func (s Stats) Total() int {
	return s.Unchanged + s.Added + s.Removed + s.Changed
}

// Result is the full outcome of one comparison. Records are produced fresh
// per call and never mutated afterwards.
type Result struct {
	Records []DiffRecord
	Stats   Stats
}
