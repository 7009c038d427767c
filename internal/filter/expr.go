package filter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mattn/go-runewidth"

	"github.com/pstuifzand/tui-diff/internal/diff"
)

// FilterExpr represents a filter expression that can match diff records
type FilterExpr interface {
	Matches(record *diff.DiffRecord) bool
	String() string // For debug output
}

// sides returns the searchable text of both sides of a record. Records
// with one side only yield an empty string for the other.
func sides(record *diff.DiffRecord) (string, string) {
	return record.OldText(), record.NewText()
}

// TextExpr matches records whose text contains the search term on either
// side (case-insensitive)
type TextExpr struct {
	term string
}

func NewTextExpr(term string) *TextExpr {
	return &TextExpr{term: strings.ToLower(term)}
}

func (e *TextExpr) Matches(record *diff.DiffRecord) bool {
	oldText, newText := sides(record)
	return strings.Contains(strings.ToLower(oldText), e.term) ||
		strings.Contains(strings.ToLower(newText), e.term)
}

func (e *TextExpr) String() string {
	return fmt.Sprintf("text(%q)", e.term)
}

// FuzzyExpr matches records whose text fuzzy-matches the search term
// (case-insensitive)
type FuzzyExpr struct {
	term string
}

func NewFuzzyExpr(term string) *FuzzyExpr {
	return &FuzzyExpr{term: strings.ToLower(term)}
}

func (e *FuzzyExpr) Matches(record *diff.DiffRecord) bool {
	oldText, newText := sides(record)
	return fuzzy.MatchFold(e.term, oldText) || fuzzy.MatchFold(e.term, newText)
}

func (e *FuzzyExpr) String() string {
	return fmt.Sprintf("fuzzy(%q)", e.term)
}

// GetMatchPositions returns the byte positions in text that correspond to
// the fuzzy-matched characters, for highlighting
func (e *FuzzyExpr) GetMatchPositions(text string) []int {
	if e.term == "" {
		return nil
	}

	lowerText := strings.ToLower(text)
	var positions []int
	textIdx := 0

	for _, termChar := range e.term {
		found := false
		for i := textIdx; i < len(lowerText); i++ {
			if rune(lowerText[i]) == termChar {
				positions = append(positions, i)
				textIdx = i + 1
				found = true
				break
			}
		}
		if !found {
			break
		}
	}

	return positions
}

// RegexExpr matches records whose text matches a regular expression on
// either side
type RegexExpr struct {
	pattern string
	re      *regexp.Regexp
}

func NewRegexExpr(pattern string) (*RegexExpr, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid regex pattern: %v", err)
	}
	return &RegexExpr{pattern: pattern, re: re}, nil
}

func (e *RegexExpr) Matches(record *diff.DiffRecord) bool {
	oldText, newText := sides(record)
	return e.re.MatchString(oldText) || e.re.MatchString(newText)
}

func (e *RegexExpr) String() string {
	return fmt.Sprintf("regex(/%s/)", e.pattern)
}

// KindExpr matches records of one kind, selected by name prefix
type KindExpr struct {
	kind diff.RecordKind
}

func NewKindExpr(criteria string) (*KindExpr, error) {
	if criteria == "" {
		return nil, fmt.Errorf("kind filter requires a value")
	}
	kinds := []diff.RecordKind{
		diff.RecordUnchanged,
		diff.RecordAdded,
		diff.RecordDeleted,
		diff.RecordReplaced,
	}
	lower := strings.ToLower(criteria)
	for _, k := range kinds {
		if strings.HasPrefix(k.KindName(), lower) {
			return &KindExpr{kind: k}, nil
		}
	}
	return nil, fmt.Errorf("unknown record kind %q", criteria)
}

func (e *KindExpr) Matches(record *diff.DiffRecord) bool {
	return record.Kind == e.kind
}

func (e *KindExpr) String() string {
	return fmt.Sprintf("kind(%s)", e.kind.KindName())
}

// LineExpr compares a record's line number on one side. Records absent
// from that side never match.
type LineExpr struct {
	side  string // "o" or "n"
	op    ComparisonOp
	value int
}

func NewLineExpr(side string, op ComparisonOp, value string) (*LineExpr, error) {
	var n int
	if _, err := fmt.Sscanf(value, "%d", &n); err != nil {
		return nil, fmt.Errorf("invalid line number: %s", value)
	}
	return &LineExpr{side: side, op: op, value: n}, nil
}

func (e *LineExpr) Matches(record *diff.DiffRecord) bool {
	line := record.OldLine
	if e.side == "n" {
		line = record.NewLine
	}
	if line == 0 {
		return false
	}
	return compare(line, e.op, e.value)
}

func (e *LineExpr) String() string {
	side := "old-line"
	if e.side == "n" {
		side = "new-line"
	}
	return fmt.Sprintf("%s(%s%d)", side, e.op, e.value)
}

// LenExpr compares the rendered width of a record's longer side
type LenExpr struct {
	op    ComparisonOp
	value int
}

func NewLenExpr(op ComparisonOp, value string) (*LenExpr, error) {
	var n int
	if _, err := fmt.Sscanf(value, "%d", &n); err != nil {
		return nil, fmt.Errorf("invalid length value: %s", value)
	}
	return &LenExpr{op: op, value: n}, nil
}

func (e *LenExpr) Matches(record *diff.DiffRecord) bool {
	return compare(e.width(record), e.op, e.value)
}

// width returns the rendered width of the record's wider side
func (e *LenExpr) width(record *diff.DiffRecord) int {
	oldText, newText := sides(record)
	width := runewidth.StringWidth(oldText)
	if w := runewidth.StringWidth(newText); w > width {
		width = w
	}
	return width
}

func (e *LenExpr) String() string {
	return fmt.Sprintf("len(%s%d)", e.op, e.value)
}

// AlwaysMatchExpr matches all records (for empty queries)
type AlwaysMatchExpr struct{}

func NewAlwaysMatchExpr() *AlwaysMatchExpr {
	return &AlwaysMatchExpr{}
}

func (e *AlwaysMatchExpr) Matches(record *diff.DiffRecord) bool {
	return true
}

func (e *AlwaysMatchExpr) String() string {
	return "always-match"
}

// AndExpr matches if both left and right match
type AndExpr struct {
	left  FilterExpr
	right FilterExpr
}

func NewAndExpr(left, right FilterExpr) *AndExpr {
	return &AndExpr{left: left, right: right}
}

func (e *AndExpr) Matches(record *diff.DiffRecord) bool {
	return e.left.Matches(record) && e.right.Matches(record)
}

func (e *AndExpr) String() string {
	return fmt.Sprintf("(and %s %s)", e.left.String(), e.right.String())
}

// OrExpr matches if either left or right matches
type OrExpr struct {
	left  FilterExpr
	right FilterExpr
}

func NewOrExpr(left, right FilterExpr) *OrExpr {
	return &OrExpr{left: left, right: right}
}

func (e *OrExpr) Matches(record *diff.DiffRecord) bool {
	return e.left.Matches(record) || e.right.Matches(record)
}

func (e *OrExpr) String() string {
	return fmt.Sprintf("(or %s %s)", e.left.String(), e.right.String())
}

// NotExpr matches if the wrapped expression does not match
type NotExpr struct {
	expr FilterExpr
}

func NewNotExpr(expr FilterExpr) *NotExpr {
	return &NotExpr{expr: expr}
}

func (e *NotExpr) Matches(record *diff.DiffRecord) bool {
	return !e.expr.Matches(record)
}

func (e *NotExpr) String() string {
	return fmt.Sprintf("(not %s)", e.expr.String())
}

// compare applies a comparison operator to two ints
func compare(a int, op ComparisonOp, b int) bool {
	switch op {
	case OpEqual:
		return a == b
	case OpNotEqual:
		return a != b
	case OpGreater:
		return a > b
	case OpGreaterEqual:
		return a >= b
	case OpLess:
		return a < b
	case OpLessEqual:
		return a <= b
	}
	return false
}

// Apply filters records, returning the matching subset in order
func Apply(expr FilterExpr, records []diff.DiffRecord) []diff.DiffRecord {
	if expr == nil {
		return records
	}
	if _, ok := expr.(*AlwaysMatchExpr); ok {
		return records
	}
	var out []diff.DiffRecord
	for i := range records {
		if expr.Matches(&records[i]) {
			out = append(out, records[i])
		}
	}
	return out
}

// TextTerms collects the plain substring terms of an expression, for
// match highlighting. Negated terms are left out: highlighting what a
// record must not contain would mark nothing useful
func TextTerms(expr FilterExpr) []string {
	var terms []string
	collectTextTerms(expr, &terms)
	return terms
}

func collectTextTerms(expr FilterExpr, terms *[]string) {
	switch e := expr.(type) {
	case *TextExpr:
		if e.term != "" {
			*terms = append(*terms, e.term)
		}
	case *AndExpr:
		collectTextTerms(e.left, terms)
		collectTextTerms(e.right, terms)
	case *OrExpr:
		collectTextTerms(e.left, terms)
		collectTextTerms(e.right, terms)
	}
}
