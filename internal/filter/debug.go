package filter

import (
	"fmt"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"github.com/pstuifzand/tui-diff/internal/diff"
)

// DebugInfo contains detailed information about why a record matched or
// didn't match
type DebugInfo struct {
	Record  *diff.DiffRecord
	Expr    FilterExpr
	Matched bool
	Reason  string
	Dump    string // raw record dump for the explain view
}

// ExpressionString returns a pretty-printed representation of the filter
// expression
func ExpressionString(expr FilterExpr) string {
	return prettyPrintExpr(expr, 0)
}

func prettyPrintExpr(expr FilterExpr, indent int) string {
	indentStr := strings.Repeat("  ", indent)

	switch e := expr.(type) {
	case *AndExpr:
		left := prettyPrintExpr(e.left, indent+1)
		right := prettyPrintExpr(e.right, indent+1)
		return fmt.Sprintf("%s(and\n%s\n%s\n%s)", indentStr, left, right, indentStr)

	case *OrExpr:
		left := prettyPrintExpr(e.left, indent+1)
		right := prettyPrintExpr(e.right, indent+1)
		return fmt.Sprintf("%s(or\n%s\n%s\n%s)", indentStr, left, right, indentStr)

	case *NotExpr:
		inner := prettyPrintExpr(e.expr, indent+1)
		return fmt.Sprintf("%s(not\n%s\n%s)", indentStr, inner, indentStr)

	default:
		return indentStr + expr.String()
	}
}

// DebugMatch returns detailed information about why a record matched or
// didn't match, including a raw dump of the record itself
func DebugMatch(record *diff.DiffRecord, expr FilterExpr) *DebugInfo {
	return &DebugInfo{
		Record:  record,
		Expr:    expr,
		Matched: expr.Matches(record),
		Reason:  evaluateWithReason(record, expr),
		Dump:    spew.Sdump(record),
	}
}

func evaluateWithReason(record *diff.DiffRecord, expr FilterExpr) string {
	switch e := expr.(type) {
	case *TextExpr:
		if e.Matches(record) {
			return fmt.Sprintf("Text contains %q", e.term)
		}
		return fmt.Sprintf("Text does not contain %q", e.term)

	case *FuzzyExpr:
		if e.Matches(record) {
			return fmt.Sprintf("Text fuzzy-matches %q", e.term)
		}
		return fmt.Sprintf("Text does not fuzzy-match %q", e.term)

	case *RegexExpr:
		if e.Matches(record) {
			return fmt.Sprintf("Text matches /%s/", e.pattern)
		}
		return fmt.Sprintf("Text does not match /%s/", e.pattern)

	case *KindExpr:
		if e.Matches(record) {
			return fmt.Sprintf("Record kind is %s", e.kind.KindName())
		}
		return fmt.Sprintf("Record kind is %s, not %s", record.Kind.KindName(), e.kind.KindName())

	case *LineExpr:
		side, line := "old", record.OldLine
		if e.side == "n" {
			side, line = "new", record.NewLine
		}
		if line == 0 {
			return fmt.Sprintf("Record has no %s side", side)
		}
		if e.Matches(record) {
			return fmt.Sprintf("%s line %d matches %s%d", side, line, e.op, e.value)
		}
		return fmt.Sprintf("%s line %d does not match %s%d", side, line, e.op, e.value)

	case *LenExpr:
		w := e.width(record)
		if e.Matches(record) {
			return fmt.Sprintf("Width %d matches %s%d", w, e.op, e.value)
		}
		return fmt.Sprintf("Width %d does not match %s%d", w, e.op, e.value)

	case *AndExpr:
		leftMatch := e.left.Matches(record)
		rightMatch := e.right.Matches(record)
		if leftMatch && rightMatch {
			return fmt.Sprintf("Both conditions match: %s AND %s",
				evaluateWithReason(record, e.left), evaluateWithReason(record, e.right))
		}
		if !leftMatch {
			return fmt.Sprintf("Left condition fails: %s", evaluateWithReason(record, e.left))
		}
		return fmt.Sprintf("Right condition fails: %s", evaluateWithReason(record, e.right))

	case *OrExpr:
		if e.left.Matches(record) {
			return fmt.Sprintf("Left condition matches: %s", evaluateWithReason(record, e.left))
		}
		return fmt.Sprintf("Right condition matches: %s", evaluateWithReason(record, e.right))

	case *NotExpr:
		if !e.expr.Matches(record) {
			return fmt.Sprintf("Condition is false (inverted): %s", evaluateWithReason(record, e.expr))
		}
		return fmt.Sprintf("Condition is true (inverted): %s", evaluateWithReason(record, e.expr))

	case *AlwaysMatchExpr:
		return "Empty filter matches everything"

	default:
		return expr.String()
	}
}

// FormatDebugInfo returns a formatted string representation of debug
// information
func FormatDebugInfo(debug *DebugInfo) string {
	var sb strings.Builder

	sb.WriteString("Expression:\n")
	sb.WriteString(ExpressionString(debug.Expr))
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("Matched: %v\n", debug.Matched))
	sb.WriteString(fmt.Sprintf("Reason: %s\n", debug.Reason))
	sb.WriteString("\nRecord:\n")
	sb.WriteString(debug.Dump)

	return sb.String()
}
