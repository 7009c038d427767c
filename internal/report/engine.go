package report

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Expressions look like {{function}}, {{function:args}}, or pipe chains
// such as {{mtime:new|date:%Y-%m-%d}}
var exprPattern = regexp.MustCompile(`\{\{([^}]+)\}\}`)

// ProcessTemplate evaluates template expressions in text against ctx.
// Unknown functions expand to nothing; a broken pipe chain is an error.
func ProcessTemplate(text string, ctx *Context) (string, error) {
	result := text

	matches := exprPattern.FindAllStringSubmatch(result, -1)
	for _, match := range matches {
		fullExpr := match[0]
		innerExpr := match[1]

		value, err := evaluateExpression(innerExpr, ctx)
		if err != nil {
			return "", err
		}
		result = strings.ReplaceAll(result, fullExpr, value)
	}

	return result, nil
}

// evaluateExpression evaluates a single expression with support for piping
// Example: mtime:old|date:%A %B %d
func evaluateExpression(expr string, ctx *Context) (string, error) {
	parts := strings.Split(expr, "|")

	rawValue, err := processFunction(parts[0], ctx)
	if err != nil {
		return "", err
	}

	if len(parts) == 1 {
		return convertToString(rawValue), nil
	}

	// The value from each step becomes input for the next
	value := rawValue
	for i := 1; i < len(parts); i++ {
		pipeResult, err := applyPipe(strings.TrimSpace(parts[i]), value)
		if err != nil {
			return "", err
		}
		value = pipeResult
	}

	return convertToString(value), nil
}

// convertToString converts a value (string or DateValue) to string
func convertToString(val interface{}) string {
	if val == nil {
		return ""
	}
	if str, ok := val.(string); ok {
		return str
	}
	if dv, ok := val.(*DateValue); ok {
		// Default formatting if the DateValue wasn't piped
		formatted, _ := FormatDateValue(dv, "%Y-%m-%d")
		return formatted
	}
	return ""
}

// applyPipe applies a pipe operation to the value from the previous step
func applyPipe(pipeExpr string, prevValue interface{}) (string, error) {
	parts := strings.SplitN(pipeExpr, ":", 2)
	function := strings.TrimSpace(parts[0])
	var args string
	if len(parts) > 1 {
		args = strings.TrimSpace(parts[1])
	}

	if function == "date" {
		if dv, ok := prevValue.(*DateValue); ok {
			return FormatDateValue(dv, args)
		}
	}

	return "", fmt.Errorf("unknown pipe function: %s", function)
}

// processFunction handles individual function calls
// Format: "function" or "function:args"
// Returns a string or a *DateValue for date-producing functions
func processFunction(funcExpr string, ctx *Context) (interface{}, error) {
	parts := strings.SplitN(strings.TrimSpace(funcExpr), ":", 2)
	function := strings.TrimSpace(parts[0])
	var args string
	if len(parts) > 1 {
		args = strings.TrimSpace(parts[1])
	}

	switch function {
	case "now":
		return Now()
	case "date":
		return DateFormat(args)
	case "old", "new":
		return ctx.Name(function), nil
	case "oldpath":
		return ctx.Path("old"), nil
	case "newpath":
		return ctx.Path("new"), nil
	case "mtime":
		return ctx.LoadedAt(args)
	case "added":
		return strconv.Itoa(ctx.stats().Added), nil
	case "removed":
		return strconv.Itoa(ctx.stats().Removed), nil
	case "changed":
		return strconv.Itoa(ctx.stats().Changed), nil
	case "unchanged":
		return strconv.Itoa(ctx.stats().Unchanged), nil
	case "total":
		return strconv.Itoa(ctx.stats().Total()), nil
	case "title":
		return ctx.Title(), nil
	default:
		return "", nil // Unknown function, expands to nothing
	}
}
