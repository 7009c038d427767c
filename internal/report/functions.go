// Package report renders template expressions against a comparison,
// filling export headers with session names, dates and diff counts
package report

import (
	"fmt"
	"time"

	"github.com/ncruces/go-strftime"

	"github.com/pstuifzand/tui-diff/internal/diff"
	"github.com/pstuifzand/tui-diff/internal/session"
)

// Context carries the session and compare result a report draws values
// from. Both may be nil; missing data renders as empty strings and zero
// counts.
type Context struct {
	Session *session.Session
	Result  *diff.Result
}

func (c *Context) pane(side string) *session.Pane {
	if c == nil || c.Session == nil {
		return nil
	}
	switch side {
	case "old":
		return c.Session.Old
	case "new":
		return c.Session.New
	}
	return nil
}

func (c *Context) stats() diff.Stats {
	if c == nil || c.Result == nil {
		return diff.Stats{}
	}
	return c.Result.Stats
}

// Name returns the pane name for a side
func (c *Context) Name(side string) string {
	if p := c.pane(side); p != nil {
		return p.Name
	}
	return ""
}

// Path returns the pane file path for a side
func (c *Context) Path(side string) string {
	if p := c.pane(side); p != nil {
		return p.Path
	}
	return ""
}

// LoadedAt returns when a side's content was loaded, as a pipeable date
func (c *Context) LoadedAt(side string) (*DateValue, error) {
	p := c.pane(side)
	if p == nil {
		return nil, fmt.Errorf("mtime needs a side: old or new")
	}
	return &DateValue{t: p.LoadedAt}, nil
}

// Title returns the pane pair label
func (c *Context) Title() string {
	if c == nil || c.Session == nil {
		return ""
	}
	return c.Session.Label()
}

// DateValue passes dates through the pipe chain so an expression like
// mtime:old|date:%Y picks its own format
type DateValue struct {
	t time.Time
}

// Now returns the current time in ISO 8601 format
func Now() (string, error) {
	return time.Now().Format(time.RFC3339), nil
}

// DateFormat returns the current date formatted according to a strftime
// format string
// Example: DateFormat("%Y-%m-%d") returns "2025-08-23"
func DateFormat(format string) (string, error) {
	if format == "" {
		format = "%Y-%m-%d"
	}
	return strftime.Format(format, time.Now()), nil
}

// FormatDateValue formats a DateValue according to a strftime format
// This is what a date: pipe stage calls
func FormatDateValue(dv *DateValue, format string) (string, error) {
	if dv == nil {
		return "", fmt.Errorf("no date value to format")
	}
	if format == "" {
		format = "%Y-%m-%d"
	}
	return strftime.Format(format, dv.t), nil
}
