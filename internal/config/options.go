package config

import (
	"fmt"
	"strconv"
	"strings"
)

// OptionSpec represents a typed definition for a configuration option
type OptionSpec struct {
	Name    string
	Kind    string   // enum, number, bool, string, path
	Values  []string // For enum: values, for number: [min-max]
	Default string
	Help    string
}

// builtinOptions returns the option specs for every option the
// application understands, in display order
func builtinOptions() []*OptionSpec {
	return []*OptionSpec{
		{Name: "theme", Kind: "string", Help: "color theme name or file"},
		{Name: "editor", Kind: "string", Help: "external editor command"},
		{Name: "context", Kind: "number", Values: []string{"0-99"}, Default: "3",
			Help: "unchanged lines kept visible around changes"},
		{Name: "tab-width", Kind: "number", Values: []string{"1-16"}, Default: "4",
			Help: "columns per tab stop"},
		{Name: "max-compare-bytes", Kind: "number", Default: "1048576",
			Help: "warn when combined input size exceeds this"},
		{Name: "wrap", Kind: "bool", Default: "false",
			Help: "soft-wrap long lines in side-by-side view"},
		{Name: "week-start", Kind: "number", Values: []string{"0-6"}, Default: "0",
			Help: "first day of the week in the snapshot calendar (0=Sunday)"},
		{Name: "history-size", Kind: "number", Values: []string{"1-10000"}, Default: "100",
			Help: "entries kept per input history"},
		{Name: "snapshot-dir", Kind: "path",
			Help: "snapshot directory (default ~/.local/share/tui-diff/snapshots)"},
		{Name: "report-template", Kind: "string",
			Help: "markdown export header template"},
	}
}

// defaults maps option names to their built-in default values, used as
// the last tier of Config.Get
var defaults = defaultValues()

func defaultValues() map[string]string {
	values := make(map[string]string)
	for _, spec := range builtinOptions() {
		if spec.Default != "" {
			values[spec.Name] = spec.Default
		}
	}
	return values
}

// Validate checks if a value is valid for this option
func (o *OptionSpec) Validate(value string) error {
	switch o.Kind {
	case "enum":
		for _, v := range o.Values {
			if v == value {
				return nil
			}
		}
		return fmt.Errorf("value '%s' is not a valid %s (must be one of: %s)",
			value, o.Name, strings.Join(o.Values, ", "))

	case "number":
		num, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("value '%s' for %s is not a valid number", value, o.Name)
		}
		if len(o.Values) == 0 {
			if num < 0 {
				return fmt.Errorf("value %d for %s cannot be negative", num, o.Name)
			}
			return nil
		}
		parts := strings.Split(o.Values[0], "-")
		min, _ := strconv.Atoi(parts[0])
		max, _ := strconv.Atoi(parts[1])
		if num < min || num > max {
			return fmt.Errorf("value %d for %s is out of range (%d-%d)",
				num, o.Name, min, max)
		}
		return nil

	case "bool":
		if value != "true" && value != "false" {
			return fmt.Errorf("value '%s' for %s is not a valid boolean (true or false)", value, o.Name)
		}
		return nil

	case "string":
		// Any string is valid
		return nil

	case "path":
		if value == "" {
			return fmt.Errorf("%s cannot be empty", o.Name)
		}
		return nil

	default:
		return fmt.Errorf("unknown option kind: %s", o.Kind)
	}
}

// KindString describes the option's type for listings, e.g. "number 0-99"
func (o *OptionSpec) KindString() string {
	switch o.Kind {
	case "enum":
		return "enum " + strings.Join(o.Values, "|")
	case "number":
		if len(o.Values) > 0 {
			return "number " + o.Values[0]
		}
		return "number"
	default:
		return o.Kind
	}
}

// OptionRegistry manages the typed option definitions used to validate
// :set commands
type OptionRegistry struct {
	options map[string]*OptionSpec
	order   []string
}

// NewOptionRegistry creates a registry populated with the built-in options
func NewOptionRegistry() *OptionRegistry {
	r := &OptionRegistry{
		options: make(map[string]*OptionSpec),
	}
	for _, spec := range builtinOptions() {
		r.options[spec.Name] = spec
		r.order = append(r.order, spec.Name)
	}
	return r
}

// GetOption gets an option definition by name
func (r *OptionRegistry) GetOption(name string) *OptionSpec {
	return r.options[name]
}

// Known reports whether the option name is a registered option
func (r *OptionRegistry) Known(name string) bool {
	_, exists := r.options[name]
	return exists
}

// Validate validates a value against the registered option. Unknown
// options pass: they are stored as-is and flagged by the caller
func (r *OptionRegistry) Validate(name, value string) error {
	spec, exists := r.options[name]
	if !exists {
		return nil
	}
	return spec.Validate(value)
}

// Names returns the registered option names in display order
func (r *OptionRegistry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}
