package optparse

import (
	"fmt"
	"regexp"
	"strings"
)

// ArgMode declares whether an option takes an argument.
type ArgMode int

const (
	// ArgDefault inherits the parser's Arguments setting.
	ArgDefault ArgMode = iota
	// ArgNone declares a switch.
	ArgNone
	// ArgRequired declares an option that must be followed by an argument.
	ArgRequired
	// ArgOptional declares an option that may be followed by an argument.
	ArgOptional
)

// Callback is called when an option is matched. value is the cast value
// of the option, or nil for switches and options given without their
// optional argument. A non-nil error aborts the scan.
type Callback func(value any) error

// OptionConfig declares an option. Short or Long must be set.
type OptionConfig struct {
	Short       string   // single character flag, without the dash
	Long        string   // long flag, without the dashes
	Description string   // shown in help
	Arg         ArgMode  // argument requirement
	As          ArgType  // cast applied when reading the value
	Default     any      // value read when the option was never given
	Callback    Callback // called on every match
	Delimiter   string   // ArgArray separator, "," when empty
	Limit       int      // ArgArray split limit, 0 is unbounded
	Match       *regexp.Regexp
	Unless      string // flag whose presence anywhere in the input skips Callback
	Tail        bool   // render after the other options in help
	HelpText    string // replaces the generated help line
	Hidden      bool   // leave the option out of help
	Required    bool   // the scan fails when the option is absent
}

// Option is a declared flag together with the state of its matches.
type Option struct {
	OptionConfig

	expectsArgument         bool
	acceptsOptionalArgument bool

	count   int
	raw     any
	forced  bool
	onForce Callback // told about pinned values, see AddFlagSet
	parser  *Parser
}

func newOption(p *Parser, cfg OptionConfig) (*Option, error) {
	cfg.Short = stripDashes(cfg.Short)
	cfg.Long = stripDashes(cfg.Long)

	if cfg.Short == "" && cfg.Long == "" {
		return nil, fmt.Errorf("%w: a short or long flag is required", ErrInvalidFlag)
	}
	if len([]rune(cfg.Short)) > 1 {
		return nil, fmt.Errorf("%w: short flag %q must be a single character", ErrInvalidFlag, cfg.Short)
	}
	if cfg.Delimiter == "" {
		cfg.Delimiter = DefaultDelimiter
	}

	opt := &Option{OptionConfig: cfg, parser: p}

	switch cfg.Arg {
	case ArgRequired:
		opt.expectsArgument = true
	case ArgOptional:
		opt.acceptsOptionalArgument = true
	case ArgDefault:
		opt.expectsArgument = p != nil && p.config.Arguments
	}

	return opt, nil
}

// Key is the long flag when set, otherwise the short flag.
func (o *Option) Key() string {
	if o.Long != "" {
		return o.Long
	}
	return o.Short
}

// Count is the number of times the option was matched. It is not reset
// between scans.
func (o *Option) Count() int {
	return o.count
}

// Forced reports whether the value was pinned, by --no-name or a switch
// cluster.
func (o *Option) Forced() bool {
	return o.forced
}

// ExpectsArgument reports whether the option requires an argument.
func (o *Option) ExpectsArgument() bool {
	return o.expectsArgument
}

// AcceptsOptionalArgument reports whether the option may take an argument.
func (o *Option) AcceptsOptionalArgument() bool {
	return o.acceptsOptionalArgument
}

// setArgumentValue stores a matched value. Array options accumulate the
// delimited pieces of string values and ignore anything else, all other
// types keep the last write.
func (o *Option) setArgumentValue(value any) {
	if o.As != ArgArray {
		o.raw = value
		return
	}

	list, _ := o.raw.([]string)
	if list == nil {
		list = []string{}
	}
	if s, ok := value.(string); ok {
		list = append(list, splitLimit(s, o.Delimiter, o.Limit)...)
	}
	o.raw = list
}

// forceArgumentValue pins the value so reads skip defaults and casting.
func (o *Option) forceArgumentValue(value any) {
	o.raw = value
	o.forced = true
}

// pin forces value and reports it to onForce. Pinned options never run
// their Callback.
func (o *Option) pin(value any) error {
	o.forceArgumentValue(value)
	if o.onForce == nil {
		return nil
	}
	if err := o.onForce(value); err != nil {
		return callbackError(o.Key(), err)
	}
	return nil
}

// Value returns the cast value of the option, falling back to Default.
// It is nil when neither is set.
func (o *Option) Value() any {
	if o.forced {
		return o.raw
	}
	value := o.raw
	if value == nil {
		value = o.Default
	}
	if value == nil {
		return nil
	}
	return castValue(o.As, value)
}

// invoke calls the callback, if any, with arg.
func (o *Option) invoke(arg any) error {
	if o.Callback == nil {
		return nil
	}
	if err := o.Callback(arg); err != nil {
		return callbackError(o.Key(), err)
	}
	return nil
}

// omitExecution reports whether the Unless flag occurs in tokens.
func (o *Option) omitExecution(tokens []string) bool {
	if o.Unless == "" {
		return false
	}
	unless := strings.TrimLeft(o.Unless, ShortPrefix)
	for _, token := range tokens {
		if stripDashes(token) == unless {
			return true
		}
	}
	return false
}

func (o *Option) reset() {
	o.count = 0
	o.raw = nil
	o.forced = false
}

// String renders the option as a help line.
func (o *Option) String() string {
	if o.HelpText != "" {
		return o.HelpText
	}

	longest := 0
	if o.parser != nil {
		longest = o.parser.options.longestFlag()
	}

	var b strings.Builder
	b.WriteString("    ")
	if o.Short != "" {
		b.WriteString(ShortPrefix + o.Short + ", ")
	} else {
		b.WriteString(strings.Repeat(" ", 4))
	}

	if o.Long != "" {
		b.WriteString(LongPrefix + o.Long)
		b.WriteString(strings.Repeat(" ", max(longest-len(o.Long), 0)+6))
	} else {
		b.WriteString(strings.Repeat(" ", longest+8))
	}

	b.WriteString(o.Description)
	return strings.TrimRight(b.String(), " ")
}
