package optparse

// OptionRegistry is the ordered list of options declared on a Parser.
//
// Flags are not required to be unique. Lookups walk the list in
// registration order and return the first option whose short or long flag
// matches, so a later duplicate is shadowed by the earlier declaration.
type OptionRegistry struct {
	options []*Option
}

// Add appends opt to the registry.
func (reg *OptionRegistry) Add(opt *Option) {
	reg.options = append(reg.options, opt)
}

// Lookup returns the first option whose short or long flag equals flag.
// flag is given bare, without dashes.
func (reg *OptionRegistry) Lookup(flag string) *Option {
	if flag == "" {
		return nil
	}
	for _, opt := range reg.options {
		if opt.Short == flag || opt.Long == flag {
			return opt
		}
	}
	return nil
}

// Len returns the number of registered options.
func (reg *OptionRegistry) Len() int {
	return len(reg.options)
}

// All returns the options in registration order.
func (reg *OptionRegistry) All() []*Option {
	out := make([]*Option, len(reg.options))
	copy(out, reg.options)
	return out
}

// Required returns the options declared as required.
func (reg *OptionRegistry) Required() []*Option {
	var out []*Option
	for _, opt := range reg.options {
		if opt.Required {
			out = append(out, opt)
		}
	}
	return out
}

// longestFlag returns the length of the longest long flag, used to align
// help output.
func (reg *OptionRegistry) longestFlag() int {
	longest := 0
	for _, opt := range reg.options {
		if n := len(opt.Long); n > longest {
			longest = n
		}
	}
	return longest
}
