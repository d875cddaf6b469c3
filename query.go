package optparse

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

///////////////////////////////////////////////////////////////////////////////
// Queries
///////////////////////////////////////////////////////////////////////////////

// Option returns the option declared under key, with or without dashes.
func (p *Parser) Option(key string) *Option {
	return p.options.Lookup(stripDashes(key))
}

// Value returns the cast value of the option under key, nil when the key
// is unknown or the option has neither a value nor a default.
func (p *Parser) Value(key string) any {
	if opt := p.Option(key); opt != nil {
		return opt.Value()
	}
	return nil
}

// Lookup resolves key to an option value first and to a command parser
// second.
func (p *Parser) Lookup(key string) (any, bool) {
	if opt := p.Option(key); opt != nil {
		return opt.Value(), true
	}
	if sub := p.Command(key); sub != nil {
		return sub, true
	}
	return nil, false
}

// Present reports whether every key names an option that was matched at
// least once.
func (p *Parser) Present(keys ...string) bool {
	for _, key := range keys {
		opt := p.Option(key)
		if opt == nil || opt.count == 0 {
			return false
		}
	}
	return true
}

// Missing returns the keys of the options that were never matched.
func (p *Parser) Missing() []string {
	var keys []string
	for _, opt := range p.options.options {
		if opt.count == 0 {
			keys = append(keys, opt.Key())
		}
	}
	return keys
}

// ToMap maps option keys to their values. When keys collide the earlier
// declaration wins, as with Lookup.
func (p *Parser) ToMap() map[string]any {
	out := make(map[string]any, p.options.Len())
	for _, opt := range p.options.options {
		if _, ok := out[opt.Key()]; !ok {
			out[opt.Key()] = opt.Value()
		}
	}
	return out
}

// Export is ToMap with the maps of nested command parsers under their
// command names. Option keys shadow command names.
func (p *Parser) Export() map[string]any {
	out := p.ToMap()
	for _, sub := range p.commandParsers() {
		if _, ok := out[sub.name]; !ok {
			out[sub.name] = sub.Export()
		}
	}
	return out
}

// JSON encodes Export.
func (p *Parser) JSON() ([]byte, error) {
	return json.Marshal(p.Export())
}

// Query evaluates a gjson path against JSON, e.g. "push.force" or
// "tags.#".
func (p *Parser) Query(path string) gjson.Result {
	data, err := p.JSON()
	if err != nil {
		return gjson.Result{}
	}
	return gjson.GetBytes(data, path)
}
