package optparse

import (
	"fmt"
	"strings"
)

// extraction is the outcome of classifying one token.
type extraction struct {
	option      *Option
	argument    string // inline argument, from --name=value or -nVALUE
	hasArgument bool
	negated     bool // matched through --no-name
}

// extractOption resolves a token to an option. flag is the token without
// its leading dashes.
//
// Tokens that name an option directly win. Otherwise a single-dash token
// is a switch cluster (or -nVALUE when multiple switches are off), and a
// double-dash token may carry an inline value or a negation. A nil option
// in the result means the token is not an option of this parser.
func (p *Parser) extractOption(token, flag string) (extraction, error) {
	var ex extraction

	if looksLikeOption(token) {
		ex.option = p.lookup(flag)
	}
	if ex.option != nil {
		return ex, nil
	}

	switch {
	case clusterPattern.MatchString(token):
		if p.multipleSwitches() {
			return ex, p.enableMultipleSwitches(token)
		}
		short, rest := splitFirstRune(flag)
		ex.option = p.lookup(short)
		if rest != "" {
			ex.argument, ex.hasArgument = rest, true
		}

	case inlinePattern.MatchString(token):
		m := inlinePattern.FindStringSubmatch(token)
		ex.option = p.lookup(m[1])
		ex.argument, ex.hasArgument = m[2], true

	case negationPattern.MatchString(token):
		m := negationPattern.FindStringSubmatch(token)
		if opt := p.lookup(m[1]); opt != nil {
			ex.option = opt
			ex.negated = true
			if err := opt.pin(false); err != nil {
				return ex, err
			}
		}
	}

	return ex, nil
}

// enableMultipleSwitches treats every character of a cluster such as -abc
// as a switch and pins it to true. Members are counted but their callbacks
// do not run.
func (p *Parser) enableMultipleSwitches(token string) error {
	for _, r := range strings.TrimPrefix(token, ShortPrefix) {
		sw := string(r)
		opt := p.lookup(sw)
		if opt == nil {
			if p.config.Strict {
				return fmt.Errorf("%w: '-%s'", ErrInvalidOption, sw)
			}
			continue
		}
		if opt.expectsArgument {
			return missingSwitchArgumentError(sw)
		}
		if err := opt.pin(true); err != nil {
			return err
		}
		opt.count++
		p.logger.Debug("switch enabled", "option", opt.Key(), "cluster", token)
	}
	return nil
}

func splitFirstRune(s string) (string, string) {
	for i := range s {
		if i > 0 {
			return s[:i], s[i:]
		}
	}
	return s, ""
}
