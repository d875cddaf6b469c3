package optparse

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
)

///////////////////////////////////////////////////////////////////////////////
// Commands
///////////////////////////////////////////////////////////////////////////////

// AddCommand registers a nested parser under name and every alias in
// cfg.Aliases. Output, Exit and Logger are inherited when cfg leaves them
// unset.
func (p *Parser) AddCommand(name string, cfg Config) (*Parser, error) {
	labels := append([]string{name}, cfg.Aliases...)
	for _, label := range labels {
		if _, exists := p.commands.Get(label); exists {
			return nil, fmt.Errorf("%w: '%s'", ErrDuplicateCommand, label)
		}
	}

	if cfg.Output == nil {
		cfg.Output = p.config.Output
	}
	if cfg.Exit == nil {
		cfg.Exit = p.config.Exit
	}
	if cfg.Logger == nil {
		cfg.Logger = p.logger.With("command", name)
	}

	sub := New(cfg)
	sub.name = name
	sub.parent = p
	for _, label := range labels {
		p.commands.Set(label, sub)
	}
	return sub, nil
}

// MustCommand is AddCommand for static declarations, it panics on a
// duplicate name.
func (p *Parser) MustCommand(name string, cfg Config) *Parser {
	sub, err := p.AddCommand(name, cfg)
	if err != nil {
		panic(fmt.Sprintf("optparse: %v", err))
	}
	return sub
}

// Command returns the parser registered under name or alias, nil if there
// is none.
func (p *Parser) Command(name string) *Parser {
	v, ok := p.commands.Get(name)
	if !ok {
		return nil
	}
	return v.(*Parser)
}

// Commands returns the command names in registration order, without
// aliases.
func (p *Parser) Commands() []string {
	var names []string
	for _, sub := range p.commandParsers() {
		names = append(names, sub.name)
	}
	return names
}

// commandParsers lists each nested parser once, in registration order.
func (p *Parser) commandParsers() []*Parser {
	var subs []*Parser
	seen := make(map[*Parser]struct{})
	for pair := p.commands.Oldest(); pair != nil; pair = pair.Next() {
		sub := pair.Value.(*Parser)
		if _, ok := seen[sub]; ok {
			continue
		}
		seen[sub] = struct{}{}
		subs = append(subs, sub)
	}
	return subs
}

// selectCommand resolves a token to a command. Without an exact match an
// unambiguous prefix selects the command unless completion is disabled.
// An ambiguous prefix prints the candidates to Output and selects nothing.
func (p *Parser) selectCommand(token string) *Parser {
	if sub := p.Command(token); sub != nil {
		return sub
	}
	if p.config.NoCompletion || token == "" {
		return nil
	}

	var (
		candidates []string
		selected   *Parser
		seen       = make(map[*Parser]struct{})
	)
	for pair := p.commands.Oldest(); pair != nil; pair = pair.Next() {
		label := pair.Key.(string)
		if !strings.HasPrefix(label, token) {
			continue
		}
		sub := pair.Value.(*Parser)
		if _, ok := seen[sub]; ok {
			continue
		}
		seen[sub] = struct{}{}
		candidates = append(candidates, label)
		selected = sub
	}

	switch len(candidates) {
	case 0:
		return nil
	case 1:
		return selected
	}

	sort.Strings(candidates)
	p.paint(color.FgYellow).Fprintf(p.config.Output, "Command '%s' is ambiguous:\n", token)
	fmt.Fprintf(p.config.Output, "  %s\n", strings.Join(candidates, ", "))
	return nil
}

// tryExecute hands the tokens after a leading command name to the
// command's parser and runs its Execute function. ok is false when the
// first token does not select a command.
func (p *Parser) tryExecute(tokens []string, opts ScanOpts) (rest []string, ok bool, err error) {
	if len(tokens) == 0 || p.commands.Len() == 0 {
		return tokens, false, nil
	}

	sub := p.selectCommand(tokens[0])
	if sub == nil {
		return tokens, false, nil
	}
	p.logger.Debug("command dispatched", "command", sub.name, "token", tokens[0])

	args := make([]string, len(tokens)-1)
	copy(args, tokens[1:])

	remaining, err := sub.Scan(args, ScanOpts{Delete: opts.Delete})
	if err != nil {
		return nil, true, err
	}

	if sub.config.Execute != nil {
		execArgs := make([]string, 0, len(remaining))
		for _, arg := range remaining {
			if arg != EndOfOptions {
				execArgs = append(execArgs, arg)
			}
		}
		if err := sub.config.Execute(sub, execArgs); err != nil {
			return nil, true, fmt.Errorf("command '%s': %w", sub.name, err)
		}
	}

	if opts.Delete {
		return remaining, true, nil
	}
	return tokens, true, nil
}
