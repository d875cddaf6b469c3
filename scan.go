package optparse

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

///////////////////////////////////////////////////////////////////////////////
// Scanning
///////////////////////////////////////////////////////////////////////////////

// Handler receives every token that is not an option of the parser, in
// input order. Tokens after "--" are always passed to it.
type Handler func(token string) error

// ScanOpts controls a single scan.
type ScanOpts struct {
	// Delete returns the input without the tokens that were consumed as
	// options or option arguments.
	Delete bool
	// Handler receives the tokens that are not options.
	Handler Handler
}

// Parse scans tokens and returns them unchanged.
func (p *Parser) Parse(tokens []string) ([]string, error) {
	return p.Scan(tokens, ScanOpts{})
}

// ParseFunc scans tokens, passing every non-option token to handler.
func (p *Parser) ParseFunc(tokens []string, handler Handler) ([]string, error) {
	return p.Scan(tokens, ScanOpts{Handler: handler})
}

// Strip scans tokens and returns the ones that were not consumed.
func (p *Parser) Strip(tokens []string) ([]string, error) {
	return p.Scan(tokens, ScanOpts{Delete: true})
}

// Scan matches tokens against the parser's options and commands.
//
// A leading command name hands the rest of the tokens to that command's
// parser. Otherwise options are matched left to right, their arguments
// consumed and their callbacks called as they are found. The input slice
// is never modified.
func (p *Parser) Scan(tokens []string, opts ScanOpts) ([]string, error) {
	if len(tokens) == 0 && p.config.OnEmpty != nil {
		p.config.OnEmpty(p)
		return tokens, nil
	}
	if p.config.OnNoOptions != nil && !anyOptionLike(tokens) {
		p.config.OnNoOptions(p)
		return tokens, nil
	}

	if rest, ok, err := p.tryExecute(tokens, opts); ok || err != nil {
		return rest, err
	}

	sc := p.newScan(tokens, opts)
	for i := 0; i < len(tokens); i++ {
		if sc.trashed(i) {
			continue
		}
		if err := p.scanToken(sc, i); err != nil {
			return nil, err
		}
	}

	rest := tokens
	if opts.Delete {
		rest = sc.remaining()
	}

	if p.config.Strict && len(sc.invalid) > 0 {
		return nil, unknownOptionsError(sc.invalid)
	}
	if err := p.checkRequired(sc); err != nil {
		return nil, err
	}

	sc.logger.Debug("scan finished", "tokens", len(tokens), "remaining", len(rest))
	return rest, nil
}

// scan is the state of one pass over the tokens.
type scan struct {
	tokens    []string
	opts      ScanOpts
	trash     map[int]struct{}
	ignoreAll bool
	invalid   []string
	before    map[*Option]int
	logger    *slog.Logger
}

func (p *Parser) newScan(tokens []string, opts ScanOpts) *scan {
	sc := &scan{
		tokens: tokens,
		opts:   opts,
		trash:  make(map[int]struct{}),
		before: make(map[*Option]int, p.options.Len()),
		logger: p.logger,
	}
	for _, opt := range p.options.options {
		sc.before[opt] = opt.count
	}
	if p.logger.Enabled(context.Background(), slog.LevelDebug) {
		sc.logger = p.logger.With("scan", uuid.NewString())
	}
	return sc
}

func (sc *scan) trashed(i int) bool {
	_, ok := sc.trash[i]
	return ok
}

func (sc *scan) discard(i int) {
	sc.trash[i] = struct{}{}
}

func (sc *scan) handle(i int) error {
	if sc.opts.Handler == nil || sc.trashed(i) {
		return nil
	}
	return sc.opts.Handler(sc.tokens[i])
}

func (sc *scan) remaining() []string {
	rest := make([]string, 0, len(sc.tokens)-len(sc.trash))
	for i, token := range sc.tokens {
		if !sc.trashed(i) {
			rest = append(rest, token)
		}
	}
	return rest
}

// matched reports whether opt was counted during this scan.
func (sc *scan) matched(opt *Option) bool {
	return opt.count > sc.before[opt]
}

func (p *Parser) scanToken(sc *scan, i int) error {
	token := sc.tokens[i]

	if sc.ignoreAll {
		return sc.handle(i)
	}
	if token == EndOfOptions {
		sc.discard(i)
		sc.ignoreAll = true
		return nil
	}
	// A lone dash is a value, conventionally stdin.
	if token == ShortPrefix {
		return sc.handle(i)
	}

	flag := stripDashes(token)
	if p.config.Autocreate && looksLikeOption(token) {
		p.autocreate(sc, i, flag)
	}

	ex, err := p.extractOption(token, flag)
	if err != nil {
		return err
	}

	if ex.option == nil {
		if p.multipleSwitches() && clusterPattern.MatchString(token) {
			sc.discard(i)
			return nil
		}
		if p.config.Strict && looksLikeOption(token) {
			sc.invalid = append(sc.invalid, flag)
			return nil
		}
		return sc.handle(i)
	}

	return p.executeOption(sc, i, ex)
}

func (p *Parser) executeOption(sc *scan, i int, ex extraction) error {
	opt := ex.option
	if !ex.negated {
		opt.count++
	}
	sc.discard(i)
	sc.logger.Debug("option matched", "option", opt.Key(), "token", sc.tokens[i])

	if opt.forced {
		return nil
	}
	opt.setArgumentValue(true)

	if !opt.expectsArgument && !opt.acceptsOptionalArgument {
		if opt.omitExecution(sc.tokens) {
			return nil
		}
		return opt.invoke(nil)
	}

	argument, hasArgument := ex.argument, ex.hasArgument
	fromNext := false
	if !hasArgument && i+1 < len(sc.tokens) && sc.tokens[i+1] != EndOfOptions {
		argument, hasArgument, fromNext = sc.tokens[i+1], true, true
	}
	if hasArgument && flagPattern.MatchString(argument) {
		hasArgument = false
	}

	if !hasArgument {
		return p.checkOptionalArgument(opt)
	}
	if fromNext {
		sc.discard(i + 1)
	}

	if opt.Match != nil && !opt.Match.MatchString(argument) {
		return invalidArgumentError(argument, opt)
	}
	opt.setArgumentValue(argument)

	if opt.omitExecution(sc.tokens) {
		return nil
	}
	return opt.invoke(opt.Value())
}

// checkOptionalArgument handles an option that found no usable argument.
func (p *Parser) checkOptionalArgument(opt *Option) error {
	if !opt.acceptsOptionalArgument {
		return missingArgumentError(opt.Key())
	}
	return opt.invoke(nil)
}

// checkRequired fails when a required option was neither named in the
// input nor matched during the scan.
func (p *Parser) checkRequired(sc *scan) error {
	required := p.options.Required()
	if len(required) == 0 {
		return nil
	}

	given := make(map[string]struct{})
	for _, token := range sc.tokens {
		if !looksLikeOption(token) {
			continue
		}
		name, _, _ := strings.Cut(stripDashes(token), InlineArgSep)
		given[name] = struct{}{}
	}

	var missing []string
	for _, opt := range required {
		if sc.matched(opt) {
			continue
		}
		_, long := given[opt.Long]
		_, short := given[opt.Short]
		if (opt.Long != "" && long) || (opt.Short != "" && short) {
			continue
		}
		missing = append(missing, opt.Key())
	}

	if len(missing) > 0 {
		return missingOptionsError(missing)
	}
	return nil
}

// autocreate registers an unknown option-like token as a new option. The
// option expects an argument when one is given inline or the next token
// is not itself option-like.
func (p *Parser) autocreate(sc *scan, i int, flag string) {
	name, _, inline := strings.Cut(flag, InlineArgSep)
	if name == "" || p.lookup(name) != nil {
		return
	}

	next := i+1 < len(sc.tokens) && !looksLikeOption(sc.tokens[i+1])

	cfg := OptionConfig{Arg: ArgNone}
	if len([]rune(name)) == 1 {
		cfg.Short = name
	} else {
		cfg.Long = name
	}
	if inline || next {
		cfg.Arg = ArgRequired
	}

	opt, err := p.Add(cfg)
	if err != nil {
		sc.logger.Debug("autocreate skipped", "token", sc.tokens[i], "error", err)
		return
	}
	sc.logger.Debug("option autocreated", "option", opt.Key(), "argument", opt.expectsArgument)
}

func anyOptionLike(tokens []string) bool {
	for _, token := range tokens {
		if looksLikeOption(token) {
			return true
		}
	}
	return false
}
