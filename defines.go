package optparse

import (
	"regexp"
)

// constants for token prefixes
const (
	ShortPrefix    = "-"
	LongPrefix     = "--"
	NegationPrefix = "--no-"
	EndOfOptions   = "--"
	InlineArgSep   = "="
)

// constants for option defaults
const (
	DefaultDelimiter = ","
	DefaultLimit     = 0
	DefaultHelpWidth = 80
)

// Names of the automatically registered help option.
const (
	HelpShortFlag   = "h"
	HelpLongFlag    = "help"
	HelpDescription = "Print this help message"
)

// Token grammar.
var (
	// optionLikePattern matches anything with one or two leading dashes.
	optionLikePattern = regexp.MustCompile(`\A--?`)
	// flagPattern matches tokens that name a flag and therefore cannot be
	// taken as a mandatory argument.
	flagPattern = regexp.MustCompile(`\A--?[a-zA-Z][a-zA-Z0-9_-]*\z`)
	// clusterPattern matches a single-dash token such as -abc.
	clusterPattern = regexp.MustCompile(`\A-[^-]`)
	// inlinePattern matches --name=value.
	inlinePattern = regexp.MustCompile(`\A--([^=]+)=(.+)\z`)
	// negationPattern matches --no-name.
	negationPattern = regexp.MustCompile(`\A--no-(.+)\z`)
	// rangePattern matches 1..5, 1...5, 1-5 and 1,5 with optional signs.
	rangePattern = regexp.MustCompile(`\A(-?\d+?)(\.\.\.?|-|,)(-?\d+)\z`)
	// integerPattern matches a bare, optionally negative integer.
	integerPattern = regexp.MustCompile(`\A-?\d+\z`)
	// leadingIntPattern and leadingFloatPattern pick the numeric prefix
	// of a token for lenient casts.
	leadingIntPattern   = regexp.MustCompile(`\A\s*[-+]?\d+`)
	leadingFloatPattern = regexp.MustCompile(`\A\s*[-+]?(\d+(\.\d*)?|\.\d+)([eE][-+]?\d+)?`)
)

// stripDashes removes one or two leading dashes from a token.
func stripDashes(token string) string {
	return optionLikePattern.ReplaceAllString(token, "")
}

// looksLikeOption reports whether token starts with a dash.
func looksLikeOption(token string) bool {
	return optionLikePattern.MatchString(token)
}
