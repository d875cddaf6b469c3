package optparse

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map"
)

///////////////////////////////////////////////////////////////////////////////
// Configuration
///////////////////////////////////////////////////////////////////////////////

// ExecuteFunc runs a command once its parser has scanned the tokens that
// followed the command name. args holds what is left of them, without any
// "--" marker.
type ExecuteFunc func(p *Parser, args []string) error

// Config holds parser level settings. The zero value is a lenient parser
// with multiple switches and command completion enabled.
type Config struct {
	// Help registers -h/--help, printing Help() to Output.
	Help bool
	// NoExitOnHelp keeps the process alive after --help was printed.
	NoExitOnHelp bool
	// Strict turns unknown options into ErrInvalidOption.
	Strict bool
	// NoMultipleSwitches reads -abc as -a with the argument "bc" instead
	// of the cluster -a -b -c.
	NoMultipleSwitches bool
	// IgnoreCase retries failed lookups with the lowercased flag.
	IgnoreCase bool
	// Autocreate registers unknown options the first time they are seen.
	Autocreate bool
	// Arguments makes options declared with ArgDefault require an argument.
	Arguments bool
	// NoCompletion disables selecting commands by an unambiguous prefix.
	NoCompletion bool
	// Aliases are extra names a command parser is registered under.
	Aliases []string

	Banner      string
	Summary     string
	Description string
	// Width is the wrap width of Description in help, 0 uses the terminal
	// width or DefaultHelpWidth.
	Width int

	// OnEmpty is called instead of scanning when there are no tokens.
	OnEmpty func(p *Parser)
	// OnNoOptions is called instead of scanning when no token starts with
	// a dash.
	OnNoOptions func(p *Parser)
	// Execute is called after this parser handled a command invocation.
	Execute ExecuteFunc

	// Output receives help and notices, os.Stderr by default.
	Output io.Writer
	// Exit is called after help was printed, os.Exit by default.
	Exit func(code int)
	// Logger receives debug events, discarded by default.
	Logger *slog.Logger
}

///////////////////////////////////////////////////////////////////////////////
// Parser
///////////////////////////////////////////////////////////////////////////////

// Parser matches tokens against its registered options and commands.
//
// A Parser is not safe for concurrent use. Counts and values accumulate
// across scans until Reset is called.
type Parser struct {
	config   Config
	name     string
	parent   *Parser
	options  OptionRegistry
	commands *orderedmap.OrderedMap // name or alias -> *Parser
	logger   *slog.Logger
}

// New creates a Parser.
func New(cfg Config) *Parser {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	if cfg.Exit == nil {
		cfg.Exit = os.Exit
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}

	p := &Parser{
		config:   cfg,
		commands: orderedmap.New(),
		logger:   cfg.Logger,
	}

	if cfg.Help {
		p.On(OptionConfig{
			Short:       HelpShortFlag,
			Long:        HelpLongFlag,
			Description: HelpDescription,
			Arg:         ArgNone,
			Tail:        true,
			Callback:    p.printHelp,
		})
	}

	return p
}

// Config returns the parser's configuration.
func (p *Parser) Config() Config {
	return p.config
}

// Name is the command name the parser was registered under, empty for
// the root parser.
func (p *Parser) Name() string {
	return p.name
}

// Parent is the parser this command parser was registered on.
func (p *Parser) Parent() *Parser {
	return p.parent
}

// Add declares an option.
func (p *Parser) Add(cfg OptionConfig) (*Option, error) {
	opt, err := newOption(p, cfg)
	if err != nil {
		return nil, err
	}
	p.options.Add(opt)
	return opt, nil
}

// On declares an option and panics if the declaration is invalid. It is
// meant for static declarations where a bad flag is a programming error.
func (p *Parser) On(cfg OptionConfig) *Option {
	opt, err := p.Add(cfg)
	if err != nil {
		panic(fmt.Sprintf("optparse: %v", err))
	}
	return opt
}

// Options returns the registered options in declaration order.
func (p *Parser) Options() []*Option {
	return p.options.All()
}

// Reset clears the counts and values of every option, including those of
// nested command parsers.
func (p *Parser) Reset() {
	for _, opt := range p.options.options {
		opt.reset()
	}
	for _, sub := range p.commandParsers() {
		sub.Reset()
	}
}

func (p *Parser) multipleSwitches() bool {
	return !p.config.NoMultipleSwitches
}

// lookup finds an option by bare flag, retrying lowercased when IgnoreCase
// is set. Only the lookup key is lowercased, not the registered flags.
func (p *Parser) lookup(flag string) *Option {
	opt := p.options.Lookup(flag)
	if opt == nil && p.config.IgnoreCase {
		opt = p.options.Lookup(strings.ToLower(flag))
	}
	return opt
}

func (p *Parser) printHelp(any) error {
	fmt.Fprintln(p.config.Output, p.Help())
	if !p.config.NoExitOnHelp {
		p.config.Exit(0)
	}
	return nil
}

// String renders the help text.
func (p *Parser) String() string {
	return p.Help()
}
