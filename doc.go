// Package optparse (OPTion PARSEr) turns an ordered list of command-line
// tokens into typed option values.
//
// A Parser holds an ordered registry of Options and, optionally, a tree of
// nested command parsers. Options are declared with an OptionConfig and
// matched during a single left-to-right scan of the tokens:
//
//   - `-v` and `--verbose`: short and long flags
//   - `-abc`: a cluster of short switches (multiple-switch mode, on by default)
//   - `--name=value` and `--name value`: inline and separate arguments
//   - `--no-color`: negation, forcing the value of `color` to false
//   - `--`: everything after it is a plain value
//
// Every token that is not an option, or consumed as an option's argument,
// is handed to the catch-all handler given to Scan. Strip removes matched
// options and their arguments and returns whatever is left.
//
// Arguments are cast according to the option's ArgType:
//   - ArgArray: split by the delimiter and concatenated across occurrences
//   - ArgRange: `1..5`, `1...5`, `1-5`, `1,5` become a Range
//   - ArgInteger, ArgFloat, ArgString, ArgSymbol: textual conversions
//
// The first token may select a nested command, either by its exact name, an
// alias or an unambiguous prefix. The remaining tokens are scanned by the
// command's own Parser and its Execute callback is called afterwards.
//
// Parsed values can be read one by one (Value, Present), as a map or JSON
// document (ToMap, JSON, Query), or copied into a tagged struct with Bind.
// AddFlagSet declares the flags of a pflag.FlagSet so existing flag
// definitions can be reused.
//
// Counts and values accumulate across repeated scans of the same Parser.
// Call Reset to start over.
//
// Example:
//
//	p := optparse.New(optparse.Config{Strict: true, Help: true})
//	p.On(optparse.OptionConfig{Short: "v", Long: "verbose", Description: "Enable verbose mode"})
//	p.On(optparse.OptionConfig{Short: "n", Long: "name", Arg: optparse.ArgRequired})
//
//	rest, err := p.Strip(os.Args[1:])
//	if err != nil {
//	    // errors.Is(err, optparse.ErrMissingArgument) ...
//	}
//	if p.Present("verbose") {
//	    fmt.Println("hello", p.Value("name"), rest)
//	}
package optparse

/**
PLANNING:
- Shell completion script generation from the command tree.
- Suggest the closest option on ErrInvalidOption (edit distance).
*/
