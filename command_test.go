package optparse

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type executed struct {
	name string
	args []string
}

func newCommandParser(t *testing.T, cfg Config) (*Parser, *[]executed) {
	t.Helper()

	runs := &[]executed{}
	record := func(p *Parser, args []string) error {
		*runs = append(*runs, executed{name: p.Name(), args: args})
		return nil
	}

	p, _, _ := testParser(cfg)
	p.On(OptionConfig{Short: "v", Long: "verbose"})

	push, err := p.AddCommand("push", Config{Summary: "Upload changes", Execute: record})
	require.NoError(t, err)
	push.On(OptionConfig{Short: "f", Long: "force"})

	_, err = p.AddCommand("pull", Config{Summary: "Fetch changes", Execute: record})
	require.NoError(t, err)

	_, err = p.AddCommand("remove", Config{Aliases: []string{"rm"}, Execute: record})
	require.NoError(t, err)

	return p, runs
}

func TestAddCommand(t *testing.T) {
	p, _ := newCommandParser(t, Config{})

	t.Run("Registered", func(t *testing.T) {
		assert.Equal(t, []string{"push", "pull", "remove"}, p.Commands())
		assert.Same(t, p.Command("remove"), p.Command("rm"))
		assert.Same(t, p, p.Command("push").Parent())
		assert.Nil(t, p.Command("missing"))
	})

	t.Run("Duplicate", func(t *testing.T) {
		_, err := p.AddCommand("push", Config{})
		assert.ErrorIs(t, err, ErrDuplicateCommand)

		_, err = p.AddCommand("delete", Config{Aliases: []string{"rm"}})
		assert.ErrorIs(t, err, ErrDuplicateCommand)
		assert.Nil(t, p.Command("delete"), "nothing is registered on conflict")
	})

	t.Run("Inherits", func(t *testing.T) {
		sub := p.Command("push")
		assert.Equal(t, p.Config().Output, sub.Config().Output)
		assert.NotNil(t, sub.Config().Exit)
	})

	t.Run("MustCommandPanics", func(t *testing.T) {
		assert.Panics(t, func() { p.MustCommand("pull", Config{}) })
	})
}

func TestCommandDispatch(t *testing.T) {
	t.Run("Exact", func(t *testing.T) {
		p, runs := newCommandParser(t, Config{})
		rest, err := p.Strip([]string{"push", "--force", "origin", "--", "main"})
		require.NoError(t, err)

		assert.Equal(t, []string{"origin", "main"}, rest)
		require.Len(t, *runs, 1)
		assert.Equal(t, executed{name: "push", args: []string{"origin", "main"}}, (*runs)[0])
		assert.True(t, p.Command("push").Present("force"))
		assert.False(t, p.Present("verbose"))
	})

	t.Run("NonDeleteReturnsInput", func(t *testing.T) {
		p, runs := newCommandParser(t, Config{})
		input := []string{"push", "-f", "origin"}
		rest, err := p.Parse(input)
		require.NoError(t, err)

		assert.Equal(t, input, rest)
		require.Len(t, *runs, 1)
		assert.Equal(t, []string{"-f", "origin"}, (*runs)[0].args)
	})

	t.Run("Alias", func(t *testing.T) {
		p, runs := newCommandParser(t, Config{})
		_, err := p.Parse([]string{"rm", "file"})
		require.NoError(t, err)
		require.Len(t, *runs, 1)
		assert.Equal(t, "remove", (*runs)[0].name)
	})

	t.Run("UnambiguousPrefix", func(t *testing.T) {
		p, runs := newCommandParser(t, Config{})
		_, err := p.Parse([]string{"pus"})
		require.NoError(t, err)
		require.Len(t, *runs, 1)
		assert.Equal(t, "push", (*runs)[0].name)
	})

	t.Run("PrefixOfNameAndAlias", func(t *testing.T) {
		p, runs := newCommandParser(t, Config{})
		_, err := p.Parse([]string{"r"})
		require.NoError(t, err)
		require.Len(t, *runs, 1)
		assert.Equal(t, "remove", (*runs)[0].name)
	})

	t.Run("AmbiguousPrefix", func(t *testing.T) {
		p, runs := newCommandParser(t, Config{})
		out := p.Config().Output.(interface{ String() string })

		rest, err := p.Parse([]string{"pu", "-v"})
		require.NoError(t, err)

		assert.Equal(t, []string{"pu", "-v"}, rest)
		assert.Empty(t, *runs)
		assert.Equal(t, "Command 'pu' is ambiguous:\n  pull, push\n", out.String())
		assert.True(t, p.Present("verbose"), "tokens are scanned by the parent instead")
	})

	t.Run("NoCompletion", func(t *testing.T) {
		p, runs := newCommandParser(t, Config{NoCompletion: true})
		_, err := p.Parse([]string{"pus"})
		require.NoError(t, err)
		assert.Empty(t, *runs)
	})

	t.Run("NestedErrorPropagates", func(t *testing.T) {
		p, _ := newCommandParser(t, Config{})
		p.Command("pull").On(OptionConfig{Long: "depth", Arg: ArgRequired})

		_, err := p.Parse([]string{"pull", "--depth"})
		assert.ErrorIs(t, err, ErrMissingArgument)
	})

	t.Run("ExecuteError", func(t *testing.T) {
		p, _, _ := testParser(Config{})
		boom := errors.New("boom")
		p.MustCommand("deploy", Config{Execute: func(*Parser, []string) error { return boom }})

		_, err := p.Parse([]string{"deploy"})
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "command 'deploy'")
	})

	t.Run("WithoutExecute", func(t *testing.T) {
		p, _, _ := testParser(Config{})
		sub := p.MustCommand("status", Config{})
		sub.On(OptionConfig{Short: "s", Long: "short"})

		rest, err := p.Strip([]string{"status", "-s", "x"})
		require.NoError(t, err)
		assert.Equal(t, []string{"x"}, rest)
		assert.True(t, sub.Present("short"))
	})
}
