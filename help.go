package optparse

import (
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/x/ansi"
	"github.com/fatih/color"
	"golang.org/x/term"
)

///////////////////////////////////////////////////////////////////////////////
// Help
///////////////////////////////////////////////////////////////////////////////

const helpIndent = "    "

// Help renders the banner, summary, description, options and commands,
// each section separated by a blank line. Tail options are listed last
// and hidden options are left out.
func (p *Parser) Help() string {
	var sections []string

	if p.config.Banner != "" {
		sections = append(sections, p.paint(color.Bold).Sprint(p.config.Banner))
	}
	if p.config.Summary != "" {
		sections = append(sections, p.config.Summary)
	}
	if p.config.Description != "" {
		sections = append(sections, indentLines(
			ansi.Wrap(p.config.Description, p.helpWidth()-len(helpIndent), " ,.;-"),
			helpIndent,
		))
	}
	if options := p.optionHelp(); options != "" {
		sections = append(sections, options)
	}
	if commands := p.commandHelp(); commands != "" {
		sections = append(sections, commands)
	}

	return strings.Join(sections, "\n\n")
}

func (p *Parser) optionHelp() string {
	var heads, tails []string
	for _, opt := range p.options.options {
		if opt.Hidden {
			continue
		}
		if opt.Tail {
			tails = append(tails, opt.String())
		} else {
			heads = append(heads, opt.String())
		}
	}
	return strings.Join(append(heads, tails...), "\n")
}

func (p *Parser) commandHelp() string {
	subs := p.commandParsers()
	if len(subs) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(p.paint(color.Bold).Sprint("Commands:"))
	b.WriteString("\n")

	writer := tabwriter.NewWriter(&b, 2, 0, 3, ' ', 0)
	for _, sub := range subs {
		label := sub.name
		if len(sub.config.Aliases) > 0 {
			label += " (" + strings.Join(sub.config.Aliases, ", ") + ")"
		}
		writer.Write([]byte(helpIndent + label + "\t" + sub.config.Summary + "\n"))
	}
	writer.Flush()

	return strings.TrimRight(b.String(), "\n ")
}

// helpWidth is Config.Width, else the width of the terminal Output writes
// to, else DefaultHelpWidth.
func (p *Parser) helpWidth() int {
	if p.config.Width > 0 {
		return p.config.Width
	}
	if fd, ok := terminalFd(p.config.Output); ok {
		if width, _, err := term.GetSize(fd); err == nil && width > len(helpIndent) {
			return width
		}
	}
	return DefaultHelpWidth
}

// paint styles text written to Output. Styling is dropped unless Output is
// a terminal.
func (p *Parser) paint(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if _, ok := terminalFd(p.config.Output); !ok {
		c.DisableColor()
	}
	return c
}

func indentLines(s, indent string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = indent + line
	}
	return strings.Join(lines, "\n")
}
