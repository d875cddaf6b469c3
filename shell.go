package optparse

import (
	"fmt"

	"github.com/google/shlex"
)

// Split breaks a command line into tokens using shell quoting rules.
func Split(line string) ([]string, error) {
	tokens, err := shlex.Split(line)
	if err != nil {
		return nil, fmt.Errorf("splitting %q: %w", line, err)
	}
	return tokens, nil
}

// ParseString splits line like a shell would and parses the tokens.
func (p *Parser) ParseString(line string) ([]string, error) {
	return p.ScanString(line, ScanOpts{})
}

// ScanString splits line like a shell would and scans the tokens.
func (p *Parser) ScanString(line string, opts ScanOpts) ([]string, error) {
	tokens, err := Split(line)
	if err != nil {
		return nil, err
	}
	return p.Scan(tokens, opts)
}
