package optparse

import (
	"errors"
	"fmt"
	"strings"
)

///////////////////////////////////////////////////////////////////////////////
// Errors
///////////////////////////////////////////////////////////////////////////////

// Scan errors. Every failure aborts the scan and is returned wrapped with
// context, match them with errors.Is.
var (
	ErrMissingArgument  = errors.New("missing argument")
	ErrMissingOption    = errors.New("missing required option")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrInvalidOption    = errors.New("unknown option")
	ErrDuplicateCommand = errors.New("command already registered")
	ErrInvalidFlag      = errors.New("invalid flag declaration")
	ErrCallback         = errors.New("callback failed")
)

func missingArgumentError(key string) error {
	return fmt.Errorf("%w: '%s' expects an argument, none given", ErrMissingArgument, key)
}

func missingSwitchArgumentError(flag string) error {
	return fmt.Errorf(
		"%w: '-%s' expects an argument, used in multiple-switch context",
		ErrMissingArgument, flag,
	)
}

func invalidArgumentError(argument string, option *Option) error {
	return fmt.Errorf(
		"%w: '%s' does not match %s for '%s'",
		ErrInvalidArgument, argument, option.Match.String(), option.Key(),
	)
}

func unknownOptionsError(flags []string) error {
	quoted := make([]string, len(flags))
	for i, flag := range flags {
		quoted[i] = "'" + flag + "'"
	}
	plural := ""
	if len(flags) > 1 {
		plural = "s"
	}
	return fmt.Errorf("%w%s -- %s", ErrInvalidOption, plural, strings.Join(quoted, ", "))
}

func missingOptionsError(keys []string) error {
	return fmt.Errorf("%w: %s", ErrMissingOption, strings.Join(keys, ", "))
}

func callbackError(key string, err error) error {
	return fmt.Errorf("%w for '%s': %w", ErrCallback, key, err)
}
