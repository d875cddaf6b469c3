package optparse

import (
	"fmt"

	"github.com/spf13/pflag"
)

// AddFlagSet declares an option for every flag of fs. Matching one of
// these options sets the pflag value, so code that reads fs keeps working.
// This includes values pinned by --no-name and switch clusters.
//
// Bool flags become switches, flags with a NoOptDefVal take an optional
// argument and everything else requires one. Flag defaults are not copied,
// they stay visible through fs.
func (p *Parser) AddFlagSet(fs *pflag.FlagSet) error {
	var err error
	fs.VisitAll(func(flag *pflag.Flag) {
		if err != nil {
			return
		}

		cfg := OptionConfig{
			Short:       flag.Shorthand,
			Long:        flag.Name,
			Description: flag.Usage,
			Hidden:      flag.Hidden,
			Callback:    flagSetter(fs, flag),
		}
		switch {
		case flag.Value.Type() == "bool":
			cfg.Arg = ArgNone
		case flag.NoOptDefVal != "":
			cfg.Arg = ArgOptional
		default:
			cfg.Arg = ArgRequired
		}
		if _, required := flag.Annotations[cobraRequiredAnnotation]; required {
			cfg.Required = true
		}

		opt, addErr := p.Add(cfg)
		if addErr != nil {
			err = fmt.Errorf("flag %q: %w", flag.Name, addErr)
			return
		}
		opt.onForce = flagForcer(fs, flag)
	})
	return err
}

// cobraRequiredAnnotation marks flags registered with MarkFlagRequired.
const cobraRequiredAnnotation = "cobra_annotation_bash_completion_one_required_flag"

func flagSetter(fs *pflag.FlagSet, flag *pflag.Flag) Callback {
	return func(value any) error {
		switch {
		case value != nil:
			return fs.Set(flag.Name, fmt.Sprint(value))
		case flag.NoOptDefVal != "":
			return fs.Set(flag.Name, flag.NoOptDefVal)
		default:
			return fs.Set(flag.Name, "true")
		}
	}
}

// flagForcer mirrors pinned values into fs. A switch pinned to true is set
// the way a bare flag is.
func flagForcer(fs *pflag.FlagSet, flag *pflag.Flag) Callback {
	set := flagSetter(fs, flag)
	return func(value any) error {
		if value == true {
			return set(nil)
		}
		return fs.Set(flag.Name, fmt.Sprint(value))
	}
}
