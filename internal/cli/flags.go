package cli

import (
	"strconv"

	"github.com/spf13/pflag"
)

// shortAliases maps the multi-letter short forms to their long flags.
// pflag only supports single-letter shorthands, so these are rewritten
// before parsing.
var shortAliases = map[string]string{
	"-uf":  "--untracked-files",
	"-UF":  "--no-untracked-files",
	"-dfb": "--delete-feature-branch",
	"-DBF": "--no-delete-feature-branch",
}

// NormalizeArgs rewrites the multi-letter short flags to their long form.
// Arguments after a "--" terminator are left alone.
func NormalizeArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for i, arg := range args {
		if arg == "--" {
			return append(out, args[i:]...)
		}
		if long, ok := shortAliases[arg]; ok {
			out = append(out, long)
			continue
		}
		out = append(out, arg)
	}
	return out
}

// switchValue is one half of a --name / --no-name flag pair. Both halves
// write to the same target, so whichever appears last on the command line
// wins.
type switchValue struct {
	target *bool
	// on is the value written to target when the flag is given as true.
	on bool
}

func (v *switchValue) String() string {
	if v.target == nil {
		return "false"
	}
	return strconv.FormatBool(*v.target == v.on)
}

func (v *switchValue) Set(s string) error {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*v.target = b == v.on
	return nil
}

func (v *switchValue) Type() string {
	return "bool"
}

// switchFlag registers --name and --no-name on fs, both bound to target.
// target's current value is the default.
func switchFlag(fs *pflag.FlagSet, target *bool, name, usage, negUsage string) {
	fs.VarPF(&switchValue{target: target, on: true}, name, "", usage).NoOptDefVal = "true"
	fs.VarPF(&switchValue{target: target, on: false}, "no-"+name, "", negUsage).NoOptDefVal = "true"
}
