// Package flagx holds small helpers for sharing os.Args between several
// independent flag sets (config file lookup, config overrides).
package flagx

import (
	"flag"
	"io"
	"strings"
)

// Pick returns the subset of args that belongs to the named flags, keeping
// their values. Both "-n value" and "-n=value" forms are recognised; names
// are given with their leading dashes ("-c", "--config").
//
// A value is only taken from the following argument when it does not start
// with a dash, so "-c -x" yields just "-c".
func Pick(args []string, names ...string) []string {
	known := make(map[string]bool, len(names))
	for _, n := range names {
		known[n] = true
	}

	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, _, ok := strings.Cut(arg, "="); ok && strings.HasPrefix(arg, "-") {
			if known[name] {
				out = append(out, arg)
			}
			continue
		}

		if !known[arg] {
			continue
		}
		out = append(out, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			out = append(out, args[i+1])
			i++
		}
	}
	return out
}

// ConfigPath extracts the JSON config file path given with -c or -config.
// It returns "" when neither is present.
func ConfigPath(args []string) string {
	var path string

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "config", "", "path to JSON config file")
	fs.StringVar(&path, "c", "", "path to JSON config file (short)")
	_ = fs.Parse(Pick(args, "-c", "-config", "--config"))

	return path
}
