// Package flagx lets several components parse their own subset of os.Args
// without tripping over each other's flags.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// ConfigEnvVar names the environment variable consulted when no -c/-config
// flag is given.
const ConfigEnvVar = "CONFIG"

// Set describes the flags one component owns. Value flags take the next
// argument as their value, bool flags only ever take an inline "=value".
type Set struct {
	flags map[string]bool
}

func NewSet(valueFlags []string, boolFlags ...string) Set {
	s := Set{flags: make(map[string]bool, len(valueFlags)+len(boolFlags))}
	for _, f := range valueFlags {
		s.flags[normalize(f)] = true
	}
	for _, f := range boolFlags {
		s.flags[normalize(f)] = false
	}
	return s
}

// Filter keeps only the flags of s (and their values) from args, in order.
// "-name", "--name", "-name value" and "-name=value" are all recognised. A
// value is taken from the next argument only if it does not start with "-".
// The result is never nil.
func (s Set) Filter(args []string) []string {
	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			continue
		}

		name, _, inline := strings.Cut(arg, "=")
		takesValue, ok := s.flags[normalize(name)]
		if !ok {
			continue
		}
		filtered = append(filtered, arg)
		if inline || !takesValue {
			continue
		}
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

// FilterArgs is Filter for a set made of value flags only.
func FilterArgs(args []string, allowedFlags []string) []string {
	return NewSet(allowedFlags).Filter(args)
}

// ConfigPath returns the config file path given in args via -c or -config,
// falling back to the CONFIG environment variable. Empty means no file.
func ConfigPath(args []string) string {
	var path string

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(nopWriter{})
	fs.StringVar(&path, "config", "", "Path to config file")
	fs.StringVar(&path, "c", "", "Path to config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config"}))

	if path == "" {
		path = os.Getenv(ConfigEnvVar)
	}

	return path
}

func normalize(name string) string {
	if strings.HasPrefix(name, "--") {
		return name[1:]
	}
	return name
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
