package rules

import "strings"

// ArgSeparator separates the parts of a rule given on one command line
const ArgSeparator = ";/"

// SplitArgs joins args with spaces and splits the result on ArgSeparator.
// Every part is trimmed and a leading empty part is dropped, so both
// `pattern ;/ template` and `;/ pattern ;/ template` give two parts.
func SplitArgs(args []string) []string {
	joined := strings.TrimSpace(strings.Join(args, " "))
	if joined == "" {
		return nil
	}

	parts := strings.Split(joined, ArgSeparator)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if parts[0] == "" && len(parts) > 1 {
		parts = parts[1:]
	}
	return parts
}

// FromParts builds a definition from the parts of an ad-hoc rule: pattern,
// template and an optional assertion
func FromParts(parts []string) (Definition, bool) {
	if len(parts) < 2 || len(parts) > 3 {
		return Definition{}, false
	}
	def := Definition{Name: "adhoc", Pattern: parts[0], Template: parts[1], Origin: "command line"}
	if len(parts) == 3 {
		def.Assertion = parts[2]
	}
	return def, true
}

// ParseArgs reads an ad-hoc rule from command line arguments. Arguments that
// contain ArgSeparator are split with SplitArgs, otherwise every argument is
// one part.
func ParseArgs(args []string) (Definition, bool) {
	for _, a := range args {
		if strings.Contains(a, ArgSeparator) {
			return FromParts(SplitArgs(args))
		}
	}
	return FromParts(args)
}
