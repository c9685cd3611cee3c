package rules

import (
	"regexp"
	"strconv"
	"strings"
)

// legacyRule matches `"pattern" : "template" | "assertion"`. Each separator
// may be followed by a line break, and the assertion part may be left out.
// Pattern and template are lazy so quotes inside a template survive, while a
// pattern cannot contain `":`.
var legacyRule = regexp.MustCompile(
	`(?m)^[ \t]*"(.+?)"[ \t]*\n?:[ \t]*\n?[ \t]*"(.*?)"(?:[ \t]*\n?[ \t]*\|[ \t]*\n?[ \t]*"(.*)")?[ \t]*$`,
)

// ParseLegacy extracts every rule written in the legacy line format. Text
// that is not part of a rule is ignored. The Origin of each definition is
// the line its pattern starts on.
func ParseLegacy(text string) []Definition {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var defs []Definition
	for _, loc := range legacyRule.FindAllStringSubmatchIndex(text, -1) {
		def := Definition{
			Pattern:  text[loc[2]:loc[3]],
			Template: text[loc[4]:loc[5]],
		}
		if loc[6] >= 0 {
			def.Assertion = text[loc[6]:loc[7]]
		}
		line := strings.Count(text[:loc[2]], "\n") + 1
		def.Origin = strconv.Itoa(line)
		defs = append(defs, def)
	}
	return defs
}
