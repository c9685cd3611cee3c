// Package rules turns rule definitions into an ordered, compiled rule set.
//
// Definitions come from TOML or YAML documents holding a `rules` list, or from
// the line oriented legacy format:
//
//	"pattern" : "template" | "assertion"
//
// Compile never fails as a whole. Each definition that does not compile is
// reported as a Rejection and left out of the Set, so one broken rule cannot
// take the others down with it.
//
// A Set applies its rules in order. Every rule sees the output of the rule
// before it, with notification markers already removed. Rules may declare
// `requires` keywords; a rule whose keywords are all absent from the current
// text is skipped without running its regex.
package rules
