// Package pattern compiles correction rule patterns into host regular expressions.
//
// A pattern is plain text with two kinds of embedded segments. Everything outside
// a segment is literal: regex metacharacters are escaped, so rule authors never
// escape by hand.
//
// # Groups
//
//   - `;?( body )` - capturing group. The body is regular-expression text and may
//     itself contain nested segments.
//   - `;?(?: body )` - non-capturing group.
//
// Parentheses inside a body must balance. Plain capturing parentheses inside a body
// are capture groups of the compiled expression and take ordinals like any other
// capturing group.
//
// # Alternations
//
//	;>("0"|"s"|"survival")|("1"|"c"|"creative")<;
//
// An alternation is a list of parenthesized clauses of quoted literals. The last
// literal of each clause is the clause's canonical value; the others are aliases.
// When a template references the alternation, the canonical value of whichever
// clause matched is substituted instead of the raw capture.
//
// # Escaping
//
// A backslash directly in front of `;?(` or `;>(` turns the introducer into
// literal text and is itself dropped.
//
// # Ordinals
//
// Capturing groups and alternations are numbered from 1 in the order their
// opening token appears in the pattern. The numbering is identical to the
// compiled expression's own group numbering, which is what templates refer to.
package pattern
