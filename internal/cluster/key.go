// Package cluster groups diagnostics that share a recurring message
// pattern so each pattern is fixed once instead of per occurrence.
package cluster

import "regexp"

// Placeholder tokens substituted into pattern keys.
const (
	TokenString = "<STRING>"
	TokenNumber = "<NUM>"
	TokenPath   = "<PATH>"
)

var (
	quotedRe = regexp.MustCompile(`'[^']*'|"[^"]*"`)
	digitsRe = regexp.MustCompile(`\d+`)
	// One or more /segment groups. Segments may contain placeholder
	// tokens produced by the earlier substitutions.
	pathRe = regexp.MustCompile(`(?:/[^\s/:;,()]+)+`)
)

// PatternKey normalizes a diagnostic message into a clustering key by
// replacing volatile substrings with placeholder tokens.
//
// Substitution order is a behavior-preserving constraint: quoted
// strings must be collapsed before digit runs so a digit inside a
// quoted identifier is absorbed into <STRING>, and digits before paths
// so version-numbered path segments normalize consistently.
func PatternKey(message string) string {
	key := quotedRe.ReplaceAllString(message, TokenString)
	key = digitsRe.ReplaceAllString(key, TokenNumber)
	key = pathRe.ReplaceAllString(key, TokenPath)
	return key
}
