// Package glob translates shell-style key patterns into anchored regular
// expressions for bulk invalidation.
package glob

import (
	"regexp"
	"strings"
)

var replacer = strings.NewReplacer(
	`[`, `\[`,
	`]`, `\]`,
	`*`, `.*`,
	`?`, `.`,
)

// Translate compiles a shell-style glob into an anchored regular expression.
// `*` matches any run of characters and `?` exactly one. Square brackets are
// escaped so they match themselves literally; bracket expressions are not
// supported.
//
// Other regex metacharacters (`.`, `+`, `(`, ...) appearing in the pattern
// are passed through untranslated, so a pattern containing them may match
// more keys than intended. Callers keep their key alphabets plain enough
// that this has not mattered.
func Translate(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile("^" + replacer.Replace(pattern) + "$")
}
