// Package slug derives unique, URL-safe identifiers from post titles.
package slug

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	nonWordSpace = regexp.MustCompile(`[^\w\s]`)
	whitespace   = regexp.MustCompile(`\s+`)
)

// Normalize lowercases the title, strips everything outside the word/space
// class and collapses whitespace runs to a single underscore.
func Normalize(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = nonWordSpace.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	return whitespace.ReplaceAllString(s, "_")
}

// EnsureUnique returns base if exists reports it free, otherwise appends an
// incrementing numeric suffix (-1, -2, ...) until a free slug is found. The
// existence check can race with a concurrent insert under the same title;
// the store's unique index on slug backstops that case.
func EnsureUnique(base string, exists func(string) (bool, error)) (string, error) {
	taken, err := exists(base)
	if err != nil {
		return "", err
	}
	if !taken {
		return base, nil
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		taken, err := exists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
}
