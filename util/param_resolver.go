package util

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/oliveagle/jsonpath"
)

var tokenPattern = regexp.MustCompile("{(.*?)}")

// ResolveTokens substitutes `{$.path}` tokens in s with values looked up in
// data via jsonpath. Tokens that do not resolve are left untouched.
func ResolveTokens(data map[string]any, s string) string {
	tokens := tokenPattern.FindAllString(s, -1)
	if len(tokens) == 0 {
		return s
	}
	resolved := s
	for _, token := range tokens {
		expr := strings.TrimSuffix(strings.TrimPrefix(token, "{"), "}")
		if !strings.HasPrefix(expr, "$") {
			continue
		}
		value, err := jsonpath.JsonPathLookup(data, expr)
		if err != nil {
			continue
		}
		resolved = strings.ReplaceAll(resolved, token, fmt.Sprintf("%v", value))
	}
	return resolved
}
