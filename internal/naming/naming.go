// Package naming derives human-readable labels and synthetic identifiers for
// operations that declare no operationId, from their HTTP method and path
// template.
package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DisplayName builds a title-cased label from a method and path template.
// Path parameters read as "By <Name>":
//
//	DisplayName("get", "/pets/{petId}") == "Get Pets By Pet Id"
func DisplayName(method, path string) string {
	// strings.Title is deprecated; cases.Title handles casing properly.
	caser := cases.Title(language.English)
	parts := words(method, path)
	for i, w := range parts {
		parts[i] = caser.String(w)
	}
	return strings.Join(parts, " ")
}

// SyntheticID builds a camelCase identifier from a method and path template:
//
//	SyntheticID("get", "/pets/{petId}") == "getPetsByPetId"
func SyntheticID(method, path string) string {
	caser := cases.Title(language.English)
	parts := words(method, path)
	var b strings.Builder
	for i, w := range parts {
		if i == 0 {
			b.WriteString(w)
			continue
		}
		b.WriteString(caser.String(w))
	}
	return b.String()
}

// words decomposes a method and path template into lowercase word parts.
// Parameter segments contribute a "by" marker followed by their name.
func words(method, path string) []string {
	out := []string{strings.ToLower(method)}
	for _, seg := range strings.Split(path, "/") {
		if seg == "" {
			continue
		}
		if name, ok := paramName(seg); ok {
			out = append(out, "by")
			out = append(out, splitIdent(name)...)
			continue
		}
		out = append(out, splitIdent(seg)...)
	}
	return out
}

func paramName(seg string) (string, bool) {
	if len(seg) > 2 && seg[0] == '{' && seg[len(seg)-1] == '}' {
		return seg[1 : len(seg)-1], true
	}
	return "", false
}

// splitIdent breaks an identifier on delimiters and camelCase boundaries,
// lowercasing the resulting words: "petId" -> ["pet", "id"].
func splitIdent(s string) []string {
	var out []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			out = append(out, strings.ToLower(cur.String()))
			cur.Reset()
		}
	}
	for _, r := range s {
		switch {
		case r == '-' || r == '_' || r == '.':
			flush()
		case unicode.IsUpper(r):
			flush()
			cur.WriteRune(r)
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return out
}
