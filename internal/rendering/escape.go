// Package rendering turns CV records into LaTeX documents.
package rendering

import (
	"regexp"
	"strings"
)

// latexEscapes maps every character that is special in LaTeX text to its
// literal form. Lookups happen in a single pass over the input, so the
// output of one substitution is never rescanned by another.
var latexEscapes = map[rune]string{
	'\\': `\textbackslash{}`,
	'&':  `\&`,
	'%':  `\%`,
	'$':  `\$`,
	'#':  `\#`,
	'_':  `\_`,
	'{':  `\{`,
	'}':  `\}`,
	'~':  `\textasciitilde{}`,
	'^':  `\textasciicircum{}`,
	'<':  `\textless{}`,
	'>':  `\textgreater{}`,
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// EscapeLaTeX escapes special LaTeX characters in text
// Special characters: \ { } $ & % # ^ _ ~ < >
func EscapeLaTeX(text string) string {
	if text == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(text) * 2)

	for _, r := range text {
		if escaped, ok := latexEscapes[r]; ok {
			result.WriteString(escaped)
			continue
		}
		result.WriteRune(r)
	}

	return result.String()
}

// Sanitize escapes text for use inside a braces-delimited argument and
// flattens it onto one line: newlines become spaces, whitespace runs
// collapse to a single space, and the ends are trimmed.
//
// Sanitize is not idempotent. Callers sanitize raw input exactly once.
func Sanitize(text string) string {
	if text == "" {
		return ""
	}
	escaped := EscapeLaTeX(text)
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(escaped, " "))
}

// urlEscaper backslash-prefixes the characters hyperref cannot take raw
var urlEscaper = strings.NewReplacer(
	`&`, `\&`,
	`%`, `\%`,
	`$`, `\$`,
	`#`, `\#`,
	`_`, `\_`,
	`{`, `\{`,
	`}`, `\}`,
	`~`, `\~`,
	`^`, `\^`,
)

// EscapeURL prepares a link for \href, \social and \homepage arguments.
// Whitespace and backslashes are dropped since neither belongs in a URL.
func EscapeURL(link string) string {
	link = whitespaceRun.ReplaceAllString(link, "")
	link = strings.ReplaceAll(link, `\`, "")
	if link == "" {
		return ""
	}
	return urlEscaper.Replace(link)
}
