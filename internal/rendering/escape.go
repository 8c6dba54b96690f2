package rendering

import "strings"

// latexEscapes maps characters that carry meaning in LaTeX to their escaped
// forms. Resume content is user-supplied text, so every field passes through
// EscapeLaTeX before template substitution.
var latexEscapes = map[rune]string{
	'\\': `\textbackslash{}`,
	'{':  `\{`,
	'}':  `\}`,
	'$':  `\$`,
	'&':  `\&`,
	'%':  `\%`,
	'#':  `\#`,
	'^':  `\textasciicircum{}`,
	'_':  `\_`,
	'~':  `\textasciitilde{}`,
}

// EscapeLaTeX escapes special LaTeX characters in text
func EscapeLaTeX(text string) string {
	if text == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(text) + len(text)/2)

	for _, r := range text {
		if esc, ok := latexEscapes[r]; ok {
			result.WriteString(esc)
		} else {
			result.WriteRune(r)
		}
	}

	return result.String()
}
