package utils

import (
	"regexp"

	"github.com/fatih/color"
	"golang.org/x/exp/slices"
)

// SLEIGH syntax highlighting colors
var (
	sleighKeywordColor     = color.New(color.FgMagenta, color.Bold)
	sleighStringColor      = color.New(color.FgGreen)
	sleighNumberColor      = color.New(color.FgYellow)
	sleighCommentColor     = color.New(color.FgHiBlack)
	sleighDirectiveColor   = color.New(color.FgBlue)
	sleighOperatorColor    = color.New(color.FgRed)
	sleighConstructorColor = color.New(color.FgHiYellow, color.Bold)
)

var sleighKeywords = map[string]bool{
	"define": true, "token": true, "attach": true, "variables": true,
	"is": true, "signed": true, "pcodeop": true, "space": true,
	"register": true, "endian": true, "alignment": true, "offset": true,
	"size": true, "type": true, "default": true, "ram_space": true,
	"register_space": true, "goto": true, "call": true, "return": true,
	"if": true, "local": true, "inst_start": true, "inst_next": true,
}

var (
	// Matches quoted display literals
	sleighStringPattern = regexp.MustCompile(`"[^"]*"`)
	// Matches line comments
	sleighCommentPattern = regexp.MustCompile(`(?m)#.*$`)
	// Matches include directives
	sleighDirectivePattern = regexp.MustCompile(`(?m)^@\w+`)
	// Matches the table and name of a constructor header
	sleighConstructorPattern = regexp.MustCompile(`(?m)^\w+:\^`)
	// Matches hex and decimal numbers
	sleighNumberPattern = regexp.MustCompile(`\b(?:0[xX][0-9a-fA-F]+|[0-9]+)\b`)
	// Matches identifiers, for keyword matching
	sleighIdentifierPattern = regexp.MustCompile(`\b[a-zA-Z_][a-zA-Z0-9_]*\b`)
	// Matches operators
	sleighOperatorPattern = regexp.MustCompile(`[+\-*/%&|^!~<>=]+`)
)

// A syntax-highlighted span of the source
type highlightToken struct {
	color *color.Color
	start int
	end   int
}

func overlapsAny(start, end int, tokens []highlightToken) bool {
	for _, t := range tokens {
		if start < t.end && end > t.start {
			return true
		}
	}
	return false
}

// HighlightSleigh applies syntax highlighting to SLEIGH source and returns the colored string
func HighlightSleigh(code string) string {
	if code == "" {
		return ""
	}

	var tokens []highlightToken

	// Earlier passes win over later ones
	passes := []struct {
		pattern *regexp.Regexp
		color   *color.Color
		accept  func(word string) bool
	}{
		{sleighStringPattern, sleighStringColor, nil},
		{sleighCommentPattern, sleighCommentColor, nil},
		{sleighDirectivePattern, sleighDirectiveColor, nil},
		{sleighConstructorPattern, sleighConstructorColor, nil},
		{sleighNumberPattern, sleighNumberColor, nil},
		{sleighIdentifierPattern, sleighKeywordColor, func(word string) bool { return sleighKeywords[word] }},
		{sleighOperatorPattern, sleighOperatorColor, nil},
	}

	for _, pass := range passes {
		for _, match := range pass.pattern.FindAllStringIndex(code, -1) {
			if overlapsAny(match[0], match[1], tokens) {
				continue
			}

			if pass.accept != nil && !pass.accept(code[match[0]:match[1]]) {
				continue
			}

			tokens = append(tokens, highlightToken{color: pass.color, start: match[0], end: match[1]})
		}
	}

	return buildHighlightedString(code, tokens)
}

func buildHighlightedString(code string, tokens []highlightToken) string {
	if len(tokens) == 0 {
		return code
	}

	slices.SortFunc(tokens, func(a, b highlightToken) int {
		return a.start - b.start
	})

	var result []byte
	pos := 0

	for _, t := range tokens {
		result = append(result, code[pos:t.start]...)
		result = append(result, t.color.Sprint(code[t.start:t.end])...)
		pos = t.end
	}

	return string(append(result, code[pos:]...))
}
