package find

import (
	"regexp"
	"strings"
	"unicode"
)

// wrapGap matches what may separate two words of a query on the page: a
// run of spaces, or a line break with an optional hyphen before it
const wrapGap = `(?:[ \t]*-?\n[ \t]*|[ \t]+)`

// hyphenBreak may appear between any two adjacent characters of a word
const hyphenBreak = `(?:-\n)?`

// NormalizeQuery collapses line breaks to spaces and trims the query. The
// second return reports whether the result still contains whitespace.
func NormalizeQuery(query string) (string, bool) {
	q := strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(query)
	q = strings.TrimSpace(q)
	return q, strings.IndexFunc(q, unicode.IsSpace) >= 0
}

// tolerant escapes q literally and makes it tolerant to hyphenated and
// plain line wraps. Word-boundary assertions are added at either end when
// wholeWords is set and the end character is an ASCII word character,
// since RE2's \b only knows ASCII words.
func tolerant(q string, wholeWords bool) string {
	runes := []rune(q)
	var b strings.Builder

	if wholeWords && len(runes) > 0 && isASCIIWord(runes[0]) {
		b.WriteString(`\b`)
	}
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if unicode.IsSpace(r) {
			for i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
				i++
			}
			b.WriteString(wrapGap)
			continue
		}
		if i > 0 && !unicode.IsSpace(runes[i-1]) {
			b.WriteString(hyphenBreak)
		}
		b.WriteString(regexp.QuoteMeta(string(r)))
	}
	if wholeWords && len(runes) > 0 && isASCIIWord(runes[len(runes)-1]) {
		b.WriteString(`\b`)
	}
	return b.String()
}

// Pattern returns the case-insensitive tolerant pattern for a query
func Pattern(query string, wholeWords bool) string {
	return `(?i)` + tolerant(query, wholeWords)
}

// prefixPattern matches words at the very end of a page
func prefixPattern(words []string, wholeWords bool) string {
	return `(?i)` + tolerant(strings.Join(words, " "), wholeWords) + `\s*$`
}

// postfixPattern matches words at the very start of a page
func postfixPattern(words []string, wholeWords bool) string {
	return `(?i)^\s*` + tolerant(strings.Join(words, " "), wholeWords)
}

// splitTokens splits a match at line breaks into trimmed, non-empty tokens
func splitTokens(match string) []string {
	var tokens []string
	for _, part := range strings.Split(match, "\n") {
		if t := strings.TrimSpace(part); t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// matchText renders a match for display: hyphenated wraps are joined and
// other breaks become spaces
func matchText(match string) string {
	tokens := splitTokens(match)
	var b strings.Builder
	for i, t := range tokens {
		if i > 0 && !strings.HasSuffix(tokens[i-1], "-") {
			b.WriteByte(' ')
		}
		if i < len(tokens)-1 && strings.HasSuffix(t, "-") {
			t = strings.TrimSuffix(t, "-")
		}
		b.WriteString(t)
	}
	return b.String()
}

func isASCIIWord(r rune) bool {
	return r == '_' || (r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)))
}
