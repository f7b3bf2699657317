package figures

import (
	"regexp"
	"strings"
)

// idPattern matches a figure number: a number or a capital letter,
// followed by any number of "."- or "-"-separated numeric components
const idPattern = `(?:\d+|[A-Z])(?:[.\-]\d+)*`

// patterns holds the compiled expressions of one Extractor
type patterns struct {
	// caption matches an optional label and an id at the start of a line.
	// Separators are spaces or tabs only, so no match spans a line break.
	caption *regexp.Regexp

	// reference matches a mandatory label followed by an id anywhere
	reference *regexp.Regexp

	// thousands matches thousand-separated numbers such as "1,234"
	thousands *regexp.Regexp
}

func newPatterns() *patterns {
	return &patterns{
		caption: regexp.MustCompile(
			`(?m)^[ \t]*(?:((?i:` + labelAlternation + `)\.?)[ \t]*)?(` + idPattern + `)(?:[.:]|[ \t]|$)`),
		reference: regexp.MustCompile(
			`\b((?i:` + labelAlternation + `)\.?)[ \t]*(?:\n[ \t]*)?(` + idPattern + `)\b`),
		thousands: regexp.MustCompile(`\d{1,3}(?:,\d{3})+`),
	}
}

// candidate is a caption found in page text
type candidate struct {
	label string
	id    string

	// line is the full text line the caption starts
	line string
}

// blankThousands replaces thousand-separated numbers with spaces of equal
// length so offsets into the text stay valid
func (p *patterns) blankThousands(text string) string {
	return p.thousands.ReplaceAllStringFunc(text, func(s string) string {
		return strings.Repeat(" ", len(s))
	})
}

// captions returns every caption candidate of a page in text order. A
// bare letter is only an id when a label precedes it.
func (p *patterns) captions(text string) []candidate {
	stripped := p.blankThousands(text)

	var out []candidate
	for _, m := range p.caption.FindAllStringSubmatchIndex(stripped, -1) {
		var label string
		if m[2] >= 0 {
			label = stripped[m[2]:m[3]]
		}
		id := stripped[m[4]:m[5]]
		if label == "" && !startsWithDigit(id) {
			continue
		}

		end := strings.IndexByte(text[m[0]:], '\n')
		if end < 0 {
			end = len(text)
		} else {
			end += m[0]
		}
		out = append(out, candidate{
			label: label,
			id:    id,
			line:  strings.TrimSpace(text[m[0]:end]),
		})
	}
	return out
}

// mention is a labeled figure reference found in page text
type mention struct {
	label string
	id    string
	text  string

	// lineStart is true when only whitespace precedes the mention on its
	// line, which is where captions sit
	lineStart bool
}

// references returns every labeled figure mention of a page in text order
func (p *patterns) references(text string) []mention {
	var out []mention
	for _, m := range p.reference.FindAllStringSubmatchIndex(text, -1) {
		lineBegin := strings.LastIndexByte(text[:m[0]], '\n') + 1
		out = append(out, mention{
			label:     text[m[2]:m[3]],
			id:        text[m[4]:m[5]],
			text:      strings.Join(strings.Fields(text[m[0]:m[1]]), " "),
			lineStart: strings.TrimSpace(text[lineBegin:m[0]]) == "",
		})
	}
	return out
}

func startsWithDigit(s string) bool {
	return s != "" && s[0] >= '0' && s[0] <= '9'
}
