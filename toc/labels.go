package toc

import (
	"regexp"
	"strconv"
	"strings"
)

// Label is the structural granularity of a heading
type Label int

// Labels from coarsest to finest. The order is the nesting order used
// when assembling a tree.
const (
	// LabelNone marks a heading without a printed label
	LabelNone Label = iota

	// LabelPart groups chapters ("Part II")
	LabelPart

	// LabelChapter is the default top-level granularity ("Chapter 3")
	LabelChapter

	// LabelSection sits below a chapter ("Section 2.1")
	LabelSection

	// LabelSubsection is the finest granularity
	LabelSubsection
)

// String returns a human-readable label name
func (l Label) String() string {
	switch l {
	case LabelPart:
		return "part"
	case LabelChapter:
		return "chapter"
	case LabelSection:
		return "section"
	case LabelSubsection:
		return "subsection"
	default:
		return "none"
	}
}

// Finer returns the next finer granularity. Subsection is the finest.
func (l Label) Finer() Label {
	switch l {
	case LabelNone:
		return LabelNone
	case LabelSubsection:
		return LabelSubsection
	default:
		return l + 1
	}
}

// CoarserThan reports whether l is a strictly coarser granularity than o
func (l Label) CoarserThan(o Label) bool {
	return l != LabelNone && o != LabelNone && l < o
}

// heading is a title decomposed into label, id and caption
type heading struct {
	label   Label
	id      string
	caption string
}

var (
	labelPrefix  = regexp.MustCompile(`^((?i:subsection|section|chapter|part)\b|(?i:subsect|sect|sec|chap|ch)\.|§)\s*`)
	dottedID     = regexp.MustCompile(`^\d+(?:\.\d+)*`)
	romanID      = regexp.MustCompile(`^[IVXLCivxlc]+\b`)
	letterID     = regexp.MustCompile(`^[A-Za-z]\b`)
	bareDotted   = regexp.MustCompile(`^(\d+(?:\.\d+)*)\.?(?:\s+|$)`)
	bareRoman    = regexp.MustCompile(`^([IVXLCivxlc]+)\.\s+`)
	bareLetter   = regexp.MustCompile(`^([A-Z])[.:]\s+`)
	separator    = regexp.MustCompile(`^[\s.:\-–—]*`)
	romanNumeral = regexp.MustCompile(`^(?i:C|XC|XL|L?X{0,3})(?i:IX|IV|V?I{0,3})$`)
)

var labelWords = map[string]Label{
	"part":       LabelPart,
	"chapter":    LabelChapter,
	"chap":       LabelChapter,
	"ch":         LabelChapter,
	"section":    LabelSection,
	"sect":       LabelSection,
	"sec":        LabelSection,
	"§":          LabelSection,
	"subsection": LabelSubsection,
	"subsect":    LabelSubsection,
}

// numberWords maps "one" through "one hundred" to their values
var numberWords = buildNumberWords()

func buildNumberWords() map[string]int {
	ones := []string{"", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine",
		"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen", "seventeen",
		"eighteen", "nineteen"}
	tens := []string{"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy", "eighty", "ninety"}

	words := make(map[string]int)
	for i := 1; i < len(ones); i++ {
		words[ones[i]] = i
	}
	for t := 2; t < len(tens); t++ {
		words[tens[t]] = t * 10
		for o := 1; o < 10; o++ {
			words[tens[t]+"-"+ones[o]] = t*10 + o
			words[tens[t]+" "+ones[o]] = t*10 + o
		}
	}
	words["one hundred"] = 100
	words["hundred"] = 100
	return words
}

// romanValue returns the value of a roman numeral up to C, or 0
func romanValue(s string) int {
	if s == "" || !romanNumeral.MatchString(s) {
		return 0
	}
	values := map[rune]int{'i': 1, 'v': 5, 'x': 10, 'l': 50, 'c': 100}
	lower := strings.ToLower(s)
	total := 0
	for i, r := range lower {
		v := values[r]
		if i+1 < len(lower) && values[rune(lower[i+1])] > v {
			total -= v
		} else {
			total += v
		}
	}
	if total > 100 {
		return 0
	}
	return total
}

// parseHeading decomposes a title. Ids are dotted numbers, roman
// numerals up to C, single letters and number words. Letters need a label
// or a trailing "." or ":", number words need a label and bare roman
// numerals need a trailing ".".
func parseHeading(title string) heading {
	t := strings.Join(strings.Fields(title), " ")

	if m := labelPrefix.FindStringSubmatch(t); m != nil {
		word := strings.ToLower(strings.TrimSuffix(m[1], "."))
		h := heading{label: labelWords[word]}
		rest := t[len(m[0]):]
		id, n := labeledID(rest)
		h.id = id
		h.caption = trimSeparator(rest[n:])
		return h
	}

	if m := bareDotted.FindStringSubmatch(t); m != nil {
		return heading{id: m[1], caption: t[len(m[0]):]}
	}
	if m := bareRoman.FindStringSubmatch(t); m != nil && romanValue(m[1]) > 0 {
		return heading{id: m[1], caption: t[len(m[0]):]}
	}
	if m := bareLetter.FindStringSubmatch(t); m != nil {
		return heading{id: m[1], caption: t[len(m[0]):]}
	}
	return heading{caption: t}
}

// labeledID reads the id that follows a label and returns it with the
// number of bytes consumed
func labeledID(rest string) (string, int) {
	if m := dottedID.FindString(rest); m != "" {
		return m, len(m)
	}
	if id, n := wordID(rest); n > 0 {
		return id, n
	}
	if m := romanID.FindString(rest); m != "" && romanValue(m) > 0 {
		return m, len(m)
	}
	if m := letterID.FindString(rest); m != "" {
		return m, len(m)
	}
	return "", 0
}

// wordID reads a number word ("three", "twenty-one", "one hundred")
func wordID(rest string) (string, int) {
	fields := strings.Fields(rest)
	if len(fields) >= 2 {
		two := strings.ToLower(trimPunct(fields[0]) + " " + trimPunct(fields[1]))
		if v, ok := numberWords[two]; ok && !strings.ContainsAny(fields[0], ".:,") {
			n := strings.Index(rest, fields[1]) + len(trimPunct(fields[1]))
			return strconv.Itoa(v), n
		}
	}
	if len(fields) >= 1 {
		one := strings.ToLower(trimPunct(fields[0]))
		if v, ok := numberWords[one]; ok {
			n := strings.Index(rest, fields[0]) + len(trimPunct(fields[0]))
			return strconv.Itoa(v), n
		}
	}
	return "", 0
}

func trimPunct(s string) string {
	return strings.TrimRight(s, ".:,;")
}

func trimSeparator(s string) string {
	return strings.TrimSpace(s[len(separator.FindString(s)):])
}

// pageNumberSuffix matches a trailing page number or roman page label
var pageNumberSuffix = regexp.MustCompile(`(?:^|[\s.·…_])(\d{1,4}|[ivxlcdm]{1,7}|[IVXLCDM]{1,7})$`)

// endsWithPageNumber reports whether a line ends in a page-number token
func endsWithPageNumber(line string) bool {
	return pageNumberSuffix.MatchString(strings.TrimSpace(line))
}
