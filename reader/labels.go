package reader

import (
	"sort"
	"strconv"
	"strings"

	pdf "github.com/ledongthuc/pdf"
)

// labelRange is one entry of the /PageLabels number tree
type labelRange struct {
	start  int
	style  string
	prefix string
	first  int
}

// readPageLabels flattens the catalog's /PageLabels number tree into one
// label per page. It returns nil when the document has no page labels.
func readPageLabels(r *pdf.Reader, pageCount int) []string {
	root := r.Trailer().Key("Root").Key("PageLabels")
	if root.IsNull() {
		return nil
	}

	var ranges []labelRange
	collectLabelRanges(root, &ranges, 0)
	if len(ranges) == 0 {
		return nil
	}
	sort.SliceStable(ranges, func(i, j int) bool { return ranges[i].start < ranges[j].start })

	labels := make([]string, pageCount)
	k := 0
	for page := 0; page < pageCount; page++ {
		for k+1 < len(ranges) && ranges[k+1].start <= page {
			k++
		}
		rg := ranges[k]
		if rg.start > page {
			labels[page] = strconv.Itoa(page + 1)
			continue
		}
		labels[page] = rg.prefix + formatPageNumber(rg.style, rg.first+page-rg.start)
	}
	return labels
}

// collectLabelRanges walks /Nums and /Kids of a number tree node
func collectLabelRanges(node pdf.Value, out *[]labelRange, depth int) {
	if depth > 32 {
		return
	}
	nums := node.Key("Nums")
	for i := 0; i+1 < nums.Len(); i += 2 {
		d := nums.Index(i + 1)
		first := 1
		if st := d.Key("St"); !st.IsNull() {
			first = int(st.Int64())
		}
		*out = append(*out, labelRange{
			start:  int(nums.Index(i).Int64()),
			style:  d.Key("S").Name(),
			prefix: d.Key("P").Text(),
			first:  first,
		})
	}
	kids := node.Key("Kids")
	for i := 0; i < kids.Len(); i++ {
		collectLabelRanges(kids.Index(i), out, depth+1)
	}
}

// formatPageNumber renders n in a /PageLabels numbering style
func formatPageNumber(style string, n int) string {
	switch style {
	case "D":
		return strconv.Itoa(n)
	case "R":
		return strings.ToUpper(toRoman(n))
	case "r":
		return toRoman(n)
	case "A":
		return strings.ToUpper(toLetters(n))
	case "a":
		return toLetters(n)
	default:
		return ""
	}
}

// toRoman renders n as a lowercase roman numeral
func toRoman(n int) string {
	if n <= 0 {
		return strconv.Itoa(n)
	}
	values := []int{1000, 900, 500, 400, 100, 90, 50, 40, 10, 9, 5, 4, 1}
	symbols := []string{"m", "cm", "d", "cd", "c", "xc", "l", "xl", "x", "ix", "v", "iv", "i"}
	var b strings.Builder
	for i, v := range values {
		for n >= v {
			b.WriteString(symbols[i])
			n -= v
		}
	}
	return b.String()
}

// toLetters renders n as a, b, ..., z, aa, bb, ... per the PDF label rules
func toLetters(n int) string {
	if n <= 0 {
		return strconv.Itoa(n)
	}
	letter := byte('a' + (n-1)%26)
	return strings.Repeat(string(letter), (n-1)/26+1)
}
