package figures

import "strings"

// LabelClass groups the spellings of one figure-labeling convention
type LabelClass int

const (
	// ClassNone is the class of an absent or unknown label
	ClassNone LabelClass = iota
	ClassFigure
	ClassPicture
	ClassImage
	ClassPhoto
	ClassIllustration
	ClassMap
	ClassBox
)

// String returns a human-readable class name
func (c LabelClass) String() string {
	switch c {
	case ClassFigure:
		return "figure"
	case ClassPicture:
		return "picture"
	case ClassImage:
		return "image"
	case ClassPhoto:
		return "photo"
	case ClassIllustration:
		return "illustration"
	case ClassMap:
		return "map"
	case ClassBox:
		return "box"
	default:
		return "none"
	}
}

// PictureLike reports whether an unlabeled caption may stand for the class
func (c LabelClass) PictureLike() bool {
	return c != ClassNone && c != ClassBox
}

var spellings = map[string]LabelClass{
	"fig":           ClassFigure,
	"figs":          ClassFigure,
	"figure":        ClassFigure,
	"figures":       ClassFigure,
	"picture":       ClassPicture,
	"pictures":      ClassPicture,
	"pic":           ClassPicture,
	"pics":          ClassPicture,
	"image":         ClassImage,
	"images":        ClassImage,
	"img":           ClassImage,
	"imgs":          ClassImage,
	"photo":         ClassPhoto,
	"photos":        ClassPhoto,
	"photograph":    ClassPhoto,
	"photographs":   ClassPhoto,
	"illustration":  ClassIllustration,
	"illustrations": ClassIllustration,
	"illus":         ClassIllustration,
	"map":           ClassMap,
	"maps":          ClassMap,
	"box":           ClassBox,
	"boxes":         ClassBox,
}

// labelAlternation is the regular-expression alternation of every known
// spelling, longest forms first within each family
const labelAlternation = `figures?|figs?|pictures?|pics?|images?|imgs?|photographs?|photos?|illustrations?|illus|maps?|box(?:es)?`

// normalizeLabel lowercases a label and drops a trailing period
func normalizeLabel(label string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(label)), ".")
}

// ClassOf returns the class of a printed label
func ClassOf(label string) LabelClass {
	return spellings[normalizeLabel(label)]
}

// LabelsEqual reports whether two printed labels denote the same
// labeling convention. An absent label matches any picture-like class.
// The relation is reflexive and symmetric.
func LabelsEqual(a, b string) bool {
	na, nb := normalizeLabel(a), normalizeLabel(b)
	if na == "" || nb == "" {
		if na == nb {
			return true
		}
		other := na
		if other == "" {
			other = nb
		}
		return spellings[other].PictureLike()
	}

	ca, cb := spellings[na], spellings[nb]
	if ca == ClassNone || cb == ClassNone {
		return na == nb
	}
	return ca == cb
}

// classKey identifies a label for de-duplication
func classKey(label string) string {
	if c := ClassOf(label); c != ClassNone {
		return c.String()
	}
	return normalizeLabel(label)
}
