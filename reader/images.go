package reader

import (
	pdf "github.com/ledongthuc/pdf"

	"github.com/tsawler/glyphnav/model"
)

// maxFormDepth bounds recursion into nested form XObjects
const maxFormDepth = 4

// imagePlacer tracks the current transformation matrix through a content
// stream and records where image XObjects are painted
type imagePlacer struct {
	regions []model.Rect
}

// place interprets a content stream (or array of streams) with the given
// resources and starting CTM
func (ip *imagePlacer) place(contents, resources pdf.Value, ctm model.Matrix, depth int) {
	if depth > maxFormDepth || contents.IsNull() {
		return
	}
	if contents.Kind() == pdf.Array {
		// Split content streams share one graphics state
		state := &placerState{ctm: ctm}
		for i := 0; i < contents.Len(); i++ {
			ip.interpret(contents.Index(i), resources, state, depth)
		}
		return
	}
	ip.interpret(contents, resources, &placerState{ctm: ctm}, depth)
}

type placerState struct {
	ctm   model.Matrix
	stack []model.Matrix
}

func (ip *imagePlacer) interpret(strm, resources pdf.Value, st *placerState, depth int) {
	xobjects := resources.Key("XObject")
	pdf.Interpret(strm, func(stk *pdf.Stack, op string) {
		n := stk.Len()
		args := make([]pdf.Value, n)
		for i := n - 1; i >= 0; i-- {
			args[i] = stk.Pop()
		}

		switch op {
		case "q":
			st.stack = append(st.stack, st.ctm)
		case "Q":
			if len(st.stack) > 0 {
				st.ctm = st.stack[len(st.stack)-1]
				st.stack = st.stack[:len(st.stack)-1]
			}
		case "cm":
			if len(args) != 6 {
				return
			}
			var m model.Matrix
			for i := range m {
				m[i] = args[i].Float64()
			}
			st.ctm = m.Multiply(st.ctm)
		case "Do":
			if len(args) != 1 {
				return
			}
			xobj := xobjects.Key(args[0].Name())
			switch xobj.Key("Subtype").Name() {
			case "Image":
				ip.regions = append(ip.regions, st.ctm.UnitSquare())
			case "Form":
				formCTM := st.ctm
				if fm := xobj.Key("Matrix"); fm.Len() == 6 {
					var m model.Matrix
					for i := range m {
						m[i] = fm.Index(i).Float64()
					}
					formCTM = m.Multiply(st.ctm)
				}
				formResources := xobj.Key("Resources")
				if formResources.IsNull() {
					formResources = resources
				}
				ip.place(xobj, formResources, formCTM, depth+1)
			}
		}
	})
}
