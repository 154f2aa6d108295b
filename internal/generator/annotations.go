package generator

import (
	"fmt"

	"github.com/cmmoran/viewgen/internal/model"
)

// AnnotationOptions select the annotations placed on emitted fields.
type AnnotationOptions struct {
	Description        string // description annotation name, e.g. "Schema"
	DefaultDescription string // synthesized when the source field has none
	Projection         string // projection marker name, e.g. "Select"
	ClassSuffix        string
	AutoSelect         bool
	Keep               bool // copy remaining source annotations
}

// annotateField fills the annotation lines of wf. Join markers register their
// constant in reg as a side effect.
func annotateField(wf *model.WorkingField, reg *ConstantRegistry, o AnnotationOptions) {
	desc := o.DefaultDescription
	for _, a := range wf.Source.Annotations {
		if AnnotationIs(a, o.Description) {
			desc = a
			wf.Description = annotationAttributes(a)["description"]
			break
		}
	}

	lines := []string{desc}
	if o.AutoSelect {
		if wf.IsMain {
			wf.Projection = model.ProjectionMain
			lines = append(lines, "@"+o.Projection)
		} else {
			wf.Projection = model.ProjectionJoin
			wf.JoinConstant = reg.Get(TrimClassSuffix(wf.Source.DeclaringClass, o.ClassSuffix))
			lines = append(lines, fmt.Sprintf("@%s(name = %q, from = %s)", o.Projection, wf.Source.FieldName, wf.JoinConstant))
		}
	}

	if o.Keep {
		for _, a := range wf.Source.Annotations {
			if AnnotationIs(a, o.Description) || AnnotationIs(a, o.Projection) {
				continue
			}
			lines = append(lines, a)
		}
	}

	wf.Annotations = lines
}
