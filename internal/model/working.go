package model

import "strings"

// Projection describes the query metadata attached to an emitted field.
type Projection int

const (
	ProjectionNone Projection = iota // auto select disabled
	ProjectionMain                   // bare marker, field of the main class
	ProjectionJoin                   // marker naming the original field and its join constant
)

// WorkingField is a selected field after name resolution and annotation selection.
type WorkingField struct {
	// Identity -------------------------------------------------------------
	Source      FieldDescriptor
	EmittedName string // final identifier in the view
	Stem        string // decapitalized class stem used as prefix candidate

	// Metadata -------------------------------------------------------------
	IsMain       bool
	Projection   Projection
	JoinConstant string   // constant referenced by a ProjectionJoin marker
	Description  string   // text of the description annotation, "" when synthesized empty
	Annotations  []string // rendered annotation lines, in order
}

// Declaration is the Java field declaration line.
func (w *WorkingField) Declaration() string {
	return "private " + w.Source.TypeText + " " + w.EmittedName + ";"
}

// Block is the annotation lines followed by the declaration.
func (w *WorkingField) Block() string {
	if len(w.Annotations) == 0 {
		return w.Declaration()
	}
	return strings.Join(w.Annotations, "\n") + "\n" + w.Declaration()
}
