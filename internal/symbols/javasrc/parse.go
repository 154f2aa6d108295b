package javasrc

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"
)

// compilationUnit is what a single .java file declares.
type compilationUnit struct {
	Path      string
	Package   string
	Imports   []string // single-type imports, qualified
	Wildcards []string // packages of on-demand imports
	Classes   []*classDecl
}

// classDecl is a top-level class. Nested types, interfaces, enums and records
// are skipped.
type classDecl struct {
	Name       string
	Super      *typeRef
	TypeParams []string
	Fields     []fieldDecl

	unit *compilationUnit
}

func (c *classDecl) qualifiedName() string {
	if c.unit == nil || c.unit.Package == "" {
		return c.Name
	}
	return c.unit.Package + "." + c.Name
}

type fieldDecl struct {
	Name        string
	Type        *typeRef
	Annotations []string
	Static      bool
}

// typeRef is a parsed type expression. Wildcard arguments use Name "?".
type typeRef struct {
	Name      string
	Args      []*typeRef // nil without type arguments, empty for a diamond
	Dims      int
	BoundKind string // "extends" or "super"
	Bound     *typeRef
}

func (t *typeRef) format(qualify func(string) string) string {
	var b strings.Builder
	if t.Name == "?" {
		b.WriteString("?")
		if t.Bound != nil {
			b.WriteString(" " + t.BoundKind + " " + t.Bound.format(qualify))
		}
	} else {
		b.WriteString(qualify(t.Name))
		if t.Args != nil {
			b.WriteByte('<')
			for i, a := range t.Args {
				if i > 0 {
					b.WriteString(", ")
				}
				b.WriteString(a.format(qualify))
			}
			b.WriteByte('>')
		}
	}
	b.WriteString(strings.Repeat("[]", t.Dims))
	return b.String()
}

func (t *typeRef) String() string {
	return t.format(func(s string) string { return s })
}

// typeNodes are the tree-sitter-java node kinds of a type expression.
var typeNodes = map[string]bool{
	"integral_type":          true,
	"floating_point_type":    true,
	"boolean_type":           true,
	"void_type":              true,
	"type_identifier":        true,
	"scoped_type_identifier": true,
	"generic_type":           true,
	"array_type":             true,
	"annotated_type":         true,
	"wildcard":               true,
}

// unitParser walks one syntax tree.
type unitParser struct {
	src []byte
}

// parseUnit extracts package, imports and top-level classes with their fields.
// Syntax errors do not fail the parse: tree-sitter recovers and whatever
// declarations survive are returned.
func parseUnit(ctx context.Context, path string, src []byte) (*compilationUnit, error) {
	root, err := sitter.ParseCtx(ctx, src, java.GetLanguage())
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	p := &unitParser{src: src}
	u := &compilationUnit{Path: path}
	for _, n := range namedChildren(root) {
		switch n.Type() {
		case "package_declaration":
			if name := firstNamed(n, "scoped_identifier", "identifier"); name != nil {
				u.Package = p.text(name)
			}
		case "import_declaration":
			p.importDecl(u, n)
		case "class_declaration":
			if c := p.classDecl(n); c != nil {
				c.unit = u
				u.Classes = append(u.Classes, c)
			}
		}
	}
	return u, nil
}

func (p *unitParser) importDecl(u *compilationUnit, n *sitter.Node) {
	var (
		name     string
		static   bool
		wildcard bool
	)
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		switch c.Type() {
		case "static":
			static = true
		case "asterisk":
			wildcard = true
		case "scoped_identifier", "identifier":
			name = p.text(c)
		}
	}
	switch {
	case static || name == "":
	case wildcard:
		u.Wildcards = append(u.Wildcards, name)
	default:
		u.Imports = append(u.Imports, name)
	}
}

func (p *unitParser) classDecl(n *sitter.Node) *classDecl {
	name := n.ChildByFieldName("name")
	if name == nil {
		return nil
	}
	c := &classDecl{Name: p.text(name)}

	if tps := n.ChildByFieldName("type_parameters"); tps != nil {
		for _, tp := range namedChildren(tps) {
			if id := firstNamed(tp, "type_identifier", "identifier"); id != nil {
				c.TypeParams = append(c.TypeParams, p.text(id))
			}
		}
	}
	if sc := n.ChildByFieldName("superclass"); sc != nil {
		if t := firstType(sc); t != nil {
			c.Super = p.typeRef(t)
		}
	}
	if body := n.ChildByFieldName("body"); body != nil {
		for _, m := range namedChildren(body) {
			if m.Type() == "field_declaration" {
				c.Fields = append(c.Fields, p.fieldDecls(m)...)
			}
		}
	}
	return c
}

// fieldDecls returns one fieldDecl per declarator: int a, b[]; declares two.
func (p *unitParser) fieldDecls(n *sitter.Node) []fieldDecl {
	var (
		annotations []string
		static      bool
	)
	for _, c := range namedChildren(n) {
		if c.Type() != "modifiers" {
			continue
		}
		for i := 0; i < int(c.ChildCount()); i++ {
			m := c.Child(i)
			switch m.Type() {
			case "static":
				static = true
			case "marker_annotation", "annotation":
				annotations = append(annotations, collapseSpace(p.text(m)))
			}
		}
	}

	tn := n.ChildByFieldName("type")
	if tn == nil {
		return nil
	}
	var out []fieldDecl
	for _, d := range namedChildren(n) {
		if d.Type() != "variable_declarator" {
			continue
		}
		name := d.ChildByFieldName("name")
		if name == nil {
			continue
		}
		t := p.typeRef(tn)
		if dims := d.ChildByFieldName("dimensions"); dims != nil {
			t.Dims += strings.Count(p.text(dims), "[")
		}
		out = append(out, fieldDecl{
			Name:        p.text(name),
			Type:        t,
			Annotations: append([]string(nil), annotations...),
			Static:      static,
		})
	}
	return out
}

func (p *unitParser) typeRef(n *sitter.Node) *typeRef {
	switch n.Type() {
	case "generic_type":
		t := &typeRef{Args: []*typeRef{}}
		for _, c := range namedChildren(n) {
			switch c.Type() {
			case "type_identifier", "scoped_type_identifier":
				t.Name = stripSpace(p.text(c))
			case "type_arguments":
				for _, a := range namedChildren(c) {
					if typeNodes[a.Type()] {
						t.Args = append(t.Args, p.typeRef(a))
					}
				}
			}
		}
		return t
	case "array_type":
		t := &typeRef{Name: "Object"}
		if el := n.ChildByFieldName("element"); el != nil {
			t = p.typeRef(el)
		}
		if dims := n.ChildByFieldName("dimensions"); dims != nil {
			t.Dims += strings.Count(p.text(dims), "[")
		}
		return t
	case "annotated_type":
		if inner := lastType(n); inner != nil {
			return p.typeRef(inner)
		}
	case "wildcard":
		t := &typeRef{Name: "?"}
		for i := 0; i < int(n.ChildCount()); i++ {
			c := n.Child(i)
			switch {
			case c.Type() == "extends", c.Type() == "super":
				t.BoundKind = c.Type()
			case c.IsNamed() && typeNodes[c.Type()]:
				t.Bound = p.typeRef(c)
			}
		}
		return t
	}
	return &typeRef{Name: stripSpace(p.text(n))}
}

func (p *unitParser) text(n *sitter.Node) string {
	return n.Content(p.src)
}

func namedChildren(n *sitter.Node) []*sitter.Node {
	out := make([]*sitter.Node, 0, n.NamedChildCount())
	for i := 0; i < int(n.NamedChildCount()); i++ {
		out = append(out, n.NamedChild(i))
	}
	return out
}

func firstNamed(n *sitter.Node, kinds ...string) *sitter.Node {
	for _, c := range namedChildren(n) {
		for _, k := range kinds {
			if c.Type() == k {
				return c
			}
		}
	}
	return nil
}

func firstType(n *sitter.Node) *sitter.Node {
	for _, c := range namedChildren(n) {
		if typeNodes[c.Type()] {
			return c
		}
	}
	return nil
}

func lastType(n *sitter.Node) *sitter.Node {
	var last *sitter.Node
	for _, c := range namedChildren(n) {
		if typeNodes[c.Type()] {
			last = c
		}
	}
	return last
}

func stripSpace(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// collapseSpace turns whitespace runs outside string literals into one space.
func collapseSpace(s string) string {
	var (
		b       strings.Builder
		quote   byte
		pending bool
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			b.WriteByte(c)
			switch c {
			case '\\':
				if i+1 < len(s) {
					i++
					b.WriteByte(s[i])
				}
			case quote:
				quote = 0
			}
			continue
		}
		switch c {
		case ' ', '\t', '\n', '\r':
			pending = true
			continue
		case '"', '\'':
			quote = c
		}
		if pending && b.Len() > 0 {
			b.WriteByte(' ')
		}
		pending = false
		b.WriteByte(c)
	}
	return b.String()
}
