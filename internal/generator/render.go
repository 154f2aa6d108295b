package generator

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/cmmoran/viewgen/internal/model"
	"github.com/cmmoran/viewgen/pkg/view"
)

// Renderer turns a GeneratedFile into source text. Renderers do not validate
// the produced text.
type Renderer interface {
	Render(file *model.GeneratedFile) (string, error)
	Extension() string
}

// NewRenderer returns the renderer for an output language.
func NewRenderer(language string) (Renderer, error) {
	switch language {
	case "", view.LanguageJava:
		return NewJavaRenderer(), nil
	case view.LanguageGo:
		return &GoRenderer{}, nil
	default:
		return nil, fmt.Errorf("no renderer for language %q", language)
	}
}

const javaFileTemplate = `package {{ .PackageName }};
{{ if .Imports }}
{{ range .Imports }}import {{ . }};
{{ end }}{{ end }}
{{ range .ClassAnnotations }}{{ . }}
{{ end }}public class {{ .ClassName }} {
{{- with .Constants }}

{{ . | join "\n" | indent 4 }}
{{- end }}

{{ range $i, $block := .FieldBlocks }}{{ if $i }}

{{ end }}{{ indent 4 $block }}{{ end }}

}
`

type javaTemplateData struct {
	PackageName      string
	ClassName        string
	ClassAnnotations []string
	Imports          []string
	Constants        []string
	FieldBlocks      []string
}

// JavaRenderer emits a Lombok @Data class through text/template.
type JavaRenderer struct {
	tmpl *template.Template
}

func NewJavaRenderer() *JavaRenderer {
	return &JavaRenderer{
		tmpl: template.Must(template.New("view.java").Funcs(sprig.TxtFuncMap()).Parse(javaFileTemplate)),
	}
}

func (r *JavaRenderer) Extension() string { return ".java" }

func (r *JavaRenderer) Render(file *model.GeneratedFile) (string, error) {
	data := javaTemplateData{
		PackageName:      file.PackageName,
		ClassName:        file.ClassName,
		ClassAnnotations: file.ClassAnnotations,
		Imports:          file.Imports,
		Constants:        file.ConstantDeclarations(),
		FieldBlocks:      file.FieldBlocks(),
	}

	buf := new(bytes.Buffer)
	if err := r.tmpl.Execute(buf, data); err != nil {
		return "", fmt.Errorf("render %s: %w", file.ClassName, err)
	}
	return buf.String(), nil
}
