// Package catalog is a SymbolSource backed by a YAML description of classes
// and their fields. It serves projects whose sources are not on disk and keeps
// tests independent of the Java scanner.
//
//	classes:
//	  - name: com.example.bean.UserBean
//	    fields:
//	      - name: id
//	        type: long
//	      - name: roles
//	        type: List<String>
//	        qualified_type: java.util.List<java.lang.String>
//	        annotations: ['@Schema(description = "roles")']
package catalog

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/cmmoran/viewgen/internal/model"
	"github.com/cmmoran/viewgen/internal/symbols"
)

type Field struct {
	Name          string   `yaml:"name"`
	Type          string   `yaml:"type"`
	QualifiedType string   `yaml:"qualified_type,omitempty"`
	Annotations   []string `yaml:"annotations,omitempty"`
	Static        bool     `yaml:"static,omitempty"`
}

type Class struct {
	Name   string  `yaml:"name"` // qualified
	Fields []Field `yaml:"fields"`
}

type Catalog struct {
	Classes []Class `yaml:"classes"`
}

// Source serves the classes of a Catalog in file order.
type Source struct {
	catalog Catalog
}

var _ symbols.SymbolSource = (*Source)(nil)

func New(classes ...Class) *Source {
	return &Source{catalog: Catalog{Classes: classes}}
}

// Load reads a YAML catalog from fs.
func Load(fs afero.Fs, path string) (*Source, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var c Catalog
	if err = yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("unmarshal catalog: %w", err)
	}
	for i, cl := range c.Classes {
		if strings.TrimSpace(cl.Name) == "" {
			return nil, fmt.Errorf("catalog class %d has no name", i)
		}
	}
	return &Source{catalog: c}, nil
}

// ListCandidateClasses returns the catalog classes whose qualified name starts
// with rootHint, a package prefix.
func (s *Source) ListCandidateClasses(ctx context.Context, rootHint string) ([]model.ClassDescriptor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	hint := strings.Trim(rootHint, ".")
	out := make([]model.ClassDescriptor, 0, len(s.catalog.Classes))
	for _, c := range s.catalog.Classes {
		if hint != "" && c.Name != hint && !strings.HasPrefix(c.Name, hint+".") {
			continue
		}
		out = append(out, model.NewClassDescriptor(c.Name))
	}
	return out, nil
}

func (s *Source) FieldsOf(ctx context.Context, class model.ClassDescriptor) ([]model.FieldDescriptor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	all, _ := s.ListCandidateClasses(ctx, "")
	name := class.QualifiedName
	if name == "" {
		name = class.SimpleName
	}
	found, err := symbols.FindClass(all, name)
	if err != nil {
		return nil, err
	}

	i := slices.IndexFunc(s.catalog.Classes, func(c Class) bool { return c.Name == found.QualifiedName })
	fields := make([]model.FieldDescriptor, 0, len(s.catalog.Classes[i].Fields))
	for _, f := range s.catalog.Classes[i].Fields {
		fields = append(fields, model.FieldDescriptor{
			DeclaringClass: found.SimpleName,
			FieldName:      f.Name,
			TypeText:       f.Type,
			QualifiedType:  f.QualifiedType,
			Annotations:    slices.Clone(f.Annotations),
			IsStatic:       f.Static,
		})
	}
	return fields, nil
}
