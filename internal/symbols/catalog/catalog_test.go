package catalog

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/cmmoran/viewgen/internal/model"
	"github.com/cmmoran/viewgen/internal/symbols"
)

const catalogYAML = `classes:
  - name: com.example.bean.UserBean
    fields:
      - name: id
        type: long
      - name: name
        type: String
        qualified_type: java.lang.String
        annotations: ['@Schema(description = "name")']
  - name: com.example.bean.sys.RoleBean
    fields:
      - name: TABLE
        type: String
        static: true
      - name: code
        type: String
`

func TestLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "catalog.yaml", []byte(catalogYAML), 0o644))

	s, err := Load(fs, "catalog.yaml")
	require.NoError(t, err)

	ctx := context.Background()
	classes, err := s.ListCandidateClasses(ctx, "")
	require.NoError(t, err)
	require.Equal(t, []model.ClassDescriptor{
		{QualifiedName: "com.example.bean.UserBean", SimpleName: "UserBean"},
		{QualifiedName: "com.example.bean.sys.RoleBean", SimpleName: "RoleBean"},
	}, classes)

	classes, err = s.ListCandidateClasses(ctx, "com.example.bean.sys")
	require.NoError(t, err)
	require.Len(t, classes, 1)

	fields, err := s.FieldsOf(ctx, model.ClassDescriptor{SimpleName: "UserBean"})
	require.NoError(t, err)
	require.Equal(t, []model.FieldDescriptor{
		{DeclaringClass: "UserBean", FieldName: "id", TypeText: "long"},
		{
			DeclaringClass: "UserBean", FieldName: "name", TypeText: "String", QualifiedType: "java.lang.String",
			Annotations: []string{`@Schema(description = "name")`},
		},
	}, fields)

	fields, err = s.FieldsOf(ctx, model.NewClassDescriptor("com.example.bean.sys.RoleBean"))
	require.NoError(t, err)
	require.True(t, fields[0].IsStatic)
}

func TestLoadErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	_, err := Load(fs, "missing.yaml")
	require.Error(t, err)

	require.NoError(t, afero.WriteFile(fs, "bad.yaml", []byte("classes:\n  - fields: []\n"), 0o644))
	_, err = Load(fs, "bad.yaml")
	require.ErrorContains(t, err, "has no name")
}

func TestUnknownClass(t *testing.T) {
	s := New(Class{Name: "a.Foo"}, Class{Name: "b.Foo"})
	_, err := s.FieldsOf(context.Background(), model.ClassDescriptor{SimpleName: "Bar"})
	require.ErrorIs(t, err, symbols.ErrUnknownClass)

	_, err = s.FieldsOf(context.Background(), model.ClassDescriptor{SimpleName: "Foo"})
	require.ErrorIs(t, err, symbols.ErrAmbiguousClass)
}
