package sink

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func TestFsSinkWrite(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := New(fs, "java")

	h, err := s.Write("src/view/sys", "UserRoleView", "class A {}\n")
	require.NoError(t, err)
	require.Equal(t, FileHandle{Path: "src/view/sys/UserRoleView.java"}, h)

	got, err := afero.ReadFile(fs, "src/view/sys/UserRoleView.java")
	require.NoError(t, err)
	require.Equal(t, "class A {}\n", string(got))
}

func TestFsSinkKeepsExistingFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "view/Foo.java", []byte("original"), 0o644))

	s := New(fs, ".java")
	h, err := s.Write("view", "Foo", "replacement")
	require.NoError(t, err)
	require.True(t, h.Existed)
	require.Equal(t, "view/Foo.java", h.Path)

	got, err := s.Read("view", "Foo")
	require.NoError(t, err)
	require.Equal(t, "original", got)
}

func TestFsSinkEmptyClassName(t *testing.T) {
	_, err := New(afero.NewMemMapFs(), ".java").Write("view", " ", "x")
	require.Error(t, err)
}
