package view

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	o, err := New()
	require.NoError(t, err)
	require.Equal(t, LanguageJava, o.Language)
	require.Equal(t, ".java", o.Extension())
	require.Equal(t, "Schema", o.DescriptionAnnotation)
	require.Equal(t, `@Schema(description = "")`, o.DefaultDescription)
	require.True(t, o.ImportSourceClasses)
	require.Equal(t, []string{defaultBeanPattern}, o.BeanPatterns)
}

func TestNormalize(t *testing.T) {
	o := &Options{
		BaseDir:               `src\main\java\com\acme\view\`,
		BasePackage:           ".com.acme.view.",
		Language:              " GO ",
		DescriptionAnnotation: "@ApiModelProperty",
		ProjectionAnnotation:  "@Select",
		ExcludeAnnotations:    []string{" @JsonIgnore", "Transient"},
	}
	require.NoError(t, o.Normalize())
	require.Equal(t, ".", o.Root)
	require.Equal(t, "src/main/java/com/acme/view", o.BaseDir)
	require.Equal(t, "com.acme.view", o.BasePackage)
	require.Equal(t, LanguageGo, o.Language)
	require.Equal(t, ".go", o.Extension())
	require.Equal(t, "ApiModelProperty", o.DescriptionAnnotation)
	require.Equal(t, `@ApiModelProperty(description = "")`, o.DefaultDescription)
	require.Equal(t, "Select", o.ProjectionAnnotation)
	require.Equal(t, []string{"JsonIgnore", "Transient"}, o.ExcludeAnnotations)
	require.Equal(t, defaultManifestPath, o.Manifest)
}

func TestNormalizeRejectsLanguage(t *testing.T) {
	_, err := New(WithLanguage("kotlin"))
	require.ErrorContains(t, err, `unsupported language "kotlin"`)
}

func TestSubfolder(t *testing.T) {
	o, err := New(WithBasePackage("com.acme.view"), WithBaseDir("src/view"))
	require.NoError(t, err)

	tests := []struct {
		sub     string
		wantPkg string
		wantDir string
	}{
		{"", "com.acme.view", "src/view"},
		{"sys", "com.acme.view.sys", "src/view/sys"},
		{"/sys/user/", "com.acme.view.sys.user", "src/view/sys/user"},
		{"sys.user", "com.acme.view.sys.user", "src/view/sys/user"},
		{`sys\user`, "com.acme.view.sys.user", "src/view/sys/user"},
	}
	for _, tt := range tests {
		t.Run(tt.sub, func(t *testing.T) {
			require.Equal(t, tt.wantPkg, o.PackageFor(tt.sub))
			require.Equal(t, tt.wantDir, o.DirFor(tt.sub))
		})
	}
}

func TestWithBeanPatterns(t *testing.T) {
	o, err := New(WithBeanPatterns(" a/**/*.java", "b/*.java"))
	require.NoError(t, err)
	require.Equal(t, []string{"a/**/*.java", "b/*.java"}, o.BeanPatterns)
	// defaults are not mutated
	require.Equal(t, []string{defaultBeanPattern}, NewOptions().BeanPatterns)
}
