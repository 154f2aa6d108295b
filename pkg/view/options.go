package view

import (
	"fmt"
	"path"
	"strings"
)

const (
	LanguageJava = "java"
	LanguageGo   = "go"
)

// Options control symbol discovery, naming and rendering.
//
// Root                  – project root scanned for bean sources
// BeanPatterns          – doublestar patterns, relative to Root, selecting bean sources
// Catalog               – optional YAML symbol catalog used instead of scanning sources
// BaseDir               – directory, relative to Root, receiving generated views
// BasePackage           – package of generated views; subfolders are appended
// ClassSuffix           – suffix stripped from class names before prefixing ("Bean")
// JoinPrefix            – prepended to the join key stored in constants ("" → ROLE = "Role")
// Language              – output language: java (default) or go
// DescriptionAnnotation – name of the description annotation reused from sources ("Schema")
// DefaultDescription    – annotation synthesized when a field carries none
// ProjectionAnnotation  – name of the projection marker ("Select")
// ProjectionImport      – import added for the projection marker when auto select is on
// FrameworkImports      – imports always present
// ClassAnnotations      – annotations placed on the generated class
// ImportSourceClasses   – import every class that contributes fields
// KeepAnnotations       – copy the remaining source annotations of each field
// ExcludeAnnotations    – fields carrying one of these annotations are left out of --all-fields
// Manifest              – manifest file, relative to Root, recording generated views
type Options struct {
	Root                  string   `json:"root,omitempty" yaml:"root,omitempty" toml:"root,omitempty" mapstructure:"root,omitempty"`
	BeanPatterns          []string `json:"bean_patterns,omitempty" yaml:"bean_patterns,omitempty" toml:"bean_patterns,omitempty" mapstructure:"bean_patterns,omitempty"`
	Catalog               string   `json:"catalog,omitempty" yaml:"catalog,omitempty" toml:"catalog,omitempty" mapstructure:"catalog,omitempty"`
	BaseDir               string   `json:"base_dir,omitempty" yaml:"base_dir,omitempty" toml:"base_dir,omitempty" mapstructure:"base_dir,omitempty"`
	BasePackage           string   `json:"base_package,omitempty" yaml:"base_package,omitempty" toml:"base_package,omitempty" mapstructure:"base_package,omitempty"`
	ClassSuffix           string   `json:"class_suffix,omitempty" yaml:"class_suffix,omitempty" toml:"class_suffix,omitempty" mapstructure:"class_suffix,omitempty"`
	JoinPrefix            string   `json:"join_prefix,omitempty" yaml:"join_prefix,omitempty" toml:"join_prefix,omitempty" mapstructure:"join_prefix,omitempty"`
	Language              string   `json:"language,omitempty" yaml:"language,omitempty" toml:"language,omitempty" mapstructure:"language,omitempty"`
	DescriptionAnnotation string   `json:"description_annotation,omitempty" yaml:"description_annotation,omitempty" toml:"description_annotation,omitempty" mapstructure:"description_annotation,omitempty"`
	DefaultDescription    string   `json:"default_description,omitempty" yaml:"default_description,omitempty" toml:"default_description,omitempty" mapstructure:"default_description,omitempty"`
	ProjectionAnnotation  string   `json:"projection_annotation,omitempty" yaml:"projection_annotation,omitempty" toml:"projection_annotation,omitempty" mapstructure:"projection_annotation,omitempty"`
	ProjectionImport      string   `json:"projection_import,omitempty" yaml:"projection_import,omitempty" toml:"projection_import,omitempty" mapstructure:"projection_import,omitempty"`
	FrameworkImports      []string `json:"framework_imports,omitempty" yaml:"framework_imports,omitempty" toml:"framework_imports,omitempty" mapstructure:"framework_imports,omitempty"`
	ClassAnnotations      []string `json:"class_annotations,omitempty" yaml:"class_annotations,omitempty" toml:"class_annotations,omitempty" mapstructure:"class_annotations,omitempty"`
	ImportSourceClasses   bool     `json:"import_source_classes" yaml:"import_source_classes" toml:"import_source_classes" mapstructure:"import_source_classes"`
	KeepAnnotations       bool     `json:"keep_annotations,omitempty" yaml:"keep_annotations,omitempty" toml:"keep_annotations,omitempty" mapstructure:"keep_annotations,omitempty"`
	ExcludeAnnotations    []string `json:"exclude_annotations,omitempty" yaml:"exclude_annotations,omitempty" toml:"exclude_annotations,omitempty" mapstructure:"exclude_annotations,omitempty"`
	Manifest              string   `json:"manifest,omitempty" yaml:"manifest,omitempty" toml:"manifest,omitempty" mapstructure:"manifest,omitempty"`
}

const (
	defaultBeanPattern  = "xhsoft-base/src/main/java/com/xhsoft/base/model/bean/**/*.java"
	defaultBaseDir      = "xhsoft-base/src/main/java/com/xhsoft/base/model/view"
	defaultBasePackage  = "com.xhsoft.base.model.view"
	defaultClassSuffix  = "Bean"
	defaultDescription  = "Schema"
	defaultProjection   = "Select"
	defaultProjImport   = "com.xhsoft.lib.ext.hql_builder.anno.Select"
	defaultManifestPath = ".viewgen/manifest.yaml"
)

func NewOptions() *Options {
	return &Options{
		Root:                  ".",
		BeanPatterns:          []string{defaultBeanPattern},
		BaseDir:               defaultBaseDir,
		BasePackage:           defaultBasePackage,
		ClassSuffix:           defaultClassSuffix,
		JoinPrefix:            "",
		Language:              LanguageJava,
		DescriptionAnnotation: defaultDescription,
		DefaultDescription:    `@Schema(description = "")`,
		ProjectionAnnotation:  defaultProjection,
		ProjectionImport:      defaultProjImport,
		FrameworkImports:      []string{"io.swagger.v3.oas.annotations.media.Schema", "lombok.Data"},
		ClassAnnotations:      []string{"@Data"},
		ImportSourceClasses:   true,
		Manifest:              defaultManifestPath,
	}
}

// Normalize fills unset values with defaults and validates the rest.
func (o *Options) Normalize() error {
	if len(o.Root) == 0 {
		o.Root = "."
	}
	if len(o.BeanPatterns) == 0 {
		o.BeanPatterns = []string{defaultBeanPattern}
	}
	if len(o.BaseDir) == 0 {
		o.BaseDir = defaultBaseDir
	}
	o.BaseDir = strings.TrimSuffix(path.Clean(strings.ReplaceAll(o.BaseDir, "\\", "/")), "/")
	o.BasePackage = strings.Trim(o.BasePackage, ".")
	if len(o.BasePackage) == 0 {
		o.BasePackage = defaultBasePackage
	}
	if len(o.DescriptionAnnotation) == 0 {
		o.DescriptionAnnotation = defaultDescription
	}
	o.DescriptionAnnotation = strings.TrimPrefix(o.DescriptionAnnotation, "@")
	if len(o.DefaultDescription) == 0 {
		o.DefaultDescription = fmt.Sprintf(`@%s(description = "")`, o.DescriptionAnnotation)
	}
	if len(o.ProjectionAnnotation) == 0 {
		o.ProjectionAnnotation = defaultProjection
	}
	o.ProjectionAnnotation = strings.TrimPrefix(o.ProjectionAnnotation, "@")
	if len(o.Manifest) == 0 {
		o.Manifest = defaultManifestPath
	}

	o.Language = strings.ToLower(strings.TrimSpace(o.Language))
	switch o.Language {
	case "":
		o.Language = LanguageJava
	case LanguageJava, LanguageGo:
	default:
		return fmt.Errorf("unsupported language %q (want %s or %s)", o.Language, LanguageJava, LanguageGo)
	}

	for i, a := range o.ExcludeAnnotations {
		o.ExcludeAnnotations[i] = strings.TrimPrefix(strings.TrimSpace(a), "@")
	}
	return nil
}

// Extension returns the file extension of generated views, dot included.
func (o *Options) Extension() string {
	if o.Language == LanguageGo {
		return ".go"
	}
	return ".java"
}

// PackageFor returns the package of a view generated into subfolder.
func (o *Options) PackageFor(subfolder string) string {
	sub := cleanSubfolder(subfolder)
	if sub == "" {
		return o.BasePackage
	}
	return o.BasePackage + "." + strings.ReplaceAll(sub, "/", ".")
}

// DirFor returns the directory, relative to Root, receiving a view generated into subfolder.
func (o *Options) DirFor(subfolder string) string {
	sub := cleanSubfolder(subfolder)
	if sub == "" {
		return o.BaseDir
	}
	return o.BaseDir + "/" + sub
}

// cleanSubfolder accepts "a/b", "a.b" or "/a/b/" and returns "a/b".
func cleanSubfolder(s string) string {
	s = strings.TrimSpace(strings.ReplaceAll(s, "\\", "/"))
	s = strings.ReplaceAll(s, ".", "/")
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '/' })
	return strings.Join(parts, "/")
}

// functional option pattern ---------------------------------------------------

type Option func(*Options)

func WithRoot(d string) Option              { return func(o *Options) { o.Root = d } }
func WithCatalog(f string) Option           { return func(o *Options) { o.Catalog = f } }
func WithBaseDir(d string) Option           { return func(o *Options) { o.BaseDir = d } }
func WithBasePackage(p string) Option       { return func(o *Options) { o.BasePackage = p } }
func WithClassSuffix(s string) Option       { return func(o *Options) { o.ClassSuffix = s } }
func WithJoinPrefix(p string) Option        { return func(o *Options) { o.JoinPrefix = p } }
func WithLanguage(l string) Option          { return func(o *Options) { o.Language = l } }
func WithManifest(f string) Option          { return func(o *Options) { o.Manifest = f } }
func WithKeepAnnotations() Option           { return func(o *Options) { o.KeepAnnotations = true } }
func WithImportSourceClasses(b bool) Option { return func(o *Options) { o.ImportSourceClasses = b } }
func WithBeanPatterns(patterns ...string) Option {
	return func(o *Options) {
		o.BeanPatterns = o.BeanPatterns[:0:0]
		for _, p := range patterns {
			o.BeanPatterns = append(o.BeanPatterns, strings.TrimSpace(p))
		}
	}
}
func WithExcludeAnnotations(names ...string) Option {
	return func(o *Options) {
		for _, n := range names {
			o.ExcludeAnnotations = append(o.ExcludeAnnotations, strings.TrimSpace(n))
		}
	}
}

// New builds normalized Options from defaults and opts.
func New(opts ...Option) (*Options, error) {
	o := NewOptions()
	for _, fn := range opts {
		fn(o)
	}
	if err := o.Normalize(); err != nil {
		return nil, err
	}
	return o, nil
}
