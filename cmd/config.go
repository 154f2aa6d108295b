package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/cmmoran/viewgen/pkg/view"
)

type config struct {
	View view.Options `mapstructure:"view"`
}

// viewFlags maps option flags to their key below "view" in the config.
var viewFlags = map[string]string{
	"root":                  "root",
	"bean-pattern":          "bean_patterns",
	"catalog":               "catalog",
	"base-dir":              "base_dir",
	"base-package":          "base_package",
	"class-suffix":          "class_suffix",
	"join-prefix":           "join_prefix",
	"language":              "language",
	"keep-annotations":      "keep_annotations",
	"exclude-annotations":   "exclude_annotations",
	"import-source-classes": "import_source_classes",
	"manifest":              "manifest",
}

func bindViewFlags(fs *pflag.FlagSet) {
	d := view.NewOptions()
	fs.StringP("root", "r", d.Root, "project root; bean patterns, base dir and manifest are relative to it")
	fs.StringSlice("bean-pattern", d.BeanPatterns, "doublestar pattern(s) selecting bean sources")
	fs.String("catalog", d.Catalog, "YAML class catalog used instead of scanning sources")
	fs.String("base-dir", d.BaseDir, "directory receiving generated views")
	fs.String("base-package", d.BasePackage, "package of generated views")
	fs.String("class-suffix", d.ClassSuffix, "suffix stripped from class names before prefixing fields")
	fs.String("join-prefix", d.JoinPrefix, "prefix of join keys stored in constants")
	fs.String("language", d.Language, "output language (java, go)")
	fs.Bool("keep-annotations", d.KeepAnnotations, "copy the remaining source annotations of each field")
	fs.StringSlice("exclude-annotations", d.ExcludeAnnotations, "annotations whose fields are left out of --all-fields")
	fs.Bool("import-source-classes", d.ImportSourceClasses, "import the classes contributing fields")
	fs.String("manifest", d.Manifest, "manifest recording generated views")

	for name, key := range viewFlags {
		_ = viper.BindPFlag("view."+key, fs.Lookup(name))
	}
}

// setViewDefaults registers every option default so that a partial "view"
// section in the config keeps the remaining defaults.
func setViewDefaults() {
	d := view.NewOptions()
	viper.SetDefault("view.root", d.Root)
	viper.SetDefault("view.bean_patterns", d.BeanPatterns)
	viper.SetDefault("view.base_dir", d.BaseDir)
	viper.SetDefault("view.base_package", d.BasePackage)
	viper.SetDefault("view.class_suffix", d.ClassSuffix)
	viper.SetDefault("view.join_prefix", d.JoinPrefix)
	viper.SetDefault("view.language", d.Language)
	viper.SetDefault("view.description_annotation", d.DescriptionAnnotation)
	viper.SetDefault("view.projection_annotation", d.ProjectionAnnotation)
	viper.SetDefault("view.projection_import", d.ProjectionImport)
	viper.SetDefault("view.framework_imports", d.FrameworkImports)
	viper.SetDefault("view.class_annotations", d.ClassAnnotations)
	viper.SetDefault("view.import_source_classes", d.ImportSourceClasses)
	viper.SetDefault("view.manifest", d.Manifest)
}

// loadOptions merges defaults, config files, environment and flags.
func loadOptions() (*view.Options, error) {
	var cfg config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	o := &cfg.View
	if err := o.Normalize(); err != nil {
		return nil, err
	}
	return o, nil
}

// projectFs is the filesystem rooted at the project root of o.
func projectFs(o *view.Options) (afero.Fs, error) {
	root, err := filepath.Abs(o.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve root %s: %w", o.Root, err)
	}
	return afero.NewBasePathFs(afero.NewOsFs(), root), nil
}
