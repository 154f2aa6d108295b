package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/samber/lo"

	"github.com/cmmoran/viewgen/internal/model"
	"github.com/cmmoran/viewgen/internal/sink"
	"github.com/cmmoran/viewgen/internal/symbols"
	"github.com/cmmoran/viewgen/pkg/view"
)

// Generator holds the collaborators of view generation. A Generator keeps no
// state between runs.
type Generator struct {
	Opts   view.Options
	Source symbols.SymbolSource
	Logger *slog.Logger

	renderer Renderer
}

// Result is the outcome of one generation run.
type Result struct {
	File *model.GeneratedFile
	Text string
	Dir  string // target directory, relative to the sink root
	Path string // target file; after Write, the file the sink returned

	// Warnings are non-fatal conditions: *MissingMainClassReferenceWarning,
	// *DuplicateTargetFileError.
	Warnings []error
}

// Existed reports whether Write found the target file already present.
func (r *Result) Existed() bool {
	var dup *DuplicateTargetFileError
	return lo.ContainsBy(r.Warnings, func(err error) bool { return errors.As(err, &dup) })
}

func New(src symbols.SymbolSource, opts *view.Options, logger *slog.Logger) (*Generator, error) {
	if src == nil {
		return nil, errors.New("generator: nil symbol source")
	}
	if opts == nil {
		opts = view.NewOptions()
	}
	if err := opts.Normalize(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	r, err := NewRenderer(opts.Language)
	if err != nil {
		return nil, err
	}
	return &Generator{
		Opts:     *opts,
		Source:   src,
		Logger:   logger,
		renderer: r,
	}, nil
}

// Generate builds and renders the view described by sel. Nothing is written.
func (g *Generator) Generate(ctx context.Context, sel model.UserSelections) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(sel.SelectedClasses) == 0 {
		return nil, fmt.Errorf("%w: no classes selected", ErrEmptySelection)
	}
	if len(sel.SelectedFields) == 0 {
		return nil, fmt.Errorf("%w: no fields selected", ErrEmptySelection)
	}
	className := strings.TrimSuffix(strings.TrimSpace(sel.Filename), g.renderer.Extension())
	if className == "" {
		return nil, ErrEmptyClassName
	}

	l := g.Logger.With("view", className)
	res := &Result{}

	collected, err := CollectFields(ctx, g.Source, sel.SelectedClasses)
	if err != nil {
		return nil, err
	}
	selected, err := SelectFields(collected, sel.SelectedFields)
	if err != nil {
		return nil, err
	}

	if sel.AutoGenerateSelect && sel.MainClassName == "" {
		w := &MissingMainClassReferenceWarning{ClassName: className}
		l.Warn(w.Error())
		res.Warnings = append(res.Warnings, w)
	}
	for i := range selected {
		selected[i].IsMainClassField = IsMainClass(sel.MainClassName, selected[i].DeclaringClass)
	}

	isMain := func(f model.FieldDescriptor, _ int) bool { return f.IsMainClassField }
	ordered := append(lo.Filter(selected, isMain), lo.Reject(selected, isMain)...)

	reg := NewConstantRegistry(g.Opts.JoinPrefix)
	ao := AnnotationOptions{
		Description:        g.Opts.DescriptionAnnotation,
		DefaultDescription: g.Opts.DefaultDescription,
		Projection:         g.Opts.ProjectionAnnotation,
		ClassSuffix:        g.Opts.ClassSuffix,
		AutoSelect:         sel.AutoGenerateSelect,
		Keep:               g.Opts.KeepAnnotations,
	}
	fields := make([]*model.WorkingField, 0, len(ordered))
	for _, f := range ordered {
		stem := ClassStem(f.DeclaringClass, g.Opts.ClassSuffix)
		wf := &model.WorkingField{
			Source:      f,
			Stem:        stem,
			IsMain:      f.IsMainClassField,
			EmittedName: ResolveName(f.FieldName, stem, f.IsMainClassField, sel.AutoGenerateSelect),
		}
		annotateField(wf, reg, ao)
		fields = append(fields, wf)
	}

	dups := lo.Uniq(lo.Map(
		lo.FindDuplicatesBy(fields, func(wf *model.WorkingField) string { return wf.EmittedName }),
		func(wf *model.WorkingField, _ int) string { return wf.EmittedName },
	))
	if len(dups) > 0 {
		l.With("names", dups).Warn("view declares duplicate field names")
	}

	contributing := lo.Filter(sel.SelectedClasses, func(c model.ClassDescriptor, _ int) bool {
		return lo.ContainsBy(ordered, func(f model.FieldDescriptor) bool { return f.DeclaringClass == c.SimpleName })
	})
	imports := ResolveImports(ordered, contributing, ImportOptions{
		Framework:           g.Opts.FrameworkImports,
		Projection:          g.Opts.ProjectionImport,
		AutoSelect:          sel.AutoGenerateSelect,
		ImportSourceClasses: g.Opts.ImportSourceClasses,
	})

	res.File = &model.GeneratedFile{
		PackageName:      g.Opts.PackageFor(sel.Subfolder),
		ClassName:        className,
		ClassAnnotations: append([]string(nil), g.Opts.ClassAnnotations...),
		Imports:          imports,
		Constants:        reg.Entries(),
		Fields:           fields,
	}
	if res.Text, err = g.renderer.Render(res.File); err != nil {
		return nil, err
	}
	res.Dir = g.Opts.DirFor(sel.Subfolder)
	res.Path = path.Join(res.Dir, className+g.renderer.Extension())

	l.With(
		"package", res.File.PackageName,
		"fields", len(fields),
		"constants", len(res.File.Constants),
		"imports", len(imports),
	).Debug("rendered view")
	return res, nil
}

// Write hands the rendered text to s. An existing target is reported as a
// *DuplicateTargetFileError warning and left untouched.
func (g *Generator) Write(res *Result, s sink.FileSink) error {
	h, err := s.Write(res.Dir, res.File.ClassName, res.Text)
	if err != nil {
		return err
	}
	res.Path = h.Path
	if h.Existed {
		w := &DuplicateTargetFileError{Path: h.Path}
		g.Logger.With("path", h.Path).Warn(w.Error())
		res.Warnings = append(res.Warnings, w)
		return nil
	}
	g.Logger.With("path", h.Path).Info("wrote view")
	return nil
}
