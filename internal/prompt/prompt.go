// Package prompt collects UserSelections interactively through huh forms.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/samber/lo"

	"github.com/cmmoran/viewgen/internal/generator"
	"github.com/cmmoran/viewgen/internal/model"
	"github.com/cmmoran/viewgen/internal/symbols"
)

// ErrCancelled is returned when the user aborts a form.
var ErrCancelled = errors.New("selection cancelled")

// Session describes one interactive run.
type Session struct {
	Source      symbols.SymbolSource
	RootHint    string
	Current     string // class the user is working on, preselected and default main class
	ClassSuffix string
}

// Collect walks the user through class, field and file selection. A
// cancelled context or an aborted form returns before anything is generated.
func (s *Session) Collect(ctx context.Context) (model.UserSelections, error) {
	var candidates []model.ClassDescriptor
	err := Scan(ctx, "Scanning classes...", func(ctx context.Context) error {
		var err error
		candidates, err = s.Source.ListCandidateClasses(ctx, s.RootHint)
		return err
	})
	if err != nil {
		return model.UserSelections{}, err
	}
	if len(candidates) == 0 {
		return model.UserSelections{}, fmt.Errorf("%w: no candidate classes found", generator.ErrEmptySelection)
	}

	var preselected []string
	if s.Current != "" && strings.HasSuffix(s.Current, s.ClassSuffix) {
		preselected = append(preselected, s.Current)
	}
	classes, err := SelectClasses(candidates, preselected)
	if err != nil {
		return model.UserSelections{}, err
	}

	collected, err := generator.CollectFields(ctx, s.Source, classes)
	if err != nil {
		return model.UserSelections{}, err
	}
	fields, err := SelectFields(collected)
	if err != nil {
		return model.UserSelections{}, err
	}

	info := FileInfo{AutoSelect: true, MainClass: generator.DefaultMainClass(classes, s.Current)}
	if err = AskFileInfo(classes, &info); err != nil {
		return model.UserSelections{}, err
	}

	return model.UserSelections{
		SelectedClasses:    classes,
		SelectedFields:     fields,
		MainClassName:      info.MainClass,
		Filename:           strings.TrimSpace(info.Filename),
		Subfolder:          strings.TrimSpace(info.Subfolder),
		AutoGenerateSelect: info.AutoSelect,
	}, nil
}

// Scan runs fn behind a spinner. The spinner stops when ctx is cancelled.
func Scan(ctx context.Context, title string, fn func(ctx context.Context) error) error {
	var runErr error
	err := spinner.New().
		Title(title).
		Context(ctx).
		Action(func() { runErr = fn(ctx) }).
		Run()
	if err != nil {
		return err
	}
	if runErr != nil {
		return runErr
	}
	return ctx.Err()
}

// SelectClasses asks for one or more classes. Classes whose simple or
// qualified name is in preselected start checked.
func SelectClasses(candidates []model.ClassDescriptor, preselected []string) ([]model.ClassDescriptor, error) {
	options := lo.Map(candidates, func(c model.ClassDescriptor, _ int) huh.Option[string] {
		selected := lo.ContainsBy(preselected, c.Matches)
		return huh.NewOption(fmt.Sprintf("%s  %s", c.SimpleName, c.Package()), c.QualifiedName).Selected(selected)
	})

	var picked []string
	form := huh.NewForm(huh.NewGroup(
		huh.NewMultiSelect[string]().
			Title("Classes").
			Description("Classes contributing fields to the view").
			Options(options...).
			Filterable(true).
			Value(&picked).
			Validate(func(v []string) error {
				if len(v) == 0 {
					return errors.New("select at least one class")
				}
				return nil
			}),
	))
	if err := run(form); err != nil {
		return nil, err
	}
	return symbols.ResolveClasses(candidates, picked)
}

// SelectFields asks which collected fields go into the view.
func SelectFields(collected []model.FieldDescriptor) ([]model.FieldDescriptor, error) {
	options := lo.Map(collected, func(f model.FieldDescriptor, _ int) huh.Option[string] {
		return huh.NewOption(fmt.Sprintf("%s  %s", f.Key(), f.TypeText), f.Key())
	})

	var picked []string
	form := huh.NewForm(huh.NewGroup(
		huh.NewMultiSelect[string]().
			Title("Fields").
			Options(options...).
			Filterable(true).
			Height(20).
			Value(&picked).
			Validate(func(v []string) error {
				if len(v) == 0 {
					return errors.New("select at least one field")
				}
				return nil
			}),
	))
	if err := run(form); err != nil {
		return nil, err
	}

	keys := lo.Keyify(picked)
	return lo.Filter(collected, func(f model.FieldDescriptor, _ int) bool {
		_, ok := keys[f.Key()]
		return ok
	}), nil
}

// FileInfo is the file-level part of a selection.
type FileInfo struct {
	Filename   string
	Subfolder  string
	MainClass  string
	AutoSelect bool
}

// AskFileInfo asks for the view name, its subfolder, auto select and the main
// class. info carries the defaults.
func AskFileInfo(classes []model.ClassDescriptor, info *FileInfo) error {
	mainOptions := append(
		[]huh.Option[string]{huh.NewOption("(none)", "")},
		lo.Map(classes, func(c model.ClassDescriptor, _ int) huh.Option[string] {
			return huh.NewOption(c.SimpleName, c.SimpleName)
		})...,
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("View name").
				Description("Class name of the generated view").
				Value(&info.Filename).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return generator.ErrEmptyClassName
					}
					return nil
				}),
			huh.NewInput().
				Title("Subfolder").
				Description("Optional package below the base package, e.g. sys/user").
				Value(&info.Subfolder),
			huh.NewConfirm().
				Title("Generate @Select annotations?").
				Value(&info.AutoSelect),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Main class").
				Description("Fields of the main class keep their names").
				Options(mainOptions...).
				Value(&info.MainClass),
		).WithHideFunc(func() bool { return !info.AutoSelect }),
	)
	return run(form)
}

func run(form *huh.Form) error {
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrCancelled
		}
		return err
	}
	return nil
}
