package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/cmmoran/viewgen/internal/generator"
	"github.com/cmmoran/viewgen/internal/model"
	"github.com/cmmoran/viewgen/internal/prompt"
	"github.com/cmmoran/viewgen/internal/symbols"
	"github.com/cmmoran/viewgen/pkg/action/generate"
	"github.com/cmmoran/viewgen/pkg/view"
)

func init() {
	var generateCmd = NewGenerateCommand()
	rootCmd.AddCommand(generateCmd)
}

type generateFlags struct {
	classes       []string
	fields        []string
	allFields     bool
	mainClass     string
	mainSet       bool
	name          string
	subfolder     string
	autoSelect    bool
	dryRun        bool
	interactive   bool
	current       string
	selectionFile string
}

func NewGenerateCommand() *cobra.Command {
	var flags generateFlags

	// generateCmd represents the viewgen generate command
	var generateCmd = &cobra.Command{
		Use:   "generate",
		Short: "generate a view class",
		Long:  "Generate a view class merging selected fields of one or more bean classes",
		Example: `  viewgen generate -c UserBean -c RoleBean --all-fields -m UserBean -n UserRoleView
  viewgen generate -c UserBean -f UserBean.id -f UserBean.name -n UserNameView --auto-select=false
  viewgen generate -i --current UserBean
  viewgen generate --selection user-role.yaml --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return runGenerate(c, &flags)
		},
	}
	fs := generateCmd.Flags()
	fs.StringSliceVarP(&flags.classes, "class", "c", []string{}, "class(es) contributing fields, simple or qualified name")
	fs.StringSliceVarP(&flags.fields, "field", "f", []string{}, "field(s) to include, as Class.field")
	fs.BoolVar(&flags.allFields, "all-fields", false, "include every instance field of the selected classes")
	fs.StringVarP(&flags.mainClass, "main", "m", "", "main class; its fields keep their names (default: --current or the first class)")
	fs.StringVarP(&flags.name, "name", "n", "", "class name of the generated view")
	fs.StringVarP(&flags.subfolder, "subfolder", "s", "", "subfolder below the base package, e.g. sys/user")
	fs.BoolVar(&flags.autoSelect, "auto-select", true, "generate projection annotations and join constants")
	fs.BoolVar(&flags.dryRun, "dry-run", false, "print the view instead of writing it")
	fs.BoolVarP(&flags.interactive, "interactive", "i", false, "choose classes, fields and names interactively")
	fs.StringVar(&flags.current, "current", "", "class currently being edited; preselected and default main class")
	fs.StringVar(&flags.selectionFile, "selection", "", "YAML file holding a complete selection")

	return generateCmd
}

func runGenerate(c *cobra.Command, flags *generateFlags) error {
	ctx := c.Context()
	l := slog.Default()

	opts, err := loadOptions()
	if err != nil {
		return err
	}
	fs, err := projectFs(opts)
	if err != nil {
		return err
	}
	src, err := generate.OpenSource(fs, opts, l)
	if err != nil {
		return err
	}

	var sel model.UserSelections
	switch {
	case flags.selectionFile != "":
		sel, err = generate.LoadSelection(afero.NewOsFs(), flags.selectionFile)
	case flags.interactive:
		s := &prompt.Session{
			Source:      src,
			Current:     flags.current,
			ClassSuffix: opts.ClassSuffix,
		}
		sel, err = s.Collect(ctx)
	default:
		flags.mainSet = c.Flags().Changed("main")
		sel, err = selectionFromFlags(ctx, flags, src, opts)
	}
	if quiet(c, err) {
		return nil
	}
	if err != nil {
		return err
	}

	res, err := generate.Generate(ctx, fs, src, opts, sel, flags.dryRun, l)
	if quiet(c, err) {
		return nil
	}
	if err != nil {
		return err
	}

	out := c.OutOrStdout()
	if flags.dryRun {
		_, _ = fmt.Fprint(out, res.Text)
		return nil
	}
	for _, w := range res.Warnings {
		_, _ = fmt.Fprintf(c.ErrOrStderr(), "%s %s\n", color.New(color.FgYellow).Sprint("warning:"), w)
	}
	if res.Existed() {
		_, _ = fmt.Fprintf(out, "%s %s\n", color.New(color.FgBlue).Sprint("EXISTS "), res.Path)
		return nil
	}
	_, _ = fmt.Fprintf(out, "%s %s\n", color.New(color.FgGreen).Sprint("CREATE "), res.Path)
	return nil
}

// quiet reports errors that end the run with a one-line notice instead of a
// failure: an empty selection or a cancelled prompt.
func quiet(c *cobra.Command, err error) bool {
	if err == nil || !(errors.Is(err, generator.ErrEmptySelection) || errors.Is(err, prompt.ErrCancelled)) {
		return false
	}
	_, _ = fmt.Fprintf(c.ErrOrStderr(), "%s %s\n", color.New(color.FgYellow).Sprint("nothing generated:"), err)
	return true
}

// selectionFromFlags builds the selection of a non-interactive run. Without
// -c the --current class is selected. Without --main and with auto select on,
// the main class defaults to --current when selected, else the first class;
// an explicit --main="" keeps it empty.
func selectionFromFlags(ctx context.Context, flags *generateFlags, src symbols.SymbolSource, opts *view.Options) (model.UserSelections, error) {
	names := flags.classes
	if len(names) == 0 && flags.current != "" {
		names = []string{flags.current}
	}
	if len(names) == 0 {
		return model.UserSelections{}, fmt.Errorf("%w: no classes given (use -c, --current or -i)", generator.ErrEmptySelection)
	}

	candidates, err := src.ListCandidateClasses(ctx, "")
	if err != nil {
		return model.UserSelections{}, err
	}
	classes, err := symbols.ResolveClasses(candidates, names)
	if err != nil {
		return model.UserSelections{}, err
	}

	var fields []model.FieldDescriptor
	if flags.allFields {
		collected, err := generator.CollectFields(ctx, src, classes)
		if err != nil {
			return model.UserSelections{}, err
		}
		fields = generator.DefaultFieldSelection(collected, opts.ExcludeAnnotations)
	}
	for _, r := range flags.fields {
		// a bare field name refers to the only selected class
		if !strings.Contains(r, ".") && len(classes) == 1 {
			r = classes[0].SimpleName + "." + r
		}
		f, err := model.ParseFieldRef(r)
		if err != nil {
			return model.UserSelections{}, err
		}
		fields = append(fields, f)
	}

	mainClass := flags.mainClass
	if mainClass == "" && !flags.mainSet && flags.autoSelect {
		mainClass = generator.DefaultMainClass(classes, flags.current)
	}

	return model.UserSelections{
		SelectedClasses:    classes,
		SelectedFields:     fields,
		MainClassName:      mainClass,
		Filename:           flags.name,
		Subfolder:          flags.subfolder,
		AutoGenerateSelect: flags.autoSelect,
	}, nil
}
