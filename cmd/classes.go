package cmd

import (
	"fmt"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/cmmoran/viewgen/internal/model"
	"github.com/cmmoran/viewgen/internal/symbols"
	"github.com/cmmoran/viewgen/pkg/action/generate"
)

func init() {
	rootCmd.AddCommand(NewClassesCommand(), NewFieldsCommand())
}

func openSource() (symbols.SymbolSource, error) {
	opts, err := loadOptions()
	if err != nil {
		return nil, err
	}
	fs, err := projectFs(opts)
	if err != nil {
		return nil, err
	}
	return generate.OpenSource(fs, opts, slog.Default())
}

func NewClassesCommand() *cobra.Command {
	var hint string

	var classesCmd = &cobra.Command{
		Use:   "classes",
		Short: "list candidate classes",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			src, err := openSource()
			if err != nil {
				return err
			}
			classes, err := src.ListCandidateClasses(c.Context(), hint)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(c.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, cl := range classes {
				_, _ = fmt.Fprintf(w, "%s\t%s\n", cl.SimpleName, color.New(color.FgHiBlack).Sprint(cl.Package()))
			}
			return w.Flush()
		},
	}
	classesCmd.Flags().StringVar(&hint, "hint", "", "only classes below this directory or package")
	return classesCmd
}

func NewFieldsCommand() *cobra.Command {
	var fieldsCmd = &cobra.Command{
		Use:   "fields <class>",
		Short: "list the fields of a class",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			src, err := openSource()
			if err != nil {
				return err
			}
			candidates, err := src.ListCandidateClasses(c.Context(), "")
			if err != nil {
				return err
			}
			class, err := symbols.FindClass(candidates, args[0])
			if err != nil {
				return err
			}
			fields, err := src.FieldsOf(c.Context(), class)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(c.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, f := range fields {
				_, _ = fmt.Fprintln(w, fieldLine(f))
			}
			return w.Flush()
		},
	}
	return fieldsCmd
}

func fieldLine(f model.FieldDescriptor) string {
	name := f.Key()
	if f.IsStatic {
		name = color.New(color.FgHiBlack).Sprint(name + " (static)")
	}
	return fmt.Sprintf("%s\t%s\t%s", name, f.TypeText, strings.Join(f.Annotations, " "))
}
