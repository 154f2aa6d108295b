package cmd

import (
	"fmt"
	"log/slog"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/cmmoran/viewgen/pkg/action/generate"
	"github.com/cmmoran/viewgen/pkg/action/history"
)

func init() {
	rootCmd.AddCommand(NewHistoryCommand(), NewDiffCommand())
}

func NewHistoryCommand() *cobra.Command {
	var historyCmd = &cobra.Command{
		Use:   "history",
		Short: "list generated views",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			opts, err := loadOptions()
			if err != nil {
				return err
			}
			fs, err := projectFs(opts)
			if err != nil {
				return err
			}
			m, err := history.List(fs, opts.Manifest)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(c.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, v := range m.Views {
				marker := ""
				if v.Package+"."+v.Name == m.Current {
					marker = color.New(color.FgHiMagenta).Sprint(" ←")
				}
				_, _ = fmt.Fprintf(w, "%s.%s%s\t%s\t%s\n", v.Package, v.Name, marker, v.File, v.GeneratedAt.Local().Format(time.DateTime))
			}
			return w.Flush()
		},
	}
	return historyCmd
}

func NewDiffCommand() *cobra.Command {
	var diffCmd = &cobra.Command{
		Use:   "diff [view]",
		Short: "diff a view against its regenerated text",
		Long: `Regenerate a recorded view from the current sources and diff it against the file on disk.
Without a view name, diff the two most recently generated views.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			opts, err := loadOptions()
			if err != nil {
				return err
			}
			fs, err := projectFs(opts)
			if err != nil {
				return err
			}

			var diff string
			if len(args) == 0 {
				diff, err = history.DiffCurrentWithPrevious(fs, opts.Manifest)
			} else {
				src, serr := generate.OpenSource(fs, opts, slog.Default())
				if serr != nil {
					return serr
				}
				diff, err = history.Diff(c.Context(), fs, src, opts, args[0], slog.Default())
			}
			if err != nil {
				return err
			}

			if diff == "" {
				_, _ = fmt.Fprintln(c.OutOrStdout(), color.New(color.FgGreen).Sprint("up to date"))
				return nil
			}
			_, _ = fmt.Fprint(c.OutOrStdout(), colorDiff(diff))
			return nil
		},
	}
	return diffCmd
}

func colorDiff(diff string) string {
	lines := strings.SplitAfter(diff, "\n")
	for i, l := range lines {
		switch {
		case strings.HasPrefix(l, "+++"), strings.HasPrefix(l, "---"):
			lines[i] = color.New(color.Bold).Sprint(l)
		case strings.HasPrefix(l, "+"):
			lines[i] = color.New(color.FgGreen).Sprint(l)
		case strings.HasPrefix(l, "-"):
			lines[i] = color.New(color.FgRed).Sprint(l)
		case strings.HasPrefix(l, "@@"):
			lines[i] = color.New(color.FgCyan).Sprint(l)
		}
	}
	return strings.Join(lines, "")
}
