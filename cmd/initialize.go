package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/cmmoran/viewgen/pkg/action/initialize"
)

func init() {
	var initializeCmd = NewInitCommand()
	rootCmd.AddCommand(initializeCmd)
}

func NewInitCommand() *cobra.Command {
	var (
		configPath string
		force      bool
	)

	// initCmd represents the viewgen init command
	var initCmd = &cobra.Command{
		Use:   "init",
		Short: "init a project",
		Long:  "Write a config file with the current view options and an empty view manifest",
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
			written, err := initialize.Generate(fs, configPath, opts, force)
			if err != nil {
				return err
			}
			for _, p := range written {
				_, _ = fmt.Fprintf(c.OutOrStdout(), "%s %s\n", color.New(color.FgGreen).Sprint("CREATE "), p)
			}
			return nil
		},
	}
	initCmd.Flags().StringVarP(&configPath, "output-file", "o", "config.yaml", "config file to write, relative to the project root")
	initCmd.Flags().BoolVar(&force, "force", false, "replace an existing config file")

	return initCmd
}
