// Package cli implements the grafiki command line: workbook in, solved
// roster workbook out, plus inspection of the normalized inputs.
package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	warnColor    = color.New(color.FgYellow)
	headerColor  = color.New(color.FgCyan, color.Bold)
)

var logLevel string

// NewRootCommand builds the grafiki command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "grafiki",
		Short:         "Monthly roster generator for an imaging department",
		Long:          "grafiki reads a planning workbook, solves the monthly staffing model and writes the resulting roster back to a workbook.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "INFO", "log level: DEBUG, INFO, WARN or ERROR")

	root.AddCommand(newGenerateCommand())
	root.AddCommand(newInspectCommand())
	return root
}

// Execute runs the command tree.
func Execute() error {
	return NewRootCommand().Execute()
}
