package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/oliszewskirob-bit/Grafiki-automat/internal/calendar"
	"github.com/oliszewskirob-bit/Grafiki-automat/internal/demand"
	"github.com/oliszewskirob-bit/Grafiki-automat/internal/domain"
	"github.com/oliszewskirob-bit/Grafiki-automat/internal/engine"
	"github.com/oliszewskirob-bit/Grafiki-automat/internal/reporting"
	"github.com/oliszewskirob-bit/Grafiki-automat/internal/xlsx"
	"github.com/oliszewskirob-bit/Grafiki-automat/pkg/logger"
)

// maxIssuesShown caps how many row errors are printed for a broken sheet.
const maxIssuesShown = 5

func newGenerateCommand() *cobra.Command {
	var (
		input           string
		month           string
		out             string
		maxSolveSeconds float64
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Solve the roster for a month and export it",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(input, month, out, maxSolveSeconds)
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "path to the planning workbook")
	cmd.Flags().StringVar(&month, "month", "", "target month, YYYY-MM")
	cmd.Flags().StringVar(&out, "out", "", "path of the roster workbook to write")
	cmd.Flags().Float64Var(&maxSolveSeconds, "max-solve-seconds", 0, "solver wall-clock limit in seconds (0 = none)")
	for _, flag := range []string{"input", "month", "out"} {
		_ = cmd.MarkFlagRequired(flag)
	}
	return cmd
}

// printLoadError shows the first few row issues of a rejected sheet.
func printLoadError(loadErr *xlsx.LoadError) {
	errorColor.Printf("invalid rows in sheet %q (first %d):\n", loadErr.Sheet, maxIssuesShown)
	for i, issue := range loadErr.Issues {
		if i == maxIssuesShown {
			break
		}
		fmt.Printf("- row %d, field %s: %s\n", issue.Row, issue.Field, issue.Message)
	}
}

func loadInputs(path string, log *logger.Logger) ([]domain.Employee, *domain.ShiftCatalog, error) {
	w, err := xlsx.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer w.Close()

	employees, warnings, err := w.Employees()
	if err != nil {
		return nil, nil, err
	}
	for _, warning := range warnings {
		warnColor.Println(warning)
		log.Warn(warning)
	}

	catalog, err := w.Shifts()
	if err != nil {
		return nil, nil, err
	}
	return employees, catalog, nil
}

func runGenerate(input, month, out string, maxSolveSeconds float64) error {
	runID := uuid.New().String()
	log := logger.New("cli", logLevel)
	log.Info("generating roster", "run", runID, "input", input, "month", month)

	if _, err := os.Stat(input); err != nil {
		return fmt.Errorf("input workbook: %w", err)
	}

	days, err := calendar.MonthDays(month)
	if err != nil {
		return err
	}

	employees, catalog, err := loadInputs(input, log)
	if err != nil {
		var loadErr *xlsx.LoadError
		if errors.As(err, &loadErr) {
			printLoadError(loadErr)
		}
		return err
	}

	demands, err := demand.Build(month, catalog)
	if err != nil {
		return err
	}

	settings := domain.DefaultSettings()
	settings.MaxSolveSeconds = maxSolveSeconds
	solver := engine.NewSolver(settings, logger.New("engine", logLevel))

	result, err := solver.Solve(employees, demands, catalog)
	if err != nil {
		return err
	}

	if err := xlsx.Export(out, employees, catalog, result.Assignments, result.Report, days); err != nil {
		return err
	}

	if !result.Feasible {
		errorColor.Println("no feasible roster found")
		fmt.Println(result.Report)
		return fmt.Errorf("roster for %s is infeasible", month)
	}

	successColor.Printf("roster written to %s\n", out)
	headerColor.Println("summary")
	renderSummary(os.Stdout, reporting.Summarize(employees, result.Assignments, catalog, days))
	return nil
}
