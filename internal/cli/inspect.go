package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oliszewskirob-bit/Grafiki-automat/internal/demand"
	"github.com/oliszewskirob-bit/Grafiki-automat/internal/xlsx"
	"github.com/oliszewskirob-bit/Grafiki-automat/pkg/logger"
)

// demandPreviewLimit caps the demand rows printed by inspect.
const demandPreviewLimit = 20

func newInspectCommand() *cobra.Command {
	var (
		input         string
		month         string
		showEmployees bool
		showShifts    bool
		showDemands   bool
	)

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print the normalized employees, shifts or demand lines",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !showEmployees && !showShifts && !showDemands {
				showEmployees, showShifts, showDemands = true, true, true
			}
			return runInspect(input, month, showEmployees, showShifts, showDemands)
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "path to the planning workbook")
	cmd.Flags().StringVar(&month, "month", "", "target month, YYYY-MM (needed for demands)")
	cmd.Flags().BoolVar(&showEmployees, "employees", false, "print the employee table")
	cmd.Flags().BoolVar(&showShifts, "shifts", false, "print the shift catalog")
	cmd.Flags().BoolVar(&showDemands, "demands", false, "print the demand lines")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func runInspect(input, month string, showEmployees, showShifts, showDemands bool) error {
	log := logger.New("cli", logLevel)

	w, err := xlsx.Open(input)
	if err != nil {
		return err
	}
	defer w.Close()

	if showEmployees {
		employees, warnings, err := w.Employees()
		if err != nil {
			var loadErr *xlsx.LoadError
			if errors.As(err, &loadErr) {
				printLoadError(loadErr)
			}
			return err
		}
		for _, warning := range warnings {
			warnColor.Println(warning)
			log.Warn(warning)
		}
		headerColor.Println("employees")
		renderEmployees(os.Stdout, employees)
	}

	if showShifts || showDemands {
		catalog, err := w.Shifts()
		if err != nil {
			return err
		}
		if showShifts {
			headerColor.Println("shifts")
			renderShifts(os.Stdout, catalog)
		}
		if showDemands {
			if month == "" {
				return fmt.Errorf("--month is required to print demands")
			}
			demands, err := demand.Build(month, catalog)
			if err != nil {
				return err
			}
			headerColor.Printf("demands (%d total, first %d)\n", len(demands), demandPreviewLimit)
			renderDemands(os.Stdout, demands, demandPreviewLimit)
		}
	}
	return nil
}
