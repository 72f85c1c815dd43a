package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/staylens/staylens/internal/dataset"
	"github.com/staylens/staylens/internal/style"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "Validate bookings files against the expected schema",
	Long: `Validate bookings CSV files for schema compliance and data invariants.

This command checks:
- The exact expected column header set
- Absence of missing values after sentinel mapping
- Non-negative between time and room price
- Exactly two outcome levels

Examples:
  staylens validate bookings.csv                # Validate a single file
  staylens validate a.csv b.csv                 # Validate multiple files
  staylens validate --output json bookings.csv  # JSON output for CI`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		validateDatasets(args)
	},
}

var showAll bool

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVar(&showAll, "show-all", false, "show all validation results, including successful ones")
}

// ValidationResult represents the result of validating one file
type ValidationResult struct {
	File     string        `json:"file" yaml:"file"`
	Valid    bool          `json:"valid" yaml:"valid"`
	Rows     int           `json:"rows" yaml:"rows"`
	Columns  int           `json:"columns" yaml:"columns"`
	Duration time.Duration `json:"duration_ms" yaml:"duration_ms"`
	Errors   []string      `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// ValidationSummary represents the summary of all validation results
type ValidationSummary struct {
	Total    int                `json:"total" yaml:"total"`
	Valid    int                `json:"valid" yaml:"valid"`
	Invalid  int                `json:"invalid" yaml:"invalid"`
	Duration time.Duration      `json:"total_duration_ms" yaml:"total_duration_ms"`
	Results  []ValidationResult `json:"results" yaml:"results"`
}

func validateDatasets(files []string) {
	start := time.Now()

	results := make([]ValidationResult, 0, len(files))
	for _, file := range files {
		result := validateSingleFile(file)
		results = append(results, result)

		if !viper.GetBool("quiet") && viper.GetString("output") == "text" {
			if result.Valid {
				if showAll {
					Success(fmt.Sprintf("%s (%d rows, %v)", file, result.Rows, result.Duration))
				}
			} else {
				Error(fmt.Sprintf("%s (%v)", file, result.Duration))
				for _, msg := range result.Errors {
					fmt.Printf("  %s\n", msg)
				}
			}
		}
	}

	summary := ValidationSummary{
		Total:    len(results),
		Duration: time.Since(start),
		Results:  results,
	}
	for _, r := range results {
		if r.Valid {
			summary.Valid++
		} else {
			summary.Invalid++
		}
	}

	switch viper.GetString("output") {
	case "json":
		style.PrintJSON(os.Stdout, summary)
	case "yaml":
		style.PrintYAML(os.Stdout, summary)
	default:
		if !viper.GetBool("quiet") {
			if summary.Invalid == 0 {
				Success(fmt.Sprintf("%d file(s) valid", summary.Valid))
			} else {
				Error(fmt.Sprintf("%d of %d file(s) invalid", summary.Invalid, summary.Total))
			}
		}
	}

	if summary.Invalid > 0 {
		os.Exit(1)
	}
}

func validateSingleFile(file string) ValidationResult {
	start := time.Now()
	result := ValidationResult{File: file}

	df, err := dataset.Load(file)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		result.Duration = time.Since(start)
		return result
	}

	cleaned, err := dataset.Clean(df)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		result.Duration = time.Since(start)
		return result
	}

	result.Rows = cleaned.Nrow()
	result.Columns = cleaned.Ncol()
	result.Errors = append(result.Errors, dataset.Verify(cleaned)...)
	result.Valid = len(result.Errors) == 0
	result.Duration = time.Since(start)
	return result
}
