package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/staylens/staylens/internal/analysis"
	"github.com/staylens/staylens/internal/report"
	"github.com/staylens/staylens/internal/style"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [bookings.csv]",
	Short: "Run the full cancellation analysis",
	Long: `Run the complete cancellation analysis against a bookings CSV.

This command:
- Loads and schema-checks the dataset
- Cleans and recodes the columns (meal plans, outcome, EUR to USD prices)
- Draws a seeded subsample and splits it into train and test rows
- Fits a logistic regression and derives odds ratios with 95% intervals
- Runs Welch t-tests and a chi-square test of independence
- Tunes and fits a random forest, tracking out-of-bag error
- Renders a markdown report with two diagnostic charts

Examples:
  staylens analyze bookings.csv                      # Default settings (seed 123)
  staylens analyze bookings.csv --seed 7 --trees 250 # Custom seeding and ensemble size
  staylens analyze bookings.csv --mtry 3             # Skip the candidate sweep
  staylens analyze bookings.csv --output json        # Machine-readable results`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runAnalysis(args[0])
	},
}

var (
	seed       int64
	sampleSize int
	trainFrac  float64
	trees      int
	mtry       int
	reportDir  string
	skipPlots  bool
)

func init() {
	rootCmd.AddCommand(analyzeCmd)

	defaults := analysis.DefaultConfig()
	analyzeCmd.Flags().Int64Var(&seed, "seed", defaults.Seed, "random seed driving every stochastic step")
	analyzeCmd.Flags().IntVar(&sampleSize, "sample-size", defaults.SampleSize, "subsample size drawn from the dataset")
	analyzeCmd.Flags().Float64Var(&trainFrac, "train-frac", defaults.TrainFrac, "fraction of the subsample used for training")
	analyzeCmd.Flags().IntVar(&trees, "trees", defaults.Trees, "number of trees in the random forest")
	analyzeCmd.Flags().IntVar(&mtry, "mtry", defaults.MTry, "candidate predictors per split (0 = tune via sweep)")
	analyzeCmd.Flags().StringVar(&reportDir, "report-dir", "staylens-report", "directory the report is written into")
	analyzeCmd.Flags().BoolVar(&skipPlots, "skip-plots", false, "skip rendering the chart images")
}

func runAnalysis(datasetFile string) {
	cfg := analysis.Config{
		Seed:       seed,
		SampleSize: sampleSize,
		TrainFrac:  trainFrac,
		Trees:      trees,
		MTry:       mtry,
	}

	interactive := !viper.GetBool("quiet") && viper.GetString("output") == "text"

	var sp style.Spinner
	progress := func(stage string) {
		if sp != nil {
			sp.SetSuffix(" " + stage)
		}
	}
	if interactive {
		sp = style.NewSpinner(os.Stdout)
		sp.Start()
		defer sp.Stop()
	}

	start := time.Now()
	result, err := analysis.Run(datasetFile, cfg, progress)
	if sp != nil {
		sp.Stop()
		sp = nil
	}
	if err != nil {
		Error(fmt.Sprintf("Analysis failed: %v", err))
		os.Exit(1)
	}

	if err := report.Write(result, reportDir, skipPlots); err != nil {
		Error(fmt.Sprintf("Failed to write report: %v", err))
		os.Exit(1)
	}

	log.Info().
		Str("dataset", datasetFile).
		Str("report", reportDir).
		Dur("duration", time.Since(start)).
		Msg("Analysis run finished")

	switch viper.GetString("output") {
	case "json":
		style.PrintJSON(os.Stdout, result)
	case "yaml":
		style.PrintYAML(os.Stdout, result)
	default:
		if !viper.GetBool("quiet") {
			printAnalysisSummary(result)
			Success(fmt.Sprintf("Report written to %s", reportDir))
		}
	}
}

func printAnalysisSummary(result *analysis.Result) {
	fmt.Println(style.HeadingStyle.Render("Analysis summary"))

	rows := [][]string{
		{"rows", fmt.Sprintf("%d", result.Dataset.Rows)},
		{"subsample", fmt.Sprintf("%d (train %d / test %d)", result.Dataset.SampleSize, result.Dataset.TrainRows, result.Dataset.TestRows)},
		{"cancel rate", fmt.Sprintf("%.1f%%", 100*result.Dataset.CancelRate)},
		{"logit accuracy", fmt.Sprintf("%.1f%%", 100*result.Logistic.Accuracy)},
		{"forest mtry", fmt.Sprintf("%d", result.Forest.MTry)},
		{"forest OOB error", fmt.Sprintf("%.4f", result.Forest.OOBFinal.Overall)},
		{"forest accuracy", fmt.Sprintf("%.1f%%", 100*result.Forest.Accuracy)},
	}
	printTable([]string{"metric", "value"}, rows)
}
