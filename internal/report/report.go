// Package report renders the analysis result as a single markdown document
// with narrative prose, summary tables, and two diagnostic charts. It is
// purely presentational: every number is transcribed from the Result.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/staylens/staylens/internal/analysis"
	"github.com/staylens/staylens/internal/dataset"
)

const (
	// File names inside the report directory.
	DocumentFile   = "report.md"
	OOBPlotFile    = "oob_error.png"
	ImportanceFile = "importance.png"
)

// Write renders the report document (and, unless skipPlots is set, the two
// chart images) into dir.
func Write(result *analysis.Result, dir string, skipPlots bool) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}

	if !skipPlots {
		if err := WritePlots(result, dir); err != nil {
			return err
		}
	}

	doc := Render(result)
	path := filepath.Join(dir, DocumentFile)
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		return fmt.Errorf("writing report document: %w", err)
	}

	log.Info().Str("path", path).Msg("Report written")
	return nil
}

// Render produces the markdown document.
func Render(result *analysis.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Hotel booking cancellation analysis\n\n")
	fmt.Fprintf(&b, "Generated %s from `%s` (seed %d).\n\n",
		result.GeneratedAt.Format("2006-01-02"), result.Dataset.Source, result.Config.Seed)

	renderDataset(&b, result)
	renderTTests(&b, result)
	renderChiSquare(&b, result)
	renderLogistic(&b, result)
	renderForest(&b, result)

	fmt.Fprintf(&b, "## Figures\n\n")
	fmt.Fprintf(&b, "![Out-of-bag error by ensemble size](%s)\n\n", OOBPlotFile)
	fmt.Fprintf(&b, "![Variable importance](%s)\n", ImportanceFile)

	return b.String()
}

func renderDataset(b *strings.Builder, result *analysis.Result) {
	d := result.Dataset
	fmt.Fprintf(b, "## Data\n\n")
	fmt.Fprintf(b, "The cleaned table holds %d bookings across %d columns. ", d.Rows, d.Columns)
	fmt.Fprintf(b, "Room prices were converted from EUR to USD at a rate of %.4f. ", dataset.EURToUSD)
	fmt.Fprintf(b, "A random subsample of %d bookings was split into %d training and %d test rows; ",
		d.SampleSize, d.TrainRows, d.TestRows)
	fmt.Fprintf(b, "%.1f%% of the subsample was cancelled.\n\n", 100*d.CancelRate)
}

func renderTTests(b *strings.Builder, result *analysis.Result) {
	fmt.Fprintf(b, "## Group comparisons\n\n")
	fmt.Fprintf(b, "Welch two-sample t-tests compare kept and cancelled bookings on the three ")
	fmt.Fprintf(b, "continuous predictors, assuming unequal variances.\n\n")
	fmt.Fprintf(b, "| variable | %s mean (SD) | %s mean (SD) | t | df | p |\n",
		dataset.OutcomeKept, dataset.OutcomeCancelled)
	fmt.Fprintf(b, "|---|---|---|---|---|---|\n")
	for _, t := range result.TTests {
		fmt.Fprintf(b, "| %s | %.2f (%.2f) | %.2f (%.2f) | %.3f | %.1f | %s |\n",
			t.Variable, t.GroupA.Mean, t.GroupA.SD, t.GroupB.Mean, t.GroupB.SD, t.T, t.DF, formatP(t.P))
	}
	fmt.Fprintf(b, "\n")
}

func renderChiSquare(b *strings.Builder, result *analysis.Result) {
	chi := result.ChiSquare
	fmt.Fprintf(b, "## Meal plan and cancellation\n\n")
	fmt.Fprintf(b, "Pearson chi-square test of independence between the meal plan and the outcome ")
	fmt.Fprintf(b, "(no continuity correction): X² = %.3f, df = %d, p = %s.\n\n",
		chi.Statistic, chi.DF, formatP(chi.P))

	fmt.Fprintf(b, "| meal plan | %s |\n", strings.Join(chi.Table.ColLevels, " | "))
	fmt.Fprintf(b, "|---|%s\n", strings.Repeat("---|", len(chi.Table.ColLevels)))
	for i, level := range chi.Table.RowLevels {
		cells := make([]string, len(chi.Table.Counts[i]))
		for j, n := range chi.Table.Counts[i] {
			cells[j] = fmt.Sprintf("%d", n)
		}
		fmt.Fprintf(b, "| %s | %s |\n", level, strings.Join(cells, " | "))
	}
	fmt.Fprintf(b, "\n")
}

func renderLogistic(b *strings.Builder, result *analysis.Result) {
	l := result.Logistic
	fmt.Fprintf(b, "## Logistic regression\n\n")
	fmt.Fprintf(b, "A binomial GLM of the outcome on the fixed predictor set, with `%s` as the ",
		dataset.OutcomeKept)
	fmt.Fprintf(b, "reference level. Odds ratios are exponentiated coefficients with Wald 95%% ")
	fmt.Fprintf(b, "intervals.\n\n")
	fmt.Fprintf(b, "| term | estimate | SE | z | p | OR | 95%% CI |\n")
	fmt.Fprintf(b, "|---|---|---|---|---|---|---|\n")
	for _, c := range l.Coefficients {
		fmt.Fprintf(b, "| %s | %.4f | %.4f | %.2f | %s | %.3f | %.3f – %.3f |\n",
			c.Name, c.Estimate, c.StdErr, c.Z, formatP(c.P), c.OddsRatio, c.CILower, c.CIUpper)
	}
	fmt.Fprintf(b, "\nPredicted probabilities on the held-out rows, thresholded at 0.5, ")
	fmt.Fprintf(b, "classify %.1f%% of test bookings correctly.\n\n", 100*l.Accuracy)
}

func renderForest(b *strings.Builder, result *analysis.Result) {
	f := result.Forest
	fmt.Fprintf(b, "## Random forest\n\n")
	fmt.Fprintf(b, "Bagged ensemble of %d classification trees with %d candidate predictors ",
		f.Trees, f.MTry)
	fmt.Fprintf(b, "per split.\n\n")

	if len(f.Sweep) > 0 {
		fmt.Fprintf(b, "Out-of-bag error across the candidate-predictor sweep:\n\n")
		fmt.Fprintf(b, "| mtry | OOB error |\n|---|---|\n")
		for _, p := range f.Sweep {
			fmt.Fprintf(b, "| %d | %.4f |\n", p.MTry, p.OOBError)
		}
		fmt.Fprintf(b, "\n")
	}

	fmt.Fprintf(b, "Final out-of-bag error: %.4f overall", f.OOBFinal.Overall)
	for i, class := range analysis.Classes {
		fmt.Fprintf(b, ", %.4f %s", f.OOBFinal.PerClass[i], class)
	}
	fmt.Fprintf(b, ".\n\n")

	fmt.Fprintf(b, "| predictor | mean decrease accuracy | mean decrease Gini |\n")
	fmt.Fprintf(b, "|---|---|---|\n")
	for _, imp := range f.Importance {
		fmt.Fprintf(b, "| %s | %.4f | %.2f |\n",
			imp.Predictor, imp.MeanDecreaseAccuracy, imp.MeanDecreaseGini)
	}

	fmt.Fprintf(b, "\nConfusion matrix on the %d test rows (rows actual, columns predicted):\n\n",
		f.Confusion.Total())
	fmt.Fprintf(b, "| | %s |\n", strings.Join(f.Confusion.Classes, " | "))
	fmt.Fprintf(b, "|---|%s\n", strings.Repeat("---|", len(f.Confusion.Classes)))
	for i, class := range f.Confusion.Classes {
		cells := make([]string, len(f.Confusion.Counts[i]))
		for j, n := range f.Confusion.Counts[i] {
			cells[j] = fmt.Sprintf("%d", n)
		}
		fmt.Fprintf(b, "| %s | %s |\n", class, strings.Join(cells, " | "))
	}
	fmt.Fprintf(b, "\nTest accuracy: %.1f%%.\n\n", 100*f.Accuracy)
}

// formatP prints p-values the way the tables in the source analysis do.
func formatP(p float64) string {
	if p < 0.001 {
		return "<0.001"
	}
	return fmt.Sprintf("%.3f", p)
}
