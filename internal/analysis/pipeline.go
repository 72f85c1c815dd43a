// Package analysis orchestrates the full cancellation study: load, clean,
// subsample and split, fit the logistic model, run the hypothesis tests,
// tune and fit the random forest, and collect everything into one Result.
// The pipeline is strictly sequential and every failure is fatal to the run.
package analysis

import (
	"fmt"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/rs/zerolog/log"

	"github.com/staylens/staylens/internal/dataset"
	"github.com/staylens/staylens/internal/forest"
	"github.com/staylens/staylens/internal/logit"
	"github.com/staylens/staylens/internal/stats"
)

// Config holds the pipeline knobs. One seed drives every stochastic step;
// the generator is re-seeded from it immediately before each one.
type Config struct {
	Seed       int64   `json:"seed" yaml:"seed"`
	SampleSize int     `json:"sample_size" yaml:"sample_size"`
	TrainFrac  float64 `json:"train_frac" yaml:"train_frac"`
	Trees      int     `json:"trees" yaml:"trees"`
	MTry       int     `json:"mtry" yaml:"mtry"` // 0 selects via the sweep
}

// DefaultConfig reproduces the published analysis settings.
func DefaultConfig() Config {
	return Config{
		Seed:       123,
		SampleSize: 1000,
		TrainFrac:  0.7,
		Trees:      500,
		MTry:       0,
	}
}

// Predictors is the fixed predictor set both models use: the numeric and
// binary booking attributes. Multi-level categoricals stay out of the
// design matrix; the meal plan is examined by the chi-square test instead.
var Predictors = []string{
	dataset.ColBetweenTime,
	dataset.ColWeekendNights,
	dataset.ColWeekNights,
	dataset.ColAdults,
	dataset.ColChildren,
	dataset.ColParking,
	dataset.ColRepeatedGuest,
	dataset.ColPriorCancelled,
	dataset.ColRoomPrice,
	dataset.ColSpecialRequests,
}

// testedContinuous are the predictors compared across outcome groups.
var testedContinuous = []string{
	dataset.ColBetweenTime,
	dataset.ColRoomPrice,
	dataset.ColSpecialRequests,
}

// Classes orders the outcome levels with the reference level first, so
// class index 1 is "cancelled" everywhere.
var Classes = []string{dataset.OutcomeKept, dataset.OutcomeCancelled}

// DatasetSummary describes the table and the partition sizes.
type DatasetSummary struct {
	Source     string  `json:"source" yaml:"source"`
	Rows       int     `json:"rows" yaml:"rows"`
	Columns    int     `json:"columns" yaml:"columns"`
	SampleSize int     `json:"sample_size" yaml:"sample_size"`
	TrainRows  int     `json:"train_rows" yaml:"train_rows"`
	TestRows   int     `json:"test_rows" yaml:"test_rows"`
	CancelRate float64 `json:"cancel_rate" yaml:"cancel_rate"`
}

// LogisticResult is the fitted GLM with its held-out accuracy.
type LogisticResult struct {
	Coefficients []logit.Coefficient `json:"coefficients" yaml:"coefficients"`
	Iterations   int                 `json:"iterations" yaml:"iterations"`
	Accuracy     float64             `json:"accuracy" yaml:"accuracy"`
}

// ForestResult is the tuned ensemble with its diagnostics.
type ForestResult struct {
	Trees      int                    `json:"trees" yaml:"trees"`
	MTry       int                    `json:"mtry" yaml:"mtry"`
	Tuned      bool                   `json:"tuned" yaml:"tuned"`
	Sweep      []forest.SweepPoint    `json:"sweep,omitempty" yaml:"sweep,omitempty"`
	OOBCurve   []forest.ErrorPoint    `json:"oob_curve" yaml:"oob_curve"`
	OOBFinal   forest.ErrorPoint      `json:"oob_final" yaml:"oob_final"`
	Importance []forest.Importance    `json:"importance" yaml:"importance"`
	Confusion  forest.ConfusionMatrix `json:"confusion" yaml:"confusion"`
	Accuracy   float64                `json:"accuracy" yaml:"accuracy"`
}

// Result is everything the report renders.
type Result struct {
	GeneratedAt time.Time             `json:"generated_at" yaml:"generated_at"`
	Duration    time.Duration         `json:"duration" yaml:"duration"`
	Config      Config                `json:"config" yaml:"config"`
	Dataset     DatasetSummary        `json:"dataset" yaml:"dataset"`
	Logistic    LogisticResult        `json:"logistic" yaml:"logistic"`
	TTests      []stats.TTestResult   `json:"t_tests" yaml:"t_tests"`
	ChiSquare   stats.ChiSquareResult `json:"chi_square" yaml:"chi_square"`
	Forest      ForestResult          `json:"forest" yaml:"forest"`
}

// Stage names reported to the progress callback, in order.
const (
	StageLoad   = "Loading dataset"
	StageClean  = "Cleaning and recoding"
	StageSample = "Sampling and splitting"
	StageLogit  = "Fitting logistic regression"
	StageTests  = "Running hypothesis tests"
	StageForest = "Growing random forest"
)

// Run executes the whole pipeline against the CSV at path. progress, if
// non-nil, is called at the start of each stage.
func Run(path string, cfg Config, progress func(stage string)) (*Result, error) {
	start := time.Now()
	step := func(stage string) {
		if progress != nil {
			progress(stage)
		}
		log.Info().Str("stage", stage).Msg("Pipeline stage")
	}

	step(StageLoad)
	raw, err := dataset.Load(path)
	if err != nil {
		return nil, err
	}

	step(StageClean)
	df, err := dataset.Clean(raw)
	if err != nil {
		return nil, err
	}
	if violations := dataset.Verify(df); len(violations) > 0 {
		return nil, fmt.Errorf("dataset violates invariants: %s", violations[0])
	}

	step(StageSample)
	split, err := dataset.Sample(df, cfg.SampleSize, cfg.TrainFrac, cfg.Seed)
	if err != nil {
		return nil, err
	}

	trainX := dataset.Matrix(split.Train, Predictors)
	trainY := dataset.OutcomeBinary(split.Train)
	testX := dataset.Matrix(split.Test, Predictors)
	testY := dataset.OutcomeBinary(split.Test)

	result := &Result{
		GeneratedAt: start,
		Config:      cfg,
		Dataset:     summarize(path, df, split, trainY, testY),
	}

	step(StageLogit)
	model, err := logit.Fit(Predictors, trainX, trainY)
	if err != nil {
		return nil, fmt.Errorf("logistic regression: %w", err)
	}
	result.Logistic = LogisticResult{
		Coefficients: model.Coefficients,
		Iterations:   model.Iterations,
		Accuracy:     logit.Accuracy(model.Classify(testX), testY),
	}

	step(StageTests)
	if err := runTests(split.Train, result); err != nil {
		return nil, err
	}

	step(StageForest)
	if err := runForest(cfg, trainX, trainY, testX, testY, result); err != nil {
		return nil, err
	}

	result.Duration = time.Since(start)
	log.Info().
		Dur("duration", result.Duration).
		Float64("logit_accuracy", result.Logistic.Accuracy).
		Float64("forest_accuracy", result.Forest.Accuracy).
		Msg("Analysis complete")

	return result, nil
}

func summarize(path string, df dataframe.DataFrame, split dataset.Split, trainY, testY []float64) DatasetSummary {
	cancelled := 0.0
	for _, y := range trainY {
		cancelled += y
	}
	for _, y := range testY {
		cancelled += y
	}
	sample := len(trainY) + len(testY)

	return DatasetSummary{
		Source:     path,
		Rows:       df.Nrow(),
		Columns:    df.Ncol(),
		SampleSize: sample,
		TrainRows:  len(trainY),
		TestRows:   len(testY),
		CancelRate: cancelled / float64(sample),
	}
}

func runTests(train dataframe.DataFrame, result *Result) error {
	outcome := train.Col(dataset.ColOutcome).Records()

	for _, variable := range testedContinuous {
		values := train.Col(variable).Float()
		var kept, cancelled []float64
		for i, label := range outcome {
			if label == dataset.OutcomeCancelled {
				cancelled = append(cancelled, values[i])
			} else {
				kept = append(kept, values[i])
			}
		}
		test, err := stats.WelchTTest(variable, dataset.OutcomeKept, dataset.OutcomeCancelled, kept, cancelled)
		if err != nil {
			return err
		}
		result.TTests = append(result.TTests, test)
	}

	chi, err := stats.ChiSquare(dataset.ColMealPlan, train.Col(dataset.ColMealPlan).Records(), outcome)
	if err != nil {
		return err
	}
	result.ChiSquare = chi
	return nil
}

func runForest(cfg Config, trainX [][]float64, trainY []float64, testX [][]float64, testY []float64, result *Result) error {
	yTrain := toClasses(trainY)
	yTest := toClasses(testY)

	mtry := cfg.MTry
	if mtry == 0 {
		sweep, chosen, err := forest.Tune(Predictors, trainX, yTrain, Classes, cfg.Trees, cfg.Seed, forest.DefaultCandidates(len(Predictors)))
		if err != nil {
			return fmt.Errorf("candidate-predictor sweep: %w", err)
		}
		result.Forest.Sweep = sweep
		result.Forest.Tuned = true
		mtry = chosen
	}

	f, err := forest.Grow(Predictors, trainX, yTrain, Classes, forest.Options{
		Trees: cfg.Trees,
		MTry:  mtry,
		Seed:  cfg.Seed,
	})
	if err != nil {
		return fmt.Errorf("random forest: %w", err)
	}

	predicted := f.Predict(testX)
	confusion := forest.NewConfusionMatrix(Classes, yTest, predicted)

	result.Forest.Trees = cfg.Trees
	result.Forest.MTry = mtry
	result.Forest.OOBCurve = f.OOBCurve
	result.Forest.OOBFinal = f.OOBError()
	result.Forest.Importance = f.Importance
	result.Forest.Confusion = confusion
	result.Forest.Accuracy = confusion.Accuracy()
	return nil
}

func toClasses(y []float64) []int {
	out := make([]int, len(y))
	for i, v := range y {
		out[i] = int(v)
	}
	return out
}
