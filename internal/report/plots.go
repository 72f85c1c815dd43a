package report

import (
	"fmt"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/staylens/staylens/internal/analysis"
)

// WritePlots renders the out-of-bag error curve and the variable-importance
// chart as PNGs into dir.
func WritePlots(result *analysis.Result, dir string) error {
	if err := writeOOBPlot(result, filepath.Join(dir, OOBPlotFile)); err != nil {
		return fmt.Errorf("rendering OOB error plot: %w", err)
	}
	if err := writeImportancePlot(result, filepath.Join(dir, ImportanceFile)); err != nil {
		return fmt.Errorf("rendering importance plot: %w", err)
	}
	return nil
}

func writeOOBPlot(result *analysis.Result, path string) error {
	p := plot.New()
	p.Title.Text = "Out-of-bag error by ensemble size"
	p.X.Label.Text = "trees"
	p.Y.Label.Text = "classification error"

	curve := result.Forest.OOBCurve
	overall := make(plotter.XYs, len(curve))
	perClass := make([]plotter.XYs, len(analysis.Classes))
	for c := range perClass {
		perClass[c] = make(plotter.XYs, len(curve))
	}
	for i, point := range curve {
		overall[i] = plotter.XY{X: float64(point.Trees), Y: point.Overall}
		for c := range perClass {
			perClass[c][i] = plotter.XY{X: float64(point.Trees), Y: point.PerClass[c]}
		}
	}

	args := []interface{}{"overall", overall}
	for c, class := range analysis.Classes {
		args = append(args, class, perClass[c])
	}
	if err := plotutil.AddLines(p, args...); err != nil {
		return err
	}

	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}

func writeImportancePlot(result *analysis.Result, path string) error {
	p := plot.New()
	p.Title.Text = "Variable importance"
	p.Y.Label.Text = "mean decrease in Gini impurity"

	importance := result.Forest.Importance
	values := make(plotter.Values, len(importance))
	names := make([]string, len(importance))
	for i, imp := range importance {
		values[i] = imp.MeanDecreaseGini
		names[i] = imp.Predictor
	}

	bars, err := plotter.NewBarChart(values, vg.Points(14))
	if err != nil {
		return err
	}
	bars.LineStyle.Width = 0
	bars.Color = plotutil.Color(2)
	p.Add(bars)
	p.NominalX(names...)
	p.X.Tick.Label.Rotation = 0.8
	p.X.Tick.Label.XAlign = -1
	p.X.Tick.Label.YAlign = -0.5

	return p.Save(7*vg.Inch, 4*vg.Inch, path)
}
