package stats

import (
	"errors"
	"fmt"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// PlotDistribution renders d as a bar chart of file counts per class,
// in the order of d, with each bar labelled by its box count. The image
// format follows the extension of path (.png, .svg, .pdf).
func PlotDistribution(d Dist, path string) error {
	if len(d) == 0 {
		return errors.New("no classes to plot")
	}

	p := plot.New()
	p.Title.Text = "File count per class (boxes on top)"
	p.X.Label.Text = "Class ID"
	p.Y.Label.Text = "File count"

	values := make(plotter.Values, len(d))
	names := make([]string, len(d))
	tops := make(plotter.XYs, len(d))
	texts := make([]string, len(d))
	for i, s := range d {
		values[i] = float64(s.Files)
		names[i] = strconv.Itoa(s.Class)
		tops[i] = plotter.XY{X: float64(i), Y: float64(s.Files)}
		texts[i] = strconv.Itoa(s.Boxes)
	}

	bars, err := plotter.NewBarChart(values, vg.Points(18))
	if err != nil {
		return fmt.Errorf("bar chart: %w", err)
	}
	bars.Color = plotutil.Color(0)
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalX(names...)

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: tops, Labels: texts})
	if err != nil {
		return fmt.Errorf("bar labels: %w", err)
	}
	labels.Offset = vg.Point{X: -vg.Points(6), Y: vg.Points(3)}
	p.Add(labels)

	width := vg.Points(24)*vg.Length(len(d)) + 2*vg.Inch
	if width < 6*vg.Inch {
		width = 6 * vg.Inch
	}
	if err := p.Save(width, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("saving plot %s: %w", path, err)
	}
	return nil
}
