package viz

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/walk.report/internal/dp"
)

// viridis is the color ramp for occupancy probabilities.
var viridis = []string{
	"#440154", "#482777", "#3e4989", "#31688e", "#26828e",
	"#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725",
}

// RenderOccupancy writes a standalone HTML chart of the program's occupancy
// probabilities at time step t. Cells with probability zero are omitted. For
// multi-variant programs the variants are summed per cell, giving the total
// occupancy probability.
func RenderOccupancy(w io.Writer, prog dp.Program, t int) error {
	if t < 0 || t > prog.TimeLimit() {
		return fmt.Errorf("time step %d outside horizon %d", t, prog.TimeLimit())
	}

	cellAt := cellAccessor(prog)
	if cellAt == nil {
		return fmt.Errorf("unsupported dynamic program type %T", prog)
	}

	limitNeg, limitPos := prog.Limits()

	data := make([]opts.ScatterData, 0)
	maxProb := 0.0
	for x := limitNeg; x <= limitPos; x++ {
		for y := limitNeg; y <= limitPos; y++ {
			prob := cellAt(x, y, t)
			if prob == 0 {
				continue
			}
			if prob > maxProb {
				maxProb = prob
			}
			data = append(data, opts.ScatterData{Value: []interface{}{x, -y, prob}})
		}
	}
	if maxProb == 0 {
		maxProb = 1
	}

	pad := float64(limitPos) * 1.05
	if pad == 0 {
		pad = 1.0
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Occupancy Probabilities",
			Theme:     "dark",
			Width:     "900px",
			Height:    "900px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Occupancy Probabilities",
			Subtitle: fmt.Sprintf("t=%d cells=%d", t, len(data)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: -pad, Max: pad, Name: "X", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: -pad, Max: pad, Name: "Y", NameLocation: "middle", NameGap: 30}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        float32(maxProb),
			Dimension:  "2",
			InRange:    &opts.VisualMapInRange{Color: viridis},
		}),
	)

	scatter.AddSeries("occupancy", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 6}))

	if err := scatter.Render(w); err != nil {
		return fmt.Errorf("render occupancy chart: %w", err)
	}
	return nil
}

// cellAccessor returns a per-cell probability lookup for the concrete program
// type, or nil if the type is unknown.
func cellAccessor(prog dp.Program) func(x, y, t int) float64 {
	switch p := prog.(type) {
	case *dp.Simple:
		return func(x, y, t int) float64 {
			return p.AtOr(x, y, t, 0)
		}
	case *dp.Multi:
		return func(x, y, t int) float64 {
			sum := 0.0
			for v := 0; v < p.Variants(); v++ {
				sum += p.AtOr(x, y, t, v, 0)
			}
			return sum
		}
	default:
		return nil
	}
}
