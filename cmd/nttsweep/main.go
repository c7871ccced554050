// Command nttsweep sweeps the butterfly lane count of the engine model
// and times batched convolutions of the software pipeline, printing a
// summary and rendering both sweeps as an HTML chart page.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/montanaflynn/stats"

	"github.com/orhosko/tiny-ntt/hwsim"
	"github.com/orhosko/tiny-ntt/ntt"
	"github.com/orhosko/tiny-ntt/zq"
)

type laneRow struct {
	Parallel       int `json:"parallel"`
	CyclesPerStage int `json:"cycles_per_stage"`
	ForwardCycles  int `json:"forward_cycles"`
	InverseCycles  int `json:"inverse_cycles"`
}

type batchRow struct {
	Round  int     `json:"round"`
	Millis float64 `json:"millis"`
}

type sweepReport struct {
	LogN      int        `json:"logn"`
	Q         uint64     `json:"q"`
	Reduction string     `json:"reduction"`
	Lanes     []laneRow  `json:"lanes"`
	Batches   []batchRow `json:"batch_rounds"`
}

func main() {
	var (
		logN      = flag.Int("logn", 8, "log2 of the transform length")
		q         = flag.Uint64("q", 8380417, "NTT-friendly prime modulus")
		psi       = flag.Uint64("psi", 0, "2N-th root of unity (0 = search for the smallest)")
		reduction = flag.String("reduction", "barrett", "reduction strategy: simple|barrett|montgomery")
		batch     = flag.Int("batch", 64, "convolutions per timing round")
		rounds    = flag.Int("rounds", 8, "timing rounds")
		outPath   = flag.String("out", "sweep.html", "output HTML page")
		jsonPath  = flag.String("json", "", "also write the sweep rows as JSON")
	)
	flag.Parse()

	red, err := zq.ParseReductionType(*reduction)
	if err != nil {
		log.Fatalf("parse reduction: %v", err)
	}

	params, err := ntt.ParametersLiteral{LogN: *logN, Q: *q, Psi: *psi, Reduction: red}.Compile()
	if err != nil {
		log.Fatalf("compile parameters: %v", err)
	}

	lanes, err := sweepLanes(params)
	if err != nil {
		log.Fatalf("lane sweep: %v", err)
	}
	batches := sweepBatches(params, *batch, *rounds)

	fmt.Printf("engine: N=%d Q=%d reduction=%v\n", params.N(), params.Q(), params.Reduction())
	for _, row := range lanes {
		fmt.Printf("parallel=%4d  cycles/stage=%5d  forward=%6d  inverse=%6d\n",
			row.Parallel, row.CyclesPerStage, row.ForwardCycles, row.InverseCycles)
	}

	ms := make([]float64, len(batches))
	for i, row := range batches {
		ms[i] = row.Millis
	}
	mean, _ := stats.Mean(ms)
	median, _ := stats.Median(ms)
	stddev, _ := stats.StandardDeviation(ms)
	fmt.Printf("batch of %d convolutions over %d rounds: mean=%.3fms median=%.3fms stddev=%.3fms\n",
		*batch, *rounds, mean, median, stddev)

	if *jsonPath != "" {
		report := sweepReport{
			LogN:      params.LogN(),
			Q:         params.Q(),
			Reduction: params.Reduction().String(),
			Lanes:     lanes,
			Batches:   batches,
		}
		if err := writeJSON(*jsonPath, report); err != nil {
			log.Fatalf("write %s: %v", *jsonPath, err)
		}
	}

	if err := renderPage(*outPath, params, lanes, batches, *batch); err != nil {
		log.Fatalf("render %s: %v", *outPath, err)
	}
	fmt.Printf("wrote %s\n", *outPath)
}

// sweepLanes runs one forward and one inverse transform per power-of-two
// lane count, checking the engine output against the closed-form
// transform before trusting its cycle count.
func sweepLanes(params ntt.Parameters) ([]laneRow, error) {
	sampler := ntt.NewUniformSamplerWithSeed(params, []byte("nttsweep"))
	stimulus := sampler.SamplePoly()

	tr := ntt.NewTransformer(params)
	want := tr.ToNTTPoly(stimulus)

	var rows []laneRow
	for p := 1; p <= params.N()/2; p *= 2 {
		e, err := hwsim.NewEngine(hwsim.Config{Params: params, Parallel: p})
		if err != nil {
			return nil, err
		}
		if err := e.LoadAll(stimulus.Coeffs); err != nil {
			return nil, err
		}

		if err := e.Start(hwsim.Forward); err != nil {
			return nil, err
		}
		fw, err := e.Run()
		if err != nil {
			return nil, err
		}
		for i, c := range e.ReadAll() {
			if c != want.Coeffs[i] {
				return nil, fmt.Errorf("parallel=%d: engine output diverges at word %d", p, i)
			}
		}

		if err := e.Start(hwsim.Inverse); err != nil {
			return nil, err
		}
		inv, err := e.Run()
		if err != nil {
			return nil, err
		}

		rows = append(rows, laneRow{
			Parallel:       p,
			CyclesPerStage: e.CyclesPerStage(),
			ForwardCycles:  fw,
			InverseCycles:  inv,
		})
	}
	return rows, nil
}

func sweepBatches(params ntt.Parameters, batch, rounds int) []batchRow {
	tr := ntt.NewTransformer(params)
	sampler := ntt.NewUniformSamplerWithSeed(params, []byte("nttsweep-batch"))

	p0s := make([]ntt.Poly, batch)
	p1s := make([]ntt.Poly, batch)
	pOuts := make([]ntt.Poly, batch)
	for i := range p0s {
		p0s[i] = sampler.SamplePoly()
		p1s[i] = sampler.SamplePoly()
		pOuts[i] = ntt.NewPoly(params.N())
	}

	rows := make([]batchRow, 0, rounds)
	for r := 1; r <= rounds; r++ {
		start := time.Now()
		tr.ConvolveBatchAssign(p0s, p1s, pOuts)
		rows = append(rows, batchRow{Round: r, Millis: float64(time.Since(start).Microseconds()) / 1000})
	}
	return rows
}

func writeJSON(path string, report sweepReport) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func renderPage(path string, params ntt.Parameters, lanes []laneRow, batches []batchRow, batch int) error {
	page := components.NewPage().SetPageTitle(fmt.Sprintf("NTT engine sweep (N=%d, Q=%d)", params.N(), params.Q()))

	laneX := make([]string, 0, len(lanes))
	fwd := make([]opts.LineData, 0, len(lanes))
	inv := make([]opts.LineData, 0, len(lanes))
	for _, row := range lanes {
		laneX = append(laneX, strconv.Itoa(row.Parallel))
		fwd = append(fwd, opts.LineData{Value: row.ForwardCycles})
		inv = append(inv, opts.LineData{Value: row.InverseCycles})
	}

	cycles := charts.NewLine()
	cycles.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Transform cycles vs. butterfly lanes"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "parallel butterflies"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "cycles", Type: "log"}),
	)
	cycles.SetXAxis(laneX).
		AddSeries("forward", fwd).
		AddSeries("inverse", inv)

	batchX := make([]string, 0, len(batches))
	wall := make([]opts.LineData, 0, len(batches))
	for _, row := range batches {
		batchX = append(batchX, strconv.Itoa(row.Round))
		wall = append(wall, opts.LineData{Value: row.Millis})
	}

	walltime := charts.NewLine()
	walltime.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("Wall time per round of %d convolutions", batch)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "round"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "ms"}),
	)
	walltime.SetXAxis(batchX).AddSeries("wall time", wall)

	page.AddCharts(cycles, walltime)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return page.Render(f)
}
