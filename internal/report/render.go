// Package report renders a transport.Result for people (Text) and for
// machines (JSON).
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/katalvlaran/lvtransport/matrix"
	"github.com/katalvlaran/lvtransport/transport"
)

// Places is the number of decimals kept when printing quantities and costs.
const Places = 6

// Marker is printed for cells holding the degeneracy sentinel.
const Marker = "ε"

// Number formats v rounded to Places; integral values print without a fraction.
func Number(v float64) string {
	return decimal.NewFromFloat(v).Round(Places).String()
}

// Quantity is Number, except that a marker cell prints as Marker.
func Quantity(v, sentinel float64) string {
	if v > 0 && v <= sentinel {
		return Marker
	}

	return Number(v)
}

// Text writes the human-readable report: problem, greedy steps, initial plan,
// degeneracy status, MODI pivots, final plan and cost.
func Text(w io.Writer, res *transport.Result, sentinel float64) error {
	if res == nil {
		return fmt.Errorf("report: nil result")
	}
	p := &printer{w: w}
	inst := res.Balanced.Instance
	m, n := inst.Shape()

	p.line("== Transportation problem ==")
	p.line("Sources: %d, destinations: %d", m, n)
	switch {
	case res.Balanced.DummySource:
		p.line("Unbalanced: added dummy source S%d with supply %s", m, Number(inst.Supply[m-1]))
	case res.Balanced.DummyDestination:
		p.line("Unbalanced: added dummy destination D%d with demand %s", n, Number(inst.Demand[n-1]))
	}
	p.line("Costs:")
	p.table(inst.Costs, nil, nil, 0)

	p.line("")
	p.line("== Least cost method (initial plan) ==")
	for _, s := range res.Steps {
		p.line("Step %2d: cell %s, cost = %s, allocated = %s, supply→ %s, demand→ %s",
			s.Index, s.Cell, Number(s.UnitCost), Number(s.Quantity),
			Number(s.RemainingSupply), Number(s.RemainingDemand))
	}
	p.line("")
	p.line("Initial allocation:")
	p.table(res.Initial.ToRows(), inst.Supply, inst.Demand, sentinel)
	p.line("Initial cost: %s", Number(res.InitialCost))

	p.line("")
	if res.Degenerate {
		p.line("Degenerate plan: occupied = %d, required = %d (= m + n - 1)", res.Occupied, res.Expected)
		p.line("Markers (%s): %s", Marker, joinCells(res.Markers))
	} else {
		p.line("Non-degenerate plan: occupied = %d = m + n - 1", res.Occupied)
	}

	p.line("")
	p.line("== MODI optimization ==")
	if len(res.Pivots) == 0 {
		p.line("All gains ≤ 0: the initial plan is optimal.")
	}
	for _, pv := range res.Pivots {
		p.line("Iter %d: enter %s, gain = %s, θ = %s, leave %s, cost = %s",
			pv.Iteration, pv.Entering, Number(pv.Gain), Number(pv.Theta), pv.Leaving, Number(pv.Cost))
		p.line("        loop: %s", joinLoop(pv.Cycle))
	}

	p.line("")
	p.line("Final allocation:")
	p.table(res.Final.ToRows(), inst.Supply, inst.Demand, sentinel)
	p.line("Final cost: %s", Number(res.FinalCost))

	return p.err
}

// printer remembers the first write error.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format+"\n", args...)
}

// table prints rows with optional supply column and demand row.
// sentinel > 0 renders marker cells as Marker.
func (p *printer) table(rows [][]float64, supply, demand []float64, sentinel float64) {
	if p.err != nil || len(rows) == 0 {
		return
	}
	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', tabwriter.AlignRight)

	var b strings.Builder
	b.WriteString("\t")
	for j := range rows[0] {
		fmt.Fprintf(&b, "D%d\t", j+1)
	}
	if supply != nil {
		b.WriteString("Supply\t")
	}
	fmt.Fprintln(tw, b.String())

	for i, row := range rows {
		b.Reset()
		fmt.Fprintf(&b, "S%d\t", i+1)
		for _, v := range row {
			b.WriteString(Quantity(v, sentinel))
			b.WriteString("\t")
		}
		if supply != nil {
			b.WriteString(Number(supply[i]))
			b.WriteString("\t")
		}
		fmt.Fprintln(tw, b.String())
	}

	if demand != nil {
		b.Reset()
		b.WriteString("Demand\t")
		for _, v := range demand {
			b.WriteString(Number(v))
			b.WriteString("\t")
		}
		fmt.Fprintln(tw, b.String())
	}
	p.err = tw.Flush()
}

func joinCells(cells []transport.Cell) string {
	parts := make([]string, len(cells))
	for k, c := range cells {
		parts[k] = c.String()
	}

	return strings.Join(parts, " ")
}

func joinLoop(cells []transport.Cell) string {
	if len(cells) == 0 {
		return ""
	}
	parts := make([]string, 0, len(cells)+1)
	for k, c := range cells {
		sign := "+"
		if k%2 == 1 {
			sign = "-"
		}
		parts = append(parts, sign+c.String())
	}

	return strings.Join(parts, " → ")
}

// Document is the JSON form of a Result. Cells are 1-based like the text report.
type Document struct {
	Sources          int            `json:"sources"`
	Destinations     int            `json:"destinations"`
	DummySource      bool           `json:"dummy_source"`
	DummyDestination bool           `json:"dummy_destination"`
	Costs            [][]float64    `json:"costs"`
	Supply           []float64      `json:"supply"`
	Demand           []float64      `json:"demand"`
	Steps            []StepDoc      `json:"steps"`
	Initial          [][]float64    `json:"initial"`
	InitialCost      float64        `json:"initial_cost"`
	Degenerate       bool           `json:"degenerate"`
	Occupied         int            `json:"occupied"`
	Required         int            `json:"required"`
	Markers          []CellDoc      `json:"markers"`
	Pivots           []PivotDoc     `json:"pivots"`
	Final            [][]float64    `json:"final"`
	FinalCost        float64        `json:"final_cost"`
	State            string         `json:"state"`
	Potentials       *PotentialsDoc `json:"potentials,omitempty"`
}

// CellDoc is a 1-based cell.
type CellDoc struct {
	Source      int `json:"source"`
	Destination int `json:"destination"`
}

// StepDoc is one greedy decision.
type StepDoc struct {
	Step            int     `json:"step"`
	Cell            CellDoc `json:"cell"`
	Cost            float64 `json:"cost"`
	Allocated       float64 `json:"allocated"`
	SupplyRemaining float64 `json:"supply_remaining"`
	DemandRemaining float64 `json:"demand_remaining"`
}

// PivotDoc is one MODI iteration.
type PivotDoc struct {
	Iteration int       `json:"iteration"`
	Entering  CellDoc   `json:"entering"`
	Gain      float64   `json:"gain"`
	Theta     float64   `json:"theta"`
	Leaving   CellDoc   `json:"leaving"`
	Loop      []CellDoc `json:"loop"`
	Cost      float64   `json:"cost"`
}

// PotentialsDoc holds the final duals.
type PotentialsDoc struct {
	U []float64 `json:"u"`
	V []float64 `json:"v"`
}

func cellDoc(c transport.Cell) CellDoc {
	return CellDoc{Source: c.Row + 1, Destination: c.Col + 1}
}

func cellDocs(cells []transport.Cell) []CellDoc {
	out := make([]CellDoc, len(cells))
	for k, c := range cells {
		out[k] = cellDoc(c)
	}

	return out
}

// rounded copies a plan with display rounding; marker cells become 0.
func rounded(d *matrix.Dense, sentinel float64) [][]float64 {
	rows := d.ToRows()
	for _, row := range rows {
		for j, v := range row {
			if v <= sentinel {
				row[j] = 0

				continue
			}
			row[j], _ = decimal.NewFromFloat(v).Round(Places).Float64()
		}
	}

	return rows
}

// NewDocument converts res.
func NewDocument(res *transport.Result, sentinel float64) Document {
	inst := res.Balanced.Instance
	m, n := inst.Shape()
	doc := Document{
		Sources:          m,
		Destinations:     n,
		DummySource:      res.Balanced.DummySource,
		DummyDestination: res.Balanced.DummyDestination,
		Costs:            inst.Costs,
		Supply:           inst.Supply,
		Demand:           inst.Demand,
		Steps:            make([]StepDoc, len(res.Steps)),
		Initial:          rounded(res.Initial, sentinel),
		InitialCost:      res.InitialCost,
		Degenerate:       res.Degenerate,
		Occupied:         res.Occupied,
		Required:         res.Expected,
		Markers:          cellDocs(res.Markers),
		Pivots:           make([]PivotDoc, len(res.Pivots)),
		Final:            rounded(res.Final, sentinel),
		FinalCost:        res.FinalCost,
		State:            res.State.String(),
	}
	for k, s := range res.Steps {
		doc.Steps[k] = StepDoc{
			Step:            s.Index,
			Cell:            cellDoc(s.Cell),
			Cost:            s.UnitCost,
			Allocated:       s.Quantity,
			SupplyRemaining: s.RemainingSupply,
			DemandRemaining: s.RemainingDemand,
		}
	}
	for k, p := range res.Pivots {
		doc.Pivots[k] = PivotDoc{
			Iteration: p.Iteration,
			Entering:  cellDoc(p.Entering),
			Gain:      p.Gain,
			Theta:     p.Theta,
			Leaving:   cellDoc(p.Leaving),
			Loop:      cellDocs(p.Cycle),
			Cost:      p.Cost,
		}
	}
	if res.Potentials.Determined() {
		u, v := res.Potentials.Values()
		doc.Potentials = &PotentialsDoc{U: u, V: v}
	}

	return doc
}

// JSON writes NewDocument(res) as indented JSON.
func JSON(w io.Writer, res *transport.Result, sentinel float64) error {
	if res == nil {
		return fmt.Errorf("report: nil result")
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)

	return enc.Encode(NewDocument(res, sentinel))
}
