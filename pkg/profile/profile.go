// Package profile counts how often each instruction is executed, and
// renders the result as a bar chart.
package profile

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/thelolagemann/sm83/internal/cpu"
	"github.com/thelolagemann/sm83/pkg/trace"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Count is the number of times an instruction was executed.
type Count struct {
	// Opcode is the opcode of the instruction, with 0xCB00 added for
	// instructions of the CB prefixed set.
	Opcode uint16
	Name   string
	N      uint64
}

// Profile is a trace.Tracer that counts every instruction it sees.
type Profile struct {
	counts   [256]uint64
	cbCounts [256]uint64
	total    uint64
}

// New returns an empty Profile.
func New() *Profile {
	return &Profile{}
}

// Trace counts the instruction at the entry's PC.
func (p *Profile) Trace(e trace.Entry) error {
	p.total++
	if e.PCMem[0] == 0xCB {
		p.cbCounts[e.PCMem[1]]++
	} else {
		p.counts[e.PCMem[0]]++
	}
	return nil
}

// Total returns the number of instructions counted.
func (p *Profile) Total() uint64 {
	return p.total
}

// Top returns the n most executed instructions, most executed first.
// Instructions with the same count are ordered by opcode.
func (p *Profile) Top(n int) []Count {
	var counts []Count
	for i := 0; i < 256; i++ {
		if p.counts[i] > 0 {
			counts = append(counts, Count{uint16(i), cpu.InstructionSet[i].Name(), p.counts[i]})
		}
		if p.cbCounts[i] > 0 {
			counts = append(counts, Count{0xCB00 | uint16(i), cpu.InstructionSetCB[i].Name(), p.cbCounts[i]})
		}
	}

	sort.Slice(counts, func(i, j int) bool {
		if counts[i].N != counts[j].N {
			return counts[i].N > counts[j].N
		}
		return counts[i].Opcode < counts[j].Opcode
	})
	if n >= 0 && len(counts) > n {
		counts = counts[:n]
	}
	return counts
}

// WriteText writes the n most executed instructions to w, one per line.
func (p *Profile) WriteText(w io.Writer, n int) error {
	for _, c := range p.Top(n) {
		if _, err := fmt.Fprintf(w, "%04X %-16s %10d %6.2f%%\n", c.Opcode, c.Name, c.N, 100*float64(c.N)/float64(p.total)); err != nil {
			return err
		}
	}
	return nil
}

// WritePNG renders the n most executed instructions as a bar chart.
func (p *Profile) WritePNG(w io.Writer, n int) error {
	top := p.Top(n)

	chart := plot.New()
	chart.Title.Text = fmt.Sprintf("Instructions (%d executed)", p.total)
	chart.Y.Label.Text = "Count"

	values := make(plotter.Values, len(top))
	names := make([]string, len(top))
	for i, c := range top {
		values[i] = float64(c.N)
		names[i] = fmt.Sprintf("%02X", c.Opcode)
	}

	bars, err := plotter.NewBarChart(values, vg.Points(12))
	if err != nil {
		return fmt.Errorf("profile: %w", err)
	}
	bars.LineStyle.Width = vg.Length(0)
	chart.Add(bars)
	chart.NominalX(names...)

	c := vgimg.New(vg.Points(float64(40+16*len(top))), 4*vg.Inch)
	chart.Draw(draw.New(c))

	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(w); err != nil {
		return fmt.Errorf("profile: %w", err)
	}
	return nil
}

// Save writes the bar chart of the n most executed instructions to the
// PNG file at path.
func (p *Profile) Save(path string, n int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("profile: %w", err)
	}
	if err := p.WritePNG(f, n); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
