package spatialout

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// BorderStyle controls table border characters.
type BorderStyle int

const (
	BorderRounded BorderStyle = iota // ╭─╮╰╯│┬┴├┤┼
	BorderNone                       // No borders, space-separated columns
	BorderASCII                      // +-+|
)

// Alignment controls column text alignment.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// frame holds the characters of one border style. Each rule is drawn from
// a left corner, a fill, a junction and a right corner.
type frame struct {
	top, middle, bottom [4]string
	vertical            string
}

var frames = map[BorderStyle]frame{
	BorderRounded: {
		top:      [4]string{"╭", "─", "┬", "╮"},
		middle:   [4]string{"├", "─", "┼", "┤"},
		bottom:   [4]string{"╰", "─", "┴", "╯"},
		vertical: "│",
	},
	BorderASCII: {
		top:      [4]string{"+", "-", "+", "+"},
		middle:   [4]string{"+", "-", "+", "+"},
		bottom:   [4]string{"+", "-", "+", "+"},
		vertical: "|",
	},
}

// RenderOptions controls how a preview is drawn.
type RenderOptions struct {
	Border BorderStyle
	// MaxWidth truncates wider cells with "...". Zero means no limit.
	MaxWidth int
	// Markdown renders a GitHub-flavored Markdown table instead.
	Markdown bool
}

// RenderPreview draws p as a table with numeric columns right-aligned,
// followed by a caption with the row counts.
func RenderPreview(w io.Writer, p *Preview, opts RenderOptions) error {
	header, rows := p.Header, p.Rows
	if opts.Markdown {
		header, rows = escapeMarkdown(header), make([][]string, len(p.Rows))
		for i, row := range p.Rows {
			rows[i] = escapeMarkdown(row)
		}
	}

	g := newGrid(header, rows, p.Numeric, opts.MaxWidth)
	var err error
	switch {
	case opts.Markdown:
		err = g.markdown(w)
	case opts.Border == BorderNone:
		err = g.plain(w)
	default:
		f, ok := frames[opts.Border]
		if !ok {
			f = frames[BorderRounded]
		}
		err = g.framed(w, f)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%d of %d rows\n", len(p.Rows), p.TotalRows)
	return err
}

// grid is a header and rows laid out in fixed-width columns.
type grid struct {
	header []string
	rows   [][]string
	widths []int
	aligns []Alignment
}

func newGrid(header []string, rows [][]string, numeric []bool, maxWidth int) *grid {
	g := &grid{
		header: header,
		rows:   rows,
		widths: make([]int, len(header)),
		aligns: make([]Alignment, len(header)),
	}
	for i := range header {
		if i < len(numeric) && numeric[i] {
			g.aligns[i] = AlignRight
		}
	}
	for _, row := range append([][]string{header}, rows...) {
		for i, cell := range row {
			if i < len(g.widths) {
				g.widths[i] = max(g.widths[i], runewidth.StringWidth(cell))
			}
		}
	}
	if maxWidth > 0 {
		for i := range g.widths {
			g.widths[i] = min(g.widths[i], maxWidth)
		}
	}
	return g
}

// cells pads row to the column widths. Missing cells are blank.
func (g *grid) cells(row []string, widths []int) []string {
	out := make([]string, len(widths))
	for i, width := range widths {
		var s string
		if i < len(row) {
			s = row[i]
		}
		out[i] = fit(s, width, g.aligns[i])
	}
	return out
}

func (g *grid) plain(w io.Writer) error {
	line := func(cells []string) error {
		_, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, "  "), " "))
		return err
	}
	if err := line(g.cells(g.header, g.widths)); err != nil {
		return err
	}
	dashes := make([]string, len(g.widths))
	for i, width := range g.widths {
		dashes[i] = strings.Repeat("-", width)
	}
	if err := line(dashes); err != nil {
		return err
	}
	for _, row := range g.rows {
		if err := line(g.cells(row, g.widths)); err != nil {
			return err
		}
	}
	return nil
}

func (g *grid) framed(w io.Writer, f frame) error {
	rule := func(chars [4]string) error {
		segs := make([]string, len(g.widths))
		for i, width := range g.widths {
			segs[i] = strings.Repeat(chars[1], width+2)
		}
		_, err := fmt.Fprintln(w, chars[0]+strings.Join(segs, chars[2])+chars[3])
		return err
	}
	line := func(row []string) error {
		sep := " " + f.vertical + " "
		_, err := fmt.Fprintln(w, f.vertical+" "+strings.Join(g.cells(row, g.widths), sep)+" "+f.vertical)
		return err
	}

	if err := rule(f.top); err != nil {
		return err
	}
	if err := line(g.header); err != nil {
		return err
	}
	if err := rule(f.middle); err != nil {
		return err
	}
	for _, row := range g.rows {
		if err := line(row); err != nil {
			return err
		}
	}
	return rule(f.bottom)
}

func (g *grid) markdown(w io.Writer) error {
	// Alignment markers need at least three dashes.
	widths := make([]int, len(g.widths))
	for i, width := range g.widths {
		widths[i] = max(width, 3)
	}
	line := func(cells []string) error {
		_, err := fmt.Fprintf(w, "| %s |\n", strings.Join(cells, " | "))
		return err
	}

	if err := line(g.cells(g.header, widths)); err != nil {
		return err
	}
	markers := make([]string, len(widths))
	for i, width := range widths {
		if g.aligns[i] == AlignRight {
			markers[i] = strings.Repeat("-", width-1) + ":"
		} else {
			markers[i] = strings.Repeat("-", width)
		}
	}
	if err := line(markers); err != nil {
		return err
	}
	for _, row := range g.rows {
		if err := line(g.cells(row, widths)); err != nil {
			return err
		}
	}
	return nil
}

// fit truncates s to width display columns and pads it on the side given by
// align.
func fit(s string, width int, align Alignment) string {
	if width > 0 && runewidth.StringWidth(s) > width {
		tail := "..."
		if width <= 3 {
			tail = ""
		}
		s = runewidth.Truncate(s, width, tail)
	}
	pad := width - runewidth.StringWidth(s)
	if pad <= 0 {
		return s
	}
	if align == AlignRight {
		return strings.Repeat(" ", pad) + s
	}
	return s + strings.Repeat(" ", pad)
}

func escapeMarkdown(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = strings.ReplaceAll(c, "|", `\|`)
	}
	return out
}
