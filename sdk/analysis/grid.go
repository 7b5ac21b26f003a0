package analysis

import (
	"strings"

	"github.com/cynthiacxzhang/range-equity-agent/poker"
)

// GridSize is the number of rows and columns in a range grid.
const GridSize = poker.NumRanks

// GridCell is one starting-hand class in the 13x13 grid. Row and column 0
// are aces. Pairs sit on the diagonal, suited hands above it and offsuit
// hands below it.
type GridCell struct {
	Row, Col int
	poker.HoleCards
}

// GridCellAt returns the cell at row, col. It panics if either index is out
// of range.
func GridCellAt(row, col int) GridCell {
	if row < 0 || row >= GridSize || col < 0 || col >= GridSize {
		panic("analysis: grid index out of range")
	}
	rowRank := poker.Rank(GridSize - 1 - row)
	colRank := poker.Rank(GridSize - 1 - col)

	cell := GridCell{Row: row, Col: col}
	switch {
	case row == col:
		cell.HoleCards = poker.HoleCards{High: rowRank, Low: rowRank, Kind: poker.KindPair}
	case row < col:
		cell.HoleCards = poker.HoleCards{High: rowRank, Low: colRank, Kind: poker.KindSuited}
	default:
		cell.HoleCards = poker.HoleCards{High: colRank, Low: rowRank, Kind: poker.KindOffsuit}
	}
	return cell
}

// cellIndex returns the grid position holding a starting-hand class.
func cellIndex(h poker.HoleCards) (row, col int) {
	hi := GridSize - 1 - int(h.High)
	lo := GridSize - 1 - int(h.Low)
	if h.Kind == poker.KindOffsuit {
		return lo, hi
	}
	return hi, lo
}

// Grid is a selection of starting-hand classes. The zero value is empty.
type Grid struct {
	cells [GridSize][GridSize]bool
}

// Toggle flips the selection of a cell and returns its new state.
func (g *Grid) Toggle(row, col int) bool {
	GridCellAt(row, col)
	g.cells[row][col] = !g.cells[row][col]
	return g.cells[row][col]
}

// Set selects or clears a cell.
func (g *Grid) Set(row, col int, selected bool) {
	GridCellAt(row, col)
	g.cells[row][col] = selected
}

// Selected reports whether a cell is selected.
func (g *Grid) Selected(row, col int) bool {
	return g.cells[row][col]
}

// Count returns the number of selected cells.
func (g *Grid) Count() int {
	n := 0
	for r := range GridSize {
		for c := range GridSize {
			if g.cells[r][c] {
				n++
			}
		}
	}
	return n
}

// Clear deselects every cell.
func (g *Grid) Clear() {
	g.cells = [GridSize][GridSize]bool{}
}

// Cells returns the selected cells in row-major order.
func (g *Grid) Cells() []GridCell {
	var out []GridCell
	for r := range GridSize {
		for c := range GridSize {
			if g.cells[r][c] {
				out = append(out, GridCellAt(r, c))
			}
		}
	}
	return out
}

// Combos expands the selection into sorted, deduplicated combos.
func (g *Grid) Combos() []Combo {
	var set comboSet
	for _, cell := range g.Cells() {
		switch cell.Kind {
		case poker.KindPair:
			addPair(&set, cell.High)
		case poker.KindSuited:
			addSuited(&set, cell.High, cell.Low)
		default:
			addOffsuit(&set, cell.High, cell.Low)
		}
	}
	return set.combos()
}

// Notation returns the selection as comma-separated range notation in
// row-major order.
func (g *Grid) Notation() string {
	cells := g.Cells()
	labels := make([]string, len(cells))
	for i, cell := range cells {
		labels[i] = cell.Label()
	}
	return strings.Join(labels, ", ")
}

// GridFromCombos marks every cell that holds at least one of combos.
func GridFromCombos(combos []Combo) *Grid {
	g := &Grid{}
	for _, c := range combos {
		row, col := cellIndex(c.Class())
		g.cells[row][col] = true
	}
	return g
}

// String renders the grid with a label for selected cells and "." for the
// rest, one row per line.
func (g *Grid) String() string {
	var b strings.Builder
	for r := range GridSize {
		var row strings.Builder
		for c := range GridSize {
			label := "."
			if g.cells[r][c] {
				label = GridCellAt(r, c).Label()
			}
			row.WriteString(label)
			row.WriteString(strings.Repeat(" ", 4-len(label)))
		}
		b.WriteString(strings.TrimRight(row.String(), " "))
		b.WriteByte('\n')
	}
	return b.String()
}
