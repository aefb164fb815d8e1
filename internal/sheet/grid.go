package sheet

// Grid is a rectangular view over a sheet's cells. Rows in the
// underlying data may be ragged; out-of-range lookups return an empty
// cell so callers can probe positions without bounds checks.
type Grid struct {
	rows [][]Cell
}

// NewGrid builds a Grid from raw cell values, classifying each cell
func NewGrid(raw [][]string) *Grid {
	rows := make([][]Cell, len(raw))
	for i, rawRow := range raw {
		row := make([]Cell, len(rawRow))
		for j, value := range rawRow {
			row[j] = NewCell(value)
		}
		rows[i] = row
	}
	return &Grid{rows: rows}
}

// RowCount returns the number of rows in the grid
func (g *Grid) RowCount() int {
	return len(g.rows)
}

// Cell returns the cell at the given position. Positions outside the
// grid, including beyond a ragged row's end, return an empty cell.
func (g *Grid) Cell(row, col int) Cell {
	if row < 0 || row >= len(g.rows) {
		return Cell{Kind: KindEmpty}
	}
	r := g.rows[row]
	if col < 0 || col >= len(r) {
		return Cell{Kind: KindEmpty}
	}
	return r[col]
}

// RowWidth returns the number of cells present in the given row
func (g *Grid) RowWidth(row int) int {
	if row < 0 || row >= len(g.rows) {
		return 0
	}
	return len(g.rows[row])
}

// RowIsEmpty reports whether every cell in the row is empty
func (g *Grid) RowIsEmpty(row int) bool {
	if row < 0 || row >= len(g.rows) {
		return true
	}
	for _, c := range g.rows[row] {
		if !c.IsEmpty() {
			return false
		}
	}
	return true
}
