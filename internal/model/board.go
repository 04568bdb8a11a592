package model

import "fmt"

// TotalCells is the number of questions on a board
const TotalCells = NumCategories * NumTiers

// Cell identifies a question slot on the board
type Cell struct {
	Category Category `json:"category"`
	Tier     Tier     `json:"tier"`
}

// CellFor builds a cell from a category and point value
func CellFor(category Category, value int) (Cell, error) {
	if !category.Valid() {
		return Cell{}, ErrUnknownCategory
	}
	tier, err := TierForValue(value)
	if err != nil {
		return Cell{}, err
	}
	return Cell{Category: category, Tier: tier}, nil
}

// Valid returns true if the cell is within the board
func (c Cell) Valid() bool {
	return c.Category.Valid() && c.Tier.Valid()
}

// Value returns the point value of the cell
func (c Cell) Value() int {
	return c.Tier.Value()
}

func (c Cell) String() string {
	return fmt.Sprintf("%s/%d", c.Category.Tag(), c.Value())
}

// Board tracks which questions have been answered
type Board struct {
	answered [NumCategories][NumTiers]bool
}

// NewBoard creates a board with every question available
func NewBoard() *Board {
	return &Board{}
}

// BoardFromGrid builds a board from a [category][tier] grid.
// The grid must have exactly NumCategories rows of NumTiers entries.
func BoardFromGrid(grid [][]bool) (*Board, error) {
	if len(grid) != NumCategories {
		return nil, ErrInvalidBoardShape
	}
	b := &Board{}
	for i, row := range grid {
		if len(row) != NumTiers {
			return nil, ErrInvalidBoardShape
		}
		copy(b.answered[i][:], row)
	}
	return b, nil
}

// IsAnswered reports whether a cell has been played.
// Panics if the cell is off the board.
func (b *Board) IsAnswered(cell Cell) bool {
	b.mustBeValid(cell)
	return b.answered[cell.Category][cell.Tier]
}

// MarkAnswered flags a cell as played. Marking twice is a no-op.
// Panics if the cell is off the board.
func (b *Board) MarkAnswered(cell Cell) {
	b.mustBeValid(cell)
	b.answered[cell.Category][cell.Tier] = true
}

// CountAnswered returns the number of played cells
func (b *Board) CountAnswered() int {
	count := 0
	for c := 0; c < NumCategories; c++ {
		for t := 0; t < NumTiers; t++ {
			if b.answered[c][t] {
				count++
			}
		}
	}
	return count
}

// IsFull returns true when every cell has been played
func (b *Board) IsFull() bool {
	return b.CountAnswered() == TotalCells
}

// Clone returns an independent copy
func (b *Board) Clone() *Board {
	c := *b
	return &c
}

// Grid returns the flags as a freshly allocated [category][tier] slice
func (b *Board) Grid() [][]bool {
	grid := make([][]bool, NumCategories)
	for c := range grid {
		grid[c] = make([]bool, NumTiers)
		copy(grid[c], b.answered[c][:])
	}
	return grid
}

func (b *Board) mustBeValid(cell Cell) {
	if !cell.Valid() {
		panic(fmt.Sprintf("board: cell out of range: category=%d tier=%d", cell.Category, cell.Tier))
	}
}
