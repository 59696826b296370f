package services

import (
	"fmt"
	"math/rand"
	"time"
)

// GridSize is the board edge length — the board is always 5×5.
const GridSize = 5

// WildSymbol completes any line but can never anchor one.
const WildSymbol = "🕉"

// ReelSymbols are the regular (non-wild) symbols a cell can hold.
var ReelSymbols = []string{"⭐️", "🔔", "🍇", "🍋", "7️⃣"}

// Grid is one generated board, rows first.
type Grid [GridSize][GridSize]string

// LineWin describes one matching line for client-side highlighting.
// It is presentation only: the payout decision is made by Generate
// before the board is filled and is never re-derived from the grid.
type LineWin struct {
	Description string             `json:"description"`
	Cells       [GridSize][2]int   `json:"cells"` // [row, col] per cell
}

// SlotEngine produces boards with a pre-decided outcome. The RNG is
// injected so tests can seed it.
type SlotEngine struct {
	winChance  float64
	wildChance float64
	rng        *rand.Rand
}

const (
	defaultWinChance  = 0.05
	defaultWildChance = 0.20
)

func NewSlotEngine(winChance float64) *SlotEngine {
	if winChance <= 0 || winChance >= 1 {
		winChance = defaultWinChance
	}
	return &SlotEngine{
		winChance:  winChance,
		wildChance: defaultWildChance,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Generate fills a board and returns it with the win decision. The
// decision is drawn first; the symbols are then arranged to agree with
// it. The returned flag — not a later evaluation of the grid — is the
// sole authority for payout.
func (e *SlotEngine) Generate() (Grid, bool) {
	won := e.rng.Float64() < e.winChance

	var grid Grid
	for r := 0; r < GridSize; r++ {
		for c := 0; c < GridSize; c++ {
			grid[r][c] = e.randomSymbol()
		}
	}

	if won {
		winSymbol := e.stampWinningLine(&grid)
		e.scatterWilds(&grid, winSymbol)
	} else {
		e.breakWinningRows(&grid)
	}

	return grid, won
}

// randomSymbol draws one cell: wild with the configured chance, else
// uniform over the regular symbols.
func (e *SlotEngine) randomSymbol() string {
	if e.rng.Float64() < e.wildChance {
		return WildSymbol
	}
	return ReelSymbols[e.rng.Intn(len(ReelSymbols))]
}

// stampWinningLine overwrites one uniformly chosen line shape (row,
// column, main or anti diagonal) with a uniformly chosen regular
// symbol, and returns that symbol.
func (e *SlotEngine) stampWinningLine(grid *Grid) string {
	winSymbol := ReelSymbols[e.rng.Intn(len(ReelSymbols))]

	switch e.rng.Intn(4) {
	case 0:
		row := e.rng.Intn(GridSize)
		for c := 0; c < GridSize; c++ {
			grid[row][c] = winSymbol
		}
	case 1:
		col := e.rng.Intn(GridSize)
		for r := 0; r < GridSize; r++ {
			grid[r][col] = winSymbol
		}
	case 2:
		for i := 0; i < GridSize; i++ {
			grid[i][i] = winSymbol
		}
	default:
		for i := 0; i < GridSize; i++ {
			grid[i][GridSize-1-i] = winSymbol
		}
	}

	return winSymbol
}

// scatterWilds drops 1–3 wilds onto cells that neither hold the win
// symbol (which would touch the stamped line) nor are already wild.
func (e *SlotEngine) scatterWilds(grid *Grid, winSymbol string) {
	count := e.rng.Intn(3) + 1
	for i := 0; i < count; i++ {
		var row, col int
		for {
			row = e.rng.Intn(GridSize)
			col = e.rng.Intn(GridSize)
			if grid[row][col] != winSymbol && grid[row][col] != WildSymbol {
				break
			}
		}
		grid[row][col] = WildSymbol
	}
}

// breakWinningRows re-rolls cells in any row that accidentally formed
// a win until it no longer does. Columns and diagonals are not
// corrected; payout follows the pre-decided flag either way.
func (e *SlotEngine) breakWinningRows(grid *Grid) {
	for r := 0; r < GridSize; r++ {
		for checkLine(grid[r]) {
			col := e.rng.Intn(GridSize)
			anchor := grid[r][0]
			var replacement string
			for {
				replacement = ReelSymbols[e.rng.Intn(len(ReelSymbols))]
				if replacement != anchor {
					break
				}
			}
			grid[r][col] = replacement
		}
	}
}

// checkLine reports whether five cells form a win: every cell equals
// the first one or is wild, and the first cell is not itself wild. An
// all-wild line never pays.
func checkLine(line [GridSize]string) bool {
	first := line[0]
	if first == WildSymbol {
		return false
	}
	for _, sym := range line {
		if sym != first && sym != WildSymbol {
			return false
		}
	}
	return true
}

// CheckWin reports whether any row, column or diagonal forms a line
// win. First hit returns.
func (e *SlotEngine) CheckWin(grid Grid) bool {
	for r := 0; r < GridSize; r++ {
		if checkLine(grid[r]) {
			return true
		}
	}
	for c := 0; c < GridSize; c++ {
		if checkLine(column(grid, c)) {
			return true
		}
	}
	return checkLine(mainDiagonal(grid)) || checkLine(antiDiagonal(grid))
}

// EvaluateGrid collects every matching line with its member cells —
// all of them, not just the first, so the client can highlight each.
func (e *SlotEngine) EvaluateGrid(grid Grid) []LineWin {
	var wins []LineWin

	for r := 0; r < GridSize; r++ {
		if checkLine(grid[r]) {
			var cells [GridSize][2]int
			for c := 0; c < GridSize; c++ {
				cells[c] = [2]int{r, c}
			}
			wins = append(wins, LineWin{
				Description: fmt.Sprintf("Row %d matches!", r+1),
				Cells:       cells,
			})
		}
	}

	for c := 0; c < GridSize; c++ {
		if checkLine(column(grid, c)) {
			var cells [GridSize][2]int
			for r := 0; r < GridSize; r++ {
				cells[r] = [2]int{r, c}
			}
			wins = append(wins, LineWin{
				Description: fmt.Sprintf("Column %d matches!", c+1),
				Cells:       cells,
			})
		}
	}

	if checkLine(mainDiagonal(grid)) {
		var cells [GridSize][2]int
		for i := 0; i < GridSize; i++ {
			cells[i] = [2]int{i, i}
		}
		wins = append(wins, LineWin{Description: "Diagonal matches!", Cells: cells})
	}

	if checkLine(antiDiagonal(grid)) {
		var cells [GridSize][2]int
		for i := 0; i < GridSize; i++ {
			cells[i] = [2]int{i, GridSize - 1 - i}
		}
		wins = append(wins, LineWin{Description: "Anti-diagonal matches!", Cells: cells})
	}

	return wins
}

func column(grid Grid, c int) [GridSize]string {
	var line [GridSize]string
	for r := 0; r < GridSize; r++ {
		line[r] = grid[r][c]
	}
	return line
}

func mainDiagonal(grid Grid) [GridSize]string {
	var line [GridSize]string
	for i := 0; i < GridSize; i++ {
		line[i] = grid[i][i]
	}
	return line
}

func antiDiagonal(grid Grid) [GridSize]string {
	var line [GridSize]string
	for i := 0; i < GridSize; i++ {
		line[i] = grid[i][GridSize-1-i]
	}
	return line
}
