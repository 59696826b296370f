package services

import (
	"encoding/json"
	"math/rand"
	"testing"
)

func testEngine(winChance float64, seed int64) *SlotEngine {
	return &SlotEngine{
		winChance:  winChance,
		wildChance: defaultWildChance,
		rng:        rand.New(rand.NewSource(seed)),
	}
}

// noWinGrid builds a board with no winning line anywhere: cell (r,c)
// holds ReelSymbols[(2r+c) mod 5], so every row, column and diagonal
// contains five distinct symbols and no wilds.
func noWinGrid() Grid {
	var grid Grid
	for r := 0; r < GridSize; r++ {
		for c := 0; c < GridSize; c++ {
			grid[r][c] = ReelSymbols[(2*r+c)%len(ReelSymbols)]
		}
	}
	return grid
}

func TestGeneratedWinningGridsAlwaysEvaluateAsWins(t *testing.T) {
	e := testEngine(1.0, 42)
	for i := 0; i < 1000; i++ {
		grid, won := e.Generate()
		if !won {
			t.Fatalf("iteration %d: winChance=1 produced a losing spin", i)
		}
		if !e.CheckWin(grid) {
			t.Fatalf("iteration %d: winning grid has no detectable line: %v", i, grid)
		}
		if len(e.EvaluateGrid(grid)) == 0 {
			t.Fatalf("iteration %d: winning grid produced no line wins for highlighting", i)
		}
	}
}

func TestGeneratedLosingGridsHaveNoWinningRows(t *testing.T) {
	e := testEngine(0.0, 42)
	for i := 0; i < 1000; i++ {
		grid, won := e.Generate()
		if won {
			t.Fatalf("iteration %d: winChance=0 produced a winning spin", i)
		}
		for r := 0; r < GridSize; r++ {
			if checkLine(grid[r]) {
				t.Fatalf("iteration %d: losing grid contains winning row %d: %v", i, r, grid[r])
			}
		}
		// Columns and diagonals are not corrected on losing grids.
		// That asymmetry is the game's live behavior: the pre-decided
		// flag drives payout, so an accidental column line is cosmetic.
	}
}

func TestAllWildLineDoesNotWin(t *testing.T) {
	line := [GridSize]string{WildSymbol, WildSymbol, WildSymbol, WildSymbol, WildSymbol}
	if checkLine(line) {
		t.Fatal("all-wild line must not count as a win")
	}

	grid := noWinGrid()
	for c := 0; c < GridSize; c++ {
		grid[0][c] = WildSymbol
	}
	e := testEngine(0.5, 1)
	for _, w := range e.EvaluateGrid(grid) {
		if w.Description == "Row 1 matches!" {
			t.Fatal("EvaluateGrid reported an all-wild row as a win")
		}
	}
}

func TestWildsCompleteALine(t *testing.T) {
	star := ReelSymbols[0]
	line := [GridSize]string{star, WildSymbol, star, WildSymbol, star}
	if !checkLine(line) {
		t.Fatal("one symbol plus wilds must count as a win")
	}

	// Wild anchor but a single non-wild tail still should not win when
	// a second distinct symbol appears
	mixed := [GridSize]string{star, WildSymbol, ReelSymbols[1], WildSymbol, star}
	if checkLine(mixed) {
		t.Fatal("two distinct non-wild symbols must never count as a win")
	}
}

func TestEvaluateGridReportsAllLinesWithCells(t *testing.T) {
	star := ReelSymbols[0]
	grid := noWinGrid()
	for c := 0; c < GridSize; c++ {
		grid[2][c] = star
	}

	e := testEngine(0.5, 1)
	wins := e.EvaluateGrid(grid)
	if len(wins) != 1 {
		t.Fatalf("expected exactly one winning line, got %d: %v", len(wins), wins)
	}
	if wins[0].Description != "Row 3 matches!" {
		t.Fatalf("unexpected description: %q", wins[0].Description)
	}
	for c, cell := range wins[0].Cells {
		if cell != [2]int{2, c} {
			t.Fatalf("cell %d: expected [2 %d], got %v", c, c, cell)
		}
	}
}

func TestEvaluateGridFindsColumnsAndDiagonals(t *testing.T) {
	bell := ReelSymbols[1]
	e := testEngine(0.5, 1)

	colGrid := noWinGrid()
	for r := 0; r < GridSize; r++ {
		colGrid[r][4] = bell
	}
	wins := e.EvaluateGrid(colGrid)
	if len(wins) != 1 || wins[0].Description != "Column 5 matches!" {
		t.Fatalf("expected one column-5 win, got %v", wins)
	}

	diagGrid := noWinGrid()
	for i := 0; i < GridSize; i++ {
		diagGrid[i][i] = bell
	}
	wins = e.EvaluateGrid(diagGrid)
	if len(wins) != 1 || wins[0].Description != "Diagonal matches!" {
		t.Fatalf("expected one diagonal win, got %v", wins)
	}

	antiGrid := noWinGrid()
	for i := 0; i < GridSize; i++ {
		antiGrid[i][GridSize-1-i] = bell
	}
	wins = e.EvaluateGrid(antiGrid)
	if len(wins) != 1 || wins[0].Description != "Anti-diagonal matches!" {
		t.Fatalf("expected one anti-diagonal win, got %v", wins)
	}
}

func TestWinningGridsContainScatteredWilds(t *testing.T) {
	e := testEngine(1.0, 7)
	sawWild := false
	for i := 0; i < 200; i++ {
		grid, _ := e.Generate()
		for r := 0; r < GridSize; r++ {
			for c := 0; c < GridSize; c++ {
				if grid[r][c] == WildSymbol {
					sawWild = true
				}
			}
		}
	}
	if !sawWild {
		t.Fatal("winning grids never contained a wild symbol across 200 spins")
	}
}

func TestGridJSONRoundTrip(t *testing.T) {
	e := testEngine(0.5, 99)
	grid, _ := e.Generate()

	data, err := json.Marshal(grid)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded Grid
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded != grid {
		t.Fatalf("grid changed across JSON round trip:\n%v\n%v", grid, decoded)
	}
}
