package breakout

import "testing"

func TestGenerateGridDefaults(t *testing.T) {
	grid := GenerateGrid(DefaultLayout)

	if len(grid) != 9 {
		t.Fatalf("rows = %d, expected 9", len(grid))
	}
	for r, row := range grid {
		if len(row) != 5 {
			t.Fatalf("row %d has %d cols, expected 5", r, len(row))
		}
	}

	first := grid[0][0]
	if first.X != 45 || first.Y != 60 {
		t.Errorf("brick[0][0] at (%v, %v), expected (45, 60)", first.X, first.Y)
	}

	last := grid[8][4]
	if last.X != 685 || last.Y != 180 {
		t.Errorf("brick[8][4] at (%v, %v), expected (685, 180)", last.X, last.Y)
	}

	if last.Width != 70 || last.Height != 20 {
		t.Errorf("brick size = %vx%v, expected 70x20", last.Width, last.Height)
	}

	if grid.Remaining() != 45 || grid.Total() != 45 {
		t.Errorf("Remaining() = %d, Total() = %d, expected 45", grid.Remaining(), grid.Total())
	}
}

func TestGenerateGridDeterministic(t *testing.T) {
	a := GenerateGrid(DefaultLayout)
	b := GenerateGrid(DefaultLayout)

	for r := range a {
		for c := range a[r] {
			if a[r][c] != b[r][c] {
				t.Fatalf("brick[%d][%d] differs: %+v vs %+v", r, c, a[r][c], b[r][c])
			}
		}
	}
}

func TestRemainingCountsVisible(t *testing.T) {
	grid := GenerateGrid(DefaultLayout)

	want := 45
	for r := range grid {
		for c := range grid[r] {
			grid[r][c].Visible = false
			want--
			if got := grid.Remaining(); got != want {
				t.Fatalf("after hiding [%d][%d]: Remaining() = %d, expected %d", r, c, got, want)
			}
		}
	}

	if grid.Remaining() != 0 {
		t.Errorf("Remaining() = %d, expected 0", grid.Remaining())
	}
}

func TestGenerateGridEmpty(t *testing.T) {
	grid := GenerateGrid(GridLayout{})
	if grid.Remaining() != 0 || grid.Total() != 0 {
		t.Errorf("empty layout should produce an empty grid")
	}
}
