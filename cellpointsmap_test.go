/*
Copyright © 2026 the tinder authors.
This file is part of tinder.

tinder is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

tinder is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with tinder.  If not, see <http://www.gnu.org/licenses/>.
*/

package tinder

import "testing"

// TestCellPointsMapKeyConsistency checks §8's "For every (Location L,
// CellPoints C) in the map, C.cell_x == L.col && C.cell_y == L.row."
func TestCellPointsMapKeyConsistency(t *testing.T) {
	g := &GridBase{Rows: 20, Cols: 20, CellSize: 10, OriginX: 0, OriginY: 0}
	m := NewCellPointsMap(g)

	for _, p := range []struct{ x, y float64 }{
		{3.2, 4.9}, {15.1, 1.0}, {7.7, 7.7}, {0.1, 19.9},
	} {
		m.Insert(NewLocation(0, 0), p.x, p.y)
	}

	m.Range(func(l Location, cp *CellPoints) {
		if cp.CellX() != l.Column() || cp.CellY() != l.Row() {
			t.Errorf("location %v holds CellPoints keyed to (%d,%d)", l, cp.CellX(), cp.CellY())
		}
	})
}

func TestCellPointsMapInsertRecordsSourceDirection(t *testing.T) {
	g := &GridBase{Rows: 20, Cols: 20, CellSize: 10, OriginX: 0, OriginY: 0}
	m := NewCellPointsMap(g)

	src := NewLocation(5, 5)
	want := NewLocation(5, 6) // directly east of src
	dst, ok := m.Insert(src, 6.5, 5.5)
	if !ok || dst != want {
		t.Fatalf("Insert landed in %v (ok=%v), want %v", dst, ok, want)
	}
	cp := m.Get(dst)
	if cp.Sources()&directionBit(dirE) == 0 {
		t.Errorf("Sources() = %#x, want the dirE bit set (dst lies east of src)", cp.Sources())
	}
}

func TestCellPointsMapMergeSkipsUnburnable(t *testing.T) {
	g := &GridBase{Rows: 10, Cols: 10, CellSize: 1, OriginX: 0, OriginY: 0}
	dst := NewLocation(2, 2)

	rhs := NewCellPointsMap(g)
	rhs.Insert(dst, 2.5, 2.5)

	m := NewCellPointsMap(g)
	m.Merge(map[Location]bool{dst: true}, rhs)
	if m.Len() != 0 {
		t.Errorf("Merge inserted an unburnable destination: Len() = %d, want 0", m.Len())
	}

	m2 := NewCellPointsMap(g)
	m2.Merge(map[Location]bool{}, rhs)
	if m2.Len() != 1 {
		t.Errorf("Merge with no unburnable set dropped an entry: Len() = %d, want 1", m2.Len())
	}
}

func TestCellPointsMapRemoveIf(t *testing.T) {
	g := &GridBase{Rows: 10, Cols: 10, CellSize: 1, OriginX: 0, OriginY: 0}
	m := NewCellPointsMap(g)
	m.Insert(NewLocation(0, 0), 0.5, 0.5)
	m.Insert(NewLocation(0, 0), 5.5, 5.5)
	if m.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", m.Len())
	}

	m.RemoveIf(func(l Location, _ *CellPoints) bool { return l.Row() == 5 })
	if m.Len() != 1 {
		t.Errorf("RemoveIf left Len() = %d, want 1", m.Len())
	}
}

func TestSignHelper(t *testing.T) {
	cases := []struct {
		x    int
		want int
	}{{-5, -1}, {0, 0}, {5, 1}}
	for _, c := range cases {
		if got := sign(c.x); got != c.want {
			t.Errorf("sign(%d) = %d, want %d", c.x, got, c.want)
		}
	}
}
