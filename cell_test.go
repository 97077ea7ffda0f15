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

func TestNewCellMasksOutOfRangeFields(t *testing.T) {
	l := NewLocation(3, 4)
	c := NewCell(l, 200, 400, 70) // slope/aspect/fuel all out of documented range
	if c.Slope() > 127 {
		t.Errorf("Slope() = %d, want <= 127", c.Slope())
	}
	if c.Aspect() > 359 {
		t.Errorf("Aspect() = %d, want <= 359", c.Aspect())
	}
	if c.FuelCode() > 63 {
		t.Errorf("FuelCode() = %d, want <= 63", c.FuelCode())
	}
	if c.Location() != l {
		t.Errorf("Location() = %v, want %v", c.Location(), l)
	}
}

func TestCellSpreadKeySharedByEqualAttributes(t *testing.T) {
	a := NewCell(NewLocation(1, 1), 10, 20, 5)
	b := NewCell(NewLocation(99, 99), 10, 20, 5) // different location, same attributes
	if a.SpreadKey() != b.SpreadKey() {
		t.Errorf("cells with identical (slope,aspect,fuel) produced different spread keys: %#x vs %#x", a.SpreadKey(), b.SpreadKey())
	}
	c := NewCell(NewLocation(1, 1), 11, 20, 5)
	if a.SpreadKey() == c.SpreadKey() {
		t.Error("cells with different slope produced the same spread key")
	}
}

func TestCellPackIncludesLocationAndSpreadKey(t *testing.T) {
	// Locations at the far corner of the largest supported grid must
	// round-trip too: the whole Location has to stay below bit 32 so it
	// never overlaps the spread key.
	for _, loc := range []Location{
		NewLocation(7, 8),
		NewLocation(4095, 4095),
		NewLocation(4095, 0),
		NewLocation(0, 4095),
	} {
		c := NewCell(loc, 127, 359, 63)
		packed := c.Pack()
		if got := Location(packed & 0xFFFFFFFF); got != c.Location() {
			t.Errorf("Pack() lower 32 bits = %v, want Location %v", got, c.Location())
		}
		if got := uint32(packed >> 32); got != c.SpreadKey() {
			t.Errorf("Pack() upper 32 bits = %#x, want spread key %#x", got, c.SpreadKey())
		}
	}
}
