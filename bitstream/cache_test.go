// seehuhn.de/go/raw - decoding of camera raw image data
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package bitstream

import "testing"

func TestCachePushPeek(t *testing.T) {
	tests := []struct {
		flow Flow
		want uint32
	}{
		{LeftInRightOut, 0x5A},
		{RightInLeftOut, 0xA5},
	}
	for _, tc := range tests {
		c := NewCache(tc.flow)
		c.Push(0xA, 4)
		c.Push(0x5, 4)
		if c.FillLevel() != 8 {
			t.Errorf("flow %d: fill level %d, want 8", tc.flow, c.FillLevel())
		}
		if got := c.Peek(8); got != tc.want {
			t.Errorf("flow %d: got %#x, want %#x", tc.flow, got, tc.want)
		}
		if got := c.Peek(0); got != 0 {
			t.Errorf("flow %d: Peek(0) = %#x", tc.flow, got)
		}
	}
}

func TestCacheIgnoresHighBits(t *testing.T) {
	tests := []struct {
		flow Flow
		want uint32
	}{
		{LeftInRightOut, 0x0000_0003},
		{RightInLeftOut, 0xC000_0000},
	}
	for _, tc := range tests {
		c := NewCache(tc.flow)
		c.Push(0xFFFF_FFF3, 2)
		c.Push(0, 30)
		if got := c.Peek(32); got != tc.want {
			t.Errorf("flow %d: got %#x, want %#x", tc.flow, got, tc.want)
		}
	}
}

func TestCacheSkipKeepsVacantBitsZero(t *testing.T) {
	for _, flow := range []Flow{LeftInRightOut, RightInLeftOut} {
		c := NewCache(flow)
		c.Push(0xFFFF_FFFF, 32)
		c.Push(0xFFFF_FFFF, 32)
		for c.FillLevel() >= 5 {
			c.Skip(5)

			var valid uint64
			if flow == LeftInRightOut {
				valid = 1<<c.fillLevel - 1
			} else {
				valid = ^(^uint64(0) >> c.fillLevel)
			}
			if c.bits&^valid != 0 {
				t.Fatalf("flow %d, fill level %d: vacant bits set in %#x",
					flow, c.fillLevel, c.bits)
			}
		}
	}
}

func TestCacheGet(t *testing.T) {
	c := NewCache(RightInLeftOut)
	c.Push(0x1234_5678, 32)
	for _, want := range []uint32{0x1, 0x2, 0x3, 0x4} {
		if got := c.Get(4); got != want {
			t.Errorf("got %#x, want %#x", got, want)
		}
	}
	if got := c.Get(16); got != 0x5678 {
		t.Errorf("got %#x, want 0x5678", got)
	}
	if c.FillLevel() != 0 {
		t.Errorf("fill level %d, want 0", c.FillLevel())
	}
}

func TestDropLastAndPad(t *testing.T) {
	t.Run("RightInLeftOut", func(t *testing.T) {
		c := NewCache(RightInLeftOut)
		c.Push(0x12, 8)
		c.Push(0xFF, 8)
		c.DropLastAndPad(8)
		if c.FillLevel() != CacheSize {
			t.Fatalf("fill level %d, want %d", c.FillLevel(), CacheSize)
		}
		if c.bits != 0x12<<56 {
			t.Errorf("cache contents %#x", c.bits)
		}
	})

	t.Run("LeftInRightOut", func(t *testing.T) {
		c := NewCache(LeftInRightOut)
		c.Push(0x12, 8)
		c.Push(0xFF, 8)
		c.DropLastAndPad(8)
		if c.FillLevel() != CacheSize {
			t.Fatalf("fill level %d, want %d", c.FillLevel(), CacheSize)
		}
		if c.bits != 0x12 {
			t.Errorf("cache contents %#x", c.bits)
		}
	})

	t.Run("empty", func(t *testing.T) {
		for _, flow := range []Flow{LeftInRightOut, RightInLeftOut} {
			c := NewCache(flow)
			c.Push(0xFF, 8)
			c.DropLastAndPad(8)
			if c.bits != 0 || c.FillLevel() != CacheSize {
				t.Errorf("flow %d: bits=%#x, fill level=%d", flow, c.bits, c.FillLevel())
			}
		}
	})
}
