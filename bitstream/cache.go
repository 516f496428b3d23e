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

const (
	// CacheSize is the capacity of a [Cache], in bits.
	CacheSize = 64

	// MaxGetBits is the largest number of bits which can be read or
	// written by a single operation.
	MaxGetBits = 32
)

// Flow describes at which end of a [Cache] bits enter and leave.
type Flow uint8

const (
	// LeftInRightOut caches are used for LSB-first data.  New bits are
	// placed above the valid bits, and bits are consumed from the low end.
	LeftInRightOut Flow = iota

	// RightInLeftOut caches are used for MSB-first data.  The valid bits
	// are kept at the high end of the register, new bits are placed
	// below them, and bits are consumed from the high end.
	RightInLeftOut
)

// Cache holds up to 64 pending bits.
//
// Bits of the register which are not part of the valid bits are always
// zero.  The zero value is an empty LeftInRightOut cache.
type Cache struct {
	bits      uint64
	fillLevel int
	flow      Flow
}

// NewCache returns an empty cache with the given flow.
func NewCache(flow Flow) Cache {
	return Cache{flow: flow}
}

// Flow returns the direction in which bits move through the cache.
func (c *Cache) Flow() Flow {
	return c.flow
}

// FillLevel returns the number of valid bits in the cache.
func (c *Cache) FillLevel() int {
	return c.fillLevel
}

// Push appends the low nbits bits of v to the cache.
// The caller must ensure that FillLevel()+nbits <= 64.
func (c *Cache) Push(v uint64, nbits int) {
	v &= 1<<nbits - 1 // for nbits == 64 the shift gives 0, and the mask is all ones

	switch c.flow {
	case LeftInRightOut:
		c.bits |= v << c.fillLevel
	default:
		// Shift the new bits so that they end up directly below the
		// valid bits.  For nbits == 0 the shift may be 64, which yields 0.
		gap := CacheSize - c.fillLevel - nbits
		if nbits != 0 {
			c.bits |= v << gap
		}
	}
	c.fillLevel += nbits
}

// Peek returns the next nbits bits, without consuming them.
// nbits must be in the range 0 to 32.
func (c *Cache) Peek(nbits int) uint32 {
	if c.flow == LeftInRightOut {
		return uint32(c.bits & (1<<nbits - 1))
	}
	return uint32(c.bits >> (CacheSize - nbits))
}

// Skip consumes nbits bits.
// The caller must ensure that nbits <= FillLevel().
func (c *Cache) Skip(nbits int) {
	if c.flow == LeftInRightOut {
		c.bits >>= nbits
	} else {
		c.bits <<= nbits
	}
	c.fillLevel -= nbits
}

// Get returns and consumes the next nbits bits.
func (c *Cache) Get(nbits int) uint32 {
	v := c.Peek(nbits)
	c.Skip(nbits)
	return v
}

// DropLastAndPad removes the nbits bits which were pushed last, and then
// marks the cache as full, with zero bits in all vacated positions.
// This is used when a refill discovers that the last bits it pushed were
// not part of the data.
func (c *Cache) DropLastAndPad(nbits int) {
	c.fillLevel -= nbits
	if c.flow == LeftInRightOut {
		c.bits &= 1<<c.fillLevel - 1
	} else {
		c.bits &^= ^uint64(0) >> c.fillLevel
	}
	c.fillLevel = CacheSize
}

// Reset empties the cache.
func (c *Cache) Reset() {
	c.bits = 0
	c.fillLevel = 0
}
