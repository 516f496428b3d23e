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

import "fmt"

// Streamer reads integers of up to 32 bits from a byte slice.
//
// The streamer never modifies the input slice.  Past the end of the input,
// the streamer reads zero bytes for a little while, so that the last bits
// of the data can be retrieved without special care.  Only when the read
// position moves further than 2*MaxProcessBytes beyond the end of the
// input, ErrOutOfBounds is returned.
type Streamer struct {
	order  Order
	traits Traits
	cache  Cache

	input []byte
	pos   int // number of input bytes consumed so far

	tmp [maxProcessBytes]byte
}

// NewStreamer returns a streamer which reads input using the given bit order.
func NewStreamer(input []byte, order Order) *Streamer {
	traits := order.Traits()
	return &Streamer{
		order:  order,
		traits: traits,
		cache:  NewCache(traits.Flow),
		input:  input,
	}
}

// Order returns the bit order used by the streamer.
func (s *Streamer) Order() Order {
	return s.order
}

// Fill makes sure that at least nbits bits are held in the cache,
// where nbits is between 0 and 32.
// After a successful call, up to nbits bits can be obtained using
// GetBitsNoFill, PeekBitsNoFill and SkipBitsNoFill.
func (s *Streamer) Fill(nbits int) error {
	if err := checkWidth("fill", s.pos, nbits); err != nil {
		return err
	}
	for s.cache.fillLevel < nbits {
		buf, err := s.window()
		if err != nil {
			return err
		}
		s.pos += s.refill(buf)
	}
	return nil
}

// window returns the next MaxProcessBytes bytes of input.  Near the end of
// the input, the bytes are copied into a zero-padded scratch buffer.
func (s *Streamer) window() ([]byte, error) {
	n := s.traits.MaxProcessBytes
	if s.pos+n <= len(s.input) {
		return s.input[s.pos : s.pos+n], nil
	}

	if s.pos > len(s.input)+2*n {
		return nil, &Error{Op: "fill", Pos: s.pos, Err: ErrOutOfBounds}
	}

	buf := s.tmp[:n]
	clear(buf)
	if s.pos < len(s.input) {
		copy(buf, s.input[s.pos:])
	}
	return buf, nil
}

// GetBits reads and consumes nbits bits, where nbits is between 0 and 32.
func (s *Streamer) GetBits(nbits int) (uint32, error) {
	if err := s.Fill(nbits); err != nil {
		return 0, err
	}
	return s.cache.Get(nbits), nil
}

// GetBitsNoFill reads and consumes nbits bits, which must already be held
// in the cache.  The precondition is not checked unless the package is
// built with the "bitsdebug" tag.
func (s *Streamer) GetBitsNoFill(nbits int) uint32 {
	if debugChecks {
		s.mustHave(nbits)
	}
	return s.cache.Get(nbits)
}

// PeekBits returns the next nbits bits without consuming them.
func (s *Streamer) PeekBits(nbits int) (uint32, error) {
	if err := s.Fill(nbits); err != nil {
		return 0, err
	}
	return s.cache.Peek(nbits), nil
}

// PeekBitsNoFill returns the next nbits bits without consuming them.
// The bits must already be held in the cache.
func (s *Streamer) PeekBitsNoFill(nbits int) uint32 {
	if debugChecks {
		s.mustHave(nbits)
	}
	return s.cache.Peek(nbits)
}

// SkipBits discards nbits bits, where nbits is between 0 and 32.
func (s *Streamer) SkipBits(nbits int) error {
	if err := s.Fill(nbits); err != nil {
		return err
	}
	s.cache.Skip(nbits)
	return nil
}

// SkipBitsNoFill discards nbits bits, which must already be held in the
// cache.
func (s *Streamer) SkipBitsNoFill(nbits int) {
	if debugChecks {
		s.mustHave(nbits)
	}
	s.cache.Skip(nbits)
}

// SkipManyBits discards an arbitrary, non-negative number of bits.
//
// For the word based orders, whole refill units are skipped by moving the
// input position directly, without loading the bits into the cache.
func (s *Streamer) SkipManyBits(nbits int) error {
	if nbits < 0 {
		return &Error{Op: "skip", Pos: s.pos, Err: ErrInvalidBitWidth}
	}

	if s.order != JPEG && nbits > s.cache.fillLevel+MaxGetBits {
		// Every refill of these orders consumes exactly MaxProcessBytes
		// bytes, so dropping the cache and advancing by whole units keeps
		// the streamer in step with the data.
		nbits -= s.cache.fillLevel
		s.cache.Reset()

		unitBits := 8 * s.traits.MaxProcessBytes
		units := nbits / unitBits
		s.pos += units * s.traits.MaxProcessBytes
		nbits -= units * unitBits
		if s.pos > len(s.input)+2*s.traits.MaxProcessBytes {
			return &Error{Op: "skip", Pos: s.pos, Err: ErrOutOfBounds}
		}
	}

	for nbits >= MaxGetBits {
		if err := s.SkipBits(MaxGetBits); err != nil {
			return err
		}
		nbits -= MaxGetBits
	}
	return s.SkipBits(nbits)
}

// SkipBytes discards n whole bytes worth of bits.
func (s *Streamer) SkipBytes(n int) error {
	return s.SkipManyBits(8 * n)
}

// InputPosition returns the number of input bytes consumed by refills.
// Some of the corresponding bits may still be held in the cache.
func (s *Streamer) InputPosition() int {
	return s.pos
}

// FillLevel returns the number of bits held in the cache.
func (s *Streamer) FillLevel() int {
	return s.cache.fillLevel
}

// BitPosition returns the current state of the streamer, in a form which
// can be converted into a BytePosition.
func (s *Streamer) BitPosition() BitPosition {
	return BitPosition{Pos: s.pos, FillLevel: s.cache.fillLevel}
}

// StreamPosition returns the position of the first input byte which has
// not been consumed by the caller.
//
// For the JPEG order this is the input position.  Once a marker has been
// reached, it points at the 0xFF byte which starts the marker.
func (s *Streamer) StreamPosition() int {
	if s.order == JPEG {
		return s.pos
	}
	return s.pos - s.cache.fillLevel/8
}

func (s *Streamer) mustHave(nbits int) {
	if nbits < 0 || nbits > MaxGetBits || nbits > s.cache.fillLevel {
		panic(fmt.Sprintf("bitstream: %d bits requested, %d cached", nbits, s.cache.fillLevel))
	}
}
