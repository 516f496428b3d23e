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

import (
	"errors"
	"fmt"
)

// BitPosition is the state of a streamer: the number of input bytes
// consumed by refills, and the number of bits still held in the cache.
type BitPosition struct {
	Pos       int
	FillLevel int
}

// BytePosition describes a point in a bit stream in a form which does not
// depend on the cache: a new streamer started at byte BytePos, after
// skipping NumBitsToSkip bits, continues with the same bits as the
// original streamer.
type BytePosition struct {
	BytePos       int
	NumBitsToSkip int
}

// ToBytePosition converts the state of a streamer into a restart point.
//
// The bits in the cache are mapped back to the input bytes they were
// loaded from.  Since the word based orders swap bytes within a word, the
// restart point is aligned to MinLoadStepByteMultiple, so that
// NumBitsToSkip is less than 8*MinLoadStepByteMultiple.
func ToBytePosition(o Order, p BitPosition) (BytePosition, error) {
	traits := o.Traits()
	if !traits.Rebasable {
		return BytePosition{}, &Error{Op: "rebase", Pos: p.Pos,
			Err: fmt.Errorf("%w: %s data cannot be restarted", ErrMisalignedResume, o)}
	}

	step := traits.MinLoadStepByteMultiple
	if p.Pos < 0 || p.Pos%step != 0 {
		return BytePosition{}, &Error{Op: "rebase", Pos: p.Pos, Err: ErrMisalignedResume}
	}
	if p.FillLevel < 0 || p.FillLevel > CacheSize {
		return BytePosition{}, &Error{Op: "rebase", Pos: p.Pos,
			Err: fmt.Errorf("%w: invalid fill level %d", ErrMisalignedResume, p.FillLevel)}
	}

	backtrack := roundUp((p.FillLevel+7)/8, step)
	if backtrack > p.Pos {
		return BytePosition{}, &Error{Op: "rebase", Pos: p.Pos,
			Err: errors.New("fill level exceeds the consumed input")}
	}

	return BytePosition{
		BytePos:       p.Pos - backtrack,
		NumBitsToSkip: 8*backtrack - p.FillLevel,
	}, nil
}

// FromBytePosition converts a restart point into the state a streamer
// reaches after starting at b.BytePos and skipping b.NumBitsToSkip bits.
// It is the inverse of ToBytePosition.
func FromBytePosition(o Order, b BytePosition) (BitPosition, error) {
	if err := checkResume(o, b); err != nil {
		return BitPosition{}, err
	}
	if b.NumBitsToSkip == 0 {
		return BitPosition{Pos: b.BytePos}, nil
	}

	// A single refill brings in MaxProcessBytes bytes.
	n := o.Traits().MaxProcessBytes
	return BitPosition{
		Pos:       b.BytePos + n,
		FillLevel: 8*n - b.NumBitsToSkip,
	}, nil
}

// NewStreamerAt returns a streamer which continues decoding input from
// the restart point b.
func NewStreamerAt(input []byte, o Order, b BytePosition) (*Streamer, error) {
	if err := checkResume(o, b); err != nil {
		return nil, err
	}
	if b.BytePos > len(input) {
		return nil, &Error{Op: "rebase", Pos: b.BytePos, Err: ErrOutOfBounds}
	}

	s := NewStreamer(input[b.BytePos:], o)
	if b.NumBitsToSkip != 0 {
		if err := s.SkipBits(b.NumBitsToSkip); err != nil {
			return nil, err
		}
	}
	// Positions reported by the new streamer are relative to the full input.
	s.input = input
	s.pos += b.BytePos
	return s, nil
}

// ResumePoint returns a restart point for the current state of s.
func (s *Streamer) ResumePoint() (BytePosition, error) {
	return ToBytePosition(s.order, s.BitPosition())
}

func checkResume(o Order, b BytePosition) error {
	traits := o.Traits()
	if !traits.Rebasable {
		return &Error{Op: "rebase", Pos: b.BytePos,
			Err: fmt.Errorf("%w: %s data cannot be restarted", ErrMisalignedResume, o)}
	}
	step := traits.MinLoadStepByteMultiple
	if b.BytePos < 0 || b.BytePos%step != 0 ||
		b.NumBitsToSkip < 0 || b.NumBitsToSkip >= 8*step {
		return &Error{Op: "rebase", Pos: b.BytePos, Err: ErrMisalignedResume}
	}
	return nil
}

func roundUp(x, step int) int {
	return (x + step - 1) / step * step
}
