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
	"encoding/binary"
	"io"
)

// chunkBits is the number of bits the vacuumer writes at a time.
const chunkBits = 32

// Vacuumer packs integers of up to 32 bits into bytes, in a form which a
// [Streamer] with the same bit order reads back.
//
// Data is written in chunks of four bytes, as soon as enough bits are
// available.  Close must be called to write the final, zero-padded chunk.
type Vacuumer struct {
	order     Order
	wordBytes int
	cache     Cache
	out       *PartitionWriter

	chunk   [4]byte
	stuffed [8]byte

	written int
	err     error
	closed  bool
}

// NewVacuumer returns a vacuumer which writes to w using the given bit
// order.
func NewVacuumer(w io.Writer, order Order) *Vacuumer {
	traits := order.Traits()

	// Flush only completes the current word.  For MSB16 the partition
	// writer then pads the output to a whole 32 bit chunk.
	groupSize := chunkBits / 8
	if order == JPEG {
		// stuffing bytes make the chunk length vary
		groupSize = 1
	}

	return &Vacuumer{
		order:     order,
		wordBytes: traits.WordBytes,
		cache:     NewCache(traits.Flow),
		out:       NewPartitionWriter(w, groupSize),
	}
}

// Put appends the low nbits bits of value to the stream, where nbits is
// between 0 and 32.  Higher bits of value are ignored.
// Put(x, 0) has no effect.
func (v *Vacuumer) Put(value uint32, nbits int) error {
	if v.err != nil {
		return v.err
	}
	if v.closed {
		return errWriterClosed
	}
	if err := checkWidth("put", v.written, nbits); err != nil {
		return err
	}

	v.cache.Push(uint64(value), nbits)
	if v.cache.fillLevel >= chunkBits {
		for range chunkBits / (8 * v.wordBytes) {
			v.drainWord()
		}
	}
	return v.err
}

// drainWord writes the next word from the cache.
func (v *Vacuumer) drainWord() {
	if v.err != nil {
		return
	}

	switch v.order {
	case LSB, MSB32:
		binary.LittleEndian.PutUint32(v.chunk[:], v.cache.Get(32))
	case MSB:
		binary.BigEndian.PutUint32(v.chunk[:], v.cache.Get(32))
	case MSB16:
		binary.LittleEndian.PutUint16(v.chunk[:], uint16(v.cache.Get(16)))
	case JPEG:
		binary.BigEndian.PutUint32(v.chunk[:], v.cache.Get(32))
		v.writeStuffed()
		return
	}

	v.write(v.chunk[:v.wordBytes])
}

func (v *Vacuumer) write(buf []byte) {
	var n int
	n, v.err = v.out.Write(buf)
	v.written += n
}

// writeStuffed writes the current chunk, inserting a 0x00 after every 0xFF.
func (v *Vacuumer) writeStuffed() {
	buf := v.stuffed[:0]
	for _, b := range v.chunk {
		buf = append(buf, b)
		if b == 0xFF {
			buf = append(buf, 0x00)
		}
	}
	v.write(buf)
}

// Flush pads the pending bits with zeros to a complete word and writes
// the pending words.  If no bits are pending, Flush does nothing.
func (v *Vacuumer) Flush() error {
	if v.err != nil {
		return v.err
	}
	wordBits := 8 * v.wordBytes
	if r := v.cache.fillLevel % wordBits; r != 0 {
		v.cache.Push(0, wordBits-r)
	}
	for v.cache.fillLevel > 0 && v.err == nil {
		v.drainWord()
	}
	return v.err
}

// BytesWritten returns the number of bytes passed to the output so far.
// After Close, this includes the padding added to the last chunk.
func (v *Vacuumer) BytesWritten() int {
	return v.written
}

// Close flushes the pending bits.  The underlying writer is not closed.
func (v *Vacuumer) Close() error {
	if v.closed {
		return v.err
	}
	err := v.Flush()
	v.closed = true
	if err != nil {
		return err
	}
	v.err = v.out.Close()
	if v.err == nil {
		v.written = roundUp(v.written, v.out.GroupSize())
	}
	return v.err
}
