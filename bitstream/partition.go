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
	"io"
)

// PartitionWriter passes data on to an underlying writer in groups of a
// fixed number of bytes.  An incomplete trailing group is held back until
// more data arrives, or until Close pads it with zero bytes.
type PartitionWriter struct {
	w       io.Writer
	size    int
	partial []byte
	closed  bool
}

// NewPartitionWriter returns a writer which emits groups of size bytes.
// The function panics if size is not positive.
func NewPartitionWriter(w io.Writer, size int) *PartitionWriter {
	if size < 1 {
		panic("bitstream: invalid group size")
	}
	return &PartitionWriter{
		w:       w,
		size:    size,
		partial: make([]byte, 0, size),
	}
}

// GroupSize returns the number of bytes in each group.
func (p *PartitionWriter) GroupSize() int {
	return p.size
}

// Write implements the [io.Writer] interface.
func (p *PartitionWriter) Write(buf []byte) (int, error) {
	if p.closed {
		return 0, errWriterClosed
	}

	n := 0
	if len(p.partial) > 0 {
		k := copy(p.partial[len(p.partial):p.size], buf)
		p.partial = p.partial[:len(p.partial)+k]
		n += k
		if len(p.partial) < p.size {
			return n, nil
		}
		if _, err := p.w.Write(p.partial); err != nil {
			return n, err
		}
		p.partial = p.partial[:0]
	}

	rest := buf[n:]
	whole := len(rest) / p.size * p.size
	if whole > 0 {
		k, err := p.w.Write(rest[:whole])
		n += k
		if err != nil {
			return n, err
		}
	}
	p.partial = append(p.partial, rest[whole:]...)
	n += len(rest) - whole

	return n, nil
}

// Close writes out a pending incomplete group, padded with zero bytes.
// The underlying writer is not closed.
func (p *PartitionWriter) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true

	if len(p.partial) == 0 {
		return nil
	}
	for len(p.partial) < p.size {
		p.partial = append(p.partial, 0)
	}
	_, err := p.w.Write(p.partial)
	p.partial = p.partial[:0]
	return err
}

var errWriterClosed = errors.New("bitstream: write after close")
