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

import "encoding/binary"

// refill moves bits from buf, which holds exactly MaxProcessBytes bytes,
// into the cache.  The return value is the number of bytes consumed.
// The cache must hold at most 32 bits on entry.
func (s *Streamer) refill(buf []byte) int {
	switch s.order {
	case LSB:
		s.cache.Push(uint64(binary.LittleEndian.Uint32(buf)), 32)
		return 4
	case MSB:
		s.cache.Push(uint64(binary.BigEndian.Uint32(buf)), 32)
		return 4
	case MSB16:
		s.cache.Push(uint64(binary.LittleEndian.Uint16(buf)), 16)
		s.cache.Push(uint64(binary.LittleEndian.Uint16(buf[2:])), 16)
		return 4
	case MSB32:
		s.cache.Push(uint64(binary.LittleEndian.Uint32(buf)), 32)
		return 4
	default:
		return refillJPEG(&s.cache, buf)
	}
}

// refillJPEG pushes up to four data bytes from buf into c, removing
// stuffing bytes.  If a marker is found, the cache is padded with zeros
// and the returned count stops at the 0xFF byte which starts the marker.
// The returned count may be zero.
func refillJPEG(c *Cache, buf []byte) int {
	_ = buf[7]

	// Most blocks of four bytes contain no 0xFF at all.
	if buf[0] != 0xFF && buf[1] != 0xFF && buf[2] != 0xFF && buf[3] != 0xFF {
		c.Push(uint64(binary.BigEndian.Uint32(buf)), 32)
		return 4
	}

	p := 0
	for range 4 {
		b := buf[p]
		c.Push(uint64(b), 8)
		if b != 0xFF {
			p++
			continue
		}

		if buf[p+1] == 0x00 {
			// 0xFF 0x00 encodes a 0xFF data byte
			p += 2
			continue
		}

		// 0xFF followed by anything else is a marker.  The 0xFF was not
		// data, and there is no more data after it.
		c.DropLastAndPad(8)
		break
	}
	return p
}
