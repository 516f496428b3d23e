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

// Package bitstream reads and writes the bit-packed payloads found in
// camera raw files.
//
// A [Streamer] extracts integers of 0 to 32 bits from a byte slice, and a
// [Vacuumer] packs such integers into bytes.  Both are parameterised by an
// [Order], which describes how bits are arranged within the bytes:
//
//   - [LSB]: little-endian 32-bit words, bits are taken from the low end.
//   - [MSB]: big-endian 32-bit words, bits are taken from the high end.
//   - [MSB16]: little-endian 16-bit words, bits are taken from the high end.
//   - [MSB32]: little-endian 32-bit words, bits are taken from the high end.
//   - [JPEG]: like MSB, but a 0xFF data byte is followed by a 0x00 stuffing
//     byte, and 0xFF followed by any other byte is a marker which ends the
//     entropy coded data.
//
// Decoding can be split into independent pieces: the state of a streamer
// can be converted into a [BytePosition], and a new streamer created with
// [NewStreamerAt] continues with exactly the same bits.  Different
// streamers may read the same input slice concurrently, but a single
// streamer must not be shared between goroutines.
package bitstream
