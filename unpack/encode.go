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

package unpack

import (
	"bytes"
	"errors"
	"fmt"

	"seehuhn.de/go/raw/bitstream"
)

// Encode packs samples into rows, using the layout described by p.
// This is the inverse of Decode.  The samples must be given in row-major
// order, and p.Offset must be zero.
//
// The returned slice holds p.Height rows of the given pitch.  Bytes between
// the end of a row and the start of the next row are set to zero.
func Encode(samples []uint16, p *Params) ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.Offset != 0 {
		return nil, errors.New("unpack: Offset must be zero for encoding")
	}
	if len(samples) != p.Width*p.Height {
		return nil, fmt.Errorf("unpack: got %d samples, want %d",
			len(samples), p.Width*p.Height)
	}

	stride := p.stride()
	rowLen := p.paddedRowBytes()
	res := make([]byte, p.Height*stride)

	limit := uint16(1<<p.BitsPerSample - 1)
	buf := &bytes.Buffer{}
	for row := range p.Height {
		buf.Reset()
		v := bitstream.NewVacuumer(buf, p.Order)
		for i, x := range samples[row*p.Width : (row+1)*p.Width] {
			if x > limit {
				return nil, fmt.Errorf("unpack: sample %d in row %d exceeds %d bits",
					i, row, p.BitsPerSample)
			}
			if err := v.Put(uint32(x), p.BitsPerSample); err != nil {
				return nil, err
			}
		}
		if err := v.Close(); err != nil {
			return nil, err
		}

		// The vacuumer pads its output to whole 32 bit words.  Only the
		// padding bytes are cut off here.
		copy(res[row*stride:row*stride+rowLen], buf.Bytes())
	}
	return res, nil
}
