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
	"errors"
	"fmt"
	"sync"

	"seehuhn.de/go/raw/bitstream"
)

// ErrShortData is returned by Decode if the input is too short for the
// image described by the parameters.
var ErrShortData = errors.New("unpack: not enough data")

// Decode unpacks the samples described by p from data.
// The samples are returned in row-major order.
//
// Every row is read by a separate streamer, started at the beginning of
// the row.  If p.Workers is larger than one, rows are decoded concurrently.
func Decode(data []byte, p *Params) ([]uint16, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if need := p.DataSize(); len(data) < need {
		return nil, fmt.Errorf("%w: need %d bytes, got %d", ErrShortData, need, len(data))
	}

	res := make([]uint16, p.Width*p.Height)

	workers := min(max(p.Workers, 1), p.Height)
	rows := make(chan int)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for w := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for row := range rows {
				if errs[w] != nil {
					continue
				}
				out := res[row*p.Width : (row+1)*p.Width]
				errs[w] = decodeRow(data, p, row, out)
			}
		}()
	}
	for row := range p.Height {
		rows <- row
	}
	close(rows)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

func decodeRow(data []byte, p *Params, row int, out []uint16) error {
	start := bitstream.BytePosition{BytePos: p.Offset + row*p.stride()}
	s, err := bitstream.NewStreamerAt(data, p.Order, start)
	if err != nil {
		return fmt.Errorf("row %d: %w", row, err)
	}

	bps := p.BitsPerSample
	perFill := bitstream.MaxGetBits / bps
	for i := 0; i < len(out); {
		k := min(perFill, len(out)-i)
		if err := s.Fill(k * bps); err != nil {
			return fmt.Errorf("row %d: %w", row, err)
		}
		for range k {
			out[i] = uint16(s.GetBitsNoFill(bps))
			i++
		}
	}
	return nil
}
