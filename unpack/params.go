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

// Package unpack converts between rows of packed, uncompressed sensor
// samples and arrays of 16 bit sample values.
//
// Many camera raw formats store the sensor data without compression, with
// each sample occupying a fixed number of bits.  Rows start at a fixed
// distance (the pitch) from each other, and the bits within a row are
// packed using one of the bit orders from the bitstream package.
package unpack

import (
	"errors"
	"fmt"

	"seehuhn.de/go/raw/bitstream"
)

const maxDimension = 1 << 16

// Params describes the layout of packed sample data.
type Params struct {
	// Width is the number of samples in each row.
	// Valid range: 1 to 65536.
	Width int

	// Height is the number of rows.
	// Valid range: 1 to 65536.
	Height int

	// BitsPerSample is the number of bits used for each sample.
	// Valid range: 1 to 16.
	BitsPerSample int

	// Pitch is the distance between the starts of consecutive rows, in
	// bytes.  The value 0 selects tightly packed rows, rounded up to the
	// load step of the bit order.
	Pitch int

	// Offset is the position of the first row within the data.
	Offset int

	// Order is the bit order used within each row.
	// The JPEG order is not supported, since stuffing bytes make the row
	// length depend on the contents.
	Order bitstream.Order

	// Workers is the number of rows decoded concurrently.
	// The value 0 is treated as 1.
	Workers int
}

// Validate checks that the parameters describe a valid layout.
func (p *Params) Validate() error {
	if p.Width < 1 || p.Width > maxDimension {
		return fmt.Errorf("invalid Width %d", p.Width)
	}
	if p.Height < 1 || p.Height > maxDimension {
		return fmt.Errorf("invalid Height %d", p.Height)
	}
	if p.BitsPerSample < 1 || p.BitsPerSample > 16 {
		return fmt.Errorf("BitsPerSample must be between 1 and 16, got %d", p.BitsPerSample)
	}

	if !p.Order.IsValid() {
		return fmt.Errorf("invalid bit order %s", p.Order)
	}
	if p.Order == bitstream.JPEG {
		return errors.New("JPEG bit order is not supported for packed rows")
	}
	step := p.Order.Traits().MinLoadStepByteMultiple

	if p.Pitch < 0 {
		return fmt.Errorf("invalid Pitch %d", p.Pitch)
	} else if p.Pitch > 0 {
		if p.Pitch < p.rowBytes() {
			return fmt.Errorf("Pitch %d is smaller than the row size %d", p.Pitch, p.rowBytes())
		}
		if p.Pitch%step != 0 {
			return fmt.Errorf("Pitch %d is not a multiple of %d for %s data", p.Pitch, step, p.Order)
		}
	}

	if p.Offset < 0 || p.Offset%step != 0 {
		return fmt.Errorf("invalid Offset %d for %s data", p.Offset, p.Order)
	}
	if p.Workers < 0 {
		return fmt.Errorf("invalid number of workers %d", p.Workers)
	}

	return nil
}

// rowBytes returns the number of bytes needed to hold the samples of one row.
func (p *Params) rowBytes() int {
	return (p.Width*p.BitsPerSample + 7) / 8
}

// paddedRowBytes returns the number of bytes occupied by one row, rounded
// up to the load step of the bit order.  For the word based orders, the
// last bits of a row may be stored at the end of the final word.
func (p *Params) paddedRowBytes() int {
	step := p.Order.Traits().MinLoadStepByteMultiple
	return (p.rowBytes() + step - 1) / step * step
}

// stride returns the distance between rows, in bytes.
func (p *Params) stride() int {
	if p.Pitch > 0 {
		return p.Pitch
	}
	return p.paddedRowBytes()
}

// DataSize returns the minimum number of input bytes needed to decode an
// image with the given parameters.
func (p *Params) DataSize() int {
	return p.Offset + (p.Height-1)*p.stride() + p.paddedRowBytes()
}
