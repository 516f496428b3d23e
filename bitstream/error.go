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
	"strconv"
)

var (
	// ErrOutOfBounds indicates that bits were requested beyond the end of
	// the input, past the zero padding which is tolerated after the data.
	ErrOutOfBounds = errors.New("read past end of input")

	// ErrInvalidBitWidth indicates that a single get or put operation
	// asked for fewer than 0 or more than 32 bits.
	ErrInvalidBitWidth = errors.New("invalid bit width")

	// ErrMisalignedResume indicates that a stream position cannot be used
	// to restart decoding, because it is not a multiple of the load step
	// of the bit order.
	ErrMisalignedResume = errors.New("misaligned stream position")
)

// Error describes a failed bit stream operation.
type Error struct {
	// Op is the name of the operation, for example "fill" or "put".
	Op string

	// Pos is the byte position in the input at which the error occurred.
	Pos int

	Err error
}

func (err *Error) Error() string {
	msg := "bitstream: " + err.Op
	if err.Err != nil {
		msg += ": " + err.Err.Error()
	}
	return msg + " (at byte " + strconv.Itoa(err.Pos) + ")"
}

func (err *Error) Unwrap() error {
	return err.Err
}

func checkWidth(op string, pos, nbits int) error {
	if nbits < 0 || nbits > MaxGetBits {
		return &Error{Op: op, Pos: pos, Err: ErrInvalidBitWidth}
	}
	return nil
}
