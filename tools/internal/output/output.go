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

// Package output opens the destination for binary tool output.
package output

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// ErrTerminal is returned by Open when binary data would be written to a
// terminal.
var ErrTerminal = errors.New("refusing to write binary data to a terminal (use -f to override)")

// Open opens the output file for writing.  If name is "-" or empty, the
// standard output is used.  Existing files are only overwritten if force is
// set, and unless force is set, binary output to a terminal is refused.
//
// The returned closer is nil for the standard output.
func Open(name string, force bool) (io.Writer, io.Closer, error) {
	if name == "" || name == "-" {
		if !force && term.IsTerminal(int(os.Stdout.Fd())) {
			return nil, nil, ErrTerminal
		}
		return os.Stdout, nil, nil
	}

	flags := os.O_WRONLY | os.O_CREATE
	if force {
		flags |= os.O_TRUNC
	} else {
		flags |= os.O_EXCL
	}
	file, err := os.OpenFile(name, flags, 0666)
	if err != nil {
		if os.IsExist(err) {
			return nil, nil, fmt.Errorf("file %s already exists (use -f to overwrite)", name)
		}
		return nil, nil, err
	}
	return file, file, nil
}
