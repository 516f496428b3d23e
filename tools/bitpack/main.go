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

// Bitpack writes a list of integers as a packed bit stream.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"seehuhn.de/go/raw/bitstream"
	"seehuhn.de/go/raw/tools/internal/buildinfo"
	"seehuhn.de/go/raw/tools/internal/output"
	"seehuhn.de/go/raw/tools/internal/profile"
)

func main() {
	var prof profile.Config
	prof.RegisterFlags(flag.CommandLine)

	orderName := flag.String("order", "msb", "bit `order` (lsb, msb, msb16, msb32 or jpeg)")
	bits := flag.Int("bits", 8, "number of bits for values given without a width")
	outName := flag.String("o", "-", "write output to `file`")
	force := flag.Bool("f", false, "overwrite the output file, or write to a terminal")
	version := flag.Bool("version", false, "show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "bitpack \u2014 write integers as a packed bit stream\n")
		fmt.Fprintf(os.Stderr, "%s\n\n", buildinfo.Short("bitpack"))
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  bitpack [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "The input contains whitespace separated values of the form\n")
		fmt.Fprintf(os.Stderr, "value:width or value.  Lines starting with # are ignored.\n")
		fmt.Fprintf(os.Stderr, "Without a file name, the values are read from standard input.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  echo 0x1:4 0x23:8 0x45678:20 | bitpack -order msb32 -o out.bin\n")
	}

	flag.Parse()

	if *version {
		fmt.Println(buildinfo.Long("bitpack"))
		return
	}
	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(1)
	}

	order, err := bitstream.ParseOrder(*orderName)
	if err != nil {
		fmt.Fprintln(os.Stderr, "bitpack:", err)
		os.Exit(1)
	}

	err = run(&prof, flag.Arg(0), *outName, order, *bits, *force)
	if err != nil {
		fmt.Fprintln(os.Stderr, "bitpack:", err)
		os.Exit(1)
	}
}

func run(prof *profile.Config, inName, outName string, order bitstream.Order, bits int, force bool) error {
	stop, err := prof.Start()
	if err != nil {
		return err
	}
	defer stop()

	var in io.Reader = os.Stdin
	if inName != "" && inName != "-" {
		f, err := os.Open(inName)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	w, c, err := output.Open(outName, force)
	if err != nil {
		return err
	}
	return writePacked(w, c, in, order, bits)
}

// writePacked packs the values from in and writes them to w.  If c is not
// nil, it is closed afterwards and its error is reported.
func writePacked(w io.Writer, c io.Closer, in io.Reader, order bitstream.Order, bits int) (err error) {
	if c != nil {
		defer func() {
			closeErr := c.Close()
			if err == nil {
				err = closeErr
			}
		}()
	}

	buf := bufio.NewWriter(w)
	v := bitstream.NewVacuumer(buf, order)
	err = pack(v, in, bits)
	if err != nil {
		return err
	}
	if err := v.Close(); err != nil {
		return err
	}
	return buf.Flush()
}

func pack(v *bitstream.Vacuumer, r io.Reader, defaultBits int) error {
	lines := bufio.NewScanner(r)
	lineNo := 0
	for lines.Scan() {
		lineNo++
		line := strings.TrimSpace(lines.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		for _, field := range strings.Fields(line) {
			value, nbits, err := parseField(field, defaultBits)
			if err != nil {
				return fmt.Errorf("line %d: %w", lineNo, err)
			}
			if err := v.Put(value, nbits); err != nil {
				return fmt.Errorf("line %d: %w", lineNo, err)
			}
		}
	}
	return lines.Err()
}

var errMalformed = errors.New("malformed value")

// parseField parses a value of the form "value:width" or "value".
func parseField(field string, defaultBits int) (uint32, int, error) {
	valueStr, widthStr, hasWidth := strings.Cut(field, ":")

	nbits := defaultBits
	if hasWidth {
		n, err := strconv.Atoi(widthStr)
		if err != nil {
			return 0, 0, fmt.Errorf("%w %q", errMalformed, field)
		}
		nbits = n
	}
	if nbits < 0 || nbits > bitstream.MaxGetBits {
		return 0, 0, fmt.Errorf("invalid width in %q", field)
	}

	value, err := strconv.ParseUint(valueStr, 0, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("%w %q", errMalformed, field)
	}
	if nbits < 32 && value >= 1<<nbits {
		return 0, 0, fmt.Errorf("value %q does not fit into %d bits", valueStr, nbits)
	}
	return uint32(value), nbits, nil
}
