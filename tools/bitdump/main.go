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

// Bitdump prints the values stored in a packed bit stream.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"seehuhn.de/go/raw/bitstream"
	"seehuhn.de/go/raw/tools/internal/buildinfo"
	"seehuhn.de/go/raw/tools/internal/profile"
	"seehuhn.de/go/raw/unpack"
)

type config struct {
	order   bitstream.Order
	bits    int
	count   int
	start   int
	skip    int
	resume  bool
	hex     bool
	width   int
	height  int
	pitch   int
	workers int
}

func main() {
	var prof profile.Config
	prof.RegisterFlags(flag.CommandLine)

	var cfg config
	orderName := flag.String("order", "msb", "bit `order` (lsb, msb, msb16, msb32 or jpeg)")
	flag.IntVar(&cfg.bits, "bits", 8, "number of bits per value (0-32)")
	flag.IntVar(&cfg.count, "n", 16, "number of values to print")
	flag.IntVar(&cfg.start, "start", 0, "start decoding at byte `pos`")
	flag.IntVar(&cfg.skip, "skip", 0, "number of bits to skip after the start position")
	flag.BoolVar(&cfg.resume, "resume", false, "print the restart point after the last value")
	flag.BoolVar(&cfg.hex, "x", false, "print values in hexadecimal")
	flag.IntVar(&cfg.width, "width", 0, "decode packed rows of `w` samples (requires -height)")
	flag.IntVar(&cfg.height, "height", 0, "number of packed rows")
	flag.IntVar(&cfg.pitch, "pitch", 0, "distance between packed rows, in bytes")
	flag.IntVar(&cfg.workers, "workers", 1, "number of rows decoded concurrently")
	version := flag.Bool("version", false, "show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "bitdump \u2014 print the values stored in a packed bit stream\n")
		fmt.Fprintf(os.Stderr, "%s\n\n", buildinfo.Short("bitdump"))
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  bitdump [options] <file>\n\n")
		fmt.Fprintf(os.Stderr, "Use - as the file name to read from standard input.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  bitdump -order msb32 -bits 12 -n 8 image.orf\n")
		fmt.Fprintf(os.Stderr, "  bitdump -order lsb -bits 10 -start 4096 -skip 3 -resume data.bin\n")
		fmt.Fprintf(os.Stderr, "  bitdump -order msb16 -bits 12 -width 4000 -height 3000 -start 8 raw.bin\n")
	}

	flag.Parse()

	if *version {
		fmt.Println(buildinfo.Long("bitdump"))
		return
	}
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	var err error
	cfg.order, err = bitstream.ParseOrder(*orderName)
	if err != nil {
		fmt.Fprintln(os.Stderr, "bitdump:", err)
		os.Exit(1)
	}

	if err := run(&cfg, &prof, flag.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, "bitdump:", err)
		os.Exit(1)
	}
}

func run(cfg *config, prof *profile.Config, fname string) error {
	stop, err := prof.Start()
	if err != nil {
		return err
	}
	defer stop()

	data, err := readInput(fname)
	if err != nil {
		return err
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	if cfg.width > 0 || cfg.height > 0 {
		return dumpRows(out, cfg, data)
	}
	return dumpValues(out, cfg, data)
}

func readInput(fname string) ([]byte, error) {
	if fname == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(fname)
}

func dumpValues(w io.Writer, cfg *config, data []byte) error {
	var s *bitstream.Streamer
	if cfg.order == bitstream.JPEG {
		if cfg.start < 0 || cfg.start > len(data) {
			return fmt.Errorf("start position %d outside the input", cfg.start)
		}
		s = bitstream.NewStreamer(data[cfg.start:], cfg.order)
		if err := s.SkipManyBits(cfg.skip); err != nil {
			return err
		}
	} else {
		var err error
		s, err = bitstream.NewStreamerAt(data, cfg.order, bitstream.BytePosition{
			BytePos:       cfg.start,
			NumBitsToSkip: cfg.skip,
		})
		if err != nil {
			return err
		}
	}

	format := "%d\n"
	if cfg.hex {
		format = "%#x\n"
	}
	for range cfg.count {
		x, err := s.GetBits(cfg.bits)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, format, x)
	}

	if cfg.resume {
		p, err := s.ResumePoint()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "resume: -start %d -skip %d\n", p.BytePos, p.NumBitsToSkip)
	}
	return nil
}

func dumpRows(w io.Writer, cfg *config, data []byte) error {
	p := &unpack.Params{
		Width:         cfg.width,
		Height:        cfg.height,
		BitsPerSample: cfg.bits,
		Pitch:         cfg.pitch,
		Offset:        cfg.start,
		Order:         cfg.order,
		Workers:       cfg.workers,
	}
	samples, err := unpack.Decode(data, p)
	if err != nil {
		return err
	}

	format := "%d"
	if cfg.hex {
		format = "%#x"
	}
	for row := range p.Height {
		fmt.Fprintf(w, "%5d:", row)
		for _, x := range samples[row*p.Width : (row+1)*p.Width] {
			fmt.Fprintf(w, " "+format, x)
		}
		fmt.Fprintln(w)
	}
	return nil
}
