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

package main

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/raw/bitstream"
)

func TestDumpValues(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		cfg  config
		want string
	}{
		{
			name: "MSB with resume",
			data: []byte{0x10, 0x20, 0x30, 0x40, 0x50},
			cfg:  config{order: bitstream.MSB, bits: 8, count: 2, start: 1, resume: true},
			want: "32\n48\nresume: -start 3 -skip 0\n",
		},
		{
			name: "LSB with resume",
			data: []byte{0x21, 0x43, 0x65, 0x87, 0, 0, 0, 0},
			cfg:  config{order: bitstream.LSB, bits: 4, count: 3, resume: true, hex: true},
			want: "0x1\n0x2\n0x3\nresume: -start 1 -skip 4\n",
		},
		{
			name: "JPEG with start and skip",
			data: []byte{0x00, 0x12, 0x34, 0xFF, 0x00, 0x56},
			cfg:  config{order: bitstream.JPEG, bits: 8, count: 2, start: 1, skip: 4, hex: true},
			want: "0x23\n0x4f\n",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			err := dumpValues(buf, &tc.cfg, tc.data)
			if err != nil {
				t.Fatal(err)
			}
			if d := cmp.Diff(tc.want, buf.String()); d != "" {
				t.Errorf("unexpected output (-want +got):\n%s", d)
			}
		})
	}
}

func TestDumpValuesErrors(t *testing.T) {
	data := []byte{1, 2, 3, 4}
	tests := []struct {
		name string
		cfg  config
	}{
		{"JPEG resume", config{order: bitstream.JPEG, bits: 8, count: 1, resume: true}},
		{"JPEG start outside input", config{order: bitstream.JPEG, bits: 8, count: 1, start: 5}},
		{"misaligned MSB32 start", config{order: bitstream.MSB32, bits: 8, count: 1, start: 2}},
		{"invalid width", config{order: bitstream.MSB, bits: 33, count: 1}},
	}
	for _, tc := range tests {
		err := dumpValues(&bytes.Buffer{}, &tc.cfg, data)
		if err == nil {
			t.Errorf("%s: no error", tc.name)
		}
	}
}

func TestDumpRows(t *testing.T) {
	cfg := &config{order: bitstream.MSB, bits: 12, width: 2, height: 1}
	buf := &bytes.Buffer{}
	err := dumpRows(buf, cfg, []byte{0xAB, 0xCD, 0xEF})
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff("    0: 2748 3567\n", buf.String()); d != "" {
		t.Errorf("unexpected output (-want +got):\n%s", d)
	}
}
