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
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// recorder keeps track of the individual calls to Write.
type recorder struct {
	calls [][]byte
}

func (r *recorder) Write(p []byte) (int, error) {
	r.calls = append(r.calls, bytes.Clone(p))
	return len(p), nil
}

func TestPartitionWriter(t *testing.T) {
	r := &recorder{}
	p := NewPartitionWriter(r, 4)

	for _, chunk := range [][]byte{{1}, {2, 3}, {4, 5, 6, 7, 8, 9, 10}, {11}} {
		n, err := p.Write(chunk)
		if err != nil {
			t.Fatal(err)
		}
		if n != len(chunk) {
			t.Fatalf("wrote %d of %d bytes", n, len(chunk))
		}
	}
	for i, call := range r.calls {
		if len(call)%4 != 0 {
			t.Errorf("call %d: %d bytes written", i, len(call))
		}
	}

	err := p.Close()
	if err != nil {
		t.Fatal(err)
	}

	var all []byte
	for _, call := range r.calls {
		all = append(all, call...)
	}
	want := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 0}
	if d := cmp.Diff(want, all); d != "" {
		t.Errorf("unexpected output (-want +got):\n%s", d)
	}

	if _, err := p.Write([]byte{1}); err == nil {
		t.Error("write after close succeeded")
	}
	if err := p.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

func TestPartitionWriterGroupSizeOne(t *testing.T) {
	buf := &bytes.Buffer{}
	p := NewPartitionWriter(buf, 1)
	if _, err := p.Write([]byte{1, 2, 3}); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 3 {
		t.Errorf("%d bytes passed through, want 3", buf.Len())
	}
	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 3 {
		t.Errorf("Close added %d bytes", buf.Len()-3)
	}
}

func TestPartitionWriterEmpty(t *testing.T) {
	buf := &bytes.Buffer{}
	p := NewPartitionWriter(buf, 4)
	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("got %d bytes from an empty writer", buf.Len())
	}
}
