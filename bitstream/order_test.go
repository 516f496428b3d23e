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
	"strings"
	"testing"
)

func TestParseOrder(t *testing.T) {
	for o := range numOrders {
		for _, name := range []string{o.String(), strings.ToLower(o.String())} {
			got, err := ParseOrder(name)
			if err != nil {
				t.Errorf("%q: %v", name, err)
			} else if got != o {
				t.Errorf("%q: got %s, want %s", name, got, o)
			}
		}
	}

	_, err := ParseOrder("msb64")
	if err == nil {
		t.Fatal("unknown order accepted")
	}
	if msg := err.Error(); !strings.Contains(msg, "jpeg, lsb, msb, msb16, msb32") {
		t.Errorf("error message %q does not list the valid orders", msg)
	}
}

func TestOrderString(t *testing.T) {
	if s := Order(17).String(); s != "Order(17)" {
		t.Errorf("got %q", s)
	}
}

func TestTraits(t *testing.T) {
	for o := range numOrders {
		tr := o.Traits()
		if tr.MaxProcessBytes < 4 || tr.MaxProcessBytes > maxProcessBytes {
			t.Errorf("%s: MaxProcessBytes=%d", o, tr.MaxProcessBytes)
		}
		if tr.MaxProcessBytes%tr.MinLoadStepByteMultiple != 0 {
			t.Errorf("%s: MaxProcessBytes is not a multiple of the load step", o)
		}
		if tr.SupportsPrefixCodeDecode != (tr.Flow == RightInLeftOut) {
			t.Errorf("%s: prefix code support does not match the cache flow", o)
		}
		if tr.Rebasable == (o == JPEG) {
			t.Errorf("%s: Rebasable=%t", o, tr.Rebasable)
		}
	}
	if MSB16.Traits().MinLoadStepByteMultiple != 2 || MSB32.Traits().MinLoadStepByteMultiple != 4 {
		t.Error("unexpected load step for the word based orders")
	}
}

func TestInvalidOrderPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("no panic for invalid order")
		}
	}()
	numOrders.Traits()
}
