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
	"fmt"
	"slices"
	"strings"

	"golang.org/x/exp/maps"
)

// Order describes how bits are packed into bytes.
type Order uint8

// These are the supported bit orders.
const (
	LSB Order = iota
	MSB
	MSB16
	MSB32
	JPEG

	numOrders
)

// Traits collects the constant properties of a bit order.
type Traits struct {
	// MaxProcessBytes is the largest number of input bytes a single refill
	// may consume.
	MaxProcessBytes int

	// MinLoadStepByteMultiple is the alignment, in bytes, at which a new
	// streamer must be started in order to see the same bits as a
	// streamer which has read the data from the beginning.
	MinLoadStepByteMultiple int

	// SupportsPrefixCodeDecode indicates whether bits come out of the
	// stream most significant bit first, so that a prefix code decoder
	// can look ahead using PeekBits.
	SupportsPrefixCodeDecode bool

	// Flow is the cache direction used for this order.
	Flow Flow

	// WordBytes is the size of the words in which data is stored.
	WordBytes int

	// Rebasable indicates whether stream positions can be converted to
	// byte positions.  This is not possible if the input contains
	// stuffing bytes.
	Rebasable bool
}

var traitsTable = [numOrders]Traits{
	LSB: {
		MaxProcessBytes:         4,
		MinLoadStepByteMultiple: 1,
		Flow:                    LeftInRightOut,
		WordBytes:               4,
		Rebasable:               true,
	},
	MSB: {
		MaxProcessBytes:          4,
		MinLoadStepByteMultiple:  1,
		SupportsPrefixCodeDecode: true,
		Flow:                     RightInLeftOut,
		WordBytes:                4,
		Rebasable:                true,
	},
	MSB16: {
		MaxProcessBytes:          4,
		MinLoadStepByteMultiple:  2,
		SupportsPrefixCodeDecode: true,
		Flow:                     RightInLeftOut,
		WordBytes:                2,
		Rebasable:                true,
	},
	MSB32: {
		MaxProcessBytes:          4,
		MinLoadStepByteMultiple:  4,
		SupportsPrefixCodeDecode: true,
		Flow:                     RightInLeftOut,
		WordBytes:                4,
		Rebasable:                true,
	},
	JPEG: {
		// Each of the four data bytes may be followed by a stuffing byte.
		MaxProcessBytes:          8,
		MinLoadStepByteMultiple:  1,
		SupportsPrefixCodeDecode: true,
		Flow:                     RightInLeftOut,
		WordBytes:                4,
	},
}

// maxProcessBytes is the maximum of Traits.MaxProcessBytes over all orders.
const maxProcessBytes = 8

// Traits returns the properties of the bit order.
// The function panics if o is not a valid order.
func (o Order) Traits() Traits {
	if !o.IsValid() {
		panic("bitstream: invalid bit order " + o.String())
	}
	return traitsTable[o]
}

// IsValid reports whether o is one of the defined bit orders.
func (o Order) IsValid() bool {
	return o < numOrders
}

var orderNames = map[string]Order{
	"lsb":   LSB,
	"msb":   MSB,
	"msb16": MSB16,
	"msb32": MSB32,
	"jpeg":  JPEG,
}

func (o Order) String() string {
	switch o {
	case LSB:
		return "LSB"
	case MSB:
		return "MSB"
	case MSB16:
		return "MSB16"
	case MSB32:
		return "MSB32"
	case JPEG:
		return "JPEG"
	default:
		return fmt.Sprintf("Order(%d)", uint8(o))
	}
}

// ParseOrder converts a name like "msb16" into a bit order.
// Case is ignored.
func ParseOrder(name string) (Order, error) {
	o, ok := orderNames[strings.ToLower(name)]
	if !ok {
		valid := maps.Keys(orderNames)
		slices.Sort(valid)
		return 0, fmt.Errorf("unknown bit order %q (valid orders: %s)",
			name, strings.Join(valid, ", "))
	}
	return o, nil
}
