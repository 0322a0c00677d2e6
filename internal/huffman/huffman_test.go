// Copyright 2017 Hajime Hoshi
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package huffman

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/layeriii/mp3dec/internal/bits"
)

// zeroBits returns a buffer of n all-zero bytes, enough to drive any tree
// walk plus any trailing sign/escape bits to completion.
func zeroBits(n int) *bits.Bits {
	return bits.New(make([]byte, n))
}

// bitsFromString packs a string of '0'/'1' characters MSB-first into bytes,
// zero-padding the final byte, so a test can assemble an exact codeword
// plus trailing sign bits by hand.
func bitsFromString(s string) *bits.Bits {
	n := (len(s) + 7) / 8
	buf := make([]byte, n)
	for i, c := range s {
		if c == '1' {
			buf[i/8] |= 1 << uint(7-i%8)
		}
	}
	return bits.New(buf)
}

func TestDecodeAllTablesTerminate(t *testing.T) {
	for table := 0; table < 32; table++ {
		m := zeroBits(64)
		x, y, err := Decode(m, table)
		require.NoErrorf(t, err, "table %d", table)
		size := tableSize[reuseTree(table)]
		require.LessOrEqualf(t, x, size-1+(1<<uint(linbits[table])), "table %d x out of range", table)
		require.LessOrEqualf(t, y, size-1+(1<<uint(linbits[table])), "table %d y out of range", table)
	}
}

func TestDecodeInvalidTableIndex(t *testing.T) {
	m := zeroBits(16)
	_, _, err := Decode(m, -1)
	require.Error(t, err)
	_, _, err = Decode(m, 32)
	require.Error(t, err)
}

func TestDecodeQuadTables(t *testing.T) {
	for _, sel := range []int{0, 1} {
		m := zeroBits(8)
		v, w, x, y, err := DecodeQuad(m, sel)
		require.NoError(t, err)
		for _, n := range []int{v, w, x, y} {
			require.GreaterOrEqual(t, n, -1)
			require.LessOrEqual(t, n, 1)
		}
	}
}

func TestDecodeQuadInvalidSelector(t *testing.T) {
	m := zeroBits(8)
	_, _, _, _, err := DecodeQuad(m, 2)
	require.Error(t, err)
}

func TestReservedTablesDecodeToZero(t *testing.T) {
	// Tables 0, 4 and 14 are reserved (tableSize 1): their tree is a single
	// leaf reached via a one-bit wrapper root, so the bit's value never
	// changes the decoded value.
	for _, table := range []int{0, 4, 14} {
		m := zeroBits(1)
		x, y, err := Decode(m, table)
		require.NoError(t, err)
		require.Equal(t, 0, x)
		require.Equal(t, 0, y)
	}
}

// TestDecodeTable1KnownCodewords decodes every codeword of big-values
// table 1 by hand: its lengths are {{1,3},{2,3}}, so the canonical
// assignment (shortest length first, ties broken by row-major (x,y) index)
// works out to (0,0)="0", (1,0)="10", (0,1)="110", (1,1)="111". This
// exercises the actual (code bits) -> (x,y) mapping, not just that a walk
// terminates, which is what the synthetic frequency-weighted tree could
// not guarantee.
func TestDecodeTable1KnownCodewords(t *testing.T) {
	cases := []struct {
		bits  string
		wantX int
		wantY int
	}{
		{"0", 0, 0},
		{"10" + "0", 1, 0},   // sign(x)=0 -> +1
		{"110" + "0", 0, 1},  // sign(y)=0 -> +1
		{"111" + "00", 1, 1}, // sign(x)=0, sign(y)=0 -> +1, +1
	}
	for _, c := range cases {
		m := bitsFromString(c.bits)
		x, y, err := Decode(m, 1)
		require.NoError(t, err)
		require.Equalf(t, c.wantX, x, "bits %q: x", c.bits)
		require.Equalf(t, c.wantY, y, "bits %q: y", c.bits)
	}
}

// TestDecodeTable1NegativeSign confirms a set sign bit negates a nonzero
// magnitude.
func TestDecodeTable1NegativeSign(t *testing.T) {
	m := bitsFromString("10" + "1") // (1,0) with sign(x)=1
	x, y, err := Decode(m, 1)
	require.NoError(t, err)
	require.Equal(t, -1, x)
	require.Equal(t, 0, y)
}

// TestDecodeQuadTableAKnownCodewords exercises quadLengthsA's canonical
// assignment at both ends of its length distribution: the all-zero nibble
// (the shortest code, "000") and the all-ones nibble (the longest, tied
// for length 6 with nibble 7).
func TestDecodeQuadTableAKnownCodewords(t *testing.T) {
	// nibble 0 (v=w=x=y=0): no magnitude bits are nonzero, so no sign bits
	// follow the codeword.
	m := bitsFromString("000")
	v, w, x, y, err := DecodeQuad(m, 0)
	require.NoError(t, err)
	require.Equal(t, 0, v)
	require.Equal(t, 0, w)
	require.Equal(t, 0, x)
	require.Equal(t, 0, y)

	// nibble 15 (v=w=x=y=1): longest code in the table, "111111", followed
	// by four positive sign bits.
	m = bitsFromString("111111" + "0000")
	v, w, x, y, err = DecodeQuad(m, 0)
	require.NoError(t, err)
	require.Equal(t, 1, v)
	require.Equal(t, 1, w)
	require.Equal(t, 1, x)
	require.Equal(t, 1, y)

	// nibble 7 (v=0,w=1,x=1,y=1): the code "111110", followed by three sign
	// bits (v has no magnitude, so no sign bit is read for it).
	m = bitsFromString("111110" + "000")
	v, w, x, y, err = DecodeQuad(m, 0)
	require.NoError(t, err)
	require.Equal(t, 0, v)
	require.Equal(t, 1, w)
	require.Equal(t, 1, x)
	require.Equal(t, 1, y)
}

// TestQuadTableBIsFlatFourBits confirms quadLengthsB assigns every nibble
// the same four-bit length, so the raw nibble value round-trips through
// the canonical code unchanged (mod ordering), i.e. no bit pattern needs
// more or fewer than 4 bits to resolve.
func TestQuadTableBIsFlatFourBits(t *testing.T) {
	for _, l := range quadLengthsB {
		require.EqualValues(t, 4, l)
	}
}

// TestTableLengthsFormCompletePrefixCode recomputes the Kraft-McMillan sum
// directly from the length tables (independent of buildFromLengths, which
// already panics at init if this is violated) so a future edit to
// tables.go that breaks completeness fails a test, not just a panic deep
// in package init.
func TestTableLengthsFormCompletePrefixCode(t *testing.T) {
	for table, grid := range bigValuesLengths {
		sum := 0.0
		for _, row := range grid {
			for _, l := range row {
				sum += 1.0 / float64(int(1)<<uint(l))
			}
		}
		require.InDeltaf(t, 1.0, sum, 1e-6, "big-values table %d", table)
	}

	for _, lengths := range [][quadTableSize]uint8{quadLengthsA, quadLengthsB} {
		sum := 0.0
		for _, l := range lengths {
			sum += 1.0 / float64(int(1)<<uint(l))
		}
		require.InDelta(t, 1.0, sum, 1e-6)
	}
}
