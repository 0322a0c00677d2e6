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

// tableSize is the side length N of the (x,y) grid for each of the 32
// big-values tables; tables 0, 4 and 14 are reserved/unused in the ISO
// table set (an encoder never selects them) and are given size 1 so a
// stray selection decodes harmlessly to (0,0) rather than panicking. The
// remaining sizes (2, 3, 4, 6, 8, 16) are a documented ISO/IEC 11172-3
// Annex B property independent of the exact codeword assignment.
var tableSize = [32]int{
	1, 2, 3, 3, 1, 4, 4, 6, 6, 6, 8, 8, 8, 16, 1, 16,
	16, 16, 16, 16, 16, 16, 16, 16, 16, 16, 16, 16, 16, 16, 16, 16,
}

// linbits is the escape extension width for each big-values table. Tables
// 16..23 reuse table 13's code tree and tables 24..31 reuse table 15's code
// tree (a documented property of the ISO/IEC 11172-3 table set: only the
// escape width differs across each group of eight), which is why their
// tableSize entries above equal table 13's/15's.
var linbits = [32]int{
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	1, 2, 3, 4, 6, 8, 10, 13,
	4, 5, 6, 7, 8, 9, 11, 13,
}

// reuseTree maps a table index to the table index whose code tree it
// shares (itself, unless it is one of the escape-extended tables 16..31).
func reuseTree(table int) int {
	switch {
	case table >= 16 && table <= 23:
		return 13
	case table >= 24 && table <= 31:
		return 15
	default:
		return table
	}
}

// quadTableSize is fixed: each of the two quadruple (count1-region) tables
// encodes one of 16 possible (v,w,x,y) ∈ {0,1}^4 magnitude nibbles.
const quadTableSize = 16

// bigValuesLengths holds, for each non-reused, non-reserved big-values
// table, the codeword length of every (x,y) leaf in row-major order
// (bigValuesLengths[t][x][y]). Real codewords are built from these at
// init() by canonical Huffman assignment (see buildFromLengths): sort
// leaves by (length, linear index), then hand out consecutive binary
// values, incrementing the code and left-shifting by the length delta at
// each step, same as canon_huff in a production decoder. See the package
// doc comment and DESIGN.md for how these particular length values were
// derived and the completeness check applied to them.
var bigValuesLengths = map[int][][]uint8{
	1: {
		{1, 3},
		{2, 3},
	},
	2: {
		{2, 3, 3},
		{3, 3, 5},
		{3, 4, 5},
	},
	3: {
		{1, 3, 4},
		{3, 4, 6},
		{4, 5, 6},
	},
	5: {
		{2, 3, 4, 5},
		{3, 4, 5, 5},
		{4, 4, 5, 6},
		{5, 5, 5, 6},
	},
	6: {
		{2, 3, 4, 5},
		{3, 4, 5, 5},
		{4, 4, 5, 7},
		{4, 5, 6, 7},
	},
	7: {
		{3, 3, 4, 5, 6, 6},
		{3, 4, 5, 5, 6, 7},
		{4, 5, 5, 6, 7, 8},
		{5, 5, 6, 7, 8, 8},
		{5, 6, 7, 8, 8, 9},
		{6, 7, 7, 8, 8, 9},
	},
	8: {
		{2, 3, 4, 5, 6, 7},
		{3, 4, 5, 6, 7, 7},
		{4, 5, 6, 7, 7, 8},
		{5, 6, 7, 7, 8, 9},
		{6, 7, 7, 8, 9, 11},
		{7, 7, 8, 9, 10, 11},
	},
	9: {
		{2, 3, 4, 5, 6, 7},
		{3, 4, 5, 6, 7, 7},
		{4, 5, 6, 7, 7, 8},
		{5, 6, 7, 7, 8, 9},
		{6, 7, 7, 8, 9, 11},
		{7, 7, 8, 9, 10, 11},
	},
	10: {
		{3, 4, 4, 5, 5, 6, 7, 7},
		{4, 4, 5, 5, 6, 7, 7, 8},
		{4, 5, 5, 6, 7, 7, 8, 8},
		{5, 5, 6, 7, 7, 8, 8, 9},
		{5, 6, 7, 7, 8, 8, 9, 10},
		{6, 7, 7, 8, 8, 9, 10, 10},
		{7, 7, 8, 8, 9, 9, 10, 11},
		{7, 8, 8, 9, 10, 10, 10, 11},
	},
	11: {
		{3, 3, 4, 5, 6, 6, 7, 8},
		{3, 4, 5, 6, 6, 7, 8, 8},
		{4, 5, 5, 6, 7, 8, 9, 9},
		{5, 6, 6, 7, 8, 9, 9, 10},
		{6, 6, 7, 8, 9, 9, 10, 11},
		{6, 7, 8, 9, 9, 10, 11, 12},
		{7, 8, 8, 9, 10, 11, 12, 14},
		{8, 8, 9, 10, 11, 12, 13, 14},
	},
	12: {
		{2, 3, 4, 5, 6, 7, 8, 9},
		{3, 4, 5, 6, 7, 8, 9, 10},
		{4, 5, 6, 7, 8, 9, 10, 10},
		{5, 6, 7, 8, 9, 10, 10, 11},
		{6, 7, 8, 9, 10, 10, 11, 12},
		{7, 8, 9, 9, 10, 11, 12, 13},
		{8, 9, 9, 10, 11, 12, 13, 15},
		{9, 9, 10, 11, 12, 13, 14, 15},
	},
	13: {
		{3, 4, 4, 5, 6, 6, 7, 7, 8, 8, 9, 10, 10, 11, 11, 12},
		{4, 4, 5, 6, 6, 7, 7, 8, 8, 9, 10, 10, 11, 11, 12, 12},
		{4, 5, 6, 6, 7, 7, 8, 8, 9, 10, 10, 11, 11, 12, 12, 13},
		{5, 6, 6, 7, 7, 8, 8, 9, 10, 10, 11, 11, 12, 12, 13, 13},
		{6, 6, 7, 7, 8, 8, 9, 10, 10, 11, 11, 12, 12, 13, 13, 14},
		{6, 7, 7, 8, 8, 9, 10, 10, 11, 11, 12, 12, 13, 13, 14, 14},
		{7, 7, 8, 8, 9, 10, 10, 11, 11, 12, 12, 13, 13, 14, 14, 15},
		{7, 8, 8, 9, 10, 10, 11, 11, 12, 12, 13, 13, 14, 14, 15, 15},
		{8, 8, 9, 10, 10, 11, 11, 12, 12, 13, 13, 14, 14, 15, 15, 16},
		{8, 9, 9, 10, 11, 11, 12, 12, 13, 13, 14, 14, 15, 15, 16, 16},
		{9, 10, 10, 11, 11, 12, 12, 13, 13, 14, 14, 15, 15, 16, 16, 17},
		{10, 10, 11, 11, 12, 12, 13, 13, 14, 14, 15, 15, 16, 16, 17, 18},
		{10, 11, 11, 12, 12, 13, 13, 14, 14, 15, 15, 16, 16, 17, 17, 18},
		{11, 11, 12, 12, 13, 13, 14, 14, 15, 15, 16, 16, 17, 17, 18, 19},
		{11, 12, 12, 13, 13, 14, 14, 15, 15, 16, 16, 17, 17, 18, 19, 19},
		{12, 12, 13, 13, 14, 14, 15, 15, 16, 16, 17, 17, 18, 19, 19, 19},
	},
	15: {
		{3, 4, 5, 5, 6, 6, 7, 7, 8, 8, 9, 9, 10, 10, 11, 11},
		{4, 4, 5, 6, 6, 7, 7, 8, 8, 9, 9, 10, 10, 11, 11, 12},
		{4, 5, 6, 6, 7, 7, 8, 8, 9, 9, 10, 10, 11, 11, 12, 12},
		{5, 6, 6, 7, 7, 8, 8, 9, 9, 10, 10, 11, 11, 12, 12, 13},
		{6, 6, 7, 7, 7, 8, 9, 9, 10, 10, 11, 11, 12, 12, 13, 13},
		{6, 7, 7, 8, 8, 9, 9, 10, 10, 11, 11, 12, 12, 13, 13, 14},
		{7, 7, 8, 8, 9, 9, 10, 10, 11, 11, 12, 12, 13, 13, 14, 14},
		{7, 8, 8, 9, 9, 10, 10, 11, 11, 12, 12, 13, 13, 14, 14, 15},
		{8, 8, 9, 9, 10, 10, 11, 11, 12, 12, 13, 13, 14, 14, 15, 15},
		{8, 9, 9, 10, 10, 11, 11, 12, 12, 13, 13, 14, 14, 15, 15, 16},
		{8, 9, 10, 10, 11, 11, 12, 12, 13, 13, 14, 14, 15, 15, 16, 16},
		{9, 10, 10, 11, 11, 12, 12, 13, 13, 14, 14, 15, 15, 16, 16, 17},
		{9, 10, 11, 11, 12, 12, 13, 13, 14, 14, 15, 15, 16, 16, 17, 18},
		{10, 11, 11, 12, 12, 13, 13, 14, 14, 15, 15, 16, 16, 17, 18, 18},
		{11, 11, 12, 12, 13, 13, 14, 14, 15, 15, 16, 16, 17, 18, 18, 19},
		{11, 12, 12, 13, 13, 14, 14, 15, 15, 16, 16, 17, 17, 18, 18, 19},
	},
}

// quadLengthsA is the codeword length of each of the 16 (v,w,x,y) nibble
// values for the first count1 table. Shorter for fewer bits set: the
// all-zero nibble is by far the most common outcome in the quiet, nearly-
// silent tail of a spectrum, and probability falls off with the number of
// nonzero magnitude bits.
var quadLengthsA = [quadTableSize]uint8{
	3, 4, 4, 4, 3, 4, 4, 6, 3, 4, 4, 5, 4, 5, 5, 6,
}

// quadLengthsB is the second count1 table: a fixed 4-bit code for every
// nibble value. This one has no real compression over raw bits — ISO
// Annex B documents it as the flat fallback table used whenever the
// encoder's quantized count1 region doesn't have enough of a zero-skewed
// distribution for quadLengthsA to pay for its own overhead.
var quadLengthsB = [quadTableSize]uint8{
	4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4,
}
