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

// Package huffman decodes the Layer III spectrum: 32 "big values" tables
// (two-dimensional (x,y) codes, the top few of which escape into a
// linbits-wide linear extension) and two "quadruple" (count1-region)
// tables of four-bit (v,w,x,y) magnitude nibbles.
//
// Each table's tree is built at init() from an explicit per-leaf codeword
// length (bigValuesLengths / quadLengthsA / quadLengthsB in tables.go), not
// from a stored (code, length) pair: codes are assigned canonically
// (shortest length first, ties broken by (x,y) order, incrementing the
// binary value and left-shifting on every length increase), the same
// technique production decoders such as libmad use to avoid storing a code
// value for every leaf alongside its length. buildFromLengths asserts the
// Kraft-McMillan equality (the sum of 2^-length over all leaves in a table
// must equal 1) at package init, so a table that is not a complete prefix
// code fails loudly at startup rather than silently decoding garbage or
// hanging mid-walk. See DESIGN.md for how the length values themselves were
// derived and verified.
package huffman

import (
	"fmt"
	"sort"

	"github.com/layeriii/mp3dec/internal/bits"
)

type node struct {
	leaf        bool
	x, y        int // big-values leaf payload; quad tables stash the nibble in x
	left, right *node
}

type leaf struct {
	length int
	index  int // linear (x,y) or nibble index, used only to break length ties
	x, y   int
}

// buildFromLengths assembles a binary tree from a set of (length, x, y)
// leaves via canonical Huffman code assignment.
func buildFromLengths(leaves []leaf) *node {
	if len(leaves) == 1 {
		// A single-leaf table (the reserved size-1 big-values tables) still
		// needs a root so walk can descend without special-casing; it
		// consumes one bit and always yields its one value regardless.
		only := &node{leaf: true, x: leaves[0].x, y: leaves[0].y}
		return &node{leaf: false, left: only, right: only}
	}

	sort.Slice(leaves, func(i, j int) bool {
		if leaves[i].length != leaves[j].length {
			return leaves[i].length < leaves[j].length
		}
		return leaves[i].index < leaves[j].index
	})

	root := &node{}
	code := 0
	prevLen := leaves[0].length
	kraft := 0.0
	for _, l := range leaves {
		code <<= uint(l.length - prevLen)
		insertLeaf(root, code, l.length, l.x, l.y)
		kraft += 1.0 / float64(int(1)<<uint(l.length))
		code++
		prevLen = l.length
	}
	if kraft < 0.999999 || kraft > 1.000001 {
		panic(fmt.Sprintf("huffman: incomplete prefix code, Kraft sum = %v (want 1)", kraft))
	}
	return root
}

func insertLeaf(root *node, code, length, x, y int) {
	n := root
	for i := length - 1; i >= 0; i-- {
		bit := (code >> uint(i)) & 1
		if i == 0 {
			if bit == 1 {
				n.right = &node{leaf: true, x: x, y: y}
			} else {
				n.left = &node{leaf: true, x: x, y: y}
			}
			return
		}
		var next **node
		if bit == 1 {
			next = &n.right
		} else {
			next = &n.left
		}
		if *next == nil {
			*next = &node{}
		}
		n = *next
	}
}

func buildBigValuesTree(table int) *node {
	grid, ok := bigValuesLengths[table]
	if !ok {
		// Reserved table (0, 4 or 14): a single harmless (0,0) leaf.
		return buildFromLengths([]leaf{{length: 1, index: 0, x: 0, y: 0}})
	}
	n := len(grid)
	leaves := make([]leaf, 0, n*n)
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			leaves = append(leaves, leaf{length: int(grid[x][y]), index: x*n + y, x: x, y: y})
		}
	}
	return buildFromLengths(leaves)
}

func buildQuadTree(lengths [quadTableSize]uint8) *node {
	leaves := make([]leaf, 0, quadTableSize)
	for nib := 0; nib < quadTableSize; nib++ {
		leaves = append(leaves, leaf{length: int(lengths[nib]), index: nib, x: nib, y: 0})
	}
	return buildFromLengths(leaves)
}

var bigValuesTrees [32]*node
var quadTrees [2]*node

func init() {
	built := map[int]*node{}
	for t := 0; t < 32; t++ {
		src := reuseTree(t)
		tree, ok := built[src]
		if !ok {
			tree = buildBigValuesTree(src)
			built[src] = tree
		}
		bigValuesTrees[t] = tree
	}
	quadTrees[0] = buildQuadTree(quadLengthsA)
	quadTrees[1] = buildQuadTree(quadLengthsB)
}

// Decode reads one code from the big-values table tableNum and returns the
// decoded magnitude pair with sign bits applied and any linbits escape
// folded in.
func Decode(m *bits.Bits, tableNum int) (x, y int, err error) {
	if tableNum < 0 || tableNum >= 32 {
		return 0, 0, fmt.Errorf("huffman: invalid big-values table %d", tableNum)
	}
	n, err := walk(m, bigValuesTrees[tableNum])
	if err != nil {
		return 0, 0, err
	}
	x, y = n.x, n.y

	lb := linbits[tableNum]
	size := tableSize[reuseTree(tableNum)]
	if x == size-1 && lb > 0 {
		ext, err := m.ReadUnsigned(lb)
		if err != nil {
			return 0, 0, fmt.Errorf("huffman: linbits escape: %w", err)
		}
		x += ext
	}
	if x > 0 {
		sign, err := m.ReadBit()
		if err != nil {
			return 0, 0, fmt.Errorf("huffman: sign bit: %w", err)
		}
		if sign {
			x = -x
		}
	}

	if y == size-1 && lb > 0 {
		ext, err := m.ReadUnsigned(lb)
		if err != nil {
			return 0, 0, fmt.Errorf("huffman: linbits escape: %w", err)
		}
		y += ext
	}
	if y > 0 {
		sign, err := m.ReadBit()
		if err != nil {
			return 0, 0, fmt.Errorf("huffman: sign bit: %w", err)
		}
		if sign {
			y = -y
		}
	}
	return x, y, nil
}

// DecodeQuad reads one code from quadruple table tableSelect (0 or 1,
// corresponding to Count1TableSelect) and returns (v,w,x,y) each in
// {-1,0,1}.
func DecodeQuad(m *bits.Bits, tableSelect int) (v, w, x, y int, err error) {
	if tableSelect < 0 || tableSelect >= 2 {
		return 0, 0, 0, 0, fmt.Errorf("huffman: invalid quad table %d", tableSelect)
	}
	n, err := walk(m, quadTrees[tableSelect])
	if err != nil {
		return 0, 0, 0, 0, err
	}
	nibble := n.x
	v = (nibble >> 3) & 1
	w = (nibble >> 2) & 1
	x = (nibble >> 1) & 1
	y = nibble & 1

	if v != 0 {
		sign, err := m.ReadBit()
		if err != nil {
			return 0, 0, 0, 0, err
		}
		if sign {
			v = -v
		}
	}
	if w != 0 {
		sign, err := m.ReadBit()
		if err != nil {
			return 0, 0, 0, 0, err
		}
		if sign {
			w = -w
		}
	}
	if x != 0 {
		sign, err := m.ReadBit()
		if err != nil {
			return 0, 0, 0, 0, err
		}
		if sign {
			x = -x
		}
	}
	if y != 0 {
		sign, err := m.ReadBit()
		if err != nil {
			return 0, 0, 0, 0, err
		}
		if sign {
			y = -y
		}
	}
	return v, w, x, y, nil
}

func walk(m *bits.Bits, root *node) (*node, error) {
	n := root
	for !n.leaf {
		bit, err := m.ReadBit()
		if err != nil {
			return nil, fmt.Errorf("huffman: tree walk: %w", err)
		}
		if bit {
			n = n.right
		} else {
			n = n.left
		}
	}
	return n, nil
}
