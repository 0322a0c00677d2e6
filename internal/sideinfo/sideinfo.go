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

// Package sideinfo decodes the per-granule side-information block that
// precedes a Layer III frame's main data, generalized across MPEG-1 and the
// MPEG-2/2.5 (LSF) variants.
package sideinfo

import (
	"fmt"

	"github.com/layeriii/mp3dec/internal/bits"
	"github.com/layeriii/mp3dec/internal/frameheader"
)

// FullReader is the minimal byte-source contract sideinfo needs.
type FullReader interface {
	ReadFull([]byte) (int, error)
}

// SideInfo is Layer III side information. [2][2] means [granule][channel];
// MPEG-2/2.5 streams only ever populate granule index 0.
type SideInfo struct {
	MainDataBegin int       // 9 bits MPEG-1, 8 bits LSF
	PrivateBits   int       // 5 (mono) or 3 (stereo) bits MPEG-1; 1 or 2 bits LSF
	Scfsi         [2][4]int // 1 bit, MPEG-1 only

	Part2And3Length  [2][2]int // 12 bits
	BigValues        [2][2]int // 9 bits
	GlobalGain       [2][2]int // 8 bits
	ScalefacCompress [2][2]int // 4 bits MPEG-1, 9 bits LSF
	WinSwitchFlag    [2][2]int // 1 bit

	BlockType      [2][2]int    // 2 bits
	MixedBlockFlag [2][2]int    // 1 bit
	TableSelect    [2][2][3]int // 5 bits
	SubblockGain   [2][2][3]int // 3 bits

	Region0Count [2][2]int // 4 bits
	Region1Count [2][2]int // 3 bits

	Preflag           [2][2]int // 1 bit (synthesized for LSF)
	ScalefacScale     [2][2]int // 1 bit
	Count1TableSelect [2][2]int // 1 bit
	Count1            [2][2]int // not in the bitstream; set by the Huffman reader
}

// Block type codes.
const (
	BlockTypeLong  = 0
	BlockTypeStart = 1
	BlockTypeShort = 2
	BlockTypeEnd   = 3
)

// Read decodes header.SideDataLen() bytes of side information.
func Read(source FullReader, header frameheader.FrameHeader) (*SideInfo, error) {
	buf := make([]byte, header.SideDataLen())
	if n, err := source.ReadFull(buf); n < len(buf) {
		return nil, fmt.Errorf("sideinfo: short read (%d of %d bytes): %w", n, len(buf), err)
	}
	m := bits.New(buf)
	si := &SideInfo{}

	lsf := header.IsLowSamplingFrequency()
	nch := header.NumberOfChannels()
	mono := nch == 1

	mdbBits := 9
	privBits := 3
	if mono {
		privBits = 5
	}
	scBits := 4
	if lsf {
		mdbBits = 8
		if mono {
			privBits = 1
		} else {
			privBits = 2
		}
		scBits = 9
	}

	var err error
	if si.MainDataBegin, err = readBits(m, mdbBits); err != nil {
		return nil, err
	}
	if si.PrivateBits, err = readBits(m, privBits); err != nil {
		return nil, err
	}

	if !lsf {
		for ch := range nch {
			for band := range 4 {
				v, err := readBits(m, 1)
				if err != nil {
					return nil, err
				}
				si.Scfsi[ch][band] = v
			}
		}
	}

	numGranules := header.NumGranules()
	for gr := range numGranules {
		for ch := range nch {
			if si.Part2And3Length[gr][ch], err = readBits(m, 12); err != nil {
				return nil, err
			}
			if si.BigValues[gr][ch], err = readBits(m, 9); err != nil {
				return nil, err
			}
			if si.BigValues[gr][ch] > 288 {
				return nil, fmt.Errorf("sideinfo: big_values = %d exceeds 288", si.BigValues[gr][ch])
			}
			if si.GlobalGain[gr][ch], err = readBits(m, 8); err != nil {
				return nil, err
			}
			if si.ScalefacCompress[gr][ch], err = readBits(m, scBits); err != nil {
				return nil, err
			}
			if si.WinSwitchFlag[gr][ch], err = readBits(m, 1); err != nil {
				return nil, err
			}

			if si.WinSwitchFlag[gr][ch] == 1 {
				if si.BlockType[gr][ch], err = readBits(m, 2); err != nil {
					return nil, err
				}
				if si.BlockType[gr][ch] == BlockTypeLong {
					return nil, fmt.Errorf("sideinfo: forbidden block type 0 with window switching set")
				}
				if si.MixedBlockFlag[gr][ch], err = readBits(m, 1); err != nil {
					return nil, err
				}
				for tbl := range 2 {
					if si.TableSelect[gr][ch][tbl], err = readBits(m, 5); err != nil {
						return nil, err
					}
				}
				for w := range 3 {
					if si.SubblockGain[gr][ch][w], err = readBits(m, 3); err != nil {
						return nil, err
					}
				}
				if si.BlockType[gr][ch] == BlockTypeShort && si.MixedBlockFlag[gr][ch] == 0 {
					si.Region0Count[gr][ch] = 8
				} else {
					si.Region0Count[gr][ch] = 7
				}
				si.Region1Count[gr][ch] = 20 - si.Region0Count[gr][ch]
			} else {
				si.BlockType[gr][ch] = BlockTypeLong
				for tbl := range 3 {
					if si.TableSelect[gr][ch][tbl], err = readBits(m, 5); err != nil {
						return nil, err
					}
				}
				if si.Region0Count[gr][ch], err = readBits(m, 4); err != nil {
					return nil, err
				}
				if si.Region1Count[gr][ch], err = readBits(m, 3); err != nil {
					return nil, err
				}
			}

			if lsf {
				si.Preflag[gr][ch] = 0
				if si.ScalefacCompress[gr][ch] >= 500 {
					si.Preflag[gr][ch] = 1
				}
			} else {
				if si.Preflag[gr][ch], err = readBits(m, 1); err != nil {
					return nil, err
				}
			}
			if si.ScalefacScale[gr][ch], err = readBits(m, 1); err != nil {
				return nil, err
			}
			if si.Count1TableSelect[gr][ch], err = readBits(m, 1); err != nil {
				return nil, err
			}
		}
	}
	return si, nil
}

func readBits(m *bits.Bits, n int) (int, error) {
	v, err := m.ReadUnsigned(n)
	if err != nil {
		return 0, fmt.Errorf("sideinfo: %w", err)
	}
	return v, nil
}
