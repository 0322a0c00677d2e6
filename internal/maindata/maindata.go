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

// Package maindata assembles the cross-frame bit reservoir and decodes
// scale factors and Huffman-coded spectrum from it.
package maindata

import (
	"fmt"

	"github.com/layeriii/mp3dec/internal/bits"
	"github.com/layeriii/mp3dec/internal/consts"
	"github.com/layeriii/mp3dec/internal/frameheader"
	"github.com/layeriii/mp3dec/internal/huffman"
	"github.com/layeriii/mp3dec/internal/sideinfo"
)

// FullReader is the minimal byte-source contract maindata needs.
type FullReader interface {
	ReadFull([]byte) (int, error)
}

// ReservoirCapacity is the fixed size of the sliding main-data buffer.
const ReservoirCapacity = 4096

// Reservoir is the cross-frame bit reservoir: a fixed 4096-byte buffer with
// a logical length. It is a field of the decoder's persistent state, not
// cloned per frame.
type Reservoir struct {
	buf [ReservoirCapacity]byte
	len int
}

// Assemble implements §4.4: it reads the current frame's main-data bytes
// from source, splices the trailing mainDataBegin bytes of the prior
// reservoir contents in front of them, stores the result back into the
// reservoir, and returns a bits.Bits ready to read scale factors and
// spectrum from. mainDataBegin greater than the reservoir's current length
// is an InvalidData condition: the caller does not have the bytes this
// frame claims to need.
func (r *Reservoir) Assemble(source FullReader, mainDataBegin, frameMainDataSize int) (*bits.Bits, error) {
	if mainDataBegin > r.len {
		// Still must consume the frame's bytes from source so the stream
		// cursor stays correct for the next resync attempt, but we cannot
		// produce valid main data for bit-serial decode.
		skip := make([]byte, frameMainDataSize)
		if n, err := source.ReadFull(skip); n < frameMainDataSize {
			return nil, fmt.Errorf("maindata: short read while discarding frame: %w", err)
		}
		return nil, fmt.Errorf("maindata: main_data_begin %d exceeds reservoir length %d", mainDataBegin, r.len)
	}

	carry := make([]byte, mainDataBegin)
	copy(carry, r.buf[r.len-mainDataBegin:r.len])

	cur := make([]byte, frameMainDataSize)
	if n, err := source.ReadFull(cur); n < frameMainDataSize {
		return nil, fmt.Errorf("maindata: short read of %d main-data bytes: %w", frameMainDataSize, err)
	}

	logical := append(carry, cur...)

	// Rebuild the reservoir's tail as "everything from this frame", capped
	// at ReservoirCapacity, mirroring the sliding-window semantics of a
	// fixed backing buffer (old bytes fall off the front).
	newLen := len(logical)
	if newLen > ReservoirCapacity {
		logical = logical[newLen-ReservoirCapacity:]
		newLen = ReservoirCapacity
	}
	copy(r.buf[:newLen], logical)
	r.len = newLen

	return bits.New(logical), nil
}

// Len reports the reservoir's current logical length in bytes.
func (r *Reservoir) Len() int { return r.len }

// MainData is the decoded per-granule/channel scale factors and spectrum.
// [2][2] means [granule][channel]; MPEG-2/2.5 only populate granule 0.
type MainData struct {
	ScalefacL [2][2][22]int      // long-window scale factors
	ScalefacS [2][2][13][3]int   // short-window scale factors [sfb][window]
	Samples   [2][2][576]float32 // Huffman-decoded spectrum (pre-requantize)
}

// scalefacSizesMpeg1 is (slen1, slen2) indexed by scalefac_compress (4
// bits, 0..15). Grounded on original_source/src/lib.rs's SCALE_FACTOR_SIZES,
// which the teacher's MPEG-1-only code path reproduces identically.
var scalefacSizesMpeg1 = [16][2]int{
	{0, 0}, {0, 1}, {0, 2}, {0, 3}, {3, 0}, {1, 1}, {1, 2}, {1, 3},
	{2, 1}, {2, 2}, {2, 3}, {3, 1}, {3, 2}, {3, 3}, {4, 2}, {4, 3},
}

// nrOfSfbBlock is the MPEG-2/2.5 (LSF) scale-factor-band count table,
// indexed [rangeGroup][blockTypeGroup][widthGroup]; rangeGroup 0..2 serve
// non-intensity-stereo channels and 3..5 serve intensity-stereo right
// channels, blockTypeGroup is {0: long/start/end, 1: short, 2: mixed}.
// This is the ISO/IEC 13818-3 Annex B "nr_of_sfb" table.
var nrOfSfbBlock = [6][3][4]int{
	{{6, 5, 5, 5}, {9, 9, 9, 9}, {6, 9, 9, 9}},
	{{6, 5, 7, 3}, {9, 9, 12, 6}, {6, 9, 12, 6}},
	{{11, 10, 0, 0}, {18, 18, 0, 0}, {15, 18, 0, 0}},
	{{7, 7, 7, 0}, {12, 12, 12, 0}, {6, 15, 12, 0}},
	{{6, 6, 6, 3}, {12, 9, 9, 6}, {6, 12, 9, 6}},
	{{8, 8, 5, 0}, {15, 12, 9, 0}, {6, 18, 9, 0}},
}

func blockTypeGroup(blockType int) int {
	switch blockType {
	case sideinfo.BlockTypeShort:
		return 1
	default:
		// Mixed is identified by the caller separately; Long/Start/End
		// share group 0.
		return 0
	}
}

// ReadScaleFactorsAndSpectrum decodes scale factors then the Huffman
// spectrum for one (granule, channel), generalized across MPEG-1 and LSF.
func ReadScaleFactorsAndSpectrum(m *bits.Bits, header frameheader.FrameHeader, si *sideinfo.SideInfo, md *MainData, gr, ch int) error {
	part2Start := m.Pos()
	if header.IsLowSamplingFrequency() {
		intensityRight := header.UseIntensityStereo() && ch == 1
		if err := readLFSScaleFactors(m, si, md, gr, ch, intensityRight); err != nil {
			return err
		}
	} else {
		if err := readMpeg1ScaleFactors(m, si, md, gr, ch); err != nil {
			return err
		}
	}
	return readHuffman(m, header, si, md, part2Start, gr, ch)
}

func readMpeg1ScaleFactors(m *bits.Bits, si *sideinfo.SideInfo, md *MainData, gr, ch int) error {
	slen1, slen2 := scalefacSizesMpeg1[si.ScalefacCompress[gr][ch]][0], scalefacSizesMpeg1[si.ScalefacCompress[gr][ch]][1]
	blockType := si.BlockType[gr][ch]
	mixed := si.MixedBlockFlag[gr][ch] == 1

	if blockType == sideinfo.BlockTypeShort || mixed {
		if mixed {
			for sfb := range 8 {
				v, err := readN(m, slen1)
				if err != nil {
					return err
				}
				md.ScalefacL[gr][ch][sfb] = v
			}
		}
		startSfb := 0
		for sfb := startSfb; sfb < 6; sfb++ {
			for w := range 3 {
				v, err := readN(m, slen1)
				if err != nil {
					return err
				}
				md.ScalefacS[gr][ch][sfb][w] = v
			}
		}
		for sfb := 6; sfb < 12; sfb++ {
			for w := range 3 {
				v, err := readN(m, slen2)
				if err != nil {
					return err
				}
				md.ScalefacS[gr][ch][sfb][w] = v
			}
		}
		return nil
	}

	spans := [4][2]int{{0, 6}, {6, 11}, {11, 16}, {16, 21}}
	for i, span := range spans {
		length := slen1
		if i >= 2 {
			length = slen2
		}
		for sfb := span[0]; sfb < span[1]; sfb++ {
			if gr == 0 || si.Scfsi[ch][i] == 0 {
				v, err := readN(m, length)
				if err != nil {
					return err
				}
				md.ScalefacL[gr][ch][sfb] = v
			} else {
				md.ScalefacL[gr][ch][sfb] = md.ScalefacL[0][ch][sfb]
			}
		}
	}
	return nil
}

func readLFSScaleFactors(m *bits.Bits, si *sideinfo.SideInfo, md *MainData, gr, ch int, intensityRight bool) error {
	blockType := si.BlockType[gr][ch]
	mixed := si.MixedBlockFlag[gr][ch] == 1
	btGroup := blockTypeGroup(blockType)
	if mixed {
		btGroup = 2
	}

	var lens [4]int
	var rangeGroup int
	sfc := si.ScalefacCompress[gr][ch]
	if intensityRight {
		sfc /= 2
		switch {
		case sfc <= 179:
			lens = [4]int{sfc / 36, (sfc % 36) / 6, sfc % 6, 0}
			rangeGroup = 3
		case sfc <= 243:
			sfc -= 180
			lens = [4]int{(sfc % 64) / 16, (sfc % 16) / 4, sfc % 4, 0}
			rangeGroup = 4
		default:
			sfc -= 244
			lens = [4]int{sfc / 3, sfc % 3, 0, 0}
			rangeGroup = 5
		}
	} else {
		switch {
		case sfc <= 399:
			lens = [4]int{sfc / 80, (sfc / 16) % 5, (sfc % 16) / 4, sfc & 3}
			rangeGroup = 0
		case sfc <= 499:
			sfc -= 400
			lens = [4]int{sfc / 20, (sfc / 4) % 5, sfc % 4, 0}
			rangeGroup = 1
		default:
			sfc -= 500
			lens = [4]int{sfc / 3, sfc % 3, 0, 0}
			rangeGroup = 2
		}
	}

	counts := nrOfSfbBlock[rangeGroup][btGroup]

	var scalefacs [54]int
	i := 0
	for g := range 4 {
		n := counts[g]
		length := lens[g]
		if length > 8 {
			return fmt.Errorf("maindata: lfs scale factor width %d exceeds 8 bits", length)
		}
		for k := 0; k < n; k++ {
			if length > 0 {
				v, err := readN(m, length)
				if err != nil {
					return err
				}
				scalefacs[i] = v
			}
			i++
		}
	}

	i = 0
	if blockType == sideinfo.BlockTypeShort || mixed {
		start := 0
		if mixed {
			for sfb := range 8 {
				md.ScalefacL[gr][ch][sfb] = scalefacs[i]
				i++
			}
			start = 3
		}
		for sfb := start; sfb < 12; sfb++ {
			for w := range 3 {
				md.ScalefacS[gr][ch][sfb][w] = scalefacs[i]
				i++
			}
		}
	} else {
		for sfb := range 21 {
			md.ScalefacL[gr][ch][sfb] = scalefacs[i]
			i++
		}
	}
	return nil
}

func readN(m *bits.Bits, n int) (int, error) {
	if n == 0 {
		return 0, nil
	}
	v, err := m.ReadUnsigned(n)
	if err != nil {
		return 0, fmt.Errorf("maindata: scalefactor read: %w", err)
	}
	return v, nil
}

// readHuffman implements §4.5's spectrum decode: region boundary
// computation, big-values pair decode, count1-region quadruple decode,
// bit-accounting backout, and zero-fill tail.
func readHuffman(m *bits.Bits, header frameheader.FrameHeader, si *sideinfo.SideInfo, md *MainData, part2Start, gr, ch int) error {
	if si.Part2And3Length[gr][ch] == 0 {
		for i := range consts.SamplesPerGr {
			md.Samples[gr][ch][i] = 0
		}
		si.Count1[gr][ch] = 0
		return nil
	}

	bitPosEnd := part2Start + si.Part2And3Length[gr][ch] - 1

	region1Start := 0
	region2Start := 0
	if si.WinSwitchFlag[gr][ch] == 1 && si.BlockType[gr][ch] == sideinfo.BlockTypeShort {
		region1Start = 36
		region2Start = consts.SamplesPerGr
	} else {
		l := consts.SfBandIndices[header.SfTableIndex()][header.SamplingFrequency()][consts.SfBandIndicesLong]
		i := si.Region0Count[gr][ch] + 1
		j := si.Region0Count[gr][ch] + si.Region1Count[gr][ch] + 2
		if i < 0 || i >= len(l) || j < 0 || j >= len(l) {
			// mpg123/ffmpeg clamp rather than reject an otherwise decodable
			// stream whose region counts merely overshoot the table.
			if i >= len(l) {
				i = len(l) - 1
			}
			if j >= len(l) {
				j = len(l) - 1
			}
		}
		region1Start = l[i]
		region2Start = l[j]
	}

	isPos := 0
	for isPos < si.BigValues[gr][ch]*2 {
		tableNum := si.TableSelect[gr][ch][2]
		if isPos < region1Start {
			tableNum = si.TableSelect[gr][ch][0]
		} else if isPos < region2Start {
			tableNum = si.TableSelect[gr][ch][1]
		}
		x, y, err := huffman.Decode(m, tableNum)
		if err != nil {
			return fmt.Errorf("maindata: huffman big-values: %w", err)
		}
		md.Samples[gr][ch][isPos] = float32(x)
		isPos++
		md.Samples[gr][ch][isPos] = float32(y)
		isPos++
	}

	tableNum := si.Count1TableSelect[gr][ch]
	for isPos <= 572 && m.Pos() <= bitPosEnd {
		v, w, x, y, err := huffman.DecodeQuad(m, tableNum)
		if err != nil {
			return fmt.Errorf("maindata: huffman quad: %w", err)
		}
		md.Samples[gr][ch][isPos] = float32(v)
		isPos++
		if isPos >= consts.SamplesPerGr {
			break
		}
		md.Samples[gr][ch][isPos] = float32(w)
		isPos++
		if isPos >= consts.SamplesPerGr {
			break
		}
		md.Samples[gr][ch][isPos] = float32(x)
		isPos++
		if isPos >= consts.SamplesPerGr {
			break
		}
		md.Samples[gr][ch][isPos] = float32(y)
		isPos++
	}

	if m.Pos() > bitPosEnd+1 {
		isPos -= 4
	}
	si.Count1[gr][ch] = isPos
	for isPos < consts.SamplesPerGr {
		md.Samples[gr][ch][isPos] = 0
		isPos++
	}
	m.SetPos(bitPosEnd + 1)
	return nil
}
