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

// Package consts holds the fixed tables and enumerations shared across the
// decoder's internal packages: MPEG version/layer/mode codes, bitrate and
// sample-rate tables, and the scale-factor band index tables.
package consts

import "fmt"

// UnexpectedEOF means the source ran out of bytes in the middle of a field
// that the frame being decoded promised would be present.
type UnexpectedEOF struct {
	At string
}

func (u *UnexpectedEOF) Error() string {
	return fmt.Sprintf("mp3: unexpected EOF at %s", u.At)
}

// Version is the MPEG version code read from the frame header's 2-bit ID
// field (bits 20,19, right after the 11-bit sync word); MPEG-2.5 is code 0
// (see frameheader.FrameHeader.ID).
type Version int

const (
	Version2_5      Version = 0
	VersionReserved Version = 1
	Version2        Version = 2
	Version1        Version = 3
)

// Index returns the 0/1/2 slot used to index per-version tables
// (SfBandIndices, the sample-rate table): 0 for MPEG-1, 1 for MPEG-2, 2 for MPEG-2.5.
func (v Version) Index() int {
	switch v {
	case Version1:
		return 0
	case Version2:
		return 1
	case Version2_5:
		return 2
	}
	panic("consts: invalid version")
}

func (v Version) String() string {
	switch v {
	case Version1:
		return "MPEG-1"
	case Version2:
		return "MPEG-2"
	case Version2_5:
		return "MPEG-2.5"
	}
	return "reserved"
}

// Layer is the MPEG layer code.
type Layer int

const (
	LayerReserved Layer = 0
	Layer3        Layer = 1
	Layer2        Layer = 2
	Layer1        Layer = 3
)

func (l Layer) String() string {
	switch l {
	case Layer1:
		return "I"
	case Layer2:
		return "II"
	case Layer3:
		return "III"
	}
	return "reserved"
}

// Mode is the channel mode.
type Mode int

const (
	ModeStereo       Mode = 0
	ModeJointStereo  Mode = 1
	ModeDualChannel  Mode = 2
	ModeSingleChannel Mode = 3
)

const (
	SamplesPerGr  = 576
	GranulesMpeg1 = 2
	GranulesLSF   = 1
)

// SamplingFrequency is the 2-bit sample-rate code from the header; its
// meaning is version-dependent (use SfTableIndex with the header's Version
// to index SfBandIndices / bitrate tables).
type SamplingFrequency int

const SamplingFrequencyReserved SamplingFrequency = 3

const (
	SfBandIndicesLong  = 0
	SfBandIndicesShort = 1
)

// SfBandIndices[version][layer-agnostic-is-always-3][long-or-short] holds
// the scale-factor band boundary tables, indexed [versionIndex][rateCode].
// Layer III only ever consults the tables at the rate codes valid for its
// version; the table is keyed the way the teacher's own vendored consts.go
// keys it (by sample-rate table index 0..2 within a version), generalized
// here with a third (MPEG-2.5) slot.
var SfBandIndices [3][3][2][]int

func init() {
	// MPEG-1: 44100, 48000, 32000
	SfBandIndices[0][0] = [2][]int{
		{0, 4, 8, 12, 16, 20, 24, 30, 36, 44, 52, 62, 74, 90, 110, 134, 162, 196, 238, 288, 342, 418, 576},
		{0, 4, 8, 12, 16, 22, 30, 40, 52, 66, 84, 106, 136, 192},
	}
	SfBandIndices[0][1] = [2][]int{
		{0, 4, 8, 12, 16, 20, 24, 30, 36, 44, 52, 62, 74, 90, 110, 134, 162, 196, 238, 288, 340, 418, 576},
		{0, 4, 8, 12, 16, 22, 30, 42, 56, 74, 96, 122, 156, 192},
	}
	SfBandIndices[0][2] = [2][]int{
		{0, 4, 8, 12, 16, 20, 24, 30, 36, 44, 54, 66, 82, 102, 126, 156, 194, 240, 296, 364, 448, 550, 576},
		{0, 4, 8, 12, 16, 22, 30, 42, 58, 78, 104, 138, 180, 192},
	}
	// MPEG-2: 22050, 24000, 16000
	SfBandIndices[1][0] = [2][]int{
		{0, 6, 12, 18, 24, 30, 36, 44, 54, 66, 80, 96, 116, 140, 168, 200, 238, 284, 336, 396, 464, 522, 576},
		{0, 4, 8, 12, 18, 24, 32, 42, 56, 74, 100, 132, 174, 192},
	}
	SfBandIndices[1][1] = [2][]int{
		{0, 6, 12, 18, 24, 30, 36, 44, 54, 66, 80, 96, 114, 136, 162, 194, 232, 278, 332, 394, 464, 540, 576},
		{0, 4, 8, 12, 18, 26, 36, 48, 62, 80, 104, 136, 180, 192},
	}
	SfBandIndices[1][2] = [2][]int{
		{0, 6, 12, 18, 24, 30, 36, 44, 54, 66, 80, 96, 116, 140, 168, 200, 238, 284, 336, 396, 464, 522, 576},
		{0, 4, 8, 12, 18, 26, 36, 48, 62, 80, 104, 134, 174, 192},
	}
	// MPEG-2.5: 11025, 12000, 8000 — shares the MPEG-2 layout per the LSF
	// standard; it differs only in the bitrate/sample-rate lookup, not in
	// the scale-factor band geometry.
	SfBandIndices[2][0] = SfBandIndices[1][0]
	SfBandIndices[2][1] = SfBandIndices[1][1]
	SfBandIndices[2][2] = SfBandIndices[1][2]
}
