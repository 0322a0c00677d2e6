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

// Package frameheader decodes the 32-bit MP3 frame header, generalized
// across MPEG-1, MPEG-2 and MPEG-2.5.
package frameheader

import (
	"github.com/layeriii/mp3dec/internal/consts"
)

// FrameHeader is the 32-bit header word, high bit first.
type FrameHeader uint32

// ID returns the 2-bit MPEG version code stored in position 20,19.
func (m FrameHeader) ID() consts.Version {
	return consts.Version((m & 0x00180000) >> 19)
}

// Layer returns the mpeg layer of this frame stored in position 18,17.
func (m FrameHeader) Layer() consts.Layer {
	return consts.Layer((m & 0x00060000) >> 17)
}

// ProtectionBit returns the protection bit stored in position 16; 0 means a
// CRC follows the header.
func (m FrameHeader) ProtectionBit() int {
	return int(m&0x00010000) >> 16
}

// BitrateIndex returns the 4-bit bitrate index stored in position 15,12.
func (m FrameHeader) BitrateIndex() int {
	return int(m&0x0000f000) >> 12
}

// SamplingFrequency returns the 2-bit sample-rate code stored in position 11,10.
func (m FrameHeader) SamplingFrequency() consts.SamplingFrequency {
	return consts.SamplingFrequency(int(m&0x00000c00) >> 10)
}

// PaddingBit returns the padding bit stored in position 9.
func (m FrameHeader) PaddingBit() int {
	return int(m&0x00000200) >> 9
}

// PrivateBit returns the private bit stored in position 8.
func (m FrameHeader) PrivateBit() int {
	return int(m&0x00000100) >> 8
}

// Mode returns the channel mode, stored in position 7,6.
func (m FrameHeader) Mode() consts.Mode {
	return consts.Mode((m & 0x000000c0) >> 6)
}

// ModeExtension returns the mode_extension bits (4,5), only meaningful for
// JointStereo.
func (m FrameHeader) ModeExtension() int {
	return int(m&0x00000030) >> 4
}

// Copyright returns whether or not this recording is marked copyrighted.
func (m FrameHeader) Copyright() int {
	return int(m&0x00000008) >> 3
}

// OriginalOrCopy returns whether or not this is marked as an original recording.
func (m FrameHeader) OriginalOrCopy() int {
	return int(m&0x00000004) >> 2
}

// Emphasis returns the de-emphasis indication, stored in position 0,1.
func (m FrameHeader) Emphasis() int {
	return int(m&0x00000003) >> 0
}

// IsValid reports whether the header's fixed fields are all legal values.
// It does not check that Layer is III; callers that only support Layer III
// check that separately so they can report Unsupported rather than
// InvalidData for a well-formed Layer I/II header.
func (m FrameHeader) IsValid() bool {
	const sync = 0xffe00000
	if (m & sync) != sync {
		return false
	}
	if m.ID() == consts.VersionReserved {
		return false
	}
	if m.BitrateIndex() == 15 {
		return false
	}
	if m.SamplingFrequency() == consts.SamplingFrequencyReserved {
		return false
	}
	if m.Layer() == consts.LayerReserved {
		return false
	}
	if m.Emphasis() == 2 {
		return false
	}
	return true
}

// IsFreeFormat reports whether the bitrate index requests free-format
// bitrate, which this decoder treats as Unsupported.
func (m FrameHeader) IsFreeFormat() bool {
	return m.BitrateIndex() == 0
}

// bitrateTableMpeg1Layer3 is kbps by bitrate index for MPEG-1 Layer III.
var bitrateTableMpeg1Layer3 = []int{
	0, 32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320,
}

// bitrateTableLSFLayer3 is kbps by bitrate index for MPEG-2/2.5 Layer III.
var bitrateTableLSFLayer3 = []int{
	0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160,
}

// BitrateBps returns the bitrate in bits per second from the Layer III
// table for this header's version. There are no Layer I/II tables: a
// Layer I/II header also gets its Layer III table value.
func (h FrameHeader) BitrateBps() int {
	idx := h.BitrateIndex()
	if h.ID() == consts.Version1 {
		return bitrateTableMpeg1Layer3[idx] * 1000
	}
	return bitrateTableLSFLayer3[idx] * 1000
}

// sampleRateTable is Hz by [versionIndex][rateCode], versionIndex 0=MPEG1,
// 1=MPEG2, 2=MPEG2.5.
var sampleRateTable = [3][3]int{
	{44100, 48000, 32000},
	{22050, 24000, 16000},
	{11025, 12000, 8000},
}

// SamplingFrequencyValue returns the sample rate in Hz.
func (h FrameHeader) SamplingFrequencyValue() int {
	return sampleRateTable[h.ID().Index()][h.SamplingFrequency()]
}

// SfTableIndex is the version index (0..2) used as the first subscript of
// consts.SfBandIndices[versionIndex][rateCode]; the rate code is the second.
func (h FrameHeader) SfTableIndex() int {
	return h.ID().Index()
}

// IsLowSamplingFrequency reports whether this is MPEG-2 or MPEG-2.5 (the
// "LSF" — lower sampling frequency — extensions to MPEG-1 Layer III that
// halve side-info size and use a single granule).
func (h FrameHeader) IsLowSamplingFrequency() bool {
	return h.ID() != consts.Version1
}

// NumGranules returns 2 for MPEG-1, 1 for MPEG-2/2.5.
func (h FrameHeader) NumGranules() int {
	if h.IsLowSamplingFrequency() {
		return consts.GranulesLSF
	}
	return consts.GranulesMpeg1
}

// NumberOfChannels returns 1 for single-channel mode, else 2.
func (h FrameHeader) NumberOfChannels() int {
	if h.Mode() == consts.ModeSingleChannel {
		return 1
	}
	return 2
}

// SideDataLen returns the number of side-information bytes this header's
// version/channel-count combination carries: 32/17 for MPEG-1 stereo/mono,
// 17/9 for MPEG-2/2.5 stereo/mono.
func (h FrameHeader) SideDataLen() int {
	mono := h.NumberOfChannels() == 1
	if h.IsLowSamplingFrequency() {
		if mono {
			return 9
		}
		return 17
	}
	if mono {
		return 17
	}
	return 32
}

// DataSize returns the number of frame-body bytes excluding the 4-byte
// header and, when present, the 2-byte CRC.
func (h FrameHeader) DataSize() int {
	bitsPerSample := 144
	if h.IsLowSamplingFrequency() {
		bitsPerSample = 72
	}
	size := bitsPerSample*h.BitrateBps()/h.SamplingFrequencyValue() + h.PaddingBit()
	size -= 4
	if h.ProtectionBit() == 0 {
		size -= 2
	}
	return size
}

// FrameSize returns the total physical frame size in bytes, header included.
func (h FrameHeader) FrameSize() int {
	bitsPerSample := 144
	if h.IsLowSamplingFrequency() {
		bitsPerSample = 72
	}
	return bitsPerSample*h.BitrateBps()/h.SamplingFrequencyValue() + h.PaddingBit()
}

// UseMSStereo reports whether JointStereo mid/side coding is active
// (mode_extension bit 1, only meaningful for Layer III JointStereo).
func (h FrameHeader) UseMSStereo() bool {
	return h.Mode() == consts.ModeJointStereo && h.ModeExtension()&0x2 != 0
}

// UseIntensityStereo reports whether JointStereo intensity coding is active
// (mode_extension bit 0).
func (h FrameHeader) UseIntensityStereo() bool {
	return h.Mode() == consts.ModeJointStereo && h.ModeExtension()&0x1 != 0
}
