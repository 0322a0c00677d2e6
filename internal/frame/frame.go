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

// Package frame decodes one physical MPEG Layer III frame: header, side
// info and main data in, 576 or 1152 normalized float32 PCM samples per
// channel out.
package frame

import (
	"fmt"
	"math"

	"github.com/layeriii/mp3dec/internal/bits"
	"github.com/layeriii/mp3dec/internal/consts"
	"github.com/layeriii/mp3dec/internal/frameheader"
	"github.com/layeriii/mp3dec/internal/imdct"
	"github.com/layeriii/mp3dec/internal/maindata"
	"github.com/layeriii/mp3dec/internal/sideinfo"
)

var (
	powtab34 = make([]float64, 8207)
	pretab   = []float64{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 2, 2, 3, 3, 3, 2, 0}
)

func init() {
	for i := range powtab34 {
		powtab34[i] = math.Pow(float64(i), 4.0/3.0)
	}
}

// FullReader is the minimal byte-source contract frame needs.
type FullReader interface {
	ReadFull([]byte) (int, error)
}

// State is the decoder's persistent cross-frame state: the bit reservoir
// and, per channel, the hybrid-synthesis overlap store and the 1024-sample
// polyphase delay line. It must be threaded from one Frame to the next,
// never reset or cloned mid-stream.
type State struct {
	Reservoir maindata.Reservoir
	store     [2][32][18]float32
	vVec      [2][1024]float32
}

// Frame is one decoded physical frame.
type Frame struct {
	Header   frameheader.FrameHeader
	SideInfo *sideinfo.SideInfo
	mainData maindata.MainData

	// Samples holds up to 1152 normalized float32 samples per channel;
	// NumSamples of them are valid (576 for MPEG-2/2.5's single granule,
	// 1152 for MPEG-1's two).
	Samples    [2][1152]float32
	NumSamples int
}

// Read parses the side info that follows an already-read header, folds its main-data bytes
// into the reservoir, decodes scale factors and spectrum, and runs the
// full synthesis pipeline, mutating st in place.
func Read(source FullReader, header frameheader.FrameHeader, st *State) (*Frame, error) {
	si, err := sideinfo.Read(source, header)
	if err != nil {
		return nil, err
	}

	m, err := st.Reservoir.Assemble(source, si.MainDataBegin, header.DataSize()-header.SideDataLen())
	if err != nil {
		return nil, err
	}

	f := &Frame{Header: header, SideInfo: si}
	if err := f.readMainData(m, header, si); err != nil {
		return nil, err
	}
	f.decode(st)
	return f, nil
}

func (f *Frame) readMainData(m *bits.Bits, header frameheader.FrameHeader, si *sideinfo.SideInfo) error {
	nch := header.NumberOfChannels()
	for gr := range header.NumGranules() {
		for ch := range nch {
			if err := maindata.ReadScaleFactorsAndSpectrum(m, header, si, &f.mainData, gr, ch); err != nil {
				return fmt.Errorf("frame: granule %d channel %d: %w", gr, ch, err)
			}
		}
	}
	return nil
}

func getSfBandIndicesArray(h frameheader.FrameHeader) ([]int, []int) {
	long := consts.SfBandIndices[h.SfTableIndex()][h.SamplingFrequency()][consts.SfBandIndicesLong]
	short := consts.SfBandIndices[h.SfTableIndex()][h.SamplingFrequency()][consts.SfBandIndicesShort]
	return long, short
}

func (f *Frame) decode(st *State) {
	nch := f.Header.NumberOfChannels()
	numGranules := f.Header.NumGranules()
	f.NumSamples = numGranules * consts.SamplesPerGr

	for gr := range numGranules {
		for ch := range nch {
			f.requantize(gr, ch)
			f.reorder(gr, ch)
		}
		f.stereo(gr)
		for ch := range nch {
			f.antialias(gr, ch)
			f.hybridSynthesis(gr, ch, st)
			f.frequencyInversion(gr, ch)
			f.subbandSynthesis(gr, ch, st, gr*consts.SamplesPerGr)
		}
	}

	if nch == 1 {
		for i := range f.NumSamples {
			f.Samples[1][i] = f.Samples[0][i]
		}
	}
}

func (f *Frame) requantizeProcessLong(gr, ch, isPos, sfb int) {
	sfMult := 0.5
	if f.SideInfo.ScalefacScale[gr][ch] != 0 {
		sfMult = 1.0
	}
	pfxPt := float64(f.SideInfo.Preflag[gr][ch]) * pretab[sfb]
	idx := -(sfMult * (float64(f.mainData.ScalefacL[gr][ch][sfb]) + pfxPt)) +
		0.25*(float64(f.SideInfo.GlobalGain[gr][ch])-210)
	f.mainData.Samples[gr][ch][isPos] = requantizeOne(idx, f.mainData.Samples[gr][ch][isPos])
}

func (f *Frame) requantizeProcessShort(gr, ch, isPos, sfb, win int) {
	sfMult := 0.5
	if f.SideInfo.ScalefacScale[gr][ch] != 0 {
		sfMult = 1.0
	}
	idx := -(sfMult * float64(f.mainData.ScalefacS[gr][ch][sfb][win])) +
		0.25*(float64(f.SideInfo.GlobalGain[gr][ch])-210.0-
			8.0*float64(f.SideInfo.SubblockGain[gr][ch][win]))
	f.mainData.Samples[gr][ch][isPos] = requantizeOne(idx, f.mainData.Samples[gr][ch][isPos])
}

func requantizeOne(idx float64, raw float32) float32 {
	tmp1 := math.Pow(2.0, idx)
	var tmp2 float64
	if raw < 0 {
		tmp2 = -powtab34[int(-raw)]
	} else {
		tmp2 = powtab34[int(raw)]
	}
	return float32(tmp1 * tmp2)
}

func (f *Frame) requantize(gr, ch int) {
	long, short := getSfBandIndicesArray(f.Header)
	count1 := f.SideInfo.Count1[gr][ch]

	if f.SideInfo.WinSwitchFlag[gr][ch] == 1 && f.SideInfo.BlockType[gr][ch] == sideinfo.BlockTypeShort {
		if f.SideInfo.MixedBlockFlag[gr][ch] != 0 {
			sfb := 0
			nextSfb := long[sfb+1]
			for i := range 36 {
				if i == nextSfb {
					sfb++
					nextSfb = long[sfb+1]
				}
				f.requantizeProcessLong(gr, ch, i, sfb)
			}
			sfb = 3
			nextSfb = short[sfb+1] * 3
			winLen := short[sfb+1] - short[sfb]
			for i := 36; i < count1; {
				if i == nextSfb {
					sfb++
					nextSfb = short[sfb+1] * 3
					winLen = short[sfb+1] - short[sfb]
				}
				for win := range 3 {
					for range winLen {
						f.requantizeProcessShort(gr, ch, i, sfb, win)
						i++
					}
				}
			}
		} else {
			sfb := 0
			nextSfb := short[sfb+1] * 3
			winLen := short[sfb+1] - short[sfb]
			for i := 0; i < count1; {
				if i == nextSfb {
					sfb++
					nextSfb = short[sfb+1] * 3
					winLen = short[sfb+1] - short[sfb]
				}
				for win := range 3 {
					for range winLen {
						f.requantizeProcessShort(gr, ch, i, sfb, win)
						i++
					}
				}
			}
		}
		return
	}

	sfb := 0
	nextSfb := long[sfb+1]
	for i := range count1 {
		if i == nextSfb {
			sfb++
			nextSfb = long[sfb+1]
		}
		f.requantizeProcessLong(gr, ch, i, sfb)
	}
}

func (f *Frame) reorder(gr, ch int) {
	if !(f.SideInfo.WinSwitchFlag[gr][ch] == 1 && f.SideInfo.BlockType[gr][ch] == sideinfo.BlockTypeShort) {
		return
	}

	var re [consts.SamplesPerGr]float32
	_, short := getSfBandIndicesArray(f.Header)

	sfb := 0
	if f.SideInfo.MixedBlockFlag[gr][ch] != 0 {
		sfb = 3
	}
	nextSfb := short[sfb+1] * 3
	winLen := short[sfb+1] - short[sfb]
	i := 0
	if sfb != 0 {
		i = 36
	}
	for i < consts.SamplesPerGr {
		if i == nextSfb {
			j := 3 * short[sfb]
			copy(f.mainData.Samples[gr][ch][j:j+3*winLen], re[:3*winLen])
			if i >= f.SideInfo.Count1[gr][ch] {
				return
			}
			sfb++
			nextSfb = short[sfb+1] * 3
			winLen = short[sfb+1] - short[sfb]
		}
		for win := range 3 {
			for j := range winLen {
				re[j*3+win] = f.mainData.Samples[gr][ch][i]
				i++
			}
		}
	}
	j := 3 * short[12]
	copy(f.mainData.Samples[gr][ch][j:j+3*winLen], re[:3*winLen])
}

// isRatios is the MPEG-1 intensity-stereo tan-angle table; tan(i*pi/12).
var isRatios = []float32{0.000000, 0.267949, 0.577350, 1.000000, 1.732051, 3.732051}

func (f *Frame) stereoProcessIntensityLong(gr, sfb int) {
	isPos := f.mainData.ScalefacL[gr][0][sfb]
	if isPos >= 7 {
		return
	}
	long, _ := getSfBandIndicesArray(f.Header)
	ratioL, ratioR := intensityRatio(isPos)
	for i := long[sfb]; i < long[sfb+1]; i++ {
		left := f.mainData.Samples[gr][0][i]
		f.mainData.Samples[gr][0][i] = left * ratioL
		f.mainData.Samples[gr][1][i] = left * ratioR
	}
}

func (f *Frame) stereoProcessIntensityShort(gr, sfb int) {
	_, short := getSfBandIndicesArray(f.Header)
	winLen := short[sfb+1] - short[sfb]
	for win := range 3 {
		isPos := f.mainData.ScalefacS[gr][0][sfb][win]
		if isPos >= 7 {
			continue
		}
		ratioL, ratioR := intensityRatio(isPos)
		start := short[sfb]*3 + winLen*win
		for i := start; i < start+winLen; i++ {
			left := f.mainData.Samples[gr][0][i]
			f.mainData.Samples[gr][0][i] = left * ratioL
			f.mainData.Samples[gr][1][i] = left * ratioR
		}
	}
}

func intensityRatio(isPos int) (l, r float32) {
	if isPos == 6 {
		return 1.0, 0.0
	}
	return isRatios[isPos] / (1.0 + isRatios[isPos]), 1.0 / (1.0 + isRatios[isPos])
}

func (f *Frame) stereo(gr int) {
	if f.Header.UseMSStereo() {
		i := 1
		if f.SideInfo.Count1[gr][0] > f.SideInfo.Count1[gr][1] {
			i = 0
		}
		maxPos := f.SideInfo.Count1[gr][i]
		const invSqrt2 = math.Sqrt2 / 2
		for i := range maxPos {
			left := (f.mainData.Samples[gr][0][i] + f.mainData.Samples[gr][1][i]) * invSqrt2
			right := (f.mainData.Samples[gr][0][i] - f.mainData.Samples[gr][1][i]) * invSqrt2
			f.mainData.Samples[gr][0][i] = left
			f.mainData.Samples[gr][1][i] = right
		}
	}

	if !f.Header.UseIntensityStereo() {
		return
	}

	long, short := getSfBandIndicesArray(f.Header)
	if f.SideInfo.WinSwitchFlag[gr][0] == 1 && f.SideInfo.BlockType[gr][0] == sideinfo.BlockTypeShort {
		if f.SideInfo.MixedBlockFlag[gr][0] != 0 {
			for sfb := range 8 {
				if long[sfb] >= f.SideInfo.Count1[gr][1] {
					f.stereoProcessIntensityLong(gr, sfb)
				}
			}
			for sfb := 3; sfb < 12; sfb++ {
				if short[sfb]*3 >= f.SideInfo.Count1[gr][1] {
					f.stereoProcessIntensityShort(gr, sfb)
				}
			}
		} else {
			for sfb := range 12 {
				if short[sfb]*3 >= f.SideInfo.Count1[gr][1] {
					f.stereoProcessIntensityShort(gr, sfb)
				}
			}
		}
	} else {
		for sfb := range 21 {
			if long[sfb] >= f.SideInfo.Count1[gr][1] {
				f.stereoProcessIntensityLong(gr, sfb)
			}
		}
	}
}

var (
	aaCs = []float32{0.857493, 0.881742, 0.949629, 0.983315, 0.995518, 0.999161, 0.999899, 0.999993}
	aaCa = []float32{-0.514496, -0.471732, -0.313377, -0.181913, -0.094574, -0.040966, -0.014199, -0.003700}
)

func (f *Frame) antialias(gr, ch int) {
	if f.SideInfo.WinSwitchFlag[gr][ch] == 1 &&
		f.SideInfo.BlockType[gr][ch] == sideinfo.BlockTypeShort &&
		f.SideInfo.MixedBlockFlag[gr][ch] == 0 {
		return
	}
	sblim := 32
	if f.SideInfo.WinSwitchFlag[gr][ch] == 1 &&
		f.SideInfo.BlockType[gr][ch] == sideinfo.BlockTypeShort &&
		f.SideInfo.MixedBlockFlag[gr][ch] == 1 {
		sblim = 2
	}
	for sb := 1; sb < sblim; sb++ {
		for i := range 8 {
			li := 18*sb - 1 - i
			ui := 18*sb + i
			lb := f.mainData.Samples[gr][ch][li]*aaCs[i] - f.mainData.Samples[gr][ch][ui]*aaCa[i]
			ub := f.mainData.Samples[gr][ch][ui]*aaCs[i] + f.mainData.Samples[gr][ch][li]*aaCa[i]
			f.mainData.Samples[gr][ch][li] = lb
			f.mainData.Samples[gr][ch][ui] = ub
		}
	}
}

func (f *Frame) hybridSynthesis(gr, ch int, st *State) {
	for sb := range 32 {
		bt := f.SideInfo.BlockType[gr][ch]
		if f.SideInfo.WinSwitchFlag[gr][ch] == 1 && f.SideInfo.MixedBlockFlag[gr][ch] == 1 && sb < 2 {
			bt = sideinfo.BlockTypeLong
		}
		var in [18]float32
		copy(in[:], f.mainData.Samples[gr][ch][sb*18:sb*18+18])
		rawout := imdct.Win(in[:], bt)
		for i := range 18 {
			f.mainData.Samples[gr][ch][sb*18+i] = rawout[i] + st.store[ch][sb][i]
			st.store[ch][sb][i] = rawout[i+18]
		}
	}
}

func (f *Frame) frequencyInversion(gr, ch int) {
	for sb := 1; sb < 32; sb += 2 {
		for i := 1; i < 18; i += 2 {
			f.mainData.Samples[gr][ch][sb*18+i] = -f.mainData.Samples[gr][ch][sb*18+i]
		}
	}
}

var synthNWin [64][32]float32

func init() {
	for i := range 64 {
		for j := range 32 {
			synthNWin[i][j] = float32(math.Cos(float64((16+i)*(2*j+1)) * (math.Pi / 64.0)))
		}
	}
}

var synthDtbl = [512]float32{
	0.000000000, -0.000015259, -0.000015259, -0.000015259,
	-0.000015259, -0.000015259, -0.000015259, -0.000030518,
	-0.000030518, -0.000030518, -0.000030518, -0.000045776,
	-0.000045776, -0.000061035, -0.000061035, -0.000076294,
	-0.000076294, -0.000091553, -0.000106812, -0.000106812,
	-0.000122070, -0.000137329, -0.000152588, -0.000167847,
	-0.000198364, -0.000213623, -0.000244141, -0.000259399,
	-0.000289917, -0.000320435, -0.000366211, -0.000396729,
	-0.000442505, -0.000473022, -0.000534058, -0.000579834,
	-0.000625610, -0.000686646, -0.000747681, -0.000808716,
	-0.000885010, -0.000961304, -0.001037598, -0.001113892,
	-0.001205444, -0.001296997, -0.001388550, -0.001480103,
	-0.001586914, -0.001693726, -0.001785278, -0.001907349,
	-0.002014160, -0.002120972, -0.002243042, -0.002349854,
	-0.002456665, -0.002578735, -0.002685547, -0.002792358,
	-0.002899170, -0.002990723, -0.003082275, -0.003173828,
	0.003250122, 0.003326416, 0.003387451, 0.003433228,
	0.003463745, 0.003479004, 0.003479004, 0.003463745,
	0.003417969, 0.003372192, 0.003280640, 0.003173828,
	0.003051758, 0.002883911, 0.002700806, 0.002487183,
	0.002227783, 0.001937866, 0.001617432, 0.001266479,
	0.000869751, 0.000442505, -0.000030518, -0.000549316,
	-0.001098633, -0.001693726, -0.002334595, -0.003005981,
	-0.003723145, -0.004486084, -0.005294800, -0.006118774,
	-0.007003784, -0.007919312, -0.008865356, -0.009841919,
	-0.010848999, -0.011886597, -0.012939453, -0.014022827,
	-0.015121460, -0.016235352, -0.017349243, -0.018463135,
	-0.019577026, -0.020690918, -0.021789551, -0.022857666,
	-0.023910522, -0.024932861, -0.025909424, -0.026840210,
	-0.027725220, -0.028533936, -0.029281616, -0.029937744,
	-0.030532837, -0.031005859, -0.031387329, -0.031661987,
	-0.031814575, -0.031845093, -0.031738281, -0.031478882,
	0.031082153, 0.030517578, 0.029785156, 0.028884888,
	0.027801514, 0.026535034, 0.025085449, 0.023422241,
	0.021575928, 0.019531250, 0.017257690, 0.014801025,
	0.012115479, 0.009231567, 0.006134033, 0.002822876,
	-0.000686646, -0.004394531, -0.008316040, -0.012420654,
	-0.016708374, -0.021179199, -0.025817871, -0.030609131,
	-0.035552979, -0.040634155, -0.045837402, -0.051132202,
	-0.056533813, -0.061996460, -0.067520142, -0.073059082,
	-0.078628540, -0.084182739, -0.089706421, -0.095169067,
	-0.100540161, -0.105819702, -0.110946655, -0.115921021,
	-0.120697021, -0.125259399, -0.129562378, -0.133590698,
	-0.137298584, -0.140670776, -0.143676758, -0.146255493,
	-0.148422241, -0.150115967, -0.151306152, -0.151962280,
	-0.152069092, -0.151596069, -0.150497437, -0.148773193,
	-0.146362305, -0.143264771, -0.139450073, -0.134887695,
	-0.129577637, -0.123474121, -0.116577148, -0.108856201,
	0.100311279, 0.090927124, 0.080688477, 0.069595337,
	0.057617188, 0.044784546, 0.031082153, 0.016510010,
	0.001068115, -0.015228271, -0.032379150, -0.050354004,
	-0.069168091, -0.088775635, -0.109161377, -0.130310059,
	-0.152206421, -0.174789429, -0.198059082, -0.221984863,
	-0.246505737, -0.271591187, -0.297210693, -0.323318481,
	-0.349868774, -0.376800537, -0.404083252, -0.431655884,
	-0.459472656, -0.487472534, -0.515609741, -0.543823242,
	-0.572036743, -0.600219727, -0.628295898, -0.656219482,
	-0.683914185, -0.711318970, -0.738372803, -0.765029907,
	-0.791213989, -0.816864014, -0.841949463, -0.866363525,
	-0.890090942, -0.913055420, -0.935195923, -0.956481934,
	-0.976852417, -0.996246338, -1.014617920, -1.031936646,
	-1.048156738, -1.063217163, -1.077117920, -1.089782715,
	-1.101211548, -1.111373901, -1.120223999, -1.127746582,
	-1.133926392, -1.138763428, -1.142211914, -1.144287109,
	1.144989014, 1.144287109, 1.142211914, 1.138763428,
	1.133926392, 1.127746582, 1.120223999, 1.111373901,
	1.101211548, 1.089782715, 1.077117920, 1.063217163,
	1.048156738, 1.031936646, 1.014617920, 0.996246338,
	0.976852417, 0.956481934, 0.935195923, 0.913055420,
	0.890090942, 0.866363525, 0.841949463, 0.816864014,
	0.791213989, 0.765029907, 0.738372803, 0.711318970,
	0.683914185, 0.656219482, 0.628295898, 0.600219727,
	0.572036743, 0.543823242, 0.515609741, 0.487472534,
	0.459472656, 0.431655884, 0.404083252, 0.376800537,
	0.349868774, 0.323318481, 0.297210693, 0.271591187,
	0.246505737, 0.221984863, 0.198059082, 0.174789429,
	0.152206421, 0.130310059, 0.109161377, 0.088775635,
	0.069168091, 0.050354004, 0.032379150, 0.015228271,
	-0.001068115, -0.016510010, -0.031082153, -0.044784546,
	-0.057617188, -0.069595337, -0.080688477, -0.090927124,
	0.100311279, 0.108856201, 0.116577148, 0.123474121,
	0.129577637, 0.134887695, 0.139450073, 0.143264771,
	0.146362305, 0.148773193, 0.150497437, 0.151596069,
	0.152069092, 0.151962280, 0.151306152, 0.150115967,
	0.148422241, 0.146255493, 0.143676758, 0.140670776,
	0.137298584, 0.133590698, 0.129562378, 0.125259399,
	0.120697021, 0.115921021, 0.110946655, 0.105819702,
	0.100540161, 0.095169067, 0.089706421, 0.084182739,
	0.078628540, 0.073059082, 0.067520142, 0.061996460,
	0.056533813, 0.051132202, 0.045837402, 0.040634155,
	0.035552979, 0.030609131, 0.025817871, 0.021179199,
	0.016708374, 0.012420654, 0.008316040, 0.004394531,
	0.000686646, -0.002822876, -0.006134033, -0.009231567,
	-0.012115479, -0.014801025, -0.017257690, -0.019531250,
	-0.021575928, -0.023422241, -0.025085449, -0.026535034,
	-0.027801514, -0.028884888, -0.029785156, -0.030517578,
	0.031082153, 0.031478882, 0.031738281, 0.031845093,
	0.031814575, 0.031661987, 0.031387329, 0.031005859,
	0.030532837, 0.029937744, 0.029281616, 0.028533936,
	0.027725220, 0.026840210, 0.025909424, 0.024932861,
	0.023910522, 0.022857666, 0.021789551, 0.020690918,
	0.019577026, 0.018463135, 0.017349243, 0.016235352,
	0.015121460, 0.014022827, 0.012939453, 0.011886597,
	0.010848999, 0.009841919, 0.008865356, 0.007919312,
	0.007003784, 0.006118774, 0.005294800, 0.004486084,
	0.003723145, 0.003005981, 0.002334595, 0.001693726,
	0.001098633, 0.000549316, 0.000030518, -0.000442505,
	-0.000869751, -0.001266479, -0.001617432, -0.001937866,
	-0.002227783, -0.002487183, -0.002700806, -0.002883911,
	-0.003051758, -0.003173828, -0.003280640, -0.003372192,
	-0.003417969, -0.003463745, -0.003479004, -0.003479004,
	-0.003463745, -0.003433228, -0.003387451, -0.003326416,
	0.003250122, 0.003173828, 0.003082275, 0.002990723,
	0.002899170, 0.002792358, 0.002685547, 0.002578735,
	0.002456665, 0.002349854, 0.002243042, 0.002120972,
	0.002014160, 0.001907349, 0.001785278, 0.001693726,
	0.001586914, 0.001480103, 0.001388550, 0.001296997,
	0.001205444, 0.001113892, 0.001037598, 0.000961304,
	0.000885010, 0.000808716, 0.000747681, 0.000686646,
	0.000625610, 0.000579834, 0.000534058, 0.000473022,
	0.000442505, 0.000396729, 0.000366211, 0.000320435,
	0.000289917, 0.000259399, 0.000244141, 0.000213623,
	0.000198364, 0.000167847, 0.000152588, 0.000137329,
	0.000122070, 0.000106812, 0.000106812, 0.000091553,
	0.000076294, 0.000076294, 0.000061035, 0.000061035,
	0.000045776, 0.000045776, 0.000030518, 0.000030518,
	0.000030518, 0.000030518, 0.000015259, 0.000015259,
	0.000015259, 0.000015259, 0.000015259, 0.000015259,
}

// subbandSynthesis runs the 32-band polyphase filter bank, writing
// normalized float32 samples directly into f.Samples[ch] starting at
// sampleOffset — unlike the int16 PCM byte encoding this pipeline
// descends from, the core never quantizes to a fixed-point format; that
// conversion belongs at the host boundary, not in the decoder.
func (f *Frame) subbandSynthesis(gr, ch int, st *State, sampleOffset int) {
	var uVec [512]float32
	var sVec [32]float32

	for ss := range 18 {
		copy(st.vVec[ch][64:1024], st.vVec[ch][0:1024-64])
		d := f.mainData.Samples[gr][ch]
		for i := range 32 {
			sVec[i] = d[i*18+ss]
		}
		for i := range 64 {
			sum := float32(0)
			for j := range 32 {
				sum += synthNWin[i][j] * sVec[j]
			}
			st.vVec[ch][i] = sum
		}
		v := st.vVec[ch]
		for i := 0; i < 512; i += 64 {
			copy(uVec[i:i+32], v[(i<<1):(i<<1)+32])
			copy(uVec[i+32:i+64], v[(i<<1)+96:(i<<1)+128])
		}
		for i := range 512 {
			uVec[i] *= synthDtbl[i]
		}
		for i := range 32 {
			sum := float32(0)
			for j := 0; j < 512; j += 32 {
				sum += uVec[j+i]
			}
			f.Samples[ch][sampleOffset+32*ss+i] = sum
		}
	}
}
