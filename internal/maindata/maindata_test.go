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

package maindata_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/layeriii/mp3dec/internal/bits"
	"github.com/layeriii/mp3dec/internal/consts"
	"github.com/layeriii/mp3dec/internal/frameheader"
	. "github.com/layeriii/mp3dec/internal/maindata"
	"github.com/layeriii/mp3dec/internal/sideinfo"
)

type byteSource struct{ r *bytes.Reader }

func (s *byteSource) ReadFull(buf []byte) (int, error) {
	n, err := io.ReadFull(s.r, buf)
	if err == io.ErrUnexpectedEOF {
		err = io.EOF
	}
	return n, err
}

func TestReservoirAssembleCarriesTrailingBytes(t *testing.T) {
	var r Reservoir

	src1 := &byteSource{bytes.NewReader([]byte{1, 2, 3, 4})}
	m1, err := r.Assemble(src1, 0, 4)
	require.NoError(t, err)
	require.Equal(t, 4, r.Len())
	require.Equal(t, []byte{1, 2, 3, 4}, m1.Vec)

	src2 := &byteSource{bytes.NewReader([]byte{5, 6})}
	m2, err := r.Assemble(src2, 2, 2)
	require.NoError(t, err)
	// carries the last 2 bytes of the prior reservoir (3,4) then the new
	// frame's bytes (5,6).
	require.Equal(t, []byte{3, 4, 5, 6}, m2.Vec)
	require.Equal(t, 4, r.Len())
}

func TestReservoirAssembleRejectsOverlargeMainDataBegin(t *testing.T) {
	var r Reservoir
	src := &byteSource{bytes.NewReader([]byte{1, 2, 3, 4})}
	_, err := r.Assemble(src, 5, 4)
	require.Error(t, err)
}

// mpeg1Header returns a minimal FrameHeader whose only meaningful field for
// ReadScaleFactorsAndSpectrum's dispatch is the MPEG-1 version ID.
func mpeg1Header() frameheader.FrameHeader {
	return frameheader.FrameHeader(uint32(consts.Version1) << 19)
}

func lsfHeader() frameheader.FrameHeader {
	return frameheader.FrameHeader(uint32(consts.Version2) << 19)
}

func TestReadMpeg1ScaleFactorsLongBlock(t *testing.T) {
	header := mpeg1Header()
	si := &sideinfo.SideInfo{}
	si.ScalefacCompress[0][0] = 5 // (slen1, slen2) = (1, 1)

	// 21 fields of 1 bit each; alternate 1/0 starting with 1.
	m := bits.New([]byte{0b10101010, 0b10101010, 0b10101000})
	md := &MainData{}

	err := ReadScaleFactorsAndSpectrum(m, header, si, md, 0, 0)
	require.NoError(t, err)
	for sfb := 0; sfb < 21; sfb++ {
		want := (sfb + 1) % 2
		require.Equalf(t, want, md.ScalefacL[0][0][sfb], "sfb %d", sfb)
	}
}

func TestReadScaleFactorsAndSpectrumSkipsEmptyPart2And3(t *testing.T) {
	header := mpeg1Header()
	si := &sideinfo.SideInfo{}
	// scalefac_compress 0 => (slen1, slen2) = (0, 0): the scale factor pass
	// consumes no bits at all.
	m := bits.New(nil)
	md := &MainData{}

	err := ReadScaleFactorsAndSpectrum(m, header, si, md, 0, 0)
	require.NoError(t, err)
	require.Equal(t, 0, si.Count1[0][0])
	for _, v := range md.Samples[0][0] {
		require.Equal(t, float32(0), v)
	}
}

func TestReadLFSScaleFactorsLongBlock(t *testing.T) {
	header := lsfHeader()
	si := &sideinfo.SideInfo{}
	si.ScalefacCompress[0][0] = 80 // lens = (1,0,0,0), rangeGroup 0

	// nrOfSfbBlock[0][0] = {6,5,5,5}; only the first group (width 1) reads
	// bits, 6 of them: 1,0,1,0,1,0.
	m := bits.New([]byte{0b10101000})
	md := &MainData{}

	err := ReadScaleFactorsAndSpectrum(m, header, si, md, 0, 0)
	require.NoError(t, err)
	want := []int{1, 0, 1, 0, 1, 0}
	for sfb, w := range want {
		require.Equalf(t, w, md.ScalefacL[0][0][sfb], "sfb %d", sfb)
	}
	for sfb := 6; sfb < 21; sfb++ {
		require.Equalf(t, 0, md.ScalefacL[0][0][sfb], "sfb %d", sfb)
	}
}
