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

package mp3

import "io"

// PCMReader adapts a Decoder's normalized float32 frames to the
// io.Reader-of-interleaved-16-bit-stereo-PCM shape many playback
// backends (oto among them) expect. It is host glue, not part of the
// core: the core itself never quantizes samples to a fixed-point format.
type PCMReader struct {
	dec *Decoder
	buf []byte
}

// NewPCMReader wraps dec. Samples past the normalized [-1, 1] range are
// clipped to the 16-bit range at this boundary, not inside the decoder.
func NewPCMReader(dec *Decoder) *PCMReader {
	return &PCMReader{dec: dec}
}

func (p *PCMReader) Read(out []byte) (int, error) {
	for len(p.buf) == 0 {
		f, err := p.dec.NextFrame()
		if err != nil {
			return 0, err
		}
		p.buf = encodeStereoPCM16(f)
	}
	n := copy(out, p.buf)
	p.buf = p.buf[n:]
	return n, nil
}

func encodeStereoPCM16(f *DecodedFrame) []byte {
	out := make([]byte, f.NumSamples*4)
	for i := range f.NumSamples {
		l := clip16(f.Samples[0][i])
		r := clip16(f.Samples[1][i])
		out[4*i] = byte(l)
		out[4*i+1] = byte(l >> 8)
		out[4*i+2] = byte(r)
		out[4*i+3] = byte(r >> 8)
	}
	return out
}

func clip16(sample float32) int16 {
	v := int32(sample * 32767)
	if v > 32767 {
		v = 32767
	} else if v < -32768 {
		v = -32768
	}
	return int16(v)
}

var _ io.Reader = (*PCMReader)(nil)
