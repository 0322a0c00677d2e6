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

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClip16PassesThroughInRange(t *testing.T) {
	require.Equal(t, int16(0), clip16(0))
	require.Equal(t, int16(16383), clip16(0.5))
}

func TestClip16ClampsAboveAndBelowRange(t *testing.T) {
	require.Equal(t, int16(32767), clip16(10))
	require.Equal(t, int16(-32768), clip16(-10))
}

func TestEncodeStereoPCM16InterleavesLittleEndian(t *testing.T) {
	f := &DecodedFrame{
		NumSamples: 2,
	}
	f.Samples[0][0], f.Samples[0][1] = 1, -1
	f.Samples[1][0], f.Samples[1][1] = 0, 1
	out := encodeStereoPCM16(f)
	require.Len(t, out, 8)

	l0 := int16(uint16(out[0]) | uint16(out[1])<<8)
	r0 := int16(uint16(out[2]) | uint16(out[3])<<8)
	l1 := int16(uint16(out[4]) | uint16(out[5])<<8)
	r1 := int16(uint16(out[6]) | uint16(out[7])<<8)

	require.Equal(t, int16(32767), l0)
	require.Equal(t, int16(0), r0)
	require.Equal(t, int16(-32767), l1)
	require.Equal(t, int16(32767), r1)
}
