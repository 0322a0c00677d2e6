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
	"bytes"
	"testing"
)

// TestFuzzing feeds inputs that previously crashed the header/bit-reader
// resync path (see git history) through the full pipeline. None of them
// are valid streams; the only requirement is that decoding ends in a
// returned error rather than a panic or an infinite loop.
func TestFuzzing(t *testing.T) {
	inputs := []string{
		"\xff\xfa500000000000\xff\xff0000" +
			"00000000000000000000" +
			"00000000000000000000" +
			"00000000000000000000" +
			"00000000000000000000" +
			"00000000000000000000" +
			"00000000000000000000" +
			"0000",
		"\xff\xfb\x100004000094\xff000000" +
			"00000000000000000000" +
			"000\xff\xee\xff\xee\xff\xff\xff\xff\xee\xff\xff0" +
			"\xff\xff00\xff\xee\xff000000\xff00\xee0" +
			"000\xff000\xff\xff\xee0\xff0000\xff0" +
			"00\xff0",
		"\xff\xfa\x1000000000000000000" +
			"00000000000000000000" +
			"000000000000000000\xff\xff" +
			"0\xff\xff\xff\xff\xff\xff\xfc0\xff\xef\xbf0\xef\xbf00" +
			"0\xff\xee\xff\xff\xff\xff\xee\xff\xff\xff\xff\xff00" +
			"\xff\xff00",
		"\xff\xfa00000031000000000n" +
			"s0f00000000000000000" +
			"00000000000000000000" +
			"00000000000000000000" +
			"00000000000000000000" +
			"00000000000000000000" +
			"00000000000000000000" +
			"00000000\xff\xff000\xff\xee",
		"\xff\xfb0x000000\xf9000\x00\x030000" +
			"000000000000\xf70000000" +
			"\x900000000000000000000" +
			"00000000000000000000" +
			"00000000000000000000" +
			"00000000000000000000" +
			"00000000000000000000" +
			"00000000000000000000" +
			"00000000000000000000" +
			"00000000000000000000" +
			"00000000000000000000" +
			"00000000000000000000" +
			"00000000000000000000" +
			"00000000000000000000" +
			"00000000000000000000" +
			"0000000000000",
	}
	for i, input := range inputs {
		d, err := NewDecoder(bytes.NewReader([]byte(input)))
		if err != nil {
			continue
		}
		for j := 0; j < 64; j++ {
			if _, err := d.NextFrame(); err != nil {
				break
			}
			if j == 63 {
				t.Errorf("input %d: decoding did not terminate within 64 frames", i)
			}
		}
	}
}
