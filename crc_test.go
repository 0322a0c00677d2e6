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

func TestCRC16EmptyInputIsSeed(t *testing.T) {
	require.Equal(t, uint16(0xffff), crc16(nil))
}

func TestCRC16IsDeterministicAndSensitiveToInput(t *testing.T) {
	a := crc16([]byte{0x12, 0x34, 0x56})
	b := crc16([]byte{0x12, 0x34, 0x56})
	require.Equal(t, a, b)

	c := crc16([]byte{0x12, 0x34, 0x57})
	require.NotEqual(t, a, c)
}
