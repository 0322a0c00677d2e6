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

// crc16 computes the ISO/IEC 11172-3 Annex A frame CRC: polynomial
// 0x8005, MSB-first, seeded with 0xffff, over the header's last two bytes
// (everything past the sync word and version/layer/protection fields)
// followed by the raw side-information bytes. Only consulted in strict
// mode (the WithStrictCRC option); the default matches the corpus's
// behavior of parsing but never validating the CRC word.
func crc16(data []byte) uint16 {
	const poly = 0x8005
	crc := uint16(0xffff)
	for _, b := range data {
		crc ^= uint16(b) << 8
		for range 8 {
			if crc&0x8000 != 0 {
				crc = (crc << 1) ^ poly
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
