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
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func noopLog(format string, args ...any) {}

func TestSkipTagsNoTagLeavesCursorUntouched(t *testing.T) {
	payload := []byte{0xff, 0xfb, 0x90, 0x00}
	s := &source{reader: bytes.NewReader(payload)}
	require.NoError(t, s.skipTags())

	out := make([]byte, 4)
	n, err := s.ReadFull(out)
	require.NoError(t, err)
	require.Equal(t, 4, n)
	require.Equal(t, payload, out)
}

func TestSkipTagsSkipsID3v2SyncsafeSize(t *testing.T) {
	tagBody := []byte("hello")
	var buf bytes.Buffer
	buf.WriteString("ID3")
	buf.Write([]byte{0x03, 0x00, 0x00})       // version + flags
	buf.Write([]byte{0x00, 0x00, 0x00, 0x05}) // syncsafe size = 5
	buf.Write(tagBody)
	buf.Write([]byte{0xff, 0xfb, 0x90, 0x00})

	s := &source{reader: bytes.NewReader(buf.Bytes())}
	require.NoError(t, s.skipTags())

	out := make([]byte, 4)
	n, err := s.ReadFull(out)
	require.NoError(t, err)
	require.Equal(t, 4, n)
	require.Equal(t, []byte{0xff, 0xfb, 0x90, 0x00}, out)
}

func TestSkipTagsSkipsID3v1TagMarker(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("TAG")
	buf.Write(make([]byte, 125))
	buf.Write([]byte{0xff, 0xfb, 0x90, 0x00})

	s := &source{reader: bytes.NewReader(buf.Bytes())}
	require.NoError(t, s.skipTags())

	out := make([]byte, 4)
	n, err := s.ReadFull(out)
	require.NoError(t, err)
	require.Equal(t, 4, n)
	require.Equal(t, []byte{0xff, 0xfb, 0x90, 0x00}, out)
}

func TestReadHeaderReturnsEOFOnEmptyStream(t *testing.T) {
	s := &source{reader: bytes.NewReader(nil)}
	_, err := s.readHeader(noopLog, 256)
	require.Equal(t, io.EOF, err)
}

func TestReadHeaderResyncsPastJunkBytes(t *testing.T) {
	valid := []byte{0xff, 0xfb, 0x90, 0x00}
	payload := append([]byte{0x00, 0x00, 0x00}, valid...)
	s := &source{reader: bytes.NewReader(payload)}
	h, err := s.readHeader(noopLog, 256)
	require.NoError(t, err)
	require.True(t, h.IsValid())
}

func TestReadHeaderGivesUpAtResyncLimit(t *testing.T) {
	junk := bytes.Repeat([]byte{0x00}, 1024)
	s := &source{reader: bytes.NewReader(junk)}
	_, err := s.readHeader(noopLog, 64)
	require.Equal(t, io.EOF, err)
}

func TestUnreadPrependsBytesForNextRead(t *testing.T) {
	s := &source{reader: bytes.NewReader([]byte{0x03, 0x04})}
	s.unread([]byte{0x01, 0x02})

	out := make([]byte, 4)
	n, err := s.ReadFull(out)
	require.NoError(t, err)
	require.Equal(t, 4, n)
	require.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, out)
}
