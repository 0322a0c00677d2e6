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
	"fmt"
	"io"

	"github.com/layeriii/mp3dec/internal/consts"
	"github.com/layeriii/mp3dec/internal/frameheader"
)

// source wraps the caller's byte stream with the unread-byte pushback
// frame-header resync needs and the ID3 tag skipping a real-world MP3
// file carries at its start (see skipTags).
type source struct {
	reader io.Reader
	buf    []byte
	pos    int64
}

func (s *source) ReadFull(buf []byte) (int, error) {
	read := 0
	if s.buf != nil {
		read = copy(buf, s.buf)
		if len(s.buf) > read {
			s.buf = s.buf[read:]
		} else {
			s.buf = nil
		}
		if len(buf) == read {
			return read, nil
		}
	}

	n, err := io.ReadFull(s.reader, buf[read:])
	if err == io.ErrUnexpectedEOF {
		// A short final read is the ordinary way a stream ends, not a
		// hard failure.
		err = io.EOF
	}
	s.pos += int64(n)
	return n + read, err
}

func (s *source) unread(buf []byte) {
	s.buf = append(append([]byte{}, buf...), s.buf...)
	s.pos -= int64(len(buf))
}

// skipTags consumes a leading ID3v2 tag or a trailing-style "TAG" (ID3v1)
// marker that happens to sit at the current read position, leaving the
// cursor at the first byte that is not part of a recognized tag.
func (s *source) skipTags() error {
	buf := make([]byte, 3)
	if _, err := s.ReadFull(buf); err != nil {
		return err
	}
	switch string(buf) {
	case "TAG":
		skip := make([]byte, 125)
		if _, err := s.ReadFull(skip); err != nil {
			return err
		}
	case "ID3":
		// Skip version (2 bytes) and flags (1 byte).
		skip := make([]byte, 3)
		if _, err := s.ReadFull(skip); err != nil {
			return err
		}
		szbuf := make([]byte, 4)
		n, err := s.ReadFull(szbuf)
		if err != nil || n != 4 {
			return err
		}
		// Each byte's high bit is unused (a "syncsafe" integer) so a tag
		// size can never be mistaken for a frame sync word.
		size := (uint32(szbuf[0]) << 21) | (uint32(szbuf[1]) << 14) |
			(uint32(szbuf[2]) << 7) | uint32(szbuf[3])
		skip := make([]byte, size)
		if _, err := s.ReadFull(skip); err != nil {
			return err
		}
	default:
		s.unread(buf)
	}
	return nil
}

// readHeader scans forward for a 32-bit sync+header word, resynchronizing
// byte-by-byte past anything that doesn't parse as a legal header. It
// gives up and returns io.EOF once it has scanned resyncLimit bytes
// without finding one.
func (s *source) readHeader(logger logFn, resyncLimit int) (frameheader.FrameHeader, error) {
	buf := make([]byte, 4)
	if n, err := s.ReadFull(buf); n < 4 {
		if err == io.EOF && n == 0 {
			return 0, io.EOF
		}
		if err == io.EOF {
			return 0, &consts.UnexpectedEOF{At: "readHeader"}
		}
		return 0, err
	}

	b1, b2, b3, b4 := uint32(buf[0]), uint32(buf[1]), uint32(buf[2]), uint32(buf[3])
	header := frameheader.FrameHeader((b1 << 24) | (b2 << 16) | (b3 << 8) | b4)
	scanned := 0
	for !header.IsValid() || header.IsFreeFormat() {
		if scanned++; scanned > resyncLimit {
			return 0, io.EOF
		}
		b1, b2, b3 = b2, b3, b4
		one := make([]byte, 1)
		if _, err := s.ReadFull(one); err != nil {
			if err == io.EOF {
				return 0, io.EOF
			}
			return 0, err
		}
		b4 = uint32(one[0])
		header = frameheader.FrameHeader((b1 << 24) | (b2 << 16) | (b3 << 8) | b4)
	}
	if scanned > 0 {
		logger("resynchronized after %d byte(s)", scanned)
	}
	return header, nil
}

func (s *source) readCRC() (uint16, error) {
	buf := make([]byte, 2)
	n, err := s.ReadFull(buf)
	if n < 2 {
		if err == io.EOF {
			return 0, &consts.UnexpectedEOF{At: "readCRC"}
		}
		return 0, fmt.Errorf("mp3: error at readCRC: %w", err)
	}
	return uint16(buf[0])<<8 | uint16(buf[1]), nil
}

type logFn func(format string, args ...any)
