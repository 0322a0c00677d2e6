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
	"io"
	"log/slog"
)

// defaultResyncLimit bounds how many bytes the header scanner will
// consume looking for the next sync word before giving up and reporting
// end-of-stream, guarding against spinning forever on non-MP3 input.
const defaultResyncLimit = 1 << 20

// DecoderOptions configures NewDecoder. The zero value is not meaningful
// on its own; use NewDecoder's functional options to build one, or pass
// none to get the defaults (no-op logger, lenient CRC, default resync
// limit).
type DecoderOptions struct {
	logger      *slog.Logger
	strictCRC   bool
	resyncLimit int
}

func defaultOptions() DecoderOptions {
	return DecoderOptions{
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		strictCRC:   false,
		resyncLimit: defaultResyncLimit,
	}
}

// Option configures a Decoder at construction time.
type Option func(*DecoderOptions)

// WithLogger installs a structured logger; the decoder emits one record
// per frame resynchronization and per soft decode error. A nil logger is
// ignored (the no-op default is kept).
func WithLogger(logger *slog.Logger) Option {
	return func(o *DecoderOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithStrictCRC makes a CRC mismatch on a protected frame an InvalidData
// condition (triggering resync) instead of the default behavior of
// consuming and ignoring the CRC word.
func WithStrictCRC() Option {
	return func(o *DecoderOptions) {
		o.strictCRC = true
	}
}

// WithResyncLimit overrides how many bytes the header scanner will
// consume before giving up and reporting end-of-stream. n <= 0 is
// ignored.
func WithResyncLimit(n int) Option {
	return func(o *DecoderOptions) {
		if n > 0 {
			o.resyncLimit = n
		}
	}
}
