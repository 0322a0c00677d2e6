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

// Package mp3 decodes a stream of MPEG-1/2/2.5 Layer III audio frames
// into normalized float32 PCM sample pairs.
package mp3

import (
	"errors"
	"fmt"
	"io"

	"github.com/layeriii/mp3dec/internal/consts"
	"github.com/layeriii/mp3dec/internal/frame"
	"github.com/layeriii/mp3dec/internal/frameheader"
)

// DecodedFrame is one pulled frame: its header metadata and the decoded
// samples. Samples[ch][:NumSamples] is valid; NumSamples is 576 for
// MPEG-2/2.5 (one granule) or 1152 for MPEG-1 (two granules).
type DecodedFrame struct {
	SampleRate  int
	NumChannels int
	NumSamples  int
	Samples     [2][1152]float32
}

// Decoder pulls successive frames from an underlying byte stream. It is a
// single-threaded, forward-only pull pipeline: construct with NewDecoder,
// then call NextFrame repeatedly until it returns io.EOF.
type Decoder struct {
	src        *source
	state      frame.State
	opts       DecoderOptions
	sampleRate int
	pending    *DecodedFrame
}

// NewDecoder wraps r for frame-at-a-time decoding. It skips a leading
// ID3v2 tag, if present, then decodes the first frame to learn the
// stream's sample rate, which SampleRate reports without consuming
// that frame a second time.
func NewDecoder(r io.Reader, opts ...Option) (*Decoder, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	d := &Decoder{
		src:  &source{reader: r},
		opts: o,
	}
	if err := d.src.skipTags(); err != nil && err != io.EOF {
		return nil, fmt.Errorf("mp3: %w", err)
	}
	f, err := d.NextFrame()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("mp3: %w", &UnsupportedError{Reason: "no decodable frame found"})
		}
		return nil, fmt.Errorf("mp3: %w", err)
	}
	d.sampleRate = f.SampleRate
	d.pending = f
	return d, nil
}

// SampleRate returns the stream's sample rate in Hz, as read from the
// first frame.
func (d *Decoder) SampleRate() int {
	return d.sampleRate
}

func (d *Decoder) logf(format string, args ...any) {
	d.opts.logger.Debug(fmt.Sprintf(format, args...))
}

// NextFrame pulls and fully decodes the next frame. It returns io.EOF
// once the source is exhausted (end-of-stream) or the configured resync
// scan limit is used up while searching for a valid header; any other
// returned error is a hard failure (an I/O error from the underlying
// reader). Soft per-frame decode failures are handled internally: logged,
// and the header scan resumes at the first byte the failed frame did not
// consume.
func (d *Decoder) NextFrame() (*DecodedFrame, error) {
	if d.pending != nil {
		f := d.pending
		d.pending = nil
		return f, nil
	}
	for {
		header, err := d.src.readHeader(d.logf, d.opts.resyncLimit)
		if err != nil {
			return nil, err
		}

		if err := d.validateSupported(header); err != nil {
			d.logf("skipping frame: %v", err)
			continue
		}

		if header.ProtectionBit() == 0 {
			crc, err := d.src.readCRC()
			if err != nil {
				return nil, fmt.Errorf("mp3: %w", err)
			}
			if d.opts.strictCRC {
				sideBuf := make([]byte, header.SideDataLen())
				if n, err := d.src.ReadFull(sideBuf); n < len(sideBuf) {
					if err == io.EOF {
						return nil, io.EOF
					}
					return nil, fmt.Errorf("mp3: %w", err)
				}
				headerTail := []byte{byte(header >> 8), byte(header)}
				mismatch := crc16(append(headerTail, sideBuf...)) != crc
				d.src.unread(sideBuf)
				if mismatch {
					d.logf("CRC mismatch, skipping frame")
					continue
				}
			}
		}

		f, err := frame.Read(d.src, header, &d.state)
		if err != nil {
			var invalid *consts.UnexpectedEOF
			if errors.As(err, &invalid) {
				return nil, io.EOF
			}
			d.logf("decode error, resyncing: %v", err)
			continue
		}

		return &DecodedFrame{
			SampleRate:  header.SamplingFrequencyValue(),
			NumChannels: header.NumberOfChannels(),
			NumSamples:  f.NumSamples,
			Samples:     f.Samples,
		}, nil
	}
}

func (d *Decoder) validateSupported(h frameheader.FrameHeader) error {
	if h.Layer() != consts.Layer3 {
		return &UnsupportedError{Reason: fmt.Sprintf("layer %s is not supported", h.Layer())}
	}
	if h.IsFreeFormat() {
		return &UnsupportedError{Reason: "free-format bitrate is not supported"}
	}
	return nil
}
